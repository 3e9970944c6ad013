package domain

import (
	"strings"
	"time"
)

// ReservationStatus статус резервации лодки
type ReservationStatus string

const (
	ReservationConfirmed ReservationStatus = "confirmed"
	ReservationBooked    ReservationStatus = "booked"
	ReservationPrebooked ReservationStatus = "prebooked"
	ReservationCancelled ReservationStatus = "cancelled"
	ReservationPending   ReservationStatus = "pending"
)

// OccupyingStatuses статусы, которые занимают слот
var OccupyingStatuses = []ReservationStatus{
	ReservationConfirmed,
	ReservationBooked,
	ReservationPrebooked,
}

// Reservation резервация лодки (read-only снимок из хранилища)
type Reservation struct {
	ID      int64
	BoatID  int64
	StartAt time.Time
	EndAt   time.Time
	Status  ReservationStatus
}

// Normalized приводит статус к нижнему регистру без пробелов.
// Исторические данные содержат "Confirmed", " BOOKED " и т.п.
func (s ReservationStatus) Normalized() ReservationStatus {
	return ReservationStatus(strings.ToLower(strings.TrimSpace(string(s))))
}

// IsOccupying возвращает true, если статус занимает слот (без учета регистра)
func (s ReservationStatus) IsOccupying() bool {
	n := s.Normalized()
	for _, occupying := range OccupyingStatuses {
		if n == occupying {
			return true
		}
	}
	return false
}

// IsOccupying возвращает true, если резервация занимает слот
func (r *Reservation) IsOccupying() bool {
	return r.Status.IsOccupying()
}
