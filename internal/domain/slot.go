package domain

import (
	"time"

	"github.com/m04kA/SMC-CharterService/pkg/types"
)

// TimeSlot именованный фиксированный слот операционного дня (утро / день / закат)
type TimeSlot struct {
	ID            string
	Label         string
	StartTime     types.TimeString
	DurationHours float64
	MinPrice      float64
}

// DurationMinutes длительность слота в минутах
func (s *TimeSlot) DurationMinutes() int {
	return int(s.DurationHours * 60)
}

// AvailabilityStatus статус занятости дня
type AvailabilityStatus string

const (
	AvailabilityAvailable       AvailabilityStatus = "available"
	AvailabilityPartiallyBooked AvailabilityStatus = "partially_booked"
	AvailabilityFullyBooked     AvailabilityStatus = "fully_booked"
)

// DayAvailability вычисленная занятость лодки на календарный день
type DayAvailability struct {
	Date            time.Time
	BookedSlotCount int
	Status          AvailabilityStatus
	PerSlotBooked   map[string]bool

	// UnresolvedReservations резервации, время которых не попало ни в один слот каталога.
	// Каждая из них считается частичной занятостью дня.
	UnresolvedReservations int
}

// IsBookable возвращает true, если в дне есть хотя бы один свободный слот
func (d *DayAvailability) IsBookable() bool {
	return d.Status != AvailabilityFullyBooked
}

// IsSlotBooked возвращает занятость конкретного слота
func (d *DayAvailability) IsSlotBooked(slotID string) bool {
	return d.PerSlotBooked[slotID]
}
