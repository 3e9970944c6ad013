package get_day_availability

import (
	"fmt"
	"math"
	"time"

	"github.com/m04kA/SMC-CharterService/internal/domain"
)

// slotWindow номинальное окно слота в минутах от начала суток: [start, end)
type slotWindow struct {
	slotID string
	start  int
	end    int
}

func (w slotWindow) contains(minute int) bool {
	return minute >= w.start && minute < w.end
}

// ValidateCatalog проверяет каталог слотов. Вызывается при старте и перед каждым вычислением.
func ValidateCatalog(catalog []domain.TimeSlot) error {
	_, err := buildWindows(catalog)
	return err
}

// Resolve вычисляет занятость дня по резервациям.
//
// reservations уже отфильтрованы вызывающим кодом по лодке и календарному дню.
// Слот считается занятым, если время начала хотя бы одной занимающей резервации
// попадает в его номинальное окно. Сравнение идет по времени, а не по ID слота:
// время резерваций в хранилище может не совпадать с номинальным началом слота.
// Резервация, не попавшая ни в один слот, не отбрасывается, а считается
// частичной занятостью дня (UnresolvedReservations).
//
// Прошлые даты здесь не отсекаются - это забота отображения.
func Resolve(
	date time.Time,
	catalog []domain.TimeSlot,
	reservations []*domain.Reservation,
	fullyBookedThreshold int,
) (domain.DayAvailability, error) {
	windows, err := buildWindows(catalog)
	if err != nil {
		return domain.DayAvailability{}, err
	}

	if fullyBookedThreshold <= 0 {
		fullyBookedThreshold = domain.DefaultFullyBookedThreshold
	}

	perSlotBooked := make(map[string]bool, len(catalog))
	for _, slot := range catalog {
		perSlotBooked[slot.ID] = false
	}

	unresolved := 0
	for _, reservation := range reservations {
		if reservation == nil || !reservation.IsOccupying() {
			continue
		}

		if reservation.StartAt.IsZero() {
			unresolved++
			continue
		}

		minute := minuteOfDay(reservation.StartAt.In(date.Location()))

		matched := false
		for _, w := range windows {
			if w.contains(minute) {
				perSlotBooked[w.slotID] = true
				matched = true
			}
		}

		if !matched {
			unresolved++
		}
	}

	booked := 0
	for _, isBooked := range perSlotBooked {
		if isBooked {
			booked++
		}
	}

	// Нераспознанные резервации добавляют занятость, но не больше числа слотов в каталоге
	bookedSlotCount := booked + unresolved
	if bookedSlotCount > len(catalog) {
		bookedSlotCount = len(catalog)
	}

	return domain.DayAvailability{
		Date:                   startOfDay(date),
		BookedSlotCount:        bookedSlotCount,
		Status:                 statusFor(bookedSlotCount, fullyBookedThreshold),
		PerSlotBooked:          perSlotBooked,
		UnresolvedReservations: unresolved,
	}, nil
}

// DisplayPrice цена слота для группы: max(тариф * размер группы, минимальная цена слота)
func DisplayPrice(perPersonRate float64, partySize int, slot domain.TimeSlot) float64 {
	price := perPersonRate * float64(partySize)
	if price < 0 || math.IsNaN(price) || math.IsInf(price, 0) {
		price = 0
	}
	return math.Max(price, slot.MinPrice)
}

func statusFor(bookedSlotCount, fullyBookedThreshold int) domain.AvailabilityStatus {
	switch {
	case bookedSlotCount <= 0:
		return domain.AvailabilityAvailable
	case bookedSlotCount >= fullyBookedThreshold:
		return domain.AvailabilityFullyBooked
	default:
		return domain.AvailabilityPartiallyBooked
	}
}

func buildWindows(catalog []domain.TimeSlot) ([]slotWindow, error) {
	if len(catalog) == 0 {
		return nil, fmt.Errorf("%w: slot catalog is empty", domain.ErrConfiguration)
	}

	seen := make(map[string]struct{}, len(catalog))
	windows := make([]slotWindow, 0, len(catalog))

	for i, slot := range catalog {
		if slot.ID == "" {
			return nil, fmt.Errorf("%w: slot #%d has no id", domain.ErrConfiguration, i)
		}
		if _, dup := seen[slot.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate slot id %q", domain.ErrConfiguration, slot.ID)
		}
		seen[slot.ID] = struct{}{}

		start, err := slot.StartTime.Minutes()
		if err != nil {
			return nil, fmt.Errorf("%w: slot %q has no parseable start time: %v", domain.ErrConfiguration, slot.ID, err)
		}

		duration := slot.DurationMinutes()
		if duration <= 0 {
			return nil, fmt.Errorf("%w: slot %q has non-positive duration %.2fh", domain.ErrConfiguration, slot.ID, slot.DurationHours)
		}

		windows = append(windows, slotWindow{
			slotID: slot.ID,
			start:  start,
			end:    start + duration,
		})
	}

	return windows, nil
}

func minuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
