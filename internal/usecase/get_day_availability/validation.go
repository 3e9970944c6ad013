package get_day_availability

import (
	"fmt"
	"math"
	"time"

	"github.com/m04kA/SMC-CharterService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.BoatID <= 0 {
		return fmt.Errorf("%w: boatID must be positive", ErrInvalidInput)
	}

	if req.From.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.PartySize < 0 {
		return fmt.Errorf("%w: partySize must not be negative", ErrInvalidInput)
	}

	if req.To.IsZero() {
		return nil
	}

	from := startOfDay(req.From)
	to := startOfDay(req.To)

	if to.Before(from) {
		return fmt.Errorf("%w: range end %s is before start %s",
			ErrInvalidInput, to.Format(domain.DateFormat), from.Format(domain.DateFormat))
	}

	if days := daysInRange(from, to); days > domain.MaxAvailabilityRangeDays {
		return fmt.Errorf("%w: range of %d days exceeds limit of %d",
			ErrInvalidInput, days, domain.MaxAvailabilityRangeDays)
	}

	return nil
}

// daysInRange число календарных дней в диапазоне включительно
func daysInRange(from, to time.Time) int {
	// DST сдвигает сутки на час, поэтому округляем
	return int(math.Round(to.Sub(from).Hours()/24)) + 1
}
