package get_day_availability

import (
	"context"

	"github.com/m04kA/SMC-CharterService/internal/domain"
	getDayAvailability "github.com/m04kA/SMC-CharterService/internal/usecase/get_day_availability"
)

type GetDayAvailabilityUseCase interface {
	Execute(ctx context.Context, req *getDayAvailability.Request) (*getDayAvailability.Response, error)
	Catalog() []domain.TimeSlot
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
