package normalize_bookings

import (
	"context"

	normalizeBookings "github.com/m04kA/SMC-CharterService/internal/usecase/normalize_bookings"
)

type NormalizeBookingsUseCase interface {
	Execute(ctx context.Context, req *normalizeBookings.Request) (*normalizeBookings.Response, error)
	Import(ctx context.Context, req *normalizeBookings.ImportRequest) (*normalizeBookings.ImportResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
