package get_day_availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CharterService/internal/domain"
	"github.com/m04kA/SMC-CharterService/internal/integrations/fleetservice"
)

// ReservationRepository интерфейс репозитория резерваций
type ReservationRepository interface {
	// GetByBoatAndDate получает резервации лодки, начинающиеся в календарный день date
	GetByBoatAndDate(ctx context.Context, boatID int64, date time.Time) ([]*domain.Reservation, error)
}

// FleetServiceClient интерфейс клиента для FleetService
type FleetServiceClient interface {
	GetBoatWithGracefulDegradation(ctx context.Context, boatID int64) (*fleetservice.Boat, error)
}

// Metrics интерфейс метрик доступности
type Metrics interface {
	ObserveAvailability(status string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
