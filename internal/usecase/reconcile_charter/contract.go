package reconcile_charter

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CharterService/internal/domain"
)

// CharterRepository интерфейс репозитория чартеров
type CharterRepository interface {
	// GetByLocator получает чартер по локатору бронирования
	GetByLocator(ctx context.Context, locator string) (*domain.Charter, error)

	// GetWithBalanceBetween получает чартеры с неоплаченным остатком, начинающиеся в [from, to]
	GetWithBalanceBetween(ctx context.Context, from, to time.Time) ([]*domain.Charter, error)
}

// Metrics интерфейс метрик сверки
type Metrics interface {
	ObserveReconciliation(status, urgency string, mismatch bool)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
