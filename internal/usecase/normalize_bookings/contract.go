package normalize_bookings

import (
	"context"
	"io"

	"github.com/m04kA/SMC-CharterService/internal/domain"
)

// CharterRepository интерфейс репозитория текущих чартеров
type CharterRepository interface {
	GetByYear(ctx context.Context, year int) ([]*domain.Charter, error)
}

// LegacyRepository интерфейс репозитория исторических записей
type LegacyRepository interface {
	GetByYear(ctx context.Context, year int) ([]domain.StoredLegacyRecord, error)
	SaveBatch(ctx context.Context, year int, variant domain.SchemaVariant, records []domain.LegacyCharterRecord) (int64, error)
}

// SpreadsheetReader читает выгрузку таблицы в записи (строка заголовка = ключи)
type SpreadsheetReader interface {
	ReadRecords(fileName string, body io.Reader) ([]domain.LegacyCharterRecord, error)
}

// Metrics интерфейс метрик нормализации
type Metrics interface {
	ObserveNormalization(variant string, dateFallback bool)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
