package normalize_bookings

import (
	"io"

	"github.com/m04kA/SMC-CharterService/internal/domain"
)

// Request модель запроса единого списка бронирований за год
type Request struct {
	Year int
}

// Response единый список: текущие чартеры и исторические записи года
type Response struct {
	Year            int
	Bookings        []domain.CanonicalBooking
	CurrentCount    int
	HistoricalCount int
	FallbackCount   int // записи с DateParseFallback
}

// ImportRequest модель запроса импорта выгрузки
type ImportRequest struct {
	Year     int
	Variant  domain.SchemaVariant // пусто = по таблице годов
	FileName string               // по расширению выбирается формат: .xlsx или .xls
	Body     io.Reader
	Persist  bool // сохранить исходные строки в legacy_charters
}

// ImportResponse превью импорта
type ImportResponse struct {
	Year          int
	Variant       domain.SchemaVariant
	Rows          int
	Bookings      []domain.CanonicalBooking
	FallbackCount int
	Persisted     int64
}
