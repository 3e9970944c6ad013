package normalize_bookings

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("normalize_bookings: invalid input data")

	// ErrUnknownVariant возвращается, когда для года или запроса нет варианта схемы
	ErrUnknownVariant = errors.New("normalize_bookings: unknown schema variant")

	// ErrUnreadableFile возвращается, когда выгрузку не удалось прочитать
	ErrUnreadableFile = errors.New("normalize_bookings: unreadable spreadsheet")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("normalize_bookings: internal error")
)
