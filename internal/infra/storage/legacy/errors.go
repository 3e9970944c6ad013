package legacy

import "errors"

var (
	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("legacy.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("legacy.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("legacy.repository: failed to scan row")

	// ErrInvalidPayload возвращается, когда payload не является JSON объектом
	ErrInvalidPayload = errors.New("legacy.repository: invalid payload")
)
