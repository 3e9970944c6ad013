package charter

import "errors"

var (
	// ErrCharterNotFound возвращается, когда чартер не найден
	ErrCharterNotFound = errors.New("charter.repository: charter not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("charter.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("charter.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("charter.repository: failed to scan row")
)
