package reconcile_charter

import "errors"

var (
	// ErrCharterNotFound возвращается, когда чартер не найден
	ErrCharterNotFound = errors.New("reconcile_charter: charter not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reconcile_charter: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reconcile_charter: internal error")
)
