package normalize_bookings

import (
	"fmt"
	"strings"
)

// Допустимый диапазон лет источника
const (
	minSourceYear = 2000
	maxSourceYear = 2100
)

func validateYear(year int) error {
	if year < minSourceYear || year > maxSourceYear {
		return fmt.Errorf("%w: year must be between %d and %d", ErrInvalidInput, minSourceYear, maxSourceYear)
	}
	return nil
}

// validateImportRequest валидирует входные данные импорта
func validateImportRequest(req *ImportRequest) error {
	if err := validateYear(req.Year); err != nil {
		return err
	}

	if strings.TrimSpace(req.FileName) == "" {
		return fmt.Errorf("%w: file name is required", ErrInvalidInput)
	}

	if req.Body == nil {
		return fmt.Errorf("%w: file body is required", ErrInvalidInput)
	}

	return nil
}
