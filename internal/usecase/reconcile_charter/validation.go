package reconcile_charter

import (
	"fmt"
	"strings"
)

// maxLocatorLength ограничение длины локатора (varchar(64) в БД)
const maxLocatorLength = 64

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	locator := strings.TrimSpace(req.Locator)
	if locator == "" {
		return fmt.Errorf("%w: locator is required", ErrInvalidInput)
	}

	if len(locator) > maxLocatorLength {
		return fmt.Errorf("%w: locator is longer than %d characters", ErrInvalidInput, maxLocatorLength)
	}

	return nil
}
