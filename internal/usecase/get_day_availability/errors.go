package get_day_availability

import "errors"

var (
	// ErrBoatNotFound возвращается, когда лодка не найдена в каталоге флота
	ErrBoatNotFound = errors.New("get_day_availability: boat not found")

	// ErrPartyTooLarge возвращается, когда группа больше вместимости лодки
	ErrPartyTooLarge = errors.New("get_day_availability: party size exceeds boat capacity")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_day_availability: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_day_availability: internal error")
)
