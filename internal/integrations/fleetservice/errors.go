package fleetservice

import "errors"

var (
	// ErrBoatNotFound возвращается, когда лодки нет в каталоге флота
	ErrBoatNotFound = errors.New("boat not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("fleetservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("fleetservice client: invalid response")

	// ErrServiceDegraded возвращается при применении graceful degradation.
	// Указывает, что FleetService недоступен и следует использовать минимальные цены слотов
	ErrServiceDegraded = errors.New("fleetservice unavailable: graceful degradation applied")
)
