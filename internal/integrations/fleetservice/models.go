package fleetservice

// Boat модель лодки из FleetService
type Boat struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Capacity      int     `json:"capacity"`        // Максимум гостей, 0 = не ограничено
	PerPersonRate float64 `json:"per_person_rate"` // Цена за человека за слот
	Currency      string  `json:"currency"`
}

// ErrorResponse модель ошибки от FleetService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
