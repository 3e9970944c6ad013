package get_day_availability

import (
	"time"

	"github.com/m04kA/SMC-CharterService/internal/domain"
	"github.com/m04kA/SMC-CharterService/pkg/types"
)

// Request модель запроса доступности лодки
type Request struct {
	BoatID    int64     // ID лодки
	From      time.Time // Первый день диапазона (без времени)
	To        time.Time // Последний день диапазона включительно (zero = только From)
	PartySize int       // Размер группы для расчета цены (0 = показать минимальные цены)
}

// Response модель ответа с доступностью по дням
type Response struct {
	BoatID          int64
	Days            []Day
	PricingDegraded bool // FleetService недоступен, цены = минимальные цены слотов
}

// Day доступность одного дня со состоянием каждого слота
type Day struct {
	Availability domain.DayAvailability
	Slots        []SlotState
}

// SlotState состояние слота каталога в конкретный день
type SlotState struct {
	SlotID        string
	Label         string
	StartTime     types.TimeString
	DurationHours float64
	Booked        bool
	Price         float64
}
