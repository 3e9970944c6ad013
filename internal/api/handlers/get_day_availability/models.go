package get_day_availability

import (
	"fmt"
	"strconv"
	"time"

	"github.com/m04kA/SMC-CharterService/internal/domain"
	getDayAvailability "github.com/m04kA/SMC-CharterService/internal/usecase/get_day_availability"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	BoatID          int64             `json:"boatId"`
	PricingDegraded bool              `json:"pricingDegraded"`
	Days            []DayAvailability `json:"days"`
}

// DayAvailability занятость одного дня
type DayAvailability struct {
	Date                   string      `json:"date"`
	Status                 string      `json:"status"`
	BookedSlotCount        int         `json:"bookedSlotCount"`
	UnresolvedReservations int         `json:"unresolvedReservations"`
	Bookable               bool        `json:"bookable"`
	Slots                  []SlotState `json:"slots"`
}

// SlotState состояние слота в день
type SlotState struct {
	ID            string  `json:"id"`
	Label         string  `json:"label"`
	StartTime     string  `json:"startTime"`
	DurationHours float64 `json:"durationHours"`
	Booked        bool    `json:"booked"`
	Price         float64 `json:"price"`
}

// CatalogResponse каталог слотов
type CatalogResponse struct {
	Slots []CatalogSlot `json:"slots"`
}

// CatalogSlot слот каталога
type CatalogSlot struct {
	ID            string  `json:"id"`
	Label         string  `json:"label"`
	StartTime     string  `json:"startTime"`
	DurationHours float64 `json:"durationHours"`
	MinPrice      float64 `json:"minPrice"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getDayAvailability.Response) *AvailabilityResponse {
	days := make([]DayAvailability, len(resp.Days))
	for i, day := range resp.Days {
		slots := make([]SlotState, len(day.Slots))
		for j, slot := range day.Slots {
			slots[j] = SlotState{
				ID:            slot.SlotID,
				Label:         slot.Label,
				StartTime:     slot.StartTime.String(),
				DurationHours: slot.DurationHours,
				Booked:        slot.Booked,
				Price:         slot.Price,
			}
		}

		days[i] = DayAvailability{
			Date:                   day.Availability.Date.Format(domain.DateFormat),
			Status:                 string(day.Availability.Status),
			BookedSlotCount:        day.Availability.BookedSlotCount,
			UnresolvedReservations: day.Availability.UnresolvedReservations,
			Bookable:               day.Availability.IsBookable(),
			Slots:                  slots,
		}
	}

	return &AvailabilityResponse{
		BoatID:          resp.BoatID,
		PricingDegraded: resp.PricingDegraded,
		Days:            days,
	}
}

// FromCatalog конвертирует каталог слотов в HTTP response
func FromCatalog(catalog []domain.TimeSlot) *CatalogResponse {
	slots := make([]CatalogSlot, len(catalog))
	for i, slot := range catalog {
		slots[i] = CatalogSlot{
			ID:            slot.ID,
			Label:         slot.Label,
			StartTime:     slot.StartTime.String(),
			DurationHours: slot.DurationHours,
			MinPrice:      slot.MinPrice,
		}
	}
	return &CatalogResponse{Slots: slots}
}

// ToUseCaseRequest создает запрос use case из query параметров.
// Даты интерпретируются в часовом поясе операционного дня.
func ToUseCaseRequest(boatID int64, dateStr, toStr, partySizeStr string, loc *time.Location) (*getDayAvailability.Request, error) {
	from, err := time.ParseInLocation(domain.DateFormat, dateStr, loc)
	if err != nil {
		return nil, fmt.Errorf("date: %w", err)
	}

	req := &getDayAvailability.Request{
		BoatID: boatID,
		From:   from,
	}

	if toStr != "" {
		to, err := time.ParseInLocation(domain.DateFormat, toStr, loc)
		if err != nil {
			return nil, fmt.Errorf("to: %w", err)
		}
		req.To = to
	}

	if partySizeStr != "" {
		partySize, err := strconv.Atoi(partySizeStr)
		if err != nil {
			return nil, fmt.Errorf("partySize: %w", err)
		}
		req.PartySize = partySize
	}

	return req, nil
}
