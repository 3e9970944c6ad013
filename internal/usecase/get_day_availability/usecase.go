package get_day_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-CharterService/internal/domain"
	"github.com/m04kA/SMC-CharterService/internal/integrations/fleetservice"
)

// UseCase use case для получения доступности лодки по дням
type UseCase struct {
	reservationRepo      ReservationRepository
	fleetClient          FleetServiceClient
	catalog              []domain.TimeSlot
	fullyBookedThreshold int
	metrics              Metrics
	logger               Logger
}

// NewUseCase создает новый экземпляр use case.
// Каталог проверяется сразу: некорректная конфигурация слотов - ошибка старта сервиса.
func NewUseCase(
	reservationRepo ReservationRepository,
	fleetClient FleetServiceClient,
	catalog []domain.TimeSlot,
	fullyBookedThreshold int,
	metrics Metrics,
	logger Logger,
) (*UseCase, error) {
	if err := ValidateCatalog(catalog); err != nil {
		return nil, err
	}

	if fullyBookedThreshold <= 0 {
		fullyBookedThreshold = domain.DefaultFullyBookedThreshold
	}

	return &UseCase{
		reservationRepo:      reservationRepo,
		fleetClient:          fleetClient,
		catalog:              catalog,
		fullyBookedThreshold: fullyBookedThreshold,
		metrics:              metrics,
		logger:               logger,
	}, nil
}

// Execute выполняет use case получения доступности
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetDayAvailability: boat=%d, from=%s, to=%s, partySize=%d",
		req.BoatID, req.From.Format(domain.DateFormat), req.To.Format(domain.DateFormat), req.PartySize)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetDayAvailability: validation failed: %v", err)
		return nil, err
	}

	from := startOfDay(req.From)
	to := from
	if !req.To.IsZero() {
		to = startOfDay(req.To)
	}

	// 2. Получаем тариф лодки только для расчета цены группы
	// (при недоступности FleetService показываем минимальные цены)
	var (
		boat            *fleetservice.Boat
		perPersonRate   float64
		pricingDegraded bool
	)

	if req.PartySize > 0 {
		var err error
		boat, err = uc.fleetClient.GetBoatWithGracefulDegradation(ctx, req.BoatID)
		switch {
		case err == nil:
			perPersonRate = boat.PerPersonRate
		case errors.Is(err, fleetservice.ErrBoatNotFound):
			uc.logger.Warn("GetDayAvailability: boat id=%d not found", req.BoatID)
			return nil, ErrBoatNotFound
		case errors.Is(err, fleetservice.ErrServiceDegraded):
			uc.logger.Warn("GetDayAvailability: pricing degraded for boat id=%d, using slot minimum prices", req.BoatID)
			pricingDegraded = true
		default:
			uc.logger.Error("GetDayAvailability: failed to get boat id=%d: %v", req.BoatID, err)
			return nil, fmt.Errorf("%w: failed to get boat: %v", ErrInternal, err)
		}
	}

	// 3. Проверяем вместимость лодки
	if boat != nil && boat.Capacity > 0 && req.PartySize > boat.Capacity {
		uc.logger.Warn("GetDayAvailability: party of %d exceeds capacity %d of boat id=%d",
			req.PartySize, boat.Capacity, req.BoatID)
		return nil, fmt.Errorf("%w: capacity is %d", ErrPartyTooLarge, boat.Capacity)
	}

	// 4. Вычисляем занятость каждого дня диапазона
	days := make([]Day, 0, daysInRange(from, to))
	for date := from; !date.After(to); date = date.AddDate(0, 0, 1) {
		reservations, err := uc.reservationRepo.GetByBoatAndDate(ctx, req.BoatID, date)
		if err != nil {
			uc.logger.Error("GetDayAvailability: failed to get reservations for boat=%d, date=%s: %v",
				req.BoatID, date.Format(domain.DateFormat), err)
			return nil, fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
		}

		availability, err := Resolve(date, uc.catalog, reservations, uc.fullyBookedThreshold)
		if err != nil {
			uc.logger.Error("GetDayAvailability: failed to resolve date=%s: %v", date.Format(domain.DateFormat), err)
			return nil, fmt.Errorf("%w: %v", ErrInternal, err)
		}

		if availability.UnresolvedReservations > 0 {
			uc.logger.Warn("GetDayAvailability: %d reservation(s) of boat=%d on %s match no slot",
				availability.UnresolvedReservations, req.BoatID, date.Format(domain.DateFormat))
		}

		uc.metrics.ObserveAvailability(string(availability.Status))

		days = append(days, Day{
			Availability: availability,
			Slots:        uc.slotStates(availability, perPersonRate, req.PartySize),
		})
	}

	uc.logger.Info("GetDayAvailability: resolved %d day(s) for boat=%d", len(days), req.BoatID)

	return &Response{
		BoatID:          req.BoatID,
		Days:            days,
		PricingDegraded: pricingDegraded,
	}, nil
}

func (uc *UseCase) slotStates(availability domain.DayAvailability, perPersonRate float64, partySize int) []SlotState {
	states := make([]SlotState, 0, len(uc.catalog))
	for _, slot := range uc.catalog {
		states = append(states, SlotState{
			SlotID:        slot.ID,
			Label:         slot.Label,
			StartTime:     slot.StartTime,
			DurationHours: slot.DurationHours,
			Booked:        availability.IsSlotBooked(slot.ID),
			Price:         DisplayPrice(perPersonRate, partySize, slot),
		})
	}
	return states
}

// Catalog возвращает каталог слотов, с которым работает use case
func (uc *UseCase) Catalog() []domain.TimeSlot {
	out := make([]domain.TimeSlot, len(uc.catalog))
	copy(out, uc.catalog)
	return out
}
