package get_day_availability

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CharterService/internal/api/handlers"
	getDayAvailability "github.com/m04kA/SMC-CharterService/internal/usecase/get_day_availability"
)

const (
	msgInvalidBoatID = "некорректный ID лодки"
	msgMissingDate   = "дата обязательна"
	msgInvalidParams = "некорректные параметры запроса, даты ожидаются в формате YYYY-MM-DD"
	msgInvalidRange  = "некорректный диапазон дат или размер группы"
	msgBoatNotFound  = "лодка не найдена"
	msgPartyTooLarge = "группа превышает вместимость лодки"
)

type Handler struct {
	useCase  GetDayAvailabilityUseCase
	location *time.Location
	logger   Logger
}

func NewHandler(useCase GetDayAvailabilityUseCase, location *time.Location, logger Logger) *Handler {
	if location == nil {
		location = time.UTC
	}
	return &Handler{
		useCase:  useCase,
		location: location,
		logger:   logger,
	}
}

// Handle GET /api/v1/boats/{boatId}/availability
// Query params: date (required, YYYY-MM-DD), to (optional, YYYY-MM-DD), partySize (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	// Извлекаем boatId из URL
	boatID, err := strconv.ParseInt(vars["boatId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /boats/{id}/availability - Invalid boat ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBoatID)
		return
	}

	query := r.URL.Query()
	dateStr := query.Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /boats/{id}/availability - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	useCaseReq, err := ToUseCaseRequest(boatID, dateStr, query.Get("to"), query.Get("partySize"), h.location)
	if err != nil {
		h.logger.Warn("GET /boats/{id}/availability - Invalid query params: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getDayAvailability.ErrInvalidInput):
			h.logger.Warn("GET /boats/{id}/availability - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRange)

		case errors.Is(err, getDayAvailability.ErrBoatNotFound):
			h.logger.Warn("GET /boats/{id}/availability - Boat not found: boat_id=%d", boatID)
			handlers.RespondNotFound(w, msgBoatNotFound)

		case errors.Is(err, getDayAvailability.ErrPartyTooLarge):
			h.logger.Warn("GET /boats/{id}/availability - Party too large: boat_id=%d, party=%d", boatID, useCaseReq.PartySize)
			handlers.RespondUnprocessable(w, msgPartyTooLarge)

		default:
			h.logger.Error("GET /boats/{id}/availability - Failed to get availability: boat_id=%d, error=%v", boatID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /boats/{id}/availability - Availability retrieved successfully: boat_id=%d, days=%d",
		boatID, len(result.Days))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

// HandleCatalog GET /api/v1/slots
// Публичный endpoint - каталог слотов операционного дня
func (h *Handler) HandleCatalog(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, FromCatalog(h.useCase.Catalog()))
}
