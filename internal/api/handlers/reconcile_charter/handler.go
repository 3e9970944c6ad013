package reconcile_charter

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CharterService/internal/api/handlers"
	reconcileCharter "github.com/m04kA/SMC-CharterService/internal/usecase/reconcile_charter"
)

const (
	msgInvalidAsOf     = "некорректный параметр asOf, ожидается YYYY-MM-DD или RFC3339"
	msgInvalidLocator  = "некорректный локатор чартера"
	msgCharterNotFound = "чартер не найден"
)

type Handler struct {
	useCase  ReconcileCharterUseCase
	location *time.Location
	logger   Logger
}

func NewHandler(useCase ReconcileCharterUseCase, location *time.Location, logger Logger) *Handler {
	if location == nil {
		location = time.UTC
	}
	return &Handler{
		useCase:  useCase,
		location: location,
		logger:   logger,
	}
}

// Handle GET /api/v1/charters/{locator}/reconciliation
// Query params: asOf (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	locator := mux.Vars(r)["locator"]

	asOf, err := ParseAsOf(r.URL.Query().Get("asOf"), h.location)
	if err != nil {
		h.logger.Warn("GET /charters/{locator}/reconciliation - Invalid asOf: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAsOf)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &reconcileCharter.Request{
		Locator: locator,
		AsOf:    asOf,
	})
	if err != nil {
		switch {
		case errors.Is(err, reconcileCharter.ErrInvalidInput):
			h.logger.Warn("GET /charters/{locator}/reconciliation - Invalid locator: %v", err)
			handlers.RespondBadRequest(w, msgInvalidLocator)

		case errors.Is(err, reconcileCharter.ErrCharterNotFound):
			h.logger.Warn("GET /charters/{locator}/reconciliation - Charter not found: locator=%s", locator)
			handlers.RespondNotFound(w, msgCharterNotFound)

		default:
			h.logger.Error("GET /charters/{locator}/reconciliation - Failed to reconcile: locator=%s, error=%v", locator, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /charters/{locator}/reconciliation - Charter reconciled: locator=%s, status=%s, urgency=%s",
		locator, result.Result.Status, result.Result.Urgency)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

// HandlePaymentActions GET /api/v1/charters/payment-actions
// Query params: asOf (optional)
func (h *Handler) HandlePaymentActions(w http.ResponseWriter, r *http.Request) {
	asOf, err := ParseAsOf(r.URL.Query().Get("asOf"), h.location)
	if err != nil {
		h.logger.Warn("GET /charters/payment-actions - Invalid asOf: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAsOf)
		return
	}

	result, err := h.useCase.PaymentActions(r.Context(), &reconcileCharter.PaymentActionsRequest{AsOf: asOf})
	if err != nil {
		h.logger.Error("GET /charters/payment-actions - Failed to build payment actions: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /charters/payment-actions - Payment actions retrieved: count=%d", len(result.Actions))
	handlers.RespondJSON(w, http.StatusOK, FromPaymentActionsResponse(result))
}
