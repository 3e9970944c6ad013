package reconcile_charter

import (
	"time"

	"github.com/m04kA/SMC-CharterService/internal/domain"
)

// Request модель запроса сверки одного чартера
type Request struct {
	Locator string
	AsOf    time.Time // zero = текущее время
}

// Response модель ответа сверки
type Response struct {
	Charter *domain.Charter
	Result  domain.ReconciliationResult
	AsOf    time.Time
}

// PaymentActionsRequest модель запроса списка чартеров, требующих сбора остатка
type PaymentActionsRequest struct {
	AsOf time.Time // zero = текущее время
}

// PaymentAction чартер, по которому требуется действие
type PaymentAction struct {
	Charter *domain.Charter
	Result  domain.ReconciliationResult
}

// PaymentActionsResponse список действий, отсортированный по близости чартера
type PaymentActionsResponse struct {
	AsOf    time.Time
	Actions []PaymentAction
}
