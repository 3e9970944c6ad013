package reconcile_charter

import (
	"time"

	"github.com/m04kA/SMC-CharterService/internal/domain"
	reconcileCharter "github.com/m04kA/SMC-CharterService/internal/usecase/reconcile_charter"
)

// ReconciliationResponse HTTP response model
type ReconciliationResponse struct {
	AsOf           string         `json:"asOf"`
	Charter        CharterInfo    `json:"charter"`
	Reconciliation Reconciliation `json:"reconciliation"`
}

// PaymentActionsResponse HTTP response model
type PaymentActionsResponse struct {
	AsOf    string          `json:"asOf"`
	Total   int             `json:"total"`
	Actions []PaymentAction `json:"actions"`
}

// PaymentAction чартер, по которому нужно собрать остаток
type PaymentAction struct {
	Charter        CharterInfo    `json:"charter"`
	Reconciliation Reconciliation `json:"reconciliation"`
}

// CharterInfo финансовый снимок чартера
type CharterInfo struct {
	Locator      string   `json:"locator"`
	BoatName     string   `json:"boatName"`
	GuestName    string   `json:"guestName"`
	StartDate    string   `json:"startDate"`
	EndDate      string   `json:"endDate,omitempty"`
	TotalGuests  int      `json:"totalGuests"`
	CharterTotal float64  `json:"charterTotal"`
	PaidAmount   float64  `json:"paidAmount"`
	CashPayment  *float64 `json:"cashPayment,omitempty"`
	CardPayment  *float64 `json:"cardPayment,omitempty"`
	Status       string   `json:"bookingStatus"`
}

// Reconciliation результат сверки
type Reconciliation struct {
	OutstandingAmount float64          `json:"outstandingAmount"`
	Status            string           `json:"status"`
	DaysUntilCharter  int              `json:"daysUntilCharter"`
	Urgency           string           `json:"urgency"`
	ContractSigned    bool             `json:"contractSigned"`
	PaymentMismatch   *PaymentMismatch `json:"paymentMismatch,omitempty"`
}

// PaymentMismatch предупреждение о расхождении cash + card и paidAmount
type PaymentMismatch struct {
	PaidAmount  float64 `json:"paidAmount"`
	CashPayment float64 `json:"cashPayment"`
	CardPayment float64 `json:"cardPayment"`
	Difference  float64 `json:"difference"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *reconcileCharter.Response) *ReconciliationResponse {
	return &ReconciliationResponse{
		AsOf:           resp.AsOf.Format(time.RFC3339),
		Charter:        fromCharter(resp.Charter),
		Reconciliation: fromResult(resp.Result),
	}
}

// FromPaymentActionsResponse конвертирует список действий в HTTP response
func FromPaymentActionsResponse(resp *reconcileCharter.PaymentActionsResponse) *PaymentActionsResponse {
	actions := make([]PaymentAction, len(resp.Actions))
	for i, action := range resp.Actions {
		actions[i] = PaymentAction{
			Charter:        fromCharter(action.Charter),
			Reconciliation: fromResult(action.Result),
		}
	}

	return &PaymentActionsResponse{
		AsOf:    resp.AsOf.Format(time.RFC3339),
		Total:   len(actions),
		Actions: actions,
	}
}

// ParseAsOf разбирает параметр asOf: RFC3339 или YYYY-MM-DD в часовом поясе loc.
// Пустая строка = текущее время (zero).
func ParseAsOf(value string, loc *time.Location) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.ParseInLocation(domain.DateFormat, value, loc)
}

func fromCharter(charter *domain.Charter) CharterInfo {
	if charter == nil {
		return CharterInfo{}
	}

	info := CharterInfo{
		Locator:      charter.Locator,
		BoatName:     charter.BoatName,
		GuestName:    charter.GuestName,
		StartDate:    charter.StartDate.Format(domain.DateFormat),
		TotalGuests:  charter.TotalGuests,
		CharterTotal: charter.CharterTotal,
		PaidAmount:   charter.PaidAmount,
		CashPayment:  charter.CashPayment,
		CardPayment:  charter.CardPayment,
		Status:       charter.BookingStatus,
	}
	if !charter.EndDate.IsZero() {
		info.EndDate = charter.EndDate.Format(domain.DateFormat)
	}
	return info
}

func fromResult(result domain.ReconciliationResult) Reconciliation {
	rec := Reconciliation{
		OutstandingAmount: result.OutstandingAmount,
		Status:            string(result.Status),
		DaysUntilCharter:  result.DaysUntilCharter,
		Urgency:           string(result.Urgency),
		ContractSigned:    result.ContractSigned,
	}
	if result.PaymentMismatch != nil {
		rec.PaymentMismatch = &PaymentMismatch{
			PaidAmount:  result.PaymentMismatch.PaidAmount,
			CashPayment: result.PaymentMismatch.CashPayment,
			CardPayment: result.PaymentMismatch.CardPayment,
			Difference:  result.PaymentMismatch.Difference,
		}
	}
	return rec
}
