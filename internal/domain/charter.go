package domain

import "time"

// Charter чартер с финансовыми полями (read-only снимок из хранилища)
type Charter struct {
	Locator     string
	BoatName    string
	GuestName   string
	StartDate   time.Time
	EndDate     time.Time
	TotalGuests int

	CharterTotal float64
	PaidAmount   float64
	CashPayment  *float64 // nil = не учитывается отдельно
	CardPayment  *float64 // nil = не учитывается отдельно

	// OutstandingAmount хранимое значение, может быть устаревшим - при сверке всегда пересчитывается
	OutstandingAmount float64

	ContractSigned bool
	BookingStatus  string
	CreatedAt      time.Time
}

// TracksPaymentSplit возвращает true, если платежи разбиты на наличные/карту
func (c *Charter) TracksPaymentSplit() bool {
	return c.CashPayment != nil || c.CardPayment != nil
}

// ReconciliationStatus статус сверки платежей
type ReconciliationStatus string

const (
	ReconciliationReconciled ReconciliationStatus = "reconciled"
	ReconciliationPending    ReconciliationStatus = "pending"
	ReconciliationOverdue    ReconciliationStatus = "overdue"
)

// Urgency срочность сбора остатка
type Urgency string

const (
	UrgencyNone   Urgency = "none"
	UrgencySoon   Urgency = "soon"
	UrgencyUrgent Urgency = "urgent"
)

// PaymentMismatchWarning не блокирующее предупреждение: cash + card не сходится с paidAmount
type PaymentMismatchWarning struct {
	PaidAmount  float64
	CashPayment float64
	CardPayment float64
	Difference  float64 // (cash + card) - paid
}

// ReconciliationResult результат сверки чартера
type ReconciliationResult struct {
	Locator           string
	OutstandingAmount float64
	Status            ReconciliationStatus
	DaysUntilCharter  int
	Urgency           Urgency
	ContractSigned    bool
	PaymentMismatch   *PaymentMismatchWarning
}

// NeedsAction возвращает true, если по чартеру требуется действие (сбор остатка)
func (r *ReconciliationResult) NeedsAction() bool {
	return r.Urgency != UrgencyNone || r.Status == ReconciliationOverdue
}

// HasWarnings возвращает true, если есть предупреждения для ручной проверки
func (r *ReconciliationResult) HasWarnings() bool {
	return r.PaymentMismatch != nil
}
