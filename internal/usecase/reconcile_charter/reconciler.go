package reconcile_charter

import (
	"math"
	"time"

	"github.com/m04kA/SMC-CharterService/internal/domain"
	"github.com/m04kA/SMC-CharterService/pkg/ptr"
)

const day = 24 * time.Hour

// Reconcile сверяет платежи чартера на момент asOf.
//
// Хранимый OutstandingAmount игнорируется: остаток всегда пересчитывается
// из CharterTotal и PaidAmount и не бывает отрицательным (переплата = 0).
// Расхождение cash + card с PaidAmount не ошибка, а предупреждение в результате.
func Reconcile(charter *domain.Charter, asOf time.Time, policy Policy) domain.ReconciliationResult {
	outstanding := Outstanding(charter.CharterTotal, charter.PaidAmount)
	days := DaysUntil(charter.StartDate, asOf)

	return domain.ReconciliationResult{
		Locator:           charter.Locator,
		OutstandingAmount: outstanding,
		Status:            statusFor(outstanding, days, policy),
		DaysUntilCharter:  days,
		Urgency:           urgencyFor(outstanding, days, policy),
		ContractSigned:    charter.ContractSigned,
		PaymentMismatch:   paymentMismatch(charter, policy.MismatchEpsilon),
	}
}

// Outstanding неоплаченный остаток: max(0, total - paid), округленный до центов
func Outstanding(total, paid float64) float64 {
	outstanding := roundCents(total - paid)
	if outstanding < 0 || math.IsNaN(outstanding) {
		return 0
	}
	return outstanding
}

// DaysUntil число дней до начала чартера с округлением вверх.
// Отрицательное значение означает, что чартер уже начался.
func DaysUntil(start, asOf time.Time) int {
	return int(math.Ceil(float64(start.Sub(asOf)) / float64(day)))
}

func urgencyFor(outstanding float64, days int, policy Policy) domain.Urgency {
	// Сбор остатка после отправления - отдельный процесс
	if outstanding <= 0 || days < 0 {
		return domain.UrgencyNone
	}

	switch {
	case days <= policy.UrgentWithinDays:
		return domain.UrgencyUrgent
	case days <= policy.SoonWithinDays:
		return domain.UrgencySoon
	default:
		return domain.UrgencyNone
	}
}

func statusFor(outstanding float64, days int, policy Policy) domain.ReconciliationStatus {
	switch {
	case outstanding == 0:
		return domain.ReconciliationReconciled
	case days < policy.BalanceDueDays:
		return domain.ReconciliationOverdue
	default:
		return domain.ReconciliationPending
	}
}

func paymentMismatch(charter *domain.Charter, epsilon float64) *domain.PaymentMismatchWarning {
	if !charter.TracksPaymentSplit() {
		return nil
	}

	cash := ptr.Deref(charter.CashPayment, 0)
	card := ptr.Deref(charter.CardPayment, 0)
	diff := roundCents(cash + card - charter.PaidAmount)

	if math.Abs(diff) <= epsilon {
		return nil
	}

	return &domain.PaymentMismatchWarning{
		PaidAmount:  charter.PaidAmount,
		CashPayment: cash,
		CardPayment: card,
		Difference:  diff,
	}
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
