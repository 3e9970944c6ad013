package reconcile_charter

import (
	"fmt"

	"github.com/m04kA/SMC-CharterService/internal/domain"
)

// Policy пороги сверки. Задаются конфигурацией сервиса.
type Policy struct {
	UrgentWithinDays int     // urgent, если до чартера 0..UrgentWithinDays дней
	SoonWithinDays   int     // soon, если до чартера (UrgentWithinDays, SoonWithinDays] дней
	BalanceDueDays   int     // overdue, если до чартера меньше BalanceDueDays дней и остаток не оплачен
	MismatchEpsilon  float64 // допустимое расхождение cash + card и paidAmount
	LookbackDays     int     // глубина поиска просроченных чартеров для списка действий
}

// DefaultPolicy политика по умолчанию
func DefaultPolicy() Policy {
	return Policy{
		UrgentWithinDays: domain.DefaultUrgentWithinDays,
		SoonWithinDays:   domain.DefaultSoonWithinDays,
		BalanceDueDays:   domain.DefaultBalanceDueDays,
		MismatchEpsilon:  domain.DefaultPaymentMismatchEpsilon,
		LookbackDays:     domain.DefaultPaymentActionsLookbackDays,
	}
}

// Validate проверяет согласованность порогов
func (p Policy) Validate() error {
	if p.UrgentWithinDays < 0 {
		return fmt.Errorf("%w: urgent_within_days must not be negative", domain.ErrConfiguration)
	}
	if p.SoonWithinDays < p.UrgentWithinDays {
		return fmt.Errorf("%w: soon_within_days (%d) is less than urgent_within_days (%d)",
			domain.ErrConfiguration, p.SoonWithinDays, p.UrgentWithinDays)
	}
	if p.MismatchEpsilon < 0 {
		return fmt.Errorf("%w: payment_mismatch_epsilon must not be negative", domain.ErrConfiguration)
	}
	if p.LookbackDays < 0 {
		return fmt.Errorf("%w: payment_actions_lookback_days must not be negative", domain.ErrConfiguration)
	}
	return nil
}
