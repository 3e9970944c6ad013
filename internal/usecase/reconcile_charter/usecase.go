package reconcile_charter

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/m04kA/SMC-CharterService/internal/domain"
	charterRepo "github.com/m04kA/SMC-CharterService/internal/infra/storage/charter"
)

// UseCase use case сверки платежей по чартерам
type UseCase struct {
	charterRepo  CharterRepository
	policy       Policy
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	charterRepo CharterRepository,
	policy Policy,
	metrics Metrics,
	logger Logger,
) (*UseCase, error) {
	if err := policy.Validate(); err != nil {
		return nil, err
	}

	return &UseCase{
		charterRepo:  charterRepo,
		policy:       policy,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}, nil
}

// Execute выполняет сверку одного чартера
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ReconcileCharter: locator=%s", req.Locator)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ReconcileCharter: validation failed: %v", err)
		return nil, err
	}

	asOf := uc.asOf(req.AsOf)
	locator := strings.TrimSpace(req.Locator)

	// 2. Получаем чартер
	charter, err := uc.charterRepo.GetByLocator(ctx, locator)
	if err != nil {
		if errors.Is(err, charterRepo.ErrCharterNotFound) {
			uc.logger.Warn("ReconcileCharter: charter locator=%s not found", locator)
			return nil, ErrCharterNotFound
		}
		uc.logger.Error("ReconcileCharter: failed to get charter locator=%s: %v", locator, err)
		return nil, fmt.Errorf("%w: failed to get charter: %v", ErrInternal, err)
	}

	// 3. Сверяем
	result := uc.reconcile(charter, asOf)

	uc.logger.Info("ReconcileCharter: locator=%s, outstanding=%.2f, status=%s, urgency=%s, days=%d",
		locator, result.OutstandingAmount, result.Status, result.Urgency, result.DaysUntilCharter)

	return &Response{
		Charter: charter,
		Result:  result,
		AsOf:    asOf,
	}, nil
}

// PaymentActions возвращает чартеры, по которым нужно собрать остаток.
// Смотрит на чартеры, начинающиеся в [asOf - LookbackDays, asOf + SoonWithinDays].
func (uc *UseCase) PaymentActions(ctx context.Context, req *PaymentActionsRequest) (*PaymentActionsResponse, error) {
	asOf := uc.asOf(req.AsOf)
	from := asOf.AddDate(0, 0, -uc.policy.LookbackDays)
	to := asOf.AddDate(0, 0, uc.policy.SoonWithinDays)

	uc.logger.Info("PaymentActions: asOf=%s, window=[%s, %s]",
		asOf.Format(time.RFC3339), from.Format(domain.DateFormat), to.Format(domain.DateFormat))

	charters, err := uc.charterRepo.GetWithBalanceBetween(ctx, from, to)
	if err != nil {
		uc.logger.Error("PaymentActions: failed to get charters: %v", err)
		return nil, fmt.Errorf("%w: failed to get charters: %v", ErrInternal, err)
	}

	actions := make([]PaymentAction, 0, len(charters))
	for _, charter := range charters {
		result := uc.reconcile(charter, asOf)
		if !result.NeedsAction() {
			continue
		}
		actions = append(actions, PaymentAction{Charter: charter, Result: result})
	}

	sort.SliceStable(actions, func(i, j int) bool {
		if actions[i].Result.DaysUntilCharter != actions[j].Result.DaysUntilCharter {
			return actions[i].Result.DaysUntilCharter < actions[j].Result.DaysUntilCharter
		}
		return actions[i].Result.Locator < actions[j].Result.Locator
	})

	uc.logger.Info("PaymentActions: %d of %d charter(s) need action", len(actions), len(charters))

	return &PaymentActionsResponse{
		AsOf:    asOf,
		Actions: actions,
	}, nil
}

func (uc *UseCase) reconcile(charter *domain.Charter, asOf time.Time) domain.ReconciliationResult {
	result := Reconcile(charter, asOf, uc.policy)

	if result.PaymentMismatch != nil {
		uc.logger.Warn("ReconcileCharter: payment split mismatch for locator=%s: cash=%.2f + card=%.2f vs paid=%.2f (diff %.2f)",
			charter.Locator,
			result.PaymentMismatch.CashPayment,
			result.PaymentMismatch.CardPayment,
			result.PaymentMismatch.PaidAmount,
			result.PaymentMismatch.Difference,
		)
	}

	uc.metrics.ObserveReconciliation(string(result.Status), string(result.Urgency), result.HasWarnings())
	return result
}

func (uc *UseCase) asOf(requested time.Time) time.Time {
	if requested.IsZero() {
		return uc.timeProvider.Now()
	}
	return requested
}
