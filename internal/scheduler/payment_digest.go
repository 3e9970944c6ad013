package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/m04kA/SMC-CharterService/internal/domain"
	reconcileCharter "github.com/m04kA/SMC-CharterService/internal/usecase/reconcile_charter"
)

// DefaultDigestSchedule каждый день в 08:00 (формат с секундами)
const DefaultDigestSchedule = "0 0 8 * * *"

// digestTimeout ограничение на один прогон
const digestTimeout = time.Minute

// scheduleParser тот же формат, что у cron.WithSeconds()
var scheduleParser = cron.NewParser(
	cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// digestBuckets метки gauge: срочность либо просрочка
var digestBuckets = []string{
	string(domain.UrgencyUrgent),
	string(domain.UrgencySoon),
	string(domain.ReconciliationOverdue),
}

// DigestSummary итог одного прогона
type DigestSummary struct {
	AsOf    time.Time
	Total   int
	ByLabel map[string]int
}

// PaymentDigest по расписанию пересчитывает чартеры с несобранным остатком,
// пишет сводку в лог и выставляет gauge по срочности.
type PaymentDigest struct {
	cron     *cron.Cron
	schedule string
	useCase  PaymentActionsUseCase
	metrics  Metrics
	logger   Logger
}

// NewPaymentDigest создает планировщик. location - часовой пояс расписания.
func NewPaymentDigest(
	schedule string,
	location *time.Location,
	useCase PaymentActionsUseCase,
	metrics Metrics,
	logger Logger,
) *PaymentDigest {
	if schedule == "" {
		schedule = DefaultDigestSchedule
	}
	if location == nil {
		location = time.UTC
	}

	return &PaymentDigest{
		cron:     cron.New(cron.WithSeconds(), cron.WithLocation(location)),
		schedule: schedule,
		useCase:  useCase,
		metrics:  metrics,
		logger:   logger,
	}
}

// ValidateSchedule проверяет cron-выражение дайджеста (с секундами или @every/@daily)
func ValidateSchedule(schedule string) error {
	if _, err := scheduleParser.Parse(schedule); err != nil {
		return fmt.Errorf("%w: invalid digest schedule %q: %v", domain.ErrConfiguration, schedule, err)
	}
	return nil
}

// Start регистрирует задачу и запускает планировщик
func (d *PaymentDigest) Start() error {
	if err := ValidateSchedule(d.schedule); err != nil {
		return err
	}

	if _, err := d.cron.AddFunc(d.schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), digestTimeout)
		defer cancel()

		if _, err := d.Run(ctx, time.Time{}); err != nil {
			d.logger.Error("PaymentDigest: run failed: %v", err)
		}
	}); err != nil {
		return fmt.Errorf("%w: invalid digest schedule %q: %v", domain.ErrConfiguration, d.schedule, err)
	}

	d.cron.Start()
	d.logger.Info("PaymentDigest: scheduler started (schedule=%q)", d.schedule)
	return nil
}

// Stop останавливает планировщик и ждет завершения текущего прогона
func (d *PaymentDigest) Stop() {
	ctx := d.cron.Stop()
	<-ctx.Done()
	d.logger.Info("PaymentDigest: scheduler stopped")
}

// Run выполняет один прогон. Zero asOf = текущее время.
func (d *PaymentDigest) Run(ctx context.Context, asOf time.Time) (*DigestSummary, error) {
	resp, err := d.useCase.PaymentActions(ctx, &reconcileCharter.PaymentActionsRequest{AsOf: asOf})
	if err != nil {
		return nil, err
	}

	summary := &DigestSummary{
		AsOf:    resp.AsOf,
		Total:   len(resp.Actions),
		ByLabel: make(map[string]int, len(digestBuckets)),
	}
	for _, bucket := range digestBuckets {
		summary.ByLabel[bucket] = 0
	}

	for _, action := range resp.Actions {
		summary.ByLabel[digestLabel(action.Result)]++
	}

	for _, bucket := range digestBuckets {
		d.metrics.SetPaymentActions(bucket, summary.ByLabel[bucket])
	}

	if summary.Total == 0 {
		d.logger.Info("PaymentDigest: no charters need balance collection as of %s", summary.AsOf.Format(domain.DateFormat))
		return summary, nil
	}

	d.logger.Warn("PaymentDigest: %d charter(s) need balance collection as of %s (urgent=%d, soon=%d, overdue=%d)",
		summary.Total, summary.AsOf.Format(domain.DateFormat),
		summary.ByLabel[string(domain.UrgencyUrgent)],
		summary.ByLabel[string(domain.UrgencySoon)],
		summary.ByLabel[string(domain.ReconciliationOverdue)],
	)
	for _, action := range resp.Actions {
		d.logger.Info("PaymentDigest: locator=%s, boat=%s, days=%d, outstanding=%.2f, contract_signed=%t",
			action.Result.Locator, action.Charter.BoatName, action.Result.DaysUntilCharter,
			action.Result.OutstandingAmount, action.Result.ContractSigned)
	}

	return summary, nil
}

func digestLabel(result domain.ReconciliationResult) string {
	if result.Status == domain.ReconciliationOverdue {
		return string(domain.ReconciliationOverdue)
	}
	return string(result.Urgency)
}
