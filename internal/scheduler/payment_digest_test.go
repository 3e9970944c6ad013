package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CharterService/internal/domain"
	reconcileCharter "github.com/m04kA/SMC-CharterService/internal/usecase/reconcile_charter"
	"github.com/m04kA/SMC-CharterService/pkg/logger"
)

type fakeUseCase struct {
	gotAsOf time.Time
	resp    *reconcileCharter.PaymentActionsResponse
	err     error
}

func (f *fakeUseCase) PaymentActions(_ context.Context, req *reconcileCharter.PaymentActionsRequest) (*reconcileCharter.PaymentActionsResponse, error) {
	f.gotAsOf = req.AsOf
	return f.resp, f.err
}

type fakeMetrics struct {
	gauges map[string]int
}

func (f *fakeMetrics) SetPaymentActions(urgency string, count int) {
	if f.gauges == nil {
		f.gauges = make(map[string]int)
	}
	f.gauges[urgency] = count
}

func action(locator string, status domain.ReconciliationStatus, urgency domain.Urgency, days int) reconcileCharter.PaymentAction {
	return reconcileCharter.PaymentAction{
		Charter: &domain.Charter{Locator: locator, BoatName: "Aurora"},
		Result: domain.ReconciliationResult{
			Locator:          locator,
			Status:           status,
			Urgency:          urgency,
			DaysUntilCharter: days,
		},
	}
}

func TestPaymentDigest_Run(t *testing.T) {
	asOf := time.Date(2024, 8, 1, 8, 0, 0, 0, time.UTC)
	uc := &fakeUseCase{resp: &reconcileCharter.PaymentActionsResponse{
		AsOf: asOf,
		Actions: []reconcileCharter.PaymentAction{
			action("YC-1", domain.ReconciliationOverdue, domain.UrgencyNone, -2),
			action("YC-2", domain.ReconciliationPending, domain.UrgencyUrgent, 1),
			action("YC-3", domain.ReconciliationPending, domain.UrgencyUrgent, 3),
			action("YC-4", domain.ReconciliationPending, domain.UrgencySoon, 6),
		},
	}}
	m := &fakeMetrics{}
	d := NewPaymentDigest("", nil, uc, m, logger.Nop{})

	summary, err := d.Run(context.Background(), asOf)
	require.NoError(t, err)

	assert.True(t, uc.gotAsOf.Equal(asOf))
	assert.Equal(t, 4, summary.Total)
	assert.Equal(t, map[string]int{"urgent": 2, "soon": 1, "overdue": 1}, summary.ByLabel)
	assert.Equal(t, map[string]int{"urgent": 2, "soon": 1, "overdue": 1}, m.gauges)
}

func TestPaymentDigest_Run_ResetsGaugesWhenEmpty(t *testing.T) {
	m := &fakeMetrics{gauges: map[string]int{"urgent": 5, "soon": 2, "overdue": 1}}
	uc := &fakeUseCase{resp: &reconcileCharter.PaymentActionsResponse{AsOf: time.Now()}}
	d := NewPaymentDigest("", nil, uc, m, logger.Nop{})

	summary, err := d.Run(context.Background(), time.Time{})
	require.NoError(t, err)

	assert.Zero(t, summary.Total)
	assert.Equal(t, map[string]int{"urgent": 0, "soon": 0, "overdue": 0}, m.gauges)
}

func TestPaymentDigest_Run_Error(t *testing.T) {
	m := &fakeMetrics{}
	d := NewPaymentDigest("", nil, &fakeUseCase{err: errors.New("db down")}, m, logger.Nop{})

	_, err := d.Run(context.Background(), time.Time{})
	assert.Error(t, err)
	assert.Empty(t, m.gauges)
}

func TestPaymentDigest_StartStop(t *testing.T) {
	t.Run("valid schedule", func(t *testing.T) {
		d := NewPaymentDigest("0 30 7 * * *", time.UTC, &fakeUseCase{}, &fakeMetrics{}, logger.Nop{})
		require.NoError(t, d.Start())
		d.Stop()
	})

	t.Run("invalid schedule", func(t *testing.T) {
		d := NewPaymentDigest("every morning", time.UTC, &fakeUseCase{}, &fakeMetrics{}, logger.Nop{})
		err := d.Start()
		assert.ErrorIs(t, err, domain.ErrConfiguration)
	})
}

func TestValidateSchedule(t *testing.T) {
	for _, schedule := range []string{DefaultDigestSchedule, "0 */15 9-18 * * MON-FRI", "@daily", "@every 6h"} {
		assert.NoError(t, ValidateSchedule(schedule), schedule)
	}
	for _, schedule := range []string{"", "0 8 * * *", "61 0 8 * * *", "daily"} {
		assert.ErrorIs(t, ValidateSchedule(schedule), domain.ErrConfiguration, schedule)
	}
}
