package reconcile_charter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CharterService/internal/domain"
	"github.com/m04kA/SMC-CharterService/pkg/ptr"
)

var asOf = time.Date(2024, time.July, 1, 10, 0, 0, 0, time.UTC)

func charterInDays(days int, total, paid float64) *domain.Charter {
	return &domain.Charter{
		Locator:      "LOC-1",
		StartDate:    asOf.AddDate(0, 0, days),
		CharterTotal: total,
		PaidAmount:   paid,
	}
}

func TestReconcile_PaidInFullWithSplitMismatch(t *testing.T) {
	charter := charterInDays(10, 1000, 1000)
	charter.CashPayment = ptr.Ptr(400.0)
	charter.CardPayment = ptr.Ptr(550.0)

	got := Reconcile(charter, asOf, DefaultPolicy())

	assert.Equal(t, 0.0, got.OutstandingAmount)
	assert.Equal(t, domain.ReconciliationReconciled, got.Status)
	require.NotNil(t, got.PaymentMismatch)
	assert.Equal(t, &domain.PaymentMismatchWarning{
		PaidAmount:  1000,
		CashPayment: 400,
		CardPayment: 550,
		Difference:  -50,
	}, got.PaymentMismatch)
	assert.True(t, got.HasWarnings())
}

func TestReconcile_UnpaidTwoDaysOutIsUrgent(t *testing.T) {
	got := Reconcile(charterInDays(2, 500, 0), asOf, DefaultPolicy())

	assert.Equal(t, 500.0, got.OutstandingAmount)
	assert.Equal(t, 2, got.DaysUntilCharter)
	assert.Equal(t, domain.UrgencyUrgent, got.Urgency)
	assert.Equal(t, domain.ReconciliationPending, got.Status)
	assert.True(t, got.NeedsAction())
}

func TestReconcile_Urgency(t *testing.T) {
	tests := []struct {
		name        string
		days        int
		total, paid float64
		wantUrgency domain.Urgency
		wantStatus  domain.ReconciliationStatus
	}{
		{name: "departs today", days: 0, total: 500, paid: 100, wantUrgency: domain.UrgencyUrgent, wantStatus: domain.ReconciliationPending},
		{name: "urgent boundary", days: 3, total: 500, paid: 100, wantUrgency: domain.UrgencyUrgent, wantStatus: domain.ReconciliationPending},
		{name: "soon lower boundary", days: 4, total: 500, paid: 100, wantUrgency: domain.UrgencySoon, wantStatus: domain.ReconciliationPending},
		{name: "soon upper boundary", days: 7, total: 500, paid: 100, wantUrgency: domain.UrgencySoon, wantStatus: domain.ReconciliationPending},
		{name: "far away", days: 8, total: 500, paid: 100, wantUrgency: domain.UrgencyNone, wantStatus: domain.ReconciliationPending},
		{name: "already departed", days: -1, total: 500, paid: 100, wantUrgency: domain.UrgencyNone, wantStatus: domain.ReconciliationOverdue},
		{name: "paid in full", days: 1, total: 500, paid: 500, wantUrgency: domain.UrgencyNone, wantStatus: domain.ReconciliationReconciled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Reconcile(charterInDays(tt.days, tt.total, tt.paid), asOf, DefaultPolicy())
			assert.Equal(t, tt.days, got.DaysUntilCharter)
			assert.Equal(t, tt.wantUrgency, got.Urgency)
			assert.Equal(t, tt.wantStatus, got.Status)
		})
	}
}

func TestReconcile_OverpaymentIsNotNegative(t *testing.T) {
	charter := charterInDays(5, 800, 1000)
	charter.OutstandingAmount = -200

	got := Reconcile(charter, asOf, DefaultPolicy())

	assert.Equal(t, 0.0, got.OutstandingAmount)
	assert.Equal(t, domain.ReconciliationReconciled, got.Status)
}

func TestReconcile_IgnoresStoredOutstanding(t *testing.T) {
	charter := charterInDays(5, 1000, 250)
	charter.OutstandingAmount = 1000

	got := Reconcile(charter, asOf, DefaultPolicy())
	assert.Equal(t, 750.0, got.OutstandingAmount)
}

func TestReconcile_RoundsToCents(t *testing.T) {
	got := Reconcile(charterInDays(5, 100.1, 0.2), asOf, DefaultPolicy())
	assert.Equal(t, 99.9, got.OutstandingAmount)
}

func TestReconcile_PaymentSplit(t *testing.T) {
	t.Run("not tracked", func(t *testing.T) {
		got := Reconcile(charterInDays(5, 1000, 600), asOf, DefaultPolicy())
		assert.Nil(t, got.PaymentMismatch)
	})

	t.Run("within epsilon", func(t *testing.T) {
		charter := charterInDays(5, 1000, 600)
		charter.CashPayment = ptr.Ptr(300.0)
		charter.CardPayment = ptr.Ptr(300.01)

		got := Reconcile(charter, asOf, DefaultPolicy())
		assert.Nil(t, got.PaymentMismatch)
	})

	t.Run("only card tracked", func(t *testing.T) {
		charter := charterInDays(5, 1000, 600)
		charter.CardPayment = ptr.Ptr(500.0)

		got := Reconcile(charter, asOf, DefaultPolicy())
		require.NotNil(t, got.PaymentMismatch)
		assert.Equal(t, 0.0, got.PaymentMismatch.CashPayment)
		assert.Equal(t, -100.0, got.PaymentMismatch.Difference)
	})
}

func TestReconcile_BalanceDuePolicy(t *testing.T) {
	policy := DefaultPolicy()
	policy.BalanceDueDays = 14

	got := Reconcile(charterInDays(10, 1000, 500), asOf, policy)
	assert.Equal(t, domain.ReconciliationOverdue, got.Status)
	assert.Equal(t, domain.UrgencyNone, got.Urgency)
	assert.True(t, got.NeedsAction())
}

func TestDaysUntil(t *testing.T) {
	assert.Equal(t, 1, DaysUntil(asOf.Add(2*time.Hour), asOf))
	assert.Equal(t, 0, DaysUntil(asOf, asOf))
	assert.Equal(t, 0, DaysUntil(asOf.Add(-2*time.Hour), asOf))
	assert.Equal(t, -1, DaysUntil(asOf.Add(-25*time.Hour), asOf))
	assert.Equal(t, 2, DaysUntil(asOf.Add(36*time.Hour), asOf))
}

func TestPolicy_Validate(t *testing.T) {
	assert.NoError(t, DefaultPolicy().Validate())

	bad := DefaultPolicy()
	bad.SoonWithinDays = 1
	assert.ErrorIs(t, bad.Validate(), domain.ErrConfiguration)

	bad = DefaultPolicy()
	bad.MismatchEpsilon = -0.5
	assert.ErrorIs(t, bad.Validate(), domain.ErrConfiguration)
}
