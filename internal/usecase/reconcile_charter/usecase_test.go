package reconcile_charter

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CharterService/internal/domain"
	charterRepo "github.com/m04kA/SMC-CharterService/internal/infra/storage/charter"
	"github.com/m04kA/SMC-CharterService/pkg/logger"
	"github.com/m04kA/SMC-CharterService/pkg/ptr"
)

type fakeCharterRepo struct {
	charters []*domain.Charter
	err      error

	from, to time.Time
}

func (f *fakeCharterRepo) GetByLocator(_ context.Context, locator string) (*domain.Charter, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, c := range f.charters {
		if c.Locator == locator {
			return c, nil
		}
	}
	return nil, charterRepo.ErrCharterNotFound
}

func (f *fakeCharterRepo) GetWithBalanceBetween(_ context.Context, from, to time.Time) ([]*domain.Charter, error) {
	f.from, f.to = from, to
	if f.err != nil {
		return nil, f.err
	}
	return f.charters, nil
}

type fakeMetrics struct {
	mismatches int
	calls      int
}

func (f *fakeMetrics) ObserveReconciliation(_, _ string, mismatch bool) {
	f.calls++
	if mismatch {
		f.mismatches++
	}
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

func newTestUseCase(t *testing.T, repo CharterRepository) (*UseCase, *fakeMetrics) {
	t.Helper()
	m := &fakeMetrics{}
	uc, err := NewUseCase(repo, DefaultPolicy(), m, logger.Nop{})
	require.NoError(t, err)
	uc.timeProvider = fixedTime{now: asOf}
	return uc, m
}

func named(locator string, c *domain.Charter) *domain.Charter {
	c.Locator = locator
	return c
}

func TestNewUseCase_InvalidPolicy(t *testing.T) {
	policy := DefaultPolicy()
	policy.UrgentWithinDays = -1

	_, err := NewUseCase(&fakeCharterRepo{}, policy, &fakeMetrics{}, logger.Nop{})
	assert.ErrorIs(t, err, domain.ErrConfiguration)
}

func TestUseCase_Execute(t *testing.T) {
	charter := named("AB12", charterInDays(2, 1000, 1000))
	charter.CashPayment = ptr.Ptr(400.0)
	charter.CardPayment = ptr.Ptr(550.0)

	uc, m := newTestUseCase(t, &fakeCharterRepo{charters: []*domain.Charter{charter}})

	resp, err := uc.Execute(context.Background(), &Request{Locator: " AB12 "})
	require.NoError(t, err)

	assert.Equal(t, asOf, resp.AsOf)
	assert.Same(t, charter, resp.Charter)
	assert.Equal(t, domain.ReconciliationReconciled, resp.Result.Status)
	assert.NotNil(t, resp.Result.PaymentMismatch)
	assert.Equal(t, 1, m.mismatches)
}

func TestUseCase_Execute_ExplicitAsOf(t *testing.T) {
	charter := named("AB12", charterInDays(2, 500, 0))
	uc, _ := newTestUseCase(t, &fakeCharterRepo{charters: []*domain.Charter{charter}})

	resp, err := uc.Execute(context.Background(), &Request{Locator: "AB12", AsOf: asOf.AddDate(0, 0, -10)})
	require.NoError(t, err)

	assert.Equal(t, 12, resp.Result.DaysUntilCharter)
	assert.Equal(t, domain.UrgencyNone, resp.Result.Urgency)
}

func TestUseCase_Execute_Errors(t *testing.T) {
	tests := []struct {
		name    string
		repo    *fakeCharterRepo
		req     *Request
		wantErr error
	}{
		{name: "empty locator", repo: &fakeCharterRepo{}, req: &Request{Locator: "  "}, wantErr: ErrInvalidInput},
		{name: "not found", repo: &fakeCharterRepo{}, req: &Request{Locator: "ZZ"}, wantErr: ErrCharterNotFound},
		{name: "repository failure", repo: &fakeCharterRepo{err: errors.New("timeout")}, req: &Request{Locator: "ZZ"}, wantErr: ErrInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, _ := newTestUseCase(t, tt.repo)
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestUseCase_PaymentActions(t *testing.T) {
	repo := &fakeCharterRepo{charters: []*domain.Charter{
		named("SOON", charterInDays(6, 900, 300)),
		named("FAR", charterInDays(7, 900, 900)),
		named("URGENT", charterInDays(1, 500, 0)),
		named("PAST", charterInDays(-5, 700, 200)),
	}}
	uc, m := newTestUseCase(t, repo)

	resp, err := uc.PaymentActions(context.Background(), &PaymentActionsRequest{})
	require.NoError(t, err)

	assert.Equal(t, asOf.AddDate(0, 0, -domain.DefaultPaymentActionsLookbackDays), repo.from)
	assert.Equal(t, asOf.AddDate(0, 0, domain.DefaultSoonWithinDays), repo.to)

	locators := make([]string, 0, len(resp.Actions))
	for _, action := range resp.Actions {
		locators = append(locators, action.Result.Locator)
	}
	assert.Equal(t, []string{"PAST", "URGENT", "SOON"}, locators)
	assert.Equal(t, domain.ReconciliationOverdue, resp.Actions[0].Result.Status)
	assert.Equal(t, 4, m.calls)
}

func TestUseCase_PaymentActions_RepositoryFailure(t *testing.T) {
	uc, _ := newTestUseCase(t, &fakeCharterRepo{err: errors.New("timeout")})

	_, err := uc.PaymentActions(context.Background(), &PaymentActionsRequest{AsOf: asOf})
	assert.ErrorIs(t, err, ErrInternal)
}
