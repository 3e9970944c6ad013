package reconcile_charter

import (
	"context"

	reconcileCharter "github.com/m04kA/SMC-CharterService/internal/usecase/reconcile_charter"
)

type ReconcileCharterUseCase interface {
	Execute(ctx context.Context, req *reconcileCharter.Request) (*reconcileCharter.Response, error)
	PaymentActions(ctx context.Context, req *reconcileCharter.PaymentActionsRequest) (*reconcileCharter.PaymentActionsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
