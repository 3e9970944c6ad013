package scheduler

import (
	"context"

	reconcileCharter "github.com/m04kA/SMC-CharterService/internal/usecase/reconcile_charter"
)

// PaymentActionsUseCase источник списка чартеров, требующих сбора остатка
type PaymentActionsUseCase interface {
	PaymentActions(ctx context.Context, req *reconcileCharter.PaymentActionsRequest) (*reconcileCharter.PaymentActionsResponse, error)
}

// Metrics интерфейс метрик дайджеста
type Metrics interface {
	SetPaymentActions(urgency string, count int)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
