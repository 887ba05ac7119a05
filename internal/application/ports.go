package application

import (
	"context"
	"time"

	"github.com/DanielPopoola/ficmart-payment-processor/internal/domain"
	"github.com/shopspring/decimal"
)

// AuthorizationResult is what the gateway hands back for a successful hold.
type AuthorizationResult struct {
	TransactionID string
}

// CaptureResult is what the gateway hands back for a settled capture.
type CaptureResult struct {
	CaptureID string
}

// PaymentGateway is the port for the external payment gateway.
// Failures should be *GatewayError.
type PaymentGateway interface {
	Authorize(ctx context.Context, amount decimal.Decimal, currency string, card domain.CardDetails) (*AuthorizationResult, error)
	Capture(ctx context.Context, transactionID string, amount decimal.Decimal) (*CaptureResult, error)
}

// OrderRepository is the port for persistence.
// Save inserts and assigns the id on first call, updates afterwards.
type OrderRepository interface {
	Save(ctx context.Context, order *domain.Order) (*domain.Order, error)
}

// Notifier sends the customer confirmation. Best-effort.
type Notifier interface {
	SendConfirmation(ctx context.Context, order *domain.Order, email string) (bool, error)
}

// Payment outcomes reported to PaymentMetrics.
const (
	OutcomeSuccess    = "success"
	OutcomeValidation = "validation_error"
	OutcomeGateway    = "gateway_error"
	OutcomeStorage    = "storage_error"
	OutcomeUnexpected = "unexpected_error"
)

type PaymentMetrics interface {
	RecordPayment(outcome string, duration time.Duration)
	RecordNotificationFailure(reason string)
}

// NopMetrics discards everything.
type NopMetrics struct{}

func (NopMetrics) RecordPayment(string, time.Duration) {}
func (NopMetrics) RecordNotificationFailure(string)    {}
