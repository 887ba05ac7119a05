package testhelpers

import (
	"testing"

	"github.com/DanielPopoola/ficmart-payment-processor/internal/application/validation"
	"github.com/DanielPopoola/ficmart-payment-processor/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

const (
	DefaultCardNumber = "4111111111111111"
	DefaultEmail      = "test@example.com"
)

// ValidPayment returns a raw payment that passes validation
func ValidPayment() validation.RawPayment {
	return validation.RawPayment{
		"amount":        100.00,
		"currency":      "USD",
		"cardNumber":    DefaultCardNumber,
		"expiryMonth":   "12",
		"expiryYear":    "2025",
		"cvv":           "123",
		"customerEmail": DefaultEmail,
	}
}

// DefaultCardDetails matches the card in ValidPayment
func DefaultCardDetails() domain.CardDetails {
	return domain.CardDetails{
		Number:      DefaultCardNumber,
		ExpiryMonth: "12",
		ExpiryYear:  "2025",
		CVV:         "123",
	}
}

// NewPendingOrder returns an unsaved order for 100.00 USD
func NewPendingOrder(t *testing.T) *domain.Order {
	t.Helper()
	order, err := domain.NewOrder(decimal.RequireFromString("100.00"), "USD", DefaultCardNumber)
	require.NoError(t, err)
	return order
}

// NewAuthorizedOrder returns an unsaved order authorized under transactionID
func NewAuthorizedOrder(t *testing.T, transactionID string) *domain.Order {
	t.Helper()
	order := NewPendingOrder(t)
	require.NoError(t, order.MarkAuthorized(transactionID))
	return order
}

// NewCompletedOrder returns an unsaved completed order
func NewCompletedOrder(t *testing.T, transactionID string) *domain.Order {
	t.Helper()
	order := NewAuthorizedOrder(t, transactionID)
	require.NoError(t, order.MarkCompleted())
	return order
}
