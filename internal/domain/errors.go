package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidTransition    = errors.New("invalid status transition")
	ErrInvalidAmount        = errors.New("amount must be positive")
	ErrInvalidCurrency      = errors.New("currency must be a 3-letter code")
	ErrMissingCardNumber    = errors.New("card number is required")
	ErrMissingTransactionID = errors.New("gateway transaction ID is required")
	ErrInvalidID            = errors.New("order ID must be positive")
	ErrIDAlreadyAssigned    = errors.New("order ID already assigned")
	ErrOrderNotFound        = errors.New("order not found")
)

// TransitionError carries the statuses of a rejected transition
type TransitionError struct {
	From OrderStatus
	To   OrderStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot transition from %s to %s", e.From, e.To)
}

// Unwrap returns ErrInvalidTransition for errors.Is support
func (e *TransitionError) Unwrap() error {
	return ErrInvalidTransition
}

func NewInvalidTransitionError(from, to OrderStatus) *TransitionError {
	return &TransitionError{From: from, To: to}
}
