// Package domain encodes an order (one payment attempt) and its lifecycle
package domain

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus represents the current state of an order in its lifecycle
type OrderStatus string

const (
	StatusPendingAuthorization OrderStatus = "pending_authorization"
	StatusAuthorized           OrderStatus = "authorized"
	StatusCompleted            OrderStatus = "completed"
	StatusFailedGateway        OrderStatus = "failed_gateway"
	StatusFailedInternalDB     OrderStatus = "failed_internal_db"
	StatusFailedUnexpected     OrderStatus = "failed_unexpected"
)

type Order struct {
	id                   int64
	amount               decimal.Decimal
	currency             string
	cardNumber           string
	status               OrderStatus
	gatewayTransactionID string
	createdAt            time.Time
	updatedAt            time.Time
}

// NewOrder creates an order in pending_authorization.
func NewOrder(amount decimal.Decimal, currency string, cardNumber string) (*Order, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	if !IsCurrencyCode(currency) {
		return nil, ErrInvalidCurrency
	}
	if cardNumber == "" {
		return nil, ErrMissingCardNumber
	}

	now := time.Now().UTC()
	return &Order{
		amount:     amount,
		currency:   currency,
		cardNumber: cardNumber,
		status:     StatusPendingAuthorization,
		createdAt:  now,
		updatedAt:  now,
	}, nil
}

// Reconstitute - Special constructor for loading from storage
func Reconstitute(
	id int64,
	amount decimal.Decimal,
	currency string,
	cardNumber string,
	status OrderStatus,
	gatewayTransactionID string,
	createdAt, updatedAt time.Time,
) *Order {
	return &Order{
		id:                   id,
		amount:               amount,
		currency:             currency,
		cardNumber:           cardNumber,
		status:               status,
		gatewayTransactionID: gatewayTransactionID,
		createdAt:            createdAt,
		updatedAt:            updatedAt,
	}
}

func (o *Order) ID() int64                    { return o.id }
func (o *Order) HasID() bool                  { return o.id != 0 }
func (o *Order) Amount() decimal.Decimal      { return o.amount }
func (o *Order) Currency() string             { return o.currency }
func (o *Order) CardNumber() string           { return o.cardNumber }
func (o *Order) Status() OrderStatus          { return o.status }
func (o *Order) GatewayTransactionID() string { return o.gatewayTransactionID }
func (o *Order) CreatedAt() time.Time         { return o.createdAt }
func (o *Order) UpdatedAt() time.Time         { return o.updatedAt }

// MaskedCardNumber returns the card number with everything but the last four digits hidden.
func (o *Order) MaskedCardNumber() string {
	return maskPAN(o.cardNumber)
}

// AssignID sets the storage identifier. It can only happen once.
func (o *Order) AssignID(id int64) error {
	if id <= 0 {
		return ErrInvalidID
	}
	if o.id != 0 {
		return ErrIDAlreadyAssigned
	}
	o.id = id
	return nil
}

// MarkAuthorized records the gateway transaction and moves the order to authorized.
func (o *Order) MarkAuthorized(transactionID string) error {
	if transactionID == "" {
		return ErrMissingTransactionID
	}
	if err := o.transition(StatusAuthorized); err != nil {
		return err
	}
	o.gatewayTransactionID = transactionID
	return nil
}

func (o *Order) MarkCompleted() error {
	return o.transition(StatusCompleted)
}

func (o *Order) MarkGatewayFailed() error {
	return o.transition(StatusFailedGateway)
}

func (o *Order) MarkStorageFailed() error {
	return o.transition(StatusFailedInternalDB)
}

func (o *Order) MarkUnexpectedFailure() error {
	return o.transition(StatusFailedUnexpected)
}

// IsTerminal reports whether the gateway flow for this order is over.
func (o *Order) IsTerminal() bool {
	switch o.status {
	case StatusCompleted, StatusFailedGateway, StatusFailedInternalDB, StatusFailedUnexpected:
		return true
	default:
		return false
	}
}

// Clone returns a copy that shares no mutable state with o.
func (o *Order) Clone() *Order {
	if o == nil {
		return nil
	}
	c := *o
	return &c
}

func (o *Order) transition(target OrderStatus) error {
	if err := o.canTransitionTo(target); err != nil {
		return err
	}
	o.status = target
	o.updatedAt = time.Now().UTC()
	return nil
}

// a completed order can still fail to be persisted, failures are absorbing
func (o *Order) canTransitionTo(target OrderStatus) error {
	switch o.status {
	case StatusPendingAuthorization:
		return o.allow(target, StatusAuthorized, StatusFailedGateway, StatusFailedInternalDB, StatusFailedUnexpected)
	case StatusAuthorized:
		return o.allow(target, StatusCompleted, StatusFailedGateway, StatusFailedInternalDB, StatusFailedUnexpected)
	case StatusCompleted:
		return o.allow(target, StatusFailedInternalDB, StatusFailedUnexpected)
	}
	return NewInvalidTransitionError(o.status, target)
}

func (o *Order) allow(target OrderStatus, allowed ...OrderStatus) error {
	if slices.Contains(allowed, target) {
		return nil
	}
	return NewInvalidTransitionError(o.status, target)
}
