package postgres

import (
	"fmt"

	"github.com/DanielPopoola/ficmart-payment-processor/internal/domain"
	"github.com/shopspring/decimal"
)

// toDomainModel: maps db model to domain entity
func toDomainModel(m OrderModel) (*domain.Order, error) {
	amount, err := decimal.NewFromString(m.Amount)
	if err != nil {
		return nil, fmt.Errorf("parse amount %q of order %d: %w", m.Amount, m.ID, err)
	}

	var txID string
	if m.GatewayTransactionID != nil {
		txID = *m.GatewayTransactionID
	}

	return domain.Reconstitute(
		m.ID,
		amount,
		m.Currency,
		m.CardNumberLast4,
		domain.OrderStatus(m.Status),
		txID,
		m.CreatedAt,
		m.UpdatedAt,
	), nil
}

// toDBModel: maps domain entity to db model
func toDBModel(o *domain.Order) *OrderModel {
	var txID *string
	if id := o.GatewayTransactionID(); id != "" {
		txID = &id
	}

	return &OrderModel{
		ID:                   o.ID(),
		Amount:               o.Amount().String(),
		Currency:             o.Currency(),
		CardNumberLast4:      domain.LastFour(o.CardNumber()),
		Status:               string(o.Status()),
		GatewayTransactionID: txID,
		CreatedAt:            o.CreatedAt(),
		UpdatedAt:            o.UpdatedAt(),
	}
}
