package postgres

import (
	"time"
)

// OrderModel is the row stored in orders. Only the last four card digits are kept.
type OrderModel struct {
	ID                   int64
	Amount               string
	Currency             string
	CardNumberLast4      string
	Status               string
	GatewayTransactionID *string
	CreatedAt            time.Time
	UpdatedAt            time.Time
}
