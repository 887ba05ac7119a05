package gateway

import (
	"time"

	"github.com/shopspring/decimal"
)

type AuthorizationRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	CardNumber  string          `json:"card_number"`
	Cvv         string          `json:"cvv"`
	ExpiryMonth string          `json:"expiry_month"`
	ExpiryYear  string          `json:"expiry_year"`
}

type AuthorizationResponse struct {
	TransactionID string          `json:"transaction_id"`
	Status        string          `json:"status"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	CreatedAt     time.Time       `json:"created_at"`
}

type CaptureRequest struct {
	TransactionID string          `json:"transaction_id"`
	Amount        decimal.Decimal `json:"amount"`
}

type CaptureResponse struct {
	CaptureID     string          `json:"capture_id"`
	TransactionID string          `json:"transaction_id"`
	Status        string          `json:"status"`
	Amount        decimal.Decimal `json:"amount"`
	CapturedAt    time.Time       `json:"captured_at"`
}

type ErrorResponse struct {
	Err     string `json:"error"`
	Message string `json:"message"`
}
