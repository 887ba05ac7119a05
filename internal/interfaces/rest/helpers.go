package rest

import (
	"encoding/json"
	"net/http"

	"github.com/DanielPopoola/ficmart-payment-processor/internal/domain"
)

const timestampLayout = "2006-01-02 15:04:05"

const MsgPaymentProcessed = "Payment processed successfully."

type OrderResponse struct {
	ID                   int64       `json:"id"`
	Amount               json.Number `json:"amount"`
	Currency             string      `json:"currency"`
	Status               string      `json:"status"`
	GatewayTransactionID *string     `json:"gatewayTransactionId"`
	CreatedAt            string      `json:"createdAt"`
	UpdatedAt            string      `json:"updatedAt"`
}

type PaymentResponse struct {
	Status  string        `json:"status"`
	Message string        `json:"message"`
	Order   OrderResponse `json:"order"`
}

// ToOrderResponse never includes the card number.
func ToOrderResponse(o *domain.Order) OrderResponse {
	resp := OrderResponse{
		ID:        o.ID(),
		Amount:    json.Number(o.Amount().String()),
		Currency:  o.Currency(),
		Status:    string(o.Status()),
		CreatedAt: o.CreatedAt().Format(timestampLayout),
		UpdatedAt: o.UpdatedAt().Format(timestampLayout),
	}
	if txID := o.GatewayTransactionID(); txID != "" {
		resp.GatewayTransactionID = &txID
	}
	return resp
}

func WriteJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
