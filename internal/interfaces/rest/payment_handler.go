package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/DanielPopoola/ficmart-payment-processor/internal/application"
	"github.com/DanielPopoola/ficmart-payment-processor/internal/application/validation"
	"github.com/DanielPopoola/ficmart-payment-processor/internal/domain"
)

var (
	errNotAnObject   = errors.New("expected a JSON object")
	errTrailingInput = errors.New("unexpected data after JSON object")
)

type PaymentService interface {
	ProcessPayment(ctx context.Context, raw validation.RawPayment) (*domain.Order, error)
}

type PaymentHandler struct {
	service      PaymentService
	maxBodyBytes int64
	logger       *slog.Logger
}

func NewPaymentHandler(service PaymentService, maxBodyBytes int64, logger *slog.Logger) *PaymentHandler {
	return &PaymentHandler{service: service, maxBodyBytes: maxBodyBytes, logger: logger}
}

func (h *PaymentHandler) ProcessPayment(w http.ResponseWriter, r *http.Request) {
	raw, err := h.decode(w, r)
	if err != nil {
		WriteError(w, err, h.logger)
		return
	}

	order, err := h.service.ProcessPayment(r.Context(), raw)
	if err != nil {
		WriteError(w, err, h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, PaymentResponse{
		Status:  application.ToResponseStatus(nil),
		Message: MsgPaymentProcessed,
		Order:   ToOrderResponse(order),
	})
}

func (h *PaymentHandler) decode(w http.ResponseWriter, r *http.Request) (validation.RawPayment, error) {
	body := http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	defer body.Close()

	dec := json.NewDecoder(body)
	dec.UseNumber()

	var payload any
	if err := dec.Decode(&payload); err != nil {
		return nil, &application.MalformedInputError{Err: err}
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, &application.MalformedInputError{Err: errTrailingInput}
	}

	// null carries no fields; validation reports each one as missing.
	if payload == nil {
		return validation.RawPayment{}, nil
	}
	obj, ok := payload.(map[string]any)
	if !ok {
		return nil, &application.MalformedInputError{Err: errNotAnObject}
	}
	return validation.RawPayment(obj), nil
}
