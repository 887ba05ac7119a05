package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/DanielPopoola/ficmart-payment-processor/internal/application"
	"github.com/DanielPopoola/ficmart-payment-processor/internal/config"
	"github.com/DanielPopoola/ficmart-payment-processor/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// HTTPGateway talks JSON to a remote payment gateway.
type HTTPGateway struct {
	baseURL    string
	httpClient *http.Client
}

func NewHTTPGateway(cfg config.GatewayConfig) *HTTPGateway {
	return &HTTPGateway{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

func (c *HTTPGateway) Authorize(ctx context.Context, amount decimal.Decimal, currency string, card domain.CardDetails) (*application.AuthorizationResult, error) {
	url := fmt.Sprintf("%s/v1/authorizations", c.baseURL)
	req := AuthorizationRequest{
		Amount:      amount,
		Currency:    currency,
		CardNumber:  card.Number,
		Cvv:         card.CVV,
		ExpiryMonth: card.ExpiryMonth,
		ExpiryYear:  card.ExpiryYear,
	}

	resp, err := sendRequest[AuthorizationRequest, AuthorizationResponse](c, ctx, http.MethodPost, url, &req)
	if err != nil {
		return nil, err
	}
	return &application.AuthorizationResult{TransactionID: resp.TransactionID}, nil
}

func (c *HTTPGateway) Capture(ctx context.Context, transactionID string, amount decimal.Decimal) (*application.CaptureResult, error) {
	url := fmt.Sprintf("%s/v1/captures", c.baseURL)
	req := CaptureRequest{
		TransactionID: transactionID,
		Amount:        amount,
	}

	resp, err := sendRequest[CaptureRequest, CaptureResponse](c, ctx, http.MethodPost, url, &req)
	if err != nil {
		return nil, err
	}
	return &application.CaptureResult{CaptureID: resp.CaptureID}, nil
}

func sendRequest[Req any, Resp any](c *HTTPGateway, ctx context.Context, method, url string, reqBody *Req) (*Resp, error) {
	var bodyReader io.Reader
	if reqBody != nil {
		jsonData, err := json.Marshal(reqBody)
		if err != nil {
			return nil, fmt.Errorf("error marshalling json: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}

	if reqBody != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	idempotencyKey, ok := IdempotencyKeyFrom(ctx)
	if !ok {
		idempotencyKey = uuid.NewString()
	}
	httpReq.Header.Set("Idempotency-Key", idempotencyKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fromTransportError(ctx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		var errResp ErrorResponse
		if err := json.Unmarshal(body, &errResp); err != nil {
			return nil, fromErrorResponse(resp.StatusCode, body, nil)
		}
		return nil, fromErrorResponse(resp.StatusCode, body, &errResp)
	}

	var gatewayResp Resp
	if err := json.NewDecoder(resp.Body).Decode(&gatewayResp); err != nil {
		return nil, fmt.Errorf("error decoding json response: %w", err)
	}

	return &gatewayResp, nil
}
