package gateway

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/DanielPopoola/ficmart-payment-processor/internal/application"
)

// Messages used by the simulated gateway.
const (
	MsgAuthorizeNetworkError = "Simulated network error connecting to payment gateway."
	MsgCaptureNetworkError   = "Simulated network error during capture."
	MsgAuthorizeDeclined     = "Payment declined by gateway."
	MsgCaptureDeclined       = "Capture failed at gateway."
	MsgMissingCardDetails    = "Gateway validation: Missing card details."
	MsgAmountTooLow          = "Gateway validation: Amount too low."
)

// fromErrorResponse converts a non-2xx gateway response into a GatewayError.
func fromErrorResponse(statusCode int, body []byte, decoded *ErrorResponse) *application.GatewayError {
	reason := ""
	if decoded != nil {
		reason = decoded.Message
		if reason == "" {
			reason = decoded.Err
		}
	}
	if reason == "" {
		reason = strings.TrimSpace(string(body))
	}
	if reason == "" {
		reason = http.StatusText(statusCode)
	}
	return application.NewGatewayError(reason, statusCode)
}

// fromTransportError keeps caller cancellation intact and reports everything else,
// client timeouts included, as an outage.
func fromTransportError(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("gateway request aborted: %w", ctxErr)
	}
	return application.NewGatewayError(
		fmt.Sprintf("Payment gateway unreachable: %v", err),
		application.GatewayCodeUnavailable,
	)
}
