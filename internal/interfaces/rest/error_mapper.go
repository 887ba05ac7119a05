package rest

import (
	"log/slog"
	"net/http"

	"github.com/DanielPopoola/ficmart-payment-processor/internal/application"
)

const (
	MsgUnexpectedPrefix = "An unexpected error occurred. "
	MsgEndpointNotFound = "Endpoint not found"
)

type ErrorResponse struct {
	Status  string            `json:"status"`
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// BuildErrorResponse maps an application error to its status code and body.
func BuildErrorResponse(err error) (int, ErrorResponse) {
	statusCode := application.ToHTTPStatus(err)
	response := ErrorResponse{Status: application.ToResponseStatus(err)}

	switch application.Classify(err) {
	case application.KindValidation:
		valErr, _ := application.IsValidationError(err)
		response.Message = valErr.Message
		response.Errors = valErr.Fields
	case application.KindGateway:
		gwErr, _ := application.IsGatewayError(err)
		response.Message = gwErr.Reason
	case application.KindMalformedInput:
		response.Message = err.Error()
	default:
		response.Message = MsgUnexpectedPrefix + err.Error()
	}

	return statusCode, response
}

// WriteError maps application errors to HTTP responses
func WriteError(w http.ResponseWriter, err error, logger *slog.Logger) {
	statusCode, response := BuildErrorResponse(err)

	if statusCode >= http.StatusInternalServerError && statusCode != http.StatusServiceUnavailable {
		logger.Error("request failed", "status", statusCode, "error", err)
	} else {
		logger.Warn("request rejected", "status", statusCode, "error", err)
	}

	WriteJSON(w, statusCode, response)
}

func NotFound(w http.ResponseWriter, _ *http.Request) {
	WriteJSON(w, http.StatusNotFound, ErrorResponse{Status: "error", Message: MsgEndpointNotFound})
}
