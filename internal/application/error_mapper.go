package application

import (
	"net/http"
)

// FailureKind is the nature of an error leaving the processor
type FailureKind string

const (
	KindNone           FailureKind = ""
	KindValidation     FailureKind = "VALIDATION"
	KindGateway        FailureKind = "GATEWAY"
	KindStorage        FailureKind = "STORAGE"
	KindMalformedInput FailureKind = "MALFORMED_INPUT"
	KindUnexpected     FailureKind = "UNEXPECTED"
)

// Classify determines the failure kind of err. Anything that is not one of the
// known error types is unexpected.
func Classify(err error) FailureKind {
	if err == nil {
		return KindNone
	}

	if _, ok := IsValidationError(err); ok {
		return KindValidation
	}
	if _, ok := IsGatewayError(err); ok {
		return KindGateway
	}
	if _, ok := IsStorageError(err); ok {
		return KindStorage
	}
	if _, ok := IsMalformedInputError(err); ok {
		return KindMalformedInput
	}

	return KindUnexpected
}

// ToHTTPStatus maps error to appropriate HTTP status code
func ToHTTPStatus(err error) int {
	switch Classify(err) {
	case KindNone:
		return http.StatusOK
	case KindValidation:
		return http.StatusUnprocessableEntity
	case KindGateway:
		// gateway refusals and outages are both reported as unavailable
		return http.StatusServiceUnavailable
	case KindMalformedInput:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// ToResponseStatus is the "status" field of the JSON response body.
func ToResponseStatus(err error) string {
	switch Classify(err) {
	case KindNone:
		return "success"
	case KindValidation:
		return "validation_error"
	case KindGateway:
		return "gateway_error"
	default:
		return "error"
	}
}

// ToOutcome is the metrics label for a processor result.
func ToOutcome(err error) string {
	switch Classify(err) {
	case KindNone:
		return OutcomeSuccess
	case KindValidation:
		return OutcomeValidation
	case KindGateway:
		return OutcomeGateway
	case KindStorage:
		return OutcomeStorage
	default:
		return OutcomeUnexpected
	}
}
