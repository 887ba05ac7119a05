package application

import (
	"errors"
	"fmt"
	"net/http"
)

// ValidationMessage is the summary carried by every ValidationError.
const ValidationMessage = "Payment data validation failed."

// Gateway failure codes. Informational only, the processor branches on failure vs success.
const (
	GatewayCodeBadRequest  = http.StatusBadRequest
	GatewayCodeDeclined    = http.StatusPaymentRequired
	GatewayCodeUnavailable = http.StatusServiceUnavailable
)

// ValidationError collects every rule a raw payment broke.
type ValidationError struct {
	Message string
	Fields  map[string]string
}

func NewValidationError(fields map[string]string) *ValidationError {
	return &ValidationError{Message: ValidationMessage, Fields: fields}
}

func (e *ValidationError) Error() string {
	return e.Message
}

// GatewayError is a refusal or outage reported by the payment gateway.
type GatewayError struct {
	Reason string
	Code   int
}

func NewGatewayError(reason string, code int) *GatewayError {
	return &GatewayError{Reason: reason, Code: code}
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("gateway error (%d): %s", e.Code, e.Reason)
}

// IsRetryable reports whether the same call might succeed later
func (e *GatewayError) IsRetryable() bool {
	return e.Code >= 500
}

// StorageError wraps a failed persistence operation.
type StorageError struct {
	Op  string
	Err error
}

func NewStorageError(op string, err error) *StorageError {
	return &StorageError{Op: op, Err: err}
}

func (e *StorageError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("storage %s failed: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("storage %s failed", e.Op)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// NotifierError is never returned by the processor, only logged.
type NotifierError struct {
	Err error
}

func (e *NotifierError) Error() string {
	return fmt.Sprintf("notification failed: %v", e.Err)
}

func (e *NotifierError) Unwrap() error {
	return e.Err
}

// MalformedInputError means the request body could not be decoded into a payment object.
type MalformedInputError struct {
	Err error
}

func (e *MalformedInputError) Error() string {
	return fmt.Sprintf("Invalid JSON payload: %v", e.Err)
}

func (e *MalformedInputError) Unwrap() error {
	return e.Err
}

func IsValidationError(err error) (*ValidationError, bool) {
	var valErr *ValidationError
	ok := errors.As(err, &valErr)
	return valErr, ok
}

func IsGatewayError(err error) (*GatewayError, bool) {
	var gwErr *GatewayError
	ok := errors.As(err, &gwErr)
	return gwErr, ok
}

func IsStorageError(err error) (*StorageError, bool) {
	var storageErr *StorageError
	ok := errors.As(err, &storageErr)
	return storageErr, ok
}

func IsNotifierError(err error) (*NotifierError, bool) {
	var notifyErr *NotifierError
	ok := errors.As(err, &notifyErr)
	return notifyErr, ok
}

func IsMalformedInputError(err error) (*MalformedInputError, bool) {
	var inputErr *MalformedInputError
	ok := errors.As(err, &inputErr)
	return inputErr, ok
}
