// Package validation turns an untrusted payment request into a typed payment.
package validation

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/DanielPopoola/ficmart-payment-processor/internal/application"
	"github.com/DanielPopoola/ficmart-payment-processor/internal/domain"
	"github.com/go-playground/validator"
	"github.com/shopspring/decimal"
)

// Request field names.
const (
	FieldAmount        = "amount"
	FieldCurrency      = "currency"
	FieldCardNumber    = "cardNumber"
	FieldExpiryMonth   = "expiryMonth"
	FieldExpiryYear    = "expiryYear"
	FieldCVV           = "cvv"
	FieldCustomerEmail = "customerEmail"
)

const (
	msgAmount        = "A positive amount is required."
	msgCurrency      = "A valid 3-letter currency code is required."
	msgCardNumber    = "Card number is required."
	msgExpiryMonth   = "Expiry month is required."
	msgExpiryYear    = "Expiry year is required."
	msgCVV           = "CVV is required."
	msgCustomerEmail = "A valid customer email is required."
)

// RawPayment is the payment request exactly as it arrived.
type RawPayment map[string]any

// ValidatedPayment can only be obtained from Validate.
type ValidatedPayment struct {
	Amount        decimal.Decimal
	Currency      string
	Card          domain.CardDetails
	CustomerEmail string
}

var validate = validator.New()

// Validate checks every field and reports all violations at once.
func Validate(raw RawPayment) (*ValidatedPayment, error) {
	fields := make(map[string]string)
	payment := &ValidatedPayment{}

	if amount, ok := parseAmount(raw[FieldAmount]); ok {
		payment.Amount = amount
	} else {
		fields[FieldAmount] = msgAmount
	}

	if currency, ok := parseCurrency(raw[FieldCurrency]); ok {
		payment.Currency = currency
	} else {
		fields[FieldCurrency] = msgCurrency
	}

	requireString(raw, FieldCardNumber, msgCardNumber, &payment.Card.Number, fields)
	requireString(raw, FieldExpiryMonth, msgExpiryMonth, &payment.Card.ExpiryMonth, fields)
	requireString(raw, FieldExpiryYear, msgExpiryYear, &payment.Card.ExpiryYear, fields)
	requireString(raw, FieldCVV, msgCVV, &payment.Card.CVV, fields)

	if email, ok := raw[FieldCustomerEmail].(string); ok && validate.Var(email, "required,email") == nil {
		payment.CustomerEmail = email
	} else {
		fields[FieldCustomerEmail] = msgCustomerEmail
	}

	if len(fields) > 0 {
		return nil, application.NewValidationError(fields)
	}
	return payment, nil
}

func parseAmount(v any) (decimal.Decimal, bool) {
	var amount decimal.Decimal

	switch n := v.(type) {
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return decimal.Zero, false
		}
		amount = decimal.NewFromFloat(n)
	case float32:
		f := float64(n)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return decimal.Zero, false
		}
		amount = decimal.NewFromFloat32(n)
	case int:
		amount = decimal.NewFromInt(int64(n))
	case int64:
		amount = decimal.NewFromInt(n)
	case int32:
		amount = decimal.NewFromInt32(n)
	case decimal.Decimal:
		amount = n
	case json.Number:
		d, err := decimal.NewFromString(n.String())
		if err != nil {
			return decimal.Zero, false
		}
		amount = d
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(n))
		if err != nil {
			return decimal.Zero, false
		}
		amount = d
	default:
		return decimal.Zero, false
	}

	if !amount.IsPositive() || !fitsAmountColumn(amount) {
		return decimal.Zero, false
	}
	return amount, true
}

// Amounts are stored as NUMERIC(19,4).
const (
	amountScale        = 4
	amountIntegerDigits = 15
)

var maxAmount = decimal.New(1, amountIntegerDigits)

// fitsAmountColumn reports whether amount survives storage without rounding or overflow.
// The magnitude is checked first so huge exponents are never expanded.
func fitsAmountColumn(amount decimal.Decimal) bool {
	magnitude := amount.NumDigits() + int(amount.Exponent())
	if magnitude > amountIntegerDigits || magnitude < -amountScale {
		return false
	}
	if amount.GreaterThanOrEqual(maxAmount) {
		return false
	}
	return amount.Truncate(amountScale).Equal(amount)
}

func parseCurrency(v any) (string, bool) {
	s, ok := v.(string)
	if !ok {
		return "", false
	}
	code := strings.ToUpper(s)
	if !domain.IsCurrencyCode(code) {
		return "", false
	}
	return code, true
}

func requireString(raw RawPayment, field, msg string, dst *string, fields map[string]string) {
	s, ok := raw[field].(string)
	if !ok || strings.TrimSpace(s) == "" {
		fields[field] = msg
		return
	}
	*dst = s
}
