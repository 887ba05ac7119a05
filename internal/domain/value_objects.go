package domain

import (
	"fmt"
	"strings"
)

// CardDetails is what the gateway needs to authorize a card
type CardDetails struct {
	Number      string
	ExpiryMonth string
	ExpiryYear  string
	CVV         string
}

// Complete reports whether every card field is present.
func (c CardDetails) Complete() bool {
	return c.Number != "" && c.ExpiryMonth != "" && c.ExpiryYear != "" && c.CVV != ""
}

// String keeps the PAN and CVV out of logs
func (c CardDetails) String() string {
	return fmt.Sprintf("card %s exp %s/%s", maskPAN(c.Number), c.ExpiryMonth, c.ExpiryYear)
}

// GoString is used by %#v
func (c CardDetails) GoString() string {
	return c.String()
}

// IsCurrencyCode checks for three uppercase ASCII letters.
func IsCurrencyCode(code string) bool {
	if len(code) != 3 {
		return false
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

// LastFour returns the last four characters of a card number.
func LastFour(number string) string {
	if len(number) <= 4 {
		return number
	}
	return number[len(number)-4:]
}

func maskPAN(number string) string {
	if len(number) <= 4 {
		return number
	}
	return strings.Repeat("*", len(number)-4) + LastFour(number)
}
