package gateway

import (
	"context"
	"strings"
	"sync"

	"github.com/DanielPopoola/ficmart-payment-processor/internal/application"
	"github.com/DanielPopoola/ficmart-payment-processor/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var minimumAmount = decimal.RequireFromString("0.50")

type behaviour int

const (
	succeed behaviour = iota
	decline
	networkError
)

type stagePlan struct {
	behaviour behaviour
	reason    string
}

// SimulatedGateway is an in-process gateway whose outcome is scripted.
// The configured behaviour stays in place until changed. Safe for concurrent use.
type SimulatedGateway struct {
	mu            sync.Mutex
	authorize     stagePlan
	capture       stagePlan
	authorizeHits int
	captureHits   int
}

func NewSimulatedGateway() *SimulatedGateway {
	return &SimulatedGateway{}
}

// WillSucceed makes both stages succeed.
func (g *SimulatedGateway) WillSucceed() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.authorize = stagePlan{behaviour: succeed}
	g.capture = stagePlan{behaviour: succeed}
}

// WillDecline makes both stages decline with reason, or with the stage default when reason is empty.
func (g *SimulatedGateway) WillDecline(reason string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.authorize = stagePlan{behaviour: decline, reason: reason}
	g.capture = stagePlan{behaviour: decline, reason: reason}
}

// WillHaveNetworkError makes both stages unreachable.
func (g *SimulatedGateway) WillHaveNetworkError() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.authorize = stagePlan{behaviour: networkError}
	g.capture = stagePlan{behaviour: networkError}
}

// WillDeclineCapture lets authorization through and declines the capture.
func (g *SimulatedGateway) WillDeclineCapture(reason string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.authorize = stagePlan{behaviour: succeed}
	g.capture = stagePlan{behaviour: decline, reason: reason}
}

// WillHaveCaptureNetworkError lets authorization through and fails the capture as unreachable.
func (g *SimulatedGateway) WillHaveCaptureNetworkError() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.authorize = stagePlan{behaviour: succeed}
	g.capture = stagePlan{behaviour: networkError}
}

// Calls reports how many authorize and capture calls were received.
func (g *SimulatedGateway) Calls() (authorize, capture int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.authorizeHits, g.captureHits
}

func (g *SimulatedGateway) Authorize(ctx context.Context, amount decimal.Decimal, currency string, card domain.CardDetails) (*application.AuthorizationResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	g.mu.Lock()
	g.authorizeHits++
	plan := g.authorize
	g.mu.Unlock()

	switch plan.behaviour {
	case networkError:
		return nil, application.NewGatewayError(MsgAuthorizeNetworkError, application.GatewayCodeUnavailable)
	case decline:
		return nil, application.NewGatewayError(reasonOr(plan.reason, MsgAuthorizeDeclined), application.GatewayCodeDeclined)
	}

	if !card.Complete() {
		return nil, application.NewGatewayError(MsgMissingCardDetails, application.GatewayCodeBadRequest)
	}
	if amount.LessThan(minimumAmount) {
		return nil, application.NewGatewayError(MsgAmountTooLow, application.GatewayCodeBadRequest)
	}

	return &application.AuthorizationResult{TransactionID: "gw_auth_" + randomHex()}, nil
}

func (g *SimulatedGateway) Capture(ctx context.Context, transactionID string, amount decimal.Decimal) (*application.CaptureResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	g.mu.Lock()
	g.captureHits++
	plan := g.capture
	g.mu.Unlock()

	switch plan.behaviour {
	case networkError:
		return nil, application.NewGatewayError(MsgCaptureNetworkError, application.GatewayCodeUnavailable)
	case decline:
		return nil, application.NewGatewayError(reasonOr(plan.reason, MsgCaptureDeclined), application.GatewayCodeDeclined)
	}

	return &application.CaptureResult{CaptureID: "gw_cap_" + randomHex()}, nil
}

func reasonOr(reason, fallback string) string {
	if reason == "" {
		return fallback
	}
	return reason
}

// randomHex returns 16 hex characters
func randomHex() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
}
