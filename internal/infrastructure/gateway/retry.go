package gateway

import (
	"context"
	"log/slog"
	"math/rand"
	"time"

	"github.com/DanielPopoola/ficmart-payment-processor/internal/application"
	"github.com/DanielPopoola/ficmart-payment-processor/internal/config"
	"github.com/DanielPopoola/ficmart-payment-processor/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RetryGateway retries retryable gateway failures with exponential backoff.
type RetryGateway struct {
	inner       application.PaymentGateway
	baseDelay   time.Duration
	maxDelay    time.Duration
	maxAttempts int
	logger      *slog.Logger
}

func NewRetryGateway(inner application.PaymentGateway, cfg config.RetryConfig, logger *slog.Logger) *RetryGateway {
	maxAttempts := cfg.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &RetryGateway{
		inner:       inner,
		baseDelay:   cfg.BaseDelay,
		maxDelay:    cfg.MaxDelay,
		maxAttempts: maxAttempts,
		logger:      logger,
	}
}

// Authorize with retry logic
func (r *RetryGateway) Authorize(ctx context.Context, amount decimal.Decimal, currency string, card domain.CardDetails) (*application.AuthorizationResult, error) {
	return retry(r, withStableKey(ctx), "authorize", func(ctx context.Context) (*application.AuthorizationResult, error) {
		return r.inner.Authorize(ctx, amount, currency, card)
	})
}

// Capture with retry logic
func (r *RetryGateway) Capture(ctx context.Context, transactionID string, amount decimal.Decimal) (*application.CaptureResult, error) {
	return retry(r, withStableKey(ctx), "capture", func(ctx context.Context) (*application.CaptureResult, error) {
		return r.inner.Capture(ctx, transactionID, amount)
	})
}

func withStableKey(ctx context.Context) context.Context {
	if _, ok := IdempotencyKeyFrom(ctx); ok {
		return ctx
	}
	return WithIdempotencyKey(ctx, uuid.NewString())
}

// retry returns the last error unchanged once attempts run out
func retry[T any](r *RetryGateway, ctx context.Context, op string, operation func(ctx context.Context) (*T, error)) (*T, error) {
	var lastErr error

	for attempt := 0; attempt < r.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		resp, err := operation(ctx)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		if !isRetryable(err) || attempt == r.maxAttempts-1 {
			break
		}

		delay := r.backoff(attempt)
		r.logger.Warn("retrying gateway call",
			"op", op,
			"attempt", attempt+1,
			"delay", delay,
			"error", err,
		)

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	return nil, lastErr
}

func isRetryable(err error) bool {
	gwErr, ok := application.IsGatewayError(err)
	return ok && gwErr.IsRetryable()
}

// Backoff calculation with exponential delay and jitter
func (r *RetryGateway) backoff(attempt int) time.Duration {
	base := r.baseDelay * time.Duration(1<<attempt)
	if r.maxDelay > 0 && base > r.maxDelay {
		base = r.maxDelay
	}

	jitter := time.Duration(rand.Int63n(int64(base)/2 + 1))

	return base + jitter
}
