package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/DanielPopoola/ficmart-payment-processor/internal/application"
	"github.com/DanielPopoola/ficmart-payment-processor/internal/application/validation"
	"github.com/DanielPopoola/ficmart-payment-processor/internal/domain"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// ErrMissingAuthorization is returned when the gateway reports success without a result.
var ErrMissingAuthorization = errors.New("gateway returned no authorization result")

const tracerName = "github.com/DanielPopoola/ficmart-payment-processor/internal/application/services"

type PaymentProcessor struct {
	repo     application.OrderRepository
	gateway  application.PaymentGateway
	notifier application.Notifier
	logger   *slog.Logger
	metrics  application.PaymentMetrics
	tracer   trace.Tracer
	preSave  bool
}

type Option func(*PaymentProcessor)

// WithPreSave persists the pending order before the gateway is contacted,
// so gateway and unexpected failures are recorded in storage.
func WithPreSave(enabled bool) Option {
	return func(p *PaymentProcessor) {
		p.preSave = enabled
	}
}

func WithMetrics(metrics application.PaymentMetrics) Option {
	return func(p *PaymentProcessor) {
		if metrics != nil {
			p.metrics = metrics
		}
	}
}

func WithTracer(tracer trace.Tracer) Option {
	return func(p *PaymentProcessor) {
		if tracer != nil {
			p.tracer = tracer
		}
	}
}

func NewPaymentProcessor(
	repo application.OrderRepository,
	gateway application.PaymentGateway,
	notifier application.Notifier,
	logger *slog.Logger,
	opts ...Option,
) *PaymentProcessor {
	p := &PaymentProcessor{
		repo:     repo,
		gateway:  gateway,
		notifier: notifier,
		logger:   logger,
		metrics:  application.NopMetrics{},
		tracer:   otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ProcessPayment validates, authorizes, captures, persists and confirms one payment.
//
// Validation failures return a nil order. Any later failure returns the order in
// its failure status together with the error that caused it.
func (p *PaymentProcessor) ProcessPayment(ctx context.Context, raw validation.RawPayment) (order *domain.Order, err error) {
	start := time.Now()
	ctx, span := p.tracer.Start(ctx, "PaymentProcessor.ProcessPayment")

	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("panic while processing payment", "panic", r)
			if order != nil {
				p.handleFailure(ctx, order, fmt.Errorf("panic: %v", r))
			}
			p.finish(span, application.OutcomeUnexpected, start, fmt.Errorf("panic: %v", r))
			panic(r)
		}
		p.finish(span, application.ToOutcome(err), start, err)
	}()

	payment, err := validation.Validate(raw)
	if err != nil {
		p.logger.Info("payment rejected", "error", err)
		return nil, err
	}

	order, err = domain.NewOrder(payment.Amount, payment.Currency, payment.Card.Number)
	if err != nil {
		return nil, err
	}

	logger := p.logger.With(
		"amount", payment.Amount.String(),
		"currency", payment.Currency,
		"card", order.MaskedCardNumber(),
	)

	if p.preSave {
		if _, err := p.save(ctx, order); err != nil {
			return order, p.handleFailure(ctx, order, err)
		}
		logger = logger.With("order_id", order.ID())
	}

	auth, err := p.authorize(ctx, payment)
	if err != nil {
		logger.Warn("authorization failed", "error", err)
		return order, p.handleFailure(ctx, order, err)
	}
	if err := order.MarkAuthorized(auth.TransactionID); err != nil {
		logger.Error("gateway authorization unusable", "error", err)
		return order, p.handleFailure(ctx, order, err)
	}

	if err := p.capture(ctx, order); err != nil {
		logger.Warn("capture failed", "transaction_id", order.GatewayTransactionID(), "error", err)
		return order, p.handleFailure(ctx, order, err)
	}
	if err := order.MarkCompleted(); err != nil {
		return order, p.handleFailure(ctx, order, err)
	}

	persisted, err := p.save(ctx, order)
	if err != nil {
		logger.Error("failed to persist completed order",
			"transaction_id", order.GatewayTransactionID(),
			"error", err,
		)
		return order, p.handleFailure(ctx, order, err)
	}

	p.notify(ctx, persisted, payment.CustomerEmail)

	logger.Info("payment processed",
		"order_id", persisted.ID(),
		"transaction_id", persisted.GatewayTransactionID(),
	)
	return persisted, nil
}

func (p *PaymentProcessor) authorize(ctx context.Context, payment *validation.ValidatedPayment) (*application.AuthorizationResult, error) {
	ctx, span := p.tracer.Start(ctx, "gateway.Authorize", trace.WithAttributes(
		attribute.String("payment.amount", payment.Amount.String()),
		attribute.String("payment.currency", payment.Currency),
	))
	defer span.End()

	auth, err := p.gateway.Authorize(ctx, payment.Amount, payment.Currency, payment.Card)
	if err == nil && auth == nil {
		err = ErrMissingAuthorization
	}
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.String("gateway.transaction_id", auth.TransactionID))
	return auth, nil
}

func (p *PaymentProcessor) capture(ctx context.Context, order *domain.Order) error {
	ctx, span := p.tracer.Start(ctx, "gateway.Capture", trace.WithAttributes(
		attribute.String("gateway.transaction_id", order.GatewayTransactionID()),
	))
	defer span.End()

	result, err := p.gateway.Capture(ctx, order.GatewayTransactionID(), order.Amount())
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	if result != nil {
		span.SetAttributes(attribute.String("gateway.capture_id", result.CaptureID))
	}
	return nil
}

func (p *PaymentProcessor) save(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	ctx, span := p.tracer.Start(ctx, "repository.Save", trace.WithAttributes(
		attribute.String("order.status", string(order.Status())),
	))
	defer span.End()

	saved, err := p.repo.Save(ctx, order)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if saved == nil {
		saved = order
	}
	span.SetAttributes(attribute.Int64("order.id", saved.ID()))
	return saved, nil
}

// handleFailure moves the order to the failure status for err and returns err unchanged.
// Storage failures are recorded in memory only.
func (p *PaymentProcessor) handleFailure(ctx context.Context, order *domain.Order, err error) error {
	switch application.Classify(err) {
	case application.KindGateway:
		p.markFailed(order, order.MarkGatewayFailed)
		p.persistFailureStatus(ctx, order)
	case application.KindStorage:
		p.markFailed(order, order.MarkStorageFailed)
	default:
		p.markFailed(order, order.MarkUnexpectedFailure)
		p.persistFailureStatus(ctx, order)
	}
	return err
}

func (p *PaymentProcessor) markFailed(order *domain.Order, mark func() error) {
	if err := mark(); err != nil {
		p.logger.Warn("could not record failure status",
			"status", order.Status(),
			"error", err,
		)
	}
}

// persistFailureStatus only updates orders that already exist in storage.
func (p *PaymentProcessor) persistFailureStatus(ctx context.Context, order *domain.Order) {
	if !order.HasID() {
		return
	}
	if _, err := p.repo.Save(context.WithoutCancel(ctx), order); err != nil {
		p.logger.Error("failed to persist failure status",
			"order_id", order.ID(),
			"status", order.Status(),
			"error", err,
		)
	}
}

func (p *PaymentProcessor) notify(ctx context.Context, order *domain.Order, email string) {
	ctx, span := p.tracer.Start(ctx, "notifier.SendConfirmation")
	defer span.End()

	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("notifier panicked", "order_id", order.ID(), "panic", r)
			p.metrics.RecordNotificationFailure("panic")
			span.SetStatus(codes.Error, "panic")
		}
	}()

	sent, err := p.notifier.SendConfirmation(ctx, order, email)
	switch {
	case err != nil:
		notifyErr, ok := application.IsNotifierError(err)
		if !ok {
			notifyErr = &application.NotifierError{Err: err}
		}
		p.logger.Warn("confirmation not sent", "order_id", order.ID(), "error", notifyErr)
		p.metrics.RecordNotificationFailure("error")
		span.SetStatus(codes.Error, notifyErr.Error())
	case !sent:
		p.logger.Warn("confirmation not sent", "order_id", order.ID(), "reason", "notifier declined")
		p.metrics.RecordNotificationFailure("declined")
	}
}

func (p *PaymentProcessor) finish(span trace.Span, outcome string, start time.Time, err error) {
	p.metrics.RecordPayment(outcome, time.Since(start))
	span.SetAttributes(attribute.String("payment.outcome", outcome))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
