package notification

import (
	"context"
	"log/slog"

	"github.com/DanielPopoola/ficmart-payment-processor/internal/application"
	"github.com/DanielPopoola/ficmart-payment-processor/internal/domain"
)

// LogNotifier writes the confirmation to the log instead of sending mail.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) SendConfirmation(ctx context.Context, order *domain.Order, email string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, &application.NotifierError{Err: err}
	}

	n.logger.InfoContext(ctx, "payment confirmation sent",
		"type", TypePaymentConfirmation,
		"order_id", order.ID(),
		"recipient", email,
		"amount", order.Amount().StringFixed(2),
		"currency", order.Currency(),
		"card", order.MaskedCardNumber(),
	)
	return true, nil
}
