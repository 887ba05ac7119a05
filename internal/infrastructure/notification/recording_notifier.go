package notification

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/DanielPopoola/ficmart-payment-processor/internal/application"
	"github.com/DanielPopoola/ficmart-payment-processor/internal/domain"
	"github.com/shopspring/decimal"
)

const TypePaymentConfirmation = "payment_confirmation"

var ErrSimulatedSend = errors.New("simulated notification service error")

// Notification is one confirmation captured by RecordingNotifier.
type Notification struct {
	Type      string
	OrderID   int64
	Recipient string
	Amount    decimal.Decimal
	Currency  string
	Timestamp time.Time
}

// RecordingNotifier keeps every confirmation in memory. Safe for concurrent use.
type RecordingNotifier struct {
	mu       sync.Mutex
	sent     []Notification
	failNext error
	now      func() time.Time
}

func NewRecordingNotifier() *RecordingNotifier {
	return &RecordingNotifier{now: time.Now}
}

// FailNextSend makes the next send fail with err, or ErrSimulatedSend when err is nil.
func (n *RecordingNotifier) FailNextSend(err error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if err == nil {
		err = ErrSimulatedSend
	}
	n.failNext = err
}

func (n *RecordingNotifier) SendConfirmation(ctx context.Context, order *domain.Order, email string) (bool, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.failNext != nil {
		err := n.failNext
		n.failNext = nil
		return false, &application.NotifierError{Err: err}
	}
	if err := ctx.Err(); err != nil {
		return false, &application.NotifierError{Err: err}
	}

	n.sent = append(n.sent, Notification{
		Type:      TypePaymentConfirmation,
		OrderID:   order.ID(),
		Recipient: email,
		Amount:    order.Amount(),
		Currency:  order.Currency(),
		Timestamp: n.now().UTC(),
	})
	return true, nil
}

// Sent returns a copy of the recorded notifications.
func (n *RecordingNotifier) Sent() []Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]Notification, len(n.sent))
	copy(out, n.sent)
	return out
}

func (n *RecordingNotifier) Clear() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = nil
}
