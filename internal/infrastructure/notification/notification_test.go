package notification_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"

	"github.com/DanielPopoola/ficmart-payment-processor/internal/application"
	"github.com/DanielPopoola/ficmart-payment-processor/internal/domain"
	"github.com/DanielPopoola/ficmart-payment-processor/internal/infrastructure/notification"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completedOrder(t *testing.T, id int64) *domain.Order {
	t.Helper()
	order, err := domain.NewOrder(decimal.RequireFromString("42.50"), "EUR", "4111111111111111")
	require.NoError(t, err)
	require.NoError(t, order.AssignID(id))
	require.NoError(t, order.MarkAuthorized("gw_auth_1"))
	require.NoError(t, order.MarkCompleted())
	return order
}

func TestRecordingNotifier_RecordsConfirmation(t *testing.T) {
	n := notification.NewRecordingNotifier()

	ok, err := n.SendConfirmation(context.Background(), completedOrder(t, 7), "buyer@example.com")

	require.NoError(t, err)
	assert.True(t, ok)
	sent := n.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, notification.TypePaymentConfirmation, sent[0].Type)
	assert.Equal(t, int64(7), sent[0].OrderID)
	assert.Equal(t, "buyer@example.com", sent[0].Recipient)
	assert.True(t, sent[0].Amount.Equal(decimal.RequireFromString("42.50")))
	assert.Equal(t, "EUR", sent[0].Currency)
	assert.False(t, sent[0].Timestamp.IsZero())
}

func TestRecordingNotifier_FailNextSendIsOneShot(t *testing.T) {
	n := notification.NewRecordingNotifier()
	n.FailNextSend(nil)

	ok, err := n.SendConfirmation(context.Background(), completedOrder(t, 1), "a@example.com")

	assert.False(t, ok)
	notifyErr, isNotifier := application.IsNotifierError(err)
	require.True(t, isNotifier)
	assert.ErrorIs(t, notifyErr, notification.ErrSimulatedSend)
	assert.Empty(t, n.Sent())

	ok, err = n.SendConfirmation(context.Background(), completedOrder(t, 1), "a@example.com")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Len(t, n.Sent(), 1)
}

func TestRecordingNotifier_FailNextSendCustomError(t *testing.T) {
	n := notification.NewRecordingNotifier()
	smtpDown := errors.New("smtp down")
	n.FailNextSend(smtpDown)

	_, err := n.SendConfirmation(context.Background(), completedOrder(t, 1), "a@example.com")

	assert.ErrorIs(t, err, smtpDown)
}

func TestRecordingNotifier_SentReturnsCopyAndClear(t *testing.T) {
	n := notification.NewRecordingNotifier()
	_, err := n.SendConfirmation(context.Background(), completedOrder(t, 1), "a@example.com")
	require.NoError(t, err)

	sent := n.Sent()
	sent[0].Recipient = "changed"
	assert.Equal(t, "a@example.com", n.Sent()[0].Recipient)

	n.Clear()
	assert.Empty(t, n.Sent())
}

func TestRecordingNotifier_ConcurrentSends(t *testing.T) {
	n := notification.NewRecordingNotifier()
	orders := make([]*domain.Order, 20)
	for i := range orders {
		orders[i] = completedOrder(t, int64(i+1))
	}

	var wg sync.WaitGroup
	for _, order := range orders {
		wg.Add(1)
		go func(order *domain.Order) {
			defer wg.Done()
			_, _ = n.SendConfirmation(context.Background(), order, "a@example.com")
		}(order)
	}
	wg.Wait()

	assert.Len(t, n.Sent(), 20)
}

func TestLogNotifier_LogsMaskedConfirmation(t *testing.T) {
	var buf bytes.Buffer
	n := notification.NewLogNotifier(slog.New(slog.NewTextHandler(&buf, nil)))

	ok, err := n.SendConfirmation(context.Background(), completedOrder(t, 3), "buyer@example.com")

	require.NoError(t, err)
	assert.True(t, ok)
	out := buf.String()
	assert.Contains(t, out, "payment confirmation sent")
	assert.Contains(t, out, "order_id=3")
	assert.Contains(t, out, "recipient=buyer@example.com")
	assert.Contains(t, out, "amount=42.50")
	assert.NotContains(t, out, "4111111111111111")
}

func TestLogNotifier_CanceledContext(t *testing.T) {
	n := notification.NewLogNotifier(slog.New(slog.DiscardHandler))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ok, err := n.SendConfirmation(ctx, completedOrder(t, 3), "buyer@example.com")

	assert.False(t, ok)
	assert.ErrorIs(t, err, context.Canceled)
}
