package worker

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/DanielPopoola/ficmart-payment-processor/internal/domain"
)

var errNoLongerStale = errors.New("order is no longer stale")

// staleStatuses are the statuses an order only sits in while a request is in flight.
var staleStatuses = []domain.OrderStatus{
	domain.StatusPendingAuthorization,
	domain.StatusAuthorized,
}

type StaleOrderStore interface {
	FindStale(ctx context.Context, statuses []domain.OrderStatus, olderThan time.Time, limit int) ([]*domain.Order, error)
	UpdateLocked(ctx context.Context, id int64, fn func(*domain.Order) error) (*domain.Order, error)
}

type SweepMetrics interface {
	RecordStaleOrdersSwept(n int)
}

// StaleOrderSweeper fails orders abandoned mid-workflow, e.g. by a crash between
// the pre-save and the final save.
type StaleOrderSweeper struct {
	store      StaleOrderStore
	interval   time.Duration
	staleAfter time.Duration
	batchSize  int
	logger     *slog.Logger
	metrics    SweepMetrics
	now        func() time.Time
}

func NewStaleOrderSweeper(
	store StaleOrderStore,
	interval time.Duration,
	staleAfter time.Duration,
	batchSize int,
	logger *slog.Logger,
) *StaleOrderSweeper {
	return &StaleOrderSweeper{
		store:      store,
		interval:   interval,
		staleAfter: staleAfter,
		batchSize:  batchSize,
		logger:     logger,
		now:        time.Now,
	}
}

func (w *StaleOrderSweeper) WithMetrics(metrics SweepMetrics) *StaleOrderSweeper {
	w.metrics = metrics
	return w
}

// WithClock is for tests.
func (w *StaleOrderSweeper) WithClock(now func() time.Time) *StaleOrderSweeper {
	w.now = now
	return w
}

func (w *StaleOrderSweeper) Start(ctx context.Context) {
	w.logger.Info("stale order sweeper started", "interval", w.interval, "stale_after", w.staleAfter)
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	if _, err := w.Sweep(ctx); err != nil {
		w.logger.Error("stale order sweep failed", "error", err)
	}

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("stale order sweeper stopping")
			return
		case <-ticker.C:
			if _, err := w.Sweep(ctx); err != nil {
				w.logger.Error("stale order sweep failed", "error", err)
			}
		}
	}
}

// Sweep runs one pass and reports how many orders were failed.
func (w *StaleOrderSweeper) Sweep(ctx context.Context) (int, error) {
	cutoff := w.now().Add(-w.staleAfter)

	stale, err := w.store.FindStale(ctx, staleStatuses, cutoff, w.batchSize)
	if err != nil {
		return 0, err
	}

	if len(stale) == 0 {
		return 0, nil
	}

	var swept, skipped int

	for _, order := range stale {
		err := w.failOrder(ctx, order.ID(), cutoff)
		switch {
		case err == nil:
			swept++
			w.logger.Warn("stale order failed",
				"order_id", order.ID(),
				"previous_status", order.Status(),
				"last_update", order.UpdatedAt())
		case errors.Is(err, errNoLongerStale):
			skipped++
		default:
			w.logger.Error("failed to sweep order",
				"order_id", order.ID(),
				"error", err)
		}
	}

	if w.metrics != nil && swept > 0 {
		w.metrics.RecordStaleOrdersSwept(swept)
	}

	w.logger.Info("processed stale order sweep",
		"found", len(stale),
		"swept", swept,
		"skipped", skipped)

	return swept, nil
}

// failOrder re-checks the order under the row lock so a request finishing concurrently wins.
func (w *StaleOrderSweeper) failOrder(ctx context.Context, id int64, cutoff time.Time) error {
	_, err := w.store.UpdateLocked(ctx, id, func(order *domain.Order) error {
		if order.IsTerminal() || !order.UpdatedAt().Before(cutoff) {
			return errNoLongerStale
		}
		return order.MarkUnexpectedFailure()
	})
	return err
}
