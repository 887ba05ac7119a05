package memory_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/DanielPopoola/ficmart-payment-processor/internal/application"
	"github.com/DanielPopoola/ficmart-payment-processor/internal/application/services/testhelpers"
	"github.com/DanielPopoola/ficmart-payment-processor/internal/domain"
	"github.com/DanielPopoola/ficmart-payment-processor/internal/infrastructure/persistence/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderRepository_Save(t *testing.T) {
	t.Run("insert assigns sequential ids", func(t *testing.T) {
		repo := memory.NewOrderRepository()
		first := testhelpers.NewCompletedOrder(t, "gw_auth_1")
		second := testhelpers.NewCompletedOrder(t, "gw_auth_2")

		saved, err := repo.Save(context.Background(), first)
		require.NoError(t, err)
		assert.Same(t, first, saved)
		_, err = repo.Save(context.Background(), second)
		require.NoError(t, err)

		assert.Equal(t, int64(1), first.ID())
		assert.Equal(t, int64(2), second.ID())
		assert.Equal(t, 2, repo.Count())
	})

	t.Run("update keeps the id", func(t *testing.T) {
		repo := memory.NewOrderRepository()
		order := testhelpers.NewPendingOrder(t)
		_, err := repo.Save(context.Background(), order)
		require.NoError(t, err)

		require.NoError(t, order.MarkGatewayFailed())
		_, err = repo.Save(context.Background(), order)
		require.NoError(t, err)

		found, err := repo.FindByID(context.Background(), order.ID())
		require.NoError(t, err)
		assert.Equal(t, domain.StatusFailedGateway, found.Status())
		assert.Equal(t, 1, repo.Count())
	})

	t.Run("stored copy is detached and masked", func(t *testing.T) {
		repo := memory.NewOrderRepository()
		order := testhelpers.NewAuthorizedOrder(t, "gw_auth_1")
		_, err := repo.Save(context.Background(), order)
		require.NoError(t, err)

		require.NoError(t, order.MarkCompleted())

		found, err := repo.FindByID(context.Background(), order.ID())
		require.NoError(t, err)
		assert.Equal(t, domain.StatusAuthorized, found.Status())
		assert.Equal(t, "1111", found.CardNumber())
	})

	t.Run("fail next save", func(t *testing.T) {
		repo := memory.NewOrderRepository()
		cause := errors.New("disk full")
		repo.FailNextSave(cause)

		_, err := repo.Save(context.Background(), testhelpers.NewCompletedOrder(t, "gw_auth_1"))

		storageErr, ok := application.IsStorageError(err)
		require.True(t, ok)
		assert.ErrorIs(t, storageErr, cause)
		assert.Equal(t, 0, repo.Count())

		_, err = repo.Save(context.Background(), testhelpers.NewCompletedOrder(t, "gw_auth_2"))
		assert.NoError(t, err)
	})

	t.Run("unknown id is a storage error", func(t *testing.T) {
		repo := memory.NewOrderRepository()
		order := domain.Reconstitute(9, decimal.NewFromInt(1), "USD", "1111",
			domain.StatusAuthorized, "gw_auth_1", time.Now(), time.Now())

		_, err := repo.Save(context.Background(), order)

		assert.ErrorIs(t, err, domain.ErrOrderNotFound)
		assert.Equal(t, application.KindStorage, application.Classify(err))
	})

	t.Run("canceled context", func(t *testing.T) {
		repo := memory.NewOrderRepository()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := repo.Save(ctx, testhelpers.NewCompletedOrder(t, "gw_auth_1"))

		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, application.KindStorage, application.Classify(err))
	})
}

func TestOrderRepository_ConcurrentSaves(t *testing.T) {
	repo := memory.NewOrderRepository()
	const n = 50

	orders := make([]*domain.Order, n)
	for i := range orders {
		orders[i] = testhelpers.NewCompletedOrder(t, "gw_auth_1")
	}

	var wg sync.WaitGroup
	for _, order := range orders {
		wg.Add(1)
		go func(o *domain.Order) {
			defer wg.Done()
			_, _ = repo.Save(context.Background(), o)
		}(order)
	}
	wg.Wait()

	seen := make(map[int64]bool)
	for _, o := range orders {
		require.True(t, o.HasID())
		assert.False(t, seen[o.ID()])
		seen[o.ID()] = true
	}
	assert.Equal(t, n, repo.Count())
}

func TestOrderRepository_FindStale(t *testing.T) {
	repo := memory.NewOrderRepository()
	ctx := context.Background()
	old := time.Now().Add(-2 * time.Hour)

	authorized := domain.Reconstitute(0, decimal.NewFromInt(10), "USD", "4242",
		domain.StatusAuthorized, "gw_auth_1", old, old.Add(time.Minute))
	pending := domain.Reconstitute(0, decimal.NewFromInt(10), "USD", "4242",
		domain.StatusPendingAuthorization, "", old, old)
	completed := domain.Reconstitute(0, decimal.NewFromInt(10), "USD", "4242",
		domain.StatusCompleted, "gw_auth_2", old, old)
	fresh := testhelpers.NewPendingOrder(t)

	for _, o := range []*domain.Order{authorized, pending, completed, fresh} {
		_, err := repo.Save(ctx, o)
		require.NoError(t, err)
	}

	statuses := []domain.OrderStatus{domain.StatusPendingAuthorization, domain.StatusAuthorized}
	stale, err := repo.FindStale(ctx, statuses, time.Now().Add(-time.Hour), 10)

	require.NoError(t, err)
	require.Len(t, stale, 2)
	assert.Equal(t, pending.ID(), stale[0].ID())
	assert.Equal(t, authorized.ID(), stale[1].ID())

	limited, err := repo.FindStale(ctx, statuses, time.Now().Add(-time.Hour), 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestOrderRepository_UpdateLocked(t *testing.T) {
	repo := memory.NewOrderRepository()
	ctx := context.Background()
	order := testhelpers.NewAuthorizedOrder(t, "gw_auth_1")
	_, err := repo.Save(ctx, order)
	require.NoError(t, err)

	skip := errors.New("skip")
	_, err = repo.UpdateLocked(ctx, order.ID(), func(o *domain.Order) error {
		_ = o.MarkUnexpectedFailure()
		return skip
	})
	assert.ErrorIs(t, err, skip)
	found, _ := repo.FindByID(ctx, order.ID())
	assert.Equal(t, domain.StatusAuthorized, found.Status())

	updated, err := repo.UpdateLocked(ctx, order.ID(), func(o *domain.Order) error {
		return o.MarkUnexpectedFailure()
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusFailedUnexpected, updated.Status())
	found, _ = repo.FindByID(ctx, order.ID())
	assert.Equal(t, domain.StatusFailedUnexpected, found.Status())

	_, err = repo.UpdateLocked(ctx, 404, func(*domain.Order) error { return nil })
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
}

func TestOrderRepository_CanceledContext(t *testing.T) {
	repo := memory.NewOrderRepository()
	saved, err := repo.Save(context.Background(), testhelpers.NewPendingOrder(t))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = repo.FindByID(ctx, saved.ID())
	_, isStorage := application.IsStorageError(err)
	assert.True(t, isStorage)
	assert.ErrorIs(t, err, context.Canceled)

	_, err = repo.FindStale(ctx, []domain.OrderStatus{domain.StatusPendingAuthorization}, time.Now().Add(time.Hour), 10)
	assert.ErrorIs(t, err, context.Canceled)

	called := false
	_, err = repo.UpdateLocked(ctx, saved.ID(), func(*domain.Order) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}
