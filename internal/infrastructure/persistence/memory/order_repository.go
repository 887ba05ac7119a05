// Package memory holds an in-process order store for local runs and tests.
package memory

import (
	"context"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/DanielPopoola/ficmart-payment-processor/internal/application"
	"github.com/DanielPopoola/ficmart-payment-processor/internal/domain"
)

// OrderRepository keeps orders in a map. Ids are assigned sequentially under the mutex,
// so concurrent saves never share an id. Stored copies keep only the last four card digits.
type OrderRepository struct {
	mu       sync.RWMutex
	orders   map[int64]*domain.Order
	nextID   int64
	failNext error
}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{
		orders: make(map[int64]*domain.Order),
	}
}

// FailNextSave makes the next Save fail with a StorageError wrapping err.
func (r *OrderRepository) FailNextSave(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failNext = err
}

func (r *OrderRepository) Save(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, application.NewStorageError("save order", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.failNext != nil {
		err := r.failNext
		r.failNext = nil
		return nil, application.NewStorageError("save order", err)
	}

	if order.HasID() {
		if _, exists := r.orders[order.ID()]; !exists {
			return nil, application.NewStorageError("update order", domain.ErrOrderNotFound)
		}
		r.orders[order.ID()] = storedCopy(order)
		return order, nil
	}

	r.nextID++
	if err := order.AssignID(r.nextID); err != nil {
		return nil, application.NewStorageError("insert order", err)
	}
	r.orders[order.ID()] = storedCopy(order)
	return order, nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id int64) (*domain.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, application.NewStorageError("find order", err)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	return order.Clone(), nil
}

// FindStale returns orders in one of statuses last updated before olderThan, oldest first.
func (r *OrderRepository) FindStale(ctx context.Context, statuses []domain.OrderStatus, olderThan time.Time, limit int) ([]*domain.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, application.NewStorageError("find stale orders", err)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var stale []*domain.Order
	for _, order := range r.orders {
		if slices.Contains(statuses, order.Status()) && order.UpdatedAt().Before(olderThan) {
			stale = append(stale, order.Clone())
		}
	}

	sort.Slice(stale, func(i, j int) bool {
		return stale[i].UpdatedAt().Before(stale[j].UpdatedAt())
	})
	if limit > 0 && len(stale) > limit {
		stale = stale[:limit]
	}
	return stale, nil
}

// UpdateLocked applies fn to the stored order while holding the write lock.
// Errors returned by fn leave the stored order untouched and are returned unchanged.
func (r *OrderRepository) UpdateLocked(ctx context.Context, id int64, fn func(*domain.Order) error) (*domain.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, application.NewStorageError("update order", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.orders[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}

	order := stored.Clone()
	if err := fn(order); err != nil {
		return nil, err
	}
	r.orders[id] = storedCopy(order)
	return order, nil
}

func (r *OrderRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.orders)
}

func storedCopy(order *domain.Order) *domain.Order {
	return domain.Reconstitute(
		order.ID(),
		order.Amount(),
		order.Currency(),
		domain.LastFour(order.CardNumber()),
		order.Status(),
		order.GatewayTransactionID(),
		order.CreatedAt(),
		order.UpdatedAt(),
	)
}
