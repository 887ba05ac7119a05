package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/DanielPopoola/ficmart-payment-processor/internal/application"
	"github.com/DanielPopoola/ficmart-payment-processor/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrOrderNotFound = domain.ErrOrderNotFound

const orderColumns = `id, amount::text, currency, card_number_last4, status,
		       gateway_transaction_id, created_at, updated_at`

type OrderRepository struct {
	pool *pgxpool.Pool
	q    Executor
}

func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool, q: pool}
}

// Save inserts a new order and assigns its id, or updates an order that already has one.
func (r *OrderRepository) Save(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if order.HasID() {
		if err := r.update(ctx, order); err != nil {
			return nil, application.NewStorageError("update order", err)
		}
		return order, nil
	}

	if err := r.insert(ctx, order); err != nil {
		return nil, application.NewStorageError("insert order", err)
	}
	return order, nil
}

func (r *OrderRepository) insert(ctx context.Context, order *domain.Order) error {
	query := `
		INSERT INTO orders (
			amount, currency, card_number_last4, status,
			gateway_transaction_id, created_at, updated_at
		) VALUES ($1::numeric, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	m := toDBModel(order)
	var id int64
	err := r.q.QueryRow(ctx, query,
		m.Amount,
		m.Currency,
		m.CardNumberLast4,
		m.Status,
		m.GatewayTransactionID,
		m.CreatedAt,
		m.UpdatedAt,
	).Scan(&id)
	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}

	return order.AssignID(id)
}

func (r *OrderRepository) update(ctx context.Context, order *domain.Order) error {
	query := `
		UPDATE orders
		SET status = $1,
			gateway_transaction_id = $2,
			updated_at = $3
		WHERE id = $4
	`

	m := toDBModel(order)
	result, err := r.q.Exec(ctx, query,
		m.Status,
		m.GatewayTransactionID,
		m.UpdatedAt,
		m.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrOrderNotFound
	}
	return nil
}

// FindByID retrieves an order
func (r *OrderRepository) FindByID(ctx context.Context, id int64) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	row := r.q.QueryRow(ctx, query, id)
	return scanOrder(row)
}

func (r *OrderRepository) findByIDForUpdate(ctx context.Context, id int64) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1 FOR UPDATE`

	row := r.q.QueryRow(ctx, query, id)
	return scanOrder(row)
}

// FindStale finds orders in one of statuses that have not changed since olderThan, oldest first
func (r *OrderRepository) FindStale(ctx context.Context, statuses []domain.OrderStatus, olderThan time.Time, limit int) ([]*domain.Order, error) {
	query := `SELECT ` + orderColumns + `
		FROM orders
		WHERE status = ANY($1)
		  AND updated_at < $2
		ORDER BY updated_at ASC
		LIMIT $3
	`

	names := make([]string, len(statuses))
	for i, s := range statuses {
		names[i] = string(s)
	}

	rows, err := r.q.Query(ctx, query, names, olderThan, limit)
	if err != nil {
		return nil, fmt.Errorf("query stale orders: %w", err)
	}

	results, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*domain.Order, error) {
		return scanOrder(row)
	})
	if err != nil {
		return nil, fmt.Errorf("scan stale orders: %w", err)
	}
	return results, nil
}

// UpdateLocked loads the order under a row lock, applies fn and writes the result back.
// Errors returned by fn abort the transaction and are returned unchanged.
func (r *OrderRepository) UpdateLocked(ctx context.Context, id int64, fn func(*domain.Order) error) (*domain.Order, error) {
	var updated *domain.Order
	err := NewTransactionCoordinator(r.pool).WithTransaction(ctx, func(ctx context.Context, repo *OrderRepository) error {
		order, err := repo.findByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := fn(order); err != nil {
			return err
		}
		if err := repo.update(ctx, order); err != nil {
			return err
		}
		updated = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// scanOrder converts a database row into a domain Order.
// Returns ErrOrderNotFound if the row doesn't exist.
func scanOrder(row pgx.Row) (*domain.Order, error) {
	var m OrderModel
	err := row.Scan(
		&m.ID, &m.Amount, &m.Currency, &m.CardNumberLast4, &m.Status,
		&m.GatewayTransactionID, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to scan order: %w", err)
	}
	return toDomainModel(m)
}
