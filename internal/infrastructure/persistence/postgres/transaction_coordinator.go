package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// TransactionCoordinator runs repository work inside a single transaction
type TransactionCoordinator struct {
	pool *pgxpool.Pool
}

func NewTransactionCoordinator(pool *pgxpool.Pool) *TransactionCoordinator {
	return &TransactionCoordinator{
		pool: pool,
	}
}

// WithTransaction executes a function within a database transaction.
// The function receives a repository bound to the transaction.
func (tc *TransactionCoordinator) WithTransaction(
	ctx context.Context,
	fn func(ctx context.Context, orderRepo *OrderRepository) error,
) error {
	tx, err := tc.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	txOrderRepo := &OrderRepository{
		pool: tc.pool,
		q:    tx,
	}

	if err := fn(ctx, txOrderRepo); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
