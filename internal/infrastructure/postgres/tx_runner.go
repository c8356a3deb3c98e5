package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/safwanadnan/bazaar/internal/application/inventory"
	"github.com/safwanadnan/bazaar/internal/domain/repository"
)

// Ensure TxRunner implements inventory.TxRunner.
var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner executes callbacks inside one PostgreSQL transaction.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner builds the runner over the pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run begins a transaction, executes fn with repositories bound to it and
// commits, or rolls everything back when fn fails. A failed conditional
// level update therefore also discards the ledger append made in the same
// callback; no partial effect ever survives.
func (r *TxRunner) Run(ctx context.Context, fn func(
	movements repository.MovementRepository,
	levels repository.LevelRepository,
	keys repository.IdempotencyKeyRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	movements := NewMovementRepository(tx)
	levels := NewLevelRepository(tx)
	keys := NewIdempotencyKeyRepository(tx)

	if err := fn(movements, levels, keys); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
