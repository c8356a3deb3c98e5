package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/safwanadnan/bazaar/internal/domain"
	"github.com/safwanadnan/bazaar/internal/domain/entity"
	"github.com/safwanadnan/bazaar/internal/domain/repository"
)

var _ repository.LevelRepository = (*LevelRepo)(nil)

// LevelRepo implements LevelRepository over PostgreSQL (pool or tx). The
// version column is the optimistic-lock token: every successful ApplyDelta
// advances it by exactly one.
type LevelRepo struct {
	q Querier
}

// NewLevelRepository builds the adapter. Pass a pool or tx (Querier).
func NewLevelRepository(q Querier) *LevelRepo {
	return &LevelRepo{q: q}
}

// Get returns the current level, or a zero-valued one (quantity 0,
// version 0) when no movement was ever committed for the pair.
func (r *LevelRepo) Get(ctx context.Context, productID, storeID string) (*entity.StockLevel, error) {
	query := `
		SELECT product_id, store_id, quantity, version, updated_at
		FROM stock_levels WHERE product_id = $1 AND store_id = $2`
	var l entity.StockLevel
	err := r.q.QueryRow(ctx, query, productID, storeID).Scan(
		&l.ProductID, &l.StoreID, &l.Quantity, &l.Version, &l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.StockLevel{ProductID: productID, StoreID: storeID}, nil
		}
		return nil, fmt.Errorf("get stock level: %w", err)
	}
	return &l, nil
}

// ApplyDelta adds delta conditioned on the stored version still equaling
// expectedVersion, as one upsert. A missing row and an existing row at the
// expected version (including version 0 rows materialized by a rebuild)
// both succeed; a row whose version moved on makes the conditional update
// match nothing, and the empty RETURNING set surfaces as
// domain.ErrConcurrentModification so the caller can re-read and retry.
func (r *LevelRepo) ApplyDelta(ctx context.Context, productID, storeID string, delta, expectedVersion int64) (*entity.StockLevel, error) {
	query := `
		INSERT INTO stock_levels (product_id, store_id, quantity, version, updated_at)
		VALUES ($1, $2, $3, $4 + 1, now())
		ON CONFLICT (product_id, store_id) DO UPDATE
		SET quantity = stock_levels.quantity + $3,
		    version = stock_levels.version + 1,
		    updated_at = now()
		WHERE stock_levels.version = $4
		RETURNING product_id, store_id, quantity, version, updated_at`
	var l entity.StockLevel
	err := r.q.QueryRow(ctx, query, productID, storeID, delta, expectedVersion).Scan(
		&l.ProductID, &l.StoreID, &l.Quantity, &l.Version, &l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrConcurrentModification
		}
		return nil, fmt.Errorf("apply stock level delta: %w", err)
	}
	return &l, nil
}

// GetForUpdate locks the level row for the rest of the transaction
// (SELECT FOR UPDATE). When the pair has no row yet, one is materialized at
// quantity 0, version 0 first, so there is always a row to lock and a
// concurrent commit cannot slip in between a rebuild's replay and its
// overwrite. Must run inside a transaction.
func (r *LevelRepo) GetForUpdate(ctx context.Context, productID, storeID string) (*entity.StockLevel, error) {
	ensure := `
		INSERT INTO stock_levels (product_id, store_id, quantity, version, updated_at)
		VALUES ($1, $2, 0, 0, now())
		ON CONFLICT (product_id, store_id) DO NOTHING`
	if _, err := r.q.Exec(ctx, ensure, productID, storeID); err != nil {
		return nil, fmt.Errorf("materialize stock level row: %w", err)
	}
	query := `
		SELECT product_id, store_id, quantity, version, updated_at
		FROM stock_levels WHERE product_id = $1 AND store_id = $2
		FOR UPDATE`
	var l entity.StockLevel
	err := r.q.QueryRow(ctx, query, productID, storeID).Scan(
		&l.ProductID, &l.StoreID, &l.Quantity, &l.Version, &l.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("get stock level for update: %w", err)
	}
	return &l, nil
}

// Overwrite replaces the cached quantity (rebuild path). The version of an
// existing row is left alone: it counts commits, and a rebuild is not a
// commit.
func (r *LevelRepo) Overwrite(ctx context.Context, level *entity.StockLevel) error {
	query := `
		INSERT INTO stock_levels (product_id, store_id, quantity, version, updated_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (product_id, store_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = now()`
	_, err := r.q.Exec(ctx, query, level.ProductID, level.StoreID, level.Quantity, level.Version)
	if err != nil {
		return fmt.Errorf("overwrite stock level: %w", err)
	}
	return nil
}

// ListByStore returns the levels of every product held at a store.
func (r *LevelRepo) ListByStore(ctx context.Context, storeID string, limit, offset int) ([]*entity.StockLevel, error) {
	query := `
		SELECT product_id, store_id, quantity, version, updated_at
		FROM stock_levels WHERE store_id = $1
		ORDER BY updated_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, storeID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock levels by store: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockLevel
	for rows.Next() {
		var l entity.StockLevel
		if err := rows.Scan(&l.ProductID, &l.StoreID, &l.Quantity, &l.Version, &l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock level: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}
