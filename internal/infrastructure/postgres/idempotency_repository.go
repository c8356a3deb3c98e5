package postgres

import (
	"context"
	"fmt"

	"github.com/safwanadnan/bazaar/internal/domain"
	"github.com/safwanadnan/bazaar/internal/domain/repository"
)

var _ repository.IdempotencyKeyRepository = (*IdempotencyKeyRepo)(nil)

// IdempotencyKeyRepo implements IdempotencyKeyRepository over PostgreSQL
// (pool or tx). The composite primary key (product_id, store_id, key) is
// what makes Record exact-once.
type IdempotencyKeyRepo struct {
	q Querier
}

// NewIdempotencyKeyRepository builds the adapter. Pass a pool or tx (Querier).
func NewIdempotencyKeyRepository(q Querier) *IdempotencyKeyRepo {
	return &IdempotencyKeyRepo{q: q}
}

// Seen reports whether the key was already recorded for the pair.
func (r *IdempotencyKeyRepo) Seen(ctx context.Context, productID, storeID, key string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM movement_idempotency_keys
			WHERE product_id = $1 AND store_id = $2 AND idempotency_key = $3
		)`
	var seen bool
	if err := r.q.QueryRow(ctx, query, productID, storeID, key).Scan(&seen); err != nil {
		return false, fmt.Errorf("check idempotency key: %w", err)
	}
	return seen, nil
}

// Record stores the key next to the movement it committed. A primary-key
// violation means a concurrent submission already used it, surfaced as
// domain.ErrDuplicate so the transaction aborts whole.
func (r *IdempotencyKeyRepo) Record(ctx context.Context, productID, storeID, key string, movementID int64) error {
	query := `
		INSERT INTO movement_idempotency_keys (product_id, store_id, idempotency_key, movement_id)
		VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(ctx, query, productID, storeID, key, movementID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("record idempotency key: %w", err)
	}
	return nil
}
