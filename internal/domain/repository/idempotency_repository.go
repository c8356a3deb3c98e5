package repository

import "context"

// IdempotencyKeyRepository tracks caller-supplied idempotency keys per
// (product, store) pair so a retried submission is rejected instead of
// double-applied. Record runs inside the commit transaction and returns
// domain.ErrDuplicate when the key was already recorded.
type IdempotencyKeyRepository interface {
	Seen(ctx context.Context, productID, storeID, key string) (bool, error)
	Record(ctx context.Context, productID, storeID, key string, movementID int64) error
}
