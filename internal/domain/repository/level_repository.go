package repository

import (
	"context"

	"github.com/safwanadnan/bazaar/internal/domain/entity"
)

// LevelRepository is the port for the materialized stock level per
// (product, store) pair.
//
// Get returns a zero-valued level (quantity 0, version 0) when no row
// exists yet; rows are created lazily by the first ApplyDelta or rebuild.
//
// ApplyDelta adds delta to the stored quantity conditioned on the stored
// version still equaling expectedVersion, incrementing the version by one.
// It returns domain.ErrConcurrentModification when another commit advanced
// the row first. A missing row and an existing row at the expected version
// are treated alike, so a version 0 row left by a rebuild accepts the
// pair's first commit.
//
// GetForUpdate locks the row for the rest of the transaction, materializing
// it first when absent; used by rebuild so reconciliation cannot interleave
// with a live commit. Overwrite replaces the cached quantity (rebuild
// only); it never touches the version of an existing row.
type LevelRepository interface {
	Get(ctx context.Context, productID, storeID string) (*entity.StockLevel, error)
	ApplyDelta(ctx context.Context, productID, storeID string, delta, expectedVersion int64) (*entity.StockLevel, error)
	GetForUpdate(ctx context.Context, productID, storeID string) (*entity.StockLevel, error)
	Overwrite(ctx context.Context, level *entity.StockLevel) error
	ListByStore(ctx context.Context, storeID string, limit, offset int) ([]*entity.StockLevel, error)
}
