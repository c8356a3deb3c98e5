package inventory

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/safwanadnan/bazaar/internal/domain/entity"
	"github.com/safwanadnan/bazaar/internal/domain/repository"
)

// rebuildPageSize how many ledger entries are replayed per page.
const rebuildPageSize = 500

// RebuildLevelUseCase recomputes a cached stock level by replaying the
// ledger from the beginning, for reconciliation and repair. The replay and
// the overwrite run in one transaction holding the level row lock, so a
// live commit can never interleave between the sum and the write.
type RebuildLevelUseCase struct {
	tx  TxRunner
	log zerolog.Logger
}

// NewRebuildLevelUseCase builds the use case.
func NewRebuildLevelUseCase(tx TxRunner, log zerolog.Logger) *RebuildLevelUseCase {
	return &RebuildLevelUseCase{tx: tx, log: log}
}

// Rebuild replays every committed movement for the pair in commit order,
// overwrites the cached row with the resulting sum and returns it. Running
// it twice in a row yields the same quantity; on an untouched pair it is a
// no-op that reports quantity 0.
func (uc *RebuildLevelUseCase) Rebuild(ctx context.Context, productID, storeID string) (*entity.StockLevel, error) {
	var rebuilt *entity.StockLevel
	err := uc.tx.Run(ctx, func(
		movements repository.MovementRepository,
		levels repository.LevelRepository,
		_ repository.IdempotencyKeyRepository,
	) error {
		current, err := levels.GetForUpdate(ctx, productID, storeID)
		if err != nil {
			return err
		}

		filter := repository.MovementFilter{ProductID: productID, StoreID: storeID}
		var sum int64
		for offset := 0; ; offset += rebuildPageSize {
			page, err := movements.List(ctx, filter, rebuildPageSize, offset)
			if err != nil {
				return err
			}
			for _, m := range page {
				sum += m.SignedQuantity()
			}
			if len(page) < rebuildPageSize {
				break
			}
		}

		if sum != current.Quantity {
			uc.log.Warn().
				Str("product_id", productID).
				Str("store_id", storeID).
				Int64("cached", current.Quantity).
				Int64("replayed", sum).
				Msg("stock level drift repaired by rebuild")
		}

		rebuilt = &entity.StockLevel{
			ProductID: productID,
			StoreID:   storeID,
			Quantity:  sum,
			Version:   current.Version,
			UpdatedAt: time.Now().UTC(),
		}
		return levels.Overwrite(ctx, rebuilt)
	})
	if err != nil {
		return nil, err
	}
	return rebuilt, nil
}
