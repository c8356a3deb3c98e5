package inventory

import (
	"context"

	"github.com/safwanadnan/bazaar/internal/domain/repository"
)

// TxRunner executes fn inside one atomic unit: the ledger append, the
// conditional level update and the idempotency-key record either all commit
// or none do. Implemented by the postgres adapter; tests supply an
// in-memory runner.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movements repository.MovementRepository,
		levels repository.LevelRepository,
		keys repository.IdempotencyKeyRepository,
	) error) error
}
