package repository

import (
	"context"
	"time"

	"github.com/safwanadnan/bazaar/internal/domain/entity"
)

// MovementFilter narrows a ledger listing. Zero values mean "any".
type MovementFilter struct {
	ProductID string
	StoreID   string
	Type      string
	From      *time.Time
	To        *time.Time
}

// MovementRepository is the port for the append-only movement ledger.
// Append assigns the strictly increasing id and the UTC commit timestamp;
// committed movements are never mutated or removed. List returns commit
// order ascending and is restartable: the same filter can be requested
// again and only ever sees an append-only-extended result.
//
// Append performs no business validation; the caller runs it inside the
// same atomic unit that updates the stock level.
type MovementRepository interface {
	Append(ctx context.Context, movement *entity.StockMovement) error
	GetByID(ctx context.Context, id int64) (*entity.StockMovement, error)
	List(ctx context.Context, filter MovementFilter, limit, offset int) ([]*entity.StockMovement, error)
}
