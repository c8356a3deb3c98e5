package repository

import (
	"context"

	"github.com/safwanadnan/bazaar/internal/domain/entity"
)

// StoreRepository defines the persistence port for Store (DIP).
type StoreRepository interface {
	Create(ctx context.Context, store *entity.Store) error
	GetByID(ctx context.Context, id string) (*entity.Store, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Store, error)
}
