package repository

import (
	"context"

	"github.com/safwanadnan/bazaar/internal/domain/entity"
)

// ProductRepository defines the persistence port for Product (DIP).
// The catalog is create-and-read only; products are never updated or
// deleted by the core.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetBySKU(ctx context.Context, sku string) (*entity.Product, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Product, error)
}
