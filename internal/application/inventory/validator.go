package inventory

import (
	"context"

	"github.com/safwanadnan/bazaar/internal/domain"
	"github.com/safwanadnan/bazaar/internal/domain/entity"
	"github.com/safwanadnan/bazaar/internal/domain/repository"
)

// MovementInput is a candidate movement as submitted by a caller, before it
// has an id or a timestamp.
type MovementInput struct {
	ProductID      string
	StoreID        string
	Type           string
	Quantity       int64
	Notes          string
	IdempotencyKey string
}

// Validator enforces the business rules a movement must pass before it may
// commit. It only reads shared state, never mutates it, so running it again
// on retry is free of side effects.
type Validator struct {
	products repository.ProductRepository
	stores   repository.StoreRepository
	keys     repository.IdempotencyKeyRepository
}

// NewValidator builds the validator.
func NewValidator(
	products repository.ProductRepository,
	stores repository.StoreRepository,
	keys repository.IdempotencyKeyRepository,
) *Validator {
	return &Validator{products: products, stores: stores, keys: keys}
}

// Validate checks the candidate against currentLevel. Rules in order:
// positive quantity and known type, product and store exist, sales and
// removals may not drive the level negative, a previously seen idempotency
// key is rejected.
func (v *Validator) Validate(ctx context.Context, in MovementInput, currentLevel int64) error {
	if in.Quantity <= 0 {
		return domain.ErrInvalidInput
	}
	if !entity.ValidMovementType(in.Type) {
		return domain.ErrInvalidInput
	}

	product, err := v.products.GetByID(ctx, in.ProductID)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	store, err := v.stores.GetByID(ctx, in.StoreID)
	if err != nil {
		return err
	}
	if store == nil {
		return domain.ErrNotFound
	}

	if in.Type == entity.MovementTypeSale || in.Type == entity.MovementTypeRemoval {
		if currentLevel-in.Quantity < 0 {
			return domain.ErrInsufficientStock
		}
	}

	if in.IdempotencyKey != "" {
		seen, err := v.keys.Seen(ctx, in.ProductID, in.StoreID, in.IdempotencyKey)
		if err != nil {
			return err
		}
		if seen {
			return domain.ErrDuplicate
		}
	}
	return nil
}
