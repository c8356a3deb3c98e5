package inventory

import (
	"context"

	"github.com/safwanadnan/bazaar/internal/application/dto"
	"github.com/safwanadnan/bazaar/internal/domain/repository"
)

// StockQueryUseCase read side of the ledger and the level cache.
type StockQueryUseCase struct {
	movements repository.MovementRepository
	levels    repository.LevelRepository
}

// NewStockQueryUseCase builds the use case over pool-backed repositories.
func NewStockQueryUseCase(movements repository.MovementRepository, levels repository.LevelRepository) *StockQueryUseCase {
	return &StockQueryUseCase{movements: movements, levels: levels}
}

// GetLevel returns the current level for the pair; quantity 0 and version 0
// when no movement was ever recorded against it.
func (uc *StockQueryUseCase) GetLevel(ctx context.Context, productID, storeID string) (*dto.LevelResponse, error) {
	level, err := uc.levels.Get(ctx, productID, storeID)
	if err != nil {
		return nil, err
	}
	return &dto.LevelResponse{
		ProductID: level.ProductID,
		StoreID:   level.StoreID,
		Quantity:  level.Quantity,
		Version:   level.Version,
		UpdatedAt: level.UpdatedAt,
	}, nil
}

// ListMovements returns ledger entries matching the filter in commit order
// ascending.
func (uc *StockQueryUseCase) ListMovements(ctx context.Context, filter repository.MovementFilter, limit, offset int) (*dto.MovementListResponse, error) {
	list, err := uc.movements.List(ctx, filter, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, dto.MovementResponse{
			ID:          m.ID,
			ProductID:   m.ProductID,
			StoreID:     m.StoreID,
			Type:        m.Type,
			Quantity:    m.Quantity,
			Notes:       m.Notes,
			CommittedAt: m.CommittedAt,
		})
	}
	return &dto.MovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// ListStoreLevels returns the levels of every product held at a store.
func (uc *StockQueryUseCase) ListStoreLevels(ctx context.Context, storeID string, limit, offset int) (*dto.LevelListResponse, error) {
	list, err := uc.levels.ListByStore(ctx, storeID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.LevelResponse, 0, len(list))
	for _, l := range list {
		items = append(items, dto.LevelResponse{
			ProductID: l.ProductID,
			StoreID:   l.StoreID,
			Quantity:  l.Quantity,
			Version:   l.Version,
			UpdatedAt: l.UpdatedAt,
		})
	}
	return &dto.LevelListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}
