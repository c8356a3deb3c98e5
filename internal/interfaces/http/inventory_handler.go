package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/safwanadnan/bazaar/internal/application/dto"
	"github.com/safwanadnan/bazaar/internal/application/inventory"
	"github.com/safwanadnan/bazaar/internal/domain/entity"
	"github.com/safwanadnan/bazaar/internal/domain/repository"
)

// MovementCommitter commits one validated movement atomically.
type MovementCommitter interface {
	Commit(ctx context.Context, in inventory.MovementInput) (*inventory.CommitResult, error)
}

// LevelRebuilder replays the ledger to rebuild a cached level.
type LevelRebuilder interface {
	Rebuild(ctx context.Context, productID, storeID string) (*entity.StockLevel, error)
}

// StockQueryService read side of the ledger and levels.
type StockQueryService interface {
	GetLevel(ctx context.Context, productID, storeID string) (*dto.LevelResponse, error)
	ListMovements(ctx context.Context, filter repository.MovementFilter, limit, offset int) (*dto.MovementListResponse, error)
	ListStoreLevels(ctx context.Context, storeID string, limit, offset int) (*dto.LevelListResponse, error)
}

// InventoryHandler handles movement submission, ledger listing, level reads
// and rebuilds. Every mutating call funnels through the committer; the
// handler never touches the ledger or the levels directly.
type InventoryHandler struct {
	committer MovementCommitter
	rebuilder LevelRebuilder
	queries   StockQueryService
}

// NewInventoryHandler builds the handler.
func NewInventoryHandler(committer MovementCommitter, rebuilder LevelRebuilder, queries StockQueryService) *InventoryHandler {
	return &InventoryHandler{committer: committer, rebuilder: rebuilder, queries: queries}
}

// SubmitMovement godoc
// @Summary      Submit a stock movement
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SubmitMovementRequest  true  "product_id, store_id, type (receipt|sale|removal), quantity, notes, idempotency_key (optional)"
// @Success      201  {object}  dto.SubmitMovementResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/movements [post]
func (h *InventoryHandler) SubmitMovement(c *fiber.Ctx) error {
	var in dto.SubmitMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
	}
	result, err := h.committer.Commit(c.Context(), inventory.MovementInput{
		ProductID:      in.ProductID,
		StoreID:        in.StoreID,
		Type:           in.Type,
		Quantity:       in.Quantity,
		Notes:          in.Notes,
		IdempotencyKey: in.IdempotencyKey,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.SubmitMovementResponse{
		MovementID:        result.Movement.ID,
		ResultingQuantity: result.Quantity,
		Version:           result.Version,
		CommittedAt:       result.Movement.CommittedAt,
	})
}

// ListMovements godoc
// @Summary      List ledger movements
// @Tags         inventory
// @Produce      json
// @Param        product_id  query  string  false  "Filter by product"
// @Param        store_id    query  string  false  "Filter by store"
// @Param        type        query  string  false  "receipt, sale or removal"
// @Param        from        query  string  false  "RFC 3339 lower bound"
// @Param        to          query  string  false  "RFC 3339 upper bound"
// @Success      200  {object}  dto.MovementListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	from, err := timeParam(c, "from")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from must be RFC 3339"})
	}
	to, err := timeParam(c, "to")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to must be RFC 3339"})
	}
	filter := repository.MovementFilter{
		ProductID: c.Query("product_id"),
		StoreID:   c.Query("store_id"),
		Type:      c.Query("type"),
		From:      from,
		To:        to,
	}
	limit, offset := pageParams(c)
	list, err := h.queries.ListMovements(c.Context(), filter, limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// GetLevel godoc
// @Summary      Current stock level for a (product, store) pair
// @Tags         inventory
// @Produce      json
// @Param        productID  path  string  true  "Product id"
// @Param        storeID    path  string  true  "Store id"
// @Success      200  {object}  dto.LevelResponse
// @Router       /api/levels/{productID}/{storeID} [get]
func (h *InventoryHandler) GetLevel(c *fiber.Ctx) error {
	level, err := h.queries.GetLevel(c.Context(), c.Params("productID"), c.Params("storeID"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(level)
}

// RebuildLevel godoc
// @Summary      Rebuild a cached level by replaying the ledger
// @Description  Administrative reconciliation entry point.
// @Tags         inventory
// @Produce      json
// @Param        productID  path  string  true  "Product id"
// @Param        storeID    path  string  true  "Store id"
// @Success      200  {object}  dto.LevelResponse
// @Router       /api/levels/{productID}/{storeID}/rebuild [post]
func (h *InventoryHandler) RebuildLevel(c *fiber.Ctx) error {
	level, err := h.rebuilder.Rebuild(c.Context(), c.Params("productID"), c.Params("storeID"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.LevelResponse{
		ProductID: level.ProductID,
		StoreID:   level.StoreID,
		Quantity:  level.Quantity,
		Version:   level.Version,
		UpdatedAt: level.UpdatedAt,
	})
}

// ListStoreLevels godoc
// @Summary      Levels of every product held at a store
// @Tags         inventory
// @Produce      json
// @Param        id  path  string  true  "Store id"
// @Success      200  {object}  dto.LevelListResponse
// @Router       /api/stores/{id}/levels [get]
func (h *InventoryHandler) ListStoreLevels(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	list, err := h.queries.ListStoreLevels(c.Context(), c.Params("id"), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}
