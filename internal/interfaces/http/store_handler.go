package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/safwanadnan/bazaar/internal/application/dto"
)

// StoreService is what the store handler needs from the catalog.
type StoreService interface {
	Create(ctx context.Context, in dto.CreateStoreRequest) (*dto.StoreResponse, error)
	GetByID(ctx context.Context, id string) (*dto.StoreResponse, error)
	List(ctx context.Context, limit, offset int) (*dto.StoreListResponse, error)
}

// StoreHandler handles store requests.
type StoreHandler struct {
	svc StoreService
}

// NewStoreHandler builds the handler.
func NewStoreHandler(svc StoreService) *StoreHandler {
	return &StoreHandler{svc: svc}
}

// Create godoc
// @Summary      Create a store
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateStoreRequest  true  "name, location"
// @Success      201  {object}  dto.StoreResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stores [post]
func (h *StoreHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateStoreRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
	}
	store, err := h.svc.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(store)
}

// GetByID godoc
// @Summary      Get a store by id
// @Tags         catalog
// @Produce      json
// @Param        id  path  string  true  "Store id"
// @Success      200  {object}  dto.StoreResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stores/{id} [get]
func (h *StoreHandler) GetByID(c *fiber.Ctx) error {
	store, err := h.svc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(store)
}

// List godoc
// @Summary      List stores
// @Tags         catalog
// @Produce      json
// @Success      200  {object}  dto.StoreListResponse
// @Router       /api/stores [get]
func (h *StoreHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	list, err := h.svc.List(c.Context(), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}
