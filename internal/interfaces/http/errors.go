package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/safwanadnan/bazaar/internal/application/dto"
	"github.com/safwanadnan/bazaar/internal/domain"
)

// errorBody maps a domain error to its HTTP status and response body. The
// core only guarantees a kind and a description; the mapping to status
// codes lives here, at the edge.
func errorBody(err error) (int, dto.ErrorResponse) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "VALIDATION", Message: "invalid input"}
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, dto.ErrorResponse{Code: "NOT_FOUND", Message: "resource not found"}
	case errors.Is(err, domain.ErrDuplicate):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "DUPLICATE", Message: "duplicate resource"}
	case errors.Is(err, domain.ErrInsufficientStock):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "insufficient stock"}
	case errors.Is(err, domain.ErrConcurrentModification):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "CONCURRENT_MODIFICATION", Message: "concurrent modification, retries exhausted"}
	}
	return fiber.StatusInternalServerError, dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()}
}

// respondError writes the mapped error response.
func respondError(c *fiber.Ctx, err error) error {
	status, body := errorBody(err)
	return c.Status(status).JSON(body)
}
