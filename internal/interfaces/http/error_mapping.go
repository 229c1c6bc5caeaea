package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jmedinae/stock-hospitalario/internal/application/dto"
	"github.com/jmedinae/stock-hospitalario/internal/domain"
)

// mapDomainError traduce los errores de dominio a respuestas HTTP tipadas.
// Ningún error de negocio se traga: lo que no se reconoce sale como 500.
func mapDomainError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case errors.Is(err, domain.ErrProductNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "PRODUCT_NOT_FOUND", Message: domain.ErrProductNotFound.Error()})
	case errors.Is(err, domain.ErrCenterNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "CENTER_NOT_FOUND", Message: domain.ErrCenterNotFound.Error()})
	case errors.Is(err, domain.ErrTransferNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "TRANSFER_NOT_FOUND", Message: domain.ErrTransferNotFound.Error()})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: domain.ErrInsufficientStock.Error()})
	case errors.Is(err, domain.ErrInvalidTransition):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INVALID_TRANSITION", Message: domain.ErrInvalidTransition.Error()})
	case errors.Is(err, domain.ErrBalanceExists):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "BALANCE_EXISTS", Message: domain.ErrBalanceExists.Error()})
	case errors.Is(err, domain.ErrConcurrencyConflict):
		// Reintentos locales agotados; el cliente puede volver a intentar.
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONCURRENCY_CONFLICT", Message: domain.ErrConcurrencyConflict.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
