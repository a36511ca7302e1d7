package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/rs/zerolog/log"
)

// mapDomainError traduce errores de dominio a respuestas HTTP. Devuelve false si
// el error no es de dominio (el caller decide qué hacer, normalmente internalError).
func mapDomainError(c *fiber.Ctx, err error) (bool, error) {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		return true, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "VALIDATION", Message: "validación fallida", Errors: verr.Fields,
		})
	}
	var stockErr *domain.InsufficientStockError
	if errors.As(err, &stockErr) {
		return true, c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code: "INSUFFICIENT_STOCK", Message: stockErr.Error(),
		})
	}
	switch {
	case errors.Is(err, domain.ErrInvalidQuantity):
		return true, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUANTITY", Message: "quantity debe ser un entero >= 1"})
	case errors.Is(err, domain.ErrInvalidInput):
		return true, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case errors.Is(err, domain.ErrNotFound):
		return true, c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
	case errors.Is(err, domain.ErrInsufficientStock):
		return true, c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "stock insuficiente"})
	case errors.Is(err, domain.ErrConflict):
		return true, c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: "conflicto con el estado actual, reintente"})
	case errors.Is(err, domain.ErrDuplicate):
		return true, c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "recurso duplicado"})
	}
	return false, nil
}

// internalError registra el error real y responde un genérico sin filtrar internos.
func internalError(c *fiber.Ctx, err error) error {
	log.Error().Err(err).Str("path", c.Path()).Msg("error interno")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno del servidor"})
}

// respondError aplica mapDomainError y cae a internalError.
func respondError(c *fiber.Ctx, err error) error {
	if handled, resp := mapDomainError(c, err); handled {
		return resp
	}
	return internalError(c, err)
}
