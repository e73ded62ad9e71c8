package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/wendriu/estoque-api/internal/application/dto"
	"github.com/wendriu/estoque-api/internal/domain"
)

// domainError mapeia erros de domínio para HTTP. form, quando não nil, ecoa o
// payload enviado nos erros que impedem a gravação, para reexibição do
// formulário. Falhas de infraestrutura saem como INTERNAL, distintas dos erros
// de domínio, permitindo retry do cliente.
func domainError(c *fiber.Ctx, err error, form any) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Code: "NOT_FOUND", Message: "recurso não encontrado",
		})
	case errors.Is(err, domain.ErrReferenceNotFound):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{
			Code: "REFERENCE_NOT_FOUND", Message: "referência não encontrada", Form: form,
		})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "VALIDATION", Message: "dados inválidos", Form: form,
		})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code: "DUPLICATE", Message: "registro duplicado", Form: form,
		})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code: "INSUFFICIENT_STOCK", Message: "quantidade insuficiente em estoque", Form: form,
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code: "INTERNAL", Message: "erro interno",
		})
	}
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Code: "INVALID_BODY", Message: "corpo inválido",
	})
}
