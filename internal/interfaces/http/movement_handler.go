package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/wendriu/estoque-api/internal/application/dto"
	"github.com/wendriu/estoque-api/internal/application/inventory"
)

// MovementHandler trata as requisições HTTP de movimentações (admin). Criar,
// editar e excluir passam pelo motor de movimentações, que mantém a quantidade
// dos produtos consistente com o histórico.
type MovementHandler struct {
	uc *inventory.MovementUseCase
}

// NewMovementHandler constrói o handler.
func NewMovementHandler(uc *inventory.MovementUseCase) *MovementHandler {
	return &MovementHandler{uc: uc}
}

// List godoc
// @Summary      Listar/buscar movimentações
// @Tags         movements
// @Produce      json
// @Param        q  query  string  false  "Busca por observação, produto ou usuário (substring)"
// @Success      200  {array}  dto.MovementResponse
// @Router       /api/movements [get]
func (h *MovementHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.Search(c.Query("q"))
	if err != nil {
		return domainError(c, err, nil)
	}
	return c.JSON(list)
}

// Create godoc
// @Summary      Registrar movimentação
// @Description  Registra uma entrada ou saída e aplica o delta à quantidade do
// @Description  produto na mesma transação.
// @Tags         movements
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMovementRequest  true  "type (in|out), product_id, quantity, user_id; note opcional"
// @Success      201  {object}  dto.MovementResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/movements [post]
func (h *MovementHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	resp, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return domainError(c, err, in)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// GetByID godoc
// @Summary      Obter movimentação por ID
// @Tags         movements
// @Produce      json
// @Param        id  path  string  true  "ID da movimentação"
// @Success      200  {object}  dto.MovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/movements/{id} [get]
func (h *MovementHandler) GetByID(c *fiber.Ctx) error {
	resp, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return domainError(c, err, nil)
	}
	return c.JSON(resp)
}

// Update godoc
// @Summary      Editar movimentação (reconciliação)
// @Description  Desfaz o efeito antigo da movimentação e aplica o novo sobre o(s)
// @Description  produto(s), em uma única transação. quantity é obrigatório;
// @Description  product_id ausente mantém o produto atual. A data não muda.
// @Tags         movements
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID da movimentação"
// @Param        body  body  dto.UpdateMovementRequest  true  "campos a alterar"
// @Success      200  {object}  dto.ReconcileResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/movements/{id} [put]
func (h *MovementHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	resp, err := h.uc.Reconcile(c.Context(), c.Params("id"), in)
	if err != nil {
		return domainError(c, err, in)
	}
	return c.JSON(resp)
}

// Delete godoc
// @Summary      Excluir movimentação
// @Description  Exclui a movimentação revertendo seu efeito sobre o produto.
// @Tags         movements
// @Param        id  path  string  true  "ID da movimentação"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/movements/{id} [delete]
func (h *MovementHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return domainError(c, err, nil)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
