package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/wendriu/estoque-api/internal/application/dto"
	"github.com/wendriu/estoque-api/internal/application/inventory"
	"github.com/wendriu/estoque-api/internal/application/usecase"
	"github.com/wendriu/estoque-api/internal/infrastructure/rediscache"
)

// SiteHandler serve as listagens públicas do site (só leitura), com cache TTL
// no Redis quando configurado. As respostas são as mesmas das rotas admin;
// usuários saem sem senha como em qualquer listagem.
type SiteHandler struct {
	suppliers *usecase.SupplierUseCase
	products  *usecase.ProductUseCase
	users     *usecase.UserUseCase
	movements *inventory.MovementUseCase
	cache     *rediscache.Cache
}

// NewSiteHandler constrói o handler. cache pode ser nil (sem caching).
func NewSiteHandler(
	suppliers *usecase.SupplierUseCase,
	products *usecase.ProductUseCase,
	users *usecase.UserUseCase,
	movements *inventory.MovementUseCase,
	cache *rediscache.Cache,
) *SiteHandler {
	return &SiteHandler{
		suppliers: suppliers,
		products:  products,
		users:     users,
		movements: movements,
		cache:     cache,
	}
}

// Products godoc
// @Summary      Produtos (site público)
// @Tags         site
// @Produce      json
// @Param        q  query  string  false  "Busca por nome, descrição ou fornecedor"
// @Success      200  {array}  dto.ProductResponse
// @Router       /site/products [get]
func (h *SiteHandler) Products(c *fiber.Ctx) error {
	q := c.Query("q")
	key := "site:products:" + q
	var cached []dto.ProductResponse
	if h.cache.GetJSON(c.Context(), key, &cached) {
		return c.JSON(cached)
	}
	list, err := h.products.Search(q)
	if err != nil {
		return domainError(c, err, nil)
	}
	h.cache.SetJSON(c.Context(), key, list)
	return c.JSON(list)
}

// Suppliers godoc
// @Summary      Fornecedores (site público)
// @Tags         site
// @Produce      json
// @Param        q  query  string  false  "Busca por nome ou CNPJ"
// @Success      200  {array}  dto.SupplierResponse
// @Router       /site/suppliers [get]
func (h *SiteHandler) Suppliers(c *fiber.Ctx) error {
	q := c.Query("q")
	key := "site:suppliers:" + q
	var cached []dto.SupplierResponse
	if h.cache.GetJSON(c.Context(), key, &cached) {
		return c.JSON(cached)
	}
	list, err := h.suppliers.Search(q)
	if err != nil {
		return domainError(c, err, nil)
	}
	h.cache.SetJSON(c.Context(), key, list)
	return c.JSON(list)
}

// Users godoc
// @Summary      Usuários (site público)
// @Tags         site
// @Produce      json
// @Param        q  query  string  false  "Busca por nome ou email"
// @Success      200  {array}  dto.UserResponse
// @Router       /site/users [get]
func (h *SiteHandler) Users(c *fiber.Ctx) error {
	q := c.Query("q")
	key := "site:users:" + q
	var cached []dto.UserResponse
	if h.cache.GetJSON(c.Context(), key, &cached) {
		return c.JSON(cached)
	}
	list, err := h.users.Search(q)
	if err != nil {
		return domainError(c, err, nil)
	}
	h.cache.SetJSON(c.Context(), key, list)
	return c.JSON(list)
}

// Movements godoc
// @Summary      Movimentações (site público)
// @Tags         site
// @Produce      json
// @Param        q  query  string  false  "Busca por observação, produto ou usuário"
// @Success      200  {array}  dto.MovementResponse
// @Router       /site/movements [get]
func (h *SiteHandler) Movements(c *fiber.Ctx) error {
	q := c.Query("q")
	key := "site:movements:" + q
	var cached []dto.MovementResponse
	if h.cache.GetJSON(c.Context(), key, &cached) {
		return c.JSON(cached)
	}
	list, err := h.movements.Search(q)
	if err != nil {
		return domainError(c, err, nil)
	}
	h.cache.SetJSON(c.Context(), key, list)
	return c.JSON(list)
}
