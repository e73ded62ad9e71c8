package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/wendriu/estoque-api/internal/application/inventory"
	"github.com/wendriu/estoque-api/internal/application/usecase"
	"github.com/wendriu/estoque-api/internal/infrastructure/rediscache"
)

// RouterDeps dependências para o router.
type RouterDeps struct {
	SupplierUC *usecase.SupplierUseCase
	ProductUC  *usecase.ProductUseCase
	UserUC     *usecase.UserUseCase
	MovementUC *inventory.MovementUseCase
	Cache      *rediscache.Cache
}

// Router registra as rotas da API e do site público.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Fornecedores
	suppliers := api.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Post("/", supplierHandler.Create)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Put("/:id", supplierHandler.Update)
	suppliers.Delete("/:id", supplierHandler.Delete)

	// Produtos
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Post("/", productHandler.Create)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	// Usuários
	users := api.Group("/users")
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", userHandler.List)
	users.Post("/", userHandler.Create)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)

	// Movimentações de estoque
	movements := api.Group("/movements")
	movementHandler := NewMovementHandler(deps.MovementUC)
	movements.Get("/", movementHandler.List)
	movements.Post("/", movementHandler.Create)
	movements.Get("/:id", movementHandler.GetByID)
	movements.Put("/:id", movementHandler.Update)
	movements.Delete("/:id", movementHandler.Delete)

	// Site público (só leitura, com cache)
	site := app.Group("/site")
	siteHandler := NewSiteHandler(deps.SupplierUC, deps.ProductUC, deps.UserUC, deps.MovementUC, deps.Cache)
	site.Get("/products", siteHandler.Products)
	site.Get("/suppliers", siteHandler.Suppliers)
	site.Get("/users", siteHandler.Users)
	site.Get("/movements", siteHandler.Movements)
}
