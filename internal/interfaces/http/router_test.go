package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wendriu/estoque-api/internal/application/dto"
	"github.com/wendriu/estoque-api/internal/application/inventory"
	"github.com/wendriu/estoque-api/internal/application/usecase"
	"github.com/wendriu/estoque-api/internal/domain/entity"
	"github.com/wendriu/estoque-api/internal/infrastructure/memory"
	apphttp "github.com/wendriu/estoque-api/internal/interfaces/http"
	"github.com/wendriu/estoque-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de teste
// ──────────────────────────────────────────────────────────────────────────────

// buildTestApp monta a aplicação completa sobre o store em memória, sem cache.
func buildTestApp(t *testing.T) (*fiber.App, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		SupplierUC: usecase.NewSupplierUseCase(store.Suppliers()),
		ProductUC:  usecase.NewProductUseCase(store.Products(), store.Suppliers()),
		UserUC:     usecase.NewUserUseCase(store.Users()),
		MovementUC: inventory.NewMovementUseCase(
			memory.NewTxRunner(store), store.Movements(), store.Users(), logger.Nop(),
		),
		Cache: nil,
	})
	return app, store
}

func seedInventory(t *testing.T, store *memory.Store) {
	t.Helper()
	require.NoError(t, store.Suppliers().Create(&entity.Supplier{
		ID: "s1", Name: "Metalúrgica Silva", CNPJ: "11222333000181",
	}))
	require.NoError(t, store.Products().Create(&entity.Product{
		ID: "p1", Name: "Parafuso", Price: decimal.NewFromInt(1), Quantity: 10, SupplierID: "s1",
	}))
	require.NoError(t, store.Users().Create(&entity.User{
		ID: "u1", Name: "Ana", Email: "ana@example.com", Password: "segredo", Role: entity.RoleUser,
	}))
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	payload, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, payload
}

// ──────────────────────────────────────────────────────────────────────────────
// Mapeamento de status
// ──────────────────────────────────────────────────────────────────────────────

func TestMovementCreate_FluxoCompleto(t *testing.T) {
	app, store := buildTestApp(t)
	seedInventory(t, store)

	resp, payload := doJSON(t, app, http.MethodPost, "/api/movements", fiber.Map{
		"type": "in", "product_id": "p1", "quantity": 5, "user_id": "u1",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(payload, &created))
	require.NotEmpty(t, created.ID)

	p, err := store.Products().GetByID("p1")
	require.NoError(t, err)
	assert.Equal(t, 15, p.Quantity)

	// Exclusão reverte e devolve 204.
	resp, _ = doJSON(t, app, http.MethodDelete, "/api/movements/"+created.ID, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	p, err = store.Products().GetByID("p1")
	require.NoError(t, err)
	assert.Equal(t, 10, p.Quantity)
}

func TestMovementUpdate_ErrosEEcoDoFormulario(t *testing.T) {
	app, store := buildTestApp(t)
	seedInventory(t, store)

	// Movimentação inexistente: 404.
	resp, _ := doJSON(t, app, http.MethodPut, "/api/movements/fantasma", fiber.Map{"quantity": 1})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	created, err := inventory.NewMovementUseCase(
		memory.NewTxRunner(store), store.Movements(), store.Users(), logger.Nop(),
	).Create(context.Background(), dto.CreateMovementRequest{
		Type: "in", ProductID: "p1", Quantity: 5, UserID: "u1",
	})
	require.NoError(t, err)

	// Sem quantity: 400 com o payload ecoado em form.
	resp, payload := doJSON(t, app, http.MethodPut, "/api/movements/"+created.ID, fiber.Map{
		"note": "sem quantidade",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var body struct {
		Code string         `json:"code"`
		Form map[string]any `json:"form"`
	}
	require.NoError(t, json.Unmarshal(payload, &body))
	assert.Equal(t, "VALIDATION", body.Code)
	require.NotNil(t, body.Form)
	assert.Equal(t, "sem quantidade", body.Form["note"])

	// Saída maior que o estoque pós-reversão: 409.
	resp, payload = doJSON(t, app, http.MethodPut, "/api/movements/"+created.ID, fiber.Map{
		"type": "out", "quantity": 100,
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	require.NoError(t, json.Unmarshal(payload, &body))
	assert.Equal(t, "INSUFFICIENT_STOCK", body.Code)

	// Produto de destino inexistente: 422.
	resp, _ = doJSON(t, app, http.MethodPut, "/api/movements/"+created.ID, fiber.Map{
		"product_id": "fantasma", "quantity": 1,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestSupplierCreate_Status(t *testing.T) {
	app, _ := buildTestApp(t)

	// CNPJ reprovado no dígito verificador: 400.
	resp, _ := doJSON(t, app, http.MethodPost, "/api/suppliers", fiber.Map{
		"name": "Fornecedor", "cnpj": "11222333000180",
		"address": "Rua A", "phone": "11999999999", "email": "a@b.com",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	valid := fiber.Map{
		"name": "Fornecedor", "cnpj": "11.222.333/0001-81",
		"address": "Rua A", "phone": "11999999999", "email": "a@b.com",
	}
	resp, _ = doJSON(t, app, http.MethodPost, "/api/suppliers", valid)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	// Mesmo CNPJ de novo: 409.
	resp, _ = doJSON(t, app, http.MethodPost, "/api/suppliers", valid)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestUserRoutes_NuncaEcoamSenha(t *testing.T) {
	app, _ := buildTestApp(t)

	resp, payload := doJSON(t, app, http.MethodPost, "/api/users", fiber.Map{
		"name": "Ana", "email": "ana@example.com", "password": "super-secreta",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.NotContains(t, string(payload), "super-secreta")

	// Erro de validação em usuário não ecoa o formulário (carregaria a senha).
	resp, payload = doJSON(t, app, http.MethodPost, "/api/users", fiber.Map{
		"name": "", "email": "x@y.com", "password": "outra-secreta",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.NotContains(t, string(payload), "outra-secreta")

	resp, payload = doJSON(t, app, http.MethodGet, "/api/users", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotContains(t, string(payload), "super-secreta")
	assert.NotContains(t, string(payload), "password")
}

func TestSiteRoutes_SomenteLeitura(t *testing.T) {
	app, store := buildTestApp(t)
	seedInventory(t, store)

	resp, payload := doJSON(t, app, http.MethodGet, "/site/products?q=parafuso", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var products []map[string]any
	require.NoError(t, json.Unmarshal(payload, &products))
	require.Len(t, products, 1)
	assert.Equal(t, "Parafuso", products[0]["name"])

	resp, payload = doJSON(t, app, http.MethodGet, "/site/users", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotContains(t, string(payload), "segredo")
}
