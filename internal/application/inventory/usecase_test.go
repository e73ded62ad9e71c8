package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wendriu/estoque-api/internal/application/dto"
	"github.com/wendriu/estoque-api/internal/application/inventory"
	"github.com/wendriu/estoque-api/internal/domain"
	"github.com/wendriu/estoque-api/internal/domain/entity"
	"github.com/wendriu/estoque-api/internal/infrastructure/memory"
	"github.com/wendriu/estoque-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de teste
// ──────────────────────────────────────────────────────────────────────────────

type engineFixture struct {
	store *memory.Store
	uc    *inventory.MovementUseCase
}

func newEngine(t *testing.T) *engineFixture {
	t.Helper()
	store := memory.NewStore()
	uc := inventory.NewMovementUseCase(
		memory.NewTxRunner(store),
		store.Movements(),
		store.Users(),
		logger.Nop(),
	)
	return &engineFixture{store: store, uc: uc}
}

func (f *engineFixture) seedProduct(t *testing.T, id, name string, qty int) {
	t.Helper()
	err := f.store.Products().Create(&entity.Product{
		ID:       id,
		Name:     name,
		Price:    decimal.NewFromInt(10),
		Quantity: qty,
	})
	require.NoError(t, err)
}

func (f *engineFixture) seedUser(t *testing.T, id, name string) {
	t.Helper()
	err := f.store.Users().Create(&entity.User{
		ID:    id,
		Name:  name,
		Email: name + "@example.com",
		Role:  entity.RoleUser,
	})
	require.NoError(t, err)
}

func (f *engineFixture) productQty(t *testing.T, id string) int {
	t.Helper()
	p, err := f.store.Products().GetByID(id)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.Quantity
}

func (f *engineFixture) movement(t *testing.T, id string) *entity.Movement {
	t.Helper()
	m, err := f.store.Movements().GetByID(id)
	require.NoError(t, err)
	return m
}

func ptr[T any](v T) *T { return &v }

// ──────────────────────────────────────────────────────────────────────────────
// Criação
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_EntradaSomaAoEstoque(t *testing.T) {
	f := newEngine(t)
	f.seedProduct(t, "p1", "Parafuso", 5)
	f.seedUser(t, "u1", "ana")

	resp, err := f.uc.Create(context.Background(), dto.CreateMovementRequest{
		Type: entity.MovementTypeIn, ProductID: "p1", Quantity: 5, UserID: "u1",
	})
	require.NoError(t, err)
	assert.Equal(t, 5, resp.Quantity)
	assert.Equal(t, 10, f.productQty(t, "p1"))
}

func TestCreate_SaidaSemEstoqueFalhaSemGravar(t *testing.T) {
	f := newEngine(t)
	f.seedProduct(t, "p1", "Parafuso", 3)
	f.seedUser(t, "u1", "ana")

	_, err := f.uc.Create(context.Background(), dto.CreateMovementRequest{
		Type: entity.MovementTypeOut, ProductID: "p1", Quantity: 4, UserID: "u1",
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 3, f.productQty(t, "p1"))

	list, err := f.store.Movements().Search("")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestCreate_ReferenciasInexistentes(t *testing.T) {
	f := newEngine(t)
	f.seedProduct(t, "p1", "Parafuso", 3)
	f.seedUser(t, "u1", "ana")

	_, err := f.uc.Create(context.Background(), dto.CreateMovementRequest{
		Type: entity.MovementTypeIn, ProductID: "p1", Quantity: 1, UserID: "fantasma",
	})
	assert.ErrorIs(t, err, domain.ErrReferenceNotFound)

	_, err = f.uc.Create(context.Background(), dto.CreateMovementRequest{
		Type: entity.MovementTypeIn, ProductID: "fantasma", Quantity: 1, UserID: "u1",
	})
	assert.ErrorIs(t, err, domain.ErrReferenceNotFound)
}

func TestCreate_PayloadInvalido(t *testing.T) {
	f := newEngine(t)
	f.seedProduct(t, "p1", "Parafuso", 3)
	f.seedUser(t, "u1", "ana")

	cases := []dto.CreateMovementRequest{
		{Type: "transfer", ProductID: "p1", Quantity: 1, UserID: "u1"},
		{Type: entity.MovementTypeIn, ProductID: "p1", Quantity: 0, UserID: "u1"},
		{Type: entity.MovementTypeIn, ProductID: "p1", Quantity: -2, UserID: "u1"},
		{Type: entity.MovementTypeIn, ProductID: "", Quantity: 1, UserID: "u1"},
		{Type: entity.MovementTypeIn, ProductID: "p1", Quantity: 1, UserID: ""},
	}
	for _, in := range cases {
		_, err := f.uc.Create(context.Background(), in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Reconciliação (edição)
// ──────────────────────────────────────────────────────────────────────────────

// Cenário de referência: produto com 5, entrada de 5 deixa 10; editar essa
// movimentação para saída de 3 precisa desfazer a entrada (volta a 5) e aplicar
// a saída (fica 2).
func TestReconcile_TrocaDeTipoReverteEAplica(t *testing.T) {
	f := newEngine(t)
	f.seedProduct(t, "p1", "Parafuso", 5)
	f.seedUser(t, "u1", "ana")

	created, err := f.uc.Create(context.Background(), dto.CreateMovementRequest{
		Type: entity.MovementTypeIn, ProductID: "p1", Quantity: 5, UserID: "u1",
	})
	require.NoError(t, err)
	require.Equal(t, 10, f.productQty(t, "p1"))

	resp, err := f.uc.Reconcile(context.Background(), created.ID, dto.UpdateMovementRequest{
		Type:     ptr(entity.MovementTypeOut),
		Quantity: ptr(3),
	})
	require.NoError(t, err)

	assert.Equal(t, 2, f.productQty(t, "p1"))
	assert.Equal(t, entity.MovementTypeOut, resp.Movement.Type)
	assert.Equal(t, 3, resp.Movement.Quantity)
	require.Len(t, resp.Products, 1)
	assert.Equal(t, 2, resp.Products[0].Quantity)
}

func TestReconcile_MesmosValoresNaoMudaEstoque(t *testing.T) {
	f := newEngine(t)
	f.seedProduct(t, "p1", "Parafuso", 5)
	f.seedUser(t, "u1", "ana")

	created, err := f.uc.Create(context.Background(), dto.CreateMovementRequest{
		Type: entity.MovementTypeIn, ProductID: "p1", Quantity: 5, UserID: "u1",
	})
	require.NoError(t, err)

	// Reenviar os mesmos valores: reverter e reaplicar se anulam.
	_, err = f.uc.Reconcile(context.Background(), created.ID, dto.UpdateMovementRequest{
		Type:     ptr(entity.MovementTypeIn),
		Quantity: ptr(5),
	})
	require.NoError(t, err)
	assert.Equal(t, 10, f.productQty(t, "p1"))
}

func TestReconcile_TrocaDeProdutoTransfereOEfeito(t *testing.T) {
	f := newEngine(t)
	f.seedProduct(t, "p1", "Parafuso", 5)
	f.seedProduct(t, "p2", "Porca", 20)
	f.seedUser(t, "u1", "ana")

	created, err := f.uc.Create(context.Background(), dto.CreateMovementRequest{
		Type: entity.MovementTypeIn, ProductID: "p1", Quantity: 5, UserID: "u1",
	})
	require.NoError(t, err)
	require.Equal(t, 10, f.productQty(t, "p1"))

	resp, err := f.uc.Reconcile(context.Background(), created.ID, dto.UpdateMovementRequest{
		ProductID: ptr("p2"),
		Quantity:  ptr(7),
	})
	require.NoError(t, err)

	// p1 perde a entrada original; p2 ganha a nova.
	assert.Equal(t, 5, f.productQty(t, "p1"))
	assert.Equal(t, 27, f.productQty(t, "p2"))
	assert.Equal(t, "p2", resp.Movement.ProductID)
	require.Len(t, resp.Products, 2)
	assert.Equal(t, "p1", resp.Products[0].ID)
	assert.Equal(t, "p2", resp.Products[1].ID)
}

func TestReconcile_EstoqueInsuficienteNaoGravaNada(t *testing.T) {
	f := newEngine(t)
	f.seedProduct(t, "p1", "Parafuso", 5)
	f.seedUser(t, "u1", "ana")

	created, err := f.uc.Create(context.Background(), dto.CreateMovementRequest{
		Type: entity.MovementTypeIn, ProductID: "p1", Quantity: 5, UserID: "u1",
	})
	require.NoError(t, err)

	// Reverter a entrada deixa 5; saída de 6 não cabe.
	_, err = f.uc.Reconcile(context.Background(), created.ID, dto.UpdateMovementRequest{
		Type:     ptr(entity.MovementTypeOut),
		Quantity: ptr(6),
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	// Rollback total: estoque e movimentação intactos.
	assert.Equal(t, 10, f.productQty(t, "p1"))
	m := f.movement(t, created.ID)
	require.NotNil(t, m)
	assert.Equal(t, entity.MovementTypeIn, m.Type)
	assert.Equal(t, 5, m.Quantity)
}

func TestReconcile_DataNuncaMuda(t *testing.T) {
	f := newEngine(t)
	f.seedProduct(t, "p1", "Parafuso", 5)
	f.seedUser(t, "u1", "ana")

	created, err := f.uc.Create(context.Background(), dto.CreateMovementRequest{
		Type: entity.MovementTypeIn, ProductID: "p1", Quantity: 5, UserID: "u1",
	})
	require.NoError(t, err)
	original := f.movement(t, created.ID).Date

	time.Sleep(5 * time.Millisecond)
	_, err = f.uc.Reconcile(context.Background(), created.ID, dto.UpdateMovementRequest{
		Quantity: ptr(2),
		Note:     ptr("ajuste de contagem"),
	})
	require.NoError(t, err)

	m := f.movement(t, created.ID)
	assert.True(t, m.Date.Equal(original), "a data da movimentação não pode mudar na edição")
	assert.Equal(t, "ajuste de contagem", m.Note)
}

func TestReconcile_ProdutoOriginalExcluidoPulaReversao(t *testing.T) {
	f := newEngine(t)
	f.seedProduct(t, "p1", "Parafuso", 5)
	f.seedProduct(t, "p2", "Porca", 20)
	f.seedUser(t, "u1", "ana")

	created, err := f.uc.Create(context.Background(), dto.CreateMovementRequest{
		Type: entity.MovementTypeIn, ProductID: "p1", Quantity: 5, UserID: "u1",
	})
	require.NoError(t, err)
	require.NoError(t, f.store.Products().Delete("p1"))

	// Sem produto original não há o que reverter; o novo delta cai em p2.
	resp, err := f.uc.Reconcile(context.Background(), created.ID, dto.UpdateMovementRequest{
		ProductID: ptr("p2"),
		Quantity:  ptr(4),
	})
	require.NoError(t, err)
	assert.Equal(t, 24, f.productQty(t, "p2"))
	require.Len(t, resp.Products, 1)
	assert.Equal(t, "p2", resp.Products[0].ID)
}

func TestReconcile_ProdutoOriginalExcluidoSemDestinoFalha(t *testing.T) {
	f := newEngine(t)
	f.seedProduct(t, "p1", "Parafuso", 5)
	f.seedUser(t, "u1", "ana")

	created, err := f.uc.Create(context.Background(), dto.CreateMovementRequest{
		Type: entity.MovementTypeIn, ProductID: "p1", Quantity: 5, UserID: "u1",
	})
	require.NoError(t, err)
	require.NoError(t, f.store.Products().Delete("p1"))

	// ProductID omitido mantém a referência antiga, que não existe mais.
	_, err = f.uc.Reconcile(context.Background(), created.ID, dto.UpdateMovementRequest{
		Quantity: ptr(4),
	})
	assert.ErrorIs(t, err, domain.ErrReferenceNotFound)
}

func TestReconcile_Erros(t *testing.T) {
	f := newEngine(t)
	f.seedProduct(t, "p1", "Parafuso", 5)
	f.seedUser(t, "u1", "ana")

	created, err := f.uc.Create(context.Background(), dto.CreateMovementRequest{
		Type: entity.MovementTypeIn, ProductID: "p1", Quantity: 5, UserID: "u1",
	})
	require.NoError(t, err)

	// Movimentação inexistente.
	_, err = f.uc.Reconcile(context.Background(), "fantasma", dto.UpdateMovementRequest{Quantity: ptr(1)})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Quantity é obrigatório.
	_, err = f.uc.Reconcile(context.Background(), created.ID, dto.UpdateMovementRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Quantity precisa ser positivo.
	_, err = f.uc.Reconcile(context.Background(), created.ID, dto.UpdateMovementRequest{Quantity: ptr(0)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Tipo desconhecido.
	_, err = f.uc.Reconcile(context.Background(), created.ID, dto.UpdateMovementRequest{
		Type: ptr("transfer"), Quantity: ptr(1),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Produto de destino inexistente.
	_, err = f.uc.Reconcile(context.Background(), created.ID, dto.UpdateMovementRequest{
		ProductID: ptr("fantasma"), Quantity: ptr(1),
	})
	assert.ErrorIs(t, err, domain.ErrReferenceNotFound)

	// Usuário inexistente.
	_, err = f.uc.Reconcile(context.Background(), created.ID, dto.UpdateMovementRequest{
		Quantity: ptr(1), UserID: ptr("fantasma"),
	})
	assert.ErrorIs(t, err, domain.ErrReferenceNotFound)

	// Nenhum dos erros acima pode ter tocado o estoque.
	assert.Equal(t, 10, f.productQty(t, "p1"))
}

// ──────────────────────────────────────────────────────────────────────────────
// Exclusão
// ──────────────────────────────────────────────────────────────────────────────

func TestDelete_ReverteOEfeito(t *testing.T) {
	f := newEngine(t)
	f.seedProduct(t, "p1", "Parafuso", 5)
	f.seedUser(t, "u1", "ana")

	created, err := f.uc.Create(context.Background(), dto.CreateMovementRequest{
		Type: entity.MovementTypeOut, ProductID: "p1", Quantity: 2, UserID: "u1",
	})
	require.NoError(t, err)
	require.Equal(t, 3, f.productQty(t, "p1"))

	require.NoError(t, f.uc.Delete(context.Background(), created.ID))
	assert.Equal(t, 5, f.productQty(t, "p1"))
	assert.Nil(t, f.movement(t, created.ID))
}

// Reverter uma entrada já consumida deixa a quantidade negativa: o registro
// histórico sai do somatório, então a conta fecha mesmo abaixo de zero.
func TestDelete_ReversaoIncondicionalPodeNegativar(t *testing.T) {
	f := newEngine(t)
	f.seedProduct(t, "p1", "Parafuso", 0)
	f.seedUser(t, "u1", "ana")

	entrada, err := f.uc.Create(context.Background(), dto.CreateMovementRequest{
		Type: entity.MovementTypeIn, ProductID: "p1", Quantity: 5, UserID: "u1",
	})
	require.NoError(t, err)
	_, err = f.uc.Create(context.Background(), dto.CreateMovementRequest{
		Type: entity.MovementTypeOut, ProductID: "p1", Quantity: 4, UserID: "u1",
	})
	require.NoError(t, err)
	require.Equal(t, 1, f.productQty(t, "p1"))

	require.NoError(t, f.uc.Delete(context.Background(), entrada.ID))
	assert.Equal(t, -4, f.productQty(t, "p1"))
}

func TestDelete_ProdutoExcluidoSegueSemReversao(t *testing.T) {
	f := newEngine(t)
	f.seedProduct(t, "p1", "Parafuso", 5)
	f.seedUser(t, "u1", "ana")

	created, err := f.uc.Create(context.Background(), dto.CreateMovementRequest{
		Type: entity.MovementTypeIn, ProductID: "p1", Quantity: 5, UserID: "u1",
	})
	require.NoError(t, err)
	require.NoError(t, f.store.Products().Delete("p1"))

	require.NoError(t, f.uc.Delete(context.Background(), created.ID))
	assert.Nil(t, f.movement(t, created.ID))
}

func TestDelete_NaoEncontrada(t *testing.T) {
	f := newEngine(t)
	err := f.uc.Delete(context.Background(), "fantasma")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
