package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wendriu/estoque-api/internal/domain/entity"
	"github.com/wendriu/estoque-api/internal/domain/repository"
	"github.com/wendriu/estoque-api/internal/infrastructure/memory"
)

func TestMovementSearch_UniaoEOrdenacao(t *testing.T) {
	store := memory.NewStore()
	require.NoError(t, store.Products().Create(&entity.Product{ID: "p1", Name: "Parafuso"}))
	require.NoError(t, store.Users().Create(&entity.User{ID: "u1", Name: "Ana", Email: "ana@example.com"}))

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	movs := []entity.Movement{
		{ID: "m1", Type: "in", ProductID: "p1", Quantity: 1, Date: base, Note: "carga inicial", UserID: "u1"},
		{ID: "m2", Type: "out", ProductID: "p1", Quantity: 1, Date: base.Add(time.Hour), Note: "venda", UserID: "u1"},
		{ID: "m3", Type: "in", ProductID: "outro", Quantity: 1, Date: base.Add(2 * time.Hour), Note: "reposição", UserID: "outro"},
	}
	for i := range movs {
		require.NoError(t, store.Movements().Create(&movs[i]))
	}

	// q vazio: todas, mais recente primeiro.
	all, err := store.Movements().Search("")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "m3", all[0].ID)
	assert.Equal(t, "m1", all[2].ID)

	// Pelo nome do produto: só as que referenciam p1.
	byProduct, err := store.Movements().Search("parafuso")
	require.NoError(t, err)
	require.Len(t, byProduct, 2)
	assert.Equal(t, "m2", byProduct[0].ID)

	// Pelo nome do usuário.
	byUser, err := store.Movements().Search("ana")
	require.NoError(t, err)
	assert.Len(t, byUser, 2)

	// Pela observação; referência pendurada sai com Product/User nulos.
	byNote, err := store.Movements().Search("reposição")
	require.NoError(t, err)
	require.Len(t, byNote, 1)
	assert.Nil(t, byNote[0].Product)
	assert.Nil(t, byNote[0].User)
}

func TestTxRunner_RestauraSnapshotNoErro(t *testing.T) {
	store := memory.NewStore()
	require.NoError(t, store.Products().Create(&entity.Product{ID: "p1", Name: "Parafuso", Quantity: 10}))

	boom := errors.New("boom")
	err := memory.NewTxRunner(store).Run(context.Background(), func(
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
	) error {
		require.NoError(t, productRepo.UpdateQuantity("p1", 99))
		require.NoError(t, movRepo.Create(&entity.Movement{ID: "m1", Type: "in", ProductID: "p1", Quantity: 1}))
		return boom
	})
	require.ErrorIs(t, err, boom)

	p, err := store.Products().GetByID("p1")
	require.NoError(t, err)
	assert.Equal(t, 10, p.Quantity)

	m, err := store.Movements().GetByID("m1")
	require.NoError(t, err)
	assert.Nil(t, m)
}
