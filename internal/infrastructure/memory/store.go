// Package memory implementa as portas de persistência em mapas em memória.
// Usado nos testes do motor de movimentações e da busca; reproduz a mesma
// semântica dos adaptadores PostgreSQL (substring sem maiúsculas, união com
// IDs de entidades relacionadas, ordenação estável, cópias na saída).
package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/wendriu/estoque-api/internal/application/inventory"
	"github.com/wendriu/estoque-api/internal/domain/entity"
	"github.com/wendriu/estoque-api/internal/domain/repository"
)

// Store guarda todas as coleções atrás de um único mutex.
type Store struct {
	mu        sync.RWMutex
	suppliers map[string]entity.Supplier
	products  map[string]entity.Product
	users     map[string]entity.User
	movements map[string]entity.Movement
}

// NewStore cria um store vazio.
func NewStore() *Store {
	return &Store{
		suppliers: make(map[string]entity.Supplier),
		products:  make(map[string]entity.Product),
		users:     make(map[string]entity.User),
		movements: make(map[string]entity.Movement),
	}
}

// Suppliers devolve o repositório de fornecedores sobre este store.
func (s *Store) Suppliers() repository.SupplierRepository { return &supplierRepo{s} }

// Products devolve o repositório de produtos sobre este store.
func (s *Store) Products() repository.ProductRepository { return &productRepo{s} }

// Users devolve o repositório de usuários sobre este store.
func (s *Store) Users() repository.UserRepository { return &userRepo{s} }

// Movements devolve o repositório de movimentações sobre este store.
func (s *Store) Movements() repository.MovementRepository { return &movementRepo{s} }

// matches substring sem diferenciar maiúsculas (equivalente ao ILIKE '%q%').
func matches(field, q string) bool {
	return strings.Contains(strings.ToLower(field), strings.ToLower(q))
}

var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner transacional por snapshot: clona as coleções antes de fn e as
// restaura se fn devolver erro. Dá aos testes o mesmo tudo-ou-nada do
// TxRunner PostgreSQL.
type TxRunner struct {
	store *Store
	txMu  sync.Mutex
}

// NewTxRunner constrói o runner sobre o store.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store}
}

// Run executa fn; em caso de erro, restaura o snapshot tirado no início.
// Transações são serializadas entre si.
func (r *TxRunner) Run(_ context.Context, fn func(
	movRepo repository.MovementRepository,
	productRepo repository.ProductRepository,
) error) error {
	r.txMu.Lock()
	defer r.txMu.Unlock()

	snapProducts := cloneMap(r.store.products)
	snapMovements := cloneMap(r.store.movements)

	if err := fn(r.store.Movements(), r.store.Products()); err != nil {
		r.store.mu.Lock()
		r.store.products = snapProducts
		r.store.movements = snapMovements
		r.store.mu.Unlock()
		return err
	}
	return nil
}

func cloneMap[V any](m map[string]V) map[string]V {
	out := make(map[string]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
