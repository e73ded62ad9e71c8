package repository

import "github.com/wendriu/estoque-api/internal/domain/entity"

// ProductRepository porta de persistência para Product.
// GetForUpdate bloqueia a linha (SELECT FOR UPDATE) e só faz sentido dentro de
// uma transação; fora dela se comporta como GetByID.
// Search casa nome, descrição e nome do fornecedor; q vazio devolve todos por nome.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetForUpdate(id string) (*entity.Product, error)
	Update(product *entity.Product) error
	UpdateQuantity(id string, quantity int) error
	Delete(id string) error
	Search(q string) ([]*entity.ProductDetail, error)
}
