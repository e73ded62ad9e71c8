package repository

import "github.com/wendriu/estoque-api/internal/domain/entity"

// SupplierRepository porta de persistência para Supplier.
// Search com q vazio devolve todos, ordenados por nome.
type SupplierRepository interface {
	Create(supplier *entity.Supplier) error
	GetByID(id string) (*entity.Supplier, error)
	GetByCNPJ(cnpj string) (*entity.Supplier, error)
	Update(supplier *entity.Supplier) error
	Delete(id string) error
	Search(q string) ([]*entity.Supplier, error)
}
