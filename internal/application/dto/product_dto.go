package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para cadastrar um produto.
type CreateProductRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	ImageURL    string          `json:"image_url"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	SupplierID  string          `json:"supplier_id"`
}

// UpdateProductRequest entrada para editar um produto (campos ausentes mantêm o valor atual).
// Quantity aqui é o ajuste manual do cadastro; o histórico de movimentações não é tocado.
type UpdateProductRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	ImageURL    *string          `json:"image_url"`
	Price       *decimal.Decimal `json:"price"`
	Quantity    *int             `json:"quantity"`
	SupplierID  *string          `json:"supplier_id"`
}

// ProductResponse saída de um produto; Supplier vem resolvido nas listagens.
type ProductResponse struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	ImageURL    string            `json:"image_url,omitempty"`
	Price       decimal.Decimal   `json:"price"`
	Quantity    int               `json:"quantity"`
	SupplierID  string            `json:"supplier_id"`
	Supplier    *SupplierResponse `json:"supplier,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}
