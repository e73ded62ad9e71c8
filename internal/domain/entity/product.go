package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa um produto do estoque. Quantity é o campo que o motor de
// movimentações protege: fora do ajuste manual no cadastro, só muda via movimentação.
type Product struct {
	ID          string
	Name        string
	Description string
	ImageURL    string
	Price       decimal.Decimal // preço de venda, >= 0
	Quantity    int
	SupplierID  string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ProductDetail produto com o fornecedor resolvido (equivalente ao populate das listagens).
type ProductDetail struct {
	Product
	Supplier *Supplier
}
