package entity

import "time"

// Tipos de movimentação de estoque.
const (
	MovementTypeIn  = "in"  // entrada
	MovementTypeOut = "out" // saída
)

// ValidMovementType informa se t é um tipo de movimentação conhecido.
func ValidMovementType(t string) bool {
	return t == MovementTypeIn || t == MovementTypeOut
}

// Movement representa uma movimentação de estoque (entrada ou saída) de um produto.
// Date é fixado na criação e não muda em edições; a edição passa pelo motor de
// reconciliação, que desfaz o efeito antigo e aplica o novo sobre o(s) produto(s).
type Movement struct {
	ID        string
	Type      string // in, out
	ProductID string
	Quantity  int // sempre positivo; o sinal vem de Type
	Date      time.Time
	Note      string
	UserID    string
}

// MovementDetail movimentação com produto e usuário resolvidos. Product ou User
// podem ser nil se a referência tiver sido excluída depois do registro.
type MovementDetail struct {
	Movement
	Product *Product
	User    *User
}
