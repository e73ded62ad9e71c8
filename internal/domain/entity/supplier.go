package entity

import "time"

// Supplier representa um fornecedor. CNPJ é armazenado só com dígitos e é único;
// a validação do dígito verificador acontece no caso de uso, não aqui.
type Supplier struct {
	ID        string
	Name      string
	CNPJ      string // 14 dígitos, sem formatação
	Address   string
	Phone     string // só dígitos
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
