package dto

import "time"

// CreateSupplierRequest entrada para cadastrar um fornecedor. CNPJ e Phone podem
// vir formatados; só os dígitos são persistidos.
type CreateSupplierRequest struct {
	Name    string `json:"name"`
	CNPJ    string `json:"cnpj"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
}

// UpdateSupplierRequest entrada para editar um fornecedor (campos ausentes mantêm o valor atual).
type UpdateSupplierRequest struct {
	Name    *string `json:"name"`
	CNPJ    *string `json:"cnpj"`
	Address *string `json:"address"`
	Phone   *string `json:"phone"`
	Email   *string `json:"email"`
}

// SupplierResponse saída de um fornecedor.
type SupplierResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CNPJ      string    `json:"cnpj"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
