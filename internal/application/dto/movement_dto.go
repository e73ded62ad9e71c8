package dto

import "time"

// CreateMovementRequest entrada para registrar uma movimentação. A criação aplica
// o delta ao produto na mesma transação.
type CreateMovementRequest struct {
	Type      string `json:"type"` // in, out
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Note      string `json:"note"`
	UserID    string `json:"user_id"`
}

// UpdateMovementRequest entrada para editar uma movimentação (reconciliação).
// Quantity é obrigatório: sem ele não dá para reverter o efeito antigo com
// segurança. ProductID ausente mantém o produto atual; Type, Note e UserID
// ausentes mantêm os valores gravados.
type UpdateMovementRequest struct {
	Type      *string `json:"type"`
	ProductID *string `json:"product_id"`
	Quantity  *int    `json:"quantity"`
	Note      *string `json:"note"`
	UserID    *string `json:"user_id"`
}

// MovementResponse saída de uma movimentação; Product e User vêm resolvidos nas
// listagens e podem ser nulos se a referência tiver sido excluída.
type MovementResponse struct {
	ID        string            `json:"id"`
	Type      string            `json:"type"`
	ProductID string            `json:"product_id"`
	Product   *ProductResponse  `json:"product,omitempty"`
	Quantity  int               `json:"quantity"`
	Date      time.Time         `json:"date"`
	Note      string            `json:"note,omitempty"`
	UserID    string            `json:"user_id"`
	User      *UserResponse     `json:"user,omitempty"`
}

// ReconcileResponse resultado de uma edição de movimentação: a movimentação
// atualizada e os produtos cuja quantidade foi reescrita.
type ReconcileResponse struct {
	Movement MovementResponse  `json:"movement"`
	Products []ProductResponse `json:"affected_products"`
}
