package entity

import "time"

// Perfis válidos para User.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User representa um usuário do sistema. Password é opaco: é armazenado como
// recebido e nunca aparece em respostas nem em resultados de busca.
type User struct {
	ID        string
	Name      string
	Email     string // único
	Password  string
	Role      string // admin, user
	ImageURL  string
	CreatedAt time.Time
	UpdatedAt time.Time
}
