package dto

import "time"

// CreateUserRequest entrada para cadastrar um usuário. Role vazio vira "user".
type CreateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	ImageURL string `json:"image_url"`
}

// UpdateUserRequest entrada para editar um usuário. Password só é trocado quando
// enviado não em branco; os demais campos ausentes mantêm o valor atual.
type UpdateUserRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Role     *string `json:"role"`
	ImageURL *string `json:"image_url"`
}

// UserResponse saída de um usuário. Nunca carrega a senha.
type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	ImageURL  string    `json:"image_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
