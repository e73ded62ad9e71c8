package repository

import "github.com/wendriu/estoque-api/internal/domain/entity"

// UserRepository porta de persistência para User.
// Search nunca devolve o campo Password preenchido; q vazio devolve todos por nome.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	Update(user *entity.User) error
	Delete(id string) error
	Search(q string) ([]*entity.User, error)
}
