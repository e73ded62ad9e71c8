package repository

import "github.com/wendriu/estoque-api/internal/domain/entity"

// MovementRepository porta de persistência para Movement.
// Search casa observação, nome do produto e nome do usuário; q vazio devolve
// todas, ordenadas por data decrescente.
type MovementRepository interface {
	Create(movement *entity.Movement) error
	GetByID(id string) (*entity.Movement, error)
	GetDetail(id string) (*entity.MovementDetail, error)
	Update(movement *entity.Movement) error
	Delete(id string) error
	Search(q string) ([]*entity.MovementDetail, error)
}
