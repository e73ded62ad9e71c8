package usecase

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/wendriu/estoque-api/internal/application/dto"
	"github.com/wendriu/estoque-api/internal/domain"
	"github.com/wendriu/estoque-api/internal/domain/entity"
	"github.com/wendriu/estoque-api/internal/domain/repository"
)

// UserUseCase casos de uso CRUD e busca para usuários. A senha é tratada como
// valor opaco: gravada como recebida e nunca devolvida em respostas.
type UserUseCase struct {
	repo repository.UserRepository
}

// NewUserUseCase constrói o caso de uso.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

// Create cadastra um usuário. Role vazio vira "user"; email já cadastrado ->
// ErrDuplicate.
func (uc *UserUseCase) Create(in dto.CreateUserRequest) (*dto.UserResponse, error) {
	if in.Name == "" || in.Email == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	role := in.Role
	if role == "" {
		role = entity.RoleUser
	}
	if role != entity.RoleAdmin && role != entity.RoleUser {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	user := &entity.User{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(in.Name),
		Email:     in.Email,
		Password:  in.Password,
		Role:      role,
		ImageURL:  in.ImageURL,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(user); err != nil {
		return nil, err
	}
	resp := userResponse(user)
	return &resp, nil
}

// GetByID obtém um usuário por ID.
func (uc *UserUseCase) GetByID(id string) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	resp := userResponse(user)
	return &resp, nil
}

// Update edita um usuário; campos ausentes mantêm o valor atual. A senha só é
// trocada quando enviada não em branco.
func (uc *UserUseCase) Update(id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		user.Name = strings.TrimSpace(*in.Name)
	}
	if in.Email != nil && *in.Email != user.Email {
		if *in.Email == "" {
			return nil, domain.ErrInvalidInput
		}
		existing, err := uc.repo.GetByEmail(*in.Email)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, domain.ErrDuplicate
		}
		user.Email = *in.Email
	}
	if in.Role != nil {
		if *in.Role != entity.RoleAdmin && *in.Role != entity.RoleUser {
			return nil, domain.ErrInvalidInput
		}
		user.Role = *in.Role
	}
	if in.ImageURL != nil {
		user.ImageURL = *in.ImageURL
	}
	if in.Password != nil && strings.TrimSpace(*in.Password) != "" {
		user.Password = *in.Password
	}
	user.UpdatedAt = time.Now()
	if err := uc.repo.Update(user); err != nil {
		return nil, err
	}
	resp := userResponse(user)
	return &resp, nil
}

// Delete exclui um usuário por ID.
func (uc *UserUseCase) Delete(id string) error {
	user, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

// Search lista usuários por nome; q casa nome e email (substring, sem
// diferenciar maiúsculas). q vazio devolve todos. Senhas nunca saem daqui.
func (uc *UserUseCase) Search(q string) ([]dto.UserResponse, error) {
	list, err := uc.repo.Search(strings.TrimSpace(q))
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		out = append(out, userResponse(u))
	}
	return out, nil
}

func userResponse(u *entity.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		ImageURL:  u.ImageURL,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
