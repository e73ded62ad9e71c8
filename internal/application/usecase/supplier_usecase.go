package usecase

import (
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"

	"github.com/wendriu/estoque-api/internal/application/dto"
	"github.com/wendriu/estoque-api/internal/domain"
	"github.com/wendriu/estoque-api/internal/domain/entity"
	"github.com/wendriu/estoque-api/internal/domain/repository"
	"github.com/wendriu/estoque-api/pkg/cnpj"
)

// SupplierUseCase casos de uso CRUD e busca para fornecedores. O CNPJ é validado
// aqui, na borda, antes de chegar ao repositório.
type SupplierUseCase struct {
	repo repository.SupplierRepository
}

// NewSupplierUseCase constrói o caso de uso.
func NewSupplierUseCase(repo repository.SupplierRepository) *SupplierUseCase {
	return &SupplierUseCase{repo: repo}
}

// Create cadastra um fornecedor. CNPJ e telefone são reduzidos aos dígitos; CNPJ
// inválido -> ErrInvalidInput, CNPJ já cadastrado -> ErrDuplicate.
func (uc *SupplierUseCase) Create(in dto.CreateSupplierRequest) (*dto.SupplierResponse, error) {
	if in.Name == "" || in.CNPJ == "" || in.Address == "" || in.Phone == "" || in.Email == "" {
		return nil, domain.ErrInvalidInput
	}
	if !cnpj.Valid(in.CNPJ) {
		return nil, domain.ErrInvalidInput
	}
	normalized := onlyDigits(in.CNPJ)
	existing, err := uc.repo.GetByCNPJ(normalized)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	supplier := &entity.Supplier{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(in.Name),
		CNPJ:      normalized,
		Address:   in.Address,
		Phone:     onlyDigits(in.Phone),
		Email:     in.Email,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(supplier); err != nil {
		return nil, err
	}
	resp := supplierResponse(supplier)
	return &resp, nil
}

// GetByID obtém um fornecedor por ID.
func (uc *SupplierUseCase) GetByID(id string) (*dto.SupplierResponse, error) {
	supplier, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrNotFound
	}
	resp := supplierResponse(supplier)
	return &resp, nil
}

// Update edita um fornecedor; campos ausentes mantêm o valor atual. Um CNPJ novo
// passa pela mesma validação e checagem de duplicidade do cadastro.
func (uc *SupplierUseCase) Update(id string, in dto.UpdateSupplierRequest) (*dto.SupplierResponse, error) {
	supplier, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		supplier.Name = strings.TrimSpace(*in.Name)
	}
	if in.CNPJ != nil {
		if !cnpj.Valid(*in.CNPJ) {
			return nil, domain.ErrInvalidInput
		}
		normalized := onlyDigits(*in.CNPJ)
		if normalized != supplier.CNPJ {
			existing, err := uc.repo.GetByCNPJ(normalized)
			if err != nil {
				return nil, err
			}
			if existing != nil {
				return nil, domain.ErrDuplicate
			}
		}
		supplier.CNPJ = normalized
	}
	if in.Address != nil {
		supplier.Address = *in.Address
	}
	if in.Phone != nil {
		supplier.Phone = onlyDigits(*in.Phone)
	}
	if in.Email != nil {
		supplier.Email = *in.Email
	}
	supplier.UpdatedAt = time.Now()
	if err := uc.repo.Update(supplier); err != nil {
		return nil, err
	}
	resp := supplierResponse(supplier)
	return &resp, nil
}

// Delete exclui um fornecedor por ID; ErrNotFound se não existir.
func (uc *SupplierUseCase) Delete(id string) error {
	supplier, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if supplier == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

// Search lista fornecedores por nome; q casa nome e CNPJ (substring,
// sem diferenciar maiúsculas). q vazio devolve todos.
func (uc *SupplierUseCase) Search(q string) ([]dto.SupplierResponse, error) {
	list, err := uc.repo.Search(strings.TrimSpace(q))
	if err != nil {
		return nil, err
	}
	out := make([]dto.SupplierResponse, 0, len(list))
	for _, s := range list {
		out = append(out, supplierResponse(s))
	}
	return out, nil
}

func supplierResponse(s *entity.Supplier) dto.SupplierResponse {
	return dto.SupplierResponse{
		ID:        s.ID,
		Name:      s.Name,
		CNPJ:      s.CNPJ,
		Address:   s.Address,
		Phone:     s.Phone,
		Email:     s.Email,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func onlyDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
