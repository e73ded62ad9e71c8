package usecase

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/wendriu/estoque-api/internal/application/dto"
	"github.com/wendriu/estoque-api/internal/domain"
	"github.com/wendriu/estoque-api/internal/domain/entity"
	"github.com/wendriu/estoque-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD e busca para produtos. A quantidade muda por
// movimentações; o ajuste manual do cadastro existe, mas não gera histórico.
type ProductUseCase struct {
	repo      repository.ProductRepository
	suppliers repository.SupplierRepository
}

// NewProductUseCase constrói o caso de uso.
func NewProductUseCase(repo repository.ProductRepository, suppliers repository.SupplierRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo, suppliers: suppliers}
}

// Create cadastra um produto. Fornecedor é obrigatório e precisa existir
// (ErrReferenceNotFound); preço negativo -> ErrInvalidInput.
func (uc *ProductUseCase) Create(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Name == "" || in.SupplierID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Price.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	supplier, err := uc.suppliers.GetByID(in.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrReferenceNotFound
	}
	now := time.Now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		ImageURL:    in.ImageURL,
		Price:       in.Price,
		Quantity:    in.Quantity,
		SupplierID:  in.SupplierID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	resp := productResponse(product)
	resp.Supplier = supplierResponsePtr(supplier)
	return &resp, nil
}

// GetByID obtém um produto por ID, com o fornecedor resolvido quando ainda existe.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	resp := productResponse(product)
	if supplier, err := uc.suppliers.GetByID(product.SupplierID); err == nil && supplier != nil {
		resp.Supplier = supplierResponsePtr(supplier)
	}
	return &resp, nil
}

// Update edita um produto; campos ausentes mantêm o valor atual. Um fornecedor
// novo precisa existir.
func (uc *ProductUseCase) Update(id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		product.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.ImageURL != nil {
		product.ImageURL = *in.ImageURL
	}
	if in.Price != nil {
		if in.Price.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		product.Price = *in.Price
	}
	if in.Quantity != nil {
		product.Quantity = *in.Quantity
	}
	if in.SupplierID != nil && *in.SupplierID != product.SupplierID {
		supplier, err := uc.suppliers.GetByID(*in.SupplierID)
		if err != nil {
			return nil, err
		}
		if supplier == nil {
			return nil, domain.ErrReferenceNotFound
		}
		product.SupplierID = *in.SupplierID
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	resp := productResponse(product)
	return &resp, nil
}

// Delete exclui um produto por ID. As movimentações que o referenciam ficam com
// a referência pendurada; o motor de reconciliação trata isso como reversão no-op.
func (uc *ProductUseCase) Delete(id string) error {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

// Search lista produtos por nome; q casa nome, descrição e nome do fornecedor
// (substring, sem diferenciar maiúsculas). q vazio devolve todos.
func (uc *ProductUseCase) Search(q string) ([]dto.ProductResponse, error) {
	list, err := uc.repo.Search(strings.TrimSpace(q))
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(list))
	for _, d := range list {
		resp := productResponse(&d.Product)
		if d.Supplier != nil {
			resp.Supplier = supplierResponsePtr(d.Supplier)
		}
		out = append(out, resp)
	}
	return out, nil
}

func productResponse(p *entity.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		ImageURL:    p.ImageURL,
		Price:       p.Price,
		Quantity:    p.Quantity,
		SupplierID:  p.SupplierID,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func supplierResponsePtr(s *entity.Supplier) *dto.SupplierResponse {
	resp := supplierResponse(s)
	return &resp
}
