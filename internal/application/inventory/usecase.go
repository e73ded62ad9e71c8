package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/wendriu/estoque-api/internal/application/dto"
	"github.com/wendriu/estoque-api/internal/domain"
	"github.com/wendriu/estoque-api/internal/domain/entity"
	"github.com/wendriu/estoque-api/internal/domain/repository"
	"github.com/wendriu/estoque-api/pkg/logger"
)

// MovementUseCase é o motor de movimentações: criação, edição (reconciliação) e
// exclusão aplicam o delta correspondente à quantidade do produto dentro de uma
// transação, com bloqueio de linha (SELECT FOR UPDATE) nos produtos tocados.
//
// Política simétrica: criar aplica o delta, excluir o reverte, editar desfaz o
// efeito antigo e aplica o novo. Invariante: a quantidade do produto é a soma
// das entradas menos a soma das saídas que o referenciam.
type MovementUseCase struct {
	txRunner  TxRunner
	movements repository.MovementRepository
	users     repository.UserRepository
	log       *logger.Logger
}

// NewMovementUseCase constrói o caso de uso. movements e users são os
// repositórios de leitura (fora de transação).
func NewMovementUseCase(
	txRunner TxRunner,
	movements repository.MovementRepository,
	users repository.UserRepository,
	log *logger.Logger,
) *MovementUseCase {
	return &MovementUseCase{
		txRunner:  txRunner,
		movements: movements,
		users:     users,
		log:       log,
	}
}

// Create registra uma movimentação e aplica o delta ao produto na mesma
// transação: entrada soma, saída subtrai com verificação de piso
// (ErrInsufficientStock se o estoque não cobre a quantidade).
func (uc *MovementUseCase) Create(ctx context.Context, in dto.CreateMovementRequest) (*dto.MovementResponse, error) {
	if !entity.ValidMovementType(in.Type) || in.Quantity <= 0 || in.ProductID == "" || in.UserID == "" {
		return nil, domain.ErrInvalidInput
	}
	user, err := uc.users.GetByID(in.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrReferenceNotFound
	}

	mov := &entity.Movement{
		ID:        uuid.New().String(),
		Type:      in.Type,
		ProductID: in.ProductID,
		Quantity:  in.Quantity,
		Date:      time.Now(),
		Note:      in.Note,
		UserID:    in.UserID,
	}

	err = uc.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
	) error {
		product, err := productRepo.GetForUpdate(in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrReferenceNotFound
		}
		if in.Type == entity.MovementTypeIn {
			product.Quantity += in.Quantity
		} else {
			if product.Quantity < in.Quantity {
				return domain.ErrInsufficientStock
			}
			product.Quantity -= in.Quantity
		}
		if err := productRepo.UpdateQuantity(product.ID, product.Quantity); err != nil {
			return err
		}
		return movRepo.Create(mov)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("movement_id", mov.ID).
		Str("type", mov.Type).
		Str("product_id", mov.ProductID).
		Int("quantity", mov.Quantity).
		Msg("movimentação registrada")
	resp := movementResponse(mov)
	return &resp, nil
}

// Reconcile edita uma movimentação existente desfazendo o efeito antigo e
// aplicando o novo, tudo em uma transação:
//
//  1. Carrega a movimentação (ErrNotFound se ausente).
//  2. Resolve o produto original; se foi excluído, a reversão vira no-op com log
//     de aviso, em vez de travar a movimentação para sempre.
//  3. Resolve o produto de destino (o enviado, ou o atual se ausente);
//     ErrReferenceNotFound aborta antes de qualquer gravação.
//  4. Reverte o delta original no produto antigo, aplica o novo delta no destino
//     (saída exige quantidade pós-reversão suficiente, senão ErrInsufficientStock
//     e rollback) e grava movimentação e produto(s).
//
// Quantity é obrigatório no payload; Type, ProductID, Note e UserID ausentes
// mantêm os valores gravados. Date nunca muda.
func (uc *MovementUseCase) Reconcile(ctx context.Context, id string, in dto.UpdateMovementRequest) (*dto.ReconcileResponse, error) {
	if in.Quantity == nil {
		return nil, domain.ErrInvalidInput
	}
	if *in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.Type != nil && !entity.ValidMovementType(*in.Type) {
		return nil, domain.ErrInvalidInput
	}
	if in.UserID != nil && *in.UserID != "" {
		user, err := uc.users.GetByID(*in.UserID)
		if err != nil {
			return nil, err
		}
		if user == nil {
			return nil, domain.ErrReferenceNotFound
		}
	}

	var (
		updated  *entity.Movement
		affected []*entity.Product
	)
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
	) error {
		mov, err := movRepo.GetByID(id)
		if err != nil {
			return err
		}
		if mov == nil {
			return domain.ErrNotFound
		}

		oldProduct, err := productRepo.GetForUpdate(mov.ProductID)
		if err != nil {
			return err
		}
		if oldProduct == nil {
			uc.log.Warn().
				Str("movement_id", mov.ID).
				Str("product_id", mov.ProductID).
				Msg("produto original da movimentação não existe mais; reversão ignorada")
		}

		targetID := mov.ProductID
		if in.ProductID != nil && *in.ProductID != "" {
			targetID = *in.ProductID
		}
		target := oldProduct
		if oldProduct == nil || targetID != oldProduct.ID {
			target, err = productRepo.GetForUpdate(targetID)
			if err != nil {
				return err
			}
		}
		if target == nil {
			return domain.ErrReferenceNotFound
		}

		// Reversão: desfaz o efeito do registro original sobre o produto antigo.
		if oldProduct != nil {
			if mov.Type == entity.MovementTypeIn {
				oldProduct.Quantity -= mov.Quantity
			} else {
				oldProduct.Quantity += mov.Quantity
			}
		}

		newType := mov.Type
		if in.Type != nil {
			newType = *in.Type
		}
		newQty := *in.Quantity

		// Aplicação do novo delta sobre o destino (que pode ser o próprio produto
		// antigo, já revertido em memória).
		if newType == entity.MovementTypeIn {
			target.Quantity += newQty
		} else {
			if target.Quantity < newQty {
				return domain.ErrInsufficientStock
			}
			target.Quantity -= newQty
		}

		if oldProduct != nil && oldProduct.ID != target.ID {
			if err := productRepo.UpdateQuantity(oldProduct.ID, oldProduct.Quantity); err != nil {
				return err
			}
			affected = append(affected, oldProduct)
		}
		if err := productRepo.UpdateQuantity(target.ID, target.Quantity); err != nil {
			return err
		}
		affected = append(affected, target)

		mov.Type = newType
		mov.ProductID = target.ID
		mov.Quantity = newQty
		if in.Note != nil {
			mov.Note = *in.Note
		}
		if in.UserID != nil && *in.UserID != "" {
			mov.UserID = *in.UserID
		}
		if err := movRepo.Update(mov); err != nil {
			return err
		}
		updated = mov
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("movement_id", updated.ID).
		Int("affected_products", len(affected)).
		Msg("movimentação reconciliada")

	out := &dto.ReconcileResponse{Movement: movementResponse(updated)}
	for _, p := range affected {
		out.Products = append(out.Products, productResponse(p))
	}
	return out, nil
}

// Delete exclui uma movimentação revertendo seu efeito sobre o produto na mesma
// transação. A reversão é incondicional (reverter uma entrada pode deixar a
// quantidade negativa se o estoque já foi consumido; o registro histórico deixa
// de existir, então a conta precisa fechar). Produto já excluído: reversão vira
// no-op com log de aviso e a exclusão segue.
func (uc *MovementUseCase) Delete(ctx context.Context, id string) error {
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
	) error {
		mov, err := movRepo.GetByID(id)
		if err != nil {
			return err
		}
		if mov == nil {
			return domain.ErrNotFound
		}
		product, err := productRepo.GetForUpdate(mov.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			uc.log.Warn().
				Str("movement_id", mov.ID).
				Str("product_id", mov.ProductID).
				Msg("produto da movimentação excluída não existe mais; reversão ignorada")
		} else {
			if mov.Type == entity.MovementTypeIn {
				product.Quantity -= mov.Quantity
			} else {
				product.Quantity += mov.Quantity
			}
			if err := productRepo.UpdateQuantity(product.ID, product.Quantity); err != nil {
				return err
			}
		}
		return movRepo.Delete(mov.ID)
	})
	if err != nil {
		return err
	}
	uc.log.Info().Str("movement_id", id).Msg("movimentação excluída")
	return nil
}

// GetByID devolve uma movimentação com produto e usuário resolvidos.
func (uc *MovementUseCase) GetByID(id string) (*dto.MovementResponse, error) {
	detail, err := uc.movements.GetDetail(id)
	if err != nil {
		return nil, err
	}
	if detail == nil {
		return nil, domain.ErrNotFound
	}
	resp := movementDetailResponse(detail)
	return &resp, nil
}

// Search lista movimentações por data decrescente; q casa observação, nome do
// produto e nome do usuário (substring, sem diferenciar maiúsculas).
func (uc *MovementUseCase) Search(q string) ([]dto.MovementResponse, error) {
	list, err := uc.movements.Search(q)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovementResponse, 0, len(list))
	for _, d := range list {
		out = append(out, movementDetailResponse(d))
	}
	return out, nil
}

func movementResponse(m *entity.Movement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:        m.ID,
		Type:      m.Type,
		ProductID: m.ProductID,
		Quantity:  m.Quantity,
		Date:      m.Date,
		Note:      m.Note,
		UserID:    m.UserID,
	}
}

func movementDetailResponse(d *entity.MovementDetail) dto.MovementResponse {
	resp := movementResponse(&d.Movement)
	if d.Product != nil {
		p := productResponse(d.Product)
		resp.Product = &p
	}
	if d.User != nil {
		resp.User = &dto.UserResponse{
			ID:        d.User.ID,
			Name:      d.User.Name,
			Email:     d.User.Email,
			Role:      d.User.Role,
			ImageURL:  d.User.ImageURL,
			CreatedAt: d.User.CreatedAt,
			UpdatedAt: d.User.UpdatedAt,
		}
	}
	return resp
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
