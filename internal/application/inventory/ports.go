package inventory

import (
	"context"

	"github.com/wendriu/estoque-api/internal/domain/repository"
)

// TxRunner executa uma função dentro de uma transação de banco, passando
// repositórios atados a essa transação. Garante que a reversão e a aplicação de
// uma reconciliação sejam gravadas juntas ou não sejam gravadas.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
	) error) error
}
