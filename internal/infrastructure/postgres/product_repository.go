package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/wendriu/estoque-api/internal/domain/entity"
	"github.com/wendriu/estoque-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementação da porta ProductRepository sobre PostgreSQL
// (usável com pool ou tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository constrói o adaptador de persistência para produtos.
// Passar pool ou tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, name, description, image_url, price, quantity, supplier_id, created_at, updated_at`

// Create persiste um novo produto.
func (r *ProductRepo) Create(p *entity.Product) error {
	query := `
		INSERT INTO products (id, name, description, image_url, price, quantity, supplier_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.Name, p.Description, p.ImageURL, p.Price, p.Quantity, p.SupplierID, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtém um produto por ID.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	return r.getOne(`SELECT ` + productColumns + ` FROM products WHERE id = $1`, id)
}

// GetForUpdate obtém um produto bloqueando a linha (SELECT FOR UPDATE). Dentro
// de uma transação serializa edições concorrentes da mesma quantidade; fora,
// equivale a GetByID.
func (r *ProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.getOne(`SELECT `+productColumns+` FROM products WHERE id = $1 FOR UPDATE`, id)
}

func (r *ProductRepo) getOne(query string, id string) (*entity.Product, error) {
	var p entity.Product
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.Name, &p.Description, &p.ImageURL, &p.Price, &p.Quantity, &p.SupplierID, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// Update atualiza um produto existente (cadastro completo, incluindo o ajuste
// manual de quantidade).
func (r *ProductRepo) Update(p *entity.Product) error {
	query := `
		UPDATE products SET name = $2, description = $3, image_url = $4, price = $5, quantity = $6, supplier_id = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.Name, p.Description, p.ImageURL, p.Price, p.Quantity, p.SupplierID, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// UpdateQuantity atualiza só a quantidade (usado pelo motor de movimentações).
func (r *ProductRepo) UpdateQuantity(id string, quantity int) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE products SET quantity = $2, updated_at = now() WHERE id = $1`,
		id, quantity,
	)
	if err != nil {
		return fmt.Errorf("update product quantity: %w", err)
	}
	return nil
}

// Delete exclui um produto por ID.
func (r *ProductRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

// Search lista produtos por nome com o fornecedor resolvido; q casa nome,
// descrição e nome do fornecedor via ILIKE. q vazio devolve todos.
func (r *ProductRepo) Search(q string) ([]*entity.ProductDetail, error) {
	base := `
		SELECT p.id, p.name, p.description, p.image_url, p.price, p.quantity, p.supplier_id, p.created_at, p.updated_at,
		       s.id, s.name, s.cnpj, s.address, s.phone, s.email, s.created_at, s.updated_at
		FROM products p
		LEFT JOIN suppliers s ON s.id = p.supplier_id`
	query := base + ` ORDER BY p.name ASC`
	args := []any{}
	if q != "" {
		query = base + `
			WHERE p.name ILIKE $1 OR p.description ILIKE $1
			   OR p.supplier_id IN (SELECT id FROM suppliers WHERE name ILIKE $1)
			ORDER BY p.name ASC`
		args = append(args, likePattern(q))
	}
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}
	defer rows.Close()
	var list []*entity.ProductDetail
	for rows.Next() {
		var (
			d        entity.ProductDetail
			supplier entity.Supplier
			sID, sName, sCNPJ, sAddress, sPhone, sEmail *string
			sCreated, sUpdated                          *time.Time
		)
		if err := rows.Scan(
			&d.ID, &d.Name, &d.Description, &d.ImageURL, &d.Price, &d.Quantity, &d.SupplierID, &d.CreatedAt, &d.UpdatedAt,
			&sID, &sName, &sCNPJ, &sAddress, &sPhone, &sEmail, &sCreated, &sUpdated,
		); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		if sID != nil {
			supplier = entity.Supplier{
				ID: *sID, Name: *sName, CNPJ: *sCNPJ, Address: *sAddress,
				Phone: *sPhone, Email: *sEmail, CreatedAt: *sCreated, UpdatedAt: *sUpdated,
			}
			d.Supplier = &supplier
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}
