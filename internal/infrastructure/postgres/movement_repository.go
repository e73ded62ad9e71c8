package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/wendriu/estoque-api/internal/domain/entity"
	"github.com/wendriu/estoque-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementação da porta MovementRepository sobre PostgreSQL
// (usável com pool ou tx).
type MovementRepo struct {
	q Querier
}

// NewMovementRepository constrói o adaptador de persistência para movimentações.
// Passar pool ou tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create persiste uma nova movimentação.
func (r *MovementRepo) Create(m *entity.Movement) error {
	query := `
		INSERT INTO movements (id, type, product_id, quantity, date, note, user_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.Type, m.ProductID, m.Quantity, m.Date, m.Note, m.UserID,
	)
	if err != nil {
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

// GetByID obtém uma movimentação por ID (sem resolver referências).
func (r *MovementRepo) GetByID(id string) (*entity.Movement, error) {
	var m entity.Movement
	err := r.q.QueryRow(context.Background(),
		`SELECT id, type, product_id, quantity, date, note, user_id FROM movements WHERE id = $1`, id,
	).Scan(&m.ID, &m.Type, &m.ProductID, &m.Quantity, &m.Date, &m.Note, &m.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return &m, nil
}

// GetDetail obtém uma movimentação com produto e usuário resolvidos.
func (r *MovementRepo) GetDetail(id string) (*entity.MovementDetail, error) {
	rows, err := r.q.Query(context.Background(), detailQuery+` WHERE m.id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("get movement detail: %w", err)
	}
	defer rows.Close()
	if !rows.Next() {
		return nil, rows.Err()
	}
	d, err := scanDetail(rows)
	if err != nil {
		return nil, err
	}
	return d, rows.Err()
}

// Update atualiza uma movimentação existente. Date não entra no UPDATE: edições
// não alteram a data do registro.
func (r *MovementRepo) Update(m *entity.Movement) error {
	query := `
		UPDATE movements SET type = $2, product_id = $3, quantity = $4, note = $5, user_id = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.Type, m.ProductID, m.Quantity, m.Note, m.UserID,
	)
	if err != nil {
		return fmt.Errorf("update movement: %w", err)
	}
	return nil
}

// Delete exclui uma movimentação por ID.
func (r *MovementRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM movements WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete movement: %w", err)
	}
	return nil
}

const detailQuery = `
	SELECT m.id, m.type, m.product_id, m.quantity, m.date, m.note, m.user_id,
	       p.id, p.name, p.description, p.image_url, p.price, p.quantity, p.supplier_id, p.created_at, p.updated_at,
	       u.id, u.name, u.email, u.role, u.image_url, u.created_at, u.updated_at
	FROM movements m
	LEFT JOIN products p ON p.id = m.product_id
	LEFT JOIN users u ON u.id = m.user_id`

// Search lista movimentações por data decrescente com referências resolvidas;
// q casa observação, nome do produto e nome do usuário via ILIKE. q vazio
// devolve todas.
func (r *MovementRepo) Search(q string) ([]*entity.MovementDetail, error) {
	query := detailQuery + ` ORDER BY m.date DESC`
	args := []any{}
	if q != "" {
		query = detailQuery + `
			WHERE m.note ILIKE $1
			   OR m.product_id IN (SELECT id FROM products WHERE name ILIKE $1)
			   OR m.user_id IN (SELECT id FROM users WHERE name ILIKE $1)
			ORDER BY m.date DESC`
		args = append(args, likePattern(q))
	}
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("search movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.MovementDetail
	for rows.Next() {
		d, err := scanDetail(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, d)
	}
	return list, rows.Err()
}

// scanDetail lê uma linha do detailQuery; colunas do produto e do usuário podem
// vir nulas quando a referência foi excluída.
func scanDetail(rows pgx.Rows) (*entity.MovementDetail, error) {
	var (
		d entity.MovementDetail

		pID, pName, pDescription, pImageURL, pSupplierID *string
		pPrice                                           *decimal.Decimal
		pQuantity                                        *int
		pCreated, pUpdated                               *time.Time

		uID, uName, uEmail, uRole, uImageURL *string
		uCreated, uUpdated                   *time.Time
	)
	if err := rows.Scan(
		&d.ID, &d.Type, &d.ProductID, &d.Quantity, &d.Date, &d.Note, &d.UserID,
		&pID, &pName, &pDescription, &pImageURL, &pPrice, &pQuantity, &pSupplierID, &pCreated, &pUpdated,
		&uID, &uName, &uEmail, &uRole, &uImageURL, &uCreated, &uUpdated,
	); err != nil {
		return nil, fmt.Errorf("scan movement: %w", err)
	}
	if pID != nil {
		d.Product = &entity.Product{
			ID: *pID, Name: *pName, Description: *pDescription, ImageURL: *pImageURL,
			Price: *pPrice, Quantity: *pQuantity, SupplierID: *pSupplierID,
			CreatedAt: *pCreated, UpdatedAt: *pUpdated,
		}
	}
	if uID != nil {
		d.User = &entity.User{
			ID: *uID, Name: *uName, Email: *uEmail, Role: *uRole, ImageURL: *uImageURL,
			CreatedAt: *uCreated, UpdatedAt: *uUpdated,
		}
	}
	return &d, nil
}
