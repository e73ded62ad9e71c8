package memory

import (
	"sort"
	"time"

	"github.com/wendriu/estoque-api/internal/domain/entity"
)

type productRepo struct {
	s *Store
}

func (r *productRepo) Create(product *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.products[product.ID] = *product
	return nil
}

func (r *productRepo) GetByID(id string) (*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if p, ok := r.s.products[id]; ok {
		return &p, nil
	}
	return nil, nil
}

// GetForUpdate em memória equivale a GetByID: o TxRunner serializa as transações.
func (r *productRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.GetByID(id)
}

func (r *productRepo) Update(product *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.products[product.ID] = *product
	return nil
}

func (r *productRepo) UpdateQuantity(id string, quantity int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok {
		return nil
	}
	p.Quantity = quantity
	p.UpdatedAt = time.Now()
	r.s.products[id] = p
	return nil
}

func (r *productRepo) Delete(id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.products, id)
	return nil
}

func (r *productRepo) Search(q string) ([]*entity.ProductDetail, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	// Mesma união do adaptador SQL: campos próprios OU fornecedor cujo nome casa.
	supplierIDs := make(map[string]bool)
	if q != "" {
		for id, s := range r.s.suppliers {
			if matches(s.Name, q) {
				supplierIDs[id] = true
			}
		}
	}

	var list []*entity.ProductDetail
	for _, p := range r.s.products {
		if q != "" && !matches(p.Name, q) && !matches(p.Description, q) && !supplierIDs[p.SupplierID] {
			continue
		}
		d := &entity.ProductDetail{Product: p}
		if s, ok := r.s.suppliers[p.SupplierID]; ok {
			s := s
			d.Supplier = &s
		}
		list = append(list, d)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}
