package memory

import (
	"sort"

	"github.com/wendriu/estoque-api/internal/domain"
	"github.com/wendriu/estoque-api/internal/domain/entity"
)

type supplierRepo struct {
	s *Store
}

func (r *supplierRepo) Create(supplier *entity.Supplier) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.suppliers {
		if existing.CNPJ == supplier.CNPJ {
			return domain.ErrDuplicate
		}
	}
	r.s.suppliers[supplier.ID] = *supplier
	return nil
}

func (r *supplierRepo) GetByID(id string) (*entity.Supplier, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if s, ok := r.s.suppliers[id]; ok {
		return &s, nil
	}
	return nil, nil
}

func (r *supplierRepo) GetByCNPJ(cnpj string) (*entity.Supplier, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, s := range r.s.suppliers {
		if s.CNPJ == cnpj {
			return &s, nil
		}
	}
	return nil, nil
}

func (r *supplierRepo) Update(supplier *entity.Supplier) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, existing := range r.s.suppliers {
		if id != supplier.ID && existing.CNPJ == supplier.CNPJ {
			return domain.ErrDuplicate
		}
	}
	r.s.suppliers[supplier.ID] = *supplier
	return nil
}

func (r *supplierRepo) Delete(id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.suppliers, id)
	return nil
}

func (r *supplierRepo) Search(q string) ([]*entity.Supplier, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var list []*entity.Supplier
	for _, s := range r.s.suppliers {
		if q == "" || matches(s.Name, q) || matches(s.CNPJ, q) {
			s := s
			list = append(list, &s)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}
