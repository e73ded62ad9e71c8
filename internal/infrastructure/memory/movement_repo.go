package memory

import (
	"sort"

	"github.com/wendriu/estoque-api/internal/domain/entity"
)

type movementRepo struct {
	s *Store
}

func (r *movementRepo) Create(movement *entity.Movement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.movements[movement.ID] = *movement
	return nil
}

func (r *movementRepo) GetByID(id string) (*entity.Movement, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if m, ok := r.s.movements[id]; ok {
		return &m, nil
	}
	return nil, nil
}

func (r *movementRepo) GetDetail(id string) (*entity.MovementDetail, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	m, ok := r.s.movements[id]
	if !ok {
		return nil, nil
	}
	return r.detail(m), nil
}

func (r *movementRepo) Update(movement *entity.Movement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	// Date não muda em edições; preserva a gravada.
	if existing, ok := r.s.movements[movement.ID]; ok {
		movement.Date = existing.Date
	}
	r.s.movements[movement.ID] = *movement
	return nil
}

func (r *movementRepo) Delete(id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.movements, id)
	return nil
}

func (r *movementRepo) Search(q string) ([]*entity.MovementDetail, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	// União do adaptador SQL: observação OU produto/usuário cujo nome casa.
	productIDs := make(map[string]bool)
	userIDs := make(map[string]bool)
	if q != "" {
		for id, p := range r.s.products {
			if matches(p.Name, q) {
				productIDs[id] = true
			}
		}
		for id, u := range r.s.users {
			if matches(u.Name, q) {
				userIDs[id] = true
			}
		}
	}

	var list []*entity.MovementDetail
	for _, m := range r.s.movements {
		if q != "" && !matches(m.Note, q) && !productIDs[m.ProductID] && !userIDs[m.UserID] {
			continue
		}
		list = append(list, r.detail(m))
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Date.After(list[j].Date) })
	return list, nil
}

// detail resolve as referências; chamador segura o lock.
func (r *movementRepo) detail(m entity.Movement) *entity.MovementDetail {
	d := &entity.MovementDetail{Movement: m}
	if p, ok := r.s.products[m.ProductID]; ok {
		d.Product = &p
	}
	if u, ok := r.s.users[m.UserID]; ok {
		u.Password = ""
		d.User = &u
	}
	return d
}
