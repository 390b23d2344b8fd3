package memory

import (
	"context"
	"fmt"

	"github.com/jhoicas/Casos-api/internal/domain"
	"github.com/jhoicas/Casos-api/internal/domain/entity"
	"github.com/jhoicas/Casos-api/internal/domain/repository"
	"github.com/jhoicas/Casos-api/pkg/textfold"
)

type caseRepo struct {
	s *Store
	l locker
}

func (r *caseRepo) Create(_ context.Context, c *entity.Case) error {
	r.l.Lock()
	defer r.l.Unlock()
	if _, ok := r.s.data.beneficiaries[c.BeneficiaryID]; !ok {
		return fmt.Errorf("caso %s: beneficiario %s inexistente", c.ID, c.BeneficiaryID)
	}
	r.s.data.cases[c.ID] = c.Clone()
	return nil
}

func (r *caseRepo) GetByID(_ context.Context, id string) (*entity.Case, error) {
	r.l.RLock()
	defer r.l.RUnlock()
	return r.s.data.cases[id].Clone(), nil
}

func (r *caseRepo) Update(_ context.Context, c *entity.Case) error {
	r.l.Lock()
	defer r.l.Unlock()
	if _, ok := r.s.data.cases[c.ID]; !ok {
		return fmt.Errorf("%w: caso %s", domain.ErrNotFound, c.ID)
	}
	r.s.data.cases[c.ID] = c.Clone()
	return nil
}

// Delete elimina el caso y, como la FK con ON DELETE CASCADE, sus servicios.
func (r *caseRepo) Delete(_ context.Context, id string) error {
	r.l.Lock()
	defer r.l.Unlock()
	if _, ok := r.s.data.cases[id]; !ok {
		return fmt.Errorf("%w: caso %s", domain.ErrNotFound, id)
	}
	delete(r.s.data.cases, id)
	for sid, s := range r.s.data.services {
		if s.CaseID != nil && *s.CaseID == id {
			delete(r.s.data.services, sid)
		}
	}
	return nil
}

func (r *caseRepo) List(_ context.Context, f repository.CaseFilter, scope repository.Scope) ([]*entity.Case, int, error) {
	r.l.RLock()
	defer r.l.RUnlock()
	matched := r.match(f, scope)
	newestFirst(matched, func(c *entity.Case) (int64, string) { return c.CreatedAt.UnixNano(), c.ID })
	page := paginate(matched, f.Page)
	out := make([]*entity.Case, 0, len(page))
	for _, c := range page {
		out = append(out, c.Clone())
	}
	return out, len(matched), nil
}

func (r *caseRepo) Count(_ context.Context, f repository.CaseFilter, scope repository.Scope) (int, error) {
	r.l.RLock()
	defer r.l.RUnlock()
	return len(r.match(f, scope)), nil
}

func (r *caseRepo) match(f repository.CaseFilter, scope repository.Scope) []*entity.Case {
	var out []*entity.Case
	for _, c := range r.s.data.cases {
		switch {
		case !inScope(scope, c.Ownership()),
			f.Status != "" && c.Status != f.Status,
			f.Type != "" && c.Type != f.Type,
			f.Priority != "" && c.Priority != f.Priority,
			f.BeneficiaryID != "" && c.BeneficiaryID != f.BeneficiaryID,
			!textfold.Contains(f.Search, c.Title, c.Description):
			continue
		}
		out = append(out, c)
	}
	return out
}
