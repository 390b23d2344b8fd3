package memory

import (
	"context"
	"fmt"

	"github.com/jhoicas/Casos-api/internal/domain"
	"github.com/jhoicas/Casos-api/internal/domain/entity"
	"github.com/jhoicas/Casos-api/internal/domain/repository"
	"github.com/jhoicas/Casos-api/pkg/textfold"
)

type serviceRepo struct {
	s *Store
	l locker
}

func (r *serviceRepo) Create(_ context.Context, s *entity.Service) error {
	r.l.Lock()
	defer r.l.Unlock()
	if _, ok := r.s.data.beneficiaries[s.BeneficiaryID]; !ok {
		return fmt.Errorf("servicio %s: beneficiario %s inexistente", s.ID, s.BeneficiaryID)
	}
	r.s.data.services[s.ID] = s.Clone()
	return nil
}

func (r *serviceRepo) GetByID(_ context.Context, id string) (*entity.Service, error) {
	r.l.RLock()
	defer r.l.RUnlock()
	return r.s.data.services[id].Clone(), nil
}

func (r *serviceRepo) Update(_ context.Context, s *entity.Service) error {
	r.l.Lock()
	defer r.l.Unlock()
	if _, ok := r.s.data.services[s.ID]; !ok {
		return fmt.Errorf("%w: servicio %s", domain.ErrNotFound, s.ID)
	}
	r.s.data.services[s.ID] = s.Clone()
	return nil
}

func (r *serviceRepo) Delete(_ context.Context, id string) error {
	r.l.Lock()
	defer r.l.Unlock()
	if _, ok := r.s.data.services[id]; !ok {
		return fmt.Errorf("%w: servicio %s", domain.ErrNotFound, id)
	}
	delete(r.s.data.services, id)
	return nil
}

func (r *serviceRepo) DeleteByCase(_ context.Context, caseID string) (int, error) {
	r.l.Lock()
	defer r.l.Unlock()
	n := 0
	for id, s := range r.s.data.services {
		if s.CaseID != nil && *s.CaseID == caseID {
			delete(r.s.data.services, id)
			n++
		}
	}
	return n, nil
}

func (r *serviceRepo) List(_ context.Context, f repository.ServiceFilter, scope repository.Scope) ([]*entity.Service, int, error) {
	r.l.RLock()
	defer r.l.RUnlock()
	matched := r.match(f, scope)
	newestFirst(matched, func(s *entity.Service) (int64, string) { return s.Date.UnixNano(), s.ID })
	page := paginate(matched, f.Page)
	out := make([]*entity.Service, 0, len(page))
	for _, s := range page {
		out = append(out, s.Clone())
	}
	return out, len(matched), nil
}

func (r *serviceRepo) Count(_ context.Context, f repository.ServiceFilter, scope repository.Scope) (int, error) {
	r.l.RLock()
	defer r.l.RUnlock()
	return len(r.match(f, scope)), nil
}

func (r *serviceRepo) match(f repository.ServiceFilter, scope repository.Scope) []*entity.Service {
	var out []*entity.Service
	for _, s := range r.s.data.services {
		switch {
		case !inScope(scope, s.Ownership()),
			f.Type != "" && s.Type != f.Type,
			f.BeneficiaryID != "" && s.BeneficiaryID != f.BeneficiaryID,
			f.CaseID != "" && (s.CaseID == nil || *s.CaseID != f.CaseID),
			f.DateFrom != nil && s.Date.Before(*f.DateFrom),
			f.DateTo != nil && !s.Date.Before(f.DateTo.AddDate(0, 0, 1)),
			!textfold.Contains(f.Search, s.Description, s.Location, s.Notes):
			continue
		}
		out = append(out, s)
	}
	return out
}
