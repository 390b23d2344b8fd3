package memory

import (
	"context"
	"fmt"

	"github.com/jhoicas/Casos-api/internal/domain"
	"github.com/jhoicas/Casos-api/internal/domain/entity"
	"github.com/jhoicas/Casos-api/internal/domain/repository"
	"github.com/jhoicas/Casos-api/pkg/textfold"
)

type beneficiaryRepo struct {
	s *Store
	l locker
}

// checkIDNumber emula el índice único parcial sobre id_number.
func (r *beneficiaryRepo) checkIDNumber(b *entity.Beneficiary) error {
	if b.IDNumber == nil {
		return nil
	}
	for _, other := range r.s.data.beneficiaries {
		if other.ID != b.ID && other.IDNumber != nil && *other.IDNumber == *b.IDNumber {
			return fmt.Errorf("%w: idNumber ya registrado", domain.ErrConflict)
		}
	}
	return nil
}

func (r *beneficiaryRepo) Create(_ context.Context, b *entity.Beneficiary) error {
	r.l.Lock()
	defer r.l.Unlock()
	if _, ok := r.s.data.beneficiaries[b.ID]; ok {
		return fmt.Errorf("%w: beneficiario %s", domain.ErrConflict, b.ID)
	}
	if err := r.checkIDNumber(b); err != nil {
		return err
	}
	r.s.data.beneficiaries[b.ID] = b.Clone()
	return nil
}

func (r *beneficiaryRepo) GetByID(_ context.Context, id string) (*entity.Beneficiary, error) {
	r.l.RLock()
	defer r.l.RUnlock()
	return r.s.data.beneficiaries[id].Clone(), nil
}

func (r *beneficiaryRepo) GetByIDNumber(_ context.Context, idNumber string) (*entity.Beneficiary, error) {
	r.l.RLock()
	defer r.l.RUnlock()
	for _, b := range r.s.data.beneficiaries {
		if b.IDNumber != nil && *b.IDNumber == idNumber {
			return b.Clone(), nil
		}
	}
	return nil, nil
}

func (r *beneficiaryRepo) Update(_ context.Context, b *entity.Beneficiary) error {
	r.l.Lock()
	defer r.l.Unlock()
	if _, ok := r.s.data.beneficiaries[b.ID]; !ok {
		return fmt.Errorf("%w: beneficiario %s", domain.ErrNotFound, b.ID)
	}
	if err := r.checkIDNumber(b); err != nil {
		return err
	}
	r.s.data.beneficiaries[b.ID] = b.Clone()
	return nil
}

func (r *beneficiaryRepo) List(_ context.Context, f repository.BeneficiaryFilter, scope repository.Scope) ([]*entity.Beneficiary, int, error) {
	r.l.RLock()
	defer r.l.RUnlock()
	matched := r.match(f, scope)
	newestFirst(matched, func(b *entity.Beneficiary) (int64, string) { return b.CreatedAt.UnixNano(), b.ID })
	page := paginate(matched, f.Page)
	out := make([]*entity.Beneficiary, 0, len(page))
	for _, b := range page {
		out = append(out, b.Clone())
	}
	return out, len(matched), nil
}

func (r *beneficiaryRepo) Count(_ context.Context, f repository.BeneficiaryFilter, scope repository.Scope) (int, error) {
	r.l.RLock()
	defer r.l.RUnlock()
	return len(r.match(f, scope)), nil
}

func (r *beneficiaryRepo) match(f repository.BeneficiaryFilter, scope repository.Scope) []*entity.Beneficiary {
	var out []*entity.Beneficiary
	for _, b := range r.s.data.beneficiaries {
		if !inScope(scope, b.Ownership()) {
			continue
		}
		if f.Category != "" && b.Category != f.Category {
			continue
		}
		if f.Status != "" && b.Status != f.Status {
			continue
		}
		if f.Priority != "" && b.Priority != f.Priority {
			continue
		}
		idNumber := ""
		if b.IDNumber != nil {
			idNumber = *b.IDNumber
		}
		if !textfold.Contains(f.Search, b.FullName(), b.Phone, b.Email, idNumber) {
			continue
		}
		out = append(out, b)
	}
	return out
}
