package memory

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/Casos-api/internal/domain"
	"github.com/jhoicas/Casos-api/internal/domain/entity"
)

type userRepo struct {
	s *Store
	l locker
}

func (r *userRepo) Create(_ context.Context, u *entity.User) error {
	r.l.Lock()
	defer r.l.Unlock()
	for _, other := range r.s.data.users {
		if strings.EqualFold(other.Email, u.Email) {
			return fmt.Errorf("%w: email %s", domain.ErrConflict, u.Email)
		}
	}
	cp := *u
	r.s.data.users[u.ID] = &cp
	return nil
}

func (r *userRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.l.RLock()
	defer r.l.RUnlock()
	u, ok := r.s.data.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *userRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.l.RLock()
	defer r.l.RUnlock()
	for _, u := range r.s.data.users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}
