package repository

import (
	"context"

	"github.com/jhoicas/Casos-api/internal/domain/entity"
)

// CaseRepository define el puerto de persistencia para Case.
type CaseRepository interface {
	Create(ctx context.Context, c *entity.Case) error
	GetByID(ctx context.Context, id string) (*entity.Case, error)
	Update(ctx context.Context, c *entity.Case) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f CaseFilter, scope Scope) ([]*entity.Case, int, error)
	Count(ctx context.Context, f CaseFilter, scope Scope) (int, error)
}
