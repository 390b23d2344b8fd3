package repository

import (
	"context"

	"github.com/jhoicas/Casos-api/internal/domain/entity"
)

// ServiceRepository define el puerto de persistencia para Service.
type ServiceRepository interface {
	Create(ctx context.Context, s *entity.Service) error
	GetByID(ctx context.Context, id string) (*entity.Service, error)
	Update(ctx context.Context, s *entity.Service) error
	Delete(ctx context.Context, id string) error
	// DeleteByCase elimina los servicios del caso y devuelve cuántos eran.
	DeleteByCase(ctx context.Context, caseID string) (int, error)
	List(ctx context.Context, f ServiceFilter, scope Scope) ([]*entity.Service, int, error)
	Count(ctx context.Context, f ServiceFilter, scope Scope) (int, error)
}
