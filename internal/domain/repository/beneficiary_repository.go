package repository

import (
	"context"

	"github.com/jhoicas/Casos-api/internal/domain/entity"
)

// BeneficiaryRepository define el puerto de persistencia para Beneficiary (DIP).
// GetByID devuelve (nil, nil) si no existe. Create/Update devuelven domain.ErrConflict si
// el número de identificación ya pertenece a otro beneficiario.
type BeneficiaryRepository interface {
	Create(ctx context.Context, b *entity.Beneficiary) error
	GetByID(ctx context.Context, id string) (*entity.Beneficiary, error)
	GetByIDNumber(ctx context.Context, idNumber string) (*entity.Beneficiary, error)
	Update(ctx context.Context, b *entity.Beneficiary) error
	List(ctx context.Context, f BeneficiaryFilter, scope Scope) ([]*entity.Beneficiary, int, error)
	Count(ctx context.Context, f BeneficiaryFilter, scope Scope) (int, error)
}
