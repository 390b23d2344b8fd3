package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Casos-api/internal/domain"
	"github.com/jhoicas/Casos-api/internal/domain/entity"
	"github.com/jhoicas/Casos-api/internal/domain/repository"
	"github.com/jhoicas/Casos-api/pkg/textfold"
)

var _ repository.ServiceRepository = (*ServiceRepo)(nil)

const serviceColumns = `id, type, date, description, quantity, cost, beneficiary_id, case_id, provided_by_id,
	created_by_id, location, notes, created_at, updated_at`

// ServiceRepo implementación de ServiceRepository (usable con pool o tx).
type ServiceRepo struct {
	q    Querier
	lock bool
}

// NewServiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewServiceRepository(q Querier) *ServiceRepo {
	return &ServiceRepo{q: q}
}

func serviceSearchText(s *entity.Service) string {
	return textfold.Join(s.Description, s.Location, s.Notes)
}

// Create persiste un servicio. cost se guarda como NUMERIC vía pgx-shopspring-decimal.
func (r *ServiceRepo) Create(ctx context.Context, s *entity.Service) error {
	query := `
		INSERT INTO services (id, type, date, description, quantity, cost, beneficiary_id, case_id,
			provided_by_id, created_by_id, location, notes, search_text, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.Type, s.Date, s.Description, s.Quantity, s.Cost, s.BeneficiaryID, s.CaseID,
		s.ProvidedByID, s.CreatedByID, s.Location, s.Notes, serviceSearchText(s), s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert service: %w", err)
	}
	return nil
}

// GetByID obtiene un servicio por ID; (nil, nil) si no existe.
func (r *ServiceRepo) GetByID(ctx context.Context, id string) (*entity.Service, error) {
	query := `SELECT ` + serviceColumns + ` FROM services WHERE id = $1` + forUpdate(r.lock, "FOR UPDATE")
	s, err := scanService(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get service: %w", err)
	}
	return s, nil
}

// Update actualiza todos los campos mutables.
func (r *ServiceRepo) Update(ctx context.Context, s *entity.Service) error {
	query := `
		UPDATE services SET type = $2, date = $3, description = $4, quantity = $5, cost = $6,
			beneficiary_id = $7, case_id = $8, provided_by_id = $9, location = $10, notes = $11,
			search_text = $12, updated_at = $13
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		s.ID, s.Type, s.Date, s.Description, s.Quantity, s.Cost,
		s.BeneficiaryID, s.CaseID, s.ProvidedByID, s.Location, s.Notes,
		serviceSearchText(s), s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update service: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: servicio %s", domain.ErrNotFound, s.ID)
	}
	return nil
}

// Delete elimina un servicio por ID.
func (r *ServiceRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM services WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete service: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: servicio %s", domain.ErrNotFound, id)
	}
	return nil
}

// DeleteByCase elimina explícitamente los servicios del caso para poder informar cuántos eran.
func (r *ServiceRepo) DeleteByCase(ctx context.Context, caseID string) (int, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM services WHERE case_id = $1`, caseID)
	if err != nil {
		return 0, fmt.Errorf("delete services by case: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

func serviceWhere(f repository.ServiceFilter, scope repository.Scope) *where {
	w := &where{}
	w.scope(scope, func(ph string) string {
		return "(created_by_id = " + ph + " OR provided_by_id = " + ph + ")"
	})
	w.eq("type", f.Type)
	w.eq("beneficiary_id", f.BeneficiaryID)
	w.eq("case_id", f.CaseID)
	if f.DateFrom != nil {
		w.add("date >= " + w.arg(*f.DateFrom))
	}
	if f.DateTo != nil {
		// DateTo es inclusivo: todo ese día.
		w.add("date < " + w.arg(f.DateTo.AddDate(0, 0, 1)))
	}
	w.search("search_text", f.Search)
	return w
}

// List devuelve la página pedida (más recientes primero) y el total filtrado.
func (r *ServiceRepo) List(ctx context.Context, f repository.ServiceFilter, scope repository.Scope) ([]*entity.Service, int, error) {
	total, err := r.Count(ctx, f, scope)
	if err != nil {
		return nil, 0, err
	}
	w := serviceWhere(f, scope)
	query := `SELECT ` + serviceColumns + ` FROM services` + w.String() + ` ORDER BY date DESC, id DESC` + w.limit(f.Page)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list services: %w", err)
	}
	defer rows.Close()
	var list []*entity.Service
	for rows.Next() {
		s, err := scanService(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan service: %w", err)
		}
		list = append(list, s)
	}
	return list, total, rows.Err()
}

// Count cuenta los servicios que cumplen filtro y alcance.
func (r *ServiceRepo) Count(ctx context.Context, f repository.ServiceFilter, scope repository.Scope) (int, error) {
	w := serviceWhere(f, scope)
	var n int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM services`+w.String(), w.args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count services: %w", err)
	}
	return n, nil
}

func scanService(row pgx.Row) (*entity.Service, error) {
	var s entity.Service
	err := row.Scan(
		&s.ID, &s.Type, &s.Date, &s.Description, &s.Quantity, &s.Cost, &s.BeneficiaryID, &s.CaseID,
		&s.ProvidedByID, &s.CreatedByID, &s.Location, &s.Notes, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
