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

var _ repository.CaseRepository = (*CaseRepo)(nil)

// Los asignados viven en case_assignees; se leen como arreglo ordenado por posición.
const caseColumns = `c.id, c.beneficiary_id, c.title, c.description, c.type, c.priority, c.status, c.created_by_id,
	ARRAY(SELECT ca.user_id FROM case_assignees ca WHERE ca.case_id = c.id ORDER BY ca.position) AS assignee_ids,
	c.resolved_at, c.created_at, c.updated_at`

// CaseRepo implementación de CaseRepository (usable con pool o tx).
type CaseRepo struct {
	q    Querier
	lock bool
}

// NewCaseRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCaseRepository(q Querier) *CaseRepo {
	return &CaseRepo{q: q}
}

// Create persiste el caso y sus asignados. Debe ejecutarse dentro de una tx.
func (r *CaseRepo) Create(ctx context.Context, c *entity.Case) error {
	query := `
		INSERT INTO cases (id, beneficiary_id, title, description, type, priority, status, created_by_id,
			resolved_at, search_text, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.BeneficiaryID, c.Title, c.Description, c.Type, c.Priority, c.Status, c.CreatedByID,
		c.ResolvedAt, textfold.Join(c.Title, c.Description), c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("insert case: referencia inexistente: %w", err)
		}
		return fmt.Errorf("insert case: %w", err)
	}
	return r.replaceAssignees(ctx, c.ID, c.AssigneeIDs)
}

func (r *CaseRepo) replaceAssignees(ctx context.Context, caseID string, userIDs []string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM case_assignees WHERE case_id = $1`, caseID); err != nil {
		return fmt.Errorf("delete case assignees: %w", err)
	}
	for i, uid := range userIDs {
		if _, err := r.q.Exec(ctx,
			`INSERT INTO case_assignees (case_id, user_id, position) VALUES ($1, $2, $3)`, caseID, uid, i,
		); err != nil {
			return fmt.Errorf("insert case assignee: %w", err)
		}
	}
	return nil
}

// GetByID obtiene un caso por ID; (nil, nil) si no existe.
func (r *CaseRepo) GetByID(ctx context.Context, id string) (*entity.Case, error) {
	query := `SELECT ` + caseColumns + ` FROM cases c WHERE c.id = $1` + forUpdate(r.lock, "FOR UPDATE OF c")
	c, err := scanCase(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get case: %w", err)
	}
	return c, nil
}

// Update actualiza el caso y reemplaza sus asignados. beneficiary_id y created_by_id no cambian.
func (r *CaseRepo) Update(ctx context.Context, c *entity.Case) error {
	query := `
		UPDATE cases SET title = $2, description = $3, type = $4, priority = $5, status = $6,
			resolved_at = $7, search_text = $8, updated_at = $9
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		c.ID, c.Title, c.Description, c.Type, c.Priority, c.Status,
		c.ResolvedAt, textfold.Join(c.Title, c.Description), c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update case: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: caso %s", domain.ErrNotFound, c.ID)
	}
	return r.replaceAssignees(ctx, c.ID, c.AssigneeIDs)
}

// Delete elimina el caso; la FK con ON DELETE CASCADE arrastra asignados y servicios.
func (r *CaseRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM cases WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete case: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: caso %s", domain.ErrNotFound, id)
	}
	return nil
}

func caseWhere(f repository.CaseFilter, scope repository.Scope) *where {
	w := &where{}
	w.scope(scope, func(ph string) string {
		return "(c.created_by_id = " + ph +
			" OR EXISTS (SELECT 1 FROM case_assignees sa WHERE sa.case_id = c.id AND sa.user_id = " + ph + "))"
	})
	w.eq("c.status", f.Status)
	w.eq("c.type", f.Type)
	w.eq("c.priority", f.Priority)
	w.eq("c.beneficiary_id", f.BeneficiaryID)
	w.search("c.search_text", f.Search)
	return w
}

// List devuelve la página pedida y el total filtrado (alcance incluido).
func (r *CaseRepo) List(ctx context.Context, f repository.CaseFilter, scope repository.Scope) ([]*entity.Case, int, error) {
	total, err := r.Count(ctx, f, scope)
	if err != nil {
		return nil, 0, err
	}
	w := caseWhere(f, scope)
	query := `SELECT ` + caseColumns + ` FROM cases c` + w.String() + ` ORDER BY c.created_at DESC, c.id DESC` + w.limit(f.Page)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list cases: %w", err)
	}
	defer rows.Close()
	var list []*entity.Case
	for rows.Next() {
		c, err := scanCase(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan case: %w", err)
		}
		list = append(list, c)
	}
	return list, total, rows.Err()
}

// Count cuenta los casos que cumplen filtro y alcance.
func (r *CaseRepo) Count(ctx context.Context, f repository.CaseFilter, scope repository.Scope) (int, error) {
	w := caseWhere(f, scope)
	var n int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM cases c`+w.String(), w.args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count cases: %w", err)
	}
	return n, nil
}

func scanCase(row pgx.Row) (*entity.Case, error) {
	var c entity.Case
	err := row.Scan(
		&c.ID, &c.BeneficiaryID, &c.Title, &c.Description, &c.Type, &c.Priority, &c.Status, &c.CreatedByID,
		&c.AssigneeIDs, &c.ResolvedAt, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
