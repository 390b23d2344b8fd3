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

var _ repository.BeneficiaryRepository = (*BeneficiaryRepo)(nil)

const beneficiaryColumns = `id, first_name, last_name, date_of_birth, gender, nationality, id_number, phone,
	email, category, status, priority, notes, tags, created_by_id, assigned_to_id, created_at, updated_at`

// BeneficiaryRepo implementación de BeneficiaryRepository (usable con pool o tx).
type BeneficiaryRepo struct {
	q    Querier
	lock bool // dentro de una tx: GetByID bloquea la fila (FOR UPDATE)
}

// NewBeneficiaryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBeneficiaryRepository(q Querier) *BeneficiaryRepo {
	return &BeneficiaryRepo{q: q}
}

func beneficiarySearchText(b *entity.Beneficiary) string {
	idNumber := ""
	if b.IDNumber != nil {
		idNumber = *b.IDNumber
	}
	return textfold.Join(b.FirstName, b.LastName, b.Phone, b.Email, idNumber)
}

func nonNilTags(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}

// Create persiste un nuevo beneficiario. Un id_number repetido es domain.ErrConflict.
func (r *BeneficiaryRepo) Create(ctx context.Context, b *entity.Beneficiary) error {
	query := `
		INSERT INTO beneficiaries (id, first_name, last_name, date_of_birth, gender, nationality, id_number,
			phone, email, category, status, priority, notes, tags, search_text, created_by_id, assigned_to_id,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`
	_, err := r.q.Exec(ctx, query,
		b.ID, b.FirstName, b.LastName, b.DateOfBirth, b.Gender, b.Nationality, b.IDNumber,
		b.Phone, b.Email, b.Category, b.Status, b.Priority, b.Notes, nonNilTags(b.Tags), beneficiarySearchText(b),
		b.CreatedByID, b.AssignedToID, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: idNumber ya registrado", domain.ErrConflict)
		}
		return fmt.Errorf("insert beneficiary: %w", err)
	}
	return nil
}

// GetByID obtiene un beneficiario por ID; (nil, nil) si no existe.
func (r *BeneficiaryRepo) GetByID(ctx context.Context, id string) (*entity.Beneficiary, error) {
	query := `SELECT ` + beneficiaryColumns + ` FROM beneficiaries WHERE id = $1` + forUpdate(r.lock, "FOR UPDATE")
	return r.getOne(ctx, query, id)
}

// GetByIDNumber obtiene el beneficiario con ese número de identificación.
func (r *BeneficiaryRepo) GetByIDNumber(ctx context.Context, idNumber string) (*entity.Beneficiary, error) {
	query := `SELECT ` + beneficiaryColumns + ` FROM beneficiaries WHERE id_number = $1`
	return r.getOne(ctx, query, idNumber)
}

func (r *BeneficiaryRepo) getOne(ctx context.Context, query string, arg string) (*entity.Beneficiary, error) {
	b, err := scanBeneficiary(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get beneficiary: %w", err)
	}
	return b, nil
}

// Update actualiza todos los campos mutables.
func (r *BeneficiaryRepo) Update(ctx context.Context, b *entity.Beneficiary) error {
	query := `
		UPDATE beneficiaries SET first_name = $2, last_name = $3, date_of_birth = $4, gender = $5,
			nationality = $6, id_number = $7, phone = $8, email = $9, category = $10, status = $11,
			priority = $12, notes = $13, tags = $14, search_text = $15, assigned_to_id = $16, updated_at = $17
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		b.ID, b.FirstName, b.LastName, b.DateOfBirth, b.Gender,
		b.Nationality, b.IDNumber, b.Phone, b.Email, b.Category, b.Status,
		b.Priority, b.Notes, nonNilTags(b.Tags), beneficiarySearchText(b), b.AssignedToID, b.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: idNumber ya registrado", domain.ErrConflict)
		}
		return fmt.Errorf("update beneficiary: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: beneficiario %s", domain.ErrNotFound, b.ID)
	}
	return nil
}

func beneficiaryWhere(f repository.BeneficiaryFilter, scope repository.Scope) *where {
	w := &where{}
	w.scope(scope, func(ph string) string {
		return "(created_by_id = " + ph + " OR assigned_to_id = " + ph + ")"
	})
	w.eq("category", f.Category)
	w.eq("status", f.Status)
	w.eq("priority", f.Priority)
	w.search("search_text", f.Search)
	return w
}

// List devuelve la página pedida y el total filtrado (alcance incluido).
func (r *BeneficiaryRepo) List(ctx context.Context, f repository.BeneficiaryFilter, scope repository.Scope) ([]*entity.Beneficiary, int, error) {
	total, err := r.Count(ctx, f, scope)
	if err != nil {
		return nil, 0, err
	}
	w := beneficiaryWhere(f, scope)
	query := `SELECT ` + beneficiaryColumns + ` FROM beneficiaries` + w.String() +
		` ORDER BY created_at DESC, id DESC` + w.limit(f.Page)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list beneficiaries: %w", err)
	}
	defer rows.Close()
	var list []*entity.Beneficiary
	for rows.Next() {
		b, err := scanBeneficiary(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan beneficiary: %w", err)
		}
		list = append(list, b)
	}
	return list, total, rows.Err()
}

// Count cuenta los beneficiarios que cumplen filtro y alcance.
func (r *BeneficiaryRepo) Count(ctx context.Context, f repository.BeneficiaryFilter, scope repository.Scope) (int, error) {
	w := beneficiaryWhere(f, scope)
	var n int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM beneficiaries`+w.String(), w.args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count beneficiaries: %w", err)
	}
	return n, nil
}

func scanBeneficiary(row pgx.Row) (*entity.Beneficiary, error) {
	var b entity.Beneficiary
	err := row.Scan(
		&b.ID, &b.FirstName, &b.LastName, &b.DateOfBirth, &b.Gender, &b.Nationality, &b.IDNumber, &b.Phone,
		&b.Email, &b.Category, &b.Status, &b.Priority, &b.Notes, &b.Tags, &b.CreatedByID, &b.AssignedToID,
		&b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}
