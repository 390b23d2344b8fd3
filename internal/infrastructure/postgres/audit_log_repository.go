package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jhoicas/Casos-api/internal/domain/entity"
	"github.com/jhoicas/Casos-api/internal/domain/repository"
)

var _ repository.AuditLogRepository = (*AuditLogRepo)(nil)

// AuditLogRepo registro de auditoría sobre PostgreSQL. La tabla rechaza UPDATE y DELETE
// mediante trigger, así que este adaptador solo anexa y lee.
type AuditLogRepo struct {
	q Querier
}

// NewAuditLogRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAuditLogRepository(q Querier) *AuditLogRepo {
	return &AuditLogRepo{q: q}
}

// Append inserta la entrada con sus detalles serializados como JSONB.
func (r *AuditLogRepo) Append(ctx context.Context, e *entity.AuditLogEntry) error {
	details, err := json.Marshal(e.Details)
	if err != nil {
		return fmt.Errorf("marshal audit details: %w", err)
	}
	_, err = r.q.Exec(ctx,
		`INSERT INTO audit_logs (id, action, user_id, entity_id, details, timestamp) VALUES ($1, $2, $3, $4, $5, $6)`,
		e.ID, string(e.Action), e.UserID, e.Details.EntityID(), details, e.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("insert audit log: %w", err)
	}
	return nil
}

// List devuelve las entradas más recientes primero y el total filtrado.
func (r *AuditLogRepo) List(ctx context.Context, f repository.AuditLogFilter) ([]*entity.AuditLogEntry, int, error) {
	w := &where{}
	w.eq("action", f.Action)
	w.eq("user_id", f.UserID)
	w.eq("entity_id", f.EntityID)

	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM audit_logs`+w.String(), w.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count audit logs: %w", err)
	}

	query := `SELECT id, action, user_id, details, timestamp FROM audit_logs` + w.String() +
		` ORDER BY timestamp DESC, id DESC` + w.limit(f.Page)
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list audit logs: %w", err)
	}
	defer rows.Close()
	var list []*entity.AuditLogEntry
	for rows.Next() {
		var (
			e      entity.AuditLogEntry
			action string
			raw    []byte
			ts     time.Time
		)
		if err := rows.Scan(&e.ID, &action, &e.UserID, &raw, &ts); err != nil {
			return nil, 0, fmt.Errorf("scan audit log: %w", err)
		}
		e.Action = entity.AuditAction(action)
		e.Timestamp = ts
		if e.Details, err = entity.DecodeAuditDetails(e.Action, raw); err != nil {
			return nil, 0, err
		}
		list = append(list, &e)
	}
	return list, total, rows.Err()
}
