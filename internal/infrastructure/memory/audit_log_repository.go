package memory

import (
	"context"

	"github.com/jhoicas/Casos-api/internal/domain/entity"
	"github.com/jhoicas/Casos-api/internal/domain/repository"
)

type auditLogRepo struct {
	s *Store
	l locker
}

func (r *auditLogRepo) Append(_ context.Context, e *entity.AuditLogEntry) error {
	r.l.Lock()
	defer r.l.Unlock()
	cp := *e
	r.s.data.audit = append(r.s.data.audit, &cp)
	return nil
}

// List del más reciente al más antiguo.
func (r *auditLogRepo) List(_ context.Context, f repository.AuditLogFilter) ([]*entity.AuditLogEntry, int, error) {
	r.l.RLock()
	defer r.l.RUnlock()
	var matched []*entity.AuditLogEntry
	for i := len(r.s.data.audit) - 1; i >= 0; i-- {
		e := r.s.data.audit[i]
		switch {
		case f.Action != "" && string(e.Action) != f.Action,
			f.UserID != "" && e.UserID != f.UserID,
			f.EntityID != "" && (e.Details == nil || e.Details.EntityID() != f.EntityID):
			continue
		}
		matched = append(matched, e)
	}
	page := paginate(matched, f.Page)
	out := make([]*entity.AuditLogEntry, 0, len(page))
	for _, e := range page {
		cp := *e
		out = append(out, &cp)
	}
	return out, len(matched), nil
}
