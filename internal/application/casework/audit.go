package casework

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/Casos-api/internal/application/dto"
	"github.com/jhoicas/Casos-api/internal/domain"
	"github.com/jhoicas/Casos-api/internal/domain/entity"
	"github.com/jhoicas/Casos-api/internal/domain/policy"
	"github.com/jhoicas/Casos-api/internal/domain/repository"
)

// ListAuditLog consulta el registro de auditoría (solo ADMIN o superior), del más reciente
// al más antiguo.
func (o *Orchestrator) ListAuditLog(ctx context.Context, actor *entity.Actor, req dto.AuditLogListRequest) (*dto.AuditLogListResponse, error) {
	start := time.Now()
	f := repository.AuditLogFilter{
		Action:   strings.ToUpper(strings.TrimSpace(req.Action)),
		UserID:   strings.TrimSpace(req.UserID),
		EntityID: strings.TrimSpace(req.EntityID),
		Page:     o.page(req.PageRequest),
	}
	var (
		items []*entity.AuditLogEntry
		total int
	)
	_, err := policy.ListScope(actor, policy.ListAuditLog)
	if err == nil && f.Action != "" && !entity.AuditAction(f.Action).Valid() {
		err = domain.NewValidationError(domain.FieldError{Field: "action", Message: "acción de auditoría desconocida"})
	}
	if err == nil {
		items, total, err = o.repos.AuditLog.List(ctx, f)
	}
	if err = o.read("ListAuditLog", actor, start, err); err != nil {
		return nil, err
	}
	out := &dto.AuditLogListResponse{
		Items:      make([]dto.AuditLogEntryResponse, 0, len(items)),
		Pagination: dto.NewPagination(f.Page.Page, f.Page.Limit, total),
	}
	for _, e := range items {
		out.Items = append(out.Items, toAuditLogEntryResponse(e))
	}
	return out, nil
}
