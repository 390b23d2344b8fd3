package repository

import (
	"context"

	"github.com/jhoicas/Casos-api/internal/domain/entity"
)

// AuditLogRepository registro de solo anexado. No expone Update ni Delete.
type AuditLogRepository interface {
	Append(ctx context.Context, e *entity.AuditLogEntry) error
	List(ctx context.Context, f AuditLogFilter) ([]*entity.AuditLogEntry, int, error)
}
