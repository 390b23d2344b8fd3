package dto

import "time"

// AuditLogListRequest filtros de GET /api/audit-logs.
type AuditLogListRequest struct {
	Action   string `query:"action"`
	UserID   string `query:"userId"`
	EntityID string `query:"entityId"`
	PageRequest
}

// AuditLogEntryResponse salida de una entrada de auditoría. Details es la variante tipada
// correspondiente a Action, serializada tal cual.
type AuditLogEntryResponse struct {
	ID        string    `json:"id"`
	Action    string    `json:"action"`
	UserID    string    `json:"userId"`
	EntityID  string    `json:"entityId"`
	Details   any       `json:"details"`
	Timestamp time.Time `json:"timestamp"`
}

// AuditLogListResponse lista paginada de auditoría.
type AuditLogListResponse struct {
	Items      []AuditLogEntryResponse `json:"items"`
	Pagination Pagination              `json:"pagination"`
}
