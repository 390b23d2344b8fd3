package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Casos-api/internal/application/casework"
	"github.com/jhoicas/Casos-api/internal/application/dto"
)

// AuditHandler expone el registro de auditoría (solo lectura, ADMIN o superior).
type AuditHandler struct {
	orch *casework.Orchestrator
}

// NewAuditHandler construye el handler.
func NewAuditHandler(orch *casework.Orchestrator) *AuditHandler {
	return &AuditHandler{orch: orch}
}

// List godoc
// @Summary      Listar auditoría
// @Tags         audit
// @Security     Bearer
// @Produce      json
// @Param        action    query  string  false  "Acción (BENEFICIARY_CREATED, CASE_DELETED, ...)"
// @Param        userId    query  string  false  "Usuario"
// @Param        entityId  query  string  false  "Entidad"
// @Param        page      query  int     false  "Página"  default(1)
// @Param        limit     query  int     false  "Límite"  default(20)
// @Success      200       {object}  dto.AuditLogListResponse
// @Failure      403       {object}  dto.ErrorResponse
// @Router       /api/audit-logs [get]
func (h *AuditHandler) List(c *fiber.Ctx) error {
	var req dto.AuditLogListRequest
	if err := c.QueryParser(&req); err != nil {
		return badQuery(c)
	}
	out, err := h.orch.ListAuditLog(c.UserContext(), GetActor(c), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
