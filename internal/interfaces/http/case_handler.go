package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Casos-api/internal/application/casework"
	"github.com/jhoicas/Casos-api/internal/application/dto"
)

// CaseHandler maneja las peticiones HTTP para Case (protegido).
type CaseHandler struct {
	orch *casework.Orchestrator
}

// NewCaseHandler construye el handler.
func NewCaseHandler(orch *casework.Orchestrator) *CaseHandler {
	return &CaseHandler{orch: orch}
}

// Create godoc
// @Summary      Abrir caso
// @Tags         cases
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCaseRequest  true  "Datos del caso"
// @Success      201   {object}  dto.CaseResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/cases [post]
func (h *CaseHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCaseRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.orch.CreateCase(c.UserContext(), GetActor(c), &in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener caso por ID
// @Tags         cases
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del caso"
// @Success      200  {object}  dto.CaseResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/cases/{id} [get]
func (h *CaseHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.orch.GetCase(c.UserContext(), GetActor(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar casos
// @Tags         cases
// @Security     Bearer
// @Produce      json
// @Param        search         query  string  false  "Título o descripción"
// @Param        status         query  string  false  "Estado"
// @Param        type           query  string  false  "Tipo"
// @Param        priority       query  string  false  "Prioridad"
// @Param        beneficiaryId  query  string  false  "Beneficiario"
// @Param        page           query  int     false  "Página"  default(1)
// @Param        limit          query  int     false  "Límite"  default(20)
// @Success      200            {object}  dto.CaseListResponse
// @Router       /api/cases [get]
func (h *CaseHandler) List(c *fiber.Ctx) error {
	var req dto.CaseListRequest
	if err := c.QueryParser(&req); err != nil {
		return badQuery(c)
	}
	out, err := h.orch.ListCases(c.UserContext(), GetActor(c), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar caso
// @Description  Pasar a RESOLVED sella resolvedAt solo la primera vez.
// @Tags         cases
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del caso"
// @Param        body  body  dto.UpdateCaseRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.CaseResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/cases/{id} [put]
func (h *CaseHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateCaseRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.orch.UpdateCase(c.UserContext(), GetActor(c), c.Params("id"), &in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar caso
// @Description  Elimina el caso y sus servicios. Requiere ADMIN.
// @Tags         cases
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del caso"
// @Success      200  {object}  dto.CaseDeletedResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/cases/{id} [delete]
func (h *CaseHandler) Delete(c *fiber.Ctx) error {
	out, err := h.orch.DeleteCase(c.UserContext(), GetActor(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
