package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Casos-api/internal/application/casework"
	"github.com/jhoicas/Casos-api/internal/application/dto"
	"github.com/jhoicas/Casos-api/internal/application/report"
)

// BeneficiaryHandler maneja las peticiones HTTP para Beneficiary (protegido).
type BeneficiaryHandler struct {
	orch   *casework.Orchestrator
	report *report.UseCase
}

// NewBeneficiaryHandler construye el handler.
func NewBeneficiaryHandler(orch *casework.Orchestrator, report *report.UseCase) *BeneficiaryHandler {
	return &BeneficiaryHandler{orch: orch, report: report}
}

// Create godoc
// @Summary      Registrar beneficiario
// @Tags         beneficiaries
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateBeneficiaryRequest  true  "Datos del beneficiario"
// @Success      201   {object}  dto.BeneficiaryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/beneficiaries [post]
func (h *BeneficiaryHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateBeneficiaryRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.orch.CreateBeneficiary(c.UserContext(), GetActor(c), &in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener beneficiario por ID
// @Tags         beneficiaries
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del beneficiario"
// @Success      200  {object}  dto.BeneficiaryResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/beneficiaries/{id} [get]
func (h *BeneficiaryHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.orch.GetBeneficiary(c.UserContext(), GetActor(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar beneficiarios
// @Description  Solo devuelve los beneficiarios visibles para el actor; el total ya refleja ese alcance.
// @Tags         beneficiaries
// @Security     Bearer
// @Produce      json
// @Param        search    query  string  false  "Nombre, teléfono, email o identificación"
// @Param        category  query  string  false  "Categoría"
// @Param        status    query  string  false  "Estado"
// @Param        priority  query  string  false  "Prioridad"
// @Param        page      query  int     false  "Página"  default(1)
// @Param        limit     query  int     false  "Límite"  default(20)
// @Success      200       {object}  dto.BeneficiaryListResponse
// @Router       /api/beneficiaries [get]
func (h *BeneficiaryHandler) List(c *fiber.Ctx) error {
	var req dto.BeneficiaryListRequest
	if err := c.QueryParser(&req); err != nil {
		return badQuery(c)
	}
	out, err := h.orch.ListBeneficiaries(c.UserContext(), GetActor(c), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar beneficiario
// @Description  Actualización parcial: solo se validan y aplican los campos presentes.
// @Tags         beneficiaries
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del beneficiario"
// @Param        body  body  dto.UpdateBeneficiaryRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.BeneficiaryResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/beneficiaries/{id} [put]
func (h *BeneficiaryHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateBeneficiaryRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.orch.UpdateBeneficiary(c.UserContext(), GetActor(c), c.Params("id"), &in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Archive godoc
// @Summary      Archivar beneficiario
// @Description  Los beneficiarios nunca se eliminan: DELETE y POST /archive archivan. Requiere ADMIN.
// @Tags         beneficiaries
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del beneficiario"
// @Success      200  {object}  dto.BeneficiaryResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/beneficiaries/{id}/archive [post]
// @Router       /api/beneficiaries/{id} [delete]
func (h *BeneficiaryHandler) Archive(c *fiber.Ctx) error {
	out, err := h.orch.ArchiveBeneficiary(c.UserContext(), GetActor(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ReportPDF godoc
// @Summary      Expediente PDF del beneficiario
// @Tags         beneficiaries
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID del beneficiario"
// @Success      200  {file}    binary
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/beneficiaries/{id}/report.pdf [get]
func (h *BeneficiaryHandler) ReportPDF(c *fiber.Ctx) error {
	doc, filename, err := h.report.BeneficiaryReportPDF(c.UserContext(), GetActor(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="`+filename+`"`)
	return c.Send(doc)
}
