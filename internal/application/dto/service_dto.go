package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateServiceRequest entrada para registrar un servicio entregado.
// Cost se valida en el motor (debe ser positivo); ProvidedByID por defecto es el actor.
type CreateServiceRequest struct {
	Type          string           `json:"type" validate:"required,oneof=FOOD_BASKET CASH_AID MEDICAL_AID CLOTHING EDUCATION_SUPPORT HOUSING_SUPPORT COUNSELING HOME_VISIT OTHER"`
	Date          time.Time        `json:"date" validate:"required"`
	Description   string           `json:"description" validate:"omitempty,max=2000"`
	Quantity      *int             `json:"quantity" validate:"omitempty,gt=0"`
	Cost          *decimal.Decimal `json:"cost"`
	BeneficiaryID string           `json:"beneficiaryId" validate:"required,max=64"`
	CaseID        *string          `json:"caseId" validate:"omitempty,max=64"`
	ProvidedByID  string           `json:"providedById" validate:"omitempty,max=64"`
	Location      string           `json:"location" validate:"omitempty,max=200"`
	Notes         string           `json:"notes" validate:"omitempty,max=2000"`
}

// Normalize recorta textos y normaliza enumeraciones antes de validar.
func (r *CreateServiceRequest) Normalize() {
	upper(&r.Type)
	trim(&r.Description)
	trim(&r.BeneficiaryID)
	trim(&r.ProvidedByID)
	trim(&r.Location)
	trim(&r.Notes)
	r.CaseID = nilIfEmpty(r.CaseID)
}

// UpdateServiceRequest actualización parcial. CaseID apuntando a "" desvincula el caso.
type UpdateServiceRequest struct {
	Type          *string          `json:"type" validate:"omitempty,oneof=FOOD_BASKET CASH_AID MEDICAL_AID CLOTHING EDUCATION_SUPPORT HOUSING_SUPPORT COUNSELING HOME_VISIT OTHER"`
	Date          *time.Time       `json:"date"`
	Description   *string          `json:"description" validate:"omitempty,max=2000"`
	Quantity      *int             `json:"quantity" validate:"omitempty,gt=0"`
	Cost          *decimal.Decimal `json:"cost"`
	BeneficiaryID *string          `json:"beneficiaryId" validate:"omitempty,max=64"`
	CaseID        *string          `json:"caseId" validate:"omitempty,max=64"`
	ProvidedByID  *string          `json:"providedById" validate:"omitempty,max=64"`
	Location      *string          `json:"location" validate:"omitempty,max=200"`
	Notes         *string          `json:"notes" validate:"omitempty,max=2000"`
}

// Normalize recorta textos y normaliza enumeraciones antes de validar.
func (r *UpdateServiceRequest) Normalize() {
	upper(r.Type)
	trim(r.Description)
	trim(r.BeneficiaryID)
	trim(r.CaseID)
	trim(r.ProvidedByID)
	trim(r.Location)
	trim(r.Notes)
}

// ServiceResponse salida de un servicio.
type ServiceResponse struct {
	ID            string           `json:"id"`
	Type          string           `json:"type"`
	Date          time.Time        `json:"date"`
	Description   string           `json:"description,omitempty"`
	Quantity      *int             `json:"quantity,omitempty"`
	Cost          *decimal.Decimal `json:"cost,omitempty"`
	BeneficiaryID string           `json:"beneficiaryId"`
	CaseID        *string          `json:"caseId"`
	ProvidedByID  string           `json:"providedById"`
	CreatedByID   string           `json:"createdById"`
	Location      string           `json:"location,omitempty"`
	Notes         string           `json:"notes,omitempty"`
	CreatedAt     time.Time        `json:"createdAt"`
	UpdatedAt     time.Time        `json:"updatedAt"`
}

// ServiceListRequest filtros de GET /api/services. Fechas en formato YYYY-MM-DD, inclusivas.
type ServiceListRequest struct {
	Search        string `query:"search"`
	Type          string `query:"type"`
	BeneficiaryID string `query:"beneficiaryId"`
	CaseID        string `query:"caseId"`
	DateFrom      string `query:"dateFrom"`
	DateTo        string `query:"dateTo"`
	PageRequest
}

// ServiceListResponse lista paginada de servicios.
type ServiceListResponse struct {
	Items      []ServiceResponse `json:"items"`
	Pagination Pagination        `json:"pagination"`
}
