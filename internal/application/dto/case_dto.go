package dto

import "time"

// CreateCaseRequest entrada para abrir un caso sobre un beneficiario existente.
type CreateCaseRequest struct {
	BeneficiaryID string   `json:"beneficiaryId" validate:"required,max=64"`
	Title         string   `json:"title" validate:"required,min=3,max=200"`
	Description   string   `json:"description" validate:"omitempty,max=5000"`
	Type          string   `json:"type" validate:"required,oneof=MEDICAL FINANCIAL EDUCATIONAL HOUSING FOOD LEGAL PSYCHOLOGICAL OTHER"`
	Priority      string   `json:"priority" validate:"omitempty,oneof=LOW MEDIUM HIGH URGENT"`
	Status        string   `json:"status" validate:"omitempty,oneof=OPEN IN_PROGRESS RESOLVED CLOSED"`
	AssigneeIDs   []string `json:"assigneeIds" validate:"omitempty,max=20,dive,max=64"`
}

// Normalize recorta textos y normaliza enumeraciones antes de validar.
func (r *CreateCaseRequest) Normalize() {
	trim(&r.BeneficiaryID)
	trim(&r.Title)
	trim(&r.Description)
	upper(&r.Type)
	upper(&r.Priority)
	upper(&r.Status)
	r.AssigneeIDs = uniqueTrimmed(r.AssigneeIDs)
}

// UpdateCaseRequest actualización parcial. BeneficiaryID es inmutable: solo se acepta si
// coincide con el actual.
type UpdateCaseRequest struct {
	BeneficiaryID *string  `json:"beneficiaryId" validate:"omitempty,max=64"`
	Title         *string  `json:"title" validate:"omitempty,min=3,max=200"`
	Description   *string  `json:"description" validate:"omitempty,max=5000"`
	Type          *string  `json:"type" validate:"omitempty,oneof=MEDICAL FINANCIAL EDUCATIONAL HOUSING FOOD LEGAL PSYCHOLOGICAL OTHER"`
	Priority      *string  `json:"priority" validate:"omitempty,oneof=LOW MEDIUM HIGH URGENT"`
	Status        *string  `json:"status" validate:"omitempty,oneof=OPEN IN_PROGRESS RESOLVED CLOSED"`
	AssigneeIDs   []string `json:"assigneeIds" validate:"omitempty,max=20,dive,max=64"`
}

// Normalize recorta textos y normaliza enumeraciones antes de validar.
func (r *UpdateCaseRequest) Normalize() {
	trim(r.BeneficiaryID)
	trim(r.Title)
	trim(r.Description)
	upper(r.Type)
	upper(r.Priority)
	upper(r.Status)
	r.AssigneeIDs = uniqueTrimmed(r.AssigneeIDs)
}

// CaseResponse salida de un caso.
type CaseResponse struct {
	ID            string     `json:"id"`
	BeneficiaryID string     `json:"beneficiaryId"`
	Title         string     `json:"title"`
	Description   string     `json:"description,omitempty"`
	Type          string     `json:"type"`
	Priority      string     `json:"priority"`
	Status        string     `json:"status"`
	CreatedByID   string     `json:"createdById"`
	AssigneeIDs   []string   `json:"assigneeIds"`
	ResolvedAt    *time.Time `json:"resolvedAt"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// CaseListRequest filtros de GET /api/cases.
type CaseListRequest struct {
	Search        string `query:"search"`
	Status        string `query:"status"`
	Type          string `query:"type"`
	Priority      string `query:"priority"`
	BeneficiaryID string `query:"beneficiaryId"`
	PageRequest
}

// CaseListResponse lista paginada de casos.
type CaseListResponse struct {
	Items      []CaseResponse `json:"items"`
	Pagination Pagination     `json:"pagination"`
}

// CaseDeletedResponse confirmación de eliminación con el conteo de servicios arrastrados.
type CaseDeletedResponse struct {
	ID              string `json:"id"`
	DeletedServices int    `json:"deletedServices"`
}
