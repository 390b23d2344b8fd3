package dto

import "time"

// CreateBeneficiaryRequest entrada para registrar un beneficiario.
type CreateBeneficiaryRequest struct {
	FirstName    string     `json:"firstName" validate:"required,min=2,max=100"`
	LastName     string     `json:"lastName" validate:"required,min=2,max=100"`
	DateOfBirth  *time.Time `json:"dateOfBirth" validate:"omitempty,notfuture"`
	Gender       string     `json:"gender" validate:"omitempty,oneof=MALE FEMALE OTHER"`
	Nationality  string     `json:"nationality" validate:"omitempty,max=100"`
	IDNumber     *string    `json:"idNumber" validate:"omitempty,min=1,max=50"`
	Phone        string     `json:"phone" validate:"omitempty,phone"`
	Email        string     `json:"email" validate:"omitempty,email,max=255"`
	Category     string     `json:"category" validate:"required,oneof=FAMILY ELDERLY DISABLED ORPHAN WIDOW REFUGEE STUDENT OTHER"`
	Status       string     `json:"status" validate:"omitempty,oneof=ACTIVE INACTIVE DECEASED"`
	Priority     string     `json:"priority" validate:"omitempty,oneof=LOW MEDIUM HIGH URGENT"`
	Notes        string     `json:"notes" validate:"omitempty,max=2000"`
	Tags         []string   `json:"tags" validate:"omitempty,max=20,dive,max=50"`
	AssignedToID string     `json:"assignedToId" validate:"omitempty,max=64"`
}

// Normalize recorta textos y normaliza enumeraciones antes de validar.
func (r *CreateBeneficiaryRequest) Normalize() {
	trim(&r.FirstName)
	trim(&r.LastName)
	trim(&r.Nationality)
	trim(&r.Notes)
	trim(&r.AssignedToID)
	upper(&r.Gender)
	upper(&r.Category)
	upper(&r.Status)
	upper(&r.Priority)
	lower(&r.Email)
	compactPhone(&r.Phone)
	r.IDNumber = nilIfEmpty(r.IDNumber)
	r.Tags = uniqueTrimmed(r.Tags)
}

// UpdateBeneficiaryRequest actualización parcial: nil = sin cambios.
// IDNumber, Phone o Email apuntando a "" eliminan el valor; el formato de Phone y Email
// se valida en el motor solo cuando no están vacíos.
type UpdateBeneficiaryRequest struct {
	FirstName    *string    `json:"firstName" validate:"omitempty,min=2,max=100"`
	LastName     *string    `json:"lastName" validate:"omitempty,min=2,max=100"`
	DateOfBirth  *time.Time `json:"dateOfBirth" validate:"omitempty,notfuture"`
	Gender       *string    `json:"gender" validate:"omitempty,oneof=MALE FEMALE OTHER"`
	Nationality  *string    `json:"nationality" validate:"omitempty,max=100"`
	IDNumber     *string    `json:"idNumber" validate:"omitempty,max=50"`
	Phone        *string    `json:"phone"`
	Email        *string    `json:"email" validate:"omitempty,max=255"`
	Category     *string    `json:"category" validate:"omitempty,oneof=FAMILY ELDERLY DISABLED ORPHAN WIDOW REFUGEE STUDENT OTHER"`
	Status       *string    `json:"status" validate:"omitempty,oneof=ACTIVE INACTIVE ARCHIVED DECEASED"`
	Priority     *string    `json:"priority" validate:"omitempty,oneof=LOW MEDIUM HIGH URGENT"`
	Notes        *string    `json:"notes" validate:"omitempty,max=2000"`
	Tags         []string   `json:"tags" validate:"omitempty,max=20,dive,max=50"`
	AssignedToID *string    `json:"assignedToId" validate:"omitempty,max=64"`
}

// Normalize recorta textos y normaliza enumeraciones antes de validar.
func (r *UpdateBeneficiaryRequest) Normalize() {
	trim(r.FirstName)
	trim(r.LastName)
	trim(r.Nationality)
	trim(r.Notes)
	trim(r.IDNumber)
	trim(r.AssignedToID)
	upper(r.Gender)
	upper(r.Category)
	upper(r.Status)
	upper(r.Priority)
	lower(r.Email)
	compactPhone(r.Phone)
	r.Tags = uniqueTrimmed(r.Tags)
}

// BeneficiaryResponse salida de un beneficiario.
type BeneficiaryResponse struct {
	ID           string     `json:"id"`
	FirstName    string     `json:"firstName"`
	LastName     string     `json:"lastName"`
	DateOfBirth  *time.Time `json:"dateOfBirth,omitempty"`
	Gender       string     `json:"gender,omitempty"`
	Nationality  string     `json:"nationality,omitempty"`
	IDNumber     *string    `json:"idNumber"`
	Phone        string     `json:"phone,omitempty"`
	Email        string     `json:"email,omitempty"`
	Category     string     `json:"category"`
	Status       string     `json:"status"`
	Priority     string     `json:"priority"`
	Notes        string     `json:"notes,omitempty"`
	Tags         []string   `json:"tags"`
	CreatedByID  string     `json:"createdById"`
	AssignedToID string     `json:"assignedToId"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// BeneficiaryListRequest filtros de GET /api/beneficiaries.
type BeneficiaryListRequest struct {
	Search   string `query:"search"`
	Category string `query:"category"`
	Status   string `query:"status"`
	Priority string `query:"priority"`
	PageRequest
}

// BeneficiaryListResponse lista paginada de beneficiarios.
type BeneficiaryListResponse struct {
	Items      []BeneficiaryResponse `json:"items"`
	Pagination Pagination            `json:"pagination"`
}
