package entity

import "time"

// Estados de Case.
const (
	CaseStatusOpen       = "OPEN"
	CaseStatusInProgress = "IN_PROGRESS"
	CaseStatusResolved   = "RESOLVED"
	CaseStatusClosed     = "CLOSED"
)

// Tipos de Case.
const (
	CaseTypeMedical       = "MEDICAL"
	CaseTypeFinancial     = "FINANCIAL"
	CaseTypeEducational   = "EDUCATIONAL"
	CaseTypeHousing       = "HOUSING"
	CaseTypeFood          = "FOOD"
	CaseTypeLegal         = "LEGAL"
	CaseTypePsychological = "PSYCHOLOGICAL"
	CaseTypeOther         = "OTHER"
)

// Case unidad de trabajo ligada a exactamente un Beneficiary (FK obligatoria e inmutable).
// Se puede eliminar físicamente; la eliminación arrastra sus Services.
type Case struct {
	ID            string
	BeneficiaryID string
	Title         string
	Description   string
	Type          string
	Priority      string
	Status        string
	CreatedByID   string
	AssigneeIDs   []string
	ResolvedAt    *time.Time // se fija una sola vez, la primera vez que Status pasa a RESOLVED
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Ownership creador y miembros asignados.
func (c *Case) Ownership() Ownership {
	return Ownership{CreatedByID: c.CreatedByID, AssigneeIDs: c.AssigneeIDs}
}

// SetStatus cambia el estado y sella ResolvedAt si es la primera vez que el caso se resuelve.
func (c *Case) SetStatus(status string, now time.Time) {
	if status == CaseStatusResolved && c.Status != CaseStatusResolved && c.ResolvedAt == nil {
		t := now
		c.ResolvedAt = &t
	}
	c.Status = status
}

// Clone copia profunda.
func (c *Case) Clone() *Case {
	if c == nil {
		return nil
	}
	cp := *c
	cp.AssigneeIDs = append([]string(nil), c.AssigneeIDs...)
	if c.ResolvedAt != nil {
		t := *c.ResolvedAt
		cp.ResolvedAt = &t
	}
	return &cp
}
