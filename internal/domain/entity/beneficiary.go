package entity

import "time"

// Estados de Beneficiary. ARCHIVED es terminal y solo se alcanza con la acción de archivo.
const (
	BeneficiaryStatusActive   = "ACTIVE"
	BeneficiaryStatusInactive = "INACTIVE"
	BeneficiaryStatusArchived = "ARCHIVED"
	BeneficiaryStatusDeceased = "DECEASED"
)

// Categorías de Beneficiary.
const (
	CategoryFamily   = "FAMILY"
	CategoryElderly  = "ELDERLY"
	CategoryDisabled = "DISABLED"
	CategoryOrphan   = "ORPHAN"
	CategoryWidow    = "WIDOW"
	CategoryRefugee  = "REFUGEE"
	CategoryStudent  = "STUDENT"
	CategoryOther    = "OTHER"
)

// Prioridades compartidas por Beneficiary y Case.
const (
	PriorityLow    = "LOW"
	PriorityMedium = "MEDIUM"
	PriorityHigh   = "HIGH"
	PriorityUrgent = "URGENT"
)

// Géneros.
const (
	GenderMale   = "MALE"
	GenderFemale = "FEMALE"
	GenderOther  = "OTHER"
)

// Beneficiary persona que recibe ayuda. Nunca se elimina físicamente: "eliminar" es archivar.
// IDNumber, si no es nil, es único entre todos los beneficiarios.
type Beneficiary struct {
	ID           string
	FirstName    string
	LastName     string
	DateOfBirth  *time.Time
	Gender       string
	Nationality  string
	IDNumber     *string
	Phone        string
	Email        string
	Category     string
	Status       string
	Priority     string
	Notes        string
	Tags         []string
	CreatedByID  string // inmutable
	AssignedToID string // por defecto el creador
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// FullName nombre para mostrar.
func (b *Beneficiary) FullName() string {
	if b.LastName == "" {
		return b.FirstName
	}
	return b.FirstName + " " + b.LastName
}

// Ownership creador y asignado directo.
func (b *Beneficiary) Ownership() Ownership {
	o := Ownership{CreatedByID: b.CreatedByID}
	if b.AssignedToID != "" {
		o.AssigneeIDs = []string{b.AssignedToID}
	}
	return o
}

// Clone copia profunda (slices y punteros) para comparar antes/después de una mutación.
func (b *Beneficiary) Clone() *Beneficiary {
	if b == nil {
		return nil
	}
	c := *b
	if b.DateOfBirth != nil {
		d := *b.DateOfBirth
		c.DateOfBirth = &d
	}
	if b.IDNumber != nil {
		s := *b.IDNumber
		c.IDNumber = &s
	}
	c.Tags = append([]string(nil), b.Tags...)
	return &c
}
