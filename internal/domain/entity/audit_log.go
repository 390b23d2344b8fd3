package entity

import (
	"encoding/json"
	"fmt"
	"time"
)

// AuditAction vocabulario cerrado de eventos auditados.
type AuditAction string

const (
	AuditBeneficiaryCreated  AuditAction = "BENEFICIARY_CREATED"
	AuditBeneficiaryUpdated  AuditAction = "BENEFICIARY_UPDATED"
	AuditBeneficiaryArchived AuditAction = "BENEFICIARY_ARCHIVED"
	AuditCaseCreated         AuditAction = "CASE_CREATED"
	AuditCaseUpdated         AuditAction = "CASE_UPDATED"
	AuditCaseDeleted         AuditAction = "CASE_DELETED"
	AuditServiceCreated      AuditAction = "SERVICE_CREATED"
	AuditServiceUpdated      AuditAction = "SERVICE_UPDATED"
	AuditServiceDeleted      AuditAction = "SERVICE_DELETED"
)

// Valid indica si la acción pertenece al vocabulario.
func (a AuditAction) Valid() bool {
	switch a {
	case AuditBeneficiaryCreated, AuditBeneficiaryUpdated, AuditBeneficiaryArchived,
		AuditCaseCreated, AuditCaseUpdated, AuditCaseDeleted,
		AuditServiceCreated, AuditServiceUpdated, AuditServiceDeleted:
		return true
	}
	return false
}

// AuditDetails payload tipado de una entrada de auditoría. Cada variante corresponde a una
// sola acción, así la acción de la entrada se deriva del payload y no pueden divergir.
type AuditDetails interface {
	Action() AuditAction
	EntityID() string
}

// FieldChange diferencia a nivel de campo en una actualización.
type FieldChange struct {
	Field string `json:"field"`
	Old   any    `json:"old"`
	New   any    `json:"new"`
}

type BeneficiaryCreated struct {
	BeneficiaryID string `json:"beneficiaryId"`
	Name          string `json:"name"`
	Category      string `json:"category"`
}

type BeneficiaryUpdated struct {
	BeneficiaryID string        `json:"beneficiaryId"`
	Changes       []FieldChange `json:"changes"`
}

type BeneficiaryArchived struct {
	BeneficiaryID  string `json:"beneficiaryId"`
	PreviousStatus string `json:"previousStatus"`
}

type CaseCreated struct {
	CaseID        string `json:"caseId"`
	BeneficiaryID string `json:"beneficiaryId"`
	Title         string `json:"title"`
}

type CaseUpdated struct {
	CaseID  string        `json:"caseId"`
	Changes []FieldChange `json:"changes"`
}

type CaseDeleted struct {
	CaseID          string `json:"caseId"`
	BeneficiaryID   string `json:"beneficiaryId"`
	DeletedServices int    `json:"deletedServices"`
}

type ServiceCreated struct {
	ServiceID     string  `json:"serviceId"`
	BeneficiaryID string  `json:"beneficiaryId"`
	CaseID        *string `json:"caseId,omitempty"`
	Type          string  `json:"type"`
}

type ServiceUpdated struct {
	ServiceID string        `json:"serviceId"`
	Changes   []FieldChange `json:"changes"`
}

type ServiceDeleted struct {
	ServiceID     string `json:"serviceId"`
	BeneficiaryID string `json:"beneficiaryId"`
}

func (BeneficiaryCreated) Action() AuditAction  { return AuditBeneficiaryCreated }
func (BeneficiaryUpdated) Action() AuditAction  { return AuditBeneficiaryUpdated }
func (BeneficiaryArchived) Action() AuditAction { return AuditBeneficiaryArchived }
func (CaseCreated) Action() AuditAction         { return AuditCaseCreated }
func (CaseUpdated) Action() AuditAction         { return AuditCaseUpdated }
func (CaseDeleted) Action() AuditAction         { return AuditCaseDeleted }
func (ServiceCreated) Action() AuditAction      { return AuditServiceCreated }
func (ServiceUpdated) Action() AuditAction      { return AuditServiceUpdated }
func (ServiceDeleted) Action() AuditAction      { return AuditServiceDeleted }

func (d BeneficiaryCreated) EntityID() string  { return d.BeneficiaryID }
func (d BeneficiaryUpdated) EntityID() string  { return d.BeneficiaryID }
func (d BeneficiaryArchived) EntityID() string { return d.BeneficiaryID }
func (d CaseCreated) EntityID() string         { return d.CaseID }
func (d CaseUpdated) EntityID() string         { return d.CaseID }
func (d CaseDeleted) EntityID() string         { return d.CaseID }
func (d ServiceCreated) EntityID() string      { return d.ServiceID }
func (d ServiceUpdated) EntityID() string      { return d.ServiceID }
func (d ServiceDeleted) EntityID() string      { return d.ServiceID }

// AuditLogEntry registro inmutable de una mutación aceptada. Se crea exactamente una vez
// por mutación, en la misma transacción, y nunca se modifica ni se elimina.
type AuditLogEntry struct {
	ID        string
	Action    AuditAction
	UserID    string
	Details   AuditDetails
	Timestamp time.Time
}

// NewAuditLogEntry construye la entrada derivando la acción del payload.
func NewAuditLogEntry(id, userID string, details AuditDetails, at time.Time) *AuditLogEntry {
	return &AuditLogEntry{
		ID:        id,
		Action:    details.Action(),
		UserID:    userID,
		Details:   details,
		Timestamp: at,
	}
}

// DecodeAuditDetails reconstruye la variante tipada a partir de la acción y el JSON persistido.
func DecodeAuditDetails(action AuditAction, raw []byte) (AuditDetails, error) {
	var (
		d   AuditDetails
		err error
	)
	switch action {
	case AuditBeneficiaryCreated:
		d, err = decodeAs[BeneficiaryCreated](raw)
	case AuditBeneficiaryUpdated:
		d, err = decodeAs[BeneficiaryUpdated](raw)
	case AuditBeneficiaryArchived:
		d, err = decodeAs[BeneficiaryArchived](raw)
	case AuditCaseCreated:
		d, err = decodeAs[CaseCreated](raw)
	case AuditCaseUpdated:
		d, err = decodeAs[CaseUpdated](raw)
	case AuditCaseDeleted:
		d, err = decodeAs[CaseDeleted](raw)
	case AuditServiceCreated:
		d, err = decodeAs[ServiceCreated](raw)
	case AuditServiceUpdated:
		d, err = decodeAs[ServiceUpdated](raw)
	case AuditServiceDeleted:
		d, err = decodeAs[ServiceDeleted](raw)
	default:
		return nil, fmt.Errorf("acción de auditoría desconocida: %q", action)
	}
	if err != nil {
		return nil, fmt.Errorf("decodificar detalles %s: %w", action, err)
	}
	return d, nil
}

func decodeAs[T AuditDetails](raw []byte) (AuditDetails, error) {
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	return v, nil
}
