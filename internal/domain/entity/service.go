package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de Service.
const (
	ServiceTypeFoodBasket       = "FOOD_BASKET"
	ServiceTypeCashAid          = "CASH_AID"
	ServiceTypeMedicalAid       = "MEDICAL_AID"
	ServiceTypeClothing         = "CLOTHING"
	ServiceTypeEducationSupport = "EDUCATION_SUPPORT"
	ServiceTypeHousingSupport   = "HOUSING_SUPPORT"
	ServiceTypeCounseling       = "COUNSELING"
	ServiceTypeHomeVisit        = "HOME_VISIT"
	ServiceTypeOther            = "OTHER"
)

// Service registro de un acto de ayuda entregado. CaseID es opcional; solo se verifica que
// exista, no que pertenezca al mismo beneficiario.
type Service struct {
	ID            string
	Type          string
	Date          time.Time
	Description   string
	Quantity      *int
	Cost          *decimal.Decimal
	BeneficiaryID string
	CaseID        *string
	ProvidedByID  string
	CreatedByID   string
	Location      string
	Notes         string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Ownership creador y quien prestó el servicio.
func (s *Service) Ownership() Ownership {
	o := Ownership{CreatedByID: s.CreatedByID}
	if s.ProvidedByID != "" {
		o.AssigneeIDs = []string{s.ProvidedByID}
	}
	return o
}

// Clone copia profunda.
func (s *Service) Clone() *Service {
	if s == nil {
		return nil
	}
	c := *s
	if s.Quantity != nil {
		q := *s.Quantity
		c.Quantity = &q
	}
	if s.Cost != nil {
		d := *s.Cost
		c.Cost = &d
	}
	if s.CaseID != nil {
		id := *s.CaseID
		c.CaseID = &id
	}
	return &c
}
