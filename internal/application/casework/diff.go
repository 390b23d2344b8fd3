package casework

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Casos-api/internal/domain/entity"
)

// changes acumula las diferencias campo a campo de una actualización. Los valores ausentes
// (punteros nil) se registran como null.
type changes struct {
	list []entity.FieldChange
}

func (c *changes) add(field string, old, cur any) {
	c.list = append(c.list, entity.FieldChange{Field: field, Old: old, New: cur})
}

func (c *changes) str(field, old, cur string) {
	if old != cur {
		c.add(field, old, cur)
	}
}

func (c *changes) strPtr(field string, old, cur *string) {
	if deref(old) != deref(cur) || (old == nil) != (cur == nil) {
		c.add(field, ptrValue(old), ptrValue(cur))
	}
}

func (c *changes) strs(field string, old, cur []string) {
	if !slices.Equal(old, cur) {
		c.add(field, nonNil(old), nonNil(cur))
	}
}

func (c *changes) timeVal(field string, old, cur time.Time) {
	if !old.Equal(cur) {
		c.add(field, old, cur)
	}
}

func (c *changes) timePtr(field string, old, cur *time.Time) {
	switch {
	case old == nil && cur == nil:
	case old == nil || cur == nil || !old.Equal(*cur):
		c.add(field, ptrValue(old), ptrValue(cur))
	}
}

func (c *changes) intPtr(field string, old, cur *int) {
	switch {
	case old == nil && cur == nil:
	case old == nil || cur == nil || *old != *cur:
		c.add(field, ptrValue(old), ptrValue(cur))
	}
}

func (c *changes) decimalPtr(field string, old, cur *decimal.Decimal) {
	switch {
	case old == nil && cur == nil:
	case old == nil || cur == nil || !old.Equal(*cur):
		c.add(field, ptrValue(old), ptrValue(cur))
	}
}

// result nunca es nil para que el payload serialice "changes": [].
func (c *changes) result() []entity.FieldChange {
	if c.list == nil {
		return []entity.FieldChange{}
	}
	return c.list
}

func beneficiaryChanges(old, cur *entity.Beneficiary) []entity.FieldChange {
	var c changes
	c.str("firstName", old.FirstName, cur.FirstName)
	c.str("lastName", old.LastName, cur.LastName)
	c.timePtr("dateOfBirth", old.DateOfBirth, cur.DateOfBirth)
	c.str("gender", old.Gender, cur.Gender)
	c.str("nationality", old.Nationality, cur.Nationality)
	c.strPtr("idNumber", old.IDNumber, cur.IDNumber)
	c.str("phone", old.Phone, cur.Phone)
	c.str("email", old.Email, cur.Email)
	c.str("category", old.Category, cur.Category)
	c.str("status", old.Status, cur.Status)
	c.str("priority", old.Priority, cur.Priority)
	c.str("notes", old.Notes, cur.Notes)
	c.strs("tags", old.Tags, cur.Tags)
	c.str("assignedToId", old.AssignedToID, cur.AssignedToID)
	return c.result()
}

func caseChanges(old, cur *entity.Case) []entity.FieldChange {
	var c changes
	c.str("title", old.Title, cur.Title)
	c.str("description", old.Description, cur.Description)
	c.str("type", old.Type, cur.Type)
	c.str("priority", old.Priority, cur.Priority)
	c.str("status", old.Status, cur.Status)
	c.strs("assigneeIds", old.AssigneeIDs, cur.AssigneeIDs)
	c.timePtr("resolvedAt", old.ResolvedAt, cur.ResolvedAt)
	return c.result()
}

func serviceChanges(old, cur *entity.Service) []entity.FieldChange {
	var c changes
	c.str("type", old.Type, cur.Type)
	c.timeVal("date", old.Date, cur.Date)
	c.str("description", old.Description, cur.Description)
	c.intPtr("quantity", old.Quantity, cur.Quantity)
	c.decimalPtr("cost", old.Cost, cur.Cost)
	c.str("beneficiaryId", old.BeneficiaryID, cur.BeneficiaryID)
	c.strPtr("caseId", old.CaseID, cur.CaseID)
	c.str("providedById", old.ProvidedByID, cur.ProvidedByID)
	c.str("location", old.Location, cur.Location)
	c.str("notes", old.Notes, cur.Notes)
	return c.result()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func ptrValue[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
