package casework

import (
	"github.com/jhoicas/Casos-api/internal/application/dto"
	"github.com/jhoicas/Casos-api/internal/domain/entity"
)

func toBeneficiaryResponse(b *entity.Beneficiary) *dto.BeneficiaryResponse {
	return &dto.BeneficiaryResponse{
		ID:           b.ID,
		FirstName:    b.FirstName,
		LastName:     b.LastName,
		DateOfBirth:  b.DateOfBirth,
		Gender:       b.Gender,
		Nationality:  b.Nationality,
		IDNumber:     b.IDNumber,
		Phone:        b.Phone,
		Email:        b.Email,
		Category:     b.Category,
		Status:       b.Status,
		Priority:     b.Priority,
		Notes:        b.Notes,
		Tags:         nonNil(b.Tags),
		CreatedByID:  b.CreatedByID,
		AssignedToID: b.AssignedToID,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
}

func toCaseResponse(c *entity.Case) *dto.CaseResponse {
	return &dto.CaseResponse{
		ID:            c.ID,
		BeneficiaryID: c.BeneficiaryID,
		Title:         c.Title,
		Description:   c.Description,
		Type:          c.Type,
		Priority:      c.Priority,
		Status:        c.Status,
		CreatedByID:   c.CreatedByID,
		AssigneeIDs:   nonNil(c.AssigneeIDs),
		ResolvedAt:    c.ResolvedAt,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

func toServiceResponse(s *entity.Service) *dto.ServiceResponse {
	return &dto.ServiceResponse{
		ID:            s.ID,
		Type:          s.Type,
		Date:          s.Date,
		Description:   s.Description,
		Quantity:      s.Quantity,
		Cost:          s.Cost,
		BeneficiaryID: s.BeneficiaryID,
		CaseID:        s.CaseID,
		ProvidedByID:  s.ProvidedByID,
		CreatedByID:   s.CreatedByID,
		Location:      s.Location,
		Notes:         s.Notes,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}

func toAuditLogEntryResponse(e *entity.AuditLogEntry) dto.AuditLogEntryResponse {
	r := dto.AuditLogEntryResponse{
		ID:        e.ID,
		Action:    string(e.Action),
		UserID:    e.UserID,
		Details:   e.Details,
		Timestamp: e.Timestamp,
	}
	if e.Details != nil {
		r.EntityID = e.Details.EntityID()
	}
	return r
}
