package casework

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/Casos-api/internal/application/dto"
	"github.com/jhoicas/Casos-api/internal/domain"
	"github.com/jhoicas/Casos-api/internal/domain/entity"
	"github.com/jhoicas/Casos-api/internal/domain/policy"
	"github.com/jhoicas/Casos-api/internal/domain/repository"
)

// CreateBeneficiary registra un beneficiario. El creador queda como asignado si no se indica otro.
func (o *Orchestrator) CreateBeneficiary(ctx context.Context, actor *entity.Actor, in *dto.CreateBeneficiaryRequest) (*dto.BeneficiaryResponse, error) {
	if in == nil {
		in = &dto.CreateBeneficiaryRequest{}
	}
	var created *entity.Beneficiary
	err := o.mutate(ctx, "CreateBeneficiary", actor, policy.CreateBeneficiary,
		func(repos repository.Repositories, p *progress, now time.Time) (entity.AuditDetails, error) {
			if err := authorizeTarget(actor, policy.CreateBeneficiary, nil, p); err != nil {
				return nil, err
			}
			if err := o.validator.BeneficiaryCreate(ctx, repos, in); err != nil {
				return nil, err
			}
			p.advance(StageValidated)

			b := &entity.Beneficiary{
				ID:           o.newID(),
				FirstName:    in.FirstName,
				LastName:     in.LastName,
				DateOfBirth:  in.DateOfBirth,
				Gender:       in.Gender,
				Nationality:  in.Nationality,
				IDNumber:     in.IDNumber,
				Phone:        in.Phone,
				Email:        in.Email,
				Category:     in.Category,
				Status:       orDefault(in.Status, entity.BeneficiaryStatusActive),
				Priority:     orDefault(in.Priority, entity.PriorityMedium),
				Notes:        in.Notes,
				Tags:         nonNil(in.Tags),
				CreatedByID:  actor.UserID,
				AssignedToID: orDefault(in.AssignedToID, actor.UserID),
				CreatedAt:    now,
				UpdatedAt:    now,
			}
			if err := repos.Beneficiaries.Create(ctx, b); err != nil {
				return nil, fmt.Errorf("crear beneficiario: %w", err)
			}
			p.advance(StagePersisted)
			created = b
			return entity.BeneficiaryCreated{BeneficiaryID: b.ID, Name: b.FullName(), Category: b.Category}, nil
		})
	if err != nil {
		return nil, err
	}
	return toBeneficiaryResponse(created), nil
}

// GetBeneficiary lectura con alcance. No pasa por validación ni auditoría.
func (o *Orchestrator) GetBeneficiary(ctx context.Context, actor *entity.Actor, id string) (*dto.BeneficiaryResponse, error) {
	start := time.Now()
	b, err := o.readBeneficiary(ctx, actor, policy.ReadBeneficiary, id)
	if err = o.read("GetBeneficiary", actor, start, err); err != nil {
		return nil, err
	}
	return toBeneficiaryResponse(b), nil
}

// LoadBeneficiary devuelve la entidad autorizada para la acción indicada (informes, panel).
func (o *Orchestrator) LoadBeneficiary(ctx context.Context, actor *entity.Actor, action policy.Action, id string) (*entity.Beneficiary, error) {
	start := time.Now()
	b, err := o.readBeneficiary(ctx, actor, action, id)
	if err = o.read(string(action), actor, start, err); err != nil {
		return nil, err
	}
	return b, nil
}

func (o *Orchestrator) readBeneficiary(ctx context.Context, actor *entity.Actor, action policy.Action, id string) (*entity.Beneficiary, error) {
	if err := policy.Can(actor, action).Err(); err != nil {
		return nil, err
	}
	b, err := getBeneficiary(ctx, o.repos.Beneficiaries, id)
	if err != nil {
		return nil, err
	}
	if err := policy.Authorize(actor, action, b).Err(); err != nil {
		return nil, err
	}
	return b, nil
}

// UpdateBeneficiary aplica una actualización parcial y audita la diferencia campo a campo.
func (o *Orchestrator) UpdateBeneficiary(ctx context.Context, actor *entity.Actor, id string, in *dto.UpdateBeneficiaryRequest) (*dto.BeneficiaryResponse, error) {
	if in == nil {
		in = &dto.UpdateBeneficiaryRequest{}
	}
	var updated *entity.Beneficiary
	err := o.mutate(ctx, "UpdateBeneficiary", actor, policy.UpdateBeneficiary,
		func(repos repository.Repositories, p *progress, now time.Time) (entity.AuditDetails, error) {
			existing, err := getBeneficiary(ctx, repos.Beneficiaries, id)
			if err != nil {
				return nil, err
			}
			if err := authorizeTarget(actor, policy.UpdateBeneficiary, existing, p); err != nil {
				return nil, err
			}
			if err := o.validator.BeneficiaryUpdate(ctx, repos, in, existing); err != nil {
				return nil, err
			}
			p.advance(StageValidated)

			next := existing.Clone()
			applyBeneficiaryUpdate(next, in)
			next.UpdatedAt = now
			if err := repos.Beneficiaries.Update(ctx, next); err != nil {
				return nil, fmt.Errorf("actualizar beneficiario: %w", err)
			}
			p.advance(StagePersisted)
			updated = next
			return entity.BeneficiaryUpdated{BeneficiaryID: next.ID, Changes: beneficiaryChanges(existing, next)}, nil
		})
	if err != nil {
		return nil, err
	}
	return toBeneficiaryResponse(updated), nil
}

// ArchiveBeneficiary es la "eliminación" de un beneficiario: solo cambia el estado a ARCHIVED.
// Sus casos y servicios se conservan.
func (o *Orchestrator) ArchiveBeneficiary(ctx context.Context, actor *entity.Actor, id string) (*dto.BeneficiaryResponse, error) {
	var archived *entity.Beneficiary
	err := o.mutate(ctx, "ArchiveBeneficiary", actor, policy.ArchiveBeneficiary,
		func(repos repository.Repositories, p *progress, now time.Time) (entity.AuditDetails, error) {
			existing, err := getBeneficiary(ctx, repos.Beneficiaries, id)
			if err != nil {
				return nil, err
			}
			if err := authorizeTarget(actor, policy.ArchiveBeneficiary, existing, p); err != nil {
				return nil, err
			}
			if existing.Status == entity.BeneficiaryStatusArchived {
				return nil, domain.NewValidationError(domain.FieldError{Field: "status", Message: "el beneficiario ya está archivado"})
			}
			p.advance(StageValidated)

			next := existing.Clone()
			next.Status = entity.BeneficiaryStatusArchived
			next.UpdatedAt = now
			if err := repos.Beneficiaries.Update(ctx, next); err != nil {
				return nil, fmt.Errorf("archivar beneficiario: %w", err)
			}
			p.advance(StagePersisted)
			archived = next
			return entity.BeneficiaryArchived{BeneficiaryID: next.ID, PreviousStatus: existing.Status}, nil
		})
	if err != nil {
		return nil, err
	}
	return toBeneficiaryResponse(archived), nil
}

// ListBeneficiaries listado paginado; el alcance del actor forma parte de la consulta.
func (o *Orchestrator) ListBeneficiaries(ctx context.Context, actor *entity.Actor, req dto.BeneficiaryListRequest) (*dto.BeneficiaryListResponse, error) {
	start := time.Now()
	f := repository.BeneficiaryFilter{
		Search:   strings.TrimSpace(req.Search),
		Category: strings.ToUpper(strings.TrimSpace(req.Category)),
		Status:   strings.ToUpper(strings.TrimSpace(req.Status)),
		Priority: strings.ToUpper(strings.TrimSpace(req.Priority)),
		Page:     o.page(req.PageRequest),
	}
	var (
		items []*entity.Beneficiary
		total int
	)
	scope, err := policy.ListScope(actor, policy.ListBeneficiaries)
	if err == nil {
		items, total, err = o.repos.Beneficiaries.List(ctx, f, scope)
	}
	if err = o.read("ListBeneficiaries", actor, start, err); err != nil {
		return nil, err
	}
	out := &dto.BeneficiaryListResponse{
		Items:      make([]dto.BeneficiaryResponse, 0, len(items)),
		Pagination: dto.NewPagination(f.Page.Page, f.Page.Limit, total),
	}
	for _, b := range items {
		out.Items = append(out.Items, *toBeneficiaryResponse(b))
	}
	return out, nil
}

func getBeneficiary(ctx context.Context, repo repository.BeneficiaryRepository, id string) (*entity.Beneficiary, error) {
	b, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("cargar beneficiario: %w", err)
	}
	if b == nil {
		return nil, notFound("beneficiario", id)
	}
	return b, nil
}

func applyBeneficiaryUpdate(b *entity.Beneficiary, in *dto.UpdateBeneficiaryRequest) {
	setIf(&b.FirstName, in.FirstName)
	setIf(&b.LastName, in.LastName)
	if in.DateOfBirth != nil {
		d := *in.DateOfBirth
		b.DateOfBirth = &d
	}
	setIf(&b.Gender, in.Gender)
	setIf(&b.Nationality, in.Nationality)
	if in.IDNumber != nil {
		if *in.IDNumber == "" {
			b.IDNumber = nil
		} else {
			v := *in.IDNumber
			b.IDNumber = &v
		}
	}
	setIf(&b.Phone, in.Phone)
	setIf(&b.Email, in.Email)
	setIf(&b.Category, in.Category)
	setIf(&b.Status, in.Status)
	setIf(&b.Priority, in.Priority)
	setIf(&b.Notes, in.Notes)
	if in.Tags != nil {
		b.Tags = append([]string{}, in.Tags...)
	}
	setIf(&b.AssignedToID, in.AssignedToID)
}

func setIf(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
