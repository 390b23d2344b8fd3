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

const dateLayout = "2006-01-02"

// CreateService registra un servicio entregado. Si no se indica quién lo prestó, es el actor.
func (o *Orchestrator) CreateService(ctx context.Context, actor *entity.Actor, in *dto.CreateServiceRequest) (*dto.ServiceResponse, error) {
	if in == nil {
		in = &dto.CreateServiceRequest{}
	}
	var created *entity.Service
	err := o.mutate(ctx, "CreateService", actor, policy.CreateService,
		func(repos repository.Repositories, p *progress, now time.Time) (entity.AuditDetails, error) {
			if err := authorizeTarget(actor, policy.CreateService, nil, p); err != nil {
				return nil, err
			}
			if err := o.validator.ServiceCreate(ctx, repos, in); err != nil {
				return nil, err
			}
			p.advance(StageValidated)

			s := &entity.Service{
				ID:            o.newID(),
				Type:          in.Type,
				Date:          in.Date.UTC(),
				Description:   in.Description,
				Quantity:      in.Quantity,
				Cost:          in.Cost,
				BeneficiaryID: in.BeneficiaryID,
				CaseID:        in.CaseID,
				ProvidedByID:  orDefault(in.ProvidedByID, actor.UserID),
				CreatedByID:   actor.UserID,
				Location:      in.Location,
				Notes:         in.Notes,
				CreatedAt:     now,
				UpdatedAt:     now,
			}
			if err := repos.Services.Create(ctx, s); err != nil {
				return nil, fmt.Errorf("crear servicio: %w", err)
			}
			p.advance(StagePersisted)
			created = s
			return entity.ServiceCreated{ServiceID: s.ID, BeneficiaryID: s.BeneficiaryID, CaseID: s.CaseID, Type: s.Type}, nil
		})
	if err != nil {
		return nil, err
	}
	return toServiceResponse(created), nil
}

// GetService lectura con alcance (creador o quien prestó el servicio).
func (o *Orchestrator) GetService(ctx context.Context, actor *entity.Actor, id string) (*dto.ServiceResponse, error) {
	start := time.Now()
	s, err := o.readService(ctx, actor, id)
	if err = o.read("GetService", actor, start, err); err != nil {
		return nil, err
	}
	return toServiceResponse(s), nil
}

func (o *Orchestrator) readService(ctx context.Context, actor *entity.Actor, id string) (*entity.Service, error) {
	if err := policy.Can(actor, policy.ReadService).Err(); err != nil {
		return nil, err
	}
	s, err := getService(ctx, o.repos.Services, id)
	if err != nil {
		return nil, err
	}
	if err := policy.Authorize(actor, policy.ReadService, s).Err(); err != nil {
		return nil, err
	}
	return s, nil
}

// UpdateService actualización parcial. caseId "" desvincula el servicio del caso.
func (o *Orchestrator) UpdateService(ctx context.Context, actor *entity.Actor, id string, in *dto.UpdateServiceRequest) (*dto.ServiceResponse, error) {
	if in == nil {
		in = &dto.UpdateServiceRequest{}
	}
	var updated *entity.Service
	err := o.mutate(ctx, "UpdateService", actor, policy.UpdateService,
		func(repos repository.Repositories, p *progress, now time.Time) (entity.AuditDetails, error) {
			existing, err := getService(ctx, repos.Services, id)
			if err != nil {
				return nil, err
			}
			if err := authorizeTarget(actor, policy.UpdateService, existing, p); err != nil {
				return nil, err
			}
			if err := o.validator.ServiceUpdate(ctx, repos, in); err != nil {
				return nil, err
			}
			p.advance(StageValidated)

			next := existing.Clone()
			applyServiceUpdate(next, in)
			next.UpdatedAt = now
			if err := repos.Services.Update(ctx, next); err != nil {
				return nil, fmt.Errorf("actualizar servicio: %w", err)
			}
			p.advance(StagePersisted)
			updated = next
			return entity.ServiceUpdated{ServiceID: next.ID, Changes: serviceChanges(existing, next)}, nil
		})
	if err != nil {
		return nil, err
	}
	return toServiceResponse(updated), nil
}

// DeleteService elimina físicamente un servicio.
func (o *Orchestrator) DeleteService(ctx context.Context, actor *entity.Actor, id string) error {
	return o.mutate(ctx, "DeleteService", actor, policy.DeleteService,
		func(repos repository.Repositories, p *progress, now time.Time) (entity.AuditDetails, error) {
			existing, err := getService(ctx, repos.Services, id)
			if err != nil {
				return nil, err
			}
			if err := authorizeTarget(actor, policy.DeleteService, existing, p); err != nil {
				return nil, err
			}
			p.advance(StageValidated)
			if err := repos.Services.Delete(ctx, existing.ID); err != nil {
				return nil, fmt.Errorf("eliminar servicio: %w", err)
			}
			p.advance(StagePersisted)
			return entity.ServiceDeleted{ServiceID: existing.ID, BeneficiaryID: existing.BeneficiaryID}, nil
		})
}

// ListServices listado paginado con alcance y rango de fechas inclusivo (YYYY-MM-DD).
func (o *Orchestrator) ListServices(ctx context.Context, actor *entity.Actor, req dto.ServiceListRequest) (*dto.ServiceListResponse, error) {
	start := time.Now()
	f := repository.ServiceFilter{
		Search:        strings.TrimSpace(req.Search),
		Type:          strings.ToUpper(strings.TrimSpace(req.Type)),
		BeneficiaryID: strings.TrimSpace(req.BeneficiaryID),
		CaseID:        strings.TrimSpace(req.CaseID),
		Page:          o.page(req.PageRequest),
	}
	var (
		items []*entity.Service
		total int
	)
	scope, err := policy.ListScope(actor, policy.ListServices)
	if err == nil {
		err = parseDateRange(req.DateFrom, req.DateTo, &f)
	}
	if err == nil {
		items, total, err = o.repos.Services.List(ctx, f, scope)
	}
	if err = o.read("ListServices", actor, start, err); err != nil {
		return nil, err
	}
	out := &dto.ServiceListResponse{
		Items:      make([]dto.ServiceResponse, 0, len(items)),
		Pagination: dto.NewPagination(f.Page.Page, f.Page.Limit, total),
	}
	for _, s := range items {
		out.Items = append(out.Items, *toServiceResponse(s))
	}
	return out, nil
}

func parseDateRange(from, to string, f *repository.ServiceFilter) error {
	verr := domain.NewValidationError()
	if from = strings.TrimSpace(from); from != "" {
		t, err := time.Parse(dateLayout, from)
		if err != nil {
			verr.Add("dateFrom", "formato de fecha inválido (YYYY-MM-DD)")
		} else {
			f.DateFrom = &t
		}
	}
	if to = strings.TrimSpace(to); to != "" {
		t, err := time.Parse(dateLayout, to)
		if err != nil {
			verr.Add("dateTo", "formato de fecha inválido (YYYY-MM-DD)")
		} else {
			f.DateTo = &t
		}
	}
	if f.DateFrom != nil && f.DateTo != nil && f.DateTo.Before(*f.DateFrom) {
		verr.Add("dateTo", "debe ser posterior o igual a dateFrom")
	}
	return verr.OrNil()
}

func getService(ctx context.Context, repo repository.ServiceRepository, id string) (*entity.Service, error) {
	s, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("cargar servicio: %w", err)
	}
	if s == nil {
		return nil, notFound("servicio", id)
	}
	return s, nil
}

func applyServiceUpdate(s *entity.Service, in *dto.UpdateServiceRequest) {
	setIf(&s.Type, in.Type)
	if in.Date != nil {
		s.Date = in.Date.UTC()
	}
	setIf(&s.Description, in.Description)
	if in.Quantity != nil {
		q := *in.Quantity
		s.Quantity = &q
	}
	if in.Cost != nil {
		c := *in.Cost
		s.Cost = &c
	}
	setIf(&s.BeneficiaryID, in.BeneficiaryID)
	if in.CaseID != nil {
		if *in.CaseID == "" {
			s.CaseID = nil
		} else {
			id := *in.CaseID
			s.CaseID = &id
		}
	}
	setIf(&s.ProvidedByID, in.ProvidedByID)
	setIf(&s.Location, in.Location)
	setIf(&s.Notes, in.Notes)
}
