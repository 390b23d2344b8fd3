package casework

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/Casos-api/internal/application/dto"
	"github.com/jhoicas/Casos-api/internal/domain/entity"
	"github.com/jhoicas/Casos-api/internal/domain/policy"
	"github.com/jhoicas/Casos-api/internal/domain/repository"
)

// CreateCase abre un caso sobre un beneficiario existente.
func (o *Orchestrator) CreateCase(ctx context.Context, actor *entity.Actor, in *dto.CreateCaseRequest) (*dto.CaseResponse, error) {
	if in == nil {
		in = &dto.CreateCaseRequest{}
	}
	var created *entity.Case
	err := o.mutate(ctx, "CreateCase", actor, policy.CreateCase,
		func(repos repository.Repositories, p *progress, now time.Time) (entity.AuditDetails, error) {
			if err := authorizeTarget(actor, policy.CreateCase, nil, p); err != nil {
				return nil, err
			}
			if err := o.validator.CaseCreate(ctx, repos, in); err != nil {
				return nil, err
			}
			p.advance(StageValidated)

			c := &entity.Case{
				ID:            o.newID(),
				BeneficiaryID: in.BeneficiaryID,
				Title:         in.Title,
				Description:   in.Description,
				Type:          in.Type,
				Priority:      orDefault(in.Priority, entity.PriorityMedium),
				CreatedByID:   actor.UserID,
				AssigneeIDs:   nonNil(in.AssigneeIDs),
				CreatedAt:     now,
				UpdatedAt:     now,
			}
			c.SetStatus(orDefault(in.Status, entity.CaseStatusOpen), now)
			if err := repos.Cases.Create(ctx, c); err != nil {
				return nil, fmt.Errorf("crear caso: %w", err)
			}
			p.advance(StagePersisted)
			created = c
			return entity.CaseCreated{CaseID: c.ID, BeneficiaryID: c.BeneficiaryID, Title: c.Title}, nil
		})
	if err != nil {
		return nil, err
	}
	return toCaseResponse(created), nil
}

// GetCase lectura con alcance por membresía en assigneeIds.
func (o *Orchestrator) GetCase(ctx context.Context, actor *entity.Actor, id string) (*dto.CaseResponse, error) {
	start := time.Now()
	c, err := o.readCase(ctx, actor, id)
	if err = o.read("GetCase", actor, start, err); err != nil {
		return nil, err
	}
	return toCaseResponse(c), nil
}

func (o *Orchestrator) readCase(ctx context.Context, actor *entity.Actor, id string) (*entity.Case, error) {
	if err := policy.Can(actor, policy.ReadCase).Err(); err != nil {
		return nil, err
	}
	c, err := getCase(ctx, o.repos.Cases, id)
	if err != nil {
		return nil, err
	}
	if err := policy.Authorize(actor, policy.ReadCase, c).Err(); err != nil {
		return nil, err
	}
	return c, nil
}

// UpdateCase actualización parcial. El paso a RESOLVED sella resolvedAt una sola vez.
func (o *Orchestrator) UpdateCase(ctx context.Context, actor *entity.Actor, id string, in *dto.UpdateCaseRequest) (*dto.CaseResponse, error) {
	if in == nil {
		in = &dto.UpdateCaseRequest{}
	}
	var updated *entity.Case
	err := o.mutate(ctx, "UpdateCase", actor, policy.UpdateCase,
		func(repos repository.Repositories, p *progress, now time.Time) (entity.AuditDetails, error) {
			existing, err := getCase(ctx, repos.Cases, id)
			if err != nil {
				return nil, err
			}
			if err := authorizeTarget(actor, policy.UpdateCase, existing, p); err != nil {
				return nil, err
			}
			if err := o.validator.CaseUpdate(ctx, repos, in, existing); err != nil {
				return nil, err
			}
			p.advance(StageValidated)

			next := existing.Clone()
			setIf(&next.Title, in.Title)
			setIf(&next.Description, in.Description)
			setIf(&next.Type, in.Type)
			setIf(&next.Priority, in.Priority)
			if in.Status != nil {
				next.SetStatus(*in.Status, now)
			}
			if in.AssigneeIDs != nil {
				next.AssigneeIDs = append([]string{}, in.AssigneeIDs...)
			}
			next.UpdatedAt = now
			if err := repos.Cases.Update(ctx, next); err != nil {
				return nil, fmt.Errorf("actualizar caso: %w", err)
			}
			p.advance(StagePersisted)
			updated = next
			return entity.CaseUpdated{CaseID: next.ID, Changes: caseChanges(existing, next)}, nil
		})
	if err != nil {
		return nil, err
	}
	return toCaseResponse(updated), nil
}

// DeleteCase elimina físicamente el caso y sus servicios en la misma transacción.
func (o *Orchestrator) DeleteCase(ctx context.Context, actor *entity.Actor, id string) (*dto.CaseDeletedResponse, error) {
	var out *dto.CaseDeletedResponse
	err := o.mutate(ctx, "DeleteCase", actor, policy.DeleteCase,
		func(repos repository.Repositories, p *progress, now time.Time) (entity.AuditDetails, error) {
			existing, err := getCase(ctx, repos.Cases, id)
			if err != nil {
				return nil, err
			}
			if err := authorizeTarget(actor, policy.DeleteCase, existing, p); err != nil {
				return nil, err
			}
			p.advance(StageValidated)

			n, err := repos.Services.DeleteByCase(ctx, existing.ID)
			if err != nil {
				return nil, fmt.Errorf("eliminar servicios del caso: %w", err)
			}
			if err := repos.Cases.Delete(ctx, existing.ID); err != nil {
				return nil, fmt.Errorf("eliminar caso: %w", err)
			}
			p.advance(StagePersisted)
			out = &dto.CaseDeletedResponse{ID: existing.ID, DeletedServices: n}
			return entity.CaseDeleted{CaseID: existing.ID, BeneficiaryID: existing.BeneficiaryID, DeletedServices: n}, nil
		})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ListCases listado paginado con alcance.
func (o *Orchestrator) ListCases(ctx context.Context, actor *entity.Actor, req dto.CaseListRequest) (*dto.CaseListResponse, error) {
	start := time.Now()
	f := repository.CaseFilter{
		Search:        strings.TrimSpace(req.Search),
		Status:        strings.ToUpper(strings.TrimSpace(req.Status)),
		Type:          strings.ToUpper(strings.TrimSpace(req.Type)),
		Priority:      strings.ToUpper(strings.TrimSpace(req.Priority)),
		BeneficiaryID: strings.TrimSpace(req.BeneficiaryID),
		Page:          o.page(req.PageRequest),
	}
	var (
		items []*entity.Case
		total int
	)
	scope, err := policy.ListScope(actor, policy.ListCases)
	if err == nil {
		items, total, err = o.repos.Cases.List(ctx, f, scope)
	}
	if err = o.read("ListCases", actor, start, err); err != nil {
		return nil, err
	}
	out := &dto.CaseListResponse{
		Items:      make([]dto.CaseResponse, 0, len(items)),
		Pagination: dto.NewPagination(f.Page.Page, f.Page.Limit, total),
	}
	for _, c := range items {
		out.Items = append(out.Items, *toCaseResponse(c))
	}
	return out, nil
}

func getCase(ctx context.Context, repo repository.CaseRepository, id string) (*entity.Case, error) {
	c, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("cargar caso: %w", err)
	}
	if c == nil {
		return nil, notFound("caso", id)
	}
	return c, nil
}
