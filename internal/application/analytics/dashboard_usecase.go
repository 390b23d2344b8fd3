// Package analytics contiene el resumen del panel: conteos con alcance sobre
// beneficiarios, casos y servicios.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Casos-api/internal/application/dto"
	"github.com/jhoicas/Casos-api/internal/domain/entity"
	"github.com/jhoicas/Casos-api/internal/domain/policy"
	"github.com/jhoicas/Casos-api/internal/domain/repository"
)

// DashboardUseCase genera el resumen del panel para el actor.
//
// Fuente de datos: los Count de cada repositorio (consultas read-only) con el alcance
// que entrega la política, así un voluntario solo cuenta lo suyo.
type DashboardUseCase struct {
	repos repository.Repositories
	now   func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(repos repository.Repositories) *DashboardUseCase {
	return &DashboardUseCase{repos: repos, now: time.Now}
}

type countResult struct {
	dst *int
	n   int
	err error
}

// GetSummary construye el DashboardSummaryDTO. Los conteos corren en paralelo.
func (uc *DashboardUseCase) GetSummary(ctx context.Context, actor *entity.Actor) (*dto.DashboardSummaryDTO, error) {
	scope, err := policy.ListScope(actor, policy.ReadDashboard)
	if err != nil {
		return nil, err
	}

	now := uc.now().UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	out := &dto.DashboardSummaryDTO{DateLabel: now.Format("2006-01")}
	var urgentOpen, urgentInProgress int

	benef := func(dst *int, status string) func() countResult {
		return func() countResult {
			n, err := uc.repos.Beneficiaries.Count(ctx, repository.BeneficiaryFilter{Status: status}, scope)
			return countResult{dst, n, err}
		}
	}
	cases := func(dst *int, f repository.CaseFilter) func() countResult {
		return func() countResult {
			n, err := uc.repos.Cases.Count(ctx, f, scope)
			return countResult{dst, n, err}
		}
	}
	jobs := []func() countResult{
		benef(&out.BeneficiariesActive, entity.BeneficiaryStatusActive),
		benef(&out.BeneficiariesInactive, entity.BeneficiaryStatusInactive),
		benef(&out.BeneficiariesArchived, entity.BeneficiaryStatusArchived),
		benef(&out.BeneficiariesDeceased, entity.BeneficiaryStatusDeceased),
		cases(&out.CasesOpen, repository.CaseFilter{Status: entity.CaseStatusOpen}),
		cases(&out.CasesInProgress, repository.CaseFilter{Status: entity.CaseStatusInProgress}),
		cases(&urgentOpen, repository.CaseFilter{Status: entity.CaseStatusOpen, Priority: entity.PriorityUrgent}),
		cases(&urgentInProgress, repository.CaseFilter{Status: entity.CaseStatusInProgress, Priority: entity.PriorityUrgent}),
		func() countResult {
			n, err := uc.repos.Services.Count(ctx, repository.ServiceFilter{DateFrom: &monthStart, DateTo: &today}, scope)
			return countResult{&out.ServicesThisMonth, n, err}
		},
	}

	ch := make(chan countResult, len(jobs))
	for _, job := range jobs {
		go func() { ch <- job() }()
	}
	var firstErr error
	for range jobs {
		r := <-ch
		if r.err != nil {
			if firstErr == nil {
				firstErr = r.err
			}
			continue
		}
		*r.dst = r.n
	}
	if firstErr != nil {
		return nil, fmt.Errorf("dashboard: conteos: %w", firstErr)
	}
	out.CasesUrgent = urgentOpen + urgentInProgress
	return out, nil
}
