// Package report genera el expediente PDF de un beneficiario: sus datos, casos y servicios.
package report

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Casos-api/internal/domain/entity"
	"github.com/jhoicas/Casos-api/internal/domain/policy"
	"github.com/jhoicas/Casos-api/internal/domain/repository"
)

// CaseFile contenido del expediente. Cases y Services ya vienen filtrados por el alcance del actor.
type CaseFile struct {
	Beneficiary *entity.Beneficiary
	Cases       []*entity.Case
	Services    []*entity.Service
	GeneratedAt time.Time
}

// PDFGenerator puerto de salida: renderiza el expediente.
type PDFGenerator interface {
	GenerateCaseFilePDF(ctx context.Context, file *CaseFile) ([]byte, error)
}

// BeneficiaryLoader carga el beneficiario ya autorizado para la acción.
type BeneficiaryLoader interface {
	LoadBeneficiary(ctx context.Context, actor *entity.Actor, action policy.Action, id string) (*entity.Beneficiary, error)
}

// UseCase arma el expediente y delega el render en el generador.
type UseCase struct {
	loader BeneficiaryLoader
	repos  repository.Repositories
	pdf    PDFGenerator
	now    func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(loader BeneficiaryLoader, repos repository.Repositories, pdf PDFGenerator) *UseCase {
	return &UseCase{loader: loader, repos: repos, pdf: pdf, now: time.Now}
}

// BeneficiaryReportPDF devuelve el PDF y un nombre de archivo sugerido.
func (uc *UseCase) BeneficiaryReportPDF(ctx context.Context, actor *entity.Actor, beneficiaryID string) ([]byte, string, error) {
	b, err := uc.loader.LoadBeneficiary(ctx, actor, policy.ExportBeneficiaryReport, beneficiaryID)
	if err != nil {
		return nil, "", err
	}

	caseScope, err := policy.ListScope(actor, policy.ListCases)
	if err != nil {
		return nil, "", err
	}
	serviceScope, err := policy.ListScope(actor, policy.ListServices)
	if err != nil {
		return nil, "", err
	}
	// Page vacía: sin límite, el expediente lleva todo lo visible.
	cases, _, err := uc.repos.Cases.List(ctx, repository.CaseFilter{BeneficiaryID: b.ID}, caseScope)
	if err != nil {
		return nil, "", fmt.Errorf("report: casos: %w", err)
	}
	services, _, err := uc.repos.Services.List(ctx, repository.ServiceFilter{BeneficiaryID: b.ID}, serviceScope)
	if err != nil {
		return nil, "", fmt.Errorf("report: servicios: %w", err)
	}

	doc, err := uc.pdf.GenerateCaseFilePDF(ctx, &CaseFile{
		Beneficiary: b,
		Cases:       cases,
		Services:    services,
		GeneratedAt: uc.now(),
	})
	if err != nil {
		return nil, "", fmt.Errorf("report: %w", err)
	}
	return doc, fmt.Sprintf("expediente-%s.pdf", b.ID), nil
}
