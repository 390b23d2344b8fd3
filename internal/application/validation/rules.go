package validation

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Casos-api/internal/application/dto"
	"github.com/jhoicas/Casos-api/internal/domain"
	"github.com/jhoicas/Casos-api/internal/domain/entity"
	"github.com/jhoicas/Casos-api/internal/domain/repository"
)

// Las reglas entre entidades se ejecutan solo si el campo viene en la propuesta y pasó
// las restricciones de campo. Un error de almacenamiento se devuelve tal cual (interno);
// las referencias inexistentes se acumulan como ValidationError y la unicidad de
// idNumber se reporta como domain.ErrConflict.

// BeneficiaryCreate valida el alta de un beneficiario.
func (e *Engine) BeneficiaryCreate(ctx context.Context, repos repository.Repositories, in *dto.CreateBeneficiaryRequest) error {
	verr := e.Fields(in)
	if in.AssignedToID != "" && !has(verr, "assignedToId") {
		if err := userMustExist(ctx, repos.Users, "assignedToId", in.AssignedToID, verr); err != nil {
			return err
		}
	}
	if err := verr.OrNil(); err != nil {
		return err
	}
	if in.IDNumber != nil {
		return idNumberMustBeFree(ctx, repos.Beneficiaries, *in.IDNumber, "")
	}
	return nil
}

// BeneficiaryUpdate valida una actualización parcial contra el estado actual.
// Archivar solo es posible con la acción de archivo y ARCHIVED/DECEASED no se revierten
// con una actualización genérica.
func (e *Engine) BeneficiaryUpdate(ctx context.Context, repos repository.Repositories, in *dto.UpdateBeneficiaryRequest, existing *entity.Beneficiary) error {
	verr := e.Fields(in)
	if in.Status != nil && !has(verr, "status") && *in.Status != existing.Status {
		switch {
		case *in.Status == entity.BeneficiaryStatusArchived:
			verr.Add("status", "para archivar use la acción de archivo")
		case existing.Status == entity.BeneficiaryStatusArchived || existing.Status == entity.BeneficiaryStatusDeceased:
			verr.Add("status", fmt.Sprintf("el estado %s no se puede revertir", existing.Status))
		}
	}
	if in.Phone != nil && *in.Phone != "" && !IsValidPhone(*in.Phone) {
		verr.Add("phone", "formato de teléfono inválido (+<código de país><9 o 10 dígitos>)")
	}
	if in.Email != nil && *in.Email != "" && !has(verr, "email") && e.v.Var(*in.Email, "email") != nil {
		verr.Add("email", "formato de email inválido")
	}
	if in.AssignedToID != nil && !has(verr, "assignedToId") {
		if *in.AssignedToID == "" {
			verr.Add("assignedToId", "no puede estar vacío")
		} else if *in.AssignedToID != existing.AssignedToID {
			if err := userMustExist(ctx, repos.Users, "assignedToId", *in.AssignedToID, verr); err != nil {
				return err
			}
		}
	}
	if err := verr.OrNil(); err != nil {
		return err
	}
	if in.IDNumber != nil && *in.IDNumber != "" {
		return idNumberMustBeFree(ctx, repos.Beneficiaries, *in.IDNumber, existing.ID)
	}
	return nil
}

// CaseCreate valida la apertura de un caso: el beneficiario debe existir.
func (e *Engine) CaseCreate(ctx context.Context, repos repository.Repositories, in *dto.CreateCaseRequest) error {
	verr := e.Fields(in)
	if !has(verr, "beneficiaryId") {
		if err := beneficiaryMustExist(ctx, repos.Beneficiaries, in.BeneficiaryID, verr); err != nil {
			return err
		}
	}
	if !has(verr, "assigneeIds") {
		if err := usersMustExist(ctx, repos.Users, "assigneeIds", in.AssigneeIDs, verr); err != nil {
			return err
		}
	}
	return verr.OrNil()
}

// CaseUpdate valida una actualización parcial; el beneficiario del caso es inmutable.
func (e *Engine) CaseUpdate(ctx context.Context, repos repository.Repositories, in *dto.UpdateCaseRequest, existing *entity.Case) error {
	verr := e.Fields(in)
	if in.BeneficiaryID != nil && *in.BeneficiaryID != existing.BeneficiaryID {
		verr.Add("beneficiaryId", "el beneficiario de un caso no se puede cambiar")
	}
	if in.AssigneeIDs != nil && !has(verr, "assigneeIds") {
		if err := usersMustExist(ctx, repos.Users, "assigneeIds", in.AssigneeIDs, verr); err != nil {
			return err
		}
	}
	return verr.OrNil()
}

// ServiceCreate valida el registro de un servicio. Solo verifica que beneficiario y caso
// existan por separado, no que el caso pertenezca a ese beneficiario.
func (e *Engine) ServiceCreate(ctx context.Context, repos repository.Repositories, in *dto.CreateServiceRequest) error {
	verr := e.Fields(in)
	costRule(in.Cost, verr)
	if !has(verr, "beneficiaryId") {
		if err := beneficiaryMustExist(ctx, repos.Beneficiaries, in.BeneficiaryID, verr); err != nil {
			return err
		}
	}
	if in.CaseID != nil && !has(verr, "caseId") {
		if err := caseMustExist(ctx, repos.Cases, *in.CaseID, verr); err != nil {
			return err
		}
	}
	if in.ProvidedByID != "" && !has(verr, "providedById") {
		if err := userMustExist(ctx, repos.Users, "providedById", in.ProvidedByID, verr); err != nil {
			return err
		}
	}
	return verr.OrNil()
}

// ServiceUpdate valida una actualización parcial de un servicio.
func (e *Engine) ServiceUpdate(ctx context.Context, repos repository.Repositories, in *dto.UpdateServiceRequest) error {
	verr := e.Fields(in)
	costRule(in.Cost, verr)
	if in.Date != nil && in.Date.IsZero() {
		verr.Add("date", "es obligatorio")
	}
	if in.BeneficiaryID != nil && !has(verr, "beneficiaryId") {
		if *in.BeneficiaryID == "" {
			verr.Add("beneficiaryId", "es obligatorio")
		} else if err := beneficiaryMustExist(ctx, repos.Beneficiaries, *in.BeneficiaryID, verr); err != nil {
			return err
		}
	}
	if in.CaseID != nil && *in.CaseID != "" && !has(verr, "caseId") {
		if err := caseMustExist(ctx, repos.Cases, *in.CaseID, verr); err != nil {
			return err
		}
	}
	if in.ProvidedByID != nil && !has(verr, "providedById") {
		if *in.ProvidedByID == "" {
			verr.Add("providedById", "es obligatorio")
		} else if err := userMustExist(ctx, repos.Users, "providedById", *in.ProvidedByID, verr); err != nil {
			return err
		}
	}
	return verr.OrNil()
}

// costRule exige un costo positivo que quepa en NUMERIC(14, 2): como máximo dos
// decimales y doce dígitos enteros.
func costRule(cost *decimal.Decimal, verr *domain.ValidationError) {
	switch {
	case cost == nil:
	case !cost.IsPositive():
		verr.Add("cost", "debe ser mayor que 0")
	case !cost.Equal(cost.Truncate(2)):
		verr.Add("cost", "debe tener como máximo 2 decimales")
	case cost.GreaterThanOrEqual(maxCost):
		verr.Add("cost", "debe tener como máximo 12 dígitos enteros")
	}
}

var maxCost = decimal.New(1, 12)

func beneficiaryMustExist(ctx context.Context, repo repository.BeneficiaryRepository, id string, verr *domain.ValidationError) error {
	b, err := repo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("validar beneficiario: %w", err)
	}
	if b == nil {
		verr.Add("beneficiaryId", "el beneficiario no existe")
	}
	return nil
}

func caseMustExist(ctx context.Context, repo repository.CaseRepository, id string, verr *domain.ValidationError) error {
	c, err := repo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("validar caso: %w", err)
	}
	if c == nil {
		verr.Add("caseId", "el caso no existe")
	}
	return nil
}

func userMustExist(ctx context.Context, repo repository.UserRepository, field, id string, verr *domain.ValidationError) error {
	u, err := repo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("validar usuario: %w", err)
	}
	if u == nil {
		verr.Add(field, "el usuario no existe")
	}
	return nil
}

func usersMustExist(ctx context.Context, repo repository.UserRepository, field string, ids []string, verr *domain.ValidationError) error {
	for i, id := range ids {
		if err := userMustExist(ctx, repo, fmt.Sprintf("%s[%d]", field, i), id, verr); err != nil {
			return err
		}
	}
	return nil
}

// idNumberMustBeFree comprueba la unicidad contra los demás beneficiarios. Es una
// verificación temprana: la garantía bajo concurrencia la da el índice único del almacén.
func idNumberMustBeFree(ctx context.Context, repo repository.BeneficiaryRepository, idNumber, selfID string) error {
	other, err := repo.GetByIDNumber(ctx, idNumber)
	if err != nil {
		return fmt.Errorf("validar idNumber: %w", err)
	}
	if other != nil && other.ID != selfID {
		return fmt.Errorf("%w: idNumber ya registrado", domain.ErrConflict)
	}
	return nil
}
