package validation

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Casos-api/internal/application/dto"
	"github.com/jhoicas/Casos-api/internal/domain"
	"github.com/jhoicas/Casos-api/internal/domain/entity"
	"github.com/jhoicas/Casos-api/internal/infrastructure/memory"
)

func strPtr(s string) *string { return &s }

func fieldNames(t *testing.T, err error) []string {
	t.Helper()
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	out := make([]string, 0, len(verr.Fields))
	for _, f := range verr.Fields {
		out = append(out, f.Field)
	}
	return out
}

// ─── Reglas de campo ─────────────────────────────────────────────────────────

func TestIsValidPhone(t *testing.T) {
	valid := []string{"+573001234567", "+14155552671", "+5491123456789", "+34912345678"}
	invalid := []string{"3001234567", "+0573001234567", "+57300", "+57-300-123-4567", "", "+57300123456789012"}
	for _, p := range valid {
		assert.True(t, IsValidPhone(p), p)
	}
	for _, p := range invalid {
		assert.False(t, IsValidPhone(p), p)
	}
}

func TestFields_NormalizaAntesDeValidar(t *testing.T) {
	e := NewEngine()
	in := &dto.CreateBeneficiaryRequest{
		FirstName: " Ana ",
		LastName:  "Pérez",
		Category:  " elderly ",
		Phone:     "+57 (300) 123-4567",
		IDNumber:  strPtr("   "),
	}
	verr := e.Fields(in)
	assert.NoError(t, verr.OrNil())
	assert.Equal(t, "Ana", in.FirstName)
	assert.Equal(t, entity.CategoryElderly, in.Category)
	assert.Equal(t, "+573001234567", in.Phone)
	assert.Nil(t, in.IDNumber, "idNumber vacío equivale a ausente")
}

func TestFields_FechaDeNacimientoFutura(t *testing.T) {
	e := NewEngine()
	e.now = func() time.Time { return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC) }
	future := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	in := &dto.CreateBeneficiaryRequest{FirstName: "Ana", LastName: "Pérez", Category: "FAMILY", DateOfBirth: &future}
	assert.Equal(t, []string{"dateOfBirth"}, fieldNames(t, e.Fields(in).OrNil()))
}

func TestFields_ActualizacionParcialSoloValidaLoPresente(t *testing.T) {
	e := NewEngine()
	assert.NoError(t, e.Fields(&dto.UpdateBeneficiaryRequest{}).OrNil())

	err := e.Fields(&dto.UpdateBeneficiaryRequest{FirstName: strPtr(""), Gender: strPtr("robot")}).OrNil()
	assert.ElementsMatch(t, []string{"firstName", "gender"}, fieldNames(t, err))
}

func TestFields_MensajesLegibles(t *testing.T) {
	e := NewEngine()
	verr := e.Fields(&dto.CreateCaseRequest{Title: "ab", Type: "X"})
	msgs := map[string]string{}
	for _, f := range verr.Fields {
		msgs[f.Field] = f.Message
	}
	assert.Equal(t, "es obligatorio", msgs["beneficiaryId"])
	assert.Equal(t, "debe tener al menos 3 caracteres", msgs["title"])
	assert.Contains(t, msgs["type"], "MEDICAL")
}

// ─── Reglas entre entidades ──────────────────────────────────────────────────

func seeded(t *testing.T) *memory.Store {
	t.Helper()
	store := memory.New()
	ctx := context.Background()
	repos := store.Repositories()
	require.NoError(t, repos.Users.Create(ctx, &entity.User{ID: "u1", Email: "u1@casos.test", Role: entity.RoleStaff}))
	require.NoError(t, repos.Beneficiaries.Create(ctx, &entity.Beneficiary{
		ID: "b1", FirstName: "Ana", LastName: "Pérez", Category: entity.CategoryFamily,
		Status: entity.BeneficiaryStatusActive, IDNumber: strPtr("A1"), CreatedByID: "u1", AssignedToID: "u1",
	}))
	require.NoError(t, repos.Cases.Create(ctx, &entity.Case{ID: "c1", BeneficiaryID: "b1", CreatedByID: "u1"}))
	return store
}

func TestBeneficiaryCreate_IDNumberDuplicadoEsConflict(t *testing.T) {
	store := seeded(t)
	e := NewEngine()
	in := &dto.CreateBeneficiaryRequest{FirstName: "Luis", LastName: "Gómez", Category: "FAMILY", IDNumber: strPtr("A1")}
	err := e.BeneficiaryCreate(context.Background(), store.Repositories(), in)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.NotErrorIs(t, err, domain.ErrValidation)
}

func TestBeneficiaryCreate_IDNumberCortoEsValido(t *testing.T) {
	store := seeded(t)
	e := NewEngine()
	in := &dto.CreateBeneficiaryRequest{FirstName: "Luis", LastName: "Gómez", Category: "FAMILY", IDNumber: strPtr("B2")}
	assert.NoError(t, e.BeneficiaryCreate(context.Background(), store.Repositories(), in))
}

func TestBeneficiaryCreate_ConflictNoExponeOtroBeneficiario(t *testing.T) {
	store := seeded(t)
	e := NewEngine()
	in := &dto.CreateBeneficiaryRequest{FirstName: "Luis", LastName: "Gómez", Category: "FAMILY", IDNumber: strPtr("A1")}
	err := e.BeneficiaryCreate(context.Background(), store.Repositories(), in)
	require.ErrorIs(t, err, domain.ErrConflict)
	assert.NotContains(t, err.Error(), "b1")

	// El índice del almacén responde con el mismo mensaje.
	dup := &entity.Beneficiary{ID: "b2", FirstName: "Luis", LastName: "Gómez", Category: entity.CategoryFamily, IDNumber: strPtr("A1")}
	repoErr := store.Repositories().Beneficiaries.Create(context.Background(), dup)
	require.ErrorIs(t, repoErr, domain.ErrConflict)
	assert.Equal(t, err.Error(), repoErr.Error())
}

func TestBeneficiaryCreate_ErroresDeCampoAntesQueConflict(t *testing.T) {
	store := seeded(t)
	e := NewEngine()
	in := &dto.CreateBeneficiaryRequest{FirstName: "L", LastName: "Gómez", Category: "FAMILY", IDNumber: strPtr("A1")}
	err := e.BeneficiaryCreate(context.Background(), store.Repositories(), in)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestBeneficiaryCreate_AsignadoInexistente(t *testing.T) {
	store := seeded(t)
	e := NewEngine()
	in := &dto.CreateBeneficiaryRequest{FirstName: "Luis", LastName: "Gómez", Category: "FAMILY", AssignedToID: "ghost"}
	assert.Equal(t, []string{"assignedToId"}, fieldNames(t, e.BeneficiaryCreate(context.Background(), store.Repositories(), in)))
}

func TestBeneficiaryUpdate_ReglasDeEstado(t *testing.T) {
	store := seeded(t)
	e := NewEngine()
	ctx := context.Background()
	existing, err := store.Repositories().Beneficiaries.GetByID(ctx, "b1")
	require.NoError(t, err)

	err = e.BeneficiaryUpdate(ctx, store.Repositories(), &dto.UpdateBeneficiaryRequest{Status: strPtr("archived")}, existing)
	assert.Equal(t, []string{"status"}, fieldNames(t, err))

	existing.Status = entity.BeneficiaryStatusArchived
	err = e.BeneficiaryUpdate(ctx, store.Repositories(), &dto.UpdateBeneficiaryRequest{Status: strPtr("ACTIVE")}, existing)
	assert.Equal(t, []string{"status"}, fieldNames(t, err))

	err = e.BeneficiaryUpdate(ctx, store.Repositories(), &dto.UpdateBeneficiaryRequest{IDNumber: strPtr(strings.Repeat("9", 51))}, existing)
	assert.Equal(t, []string{"idNumber"}, fieldNames(t, err))

	err = e.BeneficiaryUpdate(ctx, store.Repositories(), &dto.UpdateBeneficiaryRequest{AssignedToID: strPtr("")}, existing)
	assert.Equal(t, []string{"assignedToId"}, fieldNames(t, err))
}

func TestServiceCreate_ReferenciasYCosto(t *testing.T) {
	store := seeded(t)
	e := NewEngine()
	neg := decimal.NewFromInt(-5)
	in := &dto.CreateServiceRequest{
		Type:          "food_basket",
		Date:          time.Now(),
		BeneficiaryID: "ghost",
		CaseID:        strPtr("ghost-case"),
		ProvidedByID:  "ghost-user",
		Cost:          &neg,
	}
	err := e.ServiceCreate(context.Background(), store.Repositories(), in)
	assert.ElementsMatch(t, []string{"cost", "beneficiaryId", "caseId", "providedById"}, fieldNames(t, err))
	assert.Equal(t, entity.ServiceTypeFoodBasket, in.Type)
}

func TestServiceCreate_CostoDebeCaberEnLaColumna(t *testing.T) {
	store := seeded(t)
	e := NewEngine()
	for _, raw := range []string{"0.001", "10.555", "1000000000000", "999999999999.999"} {
		cost := decimal.RequireFromString(raw)
		in := &dto.CreateServiceRequest{Type: "CASH_AID", Date: time.Now(), BeneficiaryID: "b1", Cost: &cost}
		assert.Equal(t, []string{"cost"}, fieldNames(t, e.ServiceCreate(context.Background(), store.Repositories(), in)), raw)
	}
	for _, raw := range []string{"0.01", "999999999999.99", "12.500"} {
		cost := decimal.RequireFromString(raw)
		in := &dto.CreateServiceRequest{Type: "CASH_AID", Date: time.Now(), BeneficiaryID: "b1", Cost: &cost}
		assert.NoError(t, e.ServiceCreate(context.Background(), store.Repositories(), in), raw)
	}
}

func TestServiceUpdate_CostoConDemasiadosDecimales(t *testing.T) {
	store := seeded(t)
	e := NewEngine()
	cost := decimal.RequireFromString("99.999")
	err := e.ServiceUpdate(context.Background(), store.Repositories(), &dto.UpdateServiceRequest{Cost: &cost})
	assert.Equal(t, []string{"cost"}, fieldNames(t, err))
}

func TestBeneficiaryUpdate_TelefonoYEmailVaciosSonValidos(t *testing.T) {
	store := seeded(t)
	e := NewEngine()
	ctx := context.Background()
	existing, err := store.Repositories().Beneficiaries.GetByID(ctx, "b1")
	require.NoError(t, err)

	in := &dto.UpdateBeneficiaryRequest{Phone: strPtr(" "), Email: strPtr(""), IDNumber: strPtr("Z9")}
	assert.NoError(t, e.BeneficiaryUpdate(ctx, store.Repositories(), in, existing))

	in = &dto.UpdateBeneficiaryRequest{Phone: strPtr("3001234567"), Email: strPtr("no-es-email")}
	err = e.BeneficiaryUpdate(ctx, store.Repositories(), in, existing)
	assert.ElementsMatch(t, []string{"phone", "email"}, fieldNames(t, err))
}

func TestServiceCreate_Valido(t *testing.T) {
	store := seeded(t)
	e := NewEngine()
	cost := decimal.RequireFromString("25000.50")
	qty := 2
	in := &dto.CreateServiceRequest{
		Type: "CASH_AID", Date: time.Now(), BeneficiaryID: "b1", CaseID: strPtr("c1"), Cost: &cost, Quantity: &qty,
	}
	assert.NoError(t, e.ServiceCreate(context.Background(), store.Repositories(), in))
}

func TestServiceUpdate_CamposObligatoriosNoSePuedenVaciar(t *testing.T) {
	store := seeded(t)
	e := NewEngine()
	zero := time.Time{}
	err := e.ServiceUpdate(context.Background(), store.Repositories(), &dto.UpdateServiceRequest{
		Date:          &zero,
		BeneficiaryID: strPtr(""),
		ProvidedByID:  strPtr(""),
	})
	assert.ElementsMatch(t, []string{"date", "beneficiaryId", "providedById"}, fieldNames(t, err))
}

func TestCaseCreate_Valido(t *testing.T) {
	store := seeded(t)
	e := NewEngine()
	in := &dto.CreateCaseRequest{BeneficiaryID: "b1", Title: "Vivienda", Type: "housing", AssigneeIDs: []string{"u1", "u1"}}
	require.NoError(t, e.CaseCreate(context.Background(), store.Repositories(), in))
	assert.Equal(t, []string{"u1"}, in.AssigneeIDs)
}
