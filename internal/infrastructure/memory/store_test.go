package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Casos-api/internal/domain"
	"github.com/jhoicas/Casos-api/internal/domain/entity"
	"github.com/jhoicas/Casos-api/internal/domain/repository"
)

var t0 = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func strPtr(s string) *string { return &s }

func beneficiary(id, createdBy, assignedTo string, at time.Time) *entity.Beneficiary {
	return &entity.Beneficiary{
		ID: id, FirstName: "Ana", LastName: "Pérez", Category: entity.CategoryFamily,
		Status: entity.BeneficiaryStatusActive, Priority: entity.PriorityMedium,
		CreatedByID: createdBy, AssignedToID: assignedTo, CreatedAt: at, UpdatedAt: at,
	}
}

// ─── Beneficiarios ───────────────────────────────────────────────────────────

func TestBeneficiaryRepo_IDNumberUnico(t *testing.T) {
	ctx := context.Background()
	repos := New().Repositories()

	b1 := beneficiary("b1", "u1", "u1", t0)
	b1.IDNumber = strPtr("A1")
	require.NoError(t, repos.Beneficiaries.Create(ctx, b1))

	b2 := beneficiary("b2", "u2", "u2", t0)
	b2.IDNumber = strPtr("A1")
	err := repos.Beneficiaries.Create(ctx, b2)
	assert.ErrorIs(t, err, domain.ErrConflict)

	// Actualizarse a sí mismo con el mismo número no es conflicto.
	b1.Notes = "nota"
	assert.NoError(t, repos.Beneficiaries.Update(ctx, b1))
}

func TestBeneficiaryRepo_GetByID_Inexistente(t *testing.T) {
	b, err := New().Repositories().Beneficiaries.GetByID(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, b)
}

func TestBeneficiaryRepo_DevuelveCopias(t *testing.T) {
	ctx := context.Background()
	repos := New().Repositories()
	require.NoError(t, repos.Beneficiaries.Create(ctx, beneficiary("b1", "u1", "u1", t0)))

	got, err := repos.Beneficiaries.GetByID(ctx, "b1")
	require.NoError(t, err)
	got.FirstName = "Modificado"

	again, err := repos.Beneficiaries.GetByID(ctx, "b1")
	require.NoError(t, err)
	assert.Equal(t, "Ana", again.FirstName)
}

func TestBeneficiaryRepo_ListConAlcanceYPaginacion(t *testing.T) {
	ctx := context.Background()
	repos := New().Repositories()
	for i, id := range []string{"b1", "b2", "b3"} {
		require.NoError(t, repos.Beneficiaries.Create(ctx, beneficiary(id, "staff1", "v1", t0.Add(time.Duration(i)*time.Minute))))
	}
	require.NoError(t, repos.Beneficiaries.Create(ctx, beneficiary("b4", "staff2", "staff2", t0)))

	items, total, err := repos.Beneficiaries.List(ctx,
		repository.BeneficiaryFilter{Page: repository.Page{Page: 1, Limit: 2}},
		repository.Scope{ActorID: "v1"})
	require.NoError(t, err)
	assert.Equal(t, 3, total, "el total refleja el alcance, no solo la página")
	require.Len(t, items, 2)
	assert.Equal(t, "b3", items[0].ID, "más reciente primero")

	all, total, err := repos.Beneficiaries.List(ctx,
		repository.BeneficiaryFilter{Page: repository.Page{Page: 1, Limit: 10}},
		repository.Scope{Unrestricted: true})
	require.NoError(t, err)
	assert.Equal(t, 4, total)
	assert.Len(t, all, 4)

	none, total, err := repos.Beneficiaries.List(ctx, repository.BeneficiaryFilter{}, repository.Scope{})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, none)
}

func TestBeneficiaryRepo_BusquedaSinTildes(t *testing.T) {
	ctx := context.Background()
	repos := New().Repositories()
	b := beneficiary("b1", "u1", "u1", t0)
	b.Phone = "+573001234567"
	require.NoError(t, repos.Beneficiaries.Create(ctx, b))

	for _, q := range []string{"perez", "PÉREZ", "ana p", "300123"} {
		n, err := repos.Beneficiaries.Count(ctx, repository.BeneficiaryFilter{Search: q}, repository.Scope{Unrestricted: true})
		require.NoError(t, err)
		assert.Equal(t, 1, n, q)
	}
	n, err := repos.Beneficiaries.Count(ctx, repository.BeneficiaryFilter{Search: "gomez"}, repository.Scope{Unrestricted: true})
	require.NoError(t, err)
	assert.Zero(t, n)
}

// ─── Casos y servicios ───────────────────────────────────────────────────────

func TestServiceRepo_BusquedaSobreSusPropiosCampos(t *testing.T) {
	ctx := context.Background()
	repos := New().Repositories()
	require.NoError(t, repos.Beneficiaries.Create(ctx, beneficiary("b1", "u1", "u1", t0)))
	require.NoError(t, repos.Services.Create(ctx, &entity.Service{
		ID: "s1", BeneficiaryID: "b1", Date: t0,
		Description: "Mercado básico", Location: "Bogotá", Notes: "entrega en sede",
	}))

	all := repository.Scope{Unrestricted: true}
	for _, q := range []string{"mercado basico", "BOGOTA", "sede"} {
		n, err := repos.Services.Count(ctx, repository.ServiceFilter{Search: q}, all)
		require.NoError(t, err)
		assert.Equal(t, 1, n, q)
	}
	// Los datos del beneficiario se filtran con beneficiaryId, no con la búsqueda libre.
	n, err := repos.Services.Count(ctx, repository.ServiceFilter{Search: "perez"}, all)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestCaseRepo_DeleteArrastraServicios(t *testing.T) {
	ctx := context.Background()
	repos := New().Repositories()
	require.NoError(t, repos.Beneficiaries.Create(ctx, beneficiary("b1", "u1", "u1", t0)))
	require.NoError(t, repos.Cases.Create(ctx, &entity.Case{ID: "c1", BeneficiaryID: "b1", CreatedByID: "u1"}))
	require.NoError(t, repos.Services.Create(ctx, &entity.Service{ID: "s1", BeneficiaryID: "b1", CaseID: strPtr("c1"), Date: t0}))
	require.NoError(t, repos.Services.Create(ctx, &entity.Service{ID: "s2", BeneficiaryID: "b1", Date: t0}))

	require.NoError(t, repos.Cases.Delete(ctx, "c1"))

	s1, err := repos.Services.GetByID(ctx, "s1")
	require.NoError(t, err)
	assert.Nil(t, s1)
	s2, err := repos.Services.GetByID(ctx, "s2")
	require.NoError(t, err)
	assert.NotNil(t, s2, "un servicio sin caso no se toca")

	assert.ErrorIs(t, repos.Cases.Delete(ctx, "c1"), domain.ErrNotFound)
}

func TestServiceRepo_RangoDeFechasInclusivo(t *testing.T) {
	ctx := context.Background()
	repos := New().Repositories()
	require.NoError(t, repos.Beneficiaries.Create(ctx, beneficiary("b1", "u1", "u1", t0)))
	days := []time.Time{
		time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 5, 18, 30, 0, 0, time.UTC),
		time.Date(2026, 3, 6, 0, 0, 0, 0, time.UTC),
	}
	for i, d := range days {
		require.NoError(t, repos.Services.Create(ctx, &entity.Service{ID: string(rune('a' + i)), BeneficiaryID: "b1", Date: d, CreatedByID: "u1"}))
	}
	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)
	n, err := repos.Services.Count(ctx, repository.ServiceFilter{DateFrom: &from, DateTo: &to}, repository.Scope{ActorID: "u1"})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

// ─── Transacciones ───────────────────────────────────────────────────────────

func TestTxRunner_RollbackAnteError(t *testing.T) {
	ctx := context.Background()
	store := New()
	tx := NewTxRunner(store)
	boom := errors.New("boom")

	err := tx.Run(ctx, func(repos repository.Repositories) error {
		if err := repos.Beneficiaries.Create(ctx, beneficiary("b1", "u1", "u1", t0)); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	b, err := store.Repositories().Beneficiaries.GetByID(ctx, "b1")
	require.NoError(t, err)
	assert.Nil(t, b, "la escritura se revierte")
}

func TestTxRunner_Commit(t *testing.T) {
	ctx := context.Background()
	store := New()
	err := NewTxRunner(store).Run(ctx, func(repos repository.Repositories) error {
		if err := repos.Beneficiaries.Create(ctx, beneficiary("b1", "u1", "u1", t0)); err != nil {
			return err
		}
		return repos.AuditLog.Append(ctx, entity.NewAuditLogEntry("a1", "u1", entity.BeneficiaryCreated{BeneficiaryID: "b1"}, t0))
	})
	require.NoError(t, err)

	entries, total, err := store.Repositories().AuditLog.List(ctx, repository.AuditLogFilter{EntityID: "b1"})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, entity.AuditBeneficiaryCreated, entries[0].Action)
}

func TestTxRunner_ContextoCancelado(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	called := false
	err := NewTxRunner(New()).Run(ctx, func(repository.Repositories) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}
