package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Casos-api/internal/domain/entity"
	"github.com/jhoicas/Casos-api/internal/domain/repository"
)

func TestCaseWhere_AlcanceIncluyeAsignados(t *testing.T) {
	w := caseWhere(repository.CaseFilter{BeneficiaryID: "b1"}, repository.Scope{ActorID: "u1"})

	assert.Equal(t,
		" WHERE (c.created_by_id = $1 OR EXISTS (SELECT 1 FROM case_assignees sa WHERE sa.case_id = c.id AND sa.user_id = $1)) AND c.beneficiary_id = $2",
		w.String())
	assert.Equal(t, []any{"u1", "b1"}, w.args)
}

func TestServiceWhere_RangoDeFechasInclusivo(t *testing.T) {
	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)
	w := serviceWhere(repository.ServiceFilter{DateFrom: &from, DateTo: &to}, repository.Scope{Unrestricted: true})

	assert.Equal(t, " WHERE date >= $1 AND date < $2", w.String())
	require.Len(t, w.args, 2)
	assert.Equal(t, time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), w.args[1])
}

func TestBeneficiarySearchText_PlegadoConIdentificacion(t *testing.T) {
	idNumber := "CC-100"
	b := &entity.Beneficiary{FirstName: "María", LastName: "Núñez", Phone: "+57 300", IDNumber: &idNumber}
	assert.Contains(t, beneficiarySearchText(b), "maria")
	assert.Contains(t, beneficiarySearchText(b), "nunez")
	assert.Contains(t, beneficiarySearchText(b), "cc-100")
}

func TestLockedRepositories_BloqueanLecturasPorID(t *testing.T) {
	repos := lockedRepositories(nil)
	assert.True(t, repos.Beneficiaries.(*BeneficiaryRepo).lock)
	assert.True(t, repos.Cases.(*CaseRepo).lock)
	assert.True(t, repos.Services.(*ServiceRepo).lock)
	assert.False(t, NewRepositories(nil).Beneficiaries.(*BeneficiaryRepo).lock)
}
