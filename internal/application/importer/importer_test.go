package importer

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/jhoicas/Casos-api/internal/application/casework"
	"github.com/jhoicas/Casos-api/internal/application/validation"
	"github.com/jhoicas/Casos-api/internal/domain"
	"github.com/jhoicas/Casos-api/internal/domain/entity"
	"github.com/jhoicas/Casos-api/internal/domain/repository"
	"github.com/jhoicas/Casos-api/internal/infrastructure/memory"
	"github.com/jhoicas/Casos-api/pkg/logger"
)

const sample = `FirstName,LastName,Category,idNumber,dateOfBirth,tags
María,Gómez,family,CC-100,1980-05-17,madre cabeza;rural
Juan,Pérez,ELDERLY,CC-100,,
,,,,,
Luis,Ruiz,ALIEN,,,
Ana,Díaz,STUDENT,,17/05/2001,
`

func newImporter(t *testing.T) (*Importer, *memory.Store) {
	t.Helper()
	store := memory.New()
	orch := casework.NewOrchestrator(memory.NewTxRunner(store), store.Repositories(), validation.NewEngine(), logger.Nop(), casework.Config{})
	return New(orch), store
}

func TestParse_CabeceraPorNombre(t *testing.T) {
	rows, err := Parse(strings.NewReader(sample), 0)
	require.NoError(t, err)
	require.Len(t, rows, 4, "la fila en blanco se omite")

	first := rows[0]
	assert.Equal(t, 2, first.Line)
	assert.Equal(t, "María", first.Request.FirstName)
	require.NotNil(t, first.Request.IDNumber)
	assert.Equal(t, "CC-100", *first.Request.IDNumber)
	require.NotNil(t, first.Request.DateOfBirth)
	assert.Equal(t, 1980, first.Request.DateOfBirth.Year())
	assert.Equal(t, []string{"madre cabeza", "rural"}, first.Request.Tags)

	assert.Equal(t, 6, rows[3].Line)
	assert.ErrorIs(t, rows[3].Err, domain.ErrValidation)
}

func TestParse_FaltaColumnaObligatoria(t *testing.T) {
	_, err := Parse(strings.NewReader("firstName;lastName\nA;B\n"), ';')
	assert.ErrorContains(t, err, "category")

	_, err = Parse(strings.NewReader(""), 0)
	assert.Error(t, err)
}

func TestReader_Latin1(t *testing.T) {
	raw, err := charmap.ISO8859_1.NewEncoder().Bytes([]byte("firstName,lastName,category\nJosé,Muñoz,OTHER\n"))
	require.NoError(t, err)

	r, err := Reader(bytes.NewReader(raw), "ISO-8859-1")
	require.NoError(t, err)
	rows, err := Parse(r, 0)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "José", rows[0].Request.FirstName)
	assert.Equal(t, "Muñoz", rows[0].Request.LastName)

	_, err = Reader(bytes.NewReader(raw), "ebcdic")
	assert.Error(t, err)
}

func TestRun_ReportePorFila(t *testing.T) {
	im, store := newImporter(t)
	rows, err := Parse(strings.NewReader(sample), 0)
	require.NoError(t, err)

	rep, err := im.Run(context.Background(), &entity.Actor{UserID: "staff1", Role: entity.RoleStaff}, rows)
	require.NoError(t, err)
	assert.Equal(t, 1, rep.Created)
	assert.Equal(t, 3, rep.Failed)
	require.Len(t, rep.Outcomes, 4)

	assert.NotEmpty(t, rep.Outcomes[0].ID)
	assert.ErrorIs(t, rep.Outcomes[1].Err, domain.ErrConflict, "idNumber duplicado")
	assert.ErrorIs(t, rep.Outcomes[2].Err, domain.ErrValidation, "categoría inválida")
	assert.ErrorIs(t, rep.Outcomes[3].Err, domain.ErrValidation, "fecha mal formada")

	entries, total, err := store.Repositories().AuditLog.List(context.Background(), repository.AuditLogFilter{})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, entity.AuditBeneficiaryCreated, entries[0].Action)
}

func TestRun_ActorSinPermisoAborta(t *testing.T) {
	im, _ := newImporter(t)
	rows, err := Parse(strings.NewReader(sample), 0)
	require.NoError(t, err)

	rep, err := im.Run(context.Background(), &entity.Actor{UserID: "v1", Role: entity.RoleVolunteer}, rows)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Equal(t, 0, rep.Created)
	assert.Len(t, rep.Outcomes, 1)
}
