package postgres

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationNames_Ordenadas(t *testing.T) {
	names, err := migrationNames()
	require.NoError(t, err)
	require.NotEmpty(t, names)
	assert.Equal(t, "0001_init.sql", names[0])
}

func TestMigracionInicial_IndiceUnicoDeIDNumber(t *testing.T) {
	sql, err := migrationFiles.ReadFile("migrations/0001_init.sql")
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(sql), "ux_beneficiaries_id_number"))
	assert.True(t, strings.Contains(string(sql), "ON DELETE CASCADE"))
}
