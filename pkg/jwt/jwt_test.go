package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateParse_IdaYVuelta(t *testing.T) {
	token, err := Generate("s3cr3t", "u-1", "STAFF", "casos-api", 5)
	require.NoError(t, err)

	userID, role, err := Parse("s3cr3t", token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", userID)
	assert.Equal(t, "STAFF", role)
}

func TestParse_FirmaIncorrecta(t *testing.T) {
	token, err := Generate("s3cr3t", "u-1", "ADMIN", "casos-api", 5)
	require.NoError(t, err)

	_, _, err = Parse("otro", token)
	assert.Error(t, err)
}

func TestParse_TokenExpirado(t *testing.T) {
	token, err := generateAt("s3cr3t", "u-1", "ADMIN", "casos-api", 1, time.Now().Add(-time.Hour))
	require.NoError(t, err)

	_, _, err = Parse("s3cr3t", token)
	assert.Error(t, err)
}

func TestSecretVacio(t *testing.T) {
	_, err := Generate("", "u-1", "ADMIN", "casos-api", 5)
	assert.Error(t, err)
	_, _, err = Parse("", "x.y.z")
	assert.Error(t, err)
}
