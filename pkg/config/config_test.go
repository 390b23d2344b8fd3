package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "casos-api", cfg.App.Name)
	assert.Equal(t, "postgres", cfg.App.StoreDriver)
	assert.Equal(t, 20, cfg.Pagination.DefaultLimit)
	assert.Equal(t, 100, cfg.Pagination.MaxLimit)
	assert.Equal(t, 60, cfg.JWT.Expiration)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
}

func TestLoad_VariablesDeEntorno(t *testing.T) {
	t.Setenv("APP_ENV", "staging")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("PAGINATION_MAX_LIMIT", "50")
	t.Setenv("STORE_DRIVER", "MEMORY")
	t.Setenv("DB_PORT", "no-es-numero")
	t.Setenv("DB_FORCE_IPV4", "true")
	t.Setenv("ADMIN_EMAIL", "root@casos.test")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, 50, cfg.Pagination.MaxLimit)
	assert.Equal(t, "memory", cfg.App.StoreDriver)
	assert.Equal(t, 5432, cfg.DB.Port, "un entero inválido conserva el valor por defecto")
	assert.True(t, cfg.DB.ForceIPv4)
	assert.Equal(t, "root@casos.test", cfg.Admin.Email)
	assert.Equal(t, "Administrador", cfg.Admin.Name)
}

func TestLoad_ProduccionExigeSecreto(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")
	_, err := Load()
	assert.ErrorContains(t, err, "JWT_SECRET")
}

func TestDBConfig_DSNEscapaPassword(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "casos", Password: "p@ss:w/rd", DBName: "casos", SSLMode: "disable"}
	assert.Equal(t, "postgres://casos:p%40ss%3Aw%2Frd@db:5432/casos?sslmode=disable", c.DSN())

	c.DatabaseURL = "postgres://otro"
	assert.Equal(t, "postgres://otro", c.ConnectionString())
}
