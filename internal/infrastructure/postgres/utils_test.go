package postgres

import (
	"context"
	"errors"
	"fmt"
	"net"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Casos-api/internal/domain/repository"
	"github.com/jhoicas/Casos-api/pkg/config"
)

func TestWhere_FiltrosOpcionalesYAlcance(t *testing.T) {
	var w where
	w.eq("category", "FAMILY")
	w.eq("status", "")
	w.search("search_text", "  José_1 ")
	w.scope(repository.Scope{ActorID: "u1"}, func(ph string) string {
		return "(created_by_id = " + ph + " OR assigned_to_id = " + ph + ")"
	})
	limit := w.limit(repository.Page{Page: 3, Limit: 10})

	assert.Equal(t, ` WHERE category = $1 AND search_text LIKE $2 ESCAPE '\' AND (created_by_id = $3 OR assigned_to_id = $3)`, w.String())
	assert.Equal(t, " LIMIT $4 OFFSET $5", limit)
	assert.Equal(t, []any{"FAMILY", `%jose\_1%`, "u1", 10, 20}, w.args)
}

func TestWhere_AlcanceVacioNoDevuelveNada(t *testing.T) {
	var w where
	w.scope(repository.Scope{}, func(string) string { return "x" })
	assert.Equal(t, " WHERE FALSE", w.String())

	var all where
	all.scope(repository.Scope{Unrestricted: true}, func(string) string { return "x" })
	assert.Equal(t, "", all.String())
	assert.Equal(t, "", all.limit(repository.Page{}))
}

func TestIsUniqueViolation(t *testing.T) {
	err := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})
	assert.True(t, isUniqueViolation(err))
	assert.False(t, isForeignKeyViolation(err))
	assert.True(t, isForeignKeyViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isUniqueViolation(errors.New("timeout")))
	assert.False(t, isUniqueViolation(nil))
}

type fakeResolver struct {
	ips []net.IP
	err error
}

func (f fakeResolver) LookupIP(context.Context, string, string) ([]net.IP, error) {
	return f.ips, f.err
}

func TestLookupIPv4(t *testing.T) {
	ctx := context.Background()

	ip, err := lookupIPv4(ctx, fakeResolver{}, "10.0.0.7")
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.7", ip)

	_, err = lookupIPv4(ctx, fakeResolver{}, "::1")
	assert.Error(t, err)

	ip, err = lookupIPv4(ctx, fakeResolver{ips: []net.IP{net.ParseIP("2001:db8::1"), net.ParseIP("192.0.2.4")}}, "db")
	require.NoError(t, err)
	assert.Equal(t, "192.0.2.4", ip)

	_, err = lookupIPv4(ctx, fakeResolver{ips: []net.IP{net.ParseIP("2001:db8::1")}}, "db")
	assert.Error(t, err)
}

func TestPoolConfigFor(t *testing.T) {
	pc, err := poolConfigFor(config.DBConfig{DatabaseURL: "postgres://u:p@db:5432/casos?sslmode=disable", MaxConns: 1, ForceIPv4: true})
	require.NoError(t, err)
	assert.EqualValues(t, 1, pc.MaxConns)
	assert.EqualValues(t, 1, pc.MinConns)
	assert.NotNil(t, pc.ConnConfig.DialFunc)
	assert.Equal(t, "db", pc.ConnConfig.Host)

	pc, err = poolConfigFor(config.DBConfig{Host: "localhost", Port: 5432, User: "u", DBName: "casos", SSLMode: "disable"})
	require.NoError(t, err)
	assert.EqualValues(t, defaultMaxConns, pc.MaxConns)
}
