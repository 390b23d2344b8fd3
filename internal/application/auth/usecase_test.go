package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Casos-api/internal/application/dto"
	"github.com/jhoicas/Casos-api/internal/domain"
	"github.com/jhoicas/Casos-api/internal/domain/entity"
	"github.com/jhoicas/Casos-api/internal/infrastructure/memory"
	"github.com/jhoicas/Casos-api/pkg/jwt"
)

const secret = "test-secret"

func newUseCase(t *testing.T, status string) *AuthUseCase {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("clave-segura"), bcrypt.MinCost)
	require.NoError(t, err)
	store := memory.New()
	require.NoError(t, store.Repositories().Users.Create(context.Background(), &entity.User{
		ID: "u-1", Email: "Ana@Casos.test", PasswordHash: string(hash), Name: "Ana",
		Role: entity.RoleFieldWorker, Status: status,
	}))
	return NewAuthUseCase(store.Repositories().Users, JWTConfig{Secret: secret, ExpMinutes: 60, Issuer: "casos-api"})
}

func TestLogin_EmiteTokenConRol(t *testing.T) {
	uc := newUseCase(t, entity.UserStatusActive)

	out, err := uc.Login(context.Background(), dto.LoginRequest{Email: " ana@casos.test ", Password: "clave-segura"})
	require.NoError(t, err)
	assert.Equal(t, "u-1", out.User.ID)
	assert.Equal(t, "FIELD_WORKER", out.User.Role)

	userID, role, err := jwt.Parse(secret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", userID)
	assert.Equal(t, "FIELD_WORKER", role)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	uc := newUseCase(t, entity.UserStatusActive)

	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "ana@casos.test", Password: "otra"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(context.Background(), dto.LoginRequest{Email: "nadie@casos.test", Password: "clave-segura"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UsuarioInactivo(t *testing.T) {
	uc := newUseCase(t, entity.UserStatusInactive)

	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "ana@casos.test", Password: "clave-segura"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("x1")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("x1")))
}

func TestEnsureAdmin_EsIdempotente(t *testing.T) {
	store := memory.New()
	users := store.Repositories().Users

	u, created, err := EnsureAdmin(context.Background(), users, AdminSeed{Email: " Root@Casos.test", Password: "clave-larga", Name: "Root"})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, entity.RoleSuperAdmin, u.Role)
	assert.Equal(t, "root@casos.test", u.Email)

	again, created, err := EnsureAdmin(context.Background(), users, AdminSeed{Email: "root@casos.test", Password: "otra-clave", Name: "Root"})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, u.ID, again.ID)

	uc := NewAuthUseCase(users, JWTConfig{Secret: secret, ExpMinutes: 5})
	_, err = uc.Login(context.Background(), dto.LoginRequest{Email: "root@casos.test", Password: "clave-larga"})
	assert.NoError(t, err)
}

func TestEnsureAdmin_PasswordCorto(t *testing.T) {
	_, _, err := EnsureAdmin(context.Background(), memory.New().Repositories().Users, AdminSeed{Email: "a@b.c", Password: "corto"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestMe(t *testing.T) {
	uc := newUseCase(t, entity.UserStatusActive)

	me, err := uc.Me(context.Background(), "u-1")
	require.NoError(t, err)
	assert.Equal(t, "Ana", me.Name)

	_, err = uc.Me(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
