package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Casos-api/internal/domain"
	"github.com/jhoicas/Casos-api/internal/domain/entity"
	"github.com/jhoicas/Casos-api/internal/domain/repository"
)

// AdminSeed datos del primer SUPER_ADMIN.
type AdminSeed struct {
	Email    string
	Password string
	Name     string
}

// EnsureAdmin crea el SUPER_ADMIN si no existe un usuario con ese email.
// Devuelve created=false cuando ya estaba registrado.
func EnsureAdmin(ctx context.Context, users repository.UserRepository, in AdminSeed) (*entity.User, bool, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || len(in.Password) < 8 {
		return nil, false, errors.Join(domain.ErrValidation, errors.New("email y password (mínimo 8 caracteres) son obligatorios"))
	}
	existing, err := users.FindByEmail(ctx, email)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}
	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, false, err
	}
	now := time.Now().UTC()
	u := &entity.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: hash,
		Name:         strings.TrimSpace(in.Name),
		Role:         entity.RoleSuperAdmin,
		Status:       entity.UserStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := users.Create(ctx, u); err != nil {
		return nil, false, err
	}
	return u, true, nil
}
