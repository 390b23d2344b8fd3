package entity

import "time"

// Role rol de un actor del sistema. Los roles forman un conjunto de capacidades,
// no una jerarquía lineal (ver internal/domain/policy).
type Role string

// Roles válidos para User.
const (
	RoleSuperAdmin  Role = "SUPER_ADMIN"
	RoleAdmin       Role = "ADMIN"
	RoleStaff       Role = "STAFF"
	RoleFieldWorker Role = "FIELD_WORKER"
	RoleVolunteer   Role = "VOLUNTEER"
)

// Roles devuelve el conjunto ordenado de roles.
func Roles() []Role {
	return []Role{RoleSuperAdmin, RoleAdmin, RoleStaff, RoleFieldWorker, RoleVolunteer}
}

// Valid indica si el rol pertenece al conjunto conocido.
func (r Role) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleAdmin, RoleStaff, RoleFieldWorker, RoleVolunteer:
		return true
	}
	return false
}

// Estados de User.
const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
)

// User representa un actor del sistema. Se crea por acción administrativa y nunca se elimina.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         Role
	Organization string
	Phone        string
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Actor es la identidad autenticada que ejecuta una operación (extraída del JWT).
// Un Actor nil o con UserID vacío se considera no autenticado.
type Actor struct {
	UserID string
	Role   Role
}

// Authenticated indica si el actor tiene identidad y un rol conocido.
func (a *Actor) Authenticated() bool {
	return a != nil && a.UserID != "" && a.Role.Valid()
}

// Ownership campos de propiedad de una entidad: creador y asignados.
// La autorización con alcance compara al actor contra estos campos.
type Ownership struct {
	CreatedByID string
	AssigneeIDs []string
}

// Involves indica si el usuario es creador o asignado.
func (o Ownership) Involves(userID string) bool {
	if userID == "" {
		return false
	}
	if o.CreatedByID == userID {
		return true
	}
	for _, id := range o.AssigneeIDs {
		if id == userID {
			return true
		}
	}
	return false
}
