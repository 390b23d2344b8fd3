// Package policy es el motor de autorización: una tabla declarativa Rol × Acción → Regla.
// No conoce HTTP ni persistencia; decide ALLOW/DENY para una entidad ya cargada y entrega
// el predicado de alcance para los listados.
package policy

import (
	"fmt"

	"github.com/jhoicas/Casos-api/internal/domain"
	"github.com/jhoicas/Casos-api/internal/domain/entity"
	"github.com/jhoicas/Casos-api/internal/domain/repository"
)

// Action operación sujeta a autorización.
type Action string

const (
	CreateBeneficiary  Action = "CreateBeneficiary"
	ReadBeneficiary    Action = "ReadBeneficiary"
	UpdateBeneficiary  Action = "UpdateBeneficiary"
	ArchiveBeneficiary Action = "ArchiveBeneficiary"
	ListBeneficiaries  Action = "ListBeneficiaries"

	CreateCase Action = "CreateCase"
	ReadCase   Action = "ReadCase"
	UpdateCase Action = "UpdateCase"
	DeleteCase Action = "DeleteCase"
	ListCases  Action = "ListCases"

	CreateService Action = "CreateService"
	ReadService   Action = "ReadService"
	UpdateService Action = "UpdateService"
	DeleteService Action = "DeleteService"
	ListServices  Action = "ListServices"

	ListAuditLog            Action = "ListAuditLog"
	ReadDashboard           Action = "ReadDashboard"
	ExportBeneficiaryReport Action = "ExportBeneficiaryReport"
)

// Actions todas las acciones conocidas (para pruebas exhaustivas de la tabla).
func Actions() []Action {
	return []Action{
		CreateBeneficiary, ReadBeneficiary, UpdateBeneficiary, ArchiveBeneficiary, ListBeneficiaries,
		CreateCase, ReadCase, UpdateCase, DeleteCase, ListCases,
		CreateService, ReadService, UpdateService, DeleteService, ListServices,
		ListAuditLog, ReadDashboard, ExportBeneficiaryReport,
	}
}

// Rule regla de la tabla.
type Rule int

const (
	Deny Rule = iota
	Allow
	// AllowIfOwner permite solo si el actor es creador o asignado de la entidad;
	// en listados se traduce en un Scope restringido al actor.
	AllowIfOwner
)

// DenyReason motivo de una denegación.
type DenyReason string

const (
	ReasonNone              DenyReason = ""
	ReasonUnauthenticated   DenyReason = "unauthenticated"
	ReasonMissingCapability DenyReason = "role lacks capability"
	ReasonOutOfScope        DenyReason = "target out of scope"
)

// Decision resultado de la autorización.
type Decision struct {
	Allowed bool
	Reason  DenyReason
}

// Err traduce la decisión a error de dominio. Tanto la falta de capacidad como el objetivo
// fuera de alcance se reportan como Forbidden.
func (d Decision) Err() error {
	switch {
	case d.Allowed:
		return nil
	case d.Reason == ReasonUnauthenticated:
		return domain.ErrUnauthorized
	default:
		return fmt.Errorf("%w: %s", domain.ErrForbidden, d.Reason)
	}
}

func allow() Decision                      { return Decision{Allowed: true} }
func deny(r DenyReason) Decision           { return Decision{Reason: r} }
func ruleFor(r entity.Role, a Action) Rule { return table[r][a] }

// Owned entidad con campos de propiedad (Beneficiary, Case, Service).
type Owned interface {
	Ownership() entity.Ownership
}

var (
	unrestricted = map[Action]Rule{}
	creator      = map[Action]Rule{
		CreateBeneficiary: Allow, ReadBeneficiary: AllowIfOwner, UpdateBeneficiary: AllowIfOwner, ListBeneficiaries: AllowIfOwner,
		CreateCase: Allow, ReadCase: AllowIfOwner, UpdateCase: AllowIfOwner, ListCases: AllowIfOwner,
		CreateService: Allow, ReadService: AllowIfOwner, UpdateService: AllowIfOwner, ListServices: AllowIfOwner,
		ReadDashboard: AllowIfOwner, ExportBeneficiaryReport: AllowIfOwner,
	}
	readOnly = map[Action]Rule{
		ReadBeneficiary: AllowIfOwner, ListBeneficiaries: AllowIfOwner,
		ReadCase: AllowIfOwner, ListCases: AllowIfOwner,
		ReadService: AllowIfOwner, ListServices: AllowIfOwner,
		ReadDashboard: AllowIfOwner, ExportBeneficiaryReport: AllowIfOwner,
	}
)

func init() {
	for _, a := range Actions() {
		unrestricted[a] = Allow
	}
}

// table política completa. Acciones ausentes equivalen a Deny (archivar y eliminar
// requieren ADMIN o superior).
var table = map[entity.Role]map[Action]Rule{
	entity.RoleSuperAdmin:  unrestricted,
	entity.RoleAdmin:       unrestricted,
	entity.RoleStaff:       creator,
	entity.RoleFieldWorker: creator,
	entity.RoleVolunteer:   readOnly,
}

// Can decide a nivel de rol, sin entidad: un rol sin ninguna capacidad para la acción es
// Forbidden sin necesidad de consultar el almacén.
func Can(actor *entity.Actor, action Action) Decision {
	if !actor.Authenticated() {
		return deny(ReasonUnauthenticated)
	}
	if ruleFor(actor.Role, action) == Deny {
		return deny(ReasonMissingCapability)
	}
	return allow()
}

// Authorize decide sobre una entidad concreta. target es nil para acciones Create.
func Authorize(actor *entity.Actor, action Action, target Owned) Decision {
	if d := Can(actor, action); !d.Allowed {
		return d
	}
	if ruleFor(actor.Role, action) == Allow {
		return allow()
	}
	if target == nil || !target.Ownership().Involves(actor.UserID) {
		return deny(ReasonOutOfScope)
	}
	return allow()
}

// ListScope devuelve el predicado a conjugar con el filtro del listado.
func ListScope(actor *entity.Actor, action Action) (repository.Scope, error) {
	if d := Can(actor, action); !d.Allowed {
		return repository.Scope{}, d.Err()
	}
	if ruleFor(actor.Role, action) == Allow {
		return repository.Scope{Unrestricted: true}, nil
	}
	return repository.Scope{ActorID: actor.UserID}, nil
}
