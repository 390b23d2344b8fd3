package repository

import "time"

// Scope predicado de alcance que el motor de autorización entrega para los listados.
// Se conjuga con el filtro del llamador ANTES de ejecutar la consulta, de modo que los
// totales de paginación ya reflejan el alcance.
type Scope struct {
	Unrestricted bool   // ADMIN / SUPER_ADMIN
	ActorID      string // creador o asignado
}

// Page paginación 1-based.
type Page struct {
	Page  int
	Limit int
}

// Offset desplazamiento para la consulta.
func (p Page) Offset() int {
	if p.Page <= 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

// BeneficiaryFilter filtros de listado. Search busca (sin distinguir mayúsculas) en
// nombre, teléfono, email y número de identificación.
type BeneficiaryFilter struct {
	Search   string
	Category string
	Status   string
	Priority string
	Page
}

// CaseFilter filtros de listado de casos. Search busca en título y descripción.
type CaseFilter struct {
	Search        string
	Status        string
	Type          string
	Priority      string
	BeneficiaryID string
	Page
}

// ServiceFilter filtros de listado de servicios, con rango de fechas inclusivo.
type ServiceFilter struct {
	Search        string
	Type          string
	BeneficiaryID string
	CaseID        string
	DateFrom      *time.Time
	DateTo        *time.Time
	Page
}

// AuditLogFilter filtros del listado de auditoría.
type AuditLogFilter struct {
	Action   string
	UserID   string
	EntityID string
	Page
}
