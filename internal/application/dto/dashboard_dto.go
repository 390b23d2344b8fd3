package dto

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
// Todos los conteos respetan el alcance del actor (un voluntario solo cuenta lo suyo).
type DashboardSummaryDTO struct {
	// Beneficiarios por estado
	BeneficiariesActive   int `json:"beneficiariesActive"`
	BeneficiariesInactive int `json:"beneficiariesInactive"`
	BeneficiariesArchived int `json:"beneficiariesArchived"`
	BeneficiariesDeceased int `json:"beneficiariesDeceased"`

	// Casos abiertos o en curso, y urgentes entre ellos
	CasesOpen       int `json:"casesOpen"`
	CasesInProgress int `json:"casesInProgress"`
	CasesUrgent     int `json:"casesUrgent"`

	// Servicios entregados en el mes en curso (día 1 – hoy)
	ServicesThisMonth int `json:"servicesThisMonth"`

	DateLabel string `json:"dateLabel"` // ej: "2026-10"
}
