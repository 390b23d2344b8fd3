package repository

// Repositories conjunto de repositorios atados a una misma transacción.
type Repositories struct {
	Users         UserRepository
	Beneficiaries BeneficiaryRepository
	Cases         CaseRepository
	Services      ServiceRepository
	AuditLog      AuditLogRepository
}
