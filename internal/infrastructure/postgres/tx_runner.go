package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Casos-api/internal/domain/repository"
)

// NewRepositories construye el conjunto de repositorios sobre un Querier (pool o tx).
func NewRepositories(q Querier) repository.Repositories {
	return repository.Repositories{
		Users:         NewUserRepository(q),
		Beneficiaries: NewBeneficiaryRepository(q),
		Cases:         NewCaseRepository(q),
		Services:      NewServiceRepository(q),
		AuditLog:      NewAuditLogRepository(q),
	}
}

// lockedRepositories igual que NewRepositories pero las lecturas por ID bloquean la fila
// hasta el commit, así dos mutaciones sobre la misma entidad se serializan.
func lockedRepositories(q Querier) repository.Repositories {
	return repository.Repositories{
		Users:         NewUserRepository(q),
		Beneficiaries: &BeneficiaryRepo{q: q, lock: true},
		Cases:         &CaseRepo{q: q, lock: true},
		Services:      &ServiceRepo{q: q, lock: true},
		AuditLog:      NewAuditLogRepository(q),
	}
}

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(repos repository.Repositories) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(lockedRepositories(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
