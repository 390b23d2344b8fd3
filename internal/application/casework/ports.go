package casework

import (
	"context"
	"time"

	"github.com/jhoicas/Casos-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción del almacén, pasando repositorios atados a
// esa transacción. Si fn devuelve error se hace rollback; si no, commit. Persistencia y
// auditoría viajan siempre en la misma llamada a Run.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos repository.Repositories) error) error
}

// Metrics recibe el resultado de cada operación (implementado con Prometheus).
type Metrics interface {
	ObserveOperation(operation, outcome string, elapsed time.Duration)
}

type nopMetrics struct{}

func (nopMetrics) ObserveOperation(string, string, time.Duration) {}
