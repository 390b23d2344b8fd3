package main

import (
	"context"
	"fmt"

	"github.com/jhoicas/Casos-api/internal/application/casework"
	"github.com/jhoicas/Casos-api/internal/domain/repository"
	"github.com/jhoicas/Casos-api/internal/infrastructure/memory"
	"github.com/jhoicas/Casos-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Casos-api/pkg/config"
	"github.com/jhoicas/Casos-api/pkg/logger"
)

// store repositorios de lectura más el ejecutor de transacciones del driver elegido.
type store struct {
	tx    casework.TxRunner
	repos repository.Repositories
	ready func(ctx context.Context) error
	close func()
}

func openStore(ctx context.Context, cfg *config.Config, log *logger.Logger) (*store, error) {
	switch cfg.App.StoreDriver {
	case "memory":
		s := memory.New()
		return &store{tx: memory.NewTxRunner(s), repos: s.Repositories(), close: func() {}}, nil
	case "postgres":
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		if err := postgres.Migrate(ctx, pool, log); err != nil {
			pool.Close()
			return nil, fmt.Errorf("migraciones: %w", err)
		}
		return &store{
			tx:    postgres.NewTxRunner(pool),
			repos: postgres.NewRepositories(pool),
			ready: postgres.Ready(pool),
			close: pool.Close,
		}, nil
	default:
		return nil, fmt.Errorf("STORE_DRIVER desconocido: %q", cfg.App.StoreDriver)
	}
}
