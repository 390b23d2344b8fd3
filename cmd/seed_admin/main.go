// seed_admin crea el primer usuario SUPER_ADMIN en PostgreSQL. Los usuarios no se registran
// por la API; a partir de este se gestionan los demás.
//
// Uso: go run ./cmd/seed_admin -email admin@org.test -password 'secreto-largo' [-name "Nombre"]
// Sin flags toma ADMIN_EMAIL, ADMIN_PASSWORD y ADMIN_NAME de la configuración.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/jhoicas/Casos-api/internal/application/auth"
	"github.com/jhoicas/Casos-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Casos-api/pkg/config"
	"github.com/jhoicas/Casos-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}

	email := flag.String("email", cfg.Admin.Email, "email del administrador")
	password := flag.String("password", cfg.Admin.Password, "password (mínimo 8 caracteres)")
	name := flag.String("name", cfg.Admin.Name, "nombre para mostrar")
	flag.Parse()

	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Conexión a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool, log); err != nil {
		fmt.Fprintf(os.Stderr, "Migraciones: %v\n", err)
		os.Exit(1)
	}

	u, created, err := auth.EnsureAdmin(ctx, postgres.NewUserRepository(pool), auth.AdminSeed{
		Email: *email, Password: *password, Name: *name,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear administrador: %v\n", err)
		os.Exit(1)
	}
	if !created {
		fmt.Printf("El usuario %s ya existe (id %s, rol %s)\n", u.Email, u.ID, u.Role)
		return
	}
	fmt.Printf("Administrador creado: %s (id %s)\n", u.Email, u.ID)
}
