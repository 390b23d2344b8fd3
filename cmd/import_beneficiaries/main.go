// import_beneficiaries registra beneficiarios desde un CSV como si los creara el usuario
// indicado: cada fila pasa por autorización, validación y auditoría.
//
// Uso: go run ./cmd/import_beneficiaries -as staff@org.test [-encoding iso-8859-1] [-sep ';'] archivo.csv
// Columnas reconocidas (cabecera): firstName, lastName, category, dateOfBirth (YYYY-MM-DD),
// gender, nationality, idNumber, phone, email, status, priority, notes, tags (separados por ';'),
// assignedToId.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/jhoicas/Casos-api/internal/application/casework"
	"github.com/jhoicas/Casos-api/internal/application/importer"
	"github.com/jhoicas/Casos-api/internal/application/validation"
	"github.com/jhoicas/Casos-api/internal/domain/entity"
	"github.com/jhoicas/Casos-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Casos-api/pkg/config"
	"github.com/jhoicas/Casos-api/pkg/logger"
)

func main() {
	as := flag.String("as", "", "email del usuario en cuyo nombre se importa")
	encoding := flag.String("encoding", importer.EncodingUTF8, "codificación del archivo (utf-8, iso-8859-1, windows-1252)")
	sep := flag.String("sep", ",", "separador de columnas")
	flag.Parse()
	if flag.NArg() != 1 || *as == "" {
		fmt.Fprintln(os.Stderr, "Uso: import_beneficiaries -as email [-encoding enc] [-sep ;] archivo.csv")
		os.Exit(2)
	}
	comma, _ := utf8.DecodeRuneInString(*sep)

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	f, err := os.Open(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	r, err := importer.Reader(f, *encoding)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(2)
	}
	rows, err := importer.Parse(r, comma)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Conexión a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	repos := postgres.NewRepositories(pool)
	user, err := repos.Users.FindByEmail(ctx, *as)
	if err != nil || user == nil {
		fmt.Fprintf(os.Stderr, "Usuario %s no encontrado\n", *as)
		os.Exit(1)
	}
	if user.Status != entity.UserStatusActive {
		fmt.Fprintf(os.Stderr, "Usuario %s inactivo\n", *as)
		os.Exit(1)
	}

	orch := casework.NewOrchestrator(postgres.NewTxRunner(pool), repos, validation.NewEngine(), log,
		casework.Config{DefaultLimit: cfg.Pagination.DefaultLimit, MaxLimit: cfg.Pagination.MaxLimit})

	rep, runErr := importer.New(orch).Run(ctx, &entity.Actor{UserID: user.ID, Role: user.Role}, rows)
	for _, o := range rep.Outcomes {
		if o.Err != nil {
			fmt.Printf("línea %d: ERROR %v\n", o.Line, o.Err)
			continue
		}
		fmt.Printf("línea %d: creado %s\n", o.Line, o.ID)
	}
	fmt.Printf("Creados: %d, con error: %d, filas: %d\n", rep.Created, rep.Failed, len(rows))
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Importación interrumpida: %v\n", runErr)
		os.Exit(1)
	}
}
