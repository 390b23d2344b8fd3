package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	_ "github.com/jhoicas/Casos-api/docs"
	appanalytics "github.com/jhoicas/Casos-api/internal/application/analytics"
	"github.com/jhoicas/Casos-api/internal/application/auth"
	"github.com/jhoicas/Casos-api/internal/application/casework"
	"github.com/jhoicas/Casos-api/internal/application/report"
	"github.com/jhoicas/Casos-api/internal/application/validation"
	"github.com/jhoicas/Casos-api/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/Casos-api/internal/infrastructure/pdf"
	httpRouter "github.com/jhoicas/Casos-api/internal/interfaces/http"
	"github.com/jhoicas/Casos-api/pkg/config"
	"github.com/jhoicas/Casos-api/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

// @title Casos API
// @version 1.0
// @description Gestión de beneficiarios, casos y servicios con autorización por rol y auditoría.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.App.StoreDriver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	st, err := openStore(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacén")
	}
	defer st.close()

	if cfg.Admin.Email != "" {
		u, created, err := auth.EnsureAdmin(ctx, st.repos.Users, auth.AdminSeed{
			Email: cfg.Admin.Email, Password: cfg.Admin.Password, Name: cfg.Admin.Name,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("sembrar administrador")
		}
		log.Info().Str("user_id", u.ID).Bool("created", created).Msg("administrador inicial")
	} else if cfg.App.StoreDriver == "memory" {
		log.Warn().Msg("almacén en memoria sin ADMIN_EMAIL: nadie podrá iniciar sesión")
	}

	recorder := metrics.New()
	orchestrator := casework.NewOrchestrator(
		st.tx, st.repos, validation.NewEngine(), log,
		casework.Config{DefaultLimit: cfg.Pagination.DefaultLimit, MaxLimit: cfg.Pagination.MaxLimit},
		casework.WithMetrics(recorder),
	)
	authUC := auth.NewAuthUseCase(st.repos.Users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	dashboardUC := appanalytics.NewDashboardUseCase(st.repos)
	// PDF: expediente del beneficiario
	reportUC := report.NewUseCase(orchestrator, st.repos, infrapdf.NewMarotoPDFGenerator())

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ErrorHandler: httpRouter.ErrorHandler,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Casos API",
		}))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		Orchestrator: orchestrator,
		AuthUC:       authUC,
		DashboardUC:  dashboardUC,
		ReportUC:     reportUC,
		Metrics:      recorder,
		Ready:        st.ready,
		JWTSecret:    cfg.JWT.Secret,
		AppName:      cfg.App.Name,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
