package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/Casos-api/internal/application/analytics"
	"github.com/jhoicas/Casos-api/internal/application/auth"
	"github.com/jhoicas/Casos-api/internal/application/casework"
	"github.com/jhoicas/Casos-api/internal/application/report"
	"github.com/jhoicas/Casos-api/internal/infrastructure/metrics"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Orchestrator *casework.Orchestrator
	AuthUC       *auth.AuthUseCase
	DashboardUC  *appanalytics.DashboardUseCase
	ReportUC     *report.UseCase
	Metrics      *metrics.Recorder // opcional
	Ready        func(ctx context.Context) error // opcional; comprueba el almacén en /health
	JWTSecret    string
	AppName      string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.Metrics != nil {
		app.Use(deps.Metrics.Middleware())
		app.Get("/metrics", deps.Metrics.Handler())
	}
	app.Get("/health", func(c *fiber.Ctx) error {
		if deps.Ready != nil {
			if err := deps.Ready(c.UserContext()); err != nil {
				return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "unavailable", "service": deps.AppName})
			}
		}
		return c.JSON(fiber.Map{"status": "ok", "service": deps.AppName})
	})

	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token). La autorización fina la decide el orquestador.
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	protected.Get("/auth/me", authHandler.Me)

	beneficiaries := protected.Group("/beneficiaries")
	beneficiaryHandler := NewBeneficiaryHandler(deps.Orchestrator, deps.ReportUC)
	beneficiaries.Post("/", beneficiaryHandler.Create)
	beneficiaries.Get("/", beneficiaryHandler.List)
	beneficiaries.Get("/:id", beneficiaryHandler.GetByID)
	beneficiaries.Put("/:id", beneficiaryHandler.Update)
	beneficiaries.Delete("/:id", beneficiaryHandler.Archive)
	beneficiaries.Post("/:id/archive", beneficiaryHandler.Archive)
	beneficiaries.Get("/:id/report.pdf", beneficiaryHandler.ReportPDF)

	cases := protected.Group("/cases")
	caseHandler := NewCaseHandler(deps.Orchestrator)
	cases.Post("/", caseHandler.Create)
	cases.Get("/", caseHandler.List)
	cases.Get("/:id", caseHandler.GetByID)
	cases.Put("/:id", caseHandler.Update)
	cases.Delete("/:id", caseHandler.Delete)

	services := protected.Group("/services")
	serviceHandler := NewServiceHandler(deps.Orchestrator)
	services.Post("/", serviceHandler.Create)
	services.Get("/", serviceHandler.List)
	services.Get("/:id", serviceHandler.GetByID)
	services.Put("/:id", serviceHandler.Update)
	services.Delete("/:id", serviceHandler.Delete)

	protected.Get("/audit-logs", NewAuditHandler(deps.Orchestrator).List)
	protected.Get("/dashboard/summary", NewDashboardHandler(deps.DashboardUC).GetSummary)
}
