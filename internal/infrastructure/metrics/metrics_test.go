package metrics

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T, app *fiber.App) string {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", "/metrics", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}

func newApp(r *Recorder) *fiber.App {
	app := fiber.New()
	app.Use(r.Middleware())
	app.Get("/api/cases/:id", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) })
	app.Get("/metrics", r.Handler())
	return app
}

func TestObserveOperation_CuentaPorResultado(t *testing.T) {
	r := New()
	r.ObserveOperation("CreateCase", "ok", time.Millisecond)
	r.ObserveOperation("CreateCase", "ok", time.Millisecond)
	r.ObserveOperation("CreateCase", "forbidden", time.Millisecond)

	body := scrape(t, newApp(r))
	assert.Contains(t, body, `casos_operations_total{operation="CreateCase",outcome="ok"} 2`)
	assert.Contains(t, body, `casos_operations_total{operation="CreateCase",outcome="forbidden"} 1`)
}

func TestMiddleware_EtiquetaConRutaRegistrada(t *testing.T) {
	r := New()
	app := newApp(r)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/cases/abc", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	body := scrape(t, app)
	assert.Contains(t, body, `http_requests_total{method="GET",path="/api/cases/:id",status="204"} 1`)
	assert.NotContains(t, body, "/api/cases/abc")
}
