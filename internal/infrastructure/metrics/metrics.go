// Package metrics expone contadores Prometheus de operaciones del orquestador y de HTTP.
package metrics

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder agrupa las métricas en un registro propio (uno por proceso; uno por test).
type Recorder struct {
	reg *prometheus.Registry

	operationsTotal   *prometheus.CounterVec
	operationDuration *prometheus.HistogramVec

	httpInFlight        prometheus.Gauge
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// New crea y registra las métricas. Incluye los colectores de proceso y del runtime de Go.
func New() *Recorder {
	r := &Recorder{
		reg: prometheus.NewRegistry(),
		operationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "casos_operations_total",
			Help: "Operaciones del orquestador por resultado (ok o tipo de error).",
		}, []string{"operation", "outcome"}),
		operationDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "casos_operation_duration_seconds",
			Help:    "Latencia de las operaciones del orquestador.",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
		httpInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "http_in_flight_requests",
			Help: "In-flight HTTP requests.",
		}),
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		}, []string{"method", "path", "status"}),
		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latencies in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
	}
	r.reg.MustRegister(
		r.operationsTotal, r.operationDuration,
		r.httpInFlight, r.httpRequestsTotal, r.httpRequestDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

// ObserveOperation cumple casework.Metrics.
func (r *Recorder) ObserveOperation(operation, outcome string, elapsed time.Duration) {
	r.operationsTotal.WithLabelValues(operation, outcome).Inc()
	r.operationDuration.WithLabelValues(operation).Observe(elapsed.Seconds())
}

// Middleware mide RPS, latencia y peticiones en vuelo. path es la ruta registrada
// (/api/cases/:id), no la URL, para no disparar la cardinalidad.
func (r *Recorder) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		r.httpInFlight.Inc()
		defer r.httpInFlight.Dec()
		start := time.Now()

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		path := strings.TrimRight(c.Route().Path, "/")
		if path == "" {
			path = "unmatched"
		}
		labels := []string{c.Method(), path, strconv.Itoa(status)}
		r.httpRequestDuration.WithLabelValues(labels...).Observe(time.Since(start).Seconds())
		r.httpRequestsTotal.WithLabelValues(labels...).Inc()
		return err
	}
}

// Handler expone el registro para GET /metrics.
func (r *Recorder) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{}))
}

// Registry acceso al registro (tests).
func (r *Recorder) Registry() *prometheus.Registry {
	return r.reg
}
