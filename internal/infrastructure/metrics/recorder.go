// Package metrics expone contadores e histogramas Prometheus de las conversiones
// y de las peticiones HTTP. Cada Recorder tiene su propio registro.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "fpbatch"

// Recorder implementa conversion.Recorder sobre client_golang.
type Recorder struct {
	registry *prometheus.Registry

	batches   *prometheus.CounterVec
	invoices  *prometheus.CounterVec
	records   *prometheus.CounterVec
	duration  *prometheus.HistogramVec
	requests  *prometheus.CounterVec
	latencies *prometheus.HistogramVec
}

// NewRecorder crea y registra las métricas.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		batches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "batches_total",
			Help:      "Lotes procesados por origen (api, cli) y resultado.",
		}, []string{"source", "outcome"}),
		invoices: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "invoices_total",
			Help:      "Facturas por resultado de extracción (ok, error).",
		}, []string{"source", "result"}),
		records: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_total",
			Help:      "Registros FPBATCH de 512 posiciones generados.",
		}, []string{"source"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "batch_duration_seconds",
			Help:      "Duración de la conversión de un lote.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"source"}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Peticiones HTTP por ruta, método y código.",
		}, []string{"route", "method", "status"}),
		latencies: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duración de las peticiones HTTP.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
	}
	r.registry.MustRegister(r.batches, r.invoices, r.records, r.duration, r.requests, r.latencies)
	return r
}

// ObserveBatch registra el resultado de un lote. outcome es "ok" si se generó salida.
func (r *Recorder) ObserveBatch(source string, invoices, failures, records int, d time.Duration) {
	if r == nil {
		return
	}
	if source == "" {
		source = "unknown"
	}
	outcome := "ok"
	if invoices == 0 {
		outcome = "empty"
	}
	r.batches.WithLabelValues(source, outcome).Inc()
	r.invoices.WithLabelValues(source, "ok").Add(float64(invoices))
	r.invoices.WithLabelValues(source, "error").Add(float64(failures))
	r.records.WithLabelValues(source).Add(float64(records))
	r.duration.WithLabelValues(source).Observe(d.Seconds())
}

// Middleware mide cada petición de fiber. Usa la ruta registrada (no la URL) como etiqueta.
func (r *Recorder) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if fe, ok := err.(*fiber.Error); ok {
			status = fe.Code
		} else if err != nil {
			status = fiber.StatusInternalServerError
		}
		route := c.Route().Path
		r.requests.WithLabelValues(route, c.Method(), strconv.Itoa(status)).Inc()
		r.latencies.WithLabelValues(route, c.Method()).Observe(time.Since(start).Seconds())
		return err
	}
}

// Handler exposición en formato Prometheus (montar con el adaptador de fiber).
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Registry registro subyacente (tests y colectores adicionales).
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}
