package metrics_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/fpbatch-converter/internal/infrastructure/metrics"
)

func TestRecorder_ObserveBatch(t *testing.T) {
	r := metrics.NewRecorder()
	r.ObserveBatch("cli", 2, 1, 6, 15*time.Millisecond)
	r.ObserveBatch("cli", 0, 3, 0, time.Millisecond)

	expected := `
# HELP fpbatch_invoices_total Facturas por resultado de extracción (ok, error).
# TYPE fpbatch_invoices_total counter
fpbatch_invoices_total{result="error",source="cli"} 4
fpbatch_invoices_total{result="ok",source="cli"} 2
# HELP fpbatch_records_total Registros FPBATCH de 512 posiciones generados.
# TYPE fpbatch_records_total counter
fpbatch_records_total{source="cli"} 6
`
	require.NoError(t, testutil.GatherAndCompare(r.Registry(), strings.NewReader(expected),
		"fpbatch_invoices_total", "fpbatch_records_total"))

	n, err := testutil.GatherAndCount(r.Registry(), "fpbatch_batches_total")
	require.NoError(t, err)
	assert.Equal(t, 2, n, "una serie por resultado (ok, empty)")
}

func TestRecorder_NilEsSeguro(t *testing.T) {
	var r *metrics.Recorder
	assert.NotPanics(t, func() { r.ObserveBatch("api", 1, 0, 3, time.Second) })
}

func TestRecorder_MiddlewareYHandler(t *testing.T) {
	r := metrics.NewRecorder()
	app := fiber.New()
	app.Use(r.Middleware())
	app.Get("/ok", func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/metrics", adaptor.HTTPHandler(r.Handler()))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ok", nil), -1)
	require.NoError(t, err)
	resp.Body.Close()

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `fpbatch_http_requests_total{method="GET",route="/ok",status="200"} 1`)
}
