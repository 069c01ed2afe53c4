package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/jhoicas/fpbatch-converter/internal/application/conversion"
	"github.com/jhoicas/fpbatch-converter/internal/infrastructure/metrics"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Conversion *conversion.ConvertUseCase
	Metrics    *metrics.Recorder // opcional
	JWTSecret  string            // vacío = API sin autenticación (solo desarrollo)
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.Metrics != nil {
		app.Use(deps.Metrics.Middleware())
		app.Get("/metrics", adaptor.HTTPHandler(deps.Metrics.Handler()))
	}

	api := app.Group("/api")
	if deps.JWTSecret != "" {
		api.Use(AuthMiddleware(deps.JWTSecret))
	}

	h := NewFPBatchHandler(deps.Conversion)
	api.Post("/fpbatch", h.Convert)
	api.Post("/fpbatch/validate", h.Validate)
	api.Post("/txt", h.Text)
}
