package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/fpbatch-converter/internal/application/conversion"
	infradian "github.com/jhoicas/fpbatch-converter/internal/infrastructure/dian"
	"github.com/jhoicas/fpbatch-converter/internal/infrastructure/metrics"
	"github.com/jhoicas/fpbatch-converter/internal/infrastructure/params"
	"github.com/jhoicas/fpbatch-converter/internal/infrastructure/txt"
	httpRouter "github.com/jhoicas/fpbatch-converter/internal/interfaces/http"
	"github.com/jhoicas/fpbatch-converter/pkg/config"
	"github.com/jhoicas/fpbatch-converter/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
		File:  cfg.Log.File,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("params", cfg.FPBatch.ParamsPath).
		Int("workers", cfg.FPBatch.Workers).
		Msg("iniciando aplicación")
	if cfg.JWT.Secret == "" {
		log.Warn().Msg("JWT_SECRET vacío: la API queda sin autenticación")
	}

	// La parametrización se relee en cada lote: editar el libro no exige reiniciar.
	paramRepo := params.NewRepository(cfg.FPBatch.ParamsPath, log)
	recorder := metrics.NewRecorder()
	convertUC := conversion.NewConvertUseCase(
		paramRepo,
		infradian.NewExtractor(log),
		infradian.ZipReader{},
		txt.NewGenerator(),
		recorder,
		log,
		cfg.FPBatch.Workers,
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		BodyLimit:    cfg.FPBatch.MaxUploadMB * 1024 * 1024,
		ReadTimeout:  time.Second * 30,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Conversion: convertUC,
		Metrics:    recorder,
		JWTSecret:  cfg.JWT.Secret,
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
