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
	"github.com/jhoicas/commercial-docs/internal/application/documents"
	"github.com/jhoicas/commercial-docs/internal/application/validation"
	"github.com/jhoicas/commercial-docs/internal/domain/view/presets"
	"github.com/jhoicas/commercial-docs/internal/infrastructure/celview"
	"github.com/jhoicas/commercial-docs/internal/infrastructure/memory"
	httpRouter "github.com/jhoicas/commercial-docs/internal/interfaces/http"
	"github.com/jhoicas/commercial-docs/pkg/config"
	"github.com/jhoicas/commercial-docs/pkg/logger"
	"github.com/jhoicas/commercial-docs/pkg/viewfile"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	// Vistas declaradas en configuración (CEL)
	file, err := viewfile.Load(cfg.Views.File)
	if err != nil {
		log.Fatal().Err(err).Msg("archivo de vistas")
	}
	compiler, err := celview.NewCompiler()
	if err != nil {
		log.Fatal().Err(err).Msg("compilador de vistas")
	}
	extra, err := celview.FromFile(compiler, file)
	if err != nil {
		log.Fatal().Err(err).Str("file", cfg.Views.File).Msg("vistas configuradas")
	}

	catalog, err := documents.NewCatalog(documents.CatalogConfig{
		Presets: presets.Options{
			HighValueThreshold: cfg.Views.HighValueThreshold,
			RecentDays:         cfg.Views.RecentDays,
			ExpiringDays:       cfg.Views.ExpiringDays,
		},
		Placeholders:     cfg.Views.Placeholders,
		DocumentBuckets:  extra.Documents,
		PriceBookBuckets: extra.PriceBook,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("catálogo de vistas")
	}

	validator := validation.New()
	documentUC := documents.NewUseCase(
		memory.NewDocumentStore(),
		memory.NewPriceBookStore(),
		catalog,
		validator,
		documents.ListLimits{Default: cfg.List.DefaultLimit, Max: cfg.List.MaxLimit},
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Commercial Docs API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Documents: documentUC,
		Validator: validator,
		Log:       log.WithComponent("http"),
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
