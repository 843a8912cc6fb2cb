package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/valve-catalog/internal/application/catalog"
	"github.com/jhoicas/valve-catalog/internal/bootstrap"
	httpRouter "github.com/jhoicas/valve-catalog/internal/interfaces/http"
	"github.com/jhoicas/valve-catalog/pkg/config"
	"github.com/jhoicas/valve-catalog/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

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
		Str("store", cfg.Catalog.Store).
		Str("storage", cfg.Storage.Backend).
		Str("delete_policy", cfg.Catalog.DeletePolicy).
		Msg("iniciando aplicación")

	ctx := context.Background()
	store, err := bootstrap.OpenStore(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacén del catálogo")
	}
	defer store.Close()

	blobs, err := bootstrap.OpenBlobs(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir blob store")
	}

	ucs, err := bootstrap.NewUseCases(cfg, store, blobs)
	if err != nil {
		log.Fatal().Err(err).Msg("configurar casos de uso")
	}

	app := httpRouter.NewApp(cfg.App.Name, log)

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Valve Catalog API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CategoryUC: ucs.Category,
		ProductUC:  ucs.Product,
		DocumentUC: ucs.Document,
		Labels:     ucs.Labels,
		Log:        log.Named("http"),
		APIQuery: catalog.QueryDefaults{
			Sort:        catalog.APIDefaults.Sort,
			PageSize:    cfg.Catalog.PageSize,
			MaxPageSize: cfg.Catalog.MaxPageSize,
		},
		ListingQuery: catalog.QueryDefaults{
			Sort:        catalog.ListingDefaults.Sort,
			PageSize:    cfg.Catalog.PageSize,
			MaxPageSize: cfg.Catalog.PageSize,
			OnlyActive:  true,
		},
		JWTSecret:            cfg.JWT.Secret,
		DownloadRequiresAuth: cfg.Catalog.DownloadRequiresAuth,
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
