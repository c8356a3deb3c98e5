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
	"github.com/safwanadnan/bazaar/internal/application/inventory"
	"github.com/safwanadnan/bazaar/internal/application/usecase"
	"github.com/safwanadnan/bazaar/internal/infrastructure/postgres"
	httpRouter "github.com/safwanadnan/bazaar/internal/interfaces/http"
	"github.com/safwanadnan/bazaar/pkg/config"
	"github.com/safwanadnan/bazaar/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("starting application")

	if err := postgres.RunMigrations(cfg.DB.ConnectionString()); err != nil {
		log.Fatal().Err(err).Msg("run migrations")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("connect to PostgreSQL")
	}
	defer pool.Close()

	productRepo := postgres.NewProductRepository(pool)
	storeRepo := postgres.NewStoreRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	levelRepo := postgres.NewLevelRepository(pool)
	keyRepo := postgres.NewIdempotencyKeyRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	validator := inventory.NewValidator(productRepo, storeRepo, keyRepo)
	commitUC := inventory.NewCommitMovementUseCase(txRunner, levelRepo, validator, log.Zerolog())
	rebuildUC := inventory.NewRebuildLevelUseCase(txRunner, log.Zerolog())
	queryUC := inventory.NewStockQueryUseCase(movementRepo, levelRepo)
	productUC := usecase.NewProductUseCase(productRepo)
	storeUC := usecase.NewStoreUseCase(storeRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Bazaar Inventory API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductSvc: productUC,
		StoreSvc:   storeUC,
		Committer:  commitUC,
		Rebuilder:  rebuildUC,
		Queries:    queryUC,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, closing server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("application stopped")
}
