package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	redislib "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	httpAdapter "github.com/iho/concilia/internal/adapter/http"
	"github.com/iho/concilia/internal/adapter/http/handler"
	postgresRepo "github.com/iho/concilia/internal/adapter/repository/postgres"
	redisRepo "github.com/iho/concilia/internal/adapter/repository/redis"
	"github.com/iho/concilia/internal/infrastructure/config"
	"github.com/iho/concilia/internal/infrastructure/logger"
	"github.com/iho/concilia/internal/infrastructure/metrics"
	"github.com/iho/concilia/internal/infrastructure/postgres"
	"github.com/iho/concilia/internal/infrastructure/redis"
	"github.com/iho/concilia/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Setup logger
	appLogger := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	log.Logger = appLogger

	ctx := context.Background()

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Run migrations
	if err := postgres.RunMigrations(appLogger, cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Connect to Redis when configured; without it imports simply lose
	// request idempotency
	redisClient, err := connectRedis(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	var idempotencyStore usecase.IdempotencyStore
	if redisClient != nil {
		defer redisClient.Close()
		idempotencyStore = redisRepo.NewIdempotencyStore(redisClient)
		log.Info().Msg("connected to redis")
	}

	// Initialize repositories
	m := metrics.New()
	retrier := postgresRepo.NewRetrier(appLogger)
	idGen := postgresRepo.NewULIDGenerator()
	txManager := postgresRepo.NewTxManager(pool)
	entryRepo := postgresRepo.NewEntryRepository(pool, idGen, retrier)

	// Initialize use cases
	entryUC := usecase.NewEntryUseCase(entryRepo, m)
	importUC := usecase.NewImportUseCase(entryRepo, m)
	exportUC := usecase.NewExportUseCase(entryRepo)
	normalizeUC := usecase.NewNormalizeUseCase(txManager, entryRepo, m)
	reconcileUC := usecase.NewReconcileUseCase(txManager, entryRepo, m)

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		EntryHandler:     handler.NewEntryHandler(entryUC),
		ImportHandler:    handler.NewImportHandler(importUC),
		ExportHandler:    handler.NewExportHandler(exportUC),
		NormalizeHandler: handler.NewNormalizeHandler(normalizeUC),
		ReconcileHandler: handler.NewReconcileHandler(reconcileUC),
		HealthHandler:    handler.NewHealthHandler(pool, redisClient),
		IdempotencyStore: idempotencyStore,
	})

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}

func connectRedis(ctx context.Context, url string) (*redislib.Client, error) {
	if url == "" {
		return nil, nil
	}
	return redis.NewClient(ctx, url)
}
