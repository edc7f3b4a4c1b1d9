package main

// @title Catalog Browse Service API
// @version 1.0.0
// @description Faceted browse and localized content resolution engine for
// @description point-of-interest catalogs. Owns the category → sub-category →
// @description list state machine, multi-facet filtering and the per-field
// @description language fallback chain; rendering and navigation stay with
// @description the mobile client.

// @contact.name API Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	_ "github.com/catalog-browse-service/docs"
	"github.com/catalog-browse-service/internal/config"
	httpDelivery "github.com/catalog-browse-service/internal/delivery/http"
	"github.com/catalog-browse-service/internal/delivery/http/handler"
	"github.com/catalog-browse-service/internal/domain/repository"
	"github.com/catalog-browse-service/internal/pkg/logger"
	"github.com/catalog-browse-service/internal/pkg/metrics"
	"github.com/catalog-browse-service/internal/repository/cache"
	"github.com/catalog-browse-service/internal/repository/catalogfs"
	"github.com/catalog-browse-service/internal/repository/postgres"
	redisRepo "github.com/catalog-browse-service/internal/repository/redis"
	"github.com/catalog-browse-service/internal/usecase"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Catalog Browse Service")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.String("catalog_source", cfg.Catalog.Source),
	)

	// 3. Connect to Redis
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()
	log.Info("Redis connected")

	// 4. Catalog source: JSON files by default, PostgreSQL when configured
	var catalogSource repository.CatalogSource
	switch cfg.Catalog.Source {
	case "postgres":
		db, err := postgres.New(&cfg.Database, log)
		if err != nil {
			log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
		}
		defer func() {
			if err := db.Close(); err != nil {
				log.Error("Failed to close PostgreSQL connection", zap.Error(err))
			}
		}()
		catalogSource = postgres.NewCatalogSource(db, log, 5*time.Second)
	default:
		catalogSource = catalogfs.New(cfg.Catalog.Dir, log)
	}

	// 5. Health check
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := redisClient.Health(ctx); err != nil {
		log.Fatal("Redis health check failed", zap.Error(err))
	}
	log.Info("All connections healthy")

	// 6. Initialize Repositories
	cacheRepo := cache.NewCacheRepository(redisClient)
	prefRepo := cache.NewPreferenceRepository(redisClient)
	streamRepo := redisRepo.NewStreamRepository(redisClient.Client(), log)
	log.Info("Repositories initialized")

	// 7. Initialize Use Cases
	catalogUC := usecase.NewCatalogUseCase(
		catalogSource,
		cacheRepo,
		streamRepo,
		log,
		cfg.Cache.CatalogCacheTTL,
	)

	prefUC := usecase.NewPreferenceUseCase(prefRepo, log)

	navigator := usecase.NewLoggingNavigator(log)

	browseUC := usecase.NewBrowseUseCase(
		catalogUC,
		prefRepo,
		navigator,
		log,
		cfg.Session.TTL,
	)

	janitorCtx, janitorCancel := context.WithCancel(context.Background())
	defer janitorCancel()
	browseUC.StartJanitor(janitorCtx, cfg.Session.JanitorInterval)

	log.Info("Use cases initialized")

	// 8. Initialize HTTP Handlers
	sessionHandler := handler.NewSessionHandler(browseUC, log)
	catalogHandler := handler.NewCatalogHandler(catalogUC, prefUC, log)
	preferenceHandler := handler.NewPreferenceHandler(prefUC, log)

	log.Info("HTTP handlers initialized")

	// 9. Initialize HTTP Server
	registry := metrics.InitRegistry()
	server := httpDelivery.NewServer(
		cfg,
		log,
		sessionHandler,
		catalogHandler,
		preferenceHandler,
		registry,
	)

	log.Info("HTTP server initialized")

	// 10. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 11. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	ctx, cancel = context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	log.Info("Server stopped successfully")
}
