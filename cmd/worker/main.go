package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/catalog-browse-service/internal/config"
	"github.com/catalog-browse-service/internal/domain/repository"
	"github.com/catalog-browse-service/internal/pkg/logger"
	"github.com/catalog-browse-service/internal/repository/cache"
	"github.com/catalog-browse-service/internal/repository/catalogfs"
	"github.com/catalog-browse-service/internal/repository/postgres"
	redisRepo "github.com/catalog-browse-service/internal/repository/redis"
	workerPkg "github.com/catalog-browse-service/internal/worker"
	"github.com/catalog-browse-service/internal/worker/catalog"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Check if worker is enabled
	if !cfg.Worker.Enabled {
		fmt.Println("Worker is disabled in configuration. Set WORKER_ENABLED=true to enable.")
		os.Exit(0)
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Catalog Invalidation Worker")
	log.Info("Configuration loaded",
		zap.String("consumer_group", cfg.Worker.ConsumerGroup),
		zap.Int("max_retries", cfg.Worker.MaxRetries),
		zap.String("catalog_source", cfg.Catalog.Source))

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

	// 4. Catalog source, for post-invalidation re-validation
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

	// 5. Repositories
	cacheRepo := cache.NewCacheRepository(redisClient)
	streamRepo := redisRepo.NewStreamRepository(redisClient.Client(), log)

	// 6. Worker
	var w workerPkg.Worker = catalog.NewInvalidationWorker(
		streamRepo,
		cacheRepo,
		catalogSource,
		cfg.Worker.ConsumerGroup,
		cfg.Worker.MaxRetries,
		log,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errChan := make(chan error, 1)
	go func() {
		errChan <- w.Start(ctx)
	}()

	log.Info("Worker started", zap.String("name", w.Name()))

	// 7. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case <-quit:
		log.Info("Shutting down worker gracefully...")
	case err := <-errChan:
		if err != nil {
			log.Error("Worker stopped with error", zap.Error(err))
		}
	}

	cancel()
	if err := w.Stop(); err != nil {
		log.Error("Worker stop error", zap.Error(err))
	}

	log.Info("Worker stopped successfully")
}
