package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/prometheus/client_golang/prometheus"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"

	"github.com/catalog-browse-service/internal/config"
	"github.com/catalog-browse-service/internal/delivery/http/handler"
	"github.com/catalog-browse-service/internal/delivery/http/middleware"
	"github.com/catalog-browse-service/internal/pkg/metrics"
)

// Server - HTTP server built on Fiber
type Server struct {
	app    *fiber.App
	config *config.Config
	logger *zap.Logger

	// Handlers
	sessionHandler    *handler.SessionHandler
	catalogHandler    *handler.CatalogHandler
	preferenceHandler *handler.PreferenceHandler

	metricsRegistry *prometheus.Registry
}

// NewServer wires middleware, routes and handlers.
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	sessionHandler *handler.SessionHandler,
	catalogHandler *handler.CatalogHandler,
	preferenceHandler *handler.PreferenceHandler,
	metricsRegistry *prometheus.Registry,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "Catalog Browse Service",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:               app,
		config:            cfg,
		logger:            logger,
		sessionHandler:    sessionHandler,
		catalogHandler:    catalogHandler,
		preferenceHandler: preferenceHandler,
		metricsRegistry:   metricsRegistry,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery())
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.CORS())
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

func (s *Server) setupRoutes() {
	// Swagger documentation route
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)

	// Prometheus metrics
	s.app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler(s.metricsRegistry)))

	api := s.app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// Browse session routes
	api.Post("/sessions", s.sessionHandler.Create)
	api.Get("/sessions/:id", s.sessionHandler.Get)
	api.Post("/sessions/:id/events", s.sessionHandler.HandleEvent)
	api.Post("/sessions/:id/records/:recordID/select", s.sessionHandler.SelectRecord)
	api.Delete("/sessions/:id", s.sessionHandler.Destroy)

	// Catalog routes
	api.Get("/catalogs", s.catalogHandler.List)
	api.Get("/catalogs/:id/categories", s.catalogHandler.GetCategories)
	api.Get("/catalogs/:id/records", s.catalogHandler.GetRecords)
	api.Post("/catalogs/:id/refresh", s.catalogHandler.Refresh)

	// Language preference routes
	api.Get("/preferences/language", s.preferenceHandler.GetLanguage)
	api.Put("/preferences/language", s.preferenceHandler.SetLanguage)
}

// Start - run the HTTP server
func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

// Shutdown - graceful HTTP server shutdown
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError

		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
		}

		logger.Error("HTTP Error",
			zap.String("path", c.Path()),
			zap.Int("status", code),
			zap.Error(err),
		)

		return c.Status(code).JSON(fiber.Map{
			"error": fiber.Map{
				"code":    "INTERNAL_SERVER_ERROR",
				"message": err.Error(),
			},
		})
	}
}
