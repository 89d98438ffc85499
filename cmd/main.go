package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	_ "corpus-backend/docs"
	"corpus-backend/internal/config"
	"corpus-backend/internal/database"
	"corpus-backend/internal/handlers"
	"corpus-backend/internal/metrics"
	"corpus-backend/internal/repository"
	"corpus-backend/internal/routes"
	"corpus-backend/internal/services"
	"corpus-backend/internal/storage"
	"corpus-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	fiberSwagger "github.com/swaggo/fiber-swagger"
)

// @title Movie Dialogue Corpus API
// @version 1.0
// @description Read API over a corpus of movie dialogue, with conversation creation

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8010
// @BasePath /
// @schemes http https

func main() {
	config.LoadEnvFile()

	cfg := config.Load()
	log := config.NewLogger()

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	repo, closeRepo, err := openRepository(context.Background(), cfg, log)
	if err != nil {
		log.Fatalf("Failed to open %s corpus backend: %v", cfg.Corpus.Backend, err)
	}
	defer func() {
		if err := closeRepo(); err != nil {
			log.Errorf("Error closing corpus backend: %v", err)
		}
	}()

	svc := services.NewCorpusService(repo, log)

	app := fiber.New(fiber.Config{
		AppName:               "Movie Dialogue Corpus API",
		ReadTimeout:           cfg.Server.ReadTimeout,
		WriteTimeout:          cfg.Server.WriteTimeout,
		IdleTimeout:           120 * time.Second,
		DisableStartupMessage: false,
		ErrorHandler:          customErrorHandler(log),
	})

	setupMiddleware(app)

	app.Get("/health", healthCheckHandler(svc, cfg.Corpus.Backend))
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Swagger documentation
	app.Get("/swagger/*", fiberSwagger.WrapHandler)

	routes.Setup(app,
		handlers.NewMovieHandler(svc, log),
		handlers.NewCharacterHandler(svc),
		handlers.NewLineHandler(svc),
		handlers.NewSyncHandler(svc),
	)

	go gracefulShutdown(app, log)

	log.WithField("backend", cfg.Corpus.Backend).Infof("Corpus API starting on port %s", cfg.Server.Port)
	if err := app.Listen(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to start HTTP server: %v", err)
	}
}

// openRepository builds the configured corpus backend and returns a function
// releasing its resources.
func openRepository(ctx context.Context, cfg *config.Config, log *logrus.Logger) (repository.CorpusRepository, func() error, error) {
	if cfg.Corpus.Backend == config.BackendPostgres {
		db, err := database.Connect(cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		return repository.NewPostgresRepository(db, log), db.Close, nil
	}

	store, err := storage.Open(ctx, cfg, log)
	if err != nil {
		return nil, nil, err
	}
	repo := repository.NewGraphRepository(storage.NewSource(store, log), cfg.Sync.CheckInterval, log)

	// A failed initial load is retried by the first request.
	if err := repo.Reload(ctx); err != nil {
		log.WithError(err).WithField("source", cfg.Corpus.Source).Warn("Initial corpus load failed")
	}
	return repo, func() error { return nil }, nil
}

func setupMiddleware(app *fiber.App) {
	app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
	}))

	app.Use(requestid.New(requestid.Config{
		Header:    fiber.HeaderXRequestID,
		Generator: uuid.NewString,
	}))

	// Logger middleware
	app.Use(logger.New(logger.Config{
		Format:     "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path} | ${locals:requestid} | ${error}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	}))

	app.Use(metrics.Middleware())

	app.Use(cors.New(cors.Config{
		AllowOrigins:     "*",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Request-ID",
		AllowMethods:     "GET, POST, OPTIONS",
		AllowCredentials: false,
		MaxAge:           86400, // 24 hours
	}))
}

func healthCheckHandler(svc services.CorpusService, backend string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		corpusStatus := "healthy"
		if err := svc.HealthCheck(c.UserContext()); err != nil {
			corpusStatus = "unhealthy"
		}

		return c.JSON(fiber.Map{
			"status":    "ok",
			"service":   "corpus-backend",
			"version":   "1.0.0",
			"backend":   backend,
			"corpus":    corpusStatus,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}
}

func customErrorHandler(log *logrus.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError

		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
		}

		log.WithError(err).WithFields(logrus.Fields{
			"method":     c.Method(),
			"path":       c.Path(),
			"status":     code,
			"request_id": c.Locals("requestid"),
		}).Error("Request error")

		reason := strings.ReplaceAll(strings.ToLower(http.StatusText(code)), " ", "_")
		return utils.ErrorResponse(c, code, reason, err.Error())
	}
}

func gracefulShutdown(app *fiber.App, log *logrus.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	if err := app.ShutdownWithTimeout(30 * time.Second); err != nil {
		log.Errorf("Error during shutdown: %v", err)
	}

	log.Info("Server shutdown complete")
}
