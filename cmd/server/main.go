package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SAP-F-2025/trait-assessment-service/internal/cache"
	"github.com/SAP-F-2025/trait-assessment-service/internal/catalog"
	"github.com/SAP-F-2025/trait-assessment-service/internal/config"
	"github.com/SAP-F-2025/trait-assessment-service/internal/events"
	"github.com/SAP-F-2025/trait-assessment-service/internal/handlers"
	"github.com/SAP-F-2025/trait-assessment-service/internal/repositories/postgres"
	"github.com/SAP-F-2025/trait-assessment-service/internal/scoring"
	"github.com/SAP-F-2025/trait-assessment-service/internal/services"
	"github.com/SAP-F-2025/trait-assessment-service/internal/utils"
	"github.com/SAP-F-2025/trait-assessment-service/internal/validator"
	"github.com/SAP-F-2025/trait-assessment-service/pkg"
	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	logger := utils.NewLogger(cfg.Environment)
	zapLogger, err := utils.NewZapLogger(cfg.Environment)
	if err != nil {
		return err
	}
	defer zapLogger.Sync()

	v := validator.New()
	instruments, err := catalog.Load(v)
	if err != nil {
		return err
	}
	engine := scoring.NewEngine(instruments, scoring.Options{
		RequireComplete:  cfg.RequireComplete,
		SeedRankDefaults: cfg.SeedRankDefaults,
	})

	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		return err
	}

	redisClient, err := pkg.NewRedisClient(cfg)
	if err != nil {
		return err
	}
	defer redisClient.Close()

	publisher, err := cfg.Events.CreateEventPublisher(logger.Slog())
	if err != nil {
		logger.Error("Failed to create event publisher, falling back to mock", "error", err)
		publisher = events.NewMockEventPublisher(logger.Slog())
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			logger.Error("Failed to close event publisher", "error", err)
		}
	}()

	if cfg.Auth.Enabled {
		cfg.Auth.InitCasdoor()
	}

	serviceManager := services.NewServiceManager(services.Dependencies{
		Catalog:          instruments,
		Engine:           engine,
		Repository:       postgres.NewRepository(db),
		Sessions:         cache.NewRedisSessionStore(redisClient, zapLogger, cfg.SessionTTL),
		Cache:            cache.NewRedisCache(redisClient, zapLogger),
		Publisher:        publisher,
		Validator:        v,
		Logger:           logger.Slog(),
		BatchConcurrency: cfg.BatchConcurrency,
	})

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), utils.RequestID(), utils.ContextLogger(logger), utils.LoggerMiddleware(logger))
	handlers.NewHandlerManager(serviceManager, cfg.Auth, logger).SetupRoutes(router)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server listening", "addr", srv.Addr, "instruments", len(instruments.List()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
