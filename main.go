package main

import (
	"context"
	"errors"
	"log" // Use standard log only for initial fatal errors before logger is set up
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tradeJournal/config"
	"tradeJournal/internal/adapters/logger"
	"tradeJournal/internal/adapters/sqlite"
	"tradeJournal/internal/api"
	"tradeJournal/internal/app"
	"tradeJournal/internal/metrics"
	"tradeJournal/internal/ports"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}

	// 2. Initialize Logger
	appLogger, err := logger.NewZapLogger(cfg.LogLevel, cfg.LogDevelopment)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize logger: %v", err)
	}
	defer appLogger.Sync()
	appLogger.Info(context.Background(), "Logger initialized", map[string]interface{}{
		"level":    cfg.LogLevel.String(),
		"timezone": cfg.Location.String(),
	})

	if err := run(cfg, appLogger); err != nil {
		appLogger.Error(context.Background(), err, "Trade journal exited with error")
		appLogger.Sync()
		os.Exit(1)
	}
	appLogger.Info(context.Background(), "Application finished gracefully.")
}

func run(cfg *config.Config, appLogger *logger.ZapLogger) error {
	// 3. Initialize Repository (Database Adapter)
	repo, err := sqlite.NewRepository(sqlite.Config{
		DBPath: cfg.DBPath,
		Logger: appLogger,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := repo.Close(); err != nil {
			appLogger.Error(context.Background(), err, "Error closing database repository")
		}
	}()

	// 4. Initialize Metrics
	var (
		recorder       api.RequestRecorder
		serviceMetrics *metrics.Registry
		metricsHandler http.Handler
	)
	if cfg.MetricsEnabled {
		serviceMetrics = metrics.NewRegistry()
		recorder = serviceMetrics
		metricsHandler = serviceMetrics.Handler()
		appLogger.Info(context.Background(), "Metrics enabled", map[string]interface{}{"path": "/metrics"})
	}

	// 5. Initialize Application Service
	var journalMetrics ports.MetricsRecorder
	if serviceMetrics != nil {
		journalMetrics = serviceMetrics
	}
	journal, err := app.NewJournalService(cfg, appLogger, repo, journalMetrics)
	if err != nil {
		return err
	}

	// 6. Serve the HTTP API until a shutdown signal arrives
	server := &http.Server{
		Addr: cfg.HTTPAddr,
		Handler: api.SetupRoutes(api.Dependencies{
			Service:        journal,
			Logger:         appLogger,
			Metrics:        recorder,
			MetricsHandler: metricsHandler,
		}),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		appLogger.Info(ctx, "HTTP server listening", map[string]interface{}{"addr": cfg.HTTPAddr})
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		appLogger.Info(context.Background(), "Received shutdown signal")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
