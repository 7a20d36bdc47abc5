// Command api runs the content publisher HTTP service.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/jonesrussell/content-publisher/internal/api"
	"github.com/jonesrussell/content-publisher/internal/config"
	"github.com/jonesrussell/content-publisher/internal/logger"
	"github.com/jonesrussell/content-publisher/internal/platforms"
	"github.com/jonesrussell/content-publisher/internal/publisher"
)

// version is set at build time via -ldflags.
var version = "dev"

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "config.yml", "Path to configuration file")
	flag.Parse()

	// Missing .env is fine, environment variables may come from elsewhere.
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.NewLogger(cfg.Debug)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting content publisher",
		logger.String("version", version),
		logger.String("address", cfg.Server.Address),
		logger.Bool("debug", cfg.Debug),
	)

	registry := platforms.NewRegistry(cfg, log)
	service := publisher.NewService(cfg, registry, log)

	startupCtx, cancel := context.WithTimeout(context.Background(), cfg.Limits.PublishTimeout)
	for name, connected := range service.TestConnections(startupCtx) {
		if connected {
			log.Info("Platform connection verified", logger.String("platform", name))
		} else {
			log.Warn("Platform connection unavailable", logger.String("platform", name))
		}
	}
	cancel()

	router := api.NewRouter(cfg, service, log, version)
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case sig := <-quit:
		log.Info("Shutting down", logger.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("forced shutdown: %w", err)
	}

	log.Info("Server stopped")
	return nil
}
