/**
 * @description
 * This is the main entry point for the trip-status-service. It is responsible
 * for initializing the application, setting up dependencies, and starting the
 * HTTP server.
 *
 * Key features:
 * - Loads configuration from environment variables.
 * - Constructs the Caspio client once so its token cache is process-wide.
 * - Wires the client into the status service and the HTTP router.
 * - Implements graceful shutdown on SIGINT/SIGTERM.
 *
 * @dependencies
 * - github.com/joho/godotenv: To load .env files for local development.
 * - github.com/activatemytrip/trip-status-service/internal/api: Router and handlers.
 * - github.com/activatemytrip/trip-status-service/internal/app: The status service.
 * - github.com/activatemytrip/trip-status-service/internal/config: Application configuration.
 * - github.com/activatemytrip/trip-status-service/pkg/caspio: The hosted-datastore client.
 */
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/activatemytrip/trip-status-service/internal/api"
	"github.com/activatemytrip/trip-status-service/internal/app"
	"github.com/activatemytrip/trip-status-service/internal/config"
	"github.com/activatemytrip/trip-status-service/pkg/caspio"
)

func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// Load .env file for local development. In production, env vars are set directly.
	if err := godotenv.Load(); err != nil {
		logger.Info("no .env file found, using environment variables")
	}

	// Load application configuration from environment variables
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Initialize application layers. The Caspio client is constructed once so
	// its bearer-token cache spans the whole process.
	client := caspio.NewClient(cfg.CaspioAccountID, cfg.CaspioClientID, cfg.CaspioClientSecret, logger)
	service := app.NewService(client, cfg.CustomerTable, cfg.PackageTable, logger)
	handler := api.NewHandler(service, cfg.ServiceVersion)
	router := api.NewRouter(handler, logger)

	// Configure and start the HTTP server
	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.ServerPort),
		Handler: router,
	}

	go func() {
		logger.Info("starting server", "port", cfg.ServerPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for an OS signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	logger.Info("shutdown signal received, gracefully shutting down")

	// Attempt to gracefully shut down the server
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", "error", err)
	}

	logger.Info("server stopped")
}
