package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"crossmarket/internal/adapters/history/noop"
	"crossmarket/internal/adapters/history/redis"
	"crossmarket/internal/adapters/storage/postgresql"
	"crossmarket/internal/adapters/storage/sqlite"
	"crossmarket/internal/adapters/web"
	"crossmarket/internal/application/ports"
	"crossmarket/internal/application/usecases"
	"crossmarket/internal/catalog"
	"crossmarket/internal/config"
	"crossmarket/internal/logger"
)

func main() {
	var (
		port       = flag.Int("port", 0, "Port number (overrides config)")
		configPath = flag.String("config", config.Path(), "Path to YAML config")
		help       = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		printUsage()
		return
	}

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to load configuration:", err)
		os.Exit(1)
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level)

	if err := cfg.Validate(); err != nil {
		log.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize storage
	storage, err := newStorage(cfg.Database)
	if err != nil {
		log.Error("Failed to initialize storage", "driver", cfg.Database.Driver, "error", err)
		os.Exit(1)
	}

	dialect, err := catalog.DialectFor(storage.Driver())
	if err != nil {
		log.Error("Failed to select query dialect", "error", err)
		os.Exit(1)
	}

	// Initialize query history
	history := newHistory(cfg, log)
	defer history.Close()

	// Initialize use case and web server
	dashboard := usecases.NewDashboardUseCase(storage, history, catalog.New(dialect), log)
	webServer := web.NewServer(cfg.Server.Port, dashboard, log)

	go func() {
		if err := webServer.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Failed to start web server", "error", err)
			cancel()
		}
	}()

	// Wait for shutdown signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigChan:
		log.Info("Received shutdown signal")
	case <-ctx.Done():
		log.Info("Context cancelled")
	}

	// Graceful shutdown
	log.Info("Shutting down gracefully...")
	if err := webServer.Shutdown(context.Background()); err != nil {
		log.Error("Shutdown failed", "error", err)
	}
	log.Info("Shutdown complete")
}

func newStorage(cfg config.DatabaseConfig) (ports.StoragePort, error) {
	switch cfg.Driver {
	case sqlite.DriverName:
		return sqlite.New(cfg)
	default:
		return postgresql.New(cfg)
	}
}

// newHistory falls back to a no-op log when Redis is unset or unreachable.
func newHistory(cfg *config.Config, log *slog.Logger) ports.HistoryPort {
	if !cfg.HistoryEnabled() {
		log.Info("Query history disabled")
		return noop.New()
	}

	h, err := redis.New(cfg.Cache)
	if err != nil {
		log.Warn("Redis unavailable, query history disabled", "error", err)
		return noop.New()
	}
	return h
}

func printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  crossmarket [--port <N>] [--config <path>]")
	fmt.Println("  crossmarket --help")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --port N         Port number")
	fmt.Println("  --config PATH    YAML config file (default $CONFIG_FILE or configs/config.yaml)")
}
