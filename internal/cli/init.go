// Package cli consolidates the initialization shared by cmd/spendboard,
// cmd/spendboard-worker and cmd/seed-demo.
package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"spendboard/internal/backend"
	"spendboard/internal/config"
	"spendboard/internal/log"
	"spendboard/internal/store"
)

// SetupLogger initializes the component logger and installs it as the
// process-wide slog default.
func SetupLogger() *log.Logger {
	logger := log.New(log.Config{Level: slog.LevelInfo})
	log.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development. Errors are
// ignored; the file is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration or exits the process on
// validation failure.
func LoadAndValidateConfig(logger *log.Logger) *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", log.FieldError, err)
		os.Exit(1)
	}
	return cfg
}

// OpenStore opens the configured record store or exits on failure.
func OpenStore(logger *log.Logger, cfg *config.Config) (store.RecordStore, backend.CleanupFunc) {
	st, cleanup, err := backend.Open(backend.Config{
		Type:         backend.Type(cfg.StoreBackend),
		CSVPath:      cfg.CSVPath,
		SQLiteDBPath: cfg.SQLiteDBPath,
	}, logger)
	if err != nil {
		logger.Error("Failed to open record store", log.FieldError, err, log.FieldBackend, cfg.StoreBackend)
		os.Exit(1)
	}
	if cleanup == nil {
		cleanup = func() error { return nil }
	}
	return st, cleanup
}

// GracefulShutdown returns a context cancelled on SIGINT/SIGTERM. The
// cleanup callback runs once, after the signal and before the returned
// done channel closes.
func GracefulShutdown(logger *log.Logger, timeout time.Duration, cleanup func()) (context.Context, <-chan struct{}) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		if cleanup != nil {
			finished := make(chan struct{})
			go func() {
				cleanup()
				close(finished)
			}()
			select {
			case <-finished:
			case <-time.After(timeout):
				logger.Warn("Cleanup timed out", "timeout", timeout)
			}
		}

		cancel()
		close(done)
	}()

	return ctx, done
}
