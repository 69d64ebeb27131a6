// Package cli holds the initialization shared by cmd/grana and
// cmd/grana-worker: logging, env loading, config validation and storage
// setup.
package cli

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"grana/internal/config"
	"grana/internal/storage"
)

// SetupLogger installs the default structured logger.
func SetupLogger() *slog.Logger {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)
	return logger
}

// LoadEnvFile loads .env for local development. Missing files are fine; in
// production everything comes from real environment variables.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads the configuration or exits on validation
// failure, so binaries never run half-configured.
func LoadAndValidateConfig(logger *slog.Logger) *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
	return cfg
}

// Repositories bundles the three repository interfaces a backend provides.
type Repositories struct {
	Categories   storage.CategoryRepository
	Transactions storage.TransactionRepository
	Events       storage.EventRepository
	Close        func() error
}

// InitStorage opens the configured backend or exits.
func InitStorage(logger *slog.Logger, cfg *config.Config) Repositories {
	switch cfg.DataBackend {
	case "sqlite":
		repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
		if err != nil {
			logger.Error("Failed to initialize SQLite storage", "error", err, "path", cfg.SQLiteDBPath)
			os.Exit(1)
		}
		logger.Info("Using SQLite storage", "path", cfg.SQLiteDBPath)
		return Repositories{Categories: repo, Transactions: repo, Events: repo, Close: repo.Close}
	case "memory":
		repo := storage.NewMemoryRepository()
		logger.Warn("Using in-memory storage, data will not survive restarts")
		return Repositories{Categories: repo, Transactions: repo, Events: repo, Close: func() error { return nil }}
	default:
		logger.Error("Unknown data backend", "backend", cfg.DataBackend)
		os.Exit(1)
		return Repositories{}
	}
}
