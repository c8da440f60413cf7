// Package main implements the entry point for the kutubxona API server,
// a library catalog backend with JWT authentication.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"

	"github.com/javohir-a/kutubxona/internal/config"
	"github.com/javohir-a/kutubxona/internal/platform/logger"
	"github.com/javohir-a/kutubxona/internal/redact"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	cfg, appLogger, err := initializeApp()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	ctx := context.Background()

	db, err := setupAppDatabase(cfg, appLogger)
	if err != nil {
		// Connection errors can embed the credentialed database URL.
		log.Fatalf("Failed to connect to database: %s", redact.Error(err))
	}

	if err := runMigrations(db, appLogger); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	app, err := newApplication(cfg, appLogger, db)
	if err != nil {
		log.Fatalf("Failed to build application: %v", err)
	}

	if err := app.Run(ctx); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// initializeApp loads configuration and sets up structured logging.
func initializeApp() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	appLogger.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)

	return cfg, appLogger, nil
}
