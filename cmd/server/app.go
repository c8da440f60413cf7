package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/javohir-a/kutubxona/internal/config"
	"github.com/javohir-a/kutubxona/internal/platform/postgres"
	"github.com/javohir-a/kutubxona/internal/service/auth"
	"github.com/javohir-a/kutubxona/internal/store"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	// Configuration
	config *config.Config

	// Core services
	logger *slog.Logger
	db     *sql.DB

	// Stores (using interfaces for proper abstraction)
	userStore      store.UserStore
	authorStore    store.AuthorStore
	bookStore      store.BookStore
	genreStore     store.GenreStore
	publisherStore store.PublisherStore
	reviewStore    store.ReviewStore
	tokenBlacklist store.TokenBlacklist

	// Service interfaces
	jwtService     auth.JWTService
	passwordHasher auth.PasswordHasher
	passwordVerify auth.PasswordVerifier
}

// newApplication creates a new application instance with all dependencies
// initialized. It accepts core dependencies like configuration, logger, and
// database connection that must be established before initialization.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	hasher := auth.NewBcryptHasher(0)
	app.passwordHasher = hasher
	app.passwordVerify = hasher

	app.userStore = postgres.NewPostgresUserStore(db, logger)
	app.authorStore = postgres.NewPostgresAuthorStore(db, logger)
	app.bookStore = postgres.NewPostgresBookStore(db, logger)
	app.genreStore = postgres.NewPostgresGenreStore(db, logger)
	app.publisherStore = postgres.NewPostgresPublisherStore(db, logger)
	app.reviewStore = postgres.NewPostgresReviewStore(db, logger)
	app.tokenBlacklist = postgres.NewPostgresTokenBlacklist(db, logger)

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
