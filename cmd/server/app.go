package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/mediahub/mediahub-api/internal/api"
	"github.com/mediahub/mediahub-api/internal/config"
	"github.com/mediahub/mediahub-api/internal/platform/objectstore"
	"github.com/mediahub/mediahub-api/internal/platform/postgres"
	"github.com/mediahub/mediahub-api/internal/service"
	"github.com/mediahub/mediahub-api/internal/service/auth"
	"github.com/mediahub/mediahub-api/internal/store"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	// Stores
	userStore  store.UserStore
	mediaStore store.MediaStore
	itemStore  store.ItemStore
	objects    objectstore.Store

	// Services
	jwtService    auth.JWTService
	authenticator *auth.Authenticator
	userService   service.UserService
	mediaService  service.MediaService
}

// newApplication wires stores and services on top of an open database.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
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

	timeout := cfg.Database.QueryTimeout
	app.userStore = postgres.NewPostgresUserStore(db, logger, timeout)
	app.mediaStore = postgres.NewPostgresMediaStore(db, logger, timeout)
	app.itemStore = postgres.NewPostgresItemStore(db, logger, timeout)

	app.objects, err = objectstore.New(ctx, cfg.Storage, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize object store: %w", err)
	}

	if err := app.wireServices(); err != nil {
		return nil, err
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// wireServices builds the services from the stores already set on app.
func (app *application) wireServices() error {
	hasher := auth.NewBcryptHasher(app.config.Auth.BcryptCost)

	var err error
	app.authenticator, err = auth.NewAuthenticator(app.userStore, hasher, auth.NewBcryptVerifier(), app.jwtService)
	if err != nil {
		return fmt.Errorf("failed to initialize authenticator: %w", err)
	}

	app.userService = service.NewUserService(app.userStore, app.mediaStore, app.objects, hasher, app.logger)
	app.mediaService = service.NewMediaService(app.mediaStore, app.objects, app.logger)
	return nil
}

// setupRouter creates the HTTP handler for the application.
func (app *application) setupRouter() http.Handler {
	return api.NewRouter(api.Dependencies{
		Logger:         app.logger,
		JWTService:     app.jwtService,
		Authenticator:  app.authenticator,
		UserService:    app.userService,
		MediaService:   app.mediaService,
		ItemStore:      app.itemStore,
		MaxUploadBytes: app.config.Storage.MaxUploadBytes,
		RequestLogging: true,
	})
}

// Run serves until ctx is canceled, then shuts down and releases resources.
func (app *application) Run(ctx context.Context) error {
	defer app.cleanup()

	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		closeDB(app.db, app.logger)
	}
	app.logger.Info("Application shutdown completed")
}
