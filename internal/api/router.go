package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/mediahub/mediahub-api/internal/api/middleware"
	"github.com/mediahub/mediahub-api/internal/service"
	"github.com/mediahub/mediahub-api/internal/service/auth"
	"github.com/mediahub/mediahub-api/internal/store"
)

// Dependencies are the collaborators the router wires into handlers.
type Dependencies struct {
	Logger         *slog.Logger
	JWTService     auth.JWTService
	Authenticator  TokenIssuer
	UserService    service.UserService
	MediaService   service.MediaService
	ItemStore      store.ItemStore
	MaxUploadBytes int64

	// RequestLogging enables chi's access log middleware.
	RequestLogging bool
}

// NewRouter creates the application router with all routes and middleware.
func NewRouter(deps Dependencies) http.Handler {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	if deps.RequestLogging {
		r.Use(chimiddleware.Logger)
	}
	r.Use(middleware.NewTraceMiddleware(logger))
	r.Use(middleware.NewRecoverer(HandleAPIError))

	r.NotFound(NotFound)
	r.MethodNotAllowed(MethodNotAllowed)

	authMiddleware := middleware.NewAuthMiddleware(deps.JWTService, HandleAPIError)

	authHandler := NewAuthHandler(deps.Authenticator, deps.UserService, logger)
	userHandler := NewUserHandler(deps.UserService, logger)
	mediaHandler := NewMediaHandler(deps.MediaService, deps.MaxUploadBytes, logger)
	itemHandler := NewItemHandler(deps.ItemStore, logger)

	r.Route("/api", func(r chi.Router) {
		// Public endpoints
		r.Post("/auth/login", authHandler.Login)

		r.Get("/users", userHandler.ListUsers)
		r.Post("/users", userHandler.CreateUser)
		r.Get("/users/{id}", userHandler.GetUser)

		r.Get("/media", mediaHandler.ListMedia)
		r.Get("/media/{id}", mediaHandler.GetMedia)

		r.Get("/items", itemHandler.ListItems)
		r.Get("/items/{id}", itemHandler.GetItem)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Get("/auth/me", authHandler.Me)

			r.Put("/users/{id}", userHandler.UpdateUser)
			r.Delete("/users/{id}", userHandler.DeleteUser)

			r.Post("/media", mediaHandler.UploadMedia)
			r.Put("/media/{id}", mediaHandler.UpdateMedia)
			r.Delete("/media/{id}", mediaHandler.DeleteMedia)

			r.Post("/items", itemHandler.CreateItem)
			r.Put("/items/{id}", itemHandler.UpdateItem)
			r.Delete("/items/{id}", itemHandler.DeleteItem)
		})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
