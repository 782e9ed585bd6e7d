package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/mediahub/mediahub-api/internal/api/shared"
	"github.com/mediahub/mediahub-api/internal/domain"
	"github.com/mediahub/mediahub-api/internal/platform/logger"
	"github.com/mediahub/mediahub-api/internal/service/auth"
)

// TokenIssuer exchanges credentials for a session.
type TokenIssuer interface {
	IssueToken(ctx context.Context, username, password string) (*auth.Session, error)
}

// UserGetter loads a user record by id.
type UserGetter interface {
	GetUser(ctx context.Context, id int64) (*domain.User, error)
}

// AuthHandler handles authentication-related API requests.
type AuthHandler struct {
	issuer TokenIssuer
	users  UserGetter
	logger *slog.Logger
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(issuer TokenIssuer, users UserGetter, logger *slog.Logger) *AuthHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for AuthHandler")
	}
	return &AuthHandler{
		issuer: issuer,
		users:  users,
		logger: logger.With(slog.String("component", "auth_handler")),
	}
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeAndValidate(w, r, &req); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	session, err := h.issuer.IssueToken(r.Context(), req.Username, req.Password)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, LoginResponse{
		Message:   "Logged in successfully.",
		Token:     session.Token,
		ExpiresAt: formatExpiry(session.ExpiresAt),
		User:      session.User,
	})
}

// Me handles GET /api/auth/me and returns the caller's own record.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	identity, err := identityFromRequest(r)
	if err != nil {
		log.Warn("identity not found in request context")
		HandleAPIError(w, r, err)
		return
	}

	user, err := h.users.GetUser(r.Context(), identity.SubjectID)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, user)
}
