package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/mediahub/mediahub-api/internal/api/shared"
	"github.com/mediahub/mediahub-api/internal/platform/logger"
	"github.com/mediahub/mediahub-api/internal/service/auth"
)

// AuthMiddleware provides JWT authentication for routes.
type AuthMiddleware struct {
	jwtService auth.JWTService
	onError    ErrorHandler
}

// NewAuthMiddleware creates a new AuthMiddleware with the given dependencies.
func NewAuthMiddleware(jwtService auth.JWTService, onError ErrorHandler) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		onError:    onError,
	}
}

// Authenticate validates the bearer token from the Authorization header and
// adds the caller's identity to the request context. It never consults the
// user store.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			m.onError(w, r, auth.ErrMissingToken)
			return
		}

		scheme, token, found := strings.Cut(authHeader, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") || token == "" || strings.Contains(token, " ") {
			m.onError(w, r, fmt.Errorf("%w: malformed authorization header", auth.ErrInvalidToken))
			return
		}

		claims, err := m.jwtService.ValidateToken(r.Context(), token)
		if err != nil {
			m.onError(w, r, err)
			return
		}

		identity := claims.Identity()
		ctx := shared.WithIdentity(r.Context(), identity)
		log := logger.FromContext(ctx).With(slog.Int64("user_id", identity.SubjectID))
		ctx = logger.WithLogger(ctx, log)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
