package middleware_test

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mediahub/mediahub-api/internal/api/middleware"
	"github.com/mediahub/mediahub-api/internal/api/shared"
	"github.com/mediahub/mediahub-api/internal/domain"
	"github.com/mediahub/mediahub-api/internal/mocks"
	"github.com/mediahub/mediahub-api/internal/platform/logger"
	"github.com/mediahub/mediahub-api/internal/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// errorRecorder captures the error handed to the injected error handler.
type errorRecorder struct {
	err error
}

func (e *errorRecorder) handle(w http.ResponseWriter, r *http.Request, err error) {
	e.err = err
	w.WriteHeader(http.StatusTeapot)
}

func TestAuthenticate(t *testing.T) {
	validClaims := &auth.Claims{UserID: 42, Role: domain.RoleAdmin}

	jwtService := &mocks.MockJWTService{
		ValidateTokenFn: func(ctx context.Context, token string) (*auth.Claims, error) {
			switch token {
			case "good":
				return validClaims, nil
			case "expired":
				return nil, auth.ErrExpiredToken
			default:
				return nil, auth.ErrInvalidToken
			}
		},
	}

	tests := []struct {
		name       string
		header     string
		wantErr    error
		wantCalled bool
	}{
		{name: "missing header", header: "", wantErr: auth.ErrMissingToken},
		{name: "wrong scheme", header: "Basic abc", wantErr: auth.ErrInvalidToken},
		{name: "no token", header: "Bearer", wantErr: auth.ErrInvalidToken},
		{name: "empty token", header: "Bearer ", wantErr: auth.ErrInvalidToken},
		{name: "extra parts", header: "Bearer good extra", wantErr: auth.ErrInvalidToken},
		{name: "tampered token", header: "Bearer tampered", wantErr: auth.ErrInvalidToken},
		{name: "expired token", header: "Bearer expired", wantErr: auth.ErrExpiredToken},
		{name: "valid token", header: "Bearer good", wantCalled: true},
		{name: "scheme is case insensitive", header: "bearer good", wantCalled: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &errorRecorder{}
			mw := middleware.NewAuthMiddleware(jwtService, rec.handle)

			var gotIdentity domain.Identity
			called := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
				gotIdentity, _ = shared.IdentityFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()

			mw.Authenticate(next).ServeHTTP(rr, req)

			assert.Equal(t, tt.wantCalled, called)
			if tt.wantCalled {
				assert.Equal(t, http.StatusOK, rr.Code)
				assert.NoError(t, rec.err)
				assert.Equal(t, domain.Identity{SubjectID: 42, Role: domain.RoleAdmin}, gotIdentity)
				return
			}
			assert.Equal(t, http.StatusTeapot, rr.Code)
			assert.ErrorIs(t, rec.err, tt.wantErr)
		})
	}
}

func TestTraceMiddleware(t *testing.T) {
	var traceID string
	var hasLogger bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID = shared.GetTraceID(r.Context())
		hasLogger = logger.FromContext(r.Context()) != slog.Default()
	})

	rr := httptest.NewRecorder()
	middleware.NewTraceMiddleware(nil)(next).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Len(t, traceID, shared.TraceIDLength*2)
	assert.True(t, hasLogger)
	assert.Equal(t, traceID, rr.Header().Get(middleware.TraceIDHeader))
}

func TestRecoverer(t *testing.T) {
	t.Run("converts panic to error", func(t *testing.T) {
		rec := &errorRecorder{}
		panicking := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			panic("boom")
		})

		rr := httptest.NewRecorder()
		middleware.NewRecoverer(rec.handle)(panicking).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusTeapot, rr.Code)
		assert.ErrorIs(t, rec.err, middleware.ErrPanic)
		assert.Contains(t, rec.err.Error(), "boom")
	})

	t.Run("passes through normal requests", func(t *testing.T) {
		rec := &errorRecorder{}
		ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		})

		rr := httptest.NewRecorder()
		middleware.NewRecoverer(rec.handle)(ok).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusNoContent, rr.Code)
		assert.Nil(t, rec.err)
	})

	t.Run("re-panics on abort", func(t *testing.T) {
		rec := &errorRecorder{}
		aborting := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			panic(http.ErrAbortHandler)
		})

		handler := middleware.NewRecoverer(rec.handle)(aborting)
		assert.PanicsWithValue(t, http.ErrAbortHandler, func() {
			handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		})
		assert.False(t, errors.Is(rec.err, middleware.ErrPanic))
	})
}
