package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/mediahub/mediahub-api/internal/platform/logger"
)

// ErrPanic wraps a value recovered from a panicking handler.
var ErrPanic = errors.New("handler panicked")

// NewRecoverer returns middleware that turns a panic into an error
// response produced by onError.
func NewRecoverer(onError ErrorHandler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					// ALLOW-PANIC
					panic(rec)
				}

				logger.FromContext(r.Context()).Error("recovered from panic",
					"panic", fmt.Sprint(rec),
					"stack", string(debug.Stack()))
				onError(w, r, fmt.Errorf("%w: %v", ErrPanic, rec))
			}()

			next.ServeHTTP(w, r)
		})
	}
}
