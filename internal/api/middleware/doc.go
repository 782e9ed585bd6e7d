// Package middleware contains the HTTP middleware of the API: request
// tracing, bearer token authentication and panic recovery. Failures are
// handed to an injected ErrorHandler so that every error response is
// shaped in one place.
package middleware

import "net/http"

// ErrorHandler writes the response for err.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)
