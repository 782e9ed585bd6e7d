// Package shared holds the request-scoped context values, request decoding
// and validation helpers, and JSON response writers used by the API
// handlers and middleware.
package shared
