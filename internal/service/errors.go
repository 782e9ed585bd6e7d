package service

import "errors"

// Common service errors - sentinel errors used across service implementations.
// The API layer maps them to HTTP status codes.
var (
	// ErrForbidden indicates the caller may not modify the resource.
	// API layer should map this to HTTP 403 Forbidden.
	ErrForbidden = errors.New("operation not permitted for caller")

	// ErrEmptyFile is returned when an upload carries no bytes.
	ErrEmptyFile = errors.New("uploaded file is empty")

	// ErrUnsupportedMediaType is returned when the uploaded bytes are not an
	// image, video or audio file.
	ErrUnsupportedMediaType = errors.New("unsupported media type")
)
