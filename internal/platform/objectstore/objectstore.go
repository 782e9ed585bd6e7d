// Package objectstore keeps the bytes of uploaded media. Records in the
// database refer to objects by key; the key is generated by the server.
package objectstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/mediahub/mediahub-api/internal/config"
)

// Backend names accepted in storage.backend.
const (
	BackendLocal = "local"
	BackendS3    = "s3"
)

// ErrInvalidKey is returned for keys that are empty or could escape the
// storage root.
var ErrInvalidKey = errors.New("invalid object key")

// Store persists and removes opaque objects.
type Store interface {
	// Put stores size bytes read from body under key.
	Put(ctx context.Context, key, contentType string, body io.Reader, size int64) error

	// Delete removes the object stored under key. Deleting a missing object is not an error.
	Delete(ctx context.Context, key string) error
}

// NewKey returns a fresh object key with the given extension, e.g. ".png".
func NewKey(ext string) string {
	return uuid.NewString() + strings.ToLower(ext)
}

func validateKey(key string) error {
	if key == "" || key == "." || key == ".." ||
		strings.ContainsAny(key, `/\`) || strings.ContainsRune(key, 0) {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}

// New builds the Store selected by cfg.Backend.
func New(ctx context.Context, cfg config.StorageConfig, logger *slog.Logger) (Store, error) {
	if logger == nil {
		logger = slog.Default()
	}

	switch cfg.Backend {
	case BackendLocal:
		logger.Info("using local object storage", slog.String("dir", cfg.LocalDir))
		return NewLocal(cfg.LocalDir)
	case BackendS3:
		logger.Info("using S3 object storage",
			slog.String("bucket", cfg.S3Bucket),
			slog.String("region", cfg.S3Region),
			slog.String("endpoint", cfg.S3Endpoint))
		return NewS3(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
