package objectstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Local stores objects as files in a single directory.
type Local struct {
	dir string
}

var _ Store = (*Local)(nil)

// NewLocal creates dir if needed and returns a Local store rooted there.
func NewLocal(dir string) (*Local, error) {
	if dir == "" {
		return nil, errors.New("local storage directory is required")
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create storage directory: %w", err)
	}
	return &Local{dir: dir}, nil
}

// Put writes the object to a temporary file and renames it into place, so a
// failed upload never leaves a partial object under key.
func (l *Local) Put(ctx context.Context, key, contentType string, body io.Reader, size int64) error {
	if err := validateKey(key); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(l.dir, ".upload-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	written, err := io.Copy(tmp, readerWithContext(ctx, body))
	closeErr := tmp.Close()
	if err != nil {
		return fmt.Errorf("write object %s: %w", key, err)
	}
	if closeErr != nil {
		return fmt.Errorf("close object %s: %w", key, closeErr)
	}
	if size >= 0 && written != size {
		return fmt.Errorf("write object %s: wrote %d of %d bytes", key, written, size)
	}

	if err := os.Rename(tmpName, l.Path(key)); err != nil {
		return fmt.Errorf("store object %s: %w", key, err)
	}
	return nil
}

// Delete removes the object file.
func (l *Local) Delete(ctx context.Context, key string) error {
	if err := validateKey(key); err != nil {
		return err
	}
	err := os.Remove(l.Path(key))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete object %s: %w", key, err)
	}
	return nil
}

// Path returns the file path of key.
func (l *Local) Path(key string) string {
	return filepath.Join(l.dir, key)
}

type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (c ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}

func readerWithContext(ctx context.Context, r io.Reader) io.Reader {
	return ctxReader{ctx: ctx, r: r}
}
