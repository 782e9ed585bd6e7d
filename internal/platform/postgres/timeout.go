package postgres

import (
	"context"
	"time"
)

// DefaultQueryTimeout applies when a store is constructed without a timeout.
const DefaultQueryTimeout = 5 * time.Second

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func normalizeTimeout(d time.Duration) time.Duration {
	if d <= 0 {
		return DefaultQueryTimeout
	}
	return d
}

// withTimeout bounds a single datastore round trip.
func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, d)
}
