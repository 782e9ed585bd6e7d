package postgres

import (
	"context"
	"log/slog"
	"time"

	"github.com/mediahub/mediahub-api/internal/domain"
	"github.com/mediahub/mediahub-api/internal/platform/logger"
	"github.com/mediahub/mediahub-api/internal/store"
)

// PostgresItemStore implements the store.ItemStore interface.
type PostgresItemStore struct {
	db      store.DBTX
	logger  *slog.Logger
	timeout time.Duration
}

// NewPostgresItemStore creates a new PostgreSQL implementation of the ItemStore interface.
func NewPostgresItemStore(db store.DBTX, logger *slog.Logger, timeout time.Duration) *PostgresItemStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresItemStore{
		db:      db,
		logger:  logger.With(slog.String("component", "item_store")),
		timeout: normalizeTimeout(timeout),
	}
}

var _ store.ItemStore = (*PostgresItemStore)(nil)

func scanItem(row rowScanner) (*domain.Item, error) {
	var item domain.Item
	if err := row.Scan(&item.ID, &item.Name, &item.CreatedAt); err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *PostgresItemStore) List(ctx context.Context) ([]domain.Item, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, `SELECT item_id, name, created_at FROM items ORDER BY item_id`)
	if err != nil {
		return nil, translate(log, store.EntityItem, "list", 0, err)
	}
	defer func() { _ = rows.Close() }()

	items := make([]domain.Item, 0)
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, translate(log, store.EntityItem, "list", 0, err)
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, translate(log, store.EntityItem, "list", 0, err)
	}
	return items, nil
}

func (s *PostgresItemStore) GetByID(ctx context.Context, id int64) (*domain.Item, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	item, err := scanItem(s.db.QueryRowContext(ctx,
		`SELECT item_id, name, created_at FROM items WHERE item_id = $1`, id))
	if err != nil {
		return nil, translate(log, store.EntityItem, "get", id, err)
	}
	return item, nil
}

func (s *PostgresItemStore) Create(ctx context.Context, item *domain.Item) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := item.Validate(); err != nil {
		return err
	}

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	err := s.db.QueryRowContext(ctx,
		`INSERT INTO items (name) VALUES ($1) RETURNING item_id, created_at`,
		item.Name,
	).Scan(&item.ID, &item.CreatedAt)
	if err != nil {
		return translate(log, store.EntityItem, "create", 0, err)
	}

	log.Info("item created successfully", slog.Int64("item_id", item.ID))
	return nil
}

func (s *PostgresItemStore) Update(ctx context.Context, id int64, name string) (*domain.Item, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if name == "" {
		return nil, domain.ErrEmptyItemName
	}

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	item, err := scanItem(s.db.QueryRowContext(ctx,
		`UPDATE items SET name = $2 WHERE item_id = $1 RETURNING item_id, name, created_at`,
		id, name))
	if err != nil {
		return nil, translate(log, store.EntityItem, "update", id, err)
	}
	return item, nil
}

func (s *PostgresItemStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	result, err := s.db.ExecContext(ctx, `DELETE FROM items WHERE item_id = $1`, id)
	if err != nil {
		return translate(log, store.EntityItem, "delete", id, err)
	}
	return CheckRowsAffected(result, store.EntityItem, id)
}
