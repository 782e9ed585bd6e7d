package postgres

import (
	"context"
	"log/slog"
	"time"

	"github.com/mediahub/mediahub-api/internal/domain"
	"github.com/mediahub/mediahub-api/internal/platform/logger"
	"github.com/mediahub/mediahub-api/internal/store"
)

// Media rows are always read joined with their owner so that every read
// carries the owner's username.
const mediaSelect = `
	SELECT m.media_id, m.filename, m.filesize, m.media_type, m.title,
		m.description, m.user_id, u.username, m.created_at
	FROM media m
	JOIN users u ON u.user_id = m.user_id`

// PostgresMediaStore implements the store.MediaStore interface
// using a PostgreSQL database as the storage backend.
type PostgresMediaStore struct {
	db      store.DBTX
	logger  *slog.Logger
	timeout time.Duration
}

// NewPostgresMediaStore creates a new PostgreSQL implementation of the MediaStore interface.
func NewPostgresMediaStore(db store.DBTX, logger *slog.Logger, timeout time.Duration) *PostgresMediaStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresMediaStore{
		db:      db,
		logger:  logger.With(slog.String("component", "media_store")),
		timeout: normalizeTimeout(timeout),
	}
}

// Ensure PostgresMediaStore implements store.MediaStore interface
var _ store.MediaStore = (*PostgresMediaStore)(nil)

func scanMedia(row rowScanner) (*domain.Media, error) {
	var media domain.Media
	if err := row.Scan(
		&media.ID,
		&media.Filename,
		&media.Filesize,
		&media.MediaType,
		&media.Title,
		&media.Description,
		&media.OwnerID,
		&media.OwnerUsername,
		&media.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &media, nil
}

// List implements store.MediaStore.List
func (s *PostgresMediaStore) List(ctx context.Context) ([]domain.Media, error) {
	return s.query(ctx, "list", 0, mediaSelect+` ORDER BY m.media_id`)
}

// ListByOwner implements store.MediaStore.ListByOwner
func (s *PostgresMediaStore) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Media, error) {
	return s.query(ctx, "list_by_owner", ownerID,
		mediaSelect+` WHERE m.user_id = $1 ORDER BY m.media_id`, ownerID)
}

func (s *PostgresMediaStore) query(
	ctx context.Context,
	op string,
	id int64,
	query string,
	args ...interface{},
) ([]domain.Media, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, translate(log, store.EntityMedia, op, id, err)
	}
	defer func() { _ = rows.Close() }()

	items := make([]domain.Media, 0)
	for rows.Next() {
		media, err := scanMedia(rows)
		if err != nil {
			return nil, translate(log, store.EntityMedia, op, id, err)
		}
		items = append(items, *media)
	}
	if err := rows.Err(); err != nil {
		return nil, translate(log, store.EntityMedia, op, id, err)
	}

	return items, nil
}

// GetByID implements store.MediaStore.GetByID
func (s *PostgresMediaStore) GetByID(ctx context.Context, id int64) (*domain.Media, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	log.Debug("retrieving media by ID", slog.Int64("media_id", id))

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	media, err := scanMedia(s.db.QueryRowContext(ctx, mediaSelect+` WHERE m.media_id = $1`, id))
	if err != nil {
		return nil, translate(log, store.EntityMedia, "get", id, err)
	}
	return media, nil
}

// Create implements store.MediaStore.Create
// Returns store.ErrInvalidEntity if the owner does not exist.
func (s *PostgresMediaStore) Create(ctx context.Context, media *domain.Media) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := media.Validate(); err != nil {
		log.Warn("media validation failed during create", slog.String("error", err.Error()))
		return err
	}

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	err := s.db.QueryRowContext(ctx, `
		INSERT INTO media (filename, filesize, media_type, title, description, user_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING media_id, created_at
	`,
		media.Filename,
		media.Filesize,
		media.MediaType,
		media.Title,
		media.Description,
		media.OwnerID,
	).Scan(&media.ID, &media.CreatedAt)
	if err != nil {
		return translate(log, store.EntityMedia, "create", 0, err)
	}

	log.Info("media created successfully",
		slog.Int64("media_id", media.ID),
		slog.Int64("user_id", media.OwnerID),
		slog.String("media_type", media.MediaType))
	return nil
}

// Update implements store.MediaStore.Update
func (s *PostgresMediaStore) Update(
	ctx context.Context,
	id int64,
	update domain.MediaUpdate,
) (*domain.Media, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	row := s.db.QueryRowContext(ctx, `
		WITH m AS (
			UPDATE media SET
				title = COALESCE($2, title),
				description = COALESCE($3, description)
			WHERE media_id = $1
			RETURNING *
		)
		SELECT m.media_id, m.filename, m.filesize, m.media_type, m.title,
			m.description, m.user_id, u.username, m.created_at
		FROM m
		JOIN users u ON u.user_id = m.user_id
	`, id, update.Title, update.Description)

	media, err := scanMedia(row)
	if err != nil {
		return nil, translate(log, store.EntityMedia, "update", id, err)
	}

	log.Info("media updated successfully", slog.Int64("media_id", id))
	return media, nil
}

// Delete implements store.MediaStore.Delete
func (s *PostgresMediaStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	result, err := s.db.ExecContext(ctx, `DELETE FROM media WHERE media_id = $1`, id)
	if err != nil {
		return translate(log, store.EntityMedia, "delete", id, err)
	}
	if err := CheckRowsAffected(result, store.EntityMedia, id); err != nil {
		return err
	}

	log.Info("media deleted successfully", slog.Int64("media_id", id))
	return nil
}
