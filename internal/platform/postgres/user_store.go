package postgres

import (
	"context"
	"log/slog"
	"time"

	"github.com/mediahub/mediahub-api/internal/domain"
	"github.com/mediahub/mediahub-api/internal/platform/logger"
	"github.com/mediahub/mediahub-api/internal/store"
)

const userColumns = `user_id, username, email, role, password_hash, created_at`

// PostgresUserStore implements the store.UserStore interface
// using a PostgreSQL database as the storage backend.
type PostgresUserStore struct {
	db      store.DBTX
	logger  *slog.Logger
	timeout time.Duration
}

// NewPostgresUserStore creates a new PostgreSQL implementation of the UserStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used. A non-positive timeout
// falls back to DefaultQueryTimeout.
func NewPostgresUserStore(db store.DBTX, logger *slog.Logger, timeout time.Duration) *PostgresUserStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresUserStore{
		db:      db,
		logger:  logger.With(slog.String("component", "user_store")),
		timeout: normalizeTimeout(timeout),
	}
}

// Ensure PostgresUserStore implements store.UserStore interface
var _ store.UserStore = (*PostgresUserStore)(nil)

func scanUser(row rowScanner) (*domain.User, error) {
	var user domain.User
	var role string
	if err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&role,
		&user.HashedPassword,
		&user.CreatedAt,
	); err != nil {
		return nil, err
	}
	user.Role = domain.Role(role)
	return &user, nil
}

// List implements store.UserStore.List
func (s *PostgresUserStore) List(ctx context.Context) ([]domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY user_id`)
	if err != nil {
		return nil, translate(log, store.EntityUser, "list", 0, err)
	}
	defer func() { _ = rows.Close() }()

	users := make([]domain.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, translate(log, store.EntityUser, "list", 0, err)
		}
		users = append(users, *user)
	}
	if err := rows.Err(); err != nil {
		return nil, translate(log, store.EntityUser, "list", 0, err)
	}

	return users, nil
}

// GetByID implements store.UserStore.GetByID
func (s *PostgresUserStore) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	log.Debug("retrieving user by ID", slog.Int64("user_id", id))

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	row := s.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE user_id = $1`, id)
	user, err := scanUser(row)
	if err != nil {
		return nil, translate(log, store.EntityUser, "get", id, err)
	}
	return user, nil
}

// GetByUsername implements store.UserStore.GetByUsername
// The not-found error carries the username rather than an ID.
func (s *PostgresUserStore) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	row := s.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = $1`, username)
	user, err := scanUser(row)
	if err != nil {
		err = translate(log, store.EntityUser, "get", 0, err)
		if nf, ok := err.(*store.NotFoundError); ok {
			nf.ID = username
		}
		return nil, err
	}
	return user, nil
}

// Create implements store.UserStore.Create
// Returns store.ErrUsernameExists or store.ErrEmailExists on unique violations.
func (s *PostgresUserStore) Create(ctx context.Context, user *domain.User) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := user.Validate(); err != nil {
		log.Warn("user validation failed during create", slog.String("error", err.Error()))
		return err
	}

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	err := s.db.QueryRowContext(ctx, `
		INSERT INTO users (username, email, role, password_hash)
		VALUES ($1, $2, $3, $4)
		RETURNING user_id, created_at
	`,
		user.Username,
		user.Email,
		string(user.Role),
		user.HashedPassword,
	).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		return translate(log, store.EntityUser, "create", 0, err)
	}

	log.Info("user created successfully", slog.Int64("user_id", user.ID))
	return nil
}

// Update implements store.UserStore.Update
// Only the non-nil fields of update are written.
func (s *PostgresUserStore) Update(
	ctx context.Context,
	id int64,
	update domain.UserUpdate,
) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if update.Role != nil && !update.Role.Valid() {
		return nil, domain.ErrInvalidRole
	}

	var role *string
	if update.Role != nil {
		r := string(*update.Role)
		role = &r
	}

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	row := s.db.QueryRowContext(ctx, `
		UPDATE users SET
			username = COALESCE($2, username),
			email = COALESCE($3, email),
			password_hash = COALESCE($4, password_hash),
			role = COALESCE($5, role)
		WHERE user_id = $1
		RETURNING `+userColumns,
		id,
		update.Username,
		update.Email,
		update.HashedPassword,
		role,
	)
	user, err := scanUser(row)
	if err != nil {
		return nil, translate(log, store.EntityUser, "update", id, err)
	}

	log.Info("user updated successfully", slog.Int64("user_id", id))
	return user, nil
}

// Delete implements store.UserStore.Delete
// The user's media rows are removed by ON DELETE CASCADE.
func (s *PostgresUserStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	result, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE user_id = $1`, id)
	if err != nil {
		return translate(log, store.EntityUser, "delete", id, err)
	}
	if err := CheckRowsAffected(result, store.EntityUser, id); err != nil {
		return err
	}

	log.Info("user deleted successfully", slog.Int64("user_id", id))
	return nil
}
