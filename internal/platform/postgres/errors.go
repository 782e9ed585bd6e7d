package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mediahub/mediahub-api/internal/redact"
	"github.com/mediahub/mediahub-api/internal/store"
)

// PostgreSQL error codes
const (
	// uniqueViolationCode is the PostgreSQL error code for unique constraint violations
	uniqueViolationCode = "23505"

	// foreignKeyViolationCode is the PostgreSQL error code for foreign key violations
	foreignKeyViolationCode = "23503"

	// checkViolationCode is the PostgreSQL error code for check constraint violations
	checkViolationCode = "23514"

	// notNullViolationCode is the PostgreSQL error code for not null violations
	notNullViolationCode = "23502"
)

// Unique constraint names declared in the migrations.
const (
	usersUsernameConstraint = "users_username_key"
	usersEmailConstraint    = "users_email_key"
)

// MapError maps a database error to an appropriate store error.
// Errors without a specific mapping are wrapped as store.ErrDataAccess so that
// callers never see raw driver text as a classification.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %v", store.ErrNotFound, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolationCode:
			switch pgErr.ConstraintName {
			case usersUsernameConstraint:
				return fmt.Errorf("%w: %v", store.ErrUsernameExists, err)
			case usersEmailConstraint:
				return fmt.Errorf("%w: %v", store.ErrEmailExists, err)
			}
			return fmt.Errorf("%w: %v", store.ErrDuplicate, err)
		case foreignKeyViolationCode:
			return fmt.Errorf(
				"%w: foreign key violation (%s): %v",
				store.ErrInvalidEntity,
				pgErr.ConstraintName,
				err,
			)
		case checkViolationCode:
			return fmt.Errorf(
				"%w: check constraint violation (%s): %v",
				store.ErrInvalidEntity,
				pgErr.ConstraintName,
				err,
			)
		case notNullViolationCode:
			return fmt.Errorf(
				"%w: not null violation (%s): %v",
				store.ErrInvalidEntity,
				pgErr.ColumnName,
				err,
			)
		}
	}

	return fmt.Errorf("%w: %v", store.ErrDataAccess, err)
}

// CheckRowsAffected examines the number of rows affected by an UPDATE or DELETE.
// Zero rows means the target does not exist and yields a *store.NotFoundError.
func CheckRowsAffected(result sql.Result, entity string, id int64) error {
	if result == nil {
		return fmt.Errorf("nil result provided to CheckRowsAffected")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return store.NewNotFoundError(entity, id)
	}

	return nil
}

// translate turns a failed query into the error returned to callers.
// Not-found, duplicate and invalid-entity outcomes pass through as store
// errors; anything else is logged (redacted) and reported as a StoreError.
func translate(log *slog.Logger, entity, operation string, id int64, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug(entity+" not found", slog.Int64("id", id))
		return store.NewNotFoundError(entity, id)
	}

	mapped := MapError(err)
	if errors.Is(mapped, store.ErrDuplicate) || errors.Is(mapped, store.ErrInvalidEntity) {
		log.Warn(entity+" "+operation+" rejected by constraint",
			slog.String("error", redact.Error(err)))
		return mapped
	}

	log.Error(entity+" "+operation+" failed",
		slog.String("error", redact.Error(err)),
		slog.Int64("id", id))
	return store.NewStoreError(entity, operation, err)
}
