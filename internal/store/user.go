package store

import (
	"context"

	"github.com/mediahub/mediahub-api/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// List returns every user ordered by ID.
	List(ctx context.Context) ([]domain.User, error)

	// GetByID retrieves a user by their unique ID.
	// Returns a *NotFoundError if the user does not exist.
	GetByID(ctx context.Context, id int64) (*domain.User, error)

	// GetByUsername retrieves a user, including the password hash, for login.
	// Returns a *NotFoundError if the user does not exist.
	GetByUsername(ctx context.Context, username string) (*domain.User, error)

	// Create saves a new user and sets its ID and CreatedAt.
	// The password must already be hashed.
	// Returns ErrUsernameExists or ErrEmailExists on conflicts.
	Create(ctx context.Context, user *domain.User) error

	// Update applies the set fields of update and returns the stored result.
	// Returns a *NotFoundError if the user does not exist.
	Update(ctx context.Context, id int64, update domain.UserUpdate) (*domain.User, error)

	// Delete removes a user (and, by cascade, their media).
	// Returns a *NotFoundError if the user does not exist.
	Delete(ctx context.Context, id int64) error
}
