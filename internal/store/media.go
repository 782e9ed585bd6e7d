package store

import (
	"context"

	"github.com/mediahub/mediahub-api/internal/domain"
)

// MediaStore defines the interface for media metadata persistence.
type MediaStore interface {
	// List returns every media item ordered by ID.
	List(ctx context.Context) ([]domain.Media, error)

	// ListByOwner returns the media items owned by ownerID ordered by ID.
	ListByOwner(ctx context.Context, ownerID int64) ([]domain.Media, error)

	// GetByID retrieves a media item together with its owner's username.
	// Returns a *NotFoundError if the media item does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Media, error)

	// Create saves a new media item and sets its ID and CreatedAt.
	// Returns ErrInvalidEntity if the owner does not exist.
	Create(ctx context.Context, media *domain.Media) error

	// Update applies the set fields of update and returns the stored result.
	// Returns a *NotFoundError if the media item does not exist.
	Update(ctx context.Context, id int64, update domain.MediaUpdate) (*domain.Media, error)

	// Delete removes a media record. The stored object is not touched.
	// Returns a *NotFoundError if the media item does not exist.
	Delete(ctx context.Context, id int64) error
}
