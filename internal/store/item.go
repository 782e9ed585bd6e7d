package store

import (
	"context"

	"github.com/mediahub/mediahub-api/internal/domain"
)

// ItemStore defines the interface for generic item persistence.
type ItemStore interface {
	List(ctx context.Context) ([]domain.Item, error)
	GetByID(ctx context.Context, id int64) (*domain.Item, error)
	Create(ctx context.Context, item *domain.Item) error
	Update(ctx context.Context, id int64, name string) (*domain.Item, error)
	Delete(ctx context.Context, id int64) error
}
