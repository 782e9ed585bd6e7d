package mocks

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/mediahub/mediahub-api/internal/domain"
	"github.com/mediahub/mediahub-api/internal/store"
)

// MockMediaStore implements store.MediaStore in memory.
type MockMediaStore struct {
	callCounter

	ListFn    func(ctx context.Context) ([]domain.Media, error)
	GetByIDFn func(ctx context.Context, id int64) (*domain.Media, error)

	ListByOwnerFn func(ctx context.Context, ownerID int64) ([]domain.Media, error)
	CreateFn  func(ctx context.Context, media *domain.Media) error
	UpdateFn  func(ctx context.Context, id int64, update domain.MediaUpdate) (*domain.Media, error)
	DeleteFn  func(ctx context.Context, id int64) error

	mu     sync.Mutex
	media  map[int64]domain.Media
	nextID int64
}

var _ store.MediaStore = (*MockMediaStore)(nil)

// NewMockMediaStore creates a store holding seed.
func NewMockMediaStore(seed ...domain.Media) *MockMediaStore {
	m := &MockMediaStore{media: make(map[int64]domain.Media), nextID: 1}
	for _, item := range seed {
		m.media[item.ID] = item
		if item.ID >= m.nextID {
			m.nextID = item.ID + 1
		}
	}
	return m
}

// Snapshot returns the stored media item without counting a call.
func (m *MockMediaStore) Snapshot(id int64) (domain.Media, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	item, ok := m.media[id]
	return item, ok
}

// Len returns the number of stored media items without counting a call.
func (m *MockMediaStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.media)
}

func (m *MockMediaStore) List(ctx context.Context) ([]domain.Media, error) {
	m.record("List")
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	items := make([]domain.Media, 0, len(m.media))
	for _, item := range m.media {
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

func (m *MockMediaStore) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Media, error) {
	m.record("ListByOwner")
	if m.ListByOwnerFn != nil {
		return m.ListByOwnerFn(ctx, ownerID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	items := make([]domain.Media, 0)
	for _, item := range m.media {
		if item.OwnerID == ownerID {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

func (m *MockMediaStore) GetByID(ctx context.Context, id int64) (*domain.Media, error) {
	m.record("GetByID")
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	item, ok := m.media[id]
	if !ok {
		return nil, store.NewNotFoundError(store.EntityMedia, id)
	}
	return &item, nil
}

func (m *MockMediaStore) Create(ctx context.Context, media *domain.Media) error {
	m.record("Create")
	if m.CreateFn != nil {
		return m.CreateFn(ctx, media)
	}
	if err := media.Validate(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	media.ID = m.nextID
	m.nextID++
	media.CreatedAt = time.Now().UTC()
	m.media[media.ID] = *media
	return nil
}

func (m *MockMediaStore) Update(ctx context.Context, id int64, update domain.MediaUpdate) (*domain.Media, error) {
	m.record("Update")
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, id, update)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	item, ok := m.media[id]
	if !ok {
		return nil, store.NewNotFoundError(store.EntityMedia, id)
	}
	update.Apply(&item)
	m.media[id] = item
	return &item, nil
}

func (m *MockMediaStore) Delete(ctx context.Context, id int64) error {
	m.record("Delete")
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.media[id]; !ok {
		return store.NewNotFoundError(store.EntityMedia, id)
	}
	delete(m.media, id)
	return nil
}
