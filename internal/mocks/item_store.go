package mocks

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/mediahub/mediahub-api/internal/domain"
	"github.com/mediahub/mediahub-api/internal/store"
)

// MockItemStore implements store.ItemStore in memory.
type MockItemStore struct {
	callCounter

	ListFn   func(ctx context.Context) ([]domain.Item, error)
	CreateFn func(ctx context.Context, item *domain.Item) error

	mu     sync.Mutex
	items  map[int64]domain.Item
	nextID int64
}

var _ store.ItemStore = (*MockItemStore)(nil)

// NewMockItemStore creates a store holding seed.
func NewMockItemStore(seed ...domain.Item) *MockItemStore {
	m := &MockItemStore{items: make(map[int64]domain.Item), nextID: 1}
	for _, item := range seed {
		m.items[item.ID] = item
		if item.ID >= m.nextID {
			m.nextID = item.ID + 1
		}
	}
	return m
}

func (m *MockItemStore) List(ctx context.Context) ([]domain.Item, error) {
	m.record("List")
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	items := make([]domain.Item, 0, len(m.items))
	for _, item := range m.items {
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

func (m *MockItemStore) GetByID(ctx context.Context, id int64) (*domain.Item, error) {
	m.record("GetByID")
	m.mu.Lock()
	defer m.mu.Unlock()
	item, ok := m.items[id]
	if !ok {
		return nil, store.NewNotFoundError(store.EntityItem, id)
	}
	return &item, nil
}

func (m *MockItemStore) Create(ctx context.Context, item *domain.Item) error {
	m.record("Create")
	if m.CreateFn != nil {
		return m.CreateFn(ctx, item)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	item.ID = m.nextID
	m.nextID++
	item.CreatedAt = time.Now().UTC()
	m.items[item.ID] = *item
	return nil
}

func (m *MockItemStore) Update(ctx context.Context, id int64, name string) (*domain.Item, error) {
	m.record("Update")
	m.mu.Lock()
	defer m.mu.Unlock()
	item, ok := m.items[id]
	if !ok {
		return nil, store.NewNotFoundError(store.EntityItem, id)
	}
	item.Name = name
	m.items[id] = item
	return &item, nil
}

func (m *MockItemStore) Delete(ctx context.Context, id int64) error {
	m.record("Delete")
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[id]; !ok {
		return store.NewNotFoundError(store.EntityItem, id)
	}
	delete(m.items, id)
	return nil
}
