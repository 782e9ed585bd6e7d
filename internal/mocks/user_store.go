package mocks

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/mediahub/mediahub-api/internal/domain"
	"github.com/mediahub/mediahub-api/internal/store"
)

// MockUserStore implements store.UserStore in memory.
// Set a function field to override the default behaviour of one method.
type MockUserStore struct {
	callCounter

	// Function fields for customizable behavior
	ListFn          func(ctx context.Context) ([]domain.User, error)
	GetByIDFn       func(ctx context.Context, id int64) (*domain.User, error)
	GetByUsernameFn func(ctx context.Context, username string) (*domain.User, error)
	CreateFn        func(ctx context.Context, user *domain.User) error
	UpdateFn        func(ctx context.Context, id int64, update domain.UserUpdate) (*domain.User, error)
	DeleteFn        func(ctx context.Context, id int64) error

	mu     sync.Mutex
	users  map[int64]domain.User
	nextID int64
}

var _ store.UserStore = (*MockUserStore)(nil)

// NewMockUserStore creates an empty store. Seeded users keep their IDs.
func NewMockUserStore(seed ...domain.User) *MockUserStore {
	m := &MockUserStore{users: make(map[int64]domain.User), nextID: 1}
	for _, u := range seed {
		m.users[u.ID] = u
		if u.ID >= m.nextID {
			m.nextID = u.ID + 1
		}
	}
	return m
}

// Snapshot returns the stored user without counting a call.
func (m *MockUserStore) Snapshot(id int64) (domain.User, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	return u, ok
}

func (m *MockUserStore) List(ctx context.Context) ([]domain.User, error) {
	m.record("List")
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	users := make([]domain.User, 0, len(m.users))
	for _, u := range m.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (m *MockUserStore) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	m.record("GetByID")
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, store.NewNotFoundError(store.EntityUser, id)
	}
	return &u, nil
}

func (m *MockUserStore) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	m.record("GetByUsername")
	if m.GetByUsernameFn != nil {
		return m.GetByUsernameFn(ctx, username)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, &store.NotFoundError{Entity: store.EntityUser, ID: username}
}

func (m *MockUserStore) Create(ctx context.Context, user *domain.User) error {
	m.record("Create")
	if m.CreateFn != nil {
		return m.CreateFn(ctx, user)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == user.Username {
			return store.ErrUsernameExists
		}
		if u.Email == user.Email {
			return store.ErrEmailExists
		}
	}
	user.ID = m.nextID
	m.nextID++
	user.CreatedAt = time.Now().UTC()
	m.users[user.ID] = *user
	return nil
}

func (m *MockUserStore) Update(ctx context.Context, id int64, update domain.UserUpdate) (*domain.User, error) {
	m.record("Update")
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, id, update)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, store.NewNotFoundError(store.EntityUser, id)
	}
	for otherID, other := range m.users {
		if otherID == id {
			continue
		}
		if update.Username != nil && other.Username == *update.Username {
			return nil, store.ErrUsernameExists
		}
		if update.Email != nil && other.Email == *update.Email {
			return nil, store.ErrEmailExists
		}
	}
	update.Apply(&u)
	m.users[id] = u
	return &u, nil
}

func (m *MockUserStore) Delete(ctx context.Context, id int64) error {
	m.record("Delete")
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[id]; !ok {
		return store.NewNotFoundError(store.EntityUser, id)
	}
	delete(m.users, id)
	return nil
}
