package mocks

import (
	"context"
	"io"
	"sync"
)

// MockObjectStore implements objectstore.Store in memory.
type MockObjectStore struct {
	callCounter

	PutFn    func(ctx context.Context, key, contentType string, body io.Reader, size int64) error
	DeleteFn func(ctx context.Context, key string) error

	mu      sync.Mutex
	objects map[string][]byte
}

// NewMockObjectStore creates an empty object store.
func NewMockObjectStore() *MockObjectStore {
	return &MockObjectStore{objects: make(map[string][]byte)}
}

func (m *MockObjectStore) Put(ctx context.Context, key, contentType string, body io.Reader, size int64) error {
	m.record("Put")
	if m.PutFn != nil {
		return m.PutFn(ctx, key, contentType, body, size)
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = data
	return nil
}

func (m *MockObjectStore) Delete(ctx context.Context, key string) error {
	m.record("Delete")
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, key)
	return nil
}

// Object returns the stored bytes for key.
func (m *MockObjectStore) Object(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.objects[key]
	return data, ok
}

// Len returns the number of stored objects.
func (m *MockObjectStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.objects)
}
