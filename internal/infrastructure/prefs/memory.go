package prefs

import (
	"context"
	"sync"

	"github.com/gamebites/backend/internal/domain"
)

// MemoryStore is a thread-safe in-memory preference store with change
// notifications, standing in for the extension's local storage area.
type MemoryStore struct {
	mutex    sync.RWMutex
	data     map[string]any
	watchers map[int]func(changes []domain.PreferenceChange)
	nextID   int
}

// NewMemoryStore creates an empty preference store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data:     make(map[string]any),
		watchers: make(map[int]func(changes []domain.PreferenceChange)),
	}
}

// Get retrieves a preference value.
func (s *MemoryStore) Get(ctx context.Context, key string) (any, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	value, exists := s.data[key]
	if !exists {
		return nil, domain.ErrPreferenceNotFound
	}
	return value, nil
}

// Set stores a value and notifies watchers of the change.
func (s *MemoryStore) Set(ctx context.Context, key string, value any) error {
	s.mutex.Lock()
	s.data[key] = value
	watchers := make([]func([]domain.PreferenceChange), 0, len(s.watchers))
	for _, fn := range s.watchers {
		watchers = append(watchers, fn)
	}
	s.mutex.Unlock()

	change := []domain.PreferenceChange{{Key: key, NewValue: value}}
	for _, fn := range watchers {
		fn(change)
	}
	return nil
}

// SetAll stores several values and delivers them to watchers as one batch.
func (s *MemoryStore) SetAll(ctx context.Context, values map[string]any) error {
	s.mutex.Lock()
	changes := make([]domain.PreferenceChange, 0, len(values))
	for key, value := range values {
		s.data[key] = value
		changes = append(changes, domain.PreferenceChange{Key: key, NewValue: value})
	}
	watchers := make([]func([]domain.PreferenceChange), 0, len(s.watchers))
	for _, fn := range s.watchers {
		watchers = append(watchers, fn)
	}
	s.mutex.Unlock()

	for _, fn := range watchers {
		fn(changes)
	}
	return nil
}

// Watch registers a change callback and returns an unsubscribe func.
func (s *MemoryStore) Watch(fn func(changes []domain.PreferenceChange)) func() {
	s.mutex.Lock()
	id := s.nextID
	s.nextID++
	s.watchers[id] = fn
	s.mutex.Unlock()

	return func() {
		s.mutex.Lock()
		delete(s.watchers, id)
		s.mutex.Unlock()
	}
}

// Size returns the number of stored preferences (for debugging/monitoring).
func (s *MemoryStore) Size() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.data)
}

// Clear removes all stored preferences without notifying watchers.
func (s *MemoryStore) Clear() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.data = make(map[string]any)
}
