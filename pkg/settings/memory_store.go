package settings

import (
	"context"
	"sync"
)

// MemoryStore is an in-memory implementation of the Store interface.
// Suitable for development and testing.
type MemoryStore struct {
	current Settings
	saved   bool
	mu      sync.RWMutex
}

// NewMemoryStore creates a new in-memory settings store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load(ctx context.Context) (Settings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.saved {
		return Defaults(), nil
	}
	return s.current, nil
}

func (s *MemoryStore) Save(ctx context.Context, settings Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = settings
	s.saved = true
	return nil
}
