package flags

import (
	"context"
	"sync"
)

// Store is the key-value feature-flag capability the hosting platform binds
// alongside inference and assets. The chat path never consults it; it exists
// so deployments can toggle behavior without a redeploy.
type Store interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string)
}

// MemoryStore implements Store with an in-memory map, suitable for local
// deployments and tests.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryStore returns a MemoryStore preloaded with the supplied flags.
func NewMemoryStore(seed map[string]string) *MemoryStore {
	values := make(map[string]string, len(seed))
	for k, v := range seed {
		values[k] = v
	}
	return &MemoryStore{values: values}
}

// Get looks up a flag by key.
func (s *MemoryStore) Get(_ context.Context, key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok
}

// Set stores a flag value.
func (s *MemoryStore) Set(_ context.Context, key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
}
