package secrets

import (
	"context"
	"fmt"
	"sync"
)

// MemoryStore keeps secrets in a map. It is safe for concurrent use.
type MemoryStore struct {
	mu      sync.RWMutex
	secrets map[Key]string
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{secrets: make(map[Key]string)}
}

// Get implements Store.
func (s *MemoryStore) Get(ctx context.Context, key Key) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.secrets[key]
	if !ok || value == "" {
		return "", fmt.Errorf("%s: %w", key, ErrSecretNotFound)
	}
	return value, nil
}

// Set implements Store.
func (s *MemoryStore) Set(ctx context.Context, key Key, secret string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.secrets[key] = secret
	return nil
}

// Name implements Store.
func (s *MemoryStore) Name() string {
	return "memory"
}
