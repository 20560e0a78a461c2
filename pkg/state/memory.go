package state

import (
	"context"
	"sync"

	"tokentotem/tokentotem/pkg/config"
)

// MemoryStore keeps configuration and cache in memory. Values are copied on
// the way in and out.
type MemoryStore struct {
	mu     sync.Mutex
	config *config.Config
	cache  *Cache

	// Saves counts SaveCache calls.
	Saves int
}

// NewMemoryStore returns a store holding cfg (defaults when nil) and an
// empty cache.
func NewMemoryStore(cfg *config.Config) *MemoryStore {
	if cfg == nil {
		cfg = config.Default()
	}
	return &MemoryStore{config: cfg.Clone(), cache: NewCache()}
}

// LoadConfig returns a copy of the stored configuration.
func (s *MemoryStore) LoadConfig() *config.Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.config.Clone()
}

// SaveConfig stores a copy of cfg.
func (s *MemoryStore) SaveConfig(cfg *config.Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.config = cfg.Clone()
	return nil
}

// LoadCache returns a copy of the stored cache.
func (s *MemoryStore) LoadCache(ctx context.Context) *Cache {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache.Clone()
}

// SaveCache stores a copy of cache.
func (s *MemoryStore) SaveCache(ctx context.Context, cache *Cache) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache = cache.Clone()
	s.Saves++
	return nil
}
