package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"tokentotem/tokentotem/pkg/config"
)

// FileStore keeps the configuration and cache as JSON files.
type FileStore struct {
	ConfigPath string
	CachePath  string
}

// NewFileStore returns a FileStore. Empty paths use the XDG defaults.
func NewFileStore(configPath, cachePath string) *FileStore {
	if configPath == "" {
		configPath = config.DefaultConfigPath()
	}
	if cachePath == "" {
		cachePath = config.DefaultCachePath()
	}
	return &FileStore{ConfigPath: configPath, CachePath: cachePath}
}

// LoadConfig loads the configuration, falling back to the defaults.
func (s *FileStore) LoadConfig() *config.Config {
	return config.Load(s.ConfigPath)
}

// SaveConfig writes the full configuration document.
func (s *FileStore) SaveConfig(cfg *config.Config) error {
	return config.Save(s.ConfigPath, cfg)
}

// LoadCache reads the cache file. A missing or corrupt file is an empty cache.
func (s *FileStore) LoadCache(ctx context.Context) *Cache {
	data, err := os.ReadFile(s.CachePath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			slog.WarnContext(ctx, "state.cache.read_failed", "path", s.CachePath, "error", err)
		}
		return NewCache()
	}

	cache := NewCache()
	if err := json.Unmarshal(data, cache); err != nil {
		slog.WarnContext(ctx, "state.cache.corrupt", "path", s.CachePath, "error", err)
		return NewCache()
	}
	return cache
}

// SaveCache replaces the cache file.
func (s *FileStore) SaveCache(ctx context.Context, cache *Cache) error {
	data, err := json.MarshalIndent(cache, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode cache: %w", err)
	}
	return writeFileAtomic(s.CachePath, append(data, '\n'))
}

// writeFileAtomic writes data to a temporary file in the same directory and
// renames it over path.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temporary cache file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write cache: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to write cache: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace cache file %q: %w", path, err)
	}
	return nil
}
