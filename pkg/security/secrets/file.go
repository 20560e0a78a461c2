package secrets

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// FileStore keeps secrets in a single JSON document mapping "service/account"
// to the secret value. Used on hosts without a keychain.
//
// The file must have 0600 or 0400 permissions; writes always use 0600.
// When watching is enabled the in-memory copy is dropped whenever the file
// changes on disk.
type FileStore struct {
	Path  string
	Watch bool

	mu      sync.RWMutex
	cache   map[string]string
	loaded  bool
	watcher *fsnotify.Watcher
	stopCh  chan struct{}
}

// NewFileStore creates a file store. The file does not need to exist yet.
// With watch enabled the parent directory is watched, since editors often
// replace the file instead of writing to it.
func NewFileStore(path string, watch bool) (*FileStore, error) {
	s := &FileStore{
		Path:   path,
		Watch:  watch,
		cache:  make(map[string]string),
		stopCh: make(chan struct{}),
	}

	if watch {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("failed to create secrets directory: %w", err)
		}

		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return nil, fmt.Errorf("failed to create file watcher: %w", err)
		}
		if err := watcher.Add(dir); err != nil {
			_ = watcher.Close()
			return nil, fmt.Errorf("failed to watch directory: %w", err)
		}

		s.watcher = watcher
		go s.watchLoop()

		slog.Debug("secrets.file.watch.start", "path", path)
	}

	return s, nil
}

// Get implements Store.
func (s *FileStore) Get(ctx context.Context, key Key) (string, error) {
	if err := s.ensureLoaded(); err != nil {
		return "", err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	value := s.cache[key.String()]
	if value == "" {
		return "", fmt.Errorf("file %s: %w", key, ErrSecretNotFound)
	}
	return value, nil
}

// Set implements Store. The whole document is rewritten with 0600.
func (s *FileStore) Set(ctx context.Context, key Key, secret string) error {
	if err := s.ensureLoaded(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := make(map[string]string, len(s.cache)+1)
	for k, v := range s.cache {
		next[k] = v
	}
	next[key.String()] = secret

	data, err := json.MarshalIndent(next, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode secrets: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o700); err != nil {
		return fmt.Errorf("failed to create secrets directory: %w", err)
	}
	if err := os.WriteFile(s.Path, append(data, '\n'), 0o600); err != nil {
		return fmt.Errorf("failed to write secrets file: %w", err)
	}
	// WriteFile keeps the mode of an existing file.
	if err := os.Chmod(s.Path, 0o600); err != nil {
		return fmt.Errorf("failed to secure secrets file: %w", err)
	}

	s.cache = next
	s.loaded = true
	return nil
}

// Name implements Store.
func (s *FileStore) Name() string {
	return "file"
}

// Refresh drops the in-memory copy so the next Get re-reads the file.
func (s *FileStore) Refresh(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cache = make(map[string]string)
	s.loaded = false
	return nil
}

// Close stops the file watcher.
func (s *FileStore) Close() error {
	if s.watcher != nil {
		close(s.stopCh)
		return s.watcher.Close()
	}
	return nil
}

// ensureLoaded reads the file once. A missing file is an empty store.
func (s *FileStore) ensureLoaded() error {
	s.mu.RLock()
	loaded := s.loaded
	s.mu.RUnlock()
	if loaded {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loaded {
		return nil
	}

	info, err := os.Stat(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			s.loaded = true
			return nil
		}
		return fmt.Errorf("failed to stat secrets file: %w", err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("secrets path is not a regular file: %s", s.Path)
	}

	mode := info.Mode().Perm()
	if mode != 0o600 && mode != 0o400 {
		return fmt.Errorf("insecure permissions on %s: %o (expected 0600 or 0400)", s.Path, mode)
	}

	// #nosec G304 - path comes from the operator's configuration
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return fmt.Errorf("failed to read secrets file: %w", err)
	}

	values := make(map[string]string)
	if len(strings.TrimSpace(string(data))) > 0 {
		if err := json.Unmarshal(data, &values); err != nil {
			return fmt.Errorf("failed to parse secrets file: %w", err)
		}
	}

	for k, v := range values {
		values[k] = strings.TrimSpace(v)
	}

	s.cache = values
	s.loaded = true
	return nil
}

func (s *FileStore) watchLoop() {
	target := filepath.Clean(s.Path)
	for {
		select {
		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}

			slog.Debug("secrets.file.changed",
				"file", filepath.Base(event.Name),
				"op", event.Op.String(),
			)
			if err := s.Refresh(context.Background()); err != nil {
				slog.Error("secrets.file.refresh.failed", "error", err)
			}

		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			slog.Error("secrets.file.watch.error", "error", err)

		case <-s.stopCh:
			return
		}
	}
}
