package state

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite driver "sqlite3" (cgo)
	_ "modernc.org/sqlite"          // SQLite driver "sqlite" (pure Go)
)

// SQLite driver names.
const (
	DriverModernc = "sqlite"
	DriverMattn   = "sqlite3"
)

// snapshotID is the key of the single cache row.
const snapshotID = 1

// SQLiteConfig configures a SQLiteCache.
type SQLiteConfig struct {
	// Path is the database file.
	Path string

	// Driver is DriverModernc (default) or DriverMattn.
	Driver string

	// BusyTimeout is how long to wait for locks before failing.
	// Default: 5 seconds
	BusyTimeout time.Duration
}

// SQLiteCache stores the cache document in a single-row table. The database
// is opened on first use; an open failure makes LoadCache return an empty
// cache and SaveCache return the error.
type SQLiteCache struct {
	cfg SQLiteConfig

	mu        sync.Mutex
	db        *sql.DB
	openErr   error
	opened    bool
	closeOnce sync.Once
}

// NewSQLiteCache returns a cache backed by the database at cfg.Path.
func NewSQLiteCache(cfg SQLiteConfig) *SQLiteCache {
	if cfg.Driver == "" {
		cfg.Driver = DriverModernc
	}
	if cfg.BusyTimeout == 0 {
		cfg.BusyTimeout = 5 * time.Second
	}
	return &SQLiteCache{cfg: cfg}
}

// open connects and initializes the schema once.
func (s *SQLiteCache) open(ctx context.Context) (*sql.DB, error) {
	if s.opened {
		return s.db, s.openErr
	}
	s.opened = true

	if s.cfg.Path == "" {
		s.openErr = fmt.Errorf("db path cannot be empty")
		return nil, s.openErr
	}
	if s.cfg.Driver != DriverModernc && s.cfg.Driver != DriverMattn {
		s.openErr = fmt.Errorf("unknown sqlite driver %q", s.cfg.Driver)
		return nil, s.openErr
	}
	if err := os.MkdirAll(filepath.Dir(s.cfg.Path), 0o700); err != nil {
		s.openErr = fmt.Errorf("failed to create cache directory: %w", err)
		return nil, s.openErr
	}

	db, err := sql.Open(s.cfg.Driver, s.cfg.Path)
	if err != nil {
		s.openErr = fmt.Errorf("failed to open database: %w", err)
		return nil, s.openErr
	}

	// SQLite only supports a single writer, and the pragmas below are
	// per-connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initSchema(ctx, db, s.cfg.BusyTimeout); err != nil {
		db.Close()
		s.openErr = fmt.Errorf("failed to initialize schema: %w", err)
		return nil, s.openErr
	}

	s.db = db
	return db, nil
}

func initSchema(ctx context.Context, db *sql.DB, busyTimeout time.Duration) error {
	pragmas := []string{
		fmt.Sprintf("PRAGMA busy_timeout = %d", busyTimeout.Milliseconds()),
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}

	schema := `
	CREATE TABLE IF NOT EXISTS cache_snapshot (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		payload TEXT NOT NULL,
		updated_at INTEGER NOT NULL
	);
	`
	_, err := db.ExecContext(ctx, schema)
	return err
}

// LoadCache reads the snapshot row. Open failures, a missing row and a
// corrupt payload all return an empty cache.
func (s *SQLiteCache) LoadCache(ctx context.Context) *Cache {
	s.mu.Lock()
	defer s.mu.Unlock()

	db, err := s.open(ctx)
	if err != nil {
		slog.WarnContext(ctx, "state.sqlite.open_failed", "path", s.cfg.Path, "driver", s.cfg.Driver, "error", err)
		return NewCache()
	}

	var payload string
	err = db.QueryRowContext(ctx, `SELECT payload FROM cache_snapshot WHERE id = ?`, snapshotID).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return NewCache()
	}
	if err != nil {
		slog.WarnContext(ctx, "state.sqlite.load_failed", "path", s.cfg.Path, "error", err)
		return NewCache()
	}

	cache := NewCache()
	if err := json.Unmarshal([]byte(payload), cache); err != nil {
		slog.WarnContext(ctx, "state.cache.corrupt", "path", s.cfg.Path, "error", err)
		return NewCache()
	}
	return cache
}

// SaveCache upserts the snapshot row.
func (s *SQLiteCache) SaveCache(ctx context.Context, cache *Cache) error {
	payload, err := json.Marshal(cache)
	if err != nil {
		return fmt.Errorf("failed to encode cache: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	db, err := s.open(ctx)
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO cache_snapshot (id, payload, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			payload = excluded.payload,
			updated_at = excluded.updated_at
	`, snapshotID, string(payload), time.Now().Unix())
	if err != nil {
		return fmt.Errorf("failed to save cache: %w", err)
	}
	return nil
}

// Close releases the database handle.
// Close is idempotent and safe to call multiple times.
func (s *SQLiteCache) Close() error {
	var closeErr error
	s.closeOnce.Do(func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.db != nil {
			closeErr = s.db.Close()
		}
	})
	return closeErr
}
