package state

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestSQLiteCache(t *testing.T, driver string) *SQLiteCache {
	t.Helper()
	cache := NewSQLiteCache(SQLiteConfig{
		Path:   filepath.Join(t.TempDir(), "cache.db"),
		Driver: driver,
	})
	t.Cleanup(func() { cache.Close() })
	return cache
}

// ===== SQLiteCache Tests =====

func TestSQLiteCache_SaveAndLoad(t *testing.T) {
	store := newTestSQLiteCache(t, "")
	ctx := context.Background()

	if got := store.LoadCache(ctx); len(got.Providers) != 0 {
		t.Fatalf("expected empty cache from a new database, got %+v", got)
	}

	if err := store.SaveCache(ctx, sampleCache()); err != nil {
		t.Fatalf("SaveCache failed: %v", err)
	}
	assertSampleCache(t, store.LoadCache(ctx))
}

func TestSQLiteCache_Upsert(t *testing.T) {
	store := newTestSQLiteCache(t, DriverModernc)
	ctx := context.Background()

	if err := store.SaveCache(ctx, NewCache()); err != nil {
		t.Fatal(err)
	}
	if err := store.SaveCache(ctx, sampleCache()); err != nil {
		t.Fatal(err)
	}

	var rows int
	db, err := store.open(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM cache_snapshot`).Scan(&rows); err != nil {
		t.Fatal(err)
	}
	if rows != 1 {
		t.Errorf("expected a single snapshot row, got %d", rows)
	}
	assertSampleCache(t, store.LoadCache(ctx))
}

func TestSQLiteCache_CorruptRowIsEmpty(t *testing.T) {
	store := newTestSQLiteCache(t, DriverModernc)
	ctx := context.Background()

	db, err := store.open(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.ExecContext(ctx, `INSERT INTO cache_snapshot (id, payload, updated_at) VALUES (1, 'garbage', 0)`); err != nil {
		t.Fatal(err)
	}

	if got := store.LoadCache(ctx); len(got.Providers) != 0 {
		t.Errorf("expected empty cache, got %+v", got)
	}
}

func TestSQLiteCache_OpenFailure(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "not-a-dir")
	if err := os.WriteFile(blocker, nil, 0o600); err != nil {
		t.Fatal(err)
	}
	store := NewSQLiteCache(SQLiteConfig{Path: filepath.Join(blocker, "cache.db")})
	ctx := context.Background()

	if got := store.LoadCache(ctx); got == nil || len(got.Providers) != 0 {
		t.Errorf("expected empty cache on open failure, got %+v", got)
	}
	if err := store.SaveCache(ctx, sampleCache()); err == nil {
		t.Error("expected SaveCache to report the open failure")
	}
}

func TestSQLiteCache_UnknownDriver(t *testing.T) {
	store := NewSQLiteCache(SQLiteConfig{Path: filepath.Join(t.TempDir(), "c.db"), Driver: "postgres"})

	err := store.SaveCache(context.Background(), NewCache())
	if err == nil || !strings.Contains(err.Error(), "unknown sqlite driver") {
		t.Errorf("expected unknown driver error, got %v", err)
	}
}

func TestSQLiteCache_MattnDriver(t *testing.T) {
	store := newTestSQLiteCache(t, DriverMattn)
	ctx := context.Background()

	if err := store.SaveCache(ctx, sampleCache()); err != nil {
		if strings.Contains(err.Error(), "CGO_ENABLED=0") {
			t.Skip("sqlite3 driver requires cgo")
		}
		t.Fatalf("SaveCache failed: %v", err)
	}
	assertSampleCache(t, store.LoadCache(ctx))
}
