package secrets

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFileStore_SetThenGet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "secrets.json")

	store, err := NewFileStore(path, false)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	defer store.Close()

	if err := store.Set(context.Background(), OpenAIAdminKey, "sk-admin"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("expected 0600 permissions, got %o", info.Mode().Perm())
	}

	// A second store reads the document back from disk.
	reader, err := NewFileStore(path, false)
	if err != nil {
		t.Fatal(err)
	}
	value, err := reader.Get(context.Background(), OpenAIAdminKey)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if value != "sk-admin" {
		t.Errorf("expected value 'sk-admin', got '%s'", value)
	}
}

func TestFileStore_Get_MissingFile(t *testing.T) {
	store, err := NewFileStore(filepath.Join(t.TempDir(), "absent.json"), false)
	if err != nil {
		t.Fatal(err)
	}

	_, err = store.Get(context.Background(), AnthropicAdminKey)
	if !errors.Is(err, ErrSecretNotFound) {
		t.Errorf("expected ErrSecretNotFound, got %v", err)
	}
}

func TestFileStore_Permissions(t *testing.T) {
	tests := []struct {
		name        string
		permissions os.FileMode
		shouldWork  bool
	}{
		{"0600 permissions", 0o600, true},
		{"0400 permissions", 0o400, true},
		{"0644 permissions", 0o644, false},
		{"0666 permissions", 0o666, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "secrets.json")
			doc := []byte(`{"tokentotem.openai.admin/openai_admin": "sk-file"}`)
			if err := os.WriteFile(path, doc, tt.permissions); err != nil {
				t.Fatal(err)
			}
			if err := os.Chmod(path, tt.permissions); err != nil {
				t.Fatal(err)
			}

			store, err := NewFileStore(path, false)
			if err != nil {
				t.Fatal(err)
			}

			value, err := store.Get(context.Background(), OpenAIAdminKey)
			if tt.shouldWork {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if value != "sk-file" {
					t.Errorf("expected 'sk-file', got %q", value)
				}
			} else if err == nil {
				t.Error("expected error for insecure permissions, got nil")
			}
		})
	}
}

func TestFileStore_Refresh(t *testing.T) {
	path := filepath.Join(t.TempDir(), "secrets.json")
	if err := os.WriteFile(path, []byte(`{"tokentotem.openai.admin/openai_admin": "old"}`), 0o600); err != nil {
		t.Fatal(err)
	}

	store, err := NewFileStore(path, false)
	if err != nil {
		t.Fatal(err)
	}

	if v, _ := store.Get(context.Background(), OpenAIAdminKey); v != "old" {
		t.Fatalf("expected 'old', got %q", v)
	}

	if err := os.WriteFile(path, []byte(`{"tokentotem.openai.admin/openai_admin": "new"}`), 0o600); err != nil {
		t.Fatal(err)
	}

	// Still served from memory until refreshed.
	if v, _ := store.Get(context.Background(), OpenAIAdminKey); v != "old" {
		t.Errorf("expected cached 'old', got %q", v)
	}

	if err := store.Refresh(context.Background()); err != nil {
		t.Fatal(err)
	}
	if v, _ := store.Get(context.Background(), OpenAIAdminKey); v != "new" {
		t.Errorf("expected 'new' after refresh, got %q", v)
	}
}

func TestFileStore_WatchReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "secrets.json")
	if err := os.WriteFile(path, []byte(`{"tokentotem.openai.admin/openai_admin": "old"}`), 0o600); err != nil {
		t.Fatal(err)
	}

	store, err := NewFileStore(path, true)
	if err != nil {
		t.Fatalf("failed to create watching store: %v", err)
	}
	defer store.Close()

	if v, _ := store.Get(context.Background(), OpenAIAdminKey); v != "old" {
		t.Fatalf("expected 'old', got %q", v)
	}

	if err := os.WriteFile(path, []byte(`{"tokentotem.openai.admin/openai_admin": "rotated"}`), 0o600); err != nil {
		t.Fatal(err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if v, _ := store.Get(context.Background(), OpenAIAdminKey); v == "rotated" {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Error("expected watcher to pick up the rotated secret")
}
