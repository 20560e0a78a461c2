package secrets

import (
	"context"
	"errors"
	"testing"
	"time"
)

type countingStore struct {
	*MemoryStore
	gets int
}

func (s *countingStore) Get(ctx context.Context, key Key) (string, error) {
	s.gets++
	return s.MemoryStore.Get(ctx, key)
}

func TestManager_Get_Fallback(t *testing.T) {
	t.Setenv("TOKENTOTEM_OPENAI_ADMIN", "")

	mem := NewMemoryStore()
	_ = mem.Set(context.Background(), OpenAIAdminKey, "from-memory")

	manager := NewManager([]Store{NewEnvStore(DefaultEnvPrefix), mem}, CacheConfig{Enabled: false})

	value, err := manager.Get(context.Background(), OpenAIAdminKey)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if value != "from-memory" {
		t.Errorf("expected 'from-memory', got %q", value)
	}
}

func TestManager_Get_Priority(t *testing.T) {
	t.Setenv("TOKENTOTEM_OPENAI_ADMIN", "from-env")

	mem := NewMemoryStore()
	_ = mem.Set(context.Background(), OpenAIAdminKey, "from-memory")

	manager := NewManager([]Store{NewEnvStore(DefaultEnvPrefix), mem}, CacheConfig{Enabled: false})

	value, err := manager.Get(context.Background(), OpenAIAdminKey)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if value != "from-env" {
		t.Errorf("expected first store to win, got %q", value)
	}
}

func TestManager_Get_NotFound(t *testing.T) {
	manager := NewManager([]Store{NewMemoryStore()}, CacheConfig{Enabled: false})

	_, err := manager.Get(context.Background(), AnthropicAdminKey)
	if !errors.Is(err, ErrSecretNotFound) {
		t.Errorf("expected ErrSecretNotFound, got %v", err)
	}
}

func TestManager_Get_Cached(t *testing.T) {
	store := &countingStore{MemoryStore: NewMemoryStore()}
	_ = store.MemoryStore.Set(context.Background(), OpenAIAdminKey, "sk-admin")

	manager := NewManager([]Store{store}, CacheConfig{Enabled: true, TTL: time.Minute, MaxSize: 4})

	for i := 0; i < 3; i++ {
		if _, err := manager.Get(context.Background(), OpenAIAdminKey); err != nil {
			t.Fatal(err)
		}
	}
	if store.gets != 1 {
		t.Errorf("expected 1 backend lookup, got %d", store.gets)
	}
}

func TestManager_Set_SkipsReadOnly(t *testing.T) {
	mem := NewMemoryStore()
	manager := NewManager([]Store{NewEnvStore(DefaultEnvPrefix), mem}, CacheConfig{Enabled: true, TTL: time.Minute, MaxSize: 4})

	if err := manager.Set(context.Background(), AnthropicAdminKey, "sk-ant"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	value, err := mem.Get(context.Background(), AnthropicAdminKey)
	if err != nil || value != "sk-ant" {
		t.Errorf("expected secret written to memory store, got %q (%v)", value, err)
	}
}

func TestManager_Set_NoWritableStore(t *testing.T) {
	manager := NewManager([]Store{NewEnvStore(DefaultEnvPrefix)}, CacheConfig{})

	err := manager.Set(context.Background(), OpenAIAdminKey, "x")
	if !errors.Is(err, ErrReadOnly) {
		t.Errorf("expected ErrReadOnly, got %v", err)
	}
}

func TestRedactKey(t *testing.T) {
	if got := redactKey(OpenAIAdminKey); got != "tokentotem.openai.admin/op...in" {
		t.Errorf("unexpected redaction: %q", got)
	}
	if got := redactKey(Key{Service: "s", Account: "abc"}); got != "s/***" {
		t.Errorf("unexpected redaction: %q", got)
	}
}
