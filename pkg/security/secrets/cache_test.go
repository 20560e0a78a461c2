package secrets

import (
	"testing"
	"time"
)

func newTestCache(config CacheConfig, now *time.Time) *Cache {
	c := NewCache(config)
	c.now = func() time.Time { return *now }
	return c
}

func TestCache_GetSet(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	cache := newTestCache(CacheConfig{Enabled: true, TTL: time.Minute, MaxSize: 10}, &now)

	cache.Set(OpenAIAdminKey, "sk-admin")

	value, ok := cache.Get(OpenAIAdminKey)
	if !ok {
		t.Fatal("expected cache hit, got miss")
	}
	if value != "sk-admin" {
		t.Errorf("expected value 'sk-admin', got '%s'", value)
	}

	if _, ok := cache.Get(AnthropicAdminKey); ok {
		t.Error("expected cache miss for unknown key")
	}
}

func TestCache_TTLExpiration(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	cache := newTestCache(CacheConfig{Enabled: true, TTL: time.Minute, MaxSize: 10}, &now)

	cache.Set(OpenAIAdminKey, "sk-admin")

	now = now.Add(59 * time.Second)
	if _, ok := cache.Get(OpenAIAdminKey); !ok {
		t.Error("expected cache hit before TTL")
	}

	now = now.Add(2 * time.Second)
	if _, ok := cache.Get(OpenAIAdminKey); ok {
		t.Error("expected cache miss after TTL expiration")
	}
}

func TestCache_MaxSize(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	cache := newTestCache(CacheConfig{Enabled: true, TTL: time.Minute, MaxSize: 2}, &now)

	cache.Set(Key{Service: "a", Account: "a"}, "1")
	now = now.Add(time.Second)
	cache.Set(Key{Service: "b", Account: "b"}, "2")
	now = now.Add(time.Second)
	cache.Set(Key{Service: "c", Account: "c"}, "3")

	if cache.Size() != 2 {
		t.Fatalf("expected size 2, got %d", cache.Size())
	}
	if _, ok := cache.Get(Key{Service: "a", Account: "a"}); ok {
		t.Error("expected oldest entry to be evicted")
	}
	if _, ok := cache.Get(Key{Service: "c", Account: "c"}); !ok {
		t.Error("expected newest entry to be cached")
	}
}

func TestCache_Disabled(t *testing.T) {
	cache := NewCache(CacheConfig{Enabled: false})
	cache.Set(OpenAIAdminKey, "sk-admin")

	if _, ok := cache.Get(OpenAIAdminKey); ok {
		t.Error("expected disabled cache to never hit")
	}
	if cache.Size() != 0 {
		t.Errorf("expected empty cache, got %d entries", cache.Size())
	}
}
