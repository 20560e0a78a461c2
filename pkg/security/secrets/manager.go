package secrets

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// Manager chains several stores with priority-based fallback.
//
// Get tries each store in order and returns the first hit. Set writes to the
// first store that is not read-only.
type Manager struct {
	stores []Store
	cache  *Cache
}

// NewManager creates a manager over stores, tried in the given order.
func NewManager(stores []Store, cacheConfig CacheConfig) *Manager {
	return &Manager{
		stores: stores,
		cache:  NewCache(cacheConfig),
	}
}

// Get implements Store. Lookup failures other than ErrSecretNotFound are
// logged and the next store is tried; if every store misses the result
// wraps ErrSecretNotFound.
func (m *Manager) Get(ctx context.Context, key Key) (string, error) {
	if value, ok := m.cache.Get(key); ok {
		slog.Debug("secrets.cache.hit", "key", redactKey(key))
		return value, nil
	}

	for _, store := range m.stores {
		value, err := store.Get(ctx, key)
		if err != nil {
			if !errors.Is(err, ErrSecretNotFound) {
				slog.Warn("secrets.store.failed",
					"store", store.Name(),
					"key", redactKey(key),
					"error", err,
				)
			}
			continue
		}

		m.cache.Set(key, value)
		slog.Debug("secrets.resolved",
			"store", store.Name(),
			"key", redactKey(key),
		)
		return value, nil
	}

	return "", fmt.Errorf("%s: %w", key, ErrSecretNotFound)
}

// Set implements Store.
func (m *Manager) Set(ctx context.Context, key Key, secret string) error {
	var errs []string
	for _, store := range m.stores {
		err := store.Set(ctx, key, secret)
		if err == nil {
			m.cache.Delete(key)
			slog.Info("secrets.stored", "store", store.Name(), "key", redactKey(key))
			return nil
		}
		if errors.Is(err, ErrReadOnly) {
			continue
		}
		errs = append(errs, fmt.Sprintf("%s: %v", store.Name(), err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("failed to store secret %s: %s", redactKey(key), strings.Join(errs, "; "))
	}
	return fmt.Errorf("no writable secret store for %s: %w", redactKey(key), ErrReadOnly)
}

// Name implements Store.
func (m *Manager) Name() string {
	names := make([]string, 0, len(m.stores))
	for _, store := range m.stores {
		names = append(names, store.Name())
	}
	return "chain(" + strings.Join(names, ",") + ")"
}

// Refresh refreshes every refreshable store and clears the cache.
func (m *Manager) Refresh(ctx context.Context) error {
	var errs []string
	for _, store := range m.stores {
		refreshable, ok := store.(RefreshableStore)
		if !ok {
			continue
		}
		if err := refreshable.Refresh(ctx); err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", store.Name(), err))
		}
	}

	m.cache.Clear()

	if len(errs) > 0 {
		return fmt.Errorf("failed to refresh some secret stores: %s", strings.Join(errs, "; "))
	}
	return nil
}

// redactKey keeps the service readable but hides most of the account.
func redactKey(key Key) string {
	account := key.Account
	if len(account) <= 4 {
		account = "***"
	} else {
		account = account[:2] + "..." + account[len(account)-2:]
	}
	return key.Service + "/" + account
}
