package state

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"tokentotem/tokentotem/pkg/budget"
	"tokentotem/tokentotem/pkg/config"
	"tokentotem/tokentotem/pkg/costs"
	"tokentotem/tokentotem/pkg/providers"
)

// ConfigStore loads and saves the user configuration.
type ConfigStore interface {
	// LoadConfig returns the merged configuration. It never fails.
	LoadConfig() *config.Config

	// SaveConfig persists the full configuration document.
	SaveConfig(cfg *config.Config) error
}

// CacheStore loads and saves the cost cache.
type CacheStore interface {
	// LoadCache returns the stored cache, or an empty cache when nothing
	// usable is stored.
	LoadCache(ctx context.Context) *Cache

	// SaveCache overwrites the stored cache.
	SaveCache(ctx context.Context, cache *Cache) error
}

// Store is both a ConfigStore and a CacheStore.
type Store interface {
	ConfigStore
	CacheStore
}

// Cache document keys.
const (
	keyProviders             = "providers"
	keyLastUpdated           = "last_updated"
	keyBudget                = "budget"
	keyLastNotifiedThreshold = "last_notified_threshold"
	keyMonth                 = "month"
	keyToday                 = "today"
	keyMonthToDate           = "mtd"
	keyStale                 = "stale"
	keyError                 = "error"
)

// Cache is the state carried from one refresh to the next.
type Cache struct {
	// Providers is the last reported result per provider, used as the stale
	// fallback.
	Providers map[string]costs.ProviderResult

	// LastUpdated is the RFC 3339 time of the last refresh.
	LastUpdated string

	// Budget is the threshold watermark.
	Budget budget.Watermark

	extra map[string]interface{}
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{Providers: make(map[string]costs.ProviderResult)}
}

// Clone returns a deep copy.
func (c *Cache) Clone() *Cache {
	out := &Cache{
		Providers:   make(map[string]costs.ProviderResult, len(c.Providers)),
		LastUpdated: c.LastUpdated,
		Budget:      c.Budget,
	}
	for id, r := range c.Providers {
		out.Providers[id] = r
	}
	if c.extra != nil {
		out.extra = make(map[string]interface{}, len(c.extra))
		for k, v := range c.extra {
			out.extra[k] = v
		}
	}
	return out
}

// MarshalJSON writes amounts as JSON numbers and keeps keys this version does
// not know about.
func (c Cache) MarshalJSON() ([]byte, error) {
	doc := make(map[string]interface{}, len(c.extra)+3)
	for k, v := range c.extra {
		doc[k] = v
	}

	entries := make(map[string]interface{}, len(c.Providers))
	for id, r := range c.Providers {
		entry := map[string]interface{}{
			keyToday:       json.Number(r.Today.String()),
			keyMonthToDate: json.Number(r.MonthToDate.String()),
		}
		if r.Stale {
			entry[keyStale] = true
		}
		if r.Error != "" {
			entry[keyError] = r.Error
		}
		entries[id] = entry
	}
	doc[keyProviders] = entries

	if c.LastUpdated != "" {
		doc[keyLastUpdated] = c.LastUpdated
	}

	wm := make(map[string]interface{}, 2)
	if c.Budget.LastNotifiedThreshold > 0 {
		wm[keyLastNotifiedThreshold] = c.Budget.LastNotifiedThreshold
	}
	if c.Budget.Month != "" {
		wm[keyMonth] = c.Budget.Month
	}
	if len(wm) > 0 {
		doc[keyBudget] = wm
	}

	return json.Marshal(doc)
}

// UnmarshalJSON reads a cache document. Entries with unexpected types are
// dropped rather than failing the whole document.
func (c *Cache) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var doc map[string]interface{}
	if err := dec.Decode(&doc); err != nil {
		return err
	}
	if doc == nil {
		return fmt.Errorf("cache must be an object")
	}

	*c = *NewCache()

	if entries, ok := doc[keyProviders].(map[string]interface{}); ok {
		for id, raw := range entries {
			entry, ok := raw.(map[string]interface{})
			if !ok {
				continue
			}
			r := costs.ProviderResult{
				Today:       providers.ParseAmount(entry[keyToday]),
				MonthToDate: providers.ParseAmount(entry[keyMonthToDate]),
			}
			r.Stale, _ = entry[keyStale].(bool)
			r.Error, _ = entry[keyError].(string)
			c.Providers[id] = r
		}
	}
	delete(doc, keyProviders)

	c.LastUpdated, _ = doc[keyLastUpdated].(string)
	delete(doc, keyLastUpdated)

	if wm, ok := doc[keyBudget].(map[string]interface{}); ok {
		threshold := providers.ParseAmount(wm[keyLastNotifiedThreshold])
		if threshold.GreaterThan(decimal.Zero) {
			c.Budget.LastNotifiedThreshold = threshold.InexactFloat64()
		}
		c.Budget.Month, _ = wm[keyMonth].(string)
	}
	delete(doc, keyBudget)

	if len(doc) > 0 {
		c.extra = doc
	}
	return nil
}

// combined joins separate config and cache stores.
type combined struct {
	ConfigStore
	CacheStore
}

// Combine returns a Store that loads config from cfg and the cache from cache.
func Combine(cfg ConfigStore, cache CacheStore) Store {
	return combined{ConfigStore: cfg, CacheStore: cache}
}
