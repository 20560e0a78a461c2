package state

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"tokentotem/tokentotem/pkg/budget"
	"tokentotem/tokentotem/pkg/costs"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// ===== Cache Encoding Tests =====

func TestCache_UnmarshalLegacyDocument(t *testing.T) {
	data := `{
  "budget": {"last_notified_threshold": 0.8},
  "last_updated": "2026-03-17T09:30:00+00:00",
  "providers": {
    "anthropic": {"error": "HTTP 500: boom", "mtd": 3.25, "stale": true, "today": 0.1},
    "openai": {"mtd": 12.5, "today": 1.75}
  }
}`

	cache := NewCache()
	if err := json.Unmarshal([]byte(data), cache); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	openai := cache.Providers["openai"]
	if !openai.Today.Equal(dec("1.75")) || !openai.MonthToDate.Equal(dec("12.5")) {
		t.Errorf("unexpected openai result %+v", openai)
	}
	anthropic := cache.Providers["anthropic"]
	if !anthropic.Stale || anthropic.Error != "HTTP 500: boom" {
		t.Errorf("unexpected anthropic result %+v", anthropic)
	}
	if cache.LastUpdated != "2026-03-17T09:30:00+00:00" {
		t.Errorf("unexpected last_updated %q", cache.LastUpdated)
	}
	if cache.Budget.LastNotifiedThreshold != 0.8 || cache.Budget.Month != "" {
		t.Errorf("unexpected watermark %+v", cache.Budget)
	}
}

func TestCache_RoundTripKeepsUnknownKeys(t *testing.T) {
	data := `{"providers": {}, "schema": 2, "notes": {"a": "b"}}`

	cache := NewCache()
	if err := json.Unmarshal([]byte(data), cache); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	cache.Budget = budget.Watermark{LastNotifiedThreshold: 0.5, Month: "2026-03"}

	out, err := json.Marshal(cache)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var doc map[string]interface{}
	if err := json.Unmarshal(out, &doc); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if doc["schema"] != 2.0 {
		t.Errorf("expected schema preserved, got %#v", doc["schema"])
	}
	if _, ok := doc["notes"].(map[string]interface{}); !ok {
		t.Errorf("expected notes preserved, got %#v", doc["notes"])
	}
	wm := doc["budget"].(map[string]interface{})
	if wm["last_notified_threshold"] != 0.5 || wm["month"] != "2026-03" {
		t.Errorf("unexpected budget %#v", wm)
	}
}

func TestCache_MarshalWritesNumbers(t *testing.T) {
	cache := NewCache()
	cache.Providers["openai"] = costs.ProviderResult{Today: dec("1.5"), MonthToDate: dec("10.125")}

	out, err := json.Marshal(cache)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	text := string(out)
	if !strings.Contains(text, `"mtd":10.125`) || !strings.Contains(text, `"today":1.5`) {
		t.Errorf("expected bare numeric amounts, got %s", text)
	}
	if strings.Contains(text, "stale") || strings.Contains(text, "error") {
		t.Errorf("expected no stale/error keys for a fresh result, got %s", text)
	}
	if strings.Contains(text, "budget") || strings.Contains(text, "last_updated") {
		t.Errorf("expected empty fields omitted, got %s", text)
	}
}

func TestCache_UnmarshalToleratesBadEntries(t *testing.T) {
	data := `{"providers": {"openai": "nope", "anthropic": {"today": "2.5", "mtd": null}}, "budget": []}`

	cache := NewCache()
	if err := json.Unmarshal([]byte(data), cache); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	if _, ok := cache.Providers["openai"]; ok {
		t.Error("expected malformed entry dropped")
	}
	anthropic := cache.Providers["anthropic"]
	if !anthropic.Today.Equal(dec("2.5")) || !anthropic.MonthToDate.IsZero() {
		t.Errorf("unexpected anthropic result %+v", anthropic)
	}
	if cache.Budget.LastNotifiedThreshold != 0 {
		t.Errorf("expected zero watermark, got %+v", cache.Budget)
	}
}

func TestCache_UnmarshalRejectsNonObject(t *testing.T) {
	for _, data := range []string{`[]`, `null`, `"x"`} {
		if err := json.Unmarshal([]byte(data), NewCache()); err == nil {
			t.Errorf("expected error for %s", data)
		}
	}
}

func TestCache_Clone(t *testing.T) {
	cache := NewCache()
	cache.Providers["openai"] = costs.ProviderResult{Today: dec("1")}

	clone := cache.Clone()
	clone.Providers["anthropic"] = costs.ProviderResult{}
	clone.Budget.LastNotifiedThreshold = 0.9

	if len(cache.Providers) != 1 || cache.Budget.LastNotifiedThreshold != 0 {
		t.Error("expected original untouched")
	}
}
