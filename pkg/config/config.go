package config

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ProviderConfig is the per-provider section of the document.
type ProviderConfig struct {
	// Enabled turns fetching on or off. A provider without an admin key is
	// skipped even when enabled.
	Enabled bool

	// ProjectIDs restricts the OpenAI report to these projects.
	ProjectIDs []string
}

// Config is the typed view of the configuration document.
type Config struct {
	// MonthlyBudgetUSD is nil when no budget is set.
	MonthlyBudgetUSD *float64

	// WarningThresholds are fractions in (0, 1], deduplicated and ascending.
	WarningThresholds []float64

	// Providers is keyed by provider id ("openai", "anthropic").
	Providers map[string]ProviderConfig

	Currency string

	// doc is the merged document the typed fields were decoded from. It
	// carries unknown keys through to Save.
	doc map[string]interface{}
}

// Budget returns the monthly budget, or zero when unset or not positive.
func (c *Config) Budget() decimal.Decimal {
	if c.MonthlyBudgetUSD == nil || *c.MonthlyBudgetUSD <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromFloat(*c.MonthlyBudgetUSD)
}

// HasBudget reports whether budget tracking is active.
func (c *Config) HasBudget() bool {
	return c.Budget().IsPositive()
}

// SetBudget sets the monthly budget.
func (c *Config) SetBudget(usd float64) {
	c.MonthlyBudgetUSD = &usd
}

// Provider returns the named provider section. Unknown providers are disabled.
func (c *Config) Provider(id string) ProviderConfig {
	return c.Providers[id]
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	out := &Config{
		WarningThresholds: append([]float64(nil), c.WarningThresholds...),
		Providers:         make(map[string]ProviderConfig, len(c.Providers)),
		Currency:          c.Currency,
		doc:               deepCopyMap(c.doc),
	}
	if c.MonthlyBudgetUSD != nil {
		v := *c.MonthlyBudgetUSD
		out.MonthlyBudgetUSD = &v
	}
	for id, p := range c.Providers {
		out.Providers[id] = ProviderConfig{
			Enabled:    p.Enabled,
			ProjectIDs: append([]string(nil), p.ProjectIDs...),
		}
	}
	return out
}

// FromDocument decodes a merged document into a Config, coercing values of
// the wrong type back to their defaults.
func FromDocument(doc map[string]interface{}) *Config {
	defaults := DefaultDocument()
	cfg := &Config{
		Providers: make(map[string]ProviderConfig),
		Currency:  DefaultCurrency,
		doc:       deepCopyMap(doc),
	}

	if v, ok := toFloat(doc[KeyMonthlyBudget]); ok {
		cfg.MonthlyBudgetUSD = &v
	}

	if list, ok := doc[KeyWarningThresholds].([]interface{}); ok {
		values := make([]float64, 0, len(list))
		for _, item := range list {
			if f, ok := toFloat(item); ok {
				values = append(values, f)
			}
		}
		cfg.WarningThresholds = NormalizeThresholds(values)
	} else {
		cfg.WarningThresholds = DefaultWarningThresholds()
	}

	if s, ok := doc[KeyCurrency].(string); ok && s != "" {
		cfg.Currency = s
	}

	defaultProviders, _ := asMap(defaults[KeyProviders])
	providers, _ := asMap(doc[KeyProviders])
	for id, raw := range providers {
		section, ok := asMap(raw)
		if !ok {
			continue
		}

		var pc ProviderConfig
		if enabled, ok := section[KeyEnabled].(bool); ok {
			pc.Enabled = enabled
		} else if def, ok := asMap(defaultProviders[id]); ok {
			pc.Enabled, _ = def[KeyEnabled].(bool)
		}

		if ids, ok := section[KeyProjectIDs].([]interface{}); ok {
			for _, item := range ids {
				if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
					pc.ProjectIDs = append(pc.ProjectIDs, strings.TrimSpace(s))
				}
			}
		}

		cfg.Providers[id] = pc
	}

	return cfg
}

// Document returns the full document to persist: the merged document the
// config was loaded from with the typed fields written over it.
func (c *Config) Document() map[string]interface{} {
	doc := deepCopyMap(c.doc)

	if c.MonthlyBudgetUSD != nil {
		doc[KeyMonthlyBudget] = *c.MonthlyBudgetUSD
	} else {
		doc[KeyMonthlyBudget] = nil
	}

	thresholds := make([]interface{}, 0, len(c.WarningThresholds))
	for _, t := range c.WarningThresholds {
		thresholds = append(thresholds, t)
	}
	doc[KeyWarningThresholds] = thresholds

	doc[KeyCurrency] = c.Currency

	providers, ok := asMap(doc[KeyProviders])
	if !ok {
		providers = map[string]interface{}{}
	}
	ids := make([]string, 0, len(c.Providers))
	for id := range c.Providers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		pc := c.Providers[id]
		section, ok := asMap(providers[id])
		if !ok {
			section = map[string]interface{}{}
		}
		section[KeyEnabled] = pc.Enabled
		if _, had := section[KeyProjectIDs]; had || len(pc.ProjectIDs) > 0 {
			list := make([]interface{}, 0, len(pc.ProjectIDs))
			for _, p := range pc.ProjectIDs {
				list = append(list, p)
			}
			section[KeyProjectIDs] = list
		}
		providers[id] = section
	}
	doc[KeyProviders] = providers

	return doc
}

// NormalizeThresholds drops values outside (0, 1], removes duplicates and
// sorts ascending.
func NormalizeThresholds(values []float64) []float64 {
	seen := make(map[float64]bool, len(values))
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if math.IsNaN(v) || v <= 0 || v > 1 || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	sort.Float64s(out)
	return out
}

// ParseThresholds parses comma-separated percentages such as "50, 80%,95"
// into fractions. Empty and non-numeric tokens are skipped; the result is
// normalized.
func ParseThresholds(s string) []float64 {
	var values []float64
	for _, token := range strings.Split(s, ",") {
		token = strings.TrimSpace(strings.ReplaceAll(token, "%", ""))
		if token == "" {
			continue
		}
		pct, err := decimal.NewFromString(token)
		if err != nil {
			continue
		}
		f, _ := pct.Div(decimal.NewFromInt(100)).Float64()
		values = append(values, f)
	}
	return NormalizeThresholds(values)
}

// ParseBudget parses a budget amount such as "100", "$1,250.50".
func ParseBudget(s string) (float64, bool) {
	s = strings.TrimSpace(strings.NewReplacer("$", "", ",", "").Replace(s))
	return toFloat(s)
}

// toFloat accepts JSON/YAML numbers and numeric strings.
func toFloat(v interface{}) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, !math.IsNaN(x) && !math.IsInf(x, 0)
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint64:
		return float64(x), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
