package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// EnvPrefix namespaces configuration overrides.
const EnvPrefix = "TOKENTOTEM_"

// ApplyEnvOverrides applies TOKENTOTEM_* environment variables to cfg.
// Invalid values are logged and ignored.
func ApplyEnvOverrides(cfg *Config) {
	if val := os.Getenv(EnvPrefix + "MONTHLY_BUDGET_USD"); val != "" {
		if f, ok := ParseBudget(val); ok {
			cfg.SetBudget(f)
		} else {
			slog.Warn("config.env.invalid", "var", EnvPrefix+"MONTHLY_BUDGET_USD")
		}
	}

	if val := os.Getenv(EnvPrefix + "WARNING_THRESHOLDS"); val != "" {
		if thresholds := ParseThresholds(val); len(thresholds) > 0 {
			cfg.WarningThresholds = thresholds
		} else {
			slog.Warn("config.env.invalid", "var", EnvPrefix+"WARNING_THRESHOLDS")
		}
	}

	applyProviderEnvOverrides(cfg, "openai")
	applyProviderEnvOverrides(cfg, "anthropic")
}

func applyProviderEnvOverrides(cfg *Config, id string) {
	name := EnvPrefix + strings.ToUpper(id) + "_ENABLED"
	val := os.Getenv(name)
	if val == "" {
		return
	}

	enabled, err := strconv.ParseBool(val)
	if err != nil {
		slog.Warn("config.env.invalid", "var", name, "error", err)
		return
	}

	if cfg.Providers == nil {
		cfg.Providers = make(map[string]ProviderConfig)
	}
	pc := cfg.Providers[id]
	pc.Enabled = enabled
	cfg.Providers[id] = pc
}
