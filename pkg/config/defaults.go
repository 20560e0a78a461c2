package config

// Default values for configuration fields.
const (
	DefaultCurrency = "USD"

	// DefaultBudgetPrompt and DefaultThresholdsPrompt pre-fill the prompts of
	// the set-budget and set-thresholds actions.
	DefaultBudgetPrompt     = "100"
	DefaultThresholdsPrompt = "50,80,95"
)

// Document keys.
const (
	KeyMonthlyBudget     = "monthly_budget_usd"
	KeyWarningThresholds = "warning_thresholds"
	KeyProviders         = "providers"
	KeyCurrency          = "currency"
	KeyEnabled           = "enabled"
	KeyProjectIDs        = "project_ids"
)

// DefaultWarningThresholds are the fractions of budget that trigger warnings.
func DefaultWarningThresholds() []float64 {
	return []float64{0.5, 0.8, 0.95}
}

// DefaultDocument returns a fresh copy of the built-in configuration document.
func DefaultDocument() map[string]interface{} {
	return map[string]interface{}{
		KeyMonthlyBudget:     nil,
		KeyWarningThresholds: []interface{}{0.5, 0.8, 0.95},
		KeyProviders: map[string]interface{}{
			"openai": map[string]interface{}{
				KeyEnabled:    true,
				KeyProjectIDs: []interface{}{},
			},
			"anthropic": map[string]interface{}{
				KeyEnabled: true,
			},
		},
		KeyCurrency: DefaultCurrency,
	}
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return FromDocument(DefaultDocument())
}
