package config

import (
	"errors"
	"strings"
	"testing"
)

// ===== Validation Tests =====

func TestValidate_Defaults(t *testing.T) {
	if err := Validate(Default()); err != nil {
		t.Errorf("expected defaults to validate, got %v", err)
	}
}

func TestValidate_ReportsCoercedFields(t *testing.T) {
	loaded := map[string]interface{}{
		"monthly_budget_usd": "lots",
		"warning_thresholds": []interface{}{0.5, 2.0, "x"},
		"providers": map[string]interface{}{
			"openai": map[string]interface{}{"enabled": "yes", "project_ids": []interface{}{"a", 3}},
		},
		"currency": "EUR",
	}

	err := Validate(FromDocument(Merge(DefaultDocument(), loaded)))
	if err == nil {
		t.Fatal("expected validation error")
	}

	var verr ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %T", err)
	}

	fields := make(map[string]bool)
	for _, fe := range verr.Errors {
		fields[fe.Field] = true
	}
	for _, want := range []string{
		"monthly_budget_usd",
		"warning_thresholds[1]",
		"warning_thresholds[2]",
		"providers.openai.enabled",
		"providers.openai.project_ids[1]",
		"currency",
	} {
		if !fields[want] {
			t.Errorf("expected error for %s, got %v", want, verr.Errors)
		}
	}
	if fields["warning_thresholds[0]"] {
		t.Error("did not expect error for a valid threshold")
	}
}

func TestValidate_NonPositiveBudget(t *testing.T) {
	cfg := Default()
	cfg.SetBudget(0)

	err := Validate(FromDocument(cfg.Document()))
	if err == nil || !strings.Contains(err.Error(), "monthly_budget_usd") {
		t.Errorf("expected budget error, got %v", err)
	}
}

func TestValidationError_Format(t *testing.T) {
	single := ValidationError{Errors: []FieldError{{Field: "a", Message: "bad"}}}
	if single.Error() != "configuration validation failed: a: bad" {
		t.Errorf("unexpected single error text %q", single.Error())
	}

	multi := ValidationError{Errors: []FieldError{{Field: "a", Message: "bad"}, {Field: "b", Message: "worse"}}}
	if !strings.Contains(multi.Error(), "with 2 errors") || !strings.Contains(multi.Error(), "  - b: worse") {
		t.Errorf("unexpected multi error text %q", multi.Error())
	}
}

// ===== Environment Override Tests =====

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("TOKENTOTEM_MONTHLY_BUDGET_USD", "$300")
	t.Setenv("TOKENTOTEM_WARNING_THRESHOLDS", "90")
	t.Setenv("TOKENTOTEM_OPENAI_ENABLED", "false")
	t.Setenv("TOKENTOTEM_ANTHROPIC_ENABLED", "maybe")

	cfg := Default()
	ApplyEnvOverrides(cfg)

	if *cfg.MonthlyBudgetUSD != 300 {
		t.Errorf("expected budget 300, got %v", *cfg.MonthlyBudgetUSD)
	}
	if len(cfg.WarningThresholds) != 1 || cfg.WarningThresholds[0] != 0.9 {
		t.Errorf("expected [0.9], got %v", cfg.WarningThresholds)
	}
	if cfg.Provider("openai").Enabled {
		t.Error("expected openai disabled by env")
	}
	if !cfg.Provider("anthropic").Enabled {
		t.Error("expected invalid bool to be ignored")
	}
}

func TestApplyEnvOverrides_InvalidIgnored(t *testing.T) {
	t.Setenv("TOKENTOTEM_MONTHLY_BUDGET_USD", "a lot")
	t.Setenv("TOKENTOTEM_WARNING_THRESHOLDS", "nope")

	cfg := Default()
	ApplyEnvOverrides(cfg)

	if cfg.MonthlyBudgetUSD != nil {
		t.Error("expected budget unchanged")
	}
	if len(cfg.WarningThresholds) != 3 {
		t.Errorf("expected default thresholds, got %v", cfg.WarningThresholds)
	}
}
