// Package config loads, merges and saves the TokenTotem configuration document.
//
// # Document
//
// The configuration is a small JSON (or YAML) document:
//
//	{
//	  "currency": "USD",
//	  "monthly_budget_usd": null,
//	  "providers": {
//	    "anthropic": {"enabled": true},
//	    "openai": {"enabled": true, "project_ids": []}
//	  },
//	  "warning_thresholds": [0.5, 0.8, 0.95]
//	}
//
// Keys this package does not know about are preserved across load and save.
//
// # Loading
//
// Load never fails. A missing or unparseable file yields the defaults.
// Otherwise the file is merged over the defaults recursively: when both
// sides hold an object the objects are merged, and in every other case the
// file's value replaces the default outright (lists are not spliced).
//
// The merged document is then decoded into Config with coercion: numeric
// strings are accepted for the budget, and thresholds are filtered to (0, 1],
// deduplicated and sorted.
//
// # Environment Variable Overrides
//
// ApplyEnvOverrides applies TOKENTOTEM_* variables to a loaded Config:
//
//   - TOKENTOTEM_MONTHLY_BUDGET_USD overrides monthly_budget_usd
//   - TOKENTOTEM_WARNING_THRESHOLDS overrides warning_thresholds ("50,80,95")
//   - TOKENTOTEM_OPENAI_ENABLED, TOKENTOTEM_ANTHROPIC_ENABLED override providers.*.enabled
//
// Overrides are meant for the effective configuration of a refresh and are
// not written back by Save.
package config
