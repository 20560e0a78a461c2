package config

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// FieldError represents a validation error for a specific configuration field.
type FieldError struct {
	// Field is the dotted path to the field (e.g., "providers.openai.enabled").
	Field string

	// Message is a human-readable error message.
	Message string
}

// Error returns the error message for this field error.
func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError represents one or more validation errors in a configuration.
type ValidationError struct {
	Errors []FieldError
}

// Error returns a formatted string containing all validation errors.
func (e ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "configuration validation failed"
	}
	if len(e.Errors) == 1 {
		return fmt.Sprintf("configuration validation failed: %s", e.Errors[0].Error())
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("configuration validation failed with %d errors:\n", len(e.Errors)))
	for _, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
	}
	return sb.String()
}

// Validate reports values in the merged document that Load had to coerce or
// ignore. Load itself never fails; this backs "config validate".
func Validate(cfg *Config) error {
	doc := cfg.doc
	if doc == nil {
		doc = cfg.Document()
	}

	var errs []FieldError
	errs = append(errs, validateBudget(doc[KeyMonthlyBudget])...)
	errs = append(errs, validateThresholds(doc[KeyWarningThresholds])...)
	errs = append(errs, validateProviders(doc[KeyProviders])...)

	if c, ok := doc[KeyCurrency].(string); !ok || !strings.EqualFold(c, DefaultCurrency) {
		errs = append(errs, FieldError{
			Field:   KeyCurrency,
			Message: fmt.Sprintf("only %s is supported, got %v", DefaultCurrency, doc[KeyCurrency]),
		})
	}

	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}
	return nil
}

func validateBudget(v interface{}) []FieldError {
	if v == nil {
		return nil
	}
	f, ok := toFloat(v)
	if !ok {
		return []FieldError{{Field: KeyMonthlyBudget, Message: fmt.Sprintf("must be a number or null, got %v", v)}}
	}
	if f <= 0 {
		return []FieldError{{Field: KeyMonthlyBudget, Message: "must be positive (non-positive disables budget warnings)"}}
	}
	return nil
}

func validateThresholds(v interface{}) []FieldError {
	list, ok := v.([]interface{})
	if !ok {
		return []FieldError{{Field: KeyWarningThresholds, Message: "must be a list of fractions"}}
	}

	var errs []FieldError
	for i, item := range list {
		field := fmt.Sprintf("%s[%d]", KeyWarningThresholds, i)
		f, ok := toFloat(item)
		switch {
		case !ok:
			errs = append(errs, FieldError{Field: field, Message: fmt.Sprintf("not a number: %v", item)})
		case math.IsNaN(f) || f <= 0 || f > 1:
			errs = append(errs, FieldError{Field: field, Message: fmt.Sprintf("must be in (0, 1], got %v", f)})
		}
	}
	return errs
}

func validateProviders(v interface{}) []FieldError {
	providers, ok := asMap(v)
	if !ok {
		return []FieldError{{Field: KeyProviders, Message: "must be an object"}}
	}

	ids := make([]string, 0, len(providers))
	for id := range providers {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var errs []FieldError
	for _, id := range ids {
		prefix := KeyProviders + "." + id
		section, ok := asMap(providers[id])
		if !ok {
			errs = append(errs, FieldError{Field: prefix, Message: "must be an object"})
			continue
		}
		if _, ok := section[KeyEnabled].(bool); !ok {
			errs = append(errs, FieldError{Field: prefix + "." + KeyEnabled, Message: "must be true or false"})
		}
		if raw, present := section[KeyProjectIDs]; present {
			list, ok := raw.([]interface{})
			if !ok {
				errs = append(errs, FieldError{Field: prefix + "." + KeyProjectIDs, Message: "must be a list of strings"})
				continue
			}
			for i, item := range list {
				if _, ok := item.(string); !ok {
					errs = append(errs, FieldError{
						Field:   fmt.Sprintf("%s.%s[%d]", prefix, KeyProjectIDs, i),
						Message: "must be a string",
					})
				}
			}
		}
	}
	return errs
}
