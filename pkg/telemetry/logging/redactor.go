package logging

import (
	"regexp"
	"strings"
)

// Redactor masks credentials in log fields.
type Redactor struct {
	patterns []*redactPattern
}

// Pattern is an additional redaction rule.
type Pattern struct {
	Name        string
	Pattern     string
	Replacement string
}

// redactPattern contains a compiled regex and a replacement function.
type redactPattern struct {
	name    string
	regex   *regexp.Regexp
	replace func(match string) string
}

// Built-in pattern names.
const (
	PatternAPIKey      = "api_key"
	PatternBearerToken = "bearer_token"
	PatternKeyHeader   = "key_header"
)

var defaultPatterns = []struct {
	name    string
	regex   string
	replace func(string) string
}{
	{
		// OpenAI (sk-, sk-admin-, sk-proj-) and Anthropic (sk-ant-) keys.
		name:  PatternAPIKey,
		regex: `sk-[A-Za-z0-9_\-]+`,
		replace: func(match string) string {
			if strings.HasPrefix(match, "sk-ant-") {
				return "sk-ant-***"
			}
			return "sk-***"
		},
	},
	{
		name:    PatternBearerToken,
		regex:   `Bearer\s+[A-Za-z0-9\-._~+/]+=*`,
		replace: func(string) string { return "Bearer ***" },
	},
	{
		name:  PatternKeyHeader,
		regex: `(?i)x-api-key[:=]\s*\S+`,
		replace: func(match string) string {
			return match[:len("x-api-key")] + ": ***"
		},
	},
}

// NewRedactor creates a Redactor with the built-in patterns plus extra.
// Extra patterns that fail to compile are skipped.
func NewRedactor(extra ...Pattern) *Redactor {
	r := &Redactor{}

	for _, p := range defaultPatterns {
		r.patterns = append(r.patterns, &redactPattern{
			name:    p.name,
			regex:   regexp.MustCompile(p.regex),
			replace: p.replace,
		})
	}

	for _, p := range extra {
		regex, err := regexp.Compile(p.Pattern)
		if err != nil {
			continue
		}
		replacement := p.Replacement
		r.patterns = append(r.patterns, &redactPattern{
			name:    p.Name,
			regex:   regex,
			replace: func(string) string { return replacement },
		})
	}

	return r
}

// RedactString masks every credential found in value.
func (r *Redactor) RedactString(value string) string {
	if r == nil || value == "" {
		return value
	}

	redacted := value
	for _, pattern := range r.patterns {
		redacted = pattern.regex.ReplaceAllStringFunc(redacted, pattern.replace)
	}
	return redacted
}

// RedactField redacts a single key/value pair. Values under sensitive keys
// are masked whole.
func (r *Redactor) RedactField(key, value string) string {
	if r == nil {
		return value
	}
	if isSensitiveKey(key) {
		return RedactAPIKey(value)
	}
	return r.RedactString(value)
}

// isSensitiveKey checks if a key name indicates a credential.
func isSensitiveKey(key string) bool {
	lowerKey := strings.ToLower(key)

	sensitiveKeys := []string{
		"secret", "token", "api_key", "apikey", "admin_key",
		"authorization", "password",
	}

	for _, sensitive := range sensitiveKeys {
		if strings.Contains(lowerKey, sensitive) {
			return true
		}
	}
	return false
}

// RedactAPIKey redacts an API key, keeping only a prefix.
func RedactAPIKey(apiKey string) string {
	if apiKey == "" {
		return ""
	}
	if len(apiKey) <= 4 {
		return "***"
	}

	// Keep first 4 characters for identification
	return apiKey[:4] + "***"
}
