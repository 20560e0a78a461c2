package providers

import (
	"fmt"
	"net/http"
)

// ErrorKind classifies a FetchError.
type ErrorKind string

const (
	// KindHTTP is a non-2xx response from the provider.
	KindHTTP ErrorKind = "http"
	// KindTransport is a network failure before any response was received.
	KindTransport ErrorKind = "transport"
	// KindTimeout is a request that exceeded the client timeout.
	KindTimeout ErrorKind = "timeout"
	// KindParse is a response body that could not be decoded.
	KindParse ErrorKind = "parse"
	// KindConfig is a request that could not be built, e.g. an empty key.
	KindConfig ErrorKind = "config"
)

// FetchError is returned by every Fetcher on failure.
type FetchError struct {
	// Provider is the provider id ("openai", "anthropic")
	Provider string

	// Kind classifies the failure
	Kind ErrorKind

	// Message is the human-readable message shown in the status bar
	Message string

	// StatusCode is the HTTP status code, 0 when no response was received
	StatusCode int

	// RawResponse holds a prefix of the body for parse failures
	RawResponse string

	// Cause is the underlying error (if any)
	Cause error
}

// Error implements the error interface. It returns Message unchanged so the
// rendered "Error:" line matches what the provider said.
func (e *FetchError) Error() string {
	return e.Message
}

// Unwrap returns the underlying error for error chain support.
func (e *FetchError) Unwrap() error {
	return e.Cause
}

// HTTPStatus returns the response status code, if a response was received.
func (e *FetchError) HTTPStatus() (int, bool) {
	return e.StatusCode, e.StatusCode != 0
}

// IsAuth reports whether the provider rejected the admin key.
func (e *FetchError) IsAuth() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// IsRateLimited reports whether the provider returned 429.
func (e *FetchError) IsRateLimited() bool {
	return e.StatusCode == http.StatusTooManyRequests
}

// newStatusError builds the error for a non-2xx response. An empty body
// falls back to the standard reason phrase.
func newStatusError(provider string, status int, body string) *FetchError {
	detail := body
	if detail == "" {
		detail = http.StatusText(status)
	}
	return &FetchError{
		Provider:   provider,
		Kind:       KindHTTP,
		Message:    fmt.Sprintf("HTTP %d: %s", status, detail),
		StatusCode: status,
	}
}
