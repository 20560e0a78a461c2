package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// maxErrorBody caps how much of an error response ends up in a FetchError.
const maxErrorBody = 4 << 10

// HTTPConfig configures an HTTPClient.
type HTTPConfig struct {
	// Provider is the provider id used in errors and logs
	Provider string

	// BaseURL is the API root, e.g. "https://api.openai.com"
	BaseURL string

	// Timeout bounds the whole request (defaults to DefaultTimeout)
	Timeout time.Duration

	// Transport overrides the HTTP transport (tests, proxies)
	Transport http.RoundTripper
}

// HTTPClient performs authenticated JSON GETs against a provider API and maps
// every failure to a *FetchError. It does not retry.
type HTTPClient struct {
	config HTTPConfig
	client *http.Client
}

// NewHTTPClient creates a client with the configured timeout.
func NewHTTPClient(config HTTPConfig) *HTTPClient {
	if config.Timeout <= 0 {
		config.Timeout = DefaultTimeout
	}
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")

	transport := config.Transport
	if transport == nil {
		transport = &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			MaxIdleConnsPerHost: 2,
			IdleConnTimeout:     30 * time.Second,
			ForceAttemptHTTP2:   true,
		}
	}

	return &HTTPClient{
		config: config,
		client: &http.Client{
			Transport: transport,
			Timeout:   config.Timeout,
		},
	}
}

// Config returns the client's configuration.
func (c *HTTPClient) Config() HTTPConfig {
	return c.config
}

// GetJSON sends GET {BaseURL}{path}?{query} and decodes the JSON response
// into out. Numbers are decoded as json.Number so callers can keep exact
// decimal amounts.
func (c *HTTPClient) GetJSON(ctx context.Context, path string, query url.Values, headers map[string]string, out interface{}) error {
	endpoint := c.config.BaseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return &FetchError{
			Provider: c.config.Provider,
			Kind:     KindTransport,
			Message:  fmt.Sprintf("failed to create request: %v", err),
			Cause:    err,
		}
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", UserAgent)
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	slog.Debug("providers.request",
		"provider", c.config.Provider,
		"path", path,
	)

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return c.transportError(ctx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		fetchErr := newStatusError(c.config.Provider, resp.StatusCode, strings.TrimSpace(string(body)))
		slog.Debug("providers.response.error",
			"provider", c.config.Provider,
			"status", resp.StatusCode,
			"duration", time.Since(start),
		)
		return fetchErr
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return c.transportError(ctx, err)
	}

	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.UseNumber()
	if err := decoder.Decode(out); err != nil {
		raw := string(body)
		if len(raw) > maxErrorBody {
			raw = raw[:maxErrorBody]
		}
		return &FetchError{
			Provider:    c.config.Provider,
			Kind:        KindParse,
			Message:     fmt.Sprintf("invalid response: %v", err),
			StatusCode:  0,
			RawResponse: raw,
			Cause:       err,
		}
	}

	slog.Debug("providers.response",
		"provider", c.config.Provider,
		"status", resp.StatusCode,
		"bytes", len(body),
		"duration", time.Since(start),
	)
	return nil
}

func (c *HTTPClient) transportError(ctx context.Context, err error) *FetchError {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return &FetchError{
			Provider: c.config.Provider,
			Kind:     KindTimeout,
			Message:  fmt.Sprintf("request timed out after %s", c.config.Timeout),
			Cause:    err,
		}
	}
	if ctx.Err() != nil {
		return &FetchError{
			Provider: c.config.Provider,
			Kind:     KindTransport,
			Message:  ctx.Err().Error(),
			Cause:    err,
		}
	}
	return &FetchError{
		Provider: c.config.Provider,
		Kind:     KindTransport,
		Message:  err.Error(),
		Cause:    err,
	}
}
