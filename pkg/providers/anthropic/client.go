package anthropic

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"tokentotem/tokentotem/pkg/providers"
)

const (
	// DefaultBaseURL is the Anthropic API root.
	DefaultBaseURL = "https://api.anthropic.com"

	// DefaultAnthropicVersion is the API version to use
	DefaultAnthropicVersion = "2023-06-01"

	costReportPath = "/v1/organizations/cost_report"
	bucketLimit    = 31
)

// centsPerDollar converts cost report amounts to major units.
var centsPerDollar = decimal.NewFromInt(100)

// Config configures the Anthropic cost client.
type Config struct {
	BaseURL   string
	Timeout   time.Duration
	Transport http.RoundTripper
}

// Client implements providers.Fetcher for Anthropic.
type Client struct {
	http *providers.HTTPClient
}

// NewClient creates an Anthropic cost client. Zero values use the defaults.
func NewClient(config Config) *Client {
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	return &Client{
		http: providers.NewHTTPClient(providers.HTTPConfig{
			Provider:  providers.Anthropic,
			BaseURL:   config.BaseURL,
			Timeout:   config.Timeout,
			Transport: config.Transport,
		}),
	}
}

// Name implements providers.Fetcher.
func (c *Client) Name() string {
	return providers.Anthropic
}

// costReport is read with providers.Objects below data, so a malformed
// bucket or line item counts as zero.
type costReport struct {
	Data interface{} `json:"data"`
}

// FetchCosts implements providers.Fetcher. Filters are not supported by the
// cost report and are ignored.
func (c *Client) FetchCosts(ctx context.Context, secret string, w providers.Window, _ providers.Filters) (providers.Costs, error) {
	if secret == "" {
		return providers.Costs{}, &providers.FetchError{
			Provider: providers.Anthropic,
			Kind:     providers.KindConfig,
			Message:  "Anthropic admin key is empty",
		}
	}

	query := url.Values{}
	query.Set("starting_at", providers.FormatTimestamp(w.Start))
	query.Set("ending_at", providers.FormatTimestamp(w.End))
	query.Set("bucket_width", "1d")
	query.Set("limit", strconv.Itoa(bucketLimit))

	headers := map[string]string{
		"x-api-key":         secret,
		"anthropic-version": DefaultAnthropicVersion,
	}

	var report costReport
	if err := c.http.GetJSON(ctx, costReportPath, query, headers, &report); err != nil {
		return providers.Costs{}, err
	}

	entries := providers.Objects(report.Data)
	buckets := make([]providers.Bucket, 0, len(entries))
	for _, entry := range entries {
		var b providers.Bucket
		for _, result := range providers.Objects(entry["results"]) {
			cents := providers.ParseAmount(result["amount"])
			b.Total = b.Total.Add(cents.Div(centsPerDollar))
		}
		if start, ok := providers.ParseTimestamp(entry["starting_at"]); ok {
			b.Start = start
		}
		buckets = append(buckets, b)
	}

	return providers.Summarize(buckets, w), nil
}
