package openai

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
	// DefaultBaseURL is the OpenAI API root.
	DefaultBaseURL = "https://api.openai.com"

	costsPath = "/v1/organization/costs"

	// bucketLimit covers the longest calendar month.
	bucketLimit = 31
)

// Config configures the OpenAI cost client.
type Config struct {
	BaseURL   string
	Timeout   time.Duration
	Transport http.RoundTripper
}

// Client implements providers.Fetcher for OpenAI.
type Client struct {
	http *providers.HTTPClient
}

// NewClient creates an OpenAI cost client. Zero values use the defaults.
func NewClient(config Config) *Client {
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	return &Client{
		http: providers.NewHTTPClient(providers.HTTPConfig{
			Provider:  providers.OpenAI,
			BaseURL:   config.BaseURL,
			Timeout:   config.Timeout,
			Transport: config.Transport,
		}),
	}
}

// Name implements providers.Fetcher.
func (c *Client) Name() string {
	return providers.OpenAI
}

// costsResponse is the Costs API page. Everything below data is decoded
// untyped and read with providers.Objects, so a malformed bucket or line
// item counts as zero.
type costsResponse struct {
	Data interface{} `json:"data"`
}

// FetchCosts implements providers.Fetcher.
func (c *Client) FetchCosts(ctx context.Context, secret string, w providers.Window, f providers.Filters) (providers.Costs, error) {
	if secret == "" {
		return providers.Costs{}, &providers.FetchError{
			Provider: providers.OpenAI,
			Kind:     providers.KindConfig,
			Message:  "OpenAI admin key is empty",
		}
	}

	query := url.Values{}
	query.Set("start_time", strconv.FormatInt(w.Start.Unix(), 10))
	query.Set("end_time", strconv.FormatInt(w.End.Unix(), 10))
	query.Set("bucket_width", "1d")
	query.Set("limit", strconv.Itoa(bucketLimit))
	for _, id := range f.ProjectIDs {
		query.Add("project_ids", id)
	}

	headers := map[string]string{
		"Authorization": "Bearer " + secret,
		"Content-Type":  "application/json",
	}

	var resp costsResponse
	if err := c.http.GetJSON(ctx, costsPath, query, headers, &resp); err != nil {
		return providers.Costs{}, err
	}

	entries := providers.Objects(resp.Data)
	buckets := make([]providers.Bucket, 0, len(entries))
	for _, entry := range entries {
		var b providers.Bucket
		for _, result := range providers.Objects(entry["results"]) {
			b.Total = b.Total.Add(amountValue(result["amount"]))
		}
		if start, ok := providers.ParseUnixTime(entry["start_time"]); ok {
			b.Start = start
		}
		buckets = append(buckets, b)
	}

	return providers.Summarize(buckets, w), nil
}

// amountValue reads amount.value; any other shape is zero.
func amountValue(amount interface{}) decimal.Decimal {
	obj, ok := amount.(map[string]interface{})
	if !ok {
		return decimal.Zero
	}
	return providers.ParseAmount(obj["value"])
}
