// Package costapi provides a mock of the OpenAI and Anthropic cost APIs for
// tests.
package costapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"time"
)

// API paths served by the mock.
const (
	OpenAICostsPath    = "/v1/organization/costs"
	AnthropicCostsPath = "/v1/organizations/cost_report"
)

// MockServer is a mock HTTP server for testing cost clients.
type MockServer struct {
	server    *httptest.Server
	responses map[string]MockResponse
	requests  []*http.Request
	mu        sync.Mutex
}

// MockResponse defines a mock response configuration.
type MockResponse struct {
	StatusCode int
	Body       interface{}
	Delay      time.Duration
	Headers    map[string]string
}

// NewMockServer creates a new mock server.
func NewMockServer() *MockServer {
	ms := &MockServer{
		responses: make(map[string]MockResponse),
	}
	ms.server = httptest.NewServer(http.HandlerFunc(ms.handler))
	return ms
}

// URL returns the mock server's base URL.
func (ms *MockServer) URL() string {
	return ms.server.URL
}

// Close closes the mock server.
func (ms *MockServer) Close() {
	ms.server.Close()
}

// SetResponse sets a mock response for a specific path.
func (ms *MockServer) SetResponse(path string, response MockResponse) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	ms.responses[path] = response
}

// Requests returns the requests received for path.
func (ms *MockServer) Requests(path string) []*http.Request {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	var out []*http.Request
	for _, r := range ms.requests {
		if r.URL.Path == path {
			out = append(out, r)
		}
	}
	return out
}

func (ms *MockServer) handler(w http.ResponseWriter, r *http.Request) {
	ms.mu.Lock()
	ms.requests = append(ms.requests, r.Clone(r.Context()))
	response, ok := ms.responses[r.URL.Path]
	ms.mu.Unlock()

	if !ok {
		http.NotFound(w, r)
		return
	}

	if response.Delay > 0 {
		select {
		case <-time.After(response.Delay):
		case <-r.Context().Done():
			return
		}
	}

	for key, value := range response.Headers {
		w.Header().Set(key, value)
	}
	if response.StatusCode == 0 {
		response.StatusCode = http.StatusOK
	}
	w.WriteHeader(response.StatusCode)

	switch v := response.Body.(type) {
	case nil:
	case string:
		_, _ = w.Write([]byte(v))
	case []byte:
		_, _ = w.Write(v)
	default:
		_ = json.NewEncoder(w).Encode(v)
	}
}

// Bucket is one daily cost bucket in USD.
type Bucket struct {
	Start  time.Time
	Amount float64
}

// OpenAICostsPage builds a Costs API page with one result per bucket.
func OpenAICostsPage(buckets ...Bucket) map[string]interface{} {
	data := make([]map[string]interface{}, 0, len(buckets))
	for _, b := range buckets {
		data = append(data, map[string]interface{}{
			"object":     "bucket",
			"start_time": b.Start.Unix(),
			"end_time":   b.Start.Add(24 * time.Hour).Unix(),
			"results": []map[string]interface{}{
				{
					"object": "organization.costs.result",
					"amount": map[string]interface{}{"value": b.Amount, "currency": "usd"},
				},
			},
		})
	}
	return map[string]interface{}{
		"object":   "page",
		"data":     data,
		"has_more": false,
	}
}

// AnthropicCostReport builds a cost report page. Amounts are converted to
// cents as decimal strings, the way the API reports them.
func AnthropicCostReport(buckets ...Bucket) map[string]interface{} {
	data := make([]map[string]interface{}, 0, len(buckets))
	for _, b := range buckets {
		data = append(data, map[string]interface{}{
			"starting_at": b.Start.UTC().Format(time.RFC3339),
			"ending_at":   b.Start.Add(24 * time.Hour).UTC().Format(time.RFC3339),
			"results": []map[string]interface{}{
				{
					"currency": "USD",
					"amount":   strconv.FormatFloat(b.Amount*100, 'f', -1, 64),
				},
			},
		})
	}
	return map[string]interface{}{
		"data":      data,
		"has_more":  false,
		"next_page": nil,
	}
}
