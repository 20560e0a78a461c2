package providers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"
)

func TestHTTPClient_GetJSON(t *testing.T) {
	var gotPath, gotQuery, gotUA, gotKey string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotUA = r.Header.Get("User-Agent")
		gotKey = r.Header.Get("x-api-key")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"value": 12.50}`))
	}))
	defer server.Close()

	client := NewHTTPClient(HTTPConfig{Provider: "test", BaseURL: server.URL + "/"})

	var out struct {
		Value json.Number `json:"value"`
	}
	err := client.GetJSON(context.Background(), "/v1/costs", url.Values{"limit": {"31"}}, map[string]string{"x-api-key": "k"}, &out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out.Value.String() != "12.50" {
		t.Errorf("expected number preserved as 12.50, got %s", out.Value)
	}
	if gotPath != "/v1/costs" || gotQuery != "limit=31" {
		t.Errorf("unexpected request %s?%s", gotPath, gotQuery)
	}
	if gotUA != UserAgent {
		t.Errorf("expected User-Agent %q, got %q", UserAgent, gotUA)
	}
	if gotKey != "k" {
		t.Errorf("expected header forwarded, got %q", gotKey)
	}
}

func TestHTTPClient_StatusErrors(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		body       string
		want       string
	}{
		{"401 with body", http.StatusUnauthorized, `{"error":"bad key"}`, `HTTP 401: {"error":"bad key"}`},
		{"500 empty body", http.StatusInternalServerError, "", "HTTP 500: Internal Server Error"},
		{"429", http.StatusTooManyRequests, "rate limited\n", "HTTP 429: rate limited"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls++
				w.WriteHeader(tt.statusCode)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := NewHTTPClient(HTTPConfig{Provider: "test", BaseURL: server.URL})
			err := client.GetJSON(context.Background(), "/", nil, nil, &struct{}{})

			var fetchErr *FetchError
			if !errors.As(err, &fetchErr) {
				t.Fatalf("expected *FetchError, got %T: %v", err, err)
			}
			if fetchErr.Error() != tt.want {
				t.Errorf("expected %q, got %q", tt.want, fetchErr.Error())
			}
			if fetchErr.StatusCode != tt.statusCode || fetchErr.Kind != KindHTTP {
				t.Errorf("unexpected status/kind %d/%s", fetchErr.StatusCode, fetchErr.Kind)
			}
			if calls != 1 {
				t.Errorf("expected exactly one attempt, got %d", calls)
			}
		})
	}
}

func TestHTTPClient_MalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>oops</html>`))
	}))
	defer server.Close()

	client := NewHTTPClient(HTTPConfig{Provider: "test", BaseURL: server.URL})
	err := client.GetJSON(context.Background(), "/", nil, nil, &struct{}{})

	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("expected *FetchError, got %v", err)
	}
	if fetchErr.Kind != KindParse {
		t.Errorf("expected parse error, got %s", fetchErr.Kind)
	}
	if _, ok := fetchErr.HTTPStatus(); ok {
		t.Error("expected no HTTP status on parse failure")
	}
	if fetchErr.RawResponse != "<html>oops</html>" {
		t.Errorf("expected raw response captured, got %q", fetchErr.RawResponse)
	}
}

func TestHTTPClient_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	addr := server.URL
	server.Close()

	client := NewHTTPClient(HTTPConfig{Provider: "test", BaseURL: addr})
	err := client.GetJSON(context.Background(), "/", nil, nil, &struct{}{})

	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("expected *FetchError, got %v", err)
	}
	if _, ok := fetchErr.HTTPStatus(); ok {
		t.Error("expected no HTTP status on transport failure")
	}
	if fetchErr.Message == "" {
		t.Error("expected a message")
	}
}

func TestHTTPClient_Timeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	client := NewHTTPClient(HTTPConfig{Provider: "test", BaseURL: server.URL, Timeout: 50 * time.Millisecond})

	start := time.Now()
	err := client.GetJSON(context.Background(), "/", nil, nil, &struct{}{})
	if time.Since(start) > 2*time.Second {
		t.Fatal("request was not bounded by the timeout")
	}

	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("expected *FetchError, got %v", err)
	}
	if fetchErr.Kind != KindTimeout {
		t.Errorf("expected timeout kind, got %s (%v)", fetchErr.Kind, fetchErr)
	}
}

func TestNewHTTPClient_DefaultTimeout(t *testing.T) {
	client := NewHTTPClient(HTTPConfig{Provider: "test", BaseURL: "http://example.invalid"})
	if client.Config().Timeout != DefaultTimeout {
		t.Errorf("expected default timeout %s, got %s", DefaultTimeout, client.Config().Timeout)
	}
}
