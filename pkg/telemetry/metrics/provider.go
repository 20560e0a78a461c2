package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"tokentotem/tokentotem/pkg/providers"
)

// ProviderMetrics tracks cost API calls.
type ProviderMetrics struct {
	fetchDuration *prometheus.HistogramVec
	fetchErrors   *prometheus.CounterVec
}

// NewProviderMetrics creates and registers provider metrics with the provided registry.
func NewProviderMetrics(cfg Config, registry *prometheus.Registry) *ProviderMetrics {
	pm := &ProviderMetrics{
		fetchDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "fetch_duration_seconds",
				Help:      "Cost report request latency in seconds by provider",
				Buckets:   cfg.FetchDurationBuckets,
			},
			[]string{"provider"},
		),
		fetchErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "fetch_errors_total",
				Help:      "Failed cost report requests by provider and error kind",
			},
			[]string{"provider", "kind"},
		),
	}

	registry.MustRegister(pm.fetchDuration, pm.fetchErrors)
	return pm
}

// ObserveFetch records one cost report call.
func (c *Collector) ObserveFetch(provider string, duration time.Duration, err error) {
	if !c.config.Enabled {
		return
	}

	c.providerMetrics.fetchDuration.WithLabelValues(provider).Observe(duration.Seconds())
	if err != nil {
		c.providerMetrics.fetchErrors.WithLabelValues(provider, errorKind(err)).Inc()
	}
}

// errorKind maps an error to a label: "auth" for a rejected admin key,
// "rate_limited" for 429, the FetchError kind otherwise, and "unknown" for
// errors that are not FetchErrors.
func errorKind(err error) string {
	var fetchErr *providers.FetchError
	if !errors.As(err, &fetchErr) {
		return "unknown"
	}
	switch {
	case fetchErr.IsAuth():
		return "auth"
	case fetchErr.IsRateLimited():
		return "rate_limited"
	case fetchErr.Kind != "":
		return string(fetchErr.Kind)
	default:
		return "unknown"
	}
}
