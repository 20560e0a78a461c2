package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Config configures the Collector.
type Config struct {
	// Enabled turns recording on. A disabled collector is a no-op.
	Enabled bool

	// Namespace prefixes every metric name.
	// Default: "tokentotem"
	Namespace string

	// Subsystem is an optional second prefix.
	Subsystem string

	// FetchDurationBuckets are the histogram buckets for cost API latency,
	// in seconds.
	FetchDurationBuckets []float64
}

// Collector owns the TokenTotem metrics and the registry they live on.
type Collector struct {
	config   Config
	registry *prometheus.Registry

	spendMetrics    *SpendMetrics
	providerMetrics *ProviderMetrics
	budgetMetrics   *BudgetMetrics
}

// NewCollector creates a collector registered on registry. A nil registry
// gets a fresh one.
func NewCollector(cfg Config, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	if cfg.Namespace == "" {
		cfg.Namespace = "tokentotem"
	}
	if len(cfg.FetchDurationBuckets) == 0 {
		// Cost report calls (50ms - 20s timeout)
		cfg.FetchDurationBuckets = []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20}
	}

	return &Collector{
		config:          cfg,
		registry:        registry,
		spendMetrics:    NewSpendMetrics(cfg, registry),
		providerMetrics: NewProviderMetrics(cfg, registry),
		budgetMetrics:   NewBudgetMetrics(cfg, registry),
	}
}

// Registry returns the Prometheus registry used by this collector.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Config returns the collector configuration with defaults applied.
func (c *Collector) Config() Config {
	return c.config
}
