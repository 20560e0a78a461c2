package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"tokentotem/tokentotem/pkg/costs"
)

// SpendMetrics tracks the reported spend per provider.
type SpendMetrics struct {
	today       *prometheus.GaugeVec
	monthToDate *prometheus.GaugeVec
	stale       *prometheus.GaugeVec
	lastRefresh prometheus.Gauge
}

// NewSpendMetrics creates and registers spend metrics with the provided registry.
func NewSpendMetrics(cfg Config, registry *prometheus.Registry) *SpendMetrics {
	sm := &SpendMetrics{
		today: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "spend_today_usd",
				Help:      "Spend for the current UTC day in USD by provider",
			},
			[]string{"provider"},
		),
		monthToDate: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "spend_month_to_date_usd",
				Help:      "Spend for the current UTC month in USD by provider",
			},
			[]string{"provider"},
		),
		stale: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "provider_stale",
				Help:      "1 when the provider's values were carried over from a previous refresh",
			},
			[]string{"provider"},
		),
		lastRefresh: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "last_refresh_timestamp_seconds",
				Help:      "Unix time of the last completed refresh",
			},
		),
	}

	registry.MustRegister(sm.today, sm.monthToDate, sm.stale, sm.lastRefresh)
	return sm
}

// RecordSnapshot publishes an aggregated snapshot. Providers missing from
// the snapshot are removed so disabled providers stop reporting.
func (c *Collector) RecordSnapshot(snap costs.Snapshot) {
	if !c.config.Enabled {
		return
	}

	sm := c.spendMetrics
	sm.today.Reset()
	sm.monthToDate.Reset()
	sm.stale.Reset()

	for id, r := range snap.Providers {
		sm.today.WithLabelValues(id).Set(r.Today.InexactFloat64())
		sm.monthToDate.WithLabelValues(id).Set(r.MonthToDate.InexactFloat64())
		stale := 0.0
		if r.Stale {
			stale = 1
		}
		sm.stale.WithLabelValues(id).Set(stale)
	}

	if !snap.LastUpdated.IsZero() {
		sm.lastRefresh.Set(float64(snap.LastUpdated.Unix()))
	}
}
