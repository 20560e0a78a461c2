package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"

	"tokentotem/tokentotem/pkg/budget"
)

// BudgetMetrics tracks the monthly budget and threshold notifications.
type BudgetMetrics struct {
	budgetUSD     prometheus.Gauge
	usageRatio    prometheus.Gauge
	watermark     prometheus.Gauge
	notifications *prometheus.CounterVec
}

// NewBudgetMetrics creates and registers budget metrics with the provided registry.
func NewBudgetMetrics(cfg Config, registry *prometheus.Registry) *BudgetMetrics {
	bm := &BudgetMetrics{
		budgetUSD: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "budget_usd",
				Help:      "Configured monthly budget in USD (0 when unset)",
			},
		),
		usageRatio: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "budget_usage_ratio",
				Help:      "Month-to-date spend divided by the monthly budget",
			},
		),
		watermark: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "budget_watermark",
				Help:      "Highest warning threshold already notified this month",
			},
		),
		notifications: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "budget_notifications_total",
				Help:      "Budget threshold notifications by threshold percent",
			},
			[]string{"threshold"},
		),
	}

	registry.MustRegister(bm.budgetUSD, bm.usageRatio, bm.watermark, bm.notifications)
	return bm
}

// RecordBudget publishes the budget state after an evaluation. event is nil
// when no threshold was crossed.
func (c *Collector) RecordBudget(totalMonthToDate, monthlyBudget decimal.Decimal, wm budget.Watermark, event *budget.Event) {
	if !c.config.Enabled {
		return
	}

	bm := c.budgetMetrics
	bm.budgetUSD.Set(monthlyBudget.InexactFloat64())
	if usage, ok := budget.Usage(totalMonthToDate, monthlyBudget); ok {
		bm.usageRatio.Set(usage.InexactFloat64())
	} else {
		bm.usageRatio.Set(0)
	}
	bm.watermark.Set(wm.LastNotifiedThreshold)

	if event != nil {
		bm.notifications.WithLabelValues(decimal.NewFromInt(event.Percent()).String()).Inc()
	}
}
