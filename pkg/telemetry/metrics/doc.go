// Package metrics provides Prometheus metrics for TokenTotem.
//
// # Overview
//
// Metrics are registered on a private registry and exposed two ways: an HTTP
// handler for the long-running watch command, and a textfile export for
// one-shot status runs picked up by the node_exporter textfile collector.
//
// # Metrics
//
//   - tokentotem_spend_today_usd{provider}: today's UTC spend
//   - tokentotem_spend_month_to_date_usd{provider}: month-to-date spend
//   - tokentotem_provider_stale{provider}: 1 when cached values are shown
//   - tokentotem_fetch_duration_seconds{provider}: cost API latency
//   - tokentotem_fetch_errors_total{provider,kind}: failed fetches by error kind
//     (auth, rate_limited, http, transport, timeout, parse, config)
//   - tokentotem_budget_usd, tokentotem_budget_usage_ratio: budget state
//   - tokentotem_budget_watermark: highest threshold notified this month
//   - tokentotem_budget_notifications_total: thresholds crossed
//   - tokentotem_last_refresh_timestamp_seconds: time of the last refresh
//
// # Usage
//
//	collector := metrics.NewCollector(metrics.Config{Enabled: true}, nil)
//	costs.Collect(ctx, jobs, window, costs.CollectOptions{Observer: collector})
//	collector.RecordSnapshot(snapshot)
//	http.Handle("/metrics", collector.Handler())
package metrics
