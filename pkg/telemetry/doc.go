// Package telemetry groups TokenTotem's observability packages.
//
// # Components
//
//   - logging: slog setup with admin-key redaction, written to stderr
//   - metrics: Prometheus gauges for spend, budget and cost API calls
//   - tracing: OpenTelemetry spans around refresh runs and cost requests
//   - health: liveness and readiness endpoints for the watch command
package telemetry
