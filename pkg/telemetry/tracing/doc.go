// Package tracing exports OpenTelemetry spans for refresh runs and provider
// cost requests.
//
// Tracing is off by default. When enabled, spans are batched to an OTLP/gRPC
// collector:
//
//	tracer, err := tracing.New(tracing.Config{
//	    Enabled:  true,
//	    Endpoint: "localhost:4317",
//	    Insecure: true,
//	})
//	defer tracer.Shutdown(context.Background())
//
//	fetcher = tracer.WrapFetcher(fetcher)
//
// A disabled Tracer hands out no-op spans, so callers never need to check.
package tracing
