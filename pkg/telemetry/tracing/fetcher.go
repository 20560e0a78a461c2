package tracing

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"tokentotem/tokentotem/pkg/providers"
)

// Span attribute keys.
const (
	AttrProvider    = attribute.Key("tokentotem.provider")
	AttrWindowStart = attribute.Key("tokentotem.window.start")
	AttrWindowEnd   = attribute.Key("tokentotem.window.end")
	AttrProjects    = attribute.Key("tokentotem.project_ids")
	AttrToday       = attribute.Key("tokentotem.spend.today")
	AttrMonthToDate = attribute.Key("tokentotem.spend.mtd")
	AttrErrorKind   = attribute.Key("tokentotem.error.kind")
	AttrHTTPStatus  = attribute.Key("http.response.status_code")
)

// tracedFetcher records a client span around every cost request.
type tracedFetcher struct {
	providers.Fetcher
	tracer *Tracer
}

// WrapFetcher returns f with a span around each FetchCosts call. A disabled
// tracer returns f unchanged.
func (t *Tracer) WrapFetcher(f providers.Fetcher) providers.Fetcher {
	if !t.enabled {
		return f
	}
	return &tracedFetcher{Fetcher: f, tracer: t}
}

func (f *tracedFetcher) FetchCosts(ctx context.Context, secret string, w providers.Window, filters providers.Filters) (providers.Costs, error) {
	ctx, span := f.tracer.Start(ctx, "providers.fetch_costs",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			AttrProvider.String(f.Name()),
			AttrWindowStart.String(providers.FormatTimestamp(w.Start)),
			AttrWindowEnd.String(providers.FormatTimestamp(w.End)),
			AttrProjects.StringSlice(filters.ProjectIDs),
		),
	)
	defer span.End()

	c, err := f.Fetcher.FetchCosts(ctx, secret, w, filters)
	if err != nil {
		var fetchErr *providers.FetchError
		if errors.As(err, &fetchErr) {
			span.SetAttributes(AttrErrorKind.String(string(fetchErr.Kind)))
			if status, ok := fetchErr.HTTPStatus(); ok {
				span.SetAttributes(AttrHTTPStatus.Int(status))
			}
		}
		SetStatus(span, err)
		return c, err
	}

	span.SetAttributes(
		AttrToday.String(c.Today.String()),
		AttrMonthToDate.String(c.MonthToDate.String()),
	)
	SetStatus(span, nil)
	return c, nil
}
