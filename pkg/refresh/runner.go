package refresh

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"tokentotem/tokentotem/pkg/budget"
	"tokentotem/tokentotem/pkg/config"
	"tokentotem/tokentotem/pkg/costs"
	"tokentotem/tokentotem/pkg/providers"
	"tokentotem/tokentotem/pkg/security/secrets"
	"tokentotem/tokentotem/pkg/state"
	"tokentotem/tokentotem/pkg/telemetry/logging"
	"tokentotem/tokentotem/pkg/telemetry/metrics"
	"tokentotem/tokentotem/pkg/telemetry/tracing"
)

// AppName is the notification title.
const AppName = "TokenTotem"

// ProviderOrder is the order providers are fetched and displayed in.
var ProviderOrder = []string{providers.OpenAI, providers.Anthropic}

// Notifier delivers a budget notification to the user.
type Notifier interface {
	Notify(ctx context.Context, title, message string) error
}

// Report is the result of one pass.
type Report struct {
	// Snapshot holds the per-provider results and totals.
	Snapshot costs.Snapshot

	// Config is the configuration the pass ran with, env overrides applied.
	Config *config.Config

	// Event is the threshold crossed during this pass, if any.
	Event *budget.Event

	// Watermark is the budget watermark after this pass.
	Watermark budget.Watermark

	// Now is the pass time in UTC.
	Now time.Time

	// RunID correlates the pass's log lines and span.
	RunID string
}

// Runner runs refresh passes. Store, Secrets and Fetchers are required; the
// rest is optional.
type Runner struct {
	Store   state.Store
	Secrets secrets.Store

	// Fetchers maps provider id to its client.
	Fetchers map[string]providers.Fetcher

	// Notifier shows threshold events. Nil disables notifications.
	Notifier Notifier

	// Clock returns the current time. Default: time.Now.
	Clock func() time.Time

	// Parallel fetches providers concurrently.
	Parallel bool

	// Metrics, if set, records fetch latency, spend and budget state.
	Metrics *metrics.Collector

	// Tracer, if set, records a span per pass and per fetch.
	Tracer *tracing.Tracer

	// Budget evaluates thresholds. Default: budget.NewNotifier().
	Budget *budget.Notifier
}

// Validate checks that the required fields are set.
func (r *Runner) Validate() error {
	var errs []error
	if r.Store == nil {
		errs = append(errs, errors.New("store is required"))
	}
	if r.Secrets == nil {
		errs = append(errs, errors.New("secrets store is required"))
	}
	if len(r.Fetchers) == 0 {
		errs = append(errs, errors.New("at least one fetcher is required"))
	}
	return errors.Join(errs...)
}

// Run executes one pass. Provider failures do not fail the pass; they are
// carried in the snapshot. Run returns an error only when the runner is
// misconfigured or the context is done before fetching starts.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	if err := r.Validate(); err != nil {
		return nil, fmt.Errorf("invalid refresh runner: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	ctx = logging.WithRunID(ctx, runID)

	tracer := r.Tracer
	if tracer == nil {
		tracer = tracing.Disabled()
	}
	ctx, span := tracer.Start(ctx, "refresh.run")
	defer span.End()

	now := r.now()
	log := slog.Default()
	log.DebugContext(ctx, "refresh.started", "now", now.Format(time.RFC3339))

	cfg := r.Store.LoadConfig().Clone()
	config.ApplyEnvOverrides(cfg)
	cache := r.Store.LoadCache(ctx)

	enabled, jobs := r.jobs(ctx, cfg, tracer)
	span.SetAttributes(attribute.StringSlice("tokentotem.providers", enabled))

	var observer costs.Observer
	if r.Metrics != nil {
		observer = r.Metrics
	}
	live := costs.Collect(ctx, jobs, providers.MonthToDate(now), costs.CollectOptions{
		Parallel: r.Parallel,
		Observer: observer,
	})
	snap := costs.Aggregate(enabled, live, cache.Providers, now)

	evaluator := r.Budget
	if evaluator == nil {
		evaluator = budget.NewNotifier()
	}
	wm, event := evaluator.Evaluate(ctx, now, snap.TotalMonthToDate, cfg.Budget(), cfg.WarningThresholds, cache.Budget)
	if event != nil {
		r.notify(ctx, event)
	}

	cache.Providers = snap.Providers
	cache.LastUpdated = now.Format(time.RFC3339)
	cache.Budget = wm
	if err := r.Store.SaveCache(ctx, cache); err != nil {
		log.ErrorContext(ctx, "refresh.cache.save_failed", "error", err)
	}

	if r.Metrics != nil {
		r.Metrics.RecordSnapshot(snap)
		r.Metrics.RecordBudget(snap.TotalMonthToDate, cfg.Budget(), wm, event)
	}

	span.SetAttributes(
		attribute.String("tokentotem.spend.today", snap.TotalToday.StringFixed(2)),
		attribute.String("tokentotem.spend.mtd", snap.TotalMonthToDate.StringFixed(2)),
	)
	log.InfoContext(ctx, "refresh.completed",
		"providers", len(snap.Providers),
		"today", snap.TotalToday.StringFixed(2),
		"mtd", snap.TotalMonthToDate.StringFixed(2),
		"notified", event != nil,
	)

	return &Report{
		Snapshot:  snap,
		Config:    cfg,
		Event:     event,
		Watermark: wm,
		Now:       now,
		RunID:     runID,
	}, nil
}

// jobs returns the providers that are enabled, have a fetcher, and have an
// admin key, in display order.
func (r *Runner) jobs(ctx context.Context, cfg *config.Config, tracer *tracing.Tracer) ([]string, []costs.Job) {
	var (
		enabled []string
		jobs    []costs.Job
	)
	for _, id := range ProviderOrder {
		pc := cfg.Provider(id)
		if !pc.Enabled {
			continue
		}
		fetcher, ok := r.Fetchers[id]
		if !ok {
			continue
		}

		secret, err := r.secret(ctx, id)
		if err != nil {
			if !errors.Is(err, secrets.ErrSecretNotFound) {
				slog.WarnContext(ctx, "refresh.secret.failed", "provider", id, "error", err)
			} else {
				slog.DebugContext(ctx, "refresh.provider.skipped", "provider", id, "reason", "no admin key")
			}
			continue
		}

		enabled = append(enabled, id)
		jobs = append(jobs, costs.Job{
			Fetcher: tracer.WrapFetcher(fetcher),
			Secret:  secret,
			Filters: providers.Filters{ProjectIDs: pc.ProjectIDs},
		})
	}
	return enabled, jobs
}

func (r *Runner) secret(ctx context.Context, provider string) (string, error) {
	key, ok := secrets.KeyForProvider(provider)
	if !ok {
		return "", fmt.Errorf("no admin key for %s: %w", provider, secrets.ErrSecretNotFound)
	}
	value, err := r.Secrets.Get(ctx, key)
	if err != nil {
		return "", err
	}
	if value == "" {
		return "", fmt.Errorf("%s: %w", key, secrets.ErrSecretNotFound)
	}
	return value, nil
}

func (r *Runner) notify(ctx context.Context, event *budget.Event) {
	if r.Notifier == nil {
		return
	}
	if err := r.Notifier.Notify(ctx, AppName, event.Message()); err != nil {
		slog.WarnContext(ctx, "refresh.notify.failed",
			"event_id", event.ID,
			"error", err,
		)
	}
}

func (r *Runner) now() time.Time {
	if r.Clock != nil {
		return r.Clock().UTC()
	}
	return time.Now().UTC()
}
