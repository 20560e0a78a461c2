package costs

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"tokentotem/tokentotem/pkg/providers"
	"tokentotem/tokentotem/pkg/telemetry/logging"
)

// Job is one provider to fetch.
type Job struct {
	Fetcher providers.Fetcher
	Secret  string
	Filters providers.Filters
}

// Observer is notified after each fetch (metrics).
type Observer interface {
	ObserveFetch(provider string, duration time.Duration, err error)
}

// CollectOptions controls Collect.
type CollectOptions struct {
	// Parallel runs the jobs concurrently. Providers share no state, so
	// ordering does not matter.
	Parallel bool

	// Observer, if set, sees every fetch.
	Observer Observer
}

// Collect fetches every job over window w and returns the outcomes keyed by
// provider id. It never fails; errors become failed outcomes.
func Collect(ctx context.Context, jobs []Job, w providers.Window, opts CollectOptions) map[string]Outcome {
	outcomes := make(map[string]Outcome, len(jobs))

	if !opts.Parallel {
		for _, job := range jobs {
			outcomes[job.Fetcher.Name()] = runJob(ctx, job, w, opts.Observer)
		}
		return outcomes
	}

	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)
	for _, job := range jobs {
		wg.Add(1)
		go func(job Job) {
			defer wg.Done()
			outcome := runJob(ctx, job, w, opts.Observer)

			mu.Lock()
			outcomes[job.Fetcher.Name()] = outcome
			mu.Unlock()
		}(job)
	}
	wg.Wait()

	return outcomes
}

func runJob(ctx context.Context, job Job, w providers.Window, observer Observer) Outcome {
	name := job.Fetcher.Name()
	ctx = logging.WithProvider(ctx, name)
	start := time.Now()

	c, err := job.Fetcher.FetchCosts(ctx, job.Secret, w, job.Filters)
	duration := time.Since(start)

	if observer != nil {
		observer.ObserveFetch(name, duration, err)
	}

	if err != nil {
		slog.WarnContext(ctx, "costs.fetch.failed",
			"duration", duration,
			"error", err,
		)
		return Failed(name, err)
	}

	slog.DebugContext(ctx, "costs.fetch.ok",
		"today", c.Today.String(),
		"mtd", c.MonthToDate.String(),
		"duration", duration,
	)
	return Ok(c)
}
