package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"tokentotem/tokentotem/pkg/cli"
	"tokentotem/tokentotem/pkg/costs"
	"tokentotem/tokentotem/pkg/refresh"
	"tokentotem/tokentotem/pkg/scheduler"
	"tokentotem/tokentotem/pkg/security/auth"
	"tokentotem/tokentotem/pkg/security/secrets"
	"tokentotem/tokentotem/pkg/security/tls"
	"tokentotem/tokentotem/pkg/telemetry/health"
	"tokentotem/tokentotem/pkg/telemetry/metrics"
	"tokentotem/tokentotem/pkg/telemetry/tracing"
)

var watchFlags struct {
	schedule     string
	metricsAddr  string
	maxAge       time.Duration
	parallel     bool
	otlpEndpoint string
	otlpInsecure bool
	otlpRatio    float64
	tlsCert      string
	tlsKey       string
	tlsMin       string
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Refresh on a schedule and serve metrics",
	Long: `Refresh spend on a cron schedule until interrupted.

A refresh also runs at startup and whenever the configuration file
changes. With --metrics-addr the process serves Prometheus metrics on
/metrics and health checks on /healthz, /readyz and /version.

When TOKENTOTEM_METRICS_TOKEN (or the metrics token in the secrets file)
is set, every endpoint except /healthz requires
"Authorization: Bearer <token>". --tls-cert and --tls-key serve the
endpoints over HTTPS; renewed certificates are picked up without a restart.

Examples:
  # Every 5 minutes (default)
  tokentotem watch

  # Every 15 minutes, with metrics
  tokentotem watch --schedule "*/15 * * * *" --metrics-addr :9464

  # Export refresh spans to an OTLP collector
  tokentotem watch --otlp-endpoint localhost:4317 --otlp-insecure

  # HTTPS metrics with a bearer token
  TOKENTOTEM_METRICS_TOKEN=s3cret tokentotem watch --metrics-addr :9464 \
    --tls-cert server.crt --tls-key server.key`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringVar(&watchFlags.schedule, "schedule", "*/5 * * * *", "cron schedule (UTC)")
	watchCmd.Flags().StringVar(&watchFlags.metricsAddr, "metrics-addr", "", "serve /metrics and health endpoints on this address")
	watchCmd.Flags().DurationVar(&watchFlags.maxAge, "max-age", 15*time.Minute, "readiness fails when the last refresh is older")
	watchCmd.Flags().BoolVar(&watchFlags.parallel, "parallel", true, "fetch providers concurrently")
	watchCmd.Flags().StringVar(&watchFlags.otlpEndpoint, "otlp-endpoint", "", "OTLP/gRPC collector for refresh spans")
	watchCmd.Flags().BoolVar(&watchFlags.otlpInsecure, "otlp-insecure", false, "disable TLS to the OTLP collector")
	watchCmd.Flags().Float64Var(&watchFlags.otlpRatio, "otlp-sample-ratio", 1, "fraction of refresh runs to trace (0-1)")
	watchCmd.Flags().StringVar(&watchFlags.tlsCert, "tls-cert", "", "PEM certificate for serving the endpoints over HTTPS")
	watchCmd.Flags().StringVar(&watchFlags.tlsKey, "tls-key", "", "PEM private key for --tls-cert")
	watchCmd.Flags().StringVar(&watchFlags.tlsMin, "tls-min-version", "1.3", "minimum TLS version (1.2 or 1.3)")
}

// latestReport is the most recent successful pass.
type latestReport struct {
	mu     sync.RWMutex
	report *refresh.Report
}

func (l *latestReport) set(r *refresh.Report) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.report = r
}

func (l *latestReport) snapshot() (costs.Snapshot, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.report == nil {
		return costs.Snapshot{}, false
	}
	return l.report.Snapshot, true
}

func (l *latestReport) lastRefresh() time.Time {
	snap, _ := l.snapshot()
	return snap.LastUpdated
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, stop := cli.SetupSignalHandler(cmd.Context())
	defer stop()

	a, err := newApp(true)
	if err != nil {
		return err
	}
	defer a.Close()

	tracer, err := newTracer()
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracer.Shutdown(shutdownCtx); err != nil {
			slog.Warn("watch.tracer.shutdown_failed", "error", err)
		}
	}()

	collector := metrics.NewCollector(metrics.Config{Enabled: true}, nil)

	runner := a.runner()
	runner.Parallel = watchFlags.parallel
	runner.Metrics = collector
	runner.Tracer = tracer

	latest := &latestReport{}
	sched, err := scheduler.New(watchFlags.schedule, func(ctx context.Context) error {
		report, err := runner.Run(ctx)
		if err != nil {
			return err
		}
		latest.set(report)
		return nil
	})
	if err != nil {
		return err
	}

	if err := sched.Start(ctx); err != nil {
		return err
	}
	defer sched.Stop()

	sched.Trigger(ctx, "startup")

	onConfigChange := func() {
		if err := a.secrets.Refresh(ctx); err != nil {
			slog.Warn("watch.secrets.refresh_failed", "error", err)
		}
		sched.Trigger(ctx, "config")
	}
	if err := watchConfig(ctx, a.configPath, onConfigChange); err != nil {
		slog.Warn("watch.config.watch_failed", "path", a.configPath, "error", err)
	}

	var server *http.Server
	if watchFlags.metricsAddr != "" {
		server, err = newMetricsServer(ctx, a.secrets, watchFlags.metricsAddr, collector, latest)
		if err != nil {
			return err
		}
		go func() {
			slog.Info("watch.http.listening",
				"addr", watchFlags.metricsAddr,
				"tls", server.TLSConfig != nil,
			)
			if err := serve(server); err != nil && !errors.Is(err, http.ErrServerClosed) {
				slog.Error("watch.http.failed", "error", err)
				stop()
			}
		}()
	}

	if next := sched.NextRun(); next != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Watching (schedule %q, next run %s)\n", watchFlags.schedule, next.Format(time.RFC3339))
	}

	<-ctx.Done()
	slog.Info("watch.shutdown")

	if server != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Warn("watch.http.shutdown_failed", "error", err)
		}
	}
	return nil
}

func newTracer() (*tracing.Tracer, error) {
	if watchFlags.otlpEndpoint == "" {
		return tracing.Disabled(), nil
	}
	cfg := tracing.Config{
		Enabled:        true,
		Endpoint:       watchFlags.otlpEndpoint,
		Insecure:       watchFlags.otlpInsecure,
		ServiceVersion: Version,
	}
	if watchFlags.otlpRatio < 1 {
		cfg.Sampler = tracing.SamplerRatio
		cfg.SampleRatio = watchFlags.otlpRatio
	}
	return tracing.New(cfg)
}

// newMetricsServer serves Prometheus metrics and the health endpoints,
// behind a bearer token when one is configured.
func newMetricsServer(ctx context.Context, store secrets.Store, addr string, collector *metrics.Collector, latest *latestReport) (*http.Server, error) {
	checker := health.New(2 * time.Second)
	checker.RegisterCheck("freshness", health.FreshnessCheck(latest.lastRefresh, watchFlags.maxAge, time.Now))
	checker.RegisterCheck("providers", health.ProvidersCheck(latest.snapshot))

	mux := http.NewServeMux()
	mux.Handle("/metrics", collector.Handler())
	health.Register(mux, checker, Version)

	handler, err := withMetricsAuth(ctx, store, mux)
	if err != nil {
		return nil, err
	}

	tlsConfig, err := tls.ServerConfig{
		CertFile:   watchFlags.tlsCert,
		KeyFile:    watchFlags.tlsKey,
		MinVersion: watchFlags.tlsMin,
	}.ServerTLSConfig(ctx)
	if err != nil {
		return nil, err
	}

	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		TLSConfig:         tlsConfig,
		ReadHeaderTimeout: 5 * time.Second,
	}, nil
}

// withMetricsAuth wraps next with token authentication when the metrics
// token secret is set. /healthz stays open for liveness probes.
func withMetricsAuth(ctx context.Context, store secrets.Store, next http.Handler) (http.Handler, error) {
	token, err := store.Get(ctx, secrets.MetricsTokenKey)
	if errors.Is(err, secrets.ErrSecretNotFound) {
		return next, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read metrics token: %w", err)
	}

	validator := auth.NewTokenValidator(&auth.Credential{
		Name:    "metrics",
		Token:   token,
		Enabled: true,
	})
	slog.Debug("watch.http.auth_enabled")
	return auth.NewMiddleware(validator, auth.DefaultSources, "/healthz").Handle(next), nil
}

func serve(server *http.Server) error {
	if server.TLSConfig != nil {
		return server.ListenAndServeTLS("", "")
	}
	return server.ListenAndServe()
}

// watchConfig calls onChange when the file at path is written, created or
// replaced. The parent directory is watched since editors often replace the
// file instead of writing to it.
func watchConfig(ctx context.Context, path string, onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("failed to watch directory: %w", err)
	}

	target := filepath.Clean(path)
	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != target {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				slog.Info("watch.config.changed", "path", path, "op", event.Op.String())
				onChange()
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				slog.Warn("watch.config.watch_error", "error", err)
			}
		}
	}()
	return nil
}
