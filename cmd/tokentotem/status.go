package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"tokentotem/tokentotem/pkg/cli"
	"tokentotem/tokentotem/pkg/refresh"
	"tokentotem/tokentotem/pkg/render"
	"tokentotem/tokentotem/pkg/telemetry/metrics"
)

var statusFlags struct {
	format      string
	parallel    bool
	metricsFile string
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Refresh spend and print the status bar",
	Long: `Fetch month-to-date spend from every enabled provider with an admin key,
update the cache, send a budget notification if a new threshold was
crossed, and print the result.

Failures never produce a blank menu bar: they are printed as an error
block and the command exits 0.

Examples:
  # SwiftBar output
  tokentotem status

  # Machine-readable output
  tokentotem status --format json

  # Also write Prometheus textfile metrics
  tokentotem status --metrics-file /var/lib/node_exporter/tokentotem.prom`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
	addStatusFlags(statusCmd)
}

func addStatusFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&statusFlags.format, "format", string(cli.FormatText), "output format: text, json")
	cmd.Flags().BoolVar(&statusFlags.parallel, "parallel", false, "fetch providers concurrently")
	cmd.Flags().StringVar(&statusFlags.metricsFile, "metrics-file", "", "write Prometheus textfile metrics to this path")
}

func runStatus(cmd *cobra.Command, args []string) (err error) {
	out := cmd.OutOrStdout()

	format, err := cli.ParseOutputFormat(statusFlags.format, cli.FormatText, cli.FormatJSON)
	if err != nil {
		return err
	}

	defer func() {
		if r := recover(); r != nil {
			slog.Error("status.panic", "panic", r)
			err = render.ErrorBlock(out, fmt.Errorf("%v", r))
		}
	}()

	report, runErr := refreshOnce(cmd)
	if runErr != nil {
		slog.Error("status.failed", "error", runErr)
		return render.ErrorBlock(out, runErr)
	}

	if format == cli.FormatJSON {
		return render.JSON(out, report)
	}
	return render.StatusBar(out, report, render.Options{Executable: executablePath()})
}

// refreshOnce runs a single pass with the status flags applied.
func refreshOnce(cmd *cobra.Command) (*refresh.Report, error) {
	a, err := newApp(false)
	if err != nil {
		return nil, err
	}
	defer a.Close()

	runner := a.runner()
	runner.Parallel = statusFlags.parallel

	var collector *metrics.Collector
	if statusFlags.metricsFile != "" {
		collector = metrics.NewCollector(metrics.Config{Enabled: true}, nil)
		runner.Metrics = collector
	}

	report, err := runner.Run(cmd.Context())
	if err != nil {
		return nil, err
	}

	if collector != nil {
		if err := collector.WriteTextfile(statusFlags.metricsFile); err != nil {
			slog.Warn("status.metrics.write_failed", "path", statusFlags.metricsFile, "error", err)
		}
	}
	return report, nil
}
