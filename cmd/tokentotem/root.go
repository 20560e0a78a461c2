package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tokentotem/tokentotem/pkg/cli"
	"tokentotem/tokentotem/pkg/state"
	"tokentotem/tokentotem/pkg/telemetry/logging"
)

// Cache backends.
const (
	backendFile   = "file"
	backendSQLite = "sqlite"
)

var (
	// Global flags
	rootFlags struct {
		configPath   string
		cachePath    string
		cacheBackend string
		sqliteDriver string
		secretsFile  string
		verbose      bool
		logFormat    string
		action       string
	}
)

var rootCmd = &cobra.Command{
	Use:   "tokentotem",
	Short: "TokenTotem - LLM API spend in your menu bar",
	Long: `TokenTotem polls the OpenAI and Anthropic organization cost APIs and
prints today's and month-to-date spend in SwiftBar plugin format.

Run without a subcommand it renders the status bar. The dropdown menu
invokes the binary again with --action to change settings:

  --action set_openai_key      same as: tokentotem set-key openai
  --action set_anthropic_key   same as: tokentotem set-key anthropic
  --action set_budget          same as: tokentotem set-budget
  --action set_thresholds      same as: tokentotem set-thresholds
  --action open_config         same as: tokentotem config open`,
	Version:           Version,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupLogging,
	RunE: func(cmd *cobra.Command, args []string) error {
		if rootFlags.action != "" {
			return runAction(cmd, rootFlags.action)
		}
		return runStatus(cmd, args)
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&rootFlags.configPath, "config", "c", "", "config file path (default $XDG_CONFIG_HOME/tokentotem/config.json)")
	pf.StringVar(&rootFlags.cachePath, "cache", "", "cache file or database path")
	pf.StringVar(&rootFlags.cacheBackend, "cache-backend", backendFile, "cache backend: file, sqlite")
	pf.StringVar(&rootFlags.sqliteDriver, "sqlite-driver", state.DriverModernc, "sqlite driver: sqlite (pure Go), sqlite3 (cgo)")
	pf.StringVar(&rootFlags.secretsFile, "secrets-file", "", "JSON file holding admin keys (used instead of the keychain)")
	pf.BoolVarP(&rootFlags.verbose, "verbose", "v", false, "verbose output")
	pf.StringVar(&rootFlags.logFormat, "log-format", "text", "log format: text, json")

	rootCmd.Flags().StringVar(&rootFlags.action, "action", "", "run a configuration action")
	addStatusFlags(rootCmd)
}

// setupLogging installs the default logger. Logs go to stderr so stdout
// stays reserved for plugin output.
func setupLogging(cmd *cobra.Command, args []string) error {
	level := "warn"
	if rootFlags.verbose {
		level = "debug"
	}

	logger, err := logging.New(logging.Config{
		Level:         level,
		Format:        rootFlags.logFormat,
		RedactSecrets: true,
		Writer:        cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}
	logger.SetDefault()
	return nil
}

// actions maps the plugin's --action names to commands.
var actions = map[string]func(cmd *cobra.Command) error{
	"set_openai_key":    func(cmd *cobra.Command) error { return runSetKey(cmd, "openai", false) },
	"set_anthropic_key": func(cmd *cobra.Command) error { return runSetKey(cmd, "anthropic", false) },
	"set_budget":        func(cmd *cobra.Command) error { return runSetBudget(cmd, nil) },
	"set_thresholds":    func(cmd *cobra.Command) error { return runSetThresholds(cmd, nil) },
	"open_config":       func(cmd *cobra.Command) error { return runConfigOpen(cmd, nil) },
}

func runAction(cmd *cobra.Command, name string) error {
	action, ok := actions[name]
	if !ok {
		names := make([]string, 0, len(actions))
		for n := range actions {
			names = append(names, n)
		}
		return cli.UnknownAction(name, names)
	}
	return cli.NewActionError(name, action(cmd))
}
