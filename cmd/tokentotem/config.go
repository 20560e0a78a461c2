package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tokentotem/tokentotem/pkg/cli"
	"tokentotem/tokentotem/pkg/config"
)

var configFlags struct {
	format string
	force  bool
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and edit the configuration file",
	Long: `Inspect and edit the configuration file.

Subcommands:
  path     - Print the configuration and cache paths
  show     - Print the effective configuration
  init     - Write the default configuration
  open     - Open the configuration file in the default editor
  validate - Report values that are ignored or coerced`,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration and cache paths",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "config: %s\n", configPath())
		fmt.Fprintf(out, "cache:  %s\n", cachePath())
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Long: `Print the configuration after merging the file over the defaults and
applying TOKENTOTEM_* environment overrides.

Examples:
  tokentotem config show
  tokentotem config show --format yaml`,
	Args: cobra.NoArgs,
	RunE: runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfigInit,
}

var configOpenCmd = &cobra.Command{
	Use:   "open",
	Short: "Open the configuration file",
	Long: `Open the configuration file with the default application, writing the
defaults first if it does not exist.`,
	Args: cobra.NoArgs,
	RunE: runConfigOpen,
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the configuration file",
	Args:  cobra.NoArgs,
	RunE:  runConfigValidate,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configPathCmd, configShowCmd, configInitCmd, configOpenCmd, configValidateCmd)

	configShowCmd.Flags().StringVar(&configFlags.format, "format", string(cli.FormatJSON), "output format: json, yaml")
	configInitCmd.Flags().BoolVar(&configFlags.force, "force", false, "overwrite an existing file")
}

// cachePath returns the cache location for the selected backend.
func cachePath() string {
	if rootFlags.cachePath != "" {
		return rootFlags.cachePath
	}
	if rootFlags.cacheBackend == backendSQLite {
		return config.DefaultSQLitePath()
	}
	return config.DefaultCachePath()
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	format, err := cli.ParseOutputFormat(configFlags.format, cli.FormatJSON, cli.FormatYAML)
	if err != nil {
		return err
	}

	cfg := config.Load(configPath())
	config.ApplyEnvOverrides(cfg)
	return cli.NewFormatter(format).FormatTo(cmd.OutOrStdout(), cfg.Document())
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := configPath()
	if !configFlags.force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
	}
	if err := config.Save(path, config.Default()); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}

// writeDefaultsIfMissing creates the configuration file when absent.
func writeDefaultsIfMissing(path string) error {
	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return config.Save(path, config.Default())
}

func runConfigOpen(cmd *cobra.Command, args []string) error {
	path := configPath()
	if err := writeDefaultsIfMissing(path); err != nil {
		return err
	}
	return cli.OpenFile(cmd.Context(), commandRunner, path)
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	path := configPath()
	cfg, err := config.LoadFile(path)
	if err != nil {
		return err
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ %s is valid\n", path)
	return nil
}
