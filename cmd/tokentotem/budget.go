package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"tokentotem/tokentotem/pkg/cli"
	"tokentotem/tokentotem/pkg/config"
	"tokentotem/tokentotem/pkg/refresh"
)

var setBudgetCmd = &cobra.Command{
	Use:   "set-budget [amount]",
	Short: "Set the monthly budget in USD",
	Long: `Set the monthly budget used for threshold notifications. Without an
argument the value is prompted for. A value that is not a number leaves
the configuration unchanged.

Examples:
  tokentotem set-budget 250
  tokentotem set-budget '$1,500'`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSetBudget,
}

var setThresholdsCmd = &cobra.Command{
	Use:   "set-thresholds [percentages]",
	Short: "Set the budget warning thresholds",
	Long: `Set the warning thresholds as comma separated percentages of the
monthly budget. Without an argument the value is prompted for. Tokens that
are not numbers are skipped; if none remain the configuration is
unchanged.

Examples:
  tokentotem set-thresholds 50,80,95
  tokentotem set-thresholds "75%, 100%"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSetThresholds,
}

func init() {
	rootCmd.AddCommand(setBudgetCmd, setThresholdsCmd)
}

// promptValue returns args[0] or asks for a value. ok is false on cancel.
func promptValue(cmd *cobra.Command, args []string, message, def string) (string, bool, error) {
	if len(args) > 0 {
		return args[0], true, nil
	}
	prompter := newPrompter(cmd.InOrStdin(), cmd.ErrOrStderr())
	return prompter.Prompt(cmd.Context(), cli.PromptRequest{
		Title:   refresh.AppName,
		Message: message,
		Default: def,
	})
}

func runSetBudget(cmd *cobra.Command, args []string) error {
	value, ok, err := promptValue(cmd, args, "Monthly budget in USD", config.DefaultBudgetPrompt)
	if err != nil || !ok {
		return err
	}

	usd, ok := config.ParseBudget(value)
	if !ok {
		slog.Warn("set_budget.invalid", "value", value)
		return nil
	}

	a, err := newApp(false)
	if err != nil {
		return err
	}
	defer a.Close()

	cfg := a.store.LoadConfig()
	cfg.SetBudget(usd)
	if err := a.store.SaveConfig(cfg); err != nil {
		return err
	}
	slog.Info("set_budget.saved", "monthly_budget_usd", usd)
	return nil
}

func runSetThresholds(cmd *cobra.Command, args []string) error {
	value, ok, err := promptValue(cmd, args, "Warning thresholds (comma separated percentages)", config.DefaultThresholdsPrompt)
	if err != nil || !ok {
		return err
	}

	thresholds := config.ParseThresholds(value)
	if len(thresholds) == 0 {
		slog.Warn("set_thresholds.invalid", "value", value)
		return nil
	}

	a, err := newApp(false)
	if err != nil {
		return err
	}
	defer a.Close()

	cfg := a.store.LoadConfig()
	cfg.WarningThresholds = thresholds
	if err := a.store.SaveConfig(cfg); err != nil {
		return err
	}
	slog.Info("set_thresholds.saved", "warning_thresholds", thresholds)
	return nil
}
