package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"tokentotem/tokentotem/pkg/cli"
	"tokentotem/tokentotem/pkg/refresh"
	"tokentotem/tokentotem/pkg/security/secrets"
)

var setKeyFlags struct {
	stdin bool
}

var keyPrompts = map[string]string{
	"openai":    "OpenAI admin API key",
	"anthropic": "Anthropic admin API key",
}

var setKeyCmd = &cobra.Command{
	Use:   "set-key openai|anthropic",
	Short: "Store a provider admin API key",
	Long: `Store an organization admin API key for a provider.

On macOS the key goes to the login keychain; elsewhere, or with
--secrets-file, to a 0600 JSON file. An empty value leaves the stored
key unchanged.

Examples:
  # Prompt for the key
  tokentotem set-key openai

  # Read the key from stdin
  pbpaste | tokentotem set-key anthropic --stdin`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"openai", "anthropic"},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSetKey(cmd, args[0], setKeyFlags.stdin)
	},
}

func init() {
	rootCmd.AddCommand(setKeyCmd)
	setKeyCmd.Flags().BoolVar(&setKeyFlags.stdin, "stdin", false, "read the key from stdin")
}

func runSetKey(cmd *cobra.Command, provider string, fromStdin bool) error {
	key, ok := secrets.KeyForProvider(provider)
	if !ok {
		return fmt.Errorf("unknown provider %q (want openai or anthropic)", provider)
	}

	var value string
	if fromStdin {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("failed to read key from stdin: %w", err)
		}
		value = strings.TrimSpace(string(data))
	} else {
		prompter := newPrompter(cmd.InOrStdin(), cmd.ErrOrStderr())
		v, ok, err := prompter.Prompt(cmd.Context(), cli.PromptRequest{
			Title:   refresh.AppName,
			Message: keyPrompts[provider],
			Hidden:  true,
		})
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		value = strings.TrimSpace(v)
	}

	if value == "" {
		slog.Info("set_key.empty", "provider", provider)
		return nil
	}

	a, err := newApp(false)
	if err != nil {
		return err
	}
	defer a.Close()

	return a.secrets.Set(cmd.Context(), key, value)
}
