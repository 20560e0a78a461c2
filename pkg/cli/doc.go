/*
Package cli provides the interactive pieces of the tokentotem command: output
formatters, prompts, desktop notifications, and signal handling.

Prompting:

Configuration actions ask the user for a single string. On macOS this is an
AppleScript dialog; elsewhere the prompt is read from the terminal:

	prompter := cli.NewPrompter(os.Stdin, os.Stderr)
	value, ok, err := prompter.Prompt(ctx, cli.PromptRequest{
		Title:   "TokenTotem",
		Message: "Monthly budget in USD",
		Default: "100",
	})

ok is false when the user cancels the dialog or closes stdin.

Notifications:

Budget threshold events are shown with the platform notifier, falling back
to the log:

	notifier := cli.NewNotifier()
	notifier.Notify(ctx, "TokenTotem", event.Message())

Signal Handling:

For graceful shutdown on SIGINT/SIGTERM:

	ctx, stop := cli.SetupSignalHandler(context.Background())
	defer stop()
*/
package cli
