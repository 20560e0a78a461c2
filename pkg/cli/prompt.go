package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// PromptRequest describes a single-value prompt.
type PromptRequest struct {
	Title   string
	Message string
	Default string

	// Hidden masks the answer (dialog only).
	Hidden bool
}

// Prompter asks the user for one string. ok is false when the user cancels.
type Prompter interface {
	Prompt(ctx context.Context, req PromptRequest) (value string, ok bool, err error)
}

// NewPrompter returns a dialog prompter on macOS and a terminal prompter
// reading in and writing to out elsewhere.
func NewPrompter(in io.Reader, out io.Writer) Prompter {
	if hasOSAScript() {
		return &DialogPrompter{Run: ExecRunner}
	}
	return NewTerminalPrompter(in, out)
}

// DialogPrompter shows an AppleScript "display dialog".
type DialogPrompter struct {
	Run Runner
}

// Prompt shows the dialog. A non-zero osascript exit, which is what the
// Cancel button produces, is reported as a cancel.
func (p *DialogPrompter) Prompt(ctx context.Context, req PromptRequest) (string, bool, error) {
	script := fmt.Sprintf("text returned of (display dialog %s default answer %s with title %s",
		appleScriptString(req.Message),
		appleScriptString(req.Default),
		appleScriptString(req.Title),
	)
	if req.Hidden {
		script += " with hidden answer"
	}
	script += ")"

	out, err := p.Run(ctx, "osascript", "-e", script)
	if err != nil {
		if ctx.Err() != nil {
			return "", false, ctx.Err()
		}
		return "", false, nil
	}
	return strings.TrimSpace(string(out)), true, nil
}

// TerminalPrompter reads one line from a terminal.
type TerminalPrompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewTerminalPrompter creates a prompter over in and out.
func NewTerminalPrompter(in io.Reader, out io.Writer) *TerminalPrompter {
	return &TerminalPrompter{in: bufio.NewReader(in), out: out}
}

// Prompt prints "Message [Default]: " and reads a line. An empty line takes
// the default; end of input is a cancel.
func (p *TerminalPrompter) Prompt(ctx context.Context, req PromptRequest) (string, bool, error) {
	if req.Default != "" {
		fmt.Fprintf(p.out, "%s [%s]: ", req.Message, req.Default)
	} else {
		fmt.Fprintf(p.out, "%s: ", req.Message)
	}

	line, err := p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		if errors.Is(err, io.EOF) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to read input: %w", err)
	}

	value := strings.TrimSpace(line)
	if value == "" {
		value = req.Default
	}
	return value, true, nil
}
