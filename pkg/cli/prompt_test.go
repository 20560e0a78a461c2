package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
)

type recordedCall struct {
	name string
	args []string
}

type fakeRunner struct {
	calls  []recordedCall
	output string
	err    error
}

func (f *fakeRunner) run(_ context.Context, name string, args ...string) ([]byte, error) {
	f.calls = append(f.calls, recordedCall{name: name, args: args})
	if f.err != nil {
		return nil, f.err
	}
	return []byte(f.output), nil
}

// ===== DialogPrompter Tests =====

func TestDialogPrompter(t *testing.T) {
	runner := &fakeRunner{output: "250\n"}
	p := &DialogPrompter{Run: runner.run}

	value, ok, err := p.Prompt(context.Background(), PromptRequest{
		Title:   "TokenTotem",
		Message: "Monthly budget in USD",
		Default: "100",
	})
	if err != nil || !ok || value != "250" {
		t.Fatalf("Prompt() = %q, %v, %v", value, ok, err)
	}

	if len(runner.calls) != 1 || runner.calls[0].name != "osascript" {
		t.Fatalf("calls = %+v", runner.calls)
	}
	want := `text returned of (display dialog "Monthly budget in USD" default answer "100" with title "TokenTotem")`
	if got := runner.calls[0].args[1]; got != want {
		t.Errorf("script = %q, want %q", got, want)
	}
}

func TestDialogPrompter_EscapesAndHidden(t *testing.T) {
	runner := &fakeRunner{output: "sk-x"}
	p := &DialogPrompter{Run: runner.run}

	_, _, err := p.Prompt(context.Background(), PromptRequest{
		Title:   "TokenTotem",
		Message: `Paste the "admin" key`,
		Hidden:  true,
	})
	if err != nil {
		t.Fatalf("Prompt() error = %v", err)
	}
	script := runner.calls[0].args[1]
	if !strings.Contains(script, `"Paste the \"admin\" key"`) {
		t.Errorf("message not escaped: %s", script)
	}
	if !strings.HasSuffix(script, "with hidden answer)") {
		t.Errorf("hidden answer missing: %s", script)
	}
}

func TestDialogPrompter_Cancel(t *testing.T) {
	p := &DialogPrompter{Run: (&fakeRunner{err: errors.New("exit status 1")}).run}

	value, ok, err := p.Prompt(context.Background(), PromptRequest{Message: "x"})
	if err != nil || ok || value != "" {
		t.Errorf("Prompt() = %q, %v, %v; want cancel", value, ok, err)
	}
}

func TestDialogPrompter_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p := &DialogPrompter{Run: (&fakeRunner{err: errors.New("killed")}).run}

	_, ok, err := p.Prompt(ctx, PromptRequest{Message: "x"})
	if ok || !errors.Is(err, context.Canceled) {
		t.Errorf("Prompt() ok=%v err=%v", ok, err)
	}
}

// ===== TerminalPrompter Tests =====

func TestTerminalPrompter(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		def       string
		wantValue string
		wantOK    bool
		wantOut   string
	}{
		{"typed value", "80,90\n", "50,80,95", "80,90", true, "Thresholds [50,80,95]: "},
		{"empty takes default", "\n", "50,80,95", "50,80,95", true, "Thresholds [50,80,95]: "},
		{"no trailing newline", "42", "", "42", true, "Thresholds: "},
		{"eof cancels", "", "100", "", false, "Thresholds [100]: "},
		{"trims spaces", "  7  \n", "", "7", true, "Thresholds: "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			p := NewTerminalPrompter(strings.NewReader(tt.input), &out)

			value, ok, err := p.Prompt(context.Background(), PromptRequest{
				Message: "Thresholds",
				Default: tt.def,
			})
			if err != nil {
				t.Fatalf("Prompt() error = %v", err)
			}
			if value != tt.wantValue || ok != tt.wantOK {
				t.Errorf("Prompt() = %q, %v; want %q, %v", value, ok, tt.wantValue, tt.wantOK)
			}
			if out.String() != tt.wantOut {
				t.Errorf("prompt text = %q, want %q", out.String(), tt.wantOut)
			}
		})
	}
}

func TestNewPrompter_NonDarwin(t *testing.T) {
	orig := lookPath
	defer func() { lookPath = orig }()
	lookPath = func(string) (string, error) { return "", errors.New("not found") }

	p := NewPrompter(strings.NewReader(""), &bytes.Buffer{})
	if _, ok := p.(*TerminalPrompter); !ok {
		t.Errorf("NewPrompter() = %T, want *TerminalPrompter", p)
	}
}
