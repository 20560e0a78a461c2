package cli

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

// ===== Notifier Tests =====

func TestOSAScriptNotifier(t *testing.T) {
	runner := &fakeRunner{}
	n := &OSAScriptNotifier{Run: runner.run}

	msg := "Monthly spend hit 80% of budget ($80.00 / $100.00)."
	if err := n.Notify(context.Background(), "TokenTotem", msg); err != nil {
		t.Fatalf("Notify() error = %v", err)
	}

	want := `display notification "Monthly spend hit 80% of budget ($80.00 / $100.00)." with title "TokenTotem"`
	if got := runner.calls[0].args; len(got) != 2 || got[0] != "-e" || got[1] != want {
		t.Errorf("args = %q, want [-e %q]", got, want)
	}
}

func TestOSAScriptNotifier_Error(t *testing.T) {
	n := &OSAScriptNotifier{Run: (&fakeRunner{err: errors.New("boom")}).run}
	err := n.Notify(context.Background(), "t", "m")
	if err == nil || !strings.Contains(err.Error(), "boom") {
		t.Errorf("Notify() error = %v", err)
	}
}

func TestNotifySendNotifier(t *testing.T) {
	runner := &fakeRunner{}
	n := &NotifySendNotifier{Run: runner.run}

	if err := n.Notify(context.Background(), "TokenTotem", "hello"); err != nil {
		t.Fatalf("Notify() error = %v", err)
	}
	call := runner.calls[0]
	if call.name != "notify-send" {
		t.Errorf("name = %q", call.name)
	}
	if got := strings.Join(call.args, "|"); got != "--app-name|TokenTotem|TokenTotem|hello" {
		t.Errorf("args = %q", got)
	}
}

func TestLogNotifier(t *testing.T) {
	var buf bytes.Buffer
	orig := slog.Default()
	defer slog.SetDefault(orig)
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))

	if err := (LogNotifier{}).Notify(context.Background(), "TokenTotem", "hit 50%"); err != nil {
		t.Fatalf("Notify() error = %v", err)
	}
	if !strings.Contains(buf.String(), `message="hit 50%"`) {
		t.Errorf("log = %q", buf.String())
	}
}

func TestOpenFile(t *testing.T) {
	runner := &fakeRunner{}
	if err := OpenFile(context.Background(), runner.run, "/tmp/config.json"); err != nil {
		t.Fatalf("OpenFile() error = %v", err)
	}
	call := runner.calls[0]
	if (call.name != "open" && call.name != "xdg-open") || call.args[0] != "/tmp/config.json" {
		t.Errorf("call = %+v", call)
	}
}
