package cli

import (
	"context"
	"os/exec"
	"runtime"
	"strings"
)

// Runner runs an external command and returns its standard output.
type Runner func(ctx context.Context, name string, args ...string) ([]byte, error)

// ExecRunner runs commands with os/exec.
func ExecRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// lookPath is replaced in tests.
var lookPath = exec.LookPath

// hasOSAScript reports whether AppleScript dialogs are available.
func hasOSAScript() bool {
	if runtime.GOOS != "darwin" {
		return false
	}
	_, err := lookPath("osascript")
	return err == nil
}

// appleScriptString quotes s as an AppleScript string literal.
func appleScriptString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}

// OpenFile opens path with the platform's default application.
func OpenFile(ctx context.Context, run Runner, path string) error {
	name := "xdg-open"
	if runtime.GOOS == "darwin" {
		name = "open"
	}
	_, err := run(ctx, name, path)
	return err
}
