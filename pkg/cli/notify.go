package cli

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
)

// Notifier shows a desktop notification.
type Notifier interface {
	Notify(ctx context.Context, title, message string) error
}

// NewNotifier picks the platform notifier: AppleScript on macOS, notify-send
// where installed, otherwise the log.
func NewNotifier() Notifier {
	if hasOSAScript() {
		return &OSAScriptNotifier{Run: ExecRunner}
	}
	if runtime.GOOS == "linux" {
		if _, err := lookPath("notify-send"); err == nil {
			return &NotifySendNotifier{Run: ExecRunner}
		}
	}
	return LogNotifier{}
}

// OSAScriptNotifier uses "display notification".
type OSAScriptNotifier struct {
	Run Runner
}

// Notify shows the notification.
func (n *OSAScriptNotifier) Notify(ctx context.Context, title, message string) error {
	script := fmt.Sprintf("display notification %s with title %s",
		appleScriptString(message), appleScriptString(title))
	if _, err := n.Run(ctx, "osascript", "-e", script); err != nil {
		return fmt.Errorf("osascript notification failed: %w", err)
	}
	return nil
}

// NotifySendNotifier uses libnotify's notify-send.
type NotifySendNotifier struct {
	Run Runner
}

// Notify shows the notification.
func (n *NotifySendNotifier) Notify(ctx context.Context, title, message string) error {
	if _, err := n.Run(ctx, "notify-send", "--app-name", title, title, message); err != nil {
		return fmt.Errorf("notify-send failed: %w", err)
	}
	return nil
}

// LogNotifier writes notifications to the log.
type LogNotifier struct{}

// Notify logs the notification at warn level.
func (LogNotifier) Notify(ctx context.Context, title, message string) error {
	slog.WarnContext(ctx, "notification", "title", title, "message", message)
	return nil
}
