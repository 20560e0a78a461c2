// Package logging provides structured logging with secret redaction.
//
// # Overview
//
// The logging package wraps Go's standard log/slog package to provide:
//   - JSON or text output on stderr, leaving stdout to the status bar
//   - Redaction of provider admin keys and bearer tokens
//   - Context fields (run id, provider) attached to every record
//
// # Usage
//
//	logger, err := logging.New(logging.Config{
//	    Level:         "info",
//	    Format:        "text",
//	    RedactSecrets: true,
//	})
//	logger.SetDefault()
//
//	slog.Info("refresh.done", "authorization", "Bearer sk-abc123") // redacted
//
// # Redaction
//
// Redaction runs in the handler, so records written through slog's package
// level functions are covered once SetDefault has been called:
//
//   - OpenAI keys: sk-admin-abc123 → sk-***
//   - Anthropic keys: sk-ant-admin01-abc → sk-ant-***
//   - Bearer tokens: Bearer abc.def → Bearer ***
//   - Values under sensitive keys (secret, token, api_key) → first 4 chars + ***
package logging
