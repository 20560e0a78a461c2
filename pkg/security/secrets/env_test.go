package secrets

import (
	"context"
	"errors"
	"testing"
)

func TestEnvStore_Get(t *testing.T) {
	t.Setenv("TOKENTOTEM_OPENAI_ADMIN", "  sk-admin-123\n")

	store := NewEnvStore(DefaultEnvPrefix)

	value, err := store.Get(context.Background(), OpenAIAdminKey)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if value != "sk-admin-123" {
		t.Errorf("expected value 'sk-admin-123', got '%s'", value)
	}
}

func TestEnvStore_Get_NotFound(t *testing.T) {
	t.Setenv("TOKENTOTEM_ANTHROPIC_ADMIN", "")

	store := NewEnvStore(DefaultEnvPrefix)

	_, err := store.Get(context.Background(), AnthropicAdminKey)
	if !errors.Is(err, ErrSecretNotFound) {
		t.Errorf("expected ErrSecretNotFound, got %v", err)
	}
}

func TestEnvStore_EnvVar(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
		key    Key
		want   string
	}{
		{"openai", "", OpenAIAdminKey, "TOKENTOTEM_OPENAI_ADMIN"},
		{"anthropic", "", AnthropicAdminKey, "TOKENTOTEM_ANTHROPIC_ADMIN"},
		{"metrics token", "", MetricsTokenKey, "TOKENTOTEM_METRICS_TOKEN"},
		{"with prefix", "CI_", Key{Service: "my-svc.key", Account: "x"}, "CI_MY_SVC_KEY"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewEnvStore(tt.prefix).EnvVar(tt.key)
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestEnvStore_SetIsReadOnly(t *testing.T) {
	store := NewEnvStore(DefaultEnvPrefix)

	err := store.Set(context.Background(), OpenAIAdminKey, "value")
	if !errors.Is(err, ErrReadOnly) {
		t.Errorf("expected ErrReadOnly, got %v", err)
	}
}
