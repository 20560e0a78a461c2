package secrets

import (
	"context"
	"errors"
)

var (
	// ErrSecretNotFound is returned when no store holds the requested secret.
	ErrSecretNotFound = errors.New("secret not found")

	// ErrReadOnly is returned by Set on stores that cannot be written.
	ErrReadOnly = errors.New("secret store is read-only")
)

// Key identifies a secret by service and account.
type Key struct {
	Service string
	Account string
}

// String returns the "service/account" form used in logs and file stores.
func (k Key) String() string {
	return k.Service + "/" + k.Account
}

// Well-known keys.
var (
	OpenAIAdminKey    = Key{Service: "tokentotem.openai.admin", Account: "openai_admin"}
	AnthropicAdminKey = Key{Service: "tokentotem.anthropic.admin", Account: "anthropic_admin"}

	// MetricsTokenKey guards the endpoints served by "tokentotem watch".
	MetricsTokenKey = Key{Service: "tokentotem.metrics.token", Account: "metrics_token"}
)

// KeyForProvider returns the admin key for a provider id.
func KeyForProvider(provider string) (Key, bool) {
	switch provider {
	case "openai":
		return OpenAIAdminKey, true
	case "anthropic":
		return AnthropicAdminKey, true
	default:
		return Key{}, false
	}
}

// Store is a get/set secret backend.
//
// Get returns ErrSecretNotFound (possibly wrapped) when the secret is absent.
// Set returns ErrReadOnly when the backend cannot be written.
type Store interface {
	Get(ctx context.Context, key Key) (string, error)
	Set(ctx context.Context, key Key, secret string) error

	// Name returns the backend name (keychain, env, file, memory).
	Name() string
}

// RefreshableStore can drop any state it holds and re-read its backend.
type RefreshableStore interface {
	Store
	Refresh(ctx context.Context) error
}
