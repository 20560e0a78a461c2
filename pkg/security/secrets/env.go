package secrets

import (
	"context"
	"fmt"
	"os"
	"strings"
)

// DefaultEnvPrefix is empty because the service names already carry the
// "tokentotem." namespace.
const DefaultEnvPrefix = ""

// EnvStore reads secrets from environment variables. It cannot be written.
//
// The variable name is the prefix followed by the upper-cased service with
// dots and hyphens replaced by underscores. The account is not part of the
// name because every service has a single account.
//
// Example:
//   - Key: {tokentotem.openai.admin, openai_admin}
//   - Env var: "TOKENTOTEM_OPENAI_ADMIN" (empty prefix)
type EnvStore struct {
	Prefix string
}

// NewEnvStore creates an environment variable store with the given prefix.
func NewEnvStore(prefix string) *EnvStore {
	return &EnvStore{Prefix: prefix}
}

// Get implements Store.
func (s *EnvStore) Get(ctx context.Context, key Key) (string, error) {
	envVar := s.EnvVar(key)

	value := strings.TrimSpace(os.Getenv(envVar))
	if value == "" {
		return "", fmt.Errorf("%s (env var: %s): %w", key, envVar, ErrSecretNotFound)
	}
	return value, nil
}

// Set always fails with ErrReadOnly.
func (s *EnvStore) Set(ctx context.Context, key Key, secret string) error {
	return fmt.Errorf("env: %w", ErrReadOnly)
}

// Name implements Store.
func (s *EnvStore) Name() string {
	return "env"
}

// EnvVar returns the environment variable consulted for key.
func (s *EnvStore) EnvVar(key Key) string {
	name := strings.NewReplacer(".", "_", "-", "_").Replace(key.Service)
	return s.Prefix + strings.ToUpper(name)
}
