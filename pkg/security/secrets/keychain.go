package secrets

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// CommandRunner executes an external command and returns its stdout.
type CommandRunner func(ctx context.Context, name string, args ...string) ([]byte, error)

// KeychainStore reads and writes generic passwords in the macOS login keychain
// using the security(1) command line tool.
type KeychainStore struct {
	// Binary is the path of the security tool. Defaults to "security".
	Binary string

	run CommandRunner
}

// NewKeychainStore creates a keychain store backed by /usr/bin/security.
func NewKeychainStore() *KeychainStore {
	return &KeychainStore{Binary: "security", run: execCommand}
}

// newKeychainStoreWithRunner is used by tests to fake the security tool.
func newKeychainStoreWithRunner(run CommandRunner) *KeychainStore {
	return &KeychainStore{Binary: "security", run: run}
}

// Get implements Store. Any failure of find-generic-password, including
// "item not found", is reported as ErrSecretNotFound.
func (s *KeychainStore) Get(ctx context.Context, key Key) (string, error) {
	out, err := s.run(ctx, s.Binary,
		"find-generic-password",
		"-s", key.Service,
		"-a", key.Account,
		"-w",
	)
	if err != nil {
		return "", fmt.Errorf("keychain %s: %w", key, ErrSecretNotFound)
	}

	value := strings.TrimSpace(string(out))
	if value == "" {
		return "", fmt.Errorf("keychain %s: %w", key, ErrSecretNotFound)
	}
	return value, nil
}

// Set implements Store. Existing entries are updated in place (-U).
func (s *KeychainStore) Set(ctx context.Context, key Key, secret string) error {
	_, err := s.run(ctx, s.Binary,
		"add-generic-password",
		"-s", key.Service,
		"-a", key.Account,
		"-w", secret,
		"-U",
	)
	if err != nil {
		return fmt.Errorf("failed to store %s in keychain: %w", key, err)
	}
	return nil
}

// Name implements Store.
func (s *KeychainStore) Name() string {
	return "keychain"
}

func execCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && stderr.Len() > 0 {
			return nil, fmt.Errorf("%s: %s", err, strings.TrimSpace(stderr.String()))
		}
		return nil, err
	}
	return stdout.Bytes(), nil
}
