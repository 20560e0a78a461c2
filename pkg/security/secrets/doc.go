/*
Package secrets stores and retrieves the provider admin keys used by TokenTotem.

# Overview

A secret is addressed by a Key, a (service, account) pair in the style of the macOS
keychain. The two well-known keys are OpenAIAdminKey and AnthropicAdminKey. A missing
secret is not an error for callers: the refresh pass treats the provider as disabled.

# Stores

Every backend implements the Store interface:

  - KeychainStore: the macOS keychain through the security(1) command
  - EnvStore: read-only lookup in environment variables
  - FileStore: a JSON file of secrets with 0600/0400 permissions, optionally watched
  - MemoryStore: an in-memory map used by tests

Stores are chained with a Manager. Get returns the first store that has the secret
and caches the hit for a TTL. Set writes to the first store that accepts writes.

# Basic Usage

	manager := secrets.NewManager(
		[]secrets.Store{
			secrets.NewEnvStore(secrets.DefaultEnvPrefix),
			secrets.NewKeychainStore(),
		},
		secrets.CacheConfig{Enabled: true, TTL: 5 * time.Minute, MaxSize: 16},
	)

	key, err := manager.Get(ctx, secrets.OpenAIAdminKey)
	if errors.Is(err, secrets.ErrSecretNotFound) {
		// provider disabled
	}
*/
package secrets
