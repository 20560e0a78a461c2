package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"tokentotem/tokentotem/pkg/cli"
	"tokentotem/tokentotem/pkg/config"
	"tokentotem/tokentotem/pkg/providers"
	"tokentotem/tokentotem/pkg/providers/anthropic"
	"tokentotem/tokentotem/pkg/providers/openai"
	"tokentotem/tokentotem/pkg/refresh"
	"tokentotem/tokentotem/pkg/security/secrets"
	"tokentotem/tokentotem/pkg/state"
)

// Replaced in tests.
var (
	newPrompter = func(in io.Reader, out io.Writer) cli.Prompter {
		return cli.NewPrompter(in, out)
	}
	newNotifier = func() refresh.Notifier {
		return cli.NewNotifier()
	}
	newFetchers = func() map[string]providers.Fetcher {
		return map[string]providers.Fetcher{
			providers.OpenAI:    openai.NewClient(openai.Config{}),
			providers.Anthropic: anthropic.NewClient(anthropic.Config{}),
		}
	}
	commandRunner cli.Runner = cli.ExecRunner
	useKeychain              = runtime.GOOS == "darwin"
)

// app holds the stores shared by every command.
type app struct {
	configPath string
	store      state.Store
	secrets    *secrets.Manager
	closers    []func() error
}

// configPath returns --config or the default location.
func configPath() string {
	if rootFlags.configPath != "" {
		return rootFlags.configPath
	}
	return config.DefaultConfigPath()
}

// newApp opens the configured stores. watchSecrets reloads the secrets file
// when it changes, for long-running commands.
func newApp(watchSecrets bool) (*app, error) {
	a := &app{configPath: configPath()}

	files := state.NewFileStore(a.configPath, rootFlags.cachePath)
	switch rootFlags.cacheBackend {
	case "", backendFile:
		a.store = files
	case backendSQLite:
		path := rootFlags.cachePath
		if path == "" {
			path = config.DefaultSQLitePath()
		}
		cache := state.NewSQLiteCache(state.SQLiteConfig{
			Path:   path,
			Driver: rootFlags.sqliteDriver,
		})
		a.closers = append(a.closers, cache.Close)
		a.store = state.Combine(files, cache)
	default:
		return nil, fmt.Errorf("unknown cache backend %q (want %s or %s)", rootFlags.cacheBackend, backendFile, backendSQLite)
	}

	stores := []secrets.Store{secrets.NewEnvStore(secrets.DefaultEnvPrefix)}

	secretsFile := rootFlags.secretsFile
	if secretsFile == "" && !useKeychain {
		secretsFile = filepath.Join(filepath.Dir(a.configPath), "secrets.json")
	}
	if secretsFile != "" {
		fs, err := secrets.NewFileStore(secretsFile, watchSecrets)
		if err != nil {
			_ = a.Close()
			return nil, err
		}
		a.closers = append(a.closers, fs.Close)
		stores = append(stores, fs)
	}
	if useKeychain {
		stores = append(stores, secrets.NewKeychainStore())
	}
	// Long-running commands cache resolved keys for a minute.
	cacheConfig := secrets.CacheConfig{}
	if watchSecrets {
		cacheConfig = secrets.CacheConfig{Enabled: true, TTL: time.Minute, MaxSize: 8}
	}
	a.secrets = secrets.NewManager(stores, cacheConfig)

	return a, nil
}

// runner builds a refresh runner over the app's stores.
func (a *app) runner() *refresh.Runner {
	return &refresh.Runner{
		Store:    a.store,
		Secrets:  a.secrets,
		Fetchers: newFetchers(),
		Notifier: newNotifier(),
	}
}

// Close releases the stores.
func (a *app) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// executablePath is the path the menu actions invoke.
func executablePath() string {
	exe, err := os.Executable()
	if err != nil {
		return os.Args[0]
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		return resolved
	}
	return exe
}
