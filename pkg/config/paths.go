package config

import (
	"os"
	"path/filepath"
)

// AppDir is the directory name used under the config and cache roots.
const AppDir = "tokentotem"

// DefaultConfigPath returns $XDG_CONFIG_HOME/tokentotem/config.json, falling
// back to ~/.config.
func DefaultConfigPath() string {
	return filepath.Join(baseDir("XDG_CONFIG_HOME", ".config"), AppDir, "config.json")
}

// DefaultCachePath returns $XDG_CACHE_HOME/tokentotem/cache.json, falling
// back to ~/.cache.
func DefaultCachePath() string {
	return filepath.Join(baseDir("XDG_CACHE_HOME", ".cache"), AppDir, "cache.json")
}

// DefaultSQLitePath is the cache database used by the sqlite backend.
func DefaultSQLitePath() string {
	return filepath.Join(baseDir("XDG_CACHE_HOME", ".cache"), AppDir, "cache.db")
}

func baseDir(env, fallback string) string {
	if dir := os.Getenv(env); dir != "" && filepath.IsAbs(dir) {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return fallback
	}
	return filepath.Join(home, fallback)
}
