// Package paths provides XDG-compliant path resolution for jsonlview.
//
// Resolution order:
// 1. JSONLVIEW_HOME (portable root) → $JSONLVIEW_HOME/{config,state,cache}
// 2. XDG env vars → $XDG_*_HOME/jsonlview
// 3. Platform defaults → ~/.config/jsonlview, ~/.local/state/jsonlview, etc.
package paths

import (
	"os"
	"path/filepath"
)

// AppName is the directory name used under every XDG base directory.
const AppName = "jsonlview"

// HomeEnv overrides every base directory with one portable root.
const HomeEnv = "JSONLVIEW_HOME"

func baseDir(homeSub, xdgEnv string, fallback ...string) string {
	if home := os.Getenv(HomeEnv); home != "" {
		return filepath.Join(home, homeSub)
	}
	if xdg := os.Getenv(xdgEnv); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(append(append([]string{homeDir}, fallback...), AppName)...)
	}
	return ""
}

// ConfigDir returns the configuration directory.
// Used for the global jsonlview.yml.
func ConfigDir() string {
	return baseDir("config", "XDG_CONFIG_HOME", ".config")
}

// StateDir returns the state directory.
// Used for logs.
func StateDir() string {
	return baseDir("state", "XDG_STATE_HOME", ".local", "state")
}

// CacheDir returns the cache directory.
func CacheDir() string {
	return baseDir("cache", "XDG_CACHE_HOME", ".cache")
}

// LogsDir returns the directory log files are written to.
func LogsDir() string {
	state := StateDir()
	if state == "" {
		return ""
	}
	return filepath.Join(state, "logs")
}

// EnsureDirs creates all jsonlview directories if they don't exist.
func EnsureDirs() error {
	for _, dir := range []string{ConfigDir(), StateDir(), CacheDir(), LogsDir()} {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return nil
}
