package config

import (
	"os"
	"path/filepath"
)

const (
	appName     = "nala"
	configFile  = "config.toml"
	historyFile = "history.db"
	debugLog    = "nala.log"
)

// ConfigDir returns nala's configuration directory, honoring
// XDG_CONFIG_HOME.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}
	home, _ := os.UserHomeDir() //nolint:errcheck
	return filepath.Join(home, ".config", appName)
}

// DataDir returns nala's data directory, honoring XDG_DATA_HOME.
func DataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}
	home, _ := os.UserHomeDir() //nolint:errcheck
	return filepath.Join(home, ".local", "share", appName)
}

// ConfigPath returns the full path of the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), configFile)
}

// HistoryPath returns the full path of the history database.
func HistoryPath() string {
	return filepath.Join(DataDir(), historyFile)
}

// DebugLogPath returns the full path of the debug log file.
func DebugLogPath() string {
	return filepath.Join(DataDir(), debugLog)
}

// EnsureConfigDir creates the config directory if missing.
func EnsureConfigDir() error {
	return os.MkdirAll(ConfigDir(), 0o755)
}

// EnsureDataDir creates the data directory if missing.
func EnsureDataDir() error {
	return os.MkdirAll(DataDir(), 0o755)
}
