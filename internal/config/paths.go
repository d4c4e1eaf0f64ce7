package config

import (
	"os"
	"path/filepath"
	"runtime"
)

const (
	appName       = "omnipkg"
	configFile    = "config.toml"
	historyFile   = "history.db"
	snapshotIndex = "snapshots.db"
	snapshotDir   = "snapshots"
)

// ConfigDir returns the platform-specific configuration directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir() //nolint:errcheck
		return filepath.Join(home, "Library", "Application Support", appName)
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), appName)
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, appName)
		}
		home, _ := os.UserHomeDir() //nolint:errcheck
		return filepath.Join(home, ".config", appName)
	}
}

// DataDir returns the platform-specific data directory.
func DataDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir() //nolint:errcheck
		return filepath.Join(home, "Library", "Application Support", appName)
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), appName)
	default:
		if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
			return filepath.Join(xdg, appName)
		}
		home, _ := os.UserHomeDir() //nolint:errcheck
		return filepath.Join(home, ".local", "share", appName)
	}
}

// ConfigPath returns the full path of the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), configFile)
}

// HistoryPath returns the full path of the operation-history database.
func HistoryPath() string {
	return filepath.Join(DataDir(), historyFile)
}

// SnapshotIndexPath returns the full path of the snapshot index database.
func SnapshotIndexPath() string {
	return filepath.Join(DataDir(), snapshotIndex)
}

// SnapshotDir returns the default directory for snapshot documents.
func SnapshotDir() string {
	return filepath.Join(DataDir(), snapshotDir)
}

// EnsureConfigDir creates the config directory if needed.
func EnsureConfigDir() error {
	return os.MkdirAll(ConfigDir(), 0755)
}

// EnsureDataDir creates the data directory (and snapshot directory) if needed.
func EnsureDataDir() error {
	return os.MkdirAll(filepath.Join(DataDir(), snapshotDir), 0755)
}
