// Package config loads and persists omnipkg configuration as TOML.
package config

import (
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// Duration wraps time.Duration so TOML files can say "90s" or "5m".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler for TOML decoding.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler for TOML encoding.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Config is the complete omnipkg configuration.
type Config struct {
	General  GeneralConfig            `toml:"general"`
	Output   OutputConfig             `toml:"output"`
	Managers map[string]ManagerConfig `toml:"managers"`
}

// GeneralConfig contains engine-wide settings.
type GeneralConfig struct {
	// Priority is the canonical manager ordering used when no explicit
	// include list is given. First listed runs first.
	Priority []string `toml:"priority"`

	// Exclude lists managers never selected unless named explicitly.
	Exclude []string `toml:"exclude"`

	// StopOnError aborts a run at the first fatal manager failure instead
	// of recording it and continuing.
	StopOnError bool `toml:"stop_on_error"`

	// AutoConfirm skips confirmation prompts before mutating operations.
	AutoConfirm bool `toml:"auto_confirm"`

	// DryRun previews mutating invocations without executing them.
	DryRun bool `toml:"dry_run"`

	// Jobs bounds the worker pool for concurrent read operations.
	// Zero means the engine default.
	Jobs int `toml:"jobs"`

	// Timeout is the run-wide deadline for one operation across all
	// managers. Zero means no deadline.
	Timeout Duration `toml:"timeout"`
}

// OutputConfig contains output formatting settings.
type OutputConfig struct {
	// Color enables colored output (NO_COLOR is respected regardless).
	Color bool `toml:"color"`

	// Unicode enables unicode symbols in output.
	Unicode bool `toml:"unicode"`

	// Verbose echoes every adapter command line before it runs.
	Verbose bool `toml:"verbose"`

	// GroupBy selects the default report grouping: "manager" or "package".
	GroupBy string `toml:"group_by"`
}

// ManagerConfig contains per-manager settings.
type ManagerConfig struct {
	// Disabled removes the manager from selection unless named explicitly
	// with --manager.
	Disabled bool `toml:"disabled"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		General: GeneralConfig{
			Priority: []string{
				"pacman", "yay", "apt", "dnf", "zypper", "apk", "brew",
				"flatpak", "snap", "mas", "winget",
				"pip", "npm", "cargo", "gem", "vscode",
			},
			Timeout: Duration{10 * time.Minute},
		},
		Output: OutputConfig{
			Color:   true,
			Unicode: true,
			GroupBy: "manager",
		},
		Managers: map[string]ManagerConfig{},
	}
}

// Load loads the configuration from the default path.
func Load() (*Config, error) {
	return LoadFrom(ConfigPath())
}

// LoadFrom loads the configuration from a specific path. A missing file
// yields the defaults, not an error.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	return c.SaveTo(ConfigPath())
}

// SaveTo writes the configuration to a specific path.
func (c *Config) SaveTo(path string) error {
	if err := EnsureConfigDir(); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(c)
}

// DisabledManagers returns the ids excluded by configuration: the explicit
// exclude list plus every manager marked disabled.
func (c *Config) DisabledManagers() []string {
	out := append([]string(nil), c.General.Exclude...)
	for id, mc := range c.Managers {
		if mc.Disabled {
			out = append(out, id)
		}
	}
	return out
}

// ShouldUseColor reports whether colored output should be used, honoring the
// NO_COLOR convention.
func (c *Config) ShouldUseColor() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return c.Output.Color
}
