package config

import (
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if len(cfg.General.Priority) == 0 {
		t.Error("default priority list is empty")
	}
	if cfg.General.Priority[0] != "pacman" {
		t.Errorf("Priority[0] = %q, want the native manager first", cfg.General.Priority[0])
	}
	if cfg.General.StopOnError {
		t.Error("default policy must be continue-on-error")
	}
	if cfg.General.Timeout.Duration != 10*time.Minute {
		t.Errorf("default timeout = %v", cfg.General.Timeout.Duration)
	}
	if !cfg.Output.Color || !cfg.Output.Unicode {
		t.Error("color and unicode default on")
	}
	if cfg.Output.GroupBy != "manager" {
		t.Errorf("default GroupBy = %q", cfg.Output.GroupBy)
	}
}

func TestLoadFromMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Output.GroupBy != "manager" {
		t.Error("missing file should load defaults")
	}
}

func TestLoadFromParsesSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[general]
priority = ["brew", "pip"]
stop_on_error = true
jobs = 8
timeout = "90s"

[output]
color = false
group_by = "package"

[managers.snap]
disabled = true
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(cfg.General.Priority) != 2 || cfg.General.Priority[0] != "brew" {
		t.Errorf("Priority = %v", cfg.General.Priority)
	}
	if !cfg.General.StopOnError {
		t.Error("stop_on_error not parsed")
	}
	if cfg.General.Jobs != 8 {
		t.Errorf("Jobs = %d", cfg.General.Jobs)
	}
	if cfg.General.Timeout.Duration != 90*time.Second {
		t.Errorf("Timeout = %v", cfg.General.Timeout.Duration)
	}
	if cfg.Output.Color {
		t.Error("color=false not parsed")
	}
	if !cfg.Managers["snap"].Disabled {
		t.Error("per-manager disabled not parsed")
	}
}

func TestSaveLoadRoundtrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := Default()
	cfg.General.Exclude = []string{"snap"}
	cfg.General.Timeout = Duration{2 * time.Minute}
	cfg.Managers["npm"] = ManagerConfig{Disabled: true}

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := cfg.SaveTo(path); err != nil {
		t.Fatal(err)
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.General.Timeout.Duration != 2*time.Minute {
		t.Errorf("roundtrip timeout = %v", loaded.General.Timeout.Duration)
	}
	if !loaded.Managers["npm"].Disabled {
		t.Error("roundtrip lost manager disable")
	}
}

func TestDisabledManagers(t *testing.T) {
	cfg := Default()
	cfg.General.Exclude = []string{"snap"}
	cfg.Managers["npm"] = ManagerConfig{Disabled: true}
	cfg.Managers["pip"] = ManagerConfig{Disabled: false}

	got := cfg.DisabledManagers()
	sort.Strings(got)
	if len(got) != 2 || got[0] != "npm" || got[1] != "snap" {
		t.Errorf("DisabledManagers() = %v, want [npm snap]", got)
	}
}

func TestShouldUseColorHonorsNoColor(t *testing.T) {
	cfg := Default()
	t.Setenv("NO_COLOR", "1")
	if cfg.ShouldUseColor() {
		t.Error("NO_COLOR must always win")
	}
}
