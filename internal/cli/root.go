// Package cli implements the omnipkg command-line interface.
package cli

import (
	"time"

	"github.com/spf13/cobra"

	"omnipkg/internal/config"
	"omnipkg/internal/executor"
	"omnipkg/internal/ui"
	"omnipkg/pkg/manager"
	"omnipkg/pkg/manager/adapters"
)

var (
	// Global flags
	cfgFile     string
	includeFlag []string
	excludeFlag []string
	stopOnError bool
	dryRun      bool
	yes         bool
	verbose     bool
	noColor     bool
	jobs        int
	timeoutFlag time.Duration

	// Global state
	cfg      *config.Config
	exec     *executor.Executor
	registry *manager.Registry
	disp     *manager.Dispatcher
)

// Build metadata - set at build time via ldflags
var (
	Version   = "0.4.0-dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "omnipkg",
	Short: "One command layer over all your package managers",
	Long: `Omnipkg runs one consistent set of operations across every package
manager on the host and merges the results into a single report.

Supported managers:
  Linux:     pacman, yay, apt, dnf, apk, flatpak, snap, brew
  macOS:     brew, mas
  Windows:   winget
  Language:  pip, npm, cargo, gem, vscode

Examples:
  omnipkg list                        # installed packages, all managers
  omnipkg outdated -m brew -m pip     # outdated packages from brew then pip
  omnipkg install ripgrep -m brew     # install via a specific manager
  omnipkg backup -o packages.toml     # pin installed versions to a snapshot
  omnipkg restore packages.toml       # replay a snapshot`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeApp()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path")
	rootCmd.PersistentFlags().StringSliceVarP(&includeFlag, "manager", "m", nil, "restrict to these managers, in priority order (repeatable)")
	rootCmd.PersistentFlags().StringSliceVarP(&excludeFlag, "exclude", "x", nil, "exclude these managers (repeatable)")
	rootCmd.PersistentFlags().BoolVar(&stopOnError, "stop-on-error", false, "abort at the first manager failure")
	rootCmd.PersistentFlags().BoolVarP(&dryRun, "dry-run", "n", false, "preview commands without executing them")
	rootCmd.PersistentFlags().BoolVarP(&yes, "yes", "y", false, "assume yes to all prompts")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().IntVarP(&jobs, "jobs", "j", 0, "worker pool size for concurrent queries")
	rootCmd.PersistentFlags().DurationVar(&timeoutFlag, "timeout", 0, "run-wide deadline across all managers")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(managersCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(outdatedCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(installCmd)
	rootCmd.AddCommand(upgradeCmd)
	rootCmd.AddCommand(cleanupCmd)
	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(restoreCmd)
	rootCmd.AddCommand(historyCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// initializeApp wires configuration, the executor, the registry and the
// dispatcher. The registry is an explicit value handed around; nothing here
// is populated at import time.
func initializeApp() error {
	var err error
	if cfgFile != "" {
		cfg, err = config.LoadFrom(cfgFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return err
	}

	if yes {
		cfg.General.AutoConfirm = true
	}
	if dryRun {
		cfg.General.DryRun = true
	}
	if verbose {
		cfg.Output.Verbose = true
	}
	if noColor {
		cfg.Output.Color = false
	}
	if stopOnError {
		cfg.General.StopOnError = true
	}
	if jobs > 0 {
		cfg.General.Jobs = jobs
	}
	if timeoutFlag > 0 {
		cfg.General.Timeout = config.Duration{Duration: timeoutFlag}
	}

	ui.Init(cfg.ShouldUseColor(), cfg.Output.Unicode)

	exec = executor.New(cfg.Output.Verbose)
	registry = manager.NewRegistry(exec)
	adapters.Register(registry)
	disp = manager.NewDispatcher(exec)
	return nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the omnipkg version",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("omnipkg %s (commit %s, built %s)\n", Version, Commit, BuildTime)
	},
}
