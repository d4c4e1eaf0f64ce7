package cli

import (
	"github.com/spf13/cobra"

	"omnipkg/pkg/manager"
)

var upgradeCmd = &cobra.Command{
	Use:     "upgrade [package]...",
	Aliases: []string{"update"},
	Short:   "Upgrade packages to their latest versions",
	Long: `Upgrade the named packages, or everything when no package is given.
Managers that cannot upgrade their whole set at once (pip, cargo) report
that limitation instead of guessing.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		unified, runErr := runOperation(cmd.Context(), manager.OpUpgrade, manager.Args{Packages: args})
		if unified == nil {
			return runErr
		}
		renderMutationOutcome(unified, "upgraded")
		return exitStatus(unified, runErr)
	},
}

var cleanupCmd = &cobra.Command{
	Use:     "cleanup",
	Aliases: []string{"clean"},
	Short:   "Remove caches and orphaned dependencies",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		unified, runErr := runOperation(cmd.Context(), manager.OpCleanup, manager.Args{})
		if unified == nil {
			return runErr
		}
		renderMutationOutcome(unified, "cleaned up")
		return exitStatus(unified, runErr)
	},
}
