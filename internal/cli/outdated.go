package cli

import (
	"github.com/spf13/cobra"

	"omnipkg/internal/ui"
	"omnipkg/pkg/manager"
)

var outdatedCmd = &cobra.Command{
	Use:   "outdated",
	Short: "Show packages with a newer version available",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sp := ui.NewSpinner("Checking for updates")
		sp.Start()
		unified, runErr := runOperation(cmd.Context(), manager.OpListOutdated, manager.Args{})
		sp.Stop()
		if unified == nil {
			return runErr
		}
		if unified.Stats.Total == 0 && unified.Stats.FailedManagers == 0 {
			ui.SuccessMsg("everything is up to date")
			return nil
		}
		renderReports(unified, manager.OpListOutdated)
		return exitStatus(unified, runErr)
	},
}
