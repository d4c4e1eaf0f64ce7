package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"omnipkg/internal/ui"
	"omnipkg/pkg/manager"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search package repositories across all managers",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.Join(args, " ")

		sp := ui.NewSpinner("Searching for " + query)
		sp.Start()
		unified, runErr := runOperation(cmd.Context(), manager.OpSearch, manager.Args{Query: query})
		sp.Stop()

		if unified == nil {
			return runErr
		}
		if unified.Stats.Total == 0 && unified.Stats.FailedManagers == 0 {
			ui.InfoMsg("no results for %q", query)
			return nil
		}
		renderReports(unified, manager.OpSearch)
		return exitStatus(unified, runErr)
	},
}
