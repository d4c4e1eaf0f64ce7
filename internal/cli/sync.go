package cli

import (
	"time"

	"github.com/spf13/cobra"

	"omnipkg/internal/ui"
	"omnipkg/pkg/manager"
)

const timeRound = 100 * time.Millisecond

var syncCmd = &cobra.Command{
	Use:     "sync",
	Aliases: []string{"refresh"},
	Short:   "Refresh package metadata for all managers",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		unified, runErr := runOperation(cmd.Context(), manager.OpSync, manager.Args{})
		if unified == nil {
			return runErr
		}
		renderMutationOutcome(unified, "synced")
		return exitStatus(unified, runErr)
	},
}

// renderMutationOutcome summarizes a streamed operation: subprocess output
// already went to the terminal, so only the per-manager verdict remains.
func renderMutationOutcome(u *manager.UnifiedReport, verb string) {
	for _, rep := range u.Reports {
		if rep.Failed {
			ui.ErrorMsg("%s: %s", rep.Manager, rep.Reason)
			continue
		}
		if cfg.General.DryRun {
			continue
		}
		ui.SuccessMsg("%s %s in %s", rep.Manager, verb, rep.Duration.Round(timeRound))
	}
}
