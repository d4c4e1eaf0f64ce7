package cli

import (
	"github.com/spf13/cobra"

	"omnipkg/internal/history"
	"omnipkg/internal/ui"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show past mutating operations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := history.Open()
		if err != nil {
			return err
		}
		defer store.Close()

		entries, err := store.List(historyLimit)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			ui.InfoMsg("no operations recorded yet")
			return nil
		}
		for _, e := range entries {
			if e.Success {
				ui.SuccessMsg("%s", e.Summary())
			} else {
				ui.ErrorMsg("%s", e.Summary())
			}
		}

		if _, err := store.Prune(history.MaxEntries); err != nil && cfg.Output.Verbose {
			ui.WarningMsg("history prune failed: %v", err)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "l", 20, "number of entries to show (0 for all)")
}
