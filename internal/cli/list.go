package cli

import (
	"github.com/spf13/cobra"

	"omnipkg/internal/tui"
	"omnipkg/internal/ui"
	"omnipkg/pkg/manager"
)

var (
	listDuplicates  bool
	listDedupe      bool
	listInteractive bool
	groupByFlag     string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List installed packages across all managers",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if groupByFlag != "" {
			cfg.Output.GroupBy = groupByFlag
		}
		if listDedupe {
			ui.InfoMsg("suppressing wrapper managers that mirror their backend")
		}

		unified, runErr := runList(cmd)
		if unified == nil {
			return runErr
		}

		switch {
		case listDuplicates:
			renderDuplicates(unified)
			renderFailures(unified)
		case listInteractive && runErr == nil:
			if err := tui.Browse(unified); err != nil {
				return err
			}
		default:
			renderReports(unified, manager.OpListInstalled)
		}
		return exitStatus(unified, runErr)
	},
}

func runList(cmd *cobra.Command) (*manager.UnifiedReport, error) {
	ctx := cmd.Context()
	instances, err := registry.Select(ctx, selectOptions(false))
	if err != nil {
		return nil, err
	}

	reports, runErr := disp.Run(ctx, manager.OpListInstalled, instances, runOptions(manager.Args{}))

	opts := manager.AggregateOptions{GroupBy: manager.GroupBy(cfg.Output.GroupBy)}
	if listDedupe {
		opts.DedupeRedundant = true
		opts.Supersedes = registry.Supersedes()
	}
	return manager.Aggregate(reports, opts), runErr
}

func init() {
	listCmd.Flags().BoolVar(&listDuplicates, "duplicates", false, "show packages installed under more than one manager")
	listCmd.Flags().BoolVar(&listDedupe, "dedupe", false, "suppress reports from managers superseded by a wrapper")
	listCmd.Flags().BoolVarP(&listInteractive, "interactive", "i", false, "browse results in an interactive view")
	listCmd.Flags().StringVarP(&groupByFlag, "group-by", "g", "", "group output by \"manager\" or \"package\"")
}
