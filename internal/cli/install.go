package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"omnipkg/internal/ui"
	"omnipkg/pkg/manager"
)

var installCmd = &cobra.Command{
	Use:   "install <package>...",
	Short: "Install packages",
	Long: `Install one or more packages. With -m the named managers are used;
otherwise all available managers receive the request, which usually only
makes sense for packages published under the same name everywhere.

Use "omnipkg search <name>" first when unsure which manager carries a
package, then install with -m.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(includeFlag) == 0 {
			if err := pickManagerInteractively(cmd); err != nil {
				return err
			}
		}
		unified, runErr := runOperation(cmd.Context(), manager.OpInstall, manager.Args{Packages: args})
		if unified == nil {
			return runErr
		}
		renderMutationOutcome(unified, "installed "+pluralize(len(args), "package"))
		return exitStatus(unified, runErr)
	},
}

// pickManagerInteractively narrows an unscoped install to one manager when
// running at a terminal, instead of firing the same install at every backend.
func pickManagerInteractively(cmd *cobra.Command) error {
	if cfg.General.AutoConfirm || cfg.General.DryRun {
		return nil
	}
	instances, err := registry.Select(cmd.Context(), selectOptions(false))
	if err != nil {
		return err
	}
	if len(instances) <= 1 {
		return nil
	}
	ids := make([]string, len(instances))
	for i, inst := range instances {
		ids[i] = inst.ID()
	}
	id, err := ui.SelectManager(ids, "Install with which manager?")
	if err != nil {
		return errors.New("aborted")
	}
	includeFlag = []string{id}
	return nil
}

func pluralize(n int, noun string) string {
	if n == 1 {
		return noun
	}
	return noun + "s"
}
