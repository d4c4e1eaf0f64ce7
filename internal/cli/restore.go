package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"omnipkg/internal/history"
	"omnipkg/internal/ui"
	"omnipkg/pkg/manager"
	"omnipkg/pkg/snapshot"
)

var restoreCmd = &cobra.Command{
	Use:   "restore [snapshot-file]",
	Short: "Reinstall packages from a snapshot file",
	Long: `Replay a snapshot produced by "omnipkg backup": per manager in the
document, a single install request for the recorded packages. Without an
argument the most recent indexed snapshot is used. Recorded versions are
advisory; managers that cannot pin versions install the latest and say so.
Managers absent from this machine are reported and skipped.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := snapshotPath(args)
		if err != nil {
			return err
		}

		snap, err := snapshot.Load(path)
		if err != nil {
			var ferr *snapshot.FormatError
			if errors.As(err, &ferr) {
				return fmt.Errorf("refusing to restore: %w", err)
			}
			return err
		}
		if snap.PackageCount() == 0 {
			ui.InfoMsg("snapshot %s records no packages", path)
			return nil
		}

		if !cfg.General.AutoConfirm && !cfg.General.DryRun {
			prompt := fmt.Sprintf("Restore %d package(s) for %s from %s?",
				snap.PackageCount(), strings.Join(snap.ManagerIDs(), ", "), path)
			ok, err := ui.Confirm(prompt, true)
			if err != nil || !ok {
				return errors.New("aborted")
			}
		}

		reports, runErr := snapshot.Restore(cmd.Context(), snap, disp, registry, runOptions(manager.Args{}))

		unified := manager.Aggregate(reports, manager.AggregateOptions{})
		entry := history.NewEntry(manager.OpInstall, []string{"restore:" + path}, cfg.General.DryRun)
		entry.RecordReports(reports)
		recordHistory(entry)

		renderAdapterErrors(unified)
		renderMutationOutcome(unified, "restored")
		return exitStatus(unified, runErr)
	},
}

func snapshotPath(args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	store, err := snapshot.OpenStore()
	if err != nil {
		return "", err
	}
	defer store.Close()
	latest, err := store.Latest()
	if err != nil {
		return "", err
	}
	if latest == nil {
		return "", errors.New("no indexed snapshots; pass a snapshot file or run \"omnipkg backup\"")
	}
	return latest.Path, nil
}
