package cli

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"omnipkg/internal/config"
	"omnipkg/internal/ui"
	"omnipkg/pkg/manager"
	"omnipkg/pkg/snapshot"
)

var (
	backupOutput string
	backupMerge  bool
	backupUpdate bool
	backupList   bool
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Save installed packages to a snapshot file",
	Long: `Capture the installed packages of every available manager into a
TOML snapshot document, suitable for replaying on another machine with
"omnipkg restore". Without -o the document lands in the data directory
and is indexed for "omnipkg backup --list".`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if backupList {
			return listSnapshots()
		}

		sp := ui.NewSpinner("Collecting installed packages")
		sp.Start()
		unified, runErr := runOperation(cmd.Context(), manager.OpListInstalled, manager.Args{})
		sp.Stop()
		if unified == nil {
			return runErr
		}
		if err := exitStatus(unified, runErr); err != nil {
			renderFailures(unified)
			return err
		}

		snap := snapshot.Backup(unified, Version)
		if backupMerge {
			merged, err := mergeIntoExisting(unified)
			if err != nil {
				return err
			}
			snap = merged
		}

		path, indexed, err := writeSnapshot(snap)
		if err != nil {
			return err
		}

		renderFailures(unified)
		ui.SuccessMsg("saved %d package(s) from %d manager(s) to %s",
			snap.PackageCount(), len(snap.Managers), path)
		if !indexed && backupOutput == "" {
			ui.WarningMsg("snapshot index unavailable; file written but not listed")
		}
		return nil
	},
}

func init() {
	backupCmd.Flags().StringVarP(&backupOutput, "output", "o", "", "snapshot file path (default: data directory)")
	backupCmd.Flags().BoolVar(&backupMerge, "merge", false, "merge into the existing file instead of replacing it")
	backupCmd.Flags().BoolVar(&backupUpdate, "update-versions", false, "with --merge, replace recorded versions with installed ones")
	backupCmd.Flags().BoolVarP(&backupList, "list", "l", false, "list indexed snapshots")
}

func mergeIntoExisting(unified *manager.UnifiedReport) (*snapshot.Snapshot, error) {
	if backupOutput == "" {
		return nil, fmt.Errorf("--merge requires -o with an existing snapshot file")
	}
	existing, err := snapshot.Load(backupOutput)
	if err != nil {
		return nil, err
	}
	return snapshot.Merge(existing, unified, backupUpdate), nil
}

// writeSnapshot writes the document and, for default-location snapshots,
// records it in the index. Index failures never lose the document.
func writeSnapshot(snap *snapshot.Snapshot) (path string, indexed bool, err error) {
	path = backupOutput
	if path == "" {
		if err := config.EnsureDataDir(); err != nil {
			return "", false, err
		}
		name := fmt.Sprintf("snapshot-%s.toml", snap.Meta.Created.Format("20060102-150405"))
		path = filepath.Join(config.SnapshotDir(), name)
	}
	if err := snap.WriteFile(path); err != nil {
		return "", false, err
	}
	if backupOutput != "" {
		return path, false, nil
	}

	store, err := snapshot.OpenStore()
	if err != nil {
		return path, false, nil
	}
	defer store.Close()
	if _, err := store.Add(snap, path); err != nil {
		return path, false, nil
	}
	return path, true, nil
}

func listSnapshots() error {
	store, err := snapshot.OpenStore()
	if err != nil {
		return err
	}
	defer store.Close()

	records, err := store.List(0)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		ui.InfoMsg("no snapshots recorded yet; run \"omnipkg backup\" first")
		return nil
	}

	tbl := ui.NewTable([]string{"id", "created", "managers", "packages", "path"})
	for _, rec := range records {
		tbl.AddRow([]string{
			rec.ID,
			rec.Created.Local().Format(time.DateTime),
			fmt.Sprintf("%d", rec.Managers),
			fmt.Sprintf("%d", rec.Packages),
			rec.Path,
		})
	}
	tbl.Render()
	return nil
}
