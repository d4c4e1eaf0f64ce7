package snapshot

import (
	"context"
	"fmt"
	"sort"

	"omnipkg/pkg/manager"
)

// Restore replays a snapshot through the dispatcher: per manager, one install
// invocation targeting the pinned packages. Pins are advisory; a manager
// whose adapter cannot pin exact versions installs latest, and a warning is
// recorded on its report instead of failing the restore. Managers run
// sequentially in sorted id order; failures honor opts.Policy.
func Restore(ctx context.Context, snap *Snapshot, disp *manager.Dispatcher, reg *manager.Registry, opts manager.RunOptions) ([]manager.Report, error) {
	var reports []manager.Report
	for _, id := range snap.ManagerIDs() {
		pins := snap.Managers[id]
		if len(pins) == 0 {
			continue
		}

		packages := make([]string, 0, len(pins))
		for pkg := range pins {
			packages = append(packages, pkg)
		}
		sort.Strings(packages)

		inst := reg.Resolve(ctx, id)

		runOpts := opts
		runOpts.Args = manager.Args{Packages: packages, Pins: pins}

		batch, err := disp.Run(ctx, manager.OpInstall, []manager.Instance{inst}, runOpts)
		reports = append(reports, annotateUnpinned(inst, pins, batch)...)
		if err != nil {
			return reports, err
		}
	}
	return reports, nil
}

// annotateUnpinned records the advisory-pin warning on reports of managers
// that cannot install exact versions.
func annotateUnpinned(inst manager.Instance, pins map[string]string, reports []manager.Report) []manager.Report {
	if inst.Descriptor.CanPinVersions {
		return reports
	}
	hasPin := false
	for _, v := range pins {
		if v != "" {
			hasPin = true
			break
		}
	}
	if !hasPin {
		return reports
	}
	for i := range reports {
		if reports[i].Failed {
			continue
		}
		reports[i].Errors = append(reports[i].Errors, manager.AdapterError{
			Manager: reports[i].Manager,
			Msg:     fmt.Sprintf("%s cannot pin versions; installed latest instead of pinned", inst.ID()),
		})
	}
	return reports
}
