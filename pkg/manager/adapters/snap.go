package adapters

import (
	"strings"

	"omnipkg/pkg/manager"
)

// Snap adapts snapd's CLI. Snap keeps its database fresh on its own, so the
// sync operation is not declared.
type Snap struct{}

func (Snap) Descriptor() manager.Descriptor {
	return manager.Descriptor{
		ID:           "snap",
		Name:         "Snap",
		Binary:       "snap",
		VersionQuery: []string{"version"},
		Platforms:    []string{"linux"},
		RequiresSudo: true,
		Operations: []manager.Operation{
			manager.OpListInstalled, manager.OpListOutdated, manager.OpSearch,
			manager.OpInstall, manager.OpUpgrade,
		},
	}
}

func (Snap) Command(op manager.Operation, args manager.Args) (manager.Invocation, error) {
	switch op {
	case manager.OpListInstalled:
		return argv("snap", "list"), nil
	case manager.OpListOutdated:
		return argv("snap", "refresh", "--list"), nil
	case manager.OpSearch:
		return argv("snap", "find", args.Query), nil
	case manager.OpInstall:
		return argv(append([]string{"snap", "install"}, args.Packages...)...), nil
	case manager.OpUpgrade:
		return argv(append([]string{"snap", "refresh"}, args.Packages...)...), nil
	}
	return errOp("snap", op)
}

func (Snap) Parse(op manager.Operation, res manager.ExecResult) ([]manager.Package, []manager.AdapterError) {
	var pkgs []manager.Package
	var errs []manager.AdapterError

	switch op {
	case manager.OpListInstalled, manager.OpListOutdated, manager.OpSearch:
		rows := lines(res.Stdout)
		if len(rows) == 0 {
			return nil, nil
		}
		if strings.HasPrefix(rows[0], "Name") {
			rows = rows[1:] // column header
		}
		for _, line := range rows {
			if strings.HasPrefix(line, "All snaps up to date") {
				continue
			}
			fields := strings.Fields(line)
			if len(fields) < 2 {
				errs = append(errs, badLine("snap", line, "expected name and version"))
				continue
			}
			pkg := manager.Package{ID: fields[0]}
			if op == manager.OpListInstalled {
				pkg.InstalledVersion = fields[1]
			} else {
				pkg.LatestVersion = fields[1]
			}
			if op == manager.OpSearch && len(fields) > 4 {
				pkg.Description = strings.Join(fields[4:], " ")
			}
			pkgs = append(pkgs, pkg)
		}
	}
	return pkgs, errs
}
