package adapters

import (
	"strings"

	"omnipkg/pkg/manager"
)

// DNF adapts Fedora/RHEL's dnf.
type DNF struct{}

func (DNF) Descriptor() manager.Descriptor {
	return manager.Descriptor{
		ID:             "dnf",
		Name:           "DNF (Fedora/RHEL)",
		Binary:         "dnf",
		VersionQuery:   []string{"--version"},
		Platforms:      []string{"linux"},
		MinVersion:     manager.Version{Major: 4},
		RequiresSudo:   true,
		CanPinVersions: true,
		Operations: []manager.Operation{
			manager.OpSync, manager.OpListInstalled, manager.OpListOutdated,
			manager.OpSearch, manager.OpInstall, manager.OpUpgrade, manager.OpCleanup,
		},
	}
}

func (DNF) Command(op manager.Operation, args manager.Args) (manager.Invocation, error) {
	switch op {
	case manager.OpSync:
		return argv("dnf", "makecache"), nil
	case manager.OpListInstalled:
		return argv("dnf", "list", "--installed", "--quiet"), nil
	case manager.OpListOutdated:
		return argv("dnf", "check-update", "--quiet"), nil
	case manager.OpSearch:
		return argv("dnf", "search", "--quiet", args.Query), nil
	case manager.OpInstall:
		cmd := []string{"dnf", "install", "-y"}
		for _, pkg := range args.Packages {
			if v := args.Pins[pkg]; v != "" {
				cmd = append(cmd, pkg+"-"+v)
			} else {
				cmd = append(cmd, pkg)
			}
		}
		return argv(cmd...), nil
	case manager.OpUpgrade:
		return argv(append([]string{"dnf", "upgrade", "-y"}, args.Packages...)...), nil
	case manager.OpCleanup:
		return argv("dnf", "clean", "all"), nil
	}
	return errOp("dnf", op)
}

// ExitOK accepts check-update exiting 100, which signals available updates.
func (DNF) ExitOK(op manager.Operation, code int) bool {
	if op == manager.OpListOutdated {
		return code == 0 || code == 100
	}
	return code == 0
}

func (DNF) Parse(op manager.Operation, res manager.ExecResult) ([]manager.Package, []manager.AdapterError) {
	var pkgs []manager.Package
	var errs []manager.AdapterError

	switch op {
	case manager.OpListInstalled, manager.OpListOutdated:
		// Both print "name.arch  version  repo" rows.
		for _, line := range lines(res.Stdout) {
			if strings.HasSuffix(line, "Packages") || strings.HasPrefix(line, "Last metadata") {
				continue
			}
			fields := strings.Fields(line)
			if len(fields) < 2 {
				errs = append(errs, badLine("dnf", line, "expected name, version and repo"))
				continue
			}
			pkg := manager.Package{ID: stripArch(fields[0])}
			if op == manager.OpListInstalled {
				pkg.InstalledVersion = fields[1]
			} else {
				pkg.LatestVersion = fields[1]
			}
			pkgs = append(pkgs, pkg)
		}
	case manager.OpSearch:
		// dnf search prints "name.arch : summary" rows between headers.
		for _, line := range lines(res.Stdout) {
			if strings.HasPrefix(line, "=") {
				continue
			}
			parts := strings.SplitN(line, " : ", 2)
			if len(parts) < 2 {
				errs = append(errs, badLine("dnf", line, "expected 'name : summary'"))
				continue
			}
			pkgs = append(pkgs, manager.Package{
				ID:          stripArch(strings.TrimSpace(parts[0])),
				Description: strings.TrimSpace(parts[1]),
			})
		}
	}
	return pkgs, errs
}

// stripArch removes the trailing ".arch" qualifier from dnf package names.
func stripArch(name string) string {
	if idx := strings.LastIndexByte(name, '.'); idx > 0 {
		return name[:idx]
	}
	return name
}
