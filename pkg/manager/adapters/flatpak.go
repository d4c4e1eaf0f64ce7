package adapters

import (
	"strings"

	"omnipkg/pkg/manager"
)

// Flatpak adapts flatpak's application space. Column output is requested
// explicitly so parsing does not depend on the interactive table layout.
type Flatpak struct{}

func (Flatpak) Descriptor() manager.Descriptor {
	return manager.Descriptor{
		ID:           "flatpak",
		Name:         "Flatpak",
		Binary:       "flatpak",
		VersionQuery: []string{"--version"},
		Platforms:    []string{"linux"},
		MinVersion:   manager.Version{Major: 1},
		Operations: []manager.Operation{
			manager.OpSync, manager.OpListInstalled, manager.OpListOutdated,
			manager.OpSearch, manager.OpInstall, manager.OpUpgrade, manager.OpCleanup,
		},
	}
}

func (Flatpak) Command(op manager.Operation, args manager.Args) (manager.Invocation, error) {
	switch op {
	case manager.OpSync:
		return argv("flatpak", "update", "--appstream"), nil
	case manager.OpListInstalled:
		return argv("flatpak", "list", "--app", "--columns=application,version"), nil
	case manager.OpListOutdated:
		return argv("flatpak", "remote-ls", "--updates", "--app", "--columns=application,version"), nil
	case manager.OpSearch:
		return argv("flatpak", "search", "--columns=application,version,description", args.Query), nil
	case manager.OpInstall:
		return argv(append([]string{"flatpak", "install", "-y", "--noninteractive"}, args.Packages...)...), nil
	case manager.OpUpgrade:
		return argv(append([]string{"flatpak", "update", "-y"}, args.Packages...)...), nil
	case manager.OpCleanup:
		return argv("flatpak", "uninstall", "--unused", "-y"), nil
	}
	return errOp("flatpak", op)
}

func (Flatpak) Parse(op manager.Operation, res manager.ExecResult) ([]manager.Package, []manager.AdapterError) {
	var pkgs []manager.Package
	var errs []manager.AdapterError

	switch op {
	case manager.OpListInstalled, manager.OpListOutdated, manager.OpSearch:
		for _, line := range lines(res.Stdout) {
			if strings.HasPrefix(line, "No matches") {
				continue
			}
			fields := strings.Split(line, "\t")
			if fields[0] == "" {
				errs = append(errs, badLine("flatpak", line, "missing application id"))
				continue
			}
			pkg := manager.Package{ID: fields[0]}
			if len(fields) > 1 {
				if op == manager.OpListInstalled {
					pkg.InstalledVersion = fields[1]
				} else {
					pkg.LatestVersion = fields[1]
				}
			}
			if op == manager.OpSearch && len(fields) > 2 {
				pkg.Description = fields[2]
			}
			pkgs = append(pkgs, pkg)
		}
	}
	return pkgs, errs
}
