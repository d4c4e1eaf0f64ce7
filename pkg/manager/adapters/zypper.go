package adapters

import (
	"strings"

	"omnipkg/pkg/manager"
)

// Zypper adapts openSUSE's zypper. Zypper prints pipe-separated tables;
// --quiet drops the progress chatter so only table rows remain.
type Zypper struct{}

func (Zypper) Descriptor() manager.Descriptor {
	return manager.Descriptor{
		ID:           "zypper",
		Name:         "Zypper (openSUSE)",
		Binary:       "zypper",
		VersionQuery: []string{"--version"},
		Platforms:    []string{"linux"},
		MinVersion:   manager.Version{Major: 1},
		RequiresSudo: true,
		Operations: []manager.Operation{
			manager.OpSync, manager.OpListInstalled, manager.OpListOutdated,
			manager.OpSearch, manager.OpInstall, manager.OpUpgrade, manager.OpCleanup,
		},
	}
}

func (Zypper) Command(op manager.Operation, args manager.Args) (manager.Invocation, error) {
	switch op {
	case manager.OpSync:
		return argv("zypper", "--non-interactive", "refresh"), nil
	case manager.OpListInstalled:
		return argv("zypper", "--quiet", "search", "--installed-only", "--details"), nil
	case manager.OpListOutdated:
		return argv("zypper", "--quiet", "list-updates"), nil
	case manager.OpSearch:
		return argv("zypper", "--quiet", "search", args.Query), nil
	case manager.OpInstall:
		return argv(append([]string{"zypper", "--non-interactive", "install"}, args.Packages...)...), nil
	case manager.OpUpgrade:
		if len(args.Packages) > 0 {
			return argv(append([]string{"zypper", "--non-interactive", "update"}, args.Packages...)...), nil
		}
		return argv("zypper", "--non-interactive", "update"), nil
	case manager.OpCleanup:
		return argv("zypper", "--non-interactive", "clean", "--all"), nil
	}
	return errOp("zypper", op)
}

func (Zypper) Parse(op manager.Operation, res manager.ExecResult) ([]manager.Package, []manager.AdapterError) {
	var pkgs []manager.Package
	var errs []manager.AdapterError

	switch op {
	case manager.OpListInstalled:
		// "i | name | package | 1.2.3-1.1 | x86_64 | repo"
		for _, cols := range zypperRows(res.Stdout) {
			if len(cols) < 4 {
				errs = append(errs, badLine("zypper", strings.Join(cols, " | "), "unrecognized table row"))
				continue
			}
			pkgs = append(pkgs, manager.Package{
				ID:               cols[1],
				InstalledVersion: cols[3],
			})
		}
	case manager.OpListOutdated:
		// "v | repo | name | 1.0-1.1 | 1.1-1.1 | x86_64"
		for _, cols := range zypperRows(res.Stdout) {
			if len(cols) < 5 {
				errs = append(errs, badLine("zypper", strings.Join(cols, " | "), "unrecognized update row"))
				continue
			}
			pkgs = append(pkgs, manager.Package{
				ID:               cols[2],
				InstalledVersion: cols[3],
				LatestVersion:    cols[4],
			})
		}
	case manager.OpSearch:
		// "  | name | summary | package"
		for _, cols := range zypperRows(res.Stdout) {
			if len(cols) < 3 {
				errs = append(errs, badLine("zypper", strings.Join(cols, " | "), "unrecognized search row"))
				continue
			}
			pkgs = append(pkgs, manager.Package{
				ID:          cols[1],
				Description: cols[2],
			})
		}
	}
	return pkgs, errs
}

// zypperRows splits zypper's pipe-separated tables into trimmed cells,
// skipping the header and separator lines.
func zypperRows(text string) [][]string {
	var rows [][]string
	for _, line := range lines(text) {
		if !strings.Contains(line, "|") || strings.HasPrefix(line, "S ") || strings.HasPrefix(line, "--") {
			continue
		}
		parts := strings.Split(line, "|")
		cols := make([]string, len(parts))
		for i, p := range parts {
			cols[i] = strings.TrimSpace(p)
		}
		rows = append(rows, cols)
	}
	return rows
}
