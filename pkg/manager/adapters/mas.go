package adapters

import (
	"regexp"

	"omnipkg/pkg/manager"
)

// MAS adapts the Mac App Store CLI. App Store packages are keyed by numeric
// app identifiers; the human title is carried as the display name.
type MAS struct{}

func (MAS) Descriptor() manager.Descriptor {
	return manager.Descriptor{
		ID:           "mas",
		Name:         "Mac App Store",
		Binary:       "mas",
		VersionQuery: []string{"version"},
		Platforms:    []string{"darwin"},
		Operations: []manager.Operation{
			manager.OpListInstalled, manager.OpListOutdated, manager.OpSearch,
			manager.OpInstall, manager.OpUpgrade,
		},
	}
}

func (MAS) Command(op manager.Operation, args manager.Args) (manager.Invocation, error) {
	switch op {
	case manager.OpListInstalled:
		return argv("mas", "list"), nil
	case manager.OpListOutdated:
		return argv("mas", "outdated"), nil
	case manager.OpSearch:
		return argv("mas", "search", args.Query), nil
	case manager.OpInstall:
		return argv(append([]string{"mas", "install"}, args.Packages...)...), nil
	case manager.OpUpgrade:
		return argv(append([]string{"mas", "upgrade"}, args.Packages...)...), nil
	}
	return errOp("mas", op)
}

var (
	// mas list and search print "497799835  Xcode  (14.2)".
	masListed = regexp.MustCompile(`^\s*(\d+)\s+(.+?)\s+\(([^)]+)\)\s*$`)
	// mas outdated prints "497799835 Xcode (14.2 -> 14.3)".
	masOutdated = regexp.MustCompile(`^\s*(\d+)\s+(.+?)\s+\((\S+) -> (\S+)\)\s*$`)
)

func (MAS) Parse(op manager.Operation, res manager.ExecResult) ([]manager.Package, []manager.AdapterError) {
	var pkgs []manager.Package
	var errs []manager.AdapterError

	switch op {
	case manager.OpListInstalled, manager.OpSearch:
		for _, line := range lines(res.Stdout) {
			m := masListed.FindStringSubmatch(line)
			if m == nil {
				errs = append(errs, badLine("mas", line, "expected 'id name (version)'"))
				continue
			}
			pkg := manager.Package{ID: m[1], Name: m[2]}
			if op == manager.OpListInstalled {
				pkg.InstalledVersion = m[3]
			} else {
				pkg.LatestVersion = m[3]
			}
			pkgs = append(pkgs, pkg)
		}
	case manager.OpListOutdated:
		for _, line := range lines(res.Stdout) {
			m := masOutdated.FindStringSubmatch(line)
			if m == nil {
				errs = append(errs, badLine("mas", line, "expected 'id name (old -> new)'"))
				continue
			}
			pkgs = append(pkgs, manager.Package{
				ID:               m[1],
				Name:             m[2],
				InstalledVersion: m[3],
				LatestVersion:    m[4],
			})
		}
	}
	return pkgs, errs
}
