package adapters

import (
	"regexp"
	"strings"

	"omnipkg/pkg/manager"
)

// Gem adapts RubyGems.
type Gem struct{}

func (Gem) Descriptor() manager.Descriptor {
	return manager.Descriptor{
		ID:             "gem",
		Name:           "RubyGems",
		Binary:         "gem",
		VersionQuery:   []string{"--version"},
		Platforms:      []string{"linux", "darwin", "windows"},
		CanPinVersions: true,
		Operations: []manager.Operation{
			manager.OpListInstalled, manager.OpListOutdated, manager.OpSearch,
			manager.OpInstall, manager.OpUpgrade, manager.OpCleanup,
		},
	}
}

func (Gem) Command(op manager.Operation, args manager.Args) (manager.Invocation, error) {
	switch op {
	case manager.OpListInstalled:
		return argv("gem", "list", "--local"), nil
	case manager.OpListOutdated:
		return argv("gem", "outdated"), nil
	case manager.OpSearch:
		return argv("gem", "search", "--remote", args.Query), nil
	case manager.OpInstall:
		cmd := append([]string{"gem", "install"}, args.Packages...)
		if v := pinOne(args); v != "" {
			cmd = append(cmd, "--version", v)
		}
		return argv(cmd...), nil
	case manager.OpUpgrade:
		return argv(append([]string{"gem", "update"}, args.Packages...)...), nil
	case manager.OpCleanup:
		return argv("gem", "cleanup"), nil
	}
	return errOp("gem", op)
}

var (
	// gem list prints "name (1.2.3, 1.2.0)".
	gemListed = regexp.MustCompile(`^(\S+) \(([^,)]+)`)
	// gem outdated prints "name (1.0.0 < 1.1.0)".
	gemOutdated = regexp.MustCompile(`^(\S+) \((\S+) < (\S+)\)`)
)

func (Gem) Parse(op manager.Operation, res manager.ExecResult) ([]manager.Package, []manager.AdapterError) {
	var pkgs []manager.Package
	var errs []manager.AdapterError

	switch op {
	case manager.OpListInstalled, manager.OpSearch:
		for _, line := range lines(res.Stdout) {
			if strings.HasPrefix(line, "***") {
				continue // "*** REMOTE GEMS ***" banner
			}
			m := gemListed.FindStringSubmatch(line)
			if m == nil {
				errs = append(errs, badLine("gem", line, "expected 'name (version)'"))
				continue
			}
			pkg := manager.Package{ID: m[1]}
			if op == manager.OpListInstalled {
				pkg.InstalledVersion = strings.TrimSpace(m[2])
			} else {
				pkg.LatestVersion = strings.TrimSpace(m[2])
			}
			pkgs = append(pkgs, pkg)
		}
	case manager.OpListOutdated:
		for _, line := range lines(res.Stdout) {
			m := gemOutdated.FindStringSubmatch(line)
			if m == nil {
				errs = append(errs, badLine("gem", line, "expected 'name (old < new)'"))
				continue
			}
			pkgs = append(pkgs, manager.Package{
				ID:               m[1],
				InstalledVersion: m[2],
				LatestVersion:    m[3],
			})
		}
	}
	return pkgs, errs
}
