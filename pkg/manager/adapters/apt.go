package adapters

import (
	"regexp"
	"strings"

	"omnipkg/pkg/manager"
)

// APT adapts the Debian/Ubuntu package tools. Mutations go through apt-get;
// queries use dpkg-query and apt-cache, whose output is stable for scripting.
type APT struct{}

func (APT) Descriptor() manager.Descriptor {
	return manager.Descriptor{
		ID:             "apt",
		Name:           "APT (Debian/Ubuntu)",
		Binary:         "apt-get",
		VersionQuery:   []string{"--version"},
		Platforms:      []string{"linux"},
		MinVersion:     manager.Version{Major: 1},
		RequiresSudo:   true,
		CanPinVersions: true,
		Operations: []manager.Operation{
			manager.OpSync, manager.OpListInstalled, manager.OpListOutdated,
			manager.OpSearch, manager.OpInstall, manager.OpUpgrade, manager.OpCleanup,
		},
	}
}

func (APT) Command(op manager.Operation, args manager.Args) (manager.Invocation, error) {
	switch op {
	case manager.OpSync:
		return argv("apt-get", "update"), nil
	case manager.OpListInstalled:
		return argv("dpkg-query", "-W", "-f=${Package}\t${Version}\t${Status}\n"), nil
	case manager.OpListOutdated:
		return argv("apt", "list", "--upgradable"), nil
	case manager.OpSearch:
		return argv("apt-cache", "search", args.Query), nil
	case manager.OpInstall:
		cmd := []string{"apt-get", "install", "-y"}
		for _, pkg := range args.Packages {
			if v := args.Pins[pkg]; v != "" {
				cmd = append(cmd, pkg+"="+v)
			} else {
				cmd = append(cmd, pkg)
			}
		}
		return argv(cmd...), nil
	case manager.OpUpgrade:
		if len(args.Packages) > 0 {
			cmd := append([]string{"apt-get", "install", "-y", "--only-upgrade"}, args.Packages...)
			return argv(cmd...), nil
		}
		return argv("apt-get", "upgrade", "-y"), nil
	case manager.OpCleanup:
		return argv("apt-get", "autoclean", "-y"), nil
	}
	return errOp("apt", op)
}

// apt list --upgradable prints "name/suite 2.0.1 amd64 [upgradable from: 2.0.0]".
var aptUpgradablePattern = regexp.MustCompile(`^([^/\s]+)/\S+\s+(\S+)\s+\S+\s+\[upgradable from: ([^\]]+)\]`)

func (APT) Parse(op manager.Operation, res manager.ExecResult) ([]manager.Package, []manager.AdapterError) {
	var pkgs []manager.Package
	var errs []manager.AdapterError

	switch op {
	case manager.OpListInstalled:
		for _, line := range lines(res.Stdout) {
			fields := strings.Split(line, "\t")
			if len(fields) < 3 {
				errs = append(errs, badLine("apt", line, "expected package, version and status"))
				continue
			}
			if !strings.Contains(fields[2], "installed") {
				continue
			}
			pkgs = append(pkgs, manager.Package{
				ID:               fields[0],
				InstalledVersion: fields[1],
			})
		}
	case manager.OpListOutdated:
		for _, line := range lines(res.Stdout) {
			if strings.HasPrefix(line, "Listing") {
				continue
			}
			m := aptUpgradablePattern.FindStringSubmatch(line)
			if m == nil {
				errs = append(errs, badLine("apt", line, "unrecognized upgradable line"))
				continue
			}
			pkgs = append(pkgs, manager.Package{
				ID:               m[1],
				InstalledVersion: m[3],
				LatestVersion:    m[2],
			})
		}
	case manager.OpSearch:
		for _, line := range lines(res.Stdout) {
			parts := strings.SplitN(line, " - ", 2)
			if len(parts) < 2 {
				errs = append(errs, badLine("apt", line, "expected 'name - description'"))
				continue
			}
			pkgs = append(pkgs, manager.Package{
				ID:          strings.TrimSpace(parts[0]),
				Description: strings.TrimSpace(parts[1]),
			})
		}
	}
	return pkgs, errs
}
