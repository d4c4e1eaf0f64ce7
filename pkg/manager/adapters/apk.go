package adapters

import (
	"regexp"

	"omnipkg/pkg/manager"
)

// APK adapts Alpine's apk.
type APK struct{}

func (APK) Descriptor() manager.Descriptor {
	return manager.Descriptor{
		ID:             "apk",
		Name:           "APK (Alpine)",
		Binary:         "apk",
		VersionQuery:   []string{"--version"},
		Platforms:      []string{"linux"},
		RequiresSudo:   true,
		CanPinVersions: true,
		Operations: []manager.Operation{
			manager.OpSync, manager.OpListInstalled, manager.OpListOutdated,
			manager.OpSearch, manager.OpInstall, manager.OpUpgrade, manager.OpCleanup,
		},
	}
}

func (APK) Command(op manager.Operation, args manager.Args) (manager.Invocation, error) {
	switch op {
	case manager.OpSync:
		return argv("apk", "update"), nil
	case manager.OpListInstalled:
		return argv("apk", "info", "-v"), nil
	case manager.OpListOutdated:
		return argv("apk", "list", "--upgradable"), nil
	case manager.OpSearch:
		return argv("apk", "search", args.Query), nil
	case manager.OpInstall:
		cmd := []string{"apk", "add"}
		for _, pkg := range args.Packages {
			if v := args.Pins[pkg]; v != "" {
				cmd = append(cmd, pkg+"="+v)
			} else {
				cmd = append(cmd, pkg)
			}
		}
		return argv(cmd...), nil
	case manager.OpUpgrade:
		return argv(append([]string{"apk", "upgrade"}, args.Packages...)...), nil
	case manager.OpCleanup:
		return argv("apk", "cache", "clean"), nil
	}
	return errOp("apk", op)
}

var (
	// apk info -v and apk search print "name-1.2.3-r0".
	apkNameVersion = regexp.MustCompile(`^(.+)-(\d[^-]*-r\d+)$`)
	// apk list --upgradable prints
	// "name-1.2.3-r0 x86_64 {origin} (license) [upgradable from: name-1.2.2-r0]".
	apkUpgradable = regexp.MustCompile(`^(.+)-(\d[^-]*-r\d+)\s+\S+.*\[upgradable from: .+-(\d[^-]*-r\d+)\]`)
)

func (APK) Parse(op manager.Operation, res manager.ExecResult) ([]manager.Package, []manager.AdapterError) {
	var pkgs []manager.Package
	var errs []manager.AdapterError

	switch op {
	case manager.OpListInstalled, manager.OpSearch:
		for _, line := range lines(res.Stdout) {
			m := apkNameVersion.FindStringSubmatch(line)
			if m == nil {
				errs = append(errs, badLine("apk", line, "expected name-version-rN"))
				continue
			}
			pkg := manager.Package{ID: m[1]}
			if op == manager.OpListInstalled {
				pkg.InstalledVersion = m[2]
			} else {
				pkg.LatestVersion = m[2]
			}
			pkgs = append(pkgs, pkg)
		}
	case manager.OpListOutdated:
		for _, line := range lines(res.Stdout) {
			m := apkUpgradable.FindStringSubmatch(line)
			if m == nil {
				errs = append(errs, badLine("apk", line, "unrecognized upgradable line"))
				continue
			}
			pkgs = append(pkgs, manager.Package{
				ID:               m[1],
				InstalledVersion: m[3],
				LatestVersion:    m[2],
			})
		}
	}
	return pkgs, errs
}
