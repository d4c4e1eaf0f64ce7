package adapters

import (
	"errors"
	"regexp"
	"strings"

	"omnipkg/pkg/manager"
)

// Cargo adapts cargo's installed-binaries space. Cargo has no notion of an
// outdated listing or a cache worth sweeping, so those operations are not
// declared.
type Cargo struct{}

func (Cargo) Descriptor() manager.Descriptor {
	return manager.Descriptor{
		ID:             "cargo",
		Name:           "Cargo (Rust)",
		Binary:         "cargo",
		VersionQuery:   []string{"--version"},
		Platforms:      []string{"linux", "darwin", "windows"},
		CanPinVersions: true,
		Operations: []manager.Operation{
			manager.OpListInstalled, manager.OpSearch,
			manager.OpInstall, manager.OpUpgrade,
		},
	}
}

func (Cargo) Command(op manager.Operation, args manager.Args) (manager.Invocation, error) {
	switch op {
	case manager.OpListInstalled:
		return argv("cargo", "install", "--list"), nil
	case manager.OpSearch:
		return argv("cargo", "search", args.Query), nil
	case manager.OpInstall:
		cmd := append([]string{"cargo", "install"}, args.Packages...)
		if v := pinOne(args); v != "" {
			cmd = append(cmd, "--version", v)
		}
		return argv(cmd...), nil
	case manager.OpUpgrade:
		if len(args.Packages) == 0 {
			return manager.Invocation{}, errors.New("cargo upgrades by reinstalling; name the crates explicitly")
		}
		return argv(append([]string{"cargo", "install", "--force"}, args.Packages...)...), nil
	}
	return errOp("cargo", op)
}

var (
	// cargo install --list prints "name v1.2.3:" headers with indented
	// binary lines below.
	cargoInstalled = regexp.MustCompile(`^(\S+) v(\S+?):?$`)
	// cargo search prints `name = "1.2.3"    # description`.
	cargoSearch = regexp.MustCompile(`^(\S+) = "([^"]+)"(?:\s+#\s*(.*))?`)
)

func (Cargo) Parse(op manager.Operation, res manager.ExecResult) ([]manager.Package, []manager.AdapterError) {
	var pkgs []manager.Package
	var errs []manager.AdapterError

	switch op {
	case manager.OpListInstalled:
		for _, line := range lines(res.Stdout) {
			if strings.HasPrefix(line, " ") || strings.HasPrefix(line, "\t") {
				continue // binary names under the crate header
			}
			m := cargoInstalled.FindStringSubmatch(line)
			if m == nil {
				errs = append(errs, badLine("cargo", line, "unrecognized crate header"))
				continue
			}
			pkgs = append(pkgs, manager.Package{ID: m[1], InstalledVersion: m[2]})
		}
	case manager.OpSearch:
		for _, line := range lines(res.Stdout) {
			if strings.HasPrefix(line, "...") || strings.HasPrefix(line, "note:") {
				continue
			}
			m := cargoSearch.FindStringSubmatch(line)
			if m == nil {
				errs = append(errs, badLine("cargo", line, "unrecognized search line"))
				continue
			}
			pkgs = append(pkgs, manager.Package{
				ID:            m[1],
				LatestVersion: m[2],
				Description:   m[3],
			})
		}
	}
	return pkgs, errs
}
