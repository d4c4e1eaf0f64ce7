package adapters

import (
	"regexp"
	"strings"

	"omnipkg/pkg/manager"
)

// Brew adapts Homebrew on macOS and Linux.
type Brew struct{}

func (Brew) Descriptor() manager.Descriptor {
	return manager.Descriptor{
		ID:           "brew",
		Name:         "Homebrew",
		Binary:       "brew",
		VersionQuery: []string{"--version"},
		Platforms:    []string{"darwin", "linux"},
		MinVersion:   manager.Version{Major: 2},
		Operations: []manager.Operation{
			manager.OpSync, manager.OpListInstalled, manager.OpListOutdated,
			manager.OpSearch, manager.OpInstall, manager.OpUpgrade, manager.OpCleanup,
		},
	}
}

func (Brew) Command(op manager.Operation, args manager.Args) (manager.Invocation, error) {
	switch op {
	case manager.OpSync:
		return argv("brew", "update"), nil
	case manager.OpListInstalled:
		return argv("brew", "list", "--versions"), nil
	case manager.OpListOutdated:
		return argv("brew", "outdated", "--verbose"), nil
	case manager.OpSearch:
		return argv("brew", "search", args.Query), nil
	case manager.OpInstall:
		return argv(append([]string{"brew", "install"}, args.Packages...)...), nil
	case manager.OpUpgrade:
		return argv(append([]string{"brew", "upgrade"}, args.Packages...)...), nil
	case manager.OpCleanup:
		return argv("brew", "cleanup"), nil
	}
	return errOp("brew", op)
}

// brew outdated --verbose prints "formula (1.2.3) < 1.3.0".
var brewOutdatedPattern = regexp.MustCompile(`^(\S+) \(([^)]+)\) [<!]=? ?(\S+)`)

func (Brew) Parse(op manager.Operation, res manager.ExecResult) ([]manager.Package, []manager.AdapterError) {
	var pkgs []manager.Package
	var errs []manager.AdapterError

	switch op {
	case manager.OpListInstalled:
		for _, line := range lines(res.Stdout) {
			fields := strings.Fields(line)
			if len(fields) < 2 {
				errs = append(errs, badLine("brew", line, "expected name and version"))
				continue
			}
			pkgs = append(pkgs, manager.Package{
				ID:               fields[0],
				InstalledVersion: fields[1],
			})
		}
	case manager.OpListOutdated:
		for _, line := range lines(res.Stdout) {
			m := brewOutdatedPattern.FindStringSubmatch(line)
			if m == nil {
				errs = append(errs, badLine("brew", line, "unrecognized outdated line"))
				continue
			}
			pkgs = append(pkgs, manager.Package{
				ID:               m[1],
				InstalledVersion: m[2],
				LatestVersion:    m[3],
			})
		}
	case manager.OpSearch:
		for _, line := range lines(res.Stdout) {
			if strings.HasPrefix(line, "==>") {
				continue
			}
			for _, name := range strings.Fields(line) {
				pkgs = append(pkgs, manager.Package{ID: name})
			}
		}
	}
	return pkgs, errs
}

// lines splits text into trimmed non-empty lines.
func lines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) != "" {
			out = append(out, line)
		}
	}
	return out
}
