package adapters

import (
	"errors"
	"strings"

	"omnipkg/pkg/manager"
)

// Winget adapts the Windows Package Manager. Winget prints fixed-width
// tables meant for humans; parsing keeps the id and version columns and
// records anything narrower as a malformed line.
type Winget struct{}

func (Winget) Descriptor() manager.Descriptor {
	return manager.Descriptor{
		ID:             "winget",
		Name:           "Windows Package Manager",
		Binary:         "winget",
		VersionQuery:   []string{"--version"},
		Platforms:      []string{"windows"},
		MinVersion:     manager.Version{Major: 1},
		CanPinVersions: true,
		Operations: []manager.Operation{
			manager.OpSync, manager.OpListInstalled, manager.OpListOutdated,
			manager.OpSearch, manager.OpInstall, manager.OpUpgrade, manager.OpCleanup,
		},
	}
}

func (Winget) Command(op manager.Operation, args manager.Args) (manager.Invocation, error) {
	switch op {
	case manager.OpSync:
		return argv("winget", "source", "update"), nil
	case manager.OpListInstalled:
		return argv("winget", "list", "--disable-interactivity"), nil
	case manager.OpListOutdated:
		return argv("winget", "upgrade", "--disable-interactivity"), nil
	case manager.OpSearch:
		return argv("winget", "search", "--disable-interactivity", args.Query), nil
	case manager.OpInstall:
		// Winget installs one package per invocation.
		if len(args.Packages) != 1 {
			return manager.Invocation{}, errors.New("winget installs one package per invocation")
		}
		cmd := []string{"winget", "install", "--exact", "--id", args.Packages[0],
			"--accept-package-agreements", "--accept-source-agreements"}
		if v := pinOne(args); v != "" {
			cmd = append(cmd, "--version", v)
		}
		return argv(cmd...), nil
	case manager.OpUpgrade:
		if len(args.Packages) > 0 {
			cmd := append([]string{"winget", "upgrade"}, args.Packages...)
			return argv(cmd...), nil
		}
		return argv("winget", "upgrade", "--all", "--accept-package-agreements", "--accept-source-agreements"), nil
	case manager.OpCleanup:
		return argv("winget", "source", "reset", "--force"), nil
	}
	return errOp("winget", op)
}

func (Winget) Parse(op manager.Operation, res manager.ExecResult) ([]manager.Package, []manager.AdapterError) {
	var pkgs []manager.Package
	var errs []manager.AdapterError

	switch op {
	case manager.OpListInstalled, manager.OpListOutdated, manager.OpSearch:
		inBody := false
		for _, line := range lines(res.Stdout) {
			if strings.HasPrefix(line, "---") {
				inBody = true
				continue
			}
			if !inBody || strings.HasPrefix(line, "No installed package") {
				continue
			}
			fields := strings.Fields(line)
			want := 3 // name... id version
			if op == manager.OpListOutdated {
				want = 5 // name... id installed available source
			}
			if len(fields) < want {
				errs = append(errs, badLine("winget", line, "unrecognized table row"))
				continue
			}
			var pkg manager.Package
			if op == manager.OpListOutdated {
				pkg = manager.Package{
					ID:               fields[len(fields)-4],
					Name:             strings.Join(fields[:len(fields)-4], " "),
					InstalledVersion: fields[len(fields)-3],
					LatestVersion:    fields[len(fields)-2],
				}
			} else {
				pkg = manager.Package{
					ID:   fields[len(fields)-2],
					Name: strings.Join(fields[:len(fields)-2], " "),
				}
				if op == manager.OpListInstalled {
					pkg.InstalledVersion = fields[len(fields)-1]
				} else {
					pkg.LatestVersion = fields[len(fields)-1]
				}
			}
			pkgs = append(pkgs, pkg)
		}
	}
	return pkgs, errs
}
