package adapters

import (
	"encoding/json"
	"errors"

	"omnipkg/pkg/manager"
)

// Pip adapts Python's pip. PyPI removed server-side CLI search, so the
// descriptor does not declare the search operation.
type Pip struct{}

func (Pip) Descriptor() manager.Descriptor {
	return manager.Descriptor{
		ID:             "pip",
		Name:           "pip (Python)",
		Binary:         "pip3",
		VersionQuery:   []string{"--version"},
		Platforms:      []string{"linux", "darwin", "windows"},
		MinVersion:     manager.Version{Major: 9},
		CanPinVersions: true,
		Operations: []manager.Operation{
			manager.OpListInstalled, manager.OpListOutdated,
			manager.OpInstall, manager.OpUpgrade, manager.OpCleanup,
		},
	}
}

func (Pip) Command(op manager.Operation, args manager.Args) (manager.Invocation, error) {
	switch op {
	case manager.OpListInstalled:
		return argv("pip3", "list", "--format=json"), nil
	case manager.OpListOutdated:
		return argv("pip3", "list", "--outdated", "--format=json"), nil
	case manager.OpInstall:
		cmd := []string{"pip3", "install"}
		for _, pkg := range args.Packages {
			if v := args.Pins[pkg]; v != "" {
				cmd = append(cmd, pkg+"=="+v)
			} else {
				cmd = append(cmd, pkg)
			}
		}
		return argv(cmd...), nil
	case manager.OpUpgrade:
		if len(args.Packages) == 0 {
			return manager.Invocation{}, errors.New("pip cannot upgrade all packages at once; name them explicitly")
		}
		return argv(append([]string{"pip3", "install", "--upgrade"}, args.Packages...)...), nil
	case manager.OpCleanup:
		return argv("pip3", "cache", "purge"), nil
	}
	return errOp("pip", op)
}

type pipRecord struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Latest  string `json:"latest_version"`
}

func (Pip) Parse(op manager.Operation, res manager.ExecResult) ([]manager.Package, []manager.AdapterError) {
	var pkgs []manager.Package
	var errs []manager.AdapterError

	switch op {
	case manager.OpListInstalled, manager.OpListOutdated:
		var records []pipRecord
		if err := json.Unmarshal([]byte(res.Stdout), &records); err != nil {
			errs = append(errs, badLine("pip", firstNonEmpty(res.Stdout), "unparsable JSON listing"))
			return nil, errs
		}
		for _, rec := range records {
			pkgs = append(pkgs, manager.Package{
				ID:               rec.Name,
				InstalledVersion: rec.Version,
				LatestVersion:    rec.Latest,
			})
		}
	}
	return pkgs, errs
}

func firstNonEmpty(text string) string {
	for _, line := range lines(text) {
		return line
	}
	return ""
}
