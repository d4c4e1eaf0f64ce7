package adapters

import (
	"encoding/json"
	"sort"

	"omnipkg/pkg/manager"
)

// NPM adapts npm's global package space.
type NPM struct{}

func (NPM) Descriptor() manager.Descriptor {
	return manager.Descriptor{
		ID:             "npm",
		Name:           "npm (Node.js)",
		Binary:         "npm",
		VersionQuery:   []string{"--version"},
		Platforms:      []string{"linux", "darwin", "windows"},
		MinVersion:     manager.Version{Major: 6},
		CanPinVersions: true,
		Operations: []manager.Operation{
			manager.OpListInstalled, manager.OpListOutdated, manager.OpSearch,
			manager.OpInstall, manager.OpUpgrade, manager.OpCleanup,
		},
	}
}

func (NPM) Command(op manager.Operation, args manager.Args) (manager.Invocation, error) {
	switch op {
	case manager.OpListInstalled:
		return argv("npm", "ls", "-g", "--depth=0", "--json"), nil
	case manager.OpListOutdated:
		return argv("npm", "outdated", "-g", "--json"), nil
	case manager.OpSearch:
		return argv("npm", "search", "--json", args.Query), nil
	case manager.OpInstall:
		cmd := []string{"npm", "install", "-g"}
		for _, pkg := range args.Packages {
			if v := args.Pins[pkg]; v != "" {
				cmd = append(cmd, pkg+"@"+v)
			} else {
				cmd = append(cmd, pkg)
			}
		}
		return argv(cmd...), nil
	case manager.OpUpgrade:
		return argv(append([]string{"npm", "update", "-g"}, args.Packages...)...), nil
	case manager.OpCleanup:
		return argv("npm", "cache", "clean", "--force"), nil
	}
	return errOp("npm", op)
}

// ExitOK accepts npm outdated exiting 1, which means outdated packages exist.
func (NPM) ExitOK(op manager.Operation, code int) bool {
	if op == manager.OpListOutdated {
		return code == 0 || code == 1
	}
	return code == 0
}

func (NPM) Parse(op manager.Operation, res manager.ExecResult) ([]manager.Package, []manager.AdapterError) {
	var pkgs []manager.Package
	var errs []manager.AdapterError

	switch op {
	case manager.OpListInstalled:
		var doc struct {
			Dependencies map[string]struct {
				Version string `json:"version"`
			} `json:"dependencies"`
		}
		if err := json.Unmarshal([]byte(res.Stdout), &doc); err != nil {
			return nil, append(errs, badLine("npm", firstNonEmpty(res.Stdout), "unparsable JSON listing"))
		}
		for name, dep := range doc.Dependencies {
			pkgs = append(pkgs, manager.Package{ID: name, InstalledVersion: dep.Version})
		}
	case manager.OpListOutdated:
		var doc map[string]struct {
			Current string `json:"current"`
			Latest  string `json:"latest"`
		}
		if err := json.Unmarshal([]byte(res.Stdout), &doc); err != nil {
			return nil, append(errs, badLine("npm", firstNonEmpty(res.Stdout), "unparsable JSON listing"))
		}
		for name, dep := range doc {
			pkgs = append(pkgs, manager.Package{
				ID:               name,
				InstalledVersion: dep.Current,
				LatestVersion:    dep.Latest,
			})
		}
	case manager.OpSearch:
		var docs []struct {
			Name        string `json:"name"`
			Version     string `json:"version"`
			Description string `json:"description"`
		}
		if err := json.Unmarshal([]byte(res.Stdout), &docs); err != nil {
			return nil, append(errs, badLine("npm", firstNonEmpty(res.Stdout), "unparsable JSON search result"))
		}
		for _, d := range docs {
			pkgs = append(pkgs, manager.Package{
				ID:            d.Name,
				LatestVersion: d.Version,
				Description:   d.Description,
			})
		}
	}

	// JSON maps iterate in random order; keep listings stable.
	sort.Slice(pkgs, func(i, j int) bool { return pkgs[i].ID < pkgs[j].ID })
	return pkgs, errs
}
