package adapters

import (
	"errors"
	"strings"

	"omnipkg/pkg/manager"
)

// Pacman adapts Arch Linux's pacman.
type Pacman struct{}

func (Pacman) Descriptor() manager.Descriptor {
	return manager.Descriptor{
		ID:           "pacman",
		Name:         "Pacman (Arch Linux)",
		Binary:       "pacman",
		VersionQuery: []string{"--version"},
		Platforms:    []string{"linux"},
		MinVersion:   manager.Version{Major: 5},
		RequiresSudo: true,
		Operations: []manager.Operation{
			manager.OpSync, manager.OpListInstalled, manager.OpListOutdated,
			manager.OpSearch, manager.OpInstall, manager.OpUpgrade, manager.OpCleanup,
		},
	}
}

func (Pacman) Command(op manager.Operation, args manager.Args) (manager.Invocation, error) {
	inv, err := pacmanCommand("pacman", op, args)
	if err != nil {
		return errOp("pacman", op)
	}
	return inv, nil
}

func (Pacman) Parse(op manager.Operation, res manager.ExecResult) ([]manager.Package, []manager.AdapterError) {
	return pacmanParse("pacman", op, res)
}

// ExitOK accepts pacman -Qu exiting 1, which means no updates, not failure.
func (Pacman) ExitOK(op manager.Operation, code int) bool {
	if op == manager.OpListOutdated {
		return code == 0 || code == 1
	}
	return code == 0
}

// pacmanCommand builds the pacman-style command line shared with AUR helpers.
func pacmanCommand(binary string, op manager.Operation, args manager.Args) (manager.Invocation, error) {
	switch op {
	case manager.OpSync:
		return argv(binary, "-Sy"), nil
	case manager.OpListInstalled:
		return argv(binary, "-Q"), nil
	case manager.OpListOutdated:
		return argv(binary, "-Qu"), nil
	case manager.OpSearch:
		return argv(binary, "-Ss", args.Query), nil
	case manager.OpInstall:
		return argv(append([]string{binary, "-S", "--noconfirm"}, args.Packages...)...), nil
	case manager.OpUpgrade:
		if len(args.Packages) > 0 {
			return argv(append([]string{binary, "-S", "--noconfirm"}, args.Packages...)...), nil
		}
		return argv(binary, "-Syu", "--noconfirm"), nil
	case manager.OpCleanup:
		return argv(binary, "-Sc", "--noconfirm"), nil
	}
	return manager.Invocation{}, errUnsupported
}

var errUnsupported = errors.New("unsupported operation")

// pacmanParse parses pacman-style output shared with AUR helpers.
func pacmanParse(id string, op manager.Operation, res manager.ExecResult) ([]manager.Package, []manager.AdapterError) {
	var pkgs []manager.Package
	var errs []manager.AdapterError

	switch op {
	case manager.OpListInstalled:
		// pacman -Q prints "name 1.2.3-1".
		for _, line := range lines(res.Stdout) {
			fields := strings.Fields(line)
			if len(fields) != 2 {
				errs = append(errs, badLine(id, line, "expected name and version"))
				continue
			}
			pkgs = append(pkgs, manager.Package{
				ID:               fields[0],
				InstalledVersion: fields[1],
			})
		}
	case manager.OpListOutdated:
		// pacman -Qu prints "name 1.0.0-1 -> 1.1.0-1".
		for _, line := range lines(res.Stdout) {
			fields := strings.Fields(line)
			if len(fields) != 4 || fields[2] != "->" {
				errs = append(errs, badLine(id, line, "unrecognized update line"))
				continue
			}
			pkgs = append(pkgs, manager.Package{
				ID:               fields[0],
				InstalledVersion: fields[1],
				LatestVersion:    fields[3],
			})
		}
	case manager.OpSearch:
		// pacman -Ss prints "repo/name 1.2.3-1" lines, each followed by an
		// indented description line.
		for _, line := range lines(res.Stdout) {
			if strings.HasPrefix(line, " ") || strings.HasPrefix(line, "\t") {
				if len(pkgs) > 0 && pkgs[len(pkgs)-1].Description == "" {
					pkgs[len(pkgs)-1].Description = strings.TrimSpace(line)
				}
				continue
			}
			fields := strings.Fields(line)
			if len(fields) < 2 {
				errs = append(errs, badLine(id, line, "unrecognized search line"))
				continue
			}
			name := fields[0]
			if idx := strings.IndexByte(name, '/'); idx >= 0 {
				name = name[idx+1:]
			}
			pkgs = append(pkgs, manager.Package{
				ID:            name,
				LatestVersion: fields[1],
			})
		}
	}
	return pkgs, errs
}
