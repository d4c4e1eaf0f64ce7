package adapters

import (
	"strings"

	"omnipkg/pkg/manager"
)

// VSCode adapts Visual Studio Code's extension manager.
type VSCode struct{}

func (VSCode) Descriptor() manager.Descriptor {
	return manager.Descriptor{
		ID:             "vscode",
		Name:           "VS Code extensions",
		Binary:         "code",
		VersionQuery:   []string{"--version"},
		Platforms:      []string{"linux", "darwin", "windows"},
		CanPinVersions: true,
		Operations: []manager.Operation{
			manager.OpListInstalled, manager.OpInstall, manager.OpUpgrade,
		},
	}
}

func (VSCode) Command(op manager.Operation, args manager.Args) (manager.Invocation, error) {
	switch op {
	case manager.OpListInstalled:
		return argv("code", "--list-extensions", "--show-versions"), nil
	case manager.OpInstall:
		cmd := []string{"code"}
		for _, ext := range args.Packages {
			if v := args.Pins[ext]; v != "" {
				ext += "@" + v
			}
			cmd = append(cmd, "--install-extension", ext)
		}
		return argv(cmd...), nil
	case manager.OpUpgrade:
		return argv("code", "--update-extensions"), nil
	}
	return errOp("vscode", op)
}

func (VSCode) Parse(op manager.Operation, res manager.ExecResult) ([]manager.Package, []manager.AdapterError) {
	var pkgs []manager.Package
	var errs []manager.AdapterError

	if op == manager.OpListInstalled {
		// One "publisher.extension@1.2.3" per line.
		for _, line := range lines(res.Stdout) {
			name, version, ok := strings.Cut(line, "@")
			if !ok {
				errs = append(errs, badLine("vscode", line, "expected 'extension@version'"))
				continue
			}
			pkgs = append(pkgs, manager.Package{
				ID:               name,
				InstalledVersion: version,
			})
		}
	}
	return pkgs, errs
}
