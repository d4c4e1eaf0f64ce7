package adapters

import "omnipkg/pkg/manager"

// Yay adapts the yay AUR helper. Yay wraps pacman, so its package universe
// overlays pacman's; the descriptor declares the supersedes relation so
// aggregation can suppress duplicate rows on request.
type Yay struct{}

func (Yay) Descriptor() manager.Descriptor {
	return manager.Descriptor{
		ID:           "yay",
		Name:         "Yay (AUR helper)",
		Binary:       "yay",
		VersionQuery: []string{"--version"},
		Platforms:    []string{"linux"},
		Supersedes:   []string{"pacman"},
		Operations: []manager.Operation{
			manager.OpSync, manager.OpListInstalled, manager.OpListOutdated,
			manager.OpSearch, manager.OpInstall, manager.OpUpgrade, manager.OpCleanup,
		},
	}
}

func (Yay) Command(op manager.Operation, args manager.Args) (manager.Invocation, error) {
	inv, err := pacmanCommand("yay", op, args)
	if err != nil {
		return errOp("yay", op)
	}
	return inv, nil
}

func (Yay) Parse(op manager.Operation, res manager.ExecResult) ([]manager.Package, []manager.AdapterError) {
	return pacmanParse("yay", op, res)
}

// ExitOK mirrors pacman: -Qu exits 1 when nothing is outdated.
func (Yay) ExitOK(op manager.Operation, code int) bool {
	if op == manager.OpListOutdated {
		return code == 0 || code == 1
	}
	return code == 0
}
