// Package adapters ships the backend shims bundled with omnipkg. Every
// adapter is a pure translation layer: it builds command lines and parses
// captured output, and never executes anything itself.
package adapters

import (
	"fmt"

	"omnipkg/pkg/manager"
)

// All returns one instance of every bundled adapter, in the order they are
// registered by default.
func All() []manager.Adapter {
	return []manager.Adapter{
		Pacman{},
		Yay{},
		APT{},
		DNF{},
		Zypper{},
		APK{},
		Brew{},
		Flatpak{},
		Snap{},
		MAS{},
		Winget{},
		Pip{},
		NPM{},
		Cargo{},
		Gem{},
		VSCode{},
	}
}

// Register registers every bundled adapter on the registry.
func Register(reg *manager.Registry) {
	for _, a := range All() {
		reg.Register(a)
	}
}

func argv(parts ...string) manager.Invocation {
	return manager.Invocation{Argv: parts}
}

func errOp(id string, op manager.Operation) (manager.Invocation, error) {
	return manager.Invocation{}, fmt.Errorf("%s: no command for operation %s", id, op)
}

func badLine(id, line, msg string) manager.AdapterError {
	return manager.AdapterError{Manager: id, Line: line, Msg: msg}
}

// pinOne returns the pinned version for the single-target case: managers
// whose CLIs take one version flag per invocation can only honor a pin when
// exactly one package with a pin is requested.
func pinOne(args manager.Args) string {
	if len(args.Packages) != 1 {
		return ""
	}
	return args.Pins[args.Packages[0]]
}
