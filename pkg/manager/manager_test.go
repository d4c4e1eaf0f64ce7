package manager

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
)

// fakeRunner is a scriptable Runner for tests. Binaries listed in paths are
// resolvable; results maps the first argv element to a canned result.
type fakeRunner struct {
	mu      sync.Mutex
	paths   map[string]string
	results map[string]ExecResult
	errs    map[string]error
	calls   []Invocation
}

func newFakeRunner() *fakeRunner {
	return &fakeRunner{
		paths:   make(map[string]string),
		results: make(map[string]ExecResult),
		errs:    make(map[string]error),
	}
}

func (f *fakeRunner) Run(_ context.Context, inv Invocation) (ExecResult, error) {
	f.mu.Lock()
	f.calls = append(f.calls, inv)
	f.mu.Unlock()

	if len(inv.Argv) == 0 {
		return ExecResult{}, errors.New("empty argv")
	}
	if err, ok := f.errs[inv.Argv[0]]; ok {
		return ExecResult{}, err
	}
	return f.results[inv.Argv[0]], nil
}

func (f *fakeRunner) LookPath(name string) (string, error) {
	if path, ok := f.paths[name]; ok {
		return path, nil
	}
	return "", fmt.Errorf("%s: executable not found", name)
}

func (f *fakeRunner) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeRunner) lastCall() Invocation {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.calls) == 0 {
		return Invocation{}
	}
	return f.calls[len(f.calls)-1]
}

// fakeAdapter is a scriptable Adapter. Its Parse splits stdout lines into
// packages named by the line text; lines starting with "!" become errors.
type fakeAdapter struct {
	desc    Descriptor
	cmdErr  error
	exitOK  func(Operation, int) bool
	argv    []string
	pkgFor  func(line string) Package
	lastOp  Operation
	lastArg Args
}

func newFakeAdapter(id string) *fakeAdapter {
	return &fakeAdapter{
		desc: Descriptor{
			ID:         id,
			Name:       strings.ToUpper(id),
			Binary:     id,
			Platforms:  nil, // all platforms
			Operations: Operations(),
		},
		argv: []string{id, "do"},
	}
}

func (a *fakeAdapter) Descriptor() Descriptor { return a.desc }

func (a *fakeAdapter) Command(op Operation, args Args) (Invocation, error) {
	a.lastOp, a.lastArg = op, args
	if a.cmdErr != nil {
		return Invocation{}, a.cmdErr
	}
	return Invocation{Argv: a.argv}, nil
}

func (a *fakeAdapter) Parse(_ Operation, res ExecResult) ([]Package, []AdapterError) {
	var pkgs []Package
	var errs []AdapterError
	for _, line := range strings.Split(strings.TrimSpace(res.Stdout), "\n") {
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "!") {
			errs = append(errs, AdapterError{Line: line, Msg: "unparsable line"})
			continue
		}
		if a.pkgFor != nil {
			pkgs = append(pkgs, a.pkgFor(line))
			continue
		}
		pkgs = append(pkgs, Package{ID: line, InstalledVersion: "1.0"})
	}
	return pkgs, errs
}

// judgedAdapter wraps fakeAdapter with an ExitJudge.
type judgedAdapter struct {
	*fakeAdapter
}

func (a *judgedAdapter) ExitOK(op Operation, code int) bool {
	if a.exitOK != nil {
		return a.exitOK(op, code)
	}
	return code == 0
}

// availableInstance builds an instance for dispatcher tests without probing.
func availableInstance(a Adapter) Instance {
	return Instance{Descriptor: a.Descriptor(), Adapter: a, Available: true}
}
