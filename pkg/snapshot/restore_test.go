package snapshot

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"omnipkg/pkg/manager"
)

// restoreRunner records invocations and succeeds for every binary in paths.
type restoreRunner struct {
	paths map[string]string
	calls []manager.Invocation
}

func (r *restoreRunner) Run(_ context.Context, inv manager.Invocation) (manager.ExecResult, error) {
	r.calls = append(r.calls, inv)
	return manager.ExecResult{}, nil
}

func (r *restoreRunner) LookPath(name string) (string, error) {
	if p, ok := r.paths[name]; ok {
		return p, nil
	}
	return "", fmt.Errorf("%s: not found", name)
}

// installAdapter is a minimal install-capable adapter.
type installAdapter struct {
	id     string
	canPin bool
}

func (a installAdapter) Descriptor() manager.Descriptor {
	return manager.Descriptor{
		ID:             a.id,
		Name:           a.id,
		Binary:         a.id,
		CanPinVersions: a.canPin,
		Operations:     []manager.Operation{manager.OpInstall, manager.OpListInstalled},
	}
}

func (a installAdapter) Command(op manager.Operation, args manager.Args) (manager.Invocation, error) {
	return manager.Invocation{Argv: append([]string{a.id, "install"}, args.Packages...)}, nil
}

func (a installAdapter) Parse(manager.Operation, manager.ExecResult) ([]manager.Package, []manager.AdapterError) {
	return nil, nil
}

func TestRestoreInvokesPerManager(t *testing.T) {
	runner := &restoreRunner{paths: map[string]string{"brew": "/usr/local/bin/brew", "pip": "/usr/bin/pip"}}
	reg := manager.NewRegistry(runner)
	reg.Register(installAdapter{id: "brew"})
	reg.Register(installAdapter{id: "pip", canPin: true})
	disp := manager.NewDispatcher(runner)

	snap := New("test")
	snap.set("pip", "requests", "2.31.0")
	snap.set("brew", "jq", "1.7.1")
	snap.set("brew", "fd", "9.0.0")

	reports, err := Restore(context.Background(), snap, disp, reg, manager.RunOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if len(reports) != 2 {
		t.Fatalf("got %d reports, want one per manager", len(reports))
	}
	// Sorted manager order: brew before pip.
	if reports[0].Manager != "brew" || reports[1].Manager != "pip" {
		t.Errorf("report order = [%s %s], want [brew pip]", reports[0].Manager, reports[1].Manager)
	}

	var brewCall manager.Invocation
	for _, call := range runner.calls {
		if call.Argv[0] == "brew" && len(call.Argv) > 2 {
			brewCall = call
		}
	}
	joined := strings.Join(brewCall.Argv, " ")
	if !strings.Contains(joined, "fd") || !strings.Contains(joined, "jq") {
		t.Errorf("brew install call = %v, want both packages in one invocation", brewCall.Argv)
	}
}

func TestRestoreWarnsOnUnpinnableManager(t *testing.T) {
	runner := &restoreRunner{paths: map[string]string{"brew": "/usr/local/bin/brew"}}
	reg := manager.NewRegistry(runner)
	reg.Register(installAdapter{id: "brew", canPin: false})
	disp := manager.NewDispatcher(runner)

	snap := New("test")
	snap.set("brew", "jq", "1.7.1")

	reports, err := Restore(context.Background(), snap, disp, reg, manager.RunOptions{})
	if err != nil {
		t.Fatal(err)
	}
	rep := reports[0]
	if rep.Failed {
		t.Fatalf("advisory pin must not fail the restore: %s", rep.Reason)
	}
	if len(rep.Errors) != 1 {
		t.Fatalf("got %d warnings, want 1 advisory-pin warning", len(rep.Errors))
	}
}

func TestRestoreMissingManagerReported(t *testing.T) {
	runner := &restoreRunner{paths: map[string]string{}}
	reg := manager.NewRegistry(runner)
	reg.Register(installAdapter{id: "mas"})
	disp := manager.NewDispatcher(runner)

	snap := New("test")
	snap.set("mas", "1234", "2.0")

	reports, err := Restore(context.Background(), snap, disp, reg, manager.RunOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if len(reports) != 1 || !reports[0].Failed {
		t.Fatalf("absent manager must produce a failed report: %+v", reports)
	}
	if len(runner.calls) != 0 {
		t.Error("nothing should be invoked for an absent manager")
	}
}

func TestRestoreStopOnErrorAborts(t *testing.T) {
	runner := &restoreRunner{paths: map[string]string{"pip": "/usr/bin/pip"}}
	reg := manager.NewRegistry(runner)
	reg.Register(installAdapter{id: "absent"})
	reg.Register(installAdapter{id: "pip"})
	disp := manager.NewDispatcher(runner)

	snap := New("test")
	snap.set("absent", "x", "1")
	snap.set("pip", "requests", "2.31.0")

	_, err := Restore(context.Background(), snap, disp, reg, manager.RunOptions{Policy: manager.StopOnError})
	if err == nil {
		t.Fatal("stop policy must surface the first failure")
	}
	if len(runner.calls) != 0 {
		t.Error("later managers must not run after a stop-policy failure")
	}
}
