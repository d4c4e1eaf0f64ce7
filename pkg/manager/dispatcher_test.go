package manager

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestDispatchPreservesOrder(t *testing.T) {
	runner := newFakeRunner()
	runner.results["a"] = ExecResult{Stdout: "pkg-a\n"}
	runner.results["b"] = ExecResult{Stdout: "pkg-b\n"}
	runner.results["c"] = ExecResult{Stdout: "pkg-c\n"}

	disp := NewDispatcher(runner)
	instances := []Instance{
		availableInstance(newFakeAdapter("a")),
		availableInstance(newFakeAdapter("b")),
		availableInstance(newFakeAdapter("c")),
	}

	reports, err := disp.Run(context.Background(), OpListInstalled, instances, RunOptions{Workers: 3})
	if err != nil {
		t.Fatal(err)
	}
	if len(reports) != 3 {
		t.Fatalf("got %d reports, want 3", len(reports))
	}
	for i, want := range []string{"a", "b", "c"} {
		if reports[i].Manager != want {
			t.Errorf("reports[%d].Manager = %q, want %q; output order must match input order", i, reports[i].Manager, want)
		}
	}
}

func TestDispatchUnavailableManager(t *testing.T) {
	disp := NewDispatcher(newFakeRunner())
	inst := Instance{
		Descriptor: newFakeAdapter("snap").desc,
		Adapter:    newFakeAdapter("snap"),
		Reason:     "snap not found in PATH",
	}

	reports, err := disp.Run(context.Background(), OpListInstalled, []Instance{inst}, RunOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if !reports[0].Failed {
		t.Fatal("unavailable manager must yield a failed report")
	}
	if reports[0].Reason == "" {
		t.Error("failed report must carry a reason")
	}
}

func TestDispatchUnsupportedOperation(t *testing.T) {
	a := newFakeAdapter("pip")
	a.desc.Operations = []Operation{OpListInstalled}

	runner := newFakeRunner()
	disp := NewDispatcher(runner)

	reports, err := disp.Run(context.Background(), OpSearch, []Instance{availableInstance(a)}, RunOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if !reports[0].Failed {
		t.Fatal("unsupported operation must fail as data, not invoke the backend")
	}
	if runner.callCount() != 0 {
		t.Error("backend was invoked despite unsupported operation")
	}
}

func TestDispatchCommandError(t *testing.T) {
	a := newFakeAdapter("winget")
	a.cmdErr = errors.New("installs one package per invocation")

	disp := NewDispatcher(newFakeRunner())
	reports, err := disp.Run(context.Background(), OpInstall,
		[]Instance{availableInstance(a)}, RunOptions{Args: Args{Packages: []string{"x", "y"}}})
	if err != nil {
		t.Fatal(err)
	}
	if !reports[0].Failed {
		t.Error("adapter Command error must become a failed report")
	}
}

func TestDispatchSudoAndStreamFlags(t *testing.T) {
	a := newFakeAdapter("apt")
	a.desc.RequiresSudo = true

	runner := newFakeRunner()
	disp := NewDispatcher(runner)
	inst := []Instance{availableInstance(a)}

	disp.Run(context.Background(), OpInstall, inst, RunOptions{Args: Args{Packages: []string{"jq"}}}) //nolint:errcheck
	inv := runner.lastCall()
	if !inv.Sudo {
		t.Error("mutating op on a sudo-requiring manager must set Sudo")
	}
	if !inv.Stream {
		t.Error("mutating op must stream output")
	}

	disp.Run(context.Background(), OpListInstalled, inst, RunOptions{}) //nolint:errcheck
	inv = runner.lastCall()
	if inv.Sudo {
		t.Error("read op must never set Sudo")
	}
	if inv.Stream {
		t.Error("read op must not stream")
	}
}

func TestDispatchDryRun(t *testing.T) {
	a := newFakeAdapter("brew")
	runner := newFakeRunner()
	runner.results["brew"] = ExecResult{Stdout: "should not be parsed\n"}
	disp := NewDispatcher(runner)

	reports, err := disp.Run(context.Background(), OpInstall,
		[]Instance{availableInstance(a)}, RunOptions{DryRun: true, Args: Args{Packages: []string{"jq"}}})
	if err != nil {
		t.Fatal(err)
	}
	if !runner.lastCall().DryRun {
		t.Error("invocation must carry DryRun for mutating ops")
	}
	if runner.lastCall().Stream {
		t.Error("dry-run must not stream")
	}
	if len(reports[0].Packages) != 0 {
		t.Error("dry-run output must not be parsed")
	}

	// Reads still run for real under dry-run.
	disp.Run(context.Background(), OpListInstalled, []Instance{availableInstance(a)}, RunOptions{DryRun: true}) //nolint:errcheck
	if runner.lastCall().DryRun {
		t.Error("read ops have no side effects to suppress; DryRun must not propagate")
	}
}

func TestDispatchNonZeroExit(t *testing.T) {
	a := newFakeAdapter("gem")
	runner := newFakeRunner()
	runner.results["gem"] = ExecResult{ExitCode: 2, Stderr: "boom\n"}
	disp := NewDispatcher(runner)

	reports, err := disp.Run(context.Background(), OpListInstalled,
		[]Instance{availableInstance(a)}, RunOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if !reports[0].Failed {
		t.Error("non-zero exit without a judge must fail the report")
	}
}

func TestDispatchExitJudge(t *testing.T) {
	base := newFakeAdapter("dnf")
	base.exitOK = func(op Operation, code int) bool {
		return code == 0 || (op == OpListOutdated && code == 100)
	}
	a := &judgedAdapter{base}

	runner := newFakeRunner()
	runner.results["dnf"] = ExecResult{ExitCode: 100, Stdout: "zsh\n"}
	disp := NewDispatcher(runner)

	reports, err := disp.Run(context.Background(), OpListOutdated,
		[]Instance{{Descriptor: a.Descriptor(), Adapter: a, Available: true}}, RunOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if reports[0].Failed {
		t.Fatalf("exit 100 accepted by judge must not fail: %s", reports[0].Reason)
	}
	if len(reports[0].Packages) != 1 {
		t.Errorf("got %d packages, want 1", len(reports[0].Packages))
	}
}

func TestDispatchStopOnErrorTruncates(t *testing.T) {
	runner := newFakeRunner()
	runner.results["a"] = ExecResult{Stdout: "ok\n"}
	runner.errs["b"] = errors.New("spawn failed")
	runner.results["c"] = ExecResult{Stdout: "never\n"}

	disp := NewDispatcher(runner)
	instances := []Instance{
		availableInstance(newFakeAdapter("a")),
		availableInstance(newFakeAdapter("b")),
		availableInstance(newFakeAdapter("c")),
	}

	reports, err := disp.Run(context.Background(), OpListInstalled, instances,
		RunOptions{Policy: StopOnError})

	var fatal *FatalFailure
	if !errors.As(err, &fatal) {
		t.Fatalf("err = %v, want *FatalFailure", err)
	}
	if fatal.Manager != "b" {
		t.Errorf("FatalFailure.Manager = %q, want b", fatal.Manager)
	}
	if len(reports) != 2 {
		t.Fatalf("got %d reports, want 2 (truncated after failure)", len(reports))
	}
	if reports[0].Failed || !reports[1].Failed {
		t.Error("completed report order wrong: want [ok, failed]")
	}
	if runner.callCount() != 2 {
		t.Errorf("backend invoked %d times, want 2; c must never run", runner.callCount())
	}
}

func TestDispatchContinueOnError(t *testing.T) {
	runner := newFakeRunner()
	runner.results["a"] = ExecResult{Stdout: "ok\n"}
	runner.errs["b"] = errors.New("spawn failed")
	runner.results["c"] = ExecResult{Stdout: "still runs\n"}

	disp := NewDispatcher(runner)
	instances := []Instance{
		availableInstance(newFakeAdapter("a")),
		availableInstance(newFakeAdapter("b")),
		availableInstance(newFakeAdapter("c")),
	}

	reports, err := disp.Run(context.Background(), OpListInstalled, instances, RunOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if len(reports) != 3 {
		t.Fatalf("got %d reports, want all 3 under continue policy", len(reports))
	}
	if reports[0].Failed || !reports[1].Failed || reports[2].Failed {
		t.Errorf("failure pattern = [%v %v %v], want [false true false]",
			reports[0].Failed, reports[1].Failed, reports[2].Failed)
	}
}

func TestDispatchNormalizesNoisyOutput(t *testing.T) {
	a := newFakeAdapter("apt")
	runner := newFakeRunner()
	runner.results["apt"] = ExecResult{Stdout: "jq\n!WARNING: apt does not have a stable CLI\ncurl\n"}
	disp := NewDispatcher(runner)

	reports, err := disp.Run(context.Background(), OpListInstalled,
		[]Instance{availableInstance(a)}, RunOptions{})
	if err != nil {
		t.Fatal(err)
	}
	rep := reports[0]
	if rep.Failed {
		t.Fatalf("noisy lines must not fail the report: %s", rep.Reason)
	}
	if len(rep.Packages) != 2 {
		t.Errorf("got %d packages, want 2 parsed around the noise", len(rep.Packages))
	}
	if len(rep.Errors) != 1 {
		t.Fatalf("got %d adapter errors, want 1", len(rep.Errors))
	}
	if rep.Errors[0].Manager != "apt" {
		t.Errorf("adapter error Manager = %q, want stamped with apt", rep.Errors[0].Manager)
	}
	for _, p := range rep.Packages {
		if p.Manager != "apt" {
			t.Errorf("package %s Manager = %q, want apt", p.ID, p.Manager)
		}
	}
}

func TestDispatchInvalidOperation(t *testing.T) {
	disp := NewDispatcher(newFakeRunner())
	if _, err := disp.Run(context.Background(), Operation("explode"), nil, RunOptions{}); err == nil {
		t.Error("invalid operation must be rejected")
	}
}

func TestDispatchSyncElevatesSudo(t *testing.T) {
	a := newFakeAdapter("apt")
	a.desc.RequiresSudo = true
	runner := newFakeRunner()
	disp := NewDispatcher(runner)

	disp.Run(context.Background(), OpSync, []Instance{availableInstance(a)}, RunOptions{}) //nolint:errcheck
	if !runner.lastCall().Sudo {
		t.Error("sync rewrites root-owned caches; sudo-requiring managers must elevate")
	}

	b := newFakeAdapter("brew")
	disp.Run(context.Background(), OpSync, []Instance{availableInstance(b)}, RunOptions{}) //nolint:errcheck
	if runner.lastCall().Sudo {
		t.Error("sync must not elevate managers that do not require sudo")
	}
}

// stallingRunner blocks named binaries until the context expires.
type stallingRunner struct {
	*fakeRunner
	stall map[string]bool
}

func (s *stallingRunner) Run(ctx context.Context, inv Invocation) (ExecResult, error) {
	if len(inv.Argv) > 0 && s.stall[inv.Argv[0]] {
		<-ctx.Done()
		return ExecResult{}, ctx.Err()
	}
	return s.fakeRunner.Run(ctx, inv)
}

func TestDispatchRunTimeout(t *testing.T) {
	base := newFakeRunner()
	base.results["brew"] = ExecResult{Stdout: "jq\n"}
	runner := &stallingRunner{fakeRunner: base, stall: map[string]bool{"snap": true}}
	disp := NewDispatcher(runner)

	reports, err := disp.Run(context.Background(), OpListInstalled,
		[]Instance{
			availableInstance(newFakeAdapter("snap")),
			availableInstance(newFakeAdapter("brew")),
		},
		RunOptions{Timeout: 20 * time.Millisecond})
	if err != nil {
		t.Fatal(err)
	}
	if !reports[0].Failed || !strings.Contains(reports[0].Reason, "timed out") {
		t.Errorf("stalled report = %+v, want a timeout failure", reports[0])
	}
	if reports[1].Failed {
		t.Errorf("fast manager failed: %s", reports[1].Reason)
	}
	if len(reports[1].Packages) != 1 {
		t.Errorf("fast manager packages = %+v, want the parsed result", reports[1].Packages)
	}
}
