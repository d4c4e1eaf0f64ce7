package executor

import (
	"bytes"
	"context"
	"runtime"
	"strings"
	"testing"

	"omnipkg/pkg/manager"
)

func testExecutor(out *bytes.Buffer) *Executor {
	e := New(false)
	e.stdout = out
	e.stderr = out
	return e
}

func TestRunEmptyInvocation(t *testing.T) {
	e := New(false)
	if _, err := e.Run(context.Background(), manager.Invocation{}); err == nil {
		t.Error("empty argv must be rejected")
	}
}

func TestRunDryRunPrintsWithoutExecuting(t *testing.T) {
	var out bytes.Buffer
	e := testExecutor(&out)

	res, err := e.Run(context.Background(), manager.Invocation{
		Argv:   []string{"definitely-not-a-real-binary", "--flag"},
		DryRun: true,
	})
	if err != nil {
		t.Fatal(err)
	}
	if res.ExitCode != 0 || res.Stdout != "" {
		t.Errorf("dry run produced result %+v", res)
	}
	if !strings.Contains(out.String(), "[dry-run] would execute: definitely-not-a-real-binary --flag") {
		t.Errorf("dry-run preview missing: %q", out.String())
	}
}

func TestRunCapturesOutput(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("relies on sh")
	}
	var out bytes.Buffer
	e := testExecutor(&out)

	res, err := e.Run(context.Background(), manager.Invocation{
		Argv: []string{"sh", "-c", "echo hello; echo oops >&2"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(res.Stdout) != "hello" {
		t.Errorf("Stdout = %q", res.Stdout)
	}
	if strings.TrimSpace(res.Stderr) != "oops" {
		t.Errorf("Stderr = %q", res.Stderr)
	}
	if out.Len() != 0 {
		t.Errorf("non-streaming run leaked to terminal: %q", out.String())
	}
}

func TestRunNonZeroExitIsData(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("relies on sh")
	}
	e := testExecutor(&bytes.Buffer{})

	res, err := e.Run(context.Background(), manager.Invocation{
		Argv: []string{"sh", "-c", "exit 42"},
	})
	if err != nil {
		t.Fatalf("non-zero exit must not be an error: %v", err)
	}
	if res.ExitCode != 42 {
		t.Errorf("ExitCode = %d, want 42", res.ExitCode)
	}
}

func TestRunStreamMirrorsAndCaptures(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("relies on sh")
	}
	var out bytes.Buffer
	e := testExecutor(&out)

	res, err := e.Run(context.Background(), manager.Invocation{
		Argv:   []string{"sh", "-c", "echo streamed"},
		Stream: true,
	})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(res.Stdout, "streamed") {
		t.Errorf("captured Stdout = %q", res.Stdout)
	}
	if !strings.Contains(out.String(), "streamed") {
		t.Errorf("terminal mirror = %q", out.String())
	}
}

func TestRunCancelledContext(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("relies on sh")
	}
	e := testExecutor(&bytes.Buffer{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := e.Run(ctx, manager.Invocation{Argv: []string{"sh", "-c", "sleep 10"}}); err == nil {
		t.Error("cancelled context must surface as an error")
	}
}

func TestRunVerboseEchoesCommand(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("relies on sh")
	}
	var out bytes.Buffer
	e := testExecutor(&out)
	e.SetVerbose(true)

	if _, err := e.Run(context.Background(), manager.Invocation{Argv: []string{"sh", "-c", "true"}}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "executing: sh -c true") {
		t.Errorf("verbose echo missing: %q", out.String())
	}
}
