// Package executor runs adapter invocations with privilege escalation and
// dry-run support. It is the only place in omnipkg that spawns subprocesses.
package executor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"omnipkg/pkg/manager"
)

// Executor implements manager.Runner on top of os/exec.
type Executor struct {
	verbose bool
	stdout  io.Writer
	stderr  io.Writer
	stdin   io.Reader
}

// New creates an executor. Verbose mode echoes every command line before it
// runs.
func New(verbose bool) *Executor {
	return &Executor{
		verbose: verbose,
		stdout:  os.Stdout,
		stderr:  os.Stderr,
		stdin:   os.Stdin,
	}
}

// SetVerbose enables or disables command echoing.
func (e *Executor) SetVerbose(verbose bool) {
	e.verbose = verbose
}

// LookPath resolves a binary on the search path.
func (e *Executor) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

// Run executes the invocation and captures its output. A non-zero exit status
// is ordinary data on the result; the returned error covers spawn failures
// and context cancellation only.
func (e *Executor) Run(ctx context.Context, inv manager.Invocation) (manager.ExecResult, error) {
	var res manager.ExecResult

	if len(inv.Argv) == 0 {
		return res, fmt.Errorf("empty invocation")
	}

	argv := inv.Argv
	if inv.Sudo && !isRoot() {
		if !hasSudo() {
			return res, ErrNoPrivileges
		}
		argv = append([]string{"sudo"}, argv...)
	}

	if inv.DryRun {
		fmt.Fprintf(e.stdout, "[dry-run] would execute: %s\n", strings.Join(argv, " "))
		return res, nil
	}

	if e.verbose {
		fmt.Fprintf(e.stdout, "executing: %s\n", strings.Join(argv, " "))
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	if len(inv.Env) > 0 {
		cmd.Env = append(os.Environ(), inv.Env...)
	}

	var stdout, stderr bytes.Buffer
	if inv.Stream {
		// Mutating operations stay visible on the terminal while their
		// output is captured for parsing.
		cmd.Stdin = e.stdin
		cmd.Stdout = io.MultiWriter(e.stdout, &stdout)
		cmd.Stderr = io.MultiWriter(e.stderr, &stderr)
	} else {
		cmd.Stdout = &stdout
		cmd.Stderr = &stderr
	}

	err := cmd.Run()
	res.Stdout = stdout.String()
	res.Stderr = stderr.String()

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && ctx.Err() == nil {
			res.ExitCode = exitErr.ExitCode()
			return res, nil
		}
		if ctx.Err() != nil {
			return res, ctx.Err()
		}
		return res, err
	}
	return res, nil
}
