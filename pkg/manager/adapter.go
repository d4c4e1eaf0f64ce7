package manager

import "context"

// Args carries the operation parameters handed through to adapters unchanged.
type Args struct {
	// Packages are the targets of install/upgrade. Empty for upgrade means
	// "upgrade everything".
	Packages []string
	// Query is the search term for OpSearch.
	Query string
	// Pins maps package id to an advisory version for install. Adapters
	// whose descriptor declares CanPinVersions honor it; others ignore it
	// and install latest.
	Pins map[string]string
}

// Invocation is the argument vector an adapter builds for one operation.
// Adapters never execute anything themselves; the dispatcher owns the
// subprocess lifecycle.
type Invocation struct {
	// Argv is the full command line, binary first.
	Argv []string
	// Env lists extra environment overrides in KEY=VALUE form.
	Env []string
	// Sudo requests privilege elevation for this invocation.
	Sudo bool
	// DryRun previews the invocation without running it. Set by the
	// dispatcher, not by adapters.
	DryRun bool
	// Stream mirrors the subprocess output to the terminal while it is
	// captured, so interactive installs stay visible. Set by the
	// dispatcher for mutating operations.
	Stream bool
}

// ExecResult captures a finished invocation's output for parsing.
type ExecResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Adapter is the capability contract every backend must satisfy. Both methods
// are pure: Command builds a command line, Parse maps captured output to
// canonical records. A line Parse cannot understand becomes an AdapterError,
// never an abort of the remaining output.
type Adapter interface {
	// Descriptor returns the static metadata for this backend.
	Descriptor() Descriptor

	// Command builds the invocation for op. Returning an error means the
	// arguments were unusable for this backend; the operation set itself is
	// checked by the dispatcher against the descriptor beforehand.
	Command(op Operation, args Args) (Invocation, error)

	// Parse maps the captured output of a finished invocation to canonical
	// packages plus per-line errors.
	Parse(op Operation, res ExecResult) ([]Package, []AdapterError)
}

// ExitJudge is an optional adapter interface for backends whose CLIs use
// non-zero exit codes as ordinary signalling (dnf check-update exits 100 when
// updates exist). The dispatcher treats only exit codes rejected by ExitOK as
// fatal.
type ExitJudge interface {
	ExitOK(op Operation, code int) bool
}

// Runner executes invocations on behalf of the registry and dispatcher.
// Implemented by internal/executor; tests substitute fakes.
type Runner interface {
	// Run executes the invocation and captures its output. The returned
	// error covers spawn failures and context cancellation; a non-zero exit
	// is reported through ExecResult, not through the error.
	Run(ctx context.Context, inv Invocation) (ExecResult, error)

	// LookPath resolves a binary on the search path.
	LookPath(name string) (string, error)
}
