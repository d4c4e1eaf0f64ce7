package manager

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// Policy controls how a run reacts to a fatal per-manager failure.
type Policy int

const (
	// ContinueOnError records the failure on that manager's report and
	// keeps going. Default for aggregate read operations.
	ContinueOnError Policy = iota
	// StopOnError aborts the remaining managers after the first fatal
	// failure and returns the partial report list plus a FatalFailure.
	StopOnError
)

func (p Policy) String() string {
	if p == StopOnError {
		return "stop-on-error"
	}
	return "continue-on-error"
}

// DefaultWorkers bounds the pool used for concurrent read operations.
const DefaultWorkers = 4

// RunOptions tunes one dispatch run.
type RunOptions struct {
	Policy Policy
	// DryRun previews mutating invocations without executing them. Read
	// operations still run; they have no side effects to suppress.
	DryRun bool
	// Timeout is the run-wide deadline. Zero means no deadline.
	Timeout time.Duration
	// Workers bounds the pool for concurrent read operations; zero means
	// DefaultWorkers.
	Workers int
	// Args is handed through to each adapter unchanged.
	Args Args
}

// Dispatcher executes one logical operation across a list of instances. It is
// the sole owner of adapter subprocess lifecycles.
type Dispatcher struct {
	runner Runner
}

// NewDispatcher creates a dispatcher backed by the given runner.
func NewDispatcher(runner Runner) *Dispatcher {
	return &Dispatcher{runner: runner}
}

// Run invokes op on every instance in order. The returned slice always has
// report[i].Manager == instances[i].ID() for every report present, regardless
// of subprocess completion order: results are buffered by slot.
//
// Read operations under ContinueOnError run on a bounded worker pool; mutating
// operations and any StopOnError run are strictly sequential in the given
// order. Under StopOnError the first fatal failure truncates the list (the
// failed report is last, later instances are never invoked) and a
// *FatalFailure is returned.
func (d *Dispatcher) Run(ctx context.Context, op Operation, instances []Instance, opts RunOptions) ([]Report, error) {
	if !op.Valid() {
		return nil, fmt.Errorf("invalid operation: %s", op)
	}
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	if op.Mutating() || opts.Policy == StopOnError {
		return d.runSequential(ctx, op, instances, opts)
	}
	return d.runConcurrent(ctx, op, instances, opts), nil
}

func (d *Dispatcher) runSequential(ctx context.Context, op Operation, instances []Instance, opts RunOptions) ([]Report, error) {
	reports := make([]Report, 0, len(instances))
	for _, inst := range instances {
		rep := d.runOne(ctx, op, inst, opts)
		reports = append(reports, rep)
		if rep.Failed && opts.Policy == StopOnError {
			return reports, &FatalFailure{Manager: rep.Manager, Reason: rep.Reason}
		}
	}
	return reports, nil
}

func (d *Dispatcher) runConcurrent(ctx context.Context, op Operation, instances []Instance, opts RunOptions) []Report {
	workers := opts.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}
	reports := make([]Report, len(instances))
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup
	for i, inst := range instances {
		wg.Add(1)
		go func(slot int, inst Instance) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			reports[slot] = d.runOne(ctx, op, inst, opts)
		}(i, inst)
	}
	wg.Wait()
	return reports
}

// runOne performs a single adapter invocation and normalizes its output.
// Every failure mode ends up as data on the report.
func (d *Dispatcher) runOne(ctx context.Context, op Operation, inst Instance, opts RunOptions) Report {
	id := inst.ID()
	desc := inst.Descriptor

	if !inst.Available {
		return failedReport(id, "not available: "+inst.Reason)
	}
	// Capability is declared up front on the descriptor and checked here,
	// not discovered by attempting the call.
	if !desc.Supports(op) {
		return failedReport(id, fmt.Sprintf("operation %s not supported", op))
	}
	if inst.Adapter == nil {
		return failedReport(id, "no adapter bound")
	}

	inv, err := inst.Adapter.Command(op, opts.Args)
	if err != nil {
		return failedReport(id, fmt.Sprintf("building %s command: %v", op, err))
	}
	// Sync rewrites root-owned index caches, so it elevates like a mutation.
	if desc.RequiresSudo && (op.Mutating() || op == OpSync) {
		inv.Sudo = true
	}
	inv.DryRun = opts.DryRun && op.Mutating()
	inv.Stream = op.Mutating() && !inv.DryRun

	start := time.Now()
	res, err := d.runner.Run(ctx, inv)
	elapsed := time.Since(start)

	if err != nil {
		reason := fmt.Sprintf("%s failed: %v", op, err)
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			reason = fmt.Sprintf("%s timed out after %s", op, opts.Timeout)
		}
		rep := failedReport(id, reason)
		rep.Duration = elapsed
		return rep
	}
	if !exitOK(inst.Adapter, op, res.ExitCode) {
		rep := failedReport(id, fmt.Sprintf("%s exited with status %d: %s", op, res.ExitCode, firstLine(res.Stderr)))
		rep.Duration = elapsed
		return rep
	}

	rep := Report{Manager: id, Duration: elapsed}
	if !inv.DryRun {
		pkgs, errs := inst.Adapter.Parse(op, res)
		rep.Packages, rep.Errors = normalize(id, pkgs, errs)
	}
	return rep
}

func exitOK(a Adapter, op Operation, code int) bool {
	if j, ok := a.(ExitJudge); ok {
		return j.ExitOK(op, code)
	}
	return code == 0
}
