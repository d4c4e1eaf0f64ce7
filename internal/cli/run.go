package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"omnipkg/internal/history"
	"omnipkg/internal/ui"
	"omnipkg/pkg/manager"
)

// selectOptions folds config and global flags into selection options for the
// registry. The --manager flag both restricts and reorders; config priority
// applies when the flag is absent.
func selectOptions(all bool) manager.SelectOptions {
	exclude := append([]string{}, cfg.DisabledManagers()...)
	exclude = append(exclude, excludeFlag...)
	return manager.SelectOptions{
		All:      all,
		Include:  includeFlag,
		Exclude:  exclude,
		Priority: cfg.General.Priority,
	}
}

func runOptions(args manager.Args) manager.RunOptions {
	policy := manager.ContinueOnError
	if cfg.General.StopOnError {
		policy = manager.StopOnError
	}
	return manager.RunOptions{
		Policy:  policy,
		DryRun:  cfg.General.DryRun,
		Timeout: cfg.General.Timeout.Duration,
		Workers: cfg.General.Jobs,
		Args:    args,
	}
}

// runOperation is the shared pipeline behind every verb: select managers,
// dispatch the operation, aggregate and record history. Rendering stays with
// the individual commands.
func runOperation(ctx context.Context, op manager.Operation, args manager.Args) (*manager.UnifiedReport, error) {
	instances, err := registry.Select(ctx, selectOptions(false))
	if err != nil {
		return nil, err
	}
	// An empty selection is nothing to do, not a failure.
	if len(instances) == 0 {
		ui.InfoMsg("no package managers available on this system")
		return manager.Aggregate(nil, manager.AggregateOptions{
			GroupBy: manager.GroupBy(cfg.Output.GroupBy),
		}), nil
	}

	if op.Mutating() && !cfg.General.AutoConfirm && !cfg.General.DryRun {
		if !confirmMutation(op, instances, args) {
			return nil, errors.New("aborted")
		}
	}

	reports, runErr := disp.Run(ctx, op, instances, runOptions(args))

	unified := manager.Aggregate(reports, manager.AggregateOptions{
		GroupBy:    manager.GroupBy(cfg.Output.GroupBy),
		Supersedes: registry.Supersedes(),
	})

	if op.Mutating() {
		entry := history.NewEntry(op, args.Packages, cfg.General.DryRun)
		entry.RecordReports(reports)
		recordHistory(entry)
	}

	return unified, runErr
}

func confirmMutation(op manager.Operation, instances []manager.Instance, args manager.Args) bool {
	ids := make([]string, len(instances))
	for i, inst := range instances {
		ids[i] = inst.ID()
	}
	target := "all packages"
	if len(args.Packages) > 0 {
		target = strings.Join(args.Packages, ", ")
	}
	ok, err := ui.Confirm(fmt.Sprintf("Run %s for %s via %s?", op, target, strings.Join(ids, ", ")), true)
	if err != nil {
		return false
	}
	return ok
}

func recordHistory(entry *history.Entry) {
	store, err := history.Open()
	if err != nil {
		if cfg.Output.Verbose {
			ui.WarningMsg("history unavailable: %v", err)
		}
		return
	}
	defer store.Close()
	if err := store.Save(entry); err != nil && cfg.Output.Verbose {
		ui.WarningMsg("failed to record history: %v", err)
	}
}

// exitStatus decides the command's final error. A partial failure under the
// continue policy still exits zero as long as one manager produced a report;
// total failure or a stop-policy abort is an error.
func exitStatus(u *manager.UnifiedReport, runErr error) error {
	var fatal *manager.FatalFailure
	if errors.As(runErr, &fatal) {
		return fmt.Errorf("stopped: %s failed: %s", fatal.Manager, fatal.Reason)
	}
	if runErr != nil {
		return runErr
	}
	if len(u.Reports) > 0 && !u.Succeeded() {
		return errors.New("all package managers failed")
	}
	return nil
}
