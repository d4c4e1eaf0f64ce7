package cli

import (
	"context"
	"fmt"
	"testing"

	"omnipkg/internal/config"
	"omnipkg/pkg/manager"
)

// bareRunner resolves no binaries and executes nothing.
type bareRunner struct{}

func (bareRunner) Run(context.Context, manager.Invocation) (manager.ExecResult, error) {
	return manager.ExecResult{}, fmt.Errorf("nothing to execute")
}

func (bareRunner) LookPath(name string) (string, error) {
	return "", fmt.Errorf("%s: executable not found", name)
}

func TestRunOperationEmptySelection(t *testing.T) {
	cfg = config.Default()
	registry = manager.NewRegistry(bareRunner{})
	disp = manager.NewDispatcher(bareRunner{})

	unified, err := runOperation(context.Background(), manager.OpListInstalled, manager.Args{})
	if err != nil {
		t.Fatalf("empty selection must be nothing-to-do, got error: %v", err)
	}
	if unified == nil || len(unified.Reports) != 0 || unified.Stats.Total != 0 {
		t.Errorf("unified = %+v, want an empty report", unified)
	}
	if err := exitStatus(unified, nil); err != nil {
		t.Errorf("exitStatus = %v, want success for an empty run", err)
	}
}
