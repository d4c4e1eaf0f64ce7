// Package history records completed operation runs in BoltDB.
package history

import (
	"fmt"
	"strings"
	"time"

	"omnipkg/pkg/manager"
)

// Entry is one completed dispatch run across a set of managers.
type Entry struct {
	ID        string            `json:"id"`
	Timestamp time.Time         `json:"timestamp"`
	Operation manager.Operation `json:"operation"`
	Managers  []string          `json:"managers"`
	Targets   []string          `json:"targets,omitempty"`
	DryRun    bool              `json:"dry_run,omitempty"`
	Failed    []string          `json:"failed,omitempty"`
	Success   bool              `json:"success"`
}

// NewEntry creates an entry for a run about to be recorded.
func NewEntry(op manager.Operation, targets []string, dryRun bool) *Entry {
	return &Entry{
		ID:        time.Now().Format("20060102150405.000000"),
		Timestamp: time.Now(),
		Operation: op,
		Targets:   targets,
		DryRun:    dryRun,
	}
}

// RecordReports fills in the per-manager outcome from the dispatch result.
func (e *Entry) RecordReports(reports []manager.Report) {
	e.Managers = e.Managers[:0]
	e.Failed = e.Failed[:0]
	for _, rep := range reports {
		e.Managers = append(e.Managers, rep.Manager)
		if rep.Failed {
			e.Failed = append(e.Failed, rep.Manager)
		}
	}
	e.Success = len(e.Failed) < len(e.Managers) || len(e.Managers) == 0
}

// FormatTime returns a human-readable timestamp.
func (e *Entry) FormatTime() string {
	return e.Timestamp.Format("2006-01-02 15:04:05")
}

// Summary returns a one-line description of the run.
func (e *Entry) Summary() string {
	status := "ok"
	if len(e.Failed) > 0 {
		status = fmt.Sprintf("%d failed", len(e.Failed))
	}
	if e.DryRun {
		status += ", dry-run"
	}
	detail := ""
	if len(e.Targets) > 0 {
		detail = " " + strings.Join(e.Targets, " ")
	}
	return fmt.Sprintf("%s  %s%s on %s (%s)",
		e.FormatTime(), e.Operation, detail, strings.Join(e.Managers, ","), status)
}
