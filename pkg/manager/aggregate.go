package manager

import "sort"

// GroupBy selects the primary grouping of the unified package view.
type GroupBy string

const (
	GroupByManager GroupBy = "manager"
	GroupByPackage GroupBy = "package"
)

// AggregateOptions tunes how per-manager reports merge into one view.
type AggregateOptions struct {
	GroupBy GroupBy
	// DedupeRedundant suppresses rows of a superseded manager that also
	// appear, by package id, under a manager superseding it.
	DedupeRedundant bool
	// Supersedes is the redundant-manager relation, superseding id to
	// superseded ids. Usually Registry.Supersedes().
	Supersedes map[string][]string
}

// Stats are the derived statistics of a unified report.
type Stats struct {
	// PerManager counts packages per manager id (failed managers excluded).
	PerManager map[string]int `json:"per_manager"`
	// Total is the overall package count after suppression.
	Total int `json:"total"`
	// EmptyManagers counts managers that succeeded with zero packages.
	EmptyManagers int `json:"empty_managers"`
	// FailedManagers counts managers that failed entirely.
	FailedManagers int `json:"failed_managers"`
	// Suppressed counts rows dropped by redundant-manager deduplication.
	Suppressed int `json:"suppressed"`
}

// DuplicateGroup is one package id appearing under two or more managers.
type DuplicateGroup struct {
	ID       string    `json:"id"`
	Packages []Package `json:"packages"`
}

// UnifiedReport is the aggregation of all per-manager reports for one
// operation. It lives only for the duration of one invocation.
type UnifiedReport struct {
	Reports []Report `json:"reports"`
	GroupBy GroupBy  `json:"group_by"`
	Stats   Stats    `json:"stats"`
}

// Aggregate merges per-manager reports into one unified report. Identical
// package ids under different managers stay separate rows unless redundant
// deduplication explicitly asks for suppression. Report order is preserved.
func Aggregate(reports []Report, opts AggregateOptions) *UnifiedReport {
	if opts.GroupBy == "" {
		opts.GroupBy = GroupByManager
	}

	out := &UnifiedReport{GroupBy: opts.GroupBy}
	out.Reports = append(out.Reports, reports...)

	if opts.DedupeRedundant && len(opts.Supersedes) > 0 {
		out.Stats.Suppressed = suppressRedundant(out.Reports, opts.Supersedes)
	}

	out.Stats.PerManager = make(map[string]int, len(out.Reports))
	for _, rep := range out.Reports {
		if rep.Failed {
			out.Stats.FailedManagers++
			continue
		}
		out.Stats.PerManager[rep.Manager] = len(rep.Packages)
		out.Stats.Total += len(rep.Packages)
		if len(rep.Packages) == 0 {
			out.Stats.EmptyManagers++
		}
	}
	return out
}

// suppressRedundant drops rows of superseded managers that a superseding
// manager also reports, and returns the number of dropped rows. Suppression
// runs in report order; when several managers supersede the same one, any of
// them suppresses the row, once.
func suppressRedundant(reports []Report, supersedes map[string][]string) int {
	// Package-id sets of the superseding managers present in this run.
	idsOf := make(map[string]map[string]bool)
	for _, rep := range reports {
		if _, ok := supersedes[rep.Manager]; !ok || rep.Failed {
			continue
		}
		set := make(map[string]bool, len(rep.Packages))
		for _, p := range rep.Packages {
			set[p.ID] = true
		}
		idsOf[rep.Manager] = set
	}

	// Superseded manager id -> union of ids claimed by its supersessors.
	claimed := make(map[string]map[string]bool)
	for superseder, list := range supersedes {
		set, ok := idsOf[superseder]
		if !ok {
			continue
		}
		for _, superseded := range list {
			if claimed[superseded] == nil {
				claimed[superseded] = make(map[string]bool)
			}
			for id := range set {
				claimed[superseded][id] = true
			}
		}
	}

	suppressed := 0
	for i := range reports {
		set, ok := claimed[reports[i].Manager]
		if !ok || reports[i].Failed {
			continue
		}
		// Fresh slice: the input reports share backing arrays with the
		// caller and must survive aggregation untouched.
		kept := make([]Package, 0, len(reports[i].Packages))
		for _, p := range reports[i].Packages {
			if set[p.ID] {
				suppressed++
				continue
			}
			kept = append(kept, p)
		}
		reports[i].Packages = kept
	}
	return suppressed
}

// Packages returns the flat package list in report order.
func (u *UnifiedReport) Packages() []Package {
	var out []Package
	for _, rep := range u.Reports {
		out = append(out, rep.Packages...)
	}
	return out
}

// ByManager returns successful reports keyed by manager id.
func (u *UnifiedReport) ByManager() map[string][]Package {
	out := make(map[string][]Package)
	for _, rep := range u.Reports {
		if !rep.Failed {
			out[rep.Manager] = rep.Packages
		}
	}
	return out
}

// FailedManagers returns the reports of managers that failed entirely, in
// report order.
func (u *UnifiedReport) FailedManagers() []Report {
	var out []Report
	for _, rep := range u.Reports {
		if rep.Failed {
			out = append(out, rep)
		}
	}
	return out
}

// AdapterErrors returns every non-fatal per-line error across all reports.
func (u *UnifiedReport) AdapterErrors() []AdapterError {
	var out []AdapterError
	for _, rep := range u.Reports {
		out = append(out, rep.Errors...)
	}
	return out
}

// Duplicates groups packages by id across managers and returns only the
// groups claimed by two or more distinct managers, sorted by id.
func (u *UnifiedReport) Duplicates() []DuplicateGroup {
	byID := make(map[string][]Package)
	for _, p := range u.Packages() {
		byID[p.ID] = append(byID[p.ID], p)
	}

	var out []DuplicateGroup
	for id, pkgs := range byID {
		managers := make(map[string]bool)
		for _, p := range pkgs {
			managers[p.Manager] = true
		}
		if len(managers) >= 2 {
			out = append(out, DuplicateGroup{ID: id, Packages: pkgs})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Succeeded reports whether at least one manager succeeded.
func (u *UnifiedReport) Succeeded() bool {
	for _, rep := range u.Reports {
		if !rep.Failed {
			return true
		}
	}
	return false
}
