package cli

import (
	"fmt"
	"strings"

	"omnipkg/internal/ui"
	"omnipkg/pkg/manager"
)

// renderReports prints a unified report for a read operation. Mutating
// operations stream their own output through the executor, so they only get
// the failure footer.
func renderReports(u *manager.UnifiedReport, op manager.Operation) {
	switch op {
	case manager.OpListInstalled, manager.OpSearch:
		renderPackages(u, false)
	case manager.OpListOutdated:
		renderPackages(u, true)
	default:
		// streamed operations: nothing to tabulate
	}
	renderAdapterErrors(u)
	renderFailures(u)
	renderStats(u)
}

func renderPackages(u *manager.UnifiedReport, outdated bool) {
	if u.GroupBy == manager.GroupByPackage {
		renderFlat(u, outdated)
		return
	}
	for _, rep := range u.Reports {
		if rep.Failed || len(rep.Packages) == 0 {
			continue
		}
		fmt.Printf("%s %s (%d)\n", ui.Header.Sprint("=="), ui.ManagerID.Sprint(rep.Manager), len(rep.Packages))
		tbl := packageTable(outdated)
		for _, pkg := range rep.Packages {
			addPackageRow(tbl, pkg, outdated)
		}
		tbl.Render()
		fmt.Println()
	}
}

func renderFlat(u *manager.UnifiedReport, outdated bool) {
	pkgs := u.Packages()
	if len(pkgs) == 0 {
		return
	}
	tbl := packageTable(outdated)
	for _, pkg := range pkgs {
		addPackageRow(tbl, pkg, outdated)
	}
	tbl.Render()
}

func packageTable(outdated bool) *ui.Table {
	if outdated {
		return ui.NewTable([]string{"package", "installed", "latest", "manager"})
	}
	return ui.NewTable([]string{"package", "version", "manager", "description"})
}

func addPackageRow(t *ui.Table, pkg manager.Package, outdated bool) {
	name := ui.PackageName.Sprint(pkg.ID)
	mgr := ui.ManagerID.Sprint(pkg.Manager)
	if outdated {
		t.AddRow([]string{name, pkg.InstalledVersion, ui.PackageVersion.Sprint(pkg.LatestVersion), mgr})
		return
	}
	t.AddRow([]string{name, ui.PackageVersion.Sprint(pkg.InstalledVersion), mgr, truncate(pkg.Description, 72)})
}

// truncate shortens s to at most max runes, so multi-byte descriptions are
// never cut mid-rune.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}

func renderAdapterErrors(u *manager.UnifiedReport) {
	errs := u.AdapterErrors()
	if len(errs) == 0 {
		return
	}
	if !cfg.Output.Verbose {
		ui.WarningMsg("%d line(s) could not be parsed (run with -v for details)", len(errs))
		return
	}
	for _, e := range errs {
		if e.Line != "" {
			ui.WarningMsg("%s: %s: %q", e.Manager, e.Msg, e.Line)
		} else {
			ui.WarningMsg("%s: %s", e.Manager, e.Msg)
		}
	}
}

func renderFailures(u *manager.UnifiedReport) {
	for _, rep := range u.FailedManagers() {
		ui.ErrorMsg("%s: %s", rep.Manager, rep.Reason)
	}
}

func renderStats(u *manager.UnifiedReport) {
	if !cfg.Output.Verbose {
		return
	}
	parts := make([]string, 0, 4)
	parts = append(parts, fmt.Sprintf("%d package(s) from %d manager(s)", u.Stats.Total, len(u.Stats.PerManager)))
	if u.Stats.FailedManagers > 0 {
		parts = append(parts, fmt.Sprintf("%d failed", u.Stats.FailedManagers))
	}
	if u.Stats.EmptyManagers > 0 {
		parts = append(parts, fmt.Sprintf("%d empty", u.Stats.EmptyManagers))
	}
	if u.Stats.Suppressed > 0 {
		parts = append(parts, fmt.Sprintf("%d redundant report(s) suppressed", u.Stats.Suppressed))
	}
	ui.InfoMsg("%s", strings.Join(parts, ", "))
}

func renderDuplicates(u *manager.UnifiedReport) {
	groups := u.Duplicates()
	if len(groups) == 0 {
		ui.InfoMsg("no packages installed under more than one manager")
		return
	}
	tbl := ui.NewTable([]string{"package", "managers"})
	for _, g := range groups {
		seen := make(map[string]bool, len(g.Packages))
		var managers []string
		for _, p := range g.Packages {
			if !seen[p.Manager] {
				seen[p.Manager] = true
				managers = append(managers, p.Manager)
			}
		}
		tbl.AddRow([]string{ui.PackageName.Sprint(g.ID), strings.Join(managers, ", ")})
	}
	tbl.Render()
}
