package adapters

import (
	"testing"

	"omnipkg/pkg/manager"
)

func TestBrewCommandLines(t *testing.T) {
	tests := []struct {
		op   manager.Operation
		args manager.Args
		want []string
	}{
		{manager.OpSync, manager.Args{}, []string{"brew", "update"}},
		{manager.OpListInstalled, manager.Args{}, []string{"brew", "list", "--versions"}},
		{manager.OpListOutdated, manager.Args{}, []string{"brew", "outdated", "--verbose"}},
		{manager.OpSearch, manager.Args{Query: "ripgrep"}, []string{"brew", "search", "ripgrep"}},
		{manager.OpInstall, manager.Args{Packages: []string{"jq", "fd"}}, []string{"brew", "install", "jq", "fd"}},
		{manager.OpUpgrade, manager.Args{}, []string{"brew", "upgrade"}},
		{manager.OpCleanup, manager.Args{}, []string{"brew", "cleanup"}},
	}

	for _, tt := range tests {
		inv, err := Brew{}.Command(tt.op, tt.args)
		if err != nil {
			t.Errorf("Command(%s) error: %v", tt.op, err)
			continue
		}
		if len(inv.Argv) != len(tt.want) {
			t.Errorf("Command(%s) = %v, want %v", tt.op, inv.Argv, tt.want)
			continue
		}
		for i := range tt.want {
			if inv.Argv[i] != tt.want[i] {
				t.Errorf("Command(%s) = %v, want %v", tt.op, inv.Argv, tt.want)
				break
			}
		}
	}
}

func TestBrewParseInstalled(t *testing.T) {
	out := "jq 1.7.1\nripgrep 14.1.0 13.0.0\n\n"
	pkgs, errs := Brew{}.Parse(manager.OpListInstalled, manager.ExecResult{Stdout: out})
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(pkgs) != 2 {
		t.Fatalf("got %d packages, want 2", len(pkgs))
	}
	if pkgs[0].ID != "jq" || pkgs[0].InstalledVersion != "1.7.1" {
		t.Errorf("pkgs[0] = %+v", pkgs[0])
	}
	if pkgs[1].ID != "ripgrep" || pkgs[1].InstalledVersion != "14.1.0" {
		t.Errorf("pkgs[1] = %+v", pkgs[1])
	}
}

func TestBrewParseOutdated(t *testing.T) {
	out := "node (20.5.0) < 22.1.0\npython@3.12 (3.12.1) != 3.12.4\ngarbage line without version\n"
	pkgs, errs := Brew{}.Parse(manager.OpListOutdated, manager.ExecResult{Stdout: out})
	if len(pkgs) != 2 {
		t.Fatalf("got %d packages, want 2: %+v", len(pkgs), pkgs)
	}
	if pkgs[0].ID != "node" || pkgs[0].InstalledVersion != "20.5.0" || pkgs[0].LatestVersion != "22.1.0" {
		t.Errorf("pkgs[0] = %+v", pkgs[0])
	}
	if len(errs) != 1 {
		t.Fatalf("got %d errors, want 1 for the garbage line", len(errs))
	}
	if errs[0].Line == "" {
		t.Error("adapter error should carry the offending line")
	}
}

func TestBrewParseSearch(t *testing.T) {
	out := "==> Formulae\nripgrep  ripgrep-all\n==> Casks\nsome-cask\n"
	pkgs, errs := Brew{}.Parse(manager.OpSearch, manager.ExecResult{Stdout: out})
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(pkgs) != 3 {
		t.Fatalf("got %d packages, want 3: %+v", len(pkgs), pkgs)
	}
}
