package detector

import (
	"runtime"
	"testing"
)

func TestDetectBasics(t *testing.T) {
	info := Detect()
	if info.OS != runtime.GOOS {
		t.Errorf("OS = %q, want %q", info.OS, runtime.GOOS)
	}
	if info.Arch != runtime.GOARCH {
		t.Errorf("Arch = %q, want %q", info.Arch, runtime.GOARCH)
	}
	if info.PrettyName == "" {
		t.Error("PrettyName must never be empty")
	}
}

func TestMatchesDistro(t *testing.T) {
	info := &SystemInfo{
		Distribution: "manjaro",
		DistroFamily: []string{"arch"},
	}

	if !info.MatchesDistro("manjaro") {
		t.Error("direct id should match")
	}
	if !info.MatchesDistro("arch") {
		t.Error("ID_LIKE family should match")
	}
	if info.MatchesDistro("debian", "fedora") {
		t.Error("unrelated distros should not match")
	}
}
