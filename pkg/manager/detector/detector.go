// Package detector identifies the host OS and Linux distribution. The result
// feeds the diagnostics surface; availability decisions in the registry use
// only GOOS plus executable probing.
package detector

import "runtime"

// SystemInfo describes the detected host.
type SystemInfo struct {
	OS           string   // GOOS value
	Arch         string   // GOARCH value
	Distribution string   // Linux distribution ID ("ubuntu", "arch"), or "macos"/"windows"
	DistroFamily []string // related distributions, from ID_LIKE
	PrettyName   string   // human-readable name
}

// Detect detects the current host.
func Detect() *SystemInfo {
	info := &SystemInfo{
		OS:   runtime.GOOS,
		Arch: runtime.GOARCH,
	}

	switch runtime.GOOS {
	case "linux":
		linux := detectLinux()
		info.Distribution = linux.ID
		info.DistroFamily = linux.IDLike
		info.PrettyName = linux.PrettyName
	case "darwin":
		info.Distribution = "macos"
		info.PrettyName = "macOS"
	case "windows":
		info.Distribution = "windows"
		info.PrettyName = "Windows"
	default:
		info.PrettyName = runtime.GOOS
	}
	return info
}

// MatchesDistro reports whether the host matches any of the given
// distribution identifiers, directly or through the ID_LIKE family.
func (s *SystemInfo) MatchesDistro(distros ...string) bool {
	for _, d := range distros {
		if s.Distribution == d {
			return true
		}
		for _, family := range s.DistroFamily {
			if family == d {
				return true
			}
		}
	}
	return false
}
