// Package manager provides the core abstraction for orchestrating operations
// across heterogeneous package managers: descriptors, the registry, selection,
// dispatch, and result aggregation.
package manager

import "time"

// Operation is one of the canonical operations every adapter may support.
type Operation string

const (
	// OpSync refreshes the manager's package database/repository cache.
	OpSync Operation = "sync"
	// OpListInstalled lists currently installed packages.
	OpListInstalled Operation = "list-installed"
	// OpListOutdated lists installed packages with a newer version available.
	OpListOutdated Operation = "list-outdated"
	// OpSearch searches the manager's package universe.
	OpSearch Operation = "search"
	// OpInstall installs the requested packages.
	OpInstall Operation = "install"
	// OpUpgrade upgrades installed packages.
	OpUpgrade Operation = "upgrade"
	// OpCleanup removes cached package files and orphans.
	OpCleanup Operation = "cleanup"
)

// Operations returns every canonical operation in a stable order.
func Operations() []Operation {
	return []Operation{
		OpSync, OpListInstalled, OpListOutdated, OpSearch,
		OpInstall, OpUpgrade, OpCleanup,
	}
}

// Mutating reports whether the operation changes system state. Mutating
// operations are always dispatched sequentially and are suppressed by dry-run.
func (op Operation) Mutating() bool {
	switch op {
	case OpInstall, OpUpgrade, OpCleanup:
		return true
	}
	return false
}

// Valid reports whether op is one of the canonical operations.
func (op Operation) Valid() bool {
	for _, o := range Operations() {
		if o == op {
			return true
		}
	}
	return false
}

// Descriptor is the static, host-independent identity of one backend adapter.
// Descriptors are immutable after registration.
type Descriptor struct {
	// ID is the stable unique key, e.g. "brew".
	ID string
	// Name is the human-readable display name, e.g. "Homebrew".
	Name string
	// Binary is the executable probed for availability.
	Binary string
	// VersionQuery holds the arguments of the version-probe invocation.
	VersionQuery []string
	// Platforms lists the GOOS values this manager runs on. Empty means
	// every platform.
	Platforms []string
	// MinVersion is the minimum supported CLI version. The zero value means
	// any version is accepted.
	MinVersion Version
	// Operations lists the canonical operations this adapter implements.
	Operations []Operation
	// RequiresSudo marks managers that need elevated privileges for
	// mutating operations.
	RequiresSudo bool
	// CanPinVersions reports whether install can target an exact version.
	// Managers without pinning install latest on restore, with a warning.
	CanPinVersions bool
	// Supersedes lists manager IDs whose package universe this manager
	// overlays (e.g. an AUR helper supersedes pacman). Used for redundant
	// row suppression during aggregation.
	Supersedes []string
}

// Supports reports whether the descriptor declares support for op.
func (d Descriptor) Supports(op Operation) bool {
	for _, o := range d.Operations {
		if o == op {
			return true
		}
	}
	return false
}

// SupportsPlatform reports whether the descriptor declares support for the
// given GOOS value.
func (d Descriptor) SupportsPlatform(goos string) bool {
	if len(d.Platforms) == 0 {
		return true
	}
	for _, p := range d.Platforms {
		if p == goos {
			return true
		}
	}
	return false
}

// Instance is a descriptor resolved against the current host. Instances are
// computed lazily on first use and cached for the duration of the run.
type Instance struct {
	Descriptor Descriptor
	Adapter    Adapter
	// Path is the absolute path of the detected executable, empty if absent.
	Path string
	// Version is the detected CLI version; zero if unknown.
	Version Version
	// VersionRaw is the first line of the version-probe output, verbatim.
	VersionRaw string
	// Available is true when the platform matches, the executable was found
	// and the detected version meets the minimum.
	Available bool
	// Reason explains unavailability in human terms. Empty when available.
	Reason string
}

// ID is shorthand for the descriptor's ID.
func (i Instance) ID() string { return i.Descriptor.ID }

// Package is the canonical cross-manager package record. ID is unique only
// within one manager; the same real-world package may legitimately appear
// under several (manager, id) pairs.
type Package struct {
	Manager          string `json:"manager"`
	ID               string `json:"id"`
	Name             string `json:"name,omitempty"`
	InstalledVersion string `json:"installed_version,omitempty"`
	LatestVersion    string `json:"latest_version,omitempty"`
	Description      string `json:"description,omitempty"`
}

// DisplayName returns Name when set, otherwise ID.
func (p Package) DisplayName() string {
	if p.Name != "" {
		return p.Name
	}
	return p.ID
}

// AdapterError records one malformed output record from an otherwise-working
// adapter invocation. It is data on the report, never a raised error.
type AdapterError struct {
	Manager string `json:"manager"`
	Line    string `json:"line,omitempty"`
	Msg     string `json:"msg"`
}

func (e AdapterError) Error() string {
	if e.Line != "" {
		return e.Msg + ": " + e.Line
	}
	return e.Msg
}

// Report is the result of running one operation against one instance.
// Reports are never mutated after the adapter call returns.
type Report struct {
	Manager  string         `json:"manager"`
	Packages []Package      `json:"packages"`
	Errors   []AdapterError `json:"errors,omitempty"`
	// Failed marks a fatal per-manager failure (subprocess crashed, timed
	// out, unexpected exit status, manager unavailable). Distinct from the
	// non-fatal per-line Errors.
	Failed   bool          `json:"failed,omitempty"`
	Reason   string        `json:"reason,omitempty"`
	Duration time.Duration `json:"duration"`
}

func failedReport(id, reason string) Report {
	return Report{Manager: id, Failed: true, Reason: reason}
}
