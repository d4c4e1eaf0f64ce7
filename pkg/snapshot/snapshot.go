// Package snapshot captures and replays installed-package state across all
// managers. A snapshot document is a manager-keyed, package-keyed version map
// serialized as TOML; the file belongs to the user and is never deleted or
// rewritten by the engine without an explicit request.
package snapshot

import (
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/BurntSushi/toml"

	"omnipkg/pkg/manager"
)

// Meta is the snapshot document header.
type Meta struct {
	// Version is the omnipkg version that produced the document.
	Version string `toml:"version"`
	// Created is the creation timestamp.
	Created time.Time `toml:"created"`
}

// Snapshot is the persisted document: manager id to package id to pinned
// version string. Pinned versions are advisory on restore.
type Snapshot struct {
	Meta     Meta                         `toml:"meta"`
	Managers map[string]map[string]string `toml:"managers"`
}

// FormatError reports an unparsable snapshot document. It is fatal to the
// restore call that hit it and to nothing else.
type FormatError struct {
	Path string
	Err  error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("snapshot %s: %v", e.Path, e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }

// New creates an empty snapshot stamped with the producing tool version.
func New(toolVersion string) *Snapshot {
	return &Snapshot{
		Meta:     Meta{Version: toolVersion, Created: time.Now().UTC()},
		Managers: make(map[string]map[string]string),
	}
}

// Backup captures installed-version pins per manager from a unified report.
// Failed managers contribute nothing.
func Backup(report *manager.UnifiedReport, toolVersion string) *Snapshot {
	snap := New(toolVersion)
	for _, rep := range report.Reports {
		if rep.Failed {
			continue
		}
		for _, p := range rep.Packages {
			snap.set(p.Manager, p.ID, p.InstalledVersion)
		}
	}
	return snap
}

func (s *Snapshot) set(managerID, packageID, version string) {
	if s.Managers[managerID] == nil {
		s.Managers[managerID] = make(map[string]string)
	}
	s.Managers[managerID][packageID] = version
}

// ManagerIDs returns the manager ids present in the snapshot, sorted.
func (s *Snapshot) ManagerIDs() []string {
	ids := make([]string, 0, len(s.Managers))
	for id := range s.Managers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// PackageCount returns the total number of pinned packages.
func (s *Snapshot) PackageCount() int {
	n := 0
	for _, pkgs := range s.Managers {
		n += len(pkgs)
	}
	return n
}

// Encode writes the snapshot as TOML.
func (s *Snapshot) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(s)
}

// WriteFile writes the snapshot document to path.
func (s *Snapshot) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return s.Encode(f)
}

// Load reads and parses a snapshot document. Parse failures surface as a
// *FormatError.
func Load(path string) (*Snapshot, error) {
	var snap Snapshot
	if _, err := toml.DecodeFile(path, &snap); err != nil {
		return nil, &FormatError{Path: path, Err: err}
	}
	if snap.Managers == nil {
		snap.Managers = make(map[string]map[string]string)
	}
	return &snap, nil
}

// Merge unions a unified report into an existing snapshot, keyed by
// (manager, package id): entries only in the existing snapshot are kept,
// entries in both are replaced by the report's installed version only when
// updateVersions is set, entries only in the report are added. The input
// snapshot is not modified; merging disjoint reports is order-independent.
func Merge(existing *Snapshot, report *manager.UnifiedReport, updateVersions bool) *Snapshot {
	out := New(existing.Meta.Version)
	out.Meta.Created = existing.Meta.Created
	for managerID, pkgs := range existing.Managers {
		for id, version := range pkgs {
			out.set(managerID, id, version)
		}
	}
	for _, rep := range report.Reports {
		if rep.Failed {
			continue
		}
		for _, p := range rep.Packages {
			if _, exists := out.Managers[p.Manager][p.ID]; exists && !updateVersions {
				continue
			}
			out.set(p.Manager, p.ID, p.InstalledVersion)
		}
	}
	return out
}
