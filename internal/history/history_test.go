package history

import (
	"fmt"
	"path/filepath"
	"testing"

	"omnipkg/pkg/manager"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	t.Setenv("XDG_DATA_HOME", t.TempDir())

	store, err := OpenAt(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestEntryRecordReports(t *testing.T) {
	e := NewEntry(manager.OpInstall, []string{"jq"}, false)
	e.RecordReports([]manager.Report{
		{Manager: "brew"},
		{Manager: "snap", Failed: true, Reason: "snapd not running"},
	})

	if len(e.Managers) != 2 {
		t.Errorf("Managers = %v", e.Managers)
	}
	if len(e.Failed) != 1 || e.Failed[0] != "snap" {
		t.Errorf("Failed = %v", e.Failed)
	}
	if !e.Success {
		t.Error("one successful manager should mark the entry successful")
	}
}

func TestEntryAllFailed(t *testing.T) {
	e := NewEntry(manager.OpUpgrade, nil, false)
	e.RecordReports([]manager.Report{{Manager: "brew", Failed: true, Reason: "x"}})
	if e.Success {
		t.Error("entry with only failures must not be successful")
	}
}

func TestStoreSaveAndList(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 3; i++ {
		e := NewEntry(manager.OpInstall, []string{fmt.Sprintf("pkg%d", i)}, false)
		e.ID = fmt.Sprintf("2026010112000%d", i)
		if err := store.Save(e); err != nil {
			t.Fatal(err)
		}
	}

	entries, err := store.List(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}
	if entries[0].Targets[0] != "pkg2" {
		t.Errorf("entries[0] = %+v, want newest first", entries[0])
	}

	limited, err := store.List(2)
	if err != nil {
		t.Fatal(err)
	}
	if len(limited) != 2 {
		t.Errorf("List(2) returned %d entries", len(limited))
	}
}

func TestStorePrune(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 10; i++ {
		e := NewEntry(manager.OpSync, nil, false)
		e.ID = fmt.Sprintf("entry-%02d", i)
		if err := store.Save(e); err != nil {
			t.Fatal(err)
		}
	}

	deleted, err := store.Prune(4)
	if err != nil {
		t.Fatal(err)
	}
	if deleted != 6 {
		t.Errorf("Prune deleted %d, want 6", deleted)
	}

	entries, err := store.List(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 4 {
		t.Errorf("%d entries remain, want 4", len(entries))
	}
	// Oldest were dropped.
	for _, e := range entries {
		if e.ID < "entry-06" {
			t.Errorf("old entry %s survived prune", e.ID)
		}
	}
}
