package history

import (
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSaveAndRecent(t *testing.T) {
	store := openTestStore(t)

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 3; i++ {
		snap := Snapshot{
			RunID:         "run-" + string(rune('a'+i)),
			CreatedAt:     base.Add(time.Duration(i) * time.Minute),
			Files:         10 + i,
			SyntaxInvalid: i,
		}
		if err := store.SaveSnapshot("proj", snap); err != nil {
			t.Fatalf("SaveSnapshot failed: %v", err)
		}
	}

	snaps, err := store.Recent("proj", 10)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(snaps) != 3 {
		t.Fatalf("Expected 3 snapshots, got %d", len(snaps))
	}
	if snaps[0].RunID != "run-c" || snaps[2].RunID != "run-a" {
		t.Errorf("Expected newest first, got %v", snaps)
	}
	if snaps[0].Files != 12 {
		t.Errorf("Expected 12 files on newest snapshot, got %d", snaps[0].Files)
	}
}

func TestProjectIsolation(t *testing.T) {
	store := openTestStore(t)

	if err := store.SaveSnapshot("one", Snapshot{RunID: "r1", CreatedAt: time.Now()}); err != nil {
		t.Fatal(err)
	}
	if err := store.SaveSnapshot("two", Snapshot{RunID: "r2", CreatedAt: time.Now()}); err != nil {
		t.Fatal(err)
	}

	snaps, err := store.Recent("one", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(snaps) != 1 || snaps[0].RunID != "r1" {
		t.Errorf("Expected only project one's snapshot, got %v", snaps)
	}
}

func TestPrune(t *testing.T) {
	store := openTestStore(t)

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		snap := Snapshot{
			RunID:     "run",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		if err := store.SaveSnapshot("proj", snap); err != nil {
			t.Fatal(err)
		}
	}

	if err := store.Prune("proj", 2); err != nil {
		t.Fatalf("Prune failed: %v", err)
	}
	snaps, err := store.Recent("proj", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(snaps) != 2 {
		t.Errorf("Expected 2 snapshots after prune, got %d", len(snaps))
	}
}

func TestOpenRejectsEmptyAndDirectory(t *testing.T) {
	if _, err := Open("  "); err == nil {
		t.Error("Expected error for empty path")
	}
	if _, err := Open(t.TempDir()); err == nil {
		t.Error("Expected error for directory path")
	}
}

func TestNormalizeProjectKey(t *testing.T) {
	if normalizeProjectKey("  ") != "default" {
		t.Error("Expected blank key to normalize to default")
	}
	if normalizeProjectKey("x") != "x" {
		t.Error("Expected non-blank key to pass through")
	}
}
