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
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestStore_SaveAndLoadSnapshots(t *testing.T) {
	store := openTestStore(t)

	first := Snapshot{
		Timestamp:      time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC),
		CommitHash:     "abc123def456",
		CommitTime:     time.Date(2026, 8, 1, 9, 30, 0, 0, time.UTC),
		FileCount:      10,
		SymbolCount:    40,
		ReferenceCount: 120,
		UsageCounts:    map[string]int{"Import": 20, "Name Qualifier": 55},
	}
	scanID, err := store.SaveSnapshot(first)
	if err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}
	if scanID == "" {
		t.Fatal("expected a generated scan ID")
	}

	second := first
	second.Timestamp = first.Timestamp.Add(time.Hour)
	second.CommitHash = ""
	second.CommitTime = time.Time{}
	second.FileCount = 12
	second.UsageCounts = map[string]int{"Import": 25, "Name Qualifier": 60}
	if _, err := store.SaveSnapshot(second); err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}

	snapshots, err := store.Snapshots(time.Time{})
	if err != nil {
		t.Fatalf("Snapshots failed: %v", err)
	}
	if len(snapshots) != 2 {
		t.Fatalf("expected 2 snapshots, got %d", len(snapshots))
	}
	if snapshots[0].FileCount != 10 || snapshots[1].FileCount != 12 {
		t.Errorf("expected oldest-first ordering, got %d then %d", snapshots[0].FileCount, snapshots[1].FileCount)
	}
	if snapshots[0].UsageCounts["Import"] != 20 {
		t.Errorf("expected Import count 20, got %d", snapshots[0].UsageCounts["Import"])
	}
	if snapshots[0].ScanID != scanID {
		t.Errorf("expected scan ID %s, got %s", scanID, snapshots[0].ScanID)
	}
	if snapshots[0].CommitHash != "abc123def456" {
		t.Errorf("expected commit hash roundtrip, got %q", snapshots[0].CommitHash)
	}
	if !snapshots[0].CommitTime.Equal(first.CommitTime) {
		t.Errorf("expected commit time roundtrip, got %v", snapshots[0].CommitTime)
	}
	if snapshots[1].CommitHash != "" || !snapshots[1].CommitTime.IsZero() {
		t.Errorf("expected empty commit metadata on second snapshot")
	}

	// Since filter excludes the first snapshot.
	snapshots, err = store.Snapshots(first.Timestamp.Add(30 * time.Minute))
	if err != nil {
		t.Fatalf("Snapshots failed: %v", err)
	}
	if len(snapshots) != 1 {
		t.Fatalf("expected 1 snapshot after since, got %d", len(snapshots))
	}
}

func TestBuildTrendReport(t *testing.T) {
	base := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	snapshots := []Snapshot{
		{ScanID: "a", Timestamp: base, FileCount: 10, SymbolCount: 40, ReferenceCount: 100},
		{ScanID: "b", Timestamp: base.Add(time.Hour), FileCount: 12, SymbolCount: 44, ReferenceCount: 130},
	}

	report, err := BuildTrendReport(snapshots, 24*time.Hour)
	if err != nil {
		t.Fatalf("BuildTrendReport failed: %v", err)
	}
	if report.ScanCount != 2 {
		t.Errorf("expected 2 points, got %d", report.ScanCount)
	}
	if report.Points[0].DeltaFiles != 0 {
		t.Errorf("expected first delta 0, got %d", report.Points[0].DeltaFiles)
	}
	if report.Points[1].DeltaFiles != 2 || report.Points[1].DeltaReferences != 30 {
		t.Errorf("unexpected deltas: %+v", report.Points[1])
	}
	if report.Points[0].ScanID != "a" || report.Points[1].ScanID != "b" {
		t.Errorf("expected scan IDs carried onto points, got %q and %q",
			report.Points[0].ScanID, report.Points[1].ScanID)
	}

	if _, err := BuildTrendReport(nil, time.Hour); err == nil {
		t.Error("expected an error for empty snapshot list")
	}
}
