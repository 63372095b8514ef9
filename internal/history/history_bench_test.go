package history

import (
	"path/filepath"
	"testing"
	"time"
)

func BenchmarkStore_SaveSnapshot(b *testing.B) {
	store, err := Open(filepath.Join(b.TempDir(), "history.db"))
	if err != nil {
		b.Fatalf("open store: %v", err)
	}
	defer store.Close()

	base := time.Date(2026, 2, 13, 0, 0, 0, 0, time.UTC)
	counts := map[string]int{
		"Read":           120,
		"Write":          40,
		"Name Qualifier": 85,
		"Import":         30,
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s := Snapshot{
			Timestamp:      base.Add(time.Duration(i) * time.Second),
			FileCount:      250 + (i % 11),
			SymbolCount:    900 + (i % 7),
			ReferenceCount: 4000 + (i % 13),
			UsageCounts:    counts,
		}
		if _, err := store.SaveSnapshot(s); err != nil {
			b.Fatalf("save snapshot: %v", err)
		}
	}
}

func BenchmarkStore_Snapshots(b *testing.B) {
	store, err := Open(filepath.Join(b.TempDir(), "history.db"))
	if err != nil {
		b.Fatalf("open store: %v", err)
	}
	defer store.Close()

	base := time.Date(2026, 2, 13, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 200; i++ {
		s := Snapshot{
			Timestamp:      base.Add(time.Duration(i) * time.Minute),
			FileCount:      250,
			SymbolCount:    900,
			ReferenceCount: 4000,
			UsageCounts:    map[string]int{"Read": 100 + i},
		}
		if _, err := store.SaveSnapshot(s); err != nil {
			b.Fatalf("save snapshot: %v", err)
		}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := store.Snapshots(base); err != nil {
			b.Fatalf("load snapshots: %v", err)
		}
	}
}
