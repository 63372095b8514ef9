package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const driverName = "sqlite"

type Store struct {
	path string
	db   *sql.DB
	mu   sync.Mutex
}

func Open(path string) (*Store, error) {
	cleanPath := strings.TrimSpace(path)
	if cleanPath == "" {
		return nil, fmt.Errorf("history path must not be empty")
	}
	if info, err := os.Stat(cleanPath); err == nil && info.IsDir() {
		return nil, fmt.Errorf("history path %q is a directory, expected file", cleanPath)
	}

	dir := filepath.Dir(cleanPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create history directory %q: %w", dir, err)
		}
	}

	// busy_timeout + WAL reduce lock conflicts during watch-mode churn.
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(2000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)", cleanPath)
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite history %q: %w", cleanPath, err)
	}
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite history %q: %w", cleanPath, err)
	}
	if err := EnsureSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize sqlite schema %q: %w", cleanPath, err)
	}

	return &Store{path: cleanPath, db: db}, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// SaveSnapshot persists one scan's aggregates and returns its scan ID.
func (s *Store) SaveSnapshot(snapshot Snapshot) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if snapshot.ScanID == "" {
		snapshot.ScanID = uuid.NewString()
	}
	if snapshot.Timestamp.IsZero() {
		snapshot.Timestamp = time.Now().UTC()
	}

	tx, err := s.db.Begin()
	if err != nil {
		return "", fmt.Errorf("begin snapshot tx: %w", err)
	}

	commitTS := ""
	if !snapshot.CommitTime.IsZero() {
		commitTS = snapshot.CommitTime.UTC().Format(time.RFC3339Nano)
	}

	if _, err := tx.Exec(
		`INSERT INTO snapshots(scan_id, schema_version, ts_utc, commit_hash, commit_ts_utc, file_count, symbol_count, reference_count)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		snapshot.ScanID,
		SchemaVersion,
		snapshot.Timestamp.UTC().Format(time.RFC3339Nano),
		snapshot.CommitHash,
		commitTS,
		snapshot.FileCount,
		snapshot.SymbolCount,
		snapshot.ReferenceCount,
	); err != nil {
		_ = tx.Rollback()
		return "", fmt.Errorf("insert snapshot: %w", err)
	}

	for _, label := range sortedLabels(snapshot.UsageCounts) {
		if _, err := tx.Exec(
			`INSERT INTO snapshot_usage(scan_id, label, ref_count) VALUES (?, ?, ?)`,
			snapshot.ScanID, label, snapshot.UsageCounts[label],
		); err != nil {
			_ = tx.Rollback()
			return "", fmt.Errorf("insert snapshot usage %q: %w", label, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit snapshot: %w", err)
	}
	return snapshot.ScanID, nil
}

// Snapshots returns snapshots at/after since, oldest first.
func (s *Store) Snapshots(since time.Time) ([]Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(
		`SELECT scan_id, schema_version, ts_utc, commit_hash, commit_ts_utc, file_count, symbol_count, reference_count
		 FROM snapshots
		 WHERE ts_utc >= ?
		 ORDER BY ts_utc ASC`,
		since.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return nil, fmt.Errorf("query snapshots: %w", err)
	}
	defer rows.Close()

	var snapshots []Snapshot
	for rows.Next() {
		var snap Snapshot
		var ts, commitTS string
		if err := rows.Scan(&snap.ScanID, &snap.SchemaVersion, &ts, &snap.CommitHash, &commitTS, &snap.FileCount, &snap.SymbolCount, &snap.ReferenceCount); err != nil {
			return nil, fmt.Errorf("scan snapshot row: %w", err)
		}
		parsed, err := time.Parse(time.RFC3339Nano, ts)
		if err != nil {
			return nil, fmt.Errorf("parse snapshot timestamp %q: %w", ts, err)
		}
		snap.Timestamp = parsed
		if commitTS != "" {
			if parsedCommit, err := time.Parse(time.RFC3339Nano, commitTS); err == nil {
				snap.CommitTime = parsedCommit
			}
		}
		snapshots = append(snapshots, snap)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate snapshots: %w", err)
	}

	for i := range snapshots {
		counts, err := s.usageCountsLocked(snapshots[i].ScanID)
		if err != nil {
			return nil, err
		}
		snapshots[i].UsageCounts = counts
	}
	return snapshots, nil
}

func (s *Store) usageCountsLocked(scanID string) (map[string]int, error) {
	rows, err := s.db.Query(`SELECT label, ref_count FROM snapshot_usage WHERE scan_id = ?`, scanID)
	if err != nil {
		return nil, fmt.Errorf("query snapshot usage: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var label string
		var count int
		if err := rows.Scan(&label, &count); err != nil {
			return nil, fmt.Errorf("scan usage row: %w", err)
		}
		counts[label] = count
	}
	return counts, rows.Err()
}

func sortedLabels(counts map[string]int) []string {
	labels := make([]string, 0, len(counts))
	for label := range counts {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}
