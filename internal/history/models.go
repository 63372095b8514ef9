package history

import "time"

const SchemaVersion = 1

// Snapshot records one scan's aggregate classification results.
type Snapshot struct {
	SchemaVersion  int            `json:"schema_version"`
	ScanID         string         `json:"scan_id"`
	Timestamp      time.Time      `json:"timestamp"`
	CommitHash     string         `json:"commit_hash,omitempty"`
	CommitTime     time.Time      `json:"commit_time,omitempty"`
	FileCount      int            `json:"file_count"`
	SymbolCount    int            `json:"symbol_count"`
	ReferenceCount int            `json:"reference_count"`
	UsageCounts    map[string]int `json:"usage_counts"` // label -> count
}

// TrendPoint is a snapshot with deltas against the previous one.
type TrendPoint struct {
	ScanID          string         `json:"scan_id"`
	Timestamp       time.Time      `json:"timestamp"`
	FileCount       int            `json:"file_count"`
	SymbolCount     int            `json:"symbol_count"`
	ReferenceCount  int            `json:"reference_count"`
	UsageCounts     map[string]int `json:"usage_counts"`
	DeltaFiles      int            `json:"delta_files"`
	DeltaSymbols    int            `json:"delta_symbols"`
	DeltaReferences int            `json:"delta_references"`
}

type TrendReport struct {
	SchemaVersion int          `json:"schema_version"`
	Since         time.Time    `json:"since"`
	Until         time.Time    `json:"until"`
	Window        string       `json:"window"`
	ScanCount     int          `json:"scan_count"`
	Points        []TrendPoint `json:"points"`
}
