package history

import (
	"fmt"
	"time"
)

func BuildTrendReport(snapshots []Snapshot, window time.Duration) (TrendReport, error) {
	if len(snapshots) == 0 {
		return TrendReport{}, fmt.Errorf("no snapshots available")
	}

	points := make([]TrendPoint, 0, len(snapshots))
	for i, current := range snapshots {
		point := TrendPoint{
			ScanID:         current.ScanID,
			Timestamp:      current.Timestamp,
			FileCount:      current.FileCount,
			SymbolCount:    current.SymbolCount,
			ReferenceCount: current.ReferenceCount,
			UsageCounts:    current.UsageCounts,
		}

		if i > 0 {
			prev := snapshots[i-1]
			point.DeltaFiles = current.FileCount - prev.FileCount
			point.DeltaSymbols = current.SymbolCount - prev.SymbolCount
			point.DeltaReferences = current.ReferenceCount - prev.ReferenceCount
		}

		points = append(points, point)
	}

	return TrendReport{
		SchemaVersion: SchemaVersion,
		Since:         snapshots[0].Timestamp,
		Until:         snapshots[len(snapshots)-1].Timestamp,
		Window:        window.String(),
		ScanCount:     len(points),
		Points:        points,
	}, nil
}
