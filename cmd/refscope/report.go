// # cmd/refscope/report.go
package main

import (
	"fmt"
	"strings"
	"time"

	"refscope/internal/app"
	"refscope/internal/history"
	"refscope/internal/util"
)

func formatSymbolReport(a *app.App, symbol string) (string, error) {
	groups := a.Index.GroupByUsage(symbol)
	if len(groups) == 0 {
		return "", fmt.Errorf("no indexed references for symbol: %s", symbol)
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Usages of %s\n", symbol))
	b.WriteString(strings.Repeat("=", len("Usages of ")+len(symbol)))
	b.WriteString("\n\n")

	for _, g := range groups {
		b.WriteString(fmt.Sprintf("%s (%d)\n", g.Label, len(g.References)))
		for _, ref := range g.References {
			b.WriteString(fmt.Sprintf("  %s:%d:%d", ref.Location.File, ref.Location.Line, ref.Location.Column))
			if ref.Context != "" {
				b.WriteString("  " + ref.Context)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	return b.String(), nil
}

func printSummary(update app.Update) {
	fmt.Println(strings.Repeat("-", 40))
	fmt.Printf("Indexed: %d files, %d symbols, %d references\n",
		update.FileCount, update.SymbolCount, update.ReferenceCount)

	if len(update.UsageCounts) > 0 {
		fmt.Println("By usage:")
		for _, label := range util.SortedStringKeys(update.UsageCounts) {
			fmt.Printf("   %-22s %d\n", label, update.UsageCounts[label])
		}
	}
	fmt.Println(strings.Repeat("-", 40))
}

func printTrendReport(a *app.App, window time.Duration) error {
	if a.History == nil {
		return fmt.Errorf("history is not configured, set history.path in the config")
	}

	snapshots, err := a.History.Snapshots(time.Now().Add(-window))
	if err != nil {
		return err
	}

	report, err := history.BuildTrendReport(snapshots, window)
	if err != nil {
		return err
	}

	fmt.Printf("Trend report (%s): %d scans from %s to %s\n\n",
		report.Window,
		report.ScanCount,
		report.Since.Format(time.RFC3339),
		report.Until.Format(time.RFC3339))

	for _, point := range report.Points {
		fmt.Printf("%s  scan=%s  files=%d (%+d)  symbols=%d (%+d)  references=%d (%+d)\n",
			point.Timestamp.Format("2006-01-02 15:04:05"),
			point.ScanID,
			point.FileCount, point.DeltaFiles,
			point.SymbolCount, point.DeltaSymbols,
			point.ReferenceCount, point.DeltaReferences)
	}

	return nil
}
