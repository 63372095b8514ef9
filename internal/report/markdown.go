// # internal/report/markdown.go
package report

import (
	"fmt"
	"strings"
	"time"

	"refscope/internal/index"
	"refscope/internal/usage"
)

type MarkdownReportOptions struct {
	ProjectName string
	Version     string
	GeneratedAt time.Time
	// Symbols limits the per-symbol sections; empty means every symbol.
	Symbols []string
}

type MarkdownGenerator struct {
	index *index.Index
}

func NewMarkdownGenerator(ix *index.Index) *MarkdownGenerator {
	return &MarkdownGenerator{index: ix}
}

func (m *MarkdownGenerator) Generate(opts MarkdownReportOptions) (string, error) {
	if opts.GeneratedAt.IsZero() {
		opts.GeneratedAt = time.Now().UTC()
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.WriteString("title: Symbol Usage Report\n")
	b.WriteString("project: " + nonEmpty(opts.ProjectName, "unknown") + "\n")
	b.WriteString("generated_at: " + opts.GeneratedAt.UTC().Format(time.RFC3339) + "\n")
	b.WriteString("version: " + nonEmpty(opts.Version, "unknown") + "\n")
	b.WriteString("---\n\n")

	b.WriteString("# Symbol Usage Report\n\n")

	b.WriteString("## Summary\n\n")
	b.WriteString(fmt.Sprintf("- Files indexed: %d\n", m.index.FileCount()))
	b.WriteString(fmt.Sprintf("- Symbols: %d\n", m.index.SymbolCount()))
	b.WriteString(fmt.Sprintf("- References: %d\n\n", m.index.ReferenceCount()))

	b.WriteString("| Usage | References |\n")
	b.WriteString("|-------|------------|\n")
	counts := m.index.UsageCounts()
	for _, label := range usage.AllLabels() {
		if count, ok := counts[label]; ok {
			b.WriteString(fmt.Sprintf("| %s | %d |\n", label, count))
		}
	}
	b.WriteString("\n")

	symbols := opts.Symbols
	if len(symbols) == 0 {
		symbols = m.index.Symbols()
	}

	for _, symbol := range symbols {
		groups := m.index.GroupByUsage(symbol)
		if len(groups) == 0 {
			continue
		}
		b.WriteString("## `" + symbol + "`\n\n")
		for _, group := range groups {
			b.WriteString(fmt.Sprintf("### %s (%d)\n\n", group.Label, len(group.References)))
			for _, ref := range group.References {
				b.WriteString(fmt.Sprintf("- %s:%d:%d\n", ref.Location.File, ref.Location.Line, ref.Location.Column))
			}
			b.WriteString("\n")
		}
	}

	return b.String(), nil
}

func nonEmpty(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
