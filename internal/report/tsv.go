// # internal/report/tsv.go
package report

import (
	"fmt"
	"strings"

	"refscope/internal/index"
	"refscope/internal/usage"
)

type TSVGenerator struct {
	index *index.Index
}

func NewTSVGenerator(ix *index.Index) *TSVGenerator {
	return &TSVGenerator{index: ix}
}

// Generate renders every symbol's references with their usage labels.
func (t *TSVGenerator) Generate() (string, error) {
	var buf strings.Builder

	buf.WriteString("Symbol\tUsage\tFile\tLine\tColumn\tContext\n")

	for _, symbol := range t.index.Symbols() {
		for _, group := range t.index.GroupByUsage(symbol) {
			for _, ref := range group.References {
				buf.WriteString(fmt.Sprintf("%s\t%s\t%s\t%d\t%d\t%s\n",
					symbol, group.Label, ref.Location.File, ref.Location.Line, ref.Location.Column, ref.Context))
			}
		}
	}

	return buf.String(), nil
}

// GenerateSummary renders per-label aggregate counts in fixed label order.
func (t *TSVGenerator) GenerateSummary() (string, error) {
	var buf strings.Builder

	buf.WriteString("Usage\tReferences\n")

	counts := t.index.UsageCounts()
	for _, label := range usage.AllLabels() {
		if count, ok := counts[label]; ok {
			buf.WriteString(fmt.Sprintf("%s\t%d\n", label, count))
		}
	}

	return buf.String(), nil
}
