// # internal/usage/value.go
package usage

import (
	"log/slog"
	"strconv"
	"strings"
)

// ValueUsage describes how a symbol's value is used at a reference site.
// Like TypeOrNamespaceUsage, values are bit flags combined with OR.
type ValueUsage uint16

// ValueNone is the empty combination.
const ValueNone ValueUsage = 0

const (
	// ValueRead marks a read of the symbol's value.
	ValueRead ValueUsage = 1 << iota

	// ValueWrite marks a write to the symbol's value.
	ValueWrite

	// ValueReference marks taking a reference to the symbol rather than
	// reading or writing it directly.
	ValueReference
)

// Common combinations.
const (
	ValueReadWrite                 = ValueRead | ValueWrite
	ValueReadableReference         = ValueRead | ValueReference
	ValueWritableReference         = ValueWrite | ValueReference
	ValueReadableWritableReference = ValueRead | ValueWrite | ValueReference
)

var namedValueUsages = []ValueUsage{
	ValueRead,
	ValueWrite,
	ValueReference,
}

var valueLabels = map[ValueUsage]string{
	ValueRead:      "Read",
	ValueWrite:     "Write",
	ValueReference: "Reference",
}

// IsSingle reports whether exactly one flag is set.
func (v ValueUsage) IsSingle() bool {
	return v != 0 && v&(v-1) == 0
}

// Has reports whether v and flag share at least one bit.
func (v ValueUsage) Has(flag ValueUsage) bool {
	return v&flag != 0
}

// IsReadFrom reports whether the usage includes a read.
func (v ValueUsage) IsReadFrom() bool {
	return v.Has(ValueRead)
}

// IsWrittenTo reports whether the usage includes a write.
func (v ValueUsage) IsWrittenTo() bool {
	return v.Has(ValueWrite)
}

// Label returns the display label for a single-bit value, falling back to
// the raw textual form for defective input.
func (v ValueUsage) Label() string {
	if label, ok := valueLabels[v]; ok {
		return label
	}
	slog.Warn("unhandled value usage", "value", v.String())
	return v.String()
}

// Labels decomposes a combination into labels in declaration order.
func (v ValueUsage) Labels() []string {
	if v == ValueNone {
		return nil
	}
	var labels []string
	for _, candidate := range namedValueUsages {
		if candidate.IsSingle() && v.Has(candidate) {
			labels = append(labels, candidate.Label())
		}
	}
	return labels
}

func (v ValueUsage) String() string {
	if v == ValueNone {
		return "None"
	}
	var parts []string
	rest := v
	for _, candidate := range namedValueUsages {
		if rest.Has(candidate) {
			parts = append(parts, valueLabels[candidate])
			rest &^= candidate
		}
	}
	if rest != 0 {
		parts = append(parts, "0x"+strconv.FormatUint(uint64(rest), 16))
	}
	return strings.Join(parts, "|")
}
