// # internal/usage/usage.go
package usage

import (
	"log/slog"
	"strconv"
	"strings"
)

// TypeOrNamespaceUsage describes how a type or namespace name is referenced
// in source syntax. Values are independent bit flags and combine with OR.
type TypeOrNamespaceUsage uint16

// UsageNone is the empty combination. It is not a combinable bit and is
// never produced by ORing named values.
const UsageNone TypeOrNamespaceUsage = 0

const (
	// UsageNameQualifier marks the left-hand qualifier of a dotted access.
	UsageNameQualifier TypeOrNamespaceUsage = 1 << iota

	// UsageTypeArgument marks an argument to a generic type or method.
	UsageTypeArgument

	// UsageBase marks an entry in a type's base/interface list.
	UsageBase

	// UsageObjectCreation marks the type being instantiated.
	UsageObjectCreation

	// UsageImport marks the target of an import/using directive, including
	// aliased and wildcard forms.
	UsageImport

	// UsageNamespaceDeclaration marks the name declared by a namespace or
	// package clause.
	UsageNamespaceDeclaration
)

// namedUsages lists the single-bit values in declaration order. Decomposition
// output follows this order regardless of how a combination was accumulated.
var namedUsages = []TypeOrNamespaceUsage{
	UsageNameQualifier,
	UsageTypeArgument,
	UsageBase,
	UsageObjectCreation,
	UsageImport,
	UsageNamespaceDeclaration,
}

var usageLabels = map[TypeOrNamespaceUsage]string{
	UsageNameQualifier:        "Name Qualifier",
	UsageTypeArgument:         "Type Argument",
	UsageBase:                 "Base Type",
	UsageObjectCreation:       "Object Creation",
	UsageImport:               "Import",
	UsageNamespaceDeclaration: "Namespace Declaration",
}

var usageNames = map[TypeOrNamespaceUsage]string{
	UsageNameQualifier:        "NameQualifier",
	UsageTypeArgument:         "TypeArgument",
	UsageBase:                 "Base",
	UsageObjectCreation:       "ObjectCreation",
	UsageImport:               "Import",
	UsageNamespaceDeclaration: "NamespaceDeclaration",
}

// IsSingle reports whether exactly one flag is set. Zero is not single.
func (u TypeOrNamespaceUsage) IsSingle() bool {
	return u != 0 && u&(u-1) == 0
}

// Has reports whether u and flag share at least one bit.
func (u TypeOrNamespaceUsage) Has(flag TypeOrNamespaceUsage) bool {
	return u&flag != 0
}

// Label returns the canonical display label for a single-bit value. Callers
// must pass exactly one bit; anything else is a defect and falls back to the
// raw textual form rather than failing.
func (u TypeOrNamespaceUsage) Label() string {
	if label, ok := usageLabels[u]; ok {
		return label
	}
	slog.Warn("unhandled usage kind", "value", u.String())
	return u.String()
}

// Labels decomposes a combination into the display labels of every named bit
// present, in declaration order. The empty combination yields no labels.
func (u TypeOrNamespaceUsage) Labels() []string {
	if u == UsageNone {
		return nil
	}
	var labels []string
	for _, candidate := range namedUsages {
		if candidate.IsSingle() && u.Has(candidate) {
			labels = append(labels, candidate.Label())
		}
	}
	return labels
}

// String returns the raw textual form: the constant name for single bits,
// pipe-joined names for combinations, "None" for zero.
func (u TypeOrNamespaceUsage) String() string {
	if u == UsageNone {
		return "None"
	}
	var parts []string
	rest := u
	for _, candidate := range namedUsages {
		if rest.Has(candidate) {
			parts = append(parts, usageNames[candidate])
			rest &^= candidate
		}
	}
	if rest != 0 {
		parts = append(parts, "0x"+strconv.FormatUint(uint64(rest), 16))
	}
	return strings.Join(parts, "|")
}
