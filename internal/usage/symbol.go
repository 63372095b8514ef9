// # internal/usage/symbol.go
package usage

// SymbolUsage pairs the two usage dimensions of a single reference site.
// Exactly one side is populated for most references: value symbols carry a
// ValueUsage, type and namespace symbols a TypeOrNamespaceUsage.
type SymbolUsage struct {
	Value           ValueUsage
	TypeOrNamespace TypeOrNamespaceUsage
}

// ForValue builds a SymbolUsage for a value reference.
func ForValue(v ValueUsage) SymbolUsage {
	return SymbolUsage{Value: v}
}

// ForTypeOrNamespace builds a SymbolUsage for a type or namespace reference.
func ForTypeOrNamespace(t TypeOrNamespaceUsage) SymbolUsage {
	return SymbolUsage{TypeOrNamespace: t}
}

// IsReadFrom reports whether the reference reads the symbol's value.
func (s SymbolUsage) IsReadFrom() bool {
	return s.Value.IsReadFrom()
}

// IsWrittenTo reports whether the reference writes the symbol's value.
func (s SymbolUsage) IsWrittenTo() bool {
	return s.Value.IsWrittenTo()
}

// IsEmpty reports whether neither dimension carries any flag.
func (s SymbolUsage) IsEmpty() bool {
	return s.Value == ValueNone && s.TypeOrNamespace == UsageNone
}

// Labels concatenates the decompositions of both dimensions, value labels
// first. Empty on both sides yields no labels.
func (s SymbolUsage) Labels() []string {
	labels := s.Value.Labels()
	return append(labels, s.TypeOrNamespace.Labels()...)
}

// AllLabels returns every known usage label in the fixed presentation order:
// value labels first, then type-or-namespace labels.
func AllLabels() []string {
	labels := make([]string, 0, len(namedValueUsages)+len(namedUsages))
	for _, v := range namedValueUsages {
		labels = append(labels, valueLabels[v])
	}
	for _, u := range namedUsages {
		labels = append(labels, usageLabels[u])
	}
	return labels
}
