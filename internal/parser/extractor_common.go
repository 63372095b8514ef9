package parser

import (
	"strings"
	"unicode"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

func nodeText(node *sitter.Node, source []byte) string {
	if node == nil {
		return ""
	}
	return string(source[node.StartByte():node.EndByte()])
}

func nodeLocation(node *sitter.Node, filePath string) Location {
	return Location{
		File:   filePath,
		Line:   int(node.StartPosition().Row) + 1,
		Column: int(node.StartPosition().Column) + 1,
	}
}

func normalizeRefName(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	value = strings.ReplaceAll(value, "\n", "")
	value = strings.ReplaceAll(value, "\r", "")
	value = strings.ReplaceAll(value, "\t", "")
	value = strings.ReplaceAll(value, " ", "")
	return value
}

func trimQuoted(value string) string {
	value = strings.TrimSpace(value)
	return strings.Trim(value, "\"'`")
}

func isCapitalized(name string) bool {
	if name == "" {
		return false
	}
	return unicode.IsUpper(rune(name[0]))
}

// typeNameKinds are node kinds that carry a usable type or module name.
var typeNameKinds = map[string]bool{
	"type_identifier":        true,
	"identifier":             true,
	"qualified_type":         true,
	"scoped_type_identifier": true,
	"scoped_identifier":      true,
	"dotted_name":            true,
	"attribute":              true,
	"generic_type":           true,
}

// baseTypeName unwraps wrappers (pointers, slices, generics) down to the
// first node carrying a type name and returns that node. Nil when the
// subtree contains no name at all.
func baseTypeName(node *sitter.Node) *sitter.Node {
	if node == nil {
		return nil
	}
	kind := node.Kind()
	if kind == "generic_type" {
		// The name is the generic's head, not the whole instantiation.
		if inner := node.ChildByFieldName("type"); inner != nil {
			return baseTypeName(inner)
		}
		if node.NamedChildCount() > 0 {
			return baseTypeName(node.NamedChild(0))
		}
		return nil
	}
	if typeNameKinds[kind] {
		return node
	}
	for i := uint(0); i < node.NamedChildCount(); i++ {
		if found := baseTypeName(node.NamedChild(i)); found != nil {
			return found
		}
	}
	return nil
}
