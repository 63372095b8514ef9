// # internal/parser/java.go
package parser

import (
	"time"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"refscope/internal/usage"
)

// JavaExtractor classifies symbol usage in a Java source file. Java exercises
// every usage kind: package declarations, imports, extends/implements lists,
// new-expressions, generics, and qualified names.
type JavaExtractor struct{}

func (e *JavaExtractor) Extract(root *sitter.Node, source []byte, filePath string) (*File, error) {
	file := &File{
		Path:     filePath,
		Language: "java",
		ParsedAt: time.Now(),
	}

	e.walk(root, source, file)

	return file, nil
}

func (e *JavaExtractor) walk(node *sitter.Node, source []byte, file *File) {
	switch node.Kind() {
	case "package_declaration":
		e.extractPackage(node, source, file)
	case "import_declaration":
		e.extractImport(node, source, file)
	case "superclass", "super_interfaces", "extends_interfaces":
		e.extractBaseList(node, source, file)
	case "object_creation_expression":
		e.extractObjectCreation(node, source, file)
	case "type_arguments":
		e.extractTypeArguments(node, source, file)
	case "field_access":
		e.extractFieldAccess(node, source, file)
	case "method_invocation":
		e.extractMethodInvocation(node, source, file)
	case "scoped_type_identifier":
		e.extractScopedType(node, source, file)
	case "assignment_expression":
		e.extractAssignment(node, source, file)
	}

	for i := uint(0); i < node.ChildCount(); i++ {
		e.walk(node.Child(i), source, file)
	}
}

func (e *JavaExtractor) extractPackage(node *sitter.Node, source []byte, file *File) {
	for i := uint(0); i < node.NamedChildCount(); i++ {
		child := node.NamedChild(i)
		switch child.Kind() {
		case "scoped_identifier", "identifier":
			file.PackageName = nodeText(child, source)
			e.addTypeRef(file, child, source, usage.UsageNamespaceDeclaration, node.Kind())
			return
		}
	}
}

func (e *JavaExtractor) extractImport(node *sitter.Node, source []byte, file *File) {
	for i := uint(0); i < node.NamedChildCount(); i++ {
		child := node.NamedChild(i)
		switch child.Kind() {
		case "scoped_identifier", "identifier":
			module := nodeText(child, source)
			file.Imports = append(file.Imports, Import{
				Module:    module,
				RawImport: module,
				Location:  nodeLocation(node, file.Path),
			})
			e.addTypeRef(file, child, source, usage.UsageImport, node.Kind())
			return
		}
	}
}

func (e *JavaExtractor) extractBaseList(node *sitter.Node, source []byte, file *File) {
	for i := uint(0); i < node.NamedChildCount(); i++ {
		child := node.NamedChild(i)
		if child.Kind() == "type_list" {
			for j := uint(0); j < child.NamedChildCount(); j++ {
				if name := baseTypeName(child.NamedChild(j)); name != nil {
					e.addTypeRef(file, name, source, usage.UsageBase, node.Kind())
				}
			}
			continue
		}
		if name := baseTypeName(child); name != nil {
			e.addTypeRef(file, name, source, usage.UsageBase, node.Kind())
		}
	}
}

func (e *JavaExtractor) extractObjectCreation(node *sitter.Node, source []byte, file *File) {
	if name := baseTypeName(node.ChildByFieldName("type")); name != nil {
		e.addTypeRef(file, name, source, usage.UsageObjectCreation, node.Kind())
	}
}

func (e *JavaExtractor) extractTypeArguments(node *sitter.Node, source []byte, file *File) {
	for i := uint(0); i < node.NamedChildCount(); i++ {
		if name := baseTypeName(node.NamedChild(i)); name != nil {
			e.addTypeRef(file, name, source, usage.UsageTypeArgument, node.Kind())
		}
	}
}

func (e *JavaExtractor) extractFieldAccess(node *sitter.Node, source []byte, file *File) {
	object := node.ChildByFieldName("object")
	if object != nil && object.Kind() == "identifier" {
		e.addTypeRef(file, object, source, usage.UsageNameQualifier, node.Kind())
	}
}

func (e *JavaExtractor) extractMethodInvocation(node *sitter.Node, source []byte, file *File) {
	object := node.ChildByFieldName("object")
	if object != nil && object.Kind() == "identifier" {
		e.addTypeRef(file, object, source, usage.UsageNameQualifier, node.Kind())
	}
	if name := node.ChildByFieldName("name"); name != nil {
		e.addValueRef(file, name, source, usage.ValueRead, node.Kind())
	}
}

// extractScopedType records the leading scope of a qualified type name.
func (e *JavaExtractor) extractScopedType(node *sitter.Node, source []byte, file *File) {
	if node.NamedChildCount() == 0 {
		return
	}
	scope := node.NamedChild(0)
	if scope.Kind() == "type_identifier" || scope.Kind() == "identifier" {
		e.addTypeRef(file, scope, source, usage.UsageNameQualifier, node.Kind())
	}
}

func (e *JavaExtractor) extractAssignment(node *sitter.Node, source []byte, file *File) {
	left := node.ChildByFieldName("left")
	if left == nil || left.Kind() != "identifier" {
		return
	}

	kind := usage.ValueReadWrite
	for i := uint(0); i < node.ChildCount(); i++ {
		if node.Child(i).Kind() == "=" {
			kind = usage.ValueWrite
			break
		}
	}
	e.addValueRef(file, left, source, kind, node.Kind())
}

func (e *JavaExtractor) addTypeRef(file *File, node *sitter.Node, source []byte, u usage.TypeOrNamespaceUsage, context string) {
	name := normalizeRefName(nodeText(node, source))
	if name == "" {
		return
	}
	file.References = append(file.References, Reference{
		Name:     name,
		Usage:    usage.ForTypeOrNamespace(u),
		Location: nodeLocation(node, file.Path),
		Context:  context,
	})
}

func (e *JavaExtractor) addValueRef(file *File, node *sitter.Node, source []byte, v usage.ValueUsage, context string) {
	name := normalizeRefName(nodeText(node, source))
	if name == "" {
		return
	}
	file.References = append(file.References, Reference{
		Name:     name,
		Usage:    usage.ForValue(v),
		Location: nodeLocation(node, file.Path),
		Context:  context,
	})
}
