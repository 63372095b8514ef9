// # internal/parser/golang.go
package parser

import (
	"time"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"refscope/internal/usage"
)

// GoExtractor classifies how each type, package, and value name is used in a
// Go source file.
type GoExtractor struct{}

func (e *GoExtractor) Extract(root *sitter.Node, source []byte, filePath string) (*File, error) {
	file := &File{
		Path:     filePath,
		Language: "go",
		ParsedAt: time.Now(),
	}

	e.walk(root, source, file)

	return file, nil
}

func (e *GoExtractor) walk(node *sitter.Node, source []byte, file *File) {
	switch node.Kind() {
	case "package_clause":
		e.extractPackage(node, source, file)
	case "import_declaration":
		e.extractImports(node, source, file)
	case "selector_expression":
		e.extractSelector(node, source, file)
	case "qualified_type":
		e.extractQualifiedType(node, source, file)
	case "type_arguments":
		e.extractTypeArguments(node, source, file)
	case "composite_literal":
		e.extractCompositeLiteral(node, source, file)
	case "call_expression":
		e.extractCall(node, source, file)
	case "struct_type":
		e.extractEmbeddedFields(node, source, file)
	case "interface_type":
		e.extractEmbeddedInterfaces(node, source, file)
	case "assignment_statement":
		e.extractAssignment(node, source, file)
	case "inc_statement", "dec_statement":
		e.extractIncDec(node, source, file)
	case "unary_expression":
		e.extractUnary(node, source, file)
	}

	for i := uint(0); i < node.ChildCount(); i++ {
		e.walk(node.Child(i), source, file)
	}
}

func (e *GoExtractor) extractPackage(node *sitter.Node, source []byte, file *File) {
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child.Kind() == "package_identifier" {
			file.PackageName = nodeText(child, source)
			e.addTypeRef(file, child, source, usage.UsageNamespaceDeclaration, node.Kind())
		}
	}
}

func (e *GoExtractor) extractImports(node *sitter.Node, source []byte, file *File) {
	e.walkImportSpecs(node, source, file)
}

func (e *GoExtractor) walkImportSpecs(node *sitter.Node, source []byte, file *File) {
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)

		if child.Kind() != "import_spec" {
			e.walkImportSpecs(child, source, file)
			continue
		}

		var alias, path string
		var pathNode *sitter.Node

		for j := uint(0); j < child.ChildCount(); j++ {
			spec := child.Child(j)
			switch spec.Kind() {
			case "package_identifier", "blank_identifier", "dot":
				alias = nodeText(spec, source)
			case "interpreted_string_literal", "raw_string_literal":
				pathNode = spec
				path = trimQuoted(nodeText(spec, source))
			}
		}

		if path == "" {
			continue
		}

		file.Imports = append(file.Imports, Import{
			Module:    path,
			RawImport: path,
			Alias:     alias,
			Location:  nodeLocation(child, file.Path),
		})
		file.References = append(file.References, Reference{
			Name:     path,
			Usage:    usage.ForTypeOrNamespace(usage.UsageImport),
			Location: nodeLocation(pathNode, file.Path),
			Context:  "import_spec",
		})
	}
}

func (e *GoExtractor) extractSelector(node *sitter.Node, source []byte, file *File) {
	operand := node.ChildByFieldName("operand")
	if operand != nil && operand.Kind() == "identifier" {
		e.addTypeRef(file, operand, source, usage.UsageNameQualifier, node.Kind())
	}
}

func (e *GoExtractor) extractQualifiedType(node *sitter.Node, source []byte, file *File) {
	if pkg := node.ChildByFieldName("package"); pkg != nil {
		e.addTypeRef(file, pkg, source, usage.UsageNameQualifier, node.Kind())
	}
}

func (e *GoExtractor) extractTypeArguments(node *sitter.Node, source []byte, file *File) {
	for i := uint(0); i < node.NamedChildCount(); i++ {
		if name := baseTypeName(node.NamedChild(i)); name != nil {
			e.addTypeRef(file, name, source, usage.UsageTypeArgument, node.Kind())
		}
	}
}

func (e *GoExtractor) extractCompositeLiteral(node *sitter.Node, source []byte, file *File) {
	if name := baseTypeName(node.ChildByFieldName("type")); name != nil {
		e.addTypeRef(file, name, source, usage.UsageObjectCreation, node.Kind())
	}
}

func (e *GoExtractor) extractCall(node *sitter.Node, source []byte, file *File) {
	function := node.ChildByFieldName("function")
	if function == nil {
		return
	}

	// new(T) instantiates its type argument.
	if function.Kind() == "identifier" && nodeText(function, source) == "new" {
		args := node.ChildByFieldName("arguments")
		if args != nil && args.NamedChildCount() > 0 {
			if name := baseTypeName(args.NamedChild(0)); name != nil {
				e.addTypeRef(file, name, source, usage.UsageObjectCreation, node.Kind())
			}
		}
		return
	}

	// The invocation target's value is read.
	var target *sitter.Node
	switch function.Kind() {
	case "identifier":
		target = function
	case "selector_expression":
		target = function.ChildByFieldName("field")
	}
	if target != nil {
		e.addValueRef(file, target, source, usage.ValueRead, node.Kind())
	}
}

// extractEmbeddedFields records struct fields declared without a name, which
// embed their type.
func (e *GoExtractor) extractEmbeddedFields(node *sitter.Node, source []byte, file *File) {
	var fields *sitter.Node
	for i := uint(0); i < node.NamedChildCount(); i++ {
		if node.NamedChild(i).Kind() == "field_declaration_list" {
			fields = node.NamedChild(i)
			break
		}
	}
	if fields == nil {
		return
	}

	for i := uint(0); i < fields.NamedChildCount(); i++ {
		decl := fields.NamedChild(i)
		if decl.Kind() != "field_declaration" {
			continue
		}
		if decl.ChildByFieldName("name") != nil {
			continue
		}
		if name := baseTypeName(decl.ChildByFieldName("type")); name != nil {
			e.addTypeRef(file, name, source, usage.UsageBase, decl.Kind())
		}
	}
}

func (e *GoExtractor) extractEmbeddedInterfaces(node *sitter.Node, source []byte, file *File) {
	for i := uint(0); i < node.NamedChildCount(); i++ {
		child := node.NamedChild(i)
		switch child.Kind() {
		case "type_identifier", "qualified_type", "type_elem":
			if name := baseTypeName(child); name != nil {
				e.addTypeRef(file, name, source, usage.UsageBase, node.Kind())
			}
		}
	}
}

func (e *GoExtractor) extractAssignment(node *sitter.Node, source []byte, file *File) {
	kind := usage.ValueReadWrite
	for i := uint(0); i < node.ChildCount(); i++ {
		if node.Child(i).Kind() == "=" {
			kind = usage.ValueWrite
			break
		}
	}

	left := node.ChildByFieldName("left")
	if left == nil {
		return
	}
	for i := uint(0); i < left.NamedChildCount(); i++ {
		target := left.NamedChild(i)
		if target.Kind() == "identifier" {
			e.addValueRef(file, target, source, kind, node.Kind())
		}
	}
}

func (e *GoExtractor) extractIncDec(node *sitter.Node, source []byte, file *File) {
	if node.NamedChildCount() == 0 {
		return
	}
	target := node.NamedChild(0)
	if target.Kind() == "identifier" {
		e.addValueRef(file, target, source, usage.ValueReadWrite, node.Kind())
	}
}

func (e *GoExtractor) extractUnary(node *sitter.Node, source []byte, file *File) {
	operator := node.ChildByFieldName("operator")
	if operator == nil || nodeText(operator, source) != "&" {
		return
	}
	operand := node.ChildByFieldName("operand")
	if operand != nil && operand.Kind() == "identifier" {
		e.addValueRef(file, operand, source, usage.ValueReadableReference, node.Kind())
	}
}

func (e *GoExtractor) addTypeRef(file *File, node *sitter.Node, source []byte, u usage.TypeOrNamespaceUsage, context string) {
	name := normalizeRefName(nodeText(node, source))
	if name == "" || name == "_" {
		return
	}
	file.References = append(file.References, Reference{
		Name:     name,
		Usage:    usage.ForTypeOrNamespace(u),
		Location: nodeLocation(node, file.Path),
		Context:  context,
	})
}

func (e *GoExtractor) addValueRef(file *File, node *sitter.Node, source []byte, v usage.ValueUsage, context string) {
	name := normalizeRefName(nodeText(node, source))
	if name == "" || name == "_" {
		return
	}
	file.References = append(file.References, Reference{
		Name:     name,
		Usage:    usage.ForValue(v),
		Location: nodeLocation(node, file.Path),
		Context:  context,
	})
}
