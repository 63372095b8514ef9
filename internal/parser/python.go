// # internal/parser/python.go
package parser

import (
	"strings"
	"time"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"refscope/internal/usage"
)

// PythonExtractor classifies symbol usage in a Python source file. Python has
// no namespace declarations, so that usage kind never occurs here.
type PythonExtractor struct{}

func (e *PythonExtractor) Extract(root *sitter.Node, source []byte, filePath string) (*File, error) {
	file := &File{
		Path:     filePath,
		Language: "python",
		ParsedAt: time.Now(),
	}

	e.walk(root, source, file)

	return file, nil
}

func (e *PythonExtractor) walk(node *sitter.Node, source []byte, file *File) {
	switch node.Kind() {
	case "import_statement":
		e.extractImport(node, source, file)
	case "import_from_statement":
		e.extractFromImport(node, source, file)
	case "attribute":
		e.extractAttribute(node, source, file)
	case "class_definition":
		e.extractSuperclasses(node, source, file)
	case "call":
		e.extractCall(node, source, file)
	case "generic_type":
		e.extractGenericType(node, source, file)
	case "assignment":
		e.extractAssignment(node, source, file, usage.ValueWrite)
	case "augmented_assignment":
		e.extractAssignment(node, source, file, usage.ValueReadWrite)
	}

	for i := uint(0); i < node.ChildCount(); i++ {
		e.walk(node.Child(i), source, file)
	}
}

func (e *PythonExtractor) extractImport(node *sitter.Node, source []byte, file *File) {
	for i := uint(0); i < node.NamedChildCount(); i++ {
		child := node.NamedChild(i)
		switch child.Kind() {
		case "dotted_name":
			e.addImport(file, child, source, nodeText(child, source), "")
		case "aliased_import":
			name := child.ChildByFieldName("name")
			alias := child.ChildByFieldName("alias")
			if name != nil {
				e.addImport(file, name, source, nodeText(name, source), nodeText(alias, source))
			}
		}
	}
}

func (e *PythonExtractor) extractFromImport(node *sitter.Node, source []byte, file *File) {
	module := node.ChildByFieldName("module_name")
	if module == nil {
		return
	}
	moduleName := nodeText(module, source)
	e.addImport(file, module, source, moduleName, "")

	// Imported items are usage targets of the directive too.
	sawImportKeyword := false
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child.Kind() == "import" {
			sawImportKeyword = true
			continue
		}
		if !sawImportKeyword {
			continue
		}
		switch child.Kind() {
		case "dotted_name":
			e.addTypeRef(file, child, source, usage.UsageImport, node.Kind())
		case "aliased_import":
			if name := child.ChildByFieldName("name"); name != nil {
				e.addTypeRef(file, name, source, usage.UsageImport, node.Kind())
			}
		case "wildcard_import":
			e.addTypeRef(file, child, source, usage.UsageImport, node.Kind())
		}
	}
}

func (e *PythonExtractor) extractAttribute(node *sitter.Node, source []byte, file *File) {
	object := node.ChildByFieldName("object")
	if object != nil && object.Kind() == "identifier" {
		e.addTypeRef(file, object, source, usage.UsageNameQualifier, node.Kind())
	}
}

func (e *PythonExtractor) extractSuperclasses(node *sitter.Node, source []byte, file *File) {
	superclasses := node.ChildByFieldName("superclasses")
	if superclasses == nil {
		return
	}
	for i := uint(0); i < superclasses.NamedChildCount(); i++ {
		child := superclasses.NamedChild(i)
		switch child.Kind() {
		case "identifier", "attribute", "subscript":
			if name := baseTypeName(child); name != nil {
				e.addTypeRef(file, name, source, usage.UsageBase, node.Kind())
			}
		}
	}
}

// extractCall treats a call to a capitalized name as an instantiation. This
// follows PEP 8 naming; a resolver with real type information could do
// better, but classification is purely syntactic here.
func (e *PythonExtractor) extractCall(node *sitter.Node, source []byte, file *File) {
	function := node.ChildByFieldName("function")
	if function == nil {
		return
	}

	var target *sitter.Node
	switch function.Kind() {
	case "identifier":
		target = function
	case "attribute":
		target = function.ChildByFieldName("attribute")
	}
	if target == nil {
		return
	}

	name := nodeText(target, source)
	if isCapitalized(name) && !strings.Contains(name, "_") {
		e.addTypeRef(file, target, source, usage.UsageObjectCreation, node.Kind())
	} else {
		e.addValueRef(file, target, source, usage.ValueRead, node.Kind())
	}
}

func (e *PythonExtractor) extractGenericType(node *sitter.Node, source []byte, file *File) {
	for i := uint(0); i < node.NamedChildCount(); i++ {
		child := node.NamedChild(i)
		if child.Kind() != "type_parameter" {
			continue
		}
		for j := uint(0); j < child.NamedChildCount(); j++ {
			if name := baseTypeName(child.NamedChild(j)); name != nil {
				e.addTypeRef(file, name, source, usage.UsageTypeArgument, node.Kind())
			}
		}
	}
}

func (e *PythonExtractor) extractAssignment(node *sitter.Node, source []byte, file *File, kind usage.ValueUsage) {
	left := node.ChildByFieldName("left")
	if left == nil {
		return
	}
	switch left.Kind() {
	case "identifier":
		e.addValueRef(file, left, source, kind, node.Kind())
	case "pattern_list", "tuple_pattern":
		for i := uint(0); i < left.NamedChildCount(); i++ {
			target := left.NamedChild(i)
			if target.Kind() == "identifier" {
				e.addValueRef(file, target, source, kind, node.Kind())
			}
		}
	}
}

func (e *PythonExtractor) addImport(file *File, node *sitter.Node, source []byte, module, alias string) {
	module = normalizeRefName(module)
	if module == "" {
		return
	}
	file.Imports = append(file.Imports, Import{
		Module:    module,
		RawImport: module,
		Alias:     alias,
		Location:  nodeLocation(node, file.Path),
	})
	file.References = append(file.References, Reference{
		Name:     module,
		Usage:    usage.ForTypeOrNamespace(usage.UsageImport),
		Location: nodeLocation(node, file.Path),
		Context:  "import",
	})
}

func (e *PythonExtractor) addTypeRef(file *File, node *sitter.Node, source []byte, u usage.TypeOrNamespaceUsage, context string) {
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

func (e *PythonExtractor) addValueRef(file *File, node *sitter.Node, source []byte, v usage.ValueUsage, context string) {
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
