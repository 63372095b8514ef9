// # internal/index/index_test.go
package index

import (
	"testing"

	"refscope/internal/parser"
	"refscope/internal/usage"
)

func fileWithRefs(path string, refs ...parser.Reference) *parser.File {
	for i := range refs {
		refs[i].Location.File = path
	}
	return &parser.File{
		Path:       path,
		Language:   "go",
		References: refs,
	}
}

func TestIndex_AddRemoveFile(t *testing.T) {
	ix := NewIndex()

	ix.AddFile(fileWithRefs("a.go",
		parser.Reference{Name: "fmt", Usage: usage.ForTypeOrNamespace(usage.UsageImport)},
		parser.Reference{Name: "fmt", Usage: usage.ForTypeOrNamespace(usage.UsageNameQualifier)},
	))

	if ix.FileCount() != 1 {
		t.Errorf("Expected 1 file, got %d", ix.FileCount())
	}
	if ix.SymbolCount() != 1 {
		t.Errorf("Expected 1 symbol, got %d", ix.SymbolCount())
	}
	if got := len(ix.Lookup("fmt")); got != 2 {
		t.Errorf("Expected 2 references, got %d", got)
	}

	ix.RemoveFile("a.go")
	if ix.FileCount() != 0 {
		t.Errorf("Expected 0 files, got %d", ix.FileCount())
	}
	if got := len(ix.Lookup("fmt")); got != 0 {
		t.Errorf("Expected 0 references after removal, got %d", got)
	}
}

func TestIndex_AddFileReplacesPriorContributions(t *testing.T) {
	ix := NewIndex()

	ix.AddFile(fileWithRefs("a.go",
		parser.Reference{Name: "Widget", Usage: usage.ForTypeOrNamespace(usage.UsageObjectCreation)},
	))
	ix.AddFile(fileWithRefs("a.go",
		parser.Reference{Name: "Widget", Usage: usage.ForTypeOrNamespace(usage.UsageBase)},
	))

	refs := ix.Lookup("Widget")
	if len(refs) != 1 {
		t.Fatalf("Expected 1 reference after replacement, got %d", len(refs))
	}
	if !refs[0].Usage.TypeOrNamespace.Has(usage.UsageBase) {
		t.Error("Expected the replacement reference, not the stale one")
	}
}

func TestIndex_GroupByUsage(t *testing.T) {
	ix := NewIndex()

	// Accumulated out of presentation order on purpose.
	ix.AddFile(fileWithRefs("a.go",
		parser.Reference{Name: "Widget", Usage: usage.ForTypeOrNamespace(usage.UsageObjectCreation)},
		parser.Reference{Name: "Widget", Usage: usage.ForTypeOrNamespace(usage.UsageBase)},
		parser.Reference{Name: "Widget", Usage: usage.ForValue(usage.ValueRead)},
	))

	groups := ix.GroupByUsage("Widget")
	if len(groups) != 3 {
		t.Fatalf("Expected 3 groups, got %d", len(groups))
	}
	expected := []string{"Read", "Base Type", "Object Creation"}
	for i, group := range groups {
		if group.Label != expected[i] {
			t.Errorf("Group %d: expected %q, got %q", i, expected[i], group.Label)
		}
		if len(group.References) != 1 {
			t.Errorf("Group %q: expected 1 reference, got %d", group.Label, len(group.References))
		}
	}

	if got := ix.GroupByUsage("Unknown"); got != nil {
		t.Errorf("Expected no groups for an unknown symbol, got %v", got)
	}
}

func TestIndex_UsageCounts(t *testing.T) {
	ix := NewIndex()

	ix.AddFile(fileWithRefs("a.go",
		parser.Reference{Name: "fmt", Usage: usage.ForTypeOrNamespace(usage.UsageImport)},
		parser.Reference{Name: "fmt", Usage: usage.ForTypeOrNamespace(usage.UsageNameQualifier)},
	))
	ix.AddFile(fileWithRefs("b.go",
		parser.Reference{Name: "fmt", Usage: usage.ForTypeOrNamespace(usage.UsageImport)},
		parser.Reference{Name: "count", Usage: usage.ForValue(usage.ValueReadWrite)},
	))

	counts := ix.UsageCounts()
	if counts["Import"] != 2 {
		t.Errorf("Expected 2 imports, got %d", counts["Import"])
	}
	if counts["Name Qualifier"] != 1 {
		t.Errorf("Expected 1 name qualifier, got %d", counts["Name Qualifier"])
	}
	// ReadWrite decomposes into both labels.
	if counts["Read"] != 1 || counts["Write"] != 1 {
		t.Errorf("Expected read/write counts 1/1, got %d/%d", counts["Read"], counts["Write"])
	}
}

func TestIndex_DirtyTracking(t *testing.T) {
	ix := NewIndex()

	ix.MarkDirty("b.go")
	ix.MarkDirty("a.go")

	paths := ix.DirtyPaths()
	if len(paths) != 2 || paths[0] != "a.go" || paths[1] != "b.go" {
		t.Errorf("Expected sorted dirty paths [a.go b.go], got %v", paths)
	}

	ix.AddFile(fileWithRefs("a.go"))
	if paths := ix.DirtyPaths(); len(paths) != 1 || paths[0] != "b.go" {
		t.Errorf("Expected AddFile to clear the dirty flag, got %v", paths)
	}

	ix.RemoveFile("b.go")
	if paths := ix.DirtyPaths(); len(paths) != 0 {
		t.Errorf("Expected RemoveFile to clear the dirty flag even for an unindexed path, got %v", paths)
	}
}
