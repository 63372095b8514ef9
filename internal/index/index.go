// # internal/index/index.go
package index

import (
	"sort"
	"sync"

	"refscope/internal/parser"
	"refscope/internal/usage"
)

// Index is the in-memory symbol reference index. Files contribute classified
// references; lookups group them for find-references style presentation.
type Index struct {
	mu sync.RWMutex

	files map[string]*parser.File     // path -> file
	refs  map[string][]parser.Reference // symbol -> references

	// Invalidation tracking
	dirty map[string]bool // Files needing re-classification
}

// Group is one usage bucket of a symbol's references.
type Group struct {
	Label      string
	References []parser.Reference
}

func NewIndex() *Index {
	return &Index{
		files: make(map[string]*parser.File),
		refs:  make(map[string][]parser.Reference),
		dirty: make(map[string]bool),
	}
}

func (ix *Index) AddFile(file *parser.File) {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	// Replace prior contributions so edits never leave stale references.
	if _, exists := ix.files[file.Path]; exists {
		ix.removeFileLocked(file.Path)
	}

	clone := cloneFile(file)
	ix.files[file.Path] = clone
	for _, ref := range clone.References {
		ix.refs[ref.Name] = append(ix.refs[ref.Name], ref)
	}
	delete(ix.dirty, file.Path)
}

func (ix *Index) RemoveFile(path string) {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.removeFileLocked(path)
}

func (ix *Index) removeFileLocked(path string) {
	delete(ix.dirty, path)
	file, ok := ix.files[path]
	if !ok {
		return
	}
	for _, ref := range file.References {
		kept := ix.refs[ref.Name][:0]
		for _, existing := range ix.refs[ref.Name] {
			if existing.Location.File != path {
				kept = append(kept, existing)
			}
		}
		if len(kept) == 0 {
			delete(ix.refs, ref.Name)
		} else {
			ix.refs[ref.Name] = kept
		}
	}
	delete(ix.files, path)
}

// MarkDirty flags a path for re-classification after a change event.
func (ix *Index) MarkDirty(path string) {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.dirty[path] = true
}

func (ix *Index) DirtyPaths() []string {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	paths := make([]string, 0, len(ix.dirty))
	for path := range ix.dirty {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

// Lookup returns every reference to a symbol, ordered by file then line.
func (ix *Index) Lookup(symbol string) []parser.Reference {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	refs := append([]parser.Reference(nil), ix.refs[symbol]...)
	sort.Slice(refs, func(i, j int) bool {
		if refs[i].Location.File != refs[j].Location.File {
			return refs[i].Location.File < refs[j].Location.File
		}
		return refs[i].Location.Line < refs[j].Location.Line
	})
	return refs
}

// GroupByUsage buckets a symbol's references by usage label. Group order is
// the fixed label declaration order: value labels first, then the
// type-or-namespace labels.
func (ix *Index) GroupByUsage(symbol string) []Group {
	refs := ix.Lookup(symbol)
	if len(refs) == 0 {
		return nil
	}

	byLabel := make(map[string][]parser.Reference)
	for _, ref := range refs {
		for _, label := range ref.Usage.Labels() {
			byLabel[label] = append(byLabel[label], ref)
		}
	}

	var groups []Group
	for _, label := range usage.AllLabels() {
		if bucket, ok := byLabel[label]; ok {
			groups = append(groups, Group{Label: label, References: bucket})
		}
	}
	return groups
}

// UsageCounts aggregates reference counts per usage label across the whole
// index, keyed in fixed label order.
func (ix *Index) UsageCounts() map[string]int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	counts := make(map[string]int)
	for _, file := range ix.files {
		for _, ref := range file.References {
			for _, label := range ref.Usage.Labels() {
				counts[label]++
			}
		}
	}
	return counts
}

// Symbols returns every indexed symbol name, sorted.
func (ix *Index) Symbols() []string {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	symbols := make([]string, 0, len(ix.refs))
	for symbol := range ix.refs {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)
	return symbols
}

func (ix *Index) FileCount() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.files)
}

func (ix *Index) SymbolCount() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.refs)
}

func (ix *Index) ReferenceCount() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	total := 0
	for _, refs := range ix.refs {
		total += len(refs)
	}
	return total
}

func (ix *Index) GetFile(path string) (*parser.File, bool) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	file, ok := ix.files[path]
	if !ok {
		return nil, false
	}
	return cloneFile(file), true
}

func (ix *Index) FilePaths() []string {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	paths := make([]string, 0, len(ix.files))
	for path := range ix.files {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

func cloneFile(file *parser.File) *parser.File {
	clone := *file
	clone.Imports = append([]parser.Import(nil), file.Imports...)
	clone.References = append([]parser.Reference(nil), file.References...)
	return &clone
}
