// # internal/parser/types.go
package parser

import (
	"time"

	"refscope/internal/usage"
)

type File struct {
	Path        string
	Language    string
	PackageName string // Declared package/namespace name
	Imports     []Import
	References  []Reference
	ParsedAt    time.Time
}

type Import struct {
	Module    string // Imported module path
	RawImport string // Original import string
	Alias     string // Optional alias
	Location  Location
}

// Reference is a single classified occurrence of a symbol name.
type Reference struct {
	Name     string            // Symbol text at the reference site
	Usage    usage.SymbolUsage // How the site uses the symbol
	Location Location
	Context  string // Enclosing syntax kind, for diagnostics
}

type Location struct {
	File   string
	Line   int
	Column int
}
