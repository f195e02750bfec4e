// Package diag holds the error taxonomy and pretty-printing used across the
// scanner, parser, analyzer, and interpreter: malformed tokens, unexpected
// parse-tree shapes, unresolved identifiers, and runtime failures all end up
// as a diag.Error so the CLI driver has exactly one place to format them.
package diag

import "fmt"

// Position identifies a single point in a source file, matching the
// SourcePosition the external scanner/parser interface is specified to
// produce (spec.md §6).
type Position struct {
	File   string
	Line   int // 1-indexed; 0 means unknown
	Column int // 1-indexed; 0 means unknown
}

// None is the empty position used for synthetic nodes that have no
// corresponding source text (e.g. built-in environment bindings).
var None = Position{}

func (p Position) IsKnown() bool {
	return p.Line != 0
}

func (p Position) String() string {
	if !p.IsKnown() {
		return "<no source position>"
	}
	if p.File == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}
