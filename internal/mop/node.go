package mop

import "github.com/dekarrin/stgraph/internal/diag"

// Node is implemented by every node struct in the syntax and analyzed
// graphs. Identity is the Go pointer itself (see DESIGN.md's note on
// choosing pointers over an arena + handle); Header carries the bookkeeping
// every kind needs regardless of its own fields.
type Node interface {
	Header() *Header
}

// Header is embedded by every concrete node struct. It is filled in once at
// construction time and never mutated afterward except for the memoization
// caches below, which are safe because the graph is built bottom-up and
// never mutated in place once a node's children are fixed.
type Header struct {
	Kind       Kind
	Derivation Derivation

	betaDepsComputed bool
	betaDeps         []Node

	unifHashComputed bool
	unifHash         uint64
}

func (h *Header) Header() *Header { return h }

// DerivationKind classifies why a node exists, mirroring the original's
// ASGNodeDerivation subclasses.
type DerivationKind int

const (
	// DerivationNone marks a synthetic node with no source text, e.g. a
	// built-in environment binding.
	DerivationNone DerivationKind = iota
	// DerivationSourceCode marks a node produced directly by parsing.
	DerivationSourceCode
	// DerivationSyntaxExpansion marks a node produced while expanding a
	// syntax node into its analyzed form.
	DerivationSyntaxExpansion
	// DerivationCoercionExpansion marks a node inserted to coerce a
	// value from one expected shape to another.
	DerivationCoercionExpansion
	// DerivationReduction marks a node produced by constant-folding a
	// primitive application at compile time.
	DerivationReduction
	// DerivationUnification marks the surviving side of a GVN merge.
	DerivationUnification
)

// Derivation records where a node came from: either a position in the
// original source text, or a link back to the node it was expanded,
// coerced, reduced, or unified from. SourcePosition walks that link lazily,
// same as the original's ASGNodeExpansionDerivation.getSourcePosition.
type Derivation struct {
	Kind   DerivationKind
	Pos    diag.Position
	Source Node
}

// SourceCodeDerivation builds the derivation for a node parsed directly
// from source text at pos.
func SourceCodeDerivation(pos diag.Position) Derivation {
	return Derivation{Kind: DerivationSourceCode, Pos: pos}
}

// ExpansionDerivation builds the derivation for a node produced by
// expanding source, of the given flavor.
func ExpansionDerivation(kind DerivationKind, source Node) Derivation {
	return Derivation{Kind: kind, Source: source}
}

// NoDerivation is the derivation for synthetic nodes with no source
// position at all.
var NoDerivation = Derivation{Kind: DerivationNone}

// SourcePosition returns the source position this derivation ultimately
// traces back to, following expansion/unification links until it reaches a
// SourceCodeDerivation or runs out of links.
func (d Derivation) SourcePosition() diag.Position {
	switch d.Kind {
	case DerivationSourceCode:
		return d.Pos
	case DerivationSyntaxExpansion, DerivationCoercionExpansion, DerivationReduction, DerivationUnification:
		if d.Source != nil {
			return d.Source.Header().Derivation.SourcePosition()
		}
	}
	return diag.None
}

// SourceNodeDerivations returns the node(s) this derivation points back to,
// for walking a node's full derivation chain (used by diagnostics and
// dotviz to explain where a node "came from").
func (d Derivation) SourceNodeDerivations() []Node {
	if d.Source != nil {
		return []Node{d.Source}
	}
	return nil
}
