package build

import (
	"github.com/dekarrin/stgraph/internal/ir"
	"github.com/dekarrin/stgraph/internal/mop"
)

// Builder deduplicates pure-data nodes by global value numbering and tracks
// the current position along the sequencing spine as nodes are appended to
// it, grounded on original_source/pyst/mop.py's ASGBuilderWithGVN. A
// Builder can chain to a parentBuilder (analyzing a block body chains to
// the builder for its enclosing script) so a pure-data node built once in
// an outer scope is reused rather than rebuilt inside every nested block
// that references it.
type Builder struct {
	parent             *Builder
	builtNodes         map[uint64][]ir.Node
	currentPredecessor ir.Node
}

// NewBuilder returns a Builder chained to parent. parent may be nil for a
// top-level script's builder.
func NewBuilder(parent *Builder) *Builder {
	return &Builder{parent: parent, builtNodes: map[uint64][]ir.Node{}}
}

// Memento captures the builder's current spine position so a failed
// speculative expansion can roll back to it with RestoreMemento. It does
// not undo GVN entries: a pure-data node built speculatively and then
// discarded is harmless to leave registered, since nothing will reference
// it and an identical future build will simply reuse it.
type Memento struct {
	predecessor ir.Node
}

func (b *Builder) Memento() Memento {
	return Memento{predecessor: b.currentPredecessor}
}

func (b *Builder) RestoreMemento(m Memento) {
	b.currentPredecessor = m.predecessor
}

// CurrentPredecessor is the most recently built sequencing node, the spine
// position the next sequencing node built should name as its predecessor.
func (b *Builder) CurrentPredecessor() ir.Node {
	return b.currentPredecessor
}

func (b *Builder) unifyChildNode(n ir.Node) ir.Node {
	hash := mop.UnificationHash(n)
	for _, candidate := range b.builtNodes[hash] {
		if mop.UnificationEquals(candidate, n) {
			return candidate
		}
	}
	if b.parent != nil {
		return b.parent.unifyChildNode(n)
	}
	return nil
}

func (b *Builder) unifyWithPreviouslyBuiltNode(n ir.Node) ir.Node {
	if n == nil || !ir.IsPureDataNode(n) {
		return n
	}
	if existing := b.unifyChildNode(n); existing != nil {
		return existing
	}
	hash := mop.UnificationHash(n)
	b.builtNodes[hash] = append(b.builtNodes[hash], n)
	return n
}

func (b *Builder) updatePredecessorWith(n ir.Node) ir.Node {
	if ir.IsSequencingNode(n) || mop.IsKindOf(n.Header().Kind, ir.KindSequencingAndDataNode) {
		b.currentPredecessor = n
	}
	return n
}

// Build runs n through GVN (returning a previously-built equal node in
// place of n if one already exists in this builder or any ancestor) and,
// if the surviving node sits on the sequencing spine, advances
// CurrentPredecessor to it.
func (b *Builder) Build(n ir.Node) ir.Node {
	return b.updatePredecessorWith(b.unifyWithPreviouslyBuiltNode(n))
}

// BuildAndSequence is Build for a node that is always a sequencing node
// (every statement the expansion pass appends to a spine goes through
// this), kept as a distinct name so call sites read the way
// forSyntaxExpansionBuildAndSequence does in the original.
func (b *Builder) BuildAndSequence(n ir.Node) ir.Node {
	return b.Build(n)
}
