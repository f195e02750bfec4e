package ir

import "github.com/dekarrin/stgraph/internal/mop"

// SequenceEntry is the unique entry point of a sequencing spine (a
// TopLevelScript's or a Block's). It has no predecessor of its own.
type SequenceEntry struct{ mop.Header }

func NewSequenceEntry(d mop.Derivation) *SequenceEntry {
	return &SequenceEntry{mop.Header{Kind: KindSequenceEntry, Derivation: d}}
}

// SequenceReturn is a spine terminator that yields Value as the result of
// whichever script or block owns this spine.
type SequenceReturn struct {
	mop.Header
	Value       Node
	Predecessor Node
}

func NewSequenceReturn(d mop.Derivation, value, predecessor Node) *SequenceReturn {
	return &SequenceReturn{Header: mop.Header{Kind: KindSequenceReturn, Derivation: d}, Value: value, Predecessor: predecessor}
}

func init() {
	mop.RegisterKind(mop.KindDescriptor{Kind: KindSequenceEntry, Parent: KindSequencingNode})
	mop.RegisterKind(mop.KindDescriptor{
		Kind: KindSequenceReturn, Parent: KindSequencingNode,
		Attrs: []mop.AttrDescriptor{
			{Name: "value", Role: mop.RoleDataInputPort, Compared: false, Get: func(n mop.Node) mop.AttrValue { return mop.NodeAttr(n.(*SequenceReturn).Value) }},
			{Name: "predecessor", Role: mop.RoleSequencingPredecessor, Compared: false, Get: func(n mop.Node) mop.AttrValue { return mop.NodeAttr(n.(*SequenceReturn).Predecessor) }},
		},
	})
}

// ConditionalBranch is the sole branching node: it diverges control to
// TrueDestination or FalseDestination depending on Condition, and is itself
// the sequencing predecessor every SequenceBranchEnd along either arm
// points back to.
type ConditionalBranch struct {
	mop.Header
	Condition       Node
	TrueDestination Node
	FalseDestination Node
	Predecessor     Node
}

func NewConditionalBranch(d mop.Derivation, condition, trueDest, falseDest, predecessor Node) *ConditionalBranch {
	return &ConditionalBranch{
		Header: mop.Header{Kind: KindConditionalBranch, Derivation: d},
		Condition: condition, TrueDestination: trueDest, FalseDestination: falseDest, Predecessor: predecessor,
	}
}

func init() {
	mop.RegisterKind(mop.KindDescriptor{
		Kind: KindConditionalBranch, Parent: KindSequenceDivergenceNode,
		Attrs: []mop.AttrDescriptor{
			{Name: "condition", Role: mop.RoleDataInputPort, Compared: false, Get: func(n mop.Node) mop.AttrValue { return mop.NodeAttr(n.(*ConditionalBranch).Condition) }},
			{Name: "trueDestination", Role: mop.RoleSequencingDestination, Compared: false, Get: func(n mop.Node) mop.AttrValue { return mop.NodeAttr(n.(*ConditionalBranch).TrueDestination) }},
			{Name: "falseDestination", Role: mop.RoleSequencingDestination, Compared: false, Get: func(n mop.Node) mop.AttrValue { return mop.NodeAttr(n.(*ConditionalBranch).FalseDestination) }},
			{Name: "predecessor", Role: mop.RoleSequencingPredecessor, Compared: false, Get: func(n mop.Node) mop.AttrValue { return mop.NodeAttr(n.(*ConditionalBranch).Predecessor) }},
		},
	})
}

// SequenceBranchEnd marks the end of one arm of a divergence, pointing both
// at its own Predecessor (the last spine node along that arm) and at
// Divergence (the ConditionalBranch the arm came from), so a
// SequenceConvergence can tell which arm each incoming edge belongs to.
type SequenceBranchEnd struct {
	mop.Header
	Predecessor Node
	Divergence  Node
}

func NewSequenceBranchEnd(d mop.Derivation, predecessor, divergence Node) *SequenceBranchEnd {
	return &SequenceBranchEnd{Header: mop.Header{Kind: KindSequenceBranchEnd, Derivation: d}, Predecessor: predecessor, Divergence: divergence}
}

func init() {
	mop.RegisterKind(mop.KindDescriptor{
		Kind: KindSequenceBranchEnd, Parent: KindSequencingNode,
		Attrs: []mop.AttrDescriptor{
			{Name: "predecessor", Role: mop.RoleSequencingPredecessor, Compared: false, Get: func(n mop.Node) mop.AttrValue { return mop.NodeAttr(n.(*SequenceBranchEnd).Predecessor) }},
			{Name: "divergence", Role: mop.RoleSequencingPredecessor, Compared: false, Get: func(n mop.Node) mop.AttrValue { return mop.NodeAttr(n.(*SequenceBranchEnd).Divergence) }},
		},
	})
}

// SequenceConvergence is where the arms of a divergence rejoin into a
// single spine again; Phi nodes reading this convergence's Predecessors
// pick the value matching whichever arm control actually took.
type SequenceConvergence struct {
	mop.Header
	Divergence   Node
	Predecessors []Node
}

func NewSequenceConvergence(d mop.Derivation, divergence Node, predecessors []Node) *SequenceConvergence {
	return &SequenceConvergence{Header: mop.Header{Kind: KindSequenceConvergence, Derivation: d}, Divergence: divergence, Predecessors: predecessors}
}

func init() {
	mop.RegisterKind(mop.KindDescriptor{
		Kind: KindSequenceConvergence, Parent: KindSequencingNode,
		Attrs: []mop.AttrDescriptor{
			{Name: "divergence", Role: mop.RoleSequencingPredecessor, Compared: false, Get: func(n mop.Node) mop.AttrValue { return mop.NodeAttr(n.(*SequenceConvergence).Divergence) }},
			{Name: "predecessors", Role: mop.RoleSequencingPredecessors, Compared: false, Get: func(n mop.Node) mop.AttrValue { return mop.NodeListAttr(n.(*SequenceConvergence).Predecessors) }},
		},
	})
}
