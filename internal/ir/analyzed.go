package ir

import "github.com/dekarrin/stgraph/internal/mop"

// Argument is an activation-context parameter: the Nth value an
// application binds when it calls into a block. Index addresses the flat
// activation-record layout internal/interp builds (spec.md §4.5's
// `[constants | activation params | body]` encoding).
type Argument struct {
	mop.Header
	Index      int
	Name       string // diagnostic only, never compared
	IsImplicit bool
}

func NewArgument(d mop.Derivation, index int, name string, isImplicit bool) *Argument {
	return &Argument{Header: mop.Header{Kind: KindArgument, Derivation: d}, Index: index, Name: name, IsImplicit: isImplicit}
}

// CapturedValue closes over a value defined outside the block currently
// being analyzed. internal/build's functional-analysis environment is what
// decides when a lookup needs to produce one of these (see DESIGN.md open
// question 3 for the transitive-capture edge case).
type CapturedValue struct {
	mop.Header
	Value Node
}

func NewCapturedValue(d mop.Derivation, value Node) *CapturedValue {
	return &CapturedValue{Header: mop.Header{Kind: KindCapturedValue, Derivation: d}, Value: value}
}

func init() {
	mop.RegisterKind(mop.KindDescriptor{
		Kind: KindArgument, Parent: KindBetaReplaceableNode,
		Attrs: []mop.AttrDescriptor{
			{Name: "index", Role: mop.RoleData, Compared: true, Get: func(n mop.Node) mop.AttrValue { return mop.IntAttr(int64(n.(*Argument).Index)) }},
			{Name: "name", Role: mop.RoleData, Compared: false, Get: func(n mop.Node) mop.AttrValue { return mop.StringAttr(n.(*Argument).Name) }},
			{Name: "isImplicit", Role: mop.RoleData, Compared: true, Get: func(n mop.Node) mop.AttrValue { return mop.BoolAttr(n.(*Argument).IsImplicit) }},
		},
	})
	mop.RegisterKind(mop.KindDescriptor{
		Kind: KindCapturedValue, Parent: KindBetaReplaceableNode,
		Attrs: []mop.AttrDescriptor{
			{Name: "value", Role: mop.RoleDataInputPort, Compared: true, Get: func(n mop.Node) mop.AttrValue { return mop.NodeAttr(n.(*CapturedValue).Value) }},
		},
	})
}

// Array is an immutable literal array value.
type Array struct {
	mop.Header
	Elements []Node
}

func NewArray(d mop.Derivation, elements []Node) *Array {
	return &Array{Header: mop.Header{Kind: KindArray, Derivation: d}, Elements: elements}
}

// MutableArray is an array literal with at least one computed (non-literal)
// element; internal/analyze builds an all-literal array as Array instead.
// It has the same shape as Array but is never GVN-deduplicated, since
// distinct evaluations must produce distinct mutable storage.
type MutableArray struct {
	mop.Header
	Elements []Node
}

func NewMutableArray(d mop.Derivation, elements []Node) *MutableArray {
	return &MutableArray{Header: mop.Header{Kind: KindMutableArray, Derivation: d}, Elements: elements}
}

func init() {
	mop.RegisterKind(mop.KindDescriptor{
		Kind: KindArray, Parent: KindAnalyzedDataExpressionNode,
		Attrs: []mop.AttrDescriptor{
			{Name: "elements", Role: mop.RoleDataInputPorts, Compared: true, Get: func(n mop.Node) mop.AttrValue { return mop.NodeListAttr(n.(*Array).Elements) }},
		},
	})
	mop.RegisterKind(mop.KindDescriptor{
		Kind: KindMutableArray, Parent: KindAnalyzedStatefulExpressionNode,
		Attrs: []mop.AttrDescriptor{
			// stateful nodes are never unified; Compared is left false
			// throughout so two textually-identical brace arrays stay
			// distinct allocations, matching ASGAnalyzedStatefullExpressionNode.
			{Name: "elements", Role: mop.RoleDataInputPorts, Compared: false, Get: func(n mop.Node) mop.AttrValue { return mop.NodeListAttr(n.(*MutableArray).Elements) }},
		},
	})
}

// BlockDefinition is the code shape of a block literal: its formal
// captures and arguments and its own entry/exit sequencing spine, with no
// reference yet to which outer values those captures actually resolve to
// at this evaluation. Node-valued attributes unify by identity, and every
// block literal gets fresh Arguments and a fresh entry/exit spine, so two
// block literals never unify to one BlockDefinition, even with identical
// bodies.
type BlockDefinition struct {
	mop.Header
	Captures   []Node
	Arguments  []Node
	EntryPoint Node
	ExitPoint  Node
	Name       string
}

func NewBlockDefinition(d mop.Derivation, captures, arguments []Node, entryPoint, exitPoint Node, name string) *BlockDefinition {
	return &BlockDefinition{
		Header: mop.Header{Kind: KindBlockDefinition, Derivation: d},
		Captures: captures, Arguments: arguments, EntryPoint: entryPoint, ExitPoint: exitPoint, Name: name,
	}
}

// BlockInstance pairs a BlockDefinition with the actual outer values its
// captures resolve to at one particular evaluation site. Beta substitution
// producing a different CapturedValues list yields a distinct
// BlockInstance over the same, unchanged BlockDefinition.
type BlockInstance struct {
	mop.Header
	CapturedValues []Node
	Definition     Node
}

func NewBlockInstance(d mop.Derivation, capturedValues []Node, definition Node) *BlockInstance {
	return &BlockInstance{Header: mop.Header{Kind: KindBlockInstance, Derivation: d}, CapturedValues: capturedValues, Definition: definition}
}

func init() {
	mop.RegisterKind(mop.KindDescriptor{
		Kind: KindBlockDefinition, Parent: KindAnalyzedDataExpressionNode,
		Attrs: []mop.AttrDescriptor{
			{Name: "captures", Role: mop.RoleDataInputPorts, Compared: true, Get: func(n mop.Node) mop.AttrValue { return mop.NodeListAttr(n.(*BlockDefinition).Captures) }},
			{Name: "arguments", Role: mop.RoleDataInputPorts, Compared: true, Get: func(n mop.Node) mop.AttrValue { return mop.NodeListAttr(n.(*BlockDefinition).Arguments) }},
			{Name: "entryPoint", Role: mop.RoleSequencingDestination, Compared: true, Get: func(n mop.Node) mop.AttrValue { return mop.NodeAttr(n.(*BlockDefinition).EntryPoint) }},
			{Name: "exitPoint", Role: mop.RoleSequencingPredecessor, Compared: true, Get: func(n mop.Node) mop.AttrValue { return mop.NodeAttr(n.(*BlockDefinition).ExitPoint) }},
			{Name: "name", Role: mop.RoleData, Compared: false, Get: func(n mop.Node) mop.AttrValue { return mop.StringAttr(n.(*BlockDefinition).Name) }},
		},
	})
	mop.RegisterKind(mop.KindDescriptor{
		Kind: KindBlockInstance, Parent: KindAnalyzedDataExpressionNode,
		Attrs: []mop.AttrDescriptor{
			{Name: "capturedValues", Role: mop.RoleDataInputPorts, Compared: true, Get: func(n mop.Node) mop.AttrValue { return mop.NodeListAttr(n.(*BlockInstance).CapturedValues) }},
			{Name: "definition", Role: mop.RoleDataInputPort, Compared: true, Get: func(n mop.Node) mop.AttrValue { return mop.NodeAttr(n.(*BlockInstance).Definition) }},
		},
	})
}

// Application is a pure (effect-free) call of a functional value, eligible
// for compile-time reduction when Functional is a pure primitive and every
// argument is a literal.
type Application struct {
	mop.Header
	Functional Node
	Arguments  []Node
}

func NewApplication(d mop.Derivation, functional Node, args []Node) *Application {
	return &Application{Header: mop.Header{Kind: KindApplication, Derivation: d}, Functional: functional, Arguments: args}
}

// FxApplication is an application with observable side effects: it sits on
// the sequencing spine via Predecessor instead of floating freely like
// Application.
type FxApplication struct {
	mop.Header
	Functional  Node
	Arguments   []Node
	Predecessor Node
}

func NewFxApplication(d mop.Derivation, functional Node, args []Node, predecessor Node) *FxApplication {
	return &FxApplication{Header: mop.Header{Kind: KindFxApplication, Derivation: d}, Functional: functional, Arguments: args, Predecessor: predecessor}
}

func init() {
	mop.RegisterKind(mop.KindDescriptor{
		Kind: KindApplication, Parent: KindAnalyzedDataExpressionNode,
		Attrs: []mop.AttrDescriptor{
			{Name: "functional", Role: mop.RoleDataInputPort, Compared: true, Get: func(n mop.Node) mop.AttrValue { return mop.NodeAttr(n.(*Application).Functional) }},
			{Name: "arguments", Role: mop.RoleDataInputPorts, Compared: true, Get: func(n mop.Node) mop.AttrValue { return mop.NodeListAttr(n.(*Application).Arguments) }},
		},
	})
	mop.RegisterKind(mop.KindDescriptor{
		Kind: KindFxApplication, Parent: KindSequencingAndDataNode,
		Attrs: []mop.AttrDescriptor{
			{Name: "functional", Role: mop.RoleDataInputPort, Compared: false, Get: func(n mop.Node) mop.AttrValue { return mop.NodeAttr(n.(*FxApplication).Functional) }},
			{Name: "arguments", Role: mop.RoleDataInputPorts, Compared: false, Get: func(n mop.Node) mop.AttrValue { return mop.NodeListAttr(n.(*FxApplication).Arguments) }},
			{Name: "predecessor", Role: mop.RoleSequencingPredecessor, Compared: false, Get: func(n mop.Node) mop.AttrValue { return mop.NodeAttr(n.(*FxApplication).Predecessor) }},
		},
	})
}

// MessageSend and FxMessageSend mirror Application/FxApplication for
// Smalltalk-style `receiver selector arguments` sends, kept separate from
// Application because doesNotUnderstand dispatch has its own runtime
// behavior (internal/runtime) distinct from calling a functional value.
type MessageSend struct {
	mop.Header
	Receiver  Node
	Selector  Node
	Arguments []Node
}

func NewMessageSend(d mop.Derivation, receiver, selector Node, args []Node) *MessageSend {
	return &MessageSend{Header: mop.Header{Kind: KindMessageSend, Derivation: d}, Receiver: receiver, Selector: selector, Arguments: args}
}

type FxMessageSend struct {
	mop.Header
	Receiver    Node
	Selector    Node
	Arguments   []Node
	Predecessor Node
}

func NewFxMessageSend(d mop.Derivation, receiver, selector Node, args []Node, predecessor Node) *FxMessageSend {
	return &FxMessageSend{Header: mop.Header{Kind: KindFxMessageSend, Derivation: d}, Receiver: receiver, Selector: selector, Arguments: args, Predecessor: predecessor}
}

func init() {
	mop.RegisterKind(mop.KindDescriptor{
		Kind: KindMessageSend, Parent: KindAnalyzedDataExpressionNode,
		Attrs: []mop.AttrDescriptor{
			{Name: "receiver", Role: mop.RoleDataInputPort, Compared: true, Get: func(n mop.Node) mop.AttrValue { return mop.NodeAttr(n.(*MessageSend).Receiver) }},
			{Name: "selector", Role: mop.RoleDataInputPort, Compared: true, Get: func(n mop.Node) mop.AttrValue { return mop.NodeAttr(n.(*MessageSend).Selector) }},
			{Name: "arguments", Role: mop.RoleDataInputPorts, Compared: true, Get: func(n mop.Node) mop.AttrValue { return mop.NodeListAttr(n.(*MessageSend).Arguments) }},
		},
	})
	mop.RegisterKind(mop.KindDescriptor{
		Kind: KindFxMessageSend, Parent: KindSequencingAndDataNode,
		Attrs: []mop.AttrDescriptor{
			{Name: "receiver", Role: mop.RoleDataInputPort, Compared: false, Get: func(n mop.Node) mop.AttrValue { return mop.NodeAttr(n.(*FxMessageSend).Receiver) }},
			{Name: "selector", Role: mop.RoleDataInputPort, Compared: false, Get: func(n mop.Node) mop.AttrValue { return mop.NodeAttr(n.(*FxMessageSend).Selector) }},
			{Name: "arguments", Role: mop.RoleDataInputPorts, Compared: false, Get: func(n mop.Node) mop.AttrValue { return mop.NodeListAttr(n.(*FxMessageSend).Arguments) }},
			{Name: "predecessor", Role: mop.RoleSequencingPredecessor, Compared: false, Get: func(n mop.Node) mop.AttrValue { return mop.NodeAttr(n.(*FxMessageSend).Predecessor) }},
		},
	})
}

// TopLevelScript is the root of one compiled file's analyzed graph.
type TopLevelScript struct {
	mop.Header
	EntryPoint Node
	ExitPoint  Node
}

func NewTopLevelScript(d mop.Derivation, entryPoint, exitPoint Node) *TopLevelScript {
	return &TopLevelScript{Header: mop.Header{Kind: KindTopLevelScript, Derivation: d}, EntryPoint: entryPoint, ExitPoint: exitPoint}
}

func init() {
	mop.RegisterKind(mop.KindDescriptor{
		Kind: KindTopLevelScript, Parent: KindAnalyzedDataExpressionNode,
		Attrs: []mop.AttrDescriptor{
			{Name: "entryPoint", Role: mop.RoleSequencingDestination, Compared: false, Get: func(n mop.Node) mop.AttrValue { return mop.NodeAttr(n.(*TopLevelScript).EntryPoint) }},
			{Name: "exitPoint", Role: mop.RoleSequencingPredecessor, Compared: false, Get: func(n mop.Node) mop.AttrValue { return mop.NodeAttr(n.(*TopLevelScript).ExitPoint) }},
		},
	})
}

// PhiValue is one incoming edge of a Phi: the value flowing in along
// Predecessor when control reaches the convergence point from that branch.
type PhiValue struct {
	mop.Header
	Value       Node
	Predecessor Node
}

func NewPhiValue(d mop.Derivation, value, predecessor Node) *PhiValue {
	return &PhiValue{Header: mop.Header{Kind: KindPhiValue, Derivation: d}, Value: value, Predecessor: predecessor}
}

// Phi merges values produced along different branches that converge at the
// same SequenceConvergence point.
type Phi struct {
	mop.Header
	Values      []Node
	Predecessor Node
}

func NewPhi(d mop.Derivation, values []Node, predecessor Node) *Phi {
	return &Phi{Header: mop.Header{Kind: KindPhi, Derivation: d}, Values: values, Predecessor: predecessor}
}

func init() {
	mop.RegisterKind(mop.KindDescriptor{
		Kind: KindPhiValue, Parent: KindAnalyzedDataExpressionNode,
		Attrs: []mop.AttrDescriptor{
			{Name: "value", Role: mop.RoleDataInputPort, Compared: true, Get: func(n mop.Node) mop.AttrValue { return mop.NodeAttr(n.(*PhiValue).Value) }},
			{Name: "predecessor", Role: mop.RoleSequencingPredecessor, Compared: true, Get: func(n mop.Node) mop.AttrValue { return mop.NodeAttr(n.(*PhiValue).Predecessor) }},
		},
	})
	mop.RegisterKind(mop.KindDescriptor{
		Kind: KindPhi, Parent: KindAnalyzedDataExpressionNode,
		Attrs: []mop.AttrDescriptor{
			{Name: "values", Role: mop.RoleDataInputPorts, Compared: true, Get: func(n mop.Node) mop.AttrValue { return mop.NodeListAttr(n.(*Phi).Values) }},
			{Name: "predecessor", Role: mop.RoleSequencingPredecessor, Compared: true, Get: func(n mop.Node) mop.AttrValue { return mop.NodeAttr(n.(*Phi).Predecessor) }},
		},
	})
}

// Error is the analyzed-graph counterpart of SyntaxError: a semantic
// failure (an unbound identifier, an assignment whose target is not an
// identifier, or an embedded SyntaxError) captured as a node instead of
// aborting the pass.
type Error struct {
	mop.Header
	Message    string
	InnerNodes []Node
}

func NewError(d mop.Derivation, message string, inner []Node) *Error {
	return &Error{Header: mop.Header{Kind: KindError, Derivation: d}, Message: message, InnerNodes: inner}
}

func init() {
	mop.RegisterKind(mop.KindDescriptor{
		Kind: KindError, Parent: KindAnalyzedDataExpressionNode,
		Attrs: []mop.AttrDescriptor{
			{Name: "message", Role: mop.RoleData, Compared: true, Get: func(n mop.Node) mop.AttrValue { return mop.StringAttr(n.(*Error).Message) }},
			{Name: "innerNodes", Role: mop.RoleDataInputPorts, Compared: true, Get: func(n mop.Node) mop.AttrValue { return mop.NodeListAttr(n.(*Error).InnerNodes) }},
		},
	})
}
