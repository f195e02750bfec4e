package ir

import "github.com/dekarrin/stgraph/internal/mop"

// SyntaxError marks a span of source text the parser could not make sense
// of. It is never expanded into an analyzed node of its own kind; the
// expansion pass turns it directly into an analyzed Error so the failure
// survives into diagnostics without aborting the whole compile.
type SyntaxError struct {
	mop.Header
	Message    string
	InnerNodes []Node
}

func NewSyntaxError(d mop.Derivation, message string, inner []Node) *SyntaxError {
	return &SyntaxError{Header: mop.Header{Kind: KindSyntaxError, Derivation: d}, Message: message, InnerNodes: inner}
}

func init() {
	mop.RegisterKind(mop.KindDescriptor{
		Kind: KindSyntaxError, Parent: KindSyntaxNode,
		Attrs: []mop.AttrDescriptor{
			{Name: "message", Role: mop.RoleData, Compared: true, Get: func(n mop.Node) mop.AttrValue { return mop.StringAttr(n.(*SyntaxError).Message) }},
			{Name: "innerNodes", Role: mop.RoleDataInputPorts, Compared: true, Get: func(n mop.Node) mop.AttrValue { return mop.NodeListAttr(n.(*SyntaxError).InnerNodes) }},
		},
	})
}

// SyntaxArgument names one formal parameter of a syntax block.
type SyntaxArgument struct {
	mop.Header
	Name string
}

func NewSyntaxArgument(d mop.Derivation, name string) *SyntaxArgument {
	return &SyntaxArgument{Header: mop.Header{Kind: KindSyntaxArgument, Derivation: d}, Name: name}
}

func init() {
	mop.RegisterKind(mop.KindDescriptor{
		Kind: KindSyntaxArgument, Parent: KindSyntaxNode,
		Attrs: []mop.AttrDescriptor{
			{Name: "name", Role: mop.RoleData, Compared: true, Get: func(n mop.Node) mop.AttrValue { return mop.StringAttr(n.(*SyntaxArgument).Name) }},
		},
	})
}

// SyntaxArray is a literal array expression, `#(1 2 3)` or `{1. 2. 3}`.
type SyntaxArray struct {
	mop.Header
	Elements []Node
}

func NewSyntaxArray(d mop.Derivation, elements []Node) *SyntaxArray {
	return &SyntaxArray{Header: mop.Header{Kind: KindSyntaxArray, Derivation: d}, Elements: elements}
}

func init() {
	mop.RegisterKind(mop.KindDescriptor{
		Kind: KindSyntaxArray, Parent: KindSyntaxNode,
		Attrs: []mop.AttrDescriptor{
			{Name: "elements", Role: mop.RoleDataInputPorts, Compared: true, Get: func(n mop.Node) mop.AttrValue { return mop.NodeListAttr(n.(*SyntaxArray).Elements) }},
		},
	})
}

// SyntaxBlock is a `[:a :b | body]` block literal.
type SyntaxBlock struct {
	mop.Header
	Arguments []Node
	Body      Node
}

func NewSyntaxBlock(d mop.Derivation, arguments []Node, body Node) *SyntaxBlock {
	return &SyntaxBlock{Header: mop.Header{Kind: KindSyntaxBlock, Derivation: d}, Arguments: arguments, Body: body}
}

func init() {
	mop.RegisterKind(mop.KindDescriptor{
		Kind: KindSyntaxBlock, Parent: KindSyntaxNode,
		Attrs: []mop.AttrDescriptor{
			{Name: "arguments", Role: mop.RoleDataInputPorts, Compared: true, Get: func(n mop.Node) mop.AttrValue { return mop.NodeListAttr(n.(*SyntaxBlock).Arguments) }},
			{Name: "body", Role: mop.RoleDataInputPort, Compared: true, Get: func(n mop.Node) mop.AttrValue { return mop.NodeAttr(n.(*SyntaxBlock).Body) }},
		},
	})
}

// SyntaxSequence is a `| locals | <pragmas> stmt1. stmt2` sequence of
// statements with its own local-variable declarations and pragmas, the
// "more complete" grammar variant spec.md §9 calls for (DESIGN.md open
// question 6). internal/parsetree does not parse pragma syntax, so Pragmas
// is always empty.
type SyntaxSequence struct {
	mop.Header
	Locals   []Node
	Pragmas  []Node
	Elements []Node
}

func NewSyntaxSequence(d mop.Derivation, locals, pragmas, elements []Node) *SyntaxSequence {
	return &SyntaxSequence{Header: mop.Header{Kind: KindSyntaxSequence, Derivation: d}, Locals: locals, Pragmas: pragmas, Elements: elements}
}

func init() {
	mop.RegisterKind(mop.KindDescriptor{
		Kind: KindSyntaxSequence, Parent: KindSyntaxNode,
		Attrs: []mop.AttrDescriptor{
			{Name: "locals", Role: mop.RoleDataInputPorts, Compared: true, Get: func(n mop.Node) mop.AttrValue { return mop.NodeListAttr(n.(*SyntaxSequence).Locals) }},
			{Name: "pragmas", Role: mop.RoleDataInputPorts, Compared: true, Get: func(n mop.Node) mop.AttrValue { return mop.NodeListAttr(n.(*SyntaxSequence).Pragmas) }},
			{Name: "elements", Role: mop.RoleDataInputPorts, Compared: true, Get: func(n mop.Node) mop.AttrValue { return mop.NodeListAttr(n.(*SyntaxSequence).Elements) }},
		},
	})
}

// literal syntax kinds all carry a single data value and no dependencies.

type SyntaxLiteralCharacter struct {
	mop.Header
	Value rune
}

func NewSyntaxLiteralCharacter(d mop.Derivation, v rune) *SyntaxLiteralCharacter {
	return &SyntaxLiteralCharacter{Header: mop.Header{Kind: KindSyntaxLiteralCharacter, Derivation: d}, Value: v}
}

type SyntaxLiteralInteger struct {
	mop.Header
	Value int64
}

func NewSyntaxLiteralInteger(d mop.Derivation, v int64) *SyntaxLiteralInteger {
	return &SyntaxLiteralInteger{Header: mop.Header{Kind: KindSyntaxLiteralInteger, Derivation: d}, Value: v}
}

type SyntaxLiteralFloat struct {
	mop.Header
	Value float64
}

func NewSyntaxLiteralFloat(d mop.Derivation, v float64) *SyntaxLiteralFloat {
	return &SyntaxLiteralFloat{Header: mop.Header{Kind: KindSyntaxLiteralFloat, Derivation: d}, Value: v}
}

type SyntaxLiteralString struct {
	mop.Header
	Value string
}

func NewSyntaxLiteralString(d mop.Derivation, v string) *SyntaxLiteralString {
	return &SyntaxLiteralString{Header: mop.Header{Kind: KindSyntaxLiteralString, Derivation: d}, Value: v}
}

type SyntaxLiteralSymbol struct {
	mop.Header
	Value string
}

func NewSyntaxLiteralSymbol(d mop.Derivation, v string) *SyntaxLiteralSymbol {
	return &SyntaxLiteralSymbol{Header: mop.Header{Kind: KindSyntaxLiteralSymbol, Derivation: d}, Value: v}
}

func init() {
	dataAttr := func(get func(mop.Node) mop.AttrValue) []mop.AttrDescriptor {
		return []mop.AttrDescriptor{{Name: "value", Role: mop.RoleData, Compared: true, Get: get}}
	}
	mop.RegisterKind(mop.KindDescriptor{Kind: KindSyntaxLiteralCharacter, Parent: KindSyntaxLiteralNode,
		Attrs: dataAttr(func(n mop.Node) mop.AttrValue { return mop.RuneAttr(n.(*SyntaxLiteralCharacter).Value) })})
	mop.RegisterKind(mop.KindDescriptor{Kind: KindSyntaxLiteralInteger, Parent: KindSyntaxLiteralNode,
		Attrs: dataAttr(func(n mop.Node) mop.AttrValue { return mop.IntAttr(n.(*SyntaxLiteralInteger).Value) })})
	mop.RegisterKind(mop.KindDescriptor{Kind: KindSyntaxLiteralFloat, Parent: KindSyntaxLiteralNode,
		Attrs: dataAttr(func(n mop.Node) mop.AttrValue { return mop.FloatAttr(n.(*SyntaxLiteralFloat).Value) })})
	mop.RegisterKind(mop.KindDescriptor{Kind: KindSyntaxLiteralString, Parent: KindSyntaxLiteralNode,
		Attrs: dataAttr(func(n mop.Node) mop.AttrValue { return mop.StringAttr(n.(*SyntaxLiteralString).Value) })})
	mop.RegisterKind(mop.KindDescriptor{Kind: KindSyntaxLiteralSymbol, Parent: KindSyntaxLiteralNode,
		Attrs: dataAttr(func(n mop.Node) mop.AttrValue { return mop.StringAttr(n.(*SyntaxLiteralSymbol).Value) })})
}

// SyntaxApplication is function-call syntax, `fn(a, b)`-shaped application
// of a functional value (as opposed to a Smalltalk message send).
type SyntaxApplication struct {
	mop.Header
	Functional Node
	Arguments  []Node
}

func NewSyntaxApplication(d mop.Derivation, functional Node, args []Node) *SyntaxApplication {
	return &SyntaxApplication{Header: mop.Header{Kind: KindSyntaxApplication, Derivation: d}, Functional: functional, Arguments: args}
}

func init() {
	mop.RegisterKind(mop.KindDescriptor{
		Kind: KindSyntaxApplication, Parent: KindSyntaxNode,
		Attrs: []mop.AttrDescriptor{
			{Name: "functional", Role: mop.RoleDataInputPort, Compared: true, Get: func(n mop.Node) mop.AttrValue { return mop.NodeAttr(n.(*SyntaxApplication).Functional) }},
			{Name: "arguments", Role: mop.RoleDataInputPorts, Compared: true, Get: func(n mop.Node) mop.AttrValue { return mop.NodeListAttr(n.(*SyntaxApplication).Arguments) }},
		},
	})
}

// SyntaxAssignment is `store := value`.
type SyntaxAssignment struct {
	mop.Header
	Store Node
	Value Node
}

func NewSyntaxAssignment(d mop.Derivation, store, value Node) *SyntaxAssignment {
	return &SyntaxAssignment{Header: mop.Header{Kind: KindSyntaxAssignment, Derivation: d}, Store: store, Value: value}
}

func init() {
	mop.RegisterKind(mop.KindDescriptor{
		Kind: KindSyntaxAssignment, Parent: KindSyntaxNode,
		Attrs: []mop.AttrDescriptor{
			{Name: "store", Role: mop.RoleDataInputPort, Compared: true, Get: func(n mop.Node) mop.AttrValue { return mop.NodeAttr(n.(*SyntaxAssignment).Store) }},
			{Name: "value", Role: mop.RoleDataInputPort, Compared: true, Get: func(n mop.Node) mop.AttrValue { return mop.NodeAttr(n.(*SyntaxAssignment).Value) }},
		},
	})
}

// SyntaxBinaryExpressionSequence holds a flat left-to-right chain of
// operands and binary selectors (`a + b * c` parses as one sequence, not a
// precedence tree) awaiting the fold into nested message sends during
// expansion.
type SyntaxBinaryExpressionSequence struct {
	mop.Header
	// Elements alternates operand, selector, operand, selector, ...,
	// always an odd count starting and ending on an operand.
	Elements []Node
}

func NewSyntaxBinaryExpressionSequence(d mop.Derivation, elements []Node) *SyntaxBinaryExpressionSequence {
	return &SyntaxBinaryExpressionSequence{Header: mop.Header{Kind: KindSyntaxBinaryExpressionSequence, Derivation: d}, Elements: elements}
}

func init() {
	mop.RegisterKind(mop.KindDescriptor{
		Kind: KindSyntaxBinaryExpressionSequence, Parent: KindSyntaxNode,
		Attrs: []mop.AttrDescriptor{
			{Name: "elements", Role: mop.RoleDataInputPorts, Compared: true, Get: func(n mop.Node) mop.AttrValue { return mop.NodeListAttr(n.(*SyntaxBinaryExpressionSequence).Elements) }},
		},
	})
}

// SyntaxIdentifierReference is a bare name reference awaiting symbol-table
// resolution during expansion.
type SyntaxIdentifierReference struct {
	mop.Header
	Value string
}

func NewSyntaxIdentifierReference(d mop.Derivation, name string) *SyntaxIdentifierReference {
	return &SyntaxIdentifierReference{Header: mop.Header{Kind: KindSyntaxIdentifierReference, Derivation: d}, Value: name}
}

func init() {
	mop.RegisterKind(mop.KindDescriptor{
		Kind: KindSyntaxIdentifierReference, Parent: KindSyntaxNode,
		Attrs: []mop.AttrDescriptor{
			{Name: "value", Role: mop.RoleData, Compared: true, Get: func(n mop.Node) mop.AttrValue { return mop.StringAttr(n.(*SyntaxIdentifierReference).Value) }},
		},
	})
}

// SyntaxMessageSend is `receiver selector arg1 arg2...`; Receiver is nil
// for an implicit self-send.
type SyntaxMessageSend struct {
	mop.Header
	Receiver  Node
	Selector  Node
	Arguments []Node
}

func NewSyntaxMessageSend(d mop.Derivation, receiver, selector Node, args []Node) *SyntaxMessageSend {
	return &SyntaxMessageSend{Header: mop.Header{Kind: KindSyntaxMessageSend, Derivation: d}, Receiver: receiver, Selector: selector, Arguments: args}
}

func init() {
	mop.RegisterKind(mop.KindDescriptor{
		Kind: KindSyntaxMessageSend, Parent: KindSyntaxNode,
		Attrs: []mop.AttrDescriptor{
			{Name: "receiver", Role: mop.RoleOptionalDataInputPort, Compared: true, Get: func(n mop.Node) mop.AttrValue { return mop.NodeAttr(n.(*SyntaxMessageSend).Receiver) }},
			{Name: "selector", Role: mop.RoleDataInputPort, Compared: true, Get: func(n mop.Node) mop.AttrValue { return mop.NodeAttr(n.(*SyntaxMessageSend).Selector) }},
			{Name: "arguments", Role: mop.RoleDataInputPorts, Compared: true, Get: func(n mop.Node) mop.AttrValue { return mop.NodeListAttr(n.(*SyntaxMessageSend).Arguments) }},
		},
	})
}

// SyntaxCascadeMessage is one `; selector arg1 arg2` leg of a cascade.
type SyntaxCascadeMessage struct {
	mop.Header
	Selector  Node
	Arguments []Node
}

func NewSyntaxCascadeMessage(d mop.Derivation, selector Node, args []Node) *SyntaxCascadeMessage {
	return &SyntaxCascadeMessage{Header: mop.Header{Kind: KindSyntaxCascadeMessage, Derivation: d}, Selector: selector, Arguments: args}
}

func init() {
	mop.RegisterKind(mop.KindDescriptor{
		Kind: KindSyntaxCascadeMessage, Parent: KindSyntaxNode,
		Attrs: []mop.AttrDescriptor{
			{Name: "selector", Role: mop.RoleDataInputPort, Compared: true, Get: func(n mop.Node) mop.AttrValue { return mop.NodeAttr(n.(*SyntaxCascadeMessage).Selector) }},
			{Name: "arguments", Role: mop.RoleDataInputPorts, Compared: true, Get: func(n mop.Node) mop.AttrValue { return mop.NodeListAttr(n.(*SyntaxCascadeMessage).Arguments) }},
		},
	})
}

// SyntaxMessageCascade is `receiver msg1; msg2; msg3`, evaluating Receiver
// once and sending every message in Messages to it in order.
type SyntaxMessageCascade struct {
	mop.Header
	Receiver Node
	Messages []Node
}

func NewSyntaxMessageCascade(d mop.Derivation, receiver Node, messages []Node) *SyntaxMessageCascade {
	return &SyntaxMessageCascade{Header: mop.Header{Kind: KindSyntaxMessageCascade, Derivation: d}, Receiver: receiver, Messages: messages}
}

func init() {
	mop.RegisterKind(mop.KindDescriptor{
		Kind: KindSyntaxMessageCascade, Parent: KindSyntaxNode,
		Attrs: []mop.AttrDescriptor{
			{Name: "receiver", Role: mop.RoleDataInputPort, Compared: true, Get: func(n mop.Node) mop.AttrValue { return mop.NodeAttr(n.(*SyntaxMessageCascade).Receiver) }},
			{Name: "messages", Role: mop.RoleDataInputPorts, Compared: true, Get: func(n mop.Node) mop.AttrValue { return mop.NodeListAttr(n.(*SyntaxMessageCascade).Messages) }},
		},
	})
}
