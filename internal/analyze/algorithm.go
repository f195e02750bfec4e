package analyze

import (
	"fmt"

	"github.com/dekarrin/stgraph/internal/build"
	"github.com/dekarrin/stgraph/internal/diag"
	"github.com/dekarrin/stgraph/internal/ir"
	"github.com/dekarrin/stgraph/internal/mop"
)

// Algorithm is the expansion-and-analysis pass, grounded on
// original_source/pyst/analysis.py's ASGExpansionAndAnalysisAlgorithm. It
// owns a mop.Engine with one registered Pattern per syntax kind, a Builder
// that GVN-deduplicates and sequences everything it builds, and a lexical
// Environment identifiers resolve against. Reduction and Errors are shared
// across every descendant Algorithm a diverging scope spawns (a new block
// body, a new conditional branch), so compile-time folding and error
// collection span the whole compile rather than resetting per scope.
type Algorithm struct {
	Env     build.Environment
	Builder *build.Builder
	Engine  *mop.Engine

	Reduction *mop.Engine
	Errors    *diag.Accumulator
}

// New returns the root Algorithm for one script, wiring the reduction
// engine in as the expansion engine's PostProcess hook so a just-expanded
// Application of a pure compile-time primitive over literal arguments
// folds immediately, the way postProcessResult does in the original.
func New(env build.Environment, builder *build.Builder) *Algorithm {
	a := &Algorithm{
		Env:       env,
		Builder:   builder,
		Reduction: NewReductionEngine(),
		Errors:    &diag.Accumulator{},
	}
	a.Engine = newExpansionEngine(a)
	return a
}

func newExpansionEngine(a *Algorithm) *mop.Engine {
	e := mop.NewEngine()
	e.PostProcess = func(n mop.Node) mop.Node {
		reduced := Reduce(a.Reduction, n)
		if reduced == n {
			return n
		}
		// A fold produced a brand new literal outside of GVN; route it
		// through the builder so it still dedups against an identical
		// literal built elsewhere in this scope.
		return a.Builder.Build(reduced)
	}
	registerExpansionPatterns(e, a)
	return e
}

// withEnvironment returns a new Algorithm scoped to env, sharing Builder,
// Reduction and Errors but with its own fresh expansion engine. A fresh
// engine is required, not just a copied struct, because the engine's
// pattern closures captured over this new Algorithm value replace the
// ones captured over a when it was built — if two Algorithm values shared
// one mop.Engine, an identifier lookup reached through the second one
// would still run against the first one's (possibly stale) environment,
// since Engine.Expand's memo is keyed purely by node identity, not by
// which environment asked for the expansion. This mirrors the original's
// copyWithEnvironment, which likewise hands back a whole new algorithm
// instance with its own memoization table rather than mutating self.
func (a *Algorithm) withEnvironment(env build.Environment) *Algorithm {
	child := &Algorithm{
		Env:       env,
		Builder:   a.Builder,
		Reduction: a.Reduction,
		Errors:    a.Errors,
	}
	child.Engine = newExpansionEngine(child)
	return child
}

// withDivergingBuilder returns a copy of a with a fresh Builder chained to
// a.Builder and its own expansion engine (so the child's memo table starts
// empty), matching withDivergingEnvironment's "new algorithm instance
// sharing the reduction algorithm and error accumulator but with a fresh
// builder chained to the old one".
func (a *Algorithm) withDivergingBuilder(env build.Environment) *Algorithm {
	child := &Algorithm{
		Env:       env,
		Builder:   build.NewBuilder(a.Builder),
		Reduction: a.Reduction,
		Errors:    a.Errors,
	}
	child.Engine = newExpansionEngine(child)
	return child
}

// Expand runs the expansion engine on n, memoized within this Algorithm's
// own Engine instance.
func (a *Algorithm) Expand(n ir.Node) ir.Node {
	return a.Engine.Expand(n)
}

func (a *Algorithm) makeError(n ir.Node, format string, args ...interface{}) *ir.Error {
	message := fmt.Sprintf(format, args...)
	pos := n.Header().Derivation.SourcePosition()
	a.Errors.Add(diag.New(diag.Semantic, pos, message))
	return ir.NewError(mop.ExpansionDerivation(mop.DerivationSyntaxExpansion, n), message, nil)
}

// ExpandAndAnalyze is the module-level entry point, analogous to the
// original's module-level expandAndAnalyze(environment, node): it wraps
// root's expansion in a sequencing spine of its own and returns the
// TopLevelScript for the whole compiled file.
func ExpandAndAnalyze(env build.Environment, root ir.Node) (*ir.TopLevelScript, *diag.Accumulator) {
	builder := build.NewBuilder(nil)
	a := New(env, builder)

	entry := builder.Build(ir.NewSequenceEntry(mop.NoDerivation))
	value := a.Expand(root)
	exit := builder.BuildAndSequence(ir.NewSequenceReturn(mop.ExpansionDerivation(mop.DerivationSyntaxExpansion, root), value, builder.CurrentPredecessor()))

	script := builder.Build(ir.NewTopLevelScript(mop.NoDerivation, entry, exit))
	return script.(*ir.TopLevelScript), a.Errors
}

func registerExpansionPatterns(e *mop.Engine, a *Algorithm) {
	reg := func(k mop.Kind, fn func(n ir.Node) ir.Node) {
		e.Register(mop.Pattern{Kind: k, Fn: func(_ *mop.Engine, n mop.Node) mop.Node { return fn(n) }})
	}

	reg(ir.KindSyntaxError, func(n ir.Node) ir.Node { return a.expandSyntaxError(n.(*ir.SyntaxError)) })

	reg(ir.KindSyntaxLiteralInteger, func(n ir.Node) ir.Node {
		lit := n.(*ir.SyntaxLiteralInteger)
		return a.Builder.Build(ir.NewLiteralInteger(mop.ExpansionDerivation(mop.DerivationSyntaxExpansion, n), lit.Value))
	})
	reg(ir.KindSyntaxLiteralFloat, func(n ir.Node) ir.Node {
		lit := n.(*ir.SyntaxLiteralFloat)
		return a.Builder.Build(ir.NewLiteralFloat(mop.ExpansionDerivation(mop.DerivationSyntaxExpansion, n), lit.Value))
	})
	reg(ir.KindSyntaxLiteralString, func(n ir.Node) ir.Node {
		lit := n.(*ir.SyntaxLiteralString)
		return a.Builder.Build(ir.NewLiteralString(mop.ExpansionDerivation(mop.DerivationSyntaxExpansion, n), lit.Value))
	})
	reg(ir.KindSyntaxLiteralSymbol, func(n ir.Node) ir.Node {
		lit := n.(*ir.SyntaxLiteralSymbol)
		return a.Builder.Build(ir.NewLiteralSymbol(mop.ExpansionDerivation(mop.DerivationSyntaxExpansion, n), lit.Value))
	})
	reg(ir.KindSyntaxLiteralCharacter, func(n ir.Node) ir.Node {
		lit := n.(*ir.SyntaxLiteralCharacter)
		return a.Builder.Build(ir.NewLiteralCharacter(mop.ExpansionDerivation(mop.DerivationSyntaxExpansion, n), lit.Value))
	})

	reg(ir.KindSyntaxArray, func(n ir.Node) ir.Node { return a.expandSyntaxArray(n.(*ir.SyntaxArray)) })
	reg(ir.KindSyntaxBinaryExpressionSequence, func(n ir.Node) ir.Node {
		return a.expandSyntaxBinaryExpressionSequence(n.(*ir.SyntaxBinaryExpressionSequence))
	})
	reg(ir.KindSyntaxIdentifierReference, func(n ir.Node) ir.Node {
		return a.expandSyntaxIdentifierReference(n.(*ir.SyntaxIdentifierReference))
	})
	reg(ir.KindSyntaxApplication, func(n ir.Node) ir.Node { return a.expandSyntaxApplication(n.(*ir.SyntaxApplication)) })
	reg(ir.KindSyntaxAssignment, func(n ir.Node) ir.Node { return a.expandSyntaxAssignment(n.(*ir.SyntaxAssignment)) })
	reg(ir.KindSyntaxMessageSend, func(n ir.Node) ir.Node { return a.expandSyntaxMessageSend(n.(*ir.SyntaxMessageSend)) })
	reg(ir.KindSyntaxMessageCascade, func(n ir.Node) ir.Node {
		return a.expandSyntaxMessageCascade(n.(*ir.SyntaxMessageCascade))
	})
	reg(ir.KindSyntaxBlock, func(n ir.Node) ir.Node { return a.expandSyntaxBlock(n.(*ir.SyntaxBlock)) })
	reg(ir.KindSyntaxSequence, func(n ir.Node) ir.Node { return a.expandSyntaxSequence(n.(*ir.SyntaxSequence)) })

	// Already-analyzed nodes can reach the engine when a pattern's result
	// is itself handed back through ContinueExpanding (e.g. a folded
	// binary-expression-sequence chain that bottoms out at a literal
	// produced by an earlier step); every analyzed kind is already in its
	// final form and falls through to dispatchOnce's default (return n
	// unchanged) because no pattern is registered for KindAnalyzedNode.
}

func (a *Algorithm) expandSyntaxError(n *ir.SyntaxError) ir.Node {
	inner := make([]ir.Node, len(n.InnerNodes))
	for i, c := range n.InnerNodes {
		inner[i] = a.Expand(c)
	}
	a.Errors.Add(diag.New(diag.Semantic, n.Header().Derivation.SourcePosition(), n.Message))
	return ir.NewError(mop.ExpansionDerivation(mop.DerivationSyntaxExpansion, n), n.Message, inner)
}

// expandSyntaxArray expands every element and decides, after the fact,
// whether the result can be the GVN-deduplicated immutable Array (every
// element expanded to a literal node, so two textually identical array
// literals are indistinguishable) or must be a MutableArray (at least one
// element is a computed value, so each evaluation needs its own storage).
// This rule is not drawn from a dedicated original syntax kind — the
// original source available in this pack does not separate `#( )` literal
// arrays from `{ }` brace arrays at the syntax level — so it is recorded
// as an open-question decision in DESIGN.md rather than a direct port.
func (a *Algorithm) expandSyntaxArray(n *ir.SyntaxArray) ir.Node {
	elements := make([]ir.Node, len(n.Elements))
	allLiteral := true
	for i, c := range n.Elements {
		elements[i] = a.Expand(c)
		if !ir.IsLiteralNode(elements[i]) {
			allLiteral = false
		}
	}
	d := mop.ExpansionDerivation(mop.DerivationSyntaxExpansion, n)
	if allLiteral {
		return a.Builder.Build(ir.NewArray(d, elements))
	}
	return a.Builder.Build(ir.NewMutableArray(d, elements))
}

// expandSyntaxBinaryExpressionSequence folds the flat alternating
// operand/selector chain into a left-to-right nest of SyntaxMessageSend
// nodes and continues expanding the result, giving strict left-to-right
// evaluation with no precedence climbing (`1 + 2 * 4` is `(1 + 2) * 4`).
func (a *Algorithm) expandSyntaxBinaryExpressionSequence(n *ir.SyntaxBinaryExpressionSequence) ir.Node {
	d := mop.ExpansionDerivation(mop.DerivationSyntaxExpansion, n)
	receiver := n.Elements[0]
	for i := 1; i+1 < len(n.Elements); i += 2 {
		selector := n.Elements[i]
		operand := n.Elements[i+1]
		receiver = ir.NewSyntaxMessageSend(d, receiver, selector, []ir.Node{operand})
	}
	return a.Engine.ContinueExpanding(receiver)
}

func (a *Algorithm) expandSyntaxIdentifierReference(n *ir.SyntaxIdentifierReference) ir.Node {
	if binding := a.Env.LookupSymbol(n.Value); binding != nil {
		return binding
	}
	return a.makeError(n, "unbound identifier %q", n.Value)
}

// expandSyntaxApplication expands a `fn(a, b)`-shaped call. A functional
// value known to be a pure primitive becomes a floating Application (pure
// data, eligible for the reduction pass to fold); anything else becomes an
// FxApplication sequenced onto the spine, since an arbitrary functional
// value may have effects when called.
func (a *Algorithm) expandSyntaxApplication(n *ir.SyntaxApplication) ir.Node {
	d := mop.ExpansionDerivation(mop.DerivationSyntaxExpansion, n)
	functional := a.Expand(n.Functional)
	args := make([]ir.Node, len(n.Arguments))
	for i, arg := range n.Arguments {
		args[i] = a.Expand(arg)
	}

	if fn, ok := functional.(*ir.LiteralPrimitiveFunction); ok && fn.Pure {
		return a.Builder.Build(ir.NewApplication(d, functional, args))
	}
	return a.Builder.BuildAndSequence(ir.NewFxApplication(d, functional, args, a.Builder.CurrentPredecessor()))
}

// expandSyntaxAssignment handles `store := value` reached outside of the
// sequence-level binding loop (assignment nested inside a larger
// expression). Since there is no enclosing sequence here to thread the new
// binding to later statements, the assignment's side effect on the
// environment is lost and only its value is produced; expandSyntaxSequence
// is what gives `:=` its real let-binding behavior and is what the parser
// is expected to use for every assignment that is itself a statement.
func (a *Algorithm) expandSyntaxAssignment(n *ir.SyntaxAssignment) ir.Node {
	return a.Expand(n.Value)
}

// expandSyntaxMessageSend expands `receiver selector arg1 arg2...`. Every
// message send is modeled as an FxMessageSend sequenced onto the spine,
// since dispatch happens at runtime (doesNotUnderstand may run arbitrary
// code) and so can never be assumed pure the way a primitive Application
// can. A nil Receiver is an implicit self-send against the lexical
// environment's notion of self; this pipeline has no enclosing object
// context, so an implicit receiver resolves to the top-level nil object.
func (a *Algorithm) expandSyntaxMessageSend(n *ir.SyntaxMessageSend) ir.Node {
	d := mop.ExpansionDerivation(mop.DerivationSyntaxExpansion, n)

	var receiver ir.Node
	if n.Receiver != nil {
		receiver = a.Expand(n.Receiver)
	} else {
		receiver = a.Builder.Build(ir.NewLiteralNil(mop.NoDerivation))
	}
	selector := a.Expand(n.Selector)
	args := make([]ir.Node, len(n.Arguments))
	for i, arg := range n.Arguments {
		args[i] = a.Expand(arg)
	}
	return a.Builder.BuildAndSequence(ir.NewFxMessageSend(d, receiver, selector, args, a.Builder.CurrentPredecessor()))
}

// expandSyntaxMessageCascade evaluates Receiver once and sends every
// message in Messages to it in turn, returning the last send's result,
// matching `receiver msg1; msg2; msg3`'s single-evaluation-of-receiver
// semantics.
func (a *Algorithm) expandSyntaxMessageCascade(n *ir.SyntaxMessageCascade) ir.Node {
	receiver := a.Expand(n.Receiver)

	var result ir.Node = receiver
	for _, m := range n.Messages {
		msg := m.(*ir.SyntaxCascadeMessage)
		d := mop.ExpansionDerivation(mop.DerivationSyntaxExpansion, msg)
		selector := a.Expand(msg.Selector)
		args := make([]ir.Node, len(msg.Arguments))
		for i, arg := range msg.Arguments {
			args[i] = a.Expand(arg)
		}
		result = a.Builder.BuildAndSequence(ir.NewFxMessageSend(d, receiver, selector, args, a.Builder.CurrentPredecessor()))
	}
	return result
}

// expandSyntaxBlock analyzes a block literal in a fresh
// FunctionalAnalysisEnvironment chained off a's own environment and a
// fresh Builder chained off a's own Builder, so the body's own sequencing
// spine and GVN scope are self-contained while still reusing any pure-data
// node the outer scope already built. The BlockDefinition is built in a's
// own (outer) Builder once the body is fully analyzed (its Arguments and
// spine are fresh nodes, so it never unifies with another block literal's
// definition); the BlockInstance wraps it with this
// particular evaluation site's actual capture values.
func (a *Algorithm) expandSyntaxBlock(n *ir.SyntaxBlock) ir.Node {
	d := mop.ExpansionDerivation(mop.DerivationSyntaxExpansion, n)

	funcEnv := build.NewFunctionalAnalysisEnvironment(a.Env)
	child := a.withDivergingBuilder(funcEnv)

	arguments := make([]ir.Node, len(n.Arguments))
	for i, arg := range n.Arguments {
		name := arg.(*ir.SyntaxArgument).Name
		argNode := ir.NewArgument(mop.ExpansionDerivation(mop.DerivationSyntaxExpansion, arg), i, name, false)
		funcEnv.AddArgumentBinding(argNode)
		arguments[i] = argNode
	}

	entry := child.Builder.Build(ir.NewSequenceEntry(mop.NoDerivation))
	bodyValue := child.Expand(n.Body)
	exit := child.Builder.BuildAndSequence(ir.NewSequenceReturn(d, bodyValue, child.Builder.CurrentPredecessor()))

	captures := make([]ir.Node, len(funcEnv.CaptureBindings))
	for i, c := range funcEnv.CaptureBindings {
		captures[i] = c
	}

	def := a.Builder.Build(ir.NewBlockDefinition(d, captures, arguments, entry, exit, ""))
	return a.Builder.Build(ir.NewBlockInstance(d, funcEnv.CapturedValues, def))
}

// expandSyntaxSequence analyzes `| locals | <pragmas> stmt1. stmt2`: each
// local is bound to nil in a fresh LexicalEnvironment, Pragmas are ignored
// (internal/parsetree does not parse pragma syntax, so the list is always
// empty), and `:=` assignments rebind the
// lexical environment for every statement that follows rather than
// mutating shared storage, matching the graph's SSA-like treatment of
// local variables. The last element's value is the sequence's value; an
// empty sequence evaluates to nil.
func (a *Algorithm) expandSyntaxSequence(n *ir.SyntaxSequence) ir.Node {
	env := build.NewLexicalEnvironment(a.Env)
	for _, local := range n.Locals {
		name := local.(*ir.SyntaxArgument).Name
		env = env.WithSymbolBinding(name, a.Builder.Build(ir.NewLiteralNil(mop.NoDerivation)))
	}
	current := a.withEnvironment(env)

	if len(n.Elements) == 0 {
		return a.Builder.Build(ir.NewLiteralNil(mop.NoDerivation))
	}

	var result ir.Node
	for _, elem := range n.Elements {
		if assign, ok := elem.(*ir.SyntaxAssignment); ok {
			ref, ok := assign.Store.(*ir.SyntaxIdentifierReference)
			if !ok {
				result = current.makeError(assign, "left-hand side of assignment is not an identifier")
				continue
			}
			value := current.Expand(assign.Value)
			env = env.WithSymbolBinding(ref.Value, value)
			current = a.withEnvironment(env)
			result = value
			continue
		}
		result = current.Expand(elem)
	}
	return result
}
