// Package analyze implements the expansion-and-analysis pass that turns a
// syntax graph into an analyzed graph, the compile-time reduction pass that
// folds pure primitive applications over literal arguments, and beta
// substitution, grounded on original_source/pyst/analysis.py.
package analyze

import (
	"github.com/dekarrin/stgraph/internal/build"
	"github.com/dekarrin/stgraph/internal/ir"
	"github.com/dekarrin/stgraph/internal/mop"
)

// Context records which beta-replaceable nodes (Arguments, CapturedValues)
// should be replaced by which concrete values, grounded on
// ASGBetaSubstitutionContext. An empty Context makes Substitute a no-op,
// so call sites that never need substitution pay only the cost of a map
// lookup per node.
type Context struct {
	table map[ir.Node]ir.Node
}

func NewContext() *Context {
	return &Context{table: map[ir.Node]ir.Node{}}
}

func (c *Context) Set(old, replacement ir.Node) {
	c.table[old] = replacement
}

func (c *Context) Get(n ir.Node) ir.Node {
	if r, ok := c.table[n]; ok {
		return r
	}
	return n
}

func (c *Context) IsEmpty() bool { return len(c.table) == 0 }

func (c *Context) Includes(n ir.Node) bool {
	_, ok := c.table[n]
	return ok
}

func (c *Context) IncludesAnyOf(nodes []ir.Node) bool {
	for _, n := range nodes {
		if c.Includes(n) {
			return true
		}
	}
	return false
}

// Substitute returns n with every beta-replaceable dependency ctx knows
// about replaced by its substitution, rebuilding (and re-unifying through
// b) only the nodes whose subtree actually contains a replaced dependency.
// Go has no reflection-free way to rebuild an arbitrary node's
// constructor call generically the way the original's
// expandGenericNodeRecursively does, so the rebuild step is an explicit
// switch over the kinds that can carry a beta-replaceable operand; any
// other kind is returned unchanged, which is sound because
// BetaReplaceableDependencies would have reported no matching dependency
// for it in the first place.
func Substitute(ctx *Context, b *build.Builder, n ir.Node) ir.Node {
	if ctx.IsEmpty() {
		return n
	}
	if ctx.Includes(n) {
		return ctx.Get(n)
	}
	if !ir.IsBetaReplaceableNode(n) {
		deps := mop.BetaReplaceableDependencies(n, ir.IsBetaReplaceableNode)
		if !ctx.IncludesAnyOf(deps) {
			return n
		}
	}
	return rebuildWithSubstitution(ctx, b, n)
}

func substituteList(ctx *Context, b *build.Builder, nodes []ir.Node) []ir.Node {
	out := make([]ir.Node, len(nodes))
	for i, n := range nodes {
		out[i] = Substitute(ctx, b, n)
	}
	return out
}

func rebuildWithSubstitution(ctx *Context, b *build.Builder, n ir.Node) ir.Node {
	derivation := mop.ExpansionDerivation(mop.DerivationReduction, n)

	switch v := n.(type) {
	case *ir.CapturedValue:
		return b.Build(ir.NewCapturedValue(derivation, Substitute(ctx, b, v.Value)))
	case *ir.Application:
		return b.Build(ir.NewApplication(derivation, Substitute(ctx, b, v.Functional), substituteList(ctx, b, v.Arguments)))
	case *ir.FxApplication:
		return b.Build(ir.NewFxApplication(derivation, Substitute(ctx, b, v.Functional), substituteList(ctx, b, v.Arguments), v.Predecessor))
	case *ir.MessageSend:
		return b.Build(ir.NewMessageSend(derivation, Substitute(ctx, b, v.Receiver), Substitute(ctx, b, v.Selector), substituteList(ctx, b, v.Arguments)))
	case *ir.FxMessageSend:
		return b.Build(ir.NewFxMessageSend(derivation, Substitute(ctx, b, v.Receiver), Substitute(ctx, b, v.Selector), substituteList(ctx, b, v.Arguments), v.Predecessor))
	case *ir.Array:
		return b.Build(ir.NewArray(derivation, substituteList(ctx, b, v.Elements)))
	case *ir.MutableArray:
		return b.Build(ir.NewMutableArray(derivation, substituteList(ctx, b, v.Elements)))
	case *ir.BlockInstance:
		return b.Build(ir.NewBlockInstance(derivation, substituteList(ctx, b, v.CapturedValues), v.Definition))
	case *ir.Phi:
		return b.Build(ir.NewPhi(derivation, substituteList(ctx, b, v.Values), v.Predecessor))
	case *ir.PhiValue:
		return b.Build(ir.NewPhiValue(derivation, Substitute(ctx, b, v.Value), v.Predecessor))
	case *ir.SequenceReturn:
		return b.Build(ir.NewSequenceReturn(derivation, Substitute(ctx, b, v.Value), v.Predecessor))
	case *ir.ConditionalBranch:
		return b.Build(ir.NewConditionalBranch(derivation, Substitute(ctx, b, v.Condition), v.TrueDestination, v.FalseDestination, v.Predecessor))
	case *ir.Error:
		return b.Build(ir.NewError(derivation, v.Message, substituteList(ctx, b, v.InnerNodes)))
	default:
		return n
	}
}
