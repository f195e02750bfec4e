package analyze

import (
	"github.com/dekarrin/stgraph/internal/build"
	"github.com/dekarrin/stgraph/internal/ir"
)

// CallContext builds the Context a BlockInstance call site substitutes
// through its BlockDefinition's body: each formal Argument is bound to the
// value the call supplies, and each formal capture is bound to the actual
// value the instance closed over at the point the block literal was
// analyzed. Substitute(ctx, builder, someNodeInsideTheBody) then yields
// that node specialized to this particular call.
func CallContext(instance *ir.BlockInstance, argValues []ir.Node) *Context {
	def := instance.Definition.(*ir.BlockDefinition)
	ctx := NewContext()
	for i, capture := range def.Captures {
		if i < len(instance.CapturedValues) {
			ctx.Set(capture, instance.CapturedValues[i])
		}
	}
	for i, arg := range def.Arguments {
		if i < len(argValues) {
			ctx.Set(arg, argValues[i])
		}
	}
	return ctx
}

// InlineResultValue substitutes argValues and instance's captures through
// def's exit value, returning the node that represents the block's result
// under this call's actual arguments. It does not splice def's body
// statements onto any caller spine — internal/sched's scheduler places
// every reachable node by data and sequencing dependency regardless of
// which BlockDefinition it was analyzed under, so a block body's nodes
// need no separate relocation step once this substitution has run.
func InlineResultValue(b *build.Builder, instance *ir.BlockInstance, argValues []ir.Node) ir.Node {
	def := instance.Definition.(*ir.BlockDefinition)
	ctx := CallContext(instance, argValues)
	exit := def.ExitPoint.(*ir.SequenceReturn)
	return Substitute(ctx, b, exit.Value)
}
