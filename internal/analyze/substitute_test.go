package analyze

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dekarrin/stgraph/internal/build"
	"github.com/dekarrin/stgraph/internal/ir"
	"github.com/dekarrin/stgraph/internal/mop"
)

func Test_Substitute_EmptyContextIsNoOp(t *testing.T) {
	b := build.NewBuilder(nil)
	ctx := NewContext()
	lit := ir.NewLiteralInteger(mop.NoDerivation, 5)

	result := Substitute(ctx, b, lit)

	assert.Same(t, lit, result)
}

func Test_Substitute_ReplacesArgumentDirectly(t *testing.T) {
	b := build.NewBuilder(nil)
	arg := ir.NewArgument(mop.NoDerivation, 0, "x", false)
	replacement := ir.NewLiteralInteger(mop.NoDerivation, 10)

	ctx := NewContext()
	ctx.Set(arg, replacement)

	result := Substitute(ctx, b, arg)

	assert.Same(t, replacement, result)
}

func Test_Substitute_RebuildsApplicationContainingArgument(t *testing.T) {
	b := build.NewBuilder(nil)
	arg := ir.NewArgument(mop.NoDerivation, 0, "x", false)
	one := ir.NewLiteralInteger(mop.NoDerivation, 1)
	fn := ir.NewLiteralPrimitiveFunction(mop.NoDerivation, "add", nil, true, true, false)
	app := b.Build(ir.NewApplication(mop.NoDerivation, fn, []ir.Node{arg, one}))

	replacement := ir.NewLiteralInteger(mop.NoDerivation, 99)
	ctx := NewContext()
	ctx.Set(arg, replacement)

	result := Substitute(ctx, b, app)

	rebuilt, ok := result.(*ir.Application)
	require.True(t, ok, "expected *ir.Application, got %T", result)
	assert.Same(t, replacement, rebuilt.Arguments[0])
	assert.Same(t, one, rebuilt.Arguments[1])
	assert.NotSame(t, app, result, "substitution should produce a distinct node when a dependency actually changed")
}

func Test_Substitute_LeavesUnrelatedSubtreeUntouched(t *testing.T) {
	b := build.NewBuilder(nil)
	arg := ir.NewArgument(mop.NoDerivation, 0, "x", false)
	unrelated := b.Build(ir.NewApplication(mop.NoDerivation,
		ir.NewLiteralPrimitiveFunction(mop.NoDerivation, "noop", nil, true, true, false),
		[]ir.Node{ir.NewLiteralInteger(mop.NoDerivation, 1)}))

	ctx := NewContext()
	ctx.Set(arg, ir.NewLiteralInteger(mop.NoDerivation, 2))

	result := Substitute(ctx, b, unrelated)

	assert.Same(t, unrelated, result, "a subtree with no beta-replaceable dependency in ctx must be returned unchanged")
}

func Test_InlineResultValue_SubstitutesArgumentIntoExitValue(t *testing.T) {
	b := build.NewBuilder(nil)
	capturedOuter := ir.NewLiteralInteger(mop.NoDerivation, 7)
	capture := ir.NewCapturedValue(mop.NoDerivation, capturedOuter)
	arg := ir.NewArgument(mop.NoDerivation, 0, "y", false)

	entry := b.Build(ir.NewSequenceEntry(mop.NoDerivation))
	exitValue := arg
	exit := b.BuildAndSequence(ir.NewSequenceReturn(mop.NoDerivation, exitValue, b.CurrentPredecessor()))
	def := ir.NewBlockDefinition(mop.NoDerivation, []ir.Node{capture}, []ir.Node{arg}, entry, exit, "")

	instance := ir.NewBlockInstance(mop.NoDerivation, []ir.Node{capturedOuter}, def)

	callArg := ir.NewLiteralInteger(mop.NoDerivation, 3)
	result := InlineResultValue(b, instance, []ir.Node{callArg})

	assert.Same(t, callArg, result, "the block's exit value is the argument itself, so inlining should substitute straight through to the call's argument value")
}
