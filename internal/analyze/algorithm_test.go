package analyze

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dekarrin/stgraph/internal/build"
	"github.com/dekarrin/stgraph/internal/ir"
	"github.com/dekarrin/stgraph/internal/mop"
)

func newTestAlgorithm(t *testing.T) (*Algorithm, build.Environment) {
	t.Helper()
	top := build.NewTopLevelEnvironment()
	env := build.NewScriptEnvironment(top, "<test>")
	builder := build.NewBuilder(nil)
	return New(env, builder), env
}

func srcInt(v int64) *ir.SyntaxLiteralInteger {
	return ir.NewSyntaxLiteralInteger(mop.NoDerivation, v)
}

func Test_ExpandSyntaxLiteralInteger(t *testing.T) {
	a, _ := newTestAlgorithm(t)
	result := a.Expand(srcInt(42))

	lit, ok := result.(*ir.LiteralInteger)
	require.True(t, ok, "expected *ir.LiteralInteger, got %T", result)
	assert.EqualValues(t, 42, lit.Value)
}

func Test_ExpandSyntaxLiteralInteger_GVNDedups(t *testing.T) {
	a, _ := newTestAlgorithm(t)

	first := a.Expand(srcInt(7))
	second := a.Expand(srcInt(7))

	assert.Same(t, first, second, "two textually identical integer literals should unify to one node")
}

func Test_ExpandSyntaxIdentifierReference_Unbound(t *testing.T) {
	a, _ := newTestAlgorithm(t)
	ref := ir.NewSyntaxIdentifierReference(mop.NoDerivation, "nonexistentName")

	result := a.Expand(ref)

	_, ok := result.(*ir.Error)
	assert.True(t, ok, "expected unbound identifier to expand to an *ir.Error, got %T", result)
	assert.True(t, a.Errors.HasErrors())
}

func Test_ExpandSyntaxIdentifierReference_BuiltinNil(t *testing.T) {
	a, _ := newTestAlgorithm(t)
	ref := ir.NewSyntaxIdentifierReference(mop.NoDerivation, "nil")

	result := a.Expand(ref)

	_, ok := result.(*ir.LiteralNil)
	assert.True(t, ok, "expected nil identifier to resolve to the top-level LiteralNil binding, got %T", result)
}

func Test_ExpandSyntaxBinaryExpressionSequence_FoldsLeftToRight(t *testing.T) {
	// "1 + 2" with no primitive bound for "+" still must fold into a single
	// nested SyntaxMessageSend and then expand that, landing on an
	// FxMessageSend, which is what every send with a receiver expands to.
	a, _ := newTestAlgorithm(t)

	plus := ir.NewSyntaxLiteralSymbol(mop.NoDerivation, "+")
	seq := ir.NewSyntaxBinaryExpressionSequence(mop.NoDerivation, []ir.Node{
		srcInt(1), plus, srcInt(2),
	})

	result := a.Expand(seq)

	send, ok := result.(*ir.FxMessageSend)
	require.True(t, ok, "expected *ir.FxMessageSend, got %T", result)
	assert.IsType(t, &ir.LiteralInteger{}, send.Receiver)
	assert.Len(t, send.Arguments, 1)
}

func Test_ExpandSyntaxArray_AllLiteralBuildsImmutableArray(t *testing.T) {
	a, _ := newTestAlgorithm(t)
	arr := ir.NewSyntaxArray(mop.NoDerivation, []ir.Node{srcInt(1), srcInt(2), srcInt(3)})

	result := a.Expand(arr)

	_, ok := result.(*ir.Array)
	assert.True(t, ok, "an array of only literals should expand to the immutable ir.Array, got %T", result)
}

func Test_ExpandSyntaxArray_ComputedElementBuildsMutableArray(t *testing.T) {
	a, _ := newTestAlgorithm(t)
	plus := ir.NewSyntaxLiteralSymbol(mop.NoDerivation, "+")
	computed := ir.NewSyntaxBinaryExpressionSequence(mop.NoDerivation, []ir.Node{srcInt(1), plus, srcInt(2)})
	arr := ir.NewSyntaxArray(mop.NoDerivation, []ir.Node{srcInt(1), computed})

	result := a.Expand(arr)

	_, ok := result.(*ir.MutableArray)
	assert.True(t, ok, "an array with a non-literal element should expand to ir.MutableArray, got %T", result)
}

func Test_ExpandSyntaxSequence_EmptyYieldsNil(t *testing.T) {
	a, _ := newTestAlgorithm(t)
	seq := ir.NewSyntaxSequence(mop.NoDerivation, nil, nil, nil)

	result := a.Expand(seq)

	assert.IsType(t, &ir.LiteralNil{}, result)
}

func Test_ExpandSyntaxSequence_AssignmentThreadsBindingForward(t *testing.T) {
	a, _ := newTestAlgorithm(t)

	assign := ir.NewSyntaxAssignment(mop.NoDerivation,
		ir.NewSyntaxIdentifierReference(mop.NoDerivation, "x"),
		srcInt(10))
	readBack := ir.NewSyntaxIdentifierReference(mop.NoDerivation, "x")

	seq := ir.NewSyntaxSequence(mop.NoDerivation, nil, nil, []ir.Node{assign, readBack})

	result := a.Expand(seq)

	lit, ok := result.(*ir.LiteralInteger)
	require.True(t, ok, "expected the sequence to yield the rebound value of x, got %T", result)
	assert.EqualValues(t, 10, lit.Value)
}

func Test_ExpandSyntaxBlock_BuildsDefinitionAndInstance(t *testing.T) {
	a, _ := newTestAlgorithm(t)

	arg := ir.NewSyntaxArgument(mop.NoDerivation, "x")
	body := ir.NewSyntaxSequence(mop.NoDerivation, nil, nil, []ir.Node{
		ir.NewSyntaxIdentifierReference(mop.NoDerivation, "x"),
	})
	block := ir.NewSyntaxBlock(mop.NoDerivation, []ir.Node{arg}, body)

	result := a.Expand(block)

	instance, ok := result.(*ir.BlockInstance)
	require.True(t, ok, "expected *ir.BlockInstance, got %T", result)

	def, ok := instance.Definition.(*ir.BlockDefinition)
	require.True(t, ok, "expected BlockInstance.Definition to be *ir.BlockDefinition, got %T", instance.Definition)
	assert.Len(t, def.Arguments, 1)
}

func Test_ExpandSyntaxBlock_CapturesOuterArgument(t *testing.T) {
	// Only beta-replaceable bindings (an enclosing block's own Argument or
	// CapturedValue) are worth capturing: a plain literal is already a
	// freestanding, GVN-shared node any nested block can reference
	// directly with no activation-relative plumbing, so it is never
	// wrapped in a CapturedValue. The inner block here reads the outer
	// block's own parameter "x", which is what should trigger a capture.
	a, _ := newTestAlgorithm(t)

	innerBody := ir.NewSyntaxSequence(mop.NoDerivation, nil, nil, []ir.Node{
		ir.NewSyntaxIdentifierReference(mop.NoDerivation, "x"),
	})
	innerBlock := ir.NewSyntaxBlock(mop.NoDerivation, nil, innerBody)

	outerArg := ir.NewSyntaxArgument(mop.NoDerivation, "x")
	outerBody := ir.NewSyntaxSequence(mop.NoDerivation, nil, nil, []ir.Node{innerBlock})
	outerBlock := ir.NewSyntaxBlock(mop.NoDerivation, []ir.Node{outerArg}, outerBody)

	result := a.Expand(outerBlock)

	outerInstance, ok := result.(*ir.BlockInstance)
	require.True(t, ok, "expected *ir.BlockInstance, got %T", result)
	outerDef := outerInstance.Definition.(*ir.BlockDefinition)

	innerReturn := outerDef.ExitPoint.(*ir.SequenceReturn)
	innerInstance, ok := innerReturn.Value.(*ir.BlockInstance)
	require.True(t, ok, "expected the outer block's body to yield the inner *ir.BlockInstance, got %T", innerReturn.Value)

	assert.Len(t, innerInstance.CapturedValues, 1)
	innerDef := innerInstance.Definition.(*ir.BlockDefinition)
	assert.Len(t, innerDef.Captures, 1)
	assert.Same(t, outerDef.Arguments[0], innerInstance.CapturedValues[0])
}

func Test_Reduce_FoldsPureCompileTimePrimitiveApplication(t *testing.T) {
	a, _ := newTestAlgorithm(t)

	addImpl := func(args ...ir.Node) ir.Node {
		l := args[0].(*ir.LiteralInteger)
		r := args[1].(*ir.LiteralInteger)
		return ir.NewLiteralInteger(mop.ExpansionDerivation(mop.DerivationReduction, l), l.Value+r.Value)
	}
	addFn := ir.NewLiteralPrimitiveFunction(mop.NoDerivation, "add", addImpl, true, true, false)

	app := ir.NewSyntaxApplication(mop.NoDerivation, addFn, []ir.Node{srcInt(3), srcInt(4)})

	result := a.Expand(app)

	lit, ok := result.(*ir.LiteralInteger)
	require.True(t, ok, "expected a folded *ir.LiteralInteger, got %T", result)
	assert.EqualValues(t, 7, lit.Value)
}

// Test_ExpandSyntaxApplication_PassesThroughAlreadyAnalyzedFunctional
// documents that an already-analyzed node reachable as a syntax node's
// child (the common case: a SyntaxApplication's Functional came from
// resolving an identifier bound to a primitive) expands to itself, since
// no expansion pattern is registered for any analyzed kind and
// dispatchOnce's default is to return the node unchanged.
func Test_ExpandSyntaxApplication_PassesThroughAlreadyAnalyzedFunctional(t *testing.T) {
	a, _ := newTestAlgorithm(t)
	impureFn := ir.NewLiteralPrimitiveFunction(mop.NoDerivation, "sideEffecting", nil, false, false, false)

	app := ir.NewSyntaxApplication(mop.NoDerivation, impureFn, nil)

	result := a.Expand(app)

	fx, ok := result.(*ir.FxApplication)
	require.True(t, ok, "an impure primitive's application should sequence as *ir.FxApplication, got %T", result)
	assert.Same(t, impureFn, fx.Functional)
}
