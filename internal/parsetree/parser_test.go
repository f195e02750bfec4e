package parsetree

import (
	"testing"

	"github.com/dekarrin/stgraph/internal/ir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sequenceOf(t *testing.T, node ir.Node) *ir.SyntaxSequence {
	t.Helper()
	seq, ok := node.(*ir.SyntaxSequence)
	require.True(t, ok, "expected *ir.SyntaxSequence, got %T", node)
	return seq
}

func TestParse_BinaryExpressionStatement(t *testing.T) {
	node, errs := Parse("t.st", "3 + 4.")
	require.False(t, errs.HasErrors())
	seq := sequenceOf(t, node)
	require.Len(t, seq.Elements, 1)

	bin, ok := seq.Elements[0].(*ir.SyntaxBinaryExpressionSequence)
	require.True(t, ok, "expected binary expression sequence, got %T", seq.Elements[0])
	require.Len(t, bin.Elements, 3)
	assert.Equal(t, int64(3), bin.Elements[0].(*ir.SyntaxLiteralInteger).Value)
	assert.Equal(t, "+", bin.Elements[1].(*ir.SyntaxLiteralSymbol).Value)
	assert.Equal(t, int64(4), bin.Elements[2].(*ir.SyntaxLiteralInteger).Value)
}

func TestParse_KeywordMessageSend(t *testing.T) {
	node, errs := Parse("t.st", "1 between: 0 and: 2.")
	require.False(t, errs.HasErrors())
	seq := sequenceOf(t, node)
	require.Len(t, seq.Elements, 1)

	send, ok := seq.Elements[0].(*ir.SyntaxMessageSend)
	require.True(t, ok, "expected message send, got %T", seq.Elements[0])
	assert.Equal(t, "between:and:", send.Selector.(*ir.SyntaxLiteralSymbol).Value)
	require.Len(t, send.Arguments, 2)
}

func TestParse_AssignmentAndIdentifier(t *testing.T) {
	node, errs := Parse("t.st", "| x | x := 5. x")
	require.False(t, errs.HasErrors())
	seq := sequenceOf(t, node)
	require.Len(t, seq.Locals, 1)
	assert.Equal(t, "x", seq.Locals[0].(*ir.SyntaxArgument).Name)
	require.Len(t, seq.Elements, 2)

	assign, ok := seq.Elements[0].(*ir.SyntaxAssignment)
	require.True(t, ok, "expected assignment, got %T", seq.Elements[0])
	assert.Equal(t, "x", assign.Store.(*ir.SyntaxIdentifierReference).Value)

	ref, ok := seq.Elements[1].(*ir.SyntaxIdentifierReference)
	require.True(t, ok, "expected identifier reference, got %T", seq.Elements[1])
	assert.Equal(t, "x", ref.Value)
}

func TestParse_BlockLiteralWithArguments(t *testing.T) {
	node, errs := Parse("t.st", "[:a :b | a + b]")
	require.False(t, errs.HasErrors())
	seq := sequenceOf(t, node)
	require.Len(t, seq.Elements, 1)

	block, ok := seq.Elements[0].(*ir.SyntaxBlock)
	require.True(t, ok, "expected block, got %T", seq.Elements[0])
	require.Len(t, block.Arguments, 2)
	assert.Equal(t, "a", block.Arguments[0].(*ir.SyntaxArgument).Name)
	assert.Equal(t, "b", block.Arguments[1].(*ir.SyntaxArgument).Name)
}

func TestParse_CascadeSharesReceiver(t *testing.T) {
	node, errs := Parse("t.st", "Transcript show: 'a'; show: 'b'; nl.")
	require.False(t, errs.HasErrors())
	seq := sequenceOf(t, node)
	require.Len(t, seq.Elements, 1)

	cascade, ok := seq.Elements[0].(*ir.SyntaxMessageCascade)
	require.True(t, ok, "expected cascade, got %T", seq.Elements[0])
	require.Len(t, cascade.Messages, 3)
	recv, ok := cascade.Receiver.(*ir.SyntaxIdentifierReference)
	require.True(t, ok)
	assert.Equal(t, "Transcript", recv.Value)

	first := cascade.Messages[0].(*ir.SyntaxCascadeMessage)
	assert.Equal(t, "show:", first.Selector.(*ir.SyntaxLiteralSymbol).Value)
	last := cascade.Messages[2].(*ir.SyntaxCascadeMessage)
	assert.Equal(t, "nl", last.Selector.(*ir.SyntaxLiteralSymbol).Value)
}

func TestParse_LiteralArrayWithNestedArray(t *testing.T) {
	node, errs := Parse("t.st", "#(1 2 #(3 4) foo)")
	require.False(t, errs.HasErrors())
	seq := sequenceOf(t, node)
	require.Len(t, seq.Elements, 1)

	arr, ok := seq.Elements[0].(*ir.SyntaxArray)
	require.True(t, ok, "expected array, got %T", seq.Elements[0])
	require.Len(t, arr.Elements, 4)
	assert.Equal(t, int64(1), arr.Elements[0].(*ir.SyntaxLiteralInteger).Value)
	nested, ok := arr.Elements[2].(*ir.SyntaxArray)
	require.True(t, ok, "expected nested array, got %T", arr.Elements[2])
	require.Len(t, nested.Elements, 2)
	assert.Equal(t, "foo", arr.Elements[3].(*ir.SyntaxLiteralSymbol).Value)
}

func TestParse_RadixInteger(t *testing.T) {
	node, errs := Parse("t.st", "16rFF.")
	require.False(t, errs.HasErrors())
	seq := sequenceOf(t, node)
	require.Len(t, seq.Elements, 1)
	lit, ok := seq.Elements[0].(*ir.SyntaxLiteralInteger)
	require.True(t, ok, "expected integer literal, got %T", seq.Elements[0])
	assert.Equal(t, int64(255), lit.Value)
}

func TestParse_UnterminatedStringProducesError(t *testing.T) {
	_, errs := Parse("t.st", "'unterminated")
	assert.True(t, errs.HasErrors())
}
