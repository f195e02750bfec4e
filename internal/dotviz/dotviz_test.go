package dotviz

import (
	"testing"

	"github.com/dekarrin/stgraph/internal/build"
	"github.com/dekarrin/stgraph/internal/ir"
	"github.com/dekarrin/stgraph/internal/mop"
	"github.com/dekarrin/stgraph/internal/sched"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDumpSyntax_RendersNodeAndEdge(t *testing.T) {
	left := ir.NewSyntaxLiteralInteger(mop.NoDerivation, 1)
	right := ir.NewSyntaxLiteralInteger(mop.NoDerivation, 2)
	plus := ir.NewSyntaxLiteralSymbol(mop.NoDerivation, "+")
	seq := ir.NewSyntaxBinaryExpressionSequence(mop.NoDerivation, []ir.Node{left, plus, right})

	out := DumpSyntax(seq)
	assert.Contains(t, out, "digraph syntax {")
	assert.Contains(t, out, "SyntaxLiteralInteger(value=1)")
	assert.Contains(t, out, "->")
	assert.Contains(t, out, "}\n")
}

func TestDumpAnalyzed_RendersTopLevelScript(t *testing.T) {
	builder := build.NewBuilder(nil)
	lit := builder.Build(ir.NewLiteralInteger(mop.NoDerivation, 42))
	entry := builder.Build(ir.NewSequenceEntry(mop.NoDerivation))
	ret := builder.BuildAndSequence(ir.NewSequenceReturn(mop.NoDerivation, lit, entry))
	script := builder.Build(ir.NewTopLevelScript(mop.NoDerivation, entry, ret)).(*ir.TopLevelScript)

	out := DumpAnalyzed(script)
	assert.Contains(t, out, "digraph analyzed {")
	assert.Contains(t, out, "#")
}

func TestDumpProgram_RendersScheduledInstructions(t *testing.T) {
	builder := build.NewBuilder(nil)
	lit := builder.Build(ir.NewLiteralInteger(mop.NoDerivation, 7))
	entry := builder.Build(ir.NewSequenceEntry(mop.NoDerivation))
	ret := builder.BuildAndSequence(ir.NewSequenceReturn(mop.NoDerivation, lit, entry))
	script := builder.Build(ir.NewTopLevelScript(mop.NoDerivation, entry, ret)).(*ir.TopLevelScript)

	program := sched.ScheduleTopLevelScript(script)
	require.NotNil(t, program)

	out := DumpProgram(program)
	assert.Contains(t, out, "digraph program {")
}

func TestDumpSyntax_IsDeterministicAcrossRenders(t *testing.T) {
	left := ir.NewSyntaxLiteralInteger(mop.NoDerivation, 1)
	right := ir.NewSyntaxLiteralInteger(mop.NoDerivation, 2)
	plus := ir.NewSyntaxLiteralSymbol(mop.NoDerivation, "+")
	seq := ir.NewSyntaxBinaryExpressionSequence(mop.NoDerivation, []ir.Node{left, plus, right})

	first := DumpSyntax(seq)
	second := DumpSyntax(seq)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("rendering the same tree twice should be byte-identical (-first +second):\n%s", diff)
	}
}
