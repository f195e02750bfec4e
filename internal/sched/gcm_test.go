package sched

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dekarrin/stgraph/internal/ir"
	"github.com/dekarrin/stgraph/internal/mop"
)

func Test_ScheduleTopLevelScript_LinearSpine(t *testing.T) {
	entry := ir.NewSequenceEntry(mop.NoDerivation)
	lit := ir.NewLiteralInteger(mop.NoDerivation, 42)
	exit := ir.NewSequenceReturn(mop.NoDerivation, lit, entry)
	script := ir.NewTopLevelScript(mop.NoDerivation, entry, exit)

	p := ScheduleTopLevelScript(script)

	require.Len(t, p.Constants, 1)
	assert.Same(t, lit, p.Constants[0])
	require.Len(t, p.Body, 2)
	assert.Same(t, entry, p.Body[0])
	assert.Same(t, exit, p.Body[1])
}

func Test_ScheduleTopLevelScript_DominanceDepthIncreasesAwayFromEntry(t *testing.T) {
	entry := ir.NewSequenceEntry(mop.NoDerivation)
	cond := ir.NewLiteralTrue(mop.NoDerivation)
	branch := ir.NewConditionalBranch(mop.NoDerivation, cond, nil, nil, entry)
	trueEnd := ir.NewSequenceBranchEnd(mop.NoDerivation, branch, branch)
	falseEnd := ir.NewSequenceBranchEnd(mop.NoDerivation, branch, branch)
	branch.TrueDestination = trueEnd
	branch.FalseDestination = falseEnd
	conv := ir.NewSequenceConvergence(mop.NoDerivation, branch, []ir.Node{trueEnd, falseEnd})
	ret := ir.NewSequenceReturn(mop.NoDerivation, ir.NewLiteralInteger(mop.NoDerivation, 1), conv)
	script := ir.NewTopLevelScript(mop.NoDerivation, entry, ret)

	g := newGCM(script)
	regions := predecessorTopo(ret)
	p := g.computeForRegions(nil, regions)
	require.NotNil(t, p)

	entryDepth := g.depths[g.regionIndex[entry]]
	branchDepth := g.depths[g.regionIndex[branch]]
	convDepth := g.depths[g.regionIndex[conv]]
	retDepth := g.depths[g.regionIndex[ret]]

	assert.Less(t, entryDepth, branchDepth, "the divergence is strictly dominated by entry")
	assert.Less(t, branchDepth, convDepth, "the convergence is strictly dominated by its divergence")
	assert.Less(t, convDepth, retDepth, "the return is strictly dominated by the convergence it reads through")
}

func Test_ScheduleTopLevelScript_DataInstructionScheduledNoLaterThanItsUsers(t *testing.T) {
	entry := ir.NewSequenceEntry(mop.NoDerivation)
	cond := ir.NewLiteralTrue(mop.NoDerivation)
	branch := ir.NewConditionalBranch(mop.NoDerivation, cond, nil, nil, entry)
	shared := ir.NewMutableArray(mop.NoDerivation, []ir.Node{ir.NewLiteralInteger(mop.NoDerivation, 1)})
	trueEnd := ir.NewSequenceBranchEnd(mop.NoDerivation, branch, branch)
	falseEnd := ir.NewSequenceBranchEnd(mop.NoDerivation, branch, branch)
	branch.TrueDestination = trueEnd
	branch.FalseDestination = falseEnd
	conv := ir.NewSequenceConvergence(mop.NoDerivation, branch, []ir.Node{trueEnd, falseEnd})
	ret := ir.NewSequenceReturn(mop.NoDerivation, shared, conv)
	script := ir.NewTopLevelScript(mop.NoDerivation, entry, ret)

	p := ScheduleTopLevelScript(script)

	idx := map[ir.Node]int{}
	for i, n := range p.Body {
		idx[n] = i
	}

	require.Contains(t, idx, shared)
	require.Contains(t, idx, branch)
	assert.Less(t, idx[branch], idx[shared], "shared's only user is reached through the divergence, so shared must be scheduled at or after it in region order, never before")
}

func Test_ScheduleTopLevelScript_RegionInstructionOrderRespectsDataDependencies(t *testing.T) {
	entry := ir.NewSequenceEntry(mop.NoDerivation)
	a := ir.NewMutableArray(mop.NoDerivation, []ir.Node{ir.NewLiteralInteger(mop.NoDerivation, 1)})
	b := ir.NewMutableArray(mop.NoDerivation, []ir.Node{a})
	exit := ir.NewSequenceReturn(mop.NoDerivation, b, entry)
	script := ir.NewTopLevelScript(mop.NoDerivation, entry, exit)

	p := ScheduleTopLevelScript(script)

	idx := map[ir.Node]int{}
	for i, n := range p.Body {
		idx[n] = i
	}
	require.Contains(t, idx, a)
	require.Contains(t, idx, b)
	assert.Less(t, idx[a], idx[b], "b depends on a, so a must be serialized first within their shared region")
}

func Test_ScheduleBlock_ActivationParametersComeFromCapturesAndArguments(t *testing.T) {
	capturedOuter := ir.NewLiteralInteger(mop.NoDerivation, 7)
	capture := ir.NewCapturedValue(mop.NoDerivation, capturedOuter)
	arg := ir.NewArgument(mop.NoDerivation, 0, "x", false)
	entry := ir.NewSequenceEntry(mop.NoDerivation)
	exit := ir.NewSequenceReturn(mop.NoDerivation, arg, entry)
	def := ir.NewBlockDefinition(mop.NoDerivation, []ir.Node{capture}, []ir.Node{arg}, entry, exit, "")

	p := ScheduleBlock(def)

	require.Len(t, p.ActivationParameters, 2)
	assert.Same(t, capture, p.ActivationParameters[0])
	assert.Same(t, arg, p.ActivationParameters[1])
}
