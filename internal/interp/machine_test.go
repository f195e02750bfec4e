package interp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dekarrin/stgraph/internal/ir"
	"github.com/dekarrin/stgraph/internal/mop"
	"github.com/dekarrin/stgraph/internal/runtime"
	"github.com/dekarrin/stgraph/internal/sched"
)

func TestMachine_Execute_ReturnsLiteral(t *testing.T) {
	entry := ir.NewSequenceEntry(mop.NoDerivation)
	lit := ir.NewLiteralInteger(mop.NoDerivation, 42)
	exit := ir.NewSequenceReturn(mop.NoDerivation, lit, entry)
	script := ir.NewTopLevelScript(mop.NoDerivation, entry, exit)

	program := Build(sched.ScheduleTopLevelScript(script))
	m := NewMachine()

	v, err := m.Execute(program, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(42), v)
}

// `1 + 2 * 4` built directly as analyzed message sends: (1 + 2) * 4 = 12.
func TestMachine_Execute_MessageSendArithmetic(t *testing.T) {
	entry := ir.NewSequenceEntry(mop.NoDerivation)
	one := ir.NewLiteralInteger(mop.NoDerivation, 1)
	two := ir.NewLiteralInteger(mop.NoDerivation, 2)
	four := ir.NewLiteralInteger(mop.NoDerivation, 4)
	plus := ir.NewLiteralSymbol(mop.NoDerivation, "+")
	times := ir.NewLiteralSymbol(mop.NoDerivation, "*")

	sum := ir.NewFxMessageSend(mop.NoDerivation, one, plus, []ir.Node{two}, entry)
	product := ir.NewFxMessageSend(mop.NoDerivation, sum, times, []ir.Node{four}, sum)
	exit := ir.NewSequenceReturn(mop.NoDerivation, product, product)
	script := ir.NewTopLevelScript(mop.NoDerivation, entry, exit)

	program := Build(sched.ScheduleTopLevelScript(script))
	m := NewMachine()

	v, err := m.Execute(program, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(12), v)
}

func TestMachine_Execute_BlockCallAppliesArguments(t *testing.T) {
	blockEntry := ir.NewSequenceEntry(mop.NoDerivation)
	arg := ir.NewArgument(mop.NoDerivation, 0, "x", false)
	one := ir.NewLiteralInteger(mop.NoDerivation, 1)
	plus := ir.NewLiteralSymbol(mop.NoDerivation, "+")
	sum := ir.NewFxMessageSend(mop.NoDerivation, arg, plus, []ir.Node{one}, blockEntry)
	blockExit := ir.NewSequenceReturn(mop.NoDerivation, sum, sum)
	def := ir.NewBlockDefinition(mop.NoDerivation, nil, []ir.Node{arg}, blockEntry, blockExit, "")
	instance := ir.NewBlockInstance(mop.NoDerivation, nil, def)

	scriptEntry := ir.NewSequenceEntry(mop.NoDerivation)
	nine := ir.NewLiteralInteger(mop.NoDerivation, 9)
	call := ir.NewFxApplication(mop.NoDerivation, instance, []ir.Node{nine}, scriptEntry)
	exit := ir.NewSequenceReturn(mop.NoDerivation, call, call)
	script := ir.NewTopLevelScript(mop.NoDerivation, scriptEntry, exit)

	program := Build(sched.ScheduleTopLevelScript(script))
	m := NewMachine()

	v, err := m.Execute(program, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(10), v)
}

func TestMachine_Execute_WrongActivationParameterCountErrors(t *testing.T) {
	entry := ir.NewSequenceEntry(mop.NoDerivation)
	exit := ir.NewSequenceReturn(mop.NoDerivation, ir.NewLiteralTrue(mop.NoDerivation), entry)
	script := ir.NewTopLevelScript(mop.NoDerivation, entry, exit)

	program := Build(sched.ScheduleTopLevelScript(script))
	m := NewMachine()

	_, err := m.Execute(program, []runtime.Value{int64(1)})
	require.Error(t, err)
}
