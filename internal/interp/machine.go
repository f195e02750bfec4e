package interp

import (
	"fmt"

	"github.com/dekarrin/stgraph/internal/ir"
	"github.com/dekarrin/stgraph/internal/runtime"
	"github.com/dekarrin/stgraph/internal/sched"
)

// Machine runs one or more Programs, memoizing the BlockTemplate built for
// each BlockDefinition it interprets so a block literal evaluated many
// times schedules and lowers its body only once.
type Machine struct {
	templates map[ir.Node]*runtime.BlockTemplate
}

func NewMachine() *Machine {
	return &Machine{templates: make(map[ir.Node]*runtime.BlockTemplate)}
}

// Execute runs p to completion with the given activation-parameter values
// (a top-level script takes none; a block's are its captures followed by
// its call arguments) and returns its result.
func (m *Machine) Execute(p *Program, args []runtime.Value) (runtime.Value, error) {
	if len(args) != p.ActivationParameterCount {
		return nil, fmt.Errorf("interp: expected %d activation parameter(s), got %d", p.ActivationParameterCount, len(args))
	}
	ctx := &ActivationContext{
		machine: m,
		program: p,
		data:    make([]runtime.Value, p.ActivationContextSize),
		pc:      p.StartPC,
	}
	copy(ctx.data, args)
	return ctx.run()
}

// templateFor lazily schedules, lowers, and memoizes def's own body,
// returning the runtime.BlockTemplate a BlockInstance pairs with its
// captured values to build a callable closure.
func (m *Machine) templateFor(def *ir.BlockDefinition) *runtime.BlockTemplate {
	if t, ok := m.templates[def]; ok {
		return t
	}
	program := Build(sched.ScheduleBlock(def))
	t := &runtime.BlockTemplate{
		ArgumentCount: len(def.Arguments),
		Invoke: func(captures, args []runtime.Value) (runtime.Value, error) {
			all := make([]runtime.Value, 0, len(captures)+len(args))
			all = append(all, captures...)
			all = append(all, args...)
			return m.Execute(program, all)
		},
	}
	m.templates[def] = t
	return t
}

// ActivationContext is one call's register file: data holds the activation
// parameters followed by the computed value of every body instruction,
// indexed exactly as Program.ParameterLists records, per
// ASGNodeInterpreterActivationContext.
type ActivationContext struct {
	machine *Machine
	program *Program
	data    []runtime.Value
	pc      int

	result       runtime.Value
	shouldReturn bool
}

func (c *ActivationContext) run() (runtime.Value, error) {
	for !c.shouldReturn {
		pc := c.pc
		if pc >= len(c.program.Instructions) {
			return nil, fmt.Errorf("interp: instruction stream exhausted without a return")
		}
		inst := c.program.Instructions[pc]
		params := c.program.ParameterLists[pc-c.program.ConstantCount]
		c.pc++
		v, err := c.machine.interpretInContext(c, inst, params)
		if err != nil {
			return nil, err
		}
		c.data[pc-c.program.ConstantCount] = v
	}
	return c.result, nil
}

// Get resolves a register-relative operand index: negative indices read a
// constant counting back from the end of the constants array, non-negative
// indices read the activation context's own data array.
func (c *ActivationContext) Get(index int) runtime.Value {
	if index < 0 {
		return c.program.Constants[c.program.ConstantCount+index]
	}
	return c.data[index]
}

func (c *ActivationContext) returnValue(v runtime.Value) {
	c.result = v
	c.shouldReturn = true
}

// interpretInContext executes one scheduled instruction and produces the
// value stored at its pc, dispatching by ir.Node kind the way asg.py's
// per-node interpretInContext methods do.
func (m *Machine) interpretInContext(c *ActivationContext, n ir.Node, params []int) (runtime.Value, error) {
	switch v := n.(type) {
	case *ir.SequenceEntry:
		return nil, nil

	case *ir.ConditionalBranch, *ir.SequenceBranchEnd, *ir.SequenceConvergence:
		// internal/analyze never builds a conditional send (no
		// ifTrue:ifFalse: pattern is registered yet), so these never
		// appear in a real program; treated as no-ops so internal/sched's
		// dominance machinery has somewhere to place them if that changes.
		return nil, nil

	case *ir.SequenceReturn:
		c.returnValue(c.Get(params[0]))
		return nil, nil

	case *ir.FxApplication:
		// interpretationDependencies appends Predecessor after the data
		// operands for every Fx* kind; drop it, it names a region, not an
		// argument.
		return applyFunctional(c, params[:len(params)-1])
	case *ir.Application:
		return applyFunctional(c, params)

	case *ir.FxMessageSend:
		return sendParams(c, params[:len(params)-1])
	case *ir.MessageSend:
		return sendParams(c, params)

	case *ir.Phi:
		// Reserved for real branching: only the first incoming value is
		// read, and a trailing sequencing-predecessor operand (the region
		// it is pinned to) is present in params but unused.
		if len(params) == 0 {
			return nil, nil
		}
		return c.Get(params[0]), nil
	case *ir.PhiValue:
		return c.Get(params[0]), nil

	case *ir.BlockDefinition:
		return m.templateFor(v), nil
	case *ir.BlockInstance:
		template, ok := c.Get(params[len(params)-1]).(*runtime.BlockTemplate)
		if !ok {
			return nil, fmt.Errorf("interp: block instance's definition operand did not evaluate to a template")
		}
		return &runtime.Block{Template: template, Captures: getAll(c, params[:len(params)-1])}, nil

	case *ir.Array:
		return getAll(c, params), nil
	case *ir.MutableArray:
		return getAll(c, params), nil

	default:
		if ir.IsLiteralNode(n) {
			return evaluateConstant(n), nil
		}
		return nil, fmt.Errorf("interp: cannot interpret %s", n.Header().Kind)
	}
}

func applyFunctional(c *ActivationContext, params []int) (runtime.Value, error) {
	functional := c.Get(params[0])
	callable, ok := functional.(runtime.Callable)
	if !ok {
		return nil, fmt.Errorf("interp: %v is not callable", functional)
	}
	return callable.Call(getAll(c, params[1:])...)
}

func sendParams(c *ActivationContext, params []int) (runtime.Value, error) {
	receiver := c.Get(params[0])
	selector, ok := selectorToString(c.Get(params[1]))
	if !ok {
		return nil, fmt.Errorf("interp: message selector did not evaluate to a symbol or string")
	}
	return runtime.Send(receiver, selector, getAll(c, params[2:]))
}

func selectorToString(v runtime.Value) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case *runtime.Symbol:
		return s.Name, true
	}
	return "", false
}

func getAll(c *ActivationContext, indices []int) []runtime.Value {
	out := make([]runtime.Value, len(indices))
	for i, idx := range indices {
		out[i] = c.Get(idx)
	}
	return out
}
