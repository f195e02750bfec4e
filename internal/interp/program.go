// Package interp turns a scheduled sched.Program into a flat
// [constants | activation parameters | body] instruction array and
// executes it register-file style, grounded on
// original_source/pyst/interpreter.py's ASGNodeWithInterpretableInstructions
// and ASGNodeInterpreterActivationContext.
package interp

import (
	"github.com/dekarrin/stgraph/internal/ir"
	"github.com/dekarrin/stgraph/internal/mop"
	"github.com/dekarrin/stgraph/internal/runtime"
	"github.com/dekarrin/stgraph/internal/sched"
)

// Program is the interpretable form of one scheduled functional: a single
// flat slice holding constants, then activation parameters, then the
// scheduled body, plus the register-relative operand indices precomputed
// for every instruction after the constants.
type Program struct {
	Functional               ir.Node
	ConstantCount            int
	ActivationParameterCount int
	Instructions             []ir.Node
	Constants                []runtime.Value
	ParameterLists           [][]int
	StartPC                  int
	ActivationContextSize    int
}

// interpretationDependencies is the operand list buildParametersLists
// records for one instruction: the generic interpretation dependencies
// (data dependencies plus sequencing predecessors), except a
// *ir.BlockDefinition records none. Its own Captures/Arguments name
// activation-record slots of the block's own, separately-built Program,
// not of the outer one this instruction's parameter list indexes into.
func interpretationDependencies(n ir.Node) []ir.Node {
	if _, ok := n.(*ir.BlockDefinition); ok {
		return nil
	}
	return mop.InterpretationDependencies(n)
}

// Build lowers a scheduled program into its interpretable form: constants
// are evaluated once to host values, and every remaining instruction gets
// a parameter list of register-relative indices into the shared array.
func Build(p *sched.Program) *Program {
	all := make([]ir.Node, 0, len(p.Constants)+len(p.ActivationParameters)+len(p.Body))
	all = append(all, p.Constants...)
	all = append(all, p.ActivationParameters...)
	all = append(all, p.Body...)

	constantCount := len(p.Constants)
	activationParameterCount := len(p.ActivationParameters)

	indexOf := make(map[ir.Node]int, len(all))
	for i, n := range all {
		indexOf[n] = i - constantCount
	}

	constants := make([]runtime.Value, constantCount)
	for i, c := range p.Constants {
		constants[i] = evaluateConstant(c)
	}

	paramLists := make([][]int, len(all)-constantCount)
	for i := constantCount; i < len(all); i++ {
		deps := interpretationDependencies(all[i])
		params := make([]int, len(deps))
		for j, dep := range deps {
			idx, ok := indexOf[dep]
			if !ok {
				panic("interp: instruction depends on a node outside its own program: " + string(dep.Header().Kind))
			}
			params[j] = idx
		}
		paramLists[i-constantCount] = params
	}

	return &Program{
		Functional:               p.Functional,
		ConstantCount:            constantCount,
		ActivationParameterCount: activationParameterCount,
		Instructions:             all,
		Constants:                constants,
		ParameterLists:           paramLists,
		StartPC:                  constantCount + activationParameterCount,
		ActivationContextSize:    len(all) - constantCount,
	}
}

// evaluateConstant reduces a compile-time-constant node (per
// sched.isConstantDataNode's classification) to the host value the
// interpreter's register file and runtime.Send operate on directly.
func evaluateConstant(n ir.Node) runtime.Value {
	switch v := n.(type) {
	case *ir.LiteralNil:
		return nil
	case *ir.LiteralFalse:
		return false
	case *ir.LiteralTrue:
		return true
	case *ir.LiteralInteger:
		return v.Value
	case *ir.LiteralFloat:
		return v.Value
	case *ir.LiteralString:
		return v.Value
	case *ir.LiteralSymbol:
		return &runtime.Symbol{Name: v.Value}
	case *ir.LiteralCharacter:
		return runtime.Character{Rune: v.Value}
	case *ir.LiteralObject:
		return v.Value
	case *ir.LiteralPrimitiveFunction:
		return &runtime.PrimitiveFunction{Name: v.Name, Fn: primitiveInvoker(v)}
	case *ir.Array:
		elements := make([]runtime.Value, len(v.Elements))
		for i, e := range v.Elements {
			elements[i] = evaluateConstant(e)
		}
		return elements
	default:
		panic("interp: cannot evaluate " + string(n.Header().Kind) + " as a constant")
	}
}

// primitiveInvoker adapts a LiteralPrimitiveFunction's compile-time-only
// PrimitiveImpl (ir.Node -> ir.Node, used by internal/analyze's reduction
// pass) into a runtime callable when the same primitive is invoked at
// execution time instead of folded away at compile time. Primitives with no
// CompileTimeImplementation carry their behavior purely in
// internal/runtime and are never evaluated through this path.
func primitiveInvoker(fn *ir.LiteralPrimitiveFunction) func(args ...runtime.Value) (runtime.Value, error) {
	if fn.CompileTimeImplementation == nil {
		return nil
	}
	impl := fn.CompileTimeImplementation
	return func(args ...runtime.Value) (runtime.Value, error) {
		nodeArgs := make([]ir.Node, len(args))
		for i, a := range args {
			nodeArgs[i] = ir.NewLiteralObject(mop.NoDerivation, a)
		}
		result := impl(nodeArgs...)
		return runtimeValueOf(result), nil
	}
}

func runtimeValueOf(n ir.Node) runtime.Value {
	if lo, ok := n.(*ir.LiteralObject); ok {
		return lo.Value
	}
	return evaluateConstant(n)
}
