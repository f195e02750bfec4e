package analyze

import (
	"github.com/dekarrin/stgraph/internal/ir"
	"github.com/dekarrin/stgraph/internal/mop"
)

// NewReductionEngine returns a mop.Engine with the single rule the
// original's ASGReductionAlgorithm runs: when an Application's functional
// is a pure compile-time primitive and every argument is a literal, call
// the primitive's CompileTimeImplementation and expand to its result
// instead of the Application itself. Every other node kind falls through
// to the ancestry walk with no registered pattern and so is returned
// unchanged.
func NewReductionEngine() *mop.Engine {
	e := mop.NewEngine()
	e.Register(mop.Pattern{
		Kind: ir.KindApplication,
		Predicate: func(n mop.Node) bool {
			return ir.IsLiteralPureCompileTimePrimitiveApplication(n.(*ir.Application))
		},
		Fn: func(e *mop.Engine, n mop.Node) mop.Node {
			app := n.(*ir.Application)
			fn := app.Functional.(*ir.LiteralPrimitiveFunction)
			return fn.CompileTimeImplementation(app.Arguments...)
		},
	})
	return e
}

// Reduce folds n once if it matches the reduction engine's pattern,
// otherwise returns n unchanged; a fold's result is not reduced again.
func Reduce(engine *mop.Engine, n mop.Node) mop.Node {
	return engine.ContinueExpanding(n)
}
