package runtime

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/dekarrin/stgraph/internal/build"
	"github.com/dekarrin/stgraph/internal/ir"
	"github.com/dekarrin/stgraph/internal/mop"
)

// ManifestEntry exposes one binary arithmetic selector as an additional
// compile-time-foldable global primitive, letting a deployment describe
// extra `pure`/`compileTime`/`alwaysInline`-tagged primitives out of band
// from code via TOML.
type ManifestEntry struct {
	// Selector is one of "+", "-", "*", "/": the binary arithmetic
	// operation this entry folds at compile time.
	Selector string `toml:"selector"`
	// Name is the global symbol this entry is bound under. Defaults to
	// Selector when empty.
	Name string `toml:"name"`

	Pure         bool `toml:"pure"`
	CompileTime  bool `toml:"compile_time"`
	AlwaysInline bool `toml:"always_inline"`
}

// Manifest is the root of a primitive manifest file.
type Manifest struct {
	Primitives []ManifestEntry `toml:"primitives"`
}

// LoadManifest reads and decodes a TOML primitive manifest from path. A
// manifest is entirely optional: the runtime's built-in primitive table
// in primitives.go works without one.
func LoadManifest(path string) (*Manifest, error) {
	var m Manifest
	if _, err := toml.DecodeFile(path, &m); err != nil {
		return nil, fmt.Errorf("runtime: load primitive manifest %s: %w", path, err)
	}
	return &m, nil
}

// Install binds one global LiteralPrimitiveFunction per manifest entry.
// The binding bypasses build.Builder's GVN path deliberately, following
// the same direct-construction pattern install.go documents for every
// other environment-level binding. (Unification would compare only an
// entry's name, not its implementation closure or flags.)
func (m *Manifest) Install(top *build.TopLevelEnvironment) error {
	for _, e := range m.Primitives {
		if !isFoldableArithmeticSelector(e.Selector) {
			return fmt.Errorf("runtime: primitive manifest entry %q: unsupported selector %q", e.Name, e.Selector)
		}
		name := e.Name
		if name == "" {
			name = e.Selector
		}
		selector := e.Selector
		impl := func(args ...ir.Node) ir.Node {
			return foldArithmeticLiterals(selector, args)
		}
		fn := ir.NewLiteralPrimitiveFunction(mop.NoDerivation, name, impl, e.Pure, e.CompileTime, e.AlwaysInline)
		top.AddSymbolValue(name, fn)
	}
	return nil
}

func isFoldableArithmeticSelector(selector string) bool {
	switch selector {
	case "+", "-", "*", "/":
		return true
	}
	return false
}

// foldArithmeticLiterals computes selector applied to two literal integer
// or float IR nodes, promoting to float if either operand is one. Called
// only once internal/ir.IsLiteralPureCompileTimePrimitiveApplication has
// already confirmed every argument is a literal node.
func foldArithmeticLiterals(selector string, args []ir.Node) ir.Node {
	if len(args) != 2 {
		return ir.NewError(mop.NoDerivation, fmt.Sprintf("primitive %q takes exactly 2 arguments", selector), nil)
	}
	a, aFloat, ok := literalAsFloat(args[0])
	if !ok {
		return ir.NewError(mop.NoDerivation, fmt.Sprintf("primitive %q: non-numeric argument", selector), nil)
	}
	b, bFloat, ok := literalAsFloat(args[1])
	if !ok {
		return ir.NewError(mop.NoDerivation, fmt.Sprintf("primitive %q: non-numeric argument", selector), nil)
	}

	if !aFloat && !bFloat && selector != "/" {
		result, err := applyIntegerSelector(selector, int64(a), int64(b))
		if err != nil {
			return ir.NewError(mop.NoDerivation, err.Error(), nil)
		}
		return ir.NewLiteralInteger(mop.NoDerivation, result)
	}
	if !aFloat && !bFloat && int64(b) != 0 && int64(a)%int64(b) == 0 {
		return ir.NewLiteralInteger(mop.NoDerivation, int64(a)/int64(b))
	}

	result, err := applyFloatSelector(selector, a, b)
	if err != nil {
		return ir.NewError(mop.NoDerivation, err.Error(), nil)
	}
	return ir.NewLiteralFloat(mop.NoDerivation, result)
}

// literalAsFloat reads a numeric literal's value. At compile time args
// arrive as *ir.LiteralInteger/*ir.LiteralFloat; at runtime
// interp.primitiveInvoker instead wraps the already-unboxed Go value in
// an *ir.LiteralObject, so both shapes are accepted here.
func literalAsFloat(n ir.Node) (value float64, isFloat bool, ok bool) {
	switch lit := n.(type) {
	case *ir.LiteralInteger:
		return float64(lit.Value), false, true
	case *ir.LiteralFloat:
		return lit.Value, true, true
	case *ir.LiteralObject:
		switch v := lit.Value.(type) {
		case int64:
			return float64(v), false, true
		case float64:
			return v, true, true
		}
	}
	return 0, false, false
}

func applyFloatSelector(selector string, a, b float64) (float64, error) {
	switch selector {
	case "+":
		return a + b, nil
	case "-":
		return a - b, nil
	case "*":
		return a * b, nil
	case "/":
		if b == 0 {
			return 0, fmt.Errorf("division by zero")
		}
		return a / b, nil
	}
	return 0, fmt.Errorf("unsupported selector %q", selector)
}

// applyIntegerSelector handles +, -, * only: exact and inexact "/" are
// both handled by the caller before this is ever reached.
func applyIntegerSelector(selector string, a, b int64) (int64, error) {
	switch selector {
	case "+":
		return a + b, nil
	case "-":
		return a - b, nil
	case "*":
		return a * b, nil
	}
	return 0, fmt.Errorf("unsupported selector %q", selector)
}
