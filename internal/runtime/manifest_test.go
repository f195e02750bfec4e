package runtime

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dekarrin/stgraph/internal/build"
	"github.com/dekarrin/stgraph/internal/ir"
	"github.com/dekarrin/stgraph/internal/mop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManifest_Install_BindsFoldablePrimitive(t *testing.T) {
	m := &Manifest{Primitives: []ManifestEntry{
		{Selector: "+", Name: "PrimAdd", Pure: true, CompileTime: true},
	}}
	top := build.NewTopLevelEnvironment()
	require.NoError(t, m.Install(top))

	bound := top.LookupSymbol("PrimAdd")
	require.NotNil(t, bound)
	fn, ok := bound.(*ir.LiteralPrimitiveFunction)
	require.True(t, ok, "expected *ir.LiteralPrimitiveFunction, got %T", bound)
	assert.True(t, fn.Pure)
	assert.True(t, fn.CompileTime)

	result := fn.CompileTimeImplementation(
		ir.NewLiteralInteger(mop.NoDerivation, 3),
		ir.NewLiteralInteger(mop.NoDerivation, 4),
	)
	lit, ok := result.(*ir.LiteralInteger)
	require.True(t, ok, "expected *ir.LiteralInteger, got %T", result)
	assert.Equal(t, int64(7), lit.Value)
}

func TestManifest_Install_RejectsUnsupportedSelector(t *testing.T) {
	m := &Manifest{Primitives: []ManifestEntry{{Selector: "max", Name: "PrimMax"}}}
	top := build.NewTopLevelEnvironment()
	assert.Error(t, m.Install(top))
}

func TestFoldArithmeticLiterals_AcceptsRuntimeWrappedOperands(t *testing.T) {
	// interp.primitiveInvoker wraps already-unboxed runtime values as
	// *ir.LiteralObject rather than *ir.LiteralInteger/*ir.LiteralFloat
	// when a manifest primitive is invoked at execution time instead of
	// folded at compile time.
	result := foldArithmeticLiterals("+", []ir.Node{
		ir.NewLiteralObject(mop.NoDerivation, int64(3)),
		ir.NewLiteralObject(mop.NoDerivation, int64(4)),
	})
	lit, ok := result.(*ir.LiteralInteger)
	require.True(t, ok, "expected *ir.LiteralInteger, got %T", result)
	assert.Equal(t, int64(7), lit.Value)
}

func TestFoldArithmeticLiterals_InexactIntegerDivisionPromotesToFloat(t *testing.T) {
	result := foldArithmeticLiterals("/", []ir.Node{
		ir.NewLiteralInteger(mop.NoDerivation, 1),
		ir.NewLiteralInteger(mop.NoDerivation, 4),
	})
	lit, ok := result.(*ir.LiteralFloat)
	require.True(t, ok, "expected *ir.LiteralFloat, got %T", result)
	assert.Equal(t, 0.25, lit.Value)
}

func TestLoadManifest_ReadsTOMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "primitives.toml")
	content := "[[primitives]]\nselector = \"*\"\nname = \"PrimMul\"\npure = true\ncompile_time = true\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	m, err := LoadManifest(path)
	require.NoError(t, err)
	require.Len(t, m.Primitives, 1)
	assert.Equal(t, "*", m.Primitives[0].Selector)
	assert.Equal(t, "PrimMul", m.Primitives[0].Name)
}
