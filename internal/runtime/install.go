package runtime

import (
	"io"

	"github.com/dekarrin/stgraph/internal/build"
	"github.com/dekarrin/stgraph/internal/ir"
	"github.com/dekarrin/stgraph/internal/mop"
)

// Install binds the runtime's standard library into top. Bindings are
// installed directly as ir.LiteralObject nodes rather than built through a
// build.Builder, the same way TopLevelEnvironment seeds nil/false/true:
// LiteralObject carries no attrs for mop.UnificationEquals to compare, so
// running it through GVN would wrongly unify every host object installed
// this way into a single node regardless of which value it wraps.
func Install(top *build.TopLevelEnvironment, stdout io.Writer) {
	top.AddSymbolValue("Stdio", ir.NewLiteralObject(mop.NoDerivation, NewStdio(stdout)))
}
