package ir

import "github.com/dekarrin/stgraph/internal/mop"

func IsSyntaxNode(n Node) bool { return mop.IsKindOf(n.Header().Kind, KindSyntaxNode) }

func IsSequencingNode(n Node) bool { return mop.IsKindOf(n.Header().Kind, KindSequencingNode) }

func IsLiteralNode(n Node) bool { return mop.IsKindOf(n.Header().Kind, KindLiteralNode) }

func IsBetaReplaceableNode(n Node) bool { return mop.IsKindOf(n.Header().Kind, KindBetaReplaceableNode) }

// IsPureDataNode reports whether n belongs on the pure-data side of the
// graph (GVN-deduplicated, no fixed position on the sequencing spine) as
// opposed to a sequencing node or a stateful expression.
func IsPureDataNode(n Node) bool {
	k := n.Header().Kind
	return !mop.IsKindOf(k, KindSequencingNode) &&
		!mop.IsKindOf(k, KindSequencingAndDataNode) &&
		!mop.IsKindOf(k, KindAnalyzedStatefulExpressionNode)
}

// IsStatefulDataNode reports whether n is a data node whose evaluations are
// never GVN-deduplicated (e.g. a `{ ... }` mutable array), the complement
// of IsPureDataNode among the analyzed data-expression kinds.
func IsStatefulDataNode(n Node) bool {
	return mop.IsKindOf(n.Header().Kind, KindAnalyzedStatefulExpressionNode)
}

// IsPureCompileTimePrimitive reports whether n is a LiteralPrimitiveFunction
// marked Pure, making an Application of it over literal arguments eligible
// for constant folding during reduction.
func IsPureCompileTimePrimitive(n Node) bool {
	fn, ok := n.(*LiteralPrimitiveFunction)
	return ok && fn.Pure && fn.CompileTimeImplementation != nil
}

// IsLiteralPureCompileTimePrimitiveApplication reports whether every
// argument of app is itself a literal and app.Functional is a pure
// compile-time primitive, the condition internal/analyze's reduction pass
// checks before folding.
func IsLiteralPureCompileTimePrimitiveApplication(app *Application) bool {
	if !IsPureCompileTimePrimitive(app.Functional) {
		return false
	}
	for _, arg := range app.Arguments {
		if !IsLiteralNode(arg) {
			return false
		}
	}
	return true
}
