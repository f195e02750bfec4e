// Package ir defines every node kind in the two graphs this compiler
// builds: the syntax graph produced directly from the parse tree, and the
// analyzed graph produced by expanding and analyzing it. Every kind is a
// small Go struct embedding mop.Header and registers a mop.KindDescriptor
// in its package init(), which is what lets internal/mop's generic
// dependency-iteration and unification code operate on them without
// reflection.
package ir

import "github.com/dekarrin/stgraph/internal/mop"

// Abstract kinds exist only so concrete kinds can share an ancestry branch
// for pattern dispatch fallback (internal/mop.Engine tries the most derived
// kind first, then walks up through these). None of them is ever
// constructed directly.
const (
	KindSyntaxNode                   mop.Kind = "SyntaxNode"
	KindSyntaxLiteralNode            mop.Kind = "SyntaxLiteralNode"
	KindAnalyzedNode                 mop.Kind = "AnalyzedNode"
	KindAnalyzedDataExpressionNode   mop.Kind = "AnalyzedDataExpressionNode"
	KindAnalyzedStatefulExpressionNode mop.Kind = "AnalyzedStatefulExpressionNode"
	KindSequencingNode               mop.Kind = "SequencingNode"
	KindSequenceDivergenceNode       mop.Kind = "SequenceDivergenceNode"
	KindSequencingAndDataNode        mop.Kind = "SequencingAndDataNode"
	KindLiteralNode                  mop.Kind = "LiteralNode"
	KindBetaReplaceableNode          mop.Kind = "BetaReplaceableNode"
)

// Syntax-graph kinds, grounded on original_source/pyst/syntax.py.
const (
	KindSyntaxError                     mop.Kind = "SyntaxError"
	KindSyntaxArgument                  mop.Kind = "SyntaxArgument"
	KindSyntaxArray                     mop.Kind = "SyntaxArray"
	KindSyntaxBlock                     mop.Kind = "SyntaxBlock"
	KindSyntaxSequence                  mop.Kind = "SyntaxSequence"
	KindSyntaxLiteralCharacter          mop.Kind = "SyntaxLiteralCharacter"
	KindSyntaxLiteralInteger            mop.Kind = "SyntaxLiteralInteger"
	KindSyntaxLiteralFloat              mop.Kind = "SyntaxLiteralFloat"
	KindSyntaxLiteralString             mop.Kind = "SyntaxLiteralString"
	KindSyntaxLiteralSymbol             mop.Kind = "SyntaxLiteralSymbol"
	KindSyntaxApplication               mop.Kind = "SyntaxApplication"
	KindSyntaxAssignment                mop.Kind = "SyntaxAssignment"
	KindSyntaxBinaryExpressionSequence  mop.Kind = "SyntaxBinaryExpressionSequence"
	KindSyntaxIdentifierReference       mop.Kind = "SyntaxIdentifierReference"
	KindSyntaxMessageSend               mop.Kind = "SyntaxMessageSend"
	KindSyntaxMessageCascade            mop.Kind = "SyntaxMessageCascade"
	KindSyntaxCascadeMessage            mop.Kind = "SyntaxCascadeMessage"
)

// Analyzed-graph kinds, grounded on original_source/pyst/asg.py.
const (
	KindLiteralNil               mop.Kind = "LiteralNil"
	KindLiteralFalse             mop.Kind = "LiteralFalse"
	KindLiteralTrue              mop.Kind = "LiteralTrue"
	KindLiteralInteger           mop.Kind = "LiteralInteger"
	KindLiteralFloat             mop.Kind = "LiteralFloat"
	KindLiteralString            mop.Kind = "LiteralString"
	KindLiteralSymbol            mop.Kind = "LiteralSymbol"
	KindLiteralObject            mop.Kind = "LiteralObject"
	KindLiteralCharacter         mop.Kind = "LiteralCharacter"
	KindLiteralPrimitiveFunction mop.Kind = "LiteralPrimitiveFunction"
	KindArgument                 mop.Kind = "Argument"
	KindCapturedValue            mop.Kind = "CapturedValue"
	KindArray                    mop.Kind = "Array"
	KindMutableArray             mop.Kind = "MutableArray"
	KindBlockDefinition          mop.Kind = "BlockDefinition"
	KindBlockInstance            mop.Kind = "BlockInstance"
	KindApplication              mop.Kind = "Application"
	KindMessageSend              mop.Kind = "MessageSend"
	KindFxApplication            mop.Kind = "FxApplication"
	KindFxMessageSend            mop.Kind = "FxMessageSend"
	KindPhi                      mop.Kind = "Phi"
	KindPhiValue                 mop.Kind = "PhiValue"
	KindTopLevelScript           mop.Kind = "TopLevelScript"
	KindError                    mop.Kind = "Error"
	KindSequenceEntry            mop.Kind = "SequenceEntry"
	KindSequenceReturn           mop.Kind = "SequenceReturn"
	KindConditionalBranch        mop.Kind = "ConditionalBranch"
	KindSequenceBranchEnd        mop.Kind = "SequenceBranchEnd"
	KindSequenceConvergence      mop.Kind = "SequenceConvergence"
)

func init() {
	mop.RegisterKind(mop.KindDescriptor{Kind: KindSyntaxNode})
	mop.RegisterKind(mop.KindDescriptor{Kind: KindSyntaxLiteralNode, Parent: KindSyntaxNode})

	mop.RegisterKind(mop.KindDescriptor{Kind: KindAnalyzedNode})
	mop.RegisterKind(mop.KindDescriptor{Kind: KindAnalyzedDataExpressionNode, Parent: KindAnalyzedNode})
	mop.RegisterKind(mop.KindDescriptor{Kind: KindAnalyzedStatefulExpressionNode, Parent: KindAnalyzedNode})
	mop.RegisterKind(mop.KindDescriptor{Kind: KindSequencingNode, Parent: KindAnalyzedNode})
	mop.RegisterKind(mop.KindDescriptor{Kind: KindSequenceDivergenceNode, Parent: KindSequencingNode})
	mop.RegisterKind(mop.KindDescriptor{Kind: KindSequencingAndDataNode, Parent: KindAnalyzedNode})
	mop.RegisterKind(mop.KindDescriptor{Kind: KindLiteralNode, Parent: KindAnalyzedDataExpressionNode})
	mop.RegisterKind(mop.KindDescriptor{Kind: KindBetaReplaceableNode, Parent: KindAnalyzedDataExpressionNode})
}

// Node is a convenience alias so callers outside internal/mop don't need to
// import it just to spell the interface name.
type Node = mop.Node
