// Package build provides the GVN-deduplicating node builder and the
// lexical-environment hierarchy internal/analyze's expansion pass threads
// through the parse tree, grounded on original_source/pyst/mop.py's
// ASGBuilderWithGVN and original_source/pyst/environment.py's ASGEnvironment
// family.
package build

import (
	"sync"

	"github.com/dekarrin/stgraph/internal/ir"
	"github.com/dekarrin/stgraph/internal/mop"
)

// Environment resolves identifiers to analyzed nodes, walking outward
// through lexical scope until it reaches the TopLevelEnvironment.
type Environment interface {
	TopLevelTarget() *TopLevelEnvironment
	LookupSymbol(name string) ir.Node // nil if unbound
}

// TopLevelEnvironment is the outermost scope: the built-in bindings
// (nil/false/true) plus whatever internal/runtime installs (Stdio and any
// manifest primitives). Unlike the original's process-wide singleton, each
// stgraph.Engine owns one (tests construct their own) so tests can run in
// isolation without fighting over shared global state; ensureInitialized
// uses sync.Once so the built-ins are installed once per instance.
type TopLevelEnvironment struct {
	once sync.Once

	mu          sync.RWMutex
	symbolTable map[string][]ir.Node
}

// NewTopLevelEnvironment returns an environment with its built-in bindings
// already installed.
func NewTopLevelEnvironment() *TopLevelEnvironment {
	env := &TopLevelEnvironment{}
	env.ensureInitialized()
	return env
}

func (e *TopLevelEnvironment) ensureInitialized() {
	e.once.Do(func() {
		e.symbolTable = map[string][]ir.Node{}
		e.AddSymbolValue("nil", ir.NewLiteralNil(mop.NoDerivation))
		e.AddSymbolValue("false", ir.NewLiteralFalse(mop.NoDerivation))
		e.AddSymbolValue("true", ir.NewLiteralTrue(mop.NoDerivation))
	})
}

// AddSymbolValue installs a new most-recent binding for name, shadowing
// (not replacing) whatever was bound before — the original keeps the full
// history in a list so a later addSymbolValue for the same name can be
// undone by popping, though nothing in this pipeline currently does that.
func (e *TopLevelEnvironment) AddSymbolValue(name string, value ir.Node) {
	if name == "" {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.symbolTable[name] = append([]ir.Node{value}, e.symbolTable[name]...)
}

// LookLastBindingOf returns the most recent binding for name, or nil.
func (e *TopLevelEnvironment) LookLastBindingOf(name string) ir.Node {
	e.mu.RLock()
	defer e.mu.RUnlock()
	bindings := e.symbolTable[name]
	if len(bindings) == 0 {
		return nil
	}
	return bindings[0]
}

func (e *TopLevelEnvironment) TopLevelTarget() *TopLevelEnvironment { return e }

func (e *TopLevelEnvironment) LookupSymbol(name string) ir.Node {
	return e.LookLastBindingOf(name)
}

// childEnvironment is the shared base of every non-top-level Environment:
// a parent pointer plus a lazily-copied local symbol table, giving the
// copy-on-write "childWithSymbolBinding" semantics of
// ASGChildEnvironmentWithBindings without mutating a shared parent scope.
type childEnvironment struct {
	parent      Environment
	topLevel    *TopLevelEnvironment
	symbolTable map[string]ir.Node
}

func newChildEnvironment(parent Environment) childEnvironment {
	return childEnvironment{parent: parent, topLevel: parent.TopLevelTarget(), symbolTable: map[string]ir.Node{}}
}

func (e *childEnvironment) TopLevelTarget() *TopLevelEnvironment { return e.topLevel }

func (e *childEnvironment) lookupLocal(name string) (ir.Node, bool) {
	n, ok := e.symbolTable[name]
	return n, ok
}

// LexicalEnvironment is a plain child scope introducing new bindings
// (`| locals |` declarations and `:=` rebindings) with no capture
// bookkeeping of its own.
type LexicalEnvironment struct {
	childEnvironment
}

// NewLexicalEnvironment returns a child of parent with no bindings yet.
func NewLexicalEnvironment(parent Environment) *LexicalEnvironment {
	return &LexicalEnvironment{childEnvironment: newChildEnvironment(parent)}
}

// WithSymbolBinding returns a new LexicalEnvironment like e but with symbol
// additionally bound to binding, copy-on-write over e's table.
func (e *LexicalEnvironment) WithSymbolBinding(symbol string, binding ir.Node) *LexicalEnvironment {
	child := &LexicalEnvironment{childEnvironment: e.childEnvironment}
	child.symbolTable = copySymbolTable(e.symbolTable)
	if symbol != "" {
		child.symbolTable[symbol] = binding
	}
	return child
}

func (e *LexicalEnvironment) LookupSymbol(name string) ir.Node {
	if n, ok := e.lookupLocal(name); ok {
		return n
	}
	return e.parent.LookupSymbol(name)
}

func copySymbolTable(src map[string]ir.Node) map[string]ir.Node {
	dst := make(map[string]ir.Node, len(src)+1)
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

// ScriptEnvironment is the lexical scope for one compiled file; it carries
// no extra bookkeeping beyond naming, but keeping it a distinct type (as
// the original does with ASGScriptEnvironment) gives internal/diag and
// internal/dotviz a stable place to hang a script's path for diagnostics.
type ScriptEnvironment struct {
	childEnvironment
	ScriptPath string
}

// NewScriptEnvironment returns the root lexical scope for compiling the
// file at scriptPath.
func NewScriptEnvironment(parent Environment, scriptPath string) *ScriptEnvironment {
	return &ScriptEnvironment{childEnvironment: newChildEnvironment(parent), ScriptPath: scriptPath}
}

func (e *ScriptEnvironment) LookupSymbol(name string) ir.Node {
	if n, ok := e.lookupLocal(name); ok {
		return n
	}
	return e.parent.LookupSymbol(name)
}

// FunctionalAnalysisEnvironment is the scope analyzed for one block body.
// It tracks which outer bindings the block actually reads so each
// beta-replaceable outer node it reads gets exactly one CapturedValue,
// recorded lazily in CapturedValues/CaptureBindings, matching
// ASGFunctionalAnalysisEnvironment.getValidCaptureBindingFor.
type FunctionalAnalysisEnvironment struct {
	childEnvironment

	Arguments      []*ir.Argument
	CapturedValues []ir.Node // the outer node each captured value closes over, in capture order
	CaptureBindings []*ir.CapturedValue

	capturedSymbolTable map[string]*ir.CapturedValue
	capturedValueTable  map[ir.Node]*ir.CapturedValue
}

// NewFunctionalAnalysisEnvironment returns a fresh capture-tracking scope
// for analyzing one block body.
func NewFunctionalAnalysisEnvironment(parent Environment) *FunctionalAnalysisEnvironment {
	return &FunctionalAnalysisEnvironment{
		childEnvironment:    newChildEnvironment(parent),
		capturedSymbolTable: map[string]*ir.CapturedValue{},
		capturedValueTable:  map[ir.Node]*ir.CapturedValue{},
	}
}

// AddArgumentBinding registers argument as a block parameter, binding its
// name (if any) in local scope.
func (e *FunctionalAnalysisEnvironment) AddArgumentBinding(argument *ir.Argument) {
	e.Arguments = append(e.Arguments, argument)
	if argument.Name != "" {
		e.symbolTable[argument.Name] = argument
	}
}

// getValidCaptureBindingFor returns the (possibly newly minted)
// CapturedValue wrapping value, memoized by value's identity so the same
// outer node is only captured once per block.
func (e *FunctionalAnalysisEnvironment) getValidCaptureBindingFor(value ir.Node) *ir.CapturedValue {
	if existing, ok := e.capturedValueTable[value]; ok {
		return existing
	}
	binding := ir.NewCapturedValue(value.Header().Derivation, value)
	e.CapturedValues = append(e.CapturedValues, value)
	e.CaptureBindings = append(e.CaptureBindings, binding)
	e.capturedValueTable[value] = binding
	return binding
}

// LookupSymbol resolves name in local scope, then in the capture table,
// then recurses into the parent scope: if the parent binding turns out to
// be beta-replaceable (an Argument or another CapturedValue), it is wrapped
// in a CapturedValue local to this environment instead of being returned
// directly, so the block body refers only to its own activation record.
//
// A value captured across two nested block boundaries becomes a
// CapturedValue whose own Value is the *first* block's CapturedValue, not
// the original outer binding — this is preserved exactly as the original
// leaves it (DESIGN.md open question 3).
func (e *FunctionalAnalysisEnvironment) LookupSymbol(name string) ir.Node {
	if n, ok := e.lookupLocal(name); ok {
		return n
	}
	if captured, ok := e.capturedSymbolTable[name]; ok {
		return captured
	}

	parentBinding := e.parent.LookupSymbol(name)
	if parentBinding == nil {
		return nil
	}
	if ir.IsBetaReplaceableNode(parentBinding) {
		capture := e.getValidCaptureBindingFor(parentBinding)
		e.capturedSymbolTable[name] = capture
		return capture
	}
	return parentBinding
}
