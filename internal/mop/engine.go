package mop

import "fmt"

// Pattern registers one expansion or analysis rule: when dispatch reaches
// Kind (or falls back to it from a more derived kind with no rule of its
// own) and Predicate accepts the node, Fn runs and its result becomes the
// node's expansion.
type Pattern struct {
	Kind      Kind
	Predicate func(Node) bool // nil means "always matches"
	Fn        func(e *Engine, n Node) Node
}

type memoState int

const (
	memoUnseen memoState = iota
	memoInProgress
	memoFinished
)

type memoEntry struct {
	state  memoState
	result Node
}

// Engine replicates the original's ASGDynamicProgrammingAlgorithm: a
// memoized, kind-dispatched rewrite over a node graph. The memo belongs to
// one Engine value: a shared subgraph expanded twice through the same
// Engine is rewritten only once (internal/analyze builds a fresh Engine for
// each new lexical scope, so the memo does not span scopes).
type Engine struct {
	patterns map[Kind][]Pattern
	memo     map[Node]memoEntry

	// PostProcess, if set, runs on every dispatch result (both from Expand
	// and ContinueExpanding) before it is cached or returned. The
	// reduction pass installs this to fold a just-expanded Application of
	// a pure primitive over literal arguments immediately, the way the
	// original's postProcessResult hook does.
	PostProcess func(Node) Node
}

// NewEngine returns an Engine with no registered patterns.
func NewEngine() *Engine {
	return &Engine{
		patterns: map[Kind][]Pattern{},
		memo:     map[Node]memoEntry{},
	}
}

// Register adds p to the engine. Patterns for the same Kind are tried in
// registration order; the first whose Predicate accepts the node wins.
func (e *Engine) Register(p Pattern) {
	e.patterns[p.Kind] = append(e.patterns[p.Kind], p)
}

// Expand runs the engine on n, memoizing the result. Calling Expand again
// on the same node returns the cached result without re-dispatching.
// Encountering a node whose expansion is already in progress (a true graph
// cycle reaching back into itself through pure-data edges, not the
// sequencing spine's intentional back-edges) is a programming error in a
// pattern, not a recoverable condition, so it panics.
func (e *Engine) Expand(n Node) Node {
	if entry, ok := e.memo[n]; ok {
		switch entry.state {
		case memoFinished:
			return entry.result
		case memoInProgress:
			panic(fmt.Sprintf("mop: cyclic expansion reached node of kind %q", n.Header().Kind))
		}
	}

	e.memo[n] = memoEntry{state: memoInProgress}
	result := e.dispatch(n)
	e.memo[n] = memoEntry{state: memoFinished, result: result}
	return result
}

// ContinueExpanding re-dispatches on n without consulting or updating the
// memo table. It is how a pattern delegates to a second pattern after
// rewriting a node into an intermediate form N' that itself still needs
// expanding (e.g. folding a binary expression sequence into a left-to-right
// chain of message sends, then expanding that chain).
func (e *Engine) ContinueExpanding(n Node) Node {
	return e.dispatch(n)
}

func (e *Engine) dispatch(n Node) Node {
	result := e.dispatchOnce(n)
	if e.PostProcess != nil {
		result = e.PostProcess(result)
	}
	return result
}

func (e *Engine) dispatchOnce(n Node) Node {
	for _, k := range Ancestry(n.Header().Kind) {
		for _, p := range e.patterns[k] {
			if p.Predicate == nil || p.Predicate(n) {
				return p.Fn(e, n)
			}
		}
	}
	return n
}
