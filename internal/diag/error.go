package diag

import (
	"fmt"

	"github.com/dekarrin/rosed"
)

// Stage identifies which pipeline phase raised an Error, matching the
// taxonomy in spec.md §7: scanner, parser, semantic (expansion/analysis),
// or runtime.
type Stage int

const (
	Scanner Stage = iota
	Parser
	Semantic
	Runtime
)

func (s Stage) String() string {
	switch s {
	case Scanner:
		return "scan error"
	case Parser:
		return "syntax error"
	case Semantic:
		return "semantic error"
	case Runtime:
		return "runtime error"
	default:
		return "error"
	}
}

// Error is the single error value type produced anywhere in the pipeline,
// modeled on internal/tunascript/error.go's SyntaxError: it always carries a
// human-readable message and, when available, the exact source line and
// column so the CLI can underline the offending text.
type Error struct {
	stage      Stage
	message    string
	pos        Position
	sourceLine string
	wrapped    error
}

func New(stage Stage, pos Position, message string) *Error {
	return &Error{stage: stage, pos: pos, message: message}
}

func Newf(stage Stage, pos Position, format string, a ...interface{}) *Error {
	return New(stage, pos, fmt.Sprintf(format, a...))
}

// WithSourceLine attaches the full text of the line the error occurred on,
// used to render a cursor under the offending column.
func (e *Error) WithSourceLine(line string) *Error {
	e.sourceLine = line
	return e
}

func Wrap(stage Stage, pos Position, err error) *Error {
	return &Error{stage: stage, pos: pos, message: err.Error(), wrapped: err}
}

func (e *Error) Error() string {
	if !e.pos.IsKnown() {
		return fmt.Sprintf("%s: %s", e.stage, e.message)
	}
	return fmt.Sprintf("%s: %s: %s", e.pos, e.stage, e.message)
}

func (e *Error) Unwrap() error {
	return e.wrapped
}

func (e *Error) Stage() Stage {
	return e.stage
}

func (e *Error) Position() Position {
	return e.pos
}

// FullMessage renders the error together with the offending source line and
// a cursor under the exact column. rosed indents the cursor line, the way
// tunascript/syntax/ast.go indents its multi-line tree dumps; the message
// itself is not wrapped.
func (e *Error) FullMessage() string {
	msg := e.Error()
	if e.sourceLine == "" {
		return msg
	}

	cursor := rosed.Edit("").Indent(e.pos.Column - 1).String() + "^"
	return e.sourceLine + "\n" + cursor + "\n" + msg
}

// Accumulator collects semantic errors during expansion/analysis without
// aborting the pass, per spec.md §4.4's failure model: "Expansion errors...
// are captured as Error nodes and accumulated; they never abort the pass."
type Accumulator struct {
	errs []*Error
}

func (a *Accumulator) Add(e *Error) {
	a.errs = append(a.errs, e)
}

func (a *Accumulator) Errors() []*Error {
	return a.errs
}

func (a *Accumulator) HasErrors() bool {
	return len(a.errs) > 0
}
