// Package stgraph wires the scanner, parser, expansion/analysis,
// scheduler, and interpreter into one compile-and-run pipeline for a
// single script.
package stgraph

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dekarrin/stgraph/internal/analyze"
	"github.com/dekarrin/stgraph/internal/build"
	"github.com/dekarrin/stgraph/internal/diag"
	"github.com/dekarrin/stgraph/internal/dotviz"
	"github.com/dekarrin/stgraph/internal/interp"
	"github.com/dekarrin/stgraph/internal/parsetree"
	"github.com/dekarrin/stgraph/internal/runtime"
	"github.com/dekarrin/stgraph/internal/sched"
	"github.com/google/uuid"
)

// Engine runs scripts against one shared top-level environment and
// interpreter. A script's `:=` bindings live in that script's own lexical
// scope, so successive Run calls do not see each other's variables; only
// what is installed into the top-level environment (Stdio, manifest
// primitives) is shared.
type Engine struct {
	env     *build.TopLevelEnvironment
	machine *interp.Machine
}

// New builds an Engine with a fresh top-level environment and installs
// internal/runtime's Stdio object against stdout, so `Stdio stdout
// print: 'hi'; nl` resolves from the first script run against it.
func New(stdout io.Writer) *Engine {
	env := build.NewTopLevelEnvironment()
	runtime.Install(env, stdout)
	return &Engine{env: env, machine: interp.NewMachine()}
}

// Env exposes the Engine's shared top-level environment, so a caller can
// install additional bindings (e.g. runtime.Manifest's primitives)
// before running any script against it.
func (e *Engine) Env() *build.TopLevelEnvironment {
	return e.env
}

// Result is one script's outcome. Value is nil whenever Errors is
// non-empty.
type Result struct {
	Value  runtime.Value
	Errors []*diag.Error
}

// Run scans, parses, analyzes, schedules, and interprets one named
// source file's text against the Engine's shared environment. Parse and
// analysis errors halt the pipeline before scheduling, per spec.md §7's
// "on non-empty error list the pipeline halts before scheduling"; a
// runtime error likewise stops the current evaluation rather than
// panicking.
func (e *Engine) Run(file, source string) Result {
	return e.run(file, source, "")
}

// RunWithDump behaves like Run, but additionally writes a DOT rendering
// of each pipeline stage it reaches (syntax tree, analyzed graph,
// scheduled program) into dumpDir, each filename tagged with a run ID
// from google/uuid so repeated invocations over the same file never
// collide.
func (e *Engine) RunWithDump(file, source, dumpDir string) Result {
	return e.run(file, source, dumpDir)
}

func (e *Engine) run(file, source, dumpDir string) Result {
	runID := ""
	if dumpDir != "" {
		runID = uuid.NewString()
	}

	root, parseErrs := parsetree.Parse(file, source)
	if dumpDir != "" {
		e.writeDump(dumpDir, runID, "syntax", dotviz.DumpSyntax(root))
	}
	if parseErrs.HasErrors() {
		return Result{Errors: parseErrs.Errors()}
	}

	script, analyzeErrs := analyze.ExpandAndAnalyze(e.env, root)
	if dumpDir != "" {
		e.writeDump(dumpDir, runID, "analyzed", dotviz.DumpAnalyzed(script))
	}
	if analyzeErrs.HasErrors() {
		return Result{Errors: analyzeErrs.Errors()}
	}

	sequenced := sched.ScheduleTopLevelScript(script)
	if dumpDir != "" {
		e.writeDump(dumpDir, runID, "program", dotviz.DumpProgram(sequenced))
	}

	program := interp.Build(sequenced)
	value, err := e.machine.Execute(program, nil)
	if err != nil {
		return Result{Errors: []*diag.Error{diag.New(diag.Runtime, diag.None, err.Error())}}
	}
	return Result{Value: value}
}

// writeDump best-effort writes a DOT dump to disk; a failure to write a
// debugging aid should never take down the compile/run pipeline it is
// observing, so the error is dropped rather than surfaced as a Result
// error.
func (e *Engine) writeDump(dumpDir, runID, stage, dot string) {
	name := fmt.Sprintf("%s-%s.dot", runID, stage)
	_ = os.WriteFile(filepath.Join(dumpDir, name), []byte(dot), 0o644)
}
