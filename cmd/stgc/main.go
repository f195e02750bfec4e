/*
Stgc compiles and evaluates one or more Smalltalk-flavored source files
against a single shared top-level environment, printing each file's
result value when run with -v.

Usage:

	stgc [flags] file...

The flags are:

	-h, -help, --help
		Print usage and exit 0.

	-version, --version
		Print the current version and exit 0.

	-v
		Verbose: print each file's result value after it runs.

	-o path
		Reserved output-file name; not consumed by the compile/run core.

	-primitives path
		Load an optional TOML primitive manifest describing additional
		compile-time-foldable primitives (see internal/runtime's
		Manifest). Without this flag the runtime's built-in primitive
		table is used as-is.

	-dot dir
		Write a DOT rendering of each file's syntax tree, analyzed
		graph, and scheduled program into dir, one run-ID-tagged file
		per stage (see internal/dotviz). Without this flag no dumps
		are written.

With no input files, usage is printed and the program exits 0. Otherwise
every file is parsed, analyzed, and evaluated in order against the same
environment; the program exits 1 if any file fails to parse, analyzes
with errors, or raises during evaluation.
*/
package main

import (
	"fmt"
	"os"

	"github.com/dekarrin/stgraph"
	"github.com/dekarrin/stgraph/internal/runtime"
	"github.com/dekarrin/stgraph/internal/version"
	"github.com/spf13/pflag"
)

const (
	// ExitSuccess indicates every input file compiled and ran cleanly.
	ExitSuccess = iota

	// ExitFailure indicates at least one input file failed to parse,
	// analyzed with errors, or raised during evaluation.
	ExitFailure
)

var (
	returnCode  = ExitSuccess
	flagHelp    = pflag.BoolP("help", "h", false, "Print usage and exit")
	flagVersion = pflag.Bool("version", false, "Print the current version and exit")
	flagVerbose = pflag.BoolP("verbose", "v", false, "Print each file's result value")
	flagOutput  = pflag.StringP("output", "o", "", "Reserved output-file name; not consumed by the core")
	flagPrims   = pflag.String("primitives", "", "Path to an optional TOML primitive manifest")
	flagDotDir  = pflag.String("dot", "", "Directory to write per-stage DOT dumps into")
)

func main() {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			panic(fmt.Sprintf("unrecoverable panic occurred: %v", panicErr))
		} else {
			os.Exit(returnCode)
		}
	}()

	pflag.Usage = printUsage
	// pflag has no single-dash long flags; rewrite -help and -version to
	// their double-dash spellings before parsing.
	for i, arg := range os.Args[1:] {
		if arg == "--" {
			break
		}
		if arg == "-help" || arg == "-version" {
			os.Args[i+1] = "-" + arg
		}
	}
	pflag.Parse()
	_ = flagOutput // reserved, per spec.md §6; not read by the core pipeline

	if *flagHelp {
		printUsage()
		return
	}
	if *flagVersion {
		fmt.Printf("%s\n", version.Current)
		return
	}

	files := pflag.Args()
	if len(files) == 0 {
		printUsage()
		return
	}

	eng := stgraph.New(os.Stdout)
	if *flagPrims != "" {
		manifest, err := runtime.LoadManifest(*flagPrims)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
			returnCode = ExitFailure
			return
		}
		if err := manifest.Install(eng.Env()); err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
			returnCode = ExitFailure
			return
		}
	}

	if *flagDotDir != "" {
		if err := os.MkdirAll(*flagDotDir, 0o755); err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
			returnCode = ExitFailure
			return
		}
	}

	for _, path := range files {
		if !runFile(eng, path) {
			returnCode = ExitFailure
		}
	}
}

func runFile(eng *stgraph.Engine, path string) bool {
	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s: %s\n", path, err.Error())
		return false
	}

	var result stgraph.Result
	if *flagDotDir != "" {
		result = eng.RunWithDump(path, string(source), *flagDotDir)
	} else {
		result = eng.Run(path, string(source))
	}
	if len(result.Errors) > 0 {
		for _, e := range result.Errors {
			fmt.Fprintf(os.Stderr, "%s\n", e.FullMessage())
		}
		return false
	}

	if *flagVerbose {
		fmt.Printf("%s => %v\n", path, result.Value)
	}
	return true
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Usage: stgc [flags] file...\n\n")
	pflag.PrintDefaults()
}
