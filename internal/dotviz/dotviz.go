// Package dotviz renders syntax IR, analyzed IR, and scheduled
// instruction programs as Graphviz DOT text, grounded on
// original_source/pyst/visualizations.py and interpreter.py's dumpDot.
// No part of the pipeline depends on these dumps existing; they are a
// purely optional debugging aid, per spec.md §6's "no semantics depend on
// their presence".
package dotviz

import (
	"fmt"
	"strings"

	"github.com/dekarrin/stgraph/internal/ir"
	"github.com/dekarrin/stgraph/internal/mop"
	"github.com/dekarrin/stgraph/internal/sched"
	"github.com/dekarrin/stgraph/internal/util"
)

// DumpSyntax renders root's syntax-IR tree, the parser's direct output
// before expansion, as a DOT digraph.
func DumpSyntax(root ir.Node) string {
	return renderGraph("syntax", []ir.Node{root}, mop.Describe)
}

// DumpAnalyzed renders script's whole analyzed graph — its sequencing
// spine plus every data operand reachable from it — as a DOT digraph.
// Nodes are labeled with their unification hash as well as their
// attributes, since GVN means two structurally distinct call sites can
// point at the very same shared node.
func DumpAnalyzed(script *ir.TopLevelScript) string {
	return renderGraph("analyzed", []ir.Node{script}, mop.DescribeWithHash)
}

// DumpProgram renders a scheduled instruction program's constants,
// activation parameters, and body as a DOT digraph, one node per array
// slot plus an edge to every dependency an instruction reads.
func DumpProgram(p *sched.Program) string {
	var roots []ir.Node
	roots = append(roots, p.Constants...)
	roots = append(roots, p.ActivationParameters...)
	roots = append(roots, p.Body...)
	return renderGraph("program", roots, mop.DescribeWithHash)
}

func renderGraph(name string, roots []ir.Node, label func(ir.Node) string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "digraph %s {\n", name)

	ids := make(map[ir.Node]string)
	visited := util.NewSet[ir.Node]()
	counter := 0
	idFor := func(n ir.Node) string {
		if id, ok := ids[n]; ok {
			return id
		}
		id := fmt.Sprintf("n%d", counter)
		counter++
		ids[n] = id
		return id
	}

	var visit func(n ir.Node)
	visit = func(n ir.Node) {
		if n == nil || visited.Has(n) {
			return
		}
		visited.Add(n)
		fmt.Fprintf(&b, "  %s [label=%q];\n", idFor(n), label(n))
		for _, dep := range mop.AllDependencies(n) {
			if dep == nil {
				continue
			}
			fmt.Fprintf(&b, "  %s -> %s;\n", idFor(n), idFor(dep))
			visit(dep)
		}
	}
	for _, r := range roots {
		visit(r)
	}

	b.WriteString("}\n")
	return b.String()
}
