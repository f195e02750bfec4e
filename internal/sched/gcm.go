// Package sched implements the Global Code Motion scheduler that turns an
// analyzed functional (a *ir.TopLevelScript or a *ir.BlockDefinition) into
// a flat, region-ordered instruction stream internal/interp can execute
// directly, grounded on original_source/pyst/gcm.py's
// GlobalCodeMotionAlgorithm.
package sched

import (
	"fmt"

	"github.com/dekarrin/stgraph/internal/ir"
	"github.com/dekarrin/stgraph/internal/mop"
)

// Program is the scheduled output for one functional: its activation
// parameters (captures then arguments, empty for a top-level script), the
// constant-data nodes referenced anywhere in it, and the serialized body
// (sequencing regions interleaved with the data instructions placed in
// each one), in execution order.
type Program struct {
	Functional           ir.Node
	ActivationParameters []ir.Node
	Constants            []ir.Node
	Body                 []ir.Node
}

// ScheduleTopLevelScript runs the algorithm over a whole compiled file,
// analogous to gcm.py's topLevelScriptGCM.
func ScheduleTopLevelScript(script *ir.TopLevelScript) *Program {
	g := newGCM(script)
	return g.computeForRegions(nil, predecessorTopo(script.ExitPoint))
}

// ScheduleBlock runs the algorithm over one block body, analogous to
// gcm.py's blockGCM. Each BlockDefinition is scheduled independently of
// whatever scope references it, since scheduledDataDependencies treats a
// block reference as a leaf (see scheduledDataDependencies below).
func ScheduleBlock(def *ir.BlockDefinition) *Program {
	g := newGCM(def)
	activationParameters := append(append([]ir.Node{}, def.Captures...), def.Arguments...)
	return g.computeForRegions(activationParameters, predecessorTopo(def.ExitPoint))
}

// predecessorTopo topologically sorts the sequencing spine reachable from
// start by walking SequencingDependencies (predecessors) depth-first and
// appending each node after its predecessors, mirroring
// original_source/pyst/mop.py's asgPredecessorTopo: the result runs
// entry-first, start-last.
func predecessorTopo(start ir.Node) []ir.Node {
	visited := map[ir.Node]bool{}
	var order []ir.Node
	var visit func(ir.Node)
	visit = func(n ir.Node) {
		if n == nil || visited[n] {
			return
		}
		visited[n] = true
		for _, pred := range mop.SequencingDependencies(n) {
			visit(pred)
		}
		order = append(order, n)
	}
	visit(start)
	return order
}

type gcm struct {
	functional ir.Node

	regions     []ir.Node
	regionIndex map[ir.Node]int

	activationParams []ir.Node
	constants        []ir.Node

	dataInstructions []ir.Node
	dataIndex        map[ir.Node]int

	users    [][]ir.Node
	userSets []map[ir.Node]bool

	idoms             []int
	depths            []int
	loopNestingLevels []int

	earlySchedule []int
	pinned        []bool
	scheduleRegions []int
}

func newGCM(functional ir.Node) *gcm {
	return &gcm{
		functional:  functional,
		regionIndex: map[ir.Node]int{},
		dataIndex:   map[ir.Node]int{},
	}
}

func (g *gcm) computeForRegions(activationParameters, regions []ir.Node) *Program {
	g.regions = regions
	g.findDataInstructions(activationParameters)
	g.computeUserLists()

	for i, r := range g.regions {
		g.regionIndex[r] = i
	}

	g.computeIdoms()
	g.computeDepths()
	g.computeLoopNestingLevels()
	g.earlyScheduleInstructions()
	g.lateScheduleInstructions()

	return g.serialize()
}

// scheduledDataDependencies is the reachability function findDataInstructions
// walks: the generic data dependencies of n, except a *ir.BlockDefinition
// contributes none of its own, matching ASGBlockNode.scheduledDataDependencies
// returning an empty tuple in gcm.py. A block's own Captures/Arguments/body
// belong to its own, separately-scheduled Program (ScheduleBlock); letting
// an outer pass walk into them would mix two functionals' activation
// records together.
func scheduledDataDependencies(n ir.Node) []ir.Node {
	if _, ok := n.(*ir.BlockDefinition); ok {
		return nil
	}
	return mop.DataDependencies(n)
}

// isConstantDataNode reports whether n can be fully evaluated to a host
// value at schedule time: every literal kind, and an immutable Array whose
// elements are themselves all constant.
func isConstantDataNode(n ir.Node) bool {
	if ir.IsLiteralNode(n) {
		return true
	}
	if arr, ok := n.(*ir.Array); ok {
		for _, e := range arr.Elements {
			if !isConstantDataNode(e) {
				return false
			}
		}
		return true
	}
	return false
}

func isActivationContextParameterDataNode(n ir.Node) bool {
	switch n.(type) {
	case *ir.Argument, *ir.CapturedValue:
		return true
	}
	return false
}

// findDataInstructions walks activationParameters and then every region's
// scheduledDataDependencies, classifying each newly-discovered pure or
// stateful data node into activationParams, constants, or dataInstructions,
// mirroring gcm.py's findDataInstructions/traverseNode.
func (g *gcm) findDataInstructions(activationParameters []ir.Node) {
	visited := map[ir.Node]bool{}

	var traverse func(ir.Node)
	traverse = func(n ir.Node) {
		if n == nil || visited[n] {
			return
		}
		visited[n] = true

		if !isConstantDataNode(n) {
			for _, dep := range scheduledDataDependencies(n) {
				traverse(dep)
			}
		}

		if !ir.IsPureDataNode(n) && !ir.IsStatefulDataNode(n) {
			return
		}
		switch {
		case isActivationContextParameterDataNode(n):
			g.activationParams = append(g.activationParams, n)
		case isConstantDataNode(n):
			g.constants = append(g.constants, n)
		default:
			g.dataIndex[n] = len(g.dataInstructions)
			g.dataInstructions = append(g.dataInstructions, n)
		}
	}

	for _, p := range activationParameters {
		traverse(p)
	}
	for _, r := range g.regions {
		traverse(r)
	}
}

func (g *gcm) computeUserLists() {
	n := len(g.dataInstructions)
	g.users = make([][]ir.Node, n)
	g.userSets = make([]map[ir.Node]bool, n)

	visit := func(user ir.Node) {
		for _, dep := range mop.DataDependencies(user) {
			if idx, ok := g.dataIndex[dep]; ok {
				g.addUser(idx, user)
			}
		}
	}
	for _, r := range g.regions {
		visit(r)
	}
	for _, d := range g.dataInstructions {
		visit(d)
	}
}

func (g *gcm) addUser(idx int, user ir.Node) {
	if g.userSets[idx] == nil {
		g.userSets[idx] = map[ir.Node]bool{}
	}
	if g.userSets[idx][user] {
		return
	}
	g.userSets[idx][user] = true
	g.users[idx] = append(g.users[idx], user)
}

// directImmediateDominator is each sequencing kind's own notion of "the
// region execution must have passed through to reach here", per the
// per-kind overrides in original_source/pyst/asg.py. Divergence
// destinations are the one case this cannot answer on its own; computeIdoms
// fixes those up afterward via divergenceDestinationsOf.
func directImmediateDominator(n ir.Node) ir.Node {
	switch v := n.(type) {
	case *ir.SequenceEntry:
		return nil
	case *ir.ConditionalBranch:
		return v.Predecessor
	case *ir.SequenceBranchEnd:
		return v.Predecessor
	case *ir.SequenceConvergence:
		return v.Divergence
	case *ir.SequenceReturn:
		return v.Predecessor
	case *ir.FxApplication:
		return v.Predecessor
	case *ir.FxMessageSend:
		return v.Predecessor
	default:
		return nil
	}
}

func divergenceDestinationsOf(n ir.Node) []ir.Node {
	cb, ok := n.(*ir.ConditionalBranch)
	if !ok {
		return nil
	}
	return []ir.Node{cb.TrueDestination, cb.FalseDestination}
}

func (g *gcm) computeIdoms() {
	g.idoms = make([]int, len(g.regions))
	for i := range g.idoms {
		g.idoms[i] = -1
	}
	for i, r := range g.regions {
		if dom := directImmediateDominator(r); dom != nil {
			if idx, ok := g.regionIndex[dom]; ok {
				g.idoms[i] = idx
			}
		}
	}
	for i, r := range g.regions {
		for _, dest := range divergenceDestinationsOf(r) {
			di, ok := g.regionIndex[dest]
			if !ok {
				continue
			}
			if g.idoms[di] != -1 && g.idoms[di] != i {
				panic(fmt.Sprintf("sched: region %d already has an immediate dominator", di))
			}
			g.idoms[di] = i
		}
	}
}

func (g *gcm) computeDepths() {
	g.depths = make([]int, len(g.regions))
	computed := make([]bool, len(g.regions))

	var depth func(int) int
	depth = func(i int) int {
		if computed[i] {
			return g.depths[i]
		}
		if g.idoms[i] < 0 {
			g.depths[i] = 0
		} else {
			g.depths[i] = depth(g.idoms[i]) + 1
		}
		computed[i] = true
		return g.depths[i]
	}
	for i := range g.regions {
		depth(i)
	}
}

// computeLoopNestingLevels leaves every region at nesting level zero: this
// scheduler performs no loop analysis (DESIGN.md open question 1). See
// lateScheduleInstructions for how the late scheduler's walk behaves with
// these all-zero levels.
func (g *gcm) computeLoopNestingLevels() {
	g.loopNestingLevels = make([]int, len(g.regions))
}

func isPhiNode(n ir.Node) bool {
	_, ok := n.(*ir.Phi)
	return ok
}

func isPhiValueNode(n ir.Node) bool {
	_, ok := n.(*ir.PhiValue)
	return ok
}

// earlyScheduleInstructions pins Phi/PhiValue nodes to the region named by
// their own Predecessor attribute, then places every other data
// instruction as early as the deepest region among its data dependencies
// requires, matching gcm.py's earlyScheduleInstructions.
func (g *gcm) earlyScheduleInstructions() {
	n := len(g.dataInstructions)
	g.earlySchedule = make([]int, n)
	g.pinned = make([]bool, n)

	pinTo := func(inst ir.Node, region ir.Node) {
		ii, ok := g.dataIndex[inst]
		if !ok {
			return
		}
		if g.pinned[ii] {
			panic(fmt.Sprintf("sched: %s already pinned", inst.Header().Kind))
		}
		ri, ok := g.regionIndex[region]
		if !ok {
			panic(fmt.Sprintf("sched: phi region for %s is not one of this functional's regions", inst.Header().Kind))
		}
		g.earlySchedule[ii] = ri
		g.pinned[ii] = true
	}

	for _, inst := range g.dataInstructions {
		phi, ok := inst.(*ir.Phi)
		if !ok {
			continue
		}
		pinTo(phi, phi.Predecessor)
		for _, v := range phi.Values {
			pv, ok := v.(*ir.PhiValue)
			if !ok {
				continue
			}
			pinTo(pv, pv.Predecessor)
		}
	}

	visited := make([]bool, n)
	var visit func(int)
	visit = func(i int) {
		if visited[i] {
			return
		}
		visited[i] = true
		inst := g.dataInstructions[i]
		for _, dep := range mop.DataDependencies(inst) {
			di, ok := g.dataIndex[dep]
			if !ok {
				continue
			}
			visit(di)
			if g.pinned[i] {
				continue
			}
			instDepth := g.depths[g.earlySchedule[i]]
			depDepth := g.depths[g.earlySchedule[di]]
			if instDepth < depDepth {
				g.earlySchedule[i] = g.earlySchedule[di]
			}
		}
	}
	for i := range g.dataInstructions {
		visit(i)
	}
}

// getRegionOfUsedValue asks a sequencing node where, in its own structure,
// a data value it reads lives. SequenceReturn is the one deviation from
// "the node's own predecessor region": its operand is consumed at the
// return itself, not before it, per ASGSequenceReturnNode.getRegionOfUsedValue
// in original_source/pyst/asg.py.
func getRegionOfUsedValue(user ir.Node) ir.Node {
	switch v := user.(type) {
	case *ir.ConditionalBranch:
		return v.Predecessor
	case *ir.SequenceBranchEnd:
		return v.Predecessor
	case *ir.SequenceReturn:
		return v
	case *ir.FxApplication:
		return v.Predecessor
	case *ir.FxMessageSend:
		return v.Predecessor
	default:
		return nil
	}
}

func (g *gcm) computeBlockLCA(a, b int) int {
	if a < 0 {
		return b
	}
	if b < 0 {
		return a
	}
	for g.depths[a] > g.depths[b] {
		a = g.idoms[a]
	}
	for g.depths[b] > g.depths[a] {
		b = g.idoms[b]
	}
	for a != b {
		a = g.idoms[a]
		b = g.idoms[b]
	}
	return a
}

// lateScheduleInstructions pushes each data instruction as late as the
// dominance tree allows (to the least common ancestor of every user's
// region) and then climbs back toward its early-scheduled region, matching
// gcm.py's lateScheduleInstructions. The loop-nesting comparison below is
// carried over exactly as gcm.py writes it (comparing a loop-nesting level
// to a region index, not to another level) — see DESIGN.md open question 1.
// With every level zero the comparison holds for every region index above
// zero, so the walk settles on the last ancestor it visits: the one directly
// below the early-scheduled region, or the LCA itself when the LCA is the
// early-scheduled region.
func (g *gcm) lateScheduleInstructions() {
	n := len(g.dataInstructions)
	g.scheduleRegions = append([]int(nil), g.earlySchedule...)
	visited := make([]bool, n)

	blockIndexOfUser := func(user ir.Node) int {
		if di, ok := g.dataIndex[user]; ok {
			return g.scheduleRegions[di]
		}
		region := getRegionOfUsedValue(user)
		if region == nil {
			return -1
		}
		return g.regionIndex[region]
	}

	var visit func(ir.Node)
	visit = func(inst ir.Node) {
		di, ok := g.dataIndex[inst]
		if !ok || visited[di] {
			return
		}
		visited[di] = true

		lca := -1
		for _, user := range g.users[di] {
			visit(user)
			lca = g.computeBlockLCA(lca, blockIndexOfUser(user))
		}
		if lca < 0 {
			// No user was found: the instruction is unreachable from the
			// functional's exit point and keeps its early-scheduled region.
			return
		}

		best := lca
		for lca != g.scheduleRegions[di] {
			if g.loopNestingLevels[lca] < best {
				best = lca
			}
			lca = g.idoms[lca]
		}
		g.scheduleRegions[di] = best
	}

	for i := range g.dataInstructions {
		if !g.pinned[i] {
			continue
		}
		visited[i] = true
		for _, user := range g.users[i] {
			visit(user)
		}
	}
	for i, inst := range g.dataInstructions {
		if !visited[i] {
			visit(inst)
		}
	}
}

// sortRegionInstructions topologically sorts the data instructions placed
// in one region by their data dependencies, then partitions the result into
// phi nodes, ordinary instructions, and phi-value nodes, in that order, so
// a Phi is always available before whatever reads it and a PhiValue (read
// only by its owning Phi) is emitted last, matching
// gcm.py's sortRegionInstructions.
func (g *gcm) sortRegionInstructions(instructions []ir.Node) []ir.Node {
	inSet := map[ir.Node]bool{}
	for _, inst := range instructions {
		inSet[inst] = true
	}
	visited := map[ir.Node]bool{}
	var phis, ordinary, phiValues []ir.Node

	var visit func(ir.Node)
	visit = func(inst ir.Node) {
		if inst == nil || visited[inst] || !inSet[inst] {
			return
		}
		visited[inst] = true
		for _, dep := range mop.DataDependencies(inst) {
			visit(dep)
		}
		switch {
		case isPhiNode(inst):
			phis = append(phis, inst)
		case isPhiValueNode(inst):
			phiValues = append(phiValues, inst)
		default:
			ordinary = append(ordinary, inst)
		}
	}
	for _, inst := range instructions {
		visit(inst)
	}

	out := make([]ir.Node, 0, len(phis)+len(ordinary)+len(phiValues))
	out = append(out, phis...)
	out = append(out, ordinary...)
	out = append(out, phiValues...)
	return out
}

func (g *gcm) serialize() *Program {
	perRegion := make([][]ir.Node, len(g.regions))
	for i, inst := range g.dataInstructions {
		region := g.scheduleRegions[i]
		perRegion[region] = append(perRegion[region], inst)
	}

	var body []ir.Node
	for i, region := range g.regions {
		body = append(body, region)
		body = append(body, g.sortRegionInstructions(perRegion[i])...)
	}

	return &Program{
		Functional:           g.functional,
		ActivationParameters: g.activationParams,
		Constants:            g.constants,
		Body:                 body,
	}
}
