package mop

import (
	"encoding/binary"
	"hash/fnv"
	"math"
)

// UnificationHash computes a structural hash of n from its kind and its
// Compared attributes, memoized on n's Header since the graph is built
// bottom-up and a node's compared attributes never change after
// construction. Two nodes with equal UnificationHash are candidates for
// GVN merging; UnificationEquals is the authoritative check.
func UnificationHash(n Node) uint64 {
	h := n.Header()
	if h.unifHashComputed {
		return h.unifHash
	}

	digest := fnv.New64a()
	digest.Write([]byte(h.Kind))
	for _, a := range Descriptor(h.Kind).Attrs {
		if !a.Compared {
			continue
		}
		writeAttrValue(digest, a.Get(n))
	}

	h.unifHash = digest.Sum64()
	h.unifHashComputed = true
	return h.unifHash
}

func writeAttrValue(w interface{ Write([]byte) (int, error) }, v AttrValue) {
	var buf [8]byte
	switch v.kind {
	case attrNone:
		w.Write([]byte{0})
	case attrNode:
		binary.LittleEndian.PutUint64(buf[:], UnificationHash(v.node))
		w.Write(buf[:])
	case attrNodeList:
		for _, n := range v.nodes {
			binary.LittleEndian.PutUint64(buf[:], UnificationHash(n))
			w.Write(buf[:])
		}
	case attrInt:
		binary.LittleEndian.PutUint64(buf[:], uint64(v.intVal))
		w.Write(buf[:])
	case attrFloat:
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v.f64Val))
		w.Write(buf[:])
	case attrString:
		w.Write([]byte(v.strVal))
	case attrRune:
		binary.LittleEndian.PutUint32(buf[:4], uint32(v.rVal))
		w.Write(buf[:4])
	case attrBool:
		if v.bVal {
			w.Write([]byte{1})
		} else {
			w.Write([]byte{0})
		}
	}
}

// UnificationEquals reports whether a and b are structurally equal for the
// purpose of GVN merging: same kind and equal Compared attributes.
// Node-valued attributes compare by pointer, which is sound because a
// node's children are always unified before the node itself is hashed.
func UnificationEquals(a, b Node) bool {
	ha, hb := a.Header(), b.Header()
	if ha.Kind != hb.Kind {
		return false
	}
	for _, attr := range Descriptor(ha.Kind).Attrs {
		if !attr.Compared {
			continue
		}
		if !attr.Get(a).equals(attr.Get(b)) {
			return false
		}
	}
	return true
}

// BetaReplaceableDependencies returns the transitive closure of n's data
// dependencies that isBetaReplaceable accepts, stopping the walk at each
// accepted node rather than descending into it. The result is memoized on
// n's Header.
func BetaReplaceableDependencies(n Node, isBetaReplaceable func(Node) bool) []Node {
	h := n.Header()
	if h.betaDepsComputed {
		return h.betaDeps
	}

	seen := map[Node]bool{}
	var result []Node
	var visit func(Node)
	visit = func(cur Node) {
		for _, dep := range DataDependencies(cur) {
			if seen[dep] {
				continue
			}
			seen[dep] = true
			if isBetaReplaceable(dep) {
				result = append(result, dep)
			} else {
				visit(dep)
			}
		}
	}
	visit(n)

	h.betaDeps = result
	h.betaDepsComputed = true
	return result
}
