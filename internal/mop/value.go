package mop

import "fmt"

type attrValueKind int

const (
	attrNone attrValueKind = iota
	attrNode
	attrNodeList
	attrInt
	attrFloat
	attrString
	attrRune
	attrBool
)

// AttrValue is the tagged union an AttrDescriptor.Get returns: exactly one
// of a Node, a Node list, or a scalar is meaningful, selected by kind. It
// exists so dependency iteration and unification can walk a kind's
// attributes generically without reflecting on the underlying Go struct
// field types.
type AttrValue struct {
	kind   attrValueKind
	node   Node
	nodes  []Node
	intVal int64
	f64Val float64
	strVal string
	rVal   rune
	bVal   bool
}

func NodeAttr(n Node) AttrValue         { return AttrValue{kind: attrNode, node: n} }
func NodeListAttr(ns []Node) AttrValue  { return AttrValue{kind: attrNodeList, nodes: ns} }
func IntAttr(i int64) AttrValue         { return AttrValue{kind: attrInt, intVal: i} }
func FloatAttr(f float64) AttrValue     { return AttrValue{kind: attrFloat, f64Val: f} }
func StringAttr(s string) AttrValue     { return AttrValue{kind: attrString, strVal: s} }
func RuneAttr(r rune) AttrValue         { return AttrValue{kind: attrRune, rVal: r} }
func BoolAttr(b bool) AttrValue         { return AttrValue{kind: attrBool, bVal: b} }
func NoneAttr() AttrValue               { return AttrValue{kind: attrNone} }

func (v AttrValue) Node() Node           { return v.node }
func (v AttrValue) Nodes() []Node        { return v.nodes }
func (v AttrValue) Int() int64           { return v.intVal }
func (v AttrValue) Float() float64       { return v.f64Val }
func (v AttrValue) Str() string          { return v.strVal }
func (v AttrValue) Rune() rune           { return v.rVal }
func (v AttrValue) Bool() bool           { return v.bVal }

// Format renders a scalar AttrValue for diagnostics and dotviz labels. It
// panics on a Node or Node-list value, which callers should special-case
// since those render as graph edges, not inline text.
func (v AttrValue) Format() string {
	switch v.kind {
	case attrNone:
		return "<none>"
	case attrInt:
		return fmt.Sprintf("%d", v.intVal)
	case attrFloat:
		return fmt.Sprintf("%g", v.f64Val)
	case attrString:
		return v.strVal
	case attrRune:
		return string(v.rVal)
	case attrBool:
		return fmt.Sprintf("%t", v.bVal)
	default:
		panic("mop: Format called on a Node-valued AttrValue")
	}
}

func (v AttrValue) equals(other AttrValue) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case attrNone:
		return true
	case attrNode:
		// Children are already GVN-deduplicated by the time a node is
		// hashed, so pointer identity is the correct equality check
		// here, matching the original's use of already-unified child
		// nodes when hashing/comparing a construction attribute.
		return v.node == other.node
	case attrNodeList:
		if len(v.nodes) != len(other.nodes) {
			return false
		}
		for i := range v.nodes {
			if v.nodes[i] != other.nodes[i] {
				return false
			}
		}
		return true
	case attrInt:
		return v.intVal == other.intVal
	case attrFloat:
		return v.f64Val == other.f64Val
	case attrString:
		return v.strVal == other.strVal
	case attrRune:
		return v.rVal == other.rVal
	case attrBool:
		return v.bVal == other.bVal
	}
	return false
}
