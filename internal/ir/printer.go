package ir

import (
	"fmt"
	"strings"

	"github.com/dekarrin/rosed"
	"github.com/dekarrin/stgraph/internal/mop"
)

// String renders n as "<Kind>(attr: value, ...)" using its registered data
// attributes, the Go equivalent of the original's printNameWithDataAttributes.
// Attributes of any other role (node-valued edges, derivations) are left
// out, keeping a single node's String() output to one line; dotviz is what
// walks the full graph.
func String(n Node) string {
	kd := mop.Descriptor(n.Header().Kind)
	var parts []string
	for _, a := range kd.Attrs {
		if a.Role != mop.RoleData {
			continue
		}
		v := a.Get(n)
		parts = append(parts, fmt.Sprintf("%s: %s", a.Name, v.Format()))
	}
	if len(parts) == 0 {
		return string(n.Header().Kind)
	}
	return fmt.Sprintf("%s(%s)", n.Header().Kind, strings.Join(parts, ", "))
}

// StringWithHashes is String plus the node's unification hash, showing
// which nodes GVN considers interchangeable. Nothing in the pipeline calls
// it; dotviz labels come from mop.DescribeWithHash.
func StringWithHashes(n Node) string {
	return fmt.Sprintf("%s #%016x", String(n), mop.UnificationHash(n))
}

// Indent wraps body with rosed the way tunascript/syntax/ast.go indents
// nested subtree dumps.
func Indent(body string, levels int) string {
	return rosed.Edit(body).Indent(levels).String()
}
