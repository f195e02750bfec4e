package mop

import (
	"fmt"
	"strings"
)

// Describe renders n's kind plus its Compared scalar attributes as
// `Kind(name=value, ...)`, the generic analog of the original's
// printNameWithDataAttributes. It is a free function rather than a
// Node.String() method because Header, the struct every kind embeds, has
// no way to see back up to the concrete struct surrounding it — only the
// outer Node value itself carries enough information to read its own
// attributes.
func Describe(n Node) string {
	kind := n.Header().Kind
	var parts []string
	for _, a := range Descriptor(kind).Attrs {
		if !a.Compared || a.isDataInputPort() || a.isSequencingPredecessor() || a.isSequencingDestination() {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s=%s", a.Name, a.Get(n).Format()))
	}
	if len(parts) == 0 {
		return string(kind)
	}
	return fmt.Sprintf("%s(%s)", kind, strings.Join(parts, ", "))
}

// DescribeWithHash appends n's unification hash to Describe's label, the
// analog of printNameWithComparedAttributes, which the original also uses
// to tell apart otherwise-identically-labeled GVN-merged nodes in a dump.
func DescribeWithHash(n Node) string {
	return fmt.Sprintf("%s #%08x", Describe(n), UnificationHash(n))
}
