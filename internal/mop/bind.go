package mop

import "fmt"

// ArgSpec declares one named constructor argument accepted by a kind
// factory, for kinds whose arity varies enough (message sends, argument
// lists, array literals) that binding by position alone isn't enough.
type ArgSpec struct {
	Name     string
	Required bool
	Default  AttrValue
}

// BindArgs resolves positional and named constructor arguments against
// specs, the same validation the original's ASGNodeMetaclass constructor
// performs: extra positional arguments, unknown names, a name given twice,
// and a missing required argument are all reported as errors instead of
// silently accepted or zero-valued.
func BindArgs(specs []ArgSpec, positional []AttrValue, named map[string]AttrValue) (map[string]AttrValue, error) {
	if len(positional) > len(specs) {
		return nil, fmt.Errorf("mop: too many positional arguments: got %d, expected at most %d", len(positional), len(specs))
	}

	bound := make(map[string]AttrValue, len(specs))
	for i, v := range positional {
		bound[specs[i].Name] = v
	}

	for name, v := range named {
		known := false
		for _, s := range specs {
			if s.Name == name {
				known = true
				break
			}
		}
		if !known {
			return nil, fmt.Errorf("mop: unknown argument %q", name)
		}
		if _, already := bound[name]; already {
			return nil, fmt.Errorf("mop: argument %q given both positionally and by name", name)
		}
		bound[name] = v
	}

	for _, s := range specs {
		if _, ok := bound[s.Name]; !ok {
			if s.Required {
				return nil, fmt.Errorf("mop: missing required argument %q", s.Name)
			}
			bound[s.Name] = s.Default
		}
	}

	return bound, nil
}
