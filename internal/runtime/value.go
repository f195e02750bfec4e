// Package runtime is the message-send dispatcher and primitive-function
// library internal/interp's FxMessageSend/MessageSend routines call into,
// grounded on original_source/pyst/environment.py's PystObject/Message/
// MessageNotUnderstood/performInWithArguments machinery, reworked as plain
// Go values and functions instead of a Python object hierarchy.
package runtime

import "fmt"

// Value is any value flowing through the interpreter's register file:
// int64, float64, string, bool, nil, *Symbol, Character, []Value, a
// *PrimitiveFunction, a *Block, or any Object a host binding installs
// (e.g. Stdio's stream objects).
type Value = interface{}

// Symbol is a `#name` literal: compared by name, never by pointer.
type Symbol struct{ Name string }

func (s *Symbol) String() string { return "#" + s.Name }

// Character is a `$c` literal.
type Character struct{ Rune rune }

func (c Character) String() string { return "$" + string(c.Rune) }

// Callable is implemented by any runtime value FxApplication's
// interpretation routine may invoke directly, and by anything answering
// the `value`/`value:`/... family of message selectors.
type Callable interface {
	Call(args ...Value) (Value, error)
}

// PrimitiveFunction wraps a built-in function so it can flow through the
// register file like any other value and be invoked either directly
// (Application/FxApplication) or through a `value:`-family message send.
type PrimitiveFunction struct {
	Name string
	Fn   func(args ...Value) (Value, error)
}

func (p *PrimitiveFunction) Call(args ...Value) (Value, error) {
	if p.Fn == nil {
		return nil, fmt.Errorf("runtime: primitive %q has no runtime implementation", p.Name)
	}
	return p.Fn(args...)
}

func (p *PrimitiveFunction) String() string { return "#<primitive:" + p.Name + ">" }
