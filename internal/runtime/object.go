package runtime

// Object is implemented by a receiver that wants to answer message sends
// itself rather than fall through to the built-in primitive library — the
// mechanism Stdio's stream objects use to respond to print:/nl.
type Object interface {
	Method(selector string) (func(args ...Value) (Value, error), bool)
}

// MessageNotUnderstood is returned by Send when neither the receiver's own
// Object.Method, the built-in primitive library, nor a Callable fallback
// can answer selector, mirroring environment.py's doesNotUnderstand:.
type MessageNotUnderstood struct {
	Receiver Value
	Selector string
}

func (e *MessageNotUnderstood) Error() string {
	return "runtime: " + describe(e.Receiver) + " does not understand #" + e.Selector
}

func describe(v Value) string {
	switch x := v.(type) {
	case nil:
		return "nil"
	case *Symbol:
		return x.String()
	default:
		return "a value"
	}
}
