package runtime

import "strings"

// Send dispatches a message selector to receiver, trying, in order: the
// receiver's own Object.Method (if it implements Object), the built-in
// primitive library for numbers/strings/symbols/booleans, and finally a
// Callable fallback for the value/value:/value:value:/... selector family.
// It returns *MessageNotUnderstood when none of those can answer.
func Send(receiver Value, selector string, args []Value) (Value, error) {
	if obj, ok := receiver.(Object); ok {
		if method, ok := obj.Method(selector); ok {
			return method(args...)
		}
	}

	if v, err, handled := sendPrimitive(receiver, selector, args); handled {
		return v, err
	}

	if isValueSelector(selector) {
		if callable, ok := receiver.(Callable); ok {
			return callable.Call(args...)
		}
	}

	return nil, &MessageNotUnderstood{Receiver: receiver, Selector: selector}
}

// isValueSelector reports whether selector is `value` or one of the
// keyword selectors `value:`, `value:value:`, ... that BlockClosure and
// PrimitiveFunction answer by invoking themselves.
func isValueSelector(selector string) bool {
	if selector == "value" {
		return true
	}
	n := strings.Count(selector, ":")
	if n == 0 || !strings.HasSuffix(selector, ":") {
		return false
	}
	return selector == strings.Repeat("value:", n)
}
