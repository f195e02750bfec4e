package runtime

import (
	"fmt"
	"strconv"
)

// sendPrimitive answers the built-in selectors every host-language value
// (numbers, strings, symbols, booleans, characters) responds to without
// needing an Object implementation. The bool result reports whether
// selector was recognized at all, independent of whether the call itself
// errored.
func sendPrimitive(receiver Value, selector string, args []Value) (Value, error, bool) {
	switch r := receiver.(type) {
	case int64:
		return sendInteger(r, selector, args)
	case float64:
		return sendFloat(r, selector, args)
	case string:
		return sendString(r, selector, args)
	case bool:
		return sendBool(r, selector, args)
	case *Symbol:
		return sendSymbol(r, selector, args)
	case Character:
		return sendCharacter(r, selector, args)
	}
	return nil, nil, false
}

func sendInteger(r int64, selector string, args []Value) (Value, error, bool) {
	switch selector {
	case "asString", "printString":
		return strconv.FormatInt(r, 10), nil, true
	case "asFloat":
		return float64(r), nil, true
	case "asInteger", "truncated":
		return r, nil, true
	case "negated":
		return -r, nil, true
	}
	if !isArithmeticSelector(selector) {
		return nil, nil, false
	}
	if len(args) != 1 {
		return nil, fmt.Errorf("runtime: #%s expects one argument", selector), true
	}
	if other, ok := args[0].(int64); ok {
		return integerArithmetic(r, selector, other)
	}
	if other, ok := toFloat(args[0]); ok {
		return floatArithmetic(float64(r), selector, other)
	}
	return nil, fmt.Errorf("runtime: #%s expects a Number argument, got %T", selector, args[0]), true
}

func sendFloat(r float64, selector string, args []Value) (Value, error, bool) {
	switch selector {
	case "asString", "printString":
		return strconv.FormatFloat(r, 'g', -1, 64), nil, true
	case "asFloat":
		return r, nil, true
	case "asInteger", "truncated":
		return int64(r), nil, true
	case "negated":
		return -r, nil, true
	}
	if !isArithmeticSelector(selector) {
		return nil, nil, false
	}
	if len(args) != 1 {
		return nil, fmt.Errorf("runtime: #%s expects one argument", selector), true
	}
	other, ok := toFloat(args[0])
	if !ok {
		return nil, fmt.Errorf("runtime: #%s expects a Number argument, got %T", selector, args[0]), true
	}
	return floatArithmetic(r, selector, other)
}

func isArithmeticSelector(selector string) bool {
	switch selector {
	case "+", "-", "*", "/", "//", "\\\\", "=", "~=", "<", ">", "<=", ">=":
		return true
	}
	return false
}

func toFloat(v Value) (float64, bool) {
	switch x := v.(type) {
	case int64:
		return float64(x), true
	case float64:
		return x, true
	}
	return 0, false
}

func integerArithmetic(l int64, selector string, r int64) (Value, error, bool) {
	switch selector {
	case "+":
		return l + r, nil, true
	case "-":
		return l - r, nil, true
	case "*":
		return l * r, nil, true
	case "/":
		if r == 0 {
			return nil, fmt.Errorf("runtime: division by zero"), true
		}
		if l%r == 0 {
			return l / r, nil, true
		}
		return float64(l) / float64(r), nil, true
	case "//":
		if r == 0 {
			return nil, fmt.Errorf("runtime: division by zero"), true
		}
		return floorDivInt(l, r), nil, true
	case "\\\\":
		if r == 0 {
			return nil, fmt.Errorf("runtime: division by zero"), true
		}
		return floorModInt(l, r), nil, true
	case "=":
		return l == r, nil, true
	case "~=":
		return l != r, nil, true
	case "<":
		return l < r, nil, true
	case ">":
		return l > r, nil, true
	case "<=":
		return l <= r, nil, true
	case ">=":
		return l >= r, nil, true
	}
	return nil, fmt.Errorf("runtime: unsupported selector #%s", selector), true
}

func floatArithmetic(l float64, selector string, r float64) (Value, error, bool) {
	switch selector {
	case "+":
		return l + r, nil, true
	case "-":
		return l - r, nil, true
	case "*":
		return l * r, nil, true
	case "/":
		if r == 0 {
			return nil, fmt.Errorf("runtime: division by zero"), true
		}
		return l / r, nil, true
	case "=":
		return l == r, nil, true
	case "~=":
		return l != r, nil, true
	case "<":
		return l < r, nil, true
	case ">":
		return l > r, nil, true
	case "<=":
		return l <= r, nil, true
	case ">=":
		return l >= r, nil, true
	case "//", "\\\\":
		return nil, fmt.Errorf("runtime: #%s requires integer operands", selector), true
	}
	return nil, fmt.Errorf("runtime: unsupported selector #%s", selector), true
}

func floorDivInt(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorModInt(a, b int64) int64 {
	m := a % b
	if m != 0 && ((a < 0) != (b < 0)) {
		m += b
	}
	return m
}

func sendString(r string, selector string, args []Value) (Value, error, bool) {
	switch selector {
	case "asSymbol":
		return &Symbol{Name: r}, nil, true
	case "asString", "printString":
		return r, nil, true
	case "size":
		return int64(len([]rune(r))), nil, true
	case ",":
		if len(args) != 1 {
			return nil, fmt.Errorf("runtime: #, expects one argument"), true
		}
		other, ok := args[0].(string)
		if !ok {
			return nil, fmt.Errorf("runtime: #, expects a String argument, got %T", args[0]), true
		}
		return r + other, nil, true
	case "=":
		if len(args) != 1 {
			return nil, fmt.Errorf("runtime: #= expects one argument"), true
		}
		other, ok := args[0].(string)
		return ok && other == r, nil, true
	case "~=":
		if len(args) != 1 {
			return nil, fmt.Errorf("runtime: #~= expects one argument"), true
		}
		other, ok := args[0].(string)
		return !ok || other != r, nil, true
	}
	return nil, nil, false
}

func sendSymbol(r *Symbol, selector string, args []Value) (Value, error, bool) {
	switch selector {
	case "asString", "printString":
		return r.Name, nil, true
	case "=":
		if len(args) != 1 {
			return nil, fmt.Errorf("runtime: #= expects one argument"), true
		}
		other, ok := args[0].(*Symbol)
		return ok && other.Name == r.Name, nil, true
	}
	return nil, nil, false
}

func sendCharacter(r Character, selector string, args []Value) (Value, error, bool) {
	switch selector {
	case "asString", "printString":
		return string(r.Rune), nil, true
	case "asInteger":
		return int64(r.Rune), nil, true
	case "=":
		if len(args) != 1 {
			return nil, fmt.Errorf("runtime: #= expects one argument"), true
		}
		other, ok := args[0].(Character)
		return ok && other.Rune == r.Rune, nil, true
	}
	return nil, nil, false
}

func sendBool(r bool, selector string, args []Value) (Value, error, bool) {
	switch selector {
	case "not":
		return !r, nil, true
	case "&", "and:":
		if len(args) != 1 {
			return nil, fmt.Errorf("runtime: #%s expects one argument", selector), true
		}
		if !r {
			return false, nil, true
		}
		return truthyArg(args[0])
	case "|", "or:":
		if len(args) != 1 {
			return nil, fmt.Errorf("runtime: #%s expects one argument", selector), true
		}
		if r {
			return true, nil, true
		}
		return truthyArg(args[0])
	case "=":
		if len(args) != 1 {
			return nil, fmt.Errorf("runtime: #= expects one argument"), true
		}
		other, ok := args[0].(bool)
		return ok && other == r, nil, true
	}
	return nil, nil, false
}

func truthyArg(v Value) (Value, error, bool) {
	switch a := v.(type) {
	case bool:
		return a, nil, true
	case Callable:
		result, err := a.Call()
		return result, err, true
	}
	return nil, fmt.Errorf("runtime: expected a Boolean or a zero-argument block"), true
}
