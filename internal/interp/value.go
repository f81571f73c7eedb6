// Package interp implements the tree-walking evaluator: environments,
// runtime values, callables, and the interpreter that walks the AST the
// resolver has already annotated.
package interp

import (
	"strconv"
	"strings"
)

// Value is any runtime value a Lox expression can produce. Concrete types
// below wrap the handful of primitive kinds plus the callable and
// object kinds defined alongside them in this package.
type Value interface {
	Type() string
	String() string
}

// Nil is the single runtime value of the nil type.
type Nil struct{}

func (Nil) Type() string   { return "nil" }
func (Nil) String() string { return "nil" }

// Boolean is a Lox boolean.
type Boolean bool

func (b Boolean) Type() string { return "boolean" }
func (b Boolean) String() string {
	if b {
		return "true"
	}
	return "false"
}

// Number is a Lox number, always a float64 under the hood.
type Number float64

func (Number) Type() string { return "number" }

func (n Number) String() string {
	s := strconv.FormatFloat(float64(n), 'f', -1, 64)
	// Lox prints whole numbers without a trailing ".0"; Go's formatter
	// already omits it for floats with no fractional part.
	if strings.Contains(s, "e") {
		// FormatFloat never chooses scientific notation at width -1 with
		// 'f', but guard here rather than trust that silently forever.
		return strconv.FormatFloat(float64(n), 'g', -1, 64)
	}
	return s
}

// String is a Lox string.
type String string

func (String) Type() string    { return "string" }
func (s String) String() string { return string(s) }

// IsTruthy implements Lox truthiness: nil and false are falsy, everything
// else -- including 0 and "" -- is truthy.
func IsTruthy(v Value) bool {
	switch x := v.(type) {
	case nil:
		return false
	case Nil:
		return false
	case Boolean:
		return bool(x)
	default:
		return true
	}
}

// Equal implements Lox's == for runtime values: nil equals only nil, and
// values of different dynamic types are never equal (no implicit coercion).
func Equal(a, b Value) bool {
	switch av := a.(type) {
	case Nil:
		_, ok := b.(Nil)
		return ok
	case Boolean:
		bv, ok := b.(Boolean)
		return ok && av == bv
	case Number:
		bv, ok := b.(Number)
		return ok && av == bv
	case String:
		bv, ok := b.(String)
		return ok && av == bv
	default:
		return a == b
	}
}

// Stringify renders a value the way `print` and the prompt's echoed result
// do. It differs from Value.String only in that a nil Go interface (an
// uninitialized Value, never meant to reach user-visible output) still
// prints as "nil" instead of panicking.
func Stringify(v Value) string {
	if v == nil {
		return "nil"
	}
	return v.String()
}
