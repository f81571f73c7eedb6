package interp

import (
	"fmt"

	"github.com/golox-lang/golox/internal/lexer"
)

// Environment is one lexical scope: a set of bindings plus a link to the
// scope it's nested in. Globals are the root environment with a nil
// enclosing pointer.
type Environment struct {
	enclosing *Environment
	values    map[string]Value
}

// NewEnvironment creates a scope nested inside enclosing (nil for globals).
func NewEnvironment(enclosing *Environment) *Environment {
	return &Environment{enclosing: enclosing, values: make(map[string]Value)}
}

// Define binds name in this scope, overwriting any existing binding. Unlike
// Assign, Define never walks outward -- it's how a new `var` or parameter
// always lands in the innermost scope.
func (e *Environment) Define(name string, v Value) {
	e.values[name] = v
}

// Get looks up a variable by walking outward through enclosing scopes.
func (e *Environment) Get(name lexer.Token) (Value, error) {
	if v, ok := e.values[name.Lexeme]; ok {
		return v, nil
	}
	if e.enclosing != nil {
		return e.enclosing.Get(name)
	}
	return nil, &RuntimeError{Token: name, Message: fmt.Sprintf("Undefined variable '%s'.", name.Lexeme)}
}

// Assign updates an existing binding, walking outward to find the scope
// that declared it. It does not create a new binding: assigning to an
// undeclared name is a runtime error.
func (e *Environment) Assign(name lexer.Token, v Value) error {
	if _, ok := e.values[name.Lexeme]; ok {
		e.values[name.Lexeme] = v
		return nil
	}
	if e.enclosing != nil {
		return e.enclosing.Assign(name, v)
	}
	return &RuntimeError{Token: name, Message: fmt.Sprintf("Undefined variable '%s'.", name.Lexeme)}
}

// ancestor walks outward exactly depth scopes. The resolver guarantees
// depth is always within bounds for every call site that uses it.
func (e *Environment) ancestor(depth int) *Environment {
	env := e
	for i := 0; i < depth; i++ {
		env = env.enclosing
	}
	return env
}

// GetAt reads a binding the resolver determined lives exactly depth scopes
// out, skipping the walk Get would otherwise perform.
func (e *Environment) GetAt(depth int, name string) Value {
	return e.ancestor(depth).values[name]
}

// AssignAt writes a binding the resolver determined lives exactly depth
// scopes out.
func (e *Environment) AssignAt(depth int, name string, v Value) {
	e.ancestor(depth).values[name] = v
}
