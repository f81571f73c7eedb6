package interp

import (
	"fmt"

	"github.com/golox-lang/golox/internal/ast"
)

// Callable is any value that can appear on the left of a call expression.
type Callable interface {
	Value
	Arity() int
	Call(it *Interpreter, args []Value) (Value, error)
}

// NativeFunction wraps a Go function as a callable Lox value, the shape the
// global built-ins (clock, ...) are registered as.
type NativeFunction struct {
	Name string
	Args int
	Fn   func(it *Interpreter, args []Value) (Value, error)
}

func (n *NativeFunction) Type() string          { return "native function" }
func (n *NativeFunction) String() string        { return fmt.Sprintf("<native fn %s>", n.Name) }
func (n *NativeFunction) Arity() int            { return n.Args }
func (n *NativeFunction) Call(it *Interpreter, args []Value) (Value, error) {
	return n.Fn(it, args)
}

// Function is a user-defined function or method: an AST body closing over
// the environment it was declared in.
type Function struct {
	name          string
	declaration   *ast.Lambda
	closure       *Environment
	isInitializer bool
}

func (f *Function) Type() string { return "function" }

func (f *Function) String() string {
	if f.name == "" {
		return "<fn>"
	}
	return fmt.Sprintf("<fn %s>", f.name)
}

func (f *Function) Arity() int { return len(f.declaration.Params) }

// Call runs the function body in a fresh scope parented on its closure,
// binding each parameter, and unwraps the returnSignal Call raises to
// produce an ordinary result. An initializer always returns `this`
// regardless of what its body returns, including a bare `return;`.
func (f *Function) Call(it *Interpreter, args []Value) (Value, error) {
	env := NewEnvironment(f.closure)
	for i, param := range f.declaration.Params {
		env.Define(param.Lexeme, args[i])
	}

	err := it.executeStmts(f.declaration.Body, env)
	if err != nil {
		if ret, ok := err.(returnSignal); ok {
			if f.isInitializer {
				return f.closure.GetAt(0, "this"), nil
			}
			return ret.Value, nil
		}
		return nil, err
	}

	if f.isInitializer {
		return f.closure.GetAt(0, "this"), nil
	}
	return Nil{}, nil
}

// Bind returns a copy of f whose closure additionally binds `this` to
// instance, the step that turns an unbound method into a callable value
// tied to a particular object (what `obj.method` evaluates to).
func (f *Function) Bind(instance *Instance) *Function {
	env := NewEnvironment(f.closure)
	env.Define("this", instance)
	return &Function{name: f.name, declaration: f.declaration, closure: env, isInitializer: f.isInitializer}
}
