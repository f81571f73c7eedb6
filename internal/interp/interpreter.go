package interp

import (
	"fmt"
	"io"
	"strings"

	"github.com/golox-lang/golox/internal/ast"
	diag "github.com/golox-lang/golox/internal/errors"
	"github.com/golox-lang/golox/internal/lexer"
)

// Interpreter walks a resolved syntax tree and evaluates it directly,
// without compiling to any intermediate form. Its locals table is written
// exclusively by the resolver, once, before Interpret ever runs; from here
// it is read-only.
type Interpreter struct {
	Globals *Environment

	env    *Environment
	locals map[ast.Expr]int
	sink   *diag.Sink
	out    io.Writer
}

// New creates an Interpreter that prints `print` output to out and reports
// runtime diagnostics to sink.
func New(sink *diag.Sink, out io.Writer) *Interpreter {
	globals := NewEnvironment(nil)
	registerBuiltins(globals)
	return &Interpreter{
		Globals: globals,
		env:     globals,
		locals:  make(map[ast.Expr]int),
		sink:    sink,
		out:     out,
	}
}

// Resolve records that expr refers to a binding depth scopes out from
// wherever it is evaluated. Called exclusively by the resolver.
func (it *Interpreter) Resolve(expr ast.Expr, depth int) {
	it.locals[expr] = depth
}

// Interpret runs a program's statements in order. A runtime error aborts
// the remaining statements and is reported through the sink; it does not
// panic.
func (it *Interpreter) Interpret(stmts []ast.Stmt) {
	for _, stmt := range stmts {
		if err := it.execute(stmt); err != nil {
			if rerr, ok := err.(*RuntimeError); ok {
				it.sink.RuntimeError(rerr.Token.Line, rerr.Message)
				return
			}
			// A break/continue/return escaping every enclosing construct
			// would be a resolver bug, not a user-facing runtime error.
			return
		}
	}
}

// ---- statements ----

func (it *Interpreter) execute(stmt ast.Stmt) error {
	switch s := stmt.(type) {
	case *ast.Expression:
		_, err := it.evaluate(s.Expr)
		return err
	case *ast.Print:
		v, err := it.evaluate(s.Expr)
		if err != nil {
			return err
		}
		fmt.Fprintln(it.out, Stringify(v))
		return nil
	case *ast.Var:
		var val Value = Nil{}
		if s.Initializer != nil {
			v, err := it.evaluate(s.Initializer)
			if err != nil {
				return err
			}
			val = v
		}
		it.env.Define(s.Name.Lexeme, val)
		return nil
	case *ast.Block:
		return it.executeBlock(s)
	case *ast.If:
		cond, err := it.evaluate(s.Cond)
		if err != nil {
			return err
		}
		if IsTruthy(cond) {
			return it.execute(s.Then)
		}
		if s.Else != nil {
			return it.execute(s.Else)
		}
		return nil
	case *ast.While:
		return it.executeWhile(s)
	case *ast.Break:
		return breakSignal{}
	case *ast.Continue:
		return continueSignal{}
	case *ast.Function:
		fn := &Function{name: s.Name.Lexeme, declaration: s.Fn, closure: it.env}
		it.env.Define(s.Name.Lexeme, fn)
		return nil
	case *ast.Return:
		var val Value = Nil{}
		if s.Value != nil {
			v, err := it.evaluate(s.Value)
			if err != nil {
				return err
			}
			val = v
		}
		return returnSignal{Value: val}
	case *ast.Class:
		return it.executeClass(s)
	default:
		return fmt.Errorf("interp: unhandled statement type %T", stmt)
	}
}

func (it *Interpreter) executeWhile(s *ast.While) error {
	for {
		cond, err := it.evaluate(s.Cond)
		if err != nil {
			return err
		}
		if !IsTruthy(cond) {
			return nil
		}
		if err := it.execute(s.Body); err != nil {
			if _, ok := err.(breakSignal); ok {
				return nil
			}
			if _, ok := err.(continueSignal); ok {
				continue
			}
			return err
		}
	}
}

func (it *Interpreter) executeClass(s *ast.Class) error {
	var superclass *Class
	if s.Superclass != nil {
		v, err := it.evaluate(s.Superclass)
		if err != nil {
			return err
		}
		sc, ok := v.(*Class)
		if !ok {
			return &RuntimeError{Token: s.Superclass.Name, Message: "Superclass must be a class."}
		}
		superclass = sc
	}

	// Predefine the name so a method body that refers to its own class by
	// name resolves once the class statement finishes.
	it.env.Define(s.Name.Lexeme, Nil{})

	methodEnv := it.env
	if superclass != nil {
		methodEnv = NewEnvironment(it.env)
		methodEnv.Define("super", superclass)
	}

	methods := make(map[string]*Function, len(s.Methods))
	for _, m := range s.Methods {
		methods[m.Name.Lexeme] = &Function{
			name:          m.Name.Lexeme,
			declaration:   m.Fn,
			closure:       methodEnv,
			isInitializer: m.Name.Lexeme == "init",
		}
	}

	class := &Class{Name: s.Name.Lexeme, Superclass: superclass, Methods: methods}
	return it.env.Assign(s.Name, class)
}

// executeBlock runs a block in a fresh scope nested in the current one.
func (it *Interpreter) executeBlock(b *ast.Block) error {
	return it.runBlock(b.Stmts, NewEnvironment(it.env), b.ForIncrement)
}

// executeStmts runs a function body in env, which the caller has already
// prepared with the function's parameters bound.
func (it *Interpreter) executeStmts(stmts []ast.Stmt, env *Environment) error {
	return it.runBlock(stmts, env, false)
}

// runBlock executes stmts with it.env switched to env for the duration.
// When forIncrement is set, a continueSignal raised by the first statement
// runs the second (the for-loop's increment expression) before propagating,
// so `continue` inside a desugared for-loop still advances it.
func (it *Interpreter) runBlock(stmts []ast.Stmt, env *Environment, forIncrement bool) error {
	previous := it.env
	it.env = env
	defer func() { it.env = previous }()

	for i, stmt := range stmts {
		err := it.execute(stmt)
		if err == nil {
			continue
		}
		if forIncrement {
			if _, ok := err.(continueSignal); ok {
				if i+1 < len(stmts) {
					if err2 := it.execute(stmts[i+1]); err2 != nil {
						return err2
					}
				}
				return err
			}
		}
		return err
	}
	return nil
}

// ---- expressions ----

func (it *Interpreter) evaluate(expr ast.Expr) (Value, error) {
	switch e := expr.(type) {
	case *ast.Literal:
		return literalValue(e.Value), nil
	case *ast.Grouping:
		return it.evaluate(e.Inner)
	case *ast.Unary:
		return it.evalUnary(e)
	case *ast.Binary:
		return it.evalBinary(e)
	case *ast.Comma:
		if _, err := it.evaluate(e.Left); err != nil {
			return nil, err
		}
		return it.evaluate(e.Right)
	case *ast.Ternary:
		cond, err := it.evaluate(e.Cond)
		if err != nil {
			return nil, err
		}
		if IsTruthy(cond) {
			return it.evaluate(e.Then)
		}
		return it.evaluate(e.Else)
	case *ast.Logical:
		return it.evalLogical(e)
	case *ast.Variable:
		return it.lookupVariable(e.Name, e)
	case *ast.Assign:
		return it.evalAssign(e)
	case *ast.Call:
		return it.evalCall(e)
	case *ast.Get:
		return it.evalGet(e)
	case *ast.Set:
		return it.evalSet(e)
	case *ast.This:
		return it.lookupVariable(e.Keyword, e)
	case *ast.Super:
		return it.evalSuper(e)
	case *ast.Lambda:
		return &Function{declaration: e, closure: it.env}, nil
	default:
		return nil, fmt.Errorf("interp: unhandled expression type %T", expr)
	}
}

func literalValue(v any) Value {
	switch x := v.(type) {
	case nil:
		return Nil{}
	case bool:
		return Boolean(x)
	case float64:
		return Number(x)
	case string:
		return String(x)
	default:
		return Nil{}
	}
}

func (it *Interpreter) lookupVariable(name lexer.Token, expr ast.Expr) (Value, error) {
	if depth, ok := it.locals[expr]; ok {
		return it.env.GetAt(depth, name.Lexeme), nil
	}
	return it.Globals.Get(name)
}

func (it *Interpreter) evalAssign(e *ast.Assign) (Value, error) {
	val, err := it.evaluate(e.Value)
	if err != nil {
		return nil, err
	}
	if depth, ok := it.locals[e]; ok {
		it.env.AssignAt(depth, e.Name.Lexeme, val)
		return val, nil
	}
	if err := it.Globals.Assign(e.Name, val); err != nil {
		return nil, err
	}
	return val, nil
}

func (it *Interpreter) evalUnary(e *ast.Unary) (Value, error) {
	right, err := it.evaluate(e.Right)
	if err != nil {
		return nil, err
	}
	switch e.Op.Type {
	case lexer.Minus:
		n, ok := right.(Number)
		if !ok {
			return nil, &RuntimeError{Token: e.Op, Message: "Operand must be a number."}
		}
		return -n, nil
	case lexer.Bang:
		return Boolean(!IsTruthy(right)), nil
	default:
		return nil, &RuntimeError{Token: e.Op, Message: "Unknown unary operator."}
	}
}

func (it *Interpreter) evalBinary(e *ast.Binary) (Value, error) {
	left, err := it.evaluate(e.Left)
	if err != nil {
		return nil, err
	}
	right, err := it.evaluate(e.Right)
	if err != nil {
		return nil, err
	}

	switch e.Op.Type {
	case lexer.Plus:
		if ln, ok := left.(Number); ok {
			if rn, ok := right.(Number); ok {
				return ln + rn, nil
			}
		}
		if ls, ok := left.(String); ok {
			if rs, ok := right.(String); ok {
				return ls + rs, nil
			}
		}
		return nil, &RuntimeError{Token: e.Op, Message: "Operands must be two numbers or two strings."}
	case lexer.Minus:
		ln, rn, err := numberOperands(e.Op, left, right)
		if err != nil {
			return nil, err
		}
		return ln - rn, nil
	case lexer.Star:
		ln, rn, err := numberOperands(e.Op, left, right)
		if err != nil {
			return nil, err
		}
		return ln * rn, nil
	case lexer.Slash:
		ln, rn, err := numberOperands(e.Op, left, right)
		if err != nil {
			return nil, err
		}
		if rn == 0 {
			return nil, &RuntimeError{Token: e.Op, Message: "Division by zero."}
		}
		return ln / rn, nil
	case lexer.Greater:
		cmp, err := compareOperands(e.Op, left, right)
		if err != nil {
			return nil, err
		}
		return Boolean(cmp > 0), nil
	case lexer.GreaterEqual:
		cmp, err := compareOperands(e.Op, left, right)
		if err != nil {
			return nil, err
		}
		return Boolean(cmp >= 0), nil
	case lexer.Less:
		cmp, err := compareOperands(e.Op, left, right)
		if err != nil {
			return nil, err
		}
		return Boolean(cmp < 0), nil
	case lexer.LessEqual:
		cmp, err := compareOperands(e.Op, left, right)
		if err != nil {
			return nil, err
		}
		return Boolean(cmp <= 0), nil
	case lexer.EqualEqual:
		return Boolean(Equal(left, right)), nil
	case lexer.BangEqual:
		return Boolean(!Equal(left, right)), nil
	default:
		return nil, &RuntimeError{Token: e.Op, Message: "Unknown binary operator."}
	}
}

// compareOperands orders two values for <, <=, >, >=. Two numbers compare
// numerically, two strings lexicographically. nil mixed with a non-nil value
// sorts as strictly least on either side; nil against nil compares equal.
// Any other combination (mismatched types, booleans, callables) is a
// runtime error.
func compareOperands(op lexer.Token, left, right Value) (int, error) {
	_, leftNil := left.(Nil)
	_, rightNil := right.(Nil)
	switch {
	case leftNil && rightNil:
		return 0, nil
	case leftNil:
		return -1, nil
	case rightNil:
		return 1, nil
	}
	if ln, ok := left.(Number); ok {
		if rn, ok := right.(Number); ok {
			switch {
			case ln < rn:
				return -1, nil
			case ln > rn:
				return 1, nil
			default:
				return 0, nil
			}
		}
	}
	if ls, ok := left.(String); ok {
		if rs, ok := right.(String); ok {
			return strings.Compare(string(ls), string(rs)), nil
		}
	}
	return 0, &RuntimeError{Token: op, Message: "Operands must be two numbers or two strings."}
}

func numberOperands(op lexer.Token, left, right Value) (Number, Number, error) {
	ln, ok := left.(Number)
	if !ok {
		return 0, 0, &RuntimeError{Token: op, Message: "Operands must be numbers."}
	}
	rn, ok := right.(Number)
	if !ok {
		return 0, 0, &RuntimeError{Token: op, Message: "Operands must be numbers."}
	}
	return ln, rn, nil
}

func (it *Interpreter) evalLogical(e *ast.Logical) (Value, error) {
	left, err := it.evaluate(e.Left)
	if err != nil {
		return nil, err
	}
	if e.Op.Type == lexer.Or {
		if IsTruthy(left) {
			return left, nil
		}
	} else {
		if !IsTruthy(left) {
			return left, nil
		}
	}
	return it.evaluate(e.Right)
}

func (it *Interpreter) evalCall(e *ast.Call) (Value, error) {
	callee, err := it.evaluate(e.Callee)
	if err != nil {
		return nil, err
	}

	args := make([]Value, 0, len(e.Args))
	for _, a := range e.Args {
		v, err := it.evaluate(a)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}

	callable, ok := callee.(Callable)
	if !ok {
		return nil, &RuntimeError{Token: e.Paren, Message: "Can only call functions and classes."}
	}
	if len(args) != callable.Arity() {
		return nil, &RuntimeError{
			Token:   e.Paren,
			Message: fmt.Sprintf("Expected %d arguments but got %d.", callable.Arity(), len(args)),
		}
	}
	return callable.Call(it, args)
}

func (it *Interpreter) evalGet(e *ast.Get) (Value, error) {
	obj, err := it.evaluate(e.Object)
	if err != nil {
		return nil, err
	}
	inst, ok := obj.(*Instance)
	if !ok {
		return nil, &RuntimeError{Token: e.Name, Message: "Only instances have properties."}
	}
	return inst.Get(e.Name)
}

func (it *Interpreter) evalSet(e *ast.Set) (Value, error) {
	obj, err := it.evaluate(e.Object)
	if err != nil {
		return nil, err
	}
	inst, ok := obj.(*Instance)
	if !ok {
		return nil, &RuntimeError{Token: e.Name, Message: "Only instances have fields."}
	}
	val, err := it.evaluate(e.Value)
	if err != nil {
		return nil, err
	}
	inst.Set(e.Name, val)
	return val, nil
}

func (it *Interpreter) evalSuper(e *ast.Super) (Value, error) {
	depth, ok := it.locals[e]
	if !ok {
		return nil, &RuntimeError{Token: e.Keyword, Message: "Unresolved 'super' expression."}
	}
	superclass, _ := it.env.GetAt(depth, "super").(*Class)
	instance, _ := it.env.GetAt(depth-1, "this").(*Instance)

	method := superclass.FindMethod(e.Method.Lexeme)
	if method == nil {
		return nil, &RuntimeError{Token: e.Method, Message: fmt.Sprintf("Undefined property '%s'.", e.Method.Lexeme)}
	}
	return method.Bind(instance), nil
}
