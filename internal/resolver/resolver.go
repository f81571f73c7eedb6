// Package resolver performs a single static pass over the syntax tree
// between parsing and evaluation. It resolves every variable reference to
// the number of scopes out its declaration lives, writing the answer into
// the interpreter's side-table, and catches the handful of errors that are
// easiest to describe statically: reading a variable in its own
// initializer, a `return` with a value inside an initializer, `this`
// or `super` outside a class body.
package resolver

import (
	"fmt"

	"github.com/golox-lang/golox/internal/ast"
	diag "github.com/golox-lang/golox/internal/errors"
	"github.com/golox-lang/golox/internal/interp"
	"github.com/golox-lang/golox/internal/lexer"
)

type functionType int

const (
	fnNone functionType = iota
	fnFunction
	fnInitializer
	fnMethod
)

type classType int

const (
	classNone classType = iota
	classClass
	classSubclass
)

// bindingKind is what kind of name a scope entry stands for. Only kindValue
// locals get the unused-variable warning: a nested function or class name
// can legitimately be declared for its side effects (methods, recursion)
// without ever being referenced by name.
type bindingKind int

const (
	kindValue bindingKind = iota
	kindFunction
	kindClass
	kindMethod
)

// binding tracks one name's state within a single scope: its kind, whether
// its initializer has finished running yet, and whether anything ever reads
// or assigns it (so endScope can warn about dead locals).
type binding struct {
	token   lexer.Token
	kind    bindingKind
	defined bool
	used    bool
}

// Resolver is a single-use static pass; call Resolve once per program.
type Resolver struct {
	interp *interp.Interpreter
	sink   *diag.Sink

	scopes []map[string]*binding

	currentFunction functionType
	currentClass    classType
}

// New creates a Resolver that writes resolved depths into it and reports
// diagnostics to sink.
func New(it *interp.Interpreter, sink *diag.Sink) *Resolver {
	return &Resolver{interp: it, sink: sink}
}

// Resolve statically walks stmts, annotating every variable reference.
func (r *Resolver) Resolve(stmts []ast.Stmt) {
	r.resolveStmts(stmts)
}

func (r *Resolver) resolveStmts(stmts []ast.Stmt) {
	for _, s := range stmts {
		r.resolveStmt(s)
	}
}

func (r *Resolver) beginScope() {
	r.scopes = append(r.scopes, make(map[string]*binding))
}

// endScope pops the innermost scope, warning about any local that was
// declared but never read or assigned afterwards. Globals are exempt: a top-level name might be
// used by code the resolver hasn't seen yet in an embedding context. Only
// kindValue bindings are checked -- nested function and class declarations,
// like `this`/`super`, are never flagged as unused.
func (r *Resolver) endScope() {
	scope := r.scopes[len(r.scopes)-1]
	for name, b := range scope {
		if !b.used && b.kind == kindValue {
			r.sink.Warn(b.token.Line, b.token.Lexeme, false, fmt.Sprintf("Local variable '%s' is never used.", name))
		}
	}
	r.scopes = r.scopes[:len(r.scopes)-1]
}

func (r *Resolver) declare(name lexer.Token, kind bindingKind) {
	if len(r.scopes) == 0 {
		return
	}
	scope := r.scopes[len(r.scopes)-1]
	if _, ok := scope[name.Lexeme]; ok {
		r.sink.ErrorAt(name.Line, name.Lexeme, false, "Already a variable with this name in this scope.")
	}
	scope[name.Lexeme] = &binding{token: name, kind: kind}
}

func (r *Resolver) define(name lexer.Token, kind bindingKind) {
	if len(r.scopes) == 0 {
		return
	}
	scope := r.scopes[len(r.scopes)-1]
	if b, ok := scope[name.Lexeme]; ok {
		b.defined = true
		return
	}
	scope[name.Lexeme] = &binding{token: name, kind: kind, defined: true}
}

// resolveLocal walks outward from the innermost scope looking for name,
// recording how many scopes out it was found. A name found in no scope is
// left unresolved, meaning the interpreter will look it up in globals.
func (r *Resolver) resolveLocal(expr ast.Expr, name lexer.Token) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if b, ok := r.scopes[i][name.Lexeme]; ok {
			b.used = true
			r.interp.Resolve(expr, len(r.scopes)-1-i)
			return
		}
	}
}

func (r *Resolver) resolveFunction(fn *ast.Lambda, fnType functionType) {
	enclosingFunction := r.currentFunction
	r.currentFunction = fnType

	r.beginScope()
	for _, p := range fn.Params {
		r.declare(p, kindValue)
		r.define(p, kindValue)
	}
	r.resolveStmts(fn.Body)
	r.endScope()

	r.currentFunction = enclosingFunction
}

func (r *Resolver) resolveStmt(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.Block:
		r.beginScope()
		r.resolveStmts(s.Stmts)
		r.endScope()
	case *ast.Var:
		r.declare(s.Name, kindValue)
		if s.Initializer != nil {
			r.resolveExpr(s.Initializer)
		}
		r.define(s.Name, kindValue)
	case *ast.Function:
		r.declare(s.Name, kindFunction)
		r.define(s.Name, kindFunction)
		r.resolveFunction(s.Fn, fnFunction)
	case *ast.Expression:
		r.resolveExpr(s.Expr)
	case *ast.If:
		r.resolveExpr(s.Cond)
		r.resolveStmt(s.Then)
		if s.Else != nil {
			r.resolveStmt(s.Else)
		}
	case *ast.Print:
		r.resolveExpr(s.Expr)
	case *ast.Return:
		if r.currentFunction == fnNone {
			r.sink.ErrorAt(s.Keyword.Line, s.Keyword.Lexeme, false, "Can't return from top-level code.")
		}
		if s.Value != nil {
			if r.currentFunction == fnInitializer {
				r.sink.ErrorAt(s.Keyword.Line, s.Keyword.Lexeme, false, "Can't return a value from an initializer.")
			}
			r.resolveExpr(s.Value)
		}
	case *ast.While:
		r.resolveExpr(s.Cond)
		r.resolveStmt(s.Body)
	case *ast.Break:
		// Structurally validated by the parser; nothing to resolve.
	case *ast.Continue:
		// Structurally validated by the parser; nothing to resolve.
	case *ast.Class:
		r.resolveClass(s)
	default:
		panic(fmt.Sprintf("resolver: unhandled statement type %T", stmt))
	}
}

func (r *Resolver) resolveClass(s *ast.Class) {
	enclosingClass := r.currentClass
	r.currentClass = classClass

	r.declare(s.Name, kindClass)
	r.define(s.Name, kindClass)

	if s.Superclass != nil {
		if s.Superclass.Name.Lexeme == s.Name.Lexeme {
			r.sink.ErrorAt(s.Superclass.Name.Line, s.Superclass.Name.Lexeme, false, "A class can't inherit from itself.")
		}
		r.currentClass = classSubclass
		r.resolveExpr(s.Superclass)

		r.beginScope()
		superScope := r.scopes[len(r.scopes)-1]
		superScope["super"] = &binding{kind: kindMethod, defined: true, used: true}
	}

	r.beginScope()
	thisScope := r.scopes[len(r.scopes)-1]
	thisScope["this"] = &binding{kind: kindMethod, defined: true, used: true}

	for _, m := range s.Methods {
		fnType := fnMethod
		if m.Name.Lexeme == "init" {
			fnType = fnInitializer
		}
		r.resolveFunction(m.Fn, fnType)
	}

	r.endScope() // this

	if s.Superclass != nil {
		r.endScope() // super
	}

	r.currentClass = enclosingClass
}

func (r *Resolver) resolveExpr(expr ast.Expr) {
	switch e := expr.(type) {
	case *ast.Variable:
		if len(r.scopes) > 0 {
			if b, ok := r.scopes[len(r.scopes)-1][e.Name.Lexeme]; ok && !b.defined {
				r.sink.ErrorAt(e.Name.Line, e.Name.Lexeme, false, "Can't read local variable in its own initializer.")
			}
		}
		r.resolveLocal(e, e.Name)
	case *ast.Assign:
		r.resolveExpr(e.Value)
		r.resolveLocal(e, e.Name)
	case *ast.Binary:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)
	case *ast.Comma:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)
	case *ast.Logical:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)
	case *ast.Unary:
		r.resolveExpr(e.Right)
	case *ast.Grouping:
		r.resolveExpr(e.Inner)
	case *ast.Ternary:
		r.resolveExpr(e.Cond)
		r.resolveExpr(e.Then)
		r.resolveExpr(e.Else)
	case *ast.Literal:
		// No sub-expressions, nothing to resolve.
	case *ast.Call:
		r.resolveExpr(e.Callee)
		for _, a := range e.Args {
			r.resolveExpr(a)
		}
	case *ast.Get:
		r.resolveExpr(e.Object)
	case *ast.Set:
		r.resolveExpr(e.Value)
		r.resolveExpr(e.Object)
	case *ast.This:
		if r.currentClass == classNone {
			r.sink.ErrorAt(e.Keyword.Line, e.Keyword.Lexeme, false, "Can't use 'this' outside of a class.")
			return
		}
		r.resolveLocal(e, e.Keyword)
	case *ast.Super:
		switch {
		case r.currentClass == classNone:
			r.sink.ErrorAt(e.Keyword.Line, e.Keyword.Lexeme, false, "Can't use 'super' outside of a class.")
		case r.currentClass != classSubclass:
			r.sink.ErrorAt(e.Keyword.Line, e.Keyword.Lexeme, false, "Can't use 'super' in a class with no superclass.")
		}
		r.resolveLocal(e, e.Keyword)
	case *ast.Lambda:
		r.resolveFunction(e, fnFunction)
	default:
		panic(fmt.Sprintf("resolver: unhandled expression type %T", expr))
	}
}
