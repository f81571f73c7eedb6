// Package golox is the embeddable interface to the Lox interpreter: a small
// facade over internal/lexer, internal/parser, internal/resolver and
// internal/interp for callers that want to run Lox source from Go code
// without reaching into the interpreter's internal packages.
package golox

import (
	"io"

	diag "github.com/golox-lang/golox/internal/errors"
	"github.com/golox-lang/golox/internal/interp"
	"github.com/golox-lang/golox/internal/lexer"
	"github.com/golox-lang/golox/internal/parser"
	"github.com/golox-lang/golox/internal/resolver"
)

// Interpreter runs Lox programs. A single Interpreter's global environment
// persists across calls to Run, which is what lets a prompt built on one
// Interpreter remember variables and functions defined on earlier lines.
// An Interpreter is not safe for concurrent use.
type Interpreter struct {
	it   *interp.Interpreter
	sink *diag.Sink
}

// New creates an Interpreter that writes `print` output to out and
// diagnostics (scan/parse/resolve/runtime errors) to errOut, matching
// spec.md's split between stdout for program output and stderr for
// diagnostics.
func New(out, errOut io.Writer) *Interpreter {
	sink := diag.New(errOut)
	return &Interpreter{it: interp.New(sink, out), sink: sink}
}

// Run scans, parses, resolves and evaluates source. It clears the previous
// call's error flags first, so HadError/HadRuntimeError always describe
// only the most recent call.
func (i *Interpreter) Run(source string) {
	i.run(source, false)
}

// RunLine behaves like Run, but when the whole source is a single
// expression with no trailing semicolon, it stands in for `print <expr>;`
// -- the prompt's one concession to brevity. An expression after another
// statement still needs its semicolon.
func (i *Interpreter) RunLine(source string) {
	i.run(source, true)
}

func (i *Interpreter) run(source string, allowSingleExpression bool) {
	i.sink.Reset()

	lx := lexer.New(source, i.sink)
	tokens := lx.ScanTokens()

	ps := parser.New(tokens, i.sink)
	if allowSingleExpression {
		ps.AllowSingleExpression()
	}
	stmts := ps.Parse()
	if i.sink.HadError {
		return
	}

	res := resolver.New(i.it, i.sink)
	res.Resolve(stmts)
	if i.sink.HadError {
		return
	}

	i.it.Interpret(stmts)
}

// HadError reports whether the most recent Run/RunLine call produced a
// lexical, syntax or resolution diagnostic.
func (i *Interpreter) HadError() bool { return i.sink.HadError }

// HadRuntimeError reports whether the most recent Run/RunLine call raised a
// runtime error during evaluation.
func (i *Interpreter) HadRuntimeError() bool { return i.sink.HadRuntimeError }
