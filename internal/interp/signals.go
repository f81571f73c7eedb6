package interp

import "github.com/golox-lang/golox/internal/lexer"

// RuntimeError is a genuine evaluation fault: a type mismatch, an undefined
// name, an arity mismatch. It is reported to the diagnostic sink and
// terminates the current Interpret call, skipping its remaining statements.
type RuntimeError struct {
	Token   lexer.Token
	Message string
}

func (e *RuntimeError) Error() string { return e.Message }

// The three signal types below also implement error so they can travel
// through the same error-return plumbing as RuntimeError, but they are
// never reported as diagnostics -- loops and Function.Call intercept them,
// and Interpret drops any that escape to the top level. Keeping them
// distinct from each other (rather than a single "non-local exit" type)
// means Function.Call's return handling never absorbs a break or continue,
// and a loop never absorbs a return.

// returnSignal unwinds a function call back to Function.Call.
type returnSignal struct {
	Value Value
}

func (returnSignal) Error() string { return "return" }

// breakSignal unwinds to the nearest enclosing loop.
type breakSignal struct{}

func (breakSignal) Error() string { return "break" }

// continueSignal unwinds to the nearest enclosing loop, which restarts it.
// A desugared for-loop's Block.ForIncrement wrapper intercepts it first to
// run the increment before letting it reach the loop itself.
type continueSignal struct{}

func (continueSignal) Error() string { return "continue" }
