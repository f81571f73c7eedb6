// Package errors provides the diagnostic sink shared by the scanner, parser,
// resolver and interpreter. It accumulates non-fatal diagnostics and tracks
// the had-error / had-runtime-error flags the driver uses to pick an exit code.
package errors

import (
	"fmt"
	"io"
)

// Sink collects diagnostics produced while processing one unit of source.
// It is passed explicitly to every stage rather than kept as global state,
// so the pipeline can be embedded without hidden coupling.
type Sink struct {
	Out             io.Writer
	HadError        bool
	HadRuntimeError bool
}

// New creates a Sink that writes formatted diagnostics to w.
func New(w io.Writer) *Sink {
	return &Sink{Out: w}
}

// Reset clears the error flags before a new top-level unit runs. Prompt mode
// calls this before every line so errors on one line don't poison the next.
func (s *Sink) Reset() {
	s.HadError = false
	s.HadRuntimeError = false
}

// Error reports a diagnostic with no token context (used by the scanner,
// which only knows a line number).
func (s *Sink) Error(line int, message string) {
	s.report(line, "", message)
}

// ErrorAt reports a diagnostic anchored to a token, computing the "<where>"
// clause: " at end" for the EOF token, and " at '<lexeme>'" otherwise.
func (s *Sink) ErrorAt(line int, lexeme string, isEOF bool, message string) {
	if isEOF {
		s.report(line, " at end", message)
	} else {
		s.report(line, fmt.Sprintf(" at '%s'", lexeme), message)
	}
}

// Warn reports a diagnostic that does not set HadError, matching the
// resolver's unused-variable warnings.
func (s *Sink) Warn(line int, lexeme string, isEOF bool, message string) {
	where := ""
	if isEOF {
		where = " at end"
	} else if lexeme != "" {
		where = fmt.Sprintf(" at '%s'", lexeme)
	}
	fmt.Fprintf(s.Out, "[line %d] WARNING%s: %s\n", line, where, message)
}

func (s *Sink) report(line int, where, message string) {
	fmt.Fprintf(s.Out, "[line %d] ERROR%s: %s\n", line, where, message)
	s.HadError = true
}

// RuntimeError reports a runtime diagnostic and sets HadRuntimeError. Runtime
// errors always report with an empty "<where>" clause.
func (s *Sink) RuntimeError(line int, message string) {
	fmt.Fprintf(s.Out, "[line %d] ERROR: %s\n", line, message)
	s.HadRuntimeError = true
}
