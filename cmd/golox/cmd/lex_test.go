package cmd

import (
	"bytes"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	diag "github.com/golox-lang/golox/internal/errors"
	"github.com/golox-lang/golox/internal/lexer"
)

// TestLexCommandTokenDump snapshots the token dump format the `lex`
// subcommand prints: first run records the baseline, later runs diff
// against it.
func TestLexCommandTokenDump(t *testing.T) {
	var buf bytes.Buffer
	sink := diag.New(&buf)
	tokens := lexer.New(`var greeting = "hi";`, sink).ScanTokens()

	var out bytes.Buffer
	for _, tok := range tokens {
		out.WriteString(tok.String())
		out.WriteByte('\n')
	}

	snaps.MatchSnapshot(t, out.String())
}
