package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/golox-lang/golox/pkg/golox"
)

func runFile(path string, out, errOut io.Writer) {
	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintln(errOut, err)
		exitCode = 1
		return
	}

	it := golox.New(out, errOut)
	it.Run(string(src))

	switch {
	case it.HadRuntimeError():
		exitCode = 70
	case it.HadError():
		exitCode = 65
	}
}

// runPrompt runs an interactive read-eval-print loop, one line at a time,
// over a single Interpreter so declarations on one line are visible to the
// next. A bad line never ends the session -- only EOF (Ctrl-D) does.
func runPrompt(out, errOut io.Writer) {
	it := golox.New(out, errOut)
	scanner := bufio.NewScanner(os.Stdin)

	prompt := isatty.IsTerminal(os.Stdin.Fd())
	if prompt {
		fmt.Fprint(out, "> ")
	}
	for scanner.Scan() {
		it.RunLine(scanner.Text())
		if prompt {
			fmt.Fprint(out, "> ")
		}
	}
}
