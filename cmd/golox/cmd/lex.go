package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	diag "github.com/golox-lang/golox/internal/errors"
	"github.com/golox-lang/golox/internal/lexer"
)

var lexEvalExpr string

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize a Lox file or expression and print the resulting tokens",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runLex,
}

func init() {
	rootCmd.AddCommand(lexCmd)
	lexCmd.Flags().StringVarP(&lexEvalExpr, "eval", "e", "", "tokenize inline source instead of reading from a file")
}

func runLex(cmd *cobra.Command, args []string) error {
	src, err := sourceFromArgsOrFlag(args, lexEvalExpr)
	if err != nil {
		return err
	}

	sink := diag.New(cmd.ErrOrStderr())
	tokens := lexer.New(src, sink).ScanTokens()
	for _, tok := range tokens {
		fmt.Fprintln(cmd.OutOrStdout(), tok.String())
	}
	if sink.HadError {
		exitCode = 65
	}
	return nil
}

func sourceFromArgsOrFlag(args []string, eval string) (string, error) {
	if eval != "" {
		return eval, nil
	}
	if len(args) == 1 {
		content, err := os.ReadFile(args[0])
		if err != nil {
			return "", err
		}
		return string(content), nil
	}
	return "", fmt.Errorf("either provide a file path or use -e for inline source")
}
