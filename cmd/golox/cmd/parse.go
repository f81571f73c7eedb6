package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/golox-lang/golox/internal/ast"
	diag "github.com/golox-lang/golox/internal/errors"
	"github.com/golox-lang/golox/internal/lexer"
	"github.com/golox-lang/golox/internal/parser"
)

var parseEvalExpr string

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a Lox file or expression and print its syntax tree",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().StringVarP(&parseEvalExpr, "eval", "e", "", "parse inline source instead of reading from a file")
}

func runParse(cmd *cobra.Command, args []string) error {
	src, err := sourceFromArgsOrFlag(args, parseEvalExpr)
	if err != nil {
		return err
	}

	sink := diag.New(cmd.ErrOrStderr())
	tokens := lexer.New(src, sink).ScanTokens()
	stmts := parser.New(tokens, sink).Parse()

	out := cmd.OutOrStdout()
	for _, stmt := range stmts {
		printStmt(out, stmt, 0)
	}
	if sink.HadError {
		exitCode = 65
	}
	return nil
}

func indent(out io.Writer, depth int) {
	for i := 0; i < depth; i++ {
		fmt.Fprint(out, "  ")
	}
}

// printStmt and printExpr are a debug-only s-expression dump of the tree,
// not a pretty-printer: each line names the node and recurses into its
// children one level deeper.
func printStmt(out io.Writer, stmt ast.Stmt, depth int) {
	indent(out, depth)
	switch s := stmt.(type) {
	case *ast.Expression:
		fmt.Fprintln(out, "Expression")
		printExpr(out, s.Expr, depth+1)
	case *ast.Print:
		fmt.Fprintln(out, "Print")
		printExpr(out, s.Expr, depth+1)
	case *ast.Var:
		fmt.Fprintf(out, "Var %s\n", s.Name.Lexeme)
		if s.Initializer != nil {
			printExpr(out, s.Initializer, depth+1)
		}
	case *ast.Block:
		fmt.Fprintln(out, "Block")
		for _, inner := range s.Stmts {
			printStmt(out, inner, depth+1)
		}
	case *ast.If:
		fmt.Fprintln(out, "If")
		printExpr(out, s.Cond, depth+1)
		printStmt(out, s.Then, depth+1)
		if s.Else != nil {
			printStmt(out, s.Else, depth+1)
		}
	case *ast.While:
		fmt.Fprintln(out, "While")
		printExpr(out, s.Cond, depth+1)
		printStmt(out, s.Body, depth+1)
	case *ast.Break:
		fmt.Fprintln(out, "Break")
	case *ast.Continue:
		fmt.Fprintln(out, "Continue")
	case *ast.Function:
		fmt.Fprintf(out, "Function %s\n", s.Name.Lexeme)
		for _, inner := range s.Fn.Body {
			printStmt(out, inner, depth+1)
		}
	case *ast.Return:
		fmt.Fprintln(out, "Return")
		if s.Value != nil {
			printExpr(out, s.Value, depth+1)
		}
	case *ast.Class:
		fmt.Fprintf(out, "Class %s\n", s.Name.Lexeme)
		for _, m := range s.Methods {
			printStmt(out, m, depth+1)
		}
	default:
		fmt.Fprintf(out, "<unknown stmt %T>\n", stmt)
	}
}

func printExpr(out io.Writer, expr ast.Expr, depth int) {
	indent(out, depth)
	switch e := expr.(type) {
	case *ast.Literal:
		fmt.Fprintf(out, "Literal %v\n", e.Value)
	case *ast.Variable:
		fmt.Fprintf(out, "Variable %s\n", e.Name.Lexeme)
	case *ast.Assign:
		fmt.Fprintf(out, "Assign %s\n", e.Name.Lexeme)
		printExpr(out, e.Value, depth+1)
	case *ast.Unary:
		fmt.Fprintf(out, "Unary %s\n", e.Op.Lexeme)
		printExpr(out, e.Right, depth+1)
	case *ast.Binary:
		fmt.Fprintf(out, "Binary %s\n", e.Op.Lexeme)
		printExpr(out, e.Left, depth+1)
		printExpr(out, e.Right, depth+1)
	case *ast.Comma:
		fmt.Fprintln(out, "Comma")
		printExpr(out, e.Left, depth+1)
		printExpr(out, e.Right, depth+1)
	case *ast.Logical:
		fmt.Fprintf(out, "Logical %s\n", e.Op.Lexeme)
		printExpr(out, e.Left, depth+1)
		printExpr(out, e.Right, depth+1)
	case *ast.Grouping:
		fmt.Fprintln(out, "Grouping")
		printExpr(out, e.Inner, depth+1)
	case *ast.Ternary:
		fmt.Fprintln(out, "Ternary")
		printExpr(out, e.Cond, depth+1)
		printExpr(out, e.Then, depth+1)
		printExpr(out, e.Else, depth+1)
	case *ast.Call:
		fmt.Fprintln(out, "Call")
		printExpr(out, e.Callee, depth+1)
		for _, a := range e.Args {
			printExpr(out, a, depth+1)
		}
	case *ast.Get:
		fmt.Fprintf(out, "Get %s\n", e.Name.Lexeme)
		printExpr(out, e.Object, depth+1)
	case *ast.Set:
		fmt.Fprintf(out, "Set %s\n", e.Name.Lexeme)
		printExpr(out, e.Object, depth+1)
		printExpr(out, e.Value, depth+1)
	case *ast.This:
		fmt.Fprintln(out, "This")
	case *ast.Super:
		fmt.Fprintf(out, "Super %s\n", e.Method.Lexeme)
	case *ast.Lambda:
		fmt.Fprintln(out, "Lambda")
		for _, inner := range e.Body {
			printStmt(out, inner, depth+1)
		}
	default:
		fmt.Fprintf(out, "<unknown expr %T>\n", expr)
	}
}
