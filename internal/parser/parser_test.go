package parser

import (
	"bytes"
	"testing"

	"github.com/golox-lang/golox/internal/ast"
	"github.com/golox-lang/golox/internal/errors"
	"github.com/golox-lang/golox/internal/lexer"
)

func parseSource(t *testing.T, src string) ([]ast.Stmt, *errors.Sink) {
	t.Helper()
	var buf bytes.Buffer
	sink := errors.New(&buf)
	tokens := lexer.New(src, sink).ScanTokens()
	stmts := New(tokens, sink).Parse()
	return stmts, sink
}

func TestParseExpressionStatement(t *testing.T) {
	stmts, sink := parseSource(t, "1 + 2 * 3;")
	if sink.HadError {
		t.Fatalf("unexpected parse error")
	}
	if len(stmts) != 1 {
		t.Fatalf("got %d statements, want 1", len(stmts))
	}
	exprStmt, ok := stmts[0].(*ast.Expression)
	if !ok {
		t.Fatalf("got %T, want *ast.Expression", stmts[0])
	}
	bin, ok := exprStmt.Expr.(*ast.Binary)
	if !ok {
		t.Fatalf("got %T, want *ast.Binary", exprStmt.Expr)
	}
	if bin.Op.Type != lexer.Plus {
		t.Errorf("top operator is %v, want Plus (lower precedence binds last)", bin.Op.Type)
	}
}

func TestAssignmentTargetRewrite(t *testing.T) {
	stmts, sink := parseSource(t, "x = 1; a.b = 2;")
	if sink.HadError {
		t.Fatalf("unexpected parse error")
	}
	if _, ok := stmts[0].(*ast.Expression).Expr.(*ast.Assign); !ok {
		t.Errorf("expected Assign node for variable target")
	}
	if _, ok := stmts[1].(*ast.Expression).Expr.(*ast.Set); !ok {
		t.Errorf("expected Set node for property target")
	}
}

func TestInvalidAssignmentTargetReportsButDoesNotAbort(t *testing.T) {
	stmts, sink := parseSource(t, "1 = 2; print 3;")
	if !sink.HadError {
		t.Fatalf("expected a diagnostic for an unassignable target")
	}
	if len(stmts) != 2 {
		t.Fatalf("got %d statements, want 2: parsing should continue after the bad assignment", len(stmts))
	}
}

func TestCommaLowerPrecedenceThanAssignment(t *testing.T) {
	stmts, sink := parseSource(t, "a = 1, b = 2;")
	if sink.HadError {
		t.Fatalf("unexpected parse error")
	}
	comma, ok := stmts[0].(*ast.Expression).Expr.(*ast.Comma)
	if !ok {
		t.Fatalf("got %T, want *ast.Comma", stmts[0].(*ast.Expression).Expr)
	}
	if _, ok := comma.Left.(*ast.Assign); !ok {
		t.Errorf("left side of comma should be a whole assignment, got %T", comma.Left)
	}
}

func TestCallArgumentCommaSplitting(t *testing.T) {
	stmts, sink := parseSource(t, "f((a, b), c);")
	if sink.HadError {
		t.Fatalf("unexpected parse error")
	}
	call := stmts[0].(*ast.Expression).Expr.(*ast.Call)
	if len(call.Args) != 3 {
		t.Fatalf("got %d args, want 3 (the grouped comma pair splits into two): %v", len(call.Args), call.Args)
	}
}

func TestForLoopDesugarsToWhile(t *testing.T) {
	stmts, sink := parseSource(t, "for (var i = 0; i < 3; i = i + 1) print i;")
	if sink.HadError {
		t.Fatalf("unexpected parse error")
	}
	outer, ok := stmts[0].(*ast.Block)
	if !ok {
		t.Fatalf("got %T, want *ast.Block wrapping the initializer", stmts[0])
	}
	if len(outer.Stmts) != 2 {
		t.Fatalf("got %d statements in desugared block, want 2 (init, while)", len(outer.Stmts))
	}
	if _, ok := outer.Stmts[0].(*ast.Var); !ok {
		t.Errorf("first statement should be the initializer, got %T", outer.Stmts[0])
	}
	whileStmt, ok := outer.Stmts[1].(*ast.While)
	if !ok {
		t.Fatalf("second statement should be *ast.While, got %T", outer.Stmts[1])
	}
	body, ok := whileStmt.Body.(*ast.Block)
	if !ok || !body.ForIncrement {
		t.Fatalf("while body should be a ForIncrement-marked block, got %#v", whileStmt.Body)
	}
	if len(body.Stmts) != 2 {
		t.Fatalf("got %d statements in increment wrapper, want 2 (body, increment)", len(body.Stmts))
	}
}

func TestBreakOutsideLoopIsReported(t *testing.T) {
	_, sink := parseSource(t, "break;")
	if !sink.HadError {
		t.Fatalf("expected diagnostic for break outside a loop")
	}
}

func TestClassWithSuperclassAndMethods(t *testing.T) {
	stmts, sink := parseSource(t, `
		class Animal {
			speak() { print "..."; }
		}
		class Dog < Animal {
			speak() { print "Woof"; }
		}
	`)
	if sink.HadError {
		t.Fatalf("unexpected parse error")
	}
	dog := stmts[1].(*ast.Class)
	if dog.Superclass == nil || dog.Superclass.Name.Lexeme != "Animal" {
		t.Fatalf("expected Dog to record Animal as its superclass")
	}
	if len(dog.Methods) != 1 || dog.Methods[0].Name.Lexeme != "speak" {
		t.Fatalf("expected one method named speak, got %#v", dog.Methods)
	}
}

func TestTernaryIsRightAssociative(t *testing.T) {
	stmts, sink := parseSource(t, "print a ? b : c ? d : e;")
	if sink.HadError {
		t.Fatalf("unexpected parse error")
	}
	outer := stmts[0].(*ast.Print).Expr.(*ast.Ternary)
	if _, ok := outer.Else.(*ast.Ternary); !ok {
		t.Errorf("the else-branch of a chained ternary should itself be a ternary, got %T", outer.Else)
	}
}

func TestSynchronizeRecoversAfterSyntaxError(t *testing.T) {
	stmts, sink := parseSource(t, "var; print 1;")
	if !sink.HadError {
		t.Fatalf("expected a diagnostic for the malformed var declaration")
	}
	if len(stmts) != 1 {
		t.Fatalf("expected the print statement after the error to still parse, got %d statements", len(stmts))
	}
	if _, ok := stmts[0].(*ast.Print); !ok {
		t.Errorf("got %T, want *ast.Print", stmts[0])
	}
}
