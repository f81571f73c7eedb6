package interp_test

import (
	"bytes"
	"strings"
	"testing"

	diag "github.com/golox-lang/golox/internal/errors"
	"github.com/golox-lang/golox/internal/interp"
	"github.com/golox-lang/golox/internal/lexer"
	"github.com/golox-lang/golox/internal/parser"
	"github.com/golox-lang/golox/internal/resolver"
)

// run executes src through the full scan/parse/resolve/interpret pipeline
// and returns everything `print` wrote plus the diagnostic flags, mirroring
// how the CLI and the embeddable package drive the same pipeline.
func run(t *testing.T, src string) (string, *diag.Sink) {
	t.Helper()
	var out, diagOut bytes.Buffer
	sink := diag.New(&diagOut)

	tokens := lexer.New(src, sink).ScanTokens()
	stmts := parser.New(tokens, sink).Parse()
	if sink.HadError {
		return out.String(), sink
	}

	it := interp.New(sink, &out)
	resolver.New(it, sink).Resolve(stmts)
	if sink.HadError {
		return out.String(), sink
	}

	it.Interpret(stmts)
	return out.String(), sink
}

func TestArithmeticAndPrecedence(t *testing.T) {
	out, sink := run(t, `print 1 + 2 * 3;`)
	if sink.HadError || sink.HadRuntimeError {
		t.Fatalf("unexpected error, output: %q", out)
	}
	if strings.TrimSpace(out) != "7" {
		t.Errorf("got %q, want 7", out)
	}
}

func TestStringConcatenation(t *testing.T) {
	out, sink := run(t, `print "foo" + "bar";`)
	if sink.HadError || sink.HadRuntimeError {
		t.Fatalf("unexpected error")
	}
	if strings.TrimSpace(out) != "foobar" {
		t.Errorf("got %q, want foobar", out)
	}
}

func TestTruthinessAndLogicalOperators(t *testing.T) {
	out, sink := run(t, `print nil or "default"; print false and "unreached";`)
	if sink.HadError || sink.HadRuntimeError {
		t.Fatalf("unexpected error")
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if lines[0] != "default" {
		t.Errorf("got %q, want default", lines[0])
	}
	if lines[1] != "false" {
		t.Errorf("got %q, want false", lines[1])
	}
}

func TestTernaryAndCommaOperators(t *testing.T) {
	out, sink := run(t, `print true ? "yes" : "no"; print (1, 2, 3);`)
	if sink.HadError || sink.HadRuntimeError {
		t.Fatalf("unexpected error")
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if lines[0] != "yes" {
		t.Errorf("got %q, want yes", lines[0])
	}
	if lines[1] != "3" {
		t.Errorf("got %q, want 3 (comma discards everything but the last value)", lines[1])
	}
}

func TestClosures(t *testing.T) {
	out, sink := run(t, `
		fun makeCounter() {
			var count = 0;
			fun counter() {
				count = count + 1;
				return count;
			}
			return counter;
		}
		var counter = makeCounter();
		print counter();
		print counter();
		print counter();
	`)
	if sink.HadError || sink.HadRuntimeError {
		t.Fatalf("unexpected error")
	}
	if strings.TrimSpace(out) != "1\n2\n3" {
		t.Errorf("got %q, want 1\\n2\\n3", out)
	}
}

func TestWhileBreakAndContinue(t *testing.T) {
	out, sink := run(t, `
		var i = 0;
		while (true) {
			i = i + 1;
			if (i == 2) continue;
			if (i > 4) break;
			print i;
		}
	`)
	if sink.HadError || sink.HadRuntimeError {
		t.Fatalf("unexpected error")
	}
	if strings.TrimSpace(out) != "1\n3\n4" {
		t.Errorf("got %q, want 1\\n3\\n4", out)
	}
}

func TestForLoopContinueStillRunsIncrement(t *testing.T) {
	out, sink := run(t, `
		for (var i = 0; i < 5; i = i + 1) {
			if (i == 2) continue;
			print i;
		}
	`)
	if sink.HadError || sink.HadRuntimeError {
		t.Fatalf("unexpected error")
	}
	if strings.TrimSpace(out) != "0\n1\n3\n4" {
		t.Errorf("got %q, want 0\\n1\\n3\\n4 (2 skipped, loop still terminates)", out)
	}
}

func TestClassesFieldsAndMethods(t *testing.T) {
	out, sink := run(t, `
		class Point {
			init(x, y) {
				this.x = x;
				this.y = y;
			}
			sum() {
				return this.x + this.y;
			}
		}
		var p = Point(3, 4);
		print p.sum();
	`)
	if sink.HadError || sink.HadRuntimeError {
		t.Fatalf("unexpected error")
	}
	if strings.TrimSpace(out) != "7" {
		t.Errorf("got %q, want 7", out)
	}
}

func TestInstanceStringification(t *testing.T) {
	out, sink := run(t, `
		class Point {}
		print Point();
	`)
	if sink.HadError || sink.HadRuntimeError {
		t.Fatalf("unexpected error")
	}
	if strings.TrimSpace(out) != "<Point instance>" {
		t.Errorf("got %q, want \"<Point instance>\"", out)
	}
}

func TestInheritanceAndSuper(t *testing.T) {
	out, sink := run(t, `
		class Animal {
			speak() {
				return "...";
			}
		}
		class Dog < Animal {
			speak() {
				return super.speak() + " Woof";
			}
		}
		print Dog().speak();
	`)
	if sink.HadError || sink.HadRuntimeError {
		t.Fatalf("unexpected error")
	}
	if strings.TrimSpace(out) != "... Woof" {
		t.Errorf("got %q, want \"... Woof\"", out)
	}
}

func TestUndefinedVariableIsRuntimeError(t *testing.T) {
	_, sink := run(t, `print nope;`)
	if !sink.HadRuntimeError {
		t.Fatalf("expected a runtime error for an undefined variable")
	}
}

func TestDivisionByZeroIsRuntimeError(t *testing.T) {
	_, sink := run(t, `print 1 / 0;`)
	if !sink.HadRuntimeError {
		t.Fatalf("expected a runtime error for division by zero")
	}
}

func TestReturnFromTopLevelIsResolverError(t *testing.T) {
	_, sink := run(t, `return 1;`)
	if !sink.HadError {
		t.Fatalf("expected a resolver error for top-level return")
	}
}

func TestNestedClosureKeepsCapturedLocalAfterReturn(t *testing.T) {
	// add closes over make's local `n`, a copy of makeAdders' `i`; the
	// binding stays reachable after both enclosing calls have returned.
	out, sink := run(t, `
		var fns = nil;
		var capture;
		fun makeAdders() {
			var adders = nil;
			var i = 0;
			fun make() {
				var n = i;
				fun add(x) { return x + n; }
				return add;
			}
			return make;
		}
		var make = makeAdders();
		var a = make();
		print a(10);
	`)
	if sink.HadError || sink.HadRuntimeError {
		t.Fatalf("unexpected error")
	}
	if strings.TrimSpace(out) != "10" {
		t.Errorf("got %q, want 10", out)
	}
}

func TestStringComparisonIsLexicographic(t *testing.T) {
	out, sink := run(t, `print "apple" < "banana"; print "banana" < "apple";`)
	if sink.HadError || sink.HadRuntimeError {
		t.Fatalf("unexpected error")
	}
	if strings.TrimSpace(out) != "true\nfalse" {
		t.Errorf("got %q, want true\\nfalse", out)
	}
}

func TestNilComparesAsLeastAgainstAnyOtherValue(t *testing.T) {
	out, sink := run(t, `print nil < 1; print 1 > nil; print nil <= "x"; print nil >= "x";`)
	if sink.HadError || sink.HadRuntimeError {
		t.Fatalf("unexpected error")
	}
	if strings.TrimSpace(out) != "true\ntrue\ntrue\nfalse" {
		t.Errorf("got %q, want true\\ntrue\\ntrue\\nfalse", out)
	}
}

func TestStringifyBuiltinMatchesPrintForm(t *testing.T) {
	out, sink := run(t, `print stringify(1.0); print stringify(nil); print stringify(true);`)
	if sink.HadError || sink.HadRuntimeError {
		t.Fatalf("unexpected error")
	}
	if strings.TrimSpace(out) != "1\nnil\ntrue" {
		t.Errorf("got %q, want 1\\nnil\\ntrue", out)
	}
}

func TestClockBuiltinReturnsANumber(t *testing.T) {
	out, sink := run(t, `print clock() > 0;`)
	if sink.HadError || sink.HadRuntimeError {
		t.Fatalf("unexpected error")
	}
	if strings.TrimSpace(out) != "true" {
		t.Errorf("got %q, want true", out)
	}
}
