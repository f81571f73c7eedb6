package golox_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/golox-lang/golox/pkg/golox"
)

func TestRunPrintsOutput(t *testing.T) {
	var out, errOut bytes.Buffer
	it := golox.New(&out, &errOut)
	it.Run(`print 1 + 1;`)
	if it.HadError() || it.HadRuntimeError() {
		t.Fatalf("unexpected error: %s", errOut.String())
	}
	if strings.TrimSpace(out.String()) != "2" {
		t.Errorf("got %q, want 2", out.String())
	}
}

func TestRunLineAllowsBareExpression(t *testing.T) {
	var out, errOut bytes.Buffer
	it := golox.New(&out, &errOut)
	it.RunLine(`2 + 2`)
	if it.HadError() || it.HadRuntimeError() {
		t.Fatalf("unexpected error: %s", errOut.String())
	}
	if strings.TrimSpace(out.String()) != "4" {
		t.Errorf("got %q, want 4", out.String())
	}
}

func TestStatePersistsAcrossCalls(t *testing.T) {
	var out, errOut bytes.Buffer
	it := golox.New(&out, &errOut)
	it.Run(`var x = 10;`)
	it.Run(`print x;`)
	if it.HadError() || it.HadRuntimeError() {
		t.Fatalf("unexpected error: %s", errOut.String())
	}
	if strings.TrimSpace(out.String()) != "10" {
		t.Errorf("got %q, want 10 (globals persist across Run calls)", out.String())
	}
}

func TestErrorFlagsResetBetweenCalls(t *testing.T) {
	var out, errOut bytes.Buffer
	it := golox.New(&out, &errOut)
	it.Run(`1 +;`) // syntax error
	if !it.HadError() {
		t.Fatalf("expected a syntax error")
	}
	it.Run(`print "ok";`)
	if it.HadError() {
		t.Fatalf("error flag should have been reset by the second Run call")
	}
}

func TestDiagnosticsGoToErrOutNotOut(t *testing.T) {
	var out, errOut bytes.Buffer
	it := golox.New(&out, &errOut)
	it.Run(`print "ok"; print 1 / 0; print "unreached";`)
	if !it.HadRuntimeError() {
		t.Fatalf("expected a runtime error")
	}
	if strings.TrimSpace(out.String()) != "ok" {
		t.Errorf("stdout got %q, want only \"ok\" (the diagnostic must not land here)", out.String())
	}
	if !strings.Contains(errOut.String(), "Division by zero") {
		t.Errorf("stderr got %q, want a Division by zero diagnostic", errOut.String())
	}
}
