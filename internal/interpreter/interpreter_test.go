package interpreter_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/Emir2099/Ardent-sub000/internal/diagnostics"
	"github.com/Emir2099/Ardent-sub000/internal/interpreter"
	"github.com/Emir2099/Ardent-sub000/internal/lexer"
	"github.com/Emir2099/Ardent-sub000/internal/parser"
)

func run(t *testing.T, src string) (string, error) {
	t.Helper()
	diags := &diagnostics.Bag{}
	toks := lexer.New(src).All()
	p := parser.New(toks, diags)
	prog := p.ParseProgram()
	if diags.HasErrors() {
		t.Fatalf("unexpected parse errors for %q: %v", src, diags.Errors())
	}
	var out bytes.Buffer
	in := interpreter.New(nil, nil, &out, diags)
	err := in.Run(prog)
	return out.String(), err
}

func TestInterpreterPrintsArithmetic(t *testing.T) {
	out, err := run(t, `Let it be proclaimed: 2 + 3 * 4`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(out) != "14" {
		t.Fatalf("expected %q, got %q", "14", out)
	}
}

func TestInterpreterPhraseConcatenation(t *testing.T) {
	out, err := run(t, `Let it be proclaimed: "hello " + "world"`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(out) != "hello world" {
		t.Fatalf("expected %q, got %q", "hello world", out)
	}
}

func TestInterpreterDivisionByZeroCurse(t *testing.T) {
	_, err := run(t, `Let it be known x : whole is of 1 / 0`)
	if err == nil {
		t.Fatalf("expected a division-by-zero curse")
	}
}

func TestInterpreterTryCatchRecoversCurse(t *testing.T) {
	src := `Try: { Let it be known x : whole is of 1 / 0 } Catch the curse as msg: { Let it be proclaimed: msg }`
	out, err := run(t, src)
	if err != nil {
		t.Fatalf("caught curse should not escape Run: %v", err)
	}
	if !strings.Contains(out, "division by zero") {
		t.Fatalf("expected the curse message to reach the catch block, got %q", out)
	}
	if !strings.HasPrefix(strings.TrimSpace(out), "A curse was cast:") {
		t.Fatalf("expected the caught curse's phrase form to carry the %q prefix, got %q", "A curse was cast:", out)
	}
}

func TestInterpreterUncaughtCurseDiagnosticHasPrefix(t *testing.T) {
	diags := &diagnostics.Bag{}
	toks := lexer.New(`Let it be known x : whole is of 1 / 0`).All()
	p := parser.New(toks, diags)
	prog := p.ParseProgram()
	var out bytes.Buffer
	in := interpreter.New(nil, nil, &out, diags)
	if err := in.Run(prog); err == nil {
		t.Fatalf("expected an uncaught curse to be returned")
	}
	found := false
	for _, d := range diags.Errors() {
		if strings.Contains(d.Message, "A curse was cast:") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a recorded diagnostic carrying the %q prefix, got %+v", "A curse was cast:", diags.Errors())
	}
}

func TestInterpreterForLoopAccumulates(t *testing.T) {
	src := `Let it be known total : whole is of 0
for i from 1 to 3 by 1 ascend { total is of total + i }
Let it be proclaimed: total`
	out, err := run(t, src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(out) != "6" {
		t.Fatalf("expected %q, got %q", "6", out)
	}
}

func TestInterpreterSpellInvocationAndReturn(t *testing.T) {
	src := `a spell named double(n : whole) returning whole { return n + n }
Let it be proclaimed: double(21)`
	out, err := run(t, src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(out) != "42" {
		t.Fatalf("expected %q, got %q", "42", out)
	}
}

func TestInterpreterNegativeIndexing(t *testing.T) {
	src := `Let it be known xs : order[whole] is of [10 20 30]
Let it be proclaimed: xs[-1]`
	out, err := run(t, src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(out) != "30" {
		t.Fatalf("expected %q, got %q", "30", out)
	}
}

func TestInterpreterCollectionRites(t *testing.T) {
	src := `Let it be known xs : order[whole] is of [1 2 3]
expand xs with 4
remove 0 from xs
Let it be proclaimed: xs`
	out, err := run(t, src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(out) != "[2 3 4]" {
		t.Fatalf("expected %q, got %q", "[2 3 4]", out)
	}
}

func TestInterpreterConcatInsertsBoundarySpace(t *testing.T) {
	out, err := run(t, `Let it be proclaimed: "Age:" + 25`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(out) != "Age: 25" {
		t.Fatalf("expected %q, got %q", "Age: 25", out)
	}
}

func TestInterpreterConcatCollapsesExistingBoundaryWhitespace(t *testing.T) {
	out, err := run(t, `Let it be proclaimed: "Age:   " + 25`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(out) != "Age: 25" {
		t.Fatalf("expected a single collapsed boundary space, got %q", out)
	}
}

func TestInterpreterConcatSuppressesSpaceBeforePunctuation(t *testing.T) {
	out, err := run(t, `Let it be proclaimed: "Hello" + "."`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(out) != "Hello." {
		t.Fatalf("expected no boundary space before '.', got %q", out)
	}
}

func TestInterpreterOrderIndexOutOfBoundsNamesTheOrder(t *testing.T) {
	src := `Let it be known heroes : order[phrase] is of ["Aragorn" "Legolas" "Gimli"]
Let it be proclaimed: heroes[4]`
	_, err := run(t, src)
	if err == nil {
		t.Fatalf("expected a positive-overflow curse")
	}
	if !strings.Contains(err.Error(), "The council knows no element at position 4, for the order 'heroes' holds but 3.") {
		t.Fatalf("unexpected curse message: %v", err)
	}
}

func TestInterpreterOrderNegativeIndexTooFar(t *testing.T) {
	src := `Let it be known heroes : order[phrase] is of ["Aragorn" "Legolas" "Gimli"]
Let it be proclaimed: heroes[-4]`
	_, err := run(t, src)
	if err == nil {
		t.Fatalf("expected a negative-underflow curse")
	}
	if !strings.Contains(err.Error(), "None stand that far behind in the order, for only 3 dwell within.") {
		t.Fatalf("unexpected curse message: %v", err)
	}
}

func TestInterpreterCastPhraseToNumberParsesIntegerPrefix(t *testing.T) {
	out, err := run(t, `Let it be proclaimed: cast "12abc" as whole`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(out) != "12" {
		t.Fatalf("expected %q, got %q", "12", out)
	}
}

func TestInterpreterCastUnparseablePhraseToNumberDefaultsToZero(t *testing.T) {
	out, err := run(t, `Let it be proclaimed: cast "abc" as whole`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(out) != "0" {
		t.Fatalf("expected %q, got %q", "0", out)
	}
}
