package checker_test

import (
	"testing"

	"github.com/Emir2099/Ardent-sub000/internal/ast"
	"github.com/Emir2099/Ardent-sub000/internal/checker"
	"github.com/Emir2099/Ardent-sub000/internal/diagnostics"
	"github.com/Emir2099/Ardent-sub000/internal/lexer"
	"github.com/Emir2099/Ardent-sub000/internal/parser"
)

func parseProgram(t *testing.T, src string) (*ast.Program, *diagnostics.Bag) {
	t.Helper()
	diags := &diagnostics.Bag{}
	toks := lexer.New(src).All()
	p := parser.New(toks, diags)
	prog := p.ParseProgram()
	if diags.HasErrors() {
		t.Fatalf("unexpected parse errors for %q: %v", src, diags.Errors())
	}
	return prog, diags
}

func TestCheckerDeclarationAssignable(t *testing.T) {
	prog, _ := parseProgram(t, `Let it be known x : whole is of 5`)
	diags := &diagnostics.Bag{}
	c := checker.New(diags, checker.ModeInterpret)
	if !c.Check(prog) {
		t.Fatalf("expected no errors, got %v", diags.Errors())
	}
}

func TestCheckerDeclarationMismatchIsTypeError(t *testing.T) {
	prog, _ := parseProgram(t, `Let it be known x : whole is of "five"`)
	diags := &diagnostics.Bag{}
	c := checker.New(diags, checker.ModeInterpret)
	if c.Check(prog) {
		t.Fatalf("expected a type error declaring whole x from a phrase literal")
	}
	if len(diags.Errors()) != 1 {
		t.Fatalf("expected exactly one diagnostic, got %d: %v", len(diags.Errors()), diags.Errors())
	}
}

func TestCheckerUndeclaredAssignmentIsError(t *testing.T) {
	prog, _ := parseProgram(t, `y is of 5`)
	diags := &diagnostics.Bag{}
	c := checker.New(diags, checker.ModeInterpret)
	if c.Check(prog) {
		t.Fatalf("expected an error assigning to an undeclared name")
	}
}

func TestCheckerDivisionByLiteralZeroWarns(t *testing.T) {
	prog, _ := parseProgram(t, `Let it be known x : whole is of 10 / 0`)
	diags := &diagnostics.Bag{}
	c := checker.New(diags, checker.ModeInterpret)
	if !c.Check(prog) {
		t.Fatalf("division by literal zero should warn, not error: %v", diags.Errors())
	}
	if len(diags.Warnings()) == 0 {
		t.Fatalf("expected a division-by-literal-zero warning")
	}
}

func TestCheckerPhraseConcatenation(t *testing.T) {
	prog, _ := parseProgram(t, `Let it be known greeting is of "hello " + "world"`)
	diags := &diagnostics.Bag{}
	c := checker.New(diags, checker.ModeInterpret)
	if !c.Check(prog) {
		t.Fatalf("phrase concatenation should type-check cleanly: %v", diags.Errors())
	}
}

func TestCheckerArithmeticOnPhraseIsTypeError(t *testing.T) {
	prog, _ := parseProgram(t, `Let it be known x : whole is of "five" - 1`)
	diags := &diagnostics.Bag{}
	c := checker.New(diags, checker.ModeInterpret)
	if c.Check(prog) {
		t.Fatalf("subtracting from a phrase literal should be a type error")
	}
}

func TestCheckerStrictModeRequiresDeterministicReturn(t *testing.T) {
	src := `a spell named risky() returning whole { Should the fates decree 1 is equal to 1 then { return 1 } }`
	prog, _ := parseProgram(t, src)
	diags := &diagnostics.Bag{}
	c := checker.New(diags, checker.ModeStrict)
	if c.Check(prog) {
		t.Fatalf("strict mode should reject a spell with a path that falls off the end without returning")
	}
}

func TestCheckerStrictModeAcceptsIfElseReturn(t *testing.T) {
	src := `a spell named safe() returning whole { Should the fates decree 1 is equal to 1 then { return 1 } Else whisper { return 0 } }`
	prog, _ := parseProgram(t, src)
	diags := &diagnostics.Bag{}
	c := checker.New(diags, checker.ModeStrict)
	if !c.Check(prog) {
		t.Fatalf("strict mode should accept a spell that returns on both branches: %v", diags.Errors())
	}
}

func TestCheckerSpellCallArityMismatch(t *testing.T) {
	src := `a spell named double(n : whole) returning whole { return n + n } Let it be known r is of double(1, 2)`
	prog, _ := parseProgram(t, src)
	diags := &diagnostics.Bag{}
	c := checker.New(diags, checker.ModeInterpret)
	if c.Check(prog) {
		t.Fatalf("expected an arity mismatch error calling double with two arguments")
	}
}
