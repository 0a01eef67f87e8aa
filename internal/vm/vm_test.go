package vm_test

import (
	"strings"
	"testing"

	"github.com/Emir2099/Ardent-sub000/internal/ast"
	"github.com/Emir2099/Ardent-sub000/internal/diagnostics"
	"github.com/Emir2099/Ardent-sub000/internal/lexer"
	"github.com/Emir2099/Ardent-sub000/internal/parser"
	"github.com/Emir2099/Ardent-sub000/internal/vm"
)

func compileSource(t *testing.T, src string) *vm.Chunk {
	t.Helper()
	diags := &diagnostics.Bag{}
	toks := lexer.New(src).All()
	p := parser.New(toks, diags)
	prog := p.ParseProgram()
	if diags.HasErrors() {
		t.Fatalf("unexpected parse errors for %q: %v", src, diags.Errors())
	}
	chunk, err := vm.NewCompiler().Compile(prog)
	if err != nil {
		t.Fatalf("unexpected compile error: %v", err)
	}
	return chunk
}

func runChunk(t *testing.T, chunk *vm.Chunk) string {
	t.Helper()
	var out strings.Builder
	machine := vm.New()
	machine.Stdout = func(s string) { out.WriteString(s); out.WriteByte('\n') }
	if err := machine.Run(chunk); err != nil {
		t.Fatalf("unexpected run error: %v", err)
	}
	return out.String()
}

func TestCompileAndRunArithmeticPrecedence(t *testing.T) {
	chunk := compileSource(t, `Let it be known x : whole is of 2
Let it be proclaimed: x + 3 * 4`)
	out := runChunk(t, chunk)
	if strings.TrimSpace(out) != "14" {
		t.Fatalf("expected %q, got %q", "14", out)
	}
}

func TestCompileAndRunPhraseConcatenation(t *testing.T) {
	chunk := compileSource(t, `Let it be proclaimed: "hello " + "world"`)
	out := runChunk(t, chunk)
	if strings.TrimSpace(out) != "hello world" {
		t.Fatalf("expected %q, got %q", "hello world", out)
	}
}

func TestCompileAndRunIfElse(t *testing.T) {
	chunk := compileSource(t, `Let it be known x : whole is of 5
Should the fates decree x is greater than 3 then { Let it be proclaimed: 1 } Else whisper { Let it be proclaimed: 0 }`)
	out := runChunk(t, chunk)
	if strings.TrimSpace(out) != "1" {
		t.Fatalf("expected %q, got %q", "1", out)
	}
}

func TestCompileAndRunForLoopAccumulates(t *testing.T) {
	chunk := compileSource(t, `Let it be known total : whole is of 0
for i from 1 to 3 by 1 ascend { total is of total + i }
Let it be proclaimed: total`)
	out := runChunk(t, chunk)
	if strings.TrimSpace(out) != "6" {
		t.Fatalf("expected %q, got %q", "6", out)
	}
}

func TestRunDivisionByZeroIsRuntimeError(t *testing.T) {
	chunk := compileSource(t, `Let it be proclaimed: 1 / 0`)
	machine := vm.New()
	if err := machine.Run(chunk); err == nil {
		t.Fatalf("expected a division-by-zero runtime error")
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	chunk := compileSource(t, `Let it be known x : whole is of 41
Let it be proclaimed: x + 1`)
	data, err := vm.Encode(chunk)
	if err != nil {
		t.Fatalf("unexpected encode error: %v", err)
	}
	decoded, err := vm.Decode(data)
	if err != nil {
		t.Fatalf("unexpected decode error: %v", err)
	}
	out := runChunk(t, decoded)
	if strings.TrimSpace(out) != "42" {
		t.Fatalf("expected %q, got %q", "42", out)
	}
}

func TestDecodeRejectsBadMagic(t *testing.T) {
	_, err := vm.Decode([]byte("not-a-chunk-at-all"))
	if err == nil {
		t.Fatalf("expected a magic-mismatch error")
	}
}

func TestDecodeRejectsTruncatedFile(t *testing.T) {
	chunk := compileSource(t, `Let it be proclaimed: 1`)
	data, err := vm.Encode(chunk)
	if err != nil {
		t.Fatalf("unexpected encode error: %v", err)
	}
	_, err = vm.Decode(data[:len(data)-2])
	if err == nil {
		t.Fatalf("expected a truncation error")
	}
}

func TestCompileRejectsUnsupportedConstructs(t *testing.T) {
	_, err := vm.NewCompiler().Compile(mustParse(t, `a spell named double(n : whole) returning whole { return n + n }`))
	if err == nil {
		t.Fatalf("expected the bytecode backend to refuse spell definitions")
	}
	if !strings.Contains(err.Error(), "spell") {
		t.Fatalf("expected the error to name spells, got %v", err)
	}
}

func mustParse(t *testing.T, src string) *ast.Program {
	t.Helper()
	diags := &diagnostics.Bag{}
	toks := lexer.New(src).All()
	p := parser.New(toks, diags)
	prog := p.ParseProgram()
	if diags.HasErrors() {
		t.Fatalf("unexpected parse errors for %q: %v", src, diags.Errors())
	}
	return prog
}
