// Package interpreter implements the tree-walking evaluator of §4.6: a
// lexical scope stack over arena-interned values, curse propagation
// through try/catch/finally, spell invocation, the collection rites, and
// per-line arena marks for a REPL (BeginLine/DiscardLine). Values are not
// promoted out of a discarded line.
package interpreter

import (
	"fmt"
	"io"

	"github.com/Emir2099/Ardent-sub000/internal/arena"
	"github.com/Emir2099/Ardent-sub000/internal/ast"
	"github.com/Emir2099/Ardent-sub000/internal/diagnostics"
)

// NativeResolver invokes a host-registered spirit by name (§6); the
// concrete implementation lives in internal/natives and is wired in by
// internal/runner, keeping this package free of that dependency.
type NativeResolver interface {
	Invoke(name string, args []Value, line int) (Value, *Curse)
}

// ModuleLoader resolves a scroll path to its parsed program, for "From the
// scroll of" and "Unfurl the scroll" (§6). The concrete implementation
// lives in internal/runner.
type ModuleLoader interface {
	Load(path string) (*ast.Program, error)
}

// Interpreter walks a *ast.Program, implementing ast.Visitor. Expression
// visits set val (and sig on a raised curse); statement visits set sig to
// the control signal produced by executing that statement, or nil.
type Interpreter struct {
	Arena   *arena.Arena
	Stdout  io.Writer
	Diags   *diagnostics.Bag
	Natives NativeResolver
	Loader  ModuleLoader

	// QuietAssign suppresses the verbose "NAME is now VALUE" echo after
	// every declaration/assignment (§9 OQ1); true is the CLI default.
	QuietAssign bool

	global *Scope
	scope  *Scope
	spells map[string]*ast.SpellDefinition

	val Value
	sig error
}

// New returns an Interpreter ready to Run a program. natives and loader
// may be nil; native invocations and imports then raise a curse instead
// of panicking.
func New(natives NativeResolver, loader ModuleLoader, stdout io.Writer, diags *diagnostics.Bag) *Interpreter {
	g := newScope(nil)
	return &Interpreter{
		Arena:       arena.New(),
		Stdout:      stdout,
		Diags:       diags,
		Natives:     natives,
		Loader:      loader,
		QuietAssign: true,
		global:      g,
		scope:       g,
		spells:      map[string]*ast.SpellDefinition{},
	}
}

// BeginLine marks the arena position before evaluating one REPL line; pass
// the returned Frame to DiscardLine to roll the line's allocations back
// (e.g. after a parse error on that line) without touching prior lines.
func (in *Interpreter) BeginLine() arena.Frame { return in.Arena.PushFrame() }

// DiscardLine rewinds the arena to f, reclaiming everything the most
// recent line allocated.
func (in *Interpreter) DiscardLine(f arena.Frame) { in.Arena.PopFrame(f) }

func (in *Interpreter) registerSpells(stmts []ast.Statement) {
	for _, s := range stmts {
		if def, ok := s.(*ast.SpellDefinition); ok {
			in.spells[def.Name] = def
		}
	}
}

// Run registers every spell definition, then executes the program's
// top-level statements in order against the global scope. An uncaught
// curse is recorded into Diags and returned.
func (in *Interpreter) Run(prog *ast.Program) error {
	in.registerSpells(prog.Statements)
	in.scope = in.global
	for _, s := range prog.Statements {
		if _, ok := s.(*ast.SpellDefinition); ok {
			continue
		}
		if err := in.exec(s); err != nil {
			switch sig := err.(type) {
			case *Curse:
				in.Diags.Errorf(sig.Line, "%s", sig.Phrase())
				return sig
			case *returnSignal:
				return nil
			default:
				return err
			}
		}
	}
	return nil
}

// eval runs the inference-style visitor over e, returning its value and
// any signal raised while computing it.
func (in *Interpreter) eval(e ast.Expression) (Value, error) {
	in.sig = nil
	e.Accept(in)
	return in.val, in.sig
}

// exec runs s, returning the control signal it produced (nil for
// ordinary completion).
func (in *Interpreter) exec(s ast.Statement) error {
	in.sig = nil
	s.Accept(in)
	return in.sig
}

func (in *Interpreter) announce(name string, v Value) {
	if in.QuietAssign || in.Stdout == nil {
		return
	}
	fmt.Fprintf(in.Stdout, "%s is now %s\n", name, v.Display())
}
