// Package checker implements the two-pass type inference and checking of
// §4.5: an inference pass that annotates every AST node's InferredType,
// and a checker pass that validates assignability, spell-call arity, and
// (in strict/AOT mode) totality of declared types and deterministic
// spell returns.
package checker

import (
	"github.com/Emir2099/Ardent-sub000/internal/ast"
	"github.com/Emir2099/Ardent-sub000/internal/diagnostics"
	"github.com/Emir2099/Ardent-sub000/internal/types"
)

// scope is a lexical chain of name -> inferred/declared type.
type scope struct {
	vars   map[string]types.Type
	parent *scope
}

func newScope(parent *scope) *scope { return &scope{vars: map[string]types.Type{}, parent: parent} }

func (s *scope) lookup(name string) (types.Type, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if t, ok := cur.vars[name]; ok {
			return t, true
		}
	}
	return types.Type{}, false
}

// assignNearest widens the nearest enclosing scope's binding via
// unification, or declares it in the current scope if absent anywhere.
func (s *scope) assignNearest(name string, t types.Type) {
	for cur := s; cur != nil; cur = cur.parent {
		if existing, ok := cur.vars[name]; ok {
			u, _ := types.Unify(existing, t)
			cur.vars[name] = u
			return
		}
	}
	s.vars[name] = t
}

// spellSig is a registered spell signature.
type spellSig struct {
	Params    []types.Type
	Return    types.Type
	HasReturn bool
	Pure      bool
	Def       *ast.SpellDefinition
}

// Mode selects interpreted (lenient) vs strict (ahead-of-time) checking
// (§4.5).
type Mode int

const (
	ModeInterpret Mode = iota
	ModeStrict
)

// Checker performs the two-pass walk. Construct with New, then call Check.
type Checker struct {
	Diags  *diagnostics.Bag
	mode   Mode
	scope    *scope
	spells   map[string]spellSig
	result   types.Type // set by each Visit* expression method
	curSpell *spellSig
}

// New returns a Checker that will report into diags, in the given mode.
func New(diags *diagnostics.Bag, mode Mode) *Checker {
	return &Checker{Diags: diags, mode: mode, scope: newScope(nil), spells: map[string]spellSig{}}
}

// Check runs both passes over prog and returns whether the program may
// proceed to execution (no errors recorded) — callers should also inspect
// Diags for warnings regardless of the return value.
func (c *Checker) Check(prog *ast.Program) bool {
	c.registerSignatures(prog.Statements)
	for _, s := range prog.Statements {
		c.checkStmt(s)
	}
	return !c.Diags.HasErrors()
}

// registerSignatures is inference pass sub-pass 1: register every spell's
// signature before walking any body, so forward/mutual calls resolve.
func (c *Checker) registerSignatures(stmts []ast.Statement) {
	for _, s := range stmts {
		def, ok := s.(*ast.SpellDefinition)
		if !ok {
			continue
		}
		params := make([]types.Type, len(def.Params))
		for i, p := range def.Params {
			if p.HasType {
				params[i] = p.Type
			} else {
				params[i] = types.Simple(types.Unknown)
			}
		}
		ret := types.Simple(types.Unknown)
		if def.HasReturn {
			ret = def.ReturnType
		}
		c.spells[def.Name] = spellSig{Params: params, Return: ret, HasReturn: def.HasReturn, Pure: isPure(def), Def: def}
	}
}

func builtinSpellType(name string) (types.Type, bool) {
	switch name {
	case "len", "count":
		return types.Simple(types.Whole), true
	case "str", "phrase":
		return types.Simple(types.Phrase), true
	case "empty":
		return types.Simple(types.Truth), true
	}
	return types.Type{}, false
}

// isPure reports whether a spell body contains no print, stream op, or
// native invocation (§4.5 strict-mode purity flag).
func isPure(def *ast.SpellDefinition) bool {
	pure := true
	var walk func(ast.Statement)
	var walkExpr func(ast.Expression)
	walkExpr = func(e ast.Expression) {
		switch n := e.(type) {
		case *ast.NativeInvocation:
			pure = false
		case *ast.Binary:
			walkExpr(n.Left)
			walkExpr(n.Right)
		case *ast.Unary:
			walkExpr(n.Operand)
		case *ast.Cast:
			walkExpr(n.Operand)
		case *ast.Index:
			walkExpr(n.Target)
			walkExpr(n.Key)
		case *ast.ArrayLiteral:
			for _, el := range n.Elements {
				walkExpr(el)
			}
		case *ast.MapLiteral:
			for _, en := range n.Entries {
				walkExpr(en.Value)
			}
		case *ast.SpellInvocation:
			for _, a := range n.Args {
				walkExpr(a)
			}
		}
	}
	walk = func(s ast.Statement) {
		switch n := s.(type) {
		case *ast.Print:
			pure = false
		case *ast.Block:
			for _, st := range n.Statements {
				walk(st)
			}
		case *ast.If:
			walkExpr(n.Condition)
			walk(n.Then)
			if n.Else != nil {
				walk(n.Else)
			}
		case *ast.WhileLoop:
			walkExpr(n.Condition)
			walk(n.Body)
		case *ast.ForLoop:
			walk(n.Body)
		case *ast.DoWhileLoop:
			walk(n.Body)
		case *ast.Return:
			if n.Value != nil {
				walkExpr(n.Value)
			}
		case *ast.VarDecl:
			walkExpr(n.Initializer)
		case *ast.Assignment:
			walkExpr(n.Value)
		case *ast.ExpressionStatement:
			walkExpr(n.Expr)
		case *ast.TryCatchFinally:
			walk(n.TryBlock)
			if n.CatchBlock != nil {
				walk(n.CatchBlock)
			}
			if n.FinallyBlock != nil {
				walk(n.FinallyBlock)
			}
		}
	}
	walk(def.Body)
	return pure
}

// infer runs the inference visitor over e and returns (and stores on the
// node) its inferred type.
func (c *Checker) infer(e ast.Expression) types.Type {
	e.Accept(c)
	e.Info().InferredType = c.result
	return c.result
}

