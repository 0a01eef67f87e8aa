package checker

import (
	"github.com/Emir2099/Ardent-sub000/internal/ast"
	"github.com/Emir2099/Ardent-sub000/internal/types"
)

// checkStmt dispatches s through the Visitor so statement checking shares
// the same Accept plumbing as expression inference.
func (c *Checker) checkStmt(s ast.Statement) { s.Accept(c) }

func (c *Checker) pushScope() { c.scope = newScope(c.scope) }
func (c *Checker) popScope()  { c.scope = c.scope.parent }

func (c *Checker) VisitBlock(n *ast.Block) {
	c.pushScope()
	defer c.popScope()
	for _, s := range n.Statements {
		c.checkStmt(s)
	}
}

func (c *Checker) VisitExpressionStatement(n *ast.ExpressionStatement) { c.infer(n.Expr) }

func (c *Checker) VisitVarDecl(n *ast.VarDecl) {
	initType := c.infer(n.Initializer)
	final := initType
	if n.HasType {
		if !types.AssignableFrom(n.DeclType, initType) {
			c.Diags.TypeErrorf(n.Line(), "cannot assign %s to %q declared as %s", initType, n.Name, n.DeclType)
		}
		final = n.DeclType
	}
	if c.mode == ModeStrict && final.Kind == types.Unknown {
		c.Diags.Errorf(n.Line(), "strict mode: declaration of %q has an unresolved type; add a rune", n.Name)
	}
	c.scope.vars[n.Name] = final
}

func (c *Checker) VisitAssignment(n *ast.Assignment) {
	valType := c.infer(n.Value)
	existing, ok := c.scope.lookup(n.Name)
	if !ok {
		c.Diags.Errorf(n.Line(), "assignment to undeclared name %q", n.Name)
		c.scope.vars[n.Name] = valType
		return
	}
	if !types.AssignableFrom(existing, valType) {
		c.Diags.TypeErrorf(n.Line(), "cannot assign %s to %q declared as %s", valType, n.Name, existing)
	}
	c.scope.assignNearest(n.Name, valType)
}

func (c *Checker) VisitIf(n *ast.If) {
	cond := c.infer(n.Condition)
	if !isTruthy(cond) {
		c.Diags.Warnf(n.Condition.Line(), "condition is not of type truth")
	}
	c.checkStmt(n.Then)
	if n.Else != nil {
		c.checkStmt(n.Else)
	}
}

func (c *Checker) VisitPrint(n *ast.Print) { c.infer(n.Value) }

func (c *Checker) VisitImportAll(n *ast.ImportAll)             {}
func (c *Checker) VisitImportSelective(n *ast.ImportSelective) {}
func (c *Checker) VisitInlineInclude(n *ast.InlineInclude)     {}

func (c *Checker) VisitTryCatchFinally(n *ast.TryCatchFinally) {
	c.checkStmt(n.TryBlock)
	if n.CatchBlock != nil {
		c.pushScope()
		c.scope.vars[n.CatchVar] = types.Simple(types.Phrase)
		for _, s := range n.CatchBlock.Statements {
			c.checkStmt(s)
		}
		c.popScope()
	}
	if n.FinallyBlock != nil {
		c.checkStmt(n.FinallyBlock)
	}
}

func (c *Checker) VisitForLoop(n *ast.ForLoop) {
	init := c.infer(n.Init)
	limit := c.infer(n.Limit)
	step := c.infer(n.Step)
	if !isNumericish(init) || !isNumericish(limit) || !isNumericish(step) {
		c.Diags.TypeErrorf(n.Line(), "for loop bounds must be of type whole")
	}
	c.pushScope()
	c.scope.vars[n.Var] = types.Simple(types.Whole)
	for _, s := range n.Body.Statements {
		c.checkStmt(s)
	}
	c.popScope()
}

func (c *Checker) VisitWhileLoop(n *ast.WhileLoop) {
	cond := c.infer(n.Condition)
	if !isTruthy(cond) {
		c.Diags.Warnf(n.Condition.Line(), "condition is not of type truth")
	}
	c.checkStmt(n.Body)
}

func (c *Checker) VisitDoWhileLoop(n *ast.DoWhileLoop) {
	c.checkStmt(n.Body)
	if n.HasUpdate {
		if _, ok := c.scope.lookup(n.UpdateVar); !ok {
			c.Diags.Errorf(n.Line(), "do-while update clause references undeclared name %q", n.UpdateVar)
		}
		c.infer(n.Step)
	}
	cond := c.infer(n.Condition)
	if !isTruthy(cond) {
		c.Diags.Warnf(n.Condition.Line(), "condition is not of type truth")
	}
}

func (c *Checker) VisitSpellDefinition(n *ast.SpellDefinition) {
	sig := c.spells[n.Name]
	prevSpell := c.curSpell
	c.curSpell = &sig
	c.pushScope()
	for i, p := range n.Params {
		if p.HasType {
			c.scope.vars[p.Name] = p.Type
		} else {
			c.scope.vars[p.Name] = sig.Params[i]
		}
	}
	for _, s := range n.Body.Statements {
		c.checkStmt(s)
	}
	c.popScope()
	c.curSpell = prevSpell

	if c.mode == ModeStrict && n.HasReturn && n.ReturnType.Kind != types.Void {
		if !deterministicReturn(n.Body) {
			c.Diags.Errorf(n.Line(), "strict mode: spell %q does not return a value on every path", n.Name)
		}
	}
}

func (c *Checker) VisitReturn(n *ast.Return) {
	if n.Value == nil {
		if c.curSpell != nil && c.curSpell.HasReturn && c.curSpell.Return.Kind != types.Void {
			c.Diags.Errorf(n.Line(), "spell %q must return a value", c.curSpellName())
		}
		return
	}
	valType := c.infer(n.Value)
	if c.curSpell != nil && c.curSpell.HasReturn {
		if !types.AssignableFrom(c.curSpell.Return, valType) {
			c.Diags.TypeErrorf(n.Line(), "return value %s does not match declared return type %s", valType, c.curSpell.Return)
		}
	}
}

func (c *Checker) curSpellName() string {
	if c.curSpell == nil || c.curSpell.Def == nil {
		return "?"
	}
	return c.curSpell.Def.Name
}

func (c *Checker) VisitCollectionRite(n *ast.CollectionRite) {
	target, ok := c.scope.lookup(n.Target)
	if !ok {
		c.Diags.Errorf(n.Line(), "rite on undeclared collection %q", n.Target)
		return
	}
	var keyType, valType types.Type
	if n.Key != nil {
		keyType = c.infer(n.Key)
	}
	if n.Value != nil {
		valType = c.infer(n.Value)
	}
	switch n.Kind {
	case ast.RiteArrayAppend:
		if target.Kind != types.Order && target.Kind != types.Unknown {
			c.Diags.TypeErrorf(n.Line(), "expand requires an order, found %s", target)
			return
		}
		if target.Kind == types.Order && !types.AssignableFrom(target.Elem(), valType) {
			c.Diags.TypeErrorf(n.Line(), "cannot expand %s with a value of type %s", target, valType)
		}
	case ast.RiteArrayRemove:
		if target.Kind != types.Order && target.Kind != types.Unknown {
			c.Diags.TypeErrorf(n.Line(), "remove requires an order, found %s", target)
			return
		}
		if !isNumericish(keyType) {
			c.Diags.TypeErrorf(n.Line(), "remove index must be of type whole, found %s", keyType)
		}
	case ast.RiteMapAssign:
		if target.Kind != types.Tome && target.Kind != types.Unknown {
			c.Diags.TypeErrorf(n.Line(), "amend requires a tome, found %s", target)
			return
		}
		if target.Kind == types.Tome {
			if !types.AssignableFrom(target.Key(), keyType) {
				c.Diags.TypeErrorf(n.Line(), "tome key must be of type %s, found %s", target.Key(), keyType)
			}
			if !types.AssignableFrom(target.Value(), valType) {
				c.Diags.TypeErrorf(n.Line(), "cannot amend %s with a value of type %s", target, valType)
			}
		}
	case ast.RiteMapErase:
		if target.Kind != types.Tome && target.Kind != types.Unknown {
			c.Diags.TypeErrorf(n.Line(), "erase requires a tome, found %s", target)
			return
		}
		if target.Kind == types.Tome && !types.AssignableFrom(target.Key(), keyType) {
			c.Diags.TypeErrorf(n.Line(), "tome key must be of type %s, found %s", target.Key(), keyType)
		}
	}
}

// deterministicReturn is the strict-mode structural walk of §4.5: it
// reports whether every path through s is guaranteed to hit a Return.
func deterministicReturn(s ast.Statement) bool {
	switch n := s.(type) {
	case *ast.Return:
		return true
	case *ast.Block:
		for _, st := range n.Statements {
			if deterministicReturn(st) {
				return true
			}
		}
		return false
	case *ast.If:
		if n.Else == nil {
			return false
		}
		return deterministicReturn(n.Then) && deterministicReturn(n.Else)
	case *ast.TryCatchFinally:
		if n.FinallyBlock != nil && deterministicReturn(n.FinallyBlock) {
			return true
		}
		tryOK := deterministicReturn(n.TryBlock)
		catchOK := n.CatchBlock == nil || deterministicReturn(n.CatchBlock)
		return tryOK && catchOK
	default:
		return false
	}
}
