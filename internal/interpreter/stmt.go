package interpreter

import (
	"fmt"

	"github.com/Emir2099/Ardent-sub000/internal/ast"
	"github.com/Emir2099/Ardent-sub000/internal/types"
)

func (in *Interpreter) VisitBlock(n *ast.Block) {
	in.scope = newScope(in.scope)
	defer func() { in.scope = in.scope.parent }()
	for _, s := range n.Statements {
		if err := in.exec(s); err != nil {
			in.sig = err
			return
		}
	}
}

func (in *Interpreter) VisitExpressionStatement(n *ast.ExpressionStatement) {
	if _, err := in.eval(n.Expr); err != nil {
		in.sig = err
	}
}

func (in *Interpreter) VisitVarDecl(n *ast.VarDecl) {
	v, err := in.eval(n.Initializer)
	if err != nil {
		in.sig = err
		return
	}
	in.scope.declare(n.Name, v)
	in.announce(n.Name, v)
}

func (in *Interpreter) VisitAssignment(n *ast.Assignment) {
	v, err := in.eval(n.Value)
	if err != nil {
		in.sig = err
		return
	}
	if !in.scope.set(n.Name, v) {
		in.sig = raise(n.Line(), "assignment to unbound name %q", n.Name)
		return
	}
	in.announce(n.Name, v)
}

func (in *Interpreter) VisitIf(n *ast.If) {
	cond, err := in.eval(n.Condition)
	if err != nil {
		in.sig = err
		return
	}
	if cond.Truthy() {
		if err := in.exec(n.Then); err != nil {
			in.sig = err
		}
		return
	}
	if n.Else != nil {
		if err := in.exec(n.Else); err != nil {
			in.sig = err
		}
	}
}

func (in *Interpreter) VisitPrint(n *ast.Print) {
	v, err := in.eval(n.Value)
	if err != nil {
		in.sig = err
		return
	}
	if in.Stdout != nil {
		fmt.Fprintln(in.Stdout, v.Display())
	}
}

func (in *Interpreter) VisitImportAll(n *ast.ImportAll) {
	if in.Loader == nil {
		in.sig = raise(n.Line(), "no scroll loader is configured to draw knowledge from %q", n.Path)
		return
	}
	prog, err := in.Loader.Load(n.Path)
	if err != nil {
		in.sig = raise(n.Line(), "could not draw knowledge from %q: %v", n.Path, err)
		return
	}
	in.registerSpells(prog.Statements)
}

func (in *Interpreter) VisitImportSelective(n *ast.ImportSelective) {
	if in.Loader == nil {
		in.sig = raise(n.Line(), "no scroll loader is configured to draw knowledge from %q", n.Path)
		return
	}
	prog, err := in.Loader.Load(n.Path)
	if err != nil {
		in.sig = raise(n.Line(), "could not draw knowledge from %q: %v", n.Path, err)
		return
	}
	wanted := map[string]bool{}
	for _, name := range n.Names {
		wanted[name] = true
	}
	for _, s := range prog.Statements {
		if def, ok := s.(*ast.SpellDefinition); ok && wanted[def.Name] {
			in.spells[def.Name] = def
		}
	}
}

func (in *Interpreter) VisitInlineInclude(n *ast.InlineInclude) {
	if in.Loader == nil {
		in.sig = raise(n.Line(), "no scroll loader is configured to unfurl %q", n.Path)
		return
	}
	prog, err := in.Loader.Load(n.Path)
	if err != nil {
		in.sig = raise(n.Line(), "could not unfurl scroll %q: %v", n.Path, err)
		return
	}
	in.registerSpells(prog.Statements)
	for _, s := range prog.Statements {
		if _, ok := s.(*ast.SpellDefinition); ok {
			continue
		}
		if err := in.exec(s); err != nil {
			in.sig = err
			return
		}
	}
}

func (in *Interpreter) VisitTryCatchFinally(n *ast.TryCatchFinally) {
	result := in.exec(n.TryBlock)
	if curse, ok := result.(*Curse); ok && n.CatchBlock != nil {
		catchScope := newScope(in.scope)
		catchScope.declare(n.CatchVar, Value{Kind: types.Phrase, Str: in.Arena.NewPhrase(curse.Phrase())})
		saved := in.scope
		in.scope = catchScope
		result = in.exec(n.CatchBlock)
		in.scope = saved
	}
	if n.FinallyBlock != nil {
		if ferr := in.exec(n.FinallyBlock); ferr != nil {
			result = ferr
		}
	}
	in.sig = result
}

func (in *Interpreter) VisitForLoop(n *ast.ForLoop) {
	init, err := in.eval(n.Init)
	if err != nil {
		in.sig = err
		return
	}
	limit, err := in.eval(n.Limit)
	if err != nil {
		in.sig = err
		return
	}
	step, err := in.eval(n.Step)
	if err != nil {
		in.sig = err
		return
	}
	if step.Num == 0 {
		in.sig = raise(n.Line(), "for loop step must not be zero")
		return
	}

	loopScope := newScope(in.scope)
	savedScope := in.scope
	in.scope = loopScope
	defer func() { in.scope = savedScope }()

	cur := init.Num
	for {
		if n.Direction == ast.Ascend && cur > limit.Num {
			break
		}
		if n.Direction == ast.Descend && cur < limit.Num {
			break
		}
		loopScope.declare(n.Var, wholeValue(cur))
		if err := in.exec(n.Body); err != nil {
			in.sig = err
			return
		}
		if n.Direction == ast.Ascend {
			cur += step.Num
		} else {
			cur -= step.Num
		}
	}
}

func (in *Interpreter) VisitWhileLoop(n *ast.WhileLoop) {
	for {
		cond, err := in.eval(n.Condition)
		if err != nil {
			in.sig = err
			return
		}
		if !cond.Truthy() {
			return
		}
		if err := in.exec(n.Body); err != nil {
			in.sig = err
			return
		}
	}
}

func (in *Interpreter) VisitDoWhileLoop(n *ast.DoWhileLoop) {
	for {
		if err := in.exec(n.Body); err != nil {
			in.sig = err
			return
		}
		if n.HasUpdate {
			step, err := in.eval(n.Step)
			if err != nil {
				in.sig = err
				return
			}
			cur, ok := in.scope.get(n.UpdateVar)
			if !ok {
				in.sig = raise(n.Line(), "%q is unbound", n.UpdateVar)
				return
			}
			if n.Direction == ast.Ascend {
				cur = wholeValue(cur.Num + step.Num)
			} else {
				cur = wholeValue(cur.Num - step.Num)
			}
			if !in.scope.set(n.UpdateVar, cur) {
				in.sig = raise(n.Line(), "%q is unbound", n.UpdateVar)
				return
			}
		}
		cond, err := in.eval(n.Condition)
		if err != nil {
			in.sig = err
			return
		}
		if cond.Truthy() {
			return
		}
	}
}

func (in *Interpreter) VisitSpellDefinition(n *ast.SpellDefinition) {
	in.spells[n.Name] = n
}

func (in *Interpreter) VisitReturn(n *ast.Return) {
	if n.Value == nil {
		in.sig = &returnSignal{hasValue: false}
		return
	}
	v, err := in.eval(n.Value)
	if err != nil {
		in.sig = err
		return
	}
	in.sig = &returnSignal{value: v, hasValue: true}
}

func (in *Interpreter) VisitCollectionRite(n *ast.CollectionRite) {
	target, ok := in.scope.get(n.Target)
	if !ok {
		in.sig = raise(n.Line(), "rite on undeclared collection %q", n.Target)
		return
	}

	var key, val Value
	var err error
	if n.Key != nil {
		if key, err = in.eval(n.Key); err != nil {
			in.sig = err
			return
		}
	}
	if n.Value != nil {
		if val, err = in.eval(n.Value); err != nil {
			in.sig = err
			return
		}
	}

	switch n.Kind {
	case ast.RiteArrayAppend:
		if target.Kind != types.Order {
			in.sig = raise(n.Line(), "expand requires an order, found %s", target.Kind)
			return
		}
		target.Order.Elems = append(target.Order.Elems, val)
	case ast.RiteArrayRemove:
		if target.Kind != types.Order {
			in.sig = raise(n.Line(), "remove requires an order, found %s", target.Kind)
			return
		}
		idx := key.Num
		if idx < 0 {
			idx += int64(len(target.Order.Elems))
		}
		if idx < 0 || idx >= int64(len(target.Order.Elems)) {
			in.sig = raise(n.Line(), "index %d is out of bounds for an order of length %d", key.Num, len(target.Order.Elems))
			return
		}
		target.Order.Elems = append(target.Order.Elems[:idx], target.Order.Elems[idx+1:]...)
	case ast.RiteMapAssign:
		if target.Kind != types.Tome {
			in.sig = raise(n.Line(), "amend requires a tome, found %s", target.Kind)
			return
		}
		target.Tome.Set(in.toPhrase(key).String(), val)
	case ast.RiteMapErase:
		if target.Kind != types.Tome {
			in.sig = raise(n.Line(), "erase requires a tome, found %s", target.Kind)
			return
		}
		target.Tome.Delete(in.toPhrase(key).String())
	}
}
