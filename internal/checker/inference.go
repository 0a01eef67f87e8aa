package checker

import (
	"github.com/Emir2099/Ardent-sub000/internal/ast"
	"github.com/Emir2099/Ardent-sub000/internal/token"
	"github.com/Emir2099/Ardent-sub000/internal/types"
)

// The Visit* methods below implement ast.Visitor's expression half: each
// sets c.result to the node's inferred type. Callers use c.infer(expr)
// rather than expr.Accept(c) directly so the result is also written back
// onto the node's TypeInfo.

func (c *Checker) VisitNumberLiteral(n *ast.NumberLiteral) { c.result = types.Simple(types.Whole) }
func (c *Checker) VisitPhraseLiteral(n *ast.PhraseLiteral) { c.result = types.Simple(types.Phrase) }
func (c *Checker) VisitTruthLiteral(n *ast.TruthLiteral)   { c.result = types.Simple(types.Truth) }

func (c *Checker) VisitIdentifier(n *ast.Identifier) {
	if t, ok := c.scope.lookup(n.Name); ok {
		c.result = t
		return
	}
	c.Diags.Errorf(n.Line(), "undeclared name %q", n.Name)
	c.result = types.Simple(types.Unknown)
}

func (c *Checker) VisitBinary(n *ast.Binary) {
	left := c.infer(n.Left)
	right := c.infer(n.Right)
	switch n.Op {
	case token.AND, token.OR:
		if !isTruthy(left) || !isTruthy(right) {
			c.Diags.Warnf(n.Line(), "operand of %q is not of type truth", n.Op)
		}
		c.result = types.Simple(types.Truth)
	case token.EQ, token.NOT_EQ:
		c.result = types.Simple(types.Truth)
	case token.GT, token.LT:
		if !isNumericish(left) || !isNumericish(right) {
			c.Diags.TypeErrorf(n.Line(), "comparison %q requires whole operands, found %s and %s", n.Op, left, right)
		}
		c.result = types.Simple(types.Truth)
	case token.PLUS:
		switch {
		case left.Kind == types.Phrase || right.Kind == types.Phrase:
			c.result = types.Simple(types.Phrase)
		case isNumericish(left) && isNumericish(right):
			c.result = types.Simple(types.Whole)
		default:
			c.Diags.TypeErrorf(n.Line(), "cannot add %s and %s", left, right)
			c.result = types.Simple(types.Unknown)
		}
	case token.MINUS, token.STAR, token.SLASH, token.PERCENT:
		if !isNumericish(left) || !isNumericish(right) {
			c.Diags.TypeErrorf(n.Line(), "arithmetic operator %q requires whole operands, found %s and %s", n.Op, left, right)
		}
		if n.Op == token.SLASH || n.Op == token.PERCENT {
			if lit, ok := n.Right.(*ast.NumberLiteral); ok && lit.Value == 0 {
				c.Diags.Warnf(n.Line(), "division by literal zero")
			}
		}
		c.result = types.Simple(types.Whole)
	default:
		c.result = types.Simple(types.Unknown)
	}
}

func (c *Checker) VisitUnary(n *ast.Unary) {
	operand := c.infer(n.Operand)
	if n.Op == token.NOT && !isTruthy(operand) {
		c.Diags.Warnf(n.Line(), "operand of \"not\" is not of type truth")
	}
	c.result = types.Simple(types.Truth)
}

func (c *Checker) VisitCast(n *ast.Cast) {
	c.infer(n.Operand)
	switch n.Target {
	case ast.CastToNumber:
		c.result = types.Simple(types.Whole)
	case ast.CastToPhrase:
		c.result = types.Simple(types.Phrase)
	case ast.CastToTruth:
		c.result = types.Simple(types.Truth)
	default:
		c.result = types.Simple(types.Unknown)
	}
}

func (c *Checker) VisitArrayLiteral(n *ast.ArrayLiteral) {
	elemTypes := make([]types.Type, len(n.Elements))
	for i, e := range n.Elements {
		elemTypes[i] = c.infer(e)
	}
	c.result = types.NewOrder(types.UnifyAll(elemTypes))
}

func (c *Checker) VisitMapLiteral(n *ast.MapLiteral) {
	valTypes := make([]types.Type, len(n.Entries))
	for i, en := range n.Entries {
		valTypes[i] = c.infer(en.Value)
	}
	c.result = types.NewTome(types.Simple(types.Phrase), types.UnifyAll(valTypes))
}

func (c *Checker) VisitIndex(n *ast.Index) {
	target := c.infer(n.Target)
	key := c.infer(n.Key)
	switch target.Kind {
	case types.Order:
		if !isNumericish(key) {
			c.Diags.TypeErrorf(n.Line(), "order index must be of type whole, found %s", key)
		}
		c.result = target.Elem()
	case types.Tome:
		if key.Kind != types.Phrase && key.Kind != types.Unknown && key.Kind != types.Any {
			c.Diags.TypeErrorf(n.Line(), "tome key must be of type phrase, found %s", key)
		}
		c.result = target.Value()
	case types.Unknown, types.Any:
		c.result = types.Simple(types.Unknown)
	default:
		c.Diags.TypeErrorf(n.Line(), "cannot index a value of type %s", target)
		c.result = types.Simple(types.Unknown)
	}
}

func (c *Checker) VisitSpellInvocation(n *ast.SpellInvocation) {
	argTypes := make([]types.Type, len(n.Args))
	for i, a := range n.Args {
		argTypes[i] = c.infer(a)
	}
	sig, ok := c.spells[n.Name]
	if !ok {
		if ret, ok2 := builtinSpellType(n.Name); ok2 {
			c.result = ret
			return
		}
		c.Diags.Errorf(n.Line(), "call to undeclared spell %q", n.Name)
		c.result = types.Simple(types.Unknown)
		return
	}
	if len(sig.Params) != len(argTypes) {
		c.Diags.Errorf(n.Line(), "spell %q expects %d argument(s), found %d", n.Name, len(sig.Params), len(argTypes))
	}
	for i := 0; i < len(sig.Params) && i < len(argTypes); i++ {
		if !types.AssignableFrom(sig.Params[i], argTypes[i]) {
			c.Diags.TypeErrorf(n.Line(), "spell %q argument %d expects %s, found %s", n.Name, i+1, sig.Params[i], argTypes[i])
		}
	}
	if sig.HasReturn {
		c.result = sig.Return
	} else {
		c.result = types.Simple(types.Void)
	}
}

// knownNatives gives precise signatures for the spirits every Ardent
// runtime registers by default (§6); unrecognized names are treated as
// host-provided and left untyped.
var knownNatives = map[string]struct {
	Args []types.Kind
	Ret  types.Kind
}{
	"math.add":    {Args: []types.Kind{types.Whole, types.Whole}, Ret: types.Whole},
	"math.divide": {Args: []types.Kind{types.Whole, types.Whole}, Ret: types.Whole},
	"system.len":  {Args: []types.Kind{types.Any}, Ret: types.Whole},
}

func (c *Checker) VisitNativeInvocation(n *ast.NativeInvocation) {
	argTypes := make([]types.Type, len(n.Args))
	for i, a := range n.Args {
		argTypes[i] = c.infer(a)
	}
	sig, ok := knownNatives[n.Name]
	if !ok {
		c.result = types.Simple(types.Unknown)
		return
	}
	if len(sig.Args) != len(argTypes) {
		c.Diags.Errorf(n.Line(), "spirit %q expects %d argument(s), found %d", n.Name, len(sig.Args), len(argTypes))
	}
	for i, k := range sig.Args {
		if k == types.Any || i >= len(argTypes) {
			continue
		}
		if !types.AssignableFrom(types.Simple(k), argTypes[i]) {
			c.Diags.TypeErrorf(n.Line(), "spirit %q argument %d expects %s, found %s", n.Name, i+1, k, argTypes[i])
		}
	}
	c.result = types.Simple(sig.Ret)
}

func isTruthy(t types.Type) bool {
	return t.Kind == types.Truth || t.Kind == types.Unknown || t.Kind == types.Any
}

func isNumericish(t types.Type) bool {
	return t.Kind == types.Whole || t.Kind == types.Unknown || t.Kind == types.Any
}
