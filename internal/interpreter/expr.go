package interpreter

import (
	"strconv"
	"strings"

	"github.com/Emir2099/Ardent-sub000/internal/arena"
	"github.com/Emir2099/Ardent-sub000/internal/ast"
	"github.com/Emir2099/Ardent-sub000/internal/token"
	"github.com/Emir2099/Ardent-sub000/internal/types"
)

func (in *Interpreter) VisitNumberLiteral(n *ast.NumberLiteral) { in.val = wholeValue(n.Value) }
func (in *Interpreter) VisitTruthLiteral(n *ast.TruthLiteral)   { in.val = truthValue(n.Value) }

func (in *Interpreter) VisitPhraseLiteral(n *ast.PhraseLiteral) {
	in.val = Value{Kind: types.Phrase, Str: in.Arena.NewPhrase(n.Value)}
}

func (in *Interpreter) VisitIdentifier(n *ast.Identifier) {
	v, ok := in.scope.get(n.Name)
	if !ok {
		in.sig = raise(n.Line(), "%q is unbound", n.Name)
		return
	}
	in.val = v
}

func (in *Interpreter) VisitBinary(n *ast.Binary) {
	if n.Op == token.AND {
		l, err := in.eval(n.Left)
		if err != nil {
			in.sig = err
			return
		}
		if !l.Truthy() {
			in.val = truthValue(false)
			return
		}
		r, err := in.eval(n.Right)
		if err != nil {
			in.sig = err
			return
		}
		in.val = truthValue(r.Truthy())
		return
	}
	if n.Op == token.OR {
		l, err := in.eval(n.Left)
		if err != nil {
			in.sig = err
			return
		}
		if l.Truthy() {
			in.val = truthValue(true)
			return
		}
		r, err := in.eval(n.Right)
		if err != nil {
			in.sig = err
			return
		}
		in.val = truthValue(r.Truthy())
		return
	}

	l, err := in.eval(n.Left)
	if err != nil {
		in.sig = err
		return
	}
	r, err := in.eval(n.Right)
	if err != nil {
		in.sig = err
		return
	}

	switch n.Op {
	case token.EQ:
		in.val = truthValue(valuesEqual(l, r))
	case token.NOT_EQ:
		in.val = truthValue(!valuesEqual(l, r))
	case token.GT:
		in.val = truthValue(l.Num > r.Num)
	case token.LT:
		in.val = truthValue(l.Num < r.Num)
	case token.PLUS:
		if l.Kind == types.Phrase || r.Kind == types.Phrase {
			left, right := boundaryJoin(in.toPhrase(l).String(), in.toPhrase(r).String())
			in.val = Value{Kind: types.Phrase, Str: in.Arena.Concat(in.Arena.NewPhrase(left), in.Arena.NewPhrase(right))}
		} else {
			in.val = wholeValue(l.Num + r.Num)
		}
	case token.MINUS:
		in.val = wholeValue(l.Num - r.Num)
	case token.STAR:
		in.val = wholeValue(l.Num * r.Num)
	case token.SLASH:
		if r.Num == 0 {
			in.sig = raise(n.Line(), "division by zero")
			return
		}
		in.val = wholeValue(l.Num / r.Num)
	case token.PERCENT:
		if r.Num == 0 {
			in.sig = raise(n.Line(), "division by zero")
			return
		}
		in.val = wholeValue(l.Num % r.Num)
	default:
		in.val = voidValue()
	}
}

func (in *Interpreter) VisitUnary(n *ast.Unary) {
	operand, err := in.eval(n.Operand)
	if err != nil {
		in.sig = err
		return
	}
	in.val = truthValue(!operand.Truthy())
}

func (in *Interpreter) VisitCast(n *ast.Cast) {
	operand, err := in.eval(n.Operand)
	if err != nil {
		in.sig = err
		return
	}
	switch n.Target {
	case ast.CastToNumber:
		switch operand.Kind {
		case types.Whole:
			in.val = operand
		case types.Truth:
			if operand.Bool {
				in.val = wholeValue(1)
			} else {
				in.val = wholeValue(0)
			}
		case types.Phrase:
			in.val = wholeValue(parseIntPrefix(operand.Str.String()))
		default:
			in.sig = raise(n.Line(), "cannot cast a value of type %s to whole", operand.Kind)
		}
	case ast.CastToPhrase:
		in.val = Value{Kind: types.Phrase, Str: in.Arena.NewPhrase(operand.Display())}
	case ast.CastToTruth:
		in.val = truthValue(operand.Truthy())
	}
}

func (in *Interpreter) VisitArrayLiteral(n *ast.ArrayLiteral) {
	elems := make([]Value, len(n.Elements))
	for i, e := range n.Elements {
		v, err := in.eval(e)
		if err != nil {
			in.sig = err
			return
		}
		elems[i] = v
	}
	in.val = orderValue(&Order{Elems: elems})
}

func (in *Interpreter) VisitMapLiteral(n *ast.MapLiteral) {
	t := NewTome()
	for _, en := range n.Entries {
		v, err := in.eval(en.Value)
		if err != nil {
			in.sig = err
			return
		}
		t.Set(en.Key, v)
	}
	in.val = tomeValue(t)
}

func (in *Interpreter) VisitIndex(n *ast.Index) {
	target, err := in.eval(n.Target)
	if err != nil {
		in.sig = err
		return
	}
	key, err := in.eval(n.Key)
	if err != nil {
		in.sig = err
		return
	}
	switch target.Kind {
	case types.Order:
		idx := key.Num
		if idx < 0 {
			idx += int64(len(target.Order.Elems))
		}
		if idx < 0 {
			in.sig = raise(n.Line(), "None stand that far behind in the order, for only %d dwell within.", len(target.Order.Elems))
			return
		}
		if idx >= int64(len(target.Order.Elems)) {
			in.sig = raise(n.Line(), "The council knows no element at position %d, for the order '%s' holds but %d.", key.Num, orderName(n.Target), len(target.Order.Elems))
			return
		}
		in.val = target.Order.Elems[idx]
	case types.Tome:
		v, ok := target.Tome.Get(in.toPhrase(key).String())
		if !ok {
			in.sig = raise(n.Line(), "tome has no entry for %q", in.toPhrase(key).String())
			return
		}
		in.val = v
	default:
		in.sig = raise(n.Line(), "cannot index a value of type %s", target.Kind)
	}
}

func (in *Interpreter) evalBuiltinSpell(name string, args []Value, line int) (Value, bool) {
	switch name {
	case "len", "count":
		if len(args) != 1 {
			in.sig = raise(line, "%s expects exactly one argument", name)
			return Value{}, true
		}
		switch args[0].Kind {
		case types.Order:
			return wholeValue(int64(len(args[0].Order.Elems))), true
		case types.Tome:
			return wholeValue(int64(args[0].Tome.Len())), true
		case types.Phrase:
			return wholeValue(int64(args[0].Str.Len())), true
		default:
			in.sig = raise(line, "%s is not defined for a value of type %s", name, args[0].Kind)
			return Value{}, true
		}
	case "str", "phrase":
		if len(args) != 1 {
			in.sig = raise(line, "%s expects exactly one argument", name)
			return Value{}, true
		}
		return Value{Kind: types.Phrase, Str: in.Arena.NewPhrase(args[0].Display())}, true
	case "empty":
		if len(args) != 1 {
			in.sig = raise(line, "empty expects exactly one argument")
			return Value{}, true
		}
		return truthValue(!args[0].Truthy()), true
	}
	return Value{}, false
}

func (in *Interpreter) VisitSpellInvocation(n *ast.SpellInvocation) {
	args := make([]Value, len(n.Args))
	for i, a := range n.Args {
		v, err := in.eval(a)
		if err != nil {
			in.sig = err
			return
		}
		args[i] = v
	}
	if v, handled := in.evalBuiltinSpell(n.Name, args, n.Line()); handled {
		if in.sig == nil {
			in.val = v
		}
		return
	}
	def, ok := in.spells[n.Name]
	if !ok {
		in.sig = raise(n.Line(), "call to undeclared spell %q", n.Name)
		return
	}
	if len(def.Params) != len(args) {
		in.sig = raise(n.Line(), "spell %q expects %d argument(s), found %d", n.Name, len(def.Params), len(args))
		return
	}
	callScope := newScope(in.global)
	for i, p := range def.Params {
		callScope.declare(p.Name, args[i])
	}
	savedScope := in.scope
	in.scope = callScope
	err := in.exec(def.Body)
	in.scope = savedScope
	if err != nil {
		if ret, ok := err.(*returnSignal); ok {
			if ret.hasValue {
				in.val = ret.value
			} else {
				in.val = voidValue()
			}
			return
		}
		in.sig = err
		return
	}
	in.val = voidValue()
}

func (in *Interpreter) VisitNativeInvocation(n *ast.NativeInvocation) {
	args := make([]Value, len(n.Args))
	for i, a := range n.Args {
		v, err := in.eval(a)
		if err != nil {
			in.sig = err
			return
		}
		args[i] = v
	}
	if in.Natives == nil {
		in.sig = raise(n.Line(), "no spirit registry is configured to invoke %q", n.Name)
		return
	}
	v, curse := in.Natives.Invoke(n.Name, args, n.Line())
	if curse != nil {
		in.sig = curse
		return
	}
	in.val = v
}

// parseIntPrefix parses the leading integer prefix of s (§4.6 "cast … as
// number" of a Phrase), defaulting to 0 when no digits lead the phrase at
// all — unparseable input is not a curse, just an empty prefix.
func parseIntPrefix(s string) int64 {
	i, n := 0, len(s)
	for i < n && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	start := i
	if i < n && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digitsStart := i
	for i < n && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == digitsStart {
		return 0
	}
	v, err := strconv.ParseInt(s[start:i], 10, 64)
	if err != nil {
		return 0
	}
	return v
}

// orderName recovers the scroll-visible name of an indexed order for the
// out-of-bounds curse message, falling back to a generic label when the
// indexed expression isn't a bare identifier (e.g. a spell call's result).
func orderName(target ast.Expression) string {
	if id, ok := target.(*ast.Identifier); ok {
		return id.Name
	}
	return "order"
}

// boundaryJoin applies §4.6's concatenation boundary rule: a single space
// is inserted between left and right unless right begins (after trimming
// any existing boundary whitespace) with one of , . ; : ) ] } — and any
// whitespace already present at the boundary collapses to that one space.
func boundaryJoin(left, right string) (string, string) {
	if left == "" || right == "" {
		return left, right
	}
	trimmedLeft := strings.TrimRight(left, " \t")
	trimmedRight := strings.TrimLeft(right, " \t")
	if trimmedRight != "" && strings.ContainsRune(",.;:)]}", rune(trimmedRight[0])) {
		return trimmedLeft, trimmedRight
	}
	return trimmedLeft + " ", trimmedRight
}

func (in *Interpreter) toPhrase(v Value) arena.Phrase {
	if v.Kind == types.Phrase {
		return v.Str
	}
	return in.Arena.NewPhrase(v.Display())
}

func valuesEqual(a, b Value) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case types.Whole:
		return a.Num == b.Num
	case types.Truth:
		return a.Bool == b.Bool
	case types.Phrase:
		return a.Str.String() == b.Str.String()
	case types.Order:
		if len(a.Order.Elems) != len(b.Order.Elems) {
			return false
		}
		for i := range a.Order.Elems {
			if !valuesEqual(a.Order.Elems[i], b.Order.Elems[i]) {
				return false
			}
		}
		return true
	case types.Tome:
		if a.Tome.Len() != b.Tome.Len() {
			return false
		}
		for _, k := range a.Tome.Keys() {
			av, _ := a.Tome.Get(k)
			bv, ok := b.Tome.Get(k)
			if !ok || !valuesEqual(av, bv) {
				return false
			}
		}
		return true
	default:
		return true
	}
}
