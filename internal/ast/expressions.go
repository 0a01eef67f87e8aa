package ast

import "github.com/Emir2099/Ardent-sub000/internal/token"

// NumberLiteral is a whole-number literal.
type NumberLiteral struct {
	exprBase
	Value int64
}

func NewNumberLiteral(line int, v int64) *NumberLiteral {
	return &NumberLiteral{exprBase: exprBase{base: base{line}}, Value: v}
}
func (n *NumberLiteral) Accept(v Visitor) { v.VisitNumberLiteral(n) }

// PhraseLiteral is a string literal.
type PhraseLiteral struct {
	exprBase
	Value string
}

func NewPhraseLiteral(line int, v string) *PhraseLiteral {
	return &PhraseLiteral{exprBase: exprBase{base: base{line}}, Value: v}
}
func (n *PhraseLiteral) Accept(v Visitor) { v.VisitPhraseLiteral(n) }

// TruthLiteral is a True/False literal.
type TruthLiteral struct {
	exprBase
	Value bool
}

func NewTruthLiteral(line int, v bool) *TruthLiteral {
	return &TruthLiteral{exprBase: exprBase{base: base{line}}, Value: v}
}
func (n *TruthLiteral) Accept(v Visitor) { v.VisitTruthLiteral(n) }

// Identifier references a named variable.
type Identifier struct {
	exprBase
	Name string
}

func NewIdentifier(line int, name string) *Identifier {
	return &Identifier{exprBase: exprBase{base: base{line}}, Name: name}
}
func (n *Identifier) Accept(v Visitor) { v.VisitIdentifier(n) }

// Binary is a binary expression: Left Op Right.
type Binary struct {
	exprBase
	Left  Expression
	Op    token.Type
	Right Expression
}

func NewBinary(line int, left Expression, op token.Type, right Expression) *Binary {
	return &Binary{exprBase: exprBase{base: base{line}}, Left: left, Op: op, Right: right}
}
func (n *Binary) Accept(v Visitor) { v.VisitBinary(n) }

// Unary is a unary expression: Op Operand (only "not" in Ardent).
type Unary struct {
	exprBase
	Op      token.Type
	Operand Expression
}

func NewUnary(line int, op token.Type, operand Expression) *Unary {
	return &Unary{exprBase: exprBase{base: base{line}}, Op: op, Operand: operand}
}
func (n *Unary) Accept(v Visitor) { v.VisitUnary(n) }

// CastTarget enumerates the explicit-cast destination kinds (§3).
type CastTarget int

const (
	CastToNumber CastTarget = iota
	CastToPhrase
	CastToTruth
)

// Cast is an explicit "cast X as T" expression.
type Cast struct {
	exprBase
	Operand Expression
	Target  CastTarget
}

func NewCast(line int, operand Expression, target CastTarget) *Cast {
	return &Cast{exprBase: exprBase{base: base{line}}, Operand: operand, Target: target}
}
func (n *Cast) Accept(v Visitor) { v.VisitCast(n) }

// ArrayLiteral is an order literal: [e1, e2, ...].
type ArrayLiteral struct {
	exprBase
	Elements []Expression
}

func NewArrayLiteral(line int, elems []Expression) *ArrayLiteral {
	return &ArrayLiteral{exprBase: exprBase{base: base{line}}, Elements: elems}
}
func (n *ArrayLiteral) Accept(v Visitor) { v.VisitArrayLiteral(n) }

// MapEntry is one (key, value) pair of a MapLiteral, order-preserving.
type MapEntry struct {
	Key   string
	Value Expression
}

// MapLiteral is a tome literal: an ordered sequence of string-keyed entries.
type MapLiteral struct {
	exprBase
	Entries []MapEntry
}

func NewMapLiteral(line int, entries []MapEntry) *MapLiteral {
	return &MapLiteral{exprBase: exprBase{base: base{line}}, Entries: entries}
}
func (n *MapLiteral) Accept(v Visitor) { v.VisitMapLiteral(n) }

// Index is a collection[key] access expression (read-only, never an
// assignment target: see CollectionRite and the parser's "Immutable rite"
// check).
type Index struct {
	exprBase
	Target Expression
	Key    Expression
}

func NewIndex(line int, target, key Expression) *Index {
	return &Index{exprBase: exprBase{base: base{line}}, Target: target, Key: key}
}
func (n *Index) Accept(v Visitor) { v.VisitIndex(n) }

// SpellInvocation calls a user-defined spell by name.
type SpellInvocation struct {
	exprBase
	Name string
	Args []Expression
}

func NewSpellInvocation(line int, name string, args []Expression) *SpellInvocation {
	return &SpellInvocation{exprBase: exprBase{base: base{line}}, Name: name, Args: args}
}
func (n *SpellInvocation) Accept(v Visitor) { v.VisitSpellInvocation(n) }

// NativeInvocation calls a host-registered native ("spirit") by name.
type NativeInvocation struct {
	exprBase
	Name string
	Args []Expression
}

func NewNativeInvocation(line int, name string, args []Expression) *NativeInvocation {
	return &NativeInvocation{exprBase: exprBase{base: base{line}}, Name: name, Args: args}
}
func (n *NativeInvocation) Accept(v Visitor) { v.VisitNativeInvocation(n) }
