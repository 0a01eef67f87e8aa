package ast

import "github.com/Emir2099/Ardent-sub000/internal/types"

// ExpressionStatement wraps an expression evaluated for effect (a native
// or spell invocation used as a statement).
type ExpressionStatement struct {
	base
	Expr Expression
}

func NewExpressionStatement(line int, e Expression) *ExpressionStatement {
	return &ExpressionStatement{base: base{line}, Expr: e}
}
func (n *ExpressionStatement) statementNode()   {}
func (n *ExpressionStatement) Accept(v Visitor) { v.VisitExpressionStatement(n) }

// RiteKind enumerates the collection mutation rites (§4.3 Immutability):
// mutation is permitted only through these statement forms.
type RiteKind int

const (
	RiteArrayAppend RiteKind = iota
	RiteArrayRemove
	RiteMapAssign
	RiteMapErase
)

// CollectionRite is a statement-form mutation on a named collection:
// "expand with", "remove", "amend ... to ...", "erase".
type CollectionRite struct {
	base
	Kind   RiteKind
	Target string
	Key    Expression // optional: index for array-remove, key for map ops
	Value  Expression // optional: value for array-append, map-assign
}

func NewCollectionRite(line int, kind RiteKind, target string, key, value Expression) *CollectionRite {
	return &CollectionRite{base: base{line}, Kind: kind, Target: target, Key: key, Value: value}
}
func (n *CollectionRite) statementNode()   {}
func (n *CollectionRite) Accept(v Visitor) { v.VisitCollectionRite(n) }

// Param is one spell parameter: a name with an optional declared type.
type Param struct {
	Name    string
	Type    types.Type
	HasType bool
}

// SpellDefinition declares a named spell.
type SpellDefinition struct {
	base
	Name       string
	Params     []Param
	ReturnType types.Type
	HasReturn  bool
	Body       *Block
}

func NewSpellDefinition(line int, name string, params []Param, ret types.Type, hasRet bool, body *Block) *SpellDefinition {
	return &SpellDefinition{base: base{line}, Name: name, Params: params, ReturnType: ret, HasReturn: hasRet, Body: body}
}
func (n *SpellDefinition) statementNode()   {}
func (n *SpellDefinition) Accept(v Visitor) { v.VisitSpellDefinition(n) }

// Return is "And let it return EXPR" / "return EXPR".
type Return struct {
	base
	Value Expression // nil for a bare return
}

func NewReturn(line int, value Expression) *Return { return &Return{base: base{line}, Value: value} }
func (n *Return) statementNode()                   {}
func (n *Return) Accept(v Visitor)                 { v.VisitReturn(n) }

// VarDecl declares a variable, optionally typed and optionally immutable.
type VarDecl struct {
	base
	Name        string
	Initializer Expression
	DeclType    types.Type
	HasType     bool
	Mutable     bool
}

func NewVarDecl(line int, name string, init Expression, declType types.Type, hasType, mutable bool) *VarDecl {
	return &VarDecl{base: base{line}, Name: name, Initializer: init, DeclType: declType, HasType: hasType, Mutable: mutable}
}
func (n *VarDecl) statementNode()   {}
func (n *VarDecl) Accept(v Visitor) { v.VisitVarDecl(n) }

// Assignment is "NAME is of EXPR". The parser rejects index/key targets
// ("Immutable rite") before this node is ever constructed for one.
type Assignment struct {
	base
	Name  string
	Value Expression
}

func NewAssignment(line int, name string, value Expression) *Assignment {
	return &Assignment{base: base{line}, Name: name, Value: value}
}
func (n *Assignment) statementNode()   {}
func (n *Assignment) Accept(v Visitor) { v.VisitAssignment(n) }

// If is "Should the fates decree COND, then BLOCK [Else whisper BLOCK]".
type If struct {
	base
	Condition Expression
	Then      *Block
	Else      *Block // nil if absent
}

func NewIf(line int, cond Expression, then, els *Block) *If {
	return &If{base: base{line}, Condition: cond, Then: then, Else: els}
}
func (n *If) statementNode()   {}
func (n *If) Accept(v Visitor) { v.VisitIf(n) }

// Print is "Let it be proclaimed: EXPR".
type Print struct {
	base
	Value Expression
}

func NewPrint(line int, value Expression) *Print { return &Print{base: base{line}, Value: value} }
func (n *Print) statementNode()                  {}
func (n *Print) Accept(v Visitor)                 { v.VisitPrint(n) }

// ImportAll is "From the scroll of PATH draw all knowledge [as ALIAS]."
type ImportAll struct {
	base
	Path  string
	Alias string
	HasAlias bool
}

func NewImportAll(line int, path, alias string, hasAlias bool) *ImportAll {
	return &ImportAll{base: base{line}, Path: path, Alias: alias, HasAlias: hasAlias}
}
func (n *ImportAll) statementNode()   {}
func (n *ImportAll) Accept(v Visitor) { v.VisitImportAll(n) }

// ImportSelective is "From the scroll of PATH take the spells A, B, C."
type ImportSelective struct {
	base
	Path  string
	Names []string
}

func NewImportSelective(line int, path string, names []string) *ImportSelective {
	return &ImportSelective{base: base{line}, Path: path, Names: names}
}
func (n *ImportSelective) statementNode()   {}
func (n *ImportSelective) Accept(v Visitor) { v.VisitImportSelective(n) }

// InlineInclude is "Unfurl the scroll PATH.": parses PATH and executes its
// statements inline within the current scope.
type InlineInclude struct {
	base
	Path string
}

func NewInlineInclude(line int, path string) *InlineInclude {
	return &InlineInclude{base: base{line}, Path: path}
}
func (n *InlineInclude) statementNode()   {}
func (n *InlineInclude) Accept(v Visitor) { v.VisitInlineInclude(n) }

// TryCatchFinally is "Try: BLOCK [Catch the curse as NAME: BLOCK] [Finally: BLOCK]".
type TryCatchFinally struct {
	base
	TryBlock     *Block
	CatchVar     string
	CatchBlock   *Block // nil if absent
	FinallyBlock *Block // nil if absent
}

func NewTryCatchFinally(line int, try *Block, catchVar string, catch, finally *Block) *TryCatchFinally {
	return &TryCatchFinally{base: base{line}, TryBlock: try, CatchVar: catchVar, CatchBlock: catch, FinallyBlock: finally}
}
func (n *TryCatchFinally) statementNode()   {}
func (n *TryCatchFinally) Accept(v Visitor) { v.VisitTryCatchFinally(n) }

// Direction is the ascend/descend direction of a ForLoop.
type Direction int

const (
	Ascend Direction = iota
	Descend
)

// ForLoop is "for VAR from INIT to LIMIT by STEP (ascend|descend) { BODY }".
type ForLoop struct {
	base
	Var       string
	Init      Expression
	Limit     Expression
	Step      Expression
	Direction Direction
	Body      *Block
}

func NewForLoop(line int, v string, init, limit, step Expression, dir Direction, body *Block) *ForLoop {
	return &ForLoop{base: base{line}, Var: v, Init: init, Limit: limit, Step: step, Direction: dir, Body: body}
}
func (n *ForLoop) statementNode()   {}
func (n *ForLoop) Accept(v Visitor) { v.VisitForLoop(n) }

// WhileLoop is "Whilst the sun doth rise COND { BODY }".
type WhileLoop struct {
	base
	Condition Expression
	Body      *Block
}

func NewWhileLoop(line int, cond Expression, body *Block) *WhileLoop {
	return &WhileLoop{base: base{line}, Condition: cond, Body: body}
}
func (n *WhileLoop) statementNode()   {}
func (n *WhileLoop) Accept(v Visitor) { v.VisitWhileLoop(n) }

// DoWhileLoop is "Do as the fates decree { BODY } And with each dawn, let
// VAR ascend|descend K. Until COND." — the update clause mutates Var by
// Step in Direction each iteration; the loop continues while Condition is
// false (Until negates the sense).
type DoWhileLoop struct {
	base
	Body      *Block
	UpdateVar string
	Step      Expression
	Direction Direction
	HasUpdate bool
	Condition Expression
}

func NewDoWhileLoop(line int, body *Block, updateVar string, step Expression, dir Direction, hasUpdate bool, cond Expression) *DoWhileLoop {
	return &DoWhileLoop{base: base{line}, Body: body, UpdateVar: updateVar, Step: step, Direction: dir, HasUpdate: hasUpdate, Condition: cond}
}
func (n *DoWhileLoop) statementNode()   {}
func (n *DoWhileLoop) Accept(v Visitor) { v.VisitDoWhileLoop(n) }
