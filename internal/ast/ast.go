// Package ast defines the tagged AST node set of §3: every node carries a
// source line and a TypeInfo slot that the checker (internal/checker)
// annotates in place, so parser, checker, interpreter, and compiler all
// read the same node graph without copying it.
package ast

import "github.com/Emir2099/Ardent-sub000/internal/types"

// TypeInfo is the mutable type-annotation slot every node carries.
type TypeInfo struct {
	DeclaredType types.Type
	InferredType types.Type
	HasRune      bool
}

// Node is the base interface implemented by every AST node.
type Node interface {
	Line() int
	Accept(v Visitor)
}

// Statement is a Node that appears in statement position.
type Statement interface {
	Node
	statementNode()
}

// Expression is a Node that appears in expression position and carries a
// type annotation.
type Expression interface {
	Node
	expressionNode()
	Info() *TypeInfo
}

// base is embedded by every node to provide Line().
type base struct {
	line int
}

func (b base) Line() int { return b.line }

// exprBase is embedded by every expression node.
type exprBase struct {
	base
	TypeInfo
}

func (e *exprBase) Info() *TypeInfo  { return &e.TypeInfo }
func (e *exprBase) expressionNode() {}

// Block is an ordered sequence of statements; it is itself a Statement so
// spell bodies, if-branches, and loop bodies can all hold one.
type Block struct {
	base
	Statements []Statement
}

func NewBlock(line int, stmts []Statement) *Block { return &Block{base: base{line}, Statements: stmts} }
func (b *Block) statementNode()                   {}
func (b *Block) Accept(v Visitor)                 { v.VisitBlock(b) }
