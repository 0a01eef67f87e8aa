package ast

// Visitor is implemented by each component that walks the AST (checker,
// interpreter, compiler) to keep traversal logic out of the node types
// themselves.
type Visitor interface {
	VisitNumberLiteral(n *NumberLiteral)
	VisitPhraseLiteral(n *PhraseLiteral)
	VisitTruthLiteral(n *TruthLiteral)
	VisitIdentifier(n *Identifier)
	VisitBinary(n *Binary)
	VisitUnary(n *Unary)
	VisitCast(n *Cast)
	VisitArrayLiteral(n *ArrayLiteral)
	VisitMapLiteral(n *MapLiteral)
	VisitIndex(n *Index)
	VisitSpellInvocation(n *SpellInvocation)
	VisitNativeInvocation(n *NativeInvocation)

	VisitBlock(n *Block)
	VisitCollectionRite(n *CollectionRite)
	VisitSpellDefinition(n *SpellDefinition)
	VisitReturn(n *Return)
	VisitVarDecl(n *VarDecl)
	VisitAssignment(n *Assignment)
	VisitIf(n *If)
	VisitPrint(n *Print)
	VisitImportAll(n *ImportAll)
	VisitImportSelective(n *ImportSelective)
	VisitInlineInclude(n *InlineInclude)
	VisitTryCatchFinally(n *TryCatchFinally)
	VisitForLoop(n *ForLoop)
	VisitWhileLoop(n *WhileLoop)
	VisitDoWhileLoop(n *DoWhileLoop)
	VisitExpressionStatement(n *ExpressionStatement)
}
