package vm

import (
	"fmt"

	"github.com/Emir2099/Ardent-sub000/internal/ast"
	"github.com/Emir2099/Ardent-sub000/internal/token"
)

// Compiler lowers a program to bytecode, implementing ast.Visitor the same
// way the checker and interpreter do: each Visit* method leaves its result
// in a scratch field (here there is none to return, only emitted bytes and
// a possible err) rather than via a return value the Visitor interface
// doesn't have room for.
//
// Identifiers resolve to flat slot indices at compile time (§4.7: "flat
// scope in the initial implementation") — there is one slot table for the
// whole chunk, no nested lexical scoping, which is sufficient for the
// straight-line and structured-control-flow programs the bytecode backend
// targets.
type Compiler struct {
	chunk   *Chunk
	slots   map[string]uint16
	natives []string
	err     error
	line    int
}

// NewCompiler returns a Compiler ready to produce a single Chunk.
func NewCompiler() *Compiler {
	return &Compiler{
		chunk: NewChunk(),
		slots: map[string]uint16{},
	}
}

// Compile lowers every top-level statement of prog into a finished chunk,
// terminated by HALT. Spell definitions, invocations, collections, casts,
// imports, and try/catch are not part of the bytecode backend's scope
// (§4.7's Value(VM) model is scalar-only, and encodes collection/call
// opcodes a conforming VM "may refuse"); Compile refuses them with a plain
// error naming the unsupported construct rather than emitting anything for
// them.
func (c *Compiler) Compile(prog *ast.Program) (*Chunk, error) {
	for _, s := range prog.Statements {
		c.compileStmt(s)
		if c.err != nil {
			return nil, c.err
		}
	}
	c.chunk.emitOp(OP_HALT, c.line)
	c.chunk.NativeNames = c.natives
	return c.chunk, nil
}

func (c *Compiler) slotFor(name string) uint16 {
	if idx, ok := c.slots[name]; ok {
		return idx
	}
	idx := uint16(len(c.slots))
	c.slots[name] = idx
	return idx
}

func (c *Compiler) nativeID(name string) uint16 {
	for i, n := range c.natives {
		if n == name {
			return uint16(i)
		}
	}
	c.natives = append(c.natives, name)
	return uint16(len(c.natives) - 1)
}

func (c *Compiler) compileStmt(s ast.Statement) {
	if c.err != nil {
		return
	}
	s.Accept(c)
}

func (c *Compiler) compileExpr(e ast.Expression) {
	if c.err != nil {
		return
	}
	e.Accept(c)
}

func (c *Compiler) unsupported(what string) {
	if c.err == nil {
		c.err = fmt.Errorf("bytecode backend does not support %s", what)
	}
}

// --- Expressions ---

func (c *Compiler) VisitNumberLiteral(n *ast.NumberLiteral) {
	idx := c.chunk.AddConstant(wholeValue(int32(n.Value)))
	c.chunk.emitOp(OP_PUSH_CONST, n.Line())
	c.chunk.emitU16(idx, n.Line())
}

func (c *Compiler) VisitTruthLiteral(n *ast.TruthLiteral) {
	idx := c.chunk.AddConstant(truthValue(n.Value))
	c.chunk.emitOp(OP_PUSH_CONST, n.Line())
	c.chunk.emitU16(idx, n.Line())
}

func (c *Compiler) VisitPhraseLiteral(n *ast.PhraseLiteral) {
	idx := c.chunk.AddConstant(phraseValue(n.Value))
	c.chunk.emitOp(OP_PUSH_CONST, n.Line())
	c.chunk.emitU16(idx, n.Line())
}

func (c *Compiler) VisitIdentifier(n *ast.Identifier) {
	c.chunk.emitOp(OP_LOAD, n.Line())
	c.chunk.emitU16(c.slotFor(n.Name), n.Line())
}

func (c *Compiler) VisitBinary(n *ast.Binary) {
	c.compileExpr(n.Left)
	c.compileExpr(n.Right)
	if c.err != nil {
		return
	}
	var op Opcode
	switch n.Op {
	case token.PLUS:
		op = OP_ADD
	case token.MINUS:
		op = OP_SUB
	case token.STAR:
		op = OP_MUL
	case token.SLASH:
		op = OP_DIV
	case token.AND:
		op = OP_AND
	case token.OR:
		op = OP_OR
	case token.EQ:
		op = OP_EQ
	case token.NOT_EQ:
		op = OP_NE
	case token.GT:
		op = OP_GT
	case token.LT:
		op = OP_LT
	default:
		c.unsupported(fmt.Sprintf("the %q operator", n.Op))
		return
	}
	c.chunk.emitOp(op, n.Line())
}

func (c *Compiler) VisitUnary(n *ast.Unary) {
	c.compileExpr(n.Operand)
	if c.err != nil {
		return
	}
	if n.Op != token.NOT {
		c.unsupported(fmt.Sprintf("the %q unary operator", n.Op))
		return
	}
	c.chunk.emitOp(OP_NOT, n.Line())
}

func (c *Compiler) VisitCast(n *ast.Cast)                         { c.unsupported("cast expressions") }
func (c *Compiler) VisitArrayLiteral(n *ast.ArrayLiteral)         { c.unsupported("order literals") }
func (c *Compiler) VisitMapLiteral(n *ast.MapLiteral)             { c.unsupported("tome literals") }
func (c *Compiler) VisitIndex(n *ast.Index)                       { c.unsupported("collection indexing") }
func (c *Compiler) VisitSpellInvocation(n *ast.SpellInvocation)   { c.unsupported("spell invocation") }

func (c *Compiler) VisitNativeInvocation(n *ast.NativeInvocation) {
	for _, a := range n.Args {
		c.compileExpr(a)
		if c.err != nil {
			return
		}
	}
	if len(n.Args) > 255 {
		c.unsupported("a native call with more than 255 arguments")
		return
	}
	c.chunk.emitOp(OP_NATIVE, n.Line())
	c.chunk.emitU16(c.nativeID(n.Name), n.Line())
	c.chunk.emitU8(uint8(len(n.Args)), n.Line())
}

// --- Statements ---

func (c *Compiler) VisitBlock(n *ast.Block) {
	for _, s := range n.Statements {
		c.compileStmt(s)
		if c.err != nil {
			return
		}
	}
}

func (c *Compiler) VisitExpressionStatement(n *ast.ExpressionStatement) {
	c.compileExpr(n.Expr)
	if c.err != nil {
		return
	}
	c.chunk.emitOp(OP_POP, n.Line())
}

func (c *Compiler) VisitVarDecl(n *ast.VarDecl) {
	c.compileExpr(n.Initializer)
	if c.err != nil {
		return
	}
	slot := c.slotFor(n.Name)
	c.chunk.emitOp(OP_STORE, n.Line())
	c.chunk.emitU16(slot, n.Line())
	c.chunk.emitOp(OP_LOAD, n.Line())
	c.chunk.emitU16(slot, n.Line())
	c.chunk.emitOp(OP_POP, n.Line())
}

func (c *Compiler) VisitAssignment(n *ast.Assignment) {
	c.compileExpr(n.Value)
	if c.err != nil {
		return
	}
	slot := c.slotFor(n.Name)
	c.chunk.emitOp(OP_STORE, n.Line())
	c.chunk.emitU16(slot, n.Line())
	c.chunk.emitOp(OP_LOAD, n.Line())
	c.chunk.emitU16(slot, n.Line())
	c.chunk.emitOp(OP_POP, n.Line())
}

func (c *Compiler) VisitIf(n *ast.If) {
	c.compileExpr(n.Condition)
	if c.err != nil {
		return
	}
	elseJump := c.chunk.emitJump(OP_JMP_IF_FALSE, n.Line())
	c.compileStmt(n.Then)
	if c.err != nil {
		return
	}
	endJump := c.chunk.emitJump(OP_JMP, n.Line())
	c.chunk.patchJump(elseJump)
	if n.Else != nil {
		c.compileStmt(n.Else)
		if c.err != nil {
			return
		}
	}
	c.chunk.patchJump(endJump)
}

func (c *Compiler) VisitPrint(n *ast.Print) {
	c.compileExpr(n.Value)
	if c.err != nil {
		return
	}
	c.chunk.emitOp(OP_PRINT, n.Line())
}

func (c *Compiler) VisitWhileLoop(n *ast.WhileLoop) {
	top := c.chunk.here()
	c.compileExpr(n.Condition)
	if c.err != nil {
		return
	}
	exitJump := c.chunk.emitJump(OP_JMP_IF_FALSE, n.Line())
	c.compileStmt(n.Body)
	if c.err != nil {
		return
	}
	c.chunk.emitLoop(top, n.Line())
	c.chunk.patchJump(exitJump)
}

func (c *Compiler) VisitDoWhileLoop(n *ast.DoWhileLoop) {
	top := c.chunk.here()
	c.compileStmt(n.Body)
	if c.err != nil {
		return
	}
	if n.HasUpdate {
		slot := c.slotFor(n.UpdateVar)
		c.chunk.emitOp(OP_LOAD, n.Line())
		c.chunk.emitU16(slot, n.Line())
		c.compileExpr(n.Step)
		if c.err != nil {
			return
		}
		if n.Direction == ast.Ascend {
			c.chunk.emitOp(OP_ADD, n.Line())
		} else {
			c.chunk.emitOp(OP_SUB, n.Line())
		}
		c.chunk.emitOp(OP_STORE, n.Line())
		c.chunk.emitU16(slot, n.Line())
		c.chunk.emitOp(OP_POP, n.Line())
	}
	c.compileExpr(n.Condition)
	if c.err != nil {
		return
	}
	// "Until COND" continues while COND is false: loop back when
	// JMP_IF_FALSE would fall through, i.e. jump to top unless COND holds.
	c.chunk.emitOp(OP_NOT, n.Line())
	exitJump := c.chunk.emitJump(OP_JMP_IF_FALSE, n.Line())
	c.chunk.emitLoop(top, n.Line())
	c.chunk.patchJump(exitJump)
}

func (c *Compiler) VisitForLoop(n *ast.ForLoop) {
	c.compileExpr(n.Init)
	if c.err != nil {
		return
	}
	slot := c.slotFor(n.Var)
	c.chunk.emitOp(OP_STORE, n.Line())
	c.chunk.emitU16(slot, n.Line())

	top := c.chunk.here()
	c.chunk.emitOp(OP_LOAD, n.Line())
	c.chunk.emitU16(slot, n.Line())
	c.compileExpr(n.Limit)
	if c.err != nil {
		return
	}
	if n.Direction == ast.Ascend {
		c.chunk.emitOp(OP_LE, n.Line())
	} else {
		c.chunk.emitOp(OP_GE, n.Line())
	}
	exitJump := c.chunk.emitJump(OP_JMP_IF_FALSE, n.Line())
	c.compileStmt(n.Body)
	if c.err != nil {
		return
	}
	c.chunk.emitOp(OP_LOAD, n.Line())
	c.chunk.emitU16(slot, n.Line())
	c.compileExpr(n.Step)
	if c.err != nil {
		return
	}
	if n.Direction == ast.Ascend {
		c.chunk.emitOp(OP_ADD, n.Line())
	} else {
		c.chunk.emitOp(OP_SUB, n.Line())
	}
	c.chunk.emitOp(OP_STORE, n.Line())
	c.chunk.emitU16(slot, n.Line())
	c.chunk.emitLoop(top, n.Line())
	c.chunk.patchJump(exitJump)
}

func (c *Compiler) VisitCollectionRite(n *ast.CollectionRite)         { c.unsupported("collection rites") }
func (c *Compiler) VisitSpellDefinition(n *ast.SpellDefinition)       { c.unsupported("spell definitions") }
func (c *Compiler) VisitReturn(n *ast.Return)                         { c.unsupported("return statements") }
func (c *Compiler) VisitImportAll(n *ast.ImportAll)                   { c.unsupported("scroll imports") }
func (c *Compiler) VisitImportSelective(n *ast.ImportSelective)       { c.unsupported("scroll imports") }
func (c *Compiler) VisitInlineInclude(n *ast.InlineInclude)           { c.unsupported("scroll imports") }
func (c *Compiler) VisitTryCatchFinally(n *ast.TryCatchFinally)       { c.unsupported("try/catch/finally") }

var _ ast.Visitor = (*Compiler)(nil)
