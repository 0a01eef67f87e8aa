// Package parser implements the Pratt-precedence expression parser and
// keyword-driven statement grammar of §4.3: token stream to AST, with the
// "Immutable rite" check on indexed-assignment targets enforced at parse
// time rather than deferred to the checker or interpreter.
package parser

import (
	"strconv"

	"github.com/Emir2099/Ardent-sub000/internal/ast"
	"github.com/Emir2099/Ardent-sub000/internal/diagnostics"
	"github.com/Emir2099/Ardent-sub000/internal/token"
	"github.com/Emir2099/Ardent-sub000/internal/types"
)

func parseNumber(lexeme string) (int64, error) { return strconv.ParseInt(lexeme, 10, 64) }

// Parser consumes a finished token slice and produces a *ast.Program.
type Parser struct {
	toks  []token.Token
	pos   int
	Diags *diagnostics.Bag
}

// New returns a Parser over toks (must end with an EOF token), reporting
// diagnostics into diags.
func New(toks []token.Token, diags *diagnostics.Bag) *Parser {
	return &Parser{toks: toks, Diags: diags}
}

func (p *Parser) cur() token.Token {
	if p.pos >= len(p.toks) {
		return p.toks[len(p.toks)-1] // EOF
	}
	return p.toks[p.pos]
}

func (p *Parser) peek(n int) token.Token {
	idx := p.pos + n
	if idx >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[idx]
}

func (p *Parser) advance() token.Token {
	t := p.cur()
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *Parser) at(t token.Type) bool { return p.cur().Type == t }

func (p *Parser) expect(t token.Type, context string) (token.Token, bool) {
	if p.cur().Type == t {
		return p.advance(), true
	}
	p.Diags.Errorf(p.cur().Line, "Unexpected token or missing block: expected %s in %s, found %q", t, context, p.cur().Lexeme)
	return token.Token{}, false
}

// ParseProgram parses an optional prologue header followed by the
// scroll's top-level statements, until EOF. A parse error is recorded as
// a diagnostic and the offending statement is omitted; parsing resumes at
// the next token, so a single malformed statement does not prevent
// diagnostics about the rest of the scroll.
func (p *Parser) ParseProgram() *ast.Program {
	prog := &ast.Program{}
	prog.Prologue = p.parsePrologue()

	for !p.at(token.EOF) {
		start := p.pos
		stmt := p.parseStatement()
		if stmt != nil {
			prog.Statements = append(prog.Statements, stmt)
		}
		if p.pos == start {
			// Guard against a stuck cursor on unrecoverable input.
			p.advance()
		}
	}
	return prog
}

func (p *Parser) parsePrologue() *ast.ScrollPrologue {
	var pro *ast.ScrollPrologue
	for p.at(token.IDENT) && p.peek(1).Type == token.COLON && p.peek(2).Type == token.STRING {
		if pro == nil {
			pro = &ast.ScrollPrologue{Extras: map[string]string{}}
		}
		key := p.advance().Lexeme
		p.advance() // colon
		val := p.advance().Lexeme
		switch key {
		case "title":
			pro.Title = val
		case "version":
			pro.Version = val
		case "author":
			pro.Author = val
		default:
			pro.Extras[key] = val
		}
	}
	return pro
}

// parseRuneType parses a type rune: bare words map to simple types,
// bracketed forms parse parameters recursively (§4.4).
func (p *Parser) parseRuneType() (types.Type, bool) {
	switch p.cur().Type {
	case token.KW_WHOLE:
		p.advance()
		return types.Simple(types.Whole), true
	case token.KW_TRUTH:
		p.advance()
		return types.Simple(types.Truth), true
	case token.KW_PHRASE:
		p.advance()
		return types.Simple(types.Phrase), true
	case token.KW_VOID:
		p.advance()
		return types.Simple(types.Void), true
	case token.KW_ANY:
		p.advance()
		return types.Simple(types.Any), true
	case token.KW_ORDER:
		p.advance()
		if p.at(token.LBRACKET) {
			p.advance()
			elem, ok := p.parseRuneType()
			if !ok {
				elem = types.Simple(types.Unknown)
			}
			p.expect(token.RBRACKET, "order rune")
			return types.NewOrder(elem), true
		}
		return types.NewOrder(types.Simple(types.Unknown)), true
	case token.KW_TOME:
		p.advance()
		if p.at(token.LBRACKET) {
			p.advance()
			key, ok := p.parseRuneType()
			if !ok {
				key = types.Simple(types.Phrase)
			}
			val, ok := p.parseRuneType()
			if !ok {
				val = types.Simple(types.Unknown)
			}
			p.expect(token.RBRACKET, "tome rune")
			return types.NewTome(key, val), true
		}
		return types.NewTome(types.Simple(types.Phrase), types.Simple(types.Unknown)), true
	}
	return types.Type{}, false
}

// --- Expression parsing: Pratt/precedence-climbing, lowest to highest:
// or, and, not, equality/relational, additive, multiplicative, cast,
// unary, primary.

func (p *Parser) parseExpression() ast.Expression { return p.parseOr() }

func (p *Parser) parseOr() ast.Expression {
	left := p.parseAnd()
	for p.at(token.OR) {
		line := p.advance().Line
		right := p.parseAnd()
		left = ast.NewBinary(line, left, token.OR, right)
	}
	return left
}

func (p *Parser) parseAnd() ast.Expression {
	left := p.parseNot()
	for p.at(token.AND) {
		line := p.advance().Line
		right := p.parseNot()
		left = ast.NewBinary(line, left, token.AND, right)
	}
	return left
}

func (p *Parser) parseNot() ast.Expression {
	if p.at(token.NOT) {
		line := p.advance().Line
		operand := p.parseNot()
		return ast.NewUnary(line, token.NOT, operand)
	}
	return p.parseComparison()
}

func (p *Parser) parseComparison() ast.Expression {
	left := p.parseAdditive()
	for p.at(token.EQ) || p.at(token.NOT_EQ) || p.at(token.GT) || p.at(token.LT) {
		op := p.advance()
		right := p.parseAdditive()
		left = ast.NewBinary(op.Line, left, op.Type, right)
	}
	return left
}

func (p *Parser) parseAdditive() ast.Expression {
	left := p.parseMultiplicative()
	for p.at(token.PLUS) || p.at(token.MINUS) {
		op := p.advance()
		right := p.parseMultiplicative()
		left = ast.NewBinary(op.Line, left, op.Type, right)
	}
	return left
}

func (p *Parser) parseMultiplicative() ast.Expression {
	left := p.parseCast()
	for p.at(token.STAR) || p.at(token.SLASH) || p.at(token.PERCENT) {
		op := p.advance()
		right := p.parseCast()
		left = ast.NewBinary(op.Line, left, op.Type, right)
	}
	return left
}

func (p *Parser) parseCast() ast.Expression {
	if p.at(token.KW_CAST) {
		line := p.advance().Line
		operand := p.parseUnary()
		p.expect(token.KW_AS, "cast expression")
		var target ast.CastTarget
		switch p.cur().Type {
		case token.KW_WHOLE:
			target = ast.CastToNumber
		case token.KW_PHRASE:
			target = ast.CastToPhrase
		case token.KW_TRUTH:
			target = ast.CastToTruth
		default:
			p.Diags.Errorf(p.cur().Line, "expected a cast target (whole, phrase, or truth), found %q", p.cur().Lexeme)
		}
		p.advance()
		return ast.NewCast(line, operand, target)
	}
	return p.parseUnary()
}

func (p *Parser) parseUnary() ast.Expression { return p.parsePostfix() }

func (p *Parser) parsePostfix() ast.Expression {
	expr := p.parsePrimary()
	for p.at(token.LBRACKET) {
		line := p.advance().Line
		key := p.parseExpression()
		p.expect(token.RBRACKET, "index expression")
		expr = ast.NewIndex(line, expr, key)
	}
	return expr
}

func (p *Parser) parsePrimary() ast.Expression {
	t := p.cur()
	switch t.Type {
	case token.NUMBER:
		p.advance()
		v, err := parseNumber(t.Lexeme)
		if err != nil {
			p.Diags.Errorf(t.Line, "invalid number literal %q", t.Lexeme)
		}
		return ast.NewNumberLiteral(t.Line, v)
	case token.STRING:
		p.advance()
		return ast.NewPhraseLiteral(t.Line, t.Lexeme)
	case token.TRUE:
		p.advance()
		return ast.NewTruthLiteral(t.Line, true)
	case token.FALSE:
		p.advance()
		return ast.NewTruthLiteral(t.Line, false)
	case token.LPAREN:
		p.advance()
		expr := p.parseExpression()
		p.expect(token.RPAREN, "parenthesized expression")
		return expr
	case token.LBRACKET:
		return p.parseArrayLiteral()
	case token.LBRACE:
		return p.parseMapLiteral()
	case token.KW_INVOKE_THE_SPELL:
		return p.parseSpellInvocation()
	case token.KW_INVOKE_THE_SPIRIT:
		return p.parseNativeInvocation()
	case token.IDENT:
		p.advance()
		if p.at(token.LPAREN) {
			return p.finishSpellInvocation(t.Line, t.Lexeme)
		}
		return ast.NewIdentifier(t.Line, t.Lexeme)
	default:
		p.Diags.Errorf(t.Line, "Unexpected token or missing block: unexpected %q in expression", t.Lexeme)
		p.advance()
		return ast.NewNumberLiteral(t.Line, 0)
	}
}

func (p *Parser) parseArrayLiteral() ast.Expression {
	line := p.advance().Line // '['
	var elems []ast.Expression
	for !p.at(token.RBRACKET) && !p.at(token.EOF) {
		elems = append(elems, p.parseExpression())
	}
	p.expect(token.RBRACKET, "order literal")
	return ast.NewArrayLiteral(line, elems)
}

func (p *Parser) parseMapLiteral() ast.Expression {
	line := p.advance().Line // '{'
	var entries []ast.MapEntry
	for !p.at(token.RBRACE) && !p.at(token.EOF) {
		keyTok, ok := p.expect(token.STRING, "tome literal key")
		if !ok {
			break
		}
		p.expect(token.COLON, "tome literal")
		val := p.parseExpression()
		entries = append(entries, ast.MapEntry{Key: keyTok.Lexeme, Value: val})
	}
	p.expect(token.RBRACE, "tome literal")
	return ast.NewMapLiteral(line, entries)
}

func (p *Parser) parseSpellInvocation() ast.Expression {
	line := p.advance().Line // "Invoke the spell"
	nameTok, _ := p.expect(token.IDENT, "spell invocation")
	return p.finishSpellInvocation(line, nameTok.Lexeme)
}

func (p *Parser) finishSpellInvocation(line int, name string) ast.Expression {
	p.expect(token.LPAREN, "spell invocation")
	var args []ast.Expression
	for !p.at(token.RPAREN) && !p.at(token.EOF) {
		args = append(args, p.parseExpression())
	}
	p.expect(token.RPAREN, "spell invocation")
	return ast.NewSpellInvocation(line, name, args)
}

func (p *Parser) parseNativeInvocation() ast.Expression {
	line := p.advance().Line // "Invoke the spirit of"
	nameTok, _ := p.expect(token.IDENT, "native invocation")
	// The lexer drops '.', so a dotted spirit name such as math.add arrives
	// as consecutive identifiers; rejoin them up to "upon".
	name := nameTok.Lexeme
	for p.at(token.IDENT) {
		name += "." + p.advance().Lexeme
	}
	p.expect(token.KW_UPON, "native invocation")
	var args []ast.Expression
	for p.canStartArgument() {
		args = append(args, p.parseExpression())
	}
	return ast.NewNativeInvocation(line, name, args)
}

// canStartArgument decides whether the current token may begin another bare
// (unparenthesized) native-invocation argument, stopping before what is
// unambiguously the start of the next statement.
func (p *Parser) canStartArgument() bool {
	switch p.cur().Type {
	case token.NUMBER, token.STRING, token.TRUE, token.FALSE, token.LPAREN, token.LBRACKET, token.LBRACE:
		return true
	case token.IDENT:
		return p.peek(1).Type != token.KW_IS_OF
	}
	return false
}
