package parser

import (
	"github.com/Emir2099/Ardent-sub000/internal/ast"
	"github.com/Emir2099/Ardent-sub000/internal/token"
	"github.com/Emir2099/Ardent-sub000/internal/types"
)

func (p *Parser) parseBlock() *ast.Block {
	open, ok := p.expect(token.LBRACE, "block")
	if !ok {
		return ast.NewBlock(p.cur().Line, nil)
	}
	var stmts []ast.Statement
	for !p.at(token.RBRACE) && !p.at(token.EOF) {
		start := p.pos
		if s := p.parseStatement(); s != nil {
			stmts = append(stmts, s)
		}
		if p.pos == start {
			p.advance()
		}
	}
	p.expect(token.RBRACE, "block")
	return ast.NewBlock(open.Line, stmts)
}

func (p *Parser) parseStatement() ast.Statement {
	switch p.cur().Type {
	case token.KW_LET_IT_BE_KNOWN:
		return p.parseLetItBeKnown()
	case token.KW_A_NUMBER_NAMED:
		return p.parseANumberNamed()
	case token.KW_SHOULD_THE_FATES:
		return p.parseIf()
	case token.KW_PROCLAIM:
		return p.parsePrint()
	case token.KW_WHILST:
		return p.parseWhile()
	case token.KW_FOR:
		return p.parseFor()
	case token.KW_DO_AS_FATES:
		return p.parseDoWhile()
	case token.KW_A_SPELL_NAMED:
		return p.parseSpellDefinition()
	case token.KW_FROM_THE_SCROLL:
		return p.parseImport()
	case token.KW_UNFURL_THE_SCROLL:
		return p.parseInlineInclude()
	case token.KW_TRY:
		return p.parseTry()
	case token.KW_RETURN, token.KW_AND_LET_IT_RETURN:
		return p.parseReturn()
	case token.KW_EXPAND:
		return p.parseExpandRite()
	case token.KW_REMOVE:
		return p.parseRemoveRite()
	case token.KW_AMEND:
		return p.parseAmendRite()
	case token.KW_ERASE:
		return p.parseEraseRite()
	case token.IDENT:
		return p.parseIdentLedStatement()
	default:
		line := p.cur().Line
		expr := p.parseExpression()
		return ast.NewExpressionStatement(line, expr)
	}
}

// parseIdentLedStatement disambiguates "NAME is of EXPR" (assignment) from
// a bare expression statement, and rejects indexed-assignment targets
// ("Immutable rite", §4.3) at parse time.
func (p *Parser) parseIdentLedStatement() ast.Statement {
	line := p.cur().Line
	expr := p.parseExpression()
	if p.at(token.KW_IS_OF) {
		p.advance()
		value := p.parseExpression()
		if ident, ok := expr.(*ast.Identifier); ok {
			return ast.NewAssignment(line, ident.Name, value)
		}
		p.Diags.Errorf(line, "Immutable rite: one may not assign into an order or tome; use a collection rite instead")
		return ast.NewExpressionStatement(line, expr)
	}
	return ast.NewExpressionStatement(line, expr)
}

func (p *Parser) parseLetItBeKnown() ast.Statement {
	line := p.advance().Line
	nameTok, _ := p.expect(token.IDENT, "variable declaration")
	declType, hasType := types.Type{}, false
	if p.at(token.COLON) {
		p.advance()
		declType, hasType = p.parseRuneType()
	}
	p.expect(token.KW_IS_OF, "variable declaration")
	init := p.parseExpression()
	mutable := true
	if p.at(token.KW_IMMUTABLE) {
		p.advance()
		mutable = false
	}
	return ast.NewVarDecl(line, nameTok.Lexeme, init, declType, hasType, mutable)
}

func (p *Parser) parseANumberNamed() ast.Statement {
	line := p.advance().Line
	nameTok, _ := p.expect(token.IDENT, "variable declaration")
	p.expect(token.KW_IS_OF, "variable declaration")
	init := p.parseExpression()
	return ast.NewVarDecl(line, nameTok.Lexeme, init, types.Simple(types.Whole), true, true)
}

func (p *Parser) parseIf() ast.Statement {
	line := p.advance().Line
	cond := p.parseExpression()
	p.expect(token.KW_THEN, "if statement")
	then := p.parseBlock()
	var els *ast.Block
	if p.at(token.KW_ELSE_WHISPER) {
		p.advance()
		els = p.parseBlock()
	}
	return ast.NewIf(line, cond, then, els)
}

func (p *Parser) parsePrint() ast.Statement {
	line := p.advance().Line
	return ast.NewPrint(line, p.parseExpression())
}

func (p *Parser) parseWhile() ast.Statement {
	line := p.advance().Line
	cond := p.parseExpression()
	p.expect(token.KW_SO_SHALL, "while statement")
	body := p.parseBlock()
	return ast.NewWhileLoop(line, cond, body)
}

func (p *Parser) parseFor() ast.Statement {
	line := p.advance().Line
	varTok, _ := p.expect(token.IDENT, "for loop")
	p.expect(token.KW_FROM, "for loop")
	init := p.parseExpression()
	p.expect(token.KW_TO, "for loop")
	limit := p.parseExpression()
	p.expect(token.KW_BY, "for loop")
	step := p.parseExpression()
	dir := ast.Ascend
	switch p.cur().Type {
	case token.KW_ASCEND:
		p.advance()
	case token.KW_DESCEND:
		dir = ast.Descend
		p.advance()
	default:
		p.Diags.Errorf(p.cur().Line, "for loop must declare ascend or descend, found %q", p.cur().Lexeme)
	}
	body := p.parseBlock()
	return ast.NewForLoop(line, varTok.Lexeme, init, limit, step, dir, body)
}

func (p *Parser) parseDoWhile() ast.Statement {
	line := p.advance().Line
	body := p.parseBlock()
	var updateVar string
	var step ast.Expression
	dir := ast.Ascend
	hasUpdate := false
	if p.at(token.KW_AND_WITH_EACH_DAWN) {
		p.advance()
		hasUpdate = true
		varTok, _ := p.expect(token.IDENT, "do-while update clause")
		updateVar = varTok.Lexeme
		switch p.cur().Type {
		case token.KW_ASCEND:
			p.advance()
		case token.KW_DESCEND:
			dir = ast.Descend
			p.advance()
		}
		step = p.parseExpression()
	}
	p.expect(token.KW_UNTIL, "do-while loop")
	cond := p.parseExpression()
	return ast.NewDoWhileLoop(line, body, updateVar, step, dir, hasUpdate, cond)
}

func (p *Parser) parseSpellDefinition() ast.Statement {
	line := p.advance().Line
	nameTok, _ := p.expect(token.IDENT, "spell definition")
	p.expect(token.LPAREN, "spell definition")
	var params []ast.Param
	for !p.at(token.RPAREN) && !p.at(token.EOF) {
		pNameTok, _ := p.expect(token.IDENT, "spell parameter")
		param := ast.Param{Name: pNameTok.Lexeme}
		if p.at(token.COLON) {
			p.advance()
			if t, ok := p.parseRuneType(); ok {
				param.Type, param.HasType = t, true
			}
		}
		params = append(params, param)
	}
	p.expect(token.RPAREN, "spell definition")
	var ret types.Type
	hasRet := false
	if p.at(token.KW_RETURNING) {
		p.advance()
		ret, hasRet = p.parseRuneType()
	}
	body := p.parseBlock()
	return ast.NewSpellDefinition(line, nameTok.Lexeme, params, ret, hasRet, body)
}

func (p *Parser) parseImport() ast.Statement {
	line := p.advance().Line
	pathTok, _ := p.expect(token.STRING, "import")
	switch p.cur().Type {
	case token.KW_DRAW_ALL_KNOWLEDGE:
		p.advance()
		alias := ""
		hasAlias := false
		if p.at(token.KW_AS) {
			p.advance()
			aliasTok, _ := p.expect(token.IDENT, "import alias")
			alias, hasAlias = aliasTok.Lexeme, true
		}
		return ast.NewImportAll(line, pathTok.Lexeme, alias, hasAlias)
	case token.KW_TAKE_THE_SPELLS:
		p.advance()
		var names []string
		for p.at(token.IDENT) {
			names = append(names, p.advance().Lexeme)
		}
		return ast.NewImportSelective(line, pathTok.Lexeme, names)
	default:
		p.Diags.Errorf(p.cur().Line, "Unexpected token or missing block: expected %q or %q after import path", token.KW_DRAW_ALL_KNOWLEDGE, token.KW_TAKE_THE_SPELLS)
		return ast.NewImportAll(line, pathTok.Lexeme, "", false)
	}
}

func (p *Parser) parseInlineInclude() ast.Statement {
	line := p.advance().Line
	pathTok, _ := p.expect(token.STRING, "inline include")
	return ast.NewInlineInclude(line, pathTok.Lexeme)
}

func (p *Parser) parseTry() ast.Statement {
	line := p.advance().Line
	tryBlock := p.parseBlock()
	var catchVar string
	var catchBlock, finallyBlock *ast.Block
	if p.at(token.KW_CATCH_THE_CURSE) {
		p.advance()
		nameTok, _ := p.expect(token.IDENT, "catch clause")
		catchVar = nameTok.Lexeme
		p.expect(token.COLON, "catch clause")
		catchBlock = p.parseBlock()
	}
	if p.at(token.KW_FINALLY) {
		p.advance()
		finallyBlock = p.parseBlock()
	}
	if catchBlock == nil && finallyBlock == nil {
		p.Diags.Errorf(line, "Unexpected token or missing block: a Try: requires a Catch the curse as or a Finally:")
	}
	return ast.NewTryCatchFinally(line, tryBlock, catchVar, catchBlock, finallyBlock)
}

func (p *Parser) parseReturn() ast.Statement {
	line := p.advance().Line
	if p.canStartArgument() {
		return ast.NewReturn(line, p.parseExpression())
	}
	return ast.NewReturn(line, nil)
}

func (p *Parser) parseExpandRite() ast.Statement {
	line := p.advance().Line
	nameTok, _ := p.expect(token.IDENT, "expand rite")
	p.expect(token.KW_WITH, "expand rite")
	value := p.parseExpression()
	return ast.NewCollectionRite(line, ast.RiteArrayAppend, nameTok.Lexeme, nil, value)
}

func (p *Parser) parseRemoveRite() ast.Statement {
	line := p.advance().Line
	key := p.parseExpression()
	p.expect(token.KW_FROM, "remove rite")
	nameTok, _ := p.expect(token.IDENT, "remove rite")
	return ast.NewCollectionRite(line, ast.RiteArrayRemove, nameTok.Lexeme, key, nil)
}

func (p *Parser) parseAmendRite() ast.Statement {
	line := p.advance().Line
	nameTok, _ := p.expect(token.IDENT, "amend rite")
	p.expect(token.LBRACKET, "amend rite")
	key := p.parseExpression()
	p.expect(token.RBRACKET, "amend rite")
	p.expect(token.KW_TO, "amend rite")
	value := p.parseExpression()
	return ast.NewCollectionRite(line, ast.RiteMapAssign, nameTok.Lexeme, key, value)
}

func (p *Parser) parseEraseRite() ast.Statement {
	line := p.advance().Line
	key := p.parseExpression()
	p.expect(token.KW_FROM, "erase rite")
	nameTok, _ := p.expect(token.IDENT, "erase rite")
	return ast.NewCollectionRite(line, ast.RiteMapErase, nameTok.Lexeme, key, nil)
}
