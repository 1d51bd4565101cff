package parser

import (
	"github.com/dhamidi/quill/lang/ast"
	"github.com/dhamidi/quill/lang/token"
)

func (p *Parser) parseBlock() (*ast.Node, error) {
	lb, err := p.expect(token.LBrace)
	if err != nil {
		return nil, err
	}
	block := ast.New(ast.KindBlock, lb.Location)
	if err := p.parseBlockStatementsInto(block); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RBrace); err != nil {
		return nil, err
	}
	return block, nil
}

// parseBlockStatementsInto appends statements to parent until a closing
// brace or a switch label.
func (p *Parser) parseBlockStatementsInto(parent *ast.Node) error {
	for !p.at(token.RBrace) && !p.at(token.Case) && !p.at(token.Default) && !p.at(token.EOF) {
		stmt, err := p.parseBlockStatement()
		if err != nil {
			return err
		}
		parent.AddChild(stmt)
	}
	return nil
}

// parseBlockStatement parses a local declaration or a statement.
func (p *Parser) parseBlockStatement() (*ast.Node, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	tok := p.peek()
	switch {
	case tok.Kind == token.Class || tok.Kind == token.Interface || tok.Kind == token.Enum:
		return p.parseLocalClass(ast.New(ast.KindModifiers, tok.Location))

	case tok.Kind == token.Auto || tok.Kind.Is(token.PrimitiveType):
		return p.parseLocalVariableStatement(ast.New(ast.KindModifiers, tok.Location))

	case tok.Kind == token.At || (isModifierKeyword(tok) && !(tok.Kind == token.Synchronized && p.atN(1, token.LParen))):
		mods, err := p.parseModifiers()
		if err != nil {
			return nil, err
		}
		if p.at(token.Class) || p.at(token.Interface) || p.at(token.Enum) {
			return p.parseLocalClass(mods)
		}
		return p.parseLocalVariableStatement(mods)

	case tok.Kind == token.Identifier && p.atN(1, token.Colon):
		id := identifierNode(p.advance())
		p.advance()
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		return ast.New(ast.KindLabeledStmt, id.Location, id, stmt), nil

	case tok.Kind == token.Identifier:
		return p.parseNameStatement(false)
	}
	return p.parseStatement()
}

func (p *Parser) parseLocalClass(mods *ast.Node) (*ast.Node, error) {
	if err := p.restrictModifiers(mods, localClassModifiers); err != nil {
		return nil, err
	}
	return p.parseTypeDeclarationRest(mods)
}

func (p *Parser) parseLocalVariableStatement(mods *ast.Node) (*ast.Node, error) {
	if err := p.restrictModifiers(mods, localVariableModifiers); err != nil {
		return nil, err
	}
	t, err := p.parseLocalType()
	if err != nil {
		return nil, err
	}
	decl, err := p.parseLocalVariableRest(mods, t)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Semicolon); err != nil {
		return nil, err
	}
	return decl, nil
}

func (p *Parser) parseLocalVariableRest(mods, t *ast.Node) (*ast.Node, error) {
	decl := ast.New(ast.KindLocalVarDecl, mods.Location, mods, t)
	if len(mods.Children) == 0 {
		decl.Location = t.Location
	}
	declarators, err := parseList(p, isIdentifier, "Expected identifier.", token.Comma, p.parseVariableDeclarator, identity[*ast.Node])
	if err != nil {
		return nil, err
	}
	for _, d := range declarators {
		decl.AddChild(d)
	}
	return decl, nil
}

// parseVariableDeclarator parses name [] ... [= initializer].
func (p *Parser) parseVariableDeclarator() (*ast.Node, error) {
	id, err := p.parseIdentifier()
	if err != nil {
		return nil, err
	}
	return p.finishVariableDeclarator(id)
}

func (p *Parser) finishVariableDeclarator(id *ast.Node) (*ast.Node, error) {
	d := ast.New(ast.KindVariableDeclarator, id.Location, id)
	if p.at(token.LBracket) && p.atN(1, token.RBracket) {
		return nil, p.errorf("Array dimensions belong to the type, not the variable name.")
	}
	if !p.match(token.Assign) {
		return d, nil
	}
	init, err := p.parseVariableInitializer()
	if err != nil {
		return nil, err
	}
	d.AddChild(init)
	return d, nil
}

// parseNameStatement handles statements that start with an identifier. The
// leading tokens are parsed as a data type: a name chain with optional type
// arguments and dimensions. An identifier after the type makes this a local
// variable declaration. Otherwise the chain was the start of an expression
// and primary parsing resumes from it.
func (p *Parser) parseNameStatement(inConstructor bool) (*ast.Node, error) {
	name, err := p.parseAmbiguousName()
	if err != nil {
		return nil, err
	}

	isType := p.at(token.LT) || (p.at(token.LBracket) && p.atN(1, token.RBracket)) || p.at(token.Identifier)
	if !isType {
		res, err := p.resolveName(name)
		if err != nil {
			return nil, err
		}
		return p.finishExpressionStatement(res, inConstructor)
	}

	t, err := p.finishClassType(name, false)
	if err != nil {
		return nil, err
	}
	t = p.parseDims(t)
	if !p.at(token.Identifier) {
		return nil, p.errorf("Expected identifier.")
	}
	decl, err := p.parseLocalVariableRest(ast.New(ast.KindModifiers, name.Location), t)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Semicolon); err != nil {
		return nil, err
	}
	return decl, nil
}

// finishExpressionStatement completes a statement whose primary has already
// been parsed. A constructor invocation handed back by the primary parser is
// accepted only when inConstructor is set.
func (p *Parser) finishExpressionStatement(res invocationResult, inConstructor bool) (*ast.Node, error) {
	if partial, ok := res.(partialConstructorInvocation); ok && inConstructor {
		return p.finishConstructorInvocation(partial)
	}
	prim, err := p.complete(res)
	if err != nil {
		return nil, err
	}
	expr, err := p.parseExpressionFrom(prim)
	if err != nil {
		return nil, err
	}
	return p.finishStatementExpression(expr)
}

func (p *Parser) finishStatementExpression(expr *ast.Node) (*ast.Node, error) {
	if !isStatementExpression(expr) {
		return nil, p.errorAt(expr.Location, "Not a statement.")
	}
	if _, err := p.expect(token.Semicolon); err != nil {
		return nil, err
	}
	return ast.New(ast.KindExprStmt, expr.Location, expr), nil
}

// finishConstructorInvocation parses the arguments of an explicit
// constructor invocation whose qualifier and keyword are already consumed.
func (p *Parser) finishConstructorInvocation(partial partialConstructorInvocation) (*ast.Node, error) {
	args, err := p.parseArguments()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Semicolon); err != nil {
		return nil, err
	}
	loc := partial.keyword.Location
	switch {
	case partial.primary != nil:
		loc = partial.primary.Location
	case partial.typeArgs != nil:
		loc = partial.typeArgs.Location
	}
	return ast.NewOp(ast.KindExplicitConstructorInvocation, partial.keyword.Kind, loc, partial.primary, partial.typeArgs, args), nil
}

// parseConstructorFirstStatement parses the first statement of a
// constructor body, the only place an explicit constructor invocation may
// appear.
func (p *Parser) parseConstructorFirstStatement() (*ast.Node, error) {
	tok := p.peek()
	switch {
	case tok.Kind == token.LT:
		targs, err := p.parseTypeArguments(false)
		if err != nil {
			return nil, err
		}
		if !p.at(token.Super) && !p.at(token.Constructor) {
			return nil, p.errorf("Expected 'constructor' or 'super'.")
		}
		kw := p.advance()
		return p.finishConstructorInvocation(partialConstructorInvocation{typeArgs: targs, keyword: kw})

	case (tok.Kind == token.Super || tok.Kind == token.Constructor) && p.atN(1, token.LParen):
		kw := p.advance()
		return p.finishConstructorInvocation(partialConstructorInvocation{keyword: kw})

	case tok.Kind == token.Identifier && !p.atN(1, token.Colon):
		return p.parseNameStatement(true)

	case tok.Kind == token.LParen || tok.Kind == token.New || tok.Kind == token.Self || tok.Kind.Is(token.Literal):
		res, err := p.parsePrimaryResult()
		if err != nil {
			return nil, err
		}
		return p.finishExpressionStatement(res, true)
	}
	return p.parseBlockStatement()
}

func (p *Parser) parseConstructorBody() (*ast.Node, error) {
	lb, err := p.expect(token.LBrace)
	if err != nil {
		return nil, err
	}
	body := ast.New(ast.KindConstructorBody, lb.Location)
	if !p.at(token.RBrace) && !p.at(token.EOF) {
		first, err := p.parseConstructorFirstStatement()
		if err != nil {
			return nil, err
		}
		body.AddChild(first)
	}
	if err := p.parseBlockStatementsInto(body); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RBrace); err != nil {
		return nil, err
	}
	return body, nil
}

// parseStatement parses a statement that is not a declaration.
func (p *Parser) parseStatement() (*ast.Node, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	tok := p.peek()
	switch tok.Kind {
	case token.LBrace:
		return p.parseBlock()
	case token.Semicolon:
		p.advance()
		return ast.New(ast.KindEmptyStmt, tok.Location), nil
	case token.If:
		return p.parseIf()
	case token.While:
		return p.parseWhile()
	case token.Do:
		return p.parseDo()
	case token.For:
		return p.parseFor()
	case token.Switch:
		sw, err := p.parseSwitch(ast.KindSwitchStmt)
		if err != nil {
			return nil, err
		}
		if p.at(token.Dot) || p.at(token.LBracket) || p.at(token.ColonColon) {
			return nil, p.errorAt(sw.Location, "Not a statement.")
		}
		return sw, nil
	case token.Return:
		return p.parseKeywordExpression(ast.KindReturnStmt, true)
	case token.Throw:
		return p.parseKeywordExpression(ast.KindThrowStmt, false)
	case token.Yield:
		return p.parseKeywordExpression(ast.KindYieldStmt, false)
	case token.Break:
		return p.parseJump(ast.KindBreakStmt)
	case token.Continue:
		return p.parseJump(ast.KindContinueStmt)
	case token.Synchronized:
		return p.parseSynchronized()
	case token.Try:
		return p.parseTry()
	case token.Assert:
		return p.parseAssert()
	case token.Identifier:
		if p.atN(1, token.Colon) {
			return p.parseBlockStatement()
		}
	}

	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return p.finishStatementExpression(expr)
}

// parseInit parses the optional braced block that may precede the condition
// of if and while.
func (p *Parser) parseInit() (*ast.Node, error) {
	if !p.at(token.LBrace) {
		return nil, nil
	}
	block, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return ast.New(ast.KindInit, block.Location, block), nil
}

func (p *Parser) parseCondition() (*ast.Node, error) {
	if _, err := p.expect(token.LParen); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RParen); err != nil {
		return nil, err
	}
	return cond, nil
}

// parseIf binds an else to the nearest if: the inner if always takes an
// else that follows it.
func (p *Parser) parseIf() (*ast.Node, error) {
	ifTok := p.advance()
	init, err := p.parseInit()
	if err != nil {
		return nil, err
	}
	cond, err := p.parseCondition()
	if err != nil {
		return nil, err
	}
	then, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	stmt := ast.New(ast.KindIfStmt, ifTok.Location, init, cond, then)
	if p.match(token.Else) {
		els, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmt.AddChild(els)
	}
	return stmt, nil
}

func (p *Parser) parseWhile() (*ast.Node, error) {
	whileTok := p.advance()
	init, err := p.parseInit()
	if err != nil {
		return nil, err
	}
	cond, err := p.parseCondition()
	if err != nil {
		return nil, err
	}
	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	return ast.New(ast.KindWhileStmt, whileTok.Location, init, cond, body), nil
}

func (p *Parser) parseDo() (*ast.Node, error) {
	doTok := p.advance()
	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.While); err != nil {
		return nil, err
	}
	cond, err := p.parseCondition()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Semicolon); err != nil {
		return nil, err
	}
	return ast.New(ast.KindDoStmt, doTok.Location, body, cond), nil
}

// parseFor parses both for (init; cond; update) and for (T x : expr). The
// two are told apart by the ':' after the first declarator name.
func (p *Parser) parseFor() (*ast.Node, error) {
	forTok := p.advance()
	if _, err := p.expect(token.LParen); err != nil {
		return nil, err
	}

	init := ast.New(ast.KindForInit, p.peek().Location)
	if !p.at(token.Semicolon) {
		mods, t, prim, err := p.parseForHeader()
		if err != nil {
			return nil, err
		}
		if t != nil {
			id, err := p.parseIdentifier()
			if err != nil {
				return nil, err
			}
			if p.match(token.Colon) {
				return p.finishEnhancedFor(forTok, mods, t, id)
			}
			decl, err := p.finishForDeclaration(mods, t, id)
			if err != nil {
				return nil, err
			}
			init.AddChild(decl)
		} else {
			exprs, err := p.parseStatementExpressionList(prim)
			if err != nil {
				return nil, err
			}
			for _, e := range exprs {
				init.AddChild(e)
			}
		}
	}
	if _, err := p.expect(token.Semicolon); err != nil {
		return nil, err
	}

	var cond *ast.Node
	if !p.at(token.Semicolon) {
		var err error
		if cond, err = p.parseExpression(); err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(token.Semicolon); err != nil {
		return nil, err
	}

	update := ast.New(ast.KindForUpdate, p.peek().Location)
	if !p.at(token.RParen) {
		exprs, err := p.parseStatementExpressionList(nil)
		if err != nil {
			return nil, err
		}
		for _, e := range exprs {
			update.AddChild(e)
		}
	}
	if _, err := p.expect(token.RParen); err != nil {
		return nil, err
	}

	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	return ast.New(ast.KindForStmt, forTok.Location, init, cond, update, body), nil
}

// parseForHeader decides whether a for header or resource starts with a
// declaration. For a declaration it returns the modifiers and type. When the
// header starts with a name that is not a type, the primary resumed from it
// is returned instead. All three are nil for any other expression start.
func (p *Parser) parseForHeader() (mods, t, prim *ast.Node, err error) {
	tok := p.peek()
	switch {
	case tok.Kind == token.Final || tok.Kind == token.At:
		if mods, err = p.parseModifiers(); err != nil {
			return nil, nil, nil, err
		}
		if err = p.restrictModifiers(mods, localVariableModifiers); err != nil {
			return nil, nil, nil, err
		}
		if t, err = p.parseLocalType(); err != nil {
			return nil, nil, nil, err
		}
		return mods, t, nil, nil

	case tok.Kind == token.Auto || tok.Kind.Is(token.PrimitiveType):
		if t, err = p.parseLocalType(); err != nil {
			return nil, nil, nil, err
		}
		return ast.New(ast.KindModifiers, tok.Location), t, nil, nil

	case tok.Kind == token.Identifier:
		name, err := p.parseAmbiguousName()
		if err != nil {
			return nil, nil, nil, err
		}
		if p.at(token.LT) || (p.at(token.LBracket) && p.atN(1, token.RBracket)) || p.at(token.Identifier) {
			t, err := p.finishClassType(name, false)
			if err != nil {
				return nil, nil, nil, err
			}
			return ast.New(ast.KindModifiers, tok.Location), p.parseDims(t), nil, nil
		}
		res, err := p.resolveName(name)
		if err != nil {
			return nil, nil, nil, err
		}
		prim, err := p.complete(res)
		if err != nil {
			return nil, nil, nil, err
		}
		return nil, nil, prim, nil
	}
	return nil, nil, nil, nil
}

func (p *Parser) finishForDeclaration(mods, t, id *ast.Node) (*ast.Node, error) {
	first, err := p.finishVariableDeclarator(id)
	if err != nil {
		return nil, err
	}
	decl := ast.New(ast.KindLocalVarDecl, t.Location, mods, t, first)
	for p.at(token.Comma) && p.atN(1, token.Identifier) {
		p.advance()
		d, err := p.parseVariableDeclarator()
		if err != nil {
			return nil, err
		}
		decl.AddChild(d)
	}
	return decl, nil
}

func (p *Parser) finishEnhancedFor(forTok token.Token, mods, t, id *ast.Node) (*ast.Node, error) {
	decl := ast.New(ast.KindLocalVarDecl, t.Location, mods, t, ast.New(ast.KindVariableDeclarator, id.Location, id))
	iterable, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RParen); err != nil {
		return nil, err
	}
	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	return ast.New(ast.KindEnhancedForStmt, forTok.Location, decl, iterable, body), nil
}

// parseStatementExpressionList parses a comma separated list of statement
// expressions. seed is an already parsed primary for the first one.
func (p *Parser) parseStatementExpressionList(seed *ast.Node) ([]*ast.Node, error) {
	var result []*ast.Node
	for {
		expr, err := p.parseExpressionFrom(seed)
		if err != nil {
			return nil, err
		}
		if !isStatementExpression(expr) {
			return nil, p.errorAt(expr.Location, "Not a statement.")
		}
		result = append(result, expr)
		seed = nil
		if !p.match(token.Comma) {
			return result, nil
		}
	}
}

func (p *Parser) parseKeywordExpression(kind ast.NodeKind, optional bool) (*ast.Node, error) {
	kw := p.advance()
	stmt := ast.New(kind, kw.Location)
	if !optional || !p.at(token.Semicolon) {
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		stmt.AddChild(expr)
	}
	if _, err := p.expect(token.Semicolon); err != nil {
		return nil, err
	}
	return stmt, nil
}

func (p *Parser) parseJump(kind ast.NodeKind) (*ast.Node, error) {
	kw := p.advance()
	stmt := ast.New(kind, kw.Location)
	if p.at(token.Identifier) {
		stmt.AddChild(identifierNode(p.advance()))
	}
	if _, err := p.expect(token.Semicolon); err != nil {
		return nil, err
	}
	return stmt, nil
}

func (p *Parser) parseSynchronized() (*ast.Node, error) {
	kw := p.advance()
	lock, err := p.parseCondition()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return ast.New(ast.KindSynchronizedStmt, kw.Location, lock, body), nil
}

func (p *Parser) parseAssert() (*ast.Node, error) {
	kw := p.advance()
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	stmt := ast.New(ast.KindAssertStmt, kw.Location, cond)
	if p.match(token.Colon) {
		msg, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		stmt.AddChild(msg)
	}
	if _, err := p.expect(token.Semicolon); err != nil {
		return nil, err
	}
	return stmt, nil
}

func (p *Parser) parseTry() (*ast.Node, error) {
	kw := p.advance()
	stmt := ast.New(ast.KindTryStmt, kw.Location)
	if p.at(token.LParen) {
		resources, err := p.parseResourceSpec()
		if err != nil {
			return nil, err
		}
		stmt.AddChild(resources)
	}
	block, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	stmt.AddChild(block)

	for p.at(token.Catch) {
		c, err := p.parseCatch()
		if err != nil {
			return nil, err
		}
		stmt.AddChild(c)
	}
	if p.at(token.Finally) {
		f := p.advance()
		block, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		stmt.AddChild(ast.New(ast.KindFinallyClause, f.Location, block))
	}

	if len(stmt.Children) == 1 {
		return nil, p.errorf("Expected 'catch' or 'finally'.")
	}
	return stmt, nil
}

// parseResourceSpec parses ( resource ; resource [;] ).
func (p *Parser) parseResourceSpec() (*ast.Node, error) {
	lp := p.advance()
	spec := ast.New(ast.KindResourceSpec, lp.Location)
	for {
		r, err := p.parseResource()
		if err != nil {
			return nil, err
		}
		spec.AddChild(r)
		if !p.match(token.Semicolon) || p.at(token.RParen) {
			break
		}
	}
	if _, err := p.expect(token.RParen); err != nil {
		return nil, err
	}
	return spec, nil
}

// parseResource parses a resource declaration T x = e, or a reference to an
// existing variable.
func (p *Parser) parseResource() (*ast.Node, error) {
	loc := p.peek().Location
	mods, t, prim, err := p.parseForHeader()
	if err != nil {
		return nil, err
	}
	if t == nil {
		if prim == nil {
			if !p.at(token.Self) {
				return nil, p.errorf("Expected resource.")
			}
			if prim, err = p.parsePrimary(); err != nil {
				return nil, err
			}
		}
		if prim.Kind != ast.KindExpressionName && prim.Kind != ast.KindFieldAccess {
			return nil, p.errorAt(prim.Location, "Expected resource.")
		}
		return ast.New(ast.KindResource, loc, prim), nil
	}

	id, err := p.parseIdentifier()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Assign); err != nil {
		return nil, err
	}
	init, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	d := ast.New(ast.KindVariableDeclarator, id.Location, id, init)
	return ast.New(ast.KindResource, loc, ast.New(ast.KindLocalVarDecl, t.Location, mods, t, d)), nil
}

// parseCatch parses catch (final A | B e) { ... }.
func (p *Parser) parseCatch() (*ast.Node, error) {
	kw := p.advance()
	if _, err := p.expect(token.LParen); err != nil {
		return nil, err
	}
	mods, err := p.parseModifiers()
	if err != nil {
		return nil, err
	}
	if err := p.restrictModifiers(mods, parameterModifiers); err != nil {
		return nil, err
	}

	types := ast.New(ast.KindCatchType, p.peek().Location)
	for {
		t, err := p.parseClassType(false)
		if err != nil {
			return nil, err
		}
		types.AddChild(t)
		if !p.match(token.BitOr) {
			break
		}
	}
	id, err := p.parseIdentifier()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RParen); err != nil {
		return nil, err
	}
	block, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	param := ast.New(ast.KindCatchParameter, types.Location, mods, types, id)
	return ast.New(ast.KindCatchClause, kw.Location, param, block), nil
}
