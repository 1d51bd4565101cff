package parser

import (
	"github.com/dhamidi/quill/lang/ast"
	"github.com/dhamidi/quill/lang/token"
)

var typeDeclarationKeywords = token.NewSet(token.Class, token.Interface, token.Enum)

// parseTypeDeclarationRest parses a class, interface or enum declaration
// after its modifiers. The modifiers are checked by the caller.
func (p *Parser) parseTypeDeclarationRest(mods *ast.Node) (*ast.Node, error) {
	switch {
	case p.at(token.Class):
		return p.parseClassDeclaration(mods)
	case p.at(token.Interface):
		return p.parseInterfaceDeclaration(mods)
	case p.at(token.Enum):
		return p.parseEnumDeclaration(mods)
	}
	return nil, p.errorf("Expected %s.", typeDeclarationKeywords.Describe())
}

func declarationLocation(mods *ast.Node, kw token.Token) token.Location {
	if len(mods.Children) > 0 {
		return mods.Location
	}
	return kw.Location
}

func (p *Parser) parseClassDeclaration(mods *ast.Node) (*ast.Node, error) {
	kw := p.advance()
	id, err := p.parseIdentifier()
	if err != nil {
		return nil, err
	}
	decl := ast.New(ast.KindClassDecl, declarationLocation(mods, kw), mods, id)

	if p.at(token.LT) {
		params, err := p.parseTypeParameters()
		if err != nil {
			return nil, err
		}
		decl.AddChild(params)
	}
	if p.at(token.Extends) {
		ext := p.advance()
		t, err := p.parseClassType(false)
		if err != nil {
			return nil, err
		}
		decl.AddChild(ast.New(ast.KindExtendsClause, ext.Location, t))
	}
	if p.at(token.Implements) {
		impl := p.advance()
		list, err := p.parseClassTypeList(ast.KindImplementsClause, impl.Location)
		if err != nil {
			return nil, err
		}
		decl.AddChild(list)
	}

	body, err := p.parseClassBody()
	if err != nil {
		return nil, err
	}
	decl.AddChild(body)
	return decl, nil
}

func (p *Parser) parseInterfaceDeclaration(mods *ast.Node) (*ast.Node, error) {
	kw := p.advance()
	id, err := p.parseIdentifier()
	if err != nil {
		return nil, err
	}
	decl := ast.New(ast.KindInterfaceDecl, declarationLocation(mods, kw), mods, id)

	if p.at(token.LT) {
		params, err := p.parseTypeParameters()
		if err != nil {
			return nil, err
		}
		decl.AddChild(params)
	}
	if p.at(token.Extends) {
		ext := p.advance()
		list, err := p.parseClassTypeList(ast.KindExtendsClause, ext.Location)
		if err != nil {
			return nil, err
		}
		decl.AddChild(list)
	}

	lb, err := p.expect(token.LBrace)
	if err != nil {
		return nil, err
	}
	body := ast.New(ast.KindInterfaceBody, lb.Location)
	if err := p.parseMembersInto(body, true); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RBrace); err != nil {
		return nil, err
	}
	decl.AddChild(body)
	return decl, nil
}

func (p *Parser) parseEnumDeclaration(mods *ast.Node) (*ast.Node, error) {
	kw := p.advance()
	id, err := p.parseIdentifier()
	if err != nil {
		return nil, err
	}
	decl := ast.New(ast.KindEnumDecl, declarationLocation(mods, kw), mods, id)

	if p.at(token.Implements) {
		impl := p.advance()
		list, err := p.parseClassTypeList(ast.KindImplementsClause, impl.Location)
		if err != nil {
			return nil, err
		}
		decl.AddChild(list)
	}

	body, err := p.parseEnumBody()
	if err != nil {
		return nil, err
	}
	decl.AddChild(body)
	return decl, nil
}

// parseEnumBody parses { A, B(1), C { ... }, ; members }. A trailing comma
// after the last constant is allowed.
func (p *Parser) parseEnumBody() (*ast.Node, error) {
	lb, err := p.expect(token.LBrace)
	if err != nil {
		return nil, err
	}
	body := ast.New(ast.KindEnumBody, lb.Location)

	if p.at(token.Identifier) || p.at(token.At) {
		constants, err := parseList(p, isEnumConstantStart, "Expected identifier.", token.Comma, p.parseEnumConstant, identity[*ast.Node])
		if err != nil {
			return nil, err
		}
		for _, c := range constants {
			body.AddChild(c)
		}
		p.match(token.Comma)
	}
	if p.match(token.Semicolon) {
		if err := p.parseMembersInto(body, false); err != nil {
			return nil, err
		}
	}

	if _, err := p.expect(token.RBrace); err != nil {
		return nil, err
	}
	return body, nil
}

func isEnumConstantStart(tok token.Token) bool {
	return tok.Kind == token.Identifier || tok.Kind == token.At
}

func (p *Parser) parseEnumConstant() (*ast.Node, error) {
	loc := p.peek().Location
	annotations, err := p.parseAnnotations()
	if err != nil {
		return nil, err
	}
	id, err := p.parseIdentifier()
	if err != nil {
		return nil, err
	}
	c := ast.New(ast.KindEnumConstant, loc, annotations...)
	c.AddChild(id)
	if p.at(token.LParen) {
		args, err := p.parseArguments()
		if err != nil {
			return nil, err
		}
		c.AddChild(args)
	}
	if p.at(token.LBrace) {
		body, err := p.parseClassBody()
		if err != nil {
			return nil, err
		}
		c.AddChild(body)
	}
	return c, nil
}

func (p *Parser) parseClassBody() (*ast.Node, error) {
	lb, err := p.expect(token.LBrace)
	if err != nil {
		return nil, err
	}
	body := ast.New(ast.KindClassBody, lb.Location)
	if err := p.parseMembersInto(body, false); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RBrace); err != nil {
		return nil, err
	}
	return body, nil
}

func (p *Parser) parseMembersInto(body *ast.Node, inInterface bool) error {
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		if p.match(token.Semicolon) {
			continue
		}
		member, err := p.parseMember(inInterface)
		if err != nil {
			return err
		}
		body.AddChild(member)
	}
	return nil
}

// parseMember parses one class or interface body declaration. After the
// modifiers, the member kind is told apart by its keyword or, for methods
// and fields, by whether '(' follows the name.
func (p *Parser) parseMember(inInterface bool) (*ast.Node, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	switch {
	case p.at(token.LBrace) && !inInterface:
		block, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		return ast.New(ast.KindInstanceInitializer, block.Location, block), nil
	case p.at(token.Shared) && p.atN(1, token.LBrace) && !inInterface:
		kw := p.advance()
		block, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		return ast.New(ast.KindSharedInitializer, kw.Location, block), nil
	}

	mods, err := p.parseModifiers()
	if err != nil {
		return nil, err
	}

	switch {
	case p.at(token.Class):
		if err := p.restrictModifiers(mods, classModifiers); err != nil {
			return nil, err
		}
		return p.parseClassDeclaration(mods)
	case p.at(token.Interface):
		if err := p.restrictModifiers(mods, interfaceModifiers); err != nil {
			return nil, err
		}
		return p.parseInterfaceDeclaration(mods)
	case p.at(token.Enum):
		if err := p.restrictModifiers(mods, enumModifiers); err != nil {
			return nil, err
		}
		return p.parseEnumDeclaration(mods)
	}

	var typeParams *ast.Node
	if p.at(token.LT) {
		if typeParams, err = p.parseTypeParameters(); err != nil {
			return nil, err
		}
	}

	if p.at(token.Constructor) {
		if inInterface {
			return nil, p.errorf("Interfaces cannot declare constructors.")
		}
		if err := p.restrictModifiers(mods, constructorModifiers); err != nil {
			return nil, err
		}
		return p.parseConstructorDeclaration(mods, typeParams)
	}

	result, err := p.parseResultType()
	if err != nil {
		return nil, err
	}
	id, err := p.parseIdentifier()
	if err != nil {
		return nil, err
	}

	if p.at(token.LParen) {
		ctx := methodModifiers
		if inInterface {
			ctx = interfaceMethodModifiers
		}
		if err := p.restrictModifiers(mods, ctx); err != nil {
			return nil, err
		}
		return p.parseMethodRest(mods, typeParams, result, id)
	}

	if typeParams != nil {
		return nil, p.errorf("Expected '('.")
	}
	if result.Kind == ast.KindVoidType {
		return nil, p.errorAt(result.Location, "Fields cannot have type 'void'.")
	}
	ctx := fieldModifiers
	if inInterface {
		ctx = interfaceFieldModifiers
	}
	if err := p.restrictModifiers(mods, ctx); err != nil {
		return nil, err
	}
	return p.parseFieldRest(mods, result, id)
}

func memberLocation(mods, fallback *ast.Node) token.Location {
	if len(mods.Children) > 0 {
		return mods.Location
	}
	return fallback.Location
}

func (p *Parser) parseFieldRest(mods, t, id *ast.Node) (*ast.Node, error) {
	first, err := p.finishVariableDeclarator(id)
	if err != nil {
		return nil, err
	}
	field := ast.New(ast.KindFieldDecl, memberLocation(mods, t), mods, t, first)
	for p.at(token.Comma) && p.atN(1, token.Identifier) {
		p.advance()
		d, err := p.parseVariableDeclarator()
		if err != nil {
			return nil, err
		}
		field.AddChild(d)
	}
	if _, err := p.expect(token.Semicolon); err != nil {
		return nil, err
	}
	return field, nil
}

func (p *Parser) parseMethodRest(mods, typeParams, result, id *ast.Node) (*ast.Node, error) {
	loc := memberLocation(mods, result)
	if typeParams != nil && len(mods.Children) == 0 {
		loc = typeParams.Location
	}
	params, err := p.parseParameters()
	if err != nil {
		return nil, err
	}
	method := ast.New(ast.KindMethodDecl, loc, mods, typeParams, result, id, params)

	if p.at(token.Throws) {
		kw := p.advance()
		throws, err := p.parseClassTypeList(ast.KindThrowsList, kw.Location)
		if err != nil {
			return nil, err
		}
		method.AddChild(throws)
	}

	if p.match(token.Semicolon) {
		return method, nil
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	method.AddChild(body)
	return method, nil
}

func (p *Parser) parseConstructorDeclaration(mods, typeParams *ast.Node) (*ast.Node, error) {
	kw := p.advance()
	loc := declarationLocation(mods, kw)
	if typeParams != nil && len(mods.Children) == 0 {
		loc = typeParams.Location
	}
	params, err := p.parseParameters()
	if err != nil {
		return nil, err
	}
	ctor := ast.New(ast.KindConstructorDecl, loc, mods, typeParams, params)

	if p.at(token.Throws) {
		kw := p.advance()
		throws, err := p.parseClassTypeList(ast.KindThrowsList, kw.Location)
		if err != nil {
			return nil, err
		}
		ctor.AddChild(throws)
	}

	body, err := p.parseConstructorBody()
	if err != nil {
		return nil, err
	}
	ctor.AddChild(body)
	return ctor, nil
}

func isParameterStart(tok token.Token) bool {
	return tok.Kind == token.Final || tok.Kind == token.At || isTypeStart(tok)
}

// parseParameters parses a formal parameter list. Only the last parameter
// may be variadic; that is checked once the whole list is parsed.
func (p *Parser) parseParameters() (*ast.Node, error) {
	lp, err := p.expect(token.LParen)
	if err != nil {
		return nil, err
	}
	params := ast.New(ast.KindParameters, lp.Location)
	if !p.at(token.RParen) {
		list, err := parseList(p, isParameterStart, "Expected type.", token.Comma, p.parseFormalParameter, identity[*ast.Node])
		if err != nil {
			return nil, err
		}
		for _, param := range list {
			params.AddChild(param)
		}
	}
	if _, err := p.expect(token.RParen); err != nil {
		return nil, err
	}
	if err := p.checkVariadicLast(params); err != nil {
		return nil, err
	}
	return params, nil
}

func (p *Parser) checkVariadicLast(params *ast.Node) error {
	for i, param := range params.Children {
		if param.Op == token.Ellipsis && i != len(params.Children)-1 {
			return p.errorAt(param.Location, "Only the last parameter may be variadic.")
		}
	}
	return nil
}

// parseFormalParameter parses [final] Type [...] name. Lambda parameters may
// also use auto for the type.
func (p *Parser) parseFormalParameter() (*ast.Node, error) {
	loc := p.peek().Location
	mods, err := p.parseModifiers()
	if err != nil {
		return nil, err
	}
	if err := p.restrictModifiers(mods, parameterModifiers); err != nil {
		return nil, err
	}
	t, err := p.parseLocalType()
	if err != nil {
		return nil, err
	}
	param := ast.New(ast.KindParameter, loc, mods, t)
	if p.match(token.Ellipsis) {
		param.Op = token.Ellipsis
	}
	id, err := p.parseIdentifier()
	if err != nil {
		return nil, err
	}
	param.AddChild(id)
	return param, nil
}
