package parser

import (
	"github.com/dhamidi/quill/lang/ast"
	"github.com/dhamidi/quill/lang/token"
)

// invocationResult is what parsing a primary yields. Most of the time it is
// a complete expression. When the primary turns out to be the qualifier of
// an explicit constructor invocation (p.super(...), p.<T>super(...)), the
// nodes built so far are handed back as a partialConstructorInvocation and
// the caller decides whether that is allowed where it stands.
type invocationResult interface {
	invocationResult()
}

type methodInvocation struct {
	node *ast.Node
}

type partialConstructorInvocation struct {
	primary  *ast.Node // nil for an unqualified invocation
	typeArgs *ast.Node
	keyword  token.Token
}

func (methodInvocation) invocationResult()             {}
func (partialConstructorInvocation) invocationResult() {}

func (p *Parser) complete(res invocationResult) (*ast.Node, error) {
	switch r := res.(type) {
	case methodInvocation:
		return r.node, nil
	case partialConstructorInvocation:
		return nil, p.errorAt(r.keyword.Location, "Explicit constructor invocation is only allowed as the first statement of a constructor.")
	}
	panic("parser: unknown invocation result")
}

func (p *Parser) parsePrimary() (*ast.Node, error) {
	res, err := p.parsePrimaryResult()
	if err != nil {
		return nil, err
	}
	return p.complete(res)
}

func (p *Parser) parsePrimaryResult() (invocationResult, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	tok := p.peek()
	switch {
	case tok.Kind.Is(token.Literal):
		p.advance()
		lit := ast.NewValue(ast.KindLiteral, tok.Location, tok.Text)
		lit.Op = tok.Kind
		return p.parseTrailing(lit)

	case tok.Kind == token.Self:
		p.advance()
		return p.parseTrailing(ast.New(ast.KindSelf, tok.Location))

	case tok.Kind == token.Super:
		p.advance()
		if p.at(token.LParen) {
			p.log.Debugf("constructor invocation handed back at %s", tok.Location)
			return partialConstructorInvocation{keyword: tok}, nil
		}
		return p.parseSuperAccess(ast.New(ast.KindSuper, tok.Location))

	case tok.Kind == token.Constructor && p.atN(1, token.LParen):
		p.advance()
		return partialConstructorInvocation{keyword: tok}, nil

	case tok.Kind == token.LParen:
		return p.parseParenthesized()

	case tok.Kind == token.Identifier:
		if p.atN(1, token.Arrow) && !p.inCaseLabel {
			id := identifierNode(p.advance())
			params := ast.New(ast.KindLambdaParameters, id.Location, id)
			lambda, err := p.parseLambdaBody(params)
			if err != nil {
				return nil, err
			}
			return methodInvocation{lambda}, nil
		}
		name, err := p.parseAmbiguousName()
		if err != nil {
			return nil, err
		}
		return p.resolveName(name)

	case tok.Kind == token.New:
		n, err := p.parseNew(nil)
		if err != nil {
			return nil, err
		}
		return p.parseTrailing(n)

	case tok.Kind == token.Switch:
		n, err := p.parseSwitch(ast.KindSwitchExpr)
		if err != nil {
			return nil, err
		}
		return p.parseTrailing(n)

	case tok.Kind.Is(token.PrimitiveType):
		t := p.parseDims(primitiveNode(p.advance()))
		return p.parseTypeSuffix(t)

	case tok.Kind == token.Void:
		p.advance()
		return p.parseTypeSuffix(ast.NewValue(ast.KindVoidType, tok.Location, tok.Text))
	}

	return nil, p.errorf("Expected expression.")
}

// resolveName decides what an ambiguous name chain denotes by looking at
// the tokens that follow it.
func (p *Parser) resolveName(name *ast.Node) (invocationResult, error) {
	switch {
	case p.at(token.LParen):
		prefix, id := splitName(name)
		args, err := p.parseArguments()
		if err != nil {
			return nil, err
		}
		return p.parseTrailing(ast.New(ast.KindMethodInvocation, name.Location, prefix, id, args))

	case p.at(token.Dot) && p.atN(1, token.Self):
		p.advance()
		p.advance()
		return p.parseTrailing(ast.New(ast.KindQualifiedSelf, name.Location, toTypeName(name)))

	case p.at(token.Dot) && p.atN(1, token.Class):
		p.advance()
		p.advance()
		t := ast.New(ast.KindClassType, name.Location, toTypeName(name))
		return p.parseTrailing(ast.New(ast.KindClassLiteral, name.Location, t))

	case p.at(token.Dot) && p.atN(1, token.Super):
		if p.atN(2, token.LParen) {
			p.advance()
			kw := p.advance()
			p.log.Debugf("constructor invocation handed back at %s", kw.Location)
			return partialConstructorInvocation{primary: toExpressionName(name), keyword: kw}, nil
		}
		p.advance()
		p.advance()
		return p.parseSuperAccess(ast.New(ast.KindSuper, name.Location, toTypeName(name)))

	case p.at(token.Dot) && p.atN(1, token.LT):
		p.advance()
		return p.parseGenericInvocation(name, toExpressionName(name))

	case p.at(token.ColonColon):
		ref, err := p.parseMethodReference(name)
		if err != nil {
			return nil, err
		}
		return p.parseTrailing(ref)

	case p.at(token.LBracket) && p.atN(1, token.RBracket):
		t := p.parseDims(ast.New(ast.KindClassType, name.Location, toTypeName(name)))
		return p.parseTypeSuffix(t)

	case p.at(token.LT):
		// List<String>::size; otherwise '<' is a comparison.
		if t, ok := p.try(func() (*ast.Node, error) { return p.parseReferenceType(name) }); ok {
			return p.parseTypeSuffix(t)
		}
	}

	return p.parseTrailing(toExpressionName(name))
}

// parseReferenceType finishes name as a parameterized type that must be
// followed by '::'.
func (p *Parser) parseReferenceType(name *ast.Node) (*ast.Node, error) {
	t, err := p.finishClassType(name, false)
	if err != nil {
		return nil, err
	}
	t = p.parseDims(t)
	if !p.at(token.ColonColon) {
		return nil, p.errorf("Expected '::'.")
	}
	return t, nil
}

// parseGenericInvocation parses the <T>m(...) after "receiver." where the
// current token is '<'. If the type arguments are followed by super or
// constructor, the receiver and arguments are handed back. receiver keeps
// an ambiguous name chain; qualifier is the form used if the call turns out
// to be a constructor invocation.
func (p *Parser) parseGenericInvocation(receiver, qualifier *ast.Node) (invocationResult, error) {
	targs, err := p.parseTypeArguments(false)
	if err != nil {
		return nil, err
	}
	if p.at(token.Super) && p.atN(1, token.LParen) {
		kw := p.advance()
		p.log.Debugf("constructor invocation handed back at %s", kw.Location)
		return partialConstructorInvocation{primary: qualifier, typeArgs: targs, keyword: kw}, nil
	}
	id, err := p.parseIdentifier()
	if err != nil {
		return nil, err
	}
	args, err := p.parseArguments()
	if err != nil {
		return nil, err
	}
	return p.parseTrailing(ast.New(ast.KindMethodInvocation, receiver.Location, receiver, targs, id, args))
}

// parseTypeSuffix finishes int.class, void.class, String[].class and
// int[]::new, where only a class literal or method reference may follow
// the type.
func (p *Parser) parseTypeSuffix(t *ast.Node) (invocationResult, error) {
	switch {
	case p.at(token.Dot) && p.atN(1, token.Class):
		p.advance()
		p.advance()
		return p.parseTrailing(ast.New(ast.KindClassLiteral, t.Location, t))
	case p.at(token.ColonColon) && t.Kind != ast.KindVoidType:
		ref, err := p.parseMethodReference(t)
		if err != nil {
			return nil, err
		}
		return p.parseTrailing(ref)
	}
	return nil, p.errorf("Expected '.class' or '::'.")
}

// parseSuperAccess continues super or T.super, which must be followed by a
// member access or a method reference.
func (p *Parser) parseSuperAccess(super *ast.Node) (invocationResult, error) {
	if !p.at(token.Dot) && !p.at(token.ColonColon) {
		return nil, p.errorf("Expected '.' or '::'.")
	}
	return p.parseTrailing(super)
}

// parseTrailing applies member access, invocation, element access, method
// reference and qualified creation suffixes to prim, left to right.
func (p *Parser) parseTrailing(prim *ast.Node) (invocationResult, error) {
	for {
		switch {
		case p.at(token.Dot) && p.atN(1, token.New):
			p.advance()
			n, err := p.parseNew(prim)
			if err != nil {
				return nil, err
			}
			prim = n

		case p.at(token.Dot) && p.atN(1, token.Identifier):
			p.advance()
			id := identifierNode(p.advance())
			if !p.at(token.LParen) {
				prim = ast.New(ast.KindFieldAccess, prim.Location, prim, id)
				continue
			}
			args, err := p.parseArguments()
			if err != nil {
				return nil, err
			}
			prim = ast.New(ast.KindMethodInvocation, prim.Location, prim, id, args)

		case p.at(token.Dot) && p.atN(1, token.LT):
			p.advance()
			return p.parseGenericInvocation(prim, prim)

		case p.at(token.Dot) && p.atN(1, token.Super) && p.atN(2, token.LParen):
			p.advance()
			kw := p.advance()
			p.log.Debugf("constructor invocation handed back at %s", kw.Location)
			return partialConstructorInvocation{primary: prim, keyword: kw}, nil

		case p.at(token.LBracket):
			p.advance()
			index, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(token.RBracket); err != nil {
				return nil, err
			}
			prim = ast.New(ast.KindElementAccess, prim.Location, prim, index)

		case p.at(token.ColonColon):
			ref, err := p.parseMethodReference(prim)
			if err != nil {
				return nil, err
			}
			prim = ref

		default:
			return methodInvocation{prim}, nil
		}
	}
}

// parseMethodReference parses ::[<T>]name and ::new after target.
func (p *Parser) parseMethodReference(target *ast.Node) (*ast.Node, error) {
	if _, err := p.expect(token.ColonColon); err != nil {
		return nil, err
	}
	ref := ast.New(ast.KindMethodReference, target.Location, target)
	if p.at(token.LT) {
		targs, err := p.parseTypeArguments(false)
		if err != nil {
			return nil, err
		}
		ref.AddChild(targs)
	}
	if p.match(token.New) {
		ref.Op = token.New
		return ref, nil
	}
	id, err := p.parseIdentifier()
	if err != nil {
		return nil, err
	}
	ref.AddChild(id)
	return ref, nil
}

// parseArguments parses a parenthesised, comma separated argument list.
func (p *Parser) parseArguments() (*ast.Node, error) {
	lp, err := p.expect(token.LParen)
	if err != nil {
		return nil, err
	}
	saved := p.inCaseLabel
	p.inCaseLabel = false
	defer func() { p.inCaseLabel = saved }()

	args := ast.New(ast.KindArguments, lp.Location)
	if !p.at(token.RParen) {
		exprs, err := parseList(p, isExpressionStart, "Expected expression.", token.Comma, p.parseExpression, identity[*ast.Node])
		if err != nil {
			return nil, err
		}
		for _, e := range exprs {
			args.AddChild(e)
		}
	}
	if _, err := p.expect(token.RParen); err != nil {
		return nil, err
	}
	return args, nil
}

// parseParenthesized handles everything that starts with '(': a
// parenthesised expression or a lambda with parenthesised parameters. The
// contents are parsed as a list first; a following '->' turns the list into
// lambda parameters.
func (p *Parser) parseParenthesized() (invocationResult, error) {
	lp := p.advance()
	inCase := p.inCaseLabel
	p.inCaseLabel = false

	var items []*ast.Node
	if !p.at(token.RParen) {
		var err error
		items, err = parseList(p, isParenItemStart, "Expected expression.", token.Comma, p.parseParenItem, identity[*ast.Node])
		if err != nil {
			return nil, err
		}
	}
	p.inCaseLabel = inCase
	if _, err := p.expect(token.RParen); err != nil {
		return nil, err
	}

	if p.at(token.Arrow) && !p.inCaseLabel {
		params := ast.NewOp(ast.KindLambdaParameters, token.LParen, lp.Location)
		for _, item := range items {
			param, err := lambdaParameter(p, item)
			if err != nil {
				return nil, err
			}
			params.AddChild(param)
		}
		if err := p.checkVariadicLast(params); err != nil {
			return nil, err
		}
		lambda, err := p.parseLambdaBody(params)
		if err != nil {
			return nil, err
		}
		return methodInvocation{lambda}, nil
	}

	switch {
	case len(items) == 0:
		return nil, p.errorf("Expected '->'.")
	case len(items) > 1:
		return nil, p.errorAt(items[1].Location, "Expected ')'.")
	case items[0].Kind == ast.KindParameter:
		return nil, p.errorf("Expected '->'.")
	}
	return p.parseTrailing(ast.New(ast.KindParenExpr, lp.Location, items[0]))
}

func isParenItemStart(tok token.Token) bool {
	return tok.Kind.IsExpressionStart() || tok.Kind == token.Final || tok.Kind == token.Auto || tok.Kind == token.At
}

// parseParenItem parses one element of a parenthesised list: an expression,
// or a typed lambda parameter. A name chain that continues as a type (type
// arguments, dims or '...') and is followed by a name and then ',' or ')' is
// taken as a parameter; anything else is reparsed as an expression.
func (p *Parser) parseParenItem() (*ast.Node, error) {
	tok := p.peek()
	typed := tok.Kind == token.Final || tok.Kind == token.Auto || tok.Kind == token.At ||
		(tok.Kind.Is(token.PrimitiveType) && (p.atN(1, token.Identifier) || p.atN(1, token.LBracket) || p.atN(1, token.Ellipsis)))
	if typed {
		return p.parseFormalParameter()
	}
	if tok.Kind == token.Identifier && !p.atN(1, token.Comma) && !p.atN(1, token.RParen) {
		if param, ok := p.try(p.parseClassTypedParameter); ok {
			return param, nil
		}
	}
	return p.parseExpression()
}

// parseClassTypedParameter parses Name[<...>][[]...][...] name where the name
// is followed by ',' or ')'.
func (p *Parser) parseClassTypedParameter() (*ast.Node, error) {
	name, err := p.parseAmbiguousName()
	if err != nil {
		return nil, err
	}
	t, err := p.finishClassType(name, false)
	if err != nil {
		return nil, err
	}
	t = p.parseDims(t)
	param := ast.New(ast.KindParameter, name.Location, ast.New(ast.KindModifiers, name.Location), t)
	if p.match(token.Ellipsis) {
		param.Op = token.Ellipsis
	}
	if !p.at(token.Identifier) || !(p.atN(1, token.Comma) || p.atN(1, token.RParen)) {
		return nil, p.errorf("Expected lambda parameter.")
	}
	param.AddChild(identifierNode(p.advance()))
	return param, nil
}

func lambdaParameter(p *Parser, item *ast.Node) (*ast.Node, error) {
	switch {
	case item.Kind == ast.KindParameter:
		return item, nil
	case item.Kind == ast.KindExpressionName && isSimpleName(item):
		return item.Children[0], nil
	}
	return nil, p.errorAt(item.Location, "Expected lambda parameter.")
}

func (p *Parser) parseLambdaBody(params *ast.Node) (*ast.Node, error) {
	if _, err := p.expect(token.Arrow); err != nil {
		return nil, err
	}
	var body *ast.Node
	var err error
	if p.at(token.LBrace) {
		body, err = p.parseBlock()
	} else {
		body, err = p.parseExpression()
	}
	if err != nil {
		return nil, err
	}
	return ast.New(ast.KindLambdaExpr, params.Location, params, body), nil
}

// parseNew parses instance and array creation. outer is the qualifying
// primary of outer.new Inner(), or nil.
func (p *Parser) parseNew(outer *ast.Node) (*ast.Node, error) {
	newTok, err := p.expect(token.New)
	if err != nil {
		return nil, err
	}
	loc := newTok.Location
	if outer != nil {
		loc = outer.Location
	}

	var ctorArgs *ast.Node
	if p.at(token.LT) {
		if ctorArgs, err = p.parseTypeArguments(false); err != nil {
			return nil, err
		}
	}

	var t *ast.Node
	switch {
	case p.peek().Kind.Is(token.PrimitiveType) && outer == nil && ctorArgs == nil:
		t = primitiveNode(p.advance())
		if !p.at(token.LBracket) {
			return nil, p.errorf("Expected '['.")
		}
		return p.parseArrayCreation(loc, t)
	case p.at(token.Identifier):
		if t, err = p.parseClassType(true); err != nil {
			return nil, err
		}
	default:
		return nil, p.errorf("Expected type.")
	}

	if p.at(token.LBracket) && outer == nil && ctorArgs == nil {
		if last := t.Last(); last != nil && last.Kind == ast.KindDiamond {
			return nil, p.errorAt(last.Location, "Cannot use '<>' with array creation.")
		}
		return p.parseArrayCreation(loc, t)
	}

	args, err := p.parseArguments()
	if err != nil {
		return nil, err
	}
	n := ast.New(ast.KindNewExpr, loc, outer, ctorArgs, t, args)
	if p.at(token.LBrace) {
		body, err := p.parseClassBody()
		if err != nil {
			return nil, err
		}
		n.AddChild(body)
	}
	return n, nil
}

// parseArrayCreation parses the dimensions after new T. Either at least one
// dimension expression is given, or the empty dimensions are followed by an
// initializer.
func (p *Parser) parseArrayCreation(loc token.Location, elem *ast.Node) (*ast.Node, error) {
	var dimExprs []*ast.Node
	for p.at(token.LBracket) && !p.atN(1, token.RBracket) {
		lb := p.advance()
		size, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RBracket); err != nil {
			return nil, err
		}
		dimExprs = append(dimExprs, ast.New(ast.KindDimExpr, lb.Location, size))
	}

	t := elem
	for range dimExprs {
		t = ast.New(ast.KindArrayType, elem.Location, t)
	}
	t = p.parseDims(t)

	n := ast.New(ast.KindNewArrayExpr, loc, t)
	for _, d := range dimExprs {
		n.AddChild(d)
	}
	if len(dimExprs) > 0 {
		return n, nil
	}
	if t == elem {
		return nil, p.errorf("Expected '['.")
	}
	if !p.at(token.LBrace) {
		return nil, p.errorf("Expected '{'.")
	}
	init, err := p.parseArrayInit()
	if err != nil {
		return nil, err
	}
	n.AddChild(init)
	return n, nil
}

func isVariableInitializerStart(tok token.Token) bool {
	return tok.Kind == token.LBrace || tok.Kind.IsExpressionStart()
}

func (p *Parser) parseVariableInitializer() (*ast.Node, error) {
	if p.at(token.LBrace) {
		return p.parseArrayInit()
	}
	return p.parseExpression()
}

func (p *Parser) parseArrayInit() (*ast.Node, error) {
	return p.parseInitializerList(p.parseVariableInitializer, isVariableInitializerStart)
}

// parseInitializerList parses { item, item, } with an optional trailing
// comma.
func (p *Parser) parseInitializerList(item func() (*ast.Node, error), start predicate) (*ast.Node, error) {
	lb, err := p.expect(token.LBrace)
	if err != nil {
		return nil, err
	}
	init := ast.New(ast.KindArrayInit, lb.Location)
	if !p.at(token.RBrace) {
		items, err := parseList(p, start, "Expected expression.", token.Comma, item, identity[*ast.Node])
		if err != nil {
			return nil, err
		}
		for _, it := range items {
			init.AddChild(it)
		}
		p.match(token.Comma)
	}
	if _, err := p.expect(token.RBrace); err != nil {
		return nil, err
	}
	return init, nil
}
