package parser

import (
	"github.com/dhamidi/quill/lang/ast"
	"github.com/dhamidi/quill/lang/token"
)

var (
	wildcardBounds = token.NewSet(token.Extends, token.Super, token.Subtype)
	typeBounds     = token.NewSet(token.Extends, token.Subtype)
)

func isTypeStart(tok token.Token) bool {
	return tok.Kind == token.Identifier || tok.Kind.Is(token.PrimitiveType)
}

func isTypeArgumentStart(tok token.Token) bool {
	return tok.Kind == token.Question || isTypeStart(tok)
}

func isClassTypeStart(tok token.Token) bool {
	return tok.Kind == token.Identifier
}

func isTypeParameterStart(tok token.Token) bool {
	return tok.Kind == token.Identifier || tok.Kind == token.At
}

func primitiveNode(tok token.Token) *ast.Node {
	return ast.NewValue(ast.KindPrimitiveType, tok.Location, tok.Text)
}

// parseType parses a primitive or class type followed by any number of [].
func (p *Parser) parseType() (*ast.Node, error) {
	var t *ast.Node
	switch tok := p.peek(); {
	case tok.Kind.Is(token.PrimitiveType):
		t = primitiveNode(p.advance())
	case tok.Kind == token.Identifier:
		var err error
		t, err = p.parseClassType(false)
		if err != nil {
			return nil, err
		}
	default:
		return nil, p.errorf("Expected type.")
	}
	return p.parseDims(t), nil
}

// parseResultType accepts void in addition to every type.
func (p *Parser) parseResultType() (*ast.Node, error) {
	if p.at(token.Void) {
		tok := p.advance()
		return ast.NewValue(ast.KindVoidType, tok.Location, tok.Text), nil
	}
	return p.parseType()
}

// parseLocalType accepts auto in addition to every type.
func (p *Parser) parseLocalType() (*ast.Node, error) {
	if p.at(token.Auto) {
		tok := p.advance()
		return ast.NewValue(ast.KindInferredType, tok.Location, tok.Text), nil
	}
	return p.parseType()
}

// parseDims wraps t in one ArrayType per [] pair. A '[' not followed by ']'
// is left alone.
func (p *Parser) parseDims(t *ast.Node) *ast.Node {
	for p.at(token.LBracket) && p.atN(1, token.RBracket) {
		p.advance()
		p.advance()
		t = ast.New(ast.KindArrayType, t.Location, t)
	}
	return t
}

func (p *Parser) parseClassType(allowDiamond bool) (*ast.Node, error) {
	name, err := p.parseAmbiguousName()
	if err != nil {
		return nil, err
	}
	return p.finishClassType(name, allowDiamond)
}

// finishClassType turns an already parsed name chain into a class type,
// consuming type arguments and any .Inner<...> continuations.
func (p *Parser) finishClassType(name *ast.Node, allowDiamond bool) (*ast.Node, error) {
	t := ast.New(ast.KindClassType, name.Location, toTypeName(name))
	if !p.at(token.LT) {
		return t, nil
	}
	args, err := p.parseTypeArguments(allowDiamond)
	if err != nil {
		return nil, err
	}
	t.AddChild(args)

	for args.Kind != ast.KindDiamond && p.at(token.Dot) && p.atN(1, token.Identifier) {
		p.advance()
		id, err := p.parseIdentifier()
		if err != nil {
			return nil, err
		}
		t = ast.New(ast.KindClassType, t.Location, t, id)
		if p.at(token.LT) {
			if args, err = p.parseTypeArguments(allowDiamond); err != nil {
				return nil, err
			}
			t.AddChild(args)
			if args.Kind == ast.KindDiamond {
				break
			}
		}
	}
	return t, nil
}

// parseTypeArguments parses <T, U> with the scanner in type context, so the
// closing brackets of nested arguments are separate tokens. With
// allowDiamond, <> yields a Diamond node.
func (p *Parser) parseTypeArguments(allowDiamond bool) (*ast.Node, error) {
	restore := p.enterTypeContext()
	defer restore()

	lt, err := p.expect(token.LT)
	if err != nil {
		return nil, err
	}
	if allowDiamond && p.at(token.GT) {
		p.advance()
		return ast.New(ast.KindDiamond, lt.Location), nil
	}

	args, err := parseList(p, isTypeArgumentStart, "Expected type argument.", token.Comma, p.parseTypeArgument, nodeList(ast.KindTypeArguments, lt.Location))
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.GT); err != nil {
		return nil, err
	}
	return args, nil
}

func (p *Parser) parseTypeArgument() (*ast.Node, error) {
	if !p.at(token.Question) {
		t, err := p.parseType()
		if err != nil {
			return nil, err
		}
		if t.Kind == ast.KindPrimitiveType {
			return nil, p.errorAt(t.Location, "Type arguments must be reference types.")
		}
		return t, nil
	}

	q := p.advance()
	if !wildcardBounds.Has(p.peek().Kind) {
		return ast.New(ast.KindWildcard, q.Location), nil
	}
	op := p.advance()
	bound, err := p.parseType()
	if err != nil {
		return nil, err
	}
	return ast.NewOp(ast.KindWildcard, op.Kind, q.Location, bound), nil
}

func (p *Parser) parseTypeParameters() (*ast.Node, error) {
	restore := p.enterTypeContext()
	defer restore()

	lt, err := p.expect(token.LT)
	if err != nil {
		return nil, err
	}
	params, err := parseList(p, isTypeParameterStart, "Expected type parameter.", token.Comma, p.parseTypeParameter, nodeList(ast.KindTypeParameters, lt.Location))
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.GT); err != nil {
		return nil, err
	}
	return params, nil
}

// parseTypeParameter parses T, T extends A & B or T <: A.
func (p *Parser) parseTypeParameter() (*ast.Node, error) {
	loc := p.peek().Location
	annotations, err := p.parseAnnotations()
	if err != nil {
		return nil, err
	}
	id, err := p.parseIdentifier()
	if err != nil {
		return nil, err
	}
	param := ast.New(ast.KindTypeParameter, loc, annotations...)
	param.AddChild(id)
	if !typeBounds.Has(p.peek().Kind) {
		return param, nil
	}

	kw := p.advance()
	bound := ast.New(ast.KindTypeBound, kw.Location)
	for {
		t, err := p.parseClassType(false)
		if err != nil {
			return nil, err
		}
		bound.AddChild(t)
		if !p.match(token.BitAnd) {
			break
		}
	}
	param.AddChild(bound)
	return param, nil
}

// parseClassTypeList parses A, B, C as used by extends, implements and
// throws clauses.
func (p *Parser) parseClassTypeList(kind ast.NodeKind, loc token.Location) (*ast.Node, error) {
	return parseList(p, isClassTypeStart, "Expected type.", token.Comma, func() (*ast.Node, error) {
		return p.parseClassType(false)
	}, nodeList(kind, loc))
}
