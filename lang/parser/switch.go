package parser

import (
	"github.com/dhamidi/quill/lang/ast"
	"github.com/dhamidi/quill/lang/token"
)

type switchStyle int

const (
	styleUnknown switchStyle = iota
	styleRules
	styleGroups
)

// parseSwitch parses a switch statement or expression; kind selects the
// node. The body is either all rules (case X -> ...) or all groups
// (case X: ...).
func (p *Parser) parseSwitch(kind ast.NodeKind) (*ast.Node, error) {
	kw, err := p.expect(token.Switch)
	if err != nil {
		return nil, err
	}
	selector, err := p.parseCondition()
	if err != nil {
		return nil, err
	}
	lb, err := p.expect(token.LBrace)
	if err != nil {
		return nil, err
	}

	block := ast.New(ast.KindSwitchBlock, lb.Location)
	style := styleUnknown
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		label, err := p.parseSwitchLabel()
		if err != nil {
			return nil, err
		}

		if p.at(token.Arrow) {
			if style == styleGroups {
				return nil, p.errorf("Different case kinds used in the switch.")
			}
			style = styleRules
			rule, err := p.parseSwitchRule(kind, label)
			if err != nil {
				return nil, err
			}
			block.AddChild(rule)
			continue
		}

		if style == styleRules {
			return nil, p.errorf("Different case kinds used in the switch.")
		}
		style = styleGroups
		group, err := p.parseSwitchGroup(label)
		if err != nil {
			return nil, err
		}
		block.AddChild(group)
	}

	if _, err := p.expect(token.RBrace); err != nil {
		return nil, err
	}
	return ast.New(kind, kw.Location, selector, block), nil
}

// parseSwitchRule parses the body after '->'. In a switch statement an
// expression body must be a statement expression.
func (p *Parser) parseSwitchRule(kind ast.NodeKind, label *ast.Node) (*ast.Node, error) {
	p.advance()
	var body *ast.Node
	var err error
	switch {
	case p.at(token.LBrace):
		body, err = p.parseBlock()
	case p.at(token.Throw):
		body, err = p.parseStatement()
	default:
		body, err = p.parseExpression()
		if err == nil && kind == ast.KindSwitchStmt && !isStatementExpression(body) {
			err = p.errorAt(body.Location, "Not a statement.")
		}
		if err == nil {
			_, err = p.expect(token.Semicolon)
		}
	}
	if err != nil {
		return nil, err
	}
	return ast.New(ast.KindSwitchRule, label.Location, label, body), nil
}

func (p *Parser) parseSwitchGroup(first *ast.Node) (*ast.Node, error) {
	if _, err := p.expect(token.Colon); err != nil {
		return nil, err
	}
	group := ast.New(ast.KindSwitchGroup, first.Location, first)
	for p.at(token.Case) || p.at(token.Default) {
		label, err := p.parseSwitchLabel()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.Colon); err != nil {
			return nil, err
		}
		group.AddChild(label)
	}
	if err := p.parseBlockStatementsInto(group); err != nil {
		return nil, err
	}
	return group, nil
}

func isCaseElementStart(tok token.Token) bool {
	return tok.Kind == token.Final || tok.Kind.IsExpressionStart()
}

// parseSwitchLabel parses default or case e, e, ... where each element is
// a constant expression, null or a type pattern.
func (p *Parser) parseSwitchLabel() (*ast.Node, error) {
	if p.at(token.Default) {
		kw := p.advance()
		return ast.NewOp(ast.KindSwitchLabel, token.Default, kw.Location), nil
	}
	kw, err := p.expect(token.Case)
	if err != nil {
		return nil, err
	}

	saved := p.inCaseLabel
	p.inCaseLabel = true
	defer func() { p.inCaseLabel = saved }()

	elems, err := parseList(p, isCaseElementStart, "Expected expression.", token.Comma, p.parseCaseElement, identity[*ast.Node])
	if err != nil {
		return nil, err
	}
	return ast.NewOp(ast.KindSwitchLabel, token.Case, kw.Location, elems...), nil
}

func (p *Parser) parseCaseElement() (*ast.Node, error) {
	tok := p.peek()
	if tok.Kind == token.Final || (tok.Kind.Is(token.PrimitiveType) && p.atN(1, token.Identifier)) {
		loc := tok.Location
		mods, err := p.parseModifiers()
		if err != nil {
			return nil, err
		}
		if err := p.restrictModifiers(mods, localVariableModifiers); err != nil {
			return nil, err
		}
		t, err := p.parseType()
		if err != nil {
			return nil, err
		}
		id, err := p.parseIdentifier()
		if err != nil {
			return nil, err
		}
		return ast.New(ast.KindTypePattern, loc, mods, t, id), nil
	}

	expr, err := p.parseConditional(nil)
	if err != nil {
		return nil, err
	}
	if expr.Kind != ast.KindExpressionName || !p.at(token.Identifier) {
		return expr, nil
	}
	t := ast.New(ast.KindClassType, expr.Location, toTypeName(expr))
	id := identifierNode(p.advance())
	return ast.New(ast.KindTypePattern, expr.Location, ast.New(ast.KindModifiers, expr.Location), t, id), nil
}
