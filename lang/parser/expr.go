package parser

import (
	"github.com/dhamidi/quill/lang/ast"
	"github.com/dhamidi/quill/lang/token"
)

// Every level below takes an optional seed: a primary that a statement
// parser has already consumed while deciding what the statement is. The
// seed becomes the leftmost operand of the expression.

var (
	orOps             = token.NewSet(token.Or)
	andOps            = token.NewSet(token.And)
	bitOrOps          = token.NewSet(token.BitOr)
	bitXorOps         = token.NewSet(token.BitXor)
	bitAndOps         = token.NewSet(token.BitAnd)
	equalityOps       = token.NewSet(token.EQ, token.NE)
	relationalOps     = token.NewSet(token.LT, token.LE, token.GT, token.GE)
	shiftOps          = token.NewSet(token.Shl, token.Shr, token.UShr)
	additiveOps       = token.NewSet(token.Plus, token.Minus)
	multiplicativeOps = token.NewSet(token.Star, token.Slash, token.Percent)
	postfixOps        = token.NewSet(token.Increment, token.Decrement)
)

func (p *Parser) parseExpression() (*ast.Node, error) {
	return p.parseExpressionFrom(nil)
}

// parseExpressionFrom parses an assignment or anything tighter. Assignment
// is right-associative and its target must be a variable.
func (p *Parser) parseExpressionFrom(seed *ast.Node) (*ast.Node, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	lhs, err := p.parseConditional(seed)
	if err != nil {
		return nil, err
	}
	if !p.peek().Kind.Is(token.AssignOp) {
		return lhs, nil
	}
	if !isAssignable(lhs) {
		return nil, p.errorf("Invalid assignment target.")
	}
	op := p.advance()
	rhs, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return ast.NewOp(ast.KindAssignment, op.Kind, lhs.Location, lhs, rhs), nil
}

func isAssignable(n *ast.Node) bool {
	switch n.Kind {
	case ast.KindExpressionName, ast.KindFieldAccess, ast.KindElementAccess:
		return true
	}
	return false
}

// parseConditional parses c ? a : b. The else branch is itself a
// conditional (or a lambda), which makes the operator right-associative.
func (p *Parser) parseConditional(seed *ast.Node) (*ast.Node, error) {
	cond, err := p.parseOr(seed)
	if err != nil {
		return nil, err
	}
	if !p.match(token.Question) {
		return cond, nil
	}
	then, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Colon); err != nil {
		return nil, err
	}
	els, err := p.parseConditional(nil)
	if err != nil {
		return nil, err
	}
	return ast.New(ast.KindConditionalExpr, cond.Location, cond, then, els), nil
}

func (p *Parser) parseOr(seed *ast.Node) (*ast.Node, error) {
	return parseBinary(p, seed, orOps, p.parseAnd, binaryNode)
}

func (p *Parser) parseAnd(seed *ast.Node) (*ast.Node, error) {
	return parseBinary(p, seed, andOps, p.parseBitOr, binaryNode)
}

func (p *Parser) parseBitOr(seed *ast.Node) (*ast.Node, error) {
	return parseBinary(p, seed, bitOrOps, p.parseBitXor, binaryNode)
}

func (p *Parser) parseBitXor(seed *ast.Node) (*ast.Node, error) {
	return parseBinary(p, seed, bitXorOps, p.parseBitAnd, binaryNode)
}

func (p *Parser) parseBitAnd(seed *ast.Node) (*ast.Node, error) {
	return parseBinary(p, seed, bitAndOps, p.parseEquality, binaryNode)
}

func (p *Parser) parseEquality(seed *ast.Node) (*ast.Node, error) {
	return parseBinary(p, seed, equalityOps, p.parseComparison, binaryNode)
}

// parseComparison parses a <=> b. The operator does not associate: a second
// <=> at the same level is an error.
func (p *Parser) parseComparison(seed *ast.Node) (*ast.Node, error) {
	left, err := p.parseRelational(seed)
	if err != nil {
		return nil, err
	}
	if !p.at(token.Spaceship) {
		return left, nil
	}
	op := p.advance()
	right, err := p.parseRelational(nil)
	if err != nil {
		return nil, err
	}
	if p.at(token.Spaceship) {
		return nil, p.errorf("Comparison operator '<=>' cannot be chained.")
	}
	return binaryNode(op, left, right), nil
}

// parseRelational parses < <= > >= and isa tests. An isa test may bind the
// tested value to a new variable: x isa String s.
func (p *Parser) parseRelational(seed *ast.Node) (*ast.Node, error) {
	left, err := p.parseRange(seed)
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case relationalOps.Has(p.peek().Kind):
			op := p.advance()
			right, err := p.parseRange(nil)
			if err != nil {
				return nil, err
			}
			left = binaryNode(op, left, right)
		case p.at(token.Isa):
			p.advance()
			t, err := p.parseType()
			if err != nil {
				return nil, err
			}
			isa := ast.New(ast.KindIsaExpr, left.Location, left, t)
			if p.at(token.Identifier) {
				isa.AddChild(identifierNode(p.advance()))
			}
			left = isa
		default:
			return left, nil
		}
	}
}

func (p *Parser) parseRange(seed *ast.Node) (*ast.Node, error) {
	left, err := p.parseShift(seed)
	if err != nil {
		return nil, err
	}
	if !p.at(token.DotDot) {
		return left, nil
	}
	op := p.advance()
	right, err := p.parseShift(nil)
	if err != nil {
		return nil, err
	}
	if p.at(token.DotDot) {
		return nil, p.errorf("Range operator '..' cannot be chained.")
	}
	return binaryNode(op, left, right), nil
}

func (p *Parser) parseShift(seed *ast.Node) (*ast.Node, error) {
	return parseBinary(p, seed, shiftOps, p.parseAdditive, binaryNode)
}

func (p *Parser) parseAdditive(seed *ast.Node) (*ast.Node, error) {
	return parseBinary(p, seed, additiveOps, p.parseMultiplicative, binaryNode)
}

func (p *Parser) parseMultiplicative(seed *ast.Node) (*ast.Node, error) {
	return parseBinary(p, seed, multiplicativeOps, p.parseCast, binaryNode)
}

// parseCast parses unary ('as' Type)*.
func (p *Parser) parseCast(seed *ast.Node) (*ast.Node, error) {
	expr, err := p.parseUnary(seed)
	if err != nil {
		return nil, err
	}
	for p.at(token.As) {
		p.advance()
		t, err := p.parseType()
		if err != nil {
			return nil, err
		}
		expr = ast.New(ast.KindCastExpr, expr.Location, expr, t)
	}
	return expr, nil
}

func (p *Parser) parseUnary(seed *ast.Node) (*ast.Node, error) {
	if seed != nil || !p.peek().Kind.Is(token.UnaryOp) {
		return p.parsePostfix(seed)
	}
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	op := p.advance()
	operand, err := p.parseUnary(nil)
	if err != nil {
		return nil, err
	}
	return ast.NewOp(ast.KindUnaryExpr, op.Kind, op.Location, operand), nil
}

func (p *Parser) parsePostfix(seed *ast.Node) (*ast.Node, error) {
	expr := seed
	if expr == nil {
		var err error
		if expr, err = p.parsePrimary(); err != nil {
			return nil, err
		}
	}
	for postfixOps.Has(p.peek().Kind) {
		op := p.advance()
		expr = ast.NewOp(ast.KindPostfixExpr, op.Kind, expr.Location, expr)
	}
	return expr, nil
}

// isStatementExpression reports whether expr may stand alone as a
// statement.
func isStatementExpression(expr *ast.Node) bool {
	switch expr.Kind {
	case ast.KindAssignment, ast.KindPostfixExpr, ast.KindMethodInvocation, ast.KindNewExpr:
		return true
	case ast.KindUnaryExpr:
		return expr.Op == token.Increment || expr.Op == token.Decrement
	}
	return false
}
