package parser

import (
	"github.com/dhamidi/quill/lang/ast"
	"github.com/dhamidi/quill/lang/token"
)

// predicate decides whether a token can start an item.
type predicate func(token.Token) bool

// parseList parses item (sep item)*. A separator is only consumed when the
// token after it can start another item, so a trailing separator is left for
// the enclosing production.
func parseList[T, R any](p *Parser, start predicate, msg string, sep token.Kind, item func() (T, error), build func([]T) R) (R, error) {
	var zero R
	if !start(p.peek()) {
		return zero, p.errorf("%s", msg)
	}
	first, err := item()
	if err != nil {
		return zero, err
	}
	items := []T{first}
	for p.at(sep) && start(p.peekN(1)) {
		p.advance()
		next, err := item()
		if err != nil {
			return zero, err
		}
		items = append(items, next)
	}
	return build(items), nil
}

// parseMultiple parses item+ for as long as the start predicate holds.
func parseMultiple[T, R any](p *Parser, start predicate, msg string, item func() (T, error), build func([]T) R) (R, error) {
	var zero R
	if !start(p.peek()) {
		return zero, p.errorf("%s", msg)
	}
	var items []T
	for start(p.peek()) {
		next, err := item()
		if err != nil {
			return zero, err
		}
		items = append(items, next)
	}
	return build(items), nil
}

// parseBinary parses operand (op operand)* into a left-leaning tree. seed,
// when non-nil, is an already parsed leftmost primary handed to the first
// operand.
func parseBinary(p *Parser, seed *ast.Node, ops token.Set, operand func(seed *ast.Node) (*ast.Node, error), build func(op token.Token, left, right *ast.Node) *ast.Node) (*ast.Node, error) {
	left, err := operand(seed)
	if err != nil {
		return nil, err
	}
	for ops.Has(p.peek().Kind) {
		op := p.advance()
		right, err := operand(nil)
		if err != nil {
			return nil, err
		}
		left = build(op, left, right)
	}
	return left, nil
}

// parseOneOf consumes a single token from accepted.
func parseOneOf(p *Parser, accepted token.Set, msg string, build func(token.Token) *ast.Node) (*ast.Node, error) {
	if !accepted.Has(p.peek().Kind) {
		return nil, p.errorf("%s", msg)
	}
	return build(p.advance()), nil
}

func binaryNode(op token.Token, left, right *ast.Node) *ast.Node {
	return ast.NewOp(ast.KindBinaryExpr, op.Kind, left.Location, left, right)
}

func nodeList(kind ast.NodeKind, loc token.Location) func([]*ast.Node) *ast.Node {
	return func(items []*ast.Node) *ast.Node {
		return ast.New(kind, loc, items...)
	}
}

func identity[T any](items []T) []T {
	return items
}
