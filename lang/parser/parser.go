// Package parser builds Quill syntax trees from source text.
//
// The parser is recursive descent over a three-token scanner window. Dotted
// names are parsed once, generically, and relabeled when the following tokens
// reveal whether they name a package, a type or a value. Parsing stops at the
// first error.
package parser

import (
	"fmt"
	"io"

	"github.com/tliron/commonlog"

	"github.com/dhamidi/quill/lang/ast"
	"github.com/dhamidi/quill/lang/diag"
	"github.com/dhamidi/quill/lang/scanner"
	"github.com/dhamidi/quill/lang/token"
)

// DefaultMaxDepth bounds statement and expression nesting unless overridden
// with WithMaxDepth.
const DefaultMaxDepth = 1000

type Option func(*Parser)

func WithFile(path string) Option {
	return func(p *Parser) {
		p.file = path
	}
}

// WithMaxDepth limits source nesting. Zero disables the limit.
func WithMaxDepth(n int) Option {
	return func(p *Parser) {
		p.maxDepth = n
	}
}

func WithLogger(log commonlog.Logger) Option {
	return func(p *Parser) {
		p.log = log
	}
}

type parseFunc func(*Parser) (*ast.Node, error)

type Parser struct {
	file     string
	maxDepth int
	log      commonlog.Logger
	reader   io.Reader
	input    []byte
	s        *scanner.Scanner
	entry    parseFunc
	depth    int

	// inCaseLabel disables lambda detection so the '->' of a switch rule is
	// not taken as a lambda arrow.
	inCaseLabel bool
}

func newParser(r io.Reader, entry parseFunc, opts []Option) *Parser {
	p := &Parser{
		maxDepth: DefaultMaxDepth,
		log:      commonlog.GetLogger("quill.parser"),
		reader:   r,
		entry:    entry,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func ParseCompilationUnit(r io.Reader, opts ...Option) *Parser {
	return newParser(r, (*Parser).parseCompilationUnit, opts)
}

func ParseExpression(r io.Reader, opts ...Option) *Parser {
	return newParser(r, (*Parser).parseExpression, opts)
}

func ParseStatement(r io.Reader, opts ...Option) *Parser {
	return newParser(r, (*Parser).parseBlockStatement, opts)
}

func ParseType(r io.Reader, opts ...Option) *Parser {
	return newParser(r, (*Parser).parseType, opts)
}

func (p *Parser) readAll() error {
	if p.input != nil {
		return nil
	}
	data, err := io.ReadAll(p.reader)
	if err != nil {
		return err
	}
	p.input = data
	return nil
}

// Finish parses the whole input. The returned error is a *diag.Error unless
// reading the input failed.
func (p *Parser) Finish() (*ast.Node, error) {
	if err := p.readAll(); err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	p.s = scanner.New(p.input, p.file)
	p.depth = 0
	p.inCaseLabel = false
	if err := p.s.Init(); err != nil {
		return nil, err
	}

	result, err := p.entry(p)
	if err != nil {
		p.log.Debugf("parse failed: %s", err)
		return nil, err
	}
	if _, err := p.expect(token.EOF); err != nil {
		return nil, err
	}
	return result, nil
}

func (p *Parser) Reset(r io.Reader) {
	p.reader = r
	p.input = nil
	p.s = nil
}

func (p *Parser) peek() token.Token {
	return p.s.Current()
}

func (p *Parser) peekN(n int) token.Token {
	return p.s.Lookahead(n)
}

func (p *Parser) at(kind token.Kind) bool {
	return p.s.Current().Kind == kind
}

func (p *Parser) atN(n int, kind token.Kind) bool {
	return p.s.Lookahead(n).Kind == kind
}

// advance consumes the current token. It never moves past the end of input
// or past a token that failed to lex, so the failure is reported by whoever
// looks at it next.
func (p *Parser) advance() token.Token {
	tok := p.peek()
	if tok.Kind != token.EOF && tok.Kind != token.Unknown {
		p.s.Next()
	}
	return tok
}

func (p *Parser) match(kind token.Kind) bool {
	if p.at(kind) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) expect(kind token.Kind) (token.Token, error) {
	if p.at(kind) {
		return p.advance(), nil
	}
	return token.Token{}, p.errorf("Expected %s.", describeKind(kind))
}

// errorf reports a syntax error at the current token, or the lexical error
// stored for it.
func (p *Parser) errorf(format string, args ...any) error {
	if fault := p.s.Fault(0); fault != nil {
		return fault
	}
	return diag.Syntaxf(p.peek().Location, format, args...)
}

func (p *Parser) errorAt(loc token.Location, format string, args ...any) error {
	return diag.Syntaxf(loc, format, args...)
}

func (p *Parser) enter() error {
	p.depth++
	if p.maxDepth > 0 && p.depth > p.maxDepth {
		p.depth--
		return p.errorf("Nesting too deep.")
	}
	return nil
}

func (p *Parser) leave() {
	p.depth--
}

// try runs parse speculatively. If it fails, the scanner and the parser
// state are rewound and ok is false.
func (p *Parser) try(parse func() (*ast.Node, error)) (node *ast.Node, ok bool) {
	mark := p.s.Mark()
	depth, inCase := p.depth, p.inCaseLabel
	node, err := parse()
	if err != nil {
		p.s.Rewind(mark)
		p.depth, p.inCaseLabel = depth, inCase
		return nil, false
	}
	return node, true
}

// enterTypeContext switches the scanner into type context for the span of a
// type argument or parameter list. The returned function must be deferred.
func (p *Parser) enterTypeContext() (restore func()) {
	if !p.s.TypeContext() {
		p.log.Debugf("entering type context at %s", p.peek().Location)
	}
	return p.s.EnterTypeContext()
}

func describeKind(kind token.Kind) string {
	switch kind {
	case token.Identifier:
		return "identifier"
	case token.EOF:
		return "end of input"
	case token.IntLiteral, token.FloatLiteral, token.CharLiteral, token.StringLiteral:
		return "literal"
	}
	return "'" + kind.String() + "'"
}

func identifierNode(tok token.Token) *ast.Node {
	return ast.NewValue(ast.KindIdentifier, tok.Location, tok.Text)
}

func (p *Parser) parseIdentifier() (*ast.Node, error) {
	tok, err := p.expect(token.Identifier)
	if err != nil {
		return nil, err
	}
	return identifierNode(tok), nil
}

func isIdentifier(tok token.Token) bool {
	return tok.Kind == token.Identifier
}

func isExpressionStart(tok token.Token) bool {
	return tok.Kind.IsExpressionStart()
}
