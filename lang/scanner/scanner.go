// Package scanner turns Quill source text into tokens.
//
// The scanner keeps a window of three tokens: the current token and two
// tokens of lookahead. Whitespace and comments are consumed while filling the
// window and never surface as tokens.
//
// The parser can switch the scanner into type context while it parses
// generic type parameter and argument lists. In type context every '>' is a
// token of its own, so the closing brackets of List<Map<K, V>> are not read as
// a shift operator. Switching modes re-lexes the window from the start of the
// current token.
package scanner

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dhamidi/quill/lang/diag"
	"github.com/dhamidi/quill/lang/token"
)

// Window is the number of tokens visible at once.
const Window = 3

type state struct {
	offset int
	line   int
	column int
}

type slot struct {
	tok   token.Token
	start state
	err   *diag.Error
}

type Scanner struct {
	src         []byte
	file        string
	lineStarts  []int
	cur         state
	typeContext bool
	window      [Window]slot
}

func New(src []byte, file string) *Scanner {
	s := &Scanner{
		src:        src,
		file:       file,
		lineStarts: []int{0},
		cur:        state{line: 1, column: 1},
	}
	for i, ch := range src {
		if ch == '\n' {
			s.lineStarts = append(s.lineStarts, i+1)
		} else if ch == '\r' && (i+1 >= len(src) || src[i+1] != '\n') {
			s.lineStarts = append(s.lineStarts, i+1)
		}
	}
	return s
}

// Init fills the lookahead window. It returns the lexical error of the first
// token, if any.
func (s *Scanner) Init() error {
	s.fill(0)
	return s.faultErr(0)
}

// Next advances by one token. It returns an error when the token that
// becomes current could not be lexed.
func (s *Scanner) Next() error {
	copy(s.window[:], s.window[1:])
	s.window[Window-1] = s.scan()
	return s.faultErr(0)
}

func (s *Scanner) Current() token.Token {
	return s.window[0].tok
}

// Lookahead returns the token n positions past the current one; Lookahead(0)
// is the current token.
func (s *Scanner) Lookahead(n int) token.Token {
	if n < 0 || n >= Window {
		panic("scanner: lookahead out of range")
	}
	return s.window[n].tok
}

// Fault returns the lexical error recorded for the token at window position
// n, or nil.
func (s *Scanner) Fault(n int) *diag.Error {
	if n < 0 || n >= Window {
		return nil
	}
	return s.window[n].err
}

// Mark records the scanner position so that a speculative parse can be
// undone with Rewind.
type Mark struct {
	cur         state
	typeContext bool
	window      [Window]slot
}

func (s *Scanner) Mark() Mark {
	return Mark{cur: s.cur, typeContext: s.typeContext, window: s.window}
}

// Rewind restores the position recorded by m.
func (s *Scanner) Rewind(m Mark) {
	s.cur = m.cur
	s.typeContext = m.typeContext
	s.window = m.window
}

func (s *Scanner) faultErr(n int) error {
	if err := s.window[n].err; err != nil {
		return err
	}
	return nil
}

func (s *Scanner) TypeContext() bool {
	return s.typeContext
}

// SetTypeContext switches the '>' lexing mode. The current token and the
// lookahead are re-lexed under the new mode.
func (s *Scanner) SetTypeContext(on bool) {
	if on == s.typeContext {
		return
	}
	s.typeContext = on
	s.cur = s.window[0].start
	s.fill(0)
}

// EnterTypeContext turns type context on and returns a function restoring
// the previous mode. Callers defer the restore so an early error return
// cannot leak the mode.
func (s *Scanner) EnterTypeContext() (restore func()) {
	prev := s.typeContext
	s.SetTypeContext(true)
	return func() {
		s.SetTypeContext(prev)
	}
}

func (s *Scanner) fill(from int) {
	for i := from; i < Window; i++ {
		s.window[i] = s.scan()
	}
}

// LineText returns the text of the 1-based line without its terminator.
func (s *Scanner) LineText(line int) string {
	if line < 1 || line > len(s.lineStarts) {
		return ""
	}
	start := s.lineStarts[line-1]
	end := len(s.src)
	if line < len(s.lineStarts) {
		end = s.lineStarts[line]
	}
	text := string(s.src[start:end])
	text = strings.TrimSuffix(text, "\n")
	return strings.TrimSuffix(text, "\r")
}

func (s *Scanner) location(st state) token.Location {
	return token.Location{
		File:     s.file,
		Line:     st.line,
		Column:   st.column,
		LineText: s.LineText(st.line),
	}
}

func (s *Scanner) peek() byte {
	if s.cur.offset >= len(s.src) {
		return 0
	}
	return s.src[s.cur.offset]
}

func (s *Scanner) peekN(n int) byte {
	if s.cur.offset+n >= len(s.src) {
		return 0
	}
	return s.src[s.cur.offset+n]
}

func (s *Scanner) atEnd() bool {
	return s.cur.offset >= len(s.src)
}

func (s *Scanner) advance() byte {
	if s.atEnd() {
		return 0
	}
	ch := s.src[s.cur.offset]
	s.cur.offset++
	switch {
	case ch == '\n':
		s.cur.line++
		s.cur.column = 1
	case ch == '\r' && s.peek() != '\n':
		s.cur.line++
		s.cur.column = 1
	default:
		s.cur.column++
	}
	return ch
}

func (s *Scanner) advanceN(n int) {
	for i := 0; i < n; i++ {
		s.advance()
	}
}

func (s *Scanner) scan() slot {
	if err := s.skipWhitespaceAndComments(); err != nil {
		return s.fail(s.cur, err)
	}

	start := s.cur
	if s.atEnd() {
		return slot{tok: token.Token{Kind: token.EOF, Location: s.location(start)}, start: start}
	}

	ch := s.peek()
	switch {
	case isLetterStart(s.src[s.cur.offset:]):
		return s.scanIdentifier(start)
	case isDigit(ch):
		return s.scanNumber(start)
	case ch == '\'':
		return s.scanChar(start)
	case ch == '"':
		if s.peekN(1) == '"' && s.peekN(2) == '"' {
			return s.scanTextBlock(start)
		}
		return s.scanString(start)
	}
	return s.scanOperator(start)
}

// fail records err for the token starting at start. Everything after a
// lexical error lexes as end of input.
func (s *Scanner) fail(start state, err *diag.Error) slot {
	text := ""
	if start.offset < s.cur.offset {
		text = string(s.src[start.offset:s.cur.offset])
	}
	s.cur = state{offset: len(s.src), line: s.cur.line, column: s.cur.column}
	return slot{
		tok:   token.Token{Kind: token.Unknown, Text: text, Location: s.location(start)},
		start: start,
		err:   err,
	}
}

func (s *Scanner) emit(kind token.Kind, text string, start state) slot {
	return slot{tok: token.Token{Kind: kind, Text: text, Location: s.location(start)}, start: start}
}

func (s *Scanner) skipWhitespaceAndComments() *diag.Error {
	for !s.atEnd() {
		ch := s.peek()
		switch {
		case ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' || ch == '\f':
			s.advance()
		case ch == '/' && s.peekN(1) == '/':
			for !s.atEnd() && s.peek() != '\n' && s.peek() != '\r' {
				s.advance()
			}
		case ch == '/' && s.peekN(1) == '*':
			start := s.cur
			s.advanceN(2)
			for {
				if s.atEnd() {
					return diag.Lexicalf(s.location(start), "Unterminated comment.")
				}
				if s.peek() == '*' && s.peekN(1) == '/' {
					s.advanceN(2)
					break
				}
				s.advance()
			}
		default:
			return nil
		}
	}
	return nil
}

func (s *Scanner) scanIdentifier(start state) slot {
	for !s.atEnd() {
		r, size := utf8.DecodeRune(s.src[s.cur.offset:])
		if !isLetter(r) && !unicode.IsDigit(r) {
			break
		}
		s.advanceN(size)
	}
	text := string(s.src[start.offset:s.cur.offset])
	return s.emit(token.LookupKeyword(text), text, start)
}

func (s *Scanner) scanNumber(start state) slot {
	for isDigit(s.peek()) {
		s.advance()
	}

	kind := token.IntLiteral
	if s.peek() == '.' && s.peekN(1) != '.' {
		kind = token.FloatLiteral
		s.advance()
		for isDigit(s.peek()) {
			s.advance()
		}
	}
	if s.peek() == 'e' || s.peek() == 'E' {
		kind = token.FloatLiteral
		s.advance()
		if s.peek() == '+' || s.peek() == '-' {
			s.advance()
		}
		if !isDigit(s.peek()) {
			return s.fail(start, diag.Lexicalf(s.location(start), "Malformed exponent in floating-point literal."))
		}
		for isDigit(s.peek()) {
			s.advance()
		}
	}

	return s.emit(kind, string(s.src[start.offset:s.cur.offset]), start)
}

func (s *Scanner) scanChar(start state) slot {
	s.advance()

	var value string
	switch ch := s.peek(); {
	case ch == '\'':
		s.advance()
		return s.fail(start, diag.Lexicalf(s.location(start), "Empty character literal."))
	case s.atEnd() || ch == '\n' || ch == '\r':
		return s.fail(start, diag.Lexicalf(s.location(start), "Unterminated character literal."))
	case ch == '\\':
		decoded, err := s.scanEscape()
		if err != nil {
			return s.fail(start, err)
		}
		value = string(decoded)
	default:
		r, size := utf8.DecodeRune(s.src[s.cur.offset:])
		s.advanceN(size)
		value = string(r)
	}

	switch ch := s.peek(); {
	case ch == '\'':
		s.advance()
	case s.atEnd() || ch == '\n' || ch == '\r':
		return s.fail(start, diag.Lexicalf(s.location(start), "Unterminated character literal."))
	default:
		return s.fail(start, diag.Lexicalf(s.location(start), "Character literal must contain exactly one character."))
	}
	return s.emit(token.CharLiteral, value, start)
}

func (s *Scanner) scanString(start state) slot {
	s.advance()

	var b strings.Builder
	for {
		ch := s.peek()
		switch {
		case s.atEnd() || ch == '\n' || ch == '\r':
			return s.fail(start, diag.Lexicalf(s.location(start), "Unterminated string literal."))
		case ch == '"':
			s.advance()
			return s.emit(token.StringLiteral, b.String(), start)
		case ch == '\\':
			decoded, err := s.scanEscape()
			if err != nil {
				return s.fail(start, err)
			}
			b.WriteByte(decoded)
		default:
			b.WriteByte(s.advance())
		}
	}
}

// scanTextBlock reads a """-delimited block. Escapes are validated while
// scanning but decoded only after indentation has been stripped.
func (s *Scanner) scanTextBlock(start state) slot {
	s.advanceN(3)

	var raw strings.Builder
	for {
		if s.atEnd() {
			return s.fail(start, diag.Lexicalf(s.location(start), "Unterminated text block."))
		}
		switch ch := s.peek(); ch {
		case '"':
			n := 0
			for s.peekN(n) == '"' {
				n++
			}
			s.advanceN(n)
			if n >= 3 {
				raw.WriteString(strings.Repeat(`"`, n-3))
				return s.emit(token.StringLiteral, decodeEscapes(stripIndent(raw.String())), start)
			}
			raw.WriteString(strings.Repeat(`"`, n))
		case '\\':
			escStart := s.cur
			s.advance()
			if !isEscape(s.peek()) {
				return s.fail(start, illegalEscape(s, escStart))
			}
			raw.WriteByte('\\')
			raw.WriteByte(s.advance())
		case '\r':
			s.advance()
			if s.peek() == '\n' {
				s.advance()
			}
			raw.WriteByte('\n')
		default:
			raw.WriteByte(s.advance())
		}
	}
}

func (s *Scanner) scanEscape() (byte, *diag.Error) {
	escStart := s.cur
	s.advance()
	ch := s.peek()
	if !isEscape(ch) {
		return 0, illegalEscape(s, escStart)
	}
	s.advance()
	return escapeValue(ch), nil
}

func illegalEscape(s *Scanner, at state) *diag.Error {
	ch := s.peek()
	if s.atEnd() || ch == '\n' || ch == '\r' {
		return diag.Lexicalf(s.location(at), "Illegal escape character at end of line.")
	}
	r, _ := utf8.DecodeRune(s.src[s.cur.offset:])
	return diag.Lexicalf(s.location(at), "Illegal escape character '\\%c'.", r)
}

func (s *Scanner) scanOperator(start state) slot {
	if s.peek() == '>' && s.typeContext {
		s.advance()
		return s.emit(token.GT, ">", start)
	}

	for n := 4; n >= 1; n-- {
		if s.cur.offset+n > len(s.src) {
			continue
		}
		text := string(s.src[s.cur.offset : s.cur.offset+n])
		if kind := token.LookupOperator(text); kind != token.Unknown {
			s.advanceN(n)
			return s.emit(kind, text, start)
		}
	}

	r, size := utf8.DecodeRune(s.src[s.cur.offset:])
	s.advanceN(size)
	return s.fail(start, diag.Lexicalf(s.location(start), "Unexpected character '%c'.", r))
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isLetter(r rune) bool {
	return r == '_' || r == '$' || unicode.IsLetter(r)
}

func isLetterStart(b []byte) bool {
	r, _ := utf8.DecodeRune(b)
	return isLetter(r)
}

func isEscape(ch byte) bool {
	switch ch {
	case 'b', 'f', 'n', 'r', 't', '"', '\'', '\\':
		return true
	}
	return false
}

func escapeValue(ch byte) byte {
	switch ch {
	case 'b':
		return '\b'
	case 'f':
		return '\f'
	case 'n':
		return '\n'
	case 'r':
		return '\r'
	case 't':
		return '\t'
	}
	return ch
}

// Tokens lexes src in normal mode up to and including the end-of-input token.
func Tokens(src []byte, file string) ([]token.Token, error) {
	s := New(src, file)
	if err := s.Init(); err != nil {
		return nil, err
	}
	var toks []token.Token
	for {
		tok := s.Current()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			return toks, nil
		}
		if err := s.Next(); err != nil {
			return toks, err
		}
	}
}
