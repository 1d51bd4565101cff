package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/quill/lang/token"
)

// LineEncoder writes a token stream as tab separated lines:
//
//	line:column	kind	text
type LineEncoder struct {
	w      io.Writer
	tokens []token.Token
}

func NewLineEncoder(w io.Writer) *LineEncoder {
	return &LineEncoder{w: w}
}

func (e *LineEncoder) Encode(tokens []token.Token) error {
	e.tokens = tokens
	return writeText(e.w, e)
}

func (e *LineEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	for _, tok := range e.tokens {
		fmt.Fprintf(&sb, "%d:%d\t%s\t%s\n",
			tok.Location.Line,
			tok.Location.Column,
			kindLabel(tok.Kind),
			tokenText(tok),
		)
	}
	return []byte(sb.String()), nil
}

func kindLabel(kind token.Kind) string {
	switch {
	case kind == token.Identifier, kind == token.EOF:
		return strings.ToLower(kind.String())
	case kind.Is(token.Literal):
		return "literal"
	case kind.Is(token.Keyword):
		return "keyword"
	case kind.Is(token.Operator):
		return "operator"
	}
	return "punct"
}

// tokenText quotes string and character literals so that whitespace in them
// survives the tab separated output.
func tokenText(tok token.Token) string {
	switch tok.Kind {
	case token.StringLiteral, token.CharLiteral:
		return fmt.Sprintf("%q", tok.Text)
	}
	return tok.Text
}
