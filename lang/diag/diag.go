// Package diag defines the error value shared by the scanner and the parser.
package diag

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dhamidi/quill/lang/token"
)

type Kind int

const (
	Lexical Kind = iota
	Syntax
)

func (k Kind) String() string {
	switch k {
	case Lexical:
		return "lexical error"
	case Syntax:
		return "syntax error"
	}
	return "error"
}

// Error is a failure at a single source location. Parsing stops at the first
// one.
type Error struct {
	Kind     Kind
	Message  string
	Location token.Location
}

func (e *Error) Error() string {
	return e.Location.String() + ": " + e.Message
}

// Excerpt renders the offending source line with a caret under the column.
func (e *Error) Excerpt() string {
	if e.Location.LineText == "" {
		return ""
	}
	col := e.Location.Column - 1
	if col < 0 {
		col = 0
	}
	var pad strings.Builder
	for i := 0; i < col && i < len(e.Location.LineText); i++ {
		if e.Location.LineText[i] == '\t' {
			pad.WriteByte('\t')
		} else {
			pad.WriteByte(' ')
		}
	}
	return e.Location.LineText + "\n" + pad.String() + "^"
}

func Lexicalf(loc token.Location, format string, args ...any) *Error {
	return &Error{Kind: Lexical, Message: fmt.Sprintf(format, args...), Location: loc}
}

func Syntaxf(loc token.Location, format string, args ...any) *Error {
	return &Error{Kind: Syntax, Message: fmt.Sprintf(format, args...), Location: loc}
}

// As extracts a *Error from err's chain.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
