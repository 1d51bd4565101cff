package token

import "fmt"

// Location identifies where a token starts. LineText holds the full source
// line so diagnostics can be rendered without the original input.
type Location struct {
	File     string
	Line     int
	Column   int
	LineText string
}

func (l Location) String() string {
	if l.File == "" {
		return fmt.Sprintf("%d:%d", l.Line, l.Column)
	}
	return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
}

type Token struct {
	Kind     Kind
	Text     string
	Location Location
}

// Equal reports whether two tokens have the same kind and text. Locations are
// not compared.
func (t Token) Equal(other Token) bool {
	return t.Kind == other.Kind && t.Text == other.Text
}

func (t Token) String() string {
	switch {
	case t.Kind == EOF:
		return "end of input"
	case t.Kind.Is(Literal) || t.Kind == Identifier:
		return fmt.Sprintf("%s %q", t.Kind, t.Text)
	}
	return fmt.Sprintf("'%s'", t.Kind)
}
