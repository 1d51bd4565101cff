package diag

import (
	"fmt"
	"testing"

	"github.com/dhamidi/quill/lang/token"
)

func TestError(t *testing.T) {
	tests := []struct {
		err  *Error
		want string
		kind string
	}{
		{Syntaxf(token.Location{File: "a.quill", Line: 2, Column: 7}, "Expected '%s'.", ")"), "a.quill:2:7: Expected ')'.", "syntax error"},
		{Lexicalf(token.Location{Line: 1, Column: 1}, "Unterminated string."), "1:1: Unterminated string.", "lexical error"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
		if got := tt.err.Kind.String(); got != tt.kind {
			t.Errorf("Kind = %q, want %q", got, tt.kind)
		}
	}
}

func TestExcerpt(t *testing.T) {
	tests := []struct {
		loc  token.Location
		want string
	}{
		{token.Location{Line: 1, Column: 5, LineText: "int = 1;"}, "int = 1;\n    ^"},
		{token.Location{Line: 1, Column: 3, LineText: "\tx y"}, "\tx y\n\t ^"},
		{token.Location{Line: 1, Column: 1}, ""},
	}
	for _, tt := range tests {
		e := Syntaxf(tt.loc, "bad")
		if got := e.Excerpt(); got != tt.want {
			t.Errorf("Excerpt() = %q, want %q", got, tt.want)
		}
	}
}

func TestAs(t *testing.T) {
	inner := Syntaxf(token.Location{Line: 1, Column: 1}, "Expected expression.")
	if got, ok := As(fmt.Errorf("parse a.quill: %w", inner)); !ok || got != inner {
		t.Errorf("As(wrapped) = %v, %v, want %v", got, ok, inner)
	}
	if _, ok := As(fmt.Errorf("plain")); ok {
		t.Errorf("As(plain) reported a diagnostic")
	}
}
