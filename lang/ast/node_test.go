package ast

import (
	"strings"
	"testing"

	"github.com/dhamidi/quill/lang/token"
)

func ident(name string) *Node {
	return NewValue(KindIdentifier, token.Location{}, name)
}

func TestNodeKindString(t *testing.T) {
	tests := []struct {
		kind NodeKind
		want string
	}{
		{KindError, "Error"},
		{KindCompilationUnit, "CompilationUnit"},
		{KindAmbiguousName, "AmbiguousName"},
		{KindPackageOrTypeName, "PackageOrTypeName"},
		{KindExplicitConstructorInvocation, "ExplicitConstructorInvocation"},
		{KindMethodReference, "MethodReference"},
		{NodeKind(9999), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.want {
				t.Errorf("NodeKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
			}
		})
	}
}

func TestEveryKindIsNamed(t *testing.T) {
	for k := KindError; k < nodeKindCount; k++ {
		if _, ok := nodeKindNames[k]; !ok {
			t.Errorf("NodeKind(%d) has no name", k)
		}
	}
}

func TestNewSkipsNilChildren(t *testing.T) {
	n := New(KindClassDecl, token.Location{}, nil, ident("Foo"), nil)
	if len(n.Children) != 1 {
		t.Fatalf("len(Children) = %d, want 1", len(n.Children))
	}
	if n.FirstChildOfKind(KindIdentifier) == nil {
		t.Errorf("FirstChildOfKind(Identifier) = nil")
	}
	if n.FirstChildOfKind(KindBlock) != nil {
		t.Errorf("FirstChildOfKind(Block) should be nil")
	}
}

func TestRelabelCopies(t *testing.T) {
	orig := New(KindAmbiguousName, token.Location{}, ident("a"))
	relabeled := orig.Relabel(KindExpressionName)

	if orig.Kind != KindAmbiguousName {
		t.Errorf("original kind changed to %v", orig.Kind)
	}
	if relabeled.Kind != KindExpressionName {
		t.Errorf("Kind = %v, want %v", relabeled.Kind, KindExpressionName)
	}
	relabeled.Children[0] = ident("b")
	if orig.Children[0].Value != "a" {
		t.Errorf("original child replaced through the copy")
	}
}

func TestSimplify(t *testing.T) {
	inner := New(KindExpressionName, token.Location{}, New(KindAmbiguousName, token.Location{}, ident("x")))
	paren := New(KindParenExpr, token.Location{}, New(KindParenExpr, token.Location{}, inner))
	tree := NewOp(KindUnaryExpr, token.Minus, token.Location{}, paren)

	got := Simplify(tree).SExpr()
	want := "(UnaryExpr '-' (ExpressionName (AmbiguousName x)))"
	if got != want {
		t.Errorf("Simplify() = %s, want %s", got, want)
	}
	if tree.Children[0].Kind != KindParenExpr {
		t.Errorf("Simplify modified its input")
	}

	tagged := NewOp(KindClassType, token.Dot, token.Location{}, ident("T"))
	if tagged.IsCollapsible() {
		t.Errorf("node with an op tag should not be collapsible")
	}
}

func TestWalk(t *testing.T) {
	tree := New(KindBinaryExpr, token.Location{}, ident("a"), New(KindParenExpr, token.Location{}, ident("b")))

	var visited []string
	Walk(tree, func(n *Node) bool {
		visited = append(visited, n.Kind.String())
		return n.Kind != KindParenExpr
	})
	want := "BinaryExpr Identifier ParenExpr"
	if got := strings.Join(visited, " "); got != want {
		t.Errorf("visited %q, want %q", got, want)
	}
}

func TestSExprLiterals(t *testing.T) {
	tests := []struct {
		node *Node
		want string
	}{
		{&Node{Kind: KindLiteral, Op: token.IntLiteral, Value: "42"}, "42"},
		{&Node{Kind: KindLiteral, Op: token.StringLiteral, Value: "a\"b"}, `"a\"b"`},
		{&Node{Kind: KindLiteral, Op: token.CharLiteral, Value: "\n"}, `'\n'`},
		{&Node{Kind: KindLiteral, Op: token.Null, Value: "null"}, "null"},
		{NewValue(KindPrimitiveType, token.Location{}, "int"), "int"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.node.SExpr(); got != tt.want {
				t.Errorf("SExpr() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestString(t *testing.T) {
	tree := NewOp(KindBinaryExpr, token.Plus, token.Location{}, ident("a"), ident("b"))
	want := "BinaryExpr '+'\n  Identifier \"a\"\n  Identifier \"b\"\n"
	if got := tree.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
