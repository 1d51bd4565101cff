package parser

import (
	"strings"
	"testing"

	"github.com/dhamidi/quill/lang/ast"
	"github.com/dhamidi/quill/lang/token"
)

func TestParseCompilationUnitHeader(t *testing.T) {
	runSExprTests(t, ParseCompilationUnit, []sexprTest{
		{"", "(CompilationUnit)"},
		{"package a.b;", "(CompilationUnit (PackageDecl (PackageName (PackageName a) b)))"},
		{"import java.util.List;", "(CompilationUnit (ImportDecl (TypeName (PackageOrTypeName (PackageOrTypeName java) util) List)))"},
		{"import java.util.*;", "(CompilationUnit (ImportDecl '*' (PackageOrTypeName (PackageOrTypeName java) util)))"},
		{"import shared java.lang.Math.max;", "(CompilationUnit (ImportDecl shared (TypeName (PackageOrTypeName (PackageOrTypeName java) lang) Math) max))"},
		{"import shared java.lang.Math.*;", "(CompilationUnit (ImportDecl '*' shared (TypeName (PackageOrTypeName (PackageOrTypeName java) lang) Math)))"},
		{"package p; ; class A { }", "(CompilationUnit (PackageDecl (PackageName p)) (ClassDecl (Modifiers) A (ClassBody)))"},
	})
}

func TestParseTypeDeclarations(t *testing.T) {
	runSExprTests(t, ParseCompilationUnit, []sexprTest{
		{
			"public final class A<T extends Comparable<T>> extends B implements C, D { }",
			"(CompilationUnit (ClassDecl (Modifiers public final) A (TypeParameters (TypeParameter T (TypeBound (ClassType (TypeName Comparable) (TypeArguments (ClassType (TypeName T))))))) (ExtendsClause (ClassType (TypeName B))) (ImplementsClause (ClassType (TypeName C)) (ClassType (TypeName D))) (ClassBody)))",
		},
		{
			"class A<K, V <: Number & Comparable<V>> { }",
			"(CompilationUnit (ClassDecl (Modifiers) A (TypeParameters (TypeParameter K) (TypeParameter V (TypeBound (ClassType (TypeName Number)) (ClassType (TypeName Comparable) (TypeArguments (ClassType (TypeName V))))))) (ClassBody)))",
		},
		{
			"interface I<T> extends J, K { void m(); }",
			"(CompilationUnit (InterfaceDecl (Modifiers) I (TypeParameters (TypeParameter T)) (ExtendsClause (ClassType (TypeName J)) (ClassType (TypeName K))) (InterfaceBody (MethodDecl (Modifiers) void m (Parameters)))))",
		},
		{
			"enum Color { RED, GREEN(1), BLUE { }, }",
			"(CompilationUnit (EnumDecl (Modifiers) Color (EnumBody (EnumConstant RED) (EnumConstant GREEN (Arguments 1)) (EnumConstant BLUE (ClassBody)))))",
		},
		{
			"enum E implements I { A; int x; }",
			"(CompilationUnit (EnumDecl (Modifiers) E (ImplementsClause (ClassType (TypeName I))) (EnumBody (EnumConstant A) (FieldDecl (Modifiers) int (VariableDeclarator x)))))",
		},
		{
			"@Deprecated @Size(max = 3) class A { }",
			"(CompilationUnit (ClassDecl (Modifiers (Annotation (TypeName Deprecated)) (Annotation (TypeName Size) (ElementValuePair max 3))) A (ClassBody)))",
		},
		{
			"@Tags({\"a\", \"b\"}) class A { }",
			"(CompilationUnit (ClassDecl (Modifiers (Annotation (TypeName Tags) (ArrayInit \"a\" \"b\"))) A (ClassBody)))",
		},
	})
}

func TestParseMembers(t *testing.T) {
	runSExprTests(t, ParseCompilationUnit, []sexprTest{
		{
			"class A { shared int count = 0, total; }",
			"(CompilationUnit (ClassDecl (Modifiers) A (ClassBody (FieldDecl (Modifiers shared) int (VariableDeclarator count 0) (VariableDeclarator total)))))",
		},
		{
			"class A { public <U> U convert(U u) throws E { return u; } }",
			"(CompilationUnit (ClassDecl (Modifiers) A (ClassBody (MethodDecl (Modifiers public) (TypeParameters (TypeParameter U)) (ClassType (TypeName U)) convert (Parameters (Parameter (Modifiers) (ClassType (TypeName U)) u)) (ThrowsList (ClassType (TypeName E))) (Block (ReturnStmt (ExpressionName u)))))))",
		},
		{
			"class A { abstract void run(final int a, String... rest); }",
			"(CompilationUnit (ClassDecl (Modifiers) A (ClassBody (MethodDecl (Modifiers abstract) void run (Parameters (Parameter (Modifiers final) int a) (Parameter '...' (Modifiers) (ClassType (TypeName String)) rest))))))",
		},
		{
			"class A { constructor(int x) { self.x = x; } }",
			"(CompilationUnit (ClassDecl (Modifiers) A (ClassBody (ConstructorDecl (Modifiers) (Parameters (Parameter (Modifiers) int x)) (ConstructorBody (ExprStmt (Assignment '=' (FieldAccess (Self) x) (ExpressionName x))))))))",
		},
		{
			"class A { { init(); } shared { load(); } }",
			"(CompilationUnit (ClassDecl (Modifiers) A (ClassBody (InstanceInitializer (Block (ExprStmt (MethodInvocation init (Arguments))))) (SharedInitializer (Block (ExprStmt (MethodInvocation load (Arguments))))))))",
		},
		{
			"class A { class B { } interface C { } enum D { } }",
			"(CompilationUnit (ClassDecl (Modifiers) A (ClassBody (ClassDecl (Modifiers) B (ClassBody)) (InterfaceDecl (Modifiers) C (InterfaceBody)) (EnumDecl (Modifiers) D (EnumBody)))))",
		},
		{
			"interface I { default void m() { } shared final int X = 1; }",
			"(CompilationUnit (InterfaceDecl (Modifiers) I (InterfaceBody (MethodDecl (Modifiers default) void m (Parameters) (Block)) (FieldDecl (Modifiers shared final) int (VariableDeclarator X 1)))))",
		},
		{
			"class A { List<String>[] names; }",
			"(CompilationUnit (ClassDecl (Modifiers) A (ClassBody (FieldDecl (Modifiers) (ArrayType (ClassType (TypeName List) (TypeArguments (ClassType (TypeName String))))) (VariableDeclarator names)))))",
		},
	})
}

func TestParseConstructorInvocations(t *testing.T) {
	runSExprTests(t, ParseCompilationUnit, []sexprTest{
		{
			"class A { constructor() { super(1); } }",
			"(CompilationUnit (ClassDecl (Modifiers) A (ClassBody (ConstructorDecl (Modifiers) (Parameters) (ConstructorBody (ExplicitConstructorInvocation 'super' (Arguments 1)))))))",
		},
		{
			"class A { constructor() { constructor(0); f(); } }",
			"(CompilationUnit (ClassDecl (Modifiers) A (ClassBody (ConstructorDecl (Modifiers) (Parameters) (ConstructorBody (ExplicitConstructorInvocation 'constructor' (Arguments 0)) (ExprStmt (MethodInvocation f (Arguments))))))))",
		},
		{
			"class A { constructor() { outer.super(); } }",
			"(CompilationUnit (ClassDecl (Modifiers) A (ClassBody (ConstructorDecl (Modifiers) (Parameters) (ConstructorBody (ExplicitConstructorInvocation 'super' (ExpressionName outer) (Arguments)))))))",
		},
		{
			"class A { constructor() { a.b.super(); } }",
			"(CompilationUnit (ClassDecl (Modifiers) A (ClassBody (ConstructorDecl (Modifiers) (Parameters) (ConstructorBody (ExplicitConstructorInvocation 'super' (ExpressionName (AmbiguousName a) b) (Arguments)))))))",
		},
		{
			"class A { constructor() { <T>super(); } }",
			"(CompilationUnit (ClassDecl (Modifiers) A (ClassBody (ConstructorDecl (Modifiers) (Parameters) (ConstructorBody (ExplicitConstructorInvocation 'super' (TypeArguments (ClassType (TypeName T))) (Arguments)))))))",
		},
		{
			"class A { constructor() { outer.<T>super(); } }",
			"(CompilationUnit (ClassDecl (Modifiers) A (ClassBody (ConstructorDecl (Modifiers) (Parameters) (ConstructorBody (ExplicitConstructorInvocation 'super' (ExpressionName outer) (TypeArguments (ClassType (TypeName T))) (Arguments)))))))",
		},
		{
			"class A { constructor() { new Outer().super(); } }",
			"(CompilationUnit (ClassDecl (Modifiers) A (ClassBody (ConstructorDecl (Modifiers) (Parameters) (ConstructorBody (ExplicitConstructorInvocation 'super' (NewExpr (ClassType (TypeName Outer)) (Arguments)) (Arguments)))))))",
		},
		{
			"class A { constructor() { f().g(); } }",
			"(CompilationUnit (ClassDecl (Modifiers) A (ClassBody (ConstructorDecl (Modifiers) (Parameters) (ConstructorBody (ExprStmt (MethodInvocation (MethodInvocation f (Arguments)) g (Arguments))))))))",
		},
	})
}

func TestParseCompilationUnitErrors(t *testing.T) {
	runErrorTests(t, ParseCompilationUnit, []errorTest{
		{"native class A { }", "Expected abstract, final, shared, or strictfp."},
		{"public private class A { }", "Conflicting access modifiers 'public' and 'private'."},
		{"final final class A { }", "Duplicate modifier 'final'."},
		{"class A { final constructor() { } }", "Unexpected modifier 'final'."},
		{"class A { transient void m() { } }", "Expected abstract, final, native, shared, strictfp, or synchronized."},
		{"interface I { constructor() { } }", "Interfaces cannot declare constructors."},
		{"class A { void x; }", "Fields cannot have type 'void'."},
		{"class A { <T> int x; }", "Expected '('."},
		{"void f() { }", "Expected class, enum, or interface."},
		{"import shared Math;", "Expected type name before shared member."},
		{"class A { void m() { super(); } }", "Explicit constructor invocation is only allowed as the first statement of a constructor."},
		{"class A { constructor() { f(); super(); } }", "Explicit constructor invocation is only allowed as the first statement of a constructor."},
		{"class A { constructor() { if (a) super(); } }", "Explicit constructor invocation is only allowed as the first statement of a constructor."},
		{"class A { int x[]; }", "Array dimensions belong to the type, not the variable name."},
		{"class A {", "Expected '}'."},
		{"class A { } }", "Expected class, enum, or interface."},
	})
}

func TestVariadicParameterPosition(t *testing.T) {
	params := []string{"int a", "int b", "int c"}
	for i := range params {
		t.Run(params[i], func(t *testing.T) {
			list := make([]string, len(params))
			copy(list, params)
			list[i] = strings.Replace(list[i], "int", "int...", 1)
			src := "class A { void m(" + strings.Join(list, ", ") + ") { } }"

			if i == len(params)-1 {
				parse(t, ParseCompilationUnit, src)
				return
			}
			want := "Only the last parameter may be variadic."
			if err := parseError(t, ParseCompilationUnit, src); err.Message != want {
				t.Errorf("error = %q, want %q", err.Message, want)
			}
		})
	}
}

func TestVariadicLambdaParameterPosition(t *testing.T) {
	params := []string{"int a", "String b", "List<T> c"}
	for i := range params {
		t.Run(params[i], func(t *testing.T) {
			list := make([]string, len(params))
			copy(list, params)
			parts := strings.SplitN(list[i], " ", 2)
			list[i] = parts[0] + "... " + parts[1]
			src := "(" + strings.Join(list, ", ") + ") -> 0"

			if i == len(params)-1 {
				parse(t, ParseExpression, src)
				return
			}
			want := "Only the last parameter may be variadic."
			if err := parseError(t, ParseExpression, src); err.Message != want {
				t.Errorf("error = %q, want %q", err.Message, want)
			}
		})
	}
}

func TestVariadicConstructor(t *testing.T) {
	runErrorTests(t, ParseCompilationUnit, []errorTest{
		{"class A { constructor(int... a, int b) { } }", "Only the last parameter may be variadic."},
		{"class A { void m(int... a, int... b); }", "Only the last parameter may be variadic."},
	})
}

func TestDeclarationLocations(t *testing.T) {
	src := "package p;\n\nclass A {\n  int x;\n  void m() { }\n}\n"
	unit := parse(t, ParseCompilationUnit, src)

	class := unit.FirstChildOfKind(ast.KindClassDecl)
	if class == nil {
		t.Fatalf("no ClassDecl in %s", unit.SExpr())
	}
	if class.Location.Line != 3 || class.Location.Column != 1 {
		t.Errorf("ClassDecl at %d:%d, want 3:1", class.Location.Line, class.Location.Column)
	}

	body := class.FirstChildOfKind(ast.KindClassBody)
	method := body.FirstChildOfKind(ast.KindMethodDecl)
	if method == nil {
		t.Fatalf("no MethodDecl in %s", body.SExpr())
	}
	if method.Location.Line != 5 || method.Location.Column != 3 {
		t.Errorf("MethodDecl at %d:%d, want 5:3", method.Location.Line, method.Location.Column)
	}
}

func TestModifierNodes(t *testing.T) {
	unit := parse(t, ParseCompilationUnit, "public abstract class A { }")
	mods := unit.Children[0].FirstChildOfKind(ast.KindModifiers)
	want := []token.Kind{token.Public, token.Abstract}
	got := mods.ChildrenOfKind(ast.KindModifier)
	if len(got) != len(want) {
		t.Fatalf("got %d modifiers, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].Op != want[i] {
			t.Errorf("modifier %d = %v, want %v", i, got[i].Op, want[i])
		}
	}
}

func TestRelabelingLeavesChainIntact(t *testing.T) {
	chain := buildName([]*ast.Node{
		ast.NewValue(ast.KindIdentifier, token.Location{}, "a"),
		ast.NewValue(ast.KindIdentifier, token.Location{}, "b"),
		ast.NewValue(ast.KindIdentifier, token.Location{}, "C"),
	})
	before := chain.SExpr()

	tests := []struct {
		relabel func(*ast.Node) *ast.Node
		want    string
	}{
		{toExpressionName, "(ExpressionName (AmbiguousName (AmbiguousName a) b) C)"},
		{toTypeName, "(TypeName (PackageOrTypeName (PackageOrTypeName a) b) C)"},
		{toPackageName, "(PackageName (PackageName (PackageName a) b) C)"},
		{toPackageOrTypeName, "(PackageOrTypeName (PackageOrTypeName (PackageOrTypeName a) b) C)"},
	}
	for _, tt := range tests {
		if got := tt.relabel(chain).SExpr(); got != tt.want {
			t.Errorf("relabel = %s, want %s", got, tt.want)
		}
	}
	if after := chain.SExpr(); after != before {
		t.Errorf("chain changed from %s to %s", before, after)
	}
}
