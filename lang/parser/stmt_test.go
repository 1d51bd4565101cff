package parser

import "testing"

func TestParseStatementDeclarations(t *testing.T) {
	runSExprTests(t, ParseStatement, []sexprTest{
		{"int x = 1;", "(LocalVarDecl (Modifiers) int (VariableDeclarator x 1))"},
		{"int a, b = 2;", "(LocalVarDecl (Modifiers) int (VariableDeclarator a) (VariableDeclarator b 2))"},
		{"auto x = f();", "(LocalVarDecl (Modifiers) auto (VariableDeclarator x (MethodInvocation f (Arguments))))"},
		{"final String s;", "(LocalVarDecl (Modifiers final) (ClassType (TypeName String)) (VariableDeclarator s))"},
		{"List<Map<K,V>> x;", "(LocalVarDecl (Modifiers) (ClassType (TypeName List) (TypeArguments (ClassType (TypeName Map) (TypeArguments (ClassType (TypeName K)) (ClassType (TypeName V)))))) (VariableDeclarator x))"},
		{"List<String> xs = foo();", "(LocalVarDecl (Modifiers) (ClassType (TypeName List) (TypeArguments (ClassType (TypeName String)))) (VariableDeclarator xs (MethodInvocation foo (Arguments))))"},
		{"a.b.C x;", "(LocalVarDecl (Modifiers) (ClassType (TypeName (PackageOrTypeName (PackageOrTypeName a) b) C)) (VariableDeclarator x))"},
		{"Foo[] xs;", "(LocalVarDecl (Modifiers) (ArrayType (ClassType (TypeName Foo))) (VariableDeclarator xs))"},
		{"int[] xs = {1, 2};", "(LocalVarDecl (Modifiers) (ArrayType int) (VariableDeclarator xs (ArrayInit 1 2)))"},
		{"class Local { }", "(ClassDecl (Modifiers) Local (ClassBody))"},
		{"final class Local { }", "(ClassDecl (Modifiers final) Local (ClassBody))"},
	})
}

func TestParseStatementExpressions(t *testing.T) {
	runSExprTests(t, ParseStatement, []sexprTest{
		{"a.b.c = 1;", "(ExprStmt (Assignment '=' (ExpressionName (AmbiguousName (AmbiguousName a) b) c) 1))"},
		{"a.b.c(x);", "(ExprStmt (MethodInvocation (AmbiguousName (AmbiguousName a) b) c (Arguments (ExpressionName x))))"},
		{"i++;", "(ExprStmt (PostfixExpr '++' (ExpressionName i)))"},
		{"--i;", "(ExprStmt (UnaryExpr '--' (ExpressionName i)))"},
		{"x = a < b;", "(ExprStmt (Assignment '=' (ExpressionName x) (BinaryExpr '<' (ExpressionName a) (ExpressionName b))))"},
		{"a[i] = x >> 2;", "(ExprStmt (Assignment '=' (ElementAccess (ExpressionName a) (ExpressionName i)) (BinaryExpr '>>' (ExpressionName x) 2)))"},
		{"new Foo();", "(ExprStmt (NewExpr (ClassType (TypeName Foo)) (Arguments)))"},
		{"self.count += 1;", "(ExprStmt (Assignment '+=' (FieldAccess (Self) count) 1))"},
		{"String.valueOf(1);", "(ExprStmt (MethodInvocation (AmbiguousName String) valueOf (Arguments 1)))"},
		{"list.<String>add(x);", "(ExprStmt (MethodInvocation (AmbiguousName list) (TypeArguments (ClassType (TypeName String))) add (Arguments (ExpressionName x))))"},
	})
}

func TestParseStatementControl(t *testing.T) {
	runSExprTests(t, ParseStatement, []sexprTest{
		{
			"if (a) if (b) s1(); else s2();",
			"(IfStmt (ExpressionName a) (IfStmt (ExpressionName b) (ExprStmt (MethodInvocation s1 (Arguments))) (ExprStmt (MethodInvocation s2 (Arguments)))))",
		},
		{
			"if (a) { } else if (b) { } else { }",
			"(IfStmt (ExpressionName a) (Block) (IfStmt (ExpressionName b) (Block) (Block)))",
		},
		{
			"if { auto x = f(); } (x > 0) g();",
			"(IfStmt (Init (Block (LocalVarDecl (Modifiers) auto (VariableDeclarator x (MethodInvocation f (Arguments)))))) (BinaryExpr '>' (ExpressionName x) 0) (ExprStmt (MethodInvocation g (Arguments))))",
		},
		{
			"while (i < n) i++;",
			"(WhileStmt (BinaryExpr '<' (ExpressionName i) (ExpressionName n)) (ExprStmt (PostfixExpr '++' (ExpressionName i))))",
		},
		{
			"while { int i = 0; } (i < n) { }",
			"(WhileStmt (Init (Block (LocalVarDecl (Modifiers) int (VariableDeclarator i 0)))) (BinaryExpr '<' (ExpressionName i) (ExpressionName n)) (Block))",
		},
		{
			"do x++; while (x < 3);",
			"(DoStmt (ExprStmt (PostfixExpr '++' (ExpressionName x))) (BinaryExpr '<' (ExpressionName x) 3))",
		},
		{
			"for (int i = 0; i < n; i++) { }",
			"(ForStmt (ForInit (LocalVarDecl (Modifiers) int (VariableDeclarator i 0))) (BinaryExpr '<' (ExpressionName i) (ExpressionName n)) (ForUpdate (PostfixExpr '++' (ExpressionName i))) (Block))",
		},
		{
			"for (;;) ;",
			"(ForStmt (ForInit) (ForUpdate) (EmptyStmt))",
		},
		{
			"for (i = 0, j = 1; ; i++, j--) { }",
			"(ForStmt (ForInit (Assignment '=' (ExpressionName i) 0) (Assignment '=' (ExpressionName j) 1)) (ForUpdate (PostfixExpr '++' (ExpressionName i)) (PostfixExpr '--' (ExpressionName j))) (Block))",
		},
		{
			"for (auto x : xs) { }",
			"(EnhancedForStmt (LocalVarDecl (Modifiers) auto (VariableDeclarator x)) (ExpressionName xs) (Block))",
		},
		{
			"for (Map.Entry<K, V> e : m.entries()) { }",
			"(EnhancedForStmt (LocalVarDecl (Modifiers) (ClassType (TypeName (PackageOrTypeName Map) Entry) (TypeArguments (ClassType (TypeName K)) (ClassType (TypeName V)))) (VariableDeclarator e)) (MethodInvocation (AmbiguousName m) entries (Arguments)) (Block))",
		},
		{
			"for (final int i : 0..10) { }",
			"(EnhancedForStmt (LocalVarDecl (Modifiers final) int (VariableDeclarator i)) (BinaryExpr '..' 0 10) (Block))",
		},
		{"return;", "(ReturnStmt)"},
		{"return a + 1;", "(ReturnStmt (BinaryExpr '+' (ExpressionName a) 1))"},
		{"throw new Error();", "(ThrowStmt (NewExpr (ClassType (TypeName Error)) (Arguments)))"},
		{"break;", "(BreakStmt)"},
		{"continue outer;", "(ContinueStmt outer)"},
		{"outer: while (true) break outer;", "(LabeledStmt outer (WhileStmt true (BreakStmt outer)))"},
		{"synchronized (lock) { }", "(SynchronizedStmt (ExpressionName lock) (Block))"},
		{"assert x > 0 : \"positive\";", "(AssertStmt (BinaryExpr '>' (ExpressionName x) 0) \"positive\")"},
		{";", "(EmptyStmt)"},
		{"{ int x; x = 1; }", "(Block (LocalVarDecl (Modifiers) int (VariableDeclarator x)) (ExprStmt (Assignment '=' (ExpressionName x) 1)))"},
	})
}

func TestParseSwitchStatement(t *testing.T) {
	runSExprTests(t, ParseStatement, []sexprTest{
		{
			"switch (x) { case 1, 2 -> a(); case String s -> b(); default -> { } }",
			"(SwitchStmt (ExpressionName x) (SwitchBlock (SwitchRule (SwitchLabel 'case' 1 2) (MethodInvocation a (Arguments))) (SwitchRule (SwitchLabel 'case' (TypePattern (Modifiers) (ClassType (TypeName String)) s)) (MethodInvocation b (Arguments))) (SwitchRule (SwitchLabel 'default') (Block))))",
		},
		{
			"switch (x) { case 1: case 2: f(); break; default: g(); }",
			"(SwitchStmt (ExpressionName x) (SwitchBlock (SwitchGroup (SwitchLabel 'case' 1) (SwitchLabel 'case' 2) (ExprStmt (MethodInvocation f (Arguments))) (BreakStmt)) (SwitchGroup (SwitchLabel 'default') (ExprStmt (MethodInvocation g (Arguments))))))",
		},
		{
			"switch (o) { case final int i -> f(i); case null -> throw new Error(); }",
			"(SwitchStmt (ExpressionName o) (SwitchBlock (SwitchRule (SwitchLabel 'case' (TypePattern (Modifiers final) int i)) (MethodInvocation f (Arguments (ExpressionName i)))) (SwitchRule (SwitchLabel 'case' null) (ThrowStmt (NewExpr (ClassType (TypeName Error)) (Arguments))))))",
		},
		{
			"switch (x) { }",
			"(SwitchStmt (ExpressionName x) (SwitchBlock))",
		},
		{
			"switch (x) { case 1 -> y = 2; default -> n++; }",
			"(SwitchStmt (ExpressionName x) (SwitchBlock (SwitchRule (SwitchLabel 'case' 1) (Assignment '=' (ExpressionName y) 2)) (SwitchRule (SwitchLabel 'default') (PostfixExpr '++' (ExpressionName n)))))",
		},
	})
}

func TestParseTryStatement(t *testing.T) {
	runSExprTests(t, ParseStatement, []sexprTest{
		{
			"try (auto r = open()) { } catch (A | B e) { } finally { }",
			"(TryStmt (ResourceSpec (Resource (LocalVarDecl (Modifiers) auto (VariableDeclarator r (MethodInvocation open (Arguments)))))) (Block) (CatchClause (CatchParameter (Modifiers) (CatchType (ClassType (TypeName A)) (ClassType (TypeName B))) e) (Block)) (FinallyClause (Block)))",
		},
		{
			"try { } catch (final IOException e) { }",
			"(TryStmt (Block) (CatchClause (CatchParameter (Modifiers final) (CatchType (ClassType (TypeName IOException))) e) (Block)))",
		},
		{
			"try (input; self.out; Reader r = open();) { } finally { }",
			"(TryStmt (ResourceSpec (Resource (ExpressionName input)) (Resource (FieldAccess (Self) out)) (Resource (LocalVarDecl (Modifiers) (ClassType (TypeName Reader)) (VariableDeclarator r (MethodInvocation open (Arguments)))))) (Block) (FinallyClause (Block)))",
		},
	})
}

func TestParseStatementErrors(t *testing.T) {
	runErrorTests(t, ParseStatement, []errorTest{
		{"x + 1;", "Not a statement."},
		{"a;", "Not a statement."},
		{"1;", "Not a statement."},
		{"switch (x) { }.foo();", "Not a statement."},
		{"switch (x) { case 1 -> y; }", "Not a statement."},
		{"switch (x) { case 1 -> a + 1; default -> f(); }", "Not a statement."},
		{"a + b = c;", "Invalid assignment target."},
		{"super();", "Explicit constructor invocation is only allowed as the first statement of a constructor."},
		{"a.super();", "Explicit constructor invocation is only allowed as the first statement of a constructor."},
		{"try { }", "Expected 'catch' or 'finally'."},
		{"try (1) { } finally { }", "Expected resource."},
		{"try (f()) { } finally { }", "Expected resource."},
		{"int x[] = null;", "Array dimensions belong to the type, not the variable name."},
		{"public int x;", "Unexpected modifier 'public'."},
		{"final final int x;", "Duplicate modifier 'final'."},
		{"abstract int x;", "Expected final."},
		{"for (int i = 0, f(); ;) { }", "Expected ';'."},
		{"for (f() + 1; ;) { }", "Not a statement."},
		{"if (a) int x = 1;", "Expected '.class' or '::'."},
		{"List<String> 1;", "Expected identifier."},
		{"x = 1", "Expected ';'."},
	})
}
