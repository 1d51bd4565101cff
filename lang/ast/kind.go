package ast

type NodeKind int

const (
	KindError NodeKind = iota

	// Compilation unit level
	KindCompilationUnit
	KindPackageDecl
	KindImportDecl

	// Type declarations
	KindClassDecl
	KindInterfaceDecl
	KindEnumDecl
	KindClassBody
	KindInterfaceBody
	KindEnumBody
	KindEnumConstant
	KindExtendsClause
	KindImplementsClause

	// Members
	KindFieldDecl
	KindVariableDeclarator
	KindMethodDecl
	KindConstructorDecl
	KindConstructorBody
	KindExplicitConstructorInvocation
	KindInstanceInitializer
	KindSharedInitializer
	KindParameters
	KindParameter
	KindThrowsList

	// Modifiers and annotations
	KindModifiers
	KindModifier
	KindAnnotation
	KindElementValuePair

	// Names
	KindIdentifier
	KindAmbiguousName
	KindExpressionName
	KindTypeName
	KindPackageName
	KindPackageOrTypeName

	// Types
	KindPrimitiveType
	KindVoidType
	KindInferredType
	KindClassType
	KindArrayType
	KindTypeArguments
	KindDiamond
	KindWildcard
	KindTypeParameters
	KindTypeParameter
	KindTypeBound

	// Statements
	KindBlock
	KindLocalVarDecl
	KindEmptyStmt
	KindExprStmt
	KindLabeledStmt
	KindIfStmt
	KindInit
	KindWhileStmt
	KindDoStmt
	KindForStmt
	KindForInit
	KindForUpdate
	KindEnhancedForStmt
	KindSwitchStmt
	KindSwitchBlock
	KindSwitchRule
	KindSwitchGroup
	KindSwitchLabel
	KindTypePattern
	KindReturnStmt
	KindBreakStmt
	KindContinueStmt
	KindThrowStmt
	KindYieldStmt
	KindSynchronizedStmt
	KindTryStmt
	KindResourceSpec
	KindResource
	KindCatchClause
	KindCatchParameter
	KindCatchType
	KindFinallyClause
	KindAssertStmt

	// Expressions
	KindAssignment
	KindLambdaExpr
	KindLambdaParameters
	KindConditionalExpr
	KindBinaryExpr
	KindIsaExpr
	KindCastExpr
	KindUnaryExpr
	KindPostfixExpr
	KindLiteral
	KindSelf
	KindQualifiedSelf
	KindSuper
	KindParenExpr
	KindClassLiteral
	KindNewExpr
	KindNewArrayExpr
	KindDimExpr
	KindArrayInit
	KindArguments
	KindFieldAccess
	KindMethodInvocation
	KindElementAccess
	KindMethodReference
	KindSwitchExpr

	nodeKindCount
)

var nodeKindNames = map[NodeKind]string{
	KindError:                         "Error",
	KindCompilationUnit:               "CompilationUnit",
	KindPackageDecl:                   "PackageDecl",
	KindImportDecl:                    "ImportDecl",
	KindClassDecl:                     "ClassDecl",
	KindInterfaceDecl:                 "InterfaceDecl",
	KindEnumDecl:                      "EnumDecl",
	KindClassBody:                     "ClassBody",
	KindInterfaceBody:                 "InterfaceBody",
	KindEnumBody:                      "EnumBody",
	KindEnumConstant:                  "EnumConstant",
	KindExtendsClause:                 "ExtendsClause",
	KindImplementsClause:              "ImplementsClause",
	KindFieldDecl:                     "FieldDecl",
	KindVariableDeclarator:            "VariableDeclarator",
	KindMethodDecl:                    "MethodDecl",
	KindConstructorDecl:               "ConstructorDecl",
	KindConstructorBody:               "ConstructorBody",
	KindExplicitConstructorInvocation: "ExplicitConstructorInvocation",
	KindInstanceInitializer:           "InstanceInitializer",
	KindSharedInitializer:             "SharedInitializer",
	KindParameters:                    "Parameters",
	KindParameter:                     "Parameter",
	KindThrowsList:                    "ThrowsList",
	KindModifiers:                     "Modifiers",
	KindModifier:                      "Modifier",
	KindAnnotation:                    "Annotation",
	KindElementValuePair:              "ElementValuePair",
	KindIdentifier:                    "Identifier",
	KindAmbiguousName:                 "AmbiguousName",
	KindExpressionName:                "ExpressionName",
	KindTypeName:                      "TypeName",
	KindPackageName:                   "PackageName",
	KindPackageOrTypeName:             "PackageOrTypeName",
	KindPrimitiveType:                 "PrimitiveType",
	KindVoidType:                      "VoidType",
	KindInferredType:                  "InferredType",
	KindClassType:                     "ClassType",
	KindArrayType:                     "ArrayType",
	KindTypeArguments:                 "TypeArguments",
	KindDiamond:                       "Diamond",
	KindWildcard:                      "Wildcard",
	KindTypeParameters:                "TypeParameters",
	KindTypeParameter:                 "TypeParameter",
	KindTypeBound:                     "TypeBound",
	KindBlock:                         "Block",
	KindLocalVarDecl:                  "LocalVarDecl",
	KindEmptyStmt:                     "EmptyStmt",
	KindExprStmt:                      "ExprStmt",
	KindLabeledStmt:                   "LabeledStmt",
	KindIfStmt:                        "IfStmt",
	KindInit:                          "Init",
	KindWhileStmt:                     "WhileStmt",
	KindDoStmt:                        "DoStmt",
	KindForStmt:                       "ForStmt",
	KindForInit:                       "ForInit",
	KindForUpdate:                     "ForUpdate",
	KindEnhancedForStmt:               "EnhancedForStmt",
	KindSwitchStmt:                    "SwitchStmt",
	KindSwitchBlock:                   "SwitchBlock",
	KindSwitchRule:                    "SwitchRule",
	KindSwitchGroup:                   "SwitchGroup",
	KindSwitchLabel:                   "SwitchLabel",
	KindTypePattern:                   "TypePattern",
	KindReturnStmt:                    "ReturnStmt",
	KindBreakStmt:                     "BreakStmt",
	KindContinueStmt:                  "ContinueStmt",
	KindThrowStmt:                     "ThrowStmt",
	KindYieldStmt:                     "YieldStmt",
	KindSynchronizedStmt:              "SynchronizedStmt",
	KindTryStmt:                       "TryStmt",
	KindResourceSpec:                  "ResourceSpec",
	KindResource:                      "Resource",
	KindCatchClause:                   "CatchClause",
	KindCatchParameter:                "CatchParameter",
	KindCatchType:                     "CatchType",
	KindFinallyClause:                 "FinallyClause",
	KindAssertStmt:                    "AssertStmt",
	KindAssignment:                    "Assignment",
	KindLambdaExpr:                    "LambdaExpr",
	KindLambdaParameters:              "LambdaParameters",
	KindConditionalExpr:               "ConditionalExpr",
	KindBinaryExpr:                    "BinaryExpr",
	KindIsaExpr:                       "IsaExpr",
	KindCastExpr:                      "CastExpr",
	KindUnaryExpr:                     "UnaryExpr",
	KindPostfixExpr:                   "PostfixExpr",
	KindLiteral:                       "Literal",
	KindSelf:                          "Self",
	KindQualifiedSelf:                 "QualifiedSelf",
	KindSuper:                         "Super",
	KindParenExpr:                     "ParenExpr",
	KindClassLiteral:                  "ClassLiteral",
	KindNewExpr:                       "NewExpr",
	KindNewArrayExpr:                  "NewArrayExpr",
	KindDimExpr:                       "DimExpr",
	KindArrayInit:                     "ArrayInit",
	KindArguments:                     "Arguments",
	KindFieldAccess:                   "FieldAccess",
	KindMethodInvocation:              "MethodInvocation",
	KindElementAccess:                 "ElementAccess",
	KindMethodReference:               "MethodReference",
	KindSwitchExpr:                    "SwitchExpr",
}

func (k NodeKind) String() string {
	if name, ok := nodeKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// IsValue reports whether nodes of kind k carry a Value payload instead of
// children.
func (k NodeKind) IsValue() bool {
	switch k {
	case KindIdentifier, KindLiteral, KindModifier, KindPrimitiveType, KindVoidType, KindInferredType:
		return true
	}
	return false
}

// IsName reports whether k is one of the dotted name chain categories.
func (k NodeKind) IsName() bool {
	switch k {
	case KindAmbiguousName, KindExpressionName, KindTypeName, KindPackageName, KindPackageOrTypeName:
		return true
	}
	return false
}

// IsCollapsible reports whether a node of kind k with a single child and no
// operation tag can be replaced by that child.
func (k NodeKind) IsCollapsible() bool {
	switch k {
	case KindParenExpr, KindCatchType, KindTypeBound, KindClassType:
		return true
	}
	return false
}
