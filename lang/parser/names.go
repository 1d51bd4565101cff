package parser

import (
	"github.com/dhamidi/quill/lang/ast"
	"github.com/dhamidi/quill/lang/token"
)

// A name chain a.b.c is parsed as
//
//	AmbiguousName{AmbiguousName{AmbiguousName{a}, b}, c}
//
// and relabeled once the surrounding tokens show what it denotes. Relabeling
// always builds new nodes; the chain it started from is left untouched.

func (p *Parser) parseAmbiguousName() (*ast.Node, error) {
	return parseList(p, isIdentifier, "Expected identifier.", token.Dot, p.parseIdentifier, buildName)
}

func buildName(ids []*ast.Node) *ast.Node {
	var name *ast.Node
	for _, id := range ids {
		loc := id.Location
		if name != nil {
			loc = name.Location
		}
		name = ast.New(ast.KindAmbiguousName, loc, name, id)
	}
	return name
}

// prefixCategory is the category a chain's prefix takes when the chain is
// relabeled to kind.
func prefixCategory(kind ast.NodeKind) ast.NodeKind {
	switch kind {
	case ast.KindExpressionName:
		return ast.KindAmbiguousName
	case ast.KindTypeName, ast.KindPackageOrTypeName:
		return ast.KindPackageOrTypeName
	case ast.KindPackageName:
		return ast.KindPackageName
	}
	return ast.KindAmbiguousName
}

// relabelName converts a chain of any name category to kind, relabeling its
// prefix recursively.
func relabelName(name *ast.Node, kind ast.NodeKind) *ast.Node {
	n := name.Relabel(kind)
	if len(n.Children) == 2 && n.Children[0].Kind.IsName() {
		n.Children[0] = relabelName(n.Children[0], prefixCategory(kind))
	}
	return n
}

func toExpressionName(name *ast.Node) *ast.Node {
	return relabelName(name, ast.KindExpressionName)
}

func toTypeName(name *ast.Node) *ast.Node {
	return relabelName(name, ast.KindTypeName)
}

func toPackageName(name *ast.Node) *ast.Node {
	return relabelName(name, ast.KindPackageName)
}

func toPackageOrTypeName(name *ast.Node) *ast.Node {
	return relabelName(name, ast.KindPackageOrTypeName)
}

// splitName separates a chain into its prefix (nil for a single identifier)
// and its last identifier.
func splitName(name *ast.Node) (prefix, last *ast.Node) {
	if len(name.Children) == 2 {
		return name.Children[0], name.Children[1]
	}
	return nil, name.Children[0]
}

// isSimpleName reports whether name is a single identifier of any category.
func isSimpleName(name *ast.Node) bool {
	return name.Kind.IsName() && len(name.Children) == 1
}
