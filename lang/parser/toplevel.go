package parser

import (
	"github.com/dhamidi/quill/lang/ast"
	"github.com/dhamidi/quill/lang/token"
)

// parseCompilationUnit parses [package] import* (type declaration | ;)*.
func (p *Parser) parseCompilationUnit() (*ast.Node, error) {
	unit := ast.New(ast.KindCompilationUnit, p.peek().Location)

	if p.at(token.Package) {
		pkg, err := p.parsePackageDeclaration()
		if err != nil {
			return nil, err
		}
		unit.AddChild(pkg)
	}

	for p.at(token.Import) {
		imp, err := p.parseImportDeclaration()
		if err != nil {
			return nil, err
		}
		unit.AddChild(imp)
	}

	for !p.at(token.EOF) {
		if p.match(token.Semicolon) {
			continue
		}
		decl, err := p.parseTopLevelDeclaration()
		if err != nil {
			return nil, err
		}
		unit.AddChild(decl)
	}
	return unit, nil
}

func (p *Parser) parsePackageDeclaration() (*ast.Node, error) {
	kw := p.advance()
	name, err := p.parseAmbiguousName()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Semicolon); err != nil {
		return nil, err
	}
	return ast.New(ast.KindPackageDecl, kw.Location, toPackageName(name)), nil
}

// parseImportDeclaration parses the four import forms:
//
//	import a.b.C;          single type
//	import a.b.*;          every type in a package or type
//	import shared a.B.m;   one shared member of a type
//	import shared a.B.*;   every shared member of a type
//
// Wildcard imports carry the '*' operation tag.
func (p *Parser) parseImportDeclaration() (*ast.Node, error) {
	kw := p.advance()
	imp := ast.New(ast.KindImportDecl, kw.Location)

	shared := false
	if p.at(token.Shared) {
		shared = true
		imp.AddChild(modifierNode(p.advance()))
	}

	name, err := p.parseAmbiguousName()
	if err != nil {
		return nil, err
	}

	switch {
	case p.at(token.Dot) && p.atN(1, token.Star):
		p.advance()
		p.advance()
		imp.Op = token.Star
		if shared {
			imp.AddChild(toTypeName(name))
		} else {
			imp.AddChild(toPackageOrTypeName(name))
		}
	case shared:
		prefix, member := splitName(name)
		if prefix == nil {
			return nil, p.errorAt(member.Location, "Expected type name before shared member.")
		}
		imp.AddChild(toTypeName(prefix))
		imp.AddChild(member)
	default:
		imp.AddChild(toTypeName(name))
	}

	if _, err := p.expect(token.Semicolon); err != nil {
		return nil, err
	}
	return imp, nil
}

func (p *Parser) parseTopLevelDeclaration() (*ast.Node, error) {
	mods, err := p.parseModifiers()
	if err != nil {
		return nil, err
	}
	var ctx modifierContext
	switch {
	case p.at(token.Class):
		ctx = classModifiers
	case p.at(token.Interface):
		ctx = interfaceModifiers
	case p.at(token.Enum):
		ctx = enumModifiers
	default:
		return nil, p.errorf("Expected %s.", typeDeclarationKeywords.Describe())
	}
	if err := p.restrictModifiers(mods, ctx); err != nil {
		return nil, err
	}
	return p.parseTypeDeclarationRest(mods)
}
