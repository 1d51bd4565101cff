package parser

import (
	"github.com/dhamidi/quill/lang/ast"
	"github.com/dhamidi/quill/lang/token"
)

// modifierContext is the set of modifiers a declaration accepts.
type modifierContext struct {
	general token.Set
	access  bool
}

var (
	classModifiers           = modifierContext{token.NewSet(token.Abstract, token.Final, token.Shared, token.Strictfp), true}
	interfaceModifiers       = modifierContext{token.NewSet(token.Abstract, token.Shared, token.Strictfp), true}
	enumModifiers            = modifierContext{token.NewSet(token.Shared, token.Strictfp), true}
	fieldModifiers           = modifierContext{token.NewSet(token.Final, token.Shared, token.Transient, token.Volatile), true}
	methodModifiers          = modifierContext{token.NewSet(token.Abstract, token.Final, token.Shared, token.Strictfp, token.Native, token.Synchronized), true}
	interfaceMethodModifiers = modifierContext{token.NewSet(token.Abstract, token.Default, token.Shared, token.Strictfp), true}
	interfaceFieldModifiers  = modifierContext{token.NewSet(token.Final, token.Shared), true}
	constructorModifiers     = modifierContext{token.NewSet(), true}
	localVariableModifiers   = modifierContext{token.NewSet(token.Final), false}
	parameterModifiers       = modifierContext{token.NewSet(token.Final), false}
	localClassModifiers      = modifierContext{token.NewSet(token.Abstract, token.Final, token.Strictfp), false}
)

var modifierKeywords = token.NewSet(append(token.Kinds(token.AccessModifier), token.Kinds(token.GeneralModifier)...)...)

func isModifierKeyword(tok token.Token) bool {
	return modifierKeywords.Has(tok.Kind)
}

func isAnnotationStart(p *Parser) bool {
	return p.at(token.At) && !p.atN(1, token.Interface)
}

func modifierNode(tok token.Token) *ast.Node {
	n := ast.NewValue(ast.KindModifier, tok.Location, tok.Text)
	n.Op = tok.Kind
	return n
}

// parseModifiers parses annotations and modifier keywords in any order. It
// may return an empty Modifiers node.
func (p *Parser) parseModifiers() (*ast.Node, error) {
	mods := ast.New(ast.KindModifiers, p.peek().Location)
	for {
		switch {
		case isAnnotationStart(p):
			a, err := p.parseAnnotation()
			if err != nil {
				return nil, err
			}
			mods.AddChild(a)
		case p.at(token.Synchronized) && p.atN(1, token.LParen):
			return mods, nil
		case isModifierKeyword(p.peek()):
			keywords, err := parseMultiple(p, isModifierKeyword, "Expected modifier.", func() (*ast.Node, error) {
				return parseOneOf(p, modifierKeywords, "Expected modifier.", modifierNode)
			}, identity[*ast.Node])
			if err != nil {
				return nil, err
			}
			for _, k := range keywords {
				mods.AddChild(k)
			}
		default:
			return mods, nil
		}
	}
}

// restrictModifiers checks the keyword modifiers in mods against ctx.
func (p *Parser) restrictModifiers(mods *ast.Node, ctx modifierContext) error {
	var access *ast.Node
	seen := make(map[token.Kind]bool)
	for _, m := range mods.ChildrenOfKind(ast.KindModifier) {
		if seen[m.Op] {
			return p.errorAt(m.Location, "Duplicate modifier '%s'.", m.Value)
		}
		seen[m.Op] = true

		if m.Op.Is(token.AccessModifier) {
			if !ctx.access {
				return p.errorAt(m.Location, "Unexpected modifier '%s'.", m.Value)
			}
			if access != nil {
				return p.errorAt(m.Location, "Conflicting access modifiers '%s' and '%s'.", access.Value, m.Value)
			}
			access = m
			continue
		}
		if !ctx.general.Has(m.Op) {
			if len(ctx.general.Members()) == 0 {
				return p.errorAt(m.Location, "Unexpected modifier '%s'.", m.Value)
			}
			return p.errorAt(m.Location, "Expected %s.", ctx.general.Describe())
		}
	}
	return nil
}

// parseAnnotations parses annotations only, as allowed on type parameters
// and enum constants.
func (p *Parser) parseAnnotations() ([]*ast.Node, error) {
	var result []*ast.Node
	for isAnnotationStart(p) {
		a, err := p.parseAnnotation()
		if err != nil {
			return nil, err
		}
		result = append(result, a)
	}
	return result, nil
}

// parseAnnotation parses @Name, @Name(value) and @Name(k = v, ...).
func (p *Parser) parseAnnotation() (*ast.Node, error) {
	at, err := p.expect(token.At)
	if err != nil {
		return nil, err
	}
	name, err := p.parseAmbiguousName()
	if err != nil {
		return nil, err
	}
	a := ast.New(ast.KindAnnotation, at.Location, toTypeName(name))
	if !p.match(token.LParen) {
		return a, nil
	}

	switch {
	case p.at(token.RParen):
	case p.at(token.Identifier) && p.atN(1, token.Assign):
		pairs, err := parseList(p, isIdentifier, "Expected identifier.", token.Comma, p.parseElementValuePair, identity[*ast.Node])
		if err != nil {
			return nil, err
		}
		for _, pair := range pairs {
			a.AddChild(pair)
		}
	default:
		v, err := p.parseElementValue()
		if err != nil {
			return nil, err
		}
		a.AddChild(v)
	}

	if _, err := p.expect(token.RParen); err != nil {
		return nil, err
	}
	return a, nil
}

func (p *Parser) parseElementValuePair() (*ast.Node, error) {
	id, err := p.parseIdentifier()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Assign); err != nil {
		return nil, err
	}
	v, err := p.parseElementValue()
	if err != nil {
		return nil, err
	}
	return ast.New(ast.KindElementValuePair, id.Location, id, v), nil
}

func isElementValueStart(tok token.Token) bool {
	return tok.Kind == token.At || tok.Kind == token.LBrace || tok.Kind.IsExpressionStart()
}

func (p *Parser) parseElementValue() (*ast.Node, error) {
	switch {
	case p.at(token.At):
		return p.parseAnnotation()
	case p.at(token.LBrace):
		return p.parseInitializerList(p.parseElementValue, isElementValueStart)
	}
	return p.parseConditional(nil)
}
