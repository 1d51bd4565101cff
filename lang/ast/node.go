// Package ast defines the single node type produced by the parser.
//
// Every production is represented by a Node tagged with a NodeKind. Value
// nodes (identifiers, literals, modifiers, primitive types) carry their text in
// Value and have no children; every other node carries children only. Op
// records the token that distinguishes productions with the same shape, such
// as the operator of a BinaryExpr.
package ast

import (
	"fmt"
	"strings"

	"github.com/dhamidi/quill/lang/token"
)

type Node struct {
	Kind     NodeKind
	Location token.Location
	Children []*Node
	Op       token.Kind
	Value    string
}

// New builds a parent node. Nil children are skipped so optional parts can be
// passed directly.
func New(kind NodeKind, loc token.Location, children ...*Node) *Node {
	n := &Node{Kind: kind, Location: loc}
	for _, child := range children {
		n.AddChild(child)
	}
	return n
}

func NewValue(kind NodeKind, loc token.Location, value string) *Node {
	return &Node{Kind: kind, Location: loc, Value: value}
}

// NewOp builds a parent node tagged with an operation.
func NewOp(kind NodeKind, op token.Kind, loc token.Location, children ...*Node) *Node {
	n := New(kind, loc, children...)
	n.Op = op
	return n
}

func (n *Node) AddChild(child *Node) {
	if child != nil {
		n.Children = append(n.Children, child)
	}
}

func (n *Node) IsValue() bool {
	return n.Kind.IsValue()
}

func (n *Node) IsCollapsible() bool {
	return n.Kind.IsCollapsible() && len(n.Children) == 1 && n.Op == token.Unknown
}

func (n *Node) FirstChildOfKind(kind NodeKind) *Node {
	for _, child := range n.Children {
		if child.Kind == kind {
			return child
		}
	}
	return nil
}

func (n *Node) ChildrenOfKind(kind NodeKind) []*Node {
	var result []*Node
	for _, child := range n.Children {
		if child.Kind == kind {
			result = append(result, child)
		}
	}
	return result
}

// Last returns the final child, or nil.
func (n *Node) Last() *Node {
	if len(n.Children) == 0 {
		return nil
	}
	return n.Children[len(n.Children)-1]
}

// Clone copies n and its direct child slice. Children are shared.
func (n *Node) Clone() *Node {
	c := *n
	if n.Children != nil {
		c.Children = append([]*Node(nil), n.Children...)
	}
	return &c
}

// Relabel returns a copy of n with a different kind.
func (n *Node) Relabel(kind NodeKind) *Node {
	c := n.Clone()
	c.Kind = kind
	return c
}

// Simplify returns a new tree in which every collapsible node has been
// replaced by its only child. The input is not modified.
func Simplify(n *Node) *Node {
	if n == nil {
		return nil
	}
	if n.IsCollapsible() {
		return Simplify(n.Children[0])
	}
	c := *n
	if len(n.Children) > 0 {
		c.Children = make([]*Node, len(n.Children))
		for i, child := range n.Children {
			c.Children[i] = Simplify(child)
		}
	}
	return &c
}

// Walk calls fn for n and its descendants in depth-first order. Returning
// false from fn skips the node's children.
func Walk(n *Node, fn func(*Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, child := range n.Children {
		Walk(child, fn)
	}
}

func (n *Node) String() string {
	var b strings.Builder
	n.writeIndent(&b, 0, false)
	return b.String()
}

func (n *Node) StringWithPositions() string {
	var b strings.Builder
	n.writeIndent(&b, 0, true)
	return b.String()
}

func (n *Node) writeIndent(b *strings.Builder, indent int, showPositions bool) {
	b.WriteString(strings.Repeat("  ", indent))
	b.WriteString(n.Kind.String())
	if n.Op != token.Unknown {
		fmt.Fprintf(b, " '%s'", n.Op)
	}
	if n.IsValue() {
		fmt.Fprintf(b, " %q", n.Value)
	}
	if showPositions {
		fmt.Fprintf(b, " [%d:%d]", n.Location.Line, n.Location.Column)
	}
	b.WriteByte('\n')

	for _, child := range n.Children {
		child.writeIndent(b, indent+1, showPositions)
	}
}
