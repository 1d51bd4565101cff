package ast

import (
	"strconv"
	"strings"

	"github.com/dhamidi/quill/lang/token"
)

// SExpr renders n on a single line. Value nodes print as their text (string
// and character literals quoted); parent nodes print as
// (Kind 'op' child...), with the op omitted when absent.
func (n *Node) SExpr() string {
	var b strings.Builder
	n.writeSExpr(&b)
	return b.String()
}

func (n *Node) writeSExpr(b *strings.Builder) {
	if n.IsValue() {
		b.WriteString(n.valueText())
		return
	}
	b.WriteByte('(')
	b.WriteString(n.Kind.String())
	if n.Op != token.Unknown {
		b.WriteString(" '")
		b.WriteString(n.Op.String())
		b.WriteByte('\'')
	}
	for _, child := range n.Children {
		b.WriteByte(' ')
		child.writeSExpr(b)
	}
	b.WriteByte(')')
}

func (n *Node) valueText() string {
	if n.Kind == KindLiteral {
		switch n.Op {
		case token.StringLiteral:
			return strconv.Quote(n.Value)
		case token.CharLiteral:
			q := strconv.Quote(n.Value)
			return "'" + q[1:len(q)-1] + "'"
		}
	}
	return n.Value
}
