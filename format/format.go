// Package format renders Quill syntax trees and token streams for the
// command line tools.
package format

import (
	"encoding"
	"fmt"
	"io"

	"github.com/dhamidi/quill/lang/ast"
)

type Encoder interface {
	encoding.TextMarshaler
	Encode(node *ast.Node) error
}

// Names lists the formats accepted by NewEncoder.
var Names = []string{"tree", "sexpr", "json"}

// NewEncoder returns the encoder registered under name. positions is only
// honoured by the tree format.
func NewEncoder(name string, w io.Writer, positions bool) (Encoder, error) {
	switch name {
	case "tree":
		return &TreeEncoder{w: w, positions: positions}, nil
	case "sexpr":
		return &SExprEncoder{w: w}, nil
	case "json":
		return NewASTJSONEncoder(w), nil
	}
	return nil, fmt.Errorf("unknown format: %s", name)
}

// TreeEncoder writes one node per line, indented by depth.
type TreeEncoder struct {
	w         io.Writer
	positions bool
	node      *ast.Node
}

func NewTreeEncoder(w io.Writer, positions bool) *TreeEncoder {
	return &TreeEncoder{w: w, positions: positions}
}

func (e *TreeEncoder) Encode(node *ast.Node) error {
	e.node = node
	return writeText(e.w, e)
}

func (e *TreeEncoder) MarshalText() ([]byte, error) {
	if e.positions {
		return []byte(e.node.StringWithPositions()), nil
	}
	return []byte(e.node.String()), nil
}

// SExprEncoder writes the node on a single line.
type SExprEncoder struct {
	w    io.Writer
	node *ast.Node
}

func NewSExprEncoder(w io.Writer) *SExprEncoder {
	return &SExprEncoder{w: w}
}

func (e *SExprEncoder) Encode(node *ast.Node) error {
	e.node = node
	return writeText(e.w, e)
}

func (e *SExprEncoder) MarshalText() ([]byte, error) {
	return []byte(e.node.SExpr() + "\n"), nil
}

func writeText(w io.Writer, m encoding.TextMarshaler) error {
	text, err := m.MarshalText()
	if err != nil {
		return err
	}
	_, err = w.Write(text)
	return err
}
