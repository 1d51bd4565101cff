package format

import (
	"encoding/json"
	"errors"
	"io"

	"github.com/dhamidi/quill/lang/ast"
	"github.com/dhamidi/quill/lang/diag"
	"github.com/dhamidi/quill/lang/token"
)

type ASTJSONEncoder struct {
	w    io.Writer
	node *ast.Node
}

func NewASTJSONEncoder(w io.Writer) *ASTJSONEncoder {
	return &ASTJSONEncoder{w: w}
}

func (e *ASTJSONEncoder) Encode(node *ast.Node) error {
	e.node = node
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(append(text, '\n'))
	return err
}

func (e *ASTJSONEncoder) MarshalText() ([]byte, error) {
	return json.MarshalIndent(nodeToJSON(e.node), "", "  ")
}

// EncodeError writes a parse failure in the same JSON shape used for nodes,
// so tools reading the output can tell the two apart by the "error" field.
func (e *ASTJSONEncoder) EncodeError(err error) error {
	text, jerr := json.MarshalIndent(errorToJSON(err), "", "  ")
	if jerr != nil {
		return jerr
	}
	_, jerr = e.w.Write(append(text, '\n'))
	return jerr
}

type astJSONNode struct {
	Kind     string           `json:"kind"`
	Location *astJSONPosition `json:"location,omitempty"`
	Op       string           `json:"op,omitempty"`
	Value    *string          `json:"value,omitempty"`
	Children []*astJSONNode   `json:"children,omitempty"`
}

type astJSONPosition struct {
	File   string `json:"file,omitempty"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
}

type astJSONError struct {
	Error struct {
		Kind     string           `json:"kind"`
		Message  string           `json:"message"`
		Location *astJSONPosition `json:"location,omitempty"`
	} `json:"error"`
}

func positionToJSON(loc token.Location) *astJSONPosition {
	if loc.Line == 0 {
		return nil
	}
	return &astJSONPosition{File: loc.File, Line: loc.Line, Column: loc.Column}
}

func nodeToJSON(n *ast.Node) *astJSONNode {
	jn := &astJSONNode{
		Kind:     n.Kind.String(),
		Location: positionToJSON(n.Location),
	}
	if n.Op != token.Unknown {
		jn.Op = n.Op.String()
	}
	if n.IsValue() {
		value := n.Value
		jn.Value = &value
	}

	if len(n.Children) > 0 {
		jn.Children = make([]*astJSONNode, len(n.Children))
		for i, child := range n.Children {
			jn.Children[i] = nodeToJSON(child)
		}
	}
	return jn
}

func errorToJSON(err error) *astJSONError {
	je := &astJSONError{}
	var d *diag.Error
	if errors.As(err, &d) {
		je.Error.Kind = d.Kind.String()
		je.Error.Message = d.Message
		je.Error.Location = positionToJSON(d.Location)
		return je
	}
	je.Error.Kind = "error"
	je.Error.Message = err.Error()
	return je
}
