package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dhamidi/quill/format"
	"github.com/dhamidi/quill/lang/ast"
	"github.com/dhamidi/quill/lang/parser"
)

var entryPoints = map[string]func(io.Reader, ...parser.Option) *parser.Parser{
	"unit": parser.ParseCompilationUnit,
	"expr": parser.ParseExpression,
	"stmt": parser.ParseStatement,
	"type": parser.ParseType,
}

var errParseFailed = errors.New("parse failed")

func newParseCmd() *cobra.Command {
	var outputFormat string
	var entry string
	var simplify bool
	var includePositions bool
	var maxDepth int

	cmd := &cobra.Command{
		Use:   "parse <file|->",
		Short: "Parse a Quill source and dump the syntax tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, ok := entryPoints[entry]
			if !ok {
				return fmt.Errorf("unknown entry point: %s (expected unit, expr, stmt or type)", entry)
			}
			data, name, err := readInput(args[0])
			if err != nil {
				return err
			}
			enc, err := format.NewEncoder(outputFormat, cmd.OutOrStdout(), includePositions)
			if err != nil {
				return fmt.Errorf("%w (expected %s)", err, strings.Join(format.Names, ", "))
			}

			p := start(bytes.NewReader(data), parser.WithFile(name), parser.WithMaxDepth(maxDepth))
			node, err := p.Finish()
			if err != nil {
				if outputFormat == "json" {
					if jerr := format.NewASTJSONEncoder(cmd.OutOrStdout()).EncodeError(err); jerr != nil {
						return fmt.Errorf("encode json: %w", jerr)
					}
				} else {
					reportError(cmd.ErrOrStderr(), err)
				}
				return errParseFailed
			}
			if simplify {
				node = ast.Simplify(node)
			}

			if err := enc.Encode(node); err != nil {
				return fmt.Errorf("encode %s: %w", outputFormat, err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "tree", "output format (tree, sexpr, json)")
	cmd.Flags().StringVarP(&entry, "entry", "e", "unit", "grammar entry point (unit, expr, stmt, type)")
	cmd.Flags().BoolVarP(&simplify, "simplify", "s", false, "collapse single-child wrapper nodes")
	cmd.Flags().BoolVar(&includePositions, "positions", false, "include line:column positions in tree output")
	cmd.Flags().IntVar(&maxDepth, "max-depth", parser.DefaultMaxDepth, "maximum nesting depth (0 for no limit)")

	return cmd
}
