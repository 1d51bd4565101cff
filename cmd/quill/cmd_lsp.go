package main

import (
	"github.com/spf13/cobra"

	"github.com/dhamidi/quill/lang/parser"
	"github.com/dhamidi/quill/lsp"
)

func newLSPCmd() *cobra.Command {
	var maxDepth int

	cmd := &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server on stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			server := lsp.NewServer(version, parser.WithMaxDepth(maxDepth))
			return server.RunStdio()
		},
	}

	cmd.Flags().IntVar(&maxDepth, "max-depth", parser.DefaultMaxDepth, "maximum nesting depth (0 for no limit)")
	return cmd
}
