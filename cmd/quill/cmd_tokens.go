package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dhamidi/quill/format"
	"github.com/dhamidi/quill/lang/scanner"
)

func newTokensCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tokens <file|->",
		Short: "Print the token stream of a Quill source",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, name, err := readInput(args[0])
			if err != nil {
				return err
			}
			toks, err := scanner.Tokens(data, name)
			if err != nil {
				reportError(cmd.ErrOrStderr(), err)
				return errParseFailed
			}
			if err := format.NewLineEncoder(cmd.OutOrStdout()).Encode(toks); err != nil {
				return fmt.Errorf("encode tokens: %w", err)
			}
			return nil
		},
	}
}
