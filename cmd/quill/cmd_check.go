package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dhamidi/quill/lang/parser"
	"github.com/dhamidi/quill/workspace"
)

func newCheckCmd() *cobra.Command {
	var jobs int
	var maxDepth int
	var quiet bool

	cmd := &cobra.Command{
		Use:   "check [path...]",
		Short: "Parse every .quill file below the given paths and report errors",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{"."}
			}
			var paths []string
			for _, root := range args {
				found, err := workspace.FindFiles(root)
				if err != nil {
					return fmt.Errorf("scan %s: %w", root, err)
				}
				paths = append(paths, found...)
			}

			results, err := workspace.CheckFiles(cmd.Context(), paths, jobs, parser.WithMaxDepth(maxDepth))
			if err != nil {
				return fmt.Errorf("check: %w", err)
			}

			failed := 0
			for _, r := range results {
				if r.Err == nil {
					if !quiet {
						fmt.Fprintf(cmd.OutOrStdout(), "ok    %s\n", r.Path)
					}
					continue
				}
				failed++
				reportError(cmd.ErrOrStderr(), r.Err)
			}
			if !quiet {
				fmt.Fprintf(cmd.OutOrStdout(), "%d files, %d failed\n", len(results), failed)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d files failed to parse", failed, len(results))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&jobs, "jobs", "j", 0, "number of files parsed concurrently (0 for one per CPU)")
	cmd.Flags().IntVar(&maxDepth, "max-depth", parser.DefaultMaxDepth, "maximum nesting depth (0 for no limit)")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "only report failures")

	return cmd
}
