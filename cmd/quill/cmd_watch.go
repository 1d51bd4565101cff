package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/dhamidi/quill/lang/parser"
	"github.com/dhamidi/quill/workspace"
)

func newWatchCmd() *cobra.Command {
	var maxDepth int

	cmd := &cobra.Command{
		Use:   "watch [dir]",
		Short: "Re-parse .quill files as they change and report errors",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) == 1 {
				root = args[0]
			}
			out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()

			ws := workspace.New(root, parser.WithMaxDepth(maxDepth))
			if err := ws.ScanAll(); err != nil {
				return fmt.Errorf("scan %s: %w", root, err)
			}
			for _, f := range ws.Failed() {
				reportError(errOut, f.Err)
			}
			fmt.Fprintf(out, "watching %s: %d files, %d failed\n", root, len(ws.Files()), len(ws.Failed()))

			w, err := workspace.NewWatcher(ws, func(ev workspace.Event) {
				switch {
				case ev.Removed():
					fmt.Fprintf(out, "removed %s\n", ev.Path)
				case ev.File.Err != nil:
					reportError(errOut, ev.File.Err)
				default:
					fmt.Fprintf(out, "ok    %s\n", ev.Path)
				}
			})
			if err != nil {
				return fmt.Errorf("watch %s: %w", root, err)
			}
			defer w.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&maxDepth, "max-depth", parser.DefaultMaxDepth, "maximum nesting depth (0 for no limit)")
	return cmd
}
