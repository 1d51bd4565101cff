package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dhamidi/quill/lang/diag"
)

// readInput reads the named file, or standard input for "-".
func readInput(name string) ([]byte, string, error) {
	if name == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, "", fmt.Errorf("read stdin: %w", err)
		}
		return data, "<stdin>", nil
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, "", fmt.Errorf("read %s: %w", name, err)
	}
	return data, name, nil
}

// reportError prints err and, for diagnostics, the offending source line.
func reportError(w io.Writer, err error) {
	fmt.Fprintln(w, err)
	if d, ok := diag.As(err); ok {
		if excerpt := d.Excerpt(); excerpt != "" {
			for _, line := range strings.Split(excerpt, "\n") {
				fmt.Fprintln(w, "    "+line)
			}
		}
	}
}
