package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func run(t *testing.T, cmd *cobra.Command, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func writeSource(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParseCmd(t *testing.T) {
	dir := t.TempDir()
	expr := writeSource(t, dir, "e.quill", "a + b * c")

	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			"sexpr",
			[]string{"-e", "expr", "-f", "sexpr", expr},
			"(BinaryExpr '+' (ExpressionName a) (BinaryExpr '*' (ExpressionName b) (ExpressionName c)))\n",
		},
		{
			"tree",
			[]string{"-e", "expr", "-s", expr},
			"BinaryExpr '+'\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := run(t, newParseCmd(), tt.args...)
			if err != nil {
				t.Fatal(err)
			}
			if !strings.HasPrefix(out, tt.want) {
				t.Errorf("got %q, want prefix %q", out, tt.want)
			}
		})
	}
}

func TestParseCmdErrors(t *testing.T) {
	dir := t.TempDir()
	bad := writeSource(t, dir, "bad.quill", "class A {\n  int x = ;\n}\n")

	_, errOut, err := run(t, newParseCmd(), bad)
	if err == nil {
		t.Fatal("expected failure")
	}
	if !strings.Contains(errOut, bad+":2:11: Expected expression.") {
		t.Errorf("stderr = %q, want location and message", errOut)
	}
	if !strings.Contains(errOut, "int x = ;") {
		t.Errorf("stderr = %q, want source excerpt", errOut)
	}

	out, _, err := run(t, newParseCmd(), "-f", "json", bad)
	if err == nil {
		t.Fatal("expected failure")
	}
	if !strings.Contains(out, `"message": "Expected expression."`) {
		t.Errorf("json = %q, want error object", out)
	}

	if _, _, err := run(t, newParseCmd(), "-e", "module", bad); err == nil {
		t.Error("unknown entry point accepted")
	}
	if _, _, err := run(t, newParseCmd(), "-f", "yaml", bad); err == nil {
		t.Error("unknown format accepted")
	}
}

func TestTokensCmd(t *testing.T) {
	path := writeSource(t, t.TempDir(), "t.quill", "x;")
	out, _, err := run(t, newTokensCmd(), path)
	if err != nil {
		t.Fatal(err)
	}
	want := "1:1\tidentifier\tx\n1:2\tpunct\t;\n1:3\teof\t\n"
	if out != want {
		t.Errorf("got %q, want %q", out, want)
	}
}

func TestCheckCmd(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "a.quill", "class A { }")
	writeSource(t, dir, "b.quill", "class B { void m() { return } }")

	out, errOut, err := run(t, newCheckCmd(), "-j", "2", dir)
	if err == nil || !strings.Contains(err.Error(), "1 of 2 files failed") {
		t.Errorf("err = %v, want one failure", err)
	}
	if !strings.Contains(out, "ok    "+filepath.Join(dir, "a.quill")) {
		t.Errorf("stdout = %q, want a.quill ok", out)
	}
	if !strings.Contains(errOut, filepath.Join(dir, "b.quill")) {
		t.Errorf("stderr = %q, want b.quill error", errOut)
	}
}
