package workspace

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dhamidi/quill/lang/diag"
	"github.com/dhamidi/quill/lang/parser"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestUpdateFile(t *testing.T) {
	ws := New(t.TempDir())

	tests := []struct {
		content string
		wantErr string
	}{
		{"class A { }", ""},
		{"class A {", "Expected '}'."},
		{"class A { void m() { x + 1; } }", "Not a statement."},
	}
	for _, tt := range tests {
		t.Run(tt.content, func(t *testing.T) {
			f := ws.UpdateFile("a.quill", []byte(tt.content))
			if got := ws.GetFile("a.quill"); got != f {
				t.Fatalf("GetFile = %v, want %v", got, f)
			}
			if tt.wantErr == "" {
				if f.Err != nil || f.AST == nil {
					t.Errorf("UpdateFile = (%v, %v), want AST", f.AST, f.Err)
				}
				return
			}
			var d *diag.Error
			if !errors.As(f.Err, &d) {
				t.Fatalf("Err = %v, want *diag.Error", f.Err)
			}
			if d.Message != tt.wantErr {
				t.Errorf("Err = %q, want %q", d.Message, tt.wantErr)
			}
			if d.Location.File != "a.quill" {
				t.Errorf("File = %q, want %q", d.Location.File, "a.quill")
			}
		})
	}
}

func TestScanAll(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.quill"), "class A { }")
	writeFile(t, filepath.Join(root, "pkg", "b.quill"), "class B {")
	writeFile(t, filepath.Join(root, "notes.txt"), "not source")
	writeFile(t, filepath.Join(root, ".hidden", "c.quill"), "class C { }")

	ws := New(root)
	if err := ws.ScanAll(); err != nil {
		t.Fatal(err)
	}

	files := ws.Files()
	want := []string{filepath.Join(root, "a.quill"), filepath.Join(root, "pkg", "b.quill")}
	if len(files) != len(want) {
		t.Fatalf("got %d files, want %d", len(files), len(want))
	}
	for i, f := range files {
		if f.Path != want[i] {
			t.Errorf("file %d = %s, want %s", i, f.Path, want[i])
		}
	}

	failed := ws.Failed()
	if len(failed) != 1 || failed[0].Path != want[1] {
		t.Errorf("Failed() = %v, want only %s", failed, want[1])
	}

	ws.RemoveFile(want[0])
	if ws.GetFile(want[0]) != nil {
		t.Errorf("file still present after RemoveFile")
	}
}

func TestParseOptions(t *testing.T) {
	ws := New(t.TempDir(), parser.WithMaxDepth(5))
	f := ws.UpdateFile("deep.quill", []byte("class A { void m() { {{{{{{}}}}}} } }"))
	var d *diag.Error
	if !errors.As(f.Err, &d) || d.Message != "Nesting too deep." {
		t.Errorf("Err = %v, want nesting error", f.Err)
	}
}

func TestCheckFiles(t *testing.T) {
	root := t.TempDir()
	var paths []string
	for i, src := range []string{"class A { }", "class B { int x[]; }", "enum C { X }", "class D { }"} {
		path := filepath.Join(root, string(rune('a'+i))+".quill")
		writeFile(t, path, src)
		paths = append(paths, path)
	}
	paths = append(paths, filepath.Join(root, "missing.quill"))

	for _, jobs := range []int{0, 1, 3} {
		results, err := CheckFiles(context.Background(), paths, jobs)
		if err != nil {
			t.Fatalf("jobs=%d: %v", jobs, err)
		}
		if len(results) != len(paths) {
			t.Fatalf("jobs=%d: got %d results, want %d", jobs, len(results), len(paths))
		}
		for i, r := range results {
			if r.Path != paths[i] {
				t.Errorf("jobs=%d: result %d = %s, want %s", jobs, i, r.Path, paths[i])
			}
			wantErr := i == 1 || i == 4
			if (r.Err != nil) != wantErr {
				t.Errorf("jobs=%d: %s error = %v, want error %v", jobs, r.Path, r.Err, wantErr)
			}
			if r.Err == nil && r.AST == nil {
				t.Errorf("jobs=%d: %s has neither AST nor error", jobs, r.Path)
			}
		}
		if !errors.Is(results[4].Err, os.ErrNotExist) {
			t.Errorf("missing file error = %v, want os.ErrNotExist", results[4].Err)
		}
	}
}

func TestCheckFilesCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := CheckFiles(ctx, []string{"a.quill"}, 1); !errors.Is(err, context.Canceled) {
		t.Errorf("CheckFiles = %v, want context.Canceled", err)
	}
}

func TestWatcher(t *testing.T) {
	root := t.TempDir()
	ws := New(root)

	events := make(chan Event, 16)
	w, err := NewWatcher(ws, func(ev Event) { events <- ev })
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	path := filepath.Join(root, "w.quill")
	writeFile(t, path, "class W { }")
	ev := waitFor(t, events, path, false)
	if ev.File.Err != nil {
		t.Errorf("parse error after create: %v", ev.File.Err)
	}

	writeFile(t, path, "class W {")
	for {
		ev = waitFor(t, events, path, false)
		if ev.File.Err != nil {
			break
		}
	}

	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	waitFor(t, events, path, true)
	if ws.GetFile(path) != nil {
		t.Errorf("file still in workspace after removal")
	}
}

func waitFor(t *testing.T, events <-chan Event, path string, removed bool) Event {
	t.Helper()
	timeout := time.After(5 * time.Second)
	for {
		select {
		case ev := <-events:
			if ev.Path == path && ev.Removed() == removed {
				return ev
			}
		case <-timeout:
			t.Fatalf("no event for %s (removed=%v)", path, removed)
		}
	}
}
