// Package workspace keeps the parsed state of a tree of Quill source files.
package workspace

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/tliron/commonlog"

	"github.com/dhamidi/quill/lang/ast"
	"github.com/dhamidi/quill/lang/parser"
)

// Ext is the file extension of Quill sources.
const Ext = ".quill"

var log = commonlog.GetLogger("quill.workspace")

type Workspace struct {
	mu      sync.RWMutex
	rootDir string
	files   map[string]*File
	opts    []parser.Option
}

// File is the outcome of parsing one source file. Exactly one of AST and Err
// is set.
type File struct {
	Path    string
	Content []byte
	AST     *ast.Node
	Err     error
}

// New creates an empty workspace rooted at rootDir. opts are passed to every
// parse.
func New(rootDir string, opts ...parser.Option) *Workspace {
	return &Workspace{
		rootDir: rootDir,
		files:   make(map[string]*File),
		opts:    opts,
	}
}

func (w *Workspace) RootDir() string {
	return w.rootDir
}

// ScanAll parses every source file below the root directory.
func (w *Workspace) ScanAll() error {
	paths, err := FindFiles(w.rootDir)
	if err != nil {
		return err
	}
	for _, path := range paths {
		if err := w.ScanFile(path); err != nil {
			log.Warningf("skipping %s: %s", path, err)
		}
	}
	return nil
}

func (w *Workspace) ScanFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	w.UpdateFile(path, content)
	return nil
}

// UpdateFile parses content as the new text of path and records the result.
func (w *Workspace) UpdateFile(path string, content []byte) *File {
	f := &File{Path: path, Content: content}
	f.AST, f.Err = Parse(path, content, w.opts...)
	if f.Err != nil {
		log.Debugf("%s: %s", path, f.Err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.files[path] = f
	return f
}

func (w *Workspace) RemoveFile(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.files, path)
}

func (w *Workspace) GetFile(path string) *File {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.files[path]
}

// Files returns every known file ordered by path.
func (w *Workspace) Files() []*File {
	w.mu.RLock()
	defer w.mu.RUnlock()
	result := make([]*File, 0, len(w.files))
	for _, f := range w.files {
		result = append(result, f)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Path < result[j].Path
	})
	return result
}

// Failed returns the files that did not parse, ordered by path.
func (w *Workspace) Failed() []*File {
	var result []*File
	for _, f := range w.Files() {
		if f.Err != nil {
			result = append(result, f)
		}
	}
	return result
}

// Parse parses content as a compilation unit whose locations name path.
func Parse(path string, content []byte, opts ...parser.Option) (*ast.Node, error) {
	all := append([]parser.Option{parser.WithFile(path)}, opts...)
	return parser.ParseCompilationUnit(bytes.NewReader(content), all...).Finish()
}

// FindFiles lists the source files below root in lexical order. Hidden
// directories are skipped. root may also name a single file.
func FindFiles(root string) ([]string, error) {
	var paths []string
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if path != root && isHidden(info.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if IsSource(path) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return paths, nil
}

func IsSource(path string) bool {
	return filepath.Ext(path) == Ext
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".") && name != "." && name != ".."
}
