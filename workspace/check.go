package workspace

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/dhamidi/quill/lang/ast"
	"github.com/dhamidi/quill/lang/parser"
)

// Result is the outcome of checking one file. Err is either a read failure
// or the first parse error.
type Result struct {
	Path string
	AST  *ast.Node
	Err  error
}

// CheckFiles parses paths concurrently, at most jobs at a time (jobs <= 0
// means one per CPU). Results are returned in the order of paths. The error
// is non-nil only when ctx is cancelled.
func CheckFiles(ctx context.Context, paths []string, jobs int, opts ...parser.Option) ([]Result, error) {
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	results := make([]Result, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, path := range paths {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = checkFile(path, opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	log.Debugf("checked %d files with %d jobs", len(paths), jobs)
	return results, nil
}

func checkFile(path string, opts []parser.Option) Result {
	content, err := os.ReadFile(path)
	if err != nil {
		return Result{Path: path, Err: fmt.Errorf("read %s: %w", path, err)}
	}
	node, err := Parse(path, content, opts...)
	return Result{Path: path, AST: node, Err: err}
}
