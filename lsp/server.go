// Package lsp serves parse diagnostics for Quill sources over the Language
// Server Protocol.
package lsp

import (
	"net/url"
	"path/filepath"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"github.com/dhamidi/quill/lang/diag"
	"github.com/dhamidi/quill/lang/parser"
	"github.com/dhamidi/quill/workspace"
)

const lsName = "quill"

var log = commonlog.GetLogger("quill.lsp")

type Server struct {
	ws      *workspace.Workspace
	opts    []parser.Option
	handler protocol.Handler
	server  *server.Server
	version string
}

// NewServer creates a language server. opts are passed to every parse.
func NewServer(version string, opts ...parser.Option) *Server {
	ls := &Server{
		version: version,
		opts:    opts,
	}

	ls.handler = protocol.Handler{
		Initialize:            ls.initialize,
		Initialized:           ls.initialized,
		Shutdown:              ls.shutdown,
		SetTrace:              ls.setTrace,
		TextDocumentDidOpen:   ls.textDocumentDidOpen,
		TextDocumentDidChange: ls.textDocumentDidChange,
		TextDocumentDidClose:  ls.textDocumentDidClose,
		TextDocumentDidSave:   ls.textDocumentDidSave,
	}

	ls.server = server.NewServer(&ls.handler, lsName, false)
	return ls
}

func (ls *Server) RunStdio() error {
	return ls.server.RunStdio()
}

func (ls *Server) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	rootDir := "."
	if params.RootPath != nil && *params.RootPath != "" {
		rootDir = *params.RootPath
	} else if params.RootURI != nil && *params.RootURI != "" {
		if path, err := uriToPath(*params.RootURI); err == nil {
			rootDir = path
		}
	}
	ls.ws = workspace.New(rootDir, ls.opts...)
	log.Infof("workspace root %s", rootDir)

	capabilities := ls.handler.CreateServerCapabilities()
	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKindPtr(protocol.TextDocumentSyncKindFull),
		Save: &protocol.SaveOptions{
			IncludeText: boolPtr(true),
		},
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &ls.version,
		},
	}, nil
}

func (ls *Server) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	if err := ls.ws.ScanAll(); err != nil {
		log.Warningf("scan %s: %s", ls.ws.RootDir(), err)
	}
	return nil
}

func (ls *Server) shutdown(ctx *glsp.Context) error {
	return nil
}

func (ls *Server) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (ls *Server) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	ls.update(ctx, params.TextDocument.URI, params.TextDocument.Text)
	return nil
}

func (ls *Server) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) == 0 {
		return nil
	}
	change := params.ContentChanges[len(params.ContentChanges)-1]
	if whole, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
		ls.update(ctx, params.TextDocument.URI, whole.Text)
	}
	return nil
}

func (ls *Server) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         params.TextDocument.URI,
		Diagnostics: []protocol.Diagnostic{},
	})
	return nil
}

func (ls *Server) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	if params.Text != nil {
		ls.update(ctx, params.TextDocument.URI, *params.Text)
		return nil
	}
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	if err := ls.ws.ScanFile(path); err != nil {
		log.Warningf("rescan %s: %s", path, err)
		return nil
	}
	ls.publish(ctx, params.TextDocument.URI, ls.ws.GetFile(path))
	return nil
}

func (ls *Server) update(ctx *glsp.Context, uri string, text string) {
	path, err := uriToPath(uri)
	if err != nil {
		log.Warningf("bad uri %s: %s", uri, err)
		return
	}
	ls.publish(ctx, uri, ls.ws.UpdateFile(path, []byte(text)))
}

func (ls *Server) publish(ctx *glsp.Context, uri string, f *workspace.File) {
	if f == nil {
		return
	}
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: Diagnostics(f.Err),
	})
}

// Diagnostics converts a parse failure into LSP diagnostics. A nil error
// yields an empty, non-nil slice so that stale diagnostics are cleared.
func Diagnostics(err error) []protocol.Diagnostic {
	result := []protocol.Diagnostic{}
	if err == nil {
		return result
	}

	severity := protocol.DiagnosticSeverityError
	source := lsName
	d, ok := diag.As(err)
	if !ok {
		return append(result, protocol.Diagnostic{
			Severity: &severity,
			Source:   &source,
			Message:  err.Error(),
		})
	}

	start := position(d.Location.Line, d.Location.Column, d.Location.LineText)
	end := start
	if col := d.Location.Column; col >= 1 && col <= len(d.Location.LineText) {
		end = position(d.Location.Line, col+1, d.Location.LineText)
	}
	return append(result, protocol.Diagnostic{
		Range:    protocol.Range{Start: start, End: end},
		Severity: &severity,
		Source:   &source,
		Message:  d.Kind.String() + ": " + d.Message,
	})
}

// position converts a 1-based line and byte column into a 0-based LSP
// position counted in UTF-16 code units.
func position(line, column int, lineText string) protocol.Position {
	if line < 1 {
		line = 1
	}
	prefix := column - 1
	if prefix < 0 {
		prefix = 0
	}
	if prefix > len(lineText) {
		return protocol.Position{Line: protocol.UInteger(line - 1), Character: protocol.UInteger(prefix)}
	}
	units := 0
	for s := lineText[:prefix]; s != ""; {
		r, size := utf8.DecodeRuneInString(s)
		if n := utf16.RuneLen(r); n > 0 {
			units += n
		} else {
			units++
		}
		s = s[size:]
	}
	return protocol.Position{Line: protocol.UInteger(line - 1), Character: protocol.UInteger(units)}
}

func uriToPath(uri string) (string, error) {
	if strings.HasPrefix(uri, "file://") {
		parsed, err := url.Parse(uri)
		if err != nil {
			return "", err
		}
		return filepath.Clean(parsed.Path), nil
	}
	return uri, nil
}

func boolPtr(b bool) *bool {
	return &b
}

func syncKindPtr(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
