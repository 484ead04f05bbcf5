// Copyright © 2025 The javals authors

// Package lsp implements the Language Server Protocol transport over
// the analysis core. It provides completion, signature help,
// diagnostics, and go-to-declaration for Java sources; all analysis
// happens in the workspace, parser, prune, check, and complete
// packages.
package lsp

import (
	"os"
	"sync"
	"time"

	"github.com/tliron/glsp"
	glspserver "github.com/tliron/glsp/server"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/javakit/javals/compiler"
	"github.com/javakit/javals/complete"
	"github.com/javakit/javals/telemetry"
	"github.com/javakit/javals/workspace"
)

const serverName = "javals"

// Server is the Java language server.
type Server struct {
	handler protocol.Handler
	glspSrv *glspserver.Server

	ws       *workspace.Workspace
	facade   compiler.Facade
	engine   *complete.Engine
	annotate telemetry.Annotator

	rootURI  string
	rootPath string

	// Debouncer for didChange diagnostics.
	debounceMu sync.Mutex
	debounce   map[string]*time.Timer

	// Context for sending notifications (captured from latest request).
	notifyMu sync.Mutex
	notify   glsp.NotifyFunc

	// exitFn is called on the LSP exit notification. Defaults to
	// os.Exit; overridable for testing.
	exitFn func(int)
}

// Option configures the LSP server.
type Option func(*Server)

// WithFacade injects the semantic compiler front end.
func WithFacade(f compiler.Facade) Option {
	return func(s *Server) { s.facade = f }
}

// WithWorkspace injects a pre-configured workspace, primarily for
// tests running over an in-memory filesystem.
func WithWorkspace(ws *workspace.Workspace) Option {
	return func(s *Server) { s.ws = ws }
}

// WithClassCatalog injects the JDK and classpath class name catalogs
// produced by the external indexer.
func WithClassCatalog(jdk, classPath []string) Option {
	return func(s *Server) {
		s.engine.JDKClasses = jdk
		s.engine.ClassPathClasses = classPath
	}
}

// WithAnnotator wires a telemetry backend around query handling.
func WithAnnotator(a telemetry.Annotator) Option {
	return func(s *Server) { s.annotate = a }
}

// New creates a new Java language server.
func New(opts ...Option) *Server {
	s := &Server{
		ws:       workspace.New(),
		facade:   compiler.Unsupported(),
		annotate: telemetry.Nop(),
		debounce: make(map[string]*time.Timer),
		exitFn:   os.Exit,
	}
	s.engine = complete.NewEngine(s.ws, s.facade)
	for _, o := range opts {
		o(s)
	}
	// Re-point the engine at injected collaborators.
	s.engine.Workspace = s.ws
	s.engine.Facade = s.facade

	s.handler = protocol.Handler{
		Initialize: s.initialize,
		Shutdown:   s.shutdown,
		Exit:       s.exit,
		SetTrace:   s.setTrace,

		TextDocumentDidOpen:   s.textDocumentDidOpen,
		TextDocumentDidChange: s.textDocumentDidChange,
		TextDocumentDidSave:   s.textDocumentDidSave,
		TextDocumentDidClose:  s.textDocumentDidClose,

		WorkspaceDidChangeWatchedFiles: s.workspaceDidChangeWatchedFiles,

		TextDocumentCompletion:    s.textDocumentCompletion,
		TextDocumentSignatureHelp: s.textDocumentSignatureHelp,
		TextDocumentDefinition:    s.textDocumentDefinition,
	}

	s.glspSrv = glspserver.NewServer(&s.handler, serverName, false)
	return s
}

// Workspace exposes the server's file store to embedders (the console
// command drives queries through it).
func (s *Server) Workspace() *workspace.Workspace {
	return s.ws
}

// Engine exposes the completion engine to embedders.
func (s *Server) Engine() *complete.Engine {
	return s.engine
}

// RunStdio starts the server using stdio transport.
func (s *Server) RunStdio() error {
	return s.glspSrv.RunStdio()
}

// RunTCP starts the server listening on the given address.
func (s *Server) RunTCP(addr string) error {
	return s.glspSrv.RunTCP(addr)
}

// initialize handles the LSP initialize request.
func (s *Server) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	s.captureNotify(ctx)

	if params.RootURI != nil {
		s.rootURI = *params.RootURI
		s.rootPath = workspace.PathOf(s.rootURI)
	} else if params.RootPath != nil {
		s.rootPath = *params.RootPath
		s.rootURI = workspace.URIOf(s.rootPath)
	}
	if s.rootPath != "" {
		if err := s.ws.SetWorkspaceRoots([]string{s.rootPath}); err != nil {
			return nil, err
		}
	}

	capabilities := s.handler.CreateServerCapabilities()

	// Range patches arrive as incremental sync.
	syncKind := protocol.TextDocumentSyncKindIncremental
	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    &syncKind,
		Save:      &protocol.SaveOptions{IncludeText: boolPtr(false)},
	}

	capabilities.CompletionProvider = &protocol.CompletionOptions{
		TriggerCharacters: []string{".", ":", "@"},
	}
	capabilities.SignatureHelpProvider = &protocol.SignatureHelpOptions{
		TriggerCharacters:   []string{"(", ","},
		RetriggerCharacters: []string{","},
	}

	version := "0.1.0"
	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    serverName,
			Version: &version,
		},
	}, nil
}

// shutdown handles the LSP shutdown request.
func (s *Server) shutdown(_ *glsp.Context) error {
	s.debounceMu.Lock()
	for _, t := range s.debounce {
		t.Stop()
	}
	s.debounce = make(map[string]*time.Timer)
	s.debounceMu.Unlock()
	return nil
}

// exit terminates the process. Shutdown is handled gracefully, so the
// exit code is always 0.
func (s *Server) exit(_ *glsp.Context) error {
	s.exitFn(0)
	return nil
}

// setTrace handles the $/setTrace notification (required by some clients).
func (s *Server) setTrace(_ *glsp.Context, _ *protocol.SetTraceParams) error {
	return nil
}

// captureNotify stores the notification function from the context for
// async use (publishing diagnostics after a debounce).
func (s *Server) captureNotify(ctx *glsp.Context) {
	s.notifyMu.Lock()
	s.notify = ctx.Notify
	s.notifyMu.Unlock()
}

// sendNotification sends a notification to the client.
func (s *Server) sendNotification(method string, params any) {
	s.notifyMu.Lock()
	fn := s.notify
	s.notifyMu.Unlock()
	if fn != nil {
		fn(method, params)
	}
}

func boolPtr(b bool) *bool {
	return &b
}
