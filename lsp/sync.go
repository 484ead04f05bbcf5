// Copyright © 2025 The javals authors

package lsp

import (
	"time"

	"github.com/tliron/glsp"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/javakit/javals/workspace"
)

const debounceDelay = 300 * time.Millisecond

// textDocumentDidOpen handles the textDocument/didOpen notification.
func (s *Server) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	s.captureNotify(ctx)
	s.ws.Open(
		params.TextDocument.URI,
		params.TextDocument.Text,
		params.TextDocument.Version,
	)
	s.publishDiagnostics(params.TextDocument.URI)
	return nil
}

// textDocumentDidChange applies versioned edits to the in-memory
// document. Stale versions are dropped inside the workspace.
func (s *Server) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	s.captureNotify(ctx)
	uri := params.TextDocument.URI

	var edits []workspace.Edit
	for _, change := range params.ContentChanges {
		switch c := change.(type) {
		case protocol.TextDocumentContentChangeEventWhole:
			edits = append(edits, workspace.Edit{Text: c.Text})
		case protocol.TextDocumentContentChangeEvent:
			e := workspace.Edit{Text: c.Text}
			if c.Range != nil {
				text := textOf(s, uri)
				e.HasRange = true
				e.StartLine = int(c.Range.Start.Line)
				e.StartChar = int(c.Range.Start.Character)
				e.RangeLength = offsetIn(text, c.Range.End) - offsetIn(text, c.Range.Start)
			}
			edits = append(edits, e)
		}
	}
	s.ws.Change(uri, params.TextDocument.Version, edits)

	// Debounce diagnostics during rapid edits.
	s.debounceMu.Lock()
	if t, ok := s.debounce[uri]; ok {
		t.Stop()
	}
	s.debounce[uri] = time.AfterFunc(debounceDelay, func() {
		defer func() { _ = recover() }() // never crash the server on analysis panic
		s.publishDiagnostics(uri)
	})
	s.debounceMu.Unlock()
	return nil
}

// textDocumentDidSave publishes diagnostics immediately.
func (s *Server) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	s.captureNotify(ctx)
	s.cancelDebounce(params.TextDocument.URI)
	s.publishDiagnostics(params.TextDocument.URI)
	return nil
}

// textDocumentDidClose drops the in-memory document.
func (s *Server) textDocumentDidClose(_ *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	s.cancelDebounce(params.TextDocument.URI)
	s.ws.Close(params.TextDocument.URI)
	return nil
}

func (s *Server) cancelDebounce(uri string) {
	s.debounceMu.Lock()
	if t, ok := s.debounce[uri]; ok {
		t.Stop()
		delete(s.debounce, uri)
	}
	s.debounceMu.Unlock()
}

// workspaceDidChangeWatchedFiles mutates the source index from
// external file events.
func (s *Server) workspaceDidChangeWatchedFiles(_ *glsp.Context, params *protocol.DidChangeWatchedFilesParams) error {
	for _, ev := range params.Changes {
		path := workspace.PathOf(ev.URI)
		switch ev.Type {
		case protocol.FileChangeTypeCreated:
			s.ws.ExternalCreate(path)
		case protocol.FileChangeTypeChanged:
			s.ws.ExternalChange(path)
		case protocol.FileChangeTypeDeleted:
			s.ws.ExternalDelete(path)
		}
	}
	return nil
}

// textOf returns the current document text, for converting protocol
// ranges to byte lengths.
func textOf(s *Server, uri string) string {
	contents, err := s.ws.ContentsURI(uri)
	if err != nil {
		return ""
	}
	return contents
}
