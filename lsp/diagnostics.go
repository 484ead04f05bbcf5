// Copyright © 2025 The javals authors

package lsp

import (
	"context"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/javakit/javals/compiler"
	"github.com/javakit/javals/workspace"
)

// publishDiagnostics batch-compiles the file and pushes its
// diagnostics to the client. Resolution failures publish an empty
// list, clearing stale squiggles.
func (s *Server) publishDiagnostics(uri string) {
	ctx, end := s.annotate.Start(context.Background(), "textDocument/publishDiagnostics")
	defer end()

	diags, err := s.engine.Diagnostics(ctx, []string{uri})
	if err != nil {
		return
	}
	out := make([]protocol.Diagnostic, 0, len(diags))
	for _, d := range diags {
		if workspace.PathOf(d.URI) != workspace.PathOf(uri) {
			continue
		}
		out = append(out, protocolDiagnostic(d))
	}
	s.sendNotification(protocol.ServerTextDocumentPublishDiagnostics,
		protocol.PublishDiagnosticsParams{URI: uri, Diagnostics: out})
}

func protocolDiagnostic(d compiler.Diagnostic) protocol.Diagnostic {
	severity := protocol.DiagnosticSeverityError
	switch d.Severity {
	case compiler.SeverityWarning:
		severity = protocol.DiagnosticSeverityWarning
	case compiler.SeverityNote:
		severity = protocol.DiagnosticSeverityInformation
	}
	pos := protocolPosition(d.Line, d.Col)
	var code *protocol.IntegerOrString
	if d.Code != "" {
		code = &protocol.IntegerOrString{Value: d.Code}
	}
	return protocol.Diagnostic{
		Range:    protocol.Range{Start: pos, End: pos},
		Severity: &severity,
		Code:     code,
		Message:  d.Message,
	}
}
