// Copyright © 2025 The javals authors

package lsp

import (
	"context"

	"github.com/tliron/glsp"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

// textDocumentSignatureHelp handles textDocument/signatureHelp
// requests by compiling the pruned neighborhood of the call.
func (s *Server) textDocumentSignatureHelp(_ *glsp.Context, params *protocol.SignatureHelpParams) (*protocol.SignatureHelp, error) {
	ctx, end := s.annotate.Start(context.Background(), "textDocument/signatureHelp")
	defer end()

	sigs, err := s.engine.SignatureHelp(ctx, params.TextDocument.URI,
		coreLine(params.Position), coreCol(params.Position))
	if err != nil || sigs == nil || len(sigs.List) == 0 {
		return nil, err
	}

	out := &protocol.SignatureHelp{}
	for _, sig := range sigs.List {
		info := protocol.SignatureInformation{Label: sig.Label}
		for _, p := range sig.Params {
			info.Parameters = append(info.Parameters, protocol.ParameterInformation{
				Label: p,
			})
		}
		if sig.Doc != "" {
			doc := sig.Doc
			info.Documentation = doc
		}
		out.Signatures = append(out.Signatures, info)
	}
	active := protocol.UInteger(sigs.Active)
	activeParam := protocol.UInteger(sigs.ActiveParam)
	out.ActiveSignature = &active
	out.ActiveParameter = &activeParam
	return out, nil
}
