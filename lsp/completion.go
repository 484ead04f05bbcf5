// Copyright © 2025 The javals authors

package lsp

import (
	"context"

	"github.com/tliron/glsp"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/javakit/javals/compiler"
	"github.com/javakit/javals/complete"
	"github.com/javakit/javals/parser"
)

// textDocumentCompletion handles the textDocument/completion request.
func (s *Server) textDocumentCompletion(_ *glsp.Context, params *protocol.CompletionParams) (any, error) {
	ctx, end := s.annotate.Start(context.Background(), "textDocument/completion")
	defer end()

	uri := params.TextDocument.URI
	cands, err := s.engine.At(ctx, uri,
		coreLine(params.Position), coreCol(params.Position))
	if err != nil {
		return nil, err
	}

	items := make([]protocol.CompletionItem, 0, len(cands))
	for _, c := range cands {
		items = append(items, completionItem(c))
	}
	return items, nil
}

func completionItem(c complete.Candidate) protocol.CompletionItem {
	switch c.Kind {
	case complete.CandidateElement:
		kind := elementCompletionKind(c.Element)
		item := protocol.CompletionItem{Label: c.Element.Name, Kind: &kind}
		if c.Element.Type != nil {
			detail := c.Element.Type.String()
			item.Detail = &detail
		}
		return item
	case complete.CandidateKeyword:
		kind := protocol.CompletionItemKindKeyword
		return protocol.CompletionItem{Label: c.Keyword, Kind: &kind}
	case complete.CandidateSnippet:
		kind := protocol.CompletionItemKindSnippet
		format := protocol.InsertTextFormatSnippet
		body := c.Body
		return protocol.CompletionItem{
			Label:            c.Label,
			Kind:             &kind,
			InsertText:       &body,
			InsertTextFormat: &format,
		}
	case complete.CandidateClassName:
		kind := protocol.CompletionItemKindClass
		detail := c.ClassName
		item := protocol.CompletionItem{
			Label:  parser.LastName(c.ClassName),
			Kind:   &kind,
			Detail: &detail,
		}
		return item
	case complete.CandidatePackagePart:
		kind := protocol.CompletionItemKindModule
		detail := c.PackagePrefix
		return protocol.CompletionItem{
			Label:  c.PackageLast,
			Kind:   &kind,
			Detail: &detail,
		}
	}
	return protocol.CompletionItem{Label: c.Name()}
}

func elementCompletionKind(e *compiler.Element) protocol.CompletionItemKind {
	switch e.Kind {
	case compiler.KindMethod, compiler.KindConstructor:
		return protocol.CompletionItemKindMethod
	case compiler.KindField:
		return protocol.CompletionItemKindField
	case compiler.KindEnumConstant:
		return protocol.CompletionItemKindEnumMember
	case compiler.KindClass, compiler.KindAnnotationType:
		return protocol.CompletionItemKindClass
	case compiler.KindInterface:
		return protocol.CompletionItemKindInterface
	case compiler.KindEnum:
		return protocol.CompletionItemKindEnum
	case compiler.KindPackage:
		return protocol.CompletionItemKindModule
	case compiler.KindParameter, compiler.KindLocalVariable:
		return protocol.CompletionItemKindVariable
	default:
		return protocol.CompletionItemKindText
	}
}
