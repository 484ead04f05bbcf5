// Copyright © 2025 The javals authors

package lsp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tliron/glsp"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/javakit/javals/compiler"
	"github.com/javakit/javals/complete"
	"github.com/javakit/javals/lstest"
	"github.com/javakit/javals/workspace"
)

func testServer(t *testing.T, files map[string]string, f compiler.Facade) *Server {
	t.Helper()
	ws := workspace.New(workspace.WithFs(lstest.MemFs(files)))
	require.NoError(t, ws.SetWorkspaceRoots([]string{"/work"}))
	if f == nil {
		f = compiler.Unsupported()
	}
	return New(WithWorkspace(ws), WithFacade(f))
}

func mockContext() *glsp.Context {
	return &glsp.Context{}
}

func TestDidOpenChangeClose(t *testing.T) {
	s := testServer(t, map[string]string{
		"/work/src/A.java": "class A {}\n",
	}, nil)
	uri := "file:///work/src/A.java"

	err := s.textDocumentDidOpen(mockContext(), &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{
			URI: uri, Version: 1, Text: "class A { int x; }\n",
		},
	})
	require.NoError(t, err)
	got, err := s.ws.ContentsURI(uri)
	require.NoError(t, err)
	assert.Equal(t, "class A { int x; }\n", got)

	// Incremental change: replace "int" with "long".
	err = s.textDocumentDidChange(mockContext(), &protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: uri},
			Version:                2,
		},
		ContentChanges: []any{
			protocol.TextDocumentContentChangeEvent{
				Range: &protocol.Range{
					Start: protocol.Position{Line: 0, Character: 10},
					End:   protocol.Position{Line: 0, Character: 13},
				},
				Text: "long",
			},
		},
	})
	require.NoError(t, err)
	got, _ = s.ws.ContentsURI(uri)
	assert.Equal(t, "class A { long x; }\n", got)

	err = s.textDocumentDidClose(mockContext(), &protocol.DidCloseTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	})
	require.NoError(t, err)
	got, _ = s.ws.ContentsURI(uri)
	assert.Equal(t, "class A {}\n", got)
}

func TestCompletionRequest(t *testing.T) {
	f := lstest.NewFacade()
	str := f.AddClass("java.lang.String")
	scope := &compiler.Scope{Locals: []*compiler.Element{
		lstest.Local("completeLocal", str.Type),
	}}
	f.Focus = lstest.NewFocus(scope)

	s := testServer(t, map[string]string{
		"/work/src/A.java": "class A {\n    void m() {\n        comp\n    }\n}\n",
	}, f)

	result, err := s.textDocumentCompletion(mockContext(), &protocol.CompletionParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: "file:///work/src/A.java"},
			// 0-based protocol position for 1-based core (3, 13).
			Position: protocol.Position{Line: 2, Character: 12},
		},
	})
	require.NoError(t, err)
	items, ok := result.([]protocol.CompletionItem)
	require.True(t, ok)

	var labels []string
	for _, item := range items {
		labels = append(labels, item.Label)
	}
	assert.Contains(t, labels, "completeLocal")
}

func TestSignatureHelpRequest(t *testing.T) {
	f := lstest.NewFacade()
	focus := lstest.NewFocus(&compiler.Scope{})
	focus.Sigs = &compiler.Signatures{
		List: []compiler.Signature{
			{Label: "print(int i)", Params: []string{"int i"}},
			{Label: "print(String s)", Params: []string{"String s"}},
		},
	}
	f.Focus = focus

	s := testServer(t, map[string]string{
		"/work/src/Overloads.java": "class Overloads {\n    void m() {\n        print(\n    }\n}\n",
	}, f)

	help, err := s.textDocumentSignatureHelp(mockContext(), &protocol.SignatureHelpParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: "file:///work/src/Overloads.java"},
			Position:     protocol.Position{Line: 2, Character: 14},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, help)
	require.Len(t, help.Signatures, 2)
	assert.Contains(t, help.Signatures[0].Label, "int")
	assert.Contains(t, help.Signatures[1].Label, "String")
}

func TestDefinitionRequest(t *testing.T) {
	s := testServer(t, map[string]string{
		"/work/src/p/Main.java": "package p;\nclass Main {\n    Helper h;\n}\n",
		"/work/src/p/Util.java": "package p;\nclass Helper {}\n",
	}, nil)

	result, err := s.textDocumentDefinition(mockContext(), &protocol.DefinitionParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: "file:///work/src/p/Main.java"},
			// On "Helper" at line 3 (1-based), column 7.
			Position: protocol.Position{Line: 2, Character: 6},
		},
	})
	require.NoError(t, err)
	loc, ok := result.(protocol.Location)
	require.True(t, ok, "got %T", result)
	assert.Equal(t, "file:///work/src/p/Util.java", loc.URI)
}

func TestCompletionItemMapping(t *testing.T) {
	t.Run("keyword", func(t *testing.T) {
		item := completionItem(complete.Candidate{Kind: complete.CandidateKeyword, Keyword: "class"})
		assert.Equal(t, "class", item.Label)
		assert.Equal(t, protocol.CompletionItemKindKeyword, *item.Kind)
	})

	t.Run("snippet", func(t *testing.T) {
		item := completionItem(complete.Candidate{
			Kind: complete.CandidateSnippet, Label: "class A", Body: "class A {\n    $0\n}",
		})
		assert.Equal(t, protocol.CompletionItemKindSnippet, *item.Kind)
		assert.Equal(t, protocol.InsertTextFormatSnippet, *item.InsertTextFormat)
	})

	t.Run("class name", func(t *testing.T) {
		item := completionItem(complete.Candidate{
			Kind: complete.CandidateClassName, ClassName: "java.util.List",
		})
		assert.Equal(t, "List", item.Label)
		assert.Equal(t, "java.util.List", *item.Detail)
	})
}

func TestOffsetIn(t *testing.T) {
	content := "ab\ncd\n"
	assert.Equal(t, 0, offsetIn(content, protocol.Position{Line: 0, Character: 0}))
	assert.Equal(t, 4, offsetIn(content, protocol.Position{Line: 1, Character: 1}))
	assert.Equal(t, 6, offsetIn(content, protocol.Position{Line: 9, Character: 9}))
}
