// Copyright © 2025 The javals authors

package lsp

import (
	"strings"

	"github.com/tliron/glsp"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/javakit/javals/parser"
	"github.com/javakit/javals/workspace"
)

// textDocumentDefinition resolves go-to-declaration for type names
// through the lexical fast path: the word under the cursor is looked
// up as a class declared in the file's imports, its own package, or
// the default package.
func (s *Server) textDocumentDefinition(_ *glsp.Context, params *protocol.DefinitionParams) (any, error) {
	uri := params.TextDocument.URI
	contents, err := s.ws.ContentsURI(uri)
	if err != nil {
		return nil, err
	}
	tree := parser.Parse(workspace.PathOf(uri), contents)
	word := wordAt(tree, coreLine(params.Position), coreCol(params.Position))
	if word == "" {
		return nil, nil
	}

	for _, qualified := range s.candidateNames(tree, word) {
		if file, ok := s.ws.FindDeclaringFile(qualified); ok {
			return protocol.Location{
				URI:   workspace.URIOf(file),
				Range: declarationRange(s, file, word),
			}, nil
		}
	}
	return nil, nil
}

// candidateNames lists the qualified names the word could refer to, in
// resolution order: explicit imports, the file's own package, on-demand
// imports, and the default package.
func (s *Server) candidateNames(tree *parser.Tree, word string) []string {
	var out []string
	for _, im := range tree.Header.Imports {
		if im.Static {
			continue
		}
		if parser.LastName(im.Name) == word {
			out = append(out, im.Name)
		}
	}
	if pkg := tree.Header.Package; pkg != "" {
		out = append(out, pkg+"."+word)
	}
	for _, im := range tree.Header.Imports {
		if im.OnDemand() {
			out = append(out, strings.TrimSuffix(im.Name, "*")+word)
		}
	}
	out = append(out, word)
	return out
}

// wordAt extracts the identifier under or just left of the cursor.
func wordAt(tree *parser.Tree, line, col int) string {
	offset := tree.OffsetAt(line, col)
	i := tree.TokenAt(offset)
	if i < 0 {
		return ""
	}
	tok := tree.Toks[i]
	if tok.End() < offset {
		return ""
	}
	return tok.Text
}

// declarationRange finds the position of the declaration inside the
// target file, falling back to the file start.
func declarationRange(s *Server, file, className string) protocol.Range {
	contents, err := s.ws.Contents(file)
	if err != nil {
		return protocol.Range{}
	}
	tree := parser.Parse(file, contents)
	var find func(n *parser.Node) (int, bool)
	find = func(n *parser.Node) (int, bool) {
		for _, c := range n.Children {
			if c.Kind == parser.KindClass && c.Name == className && c.Start < len(tree.Toks) {
				return tree.Toks[c.Start].Offset, true
			}
			if off, ok := find(c); ok {
				return off, ok
			}
		}
		return 0, false
	}
	off, ok := find(tree.Root)
	if !ok {
		return protocol.Range{}
	}
	l, c := tree.PositionAt(off)
	pos := protocolPosition(l, c)
	return protocol.Range{Start: pos, End: pos}
}
