// Copyright © 2025 The javals authors

package parser

import (
	"github.com/javakit/javals/parser/token"
)

// Context classifies a cursor position for completion dispatch. It is
// computed from the structural tree alone, without typechecking.
type Context struct {
	// Partial is the identifier prefix typed so far, possibly empty.
	Partial string

	InsideClass  bool
	InsideMethod bool

	// AddParens asks the editor to append () when inserting a method.
	AddParens bool
	// AddSemi asks the editor to append ; at the end of the statement.
	AddSemi bool

	IsAnnotation bool // cursor follows @
	IsCase       bool // cursor is a case label in a switch
	IsImport     bool // cursor is inside an import declaration
	IsMember     bool // cursor follows `expr.` or `expr::`
	IsReference  bool // cursor follows `expr::`
}

// Context computes the completion context at the 1-based (line, column)
// cursor.
func (t *Tree) Context(line, col int) Context {
	offset := t.OffsetAt(line, col)
	var cc Context

	// Partial identifier: a word containing or ending at the cursor.
	prev := t.TokenAt(offset)
	partialTok := -1
	if prev >= 0 {
		tok := t.Toks[prev]
		if (tok.Type == token.Ident || tok.Type == token.Keyword) && tok.End() >= offset {
			cc.Partial = tok.Text[:offset-tok.Offset]
			partialTok = prev
		}
	}

	// The token left of the partial identifier (or left of the cursor
	// when there is no partial) decides member access and annotations.
	left := prev
	if partialTok >= 0 {
		left = t.prevSignificant(partialTok - 1)
	}
	if left >= 0 {
		switch t.Toks[left].Type {
		case token.Dot:
			cc.IsMember = true
		case token.ColonColon:
			cc.IsMember = true
			cc.IsReference = true
		case token.At:
			cc.IsAnnotation = true
		}
	}

	node := t.NodeAt(offset)
	for n := node; n != nil; n = n.Parent {
		switch n.Kind {
		case KindClass:
			cc.InsideClass = true
		case KindMethod:
			cc.InsideMethod = true
		}
	}

	// Statement-shaped flags, from the first word of the statement the
	// cursor is typing (lexical walk: the statement node's span cannot
	// be trusted mid-edit).
	switch t.statementHead(offset) {
	case "case":
		cc.IsCase = true
	case "import":
		cc.IsImport = true
	}

	// AddParens: no opening paren immediately after the cursor.
	next := t.nextSignificantAt(offset)
	cc.AddParens = next < 0 || t.Toks[next].Type != token.LParen
	// AddSemi: nothing else on the statement after the cursor.
	cc.AddSemi = next < 0 ||
		t.Toks[next].Type == token.RBrace ||
		t.Toks[next].Line > lineOf(t, offset)

	return cc
}

// statementHead walks tokens backward from the cursor to the nearest
// statement boundary and returns the first word of the statement being
// typed, or "".
func (t *Tree) statementHead(offset int) string {
	head := ""
	for i := t.TokenAt(offset); i >= 0; i-- {
		tok := t.Toks[i]
		if tok.IsComment() {
			continue
		}
		switch tok.Type {
		case token.Semi, token.LBrace, token.RBrace, token.Colon:
			return head
		}
		head = tok.Text
	}
	return head
}

// nextSignificantAt returns the index of the first non-comment token
// starting at or after the byte offset.
func (t *Tree) nextSignificantAt(offset int) int {
	for i, tok := range t.Toks {
		if tok.IsComment() {
			continue
		}
		if tok.Offset >= offset {
			return i
		}
	}
	return -1
}

func lineOf(t *Tree, offset int) int {
	line, _ := t.PositionAt(offset)
	return line
}

// ImportPath returns the dotted path typed so far in an import
// declaration up to the cursor, excluding the trailing partial segment.
func (t *Tree) ImportPath(line, col int) (path, partial string) {
	offset := t.OffsetAt(line, col)
	i := t.TokenAt(offset)
	var segs []string
	// Walk back over `a.b.c` collecting segments.
	for ; i >= 0; i-- {
		tok := t.Toks[i]
		if tok.IsComment() {
			continue
		}
		switch {
		case tok.Type == token.Ident && tok.End() >= offset:
			partial = tok.Text[:offset-tok.Offset]
		case tok.Type == token.Ident:
			segs = append([]string{tok.Text}, segs...)
		case tok.Type == token.Dot:
			// keep going
		case tok.Type == token.Keyword && tok.Text == "import":
			path = joinDotted(segs)
			return path, partial
		case tok.Type == token.Keyword && tok.Text == "static":
			// keep going
		default:
			path = joinDotted(segs)
			return path, partial
		}
	}
	return joinDotted(segs), partial
}

func joinDotted(segs []string) string {
	out := ""
	for i, s := range segs {
		if i > 0 {
			out += "."
		}
		out += s
	}
	return out
}
