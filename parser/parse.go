// Copyright © 2025 The javals authors

package parser

import (
	"strings"

	"github.com/javakit/javals/parser/token"
)

// Parse builds the structural tree for one source file. Parsing is
// brace-level: it nests type declarations, members, blocks, and
// statements without attempting to understand expressions or types.
// Malformed regions degrade to statement nodes; Parse never fails.
func Parse(file, src string) *Tree {
	t := &Tree{
		File:   file,
		Src:    src,
		Toks:   token.NewScanner(file, src).All(),
		Header: ParseHeader(src),
	}
	t.lineOffsets = lineOffsets(src)

	p := &treeParser{t: t}
	root := &Node{Kind: KindUnit, Start: 0, End: len(t.Toks)}
	p.parseUnit(root)
	t.Root = root
	return t
}

func lineOffsets(src string) []int {
	offs := []int{0}
	for i := 0; i < len(src); i++ {
		if src[i] == '\n' {
			offs = append(offs, i+1)
		}
	}
	return offs
}

type treeParser struct {
	t   *Tree
	pos int // current token index
}

func (p *treeParser) tok() token.Token {
	return p.t.Toks[p.pos]
}

func (p *treeParser) done() bool {
	return p.pos >= len(p.t.Toks)
}

// skipTrivia advances past comments.
func (p *treeParser) skipTrivia() {
	for !p.done() && p.tok().IsComment() {
		p.pos++
	}
}

func isTypeDeclKeyword(t token.Token) bool {
	if t.Type != token.Keyword {
		// `record` is a contextual keyword.
		return t.Type == token.Ident && t.Text == "record"
	}
	switch t.Text {
	case "class", "interface", "enum":
		return true
	}
	return false
}

// parseUnit consumes the package declaration, imports, and top-level
// type declarations.
func (p *treeParser) parseUnit(unit *Node) {
	runStart := 0
	for {
		p.skipTrivia()
		if p.done() {
			return
		}
		if runStart < 0 {
			runStart = p.pos
		}
		if isTypeDeclKeyword(p.tok()) {
			// Modifiers and annotations since the last boundary belong
			// to this declaration.
			p.parseTypeDecl(unit, runStart)
			runStart = -1
			continue
		}
		// package/import declarations, modifiers, annotations: scan
		// ahead until a type declaration keyword, a semicolon, or a
		// stray brace.
		switch p.tok().Type {
		case token.Semi:
			p.pos++
			runStart = -1
		case token.LBrace:
			// Stray top-level brace: treat its contents as a block.
			block := p.parseBlock(unit)
			unit.Children = append(unit.Children, block)
			runStart = -1
		default:
			p.pos++
		}
	}
}

// parseTypeDecl parses `class Name ... { body }` with the parser
// positioned on the introducing keyword. declStart is the index of the
// declaration's first token (its first modifier or annotation, or the
// keyword itself); the node starts there, so its span covers the
// modifiers.
func (p *treeParser) parseTypeDecl(parent *Node, declStart int) {
	node := &Node{Kind: KindClass, Start: declStart, Parent: parent}
	p.pos++ // type keyword
	p.skipTrivia()
	if !p.done() && p.tok().Type == token.Ident {
		node.Name = p.tok().Text
		p.pos++
	}
	// Skip type parameters, extends/implements clauses.
	for !p.done() && p.tok().Type != token.LBrace && p.tok().Type != token.Semi {
		p.pos++
	}
	if !p.done() && p.tok().Type == token.LBrace {
		p.parseClassBody(node)
	}
	node.End = p.pos
	parent.Children = append(parent.Children, node)
}

// parseClassBody consumes `{ members }` with the parser positioned on
// the opening brace.
func (p *treeParser) parseClassBody(class *Node) {
	p.pos++ // {
	for {
		p.skipTrivia()
		if p.done() {
			return
		}
		if p.tok().Type == token.RBrace {
			p.pos++
			return
		}
		p.parseMember(class)
	}
}

// parseMember parses a single class member: a field, a method or
// constructor, a nested type, or an initializer block.
func (p *treeParser) parseMember(class *Node) {
	start := p.pos

	// Initializer block (optionally preceded by `static`).
	if p.tok().Type == token.LBrace {
		node := &Node{Kind: KindMethod, Start: start, Parent: class}
		body := p.parseBlock(node)
		node.Children = append(node.Children, body)
		node.End = p.pos
		class.Children = append(class.Children, node)
		return
	}

	sawParen := false
	lastIdent := ""
	identBeforeParen := ""
	depth := 0
	for !p.done() {
		t := p.tok()
		if t.IsComment() {
			p.pos++
			continue
		}
		switch t.Type {
		case token.Semi:
			if depth == 0 {
				p.pos++
				kind := KindField
				name := lastIdent
				if sawParen {
					// Abstract or interface method without a body.
					kind = KindMethod
					name = identBeforeParen
				}
				class.Children = append(class.Children, &Node{
					Kind: kind, Name: name, Start: start, End: p.pos, Parent: class,
				})
				return
			}
			p.pos++
		case token.LParen:
			if depth == 0 && !sawParen {
				sawParen = true
				identBeforeParen = lastIdent
			}
			depth++
			p.pos++
		case token.RParen:
			depth--
			p.pos++
		case token.LBrace:
			if depth > 0 {
				// Brace inside an argument list (anonymous class or
				// lambda in a field initializer); skip it balanced.
				p.skipBraces()
				continue
			}
			if kw := p.typeDeclKeywordIn(start); kw >= 0 {
				p.pos = kw
				p.parseTypeDecl(class, start)
				return
			}
			if sawParen {
				node := &Node{Kind: KindMethod, Name: identBeforeParen, Start: start, Parent: class}
				body := p.parseBlock(node)
				node.Children = append(node.Children, body)
				node.End = p.pos
				class.Children = append(class.Children, node)
				return
			}
			// Array initializer in a field: consume and continue to
			// the terminating semicolon.
			p.skipBraces()
		case token.RBrace:
			// Malformed member: do not consume the class's closing
			// brace.
			class.Children = append(class.Children, &Node{
				Kind: KindField, Name: lastIdent, Start: start, End: p.pos, Parent: class,
			})
			return
		case token.Ident:
			if depth == 0 {
				lastIdent = t.Text
			}
			p.pos++
		default:
			if isTypeDeclKeyword(t) && depth == 0 && !sawParen {
				// Modifiers preceded a nested type declaration.
				p.parseTypeDecl(class, start)
				return
			}
			p.pos++
		}
	}
	class.Children = append(class.Children, &Node{
		Kind: KindField, Name: lastIdent, Start: start, End: p.pos, Parent: class,
	})
}

// typeDeclKeywordIn returns the index of a type declaration keyword
// between start and the current position, or -1.
func (p *treeParser) typeDeclKeywordIn(start int) int {
	for i := start; i < p.pos; i++ {
		if isTypeDeclKeyword(p.t.Toks[i]) {
			return i
		}
	}
	return -1
}

// skipBraces consumes a balanced brace group with the parser positioned
// on the opening brace.
func (p *treeParser) skipBraces() {
	depth := 0
	for !p.done() {
		switch p.tok().Type {
		case token.LBrace:
			depth++
		case token.RBrace:
			depth--
			if depth == 0 {
				p.pos++
				return
			}
		}
		p.pos++
	}
}

// parseBlock consumes `{ statements }` with the parser positioned on
// the opening brace.
func (p *treeParser) parseBlock(parent *Node) *Node {
	block := &Node{Kind: KindBlock, Start: p.pos, Parent: parent}
	p.pos++ // {
	for {
		p.skipTrivia()
		if p.done() {
			break
		}
		if p.tok().Type == token.RBrace {
			p.pos++
			break
		}
		p.parseStatement(block)
	}
	block.End = p.pos
	return block
}

// statement continuation keywords: a closing brace followed by one of
// these continues the same statement (if/else chains, try/catch, and
// do/while).
func continuesStatement(t token.Token) bool {
	if t.Type != token.Keyword {
		return false
	}
	switch t.Text {
	case "else", "catch", "finally", "while":
		return true
	}
	return false
}

// parseStatement consumes one statement, including any brace groups it
// owns (if/else bodies, loop bodies, anonymous classes).
func (p *treeParser) parseStatement(parent *Node) {
	stmt := &Node{Kind: KindStatement, Start: p.pos, Parent: parent}
	depth := 0
	ownsBrace := false
	for !p.done() {
		t := p.tok()
		if t.IsComment() {
			p.pos++
			continue
		}
		// Error recovery for in-flight edits: an expression left
		// dangling at the end of a line does not swallow a fresh
		// declaration or statement on the next line.
		if depth == 0 && p.pos > stmt.Start && p.splitsStatement(stmt.Start, t) {
			stmt.End = p.pos
			parent.Children = append(parent.Children, stmt)
			return
		}
		switch t.Type {
		case token.Semi:
			if depth == 0 {
				p.pos++
				stmt.End = p.pos
				parent.Children = append(parent.Children, stmt)
				return
			}
			p.pos++
		case token.LParen, token.LBracket:
			depth++
			p.pos++
		case token.RParen, token.RBracket:
			depth--
			p.pos++
		case token.LBrace:
			if depth > 0 {
				p.skipBraces()
				continue
			}
			body := p.parseBlock(stmt)
			stmt.Children = append(stmt.Children, body)
			ownsBrace = true
			p.skipTrivia()
			if !p.done() && continuesStatement(p.tok()) {
				continue
			}
			stmt.End = p.pos
			parent.Children = append(parent.Children, stmt)
			return
		case token.RBrace:
			// End of the enclosing block: the statement is incomplete.
			stmt.End = p.pos
			parent.Children = append(parent.Children, stmt)
			return
		case token.Colon:
			// Labels and case/default arms end the "statement head";
			// keep scanning, the body statements follow separately.
			if depth == 0 && stmt.Start < p.pos &&
				startsWith(p.t.Toks[stmt.Start], "case", "default") {
				p.pos++
				stmt.End = p.pos
				parent.Children = append(parent.Children, stmt)
				return
			}
			p.pos++
		default:
			p.pos++
		}
	}
	stmt.End = p.pos
	if stmt.End > stmt.Start || ownsBrace {
		parent.Children = append(parent.Children, stmt)
	}
}

// splitsStatement reports whether the token t, at depth zero inside a
// statement beginning at start, opens a new statement on a fresh line.
func (p *treeParser) splitsStatement(start int, t token.Token) bool {
	prev := p.t.prevSignificant(p.pos - 1)
	if prev < start {
		return false
	}
	pt := p.t.Toks[prev]
	if t.Line <= pt.Line {
		return false
	}
	// The previous line must be able to end an expression.
	switch pt.Type {
	case token.Ident, token.RParen, token.RBracket,
		token.IntLit, token.FloatLit, token.CharLit, token.StringLit, token.TextBlock:
	default:
		return false
	}
	// The new line must look like the start of a statement.
	if t.Type == token.Keyword {
		switch t.Text {
		case "if", "while", "for", "do", "switch", "try", "return",
			"throw", "break", "continue", "assert", "final", "synchronized",
			"int", "long", "short", "byte", "char", "float", "double", "boolean":
			return true
		}
		return false
	}
	if t.Type == token.Ident {
		// `Type name` declaration shape.
		next := p.t.nextSignificant(p.pos + 1)
		return next >= 0 && p.t.Toks[next].Type == token.Ident &&
			p.t.Toks[next].Line == t.Line
	}
	return false
}

func startsWith(t token.Token, words ...string) bool {
	if t.Type != token.Keyword {
		return false
	}
	for _, w := range words {
		if t.Text == w {
			return true
		}
	}
	return false
}

// FirstWord returns the text of the first non-comment token of the
// node, or "".
func (n *Node) FirstWord(t *Tree) string {
	for i := n.Start; i < n.End && i < len(t.Toks); i++ {
		if !t.Toks[i].IsComment() {
			return t.Toks[i].Text
		}
	}
	return ""
}

// DeclaresPackage reports whether the unit has a package declaration.
func (t *Tree) DeclaresPackage() bool {
	return t.Header.Package != ""
}

// SimpleFileName returns the file name without directories or the
// .java extension, used by the class snippet.
func (t *Tree) SimpleFileName() string {
	name := FileName(t.File)
	return strings.TrimSuffix(name, ".java")
}
