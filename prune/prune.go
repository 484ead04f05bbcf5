// Copyright © 2025 The javals authors

// Package prune trims a source file to a minimal neighborhood around a
// cursor. The result has exactly the same length and newline positions
// as the input, so every diagnostic and query position computed against
// the pruned text is valid against the original.
package prune

import (
	"github.com/javakit/javals/parser"
)

// AroundCursor blanks everything outside the cursor's neighborhood:
// the bodies of methods that do not contain the 1-based (line, column)
// cursor, and the statements after the cursor inside each enclosing
// block. The cursor's own statement is kept whole, so the receiver of
// a member-access chain survives the prune.
func AroundCursor(tree *parser.Tree, line, col int) string {
	offset := tree.OffsetAt(line, col)
	erase := make([]bool, len(tree.Toks))

	pruneMethodBodies(tree, tree.Root, offset, erase)
	pruneEnclosingBlocks(tree, offset, erase)

	return apply(tree, erase)
}

// ToWord blanks every token except those exactly equal to the literal
// word.
func ToWord(tree *parser.Tree, word string) string {
	erase := make([]bool, len(tree.Toks))
	for i, tok := range tree.Toks {
		if tok.Text != word {
			erase[i] = true
		}
	}
	return apply(tree, erase)
}

// pruneMethodBodies erases the interior of every method body that does
// not contain the cursor, recursing through nested classes. Method
// signatures, field declarations, and class skeletons are kept: the
// compiler needs them to resolve the neighborhood.
func pruneMethodBodies(tree *parser.Tree, n *parser.Node, offset int, erase []bool) {
	for _, c := range n.Children {
		switch c.Kind {
		case parser.KindClass, parser.KindUnit, parser.KindStatement, parser.KindBlock:
			pruneMethodBodies(tree, c, offset, erase)
		case parser.KindMethod:
			body := methodBody(c)
			if body == nil {
				continue
			}
			if containsOffset(tree, c, offset) {
				pruneMethodBodies(tree, c, offset, erase)
				continue
			}
			// Keep the braces so the member structure still parses.
			eraseRange(erase, body.Start+1, body.End-1)
		}
	}
}

func methodBody(m *parser.Node) *parser.Node {
	for _, c := range m.Children {
		if c.Kind == parser.KindBlock {
			return c
		}
	}
	return nil
}

// pruneEnclosingBlocks erases, in every block on the cursor's parent
// chain, the statements that begin after the cursor.
func pruneEnclosingBlocks(tree *parser.Tree, offset int, erase []bool) {
	cursorTok := tree.TokenAt(offset)
	for n := tree.NodeAt(offset); n != nil; n = n.Parent {
		if n.Kind != parser.KindBlock {
			continue
		}
		for _, st := range n.Children {
			if st.Start > cursorTok && !containsOffset(tree, st, offset) {
				eraseRange(erase, st.Start, st.End)
			}
		}
	}
}

func containsOffset(tree *parser.Tree, n *parser.Node, offset int) bool {
	if n.Start >= len(tree.Toks) || n.Start >= n.End {
		return false
	}
	return tree.Toks[n.Start].Offset <= offset && offset <= tokenEnd(tree, n.End)
}

func tokenEnd(tree *parser.Tree, end int) int {
	if end > len(tree.Toks) {
		end = len(tree.Toks)
	}
	if end <= 0 {
		return 0
	}
	return tree.Toks[end-1].End()
}

func eraseRange(erase []bool, start, end int) {
	for i := start; i < end && i < len(erase); i++ {
		erase[i] = true
	}
}

// apply space-fills every erased token, byte for byte, keeping
// newlines so that all positions survive.
func apply(tree *parser.Tree, erase []bool) string {
	out := []byte(tree.Src)
	for i, tok := range tree.Toks {
		if !erase[i] {
			continue
		}
		for b := tok.Offset; b < tok.End() && b < len(out); b++ {
			if out[b] != '\n' {
				out[b] = ' '
			}
		}
	}
	return string(out)
}
