// Copyright © 2025 The javals authors

package parser

import (
	"sort"

	"github.com/javakit/javals/parser/token"
)

// Kind identifies a structural node or expression form.
type Kind int

const (
	KindErroneous Kind = iota

	// Structural nodes.
	KindUnit
	KindClass // class, interface, enum, annotation declarations
	KindField
	KindMethod // methods, constructors, initializer blocks
	KindBlock
	KindStatement

	// The small expression grammar the partial checker reasons about.
	KindIdentifier
	KindMemberSelect
	KindMemberReference
	KindInvocation
	KindArrayAccess
	KindConditional
	KindParenthesized
	KindLiteral
)

func (k Kind) String() string {
	switch k {
	case KindUnit:
		return "unit"
	case KindClass:
		return "class"
	case KindField:
		return "field"
	case KindMethod:
		return "method"
	case KindBlock:
		return "block"
	case KindStatement:
		return "statement"
	case KindIdentifier:
		return "identifier"
	case KindMemberSelect:
		return "member-select"
	case KindMemberReference:
		return "member-reference"
	case KindInvocation:
		return "invocation"
	case KindArrayAccess:
		return "array-access"
	case KindConditional:
		return "conditional"
	case KindParenthesized:
		return "parenthesized"
	case KindLiteral:
		return "literal"
	default:
		return "erroneous"
	}
}

// Node is a structural parse node. Start and End are indexes into the
// tree's token slice; End is exclusive.
type Node struct {
	Kind     Kind
	Name     string // declared name for classes, methods, fields
	Start    int
	End      int
	Parent   *Node
	Children []*Node
}

// Tree is the lightweight structural parse of one compilation unit.
type Tree struct {
	File   string
	Src    string
	Toks   []token.Token
	Root   *Node
	Header Header

	lineOffsets []int // byte offset of the start of each 1-based line
}

// OffsetAt converts a 1-based (line, column) position to a byte offset.
// Positions past the end of a line clamp to the line end.
func (t *Tree) OffsetAt(line, col int) int {
	if line < 1 {
		return 0
	}
	if line > len(t.lineOffsets) {
		return len(t.Src)
	}
	off := t.lineOffsets[line-1] + col - 1
	end := len(t.Src)
	if line < len(t.lineOffsets) {
		end = t.lineOffsets[line] - 1
	}
	if off > end {
		off = end
	}
	return off
}

// PositionAt converts a byte offset to a 1-based (line, column) pair.
func (t *Tree) PositionAt(offset int) (line, col int) {
	if offset < 0 {
		offset = 0
	}
	i := sort.Search(len(t.lineOffsets), func(i int) bool {
		return t.lineOffsets[i] > offset
	})
	line = i // lineOffsets[i-1] <= offset
	if line < 1 {
		line = 1
	}
	return line, offset - t.lineOffsets[line-1] + 1
}

// TokenAt returns the index of the last non-comment token that starts
// before the byte offset: the token containing or ending at the offset,
// or else the nearest token to its left. Returns -1 when no token
// starts before the offset.
func (t *Tree) TokenAt(offset int) int {
	best := -1
	for i, tok := range t.Toks {
		if tok.IsComment() {
			continue
		}
		if tok.Offset >= offset {
			break
		}
		best = i
	}
	return best
}

// NodeAt returns the innermost structural node whose token span
// contains the byte offset.
func (t *Tree) NodeAt(offset int) *Node {
	node := t.Root
	for {
		child := node.childAt(t, offset)
		if child == nil {
			return node
		}
		node = child
	}
}

func (n *Node) childAt(t *Tree, offset int) *Node {
	for _, c := range n.Children {
		if c.Start >= len(t.Toks) {
			continue
		}
		start := t.Toks[c.Start].Offset
		end := t.tokenEnd(c.End)
		if start <= offset && offset <= end {
			return c
		}
	}
	return nil
}

// tokenEnd returns the byte offset just past the last token of a span
// ending at token index end (exclusive).
func (t *Tree) tokenEnd(end int) int {
	if end <= 0 {
		return 0
	}
	if end > len(t.Toks) {
		end = len(t.Toks)
	}
	return t.Toks[end-1].End()
}

// Enclosing walks from the node at offset outward until a node of one
// of the given kinds is found.
func (t *Tree) Enclosing(offset int, kinds ...Kind) *Node {
	for n := t.NodeAt(offset); n != nil; n = n.Parent {
		for _, k := range kinds {
			if n.Kind == k {
				return n
			}
		}
	}
	return nil
}

// HasModifier reports whether the declaration carries the given
// modifier keyword before its introducing keyword.
func (n *Node) HasModifier(t *Tree, word string) bool {
	for i := n.Start; i < n.End && i < len(t.Toks); i++ {
		tok := t.Toks[i]
		if isTypeDeclKeyword(tok) {
			return false
		}
		if tok.Type == token.Keyword && tok.Text == word {
			return true
		}
	}
	return false
}

// TypeNames returns the names of all top-level type declarations.
func (t *Tree) TypeNames() []string {
	var names []string
	for _, c := range t.Root.Children {
		if c.Kind == KindClass {
			names = append(names, c.Name)
		}
	}
	return names
}

// HasTypeDecl reports whether the unit declares any type.
func (t *Tree) HasTypeDecl() bool {
	for _, c := range t.Root.Children {
		if c.Kind == KindClass {
			return true
		}
	}
	return false
}

// Expr is one expression of the small grammar. Span bounds are token
// indexes into the tree's token slice, end exclusive.
type Expr interface {
	ExprKind() Kind
	Span() (start, end int)
}

type span struct{ start, end int }

func (s span) Span() (int, int) { return s.start, s.end }

// Ident is a bare identifier, including this and super.
type Ident struct {
	span
	Name string
}

func (*Ident) ExprKind() Kind { return KindIdentifier }

// Select is a member access `X.Name`.
type Select struct {
	span
	X    Expr
	Name string
}

func (*Select) ExprKind() Kind { return KindMemberSelect }

// Reference is a member reference `X::Name`.
type Reference struct {
	span
	X    Expr
	Name string
}

func (*Reference) ExprKind() Kind { return KindMemberReference }

// Invoke is a method invocation `Fun(Args...)`.
type Invoke struct {
	span
	Fun  Expr
	Args []Expr
}

func (*Invoke) ExprKind() Kind { return KindInvocation }

// Index is an array access `X[I]`.
type Index struct {
	span
	X Expr
	I Expr
}

func (*Index) ExprKind() Kind { return KindArrayAccess }

// Cond is a conditional `C ? Then : Else`.
type Cond struct {
	span
	C    Expr
	Then Expr
	Else Expr
}

func (*Cond) ExprKind() Kind { return KindConditional }

// Paren is a parenthesized expression.
type Paren struct {
	span
	X Expr
}

func (*Paren) ExprKind() Kind { return KindParenthesized }

// Literal is any literal token.
type Literal struct {
	span
	Tok token.Token
}

func (*Literal) ExprKind() Kind { return KindLiteral }

// Bad marks a region outside the supported grammar.
type Bad struct {
	span
}

func (*Bad) ExprKind() Kind { return KindErroneous }
