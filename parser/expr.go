// Copyright © 2025 The javals authors

package parser

import (
	"github.com/javakit/javals/parser/token"
)

// ExprBeforeCursor parses the expression immediately to the left of the
// 1-based (line, column) cursor: the receiver chain of a member access,
// the callee of an invocation, or a bare identifier. It returns false
// when no expression ends at the cursor.
//
// Only the small grammar (identifier, member select/reference,
// invocation, array access, conditional, parenthesized, literal) is
// represented precisely; anything else becomes a Bad node so that the
// partial checker can hand it back to the full compiler.
func (t *Tree) ExprBeforeCursor(line, col int) (Expr, bool) {
	offset := t.OffsetAt(line, col)
	end := t.TokenAt(offset)
	if end < 0 {
		return nil, false
	}
	// A trailing dot or :: is part of the member access being typed;
	// the expression of interest is its receiver.
	switch t.Toks[end].Type {
	case token.Dot, token.ColonColon:
		end--
	}
	if end < 0 {
		return nil, false
	}
	start := t.chainStart(end)
	if start < 0 {
		return nil, false
	}
	// Conditional extension: when the chain is a branch of `c ? x : y`
	// the expression starts at the condition, not the branch.
	for {
		j := t.prevSignificant(start - 1)
		if j < 0 {
			break
		}
		tt := t.Toks[j].Type
		if tt != token.Colon && tt != token.Question {
			break
		}
		k := t.prevSignificant(j - 1)
		if k < 0 {
			break
		}
		s2 := t.chainStart(k)
		if s2 < 0 {
			break
		}
		start = s2
	}
	ep := exprParser{t: t, pos: start, end: end + 1}
	e := ep.parseExpr()
	if e == nil {
		return nil, false
	}
	return e, true
}

// chainStart walks left from token index end to find the first token of
// the postfix chain ending there.
func (t *Tree) chainStart(end int) int {
	i := end
	for i >= 0 {
		tok := t.Toks[i]
		if tok.IsComment() {
			i--
			continue
		}
		receiver := false
		switch tok.Type {
		case token.Ident, token.IntLit, token.FloatLit, token.CharLit,
			token.StringLit, token.TextBlock:
		case token.Keyword:
			if tok.Text != "this" && tok.Text != "super" {
				return t.afterChainBreak(i, end)
			}
		case token.RParen:
			j, k, ok := t.groupReceiver(i, token.LParen, token.RParen)
			if !ok {
				return t.afterChainBreak(i, end)
			}
			if k >= 0 {
				i = k
				receiver = true
			} else {
				i = j
			}
		case token.RBracket:
			j, k, ok := t.groupReceiver(i, token.LBracket, token.RBracket)
			if !ok {
				return t.afterChainBreak(i, end)
			}
			if k >= 0 {
				i = k
				receiver = true
			} else {
				i = j
			}
		default:
			return t.afterChainBreak(i, end)
		}
		if receiver && !t.isChainAtom(i) {
			// The receiver is itself a closing bracket; reconsider it.
			continue
		}
		// Look at the token to the left to decide whether the chain
		// continues through a member access.
		j := t.prevSignificant(i - 1)
		if j < 0 {
			return i
		}
		switch t.Toks[j].Type {
		case token.Dot, token.ColonColon:
			j = t.prevSignificant(j - 1)
			if j < 0 {
				return i
			}
			i = j
		default:
			return i
		}
	}
	return 0
}

// groupReceiver balances the closer at index i back to its opener and
// identifies what owns the group: the index of the callee or array
// expression to the left (k), or -1 when the group is a parenthesized
// primary. j is the opener index.
func (t *Tree) groupReceiver(i int, open, close token.Type) (j, k int, ok bool) {
	j = t.matchBackward(i, open, close)
	if j < 0 {
		return 0, 0, false
	}
	k = t.prevSignificant(j - 1)
	if k < 0 {
		return j, -1, true
	}
	switch t.Toks[k].Type {
	case token.Ident, token.RParen, token.RBracket:
		return j, k, true
	case token.Keyword:
		if t.Toks[k].Text == "this" || t.Toks[k].Text == "super" {
			return j, k, true
		}
	}
	return j, -1, true
}

// isChainAtom reports whether the token at i is an atom the chain walk
// handles directly (not a bracket group needing another balance step).
func (t *Tree) isChainAtom(i int) bool {
	switch t.Toks[i].Type {
	case token.RParen, token.RBracket:
		return false
	}
	return true
}

// afterChainBreak is the recovery position when token i cannot belong
// to the chain: the chain starts just right of it, if anything remains.
func (t *Tree) afterChainBreak(i, end int) int {
	j := t.nextSignificant(i + 1)
	if j < 0 || j > end {
		return -1
	}
	return j
}

func (t *Tree) prevSignificant(i int) int {
	for ; i >= 0; i-- {
		if !t.Toks[i].IsComment() {
			return i
		}
	}
	return -1
}

func (t *Tree) nextSignificant(i int) int {
	for ; i < len(t.Toks); i++ {
		if !t.Toks[i].IsComment() {
			return i
		}
	}
	return -1
}

// matchBackward finds the opener matching the closer at index i.
func (t *Tree) matchBackward(i int, open, close token.Type) int {
	depth := 0
	for ; i >= 0; i-- {
		switch t.Toks[i].Type {
		case close:
			depth++
		case open:
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// exprParser is a recursive-descent parser over the token window
// [pos, end).
type exprParser struct {
	t   *Tree
	pos int
	end int
}

func (p *exprParser) peek() (token.Token, bool) {
	i := p.t.nextSignificant(p.pos)
	if i < 0 || i >= p.end {
		return token.Token{}, false
	}
	return p.t.Toks[i], true
}

func (p *exprParser) next() (token.Token, int, bool) {
	i := p.t.nextSignificant(p.pos)
	if i < 0 || i >= p.end {
		return token.Token{}, p.pos, false
	}
	p.pos = i + 1
	return p.t.Toks[i], i, true
}

// parseExpr parses a postfix chain and an optional trailing
// conditional.
func (p *exprParser) parseExpr() Expr {
	e := p.parsePostfix()
	if e == nil {
		return nil
	}
	if tok, ok := p.peek(); ok && tok.Type == token.Question {
		p.next() // ?
		then := p.parsePostfix()
		var els Expr
		if tok, ok := p.peek(); ok && tok.Type == token.Colon {
			p.next() // :
			els = p.parsePostfix()
		}
		s, _ := e.Span()
		end := p.pos
		if then == nil {
			return &Bad{span{s, end}}
		}
		return &Cond{span: span{s, end}, C: e, Then: then, Else: els}
	}
	// Anything left in the window is outside the grammar.
	if _, ok := p.peek(); ok {
		s, _ := e.Span()
		return &Bad{span{s, p.end}}
	}
	return e
}

func (p *exprParser) parsePostfix() Expr {
	e := p.parsePrimary()
	if e == nil {
		return nil
	}
	for {
		tok, ok := p.peek()
		if !ok {
			return e
		}
		s, _ := e.Span()
		switch tok.Type {
		case token.Dot:
			p.next()
			name, i, ok := p.next()
			if !ok || (name.Type != token.Ident && name.Type != token.Keyword) {
				return &Bad{span{s, p.pos}}
			}
			e = &Select{span: span{s, i + 1}, X: e, Name: name.Text}
		case token.ColonColon:
			p.next()
			name, i, ok := p.next()
			if !ok || (name.Type != token.Ident &&
				!(name.Type == token.Keyword && name.Text == "new")) {
				return &Bad{span{s, p.pos}}
			}
			e = &Reference{span: span{s, i + 1}, X: e, Name: name.Text}
		case token.LParen:
			args, end, ok := p.parseArgs()
			if !ok {
				return &Bad{span{s, p.pos}}
			}
			e = &Invoke{span: span{s, end}, Fun: e, Args: args}
		case token.LBracket:
			_, open, _ := p.next()
			close := p.t.matchForward(open, token.LBracket, token.RBracket, p.end)
			if close < 0 {
				return &Bad{span{s, p.end}}
			}
			inner := exprParser{t: p.t, pos: open + 1, end: close}
			idx := inner.parseExpr()
			p.pos = close + 1
			if idx == nil {
				idx = &Bad{span{open + 1, close}}
			}
			e = &Index{span: span{s, close + 1}, X: e, I: idx}
		default:
			return e
		}
	}
}

func (p *exprParser) parsePrimary() Expr {
	tok, i, ok := p.next()
	if !ok {
		return nil
	}
	switch tok.Type {
	case token.Ident:
		return &Ident{span: span{i, i + 1}, Name: tok.Text}
	case token.Keyword:
		if tok.Text == "this" || tok.Text == "super" {
			return &Ident{span: span{i, i + 1}, Name: tok.Text}
		}
		return &Bad{span{i, i + 1}}
	case token.IntLit, token.FloatLit, token.CharLit, token.StringLit, token.TextBlock:
		return &Literal{span: span{i, i + 1}, Tok: tok}
	case token.LParen:
		close := p.t.matchForward(i, token.LParen, token.RParen, p.end)
		if close < 0 {
			return &Bad{span{i, p.end}}
		}
		inner := exprParser{t: p.t, pos: i + 1, end: close}
		x := inner.parseExpr()
		p.pos = close + 1
		if x == nil {
			return &Bad{span{i, close + 1}}
		}
		return &Paren{span: span{i, close + 1}, X: x}
	default:
		return &Bad{span{i, i + 1}}
	}
}

// parseArgs consumes `(a, b, c)` with the opening paren as the next
// token, returning one parsed expression per argument.
func (p *exprParser) parseArgs() (args []Expr, end int, ok bool) {
	_, open, _ := p.next()
	close := p.t.matchForward(open, token.LParen, token.RParen, p.end)
	if close < 0 {
		return nil, 0, false
	}
	for _, window := range p.t.splitArgs(open, close) {
		inner := exprParser{t: p.t, pos: window[0], end: window[1]}
		arg := inner.parseExpr()
		if arg == nil {
			arg = &Bad{span{window[0], window[1]}}
		}
		args = append(args, arg)
	}
	p.pos = close + 1
	return args, close + 1, true
}

// splitArgs returns the token windows of each top-level comma-separated
// argument between the parens at open and close.
func (t *Tree) splitArgs(open, close int) [][2]int {
	var windows [][2]int
	depth := 0
	start := open + 1
	for i := open + 1; i < close; i++ {
		switch t.Toks[i].Type {
		case token.LParen, token.LBracket, token.LBrace:
			depth++
		case token.RParen, token.RBracket, token.RBrace:
			depth--
		case token.Comma:
			if depth == 0 {
				windows = append(windows, [2]int{start, i})
				start = i + 1
			}
		}
	}
	if start < close {
		windows = append(windows, [2]int{start, close})
	}
	return windows
}

// matchForward finds the closer matching the opener at index i, bounded
// by end.
func (t *Tree) matchForward(i int, open, close token.Type, end int) int {
	depth := 0
	for ; i < end && i < len(t.Toks); i++ {
		switch t.Toks[i].Type {
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
