// Copyright © 2025 The javals authors

package complete

import (
	"sort"
	"strings"

	"github.com/javakit/javals/check"
	"github.com/javakit/javals/compiler"
	"github.com/javakit/javals/parser"
	"github.com/javakit/javals/parser/token"
)

// completeMembers handles `expr.` and `expr::` positions: the receiver
// resolves to a package, a type, or a value, each with its own member
// rules.
func (a *assembly) completeMembers(focus compiler.FocusSession, line, col int) {
	scope := a.scope(focus, line, col)
	recvLine, recvCol, ok := a.receiverPosition(line, col)
	if !ok {
		return
	}

	if focus != nil {
		if el, err := focus.Element(recvLine, recvCol); err == nil && el != nil {
			switch {
			case el.Kind == compiler.KindPackage:
				a.packageMembers(scope, el)
				return
			case el.Kind.IsTypeLike() && a.cc.IsReference:
				a.typeReferenceMembers(scope, el)
				return
			case el.Kind.IsTypeLike():
				a.staticMembers(scope, el)
				return
			}
		}
	}
	// Value receiver: type from the focus compilation, else re-derived
	// by the partial checker.
	t := a.receiverType(focus, scope, line, col, recvLine, recvCol)
	if compiler.IsNoType(t) {
		return
	}
	a.valueMembers(scope, t)
}

// receiverPosition finds the 1-based position of the last token of the
// member-access receiver, just left of the dot.
func (a *assembly) receiverPosition(line, col int) (int, int, bool) {
	offset := a.tree.OffsetAt(line, col)
	i := a.tree.TokenAt(offset)
	// Walk left past the partial member name to the dot.
	for ; i >= 0; i-- {
		tok := a.tree.Toks[i]
		if tok.IsComment() {
			continue
		}
		if tok.Type == token.Dot || tok.Type == token.ColonColon {
			break
		}
		if tok.Offset < offset && tok.End() < offset {
			// A full token before the cursor that is not the partial
			// name: malformed member access.
			return 0, 0, false
		}
	}
	if i < 0 {
		return 0, 0, false
	}
	for i--; i >= 0; i-- {
		if !a.tree.Toks[i].IsComment() {
			break
		}
	}
	if i < 0 {
		return 0, 0, false
	}
	l, c := a.tree.PositionAt(a.tree.Toks[i].End() - 1)
	return l, c, true
}

// receiverType types the receiver expression, first from the compiled
// focus, then through the partial checker with a retained type for the
// one subtree the grammar cannot handle.
func (a *assembly) receiverType(focus compiler.FocusSession, scope *compiler.Scope, line, col, recvLine, recvCol int) compiler.TypeMirror {
	if focus != nil {
		if t, err := focus.TypeOf(recvLine, recvCol); err == nil && !compiler.IsNoType(t) {
			return t
		}
	}
	if scope == nil {
		return compiler.NoType{}
	}
	expr, ok := a.tree.ExprBeforeCursor(line, col)
	if !ok {
		return compiler.NoType{}
	}
	c := check.New(a.engine.Facade, scope)
	if bad, found := check.CantCheck(a.tree, line, col); found && focus != nil {
		if t := a.subtreeType(focus, bad); !compiler.IsNoType(t) {
			c = c.WithRetained(bad.ExprKind(), t)
		}
	}
	t, ok := c.Check(expr)
	if !ok {
		return compiler.NoType{}
	}
	return t
}

// subtreeType asks the focus session for the type of the uncheckable
// subtree, by the position of its last token.
func (a *assembly) subtreeType(focus compiler.FocusSession, e parser.Expr) compiler.TypeMirror {
	_, end := e.Span()
	if end <= 0 || end > len(a.tree.Toks) {
		return compiler.NoType{}
	}
	l, c := a.tree.PositionAt(a.tree.Toks[end-1].End() - 1)
	t, err := focus.TypeOf(l, c)
	if err != nil {
		return compiler.NoType{}
	}
	return t
}

// packageMembers lists the visible types of a package plus inferred
// sub-package names.
func (a *assembly) packageMembers(scope *compiler.Scope, pkg *compiler.Element) {
	for _, member := range pkg.Enclosed {
		if a.cancelled() || a.full() {
			return
		}
		if member.Kind.IsTypeLike() {
			if a.engine.Facade.IsAccessible(scope, member, nil) {
				a.add(ofElement(member))
			}
			continue
		}
		a.add(ofElement(member))
	}
	for _, sub := range a.subPackages(pkg.QualifiedName) {
		if !a.add(ofPackagePart(sub, parser.LastName(sub))) {
			return
		}
	}
}

// subPackages infers child package names by prefix-matching the class
// catalogs.
func (a *assembly) subPackages(parent string) []string {
	set := map[string]bool{}
	checkName := func(name string) {
		pkg := parser.MostName(name)
		if !strings.HasPrefix(pkg, parent) || len(pkg) <= len(parent) {
			return
		}
		start := len(parent) + 1
		end := strings.IndexByte(pkg[start:], '.')
		if end < 0 {
			set[pkg] = true
		} else {
			set[pkg[:start+end]] = true
		}
	}
	for _, name := range a.engine.JDKClasses {
		checkName(name)
	}
	for _, name := range a.engine.ClassPathClasses {
		checkName(name)
	}
	out := make([]string, 0, len(set))
	for s := range set {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// typeReferenceMembers lists `Type::` candidates: accessible methods
// plus the new keyword.
func (a *assembly) typeReferenceMembers(scope *compiler.Scope, t *compiler.Element) {
	for _, member := range t.Enclosed {
		if a.cancelled() || a.full() {
			return
		}
		if member.Kind == compiler.KindMethod &&
			a.engine.Facade.IsAccessible(scope, member, t.Type) {
			a.add(ofElement(member))
		}
	}
	a.add(ofKeyword("new"))
}

// staticMembers lists `Type.` candidates: accessible static members
// plus class, this, and super.
func (a *assembly) staticMembers(scope *compiler.Scope, t *compiler.Element) {
	for _, member := range t.Enclosed {
		if a.cancelled() || a.full() {
			return
		}
		if member.Mods.Has(compiler.Static) &&
			a.engine.Facade.IsAccessible(scope, member, t.Type) {
			a.add(ofElement(member))
		}
	}
	a.add(ofKeyword("class"))
	a.add(ofKeyword("this"))
	a.add(ofKeyword("super"))
}

// valueMembers lists instance members of the receiver type across its
// supertype closure, deduplicated, with a length candidate for arrays.
func (a *assembly) valueMembers(scope *compiler.Scope, t compiler.TypeMirror) {
	for _, super := range a.supersWithSelf(t) {
		el, ok := compiler.AsElement(super)
		if !ok {
			continue
		}
		declared, isDeclared := t.(*compiler.DeclaredType)
		for _, member := range el.Enclosed {
			if a.cancelled() || a.full() {
				return
			}
			if member.Mods.Has(compiler.Static) {
				continue
			}
			if member.IsConstructorLike() {
				continue
			}
			// Accessibility is checkable only against a declared
			// receiver type; otherwise everything is offered.
			if isDeclared && !a.engine.Facade.IsAccessible(scope, member, declared) {
				continue
			}
			a.add(ofElement(member))
		}
	}
	if _, ok := t.(*compiler.ArrayType); ok {
		a.add(ofKeyword("length"))
	}
}

// supersWithSelf returns t, its transitive supertypes, and the
// implicit root class type.
func (a *assembly) supersWithSelf(t compiler.TypeMirror) []compiler.TypeMirror {
	var out []compiler.TypeMirror
	seen := map[string]bool{}
	var collect func(compiler.TypeMirror)
	collect = func(t compiler.TypeMirror) {
		if t == nil || seen[t.String()] {
			return
		}
		seen[t.String()] = true
		out = append(out, t)
		for _, s := range a.engine.Facade.DirectSupertypes(t) {
			collect(s)
		}
	}
	collect(t)
	collect(compiler.ObjectType(a.engine.Facade))
	return out
}
