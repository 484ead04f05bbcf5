// Copyright © 2025 The javals authors

package complete

import (
	"log"
	"strings"
	"unicode"

	"github.com/javakit/javals/compiler"
	"github.com/javakit/javals/parser"
	"github.com/javakit/javals/parser/token"
)

// completeIdentifiers is the default dispatch target: snippets, scope
// members, static imports, class names, and keywords.
func (a *assembly) completeIdentifiers(focus compiler.FocusSession, line, col int) {
	partial := a.cc.Partial

	if !a.cc.InsideClass {
		a.addTopLevelSnippets()
	}
	a.completeScopeIdentifiers(focus, line, col, partial)
	switch {
	case !a.cc.InsideClass:
		a.addKeywords(topLevelKeywords, partial)
	case !a.cc.InsideMethod:
		a.addKeywords(classBodyKeywords, partial)
	default:
		a.addKeywords(methodBodyKeywords, partial)
	}
}

// addTopLevelSnippets offers a package declaration when the file lacks
// one, and a class declaration when the file declares no type.
func (a *assembly) addTopLevelSnippets() {
	if !a.tree.DeclaresPackage() {
		name := a.engine.Workspace.SuggestedPackageName(a.path)
		if name != "" {
			a.add(ofSnippet("package "+name, "package "+name+";\n\n"))
		}
	}
	if !a.tree.HasTypeDecl() {
		name := a.tree.SimpleFileName()
		a.add(ofSnippet("class "+name, "class "+name+" {\n    $0\n}"))
	}
}

// completeScopeIdentifiers adds locals, static imports, and class
// names matching the partial.
func (a *assembly) completeScopeIdentifiers(focus compiler.FocusSession, line, col int, partial string) {
	if scope := a.scope(focus, line, col); scope != nil {
		a.walkScopes(scope, partial)
	}
	a.addStaticImports(partial)
	if startsUpper(partial) {
		a.addClassNames(partial)
	}
}

// walkScopes walks each enclosing scope, placing its members into the
// assembly and unwrapping the members of this and super.
func (a *assembly) walkScopes(start *compiler.Scope, partial string) {
	f := a.engine.Facade
	for s := start; s != nil; s = s.Parent {
		for _, el := range s.Locals {
			if a.cancelled() || a.full() {
				return
			}
			if parser.MatchesPartialName(el.Name, partial) {
				switch {
				case el.Kind.IsTypeLike():
					if f.IsAccessible(start, el, nil) {
						a.add(ofElement(el))
					}
				case el.IsThisOrSuper():
					if !s.Static() {
						a.add(ofElement(el))
					}
				default:
					a.add(ofElement(el))
				}
			}
			if el.IsThisOrSuper() {
				a.unwrapThisSuper(start, el, partial)
			}
		}
	}
}

// unwrapThisSuper places each member of this or super directly into
// the assembly, respecting the static context and accessibility.
func (a *assembly) unwrapThisSuper(start *compiler.Scope, el *compiler.Element, partial string) {
	declared, ok := el.Type.(*compiler.DeclaredType)
	if !ok {
		log.Printf("%s is not bound to a declared type", el.Name)
		return
	}
	f := a.engine.Facade
	for _, member := range f.AllMembers(declared) {
		if a.cancelled() || a.full() {
			return
		}
		if start.Static() && !member.Mods.Has(compiler.Static) {
			continue
		}
		if member.IsConstructorLike() {
			continue
		}
		if !parser.MatchesPartialName(member.Name, partial) {
			continue
		}
		if f.IsAccessible(start, member, declared) {
			a.add(ofElement(member))
		}
	}
}

// addStaticImports adds the matching static members named by the
// file's static import declarations.
func (a *assembly) addStaticImports(partial string) {
	f := a.engine.Facade
	for _, im := range a.tree.Header.Imports {
		if !im.Static {
			continue
		}
		owner, member := parser.MostName(im.Name), parser.LastName(im.Name)
		el, ok := f.TypeElement(owner)
		if !ok {
			continue
		}
		for _, m := range el.Enclosed {
			if a.cancelled() || a.full() {
				return
			}
			if !m.Mods.Has(compiler.Static) {
				continue
			}
			if member != "*" && m.Name != member {
				continue
			}
			if parser.MatchesPartialName(m.Name, partial) {
				a.add(ofElement(m))
			}
		}
	}
}

// addClassNames adds classes whose simple name matches the partial,
// from the JDK catalog, the classpath catalog, and the source path.
func (a *assembly) addClassNames(partial string) {
	packageName := a.tree.Header.Package

	matches := func(qualified string) bool {
		return parser.MatchesPartialName(parser.LastName(qualified), partial)
	}

	for _, c := range a.engine.JDKClasses {
		if a.cancelled() || a.full() {
			return
		}
		if matches(c) {
			a.add(ofClassName(c, a.isImported(c)))
		}
	}

	classPathNames := map[string]bool{}
	for _, c := range a.engine.ClassPathClasses {
		if a.cancelled() || a.full() {
			return
		}
		if matches(c) {
			a.add(ofClassName(c, a.isImported(c)))
			classPathNames[c] = true
		}
	}

	// Source path: in the same package every class is accessible; in
	// other packages only public classes. One unreadable file never
	// aborts the assembly.
	for _, file := range a.engine.Workspace.All() {
		if a.cancelled() || a.full() {
			return
		}
		otherPackage, err := a.engine.Workspace.PackageName(file)
		if err != nil {
			log.Printf("skipping %s: %v", file, err)
			continue
		}
		same := otherPackage == packageName || otherPackage == ""
		maybePublic := parser.MatchesPartialName(parser.FileName(file), partial)
		if same || maybePublic {
			a.addSourceFileClasses(file, partial, same, classPathNames)
		}
	}
}

// addSourceFileClasses parses one source-path file and adds its
// matching accessible classes.
func (a *assembly) addSourceFileClasses(file, partial string, samePackage bool, skip map[string]bool) {
	contents, err := a.engine.Workspace.Contents(file)
	if err != nil {
		log.Printf("skipping %s: %v", file, err)
		return
	}
	tree := parser.Parse(file, contents)
	for _, decl := range tree.Root.Children {
		if decl.Kind != parser.KindClass {
			continue
		}
		if !samePackage && !decl.HasModifier(tree, "public") {
			continue
		}
		if !parser.MatchesPartialName(decl.Name, partial) {
			continue
		}
		name := decl.Name
		if pkg := tree.Header.Package; pkg != "" {
			name = pkg + "." + name
		}
		if skip[name] {
			continue
		}
		if !a.add(ofClassName(name, a.isImported(name))) {
			return
		}
	}
}

// isImported reports whether the qualified name is visible by its
// simple name through the file's imports.
func (a *assembly) isImported(qualifiedName string) bool {
	for _, im := range a.tree.Header.Imports {
		if im.Covers(qualifiedName) {
			return true
		}
	}
	return false
}

func (a *assembly) addKeywords(keywords []string, partial string) {
	for _, k := range keywords {
		if parser.MatchesPartialName(k, partial) {
			if !a.add(ofKeyword(k)) {
				return
			}
		}
	}
}

func startsUpper(s string) bool {
	if s == "" {
		return false
	}
	return unicode.IsUpper(rune(s[0]))
}

// completeAnnotations offers the Override snippets built from the
// transitive supertypes, then falls through to scope identifiers.
func (a *assembly) completeAnnotations(focus compiler.FocusSession, line, col int) {
	partial := a.cc.Partial
	if parser.MatchesPartialName("Override", partial) {
		a.addOverrideSnippets(focus, line, col)
	}
	a.completeScopeIdentifiers(focus, line, col, partial)
}

// addOverrideSnippets expands @Override into a method body template
// for every inherited non-static, non-private method.
func (a *assembly) addOverrideSnippets(focus compiler.FocusSession, line, col int) {
	thisType := a.enclosingClassType(focus, line, col)
	if thisType == nil {
		return
	}
	for _, method := range a.superMethods(thisType) {
		if a.cancelled() || a.full() {
			return
		}
		label := "@Override " + shortMethod(method)
		snippet := "Override\n" + methodTemplate(method) + " {\n    $0\n}"
		a.add(ofSnippet(label, snippet))
	}
}

// enclosingClassType finds the type of the class containing the
// cursor, through the scope's this binding.
func (a *assembly) enclosingClassType(focus compiler.FocusSession, line, col int) compiler.TypeMirror {
	scope := a.scope(focus, line, col)
	if scope == nil {
		return nil
	}
	var found compiler.TypeMirror
	scope.Walk(func(s *compiler.Scope) bool {
		for _, el := range s.Locals {
			if el.Name == "this" && el.Type != nil {
				found = el.Type
				return false
			}
		}
		return true
	})
	return found
}

// superMethods collects the instance methods of the transitive
// supertypes, skipping static and private members.
func (a *assembly) superMethods(thisType compiler.TypeMirror) []*compiler.Element {
	f := a.engine.Facade
	var out []*compiler.Element
	seen := map[string]bool{}
	var collect func(t compiler.TypeMirror)
	collect = func(t compiler.TypeMirror) {
		for _, super := range f.DirectSupertypes(t) {
			el, ok := compiler.AsElement(super)
			if ok {
				for _, m := range el.Enclosed {
					if m.Kind != compiler.KindMethod {
						continue
					}
					if m.Mods.Has(compiler.Static) || m.Mods.Has(compiler.Private) {
						continue
					}
					if !seen[m.String()] {
						seen[m.String()] = true
						out = append(out, m)
					}
				}
			}
			collect(super)
		}
	}
	collect(thisType)
	return out
}

// completeCases lists the enum constants of the switched expression's
// type, falling back to identifier completion when the type has no
// definition.
func (a *assembly) completeCases(focus compiler.FocusSession, line, col int) {
	t := a.switchedType(focus, line, col)
	el, ok := compiler.AsElement(t)
	if !ok {
		a.completeIdentifiers(focus, line, col)
		return
	}
	for _, member := range el.Enclosed {
		if a.cancelled() || a.full() {
			return
		}
		if member.Kind == compiler.KindEnumConstant {
			a.add(ofElement(member))
		}
	}
}

// switchedType types the expression of the switch statement enclosing
// the cursor.
func (a *assembly) switchedType(focus compiler.FocusSession, line, col int) compiler.TypeMirror {
	if focus == nil {
		return compiler.NoType{}
	}
	l, c, ok := a.switchExprPosition(line, col)
	if !ok {
		return compiler.NoType{}
	}
	t, err := focus.TypeOf(l, c)
	if err != nil {
		return compiler.NoType{}
	}
	return t
}

// switchExprPosition finds the end of the parenthesized expression of
// the enclosing switch.
func (a *assembly) switchExprPosition(line, col int) (int, int, bool) {
	offset := a.tree.OffsetAt(line, col)
	for n := a.tree.NodeAt(offset); n != nil; n = n.Parent {
		if n.Kind != parser.KindStatement || n.FirstWord(a.tree) != "switch" {
			continue
		}
		open, close := -1, -1
		depth := 0
		for i := n.Start; i < n.End && i < len(a.tree.Toks); i++ {
			switch a.tree.Toks[i].Type {
			case token.LParen:
				if open < 0 {
					open = i
				}
				depth++
			case token.RParen:
				depth--
				if depth == 0 && open >= 0 {
					close = i
				}
			}
			if close >= 0 {
				break
			}
		}
		if close <= open+1 {
			return 0, 0, false
		}
		l, c := a.tree.PositionAt(a.tree.Toks[close-1].End() - 1)
		return l, c, true
	}
	return 0, 0, false
}

// completeImports treats the import path as member completion over
// packages, from the class catalogs.
func (a *assembly) completeImports(line, col int) {
	path, partial := a.tree.ImportPath(line, col)
	prefix := path
	if prefix != "" {
		prefix += "."
	}
	seen := map[string]bool{}
	addFrom := func(names []string) {
		for _, qualified := range names {
			if a.cancelled() || a.full() {
				return
			}
			if !strings.HasPrefix(qualified, prefix) {
				continue
			}
			rest := qualified[len(prefix):]
			dot := strings.IndexByte(rest, '.')
			if dot < 0 {
				// Leaf class in this package.
				if parser.MatchesPartialName(rest, partial) {
					a.add(ofClassName(qualified, false))
				}
				continue
			}
			seg := rest[:dot]
			if !parser.MatchesPartialName(seg, partial) || seen[seg] {
				continue
			}
			seen[seg] = true
			a.add(ofPackagePart(prefix+seg, seg))
		}
	}
	addFrom(a.engine.JDKClasses)
	addFrom(a.engine.ClassPathClasses)
}
