// Copyright © 2025 The javals authors

package parser

import (
	"strings"

	parsec "github.com/prataprc/goparsec"

	"github.com/javakit/javals/parser/token"
)

// Header is the structured form of a Java file header: the package
// declaration and the import declarations, in source order.
type Header struct {
	Package string
	Imports []Import
}

// Import is a single import declaration. Name keeps the trailing ".*"
// for on-demand imports.
type Import struct {
	Static bool
	Name   string
}

// OnDemand reports whether the import ends in ".*".
func (im Import) OnDemand() bool {
	return strings.HasSuffix(im.Name, ".*")
}

// Covers reports whether the import makes the given qualified class
// name visible by its simple name.
func (im Import) Covers(qualifiedName string) bool {
	if im.Static {
		return false
	}
	if im.OnDemand() {
		return strings.TrimSuffix(im.Name, ".*") == MostName(qualifiedName)
	}
	return im.Name == qualifiedName
}

// ParseHeader parses the package and import declarations at the top of
// src. It tolerates comments, annotations before the package, and any
// malformed or unrelated text after the header, which it ignores.
func ParseHeader(src string) Header {
	text := headerText(src)
	s := parsec.NewScanner([]byte(text))
	node, _ := headerParser()(s)

	var h Header
	terms := flattenTerminals(node)
	for i := 0; i < len(terms); i++ {
		switch terms[i] {
		case "package":
			if i+1 < len(terms) && terms[i+1] != ";" {
				h.Package = compactName(terms[i+1])
				i++
			}
		case "import":
			im := Import{}
			j := i + 1
			if j < len(terms) && terms[j] == "static" {
				im.Static = true
				j++
			}
			if j < len(terms) && terms[j] != ";" {
				im.Name = compactName(terms[j])
				h.Imports = append(h.Imports, im)
			}
			i = j
		}
	}
	return h
}

// headerParser builds the combinator grammar:
//
//	header  := package? import*
//	package := "package" name ";"
//	import  := "import" "static"? name ";"
//	name    := ident ("." (ident | "*"))*
func headerParser() parsec.Parser {
	pkgKw := parsec.Atom("package", "PACKAGE")
	impKw := parsec.Atom("import", "IMPORT")
	staticKw := parsec.Atom("static", "STATIC")
	semi := parsec.Atom(";", "SEMI")
	name := parsec.Token(`[A-Za-z_$][A-Za-z0-9_$]*(?:\s*\.\s*(?:[A-Za-z_$][A-Za-z0-9_$]*|\*))*`, "NAME")

	pkgDecl := parsec.And(nil, pkgKw, name, semi)
	impDecl := parsec.And(nil, impKw, parsec.Maybe(nil, staticKw), name, semi)
	return parsec.And(nil,
		parsec.Maybe(nil, pkgDecl),
		parsec.Kleene(nil, impDecl),
	)
}

// headerText extracts the prefix of src that can belong to the header,
// with comments and leading annotations blanked out so the combinator
// grammar sees only declaration tokens.
func headerText(src string) string {
	buf := []byte(src)
	s := token.NewScanner("", src)
	end := 0
loop:
	for s.Scan() {
		t := s.Token()
		switch {
		case t.IsComment():
			blank(buf, t.Offset, t.End())
		case t.Type == token.At:
			// Annotations before the package declaration are not part
			// of the header grammar; blank the marker and its name.
			blank(buf, t.Offset, t.End())
			if s.Scan() {
				nt := s.Token()
				blank(buf, nt.Offset, nt.End())
			}
		case t.Type == token.Keyword:
			switch t.Text {
			case "package", "import", "static":
				end = t.End()
			default:
				break loop
			}
		case t.Type == token.Ident, t.Type == token.Dot,
			t.Type == token.Semi, t.Type == token.Operator:
			end = t.End()
		default:
			break loop
		}
	}
	return string(buf[:end])
}

func blank(buf []byte, start, end int) {
	for i := start; i < end && i < len(buf); i++ {
		if buf[i] != '\n' {
			buf[i] = ' '
		}
	}
}

// flattenTerminals walks a parsec node tree in order, collecting the
// text of every terminal.
func flattenTerminals(node parsec.ParsecNode) []string {
	var out []string
	var walk func(parsec.ParsecNode)
	walk = func(n parsec.ParsecNode) {
		switch n := n.(type) {
		case *parsec.Terminal:
			out = append(out, n.GetValue())
		case []parsec.ParsecNode:
			for _, c := range n {
				walk(c)
			}
		case parsec.MaybeNone:
			// nothing
		case string:
			out = append(out, n)
		}
	}
	walk(node)
	return out
}

// compactName strips interior whitespace from a dotted name matched
// across line breaks.
func compactName(name string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\r', '\n':
			return -1
		}
		return r
	}, name)
}
