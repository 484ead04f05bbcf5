// Copyright © 2025 The javals authors

// Package complete assembles completion candidates for a cursor from
// lexical scope, supertype members, static imports, the class
// catalogs, and the source path.
package complete

import (
	"strings"

	"github.com/javakit/javals/compiler"
)

// CandidateKind tags the variant of a Candidate.
type CandidateKind int

const (
	// CandidateElement references a resolved program element.
	CandidateElement CandidateKind = iota
	// CandidateKeyword is a bare keyword.
	CandidateKeyword
	// CandidateSnippet is an expandable template.
	CandidateSnippet
	// CandidateClassName names a class known only by its qualified
	// name (from the class catalogs or the source path).
	CandidateClassName
	// CandidatePackagePart is one inferred sub-package segment.
	CandidatePackagePart
)

// Candidate is one entry of a completion result.
type Candidate struct {
	Kind CandidateKind

	// Element, for CandidateElement.
	Element *compiler.Element

	// Keyword, for CandidateKeyword.
	Keyword string

	// Label and Body, for CandidateSnippet. Body uses $0 as the final
	// cursor placeholder.
	Label string
	Body  string

	// ClassName and Imported, for CandidateClassName.
	ClassName string
	Imported  bool

	// PackagePrefix and PackageLast, for CandidatePackagePart.
	PackagePrefix string
	PackageLast   string
}

func ofElement(e *compiler.Element) Candidate {
	return Candidate{Kind: CandidateElement, Element: e}
}

func ofKeyword(word string) Candidate {
	return Candidate{Kind: CandidateKeyword, Keyword: word}
}

func ofSnippet(label, body string) Candidate {
	return Candidate{Kind: CandidateSnippet, Label: label, Body: body}
}

func ofClassName(qualified string, imported bool) Candidate {
	return Candidate{Kind: CandidateClassName, ClassName: qualified, Imported: imported}
}

func ofPackagePart(prefix, last string) Candidate {
	return Candidate{Kind: CandidatePackagePart, PackagePrefix: prefix, PackageLast: last}
}

// Name returns the insertable simple name of the candidate.
func (c Candidate) Name() string {
	switch c.Kind {
	case CandidateElement:
		return c.Element.Name
	case CandidateKeyword:
		return c.Keyword
	case CandidateSnippet:
		return c.Label
	case CandidateClassName:
		if i := strings.LastIndexByte(c.ClassName, '.'); i >= 0 {
			return c.ClassName[i+1:]
		}
		return c.ClassName
	case CandidatePackagePart:
		return c.PackageLast
	}
	return ""
}

// dedupKey prevents the same suggestion from appearing twice in one
// assembly.
func (c Candidate) dedupKey() string {
	switch c.Kind {
	case CandidateElement:
		return "e:" + c.Element.String()
	case CandidateKeyword:
		return "k:" + c.Keyword
	case CandidateSnippet:
		return "s:" + c.Label
	case CandidateClassName:
		return "c:" + c.ClassName
	case CandidatePackagePart:
		return "p:" + c.PackagePrefix
	}
	return ""
}

// shortMethod prints a method for snippet labels: `void run(int)`
// without modifiers, throws, or parameter names.
func shortMethod(m *compiler.Element) string {
	et, ok := m.Type.(*compiler.ExecutableType)
	if !ok {
		return m.Name + "()"
	}
	var b strings.Builder
	if et.Result == nil {
		b.WriteString("void")
	} else {
		b.WriteString(simpleType(et.Result))
	}
	b.WriteByte(' ')
	b.WriteString(m.Name)
	b.WriteByte('(')
	for i, p := range et.Params {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(simpleType(p))
	}
	b.WriteByte(')')
	return b.String()
}

// methodTemplate prints the override body template for a method.
func methodTemplate(m *compiler.Element) string {
	return "public " + shortMethod(m)
}

func simpleType(t compiler.TypeMirror) string {
	if t == nil {
		return "void"
	}
	s := t.String()
	if i := strings.LastIndexByte(s, '.'); i >= 0 && !strings.Contains(s, "(") {
		return s[i+1:]
	}
	return s
}
