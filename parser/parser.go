// Copyright © 2025 The javals authors

// Package parser provides the compiler-free front half of the analysis
// core: cheap lexical queries used to pre-qualify expensive operations,
// and a lightweight structural parse of Java source that is good enough
// for pruning and for classifying a cursor position.
package parser

import (
	"io"
	"strings"

	"github.com/javakit/javals/parser/token"
)

// PackageName streams tokens from r until the first package declaration
// and returns the dotted name, or "" if the file declares no package.
func PackageName(r io.Reader) string {
	src, err := io.ReadAll(r)
	if err != nil {
		return ""
	}
	return PackageNameString(string(src))
}

// PackageNameString is PackageName over an in-memory source string.
func PackageNameString(src string) string {
	s := token.NewScanner("", src)
	// Comments and package annotations (as on package-info.java files)
	// may precede the declaration; anything else means no package.
	parenDepth := 0
	annotation := false
	for s.Scan() {
		t := s.Token()
		if t.IsComment() {
			continue
		}
		if parenDepth > 0 {
			switch t.Type {
			case token.LParen:
				parenDepth++
			case token.RParen:
				parenDepth--
			}
			continue
		}
		switch t.Type {
		case token.At:
			annotation = true
		case token.Ident, token.Dot:
			if !annotation {
				return ""
			}
		case token.LParen:
			if !annotation {
				return ""
			}
			parenDepth++
		case token.Keyword:
			if t.Text == "package" {
				return scanDottedName(s)
			}
			return ""
		default:
			return ""
		}
	}
	return ""
}

func scanDottedName(s *token.Scanner) string {
	var b strings.Builder
	for s.Scan() {
		t := s.Token()
		switch t.Type {
		case token.Ident:
			b.WriteString(t.Text)
		case token.Dot:
			b.WriteByte('.')
		default:
			return b.String()
		}
	}
	return b.String()
}

// ContainsClass performs a bounded scan of r for a type declaration of
// the given simple name: `class Foo`, `interface Foo`, `enum Foo`, or
// `@interface Foo`. It is used as a fast path for declaration
// navigation before any compilation is attempted.
func ContainsClass(r io.Reader, name string) bool {
	src, err := io.ReadAll(r)
	if err != nil {
		return false
	}
	return ContainsClassString(string(src), name)
}

// ContainsClassString is ContainsClass over an in-memory string.
func ContainsClassString(src, name string) bool {
	s := token.NewScanner("", src)
	prevDecl := false
	for s.Scan() {
		t := s.Token()
		if t.IsComment() {
			continue
		}
		if prevDecl && t.Type == token.Ident && t.Text == name {
			return true
		}
		prevDecl = t.Type == token.Keyword &&
			(t.Text == "class" || t.Text == "interface" || t.Text == "enum")
	}
	return false
}

// FileName returns the final path segment of a file URI or path.
func FileName(uri string) string {
	trimmed := strings.TrimPrefix(uri, "file://")
	if i := strings.LastIndexByte(trimmed, '/'); i >= 0 {
		return trimmed[i+1:]
	}
	return trimmed
}

// LastName returns the segment of a qualified name after the final dot.
func LastName(qualified string) string {
	if i := strings.LastIndexByte(qualified, '.'); i >= 0 {
		return qualified[i+1:]
	}
	return qualified
}

// MostName returns everything before the final dot of a qualified name,
// or "" if the name has no dot.
func MostName(qualified string) string {
	if i := strings.LastIndexByte(qualified, '.'); i >= 0 {
		return qualified[:i]
	}
	return ""
}

// MatchesPartialName reports whether candidate starts with prefix,
// case-sensitively. An empty prefix matches everything.
func MatchesPartialName(candidate, prefix string) bool {
	return strings.HasPrefix(candidate, prefix)
}
