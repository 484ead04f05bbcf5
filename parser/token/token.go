// Copyright © 2025 The javals authors

// Package token scans Java source text into tokens with precise byte
// offsets and 1-based line/column positions. The scanner is error
// tolerant: malformed input produces Illegal tokens, never a panic.
package token

import "fmt"

// Token is a single lexical element of a Java source file.
type Token struct {
	Type   Type
	Text   string
	Offset int // byte offset of the first byte of the token
	Line   int // 1-based line of the first byte
	Col    int // 1-based column of the first byte
}

// End returns the byte offset just past the token text.
func (t Token) End() int {
	return t.Offset + len(t.Text)
}

// Type classifies a token.
type Type uint

const (
	Illegal Type = iota
	EOF

	Ident
	Keyword

	IntLit
	FloatLit
	CharLit
	StringLit
	TextBlock

	LineComment
	BlockComment

	// Punctuation the structural parser cares about individually.
	LParen
	RParen
	LBrace
	RBrace
	LBracket
	RBracket
	Semi
	Comma
	Dot
	ColonColon
	At
	Question
	Colon
	Arrow

	// Everything else (operators, generics angle brackets, ...).
	Operator

	numTypes
)

func (typ Type) String() string {
	typeStrings := [numTypes]string{
		Illegal:      "illegal",
		EOF:          "EOF",
		Ident:        "identifier",
		Keyword:      "keyword",
		IntLit:       "int",
		FloatLit:     "float",
		CharLit:      "char",
		StringLit:    "string",
		TextBlock:    "text-block",
		LineComment:  "//",
		BlockComment: "/*",
		LParen:       "(",
		RParen:       ")",
		LBrace:       "{",
		RBrace:       "}",
		LBracket:     "[",
		RBracket:     "]",
		Semi:         ";",
		Comma:        ",",
		Dot:          ".",
		ColonColon:   "::",
		At:           "@",
		Question:     "?",
		Colon:        ":",
		Arrow:        "->",
	}
	if typ >= numTypes {
		return typeStrings[Illegal]
	}
	return typeStrings[typ]
}

// IsComment reports whether the token is a line or block comment.
func (t Token) IsComment() bool {
	return t.Type == LineComment || t.Type == BlockComment
}

// IsLiteral reports whether the token is a literal of any form.
func (t Token) IsLiteral() bool {
	switch t.Type {
	case IntLit, FloatLit, CharLit, StringLit, TextBlock:
		return true
	}
	return false
}

// Location is a human-readable source position.
type Location struct {
	File string
	Line int
	Col  int
}

func (loc Location) String() string {
	switch {
	case loc.Line == 0:
		return loc.File
	case loc.Col == 0:
		return fmt.Sprintf("%s:%d", loc.File, loc.Line)
	default:
		return fmt.Sprintf("%s:%d:%d", loc.File, loc.Line, loc.Col)
	}
}

var keywords = map[string]bool{
	"abstract": true, "assert": true, "boolean": true, "break": true,
	"byte": true, "case": true, "catch": true, "char": true,
	"class": true, "const": true, "continue": true, "default": true,
	"do": true, "double": true, "else": true, "enum": true,
	"extends": true, "final": true, "finally": true, "float": true,
	"for": true, "goto": true, "if": true, "implements": true,
	"import": true, "instanceof": true, "int": true, "interface": true,
	"long": true, "native": true, "new": true, "package": true,
	"private": true, "protected": true, "public": true, "return": true,
	"short": true, "static": true, "strictfp": true, "super": true,
	"switch": true, "synchronized": true, "this": true, "throw": true,
	"throws": true, "transient": true, "try": true, "void": true,
	"volatile": true, "while": true,
}

// IsKeyword reports whether word is a Java reserved word.
func IsKeyword(word string) bool {
	return keywords[word]
}
