// Copyright © 2025 The javals authors

package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scanAll(src string) []Token {
	return NewScanner("test.java", src).All()
}

func types(toks []Token) []Type {
	var ts []Type
	for _, t := range toks {
		ts = append(ts, t.Type)
	}
	return ts
}

func TestScanBasic(t *testing.T) {
	toks := scanAll("package com.example;")
	require.Len(t, toks, 5)
	assert.Equal(t, []Type{Keyword, Ident, Dot, Ident, Semi}, types(toks))
	assert.Equal(t, "package", toks[0].Text)
	assert.Equal(t, "com", toks[1].Text)
	assert.Equal(t, 1, toks[0].Line)
	assert.Equal(t, 1, toks[0].Col)
	assert.Equal(t, 9, toks[1].Col)
}

func TestScanPositions(t *testing.T) {
	src := "class A {\n    int f;\n}"
	toks := scanAll(src)
	// "int" starts on line 2, column 5.
	var intTok Token
	for _, tok := range toks {
		if tok.Text == "int" {
			intTok = tok
		}
	}
	require.Equal(t, Keyword, intTok.Type)
	assert.Equal(t, 2, intTok.Line)
	assert.Equal(t, 5, intTok.Col)
	assert.Equal(t, src[intTok.Offset:intTok.End()], "int")
}

func TestScanLiterals(t *testing.T) {
	t.Run("string", func(t *testing.T) {
		toks := scanAll(`"abc \" def"`)
		require.Len(t, toks, 1)
		assert.Equal(t, StringLit, toks[0].Type)
		assert.Equal(t, `"abc \" def"`, toks[0].Text)
	})

	t.Run("char", func(t *testing.T) {
		toks := scanAll(`'\''`)
		require.Len(t, toks, 1)
		assert.Equal(t, CharLit, toks[0].Type)
	})

	t.Run("text block", func(t *testing.T) {
		toks := scanAll("\"\"\"\nhello \"quoted\"\n\"\"\"")
		require.Len(t, toks, 1)
		assert.Equal(t, TextBlock, toks[0].Type)
	})

	t.Run("numbers", func(t *testing.T) {
		toks := scanAll("0 42L 0xFF 3.14 1e9 2.5f")
		require.Len(t, toks, 6)
		assert.Equal(t, IntLit, toks[0].Type)
		assert.Equal(t, IntLit, toks[1].Type)
		assert.Equal(t, IntLit, toks[2].Type)
		assert.Equal(t, FloatLit, toks[3].Type)
		assert.Equal(t, FloatLit, toks[4].Type)
		assert.Equal(t, FloatLit, toks[5].Type)
	})

	t.Run("unterminated string is illegal but consumed", func(t *testing.T) {
		toks := scanAll("\"oops\nint x;")
		require.NotEmpty(t, toks)
		assert.Equal(t, Illegal, toks[0].Type)
		// Scanning continues on the next line.
		assert.Equal(t, "int", toks[1].Text)
	})
}

func TestScanComments(t *testing.T) {
	toks := scanAll("// line\n/* block\n spans */ x")
	require.Len(t, toks, 3)
	assert.Equal(t, LineComment, toks[0].Type)
	assert.Equal(t, BlockComment, toks[1].Type)
	assert.Equal(t, Ident, toks[2].Type)
	assert.Equal(t, 3, toks[2].Line)
}

func TestScanPunctuation(t *testing.T) {
	toks := scanAll("a.b(c[0], d::e) -> x ? y : z")
	ts := types(toks)
	assert.Contains(t, ts, Dot)
	assert.Contains(t, ts, ColonColon)
	assert.Contains(t, ts, Arrow)
	assert.Contains(t, ts, Question)
	assert.Contains(t, ts, Colon)
}

func TestScanKeywords(t *testing.T) {
	for _, word := range []string{"class", "interface", "enum", "static", "import"} {
		assert.True(t, IsKeyword(word), word)
	}
	assert.False(t, IsKeyword("String"))
	assert.False(t, IsKeyword("record"))
}
