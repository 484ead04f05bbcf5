// Copyright © 2025 The javals authors

package prune

import (
	"strings"
	"testing"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javakit/javals/parser"
)

// assertPruned compares pruned output to the expected text and renders
// a unified diff on mismatch.
func assertPruned(t *testing.T, expected, got string) {
	t.Helper()
	if expected == got {
		return
	}
	diff, _ := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(expected),
		B:        difflib.SplitLines(got),
		FromFile: "expected",
		ToFile:   "pruned",
		Context:  3,
	})
	t.Fatalf("prune mismatch:\n%s", diff)
}

// erased blanks the given substring occurrences in src, preserving
// newlines, to build expected fixtures without counting spaces.
func erased(src string, parts ...string) string {
	for _, part := range parts {
		blank := strings.Map(func(r rune) rune {
			if r == '\n' {
				return '\n'
			}
			return ' '
		}, part)
		src = strings.Replace(src, part, blank, 1)
	}
	return src
}

const pruneMethods = `class PruneMethods {
    void keep() {
        int x = 1;
        x
    }

    void erase() {
        int y = 2;
    }
}
`

func TestPruneMethods(t *testing.T) {
	tree := parser.Parse("PruneMethods.java", pruneMethods)
	got := AroundCursor(tree, 4, 10)
	want := erased(pruneMethods, "int y = 2;")
	assertPruned(t, want, got)
}

const pruneToEndOfBlock = `class PruneToEndOfBlock {
    void test() {
        int a = 1;
        a
        int b = 2;
        int c = 3;
    }
}
`

func TestPruneToEndOfBlock(t *testing.T) {
	tree := parser.Parse("PruneToEndOfBlock.java", pruneToEndOfBlock)
	got := AroundCursor(tree, 4, 10)
	want := erased(pruneToEndOfBlock, "int b = 2;", "int c = 3;")
	assertPruned(t, want, got)
}

const pruneMiddle = `class PruneMiddle {
    void test() {
        int a = 1;
        int b = 2;
        b
        int c = 3;
        int d = 4;
    }
}
`

func TestPruneMiddle(t *testing.T) {
	tree := parser.Parse("PruneMiddle.java", pruneMiddle)
	got := AroundCursor(tree, 5, 10)
	want := erased(pruneMiddle, "int c = 3;", "int d = 4;")
	assertPruned(t, want, got)
}

const pruneDot = `class PruneDot {
    void test() {
        java.nio.file.Files.
    }

    void other() {
        int y = 1;
    }
}
`

func TestPruneDot(t *testing.T) {
	tree := parser.Parse("PruneDot.java", pruneDot)
	// Cursor immediately after the trailing dot.
	got := AroundCursor(tree, 3, 29)
	want := erased(pruneDot, "int y = 1;")
	assertPruned(t, want, got)
	// The member-access receiver chain is intact.
	assert.Contains(t, got, "java.nio.file.Files.")
}

const pruneWords = `class PruneWords {
    void word() {
        int word = word + other;
    }
}
`

func TestPruneWords(t *testing.T) {
	tree := parser.Parse("PruneWords.java", pruneWords)
	got := ToWord(tree, "word")
	assert.Len(t, got, len(pruneWords))
	// Only the literal word survives.
	for _, field := range strings.Fields(got) {
		assert.Equal(t, "word", field)
	}
	assert.Equal(t, 3, strings.Count(got, "word"))
}

func TestPruneKeepsClassSkeleton(t *testing.T) {
	tree := parser.Parse("PruneMethods.java", pruneMethods)
	got := AroundCursor(tree, 4, 10)
	// Signatures and braces of sibling methods survive so the
	// compiler still sees the member structure.
	assert.Contains(t, got, "void erase() {")
	assert.Contains(t, got, "class PruneMethods {")
}

func TestPruneProperties(t *testing.T) {
	srcs := []string{
		pruneMethods, pruneToEndOfBlock, pruneMiddle, pruneDot,
		"class A {}\n",
		"package p;\nimport java.util.List;\nclass A { void m() { m(); } }\n",
	}
	for _, src := range srcs {
		tree := parser.Parse("T.java", src)
		for line := 1; line <= strings.Count(src, "\n"); line++ {
			got := AroundCursor(tree, line, 5)
			require.Len(t, got, len(src), "length must not change")
			requireSameNewlines(t, src, got)
		}
	}
}

func requireSameNewlines(t *testing.T, a, b string) {
	t.Helper()
	for i := 0; i < len(a); i++ {
		if (a[i] == '\n') != (b[i] == '\n') {
			t.Fatalf("newline mismatch at byte %d", i)
		}
	}
}

func TestPruneStringContentsBlanked(t *testing.T) {
	src := "class A {\n    void a() {\n        x\n    }\n    void b() {\n        String s = \"keep } brace\";\n    }\n}\n"
	tree := parser.Parse("A.java", src)
	got := AroundCursor(tree, 3, 10)
	// The string in the pruned method is gone, and its braces with it.
	assert.NotContains(t, got, "keep } brace")
	assert.Len(t, got, len(src))
}
