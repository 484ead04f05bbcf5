// Copyright © 2025 The javals authors

package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPackageName(t *testing.T) {
	t.Run("simple", func(t *testing.T) {
		got := PackageName(strings.NewReader("package com.example.app;\n\nclass A {}"))
		assert.Equal(t, "com.example.app", got)
	})

	t.Run("no declaration", func(t *testing.T) {
		got := PackageName(strings.NewReader("class A {}"))
		assert.Equal(t, "", got)
	})

	t.Run("after comments", func(t *testing.T) {
		src := "// license\n/* more */\npackage org.demo;\n"
		assert.Equal(t, "org.demo", PackageNameString(src))
	})

	t.Run("after annotation", func(t *testing.T) {
		src := "@Deprecated\npackage legacy.stuff;\n"
		assert.Equal(t, "legacy.stuff", PackageNameString(src))
	})

	t.Run("default package file", func(t *testing.T) {
		assert.Equal(t, "", PackageNameString("import java.util.List;\nclass A {}"))
	})
}

func TestContainsClass(t *testing.T) {
	src := `package p;
// not class Missing
interface Shape {}
enum Color { RED }
class Painter {}
`
	for _, name := range []string{"Shape", "Color", "Painter"} {
		assert.True(t, ContainsClassString(src, name), name)
	}
	assert.False(t, ContainsClassString(src, "Missing"))
	assert.False(t, ContainsClassString(src, "RED"))
}

func TestNameSplitters(t *testing.T) {
	assert.Equal(t, "List", LastName("java.util.List"))
	assert.Equal(t, "java.util", MostName("java.util.List"))
	assert.Equal(t, "List", LastName("List"))
	assert.Equal(t, "", MostName("List"))
	assert.Equal(t, "Foo.java", FileName("file:///work/src/Foo.java"))
	assert.Equal(t, "Foo.java", FileName("/work/src/Foo.java"))
}

func TestMatchesPartialName(t *testing.T) {
	assert.True(t, MatchesPartialName("completeLocal", "comp"))
	assert.True(t, MatchesPartialName("completeLocal", ""))
	assert.False(t, MatchesPartialName("completeLocal", "Comp"))
	assert.False(t, MatchesPartialName("co", "comp"))
}

func TestParseHeader(t *testing.T) {
	t.Run("package and imports", func(t *testing.T) {
		src := `package com.example;

import java.util.List;
import static java.util.Collections.emptyList;
import java.io.*;

class A {}
`
		h := ParseHeader(src)
		assert.Equal(t, "com.example", h.Package)
		require.Len(t, h.Imports, 3)
		assert.Equal(t, Import{Name: "java.util.List"}, h.Imports[0])
		assert.Equal(t, Import{Static: true, Name: "java.util.Collections.emptyList"}, h.Imports[1])
		assert.Equal(t, Import{Name: "java.io.*"}, h.Imports[2])
		assert.True(t, h.Imports[2].OnDemand())
	})

	t.Run("no header", func(t *testing.T) {
		h := ParseHeader("class A {}")
		assert.Equal(t, "", h.Package)
		assert.Empty(t, h.Imports)
	})

	t.Run("covers", func(t *testing.T) {
		named := Import{Name: "java.util.List"}
		star := Import{Name: "java.util.*"}
		assert.True(t, named.Covers("java.util.List"))
		assert.False(t, named.Covers("java.util.Map"))
		assert.True(t, star.Covers("java.util.Map"))
		assert.False(t, star.Covers("java.io.File"))
	})
}

const treeSrc = `package p;

import java.util.List;

class Outer {
    int field = 1;

    void method(int arg) {
        int local = arg;
        if (local > 0) {
            local--;
        } else {
            local++;
        }
    }

    static class Nested {
        void inner() {}
    }
}
`

func TestParseStructure(t *testing.T) {
	tree := Parse("Outer.java", treeSrc)
	require.NotNil(t, tree.Root)

	var classes []*Node
	for _, c := range tree.Root.Children {
		if c.Kind == KindClass {
			classes = append(classes, c)
		}
	}
	require.Len(t, classes, 1)
	outer := classes[0]
	assert.Equal(t, "Outer", outer.Name)

	var names []string
	for _, m := range outer.Children {
		names = append(names, m.Kind.String()+":"+m.Name)
	}
	assert.Contains(t, names, "field:field")
	assert.Contains(t, names, "method:method")
	assert.Contains(t, names, "class:Nested")
	assert.True(t, tree.HasTypeDecl())
	assert.True(t, tree.DeclaresPackage())
	assert.Equal(t, "Outer", tree.SimpleFileName())
}

func TestNodeAt(t *testing.T) {
	tree := Parse("Outer.java", treeSrc)

	// Inside method body, line 9 "int local = arg;".
	off := tree.OffsetAt(9, 13)
	n := tree.NodeAt(off)
	require.NotNil(t, n)
	assert.Equal(t, KindStatement, n.Kind)

	m := tree.Enclosing(off, KindMethod)
	require.NotNil(t, m)
	assert.Equal(t, "method", m.Name)

	c := tree.Enclosing(off, KindClass)
	require.NotNil(t, c)
	assert.Equal(t, "Outer", c.Name)
}

func TestPositions(t *testing.T) {
	tree := Parse("A.java", "ab\ncd\n")
	assert.Equal(t, 0, tree.OffsetAt(1, 1))
	assert.Equal(t, 3, tree.OffsetAt(2, 1))
	l, c := tree.PositionAt(4)
	assert.Equal(t, 2, l)
	assert.Equal(t, 2, c)
	// Columns clamp to line end.
	assert.Equal(t, 2, tree.OffsetAt(1, 99))
}

func TestContext(t *testing.T) {
	t.Run("identifier prefix in method", func(t *testing.T) {
		src := "class A {\n    void m() {\n        comp\n    }\n}\n"
		tree := Parse("A.java", src)
		cc := tree.Context(3, 13)
		assert.Equal(t, "comp", cc.Partial)
		assert.True(t, cc.InsideClass)
		assert.True(t, cc.InsideMethod)
		assert.False(t, cc.IsMember)
	})

	t.Run("member select", func(t *testing.T) {
		src := "class A {\n    void m() {\n        \"abc\".\n    }\n}\n"
		tree := Parse("A.java", src)
		cc := tree.Context(3, 15)
		assert.True(t, cc.IsMember)
		assert.False(t, cc.IsReference)
		assert.Equal(t, "", cc.Partial)
	})

	t.Run("member reference", func(t *testing.T) {
		src := "class A {\n    void m() {\n        String::\n    }\n}\n"
		tree := Parse("A.java", src)
		cc := tree.Context(3, 17)
		assert.True(t, cc.IsMember)
		assert.True(t, cc.IsReference)
	})

	t.Run("annotation", func(t *testing.T) {
		src := "class A {\n    @Over\n    void m() {}\n}\n"
		tree := Parse("A.java", src)
		cc := tree.Context(2, 10)
		assert.True(t, cc.IsAnnotation)
		assert.Equal(t, "Over", cc.Partial)
	})

	t.Run("case label", func(t *testing.T) {
		src := "class A {\n    void m(Color c) {\n        switch (c) {\n            case \n        }\n    }\n}\n"
		tree := Parse("A.java", src)
		cc := tree.Context(4, 18)
		assert.True(t, cc.IsCase)
	})

	t.Run("import", func(t *testing.T) {
		src := "import java.ut\n"
		tree := Parse("A.java", src)
		cc := tree.Context(1, 15)
		assert.True(t, cc.IsImport)
		path, partial := tree.ImportPath(1, 15)
		assert.Equal(t, "java", path)
		assert.Equal(t, "ut", partial)
	})

	t.Run("top level", func(t *testing.T) {
		tree := Parse("A.java", "cla\n")
		cc := tree.Context(1, 4)
		assert.Equal(t, "cla", cc.Partial)
		assert.False(t, cc.InsideClass)
		assert.False(t, cc.InsideMethod)
	})
}

func TestExprBeforeCursor(t *testing.T) {
	parseAt := func(src string, line, col int) Expr {
		tree := Parse("A.java", src)
		e, ok := tree.ExprBeforeCursor(line, col)
		require.True(t, ok, "no expression at %d:%d", line, col)
		return e
	}

	t.Run("identifier", func(t *testing.T) {
		src := "class A { void m() { foo } }"
		e := parseAt(src, 1, 25)
		id, ok := e.(*Ident)
		require.True(t, ok, "got %T", e)
		assert.Equal(t, "foo", id.Name)
	})

	t.Run("member chain", func(t *testing.T) {
		src := "class A { void m() { a.b.c } }"
		e := parseAt(src, 1, 27)
		sel, ok := e.(*Select)
		require.True(t, ok, "got %T", e)
		assert.Equal(t, "c", sel.Name)
		inner, ok := sel.X.(*Select)
		require.True(t, ok)
		assert.Equal(t, "b", inner.Name)
	})

	t.Run("receiver of trailing dot", func(t *testing.T) {
		src := "class A { void m() { \"abc\". } }"
		e := parseAt(src, 1, 28)
		lit, ok := e.(*Literal)
		require.True(t, ok, "got %T", e)
		assert.Equal(t, `"abc"`, lit.Tok.Text)
	})

	t.Run("invocation receiver", func(t *testing.T) {
		src := "class A { void m() { x.get(1). } }"
		e := parseAt(src, 1, 31)
		inv, ok := e.(*Invoke)
		require.True(t, ok, "got %T", e)
		sel, ok := inv.Fun.(*Select)
		require.True(t, ok)
		assert.Equal(t, "get", sel.Name)
		require.Len(t, inv.Args, 1)
	})

	t.Run("array access", func(t *testing.T) {
		src := "class A { void m() { arr[i]. } }"
		e := parseAt(src, 1, 29)
		idx, ok := e.(*Index)
		require.True(t, ok, "got %T", e)
		x, ok := idx.X.(*Ident)
		require.True(t, ok)
		assert.Equal(t, "arr", x.Name)
	})

	t.Run("parenthesized", func(t *testing.T) {
		src := "class A { void m() { (foo). } }"
		e := parseAt(src, 1, 28)
		par, ok := e.(*Paren)
		require.True(t, ok, "got %T", e)
		_, ok = par.X.(*Ident)
		assert.True(t, ok)
	})
}
