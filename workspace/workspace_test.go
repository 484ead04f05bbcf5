// Copyright © 2025 The javals authors

package workspace

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javakit/javals/lstest"
)

func newWorkspace(t *testing.T, files map[string]string, roots ...string) *Workspace {
	t.Helper()
	w := New(WithFs(lstest.MemFs(files)))
	require.NoError(t, w.SetWorkspaceRoots(roots))
	return w
}

func TestSetWorkspaceRoots(t *testing.T) {
	files := map[string]string{
		"/work/src/com/example/A.java":      "package com.example;\nclass A {}",
		"/work/src/com/example/B.java":      "package com.example;\nclass B {}",
		"/work/src/module-info.java":        "module work {}",
		"/work/src/com/example/notes.txt":   "not java",
		"/other/src/org/other/Other.java":   "package org.other;\nclass Other {}",
		"/work/test/com/example/ATest.java": "package com.example;\nclass ATest {}",
	}

	t.Run("walk indexes java sources only", func(t *testing.T) {
		w := newWorkspace(t, files, "/work")
		all := w.All()
		assert.Contains(t, all, "/work/src/com/example/A.java")
		assert.Contains(t, all, "/work/src/com/example/B.java")
		assert.Contains(t, all, "/work/test/com/example/ATest.java")
		assert.NotContains(t, all, "/work/src/module-info.java")
		assert.NotContains(t, all, "/work/src/com/example/notes.txt")
		assert.NotContains(t, all, "/other/src/org/other/Other.java")
	})

	t.Run("removing a root drops its entries", func(t *testing.T) {
		w := newWorkspace(t, files, "/work", "/other")
		require.Contains(t, w.All(), "/other/src/org/other/Other.java")

		require.NoError(t, w.SetWorkspaceRoots([]string{"/work"}))
		assert.NotContains(t, w.All(), "/other/src/org/other/Other.java")
		assert.Contains(t, w.All(), "/work/src/com/example/A.java")
	})

	t.Run("contains is true for every reachable source", func(t *testing.T) {
		w := newWorkspace(t, files, "/work")
		assert.True(t, w.Contains("/work/src/com/example/A.java"))
		assert.False(t, w.Contains("/work/src/module-info.java"))
		assert.False(t, w.Contains("/work/src/com/example/notes.txt"))
	})
}

func TestListByPackage(t *testing.T) {
	w := newWorkspace(t, map[string]string{
		"/work/src/a/One.java":   "package a;\nclass One {}",
		"/work/src/a/Two.java":   "package a;\nclass Two {}",
		"/work/src/b/Three.java": "package b;\nclass Three {}",
	}, "/work")

	assert.Equal(t, []string{"/work/src/a/One.java", "/work/src/a/Two.java"}, w.List("a"))
	assert.Equal(t, []string{"/work/src/b/Three.java"}, w.List("b"))
	assert.Empty(t, w.List("c"))
}

func TestSourceRoots(t *testing.T) {
	t.Run("package chain matches", func(t *testing.T) {
		w := newWorkspace(t, map[string]string{
			"/work/src/com/example/A.java": "package com.example;\nclass A {}",
		}, "/work")
		assert.Equal(t, []string{"/work/src"}, w.SourceRoots())
	})

	t.Run("mismatched chain is silently dropped", func(t *testing.T) {
		w := newWorkspace(t, map[string]string{
			"/work/misplaced/A.java": "package com.example;\nclass A {}",
		}, "/work")
		assert.Empty(t, w.SourceRoots())
	})

	t.Run("default package root is the directory", func(t *testing.T) {
		w := newWorkspace(t, map[string]string{
			"/work/scratch/A.java": "class A {}",
		}, "/work")
		assert.Equal(t, []string{"/work/scratch"}, w.SourceRoots())
	})
}

func TestReadThrough(t *testing.T) {
	fs := lstest.MemFs(map[string]string{
		"/stray/Loose.java": "package stray;\nclass Loose {}",
	})
	w := New(WithFs(fs))

	// Never indexed: PackageName populates the index from disk.
	pkg, err := w.PackageName("/stray/Loose.java")
	require.NoError(t, err)
	assert.Equal(t, "stray", pkg)
	assert.Contains(t, w.All(), "/stray/Loose.java")

	_, err = w.PackageName("/stray/Missing.java")
	assert.Error(t, err)
	assert.NotContains(t, w.All(), "/stray/Missing.java")
}

func TestModified(t *testing.T) {
	fs := lstest.MemFs(map[string]string{
		"/work/A.java": "class A {}",
	})
	mod := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, lstest.Touch(fs, "/work/A.java", mod))

	w := New(WithFs(fs))
	got, err := w.Modified("/work/A.java")
	require.NoError(t, err)
	assert.Equal(t, mod, got)

	// An open document's in-memory instant wins.
	w.Open("file:///work/A.java", "class A { }", 1)
	got, err = w.Modified("/work/A.java")
	require.NoError(t, err)
	assert.True(t, got.After(mod))
}

func TestSuggestedPackageName(t *testing.T) {
	files := map[string]string{
		"/work/src/com/example/Existing.java": "package com.example;\nclass Existing {}",
	}

	t.Run("sibling donates its package", func(t *testing.T) {
		w := newWorkspace(t, files, "/work")
		got := w.SuggestedPackageName("/work/src/com/example/New.java")
		assert.Equal(t, "com.example", got)
	})

	t.Run("sub-directory extends the name", func(t *testing.T) {
		w := newWorkspace(t, files, "/work")
		got := w.SuggestedPackageName("/work/src/com/example/util/New.java")
		assert.Equal(t, "com.example.util", got)
	})

	t.Run("idempotent after writing the suggestion", func(t *testing.T) {
		w := newWorkspace(t, files, "/work")
		suggested := w.SuggestedPackageName("/work/src/com/example/New.java")
		require.NoError(t, lstest.WriteFiles(w.fs, map[string]string{
			"/work/src/com/example/New.java": "package " + suggested + ";\nclass New {}",
		}))
		w.ExternalCreate("/work/src/com/example/New.java")
		assert.Equal(t, suggested, w.SuggestedPackageName("/work/src/com/example/New.java"))
	})

	t.Run("all siblings in default package yields nothing", func(t *testing.T) {
		w := newWorkspace(t, map[string]string{
			"/work/scratch/Plain.java": "class Plain {}",
		}, "/work")
		assert.Equal(t, "", w.SuggestedPackageName("/work/scratch/New.java"))
	})
}

func TestOpenChangeClose(t *testing.T) {
	fs := lstest.MemFs(map[string]string{
		"/work/A.java": "class A {}\n",
	})
	w := New(WithFs(fs))
	uri := "file:///work/A.java"

	t.Run("contents follow the active document", func(t *testing.T) {
		w.Open(uri, "class A { int x; }\n", 1)
		got, err := w.Contents("/work/A.java")
		require.NoError(t, err)
		assert.Equal(t, "class A { int x; }\n", got)
		assert.Equal(t, int32(1), w.Version(uri))
		assert.Equal(t, []string{uri}, w.ActiveURIs())
	})

	t.Run("full replacement", func(t *testing.T) {
		w.Change(uri, 2, []Edit{{Text: "class A { int y; }\n"}})
		got, _ := w.Contents("/work/A.java")
		assert.Equal(t, "class A { int y; }\n", got)
	})

	t.Run("range patch", func(t *testing.T) {
		w.Change(uri, 3, []Edit{{
			Text:        "long",
			HasRange:    true,
			StartLine:   0,
			StartChar:   10,
			RangeLength: 3,
		}})
		got, _ := w.Contents("/work/A.java")
		assert.Equal(t, "class A { long y; }\n", got)
	})

	t.Run("stale version is dropped", func(t *testing.T) {
		before, _ := w.Contents("/work/A.java")
		w.Change(uri, 3, []Edit{{Text: "clobbered"}})
		w.Change(uri, 2, []Edit{{Text: "clobbered"}})
		after, _ := w.Contents("/work/A.java")
		assert.Equal(t, before, after)
		assert.Equal(t, int32(3), w.Version(uri))
	})

	t.Run("close restores disk contents", func(t *testing.T) {
		w.Close(uri)
		got, err := w.Contents("/work/A.java")
		require.NoError(t, err)
		assert.Equal(t, "class A {}\n", got)
		assert.Equal(t, int32(-1), w.Version(uri))
	})
}

func TestMultiLinePatch(t *testing.T) {
	fs := lstest.MemFs(map[string]string{"/work/A.java": ""})
	w := New(WithFs(fs))
	uri := "file:///work/A.java"
	w.Open(uri, "class A {\n    int x;\n}\n", 1)

	// Replace "int x;" with "String s;".
	w.Change(uri, 2, []Edit{{
		Text:        "String s;",
		HasRange:    true,
		StartLine:   1,
		StartChar:   4,
		RangeLength: 6,
	}})
	got, _ := w.Contents("/work/A.java")
	assert.Equal(t, "class A {\n    String s;\n}\n", got)
}

func TestExternalEvents(t *testing.T) {
	files := map[string]string{
		"/work/src/a/One.java": "package a;\nclass One {}",
	}
	w := newWorkspace(t, files, "/work")

	t.Run("create", func(t *testing.T) {
		require.NoError(t, lstest.WriteFiles(w.fs, map[string]string{
			"/work/src/a/Two.java": "package a;\nclass Two {}",
		}))
		w.ExternalCreate("/work/src/a/Two.java")
		assert.Contains(t, w.All(), "/work/src/a/Two.java")
	})

	t.Run("change refreshes the package name", func(t *testing.T) {
		require.NoError(t, lstest.WriteFiles(w.fs, map[string]string{
			"/work/src/a/Two.java": "package b;\nclass Two {}",
		}))
		w.ExternalChange("/work/src/a/Two.java")
		pkg, err := w.PackageName("/work/src/a/Two.java")
		require.NoError(t, err)
		assert.Equal(t, "b", pkg)
	})

	t.Run("delete", func(t *testing.T) {
		w.ExternalDelete("/work/src/a/Two.java")
		assert.NotContains(t, w.All(), "/work/src/a/Two.java")
	})
}

func TestFindDeclaringFile(t *testing.T) {
	w := newWorkspace(t, map[string]string{
		"/work/src/com/example/Foo.java":  "package com.example;\nclass Foo {}",
		"/work/src/com/example/Misc.java": "package com.example;\nclass Helper {}\ninterface Aux {}",
	}, "/work")

	t.Run("fast path by file name", func(t *testing.T) {
		f, ok := w.FindDeclaringFile("com.example.Foo")
		require.True(t, ok)
		assert.Equal(t, "/work/src/com/example/Foo.java", f)
	})

	t.Run("slow path scans the package", func(t *testing.T) {
		f, ok := w.FindDeclaringFile("com.example.Aux")
		require.True(t, ok)
		assert.Equal(t, "/work/src/com/example/Misc.java", f)
	})

	t.Run("missing class", func(t *testing.T) {
		_, ok := w.FindDeclaringFile("com.example.Nope")
		assert.False(t, ok)
	})
}

func TestURIHelpers(t *testing.T) {
	assert.Equal(t, "/a/B.java", PathOf("file:///a/B.java"))
	assert.Equal(t, "/a/B.java", PathOf("/a/B.java"))
	assert.Equal(t, "file:///a/B.java", URIOf("/a/B.java"))
}
