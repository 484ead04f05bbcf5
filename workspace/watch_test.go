// Copyright © 2025 The javals authors

package workspace

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcher(t *testing.T) {
	dir := t.TempDir()
	w := New()
	require.NoError(t, w.SetWorkspaceRoots([]string{dir}))

	wt, err := Watch(w)
	require.NoError(t, err)
	defer wt.Close()

	path := filepath.Join(dir, "Created.java")
	require.NoError(t, os.WriteFile(path, []byte("package p;\nclass Created {}\n"), 0o644))

	assert.Eventually(t, func() bool {
		for _, f := range w.All() {
			if f == path {
				return true
			}
		}
		return false
	}, 5*time.Second, 50*time.Millisecond)
}
