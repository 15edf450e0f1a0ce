// Copyright ©️ OFS contributors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package worktree

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ofs-vcs/ofs/internal/ofs/hashutil"
	"github.com/ofs-vcs/ofs/internal/ofs/ignore"
)

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
}

func TestScanWorkingTreeReturnsSortedRelativePaths(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "b.txt"), "b")
	writeFile(t, filepath.Join(root, "a.txt"), "a")
	writeFile(t, filepath.Join(root, "sub", "c.txt"), "c")

	m := ignore.NewMatcher(nil)
	paths, err := ScanWorkingTree(root, m)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt", "b.txt", "sub/c.txt"}, paths)
}

func TestScanWorkingTreeSkipsIgnoredDirs(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "keep.txt"), "k")
	writeFile(t, filepath.Join(root, ".ofs", "HEAD"), "ref: refs/heads/main\n")
	writeFile(t, filepath.Join(root, ".ofs", "objects", "ab", "cdef"), "blob")

	m, err := ignore.LoadMatcher(root)
	require.NoError(t, err)
	paths, err := ScanWorkingTree(root, m)
	require.NoError(t, err)
	assert.Equal(t, []string{"keep.txt"}, paths)
}

func TestScanWorkingTreeSkipsIgnoredFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "keep.txt"), "k")
	writeFile(t, filepath.Join(root, "scratch.tmp"), "t")

	m := ignore.NewMatcher(ignore.DefaultPatterns())
	paths, err := ScanWorkingTree(root, m)
	require.NoError(t, err)
	assert.Equal(t, []string{"keep.txt"}, paths)
}

func TestHasFileChangedDetectsContentChange(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "a.txt")
	writeFile(t, path, "original")
	hash := hashutil.HashBytes([]byte("original"))

	assert.False(t, HasFileChanged(path, hash))

	writeFile(t, path, "changed")
	assert.True(t, HasFileChanged(path, hash))
}

func TestHasFileChangedMissingFileCountsAsChanged(t *testing.T) {
	assert.True(t, HasFileChanged(filepath.Join(t.TempDir(), "nope.txt"), "anyhash"))
}
