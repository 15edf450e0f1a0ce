// Copyright ©️ OFS contributors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package repo

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ofs-vcs/ofs/internal/ofs/oerrors"
)

func TestInitCreatesExpectedLayout(t *testing.T) {
	dir := t.TempDir()
	r, err := Init(dir, InitOptions{Author: "alice", Email: "alice@example.com"})
	require.NoError(t, err)
	defer r.Close()

	for _, p := range []string{"objects", filepath.Join("refs", "heads"), "commits", "HEAD", "index.json", "config.json"} {
		_, statErr := os.Stat(filepath.Join(dir, DirName, p))
		assert.NoErrorf(t, statErr, "expected %s to exist", p)
	}
	assert.Equal(t, "alice", r.Config.Author)
}

func TestInitFailsWhenAlreadyInitialized(t *testing.T) {
	dir := t.TempDir()
	r, err := Init(dir, InitOptions{})
	require.NoError(t, err)
	r.Close()

	_, err = Init(dir, InitOptions{})
	assert.ErrorIs(t, err, oerrors.ErrRepositoryExists)
}

func TestOpenMissingRepositoryFails(t *testing.T) {
	_, err := Open(t.TempDir())
	assert.ErrorIs(t, err, oerrors.ErrRepositoryNotInitialized)
}

func TestOpenLoadsExistingRepository(t *testing.T) {
	dir := t.TempDir()
	r, err := Init(dir, InitOptions{Author: "bob", Email: "bob@example.com"})
	require.NoError(t, err)
	r.Close()

	reopened, err := Open(dir)
	require.NoError(t, err)
	defer reopened.Close()
	assert.Equal(t, "bob", reopened.Config.Author)
	assert.Equal(t, dir, reopened.WorkDir)
}

func TestInitRemovesPartialDirOnFailure(t *testing.T) {
	dir := t.TempDir()
	ofs := filepath.Join(dir, DirName)
	require.NoError(t, os.MkdirAll(filepath.Join(ofs, "objects"), 0o755))

	// make HEAD's would-be parent path unwritable by occupying it with a file
	require.NoError(t, os.Remove(filepath.Join(ofs, "objects")))
	require.NoError(t, os.MkdirAll(ofs, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(ofs, "objects"), []byte("blocker"), 0o644))

	_, err := Init(dir, InitOptions{})
	require.Error(t, err)
	_, statErr := os.Stat(ofs)
	assert.True(t, os.IsNotExist(statErr), "partial .ofs dir should have been removed")
}

func TestIndexPathAndCommitsDir(t *testing.T) {
	dir := t.TempDir()
	r, err := Init(dir, InitOptions{})
	require.NoError(t, err)
	defer r.Close()

	assert.Equal(t, filepath.Join(dir, DirName, "index.json"), r.IndexPath())
	assert.Equal(t, filepath.Join(dir, DirName, "commits"), r.CommitsDir())
}
