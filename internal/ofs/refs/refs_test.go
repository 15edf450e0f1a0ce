// Copyright ©️ OFS contributors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package refs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitHeadWritesSymbolicPointer(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, InitHead(dir, ""))

	contents, ok, err := ReadHEAD(dir)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "ref: refs/heads/main", contents)

	detached, err := IsDetached(dir)
	require.NoError(t, err)
	assert.False(t, detached)
}

func TestReadHEADMissingIsNotFound(t *testing.T) {
	_, ok, err := ReadHEAD(t.TempDir())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestResolveHEADFollowsSymbolicRef(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, InitHead(dir, "main"))
	require.NoError(t, UpdateHead(dir, "003", false))

	resolved, ok, err := ResolveHEAD(dir)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "003", resolved)
}

func TestResolveHEADEmptyBranchRefIsNotFound(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, InitHead(dir, "main"))

	_, ok, err := ResolveHEAD(dir)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestUpdateHeadDetachedOverwritesHEADDirectly(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, InitHead(dir, "main"))
	require.NoError(t, UpdateHead(dir, "003", false))

	require.NoError(t, UpdateHead(dir, "002", true))

	detached, err := IsDetached(dir)
	require.NoError(t, err)
	assert.True(t, detached)

	resolved, ok, err := ResolveHEAD(dir)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "002", resolved)

	// the branch ref itself must be untouched by a detached update
	branchData, err := os.ReadFile(filepath.Join(dir, "refs", "heads", "main"))
	require.NoError(t, err)
	assert.Equal(t, "003\n", string(branchData))
}

func TestUpdateHeadSymbolicNeverChangesHEADItself(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, InitHead(dir, "main"))
	require.NoError(t, UpdateHead(dir, "001", false))

	headData, err := os.ReadFile(filepath.Join(dir, "HEAD"))
	require.NoError(t, err)
	assert.Equal(t, "ref: refs/heads/main\n", string(headData))
}

func TestUpdateRefWritesTrailingNewline(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, UpdateRef(dir, "refs/heads/main", "007"))

	data, err := os.ReadFile(filepath.Join(dir, "refs", "heads", "main"))
	require.NoError(t, err)
	assert.Equal(t, "007\n", string(data))
}
