// Copyright ©️ OFS contributors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package repoconfig

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthorInfoFallsBackToUnknown(t *testing.T) {
	t.Setenv("USER", "")
	t.Setenv("USERNAME", "")
	t.Setenv("EMAIL", "")

	author, email := AuthorInfo()
	assert.Equal(t, "unknown", author)
	assert.Equal(t, "unknown@localhost", email)
}

func TestAuthorInfoPrefersUserOverUsername(t *testing.T) {
	t.Setenv("USER", "alice")
	t.Setenv("USERNAME", "alice-fallback")
	t.Setenv("EMAIL", "")

	author, email := AuthorInfo()
	assert.Equal(t, "alice", author)
	assert.Equal(t, "alice@localhost", email)
}

func TestAuthorInfoUsesEmailEnv(t *testing.T) {
	t.Setenv("USER", "alice")
	t.Setenv("EMAIL", "alice@example.com")

	_, email := AuthorInfo()
	assert.Equal(t, "alice@example.com", email)
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	c := Default("alice", "alice@example.com")
	require.NoError(t, Save(c, dir))

	loaded, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, Version, loaded.Version)
	assert.Equal(t, "alice", loaded.Author)
	assert.Equal(t, "alice@example.com", loaded.Email)
}

func TestLoadMissingFileReturnsError(t *testing.T) {
	_, err := Load(t.TempDir())
	assert.Error(t, err)
}
