// Copyright ©️ OFS contributors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package hashutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashBytesEmptyBuffer(t *testing.T) {
	assert.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", HashBytes(nil))
}

func TestHashBytesKnownValue(t *testing.T) {
	assert.Equal(t, "f2ca1bb6c7e907d06dafe4687e579fce76b37e4e93b7605022da52e6ccc26fd2", HashBytes([]byte("test\n")))
}

func TestHashFileMatchesHashBytes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.txt")
	data := []byte("hi\n")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	got, err := HashFile(path)
	require.NoError(t, err)
	assert.Equal(t, HashBytes(data), got)
}

func TestValidFormat(t *testing.T) {
	assert.True(t, ValidFormat("e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"))
	assert.False(t, ValidFormat("not-a-hash"))
	assert.False(t, ValidFormat(""))
}

func TestVerifyHash(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.txt")
	data := []byte("hi\n")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	ok, err := VerifyHash(path, HashBytes(data))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyHash(path, "0000000000000000000000000000000000000000000000000000000000000000")
	require.NoError(t, err)
	assert.False(t, ok)
}
