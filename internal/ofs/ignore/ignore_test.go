// Copyright ©️ OFS contributors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package ignore

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSkipsCommentsAndBlankLines(t *testing.T) {
	_, ok := Parse("# a comment")
	assert.False(t, ok)
	_, ok = Parse("   ")
	assert.False(t, ok)
	p, ok := Parse("*.log")
	require.True(t, ok)
	assert.Equal(t, "*.log", p.glob)
}

func TestParseNegationAndDirOnly(t *testing.T) {
	p, ok := Parse("!keep.log")
	require.True(t, ok)
	assert.True(t, p.negate)
	assert.Equal(t, "keep.log", p.glob)

	p, ok = Parse("build/")
	require.True(t, ok)
	assert.True(t, p.dirOnly)
	assert.Equal(t, "build", p.glob)
}

func TestParsePatternsReadsMultipleLines(t *testing.T) {
	r := strings.NewReader("*.log\n# comment\n\nbuild/\n")
	patterns, err := ParsePatterns(r)
	require.NoError(t, err)
	require.Len(t, patterns, 2)
	assert.Equal(t, "*.log", patterns[0].glob)
	assert.Equal(t, "build", patterns[1].glob)
}

func TestDefaultPatternsIgnoreOfsDir(t *testing.T) {
	m := NewMatcher(DefaultPatterns())
	assert.True(t, m.Match(".ofs", true))
	assert.True(t, m.Match(".ofs/objects/ab/cd", false))
	assert.True(t, m.Match("scratch.tmp", false))
	assert.False(t, m.Match("main.go", false))
}

func TestMatchFoldIsOrderSensitive(t *testing.T) {
	patterns, ok1 := Parse("*.log")
	p2, ok2 := Parse("!important.log")
	require.True(t, ok1)
	require.True(t, ok2)
	m := NewMatcher([]Pattern{patterns, p2})

	assert.True(t, m.Match("debug.log", false))
	assert.False(t, m.Match("important.log", false))
}

func TestMatchLaterPatternOverridesEarlier(t *testing.T) {
	ignoreAll, _ := Parse("!special.log")
	reIgnore, _ := Parse("*.log")
	m := NewMatcher([]Pattern{ignoreAll, reIgnore})

	// reIgnore comes after the negation, so it wins the fold
	assert.True(t, m.Match("special.log", false))
}

func TestMatchAnyDepthPrefix(t *testing.T) {
	p, ok := Parse("**/node_modules")
	require.True(t, ok)
	m := NewMatcher([]Pattern{p})

	assert.True(t, m.Match("node_modules", true))
	assert.True(t, m.Match("a/b/node_modules", true))
}

func TestMatchDirOnlyPattern(t *testing.T) {
	p, ok := Parse("build/")
	require.True(t, ok)
	m := NewMatcher([]Pattern{p})

	assert.True(t, m.Match("build", true))
	assert.True(t, m.Match("build/output.bin", false))
	assert.False(t, m.Match("rebuild", true))
}

func TestLoadMatcherWithoutOfsignoreUsesDefaultsOnly(t *testing.T) {
	dir := t.TempDir()
	m, err := LoadMatcher(dir)
	require.NoError(t, err)
	assert.True(t, m.Match(".ofs", true))
	assert.False(t, m.Match("keep.txt", false))
}

func TestLoadMatcherAppendsOfsignorePatterns(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".ofsignore"), []byte("*.secret\n"), 0o644))

	m, err := LoadMatcher(dir)
	require.NoError(t, err)
	assert.True(t, m.Match("creds.secret", false))
	assert.True(t, m.Match(".ofs", true))
}
