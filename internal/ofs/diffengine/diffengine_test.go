// Copyright ©️ OFS contributors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package diffengine

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnifiedDiffIdenticalTextsIsEmpty(t *testing.T) {
	assert.Equal(t, "", UnifiedDiff("a\nb\n", "a\nb\n", DefaultContext))
}

func TestUnifiedDiffSingleLineChange(t *testing.T) {
	out := UnifiedDiff("one\ntwo\nthree\n", "one\ntwo-changed\nthree\n", DefaultContext)
	assert.True(t, strings.HasPrefix(out, "@@ -1,3 +1,3 @@\n"))
	assert.Contains(t, out, " one\n")
	assert.Contains(t, out, "-two\n")
	assert.Contains(t, out, "+two-changed\n")
	assert.Contains(t, out, " three\n")
}

func TestUnifiedDiffAppendedLine(t *testing.T) {
	out := UnifiedDiff("a\n", "a\nb\n", DefaultContext)
	assert.Contains(t, out, "+b\n")
}

func TestUnifiedDiffSeparatesDistantHunks(t *testing.T) {
	var oldLines, newLines []string
	for i := 0; i < 20; i++ {
		oldLines = append(oldLines, "line")
		newLines = append(newLines, "line")
	}
	oldLines[0] = "changed-start"
	newLines[19] = "changed-end"
	oldText := strings.Join(oldLines, "\n") + "\n"
	newText := strings.Join(newLines, "\n") + "\n"

	out := UnifiedDiff(oldText, newText, 3)
	assert.Equal(t, 2, strings.Count(out, "@@ "))
}

func TestIsBinaryDetectsNulByte(t *testing.T) {
	assert.True(t, IsBinary([]byte{0x00, 0x01, 0x02}))
	assert.False(t, IsBinary([]byte("plain text\n")))
}

func TestDecodeUTF8ReplacesInvalidSequences(t *testing.T) {
	out := DecodeUTF8([]byte{0xff, 0xfe})
	assert.Contains(t, out, "�")
}

func TestRenderFileDiffIdenticalSidesYieldsNoChange(t *testing.T) {
	_, ok := RenderFileDiff(StatusModified,
		Side{Path: "a.txt", Exists: true, Data: []byte("same\n")},
		Side{Path: "a.txt", Exists: true, Data: []byte("same\n")})
	assert.False(t, ok)
}

func TestRenderFileDiffNewFile(t *testing.T) {
	text, ok := RenderFileDiff(StatusNew,
		Side{Path: "a.txt", Exists: false},
		Side{Path: "a.txt", Exists: true, Data: []byte("hello\n")})
	assert.True(t, ok)
	assert.Contains(t, text, "new file: a.txt")
	assert.Contains(t, text, "+hello\n")
}

func TestRenderFileDiffDeletedFile(t *testing.T) {
	text, ok := RenderFileDiff(StatusDeleted,
		Side{Path: "a.txt", Exists: true, Data: []byte("bye\n")},
		Side{Path: "a.txt", Exists: false})
	assert.True(t, ok)
	assert.Contains(t, text, "deleted file: a.txt")
	assert.Contains(t, text, "-bye\n")
}

func TestRenderFileDiffBinaryNotice(t *testing.T) {
	text, ok := RenderFileDiff(StatusModified,
		Side{Path: "a.bin", Exists: true, Data: []byte{0x00, 0x01}},
		Side{Path: "a.bin", Exists: true, Data: []byte{0x00, 0x02}})
	assert.True(t, ok)
	assert.Contains(t, text, "Binary files a/a.bin and b/a.bin differ")
}
