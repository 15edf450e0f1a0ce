// Copyright ©️ OFS contributors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package diffengine

import "fmt"

// Status classifies a path's membership between the two sides of a
// diff scenario.
type Status string

const (
	StatusNew      Status = "new"
	StatusModified Status = "modified"
	StatusDeleted  Status = "deleted"
)

// Side is one half of a file comparison.
type Side struct {
	Path   string
	Exists bool
	Data   []byte
}

// RenderFileDiff builds the full text block for one path: the
// "diff --ofs a/<old> b/<new>" header, a "new file:"/"deleted file:"
// annotation when applicable, and either a unified diff, a binary
// notice, or nothing (if the two sides are byte-identical).
// ok is false when there is nothing to show (identical sides).
func RenderFileDiff(status Status, oldSide, newSide Side) (text string, ok bool) {
	oldLabel := "a/" + oldSide.Path
	newLabel := "b/" + newSide.Path

	switch {
	case !oldSide.Exists && !newSide.Exists:
		return "", false
	case !oldSide.Exists:
		// new file
		header := fmt.Sprintf("diff --ofs %s %s\nnew file: %s\n", oldLabel, newLabel, newSide.Path)
		return header + renderBody(oldLabel, newLabel, nil, newSide.Data), true
	case !newSide.Exists:
		header := fmt.Sprintf("diff --ofs %s %s\ndeleted file: %s\n", oldLabel, newLabel, oldSide.Path)
		return header + renderBody(oldLabel, newLabel, oldSide.Data, nil), true
	default:
		if string(oldSide.Data) == string(newSide.Data) {
			return "", false
		}
		header := fmt.Sprintf("diff --ofs %s %s\n", oldLabel, newLabel)
		return header + renderBody(oldLabel, newLabel, oldSide.Data, newSide.Data), true
	}
}

// renderBody dispatches to binary or text rendering. A nil side means
// "absent" (new/deleted file), treated as empty content for diffing
// purposes.
func renderBody(oldLabel, newLabel string, oldData, newData []byte) string {
	oldBinary := oldData != nil && IsBinary(oldData)
	newBinary := newData != nil && IsBinary(newData)
	if oldBinary || newBinary {
		return fmt.Sprintf("Binary files %s and %s differ\n", oldLabel, newLabel)
	}
	oldText := ""
	if oldData != nil {
		oldText = DecodeUTF8(oldData)
	}
	newText := ""
	if newData != nil {
		newText = DecodeUTF8(newData)
	}
	return UnifiedDiff(oldText, newText, DefaultContext)
}
