// Copyright ©️ OFS contributors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Package diffengine renders line-level unified diffs over the four
// comparison scenarios (working vs staged, staged vs HEAD, working vs
// commit, commit vs commit), plus binary detection.
//
// The edit script itself comes from
// github.com/sergi/go-diff/diffmatchpatch, used in its line-mode: lines
// are tokenized to synthetic runes via DiffLinesToChars so DiffMain
// operates at line, not character, granularity, then DiffCharsToLines
// expands the result back to real text. Hunk extraction and the
// unified text format (diff --ofs a/<old> b/<new>, @@ -l,s +l,s @@, 3
// lines of context) are assembled on top, since the library produces
// an edit script, not formatted output.
package diffengine

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// DefaultContext is the number of unchanged lines shown around each
// change.
const DefaultContext = 3

// DecodeUTF8 decodes data as UTF-8, replacing invalid sequences with
// U+FFFD.
func DecodeUTF8(data []byte) string {
	return strings.ToValidUTF8(string(data), "�")
}

type lineOp struct {
	op   diffmatchpatch.Operation
	text string // includes trailing \n except possibly the final line
}

func splitKeepEnds(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			out = append(out, s[start:i+1])
			start = i + 1
		}
	}
	if start < len(s) {
		out = append(out, s[start:])
	}
	return out
}

func lineOps(oldText, newText string) []lineOp {
	dmp := diffmatchpatch.New()
	a, b, arr := dmp.DiffLinesToChars(oldText, newText)
	diffs := dmp.DiffMain(a, b, false)
	diffs = dmp.DiffCharsToLines(diffs, arr)

	var ops []lineOp
	for _, d := range diffs {
		for _, line := range splitKeepEnds(d.Text) {
			ops = append(ops, lineOp{op: d.Type, text: line})
		}
	}
	return ops
}

// chomp trims a single trailing newline for output only; the stored
// op text keeps it so reassembly is exact.
func chomp(s string) string {
	return strings.TrimSuffix(s, "\n")
}

// UnifiedDiff renders a unified diff between oldText and newText:
// only the @@ hunks and their body lines. The "diff --ofs a/<old>
// b/<new>" header line is written by the caller (RenderFileDiff).
// It returns "" if the two texts are identical.
func UnifiedDiff(oldText, newText string, context int) string {
	if oldText == newText {
		return ""
	}
	if context <= 0 {
		context = DefaultContext
	}
	ops := lineOps(oldText, newText)
	if len(ops) == 0 {
		return ""
	}

	// oldLineNo[i]/newLineNo[i]: 1-based line numbers consumed up to
	// and including ops[i], valid only for sides the op touches.
	oldLineNo := make([]int, len(ops))
	newLineNo := make([]int, len(ops))
	oldN, newN := 0, 0
	changed := make([]bool, len(ops))
	for i, o := range ops {
		switch o.op {
		case diffmatchpatch.DiffEqual:
			oldN++
			newN++
		case diffmatchpatch.DiffDelete:
			oldN++
			changed[i] = true
		case diffmatchpatch.DiffInsert:
			newN++
			changed[i] = true
		}
		oldLineNo[i] = oldN
		newLineNo[i] = newN
	}

	// Group changed lines with `context` lines of padding on each
	// side, merging groups that would otherwise overlap.
	type group struct{ lo, hi int } // half-open [lo, hi) over ops indices
	var groups []group
	for i, isChanged := range changed {
		if !isChanged {
			continue
		}
		lo := i - context
		if lo < 0 {
			lo = 0
		}
		hi := i + context + 1
		if hi > len(ops) {
			hi = len(ops)
		}
		if len(groups) > 0 && lo <= groups[len(groups)-1].hi {
			if hi > groups[len(groups)-1].hi {
				groups[len(groups)-1].hi = hi
			}
		} else {
			groups = append(groups, group{lo: lo, hi: hi})
		}
	}

	var b strings.Builder
	for _, g := range groups {
		oldCount, newCount := 0, 0
		for i := g.lo; i < g.hi; i++ {
			switch ops[i].op {
			case diffmatchpatch.DiffEqual:
				oldCount++
				newCount++
			case diffmatchpatch.DiffDelete:
				oldCount++
			case diffmatchpatch.DiffInsert:
				newCount++
			}
		}
		oldStart := firstOldLine(ops, oldLineNo, g.lo)
		newStart := firstNewLine(ops, newLineNo, g.lo)

		fmt.Fprintf(&b, "@@ -%d,%d +%d,%d @@\n", oldStart, oldCount, newStart, newCount)
		for i := g.lo; i < g.hi; i++ {
			switch ops[i].op {
			case diffmatchpatch.DiffEqual:
				b.WriteString(" ")
			case diffmatchpatch.DiffDelete:
				b.WriteString("-")
			case diffmatchpatch.DiffInsert:
				b.WriteString("+")
			}
			b.WriteString(chomp(ops[i].text))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func firstOldLine(ops []lineOp, oldLineNo []int, idx int) int {
	for i := idx; i < len(ops); i++ {
		if ops[i].op != diffmatchpatch.DiffInsert {
			return oldLineNo[i]
		}
	}
	if idx == 0 {
		return 1
	}
	return oldLineNo[idx-1] + 1
}

func firstNewLine(ops []lineOp, newLineNo []int, idx int) int {
	for i := idx; i < len(ops); i++ {
		if ops[i].op != diffmatchpatch.DiffDelete {
			return newLineNo[i]
		}
	}
	if idx == 0 {
		return 1
	}
	return newLineNo[idx-1] + 1
}
