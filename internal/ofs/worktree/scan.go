// Copyright ©️ OFS contributors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Package worktree walks the workspace (respecting ignore patterns)
// and compares workspace files against recorded hashes, for a single
// repository with no submodules.
package worktree

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"

	"github.com/ofs-vcs/ofs/internal/ofs/hashutil"
	"github.com/ofs-vcs/ofs/internal/ofs/ignore"
)

// ScanWorkingTree walks root and returns every non-ignored file's
// path relative to root, using forward slashes, in lexicographic
// order. Patterns are pre-compiled once per scan (a single *ignore.Matcher)
// so matching is O(files * patterns) rather than re-parsing patterns
// per file.
func ScanWorkingTree(root string, matcher *ignore.Matcher) ([]string, error) {
	set := treeset.NewWith(utils.StringComparator)
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if p == root {
			return nil
		}
		rel, relErr := filepath.Rel(root, p)
		if relErr != nil {
			return relErr
		}
		rel = filepath.ToSlash(rel)
		if d.IsDir() {
			if matcher.Match(rel, true) {
				return filepath.SkipDir
			}
			return nil
		}
		if matcher.Match(rel, false) {
			return nil
		}
		set.Add(rel)
		return nil
	})
	if err != nil {
		return nil, err
	}
	values := set.Values()
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = v.(string)
	}
	return out, nil
}

// HasFileChanged reports whether the file at absPath differs from
// expectedHash. A missing or unreadable file counts as changed.
func HasFileChanged(absPath, expectedHash string) bool {
	if _, err := os.Stat(absPath); err != nil {
		return true
	}
	actual, err := hashutil.HashFile(absPath)
	if err != nil {
		return true
	}
	return actual != expectedHash
}
