// Copyright ©️ OFS contributors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package commit

import (
	"sort"

	"github.com/ofs-vcs/ofs/internal/ofs/index"
)

// StagedEntry is the minimal view InferActions needs from the index;
// StagedFromIndexEntries builds it from index.Entry values.
type StagedEntry struct {
	Path string
	Hash string
	Size int64
	Mode string
}

// StagedFromIndexEntries adapts index entries into StagedEntry values.
func StagedFromIndexEntries(entries []index.Entry) []StagedEntry {
	out := make([]StagedEntry, len(entries))
	for i, e := range entries {
		out[i] = StagedEntry{Path: e.Path, Hash: e.Hash, Size: e.Size, Mode: e.Mode}
	}
	return out
}

// BuildTreeState walks the parent chain from targetID back to a
// commit with no parent (or a missing parent, treated as the chain
// end), then folds the collected commits oldest-first: a "deleted"
// action removes the path, any other action sets/overwrites it.
// The result maps every path that is live at targetID.
func BuildTreeState(cache *Cache, targetID, dir string) (map[string]FileEntry, error) {
	var chain []*Commit
	id := targetID
	for id != "" {
		c, ok, err := Load(cache, id, dir)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		chain = append(chain, c)
		if c.Parent == nil {
			break
		}
		id = *c.Parent
	}
	tree := make(map[string]FileEntry)
	for i := len(chain) - 1; i >= 0; i-- {
		for _, f := range chain[i].Files {
			if f.Action == Deleted {
				delete(tree, f.Path)
				continue
			}
			tree[f.Path] = f
		}
	}
	return tree, nil
}

// InferActions compares the currently staged entries against the
// parent commit's full reconstructed tree state (parentTree may be
// nil for the first commit) and returns the file-entries that changed
// at this commit: "added" for new paths, "modified" for paths whose
// hash differs, "unchanged" for paths whose hash is identical (these
// are expected to be filtered out by the caller before saving), and a
// trailing "deleted" entry (carrying the parent's hash) for every
// path present in parentTree but absent from staged.
func InferActions(staged []StagedEntry, parentTree map[string]FileEntry) []FileEntry {
	out := make([]FileEntry, 0, len(staged))
	stagedPaths := make(map[string]bool, len(staged))
	for _, s := range staged {
		stagedPaths[s.Path] = true
		prior, existed := parentTree[s.Path]
		action := Added
		switch {
		case !existed:
			action = Added
		case prior.Hash != s.Hash:
			action = Modified
		default:
			action = Unchanged
		}
		out = append(out, FileEntry{
			Path:   s.Path,
			Hash:   s.Hash,
			Size:   s.Size,
			Mode:   s.Mode,
			Action: action,
		})
	}
	deletedPaths := make([]string, 0)
	for path := range parentTree {
		if !stagedPaths[path] {
			deletedPaths = append(deletedPaths, path)
		}
	}
	sort.Strings(deletedPaths)
	for _, path := range deletedPaths {
		prior := parentTree[path]
		out = append(out, FileEntry{
			Path:   path,
			Hash:   prior.Hash,
			Size:   prior.Size,
			Mode:   prior.Mode,
			Action: Deleted,
		})
	}
	return out
}
