// Copyright ©️ OFS contributors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Package index implements the staging index: the in-memory plus
// on-disk manifest of what will populate the next commit, stored as a
// flat JSON array.
package index

import (
	"encoding/json"
	"os"

	"github.com/ofs-vcs/ofs/internal/ofs/atomicfile"
	"github.com/ofs-vcs/ofs/internal/ofs/otrace"
)

// Index is the in-memory staging manifest, with an order-preserving
// slice (for deterministic JSON output) and a path→slice-index map for
// O(1) lookups.
type Index struct {
	path    string
	entries []Entry
	byPath  map[string]int
}

// Load reads path (normally "<ofsDir>/index.json"). A missing file
// yields an empty index. A file that fails to parse also yields an
// empty in-memory index (per spec: no data is overwritten until the
// next explicit save) and emits a diagnostic.
func Load(path string) *Index {
	idx := &Index{path: path, byPath: make(map[string]int)}
	data, err := os.ReadFile(path)
	if err != nil {
		return idx
	}
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		otrace.Warnf("index: %s failed to parse, starting from an empty index: %v", path, err)
		return idx
	}
	idx.setAll(entries)
	return idx
}

func (idx *Index) setAll(entries []Entry) {
	idx.entries = entries
	idx.byPath = make(map[string]int, len(entries))
	for i, e := range entries {
		idx.byPath[e.Path] = i
	}
}

// Add replaces any prior entry for path and persists the index.
func (idx *Index) Add(e Entry) error {
	idx.addInPlace(e)
	return idx.Save()
}

func (idx *Index) addInPlace(e Entry) {
	if i, ok := idx.byPath[e.Path]; ok {
		idx.entries[i] = e
		return
	}
	idx.byPath[e.Path] = len(idx.entries)
	idx.entries = append(idx.entries, e)
}

// BatchAdd applies every replacement then performs a single atomic save.
func (idx *Index) BatchAdd(entries []Entry) error {
	for _, e := range entries {
		idx.addInPlace(e)
	}
	return idx.Save()
}

// Remove deletes the entry for path, reporting whether it existed.
func (idx *Index) Remove(path string) (bool, error) {
	i, ok := idx.byPath[path]
	if !ok {
		return false, nil
	}
	idx.entries = append(idx.entries[:i], idx.entries[i+1:]...)
	delete(idx.byPath, path)
	for p, j := range idx.byPath {
		if j > i {
			idx.byPath[p] = j - 1
		}
	}
	return true, idx.Save()
}

// GetEntries returns a defensive copy of every staged entry.
func (idx *Index) GetEntries() []Entry {
	out := make([]Entry, len(idx.entries))
	for i, e := range idx.entries {
		out[i] = e.Clone()
	}
	return out
}

// Find returns a copy of the entry for path, if any.
func (idx *Index) Find(path string) (Entry, bool) {
	i, ok := idx.byPath[path]
	if !ok {
		return Entry{}, false
	}
	return idx.entries[i].Clone(), true
}

// Clear empties the index and persists the change.
func (idx *Index) Clear() error {
	idx.entries = nil
	idx.byPath = make(map[string]int)
	return idx.Save()
}

// HasChanges reports whether any entry is staged.
func (idx *Index) HasChanges() bool {
	return len(idx.entries) > 0
}

// Save atomically persists the index to its backing path.
func (idx *Index) Save() error {
	entries := idx.entries
	if entries == nil {
		entries = []Entry{}
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	return atomicfile.WriteFile(idx.path, data, 0o644)
}
