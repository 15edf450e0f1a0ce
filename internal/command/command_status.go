// Copyright ©️ OFS contributors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"fmt"
	"sort"

	"github.com/ofs-vcs/ofs/internal/ofs/ignore"
	"github.com/ofs-vcs/ofs/internal/ofs/index"
	"github.com/ofs-vcs/ofs/internal/ofs/worktree"
)

// entryStatus classifies one path for display.
type entryStatus struct {
	path  string
	label string // "new file", "modified", "untracked"
}

// Status reports staged, modified, and untracked files.
type Status struct {
	Short bool `name:"short" short:"s" help:"Give the output in the short format"`
}

func (s *Status) Run(g *Globals) error {
	dir, err := g.Worktree()
	if err != nil {
		diev("%v", err)
		return err
	}
	r, err := openExisting(dir)
	if err != nil {
		return err
	}
	defer r.Close()

	matcher, err := ignore.LoadMatcher(dir)
	if err != nil {
		diev("loading .ofsignore: %v", err)
		return err
	}
	files, err := worktree.ScanWorkingTree(dir, matcher)
	if err != nil {
		diev("scanning working tree: %v", err)
		return err
	}
	onDisk := make(map[string]bool, len(files))
	for _, f := range files {
		onDisk[f] = true
	}

	idx := index.Load(r.IndexPath())
	entries := idx.GetEntries()
	staged := make(map[string]index.Entry, len(entries))
	for _, e := range entries {
		staged[e.Path] = e
	}

	var results []entryStatus
	for _, e := range entries {
		label := "new file"
		if onDisk[e.Path] && worktree.HasFileChanged(joinPath(dir, e.Path), e.Hash) {
			label = "modified"
		}
		results = append(results, entryStatus{path: e.Path, label: label})
	}
	for _, f := range files {
		if _, ok := staged[f]; !ok {
			results = append(results, entryStatus{path: f, label: "untracked"})
		}
	}
	sort.Slice(results, func(i, j int) bool { return results[i].path < results[j].path })

	if len(results) == 0 {
		fmt.Println("nothing to commit, working tree clean")
		return nil
	}
	for _, res := range results {
		if s.Short {
			fmt.Printf("%s %s\n", shortCode(res.label), res.path)
			continue
		}
		fmt.Printf("\t%s:   %s\n", res.label, res.path)
	}
	return nil
}

func shortCode(label string) string {
	switch label {
	case "new file":
		return "A"
	case "modified":
		return "M"
	default:
		return "??"
	}
}
