// Copyright ©️ OFS contributors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"fmt"
	"os"
	"sort"

	"github.com/ofs-vcs/ofs/internal/ofs/commit"
	"github.com/ofs-vcs/ofs/internal/ofs/diffengine"
	"github.com/ofs-vcs/ofs/internal/ofs/ignore"
	"github.com/ofs-vcs/ofs/internal/ofs/index"
	"github.com/ofs-vcs/ofs/internal/ofs/oerrors"
	"github.com/ofs-vcs/ofs/internal/ofs/refs"
	"github.com/ofs-vcs/ofs/internal/ofs/repo"
	"github.com/ofs-vcs/ofs/internal/ofs/worktree"
)

// Diff renders one of four comparison scenarios, selected purely by
// argument shape: working tree vs staged, staged vs HEAD (--cached),
// working tree vs a named commit, or commit vs commit.
type Diff struct {
	Cached  bool     `name:"cached" help:"Compare staged entries against HEAD instead of the working tree"`
	Commits []string `arg:"" optional:"" name:"commit" help:"One or two commit ids to compare"`
}

func (d *Diff) Run(g *Globals) error {
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

	var blocks []string
	switch {
	case len(d.Commits) == 2:
		blocks, err = diffCommitVsCommit(r.CommitsDir(), r.Cache, r.Objects.Retrieve, d.Commits[0], d.Commits[1])
	case len(d.Commits) == 1:
		blocks, err = diffWorkingVsCommit(dir, r, d.Commits[0])
	case d.Cached:
		blocks, err = diffStagedVsHEAD(dir, r)
	default:
		blocks, err = diffWorkingVsStaged(dir, r)
	}
	if err != nil {
		diev("%v", err)
		return err
	}
	if len(blocks) == 0 {
		fmt.Println("no changes")
		return nil
	}
	for _, b := range blocks {
		fmt.Print(b)
	}
	return nil
}

func readFile(path string) ([]byte, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}
	return data, true
}

// diffWorkingVsStaged compares each staged path's blob against the
// workspace copy.
func diffWorkingVsStaged(dir string, r *repo.Repository) ([]string, error) {
	idx := index.Load(r.IndexPath())
	entries := idx.GetEntries()
	sort.Slice(entries, func(i, j int) bool { return entries[i].Path < entries[j].Path })

	var blocks []string
	for _, e := range entries {
		staged, err := r.Objects.Retrieve(e.Hash)
		if err != nil {
			return nil, err
		}
		data, exists := readFile(joinPath(dir, e.Path))
		if !exists {
			if text, ok := diffengine.RenderFileDiff(diffengine.StatusDeleted,
				diffengine.Side{Path: e.Path, Exists: true, Data: staged},
				diffengine.Side{Path: e.Path, Exists: false}); ok {
				blocks = append(blocks, text)
			}
			continue
		}
		if text, ok := diffengine.RenderFileDiff(diffengine.StatusModified,
			diffengine.Side{Path: e.Path, Exists: true, Data: staged},
			diffengine.Side{Path: e.Path, Exists: true, Data: data}); ok {
			blocks = append(blocks, text)
		}
	}
	return blocks, nil
}

// diffStagedVsHEAD compares each staged path against HEAD's
// reconstructed tree.
func diffStagedVsHEAD(dir string, r *repo.Repository) ([]string, error) {
	idx := index.Load(r.IndexPath())
	entries := idx.GetEntries()
	sort.Slice(entries, func(i, j int) bool { return entries[i].Path < entries[j].Path })

	var headTree map[string]commit.FileEntry
	if headID, ok, err := refs.ResolveHEAD(r.OfsDir); err == nil && ok && headID != "" {
		headTree, err = commit.BuildTreeState(r.Cache, headID, r.CommitsDir())
		if err != nil {
			return nil, err
		}
	}

	var blocks []string
	seen := make(map[string]bool, len(entries))
	for _, e := range entries {
		seen[e.Path] = true
		staged, err := r.Objects.Retrieve(e.Hash)
		if err != nil {
			return nil, err
		}
		prior, existed := headTree[e.Path]
		if !existed {
			if text, ok := diffengine.RenderFileDiff(diffengine.StatusNew,
				diffengine.Side{Path: e.Path, Exists: false},
				diffengine.Side{Path: e.Path, Exists: true, Data: staged}); ok {
				blocks = append(blocks, text)
			}
			continue
		}
		priorData, err := r.Objects.Retrieve(prior.Hash)
		if err != nil {
			return nil, err
		}
		if text, ok := diffengine.RenderFileDiff(diffengine.StatusModified,
			diffengine.Side{Path: e.Path, Exists: true, Data: priorData},
			diffengine.Side{Path: e.Path, Exists: true, Data: staged}); ok {
			blocks = append(blocks, text)
		}
	}
	var deletedPaths []string
	for path := range headTree {
		if !seen[path] {
			deletedPaths = append(deletedPaths, path)
		}
	}
	sort.Strings(deletedPaths)
	for _, path := range deletedPaths {
		priorData, err := r.Objects.Retrieve(headTree[path].Hash)
		if err != nil {
			return nil, err
		}
		if text, ok := diffengine.RenderFileDiff(diffengine.StatusDeleted,
			diffengine.Side{Path: path, Exists: true, Data: priorData},
			diffengine.Side{Path: path, Exists: false}); ok {
			blocks = append(blocks, text)
		}
	}
	return blocks, nil
}

// diffWorkingVsCommit unions workspace paths with a commit's tree and
// classifies each.
func diffWorkingVsCommit(dir string, r *repo.Repository, commitID string) ([]string, error) {
	c, loaded, err := commit.Load(r.Cache, commitID, r.CommitsDir())
	if err != nil {
		return nil, err
	}
	if !loaded || c == nil {
		return nil, &oerrors.ErrCommitNotFound{ID: commitID}
	}
	tree, err := commit.BuildTreeState(r.Cache, commitID, r.CommitsDir())
	if err != nil {
		return nil, err
	}
	matcher, err := ignore.LoadMatcher(dir)
	if err != nil {
		return nil, err
	}
	workingPaths, err := worktree.ScanWorkingTree(dir, matcher)
	if err != nil {
		return nil, err
	}

	union := make(map[string]bool, len(tree)+len(workingPaths))
	for p := range tree {
		union[p] = true
	}
	for _, p := range workingPaths {
		union[p] = true
	}
	var paths []string
	for p := range union {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	onDisk := make(map[string]bool, len(workingPaths))
	for _, p := range workingPaths {
		onDisk[p] = true
	}

	var blocks []string
	for _, path := range paths {
		f, inCommit := tree[path]
		_, inWorking := onDisk[path]
		switch {
		case inCommit && !inWorking:
			data, err := r.Objects.Retrieve(f.Hash)
			if err != nil {
				return nil, err
			}
			if text, ok := diffengine.RenderFileDiff(diffengine.StatusDeleted,
				diffengine.Side{Path: path, Exists: true, Data: data},
				diffengine.Side{Path: path, Exists: false}); ok {
				blocks = append(blocks, text)
			}
		case !inCommit && inWorking:
			data, _ := readFile(joinPath(dir, path))
			if text, ok := diffengine.RenderFileDiff(diffengine.StatusNew,
				diffengine.Side{Path: path, Exists: false},
				diffengine.Side{Path: path, Exists: true, Data: data}); ok {
				blocks = append(blocks, text)
			}
		default:
			commitData, err := r.Objects.Retrieve(f.Hash)
			if err != nil {
				return nil, err
			}
			workData, _ := readFile(joinPath(dir, path))
			if text, ok := diffengine.RenderFileDiff(diffengine.StatusModified,
				diffengine.Side{Path: path, Exists: true, Data: commitData},
				diffengine.Side{Path: path, Exists: true, Data: workData}); ok {
				blocks = append(blocks, text)
			}
		}
	}
	return blocks, nil
}

// diffCommitVsCommit unions two commits' trees and classifies each
// path the same way.
func diffCommitVsCommit(commitsDir string, cache *commit.Cache, retrieve func(string) ([]byte, error), idA, idB string) ([]string, error) {
	for _, id := range []string{idA, idB} {
		c, loaded, err := commit.Load(cache, id, commitsDir)
		if err != nil {
			return nil, err
		}
		if !loaded || c == nil {
			return nil, &oerrors.ErrCommitNotFound{ID: id}
		}
	}
	treeA, err := commit.BuildTreeState(cache, idA, commitsDir)
	if err != nil {
		return nil, err
	}
	treeB, err := commit.BuildTreeState(cache, idB, commitsDir)
	if err != nil {
		return nil, err
	}
	union := make(map[string]bool, len(treeA)+len(treeB))
	for p := range treeA {
		union[p] = true
	}
	for p := range treeB {
		union[p] = true
	}
	var paths []string
	for p := range union {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	var blocks []string
	for _, path := range paths {
		a, inA := treeA[path]
		b, inB := treeB[path]
		switch {
		case inA && !inB:
			data, err := retrieve(a.Hash)
			if err != nil {
				return nil, err
			}
			if text, ok := diffengine.RenderFileDiff(diffengine.StatusDeleted,
				diffengine.Side{Path: path, Exists: true, Data: data},
				diffengine.Side{Path: path, Exists: false}); ok {
				blocks = append(blocks, text)
			}
		case !inA && inB:
			data, err := retrieve(b.Hash)
			if err != nil {
				return nil, err
			}
			if text, ok := diffengine.RenderFileDiff(diffengine.StatusNew,
				diffengine.Side{Path: path, Exists: false},
				diffengine.Side{Path: path, Exists: true, Data: data}); ok {
				blocks = append(blocks, text)
			}
		case a.Hash != b.Hash:
			dataA, err := retrieve(a.Hash)
			if err != nil {
				return nil, err
			}
			dataB, err := retrieve(b.Hash)
			if err != nil {
				return nil, err
			}
			if text, ok := diffengine.RenderFileDiff(diffengine.StatusModified,
				diffengine.Side{Path: path, Exists: true, Data: dataA},
				diffengine.Side{Path: path, Exists: true, Data: dataB}); ok {
				blocks = append(blocks, text)
			}
		}
	}
	return blocks, nil
}
