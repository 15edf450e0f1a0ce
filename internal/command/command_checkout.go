// Copyright ©️ OFS contributors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/ofs-vcs/ofs/internal/ofs/atomicfile"
	"github.com/ofs-vcs/ofs/internal/ofs/commit"
	"github.com/ofs-vcs/ofs/internal/ofs/index"
	"github.com/ofs-vcs/ofs/internal/ofs/oerrors"
	"github.com/ofs-vcs/ofs/internal/ofs/refs"
)

// Checkout restores the working tree to a commit's state and detaches
// HEAD at it.
type Checkout struct {
	CommitID string `arg:"" name:"commit" help:"Commit id to check out"`
	Force    bool   `name:"force" short:"f" help:"Discard staged changes without prompting"`
}

func (c *Checkout) Run(g *Globals) error {
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

	target, loaded, err := commit.Load(r.Cache, c.CommitID, r.CommitsDir())
	if err != nil {
		diev("loading commit %s: %v", c.CommitID, err)
		return err
	}
	if !loaded || target == nil {
		diev("%s", &oerrors.ErrCommitNotFound{ID: c.CommitID})
		return &oerrors.ErrCommitNotFound{ID: c.CommitID}
	}

	idx := index.Load(r.IndexPath())
	if !c.Force && idx.HasChanges() {
		if !confirm(fmt.Sprintf("You have staged changes. Discard them and checkout %s? [y/N] ", c.CommitID)) {
			diev("checkout aborted")
			return fmt.Errorf("checkout aborted")
		}
	}

	targetTree, err := commit.BuildTreeState(r.Cache, c.CommitID, r.CommitsDir())
	if err != nil {
		diev("reconstructing target tree: %v", err)
		return err
	}
	for path, f := range targetTree {
		if !r.Objects.Exists(f.Hash) {
			diev("checkout aborted: missing blob %s for %s", f.Hash, path)
			return fmt.Errorf("missing blob %s for %s", f.Hash, path)
		}
	}

	var currentTree map[string]commit.FileEntry
	if headID, ok, err := refs.ResolveHEAD(r.OfsDir); err == nil && ok && headID != "" {
		currentTree, _ = commit.BuildTreeState(r.Cache, headID, r.CommitsDir())
	}
	for path := range currentTree {
		if _, stillPresent := targetTree[path]; stillPresent {
			continue
		}
		if err := os.Remove(joinPath(dir, path)); err != nil && !os.IsNotExist(err) {
			warnv("removing %s: %v", path, err)
		}
	}

	var newEntries []index.Entry
	for path, f := range targetTree {
		data, err := r.Objects.Retrieve(f.Hash)
		if err != nil {
			diev("checkout aborted: %v", err)
			return err
		}
		destPath := joinPath(dir, path)
		if err := atomicfile.WriteFile(destPath, data, 0o644); err != nil {
			diev("writing %s: %v", path, err)
			return err
		}
		var mtime int64
		if info, statErr := os.Stat(destPath); statErr == nil {
			mtime = info.ModTime().Unix()
		}
		newEntries = append(newEntries, index.Entry{
			Path:  path,
			Hash:  f.Hash,
			Size:  f.Size,
			Mode:  f.Mode,
			MTime: mtime,
		})
	}
	if err := idx.Clear(); err != nil {
		diev("rebuilding index: %v", err)
		return err
	}
	if len(newEntries) > 0 {
		if err := idx.BatchAdd(newEntries); err != nil {
			diev("rebuilding index: %v", err)
			return err
		}
	}
	if err := refs.UpdateHead(r.OfsDir, c.CommitID, true); err != nil {
		diev("detaching HEAD: %v", err)
		return err
	}
	fmt.Printf("HEAD is now at %s\n", c.CommitID)
	return nil
}

func confirm(prompt string) bool {
	fmt.Fprint(os.Stderr, prompt)
	reader := bufio.NewReader(os.Stdin)
	line, _ := reader.ReadString('\n')
	return strings.ToLower(strings.TrimSpace(line)) == "y"
}
