// Copyright ©️ OFS contributors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"fmt"
	"strings"

	"github.com/ofs-vcs/ofs/internal/ofs/commit"
	"github.com/ofs-vcs/ofs/internal/ofs/index"
	"github.com/ofs-vcs/ofs/internal/ofs/oerrors"
	"github.com/ofs-vcs/ofs/internal/ofs/refs"
)

// Commit records the currently staged changes as a new commit.
type Commit struct {
	Message string `name:"message" short:"m" help:"Commit message" required:""`
}

func (c *Commit) Run(g *Globals) error {
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

	msg := strings.TrimSpace(c.Message)
	if len(msg) < 3 {
		diev("%s", oerrors.ErrMessageTooShort)
		return oerrors.ErrMessageTooShort
	}

	idx := index.Load(r.IndexPath())
	staged := idx.GetEntries()
	if len(staged) == 0 {
		diev("%s", oerrors.ErrCommitEmpty)
		return oerrors.ErrCommitEmpty
	}

	id, err := commit.GenerateID(r.CommitsDir())
	if err != nil {
		diev("allocating commit id: %v", err)
		return err
	}

	parentID, ok, err := refs.ResolveHEAD(r.OfsDir)
	if err != nil {
		diev("resolving HEAD: %v", err)
		return err
	}
	var parent *string
	var parentTree map[string]commit.FileEntry
	if ok && parentID != "" {
		p := parentID
		parent = &p
		parentTree, err = commit.BuildTreeState(r.Cache, parentID, r.CommitsDir())
		if err != nil {
			diev("reconstructing parent tree: %v", err)
			return err
		}
	}

	actions := commit.InferActions(commit.StagedFromIndexEntries(staged), parentTree)
	var files []commit.FileEntry
	for _, f := range actions {
		if f.Action == commit.Unchanged {
			continue
		}
		files = append(files, f)
	}
	if len(files) == 0 {
		diev("%s", oerrors.ErrCommitEmpty)
		return oerrors.ErrCommitEmpty
	}

	newCommit := commit.Build(id, parent, msg, r.Config.Author, r.Config.Email, files)
	if err := commit.SaveAndCache(r.Cache, newCommit, r.CommitsDir()); err != nil {
		diev("saving commit: %v", err)
		return err
	}
	detached, err := refs.IsDetached(r.OfsDir)
	if err != nil {
		diev("%v", err)
		return err
	}
	if err := refs.UpdateHead(r.OfsDir, id, detached); err != nil {
		diev("updating HEAD: %v", err)
		return err
	}
	if err := idx.Clear(); err != nil {
		diev("clearing index: %v", err)
		return err
	}
	fmt.Printf("[%s] %s\n", id, msg)
	return nil
}
