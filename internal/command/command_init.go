// Copyright ©️ OFS contributors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"fmt"

	"github.com/ofs-vcs/ofs/internal/ofs/oerrors"
	"github.com/ofs-vcs/ofs/internal/ofs/repo"
)

// Init creates a fresh .ofs repository.
type Init struct{}

func (c *Init) Run(g *Globals) error {
	dir, err := g.Worktree()
	if err != nil {
		diev("%v", err)
		return err
	}
	r, err := repo.Init(dir, repo.InitOptions{})
	if err != nil {
		if err == oerrors.ErrRepositoryExists {
			diev("%s", err)
			return err
		}
		diev("init failed: %v", err)
		return err
	}
	defer r.Close()
	fmt.Printf("Initialized empty OFS repository in %s\n", r.OfsDir)
	return nil
}
