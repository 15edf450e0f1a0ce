// Copyright ©️ OFS contributors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"fmt"
	"time"

	"github.com/ofs-vcs/ofs/internal/ofs/commit"
)

// Log lists commits newest-first.
type Log struct {
	N       int  `name:"max-count" short:"n" help:"Limit the number of commits shown"`
	Oneline bool `name:"oneline" help:"Show one compact line per commit"`
}

func (l *Log) Run(g *Globals) error {
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

	commits, err := commit.ListCommits(r.CommitsDir())
	if err != nil {
		diev("listing commits: %v", err)
		return err
	}
	if l.N > 0 && l.N < len(commits) {
		commits = commits[:l.N]
	}
	for _, c := range commits {
		if l.Oneline {
			fmt.Println(formatOneline(c))
			continue
		}
		fmt.Printf("commit %s\n", c.ID)
		if c.Parent != nil {
			fmt.Printf("parent: %s\n", *c.Parent)
		}
		fmt.Printf("Author: %s <%s>\n", c.Author, c.Email)
		fmt.Printf("Date:   %s\n\n", c.Timestamp)
		fmt.Printf("    %s\n\n", c.Message)
	}
	return nil
}

func formatOneline(c *commit.Commit) string {
	ts := c.Timestamp
	if t, err := time.Parse("2006-01-02T15:04:05Z", c.Timestamp); err == nil {
		ts = t.Format("2006-01-02 15:04")
	}
	return fmt.Sprintf("%s %s %s %s", c.ID, ts, c.Author, c.Message)
}
