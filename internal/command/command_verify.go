// Copyright ©️ OFS contributors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"fmt"

	"github.com/ofs-vcs/ofs/internal/ofs/verify"
)

// Verify runs the four-axis integrity check and reports per-axis
// OK/FAILED.
type Verify struct{}

var axisOrder = []verify.Axis{verify.AxisObjects, verify.AxisIndex, verify.AxisCommits, verify.AxisRefs}

func (v *Verify) Run(g *Globals) error {
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

	report := verify.VerifyRepository(r.OfsDir)
	for _, axis := range axisOrder {
		res := report.Axes[axis]
		status := "OK"
		if !res.OK {
			status = "FAILED"
		}
		fmt.Printf("%s: %s\n", axis, status)
		for _, e := range res.Errors {
			fmt.Printf("  %s\n", e)
		}
	}
	if !report.Overall {
		diev("verification failed")
		return fmt.Errorf("verification failed")
	}
	fmt.Println("verify: all checks passed")
	return nil
}
