// Copyright ©️ OFS contributors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Package verify implements the repository integrity checker: one
// function per axis, plus an aggregator that runs all of them.
package verify

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/ofs-vcs/ofs/internal/ofs/commit"
	"github.com/ofs-vcs/ofs/internal/ofs/hashutil"
	"github.com/ofs-vcs/ofs/internal/ofs/index"
	"github.com/ofs-vcs/ofs/internal/ofs/objstore"
	"github.com/ofs-vcs/ofs/internal/ofs/refs"
)

// Axis names one of the independent checks in a verify result map.
type Axis string

const (
	AxisObjects Axis = "objects"
	AxisIndex   Axis = "index"
	AxisCommits Axis = "commits"
	AxisRefs    Axis = "refs"
)

// AxisResult is one axis's outcome.
type AxisResult struct {
	OK     bool
	Errors []string
}

// Report aggregates all four axes plus an overall verdict.
type Report struct {
	Axes    map[Axis]AxisResult
	Overall bool
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

// VerifyObjects enumerates every file under objects/<aa>/..., skipping
// dotfiles and .tmp leftovers, reconstructs the expected hash from
// the directory/filename pair, and recomputes each file's actual
// hash.
func VerifyObjects(ofsDir string) AxisResult {
	objectsDir := filepath.Join(ofsDir, "objects")
	var errs []string
	err := filepath.WalkDir(objectsDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if d.IsDir() {
			return nil
		}
		name := d.Name()
		if strings.HasPrefix(name, ".") || strings.HasSuffix(name, ".tmp") {
			return nil
		}
		rel, relErr := filepath.Rel(objectsDir, p)
		if relErr != nil {
			return relErr
		}
		parts := strings.Split(filepath.ToSlash(rel), "/")
		if len(parts) != 2 {
			return nil
		}
		expected := parts[0] + parts[1]
		data, readErr := os.ReadFile(p)
		if readErr != nil {
			errs = append(errs, fmt.Sprintf("cannot read object %s: %v", expected, readErr))
			return nil
		}
		actual := hashutil.HashBytes(data)
		if actual != expected {
			errs = append(errs, fmt.Sprintf("hash mismatch: expected %s actual %s", truncate(expected, 12), truncate(actual, 12)))
		}
		return nil
	})
	if err != nil && !os.IsNotExist(err) {
		errs = append(errs, err.Error())
	}
	return AxisResult{OK: len(errs) == 0, Errors: errs}
}

// VerifyIndex parses index.json (absence passes) and confirms every
// entry names an existing blob.
func VerifyIndex(ofsDir string) AxisResult {
	path := filepath.Join(ofsDir, "index.json")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return AxisResult{OK: true}
		}
		return AxisResult{OK: false, Errors: []string{err.Error()}}
	}
	var raw json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return AxisResult{OK: false, Errors: []string{fmt.Sprintf("index.json is not valid JSON: %v", err)}}
	}
	var entries []index.Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return AxisResult{OK: false, Errors: []string{"index.json root is not a JSON array"}}
	}
	store := objstore.New(filepath.Join(ofsDir, "objects"))
	var errs []string
	for _, e := range entries {
		if e.Hash == "" {
			errs = append(errs, fmt.Sprintf("index entry missing hash: %s", e.Path))
			continue
		}
		if e.Path == "" {
			errs = append(errs, fmt.Sprintf("index entry missing path for hash %s", e.Hash))
			continue
		}
		if !store.Exists(e.Hash) {
			errs = append(errs, fmt.Sprintf("index references missing object: %s (path: %s)", e.Hash, e.Path))
		}
	}
	return AxisResult{OK: len(errs) == 0, Errors: errs}
}

// VerifyCommits parses every commits/*.json file and confirms every
// non-deleted file entry names an existing blob.
func VerifyCommits(ofsDir string) AxisResult {
	commitsDir := filepath.Join(ofsDir, "commits")
	entries, err := os.ReadDir(commitsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return AxisResult{OK: true}
		}
		return AxisResult{OK: false, Errors: []string{err.Error()}}
	}
	store := objstore.New(filepath.Join(ofsDir, "objects"))
	var errs []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		path := filepath.Join(commitsDir, e.Name())
		data, readErr := os.ReadFile(path)
		if readErr != nil {
			errs = append(errs, fmt.Sprintf("cannot read commit %s: %v", e.Name(), readErr))
			continue
		}
		var c commit.Commit
		if jsonErr := json.Unmarshal(data, &c); jsonErr != nil {
			errs = append(errs, fmt.Sprintf("commit %s is not valid JSON: %v", e.Name(), jsonErr))
			continue
		}
		for _, f := range c.Files {
			if f.Action == commit.Deleted {
				continue
			}
			if f.Hash == "" {
				errs = append(errs, fmt.Sprintf("commit %s: file %s missing hash", c.ID, f.Path))
				continue
			}
			if !store.Exists(f.Hash) {
				errs = append(errs, fmt.Sprintf("commit %s: missing object %s for %s", c.ID, f.Hash, f.Path))
			}
		}
	}
	return AxisResult{OK: len(errs) == 0, Errors: errs}
}

// VerifyRefs confirms HEAD exists and, if it resolves, that it points
// at a loadable commit.
func VerifyRefs(ofsDir string) AxisResult {
	headPath := filepath.Join(ofsDir, "HEAD")
	if _, err := os.Stat(headPath); err != nil {
		return AxisResult{OK: false, Errors: []string{"HEAD file missing"}}
	}
	contents, ok, err := refs.ReadHEAD(ofsDir)
	if err != nil {
		return AxisResult{OK: false, Errors: []string{err.Error()}}
	}
	if !ok || contents == "" {
		return AxisResult{OK: true}
	}
	commitID, resolvedOK, err := refs.ResolveHEAD(ofsDir)
	if err != nil {
		return AxisResult{OK: false, Errors: []string{fmt.Sprintf("cannot resolve HEAD: %v", err)}}
	}
	if !resolvedOK || commitID == "" {
		return AxisResult{OK: true}
	}
	commitsDir := filepath.Join(ofsDir, "commits")
	c, loaded, err := commit.Load(nil, commitID, commitsDir)
	if err != nil {
		return AxisResult{OK: false, Errors: []string{err.Error()}}
	}
	if !loaded || c == nil {
		return AxisResult{OK: false, Errors: []string{fmt.Sprintf("HEAD points to non-existent commit: %s", commitID)}}
	}
	return AxisResult{OK: true}
}

// VerifyRepository runs all four axis checks and aggregates them.
func VerifyRepository(ofsDir string) Report {
	axes := map[Axis]AxisResult{
		AxisObjects: VerifyObjects(ofsDir),
		AxisIndex:   VerifyIndex(ofsDir),
		AxisCommits: VerifyCommits(ofsDir),
		AxisRefs:    VerifyRefs(ofsDir),
	}
	overall := true
	for _, r := range axes {
		if !r.OK {
			overall = false
		}
	}
	return Report{Axes: axes, Overall: overall}
}
