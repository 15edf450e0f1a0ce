// Copyright ©️ OFS contributors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/ofs-vcs/ofs/internal/ofs/ignore"
	"github.com/ofs-vcs/ofs/internal/ofs/index"
	"github.com/ofs-vcs/ofs/internal/ofs/oerrors"
	"github.com/ofs-vcs/ofs/internal/ofs/otrace"
)

// defaultMaxFileSize is the add-time size ceiling, overridable via
// OFS_MAX_FILE_SIZE (bytes).
const defaultMaxFileSize int64 = 100 * 1024 * 1024

func maxFileSize() int64 {
	if v := os.Getenv("OFS_MAX_FILE_SIZE"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			return n
		}
	}
	return defaultMaxFileSize
}

// Add stages files into the index.
type Add struct {
	PathSpec []string `arg:"" name:"pathspec" help:"Files or directories to stage"`
}

func (a *Add) Run(g *Globals) error {
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

	tracker := otrace.NewTracker(g.Verbose)
	matcher, err := ignore.LoadMatcher(dir)
	if err != nil {
		diev("loading .ofsignore: %v", err)
		return err
	}

	paths, err := expandPathSpec(dir, a.PathSpec, matcher)
	if err != nil {
		diev("%v", err)
		return err
	}

	idx := index.Load(r.IndexPath())
	ceiling := maxFileSize()
	staged := 0
	var entries []index.Entry
	for _, rel := range paths {
		abs := filepath.Join(dir, rel)
		info, statErr := os.Stat(abs)
		if statErr != nil {
			warnv("skipping %s: %v", rel, statErr)
			continue
		}
		if info.Size() > ceiling {
			warnv("skipping %s: %d bytes exceeds the %d byte ceiling", rel, info.Size(), ceiling)
			continue
		}
		data, readErr := os.ReadFile(abs)
		if readErr != nil {
			warnv("skipping %s: %v", rel, readErr)
			continue
		}
		hash, storeErr := r.Objects.Store(data)
		if storeErr != nil {
			diev("storing %s: %v", rel, storeErr)
			return storeErr
		}
		entries = append(entries, index.Entry{
			Path:  rel,
			Hash:  hash,
			Size:  info.Size(),
			Mode:  index.Mode,
			MTime: info.ModTime().Unix(),
		})
		tracker.StepNext("staged %s", rel)
		staged++
	}
	if len(entries) > 0 {
		if err := idx.BatchAdd(entries); err != nil {
			diev("updating index: %v", err)
			return err
		}
	}
	if staged == 0 {
		diev("no files staged")
		return oerrors.ErrNothingStaged
	}
	return nil
}

// expandPathSpec turns each user-given path into a list of
// repo-relative file paths, in the order the paths were given: a
// single file stays as-is and a directory is walked recursively in
// lexical order. Duplicates are not removed. A named path that is
// missing, outside the repository, or ignored is dropped with a
// diagnostic; ignored entries met during a directory walk are skipped
// silently.
func expandPathSpec(root string, specs []string, matcher *ignore.Matcher) ([]string, error) {
	var out []string
	for _, spec := range specs {
		abs := spec
		if !filepath.IsAbs(abs) {
			abs = filepath.Join(root, spec)
		}
		rel, err := filepath.Rel(root, abs)
		if err != nil || rel == ".." || (len(rel) >= 2 && rel[:2] == "..") {
			warnv("skipping %s: outside the repository", spec)
			continue
		}
		rel = filepath.ToSlash(rel)
		info, statErr := os.Stat(abs)
		if statErr != nil {
			warnv("skipping %s: %v", spec, statErr)
			continue
		}
		if !info.IsDir() {
			if matcher.Match(rel, false) {
				warnv("skipping %s: ignored", spec)
				continue
			}
			out = append(out, rel)
			continue
		}
		walkErr := filepath.WalkDir(abs, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if p == abs {
				return nil
			}
			r, relErr := filepath.Rel(root, p)
			if relErr != nil {
				return relErr
			}
			r = filepath.ToSlash(r)
			if d.IsDir() {
				if matcher.Match(r, true) {
					return filepath.SkipDir
				}
				return nil
			}
			if matcher.Match(r, false) {
				return nil
			}
			out = append(out, r)
			return nil
		})
		if walkErr != nil {
			return nil, walkErr
		}
	}
	return out, nil
}
