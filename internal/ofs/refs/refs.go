// Copyright ©️ OFS contributors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Package refs implements HEAD and branch-ref reading, writing, and
// resolution, using the "ref: <target>\n" symbolic format and
// rename-based ref updates over a single refs/heads/<name> layout (no
// packed-refs, no remotes, no tags).
package refs

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/ofs-vcs/ofs/internal/ofs/atomicfile"
)

// SymbolicPrefix is the marker that makes a HEAD file symbolic rather
// than a raw (detached) commit id.
const SymbolicPrefix = "ref: "

// DefaultBranch is the branch name InitHead uses when given an empty
// name, and the branch UpdateHead updates when HEAD is missing or not
// symbolic.
const DefaultBranch = "main"

func headPath(ofsDir string) string { return filepath.Join(ofsDir, "HEAD") }

func readTrimmed(path string) (string, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, err
	}
	s := strings.TrimRight(string(data), "\n")
	if s == "" {
		return "", false, nil
	}
	return s, true, nil
}

// ReadHEAD returns HEAD's stripped contents, or ("", false) if HEAD
// is missing or empty.
func ReadHEAD(ofsDir string) (string, bool, error) {
	return readTrimmed(headPath(ofsDir))
}

// IsDetached reports whether HEAD holds a raw commit id rather than a
// symbolic "ref: ..." pointer. An absent or empty HEAD is not detached.
func IsDetached(ofsDir string) (bool, error) {
	contents, ok, err := ReadHEAD(ofsDir)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}
	return !strings.HasPrefix(contents, SymbolicPrefix), nil
}

// ResolveHEAD follows a symbolic HEAD to the branch ref it names and
// returns that ref's contents (or "", false if the ref file is
// missing/empty); a detached HEAD's contents are returned as-is.
func ResolveHEAD(ofsDir string) (string, bool, error) {
	contents, ok, err := ReadHEAD(ofsDir)
	if err != nil || !ok {
		return "", ok, err
	}
	if !strings.HasPrefix(contents, SymbolicPrefix) {
		return contents, true, nil
	}
	refPath := strings.TrimPrefix(contents, SymbolicPrefix)
	return readTrimmed(filepath.Join(ofsDir, refPath))
}

// UpdateRef atomically writes value (plus a trailing newline) to the
// file at <ofsDir>/<refPath>.
func UpdateRef(ofsDir, refPath, value string) error {
	return atomicfile.WriteFile(filepath.Join(ofsDir, refPath), []byte(value+"\n"), 0o644)
}

// InitHead writes a fresh symbolic HEAD pointing at refs/heads/<branch>.
// The branch ref file itself is created lazily by the first
// UpdateHead(..., detached=false) call.
func InitHead(ofsDir, branch string) error {
	if branch == "" {
		branch = DefaultBranch
	}
	return atomicfile.WriteFile(headPath(ofsDir), []byte(SymbolicPrefix+"refs/heads/"+branch+"\n"), 0o644)
}

// UpdateHead records commitID as the repository's new tip. In
// detached mode it overwrites HEAD directly; otherwise it resolves
// HEAD's current ref path (defaulting to refs/heads/main if HEAD is
// missing) and updates that branch ref file, leaving HEAD itself
// unchanged. A detached update therefore turns a symbolic HEAD into a
// detached one; a non-detached update never turns a detached HEAD
// back into a symbolic one (only InitHead writes a symbolic HEAD).
// HEAD is always initialized when a repository is created; a
// non-detached UpdateHead never creates it.
func UpdateHead(ofsDir, commitID string, detached bool) error {
	if detached {
		return atomicfile.WriteFile(headPath(ofsDir), []byte(commitID+"\n"), 0o644)
	}
	refPath := "refs/heads/" + DefaultBranch
	contents, ok, err := ReadHEAD(ofsDir)
	if err != nil {
		return err
	}
	if ok && strings.HasPrefix(contents, SymbolicPrefix) {
		refPath = strings.TrimPrefix(contents, SymbolicPrefix)
	}
	return UpdateRef(ofsDir, refPath, commitID)
}
