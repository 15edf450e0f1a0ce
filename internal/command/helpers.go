// Copyright ©️ OFS contributors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"path/filepath"

	"github.com/ofs-vcs/ofs/internal/ofs/repo"
)

// openExisting opens the repository rooted at dir, emitting the
// standard "fatal: ..." diagnostic on failure (including when dir is
// not an OFS repository).
func openExisting(dir string) (*repo.Repository, error) {
	r, err := repo.Open(dir)
	if err != nil {
		diev("%v", err)
		return nil, err
	}
	return r, nil
}

func joinPath(root, rel string) string {
	return filepath.Join(root, filepath.FromSlash(rel))
}
