// Copyright ©️ OFS contributors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Package objstore implements the content-addressed blob store: every
// byte sequence is stored once, keyed by its SHA-256 hex digest, under
// a two-level fan-out directory layout, as raw unframed bytes.
package objstore

import (
	"os"
	"path/filepath"

	"github.com/ofs-vcs/ofs/internal/ofs/atomicfile"
	"github.com/ofs-vcs/ofs/internal/ofs/hashutil"
	"github.com/ofs-vcs/ofs/internal/ofs/oerrors"
)

// Store is a content-addressed blob store rooted at a .ofs/objects
// directory.
type Store struct {
	root string
}

// New returns a Store rooted at root (normally "<ofsDir>/objects").
func New(root string) *Store {
	return &Store{root: root}
}

// Root returns the store's root directory.
func (s *Store) Root() string { return s.root }

// Path returns the on-disk path for the blob named by hash: the
// objects/<aa>/<bb...> fan-out (two hex chars, then the remaining
// 62).
func (s *Store) Path(hash string) string {
	return filepath.Join(s.root, hash[:2], hash[2:])
}

// Store hashes buf and writes it to the content-addressed path if it
// is not already present (deduplication), returning its hash.
func (s *Store) Store(buf []byte) (string, error) {
	hash := hashutil.HashBytes(buf)
	path := s.Path(hash)
	if _, err := os.Stat(path); err == nil {
		return hash, nil
	}
	if err := atomicfile.WriteFile(path, buf, 0o444); err != nil {
		return "", err
	}
	return hash, nil
}

// Exists reports whether a blob named by hash is present.
func (s *Store) Exists(hash string) bool {
	_, err := os.Stat(s.Path(hash))
	return err == nil
}

// Retrieve reads the blob named by hash, re-hashing its contents and
// failing with *oerrors.ErrCorruption if the bytes on disk do not
// hash to the requested name.
func (s *Store) Retrieve(hash string) ([]byte, error) {
	path := s.Path(hash)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &oerrors.ErrObjectNotFound{Hash: hash}
		}
		return nil, err
	}
	if actual := hashutil.HashBytes(data); actual != hash {
		return nil, &oerrors.ErrCorruption{What: "object " + hash + " hashes to " + actual}
	}
	return data, nil
}

// Verify is like Retrieve but reports a boolean mismatch instead of
// failing.
func (s *Store) Verify(hash string) (bool, error) {
	data, err := os.ReadFile(s.Path(hash))
	if err != nil {
		if os.IsNotExist(err) {
			return false, &oerrors.ErrObjectNotFound{Hash: hash}
		}
		return false, err
	}
	return hashutil.HashBytes(data) == hash, nil
}
