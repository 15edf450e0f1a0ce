// Copyright ©️ OFS contributors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Package repo implements the repository handle: opening, initializing,
// and owning the per-invocation resources (the decoded-commit cache, the
// loaded config) that every command in internal/command operates
// through.
package repo

import (
	"os"
	"path/filepath"

	"github.com/ofs-vcs/ofs/internal/ofs/commit"
	"github.com/ofs-vcs/ofs/internal/ofs/index"
	"github.com/ofs-vcs/ofs/internal/ofs/objstore"
	"github.com/ofs-vcs/ofs/internal/ofs/oerrors"
	"github.com/ofs-vcs/ofs/internal/ofs/refs"
	"github.com/ofs-vcs/ofs/internal/ofs/repoconfig"
)

// DirName is the repository metadata directory's name, rooted at the
// workspace.
const DirName = ".ofs"

// Repository is a handle over one on-disk .ofs tree: its working
// directory, the .ofs metadata root, a bounded commit cache, and the
// loaded config. A Repository is not safe for concurrent use from
// multiple goroutines and is meant to live for exactly one command
// invocation.
type Repository struct {
	WorkDir string
	OfsDir  string
	Config  *repoconfig.Config
	Cache   *commit.Cache
	Objects *objstore.Store
}

// InitOptions configures a new repository at Init time.
type InitOptions struct {
	Author string
	Email  string
}

func ofsDir(workDir string) string { return filepath.Join(workDir, DirName) }

// Open loads an existing repository rooted at workDir. It fails with
// oerrors.ErrRepositoryNotInitialized if workDir has no .ofs
// directory; parent directories are not searched.
func Open(workDir string) (*Repository, error) {
	dir := ofsDir(workDir)
	if _, err := os.Stat(dir); err != nil {
		return nil, oerrors.ErrRepositoryNotInitialized
	}
	cfg, err := repoconfig.Load(dir)
	if err != nil {
		return nil, err
	}
	cache, err := commit.NewCache(commit.DefaultCacheSize)
	if err != nil {
		return nil, err
	}
	return &Repository{
		WorkDir: workDir,
		OfsDir:  dir,
		Config:  cfg,
		Cache:   cache,
		Objects: objstore.New(filepath.Join(dir, "objects")),
	}, nil
}

// Init creates a fresh .ofs tree rooted at workDir: objects/,
// refs/heads/, commits/, HEAD, an empty index.json, and a default
// config.json. It fails with oerrors.ErrRepositoryExists if .ofs
// already exists. Any mid-creation error removes the partial .ofs
// directory entirely.
func Init(workDir string, opts InitOptions) (repository *Repository, err error) {
	dir := ofsDir(workDir)
	if _, statErr := os.Stat(dir); statErr == nil {
		return nil, oerrors.ErrRepositoryExists
	}

	defer func() {
		if err != nil {
			os.RemoveAll(dir)
		}
	}()

	if err = os.MkdirAll(filepath.Join(dir, "objects"), 0o755); err != nil {
		return nil, err
	}
	if err = os.MkdirAll(filepath.Join(dir, "refs", "heads"), 0o755); err != nil {
		return nil, err
	}
	if err = os.MkdirAll(filepath.Join(dir, "commits"), 0o755); err != nil {
		return nil, err
	}
	if err = refs.InitHead(dir, refs.DefaultBranch); err != nil {
		return nil, err
	}
	idx := index.Load(filepath.Join(dir, "index.json"))
	if err = idx.Save(); err != nil {
		return nil, err
	}

	author, email := opts.Author, opts.Email
	if author == "" || email == "" {
		defAuthor, defEmail := repoconfig.AuthorInfo()
		if author == "" {
			author = defAuthor
		}
		if email == "" {
			email = defEmail
		}
	}
	cfg := repoconfig.Default(author, email)
	if err = repoconfig.Save(cfg, dir); err != nil {
		return nil, err
	}

	cache, cacheErr := commit.NewCache(commit.DefaultCacheSize)
	if cacheErr != nil {
		err = cacheErr
		return nil, err
	}
	return &Repository{
		WorkDir: workDir,
		OfsDir:  dir,
		Config:  cfg,
		Cache:   cache,
		Objects: objstore.New(filepath.Join(dir, "objects")),
	}, nil
}

// Close releases the repository handle's cache resources.
func (r *Repository) Close() {
	if r != nil {
		r.Cache.Close()
	}
}

// IndexPath returns the path to this repository's index.json.
func (r *Repository) IndexPath() string {
	return filepath.Join(r.OfsDir, "index.json")
}

// CommitsDir returns the path to this repository's commits directory.
func (r *Repository) CommitsDir() string {
	return filepath.Join(r.OfsDir, "commits")
}
