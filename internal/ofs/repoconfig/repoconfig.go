// Copyright ©️ OFS contributors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Package repoconfig loads and saves a repository's config.json:
// version, author, email, and ignore patterns.
package repoconfig

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/ofs-vcs/ofs/internal/ofs/atomicfile"
)

// Version is the config schema version new repositories are stamped
// with.
const Version = "1.0"

// FileName is config.json's path relative to the .ofs root.
const FileName = "config.json"

// Config is a repository's persisted settings.
type Config struct {
	Version string   `json:"version"`
	Author  string   `json:"author"`
	Email   string   `json:"email"`
	Ignore  []string `json:"ignore"`
}

// AuthorInfo resolves the default author name and email from the
// environment: USER or USERNAME for the name (falling back to
// "unknown"), EMAIL for the address (falling back to
// "<author>@localhost").
func AuthorInfo() (author, email string) {
	author = os.Getenv("USER")
	if author == "" {
		author = os.Getenv("USERNAME")
	}
	if author == "" {
		author = "unknown"
	}
	email = os.Getenv("EMAIL")
	if email == "" {
		email = author + "@localhost"
	}
	return author, email
}

// Default returns a fresh Config for a newly initialized repository.
func Default(author, email string) *Config {
	return &Config{
		Version: Version,
		Author:  author,
		Email:   email,
		Ignore:  nil,
	}
}

func path(ofsDir string) string { return filepath.Join(ofsDir, FileName) }

// Load reads and decodes config.json from ofsDir.
func Load(ofsDir string) (*Config, error) {
	data, err := os.ReadFile(path(ofsDir))
	if err != nil {
		return nil, err
	}
	var c Config
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// Save atomically writes c to ofsDir/config.json with two-space
// indentation.
func Save(c *Config, ofsDir string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return atomicfile.WriteFile(path(ofsDir), data, 0o644)
}
