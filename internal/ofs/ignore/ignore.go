// Copyright ©️ OFS contributors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Package ignore implements .ofsignore pattern parsing and matching.
// Pattern evaluation is order-sensitive: later patterns override
// earlier ones, and negations only un-ignore what a prior pattern
// ignored.
//
// Match precedence checks the directory-pattern prefix (for patterns
// with a trailing "/"), then the basename, then the full path, then
// the "**/" anywhere form. Glob matching (including a leading "**/", which
// path/filepath.Match cannot express) is delegated to
// github.com/bmatcuk/doublestar/v4.
package ignore

import (
	"bufio"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Pattern is one parsed line of an ignore file.
type Pattern struct {
	raw      string
	glob     string
	negate   bool
	dirOnly  bool
	anyDepth bool // true when the pattern began with "**/"
}

// DefaultPatterns are applied to every repository regardless of
// .ofsignore contents.
func DefaultPatterns() []Pattern {
	raw := []string{".ofs", ".ofs/**", "*.tmp", "*.swp", "__pycache__", ".DS_Store"}
	out := make([]Pattern, 0, len(raw))
	for _, r := range raw {
		if p, ok := Parse(r); ok {
			out = append(out, p)
		}
	}
	return out
}

// Parse parses a single non-comment, non-blank ignore-file line. It
// returns ok=false for comments ('#'-prefixed) and blank lines.
func Parse(line string) (Pattern, bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return Pattern{}, false
	}
	p := Pattern{raw: line}
	if strings.HasPrefix(line, "!") {
		p.negate = true
		line = line[1:]
	}
	if strings.HasSuffix(line, "/") {
		p.dirOnly = true
		line = strings.TrimSuffix(line, "/")
	}
	if strings.HasPrefix(line, "**/") {
		p.anyDepth = true
	}
	p.glob = line
	return p, true
}

// ParsePatterns reads one pattern per line from r, skipping comments
// and blank lines.
func ParsePatterns(r io.Reader) ([]Pattern, error) {
	var patterns []Pattern
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if p, ok := Parse(scanner.Text()); ok {
			patterns = append(patterns, p)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return patterns, nil
}

// Matcher folds a pattern sequence in order: for a given path,
// "ignored" flips to true on a positive match of a non-negated
// pattern, and to false on a positive match of a negated pattern.
type Matcher struct {
	patterns []Pattern
}

// NewMatcher builds a Matcher from patterns, evaluated in the order
// given.
func NewMatcher(patterns []Pattern) *Matcher {
	return &Matcher{patterns: patterns}
}

// Match reports whether relPath (slash-separated, relative to the
// repository root) should be ignored.
func (m *Matcher) Match(relPath string, isDir bool) bool {
	if len(m.patterns) == 0 {
		return false
	}
	ignored := false
	name := path.Base(relPath)
	for _, p := range m.patterns {
		if p.matches(relPath, name, isDir) {
			ignored = !p.negate
		}
	}
	return ignored
}

// LoadMatcher builds a Matcher for repoRoot: the default patterns
// followed by repoRoot/.ofsignore's patterns (if the file exists), in
// that order. A missing .ofsignore is not an error.
func LoadMatcher(repoRoot string) (*Matcher, error) {
	patterns := DefaultPatterns()
	f, err := os.Open(filepath.Join(repoRoot, ".ofsignore"))
	if err != nil {
		if os.IsNotExist(err) {
			return NewMatcher(patterns), nil
		}
		return nil, err
	}
	defer f.Close()
	extra, err := ParsePatterns(f)
	if err != nil {
		return nil, err
	}
	patterns = append(patterns, extra...)
	return NewMatcher(patterns), nil
}

func (p Pattern) matches(relPath, name string, isDir bool) bool {
	if p.dirOnly {
		if relPath == p.glob || strings.HasPrefix(relPath, p.glob+"/") {
			return true
		}
	}
	if ok, _ := doublestar.Match(p.glob, name); ok {
		return true
	}
	if ok, _ := doublestar.Match(p.glob, relPath); ok {
		return true
	}
	if p.anyDepth {
		stripped := strings.TrimPrefix(p.glob, "**/")
		if ok, _ := doublestar.Match(stripped, name); ok {
			return true
		}
		if ok, _ := doublestar.Match(stripped, relPath); ok {
			return true
		}
	}
	return false
}
