// Copyright ©️ OFS contributors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Package oerrors defines OFS's typed error taxonomy: most errors
// carry enough context to format a useful message, and a family of
// Is* predicates lets callers branch without type switches leaking
// across package boundaries.
package oerrors

import (
	"errors"
	"fmt"
)

var (
	// ErrRepositoryNotInitialized is returned by any command other
	// than init run outside an .ofs tree.
	ErrRepositoryNotInitialized = errors.New("not an ofs repository (no .ofs directory here); run 'ofs init'")
	// ErrRepositoryExists is returned by init when .ofs already exists.
	ErrRepositoryExists = errors.New("directory is already an ofs repository")
	// ErrCommitEmpty is returned when a commit would record no actions.
	ErrCommitEmpty = errors.New("nothing to commit")
	// ErrMessageTooShort is returned when a commit message is under 3 chars.
	ErrMessageTooShort = errors.New("commit message must be at least 3 characters")
	// ErrNothingStaged is returned by add when zero files were staged.
	ErrNothingStaged = errors.New("nothing staged")
)

// ErrObjectNotFound names a blob that does not exist in the object store.
type ErrObjectNotFound struct {
	Hash string
}

func (e *ErrObjectNotFound) Error() string {
	return fmt.Sprintf("object not found: %s", e.Hash)
}

// IsObjectNotFound reports whether err is an *ErrObjectNotFound.
func IsObjectNotFound(err error) bool {
	var e *ErrObjectNotFound
	return errors.As(err, &e)
}

// ErrCorruption names a hash mismatch or malformed artifact.
type ErrCorruption struct {
	What string
}

func (e *ErrCorruption) Error() string {
	return fmt.Sprintf("corruption detected: %s", e.What)
}

// IsCorruption reports whether err is an *ErrCorruption.
func IsCorruption(err error) bool {
	var e *ErrCorruption
	return errors.As(err, &e)
}

// ErrFileTooLarge names a file that exceeds the configured ceiling.
type ErrFileTooLarge struct {
	Path string
	Size int64
	Max  int64
}

func (e *ErrFileTooLarge) Error() string {
	return fmt.Sprintf("file too large: %s (%d bytes, max %d)", e.Path, e.Size, e.Max)
}

// ErrPathOutsideRepository names a path that cannot be expressed
// relative to the repository root.
type ErrPathOutsideRepository struct {
	Path string
}

func (e *ErrPathOutsideRepository) Error() string {
	return fmt.Sprintf("path is outside the repository: %s", e.Path)
}

// ErrCommitNotFound names a commit id that does not resolve.
type ErrCommitNotFound struct {
	ID string
}

func (e *ErrCommitNotFound) Error() string {
	return fmt.Sprintf("commit not found: %s", e.ID)
}

// IsCommitNotFound reports whether err is an *ErrCommitNotFound.
func IsCommitNotFound(err error) bool {
	var e *ErrCommitNotFound
	return errors.As(err, &e)
}
