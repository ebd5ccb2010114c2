// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package target

import "path/filepath"

// Kind distinguishes files from directories.
type Kind int

const (
	// KindFile is a regular file.
	KindFile Kind = iota
	// KindDirectory is a directory. Directories are represented by their
	// one-level listing when read as content, they are not recursed into.
	KindDirectory
)

// String implements the Stringer interface for Kind.
func (k Kind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindDirectory:
		return "directory"
	default:
		return "unknown"
	}
}

// Target is one file or directory selected for processing.
type Target struct {
	Path string // Absolute path to the file or directory
	Kind Kind   // File or directory
}

// Name returns the final path segment of the target.
func (t Target) Name() string {
	return filepath.Base(t.Path)
}
