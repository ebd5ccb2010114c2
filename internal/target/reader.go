// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package target

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/afero"
)

// ErrRead is returned when a target's content cannot be read.
var ErrRead = errors.New("failed to read target")

// Reader reads target content from the filesystem.
type Reader struct {
	fs afero.Fs
}

// NewReader creates a Reader on the given filesystem.
func NewReader(fs afero.Fs) *Reader {
	return &Reader{fs: fs}
}

// Read returns the content of a target.
// Files yield their raw text. Directories yield a one-level listing, one
// entry per line, with a trailing slash marking subdirectories.
func (r *Reader) Read(t Target) (string, error) {
	switch t.Kind {
	case KindDirectory:
		return r.readDirectory(t.Path)
	case KindFile:
		b, err := afero.ReadFile(r.fs, t.Path)
		if err != nil {
			return "", fmt.Errorf("%w: %s: %v", ErrRead, t.Path, err)
		}

		return string(b), nil
	default:
		return "", fmt.Errorf("%w: %s: unknown target kind", ErrRead, t.Path)
	}
}

func (r *Reader) readDirectory(path string) (string, error) {
	entries, err := afero.ReadDir(r.fs, path)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrRead, path, err)
	}

	sb := strings.Builder{}

	for _, e := range entries {
		sb.WriteString(e.Name())

		if e.IsDir() {
			sb.WriteString("/")
		}

		sb.WriteString("\n")
	}

	return sb.String(), nil
}
