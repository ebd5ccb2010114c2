// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package target

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/afero"
)

// ErrBadPattern is returned when a glob pattern cannot be resolved.
var ErrBadPattern = errors.New("failed to resolve file pattern")

// Finder resolves glob patterns to targets.
type Finder struct {
	fs afero.Fs
}

// NewFinder creates a Finder on the given filesystem.
func NewFinder(fs afero.Fs) *Finder {
	return &Finder{fs: fs}
}

// Find resolves the given patterns to an ordered, de-duplicated list of targets.
// Relative patterns are resolved against workingDirectory. Matches appear in
// pattern order, then in the order the filesystem returned them. Errors from
// individual patterns are aggregated; matches from the remaining patterns are
// still returned alongside the error.
func (f *Finder) Find(ctx context.Context, workingDirectory string, patterns []string) ([]Target, error) {
	var errs *multierror.Error

	seen := make(map[string]struct{})
	targets := make([]Target, 0, len(patterns))

	for _, pattern := range patterns {
		select {
		case <-ctx.Done():
			return targets, ctx.Err()
		default:
		}

		if !filepath.IsAbs(pattern) {
			pattern = filepath.Join(workingDirectory, pattern)
		}

		matches, err := afero.Glob(f.fs, pattern)
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("%w: %s: %v", ErrBadPattern, pattern, err))
			continue
		}

		for _, m := range matches {
			if _, ok := seen[m]; ok {
				continue
			}

			seen[m] = struct{}{}

			info, err := f.fs.Stat(m)
			if err != nil {
				errs = multierror.Append(errs, fmt.Errorf("%w: %s: %v", ErrBadPattern, m, err))
				continue
			}

			kind := KindFile
			if info.IsDir() {
				kind = KindDirectory
			}

			targets = append(targets, Target{Path: m, Kind: kind})
		}
	}

	return targets, errs.ErrorOrNil()
}
