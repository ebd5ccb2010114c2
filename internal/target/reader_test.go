// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package target

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReaderReadFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/x/y/report.txt", []byte("hi"), 0o644))

	r := NewReader(fs)
	content, err := r.Read(Target{Path: "/x/y/report.txt", Kind: KindFile})
	require.NoError(t, err)
	assert.Equal(t, "hi", content)
}

func TestReaderReadDirectoryListing(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/docs/a.md", []byte("a"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/docs/b.md", []byte("b"), 0o644))
	require.NoError(t, fs.MkdirAll("/docs/sub", 0o755))
	require.NoError(t, afero.WriteFile(fs, "/docs/sub/nested.md", []byte("n"), 0o644))

	r := NewReader(fs)
	content, err := r.Read(Target{Path: "/docs", Kind: KindDirectory})
	require.NoError(t, err)

	assert.Contains(t, content, "a.md\n")
	assert.Contains(t, content, "b.md\n")
	assert.Contains(t, content, "sub/\n")
	assert.NotContains(t, content, "nested.md", "directories must not be recursed into")
}

func TestReaderReadMissingFile(t *testing.T) {
	r := NewReader(afero.NewMemMapFs())

	_, err := r.Read(Target{Path: "/nope.txt", Kind: KindFile})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRead)
}
