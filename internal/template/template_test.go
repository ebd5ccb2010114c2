// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package template

import (
	"testing"

	"github.com/matt-FFFFFF/sweep/internal/operation"
	"github.com/matt-FFFFFF/sweep/internal/target"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveSubstitutesPlaceholders(t *testing.T) {
	op := operation.Prompt{Name: "p", Body: "A:{{FILE_NAME}} B:{{FILE_CONTENT}}"}
	tgt := target.Target{Path: "/x/y/report.txt", Kind: target.KindFile}

	out, err := Resolve(op, tgt, "hi", "")
	require.NoError(t, err)
	assert.Equal(t, "A:report.txt B:hi", out)
}

func TestResolveAllPlaceholders(t *testing.T) {
	op := operation.Prompt{
		Name: "p",
		Body: "{{FILE_PATH}}|{{FILE_NAME}}|{{WORKSPACE_PATH}}|{{FILE_CONTENT}}",
	}
	tgt := target.Target{Path: "/ws/docs/a.md", Kind: target.KindFile}

	out, err := Resolve(op, tgt, "body", "/ws")
	require.NoError(t, err)
	assert.Equal(t, "/ws/docs/a.md|a.md|/ws|body", out)
}

func TestResolveReplacesEveryOccurrence(t *testing.T) {
	op := operation.Prompt{Name: "p", Body: "{{FILE_NAME}} {{FILE_NAME}}"}
	tgt := target.Target{Path: "/a/b.txt", Kind: target.KindFile}

	out, err := Resolve(op, tgt, "", "")
	require.NoError(t, err)
	assert.Equal(t, "b.txt b.txt", out)
}

func TestResolveUnknownPlaceholderUntouched(t *testing.T) {
	op := operation.Prompt{Name: "p", Body: "keep {{FOO}} as-is"}
	tgt := target.Target{Path: "/a/b.txt", Kind: target.KindFile}

	out, err := Resolve(op, tgt, "c", "")
	require.NoError(t, err)
	assert.Equal(t, "keep {{FOO}} as-is", out)
}

func TestResolveMissingWorkspaceIsEmptyString(t *testing.T) {
	op := operation.Prompt{Name: "p", Body: "[{{WORKSPACE_PATH}}]"}
	tgt := target.Target{Path: "/a/b.txt", Kind: target.KindFile}

	out, err := Resolve(op, tgt, "", "")
	require.NoError(t, err)
	assert.Equal(t, "[]", out)
}

func TestResolveIsDeterministic(t *testing.T) {
	op := operation.Prompt{Name: "p", Body: "A:{{FILE_NAME}} B:{{FILE_CONTENT}}"}
	tgt := target.Target{Path: "/x/y/report.txt", Kind: target.KindFile}

	first, err := Resolve(op, tgt, "hi", "/ws")
	require.NoError(t, err)

	second, err := Resolve(op, tgt, "hi", "/ws")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestResolveTaskUsesEmbeddedTemplate(t *testing.T) {
	op := operation.Task{Name: "t", Command: "sweep.review", Template: "Review {{FILE_NAME}}"}
	tgt := target.Target{Path: "/src/main.go", Kind: target.KindFile}

	out, err := Resolve(op, tgt, "", "")
	require.NoError(t, err)
	assert.Equal(t, "Review main.go", out)
}

func TestResolveTaskDefaultTemplate(t *testing.T) {
	op := operation.Task{Name: "t", Command: "sweep.review"}
	tgt := target.Target{Path: "/src/main.go", Kind: target.KindFile}

	out, err := Resolve(op, tgt, "package main", "")
	require.NoError(t, err)
	assert.Contains(t, out, "sweep.review")
	assert.Contains(t, out, "package main")
}

func TestResolveMalformedOperations(t *testing.T) {
	tgt := target.Target{Path: "/a/b.txt", Kind: target.KindFile}

	_, err := Resolve(operation.Task{Name: "t"}, tgt, "", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTemplate)

	_, err = Resolve(operation.Prompt{Name: "p"}, tgt, "", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTemplate)
}
