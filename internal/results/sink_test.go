// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package results

import (
	"context"
	"testing"
	"time"

	"github.com/matt-FFFFFF/sweep/internal/engine"
	"github.com/matt-FFFFFF/sweep/internal/llm"
	"github.com/matt-FFFFFF/sweep/internal/operation"
	"github.com/matt-FFFFFF/sweep/internal/target"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock() time.Time {
	return time.Date(2025, 6, 1, 12, 30, 45, 0, time.UTC)
}

func TestDocumentSinkRecordKeyFormat(t *testing.T) {
	fs := afero.NewMemMapFs()
	sink := NewDocumentSink(fs, "/out")
	sink.now = fixedClock

	out := engine.ItemOutcome{
		Target:   target.Target{Path: "/ws/notes.txt", Kind: target.KindFile},
		Success:  true,
		Response: "the summary",
		Model:    "llama3",
		Usage:    &llm.Usage{Total: 42},
	}

	err := sink.Record(context.Background(), out, operation.Prompt{Name: "summarize", Body: "x"})
	require.NoError(t, err)

	// Colons in the RFC 3339 timestamp become dashes in the file name.
	path := "/out/notes.txt_summarize_2025-06-01T12-30-45Z.md"
	content, err := afero.ReadFile(fs, path)
	require.NoError(t, err)

	assert.Contains(t, string(content), "- Kind: prompt")
	assert.Contains(t, string(content), "- Operation: summarize")
	assert.Contains(t, string(content), "- Target: /ws/notes.txt")
	assert.Contains(t, string(content), "- Model: llama3")
	assert.Contains(t, string(content), "- Tokens: 42")
	assert.Contains(t, string(content), "the summary")
}

func TestDocumentSinkCreatesOutputDir(t *testing.T) {
	fs := afero.NewMemMapFs()
	sink := NewDocumentSink(fs, "/deep/nested/out")
	sink.now = fixedClock

	out := engine.ItemOutcome{
		Target:   target.Target{Path: "a.txt", Kind: target.KindFile},
		Success:  true,
		Response: "ok",
	}

	err := sink.Record(context.Background(), out, operation.Task{Name: "review", Command: "review"})
	require.NoError(t, err)

	exists, err := afero.DirExists(fs, "/deep/nested/out")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestDocumentSinkRecordFailsOnReadOnlyFs(t *testing.T) {
	fs := afero.NewReadOnlyFs(afero.NewMemMapFs())
	sink := NewDocumentSink(fs, "/out")

	out := engine.ItemOutcome{
		Target:  target.Target{Path: "a.txt", Kind: target.KindFile},
		Success: true,
	}

	err := sink.Record(context.Background(), out, operation.Prompt{Name: "p", Body: "x"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrWriteDocument)
}

func TestDocumentSinkSummarize(t *testing.T) {
	fs := afero.NewMemMapFs()
	sink := NewDocumentSink(fs, "/out")
	sink.now = fixedClock

	summary := &engine.RunSummary{
		ID: "run-1234",
		Results: []engine.ItemOutcome{
			{Target: target.Target{Path: "a.txt"}, Success: true},
			{Target: target.Target{Path: "b.txt"}, Success: false, Err: "backend request failed"},
		},
		TotalProcessed:  2,
		TotalSuccessful: 1,
		TotalFailed:     1,
		TotalTokens:     10,
	}

	err := sink.Summarize(context.Background(), summary)
	require.NoError(t, err)

	content, err := afero.ReadFile(fs, "/out/run_run-1234.md")
	require.NoError(t, err)

	assert.Contains(t, string(content), "- Processed: 2")
	assert.Contains(t, string(content), "- a.txt: ok")
	assert.Contains(t, string(content), "- b.txt: failed: backend request failed")
}
