// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package results

import (
	"strings"
	"testing"
	"time"

	"github.com/matt-FFFFFF/sweep/internal/engine"
	"github.com/matt-FFFFFF/sweep/internal/llm"
	"github.com/matt-FFFFFF/sweep/internal/target"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSummary() *engine.RunSummary {
	return &engine.RunSummary{
		ID: "run-1",
		Results: []engine.ItemOutcome{
			{
				Target:   target.Target{Path: "/ws/a.txt"},
				Success:  true,
				Response: "summary of a",
				Model:    "llama3",
				Usage:    &llm.Usage{Total: 1234},
			},
			{
				Target:  target.Target{Path: "/ws/b.txt"},
				Success: false,
				Err:     "backend request failed: boom",
				Model:   "llama3",
			},
		},
		TotalProcessed:  2,
		TotalSuccessful: 1,
		TotalFailed:     1,
		TotalTokens:     1234,
		Duration:        1500 * time.Millisecond,
	}
}

func TestWriteReport(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	sb := &strings.Builder{}
	WriteReport(sb, testSummary(), nil)
	got := sb.String()

	assert.Contains(t, got, "✓ /ws/a.txt [llama3] (1,234 tokens)")
	assert.Contains(t, got, "✗ /ws/b.txt [llama3]")
	assert.Contains(t, got, "➜ Error: backend request failed: boom")
	assert.Contains(t, got, "2 processed, 1 succeeded, 1 failed (1,234 tokens, 1.5s)")
	assert.NotContains(t, got, "summary of a", "response bodies are hidden by default")
	assert.NotContains(t, got, "cancelled")
}

func TestWriteReportGroupsFailuresAfterSuccesses(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	summary := &engine.RunSummary{
		ID: "run-2",
		Results: []engine.ItemOutcome{
			{Target: target.Target{Path: "/ws/a.txt"}, Success: true},
			{Target: target.Target{Path: "/ws/b.txt"}, Success: false, Err: "boom"},
			{Target: target.Target{Path: "/ws/c.txt"}, Success: true},
		},
		TotalProcessed:  3,
		TotalSuccessful: 2,
		TotalFailed:     1,
	}

	sb := &strings.Builder{}
	WriteReport(sb, summary, nil)
	got := sb.String()

	iA := strings.Index(got, "✓ /ws/a.txt")
	iC := strings.Index(got, "✓ /ws/c.txt")
	iB := strings.Index(got, "✗ /ws/b.txt")
	require.NotEqual(t, -1, iA)
	require.NotEqual(t, -1, iB)
	require.NotEqual(t, -1, iC)

	assert.Less(t, iA, iC, "successes keep their input order")
	assert.Less(t, iC, iB, "failures render after all successes")
}

func TestWriteReportShowResponses(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	sb := &strings.Builder{}
	WriteReport(sb, testSummary(), &ReportOptions{ShowResponses: true})

	assert.Contains(t, sb.String(), "summary of a")
}

func TestWriteReportCancelled(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	summary := testSummary()
	summary.Cancelled = true

	sb := &strings.Builder{}
	WriteReport(sb, summary, nil)

	assert.Contains(t, sb.String(), "run cancelled before all items were processed")
}
