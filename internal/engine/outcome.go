// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package engine

import (
	"time"

	"github.com/matt-FFFFFF/sweep/internal/llm"
	"github.com/matt-FFFFFF/sweep/internal/target"
)

// ItemOutcome is the per-target record produced by a run.
type ItemOutcome struct {
	Target   target.Target // The target this outcome belongs to
	Success  bool          // Whether processing succeeded
	Response string        // Model response text, on success
	Err      string        // Error message, on failure
	Model    string        // Model that served the request
	Usage    *llm.Usage    // Token usage, nil when the backend does not report it
}

// RunSummary is the immutable result of one complete engine invocation.
// Results preserve the original target order, not completion order.
type RunSummary struct {
	ID              string        // Unique run identifier
	Results         []ItemOutcome // Ordered per-target outcomes for processed items
	TotalProcessed  int           // Number of items processed; may be < targets on cancellation
	TotalSuccessful int           // Items that succeeded
	TotalFailed     int           // Items that failed
	TotalTokens     int           // Sum of reported token totals; unreported counts contribute 0
	Cancelled       bool          // Whether the run stopped early on cancellation
	Duration        time.Duration // Wall-clock time from claim to aggregation
}

// summarize builds the RunSummary from the processed prefix of outcomes.
func summarize(id string, outcomes []ItemOutcome, cancelled bool, started time.Time) *RunSummary {
	s := &RunSummary{
		ID:             id,
		Results:        outcomes,
		TotalProcessed: len(outcomes),
		Cancelled:      cancelled,
	}

	for _, o := range outcomes {
		if o.Success {
			s.TotalSuccessful++
		} else {
			s.TotalFailed++
		}

		if o.Usage != nil {
			s.TotalTokens += o.Usage.Total
		}
	}

	s.Duration = time.Since(started)

	return s
}
