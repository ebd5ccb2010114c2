// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package results

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/matt-FFFFFF/sweep/internal/color"
	"github.com/matt-FFFFFF/sweep/internal/engine"
)

// ReportOptions controls what is included in the rendered run report.
type ReportOptions struct {
	ShowResponses bool // Whether to include response bodies for successful items
}

// DefaultReportOptions returns a default set of report options.
func DefaultReportOptions() *ReportOptions {
	return &ReportOptions{
		ShowResponses: false,
	}
}

// WriteReport renders a human-readable run report to the provided writer.
// Successful and failed items are grouped, with a totals footer.
func WriteReport(w io.Writer, summary *engine.RunSummary, options *ReportOptions) {
	if options == nil {
		options = DefaultReportOptions()
	}

	// Successes first, failures after, preserving input order within each group.
	for _, out := range summary.Results {
		if out.Success {
			writeItemLine(w, out, options)
		}
	}

	for _, out := range summary.Results {
		if !out.Success {
			writeItemLine(w, out, options)
		}
	}

	if summary.Cancelled {
		fmt.Fprintf( // nolint:errcheck
			w,
			"\n%s\n",
			color.Colorize("run cancelled before all items were processed", color.FgYellow),
		)
	}

	fmt.Fprintf( // nolint:errcheck
		w,
		"\n%s%d processed, %d succeeded, %d failed%s (%s tokens, %s)\n",
		color.ControlString(color.Bold),
		summary.TotalProcessed,
		summary.TotalSuccessful,
		summary.TotalFailed,
		color.ResetString(),
		humanize.Comma(int64(summary.TotalTokens)),
		summary.Duration.Round(time.Millisecond),
	)
}

func writeItemLine(w io.Writer, out engine.ItemOutcome, options *ReportOptions) {
	var statusStr, labelPrefix string

	switch {
	case out.Success:
		statusStr = color.Colorize("✓", color.FgGreen)
		labelPrefix = color.ControlString(color.Bold, color.FgGreen)
	default:
		statusStr = color.Colorize("✗", color.FgRed)
		labelPrefix = color.ControlString(color.Bold, color.FgRed)
	}

	fmt.Fprintf( // nolint:errcheck
		w,
		"%s %s%s%s",
		statusStr,
		labelPrefix,
		out.Target.Path,
		color.ResetString(),
	)

	if out.Model != "" {
		fmt.Fprintf(w, " [%s]", out.Model) // nolint:errcheck
	}

	if out.Usage != nil {
		fmt.Fprintf(w, " (%s tokens)", humanize.Comma(int64(out.Usage.Total))) // nolint:errcheck
	}

	fmt.Fprintln(w) // nolint:errcheck

	if !out.Success {
		fmt.Fprintf( // nolint:errcheck
			w,
			"  %s %s\n",
			color.Colorize("➜ Error:", color.FgRed),
			out.Err,
		)

		return
	}

	if options.ShowResponses && out.Response != "" {
		fmt.Fprintf(w, "  %s\n", out.Response) // nolint:errcheck
	}
}
