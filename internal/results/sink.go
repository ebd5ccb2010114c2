// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package results

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/matt-FFFFFF/sweep/internal/ctxlog"
	"github.com/matt-FFFFFF/sweep/internal/engine"
	"github.com/matt-FFFFFF/sweep/internal/operation"
	"github.com/spf13/afero"
)

// ErrWriteDocument is returned when a result document cannot be written.
var ErrWriteDocument = errors.New("failed to write result document")

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// timestampSanitizer makes an RFC 3339 timestamp safe for use in a
// file name on every platform.
var timestampSanitizer = strings.NewReplacer(":", "-", ".", "-")

// DocumentSink writes one markdown document per successful item into
// outputDir, plus a summary document per run. It implements engine.Sink.
type DocumentSink struct {
	fs        afero.Fs
	outputDir string
	now       func() time.Time
}

// NewDocumentSink returns a DocumentSink rooted at outputDir.
func NewDocumentSink(fs afero.Fs, outputDir string) *DocumentSink {
	return &DocumentSink{
		fs:        fs,
		outputDir: outputDir,
		now:       time.Now,
	}
}

// Record writes the outcome of one successful item as a markdown document.
// The document key combines the target base name, the operation name and a
// sanitized timestamp so repeated runs never overwrite each other.
func (s *DocumentSink) Record(ctx context.Context, out engine.ItemOutcome, op operation.Operation) error {
	if err := s.fs.MkdirAll(s.outputDir, dirPerm); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteDocument, err)
	}

	stamp := s.now().UTC().Format(time.RFC3339)
	name := fmt.Sprintf("%s_%s_%s.md",
		out.Target.Name(),
		op.OperationName(),
		timestampSanitizer.Replace(stamp),
	)
	path := filepath.Join(s.outputDir, name)

	sb := &strings.Builder{}
	fmt.Fprintf(sb, "# %s: %s\n\n", op.OperationName(), out.Target.Name())
	fmt.Fprintf(sb, "- Kind: %s\n", op.OperationKind())
	fmt.Fprintf(sb, "- Operation: %s\n", op.OperationName())
	fmt.Fprintf(sb, "- Target: %s\n", out.Target.Path)
	fmt.Fprintf(sb, "- Model: %s\n", out.Model)
	fmt.Fprintf(sb, "- Generated: %s\n", stamp)

	if out.Usage != nil {
		fmt.Fprintf(sb, "- Tokens: %d\n", out.Usage.Total)
	}

	fmt.Fprintf(sb, "\n---\n\n%s\n", out.Response)

	if err := afero.WriteFile(s.fs, path, []byte(sb.String()), filePerm); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWriteDocument, path, err)
	}

	ctxlog.Debug(ctx, "result document written", "path", path)

	return nil
}

// Summarize writes a per-run summary document named after the run ID.
func (s *DocumentSink) Summarize(ctx context.Context, summary *engine.RunSummary) error {
	if err := s.fs.MkdirAll(s.outputDir, dirPerm); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteDocument, err)
	}

	path := filepath.Join(s.outputDir, fmt.Sprintf("run_%s.md", summary.ID))

	sb := &strings.Builder{}
	fmt.Fprintf(sb, "# Run %s\n\n", summary.ID)
	fmt.Fprintf(sb, "- Processed: %d\n", summary.TotalProcessed)
	fmt.Fprintf(sb, "- Succeeded: %d\n", summary.TotalSuccessful)
	fmt.Fprintf(sb, "- Failed: %d\n", summary.TotalFailed)
	fmt.Fprintf(sb, "- Tokens: %d\n", summary.TotalTokens)
	fmt.Fprintf(sb, "- Cancelled: %t\n", summary.Cancelled)
	fmt.Fprintf(sb, "- Duration: %s\n\n", summary.Duration.Round(time.Millisecond))

	for _, out := range summary.Results {
		status := "ok"
		if !out.Success {
			status = "failed: " + out.Err
		}

		fmt.Fprintf(sb, "- %s: %s\n", out.Target.Path, status)
	}

	if err := afero.WriteFile(s.fs, path, []byte(sb.String()), filePerm); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWriteDocument, path, err)
	}

	ctxlog.Debug(ctx, "run summary written", "path", path)

	return nil
}
