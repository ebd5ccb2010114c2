// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/matt-FFFFFF/sweep/internal/ctxlog"
	"github.com/matt-FFFFFF/sweep/internal/llm"
	"github.com/matt-FFFFFF/sweep/internal/operation"
	"github.com/matt-FFFFFF/sweep/internal/progress"
	"github.com/matt-FFFFFF/sweep/internal/target"
	"github.com/matt-FFFFFF/sweep/internal/template"
)

// pacingDelay is the fixed delay inserted between batches to reduce backend
// rate-limit pressure. It is not applied in serial mode (batch size 1) or
// after the final batch.
const pacingDelay = 1000 * time.Millisecond

var (
	// ErrRunActive is returned when a run is requested while one is active.
	ErrRunActive = errors.New("a batch run is already active")
	// ErrNoModelAvailable is returned when no backend model can be resolved.
	// It is surfaced before any item is processed.
	ErrNoModelAvailable = errors.New("no model available for batch run")
	// ErrBatchSize is returned when the requested batch size is less than one.
	ErrBatchSize = errors.New("batch size must be at least 1")
)

// ContentReader supplies target content.
type ContentReader interface {
	Read(t target.Target) (string, error)
}

// Sink records per-item output and the run summary.
// Implementations must treat failures as their own concern: the engine logs
// sink errors and continues, a persistence failure never fails the run.
type Sink interface {
	Record(ctx context.Context, outcome ItemOutcome, op operation.Operation) error
	Summarize(ctx context.Context, summary *RunSummary) error
}

// Config assembles an Engine's collaborators.
type Config struct {
	Gateway     llm.Gateway       // Model backend, required
	Chooser     llm.Chooser       // Model disambiguation, may be nil
	Reader      ContentReader     // Target content reader, required
	Sink        Sink              // Result sink, may be nil
	Reporter    progress.Reporter // Progress events, may be nil
	Workspace   string            // Workspace root for template substitution
	Temperature float64           // Sampling temperature for requests
	MaxTokens   int               // Max output tokens for requests, 0 means backend default
}

// Engine executes batch runs. See the package documentation for the
// concurrency model. The zero value is not usable; use New.
type Engine struct {
	gateway     llm.Gateway
	chooser     llm.Chooser
	reader      ContentReader
	sink        Sink
	reporter    progress.Reporter
	workspace   string
	temperature float64
	maxTokens   int

	mu     sync.Mutex
	active bool
	cancel context.CancelFunc
}

// New creates an Engine from the given configuration.
func New(cfg Config) *Engine {
	reporter := cfg.Reporter
	if reporter == nil {
		reporter = progress.NewNullReporter()
	}

	return &Engine{
		gateway:     cfg.Gateway,
		chooser:     cfg.Chooser,
		reader:      cfg.Reader,
		sink:        cfg.Sink,
		reporter:    reporter,
		workspace:   cfg.Workspace,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
	}
}

// Active reports whether a run is currently in flight.
func (e *Engine) Active() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.active
}

// Cancel requests cooperative cancellation of the active run, if any.
// The signal is honoured at the next batch boundary: no further batch is
// started, in-flight items finish and their outcomes are kept. It is not
// preemptive and never interrupts an in-flight backend call.
func (e *Engine) Cancel() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.cancel != nil {
		e.cancel()
	}
}

// claim atomically takes the run-active flag.
func (e *Engine) claim(ctx context.Context) (context.Context, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.active {
		return nil, ErrRunActive
	}

	runCtx, cancel := context.WithCancel(ctx)
	e.active = true
	e.cancel = cancel

	return runCtx, nil
}

// release returns the run-active flag. It must be called exactly once per
// successful claim, on every exit path.
func (e *Engine) release() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.cancel != nil {
		e.cancel()
	}

	e.active = false
	e.cancel = nil
}

// Process runs the operation across the targets in consecutive batches of
// batchSize, returning the aggregated summary.
//
// The model is resolved once per run; all items share it. Per-item failures
// are captured into that item's outcome and never abort siblings or the run.
// The returned summary preserves the original target order. A second Process
// call while one is active fails immediately with ErrRunActive and does not
// disturb the active run.
func (e *Engine) Process(ctx context.Context, targets []target.Target, op operation.Operation, batchSize int) (*RunSummary, error) {
	if batchSize < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrBatchSize, batchSize)
	}

	runCtx, err := e.claim(ctx)
	if err != nil {
		return nil, err
	}
	defer e.release()

	started := time.Now()
	runID := uuid.NewString()

	logger := ctxlog.Logger(ctx).With("runID", runID).
		With("operation", op.OperationName()).
		With("kind", string(op.OperationKind()))

	model, err := llm.SelectModel(ctx, e.gateway, e.chooser)
	if err != nil {
		return nil, errors.Join(ErrNoModelAvailable, err)
	}

	logger.Info("batch run starting", "targets", len(targets), "batchSize", batchSize, "model", model)
	e.report(progress.Event{Type: progress.EventRunStarted, RunID: runID, Message: op.OperationName()})

	outcomes := make([]ItemOutcome, len(targets))
	processed := 0
	cancelled := false
	batchCount := (len(targets) + batchSize - 1) / batchSize

	for bi := 0; bi < batchCount; bi++ {
		if runCtx.Err() != nil {
			cancelled = true

			logger.Info("cancellation honoured at batch boundary", "batchesRun", bi)
			e.report(progress.Event{Type: progress.EventRunCancelled, RunID: runID, BatchIndex: bi})

			break
		}

		lo := bi * batchSize
		hi := min(lo+batchSize, len(targets))

		e.report(progress.Event{
			Type:       progress.EventBatchStarted,
			RunID:      runID,
			BatchIndex: bi,
			Message:    fmt.Sprintf("dispatching %d items", hi-lo),
		})

		wg := &sync.WaitGroup{}

		for idx := lo; idx < hi; idx++ {
			wg.Add(1)

			go func(i int) {
				defer wg.Done()

				outcomes[i] = e.processItem(ctx, op, targets[i], model)
				e.reportItem(runID, bi, i, outcomes[i])
			}(idx)
		}

		wg.Wait()

		processed = hi

		if batchSize > 1 && bi < batchCount-1 {
			e.pace(runCtx)
		}
	}

	summary := summarize(runID, outcomes[:processed], cancelled, started)

	if e.sink != nil {
		if err := e.sink.Summarize(ctx, summary); err != nil {
			logger.Warn("failed to persist run summary", "error", err.Error())
		}
	}

	logger.Info("batch run finished",
		"processed", summary.TotalProcessed,
		"succeeded", summary.TotalSuccessful,
		"failed", summary.TotalFailed,
		"tokens", summary.TotalTokens,
		"duration", summary.Duration.String(),
	)
	e.report(progress.Event{Type: progress.EventRunCompleted, RunID: runID})

	return summary, nil
}

// processItem handles one target end to end: read content, resolve the
// template, call the gateway, record the result. Failures are captured in
// the outcome, never propagated, so one item can never abort its siblings.
func (e *Engine) processItem(ctx context.Context, op operation.Operation, t target.Target, model string) (out ItemOutcome) {
	out = ItemOutcome{Target: t, Model: model}

	defer func() {
		if r := recover(); r != nil {
			out.Success = false
			out.Err = fmt.Sprintf("item processing panic: %v", r)
		}
	}()

	content, err := e.reader.Read(t)
	if err != nil {
		out.Err = err.Error()
		return out
	}

	prompt, err := template.Resolve(op, t, content, e.workspace)
	if err != nil {
		out.Err = err.Error()
		return out
	}

	resp, err := e.gateway.Send(ctx, llm.Request{
		Prompt:      prompt,
		Model:       model,
		Temperature: e.temperature,
		MaxTokens:   e.maxTokens,
	})
	if err != nil {
		out.Err = err.Error()
		return out
	}

	out.Success = true
	out.Response = resp.Content
	out.Usage = resp.Usage

	if resp.Model != "" {
		out.Model = resp.Model
	}

	if e.sink != nil {
		if err := e.sink.Record(ctx, out, op); err != nil {
			ctxlog.Warn(ctx, "failed to record item result", "target", t.Path, "error", err.Error())
		}
	}

	return out
}

// pace waits the fixed inter-batch delay, returning early if cancellation
// arrives while waiting.
func (e *Engine) pace(runCtx context.Context) {
	timer := time.NewTimer(pacingDelay)
	defer timer.Stop()

	select {
	case <-timer.C:
	case <-runCtx.Done():
	}
}

func (e *Engine) report(event progress.Event) {
	event.Timestamp = time.Now()
	e.reporter.Report(event)
}

func (e *Engine) reportItem(runID string, batchIndex, itemIndex int, out ItemOutcome) {
	event := progress.Event{
		RunID:      runID,
		BatchIndex: batchIndex,
		ItemIndex:  itemIndex,
		Target:     out.Target.Path,
	}

	if out.Success {
		event.Type = progress.EventItemCompleted
	} else {
		event.Type = progress.EventItemFailed
		event.Err = errors.New(out.Err)
	}

	e.report(event)
}
