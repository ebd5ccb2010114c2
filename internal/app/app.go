// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/matt-FFFFFF/sweep/internal/config"
	"github.com/matt-FFFFFF/sweep/internal/engine"
	"github.com/matt-FFFFFF/sweep/internal/llm"
	"github.com/matt-FFFFFF/sweep/internal/operation"
	"github.com/matt-FFFFFF/sweep/internal/progress"
	"github.com/matt-FFFFFF/sweep/internal/results"
	"github.com/matt-FFFFFF/sweep/internal/target"
	"github.com/spf13/afero"
)

var (
	// ErrOperationNotFound is returned when the named operation does not
	// exist in the requested namespace.
	ErrOperationNotFound = errors.New("operation not found")
	// ErrNoMatchingFiles is returned when the given patterns resolve to no
	// targets.
	ErrNoMatchingFiles = errors.New("no files match the given patterns")
	// ErrBatchSize is returned when the requested batch size is outside the
	// permitted range.
	ErrBatchSize = fmt.Errorf("batch size must be between 1 and %d", maxBatchSize)
	// ErrUnknownKind is returned for an operation kind that is neither task
	// nor prompt.
	ErrUnknownKind = errors.New("unknown operation kind")
)

const maxBatchSize = 50

// Status reports whether a batch run is currently in progress.
type Status struct {
	Processing bool
}

// App is the external automation surface of sweep.
type App struct {
	cfg     *config.Config
	store   *operation.Store
	finder  *target.Finder
	gateway llm.Gateway
	engine  *engine.Engine
}

// Option customises App construction.
type Option func(*options)

type options struct {
	fs       afero.Fs
	gateway  llm.Gateway
	chooser  llm.Chooser
	reporter progress.Reporter
}

// WithFs overrides the filesystem. Defaults to the OS filesystem.
func WithFs(fs afero.Fs) Option {
	return func(o *options) {
		o.fs = fs
	}
}

// WithGateway overrides the LLM gateway built from configuration.
func WithGateway(g llm.Gateway) Option {
	return func(o *options) {
		o.gateway = g
	}
}

// WithChooser sets the model chooser used when several models are available.
func WithChooser(c llm.Chooser) Option {
	return func(o *options) {
		o.chooser = c
	}
}

// WithReporter sets the progress reporter for batch runs.
func WithReporter(r progress.Reporter) Option {
	return func(o *options) {
		o.reporter = r
	}
}

// New builds an App from the given configuration.
func New(cfg *config.Config, opts ...Option) (*App, error) {
	o := &options{
		fs: afero.NewOsFs(),
	}

	for _, opt := range opts {
		opt(o)
	}

	if o.gateway == nil {
		g, err := llm.New(llm.Config{
			Kind:           cfg.Backend.Kind,
			BaseURL:        cfg.Backend.BaseURL,
			APIKey:         cfg.Backend.APIKey,
			Command:        cfg.Backend.Command,
			TimeoutSeconds: cfg.Backend.TimeoutSeconds,
			Temperature:    cfg.Backend.Temperature,
			MaxTokens:      cfg.Backend.MaxTokens,
		})
		if err != nil {
			return nil, err
		}

		o.gateway = g
	}

	chooser := o.chooser
	// A configured model pins selection for every run.
	if cfg.Backend.Model != "" {
		chooser = llm.PinnedChooser{Model: cfg.Backend.Model}
	}

	tasks := make([]operation.Task, 0, len(cfg.Tasks))
	for _, t := range cfg.Tasks {
		tasks = append(tasks, operation.Task{
			Name:        t.Name,
			Command:     t.Command,
			Template:    t.Template,
			Description: t.Description,
		})
	}

	store := operation.NewStore(
		operation.StaticTasks(tasks),
		operation.NewPromptDir(o.fs, cfg.PromptsDir),
	)

	eng := engine.New(engine.Config{
		Gateway:     o.gateway,
		Chooser:     chooser,
		Reader:      target.NewReader(o.fs),
		Sink:        results.NewDocumentSink(o.fs, cfg.OutputDir),
		Reporter:    o.reporter,
		Workspace:   cfg.Workspace,
		Temperature: cfg.Backend.Temperature,
		MaxTokens:   cfg.Backend.MaxTokens,
	})

	return &App{
		cfg:     cfg,
		store:   store,
		finder:  target.NewFinder(o.fs),
		gateway: o.gateway,
		engine:  eng,
	}, nil
}

// ListOperations returns the names available in the given namespace.
func (a *App) ListOperations(ctx context.Context, kind operation.Kind) ([]string, error) {
	switch kind {
	case operation.KindTask:
		tasks, err := a.store.Tasks(ctx)
		if err != nil {
			return nil, err
		}

		names := make([]string, 0, len(tasks))
		for _, t := range tasks {
			names = append(names, t.Name)
		}

		return names, nil
	case operation.KindPrompt:
		prompts, err := a.store.Prompts(ctx)
		if err != nil {
			return nil, err
		}

		names := make([]string, 0, len(prompts))
		for _, p := range prompts {
			names = append(names, p.Name)
		}

		return names, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
}

// Prompts returns the full prompt definitions, for detailed listings.
func (a *App) Prompts(ctx context.Context) ([]operation.Prompt, error) {
	return a.store.Prompts(ctx)
}

// Tasks returns the full task definitions, for detailed listings.
func (a *App) Tasks(ctx context.Context) ([]operation.Task, error) {
	return a.store.Tasks(ctx)
}

// RunBatch resolves the named operation and the target patterns, then
// processes all matches through the batch engine. A batchSize of 0 uses the
// configured default.
func (a *App) RunBatch(ctx context.Context, kind operation.Kind, name string, patterns []string, batchSize int) (*engine.RunSummary, error) {
	if batchSize == 0 {
		batchSize = a.cfg.BatchSize
	}

	if batchSize < 1 || batchSize > maxBatchSize {
		return nil, fmt.Errorf("%w: got %d", ErrBatchSize, batchSize)
	}

	op, err := a.lookup(ctx, kind, name)
	if err != nil {
		return nil, err
	}

	targets, err := a.finder.Find(ctx, a.cfg.Workspace, patterns)
	if err != nil {
		return nil, err
	}

	if len(targets) == 0 {
		return nil, fmt.Errorf("%w: %v", ErrNoMatchingFiles, patterns)
	}

	return a.engine.Process(ctx, targets, op, batchSize)
}

func (a *App) lookup(ctx context.Context, kind operation.Kind, name string) (operation.Operation, error) {
	switch kind {
	case operation.KindTask:
		t, ok, err := a.store.Task(ctx, name)
		if err != nil {
			return nil, err
		}

		if !ok {
			return nil, fmt.Errorf("%w: task %q", ErrOperationNotFound, name)
		}

		return t, nil
	case operation.KindPrompt:
		p, ok, err := a.store.Prompt(ctx, name)
		if err != nil {
			return nil, err
		}

		if !ok {
			return nil, fmt.Errorf("%w: prompt %q", ErrOperationNotFound, name)
		}

		return p, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
}

// Status reports whether a run is in progress.
func (a *App) Status() Status {
	return Status{Processing: a.engine.Active()}
}

// Cancel requests cooperative cancellation of the active run, if any.
func (a *App) Cancel() {
	a.engine.Cancel()
}

// Models lists the models the configured backend offers.
func (a *App) Models(ctx context.Context) []string {
	return a.gateway.ListModels(ctx)
}

// Healthy probes the configured backend.
func (a *App) Healthy(ctx context.Context) bool {
	return a.gateway.TestConnection(ctx)
}
