// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package llm abstracts over interchangeable model backends behind a single
// gateway contract: model discovery, model selection, and a buffered
// single-request call. Two backends exist: an OpenAI-compatible local
// inference HTTP endpoint and a local model runtime invoked as a subprocess.
// The backend is chosen once at construction; callers never branch on it.
package llm

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrNoModels is returned when no backend model can be resolved.
	ErrNoModels = errors.New("no models available from backend")
	// ErrBackend is returned on a transport or API failure from the backend.
	ErrBackend = errors.New("backend request failed")
	// ErrUnknownBackend is returned when the configured backend kind is not recognised.
	ErrUnknownBackend = errors.New("unknown backend kind")
)

// Backend kinds selectable in configuration.
const (
	BackendOpenAI = "openai"
	BackendExec   = "exec"
)

// Request is a single model invocation, built fresh per target.
type Request struct {
	Prompt      string  // Fully resolved prompt text
	Model       string  // Selected model identifier
	Temperature float64 // Sampling temperature
	MaxTokens   int     // Maximum output tokens, 0 means backend default
}

// Usage reports token consumption for a single request.
type Usage struct {
	Prompt     int // Tokens in the prompt
	Completion int // Tokens in the completion
	Total      int // Total tokens
}

// Response is the buffered result of a single request.
type Response struct {
	Content string // Text returned by the model
	Model   string // Model that actually served the request
	Usage   *Usage // Token usage, nil when the backend does not report it
}

// Gateway is the contract every backend implements.
type Gateway interface {
	// ListModels returns the identifiers of the models the backend offers.
	// Discovery failures are logged and yield an empty list, never an error.
	ListModels(ctx context.Context) []string
	// Send executes a single request. It must not retry internally.
	Send(ctx context.Context, req Request) (*Response, error)
	// TestConnection is a best-effort health probe. Errors are swallowed into false.
	TestConnection(ctx context.Context) bool
}

// Chooser disambiguates when more than one model is available.
type Chooser interface {
	// Choose picks one of the options, or returns false if the caller declined.
	Choose(options []string) (string, bool)
}

// Config selects and parameterises a backend.
type Config struct {
	Kind           string  // BackendOpenAI or BackendExec
	BaseURL        string  // OpenAI backend: endpoint base URL
	APIKey         string  // OpenAI backend: optional bearer token
	Command        string  // Exec backend: model runtime executable
	TimeoutSeconds int     // OpenAI backend: HTTP client timeout, 0 disables
	Temperature    float64 // Default sampling temperature for requests
	MaxTokens      int     // Default max output tokens for requests
}

// New constructs the configured backend.
func New(cfg Config) (Gateway, error) {
	switch cfg.Kind {
	case BackendOpenAI:
		return newOpenAIBackend(cfg), nil
	case BackendExec:
		return newExecBackend(cfg), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Kind)
	}
}

// SelectModel resolves the model for a run.
// A non-nil chooser is always consulted, even when only one model is listed,
// so a pinned choice is validated rather than silently substituted. Without a
// chooser, exactly one available model is auto-selected. Zero models, or a
// declined choice, yields ErrNoModels.
func SelectModel(ctx context.Context, g Gateway, chooser Chooser) (string, error) {
	models := g.ListModels(ctx)
	if len(models) == 0 {
		return "", ErrNoModels
	}

	if chooser == nil {
		if len(models) == 1 {
			return models[0], nil
		}

		return "", fmt.Errorf("%w: multiple models and no chooser", ErrNoModels)
	}

	model, ok := chooser.Choose(models)
	if !ok {
		return "", fmt.Errorf("%w: selection declined", ErrNoModels)
	}

	return model, nil
}
