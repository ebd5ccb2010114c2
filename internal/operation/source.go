// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package operation

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/matt-FFFFFF/sweep/internal/ctxlog"
	"github.com/spf13/afero"
)

// ErrPromptDir is returned when the prompt directory cannot be read.
var ErrPromptDir = errors.New("failed to read prompt directory")

// TaskSource supplies the task list.
type TaskSource interface {
	LoadTasks(ctx context.Context) ([]Task, error)
}

// PromptSource supplies the prompt list.
type PromptSource interface {
	LoadPrompts(ctx context.Context) ([]Prompt, error)
}

// StaticTasks is a TaskSource over a fixed task list, typically built from
// the configuration file's task definitions.
type StaticTasks []Task

// LoadTasks implements TaskSource.
func (s StaticTasks) LoadTasks(_ context.Context) ([]Task, error) {
	return s, nil
}

// PromptDir is a PromptSource that scans a directory for *.md prompt files.
// The prompt name is the file basename without its extension.
type PromptDir struct {
	fs  afero.Fs
	dir string
}

// NewPromptDir creates a PromptSource over the given directory.
func NewPromptDir(fs afero.Fs, dir string) *PromptDir {
	return &PromptDir{fs: fs, dir: dir}
}

// LoadPrompts implements PromptSource.
// A missing directory yields an empty prompt list rather than an error, so a
// workspace without prompts can still run tasks. Individual files that fail
// to parse are logged and skipped.
func (p *PromptDir) LoadPrompts(ctx context.Context) ([]Prompt, error) {
	exists, err := afero.DirExists(p.fs, p.dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrPromptDir, p.dir, err)
	}

	if !exists {
		return nil, nil
	}

	entries, err := afero.ReadDir(p.fs, p.dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrPromptDir, p.dir, err)
	}

	prompts := make([]Prompt, 0, len(entries))

	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".md") {
			continue
		}

		path := filepath.Join(p.dir, e.Name())

		content, err := afero.ReadFile(p.fs, path)
		if err != nil {
			ctxlog.Warn(ctx, "skipping unreadable prompt file", "path", path, "error", err.Error())
			continue
		}

		name := strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))

		prompt, err := ParsePromptFile(name, content)
		if err != nil {
			ctxlog.Warn(ctx, "skipping malformed prompt file", "path", path, "error", err.Error())
			continue
		}

		prompts = append(prompts, prompt)
	}

	sort.Slice(prompts, func(i, j int) bool { return prompts[i].Name < prompts[j].Name })

	return prompts, nil
}
