// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package operation

import (
	"context"
	"sync"
)

// Store caches the task and prompt lists from their sources.
// Lists are loaded lazily on first use and served from cache until Refresh
// is called. A filesystem watcher (outside this package) is expected to call
// Refresh when definition files change.
type Store struct {
	tasks   TaskSource
	prompts PromptSource

	mu           sync.RWMutex
	cachedTasks  []Task
	cachedProms  []Prompt
	tasksLoaded  bool
	promptLoaded bool
}

// NewStore creates a Store over the given sources. Either source may be nil,
// in which case the corresponding namespace is empty.
func NewStore(tasks TaskSource, prompts PromptSource) *Store {
	return &Store{tasks: tasks, prompts: prompts}
}

// Tasks returns the cached task list, loading it on first use.
func (s *Store) Tasks(ctx context.Context) ([]Task, error) {
	s.mu.RLock()
	if s.tasksLoaded {
		defer s.mu.RUnlock()
		return s.cachedTasks, nil
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.tasksLoaded {
		return s.cachedTasks, nil
	}

	if s.tasks == nil {
		s.tasksLoaded = true
		return nil, nil
	}

	tasks, err := s.tasks.LoadTasks(ctx)
	if err != nil {
		return nil, err
	}

	s.cachedTasks = tasks
	s.tasksLoaded = true

	return tasks, nil
}

// Prompts returns the cached prompt list, loading it on first use.
func (s *Store) Prompts(ctx context.Context) ([]Prompt, error) {
	s.mu.RLock()
	if s.promptLoaded {
		defer s.mu.RUnlock()
		return s.cachedProms, nil
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.promptLoaded {
		return s.cachedProms, nil
	}

	if s.prompts == nil {
		s.promptLoaded = true
		return nil, nil
	}

	prompts, err := s.prompts.LoadPrompts(ctx)
	if err != nil {
		return nil, err
	}

	s.cachedProms = prompts
	s.promptLoaded = true

	return prompts, nil
}

// Prompt returns the named prompt, or false if it does not exist.
func (s *Store) Prompt(ctx context.Context, name string) (Prompt, bool, error) {
	prompts, err := s.Prompts(ctx)
	if err != nil {
		return Prompt{}, false, err
	}

	for _, p := range prompts {
		if p.Name == name {
			return p, true, nil
		}
	}

	return Prompt{}, false, nil
}

// Task returns the named task, or false if it does not exist.
func (s *Store) Task(ctx context.Context, name string) (Task, bool, error) {
	tasks, err := s.Tasks(ctx)
	if err != nil {
		return Task{}, false, err
	}

	for _, t := range tasks {
		if t.Name == name {
			return t, true, nil
		}
	}

	return Task{}, false, nil
}

// Refresh drops the cached lists so the next access reloads from the sources.
func (s *Store) Refresh() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cachedTasks = nil
	s.cachedProms = nil
	s.tasksLoaded = false
	s.promptLoaded = false
}
