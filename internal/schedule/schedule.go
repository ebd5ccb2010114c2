// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package schedule fires unattended batch runs on cron expressions.
// Overlapping fire times are serialized by the engine's mutual exclusion: a
// schedule that comes due while a run is active is skipped and logged.
package schedule

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/matt-FFFFFF/sweep/internal/config"
	"github.com/matt-FFFFFF/sweep/internal/ctxlog"
	"github.com/matt-FFFFFF/sweep/internal/engine"
	"github.com/matt-FFFFFF/sweep/internal/operation"
	"github.com/robfig/cron/v3"
)

// ErrBadCron is returned when a schedule's cron expression does not parse.
var ErrBadCron = errors.New("invalid cron expression")

const defaultTickInterval = 30 * time.Second

// Runner executes a named operation over file patterns. *app.App satisfies it.
type Runner interface {
	RunBatch(ctx context.Context, kind operation.Kind, name string, patterns []string, batchSize int) (*engine.RunSummary, error)
}

type entry struct {
	def       config.ScheduleDef
	schedule  cron.Schedule
	lastFired time.Time
}

// Scheduler drives schedules from configuration against a Runner.
type Scheduler struct {
	runner       Runner
	entries      []*entry
	tickInterval time.Duration
	now          func() time.Time

	mu sync.Mutex
	wg sync.WaitGroup
}

// New parses the schedule definitions and returns a Scheduler.
func New(runner Runner, defs []config.ScheduleDef) (*Scheduler, error) {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	entries := make([]*entry, 0, len(defs))

	for _, def := range defs {
		sched, err := parser.Parse(def.Cron)
		if err != nil {
			return nil, fmt.Errorf("%w: schedule %q: %v", ErrBadCron, def.Name, err)
		}

		entries = append(entries, &entry{def: def, schedule: sched})
	}

	return &Scheduler{
		runner:       runner,
		entries:      entries,
		tickInterval: defaultTickInterval,
		now:          time.Now,
	}, nil
}

// Next returns the next fire time of the named schedule, or the zero time
// when the name is unknown.
func (s *Scheduler) Next(name string) time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range s.entries {
		if e.def.Name == name {
			return e.schedule.Next(s.now())
		}
	}

	return time.Time{}
}

// Run blocks, firing due schedules until ctx is cancelled. In-flight runs
// are waited for before returning.
func (s *Scheduler) Run(ctx context.Context) {
	logger := ctxlog.Logger(ctx)
	logger.Info("scheduler started", "schedules", len(s.entries), "tick", s.tickInterval.String())

	// Anchor all schedules to startup so only boundaries crossed from now
	// on fire.
	start := s.now()

	s.mu.Lock()
	for _, e := range s.entries {
		e.lastFired = start
	}
	s.mu.Unlock()

	ticker := time.NewTicker(s.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("scheduler stopping")
			s.wg.Wait()

			return
		case <-ticker.C:
			s.fireDue(ctx)
		}
	}
}

// fireDue starts one run per schedule whose next fire time after its last
// firing has passed.
func (s *Scheduler) fireDue(ctx context.Context) {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range s.entries {
		if e.schedule.Next(e.lastFired).After(now) {
			continue
		}

		e.lastFired = now
		s.wg.Add(1)

		go s.fire(ctx, e.def)
	}
}

func (s *Scheduler) fire(ctx context.Context, def config.ScheduleDef) {
	defer s.wg.Done()

	logger := ctxlog.Logger(ctx).With("schedule", def.Name)
	logger.Info("firing scheduled run", "operation", def.Operation, "kind", def.Kind)

	summary, err := s.runner.RunBatch(ctx, operation.Kind(def.Kind), def.Operation, def.Patterns, def.BatchSize)

	switch {
	case errors.Is(err, engine.ErrRunActive):
		logger.Info("skipped scheduled run, another run is active")
	case err != nil:
		logger.Error("scheduled run failed", "error", err.Error())
	default:
		logger.Info("scheduled run finished",
			"processed", summary.TotalProcessed,
			"succeeded", summary.TotalSuccessful,
			"failed", summary.TotalFailed,
		)
	}
}
