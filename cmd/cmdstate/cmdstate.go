// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package cmdstate holds process-wide state shared between main and the
// subcommands. The signal watchdog is installed before the CLI has parsed
// its arguments, so the active run's stop function has to be registered
// through global state.
package cmdstate

import "sync"

var (
	mu   sync.Mutex
	stop func()
)

// RegisterStop records the cooperative stop function of the active run.
func RegisterStop(f func()) {
	mu.Lock()
	defer mu.Unlock()
	stop = f
}

// Stop invokes the registered stop function, if any.
func Stop() {
	mu.Lock()
	f := stop
	mu.Unlock()

	if f != nil {
		f()
	}
}
